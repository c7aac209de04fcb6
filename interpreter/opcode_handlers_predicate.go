package interpreter

import (
	"fmt"
	"slices"

	"github.com/jam-duna/fraudproof/common"
	"github.com/jam-duna/fraudproof/program"
	"github.com/jam-duna/fraudproof/vmerrors"
)

// compare builds a handler for [lhs rhs] -> bool.
func compare(f func(lhs, rhs uint64) bool) OpcodeHandler {
	return func(vm *VM, _ program.Instruction) error {
		lhs, rhs, err := vm.Stack.Pop2()
		if err != nil {
			return err
		}
		return vm.Stack.Push(common.BoolToWord(f(lhs, rhs)))
	}
}

func handleNOT(vm *VM, _ program.Instruction) error {
	a, err := vm.Stack.Pop()
	if err != nil {
		return err
	}
	return vm.Stack.Push(common.BoolToWord(a == 0))
}

func handleEQN(vm *VM, _ program.Instruction) error {
	a, b, err := popRangePair(vm.Stack)
	if err != nil {
		return err
	}
	return vm.Stack.Push(common.BoolToWord(slices.Equal(a, b)))
}

// [lhs[n] n rhs[m] m] -> bool
func handleEQS(vm *VM, _ program.Instruction) error {
	rhs, err := vm.Stack.PopLenWords()
	if err != nil {
		return err
	}
	lhs, err := vm.Stack.PopLenWords()
	if err != nil {
		return err
	}
	lset, err := canonicalSet(lhs)
	if err != nil {
		return err
	}
	rset, err := canonicalSet(rhs)
	if err != nil {
		return err
	}
	eq := slices.EqualFunc(lset, rset, func(x, y []common.Word) bool { return slices.Equal(x, y) })
	return vm.Stack.Push(common.BoolToWord(eq))
}

// canonicalSet splits a region of `elem... elem_len` records, read from the
// end, into its sorted and deduplicated elements.
func canonicalSet(region []common.Word) ([][]common.Word, error) {
	var elems [][]common.Word
	i := len(region)
	for i > 0 {
		n := region[i-1]
		i--
		if n > common.Word(i) {
			return nil, fmt.Errorf("element of %d words with %d left: %w", n, i, vmerrors.ErrMalformedSet)
		}
		elems = append(elems, region[i-int(n):i])
		i -= int(n)
	}
	slices.SortFunc(elems, func(x, y []common.Word) int { return slices.Compare(x, y) })
	return slices.CompactFunc(elems, func(x, y []common.Word) bool { return slices.Equal(x, y) }), nil
}
