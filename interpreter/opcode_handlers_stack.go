package interpreter

import (
	"fmt"

	"github.com/jam-duna/fraudproof/common"
	"github.com/jam-duna/fraudproof/program"
	"github.com/jam-duna/fraudproof/vmerrors"
)

func handlePUSH(vm *VM, in program.Instruction) error {
	return vm.Stack.Push(in.Imm)
}

func handlePOP(vm *VM, _ program.Instruction) error {
	_, err := vm.Stack.Pop()
	return err
}

func handleDUP(vm *VM, _ program.Instruction) error {
	w, err := vm.Stack.Pop()
	if err != nil {
		return err
	}
	return vm.Stack.Extend(w, w)
}

func handleDUPI(vm *VM, _ program.Instruction) error {
	ix, err := vm.Stack.Pop()
	if err != nil {
		return err
	}
	w, err := vm.Stack.Peek(ix)
	if err != nil {
		return err
	}
	return vm.Stack.Push(w)
}

func handleSWAP(vm *VM, _ program.Instruction) error {
	a, b, err := vm.Stack.Pop2()
	if err != nil {
		return err
	}
	return vm.Stack.Extend(b, a)
}

func handleSWAPI(vm *VM, _ program.Instruction) error {
	ix, err := vm.Stack.Pop()
	if err != nil {
		return err
	}
	if ix == 0 {
		return nil
	}
	return vm.Stack.Swap(ix)
}

// [a b cond] -> cond ? a : b
func handleSEL(vm *VM, _ program.Instruction) error {
	a, b, cond, err := vm.Stack.Pop3()
	if err != nil {
		return err
	}
	if cond != 0 {
		return vm.Stack.Push(a)
	}
	return vm.Stack.Push(b)
}

// [a[len] b[len] len cond] -> cond ? a : b
func handleSELN(vm *VM, _ program.Instruction) error {
	cond, err := vm.Stack.Pop()
	if err != nil {
		return err
	}
	a, b, err := popRangePair(vm.Stack)
	if err != nil {
		return err
	}
	if cond != 0 {
		return vm.Stack.Extend(a...)
	}
	return vm.Stack.Extend(b...)
}

// popRangePair pops [a[len] b[len] len].
func popRangePair(s *Stack) (a, b []common.Word, err error) {
	n, err := s.Pop()
	if err != nil {
		return nil, nil, err
	}
	if n > common.Word(s.Len())/2 {
		return nil, nil, fmt.Errorf("two ranges of %d words on %d: %w", n, s.Len(), vmerrors.ErrStackUnderflow)
	}
	words, err := s.PopN(2 * n)
	if err != nil {
		return nil, nil, err
	}
	return words[:n], words[n:], nil
}
