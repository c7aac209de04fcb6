package interpreter

import (
	"github.com/jam-duna/fraudproof/access"
	"github.com/jam-duna/fraudproof/common"
	"github.com/jam-duna/fraudproof/program"
)

func handlePREDICATE(vm *VM, _ program.Instruction) error {
	d, err := vm.access.This()
	if err != nil {
		return err
	}
	h := common.HashToWords(d.PredicateToSolve.Predicate)
	return vm.Stack.Extend(h[:]...)
}

func handleCONTRACT(vm *VM, _ program.Instruction) error {
	d, err := vm.access.This()
	if err != nil {
		return err
	}
	h := common.HashToWords(d.PredicateToSolve.Contract)
	return vm.Stack.Extend(h[:]...)
}

func handleSOLUTION(vm *VM, _ program.Instruction) error {
	return vm.Stack.Push(vm.access.ThisPathway())
}

func handlePREDICATE_AT(vm *VM, _ program.Instruction) error {
	pathway, err := vm.Stack.Pop()
	if err != nil {
		return err
	}
	addr, err := vm.access.PredicateAt(pathway)
	if err != nil {
		return err
	}
	w := addr.Words()
	return vm.Stack.Extend(w[:]...)
}

func handleMUT_KEYS(vm *VM, _ program.Instruction) error {
	return vm.Stack.Extend(access.FlattenKeys(vm.access.MutKeys())...)
}

func handlePUB_VAR_KEYS(vm *VM, _ program.Instruction) error {
	pathway, err := vm.Stack.Pop()
	if err != nil {
		return err
	}
	keys, err := vm.access.PubVarKeys(pathway)
	if err != nil {
		return err
	}
	return vm.Stack.Extend(access.FlattenKeys(keys)...)
}

func handleREPEAT_COUNTER(vm *VM, _ program.Instruction) error {
	c, err := vm.Repeat.Counter()
	if err != nil {
		return err
	}
	return vm.Stack.Push(c)
}

// [slot ix len]
func handleDECISION_VAR(vm *VM, _ program.Instruction) error {
	slot, ix, n, err := vm.Stack.Pop3()
	if err != nil {
		return err
	}
	words, err := vm.access.DecisionVar(slot, ix, n)
	if err != nil {
		return err
	}
	return vm.Stack.Extend(words...)
}

func handleDECISION_VAR_LEN(vm *VM, _ program.Instruction) error {
	slot, err := vm.Stack.Pop()
	if err != nil {
		return err
	}
	n, err := vm.access.DecisionVarLen(slot)
	if err != nil {
		return err
	}
	return vm.Stack.Push(n)
}

// [slot ix len delta]
func handleSTATE(vm *VM, _ program.Instruction) error {
	args, err := vm.Stack.PopN(4)
	if err != nil {
		return err
	}
	words, err := vm.access.StateRange(args[0], args[1], args[2], args[3])
	if err != nil {
		return err
	}
	return vm.Stack.Extend(words...)
}

// [slot delta]
func handleSTATE_LEN(vm *VM, _ program.Instruction) error {
	slot, delta, err := vm.Stack.Pop2()
	if err != nil {
		return err
	}
	n, err := vm.access.StateLen(slot, delta)
	if err != nil {
		return err
	}
	return vm.Stack.Push(n)
}

// popPathwayKey pops [pathway key[k] k].
func popPathwayKey(s *Stack) (common.Word, access.Key, error) {
	key, err := s.PopLenWords()
	if err != nil {
		return 0, nil, err
	}
	pathway, err := s.Pop()
	if err != nil {
		return 0, nil, err
	}
	return pathway, key, nil
}

// [pathway key[k] k ix len]
func handlePUB_VAR(vm *VM, _ program.Instruction) error {
	ix, n, err := vm.Stack.Pop2()
	if err != nil {
		return err
	}
	pathway, key, err := popPathwayKey(vm.Stack)
	if err != nil {
		return err
	}
	words, err := vm.access.PubVar(pathway, key, ix, n)
	if err != nil {
		return err
	}
	return vm.Stack.Extend(words...)
}

// [pathway key[k] k]
func handlePUB_VAR_LEN(vm *VM, _ program.Instruction) error {
	pathway, key, err := popPathwayKey(vm.Stack)
	if err != nil {
		return err
	}
	n, err := vm.access.PubVarLen(pathway, key)
	if err != nil {
		return err
	}
	return vm.Stack.Push(n)
}

func handleNUM_SLOTS(vm *VM, _ program.Instruction) error {
	which, err := vm.Stack.Pop()
	if err != nil {
		return err
	}
	n, err := vm.access.NumSlots(which)
	if err != nil {
		return err
	}
	return vm.Stack.Push(n)
}
