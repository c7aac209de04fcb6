package interpreter

import (
	"fmt"

	"github.com/jam-duna/fraudproof/access"
	"github.com/jam-duna/fraudproof/common"
	"github.com/jam-duna/fraudproof/log"
	"github.com/jam-duna/fraudproof/program"
	"github.com/jam-duna/fraudproof/vmerrors"
)

func handleMGROW(vm *VM, _ program.Instruction) error {
	n, err := vm.Stack.Pop()
	if err != nil {
		return err
	}
	return vm.Memory.Grow(n)
}

func handleMLOAD(vm *VM, _ program.Instruction) error {
	ix, err := vm.Stack.Pop()
	if err != nil {
		return err
	}
	w, err := vm.Memory.Load(ix)
	if err != nil {
		return err
	}
	return vm.Stack.Push(w)
}

// [ix w]
func handleMSTORE(vm *VM, _ program.Instruction) error {
	ix, w, err := vm.Stack.Pop2()
	if err != nil {
		return err
	}
	return vm.Memory.Store(ix, w)
}

func handleALLOC_SLOTS(vm *VM, _ program.Instruction) error {
	n, err := vm.Stack.Pop()
	if err != nil {
		return err
	}
	return vm.Slots.Alloc(n)
}

// [slot] -> value[len] len
func handleLOAD_SLOT(vm *VM, _ program.Instruction) error {
	ix, err := vm.Stack.Pop()
	if err != nil {
		return err
	}
	v, err := vm.Slots.Load(ix)
	if err != nil {
		return err
	}
	if err := vm.Stack.Extend(v...); err != nil {
		return err
	}
	return vm.Stack.Push(common.Word(len(v)))
}

// [slot value[len] len]
func handleSTORE_SLOT(vm *VM, _ program.Instruction) error {
	value, err := vm.Stack.PopLenWords()
	if err != nil {
		return err
	}
	ix, err := vm.Stack.Pop()
	if err != nil {
		return err
	}
	return vm.Slots.Store(ix, value)
}

// [slot ix]
func handleLOAD_SLOT_WORD(vm *VM, _ program.Instruction) error {
	ix, i, err := vm.Stack.Pop2()
	if err != nil {
		return err
	}
	w, err := vm.Slots.LoadWord(ix, i)
	if err != nil {
		return err
	}
	return vm.Stack.Push(w)
}

// [slot ix w]
func handleSTORE_SLOT_WORD(vm *VM, _ program.Instruction) error {
	ix, i, w, err := vm.Stack.Pop3()
	if err != nil {
		return err
	}
	return vm.Slots.StoreWord(ix, i, w)
}

func handleCLEAR_SLOT(vm *VM, _ program.Instruction) error {
	ix, err := vm.Stack.Pop()
	if err != nil {
		return err
	}
	return vm.Slots.Clear(ix)
}

// [slot n]
func handleCLEAR_SLOTS(vm *VM, _ program.Instruction) error {
	ix, n, err := vm.Stack.Pop2()
	if err != nil {
		return err
	}
	return vm.Slots.ClearRange(ix, n)
}

func handleSLOTS_LEN(vm *VM, _ program.Instruction) error {
	return vm.Stack.Push(common.Word(vm.Slots.Len()))
}

func handleSLOTS_VALUE_LEN(vm *VM, _ program.Instruction) error {
	ix, err := vm.Stack.Pop()
	if err != nil {
		return err
	}
	n, err := vm.Slots.ValueLen(ix)
	if err != nil {
		return err
	}
	return vm.Stack.Push(n)
}

// [key[k] k n slot]
func handleSLOAD(vm *VM, _ program.Instruction) error {
	n, ix, err := vm.Stack.Pop2()
	if err != nil {
		return err
	}
	key, err := vm.Stack.PopLenWords()
	if err != nil {
		return err
	}
	d, err := vm.access.This()
	if err != nil {
		return err
	}
	return vm.loadKeyRange(d.PredicateToSolve.Contract, key, n, ix)
}

// [contract[4] key[k] k n slot]
func handleKEY_RANGE_EXTERN(vm *VM, _ program.Instruction) error {
	n, ix, err := vm.Stack.Pop2()
	if err != nil {
		return err
	}
	key, err := vm.Stack.PopLenWords()
	if err != nil {
		return err
	}
	words, err := vm.Stack.PopN(4)
	if err != nil {
		return err
	}
	contract := common.WordsToHash([4]common.Word(words))
	return vm.loadKeyRange(contract, key, n, ix)
}

// loadKeyRange copies n consecutive keys starting at key into slots
// [ix, ix+n).
func (vm *VM) loadKeyRange(contract common.ContentAddress, key access.Key, n, ix common.Word) error {
	size := common.Word(vm.Slots.Len())
	if ix > size || n > size-ix {
		return fmt.Errorf("key range into slots [%d, %d+%d) of %d: %w", ix, ix, n, size, vmerrors.ErrSlotOutOfBounds)
	}
	keys := make([]access.Key, 0, n)
	k := key
	for j := common.Word(0); j < n; j++ {
		if j > 0 {
			next, err := access.NextKey(k)
			if err != nil {
				return err
			}
			k = next
		}
		keys = append(keys, k)
	}
	values, err := vm.access.KeyRange(contract, key, int(n))
	if err != nil {
		return err
	}
	log.Trace(log.VMMonitoring, "key range loaded", "contract", contract, "key", key, "n", n, "slot", ix)
	return vm.Slots.Fill(ix, keys, values)
}
