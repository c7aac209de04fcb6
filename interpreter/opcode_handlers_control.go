package interpreter

import (
	"fmt"

	"github.com/jam-duna/fraudproof/program"
	"github.com/jam-duna/fraudproof/vmerrors"
)

func handleHALT(vm *VM, _ program.Instruction) error {
	vm.halt()
	return nil
}

func handleHALTI(vm *VM, _ program.Instruction) error {
	cond, err := vm.Stack.Pop()
	if err != nil {
		return err
	}
	if cond != 0 {
		vm.halt()
	}
	return nil
}

// [offset cond]; offset is a signed instruction count.
func handleJMPI(vm *VM, _ program.Instruction) error {
	offset, cond, err := vm.Stack.Pop2()
	if err != nil {
		return err
	}
	if cond == 0 {
		return nil
	}
	off := int64(offset)
	if off == 0 {
		return vmerrors.ErrJumpedToSelf
	}
	target := int64(vm.pc) + off
	if target < 0 || target > int64(vm.prog.Len()) {
		return fmt.Errorf("target %d of %d instructions: %w", target, vm.prog.Len(), vmerrors.ErrJumpOutOfBounds)
	}
	vm.jumpTo(int(target))
	return nil
}

func handlePANICI(vm *VM, _ program.Instruction) error {
	cond, err := vm.Stack.Pop()
	if err != nil {
		return err
	}
	if cond != 0 {
		return vmerrors.ErrExplicitPanic
	}
	return nil
}

// [bound up]
func handleREP(vm *VM, _ program.Instruction) error {
	bound, up, err := vm.Stack.Pop2()
	if err != nil {
		return err
	}
	if bound == 0 {
		end, ok := vm.prog.MatchingRepeatEnd(vm.pc)
		if !ok {
			return vmerrors.ErrUnmatchedRepeat
		}
		vm.jumpTo(end + 1)
		return nil
	}
	vm.Repeat.Push(RepeatFrame{Start: vm.pc + 1, Bound: bound, CountUp: up != 0})
	return nil
}

func handleREND(vm *VM, _ program.Instruction) error {
	f, err := vm.Repeat.Top()
	if err != nil {
		return err
	}
	f.Iteration++
	if f.Iteration >= f.Bound {
		vm.Repeat.Pop()
		return nil
	}
	vm.jumpTo(f.Start)
	return nil
}
