package interpreter

import (
	"fmt"
	"math/bits"

	"github.com/jam-duna/fraudproof/program"
	"github.com/jam-duna/fraudproof/vmerrors"
)

func handleADD(vm *VM, _ program.Instruction) error {
	lhs, rhs, err := vm.Stack.Pop2()
	if err != nil {
		return err
	}
	sum, carry := bits.Add64(lhs, rhs, 0)
	if carry != 0 {
		return fmt.Errorf("%d + %d: %w", lhs, rhs, vmerrors.ErrOverflow)
	}
	return vm.Stack.Push(sum)
}

func handleSUB(vm *VM, _ program.Instruction) error {
	lhs, rhs, err := vm.Stack.Pop2()
	if err != nil {
		return err
	}
	diff, borrow := bits.Sub64(lhs, rhs, 0)
	if borrow != 0 {
		return fmt.Errorf("%d - %d: %w", lhs, rhs, vmerrors.ErrOverflow)
	}
	return vm.Stack.Push(diff)
}

func handleMUL(vm *VM, _ program.Instruction) error {
	lhs, rhs, err := vm.Stack.Pop2()
	if err != nil {
		return err
	}
	hi, lo := bits.Mul64(lhs, rhs)
	if hi != 0 {
		return fmt.Errorf("%d * %d: %w", lhs, rhs, vmerrors.ErrOverflow)
	}
	return vm.Stack.Push(lo)
}

func handleDIV(vm *VM, _ program.Instruction) error {
	lhs, rhs, err := vm.Stack.Pop2()
	if err != nil {
		return err
	}
	if rhs == 0 {
		return fmt.Errorf("%d / 0: %w", lhs, vmerrors.ErrDivisionByZero)
	}
	return vm.Stack.Push(lhs / rhs)
}

func handleMOD(vm *VM, _ program.Instruction) error {
	lhs, rhs, err := vm.Stack.Pop2()
	if err != nil {
		return err
	}
	if rhs == 0 {
		return fmt.Errorf("%d %% 0: %w", lhs, vmerrors.ErrDivisionByZero)
	}
	return vm.Stack.Push(lhs % rhs)
}
