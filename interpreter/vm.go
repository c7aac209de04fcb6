// Package interpreter executes mapped constraint programs.
package interpreter

import (
	"fmt"

	"github.com/jam-duna/fraudproof/access"
	"github.com/jam-duna/fraudproof/log"
	"github.com/jam-duna/fraudproof/program"
	"github.com/jam-duna/fraudproof/vmerrors"
)

func init() {
	initDispatchTable()
}

// OpcodeHandler executes one instruction. A returned error panics the VM.
type OpcodeHandler func(vm *VM, in program.Instruction) error

var dispatchTable [256]OpcodeHandler

type VM struct {
	prog   *program.Program
	access *access.Access
	cfg    Config

	Stack  *Stack
	Memory *Memory
	Slots  *Slots
	Repeat *RepeatStack

	pc           int
	jumped       bool
	MachineState int
	terminated   bool
	Steps        uint64
	Reason       error
}

// NewVM prepares a run of prog. A nil access is the empty solution.
func NewVM(prog *program.Program, acc *access.Access, cfg Config) *VM {
	if acc == nil {
		acc = access.Empty()
	}
	return &VM{
		prog:         prog,
		access:       acc,
		cfg:          cfg,
		Stack:        NewStack(cfg.MaxStackWords),
		Memory:       NewMemory(cfg.MaxMemoryWords),
		Slots:        NewSlots(acc.StateSlots, cfg.MaxSlots, acc.IsMutable),
		Repeat:       &RepeatStack{},
		MachineState: RUNNING,
	}
}

// Execute runs prog to completion.
func Execute(prog *program.Program, acc *access.Access, cfg Config) *Result {
	return NewVM(prog, acc, cfg).Run()
}

func (vm *VM) PC() int {
	return vm.pc
}

func (vm *VM) Terminated() bool {
	return vm.terminated
}

// Run steps until the machine halts or panics.
func (vm *VM) Run() *Result {
	for !vm.terminated {
		vm.Step()
	}
	log.Debug(log.VMMonitoring, "constraint vm terminated",
		"state", StateName(vm.MachineState), "steps", vm.Steps, "pc", vm.pc, "stack", vm.Stack.Len(), "reason", vm.Reason)
	return vm.Result()
}

// Step executes a single instruction. Running past the last instruction
// halts.
func (vm *VM) Step() {
	if vm.terminated {
		return
	}
	in, ok := vm.prog.At(vm.pc)
	if !ok {
		vm.halt()
		return
	}
	if vm.cfg.MaxSteps > 0 && vm.Steps >= vm.cfg.MaxSteps {
		vm.panic(fmt.Errorf("pc %d: after %d steps: %w", vm.pc, vm.Steps, vmerrors.ErrStepLimit))
		return
	}
	vm.Steps++
	handler := dispatchTable[in.Op]
	if handler == nil {
		vm.panic(fmt.Errorf("pc %d: opcode 0x%02x: %w", vm.pc, byte(in.Op), vmerrors.ErrInvalidInstruction))
		return
	}
	if err := handler(vm, in); err != nil {
		vm.panic(fmt.Errorf("pc %d %s: %w", vm.pc, in.Op, err))
		return
	}
	if vm.terminated {
		return
	}
	if vm.jumped {
		vm.jumped = false
		return
	}
	vm.pc++
}

func (vm *VM) Result() *Result {
	return &Result{
		State:     vm.MachineState,
		Reason:    vm.Reason,
		Stack:     vm.Stack.Words(),
		Steps:     vm.Steps,
		PC:        vm.pc,
		Mutations: vm.Slots.Mutations(),
	}
}

func (vm *VM) halt() {
	vm.MachineState = HALT
	vm.terminated = true
}

func (vm *VM) panic(reason error) {
	vm.MachineState = PANIC
	vm.Reason = reason
	vm.terminated = true
	log.Trace(log.VMMonitoring, "constraint vm panic", "pc", vm.pc, "reason", reason)
}

func (vm *VM) jumpTo(target int) {
	vm.pc = target
	vm.jumped = true
}

func initDispatchTable() {
	// Stack
	dispatchTable[program.PUSH] = handlePUSH
	dispatchTable[program.POP] = handlePOP
	dispatchTable[program.DUP] = handleDUP
	dispatchTable[program.DUPI] = handleDUPI
	dispatchTable[program.SWAP] = handleSWAP
	dispatchTable[program.SWAPI] = handleSWAPI
	dispatchTable[program.SEL] = handleSEL
	dispatchTable[program.SELN] = handleSELN

	// Repeat
	dispatchTable[program.REP] = handleREP
	dispatchTable[program.REND] = handleREND

	// Predicates
	dispatchTable[program.EQ] = compare(func(a, b uint64) bool { return a == b })
	dispatchTable[program.GT] = compare(func(a, b uint64) bool { return a > b })
	dispatchTable[program.LT] = compare(func(a, b uint64) bool { return a < b })
	dispatchTable[program.GTE] = compare(func(a, b uint64) bool { return a >= b })
	dispatchTable[program.LTE] = compare(func(a, b uint64) bool { return a <= b })
	dispatchTable[program.AND] = compare(func(a, b uint64) bool { return a != 0 && b != 0 })
	dispatchTable[program.OR] = compare(func(a, b uint64) bool { return a != 0 || b != 0 })
	dispatchTable[program.NOT] = handleNOT
	dispatchTable[program.EQN] = handleEQN
	dispatchTable[program.EQS] = handleEQS

	// ALU
	dispatchTable[program.ADD] = handleADD
	dispatchTable[program.SUB] = handleSUB
	dispatchTable[program.MUL] = handleMUL
	dispatchTable[program.DIV] = handleDIV
	dispatchTable[program.MOD] = handleMOD

	// Access
	dispatchTable[program.PREDICATE] = handlePREDICATE
	dispatchTable[program.CONTRACT] = handleCONTRACT
	dispatchTable[program.SOLUTION] = handleSOLUTION
	dispatchTable[program.PREDICATE_AT] = handlePREDICATE_AT
	dispatchTable[program.MUT_KEYS] = handleMUT_KEYS
	dispatchTable[program.PUB_VAR_KEYS] = handlePUB_VAR_KEYS
	dispatchTable[program.REPEAT_COUNTER] = handleREPEAT_COUNTER
	dispatchTable[program.DECISION_VAR] = handleDECISION_VAR
	dispatchTable[program.DECISION_VAR_LEN] = handleDECISION_VAR_LEN
	dispatchTable[program.STATE] = handleSTATE
	dispatchTable[program.STATE_LEN] = handleSTATE_LEN
	dispatchTable[program.PUB_VAR] = handlePUB_VAR
	dispatchTable[program.PUB_VAR_LEN] = handlePUB_VAR_LEN
	dispatchTable[program.NUM_SLOTS] = handleNUM_SLOTS

	// Crypto
	dispatchTable[program.SHA256] = handleSHA256
	dispatchTable[program.VERIFY_ED25519] = handleVERIFY_ED25519
	dispatchTable[program.RECOVER_SECP256K1] = handleRECOVER_SECP256K1

	// Control flow
	dispatchTable[program.HALT] = handleHALT
	dispatchTable[program.HALTI] = handleHALTI
	dispatchTable[program.JMPI] = handleJMPI
	dispatchTable[program.PANICI] = handlePANICI

	// Memory
	dispatchTable[program.MGROW] = handleMGROW
	dispatchTable[program.MLOAD] = handleMLOAD
	dispatchTable[program.MSTORE] = handleMSTORE

	// State slots
	dispatchTable[program.ALLOC_SLOTS] = handleALLOC_SLOTS
	dispatchTable[program.LOAD_SLOT] = handleLOAD_SLOT
	dispatchTable[program.STORE_SLOT] = handleSTORE_SLOT
	dispatchTable[program.LOAD_SLOT_WORD] = handleLOAD_SLOT_WORD
	dispatchTable[program.STORE_SLOT_WORD] = handleSTORE_SLOT_WORD
	dispatchTable[program.CLEAR_SLOT] = handleCLEAR_SLOT
	dispatchTable[program.CLEAR_SLOTS] = handleCLEAR_SLOTS
	dispatchTable[program.SLOTS_LEN] = handleSLOTS_LEN
	dispatchTable[program.SLOTS_VALUE_LEN] = handleSLOTS_VALUE_LEN

	// Key ranges
	dispatchTable[program.SLOAD] = handleSLOAD
	dispatchTable[program.KEY_RANGE_EXTERN] = handleKEY_RANGE_EXTERN
}
