package interpreter

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jam-duna/fraudproof/access"
	"github.com/jam-duna/fraudproof/common"
	"github.com/jam-duna/fraudproof/program"
	"github.com/jam-duna/fraudproof/vmerrors"
)

func assemble(t *testing.T, src string) *program.Program {
	t.Helper()
	code, err := program.Assemble(src)
	require.NoError(t, err)
	p, err := program.Map(code)
	require.NoError(t, err)
	return p
}

func runAsm(t *testing.T, acc *access.Access, src string) *Result {
	t.Helper()
	return Execute(assemble(t, src), acc, DefaultConfig())
}

func requireHalt(t *testing.T, r *Result, stack ...common.Word) {
	t.Helper()
	require.Equal(t, HALT, r.State, "reason: %v", r.Reason)
	require.NoError(t, r.Reason)
	if len(stack) == 0 {
		require.Empty(t, r.Stack)
		return
	}
	require.Equal(t, stack, r.Stack)
}

func requirePanic(t *testing.T, r *Result, sentinel error) {
	t.Helper()
	require.Equal(t, PANIC, r.State)
	require.ErrorIs(t, r.Reason, sentinel)
}

func TestRunPastEndHalts(t *testing.T) {
	r := runAsm(t, nil, "PUSH 7")
	requireHalt(t, r, 7)
	assert.Equal(t, uint64(1), r.Steps)
	assert.Equal(t, 1, r.PC)

	r = Execute(program.FromInstructions(), nil, DefaultConfig())
	requireHalt(t, r)
	assert.Equal(t, uint64(0), r.Steps)
}

func TestHaltStopsExecution(t *testing.T) {
	requireHalt(t, runAsm(t, nil, "PUSH 1\nHALT\nPUSH 2"), 1)
	requireHalt(t, runAsm(t, nil, "PUSH 5\nPUSH 0\nHALTI\nPUSH 6"), 5, 6)
	requireHalt(t, runAsm(t, nil, "PUSH 5\nPUSH 1\nHALTI\nPUSH 6"), 5)

	vm := NewVM(assemble(t, "PUSH 1\nHALT\nPUSH 2"), nil, DefaultConfig())
	vm.Step()
	assert.False(t, vm.Terminated())
	vm.Step()
	assert.True(t, vm.Terminated())
	assert.Equal(t, 1, vm.PC())
}

func TestPanicI(t *testing.T) {
	requireHalt(t, runAsm(t, nil, "PUSH 0\nPANICI\nPUSH 1"), 1)
	requirePanic(t, runAsm(t, nil, "PUSH 2\nPANICI\nPUSH 1"), vmerrors.ErrExplicitPanic)
}

func TestStackOps(t *testing.T) {
	cases := []struct {
		name  string
		src   string
		stack []common.Word
	}{
		{"pop", "PUSH 1\nPUSH 2\nPOP", []common.Word{1}},
		{"dup", "PUSH 3\nDUP", []common.Word{3, 3}},
		{"dupi top", "PUSH 1\nPUSH 2\nPUSH 0\nDUPI", []common.Word{1, 2, 2}},
		{"dupi deep", "PUSH 1\nPUSH 2\nPUSH 1\nDUPI", []common.Word{1, 2, 1}},
		{"swap", "PUSH 1\nPUSH 2\nSWAP", []common.Word{2, 1}},
		{"swapi noop", "PUSH 1\nPUSH 2\nPUSH 0\nSWAPI", []common.Word{1, 2}},
		{"swapi", "PUSH 1\nPUSH 2\nPUSH 3\nPUSH 2\nSWAPI", []common.Word{3, 2, 1}},
		{"sel true", "PUSH 10\nPUSH 20\nPUSH 1\nSEL", []common.Word{10}},
		{"sel false", "PUSH 10\nPUSH 20\nPUSH 0\nSEL", []common.Word{20}},
		{"seln true", "PUSH 1\nPUSH 2\nPUSH 3\nPUSH 4\nPUSH 2\nPUSH 9\nSELN", []common.Word{1, 2}},
		{"seln false", "PUSH 1\nPUSH 2\nPUSH 3\nPUSH 4\nPUSH 2\nPUSH 0\nSELN", []common.Word{3, 4}},
		{"seln empty", "PUSH 0\nPUSH 1\nSELN", nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			requireHalt(t, runAsm(t, nil, tc.src), tc.stack...)
		})
	}
}

func TestStackIndexOutOfRange(t *testing.T) {
	requirePanic(t, runAsm(t, nil, "PUSH 1\nPUSH 1\nDUPI"), vmerrors.ErrIndexOutOfRange)
	requirePanic(t, runAsm(t, nil, "PUSH 1\nPUSH 5\nSWAPI"), vmerrors.ErrIndexOutOfRange)
}

func TestPredicates(t *testing.T) {
	cases := []struct {
		op       string
		lhs, rhs common.Word
		want     common.Word
	}{
		{"EQ", 3, 3, 1}, {"EQ", 3, 4, 0},
		{"GT", 4, 3, 1}, {"GT", 3, 4, 0},
		{"LT", 3, 4, 1}, {"LT", 4, 3, 0},
		{"GTE", 3, 3, 1}, {"GTE", 2, 3, 0},
		{"LTE", 3, 3, 1}, {"LTE", 4, 3, 0},
		{"AND", 2, 7, 1}, {"AND", 0, 7, 0},
		{"OR", 0, 7, 1}, {"OR", 0, 0, 0},
		// unsigned: -1 is the largest word
		{"GT", ^common.Word(0), 1, 1},
	}
	for _, tc := range cases {
		t.Run(fmt.Sprintf("%s_%d_%d", tc.op, tc.lhs, tc.rhs), func(t *testing.T) {
			src := fmt.Sprintf("PUSH %d\nPUSH %d\n%s", tc.lhs, tc.rhs, tc.op)
			requireHalt(t, runAsm(t, nil, src), tc.want)
		})
	}
	requireHalt(t, runAsm(t, nil, "PUSH 0\nNOT"), 1)
	requireHalt(t, runAsm(t, nil, "PUSH 9\nNOT"), 0)
}

func TestEQN(t *testing.T) {
	requireHalt(t, runAsm(t, nil, "PUSH 0\nEQN"), 1)
	requireHalt(t, runAsm(t, nil, "PUSH 1\nPUSH 2\nPUSH 1\nPUSH 2\nPUSH 2\nEQN"), 1)
	requireHalt(t, runAsm(t, nil, "PUSH 1\nPUSH 2\nPUSH 1\nPUSH 3\nPUSH 2\nEQN"), 0)
	requireHalt(t, runAsm(t, nil, "PUSH 5\nPUSH 0\nEQN"), 5, 1)
	requirePanic(t, runAsm(t, nil, "PUSH 1\nPUSH 2\nPUSH 1\nPUSH 2\nEQN"), vmerrors.ErrStackUnderflow)
}

func TestEQS(t *testing.T) {
	// {[1 2], [3]} == {[3], [1 2], [3]}
	src := `
PUSH 1
PUSH 2
PUSH 2
PUSH 3
PUSH 1
PUSH 5
PUSH 3
PUSH 1
PUSH 1
PUSH 2
PUSH 2
PUSH 3
PUSH 1
PUSH 7
EQS`
	requireHalt(t, runAsm(t, nil, src), 1)

	// {[1]} != {[2]}
	requireHalt(t, runAsm(t, nil, "PUSH 1\nPUSH 1\nPUSH 2\nPUSH 2\nPUSH 1\nPUSH 2\nEQS"), 0)
	// both empty
	requireHalt(t, runAsm(t, nil, "PUSH 0\nPUSH 0\nEQS"), 1)
	// element length runs past the region
	requirePanic(t, runAsm(t, nil, "PUSH 5\nPUSH 1\nPUSH 0\nEQS"), vmerrors.ErrMalformedSet)
}

func TestArithmetic(t *testing.T) {
	requireHalt(t, runAsm(t, nil, "PUSH 2\nPUSH 3\nADD"), 5)
	requireHalt(t, runAsm(t, nil, "PUSH 7\nPUSH 3\nSUB"), 4)
	requireHalt(t, runAsm(t, nil, "PUSH 6\nPUSH 7\nMUL"), 42)
	requireHalt(t, runAsm(t, nil, "PUSH 7\nPUSH 2\nDIV"), 3)
	requireHalt(t, runAsm(t, nil, "PUSH 7\nPUSH 2\nMOD"), 1)

	requirePanic(t, runAsm(t, nil, "PUSH -1\nPUSH 1\nADD"), vmerrors.ErrOverflow)
	requirePanic(t, runAsm(t, nil, "PUSH 1\nPUSH 2\nSUB"), vmerrors.ErrOverflow)
	requirePanic(t, runAsm(t, nil, "PUSH 0x100000000\nPUSH 0x100000000\nMUL"), vmerrors.ErrOverflow)
}

func TestDivisionByZero(t *testing.T) {
	for _, op := range []string{"DIV", "MOD"} {
		r := runAsm(t, nil, "PUSH 7\nPUSH 0\n"+op)
		requirePanic(t, r, vmerrors.ErrDivisionByZero)
		assert.Empty(t, r.Stack)
	}
}

// Every opcode that consumes words fails on an empty stack.
func TestStackUnderflow(t *testing.T) {
	ops := []program.Op{
		program.POP, program.DUP, program.DUPI, program.SWAP, program.SWAPI, program.SEL, program.SELN,
		program.REP,
		program.EQ, program.EQN, program.GT, program.LT, program.GTE, program.LTE, program.AND, program.OR,
		program.NOT, program.EQS,
		program.ADD, program.SUB, program.MUL, program.DIV, program.MOD,
		program.PREDICATE_AT, program.PUB_VAR_KEYS, program.DECISION_VAR, program.DECISION_VAR_LEN,
		program.STATE, program.STATE_LEN, program.PUB_VAR, program.PUB_VAR_LEN, program.NUM_SLOTS,
		program.SHA256, program.VERIFY_ED25519, program.RECOVER_SECP256K1,
		program.HALTI, program.JMPI, program.PANICI,
		program.MGROW, program.MLOAD, program.MSTORE,
		program.ALLOC_SLOTS, program.LOAD_SLOT, program.STORE_SLOT, program.LOAD_SLOT_WORD,
		program.STORE_SLOT_WORD, program.CLEAR_SLOT, program.CLEAR_SLOTS, program.SLOTS_VALUE_LEN,
		program.SLOAD, program.KEY_RANGE_EXTERN,
	}
	for _, op := range ops {
		t.Run(op.String(), func(t *testing.T) {
			r := Execute(program.FromInstructions(program.Inst(op)), nil, DefaultConfig())
			requirePanic(t, r, vmerrors.ErrStackUnderflow)
			assert.Equal(t, 0, r.PC)
		})
	}
}

func TestStackOverflow(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxStackWords = 2
	r := Execute(assemble(t, "PUSH 1\nPUSH 2\nPUSH 3"), nil, cfg)
	requirePanic(t, r, vmerrors.ErrStackOverflow)
	assert.Equal(t, 2, r.PC)
}

func TestStepLimit(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxSteps = 100
	// pc 1..3 loops forever
	r := Execute(assemble(t, "PUSH 1\nPUSH -2\nPUSH 1\nJMPI"), nil, cfg)
	requirePanic(t, r, vmerrors.ErrStepLimit)
	assert.Equal(t, uint64(100), r.Steps)
}

func TestJMPI(t *testing.T) {
	requireHalt(t, runAsm(t, nil, "PUSH 2\nPUSH 1\nJMPI\nPUSH 99\nPUSH 7"), 7)
	requireHalt(t, runAsm(t, nil, "PUSH 2\nPUSH 0\nJMPI\nPUSH 99\nPUSH 7"), 99, 7)
	// jumping to one past the end halts
	requireHalt(t, runAsm(t, nil, "PUSH 2\nPUSH 1\nJMPI\nPUSH 99"))

	requirePanic(t, runAsm(t, nil, "PUSH 0\nPUSH 1\nJMPI"), vmerrors.ErrJumpedToSelf)
	requirePanic(t, runAsm(t, nil, "PUSH 3\nPUSH 1\nJMPI\nPUSH 99"), vmerrors.ErrJumpOutOfBounds)
	requirePanic(t, runAsm(t, nil, "PUSH -3\nPUSH 1\nJMPI"), vmerrors.ErrJumpOutOfBounds)
}

func TestRepeatBound(t *testing.T) {
	for _, n := range []common.Word{0, 1, 5} {
		t.Run(fmt.Sprint(n), func(t *testing.T) {
			src := fmt.Sprintf("PUSH 0\nPUSH %d\nPUSH 1\nREP\nPUSH 1\nADD\nREND\nPUSH 42", n)
			vm := NewVM(assemble(t, src), nil, DefaultConfig())
			r := vm.Run()
			requireHalt(t, r, n, 42)
			assert.Equal(t, 0, vm.Repeat.Len())
		})
	}
}

func TestRepeatCounter(t *testing.T) {
	requireHalt(t, runAsm(t, nil, "PUSH 3\nPUSH 1\nREP\nREPEAT_COUNTER\nREND"), 0, 1, 2)
	requireHalt(t, runAsm(t, nil, "PUSH 3\nPUSH 0\nREP\nREPEAT_COUNTER\nREND"), 2, 1, 0)

	// inner counter shadows the outer one
	src := `
PUSH 2
PUSH 1
REP
PUSH 2
PUSH 1
REP
REPEAT_COUNTER
REND
REPEAT_COUNTER
REND`
	requireHalt(t, runAsm(t, nil, src), 0, 1, 0, 0, 1, 1)

	requirePanic(t, runAsm(t, nil, "REPEAT_COUNTER"), vmerrors.ErrNoRepeatFrame)
	requirePanic(t, runAsm(t, nil, "REND"), vmerrors.ErrNoRepeatFrame)
	requirePanic(t, runAsm(t, nil, "PUSH 0\nPUSH 1\nREP\nPUSH 1"), vmerrors.ErrUnmatchedRepeat)
}

func TestMemory(t *testing.T) {
	requireHalt(t, runAsm(t, nil, "PUSH 2\nMGROW\nPUSH 1\nMLOAD"), 0)
	requireHalt(t, runAsm(t, nil, "PUSH 2\nMGROW\nPUSH 1\nPUSH 9\nMSTORE\nPUSH 1\nMLOAD"), 9)
	requirePanic(t, runAsm(t, nil, "PUSH 2\nMGROW\nPUSH 2\nMLOAD"), vmerrors.ErrMemoryOutOfBounds)
	requirePanic(t, runAsm(t, nil, "PUSH 0\nPUSH 1\nMSTORE"), vmerrors.ErrMemoryOutOfBounds)

	cfg := DefaultConfig()
	cfg.MaxMemoryWords = 4
	requirePanic(t, Execute(assemble(t, "PUSH 5\nMGROW"), nil, cfg), vmerrors.ErrMemoryOverflow)
}

func TestZeroLimitsStillBound(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxMemoryWords = 0
	cfg.MaxSlots = 0

	var r *Result
	require.NotPanics(t, func() {
		r = Execute(assemble(t, "PUSH 0x4000000000000000\nALLOC_SLOTS"), nil, cfg)
	})
	requirePanic(t, r, vmerrors.ErrSlotsOverflow)

	require.NotPanics(t, func() {
		r = Execute(assemble(t, "PUSH 0x4000000000000000\nMGROW"), nil, cfg)
	})
	requirePanic(t, r, vmerrors.ErrMemoryOverflow)

	r = Execute(assemble(t, fmt.Sprintf("PUSH %d\nMGROW", UnboundedMemoryWords+1)), nil, cfg)
	requirePanic(t, r, vmerrors.ErrMemoryOverflow)

	requireHalt(t, Execute(assemble(t, "PUSH 8\nALLOC_SLOTS\nSLOTS_LEN"), nil, cfg), 8)
}

func TestDeterminism(t *testing.T) {
	var sb strings.Builder
	for i := 0; i < 4; i++ {
		sb.WriteString("PUSH 0\n")
	}
	sb.WriteString("PUSH 4\nSHA256\nPUSH 2\nMGROW\nPUSH 0\nPUSH 3\nPUSH 1\nREP\nREPEAT_COUNTER\nADD\nREND\n")
	p := assemble(t, sb.String())
	first := Execute(p, nil, DefaultConfig())
	for i := 0; i < 3; i++ {
		again := Execute(p, nil, DefaultConfig())
		require.Equal(t, first, again)
	}
	requireHalt(t, first, append(digestWords(), 3)...)
}

func TestReasonCarriesPosition(t *testing.T) {
	r := runAsm(t, nil, "PUSH 1\nPUSH 0\nDIV")
	require.True(t, errors.Is(r.Reason, vmerrors.ErrDivisionByZero))
	assert.Contains(t, r.Reason.Error(), "pc 2 DIV")
	assert.Equal(t, "A2", vmerrors.GetErrorCode(r.Reason))
}
