package interpreter

import (
	"github.com/jam-duna/fraudproof/access"
	"github.com/jam-duna/fraudproof/common"
)

// Machine states.
const (
	RUNNING = -1
	HALT    = 0 // regular halt, or ran past the last instruction
	PANIC   = 1 // any failure
)

func StateName(s int) string {
	switch s {
	case RUNNING:
		return "RUNNING"
	case HALT:
		return "HALT"
	case PANIC:
		return "PANIC"
	default:
		return "UNKNOWN"
	}
}

// Result is the terminal state of one run.
type Result struct {
	State     int
	Reason    error
	Stack     []common.Word
	Steps     uint64
	PC        int
	Mutations []access.Mutation
}

func (r *Result) Halted() bool {
	return r != nil && r.State == HALT
}

func (r *Result) Panicked() bool {
	return r == nil || r.State == PANIC
}

// Top returns the top stack word; ok is false for an empty stack.
func (r *Result) Top() (common.Word, bool) {
	if r == nil || len(r.Stack) == 0 {
		return 0, false
	}
	return r.Stack[len(r.Stack)-1], true
}

// Ceilings applied when the configured limit is zero.
const (
	UnboundedMemoryWords = 1 << 24
	UnboundedSlots       = 1 << 20
)

// Config bounds the resources one run may use. A zero stack or step limit
// is unlimited; zero memory and slot limits fall back to the Unbounded
// ceilings.
type Config struct {
	MaxStackWords  int    `json:"max_stack_words"`
	MaxMemoryWords int    `json:"max_memory_words"`
	MaxSlots       int    `json:"max_slots"`
	MaxSteps       uint64 `json:"max_steps"`
}

func DefaultConfig() Config {
	return Config{
		MaxStackWords:  32768,
		MaxMemoryWords: 65536,
		MaxSlots:       65536,
		MaxSteps:       1 << 24,
	}
}

func effectiveLimit(limit, ceiling int) int {
	if limit <= 0 {
		return ceiling
	}
	return limit
}
