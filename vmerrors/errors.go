package vmerrors

import (
	"errors"
	"strings"
)

// Mapping (M) Errors
var (
	ErrMalformedBytecode = errors.New("M1|MalformedBytecode: Bytecode could not be mapped to an instruction stream.")
	ErrUnknownOpcode     = errors.New("M2|UnknownOpcode: Byte does not name a known instruction.")
	ErrTruncatedOperand  = errors.New("M3|TruncatedOperand: Instruction operand runs past the end of the bytecode.")
)

// Stack (S) Errors
var (
	ErrStackUnderflow  = errors.New("S1|StackUnderflow: Instruction needs more words than the stack holds.")
	ErrStackOverflow   = errors.New("S2|StackOverflow: Stack would exceed its word limit.")
	ErrIndexOutOfRange = errors.New("S3|IndexOutOfRange: Stack index does not address a word on the stack.")
	ErrMalformedSet    = errors.New("S4|MalformedSet: Set region is not a sequence of length-suffixed elements.")
)

// Arithmetic (A) Errors
var (
	ErrOverflow       = errors.New("A1|Overflow: Arithmetic result does not fit in a word.")
	ErrDivisionByZero = errors.New("A2|DivisionByZero: Division or modulus by zero.")
)

// Access (X) Errors
var (
	ErrPathwayOutOfBounds     = errors.New("X1|PathwayOutOfBounds: Pathway index does not address a solution data record.")
	ErrDecisionVarOutOfBounds = errors.New("X2|DecisionVarOutOfBounds: Decision variable slot does not exist.")
	ErrValueRangeOutOfBounds  = errors.New("X3|ValueRangeOutOfBounds: Requested range runs past the end of the value.")
	ErrStateSlotOutOfBounds   = errors.New("X4|StateSlotOutOfBounds: State slot does not exist in the snapshot.")
	ErrInvalidStateDelta      = errors.New("X5|InvalidStateDelta: State delta must be 0 (pre) or 1 (post).")
	ErrInvalidSlotKind        = errors.New("X6|InvalidSlotKind: Slot kind must be 0, 1 or 2.")
	ErrKeyRangeOverflow       = errors.New("X7|KeyRangeOverflow: Key range steps past the largest key.")
	ErrStateRead              = errors.New("X8|StateRead: State reader failed to serve a key range.")
	ErrNoRepeatFrame          = errors.New("X9|NoRepeatFrame: No active repeat counter.")
)

// Execution (E) Errors
var (
	ErrExplicitPanic      = errors.New("E1|ExplicitPanic: PANICI fired on a true condition.")
	ErrMemoryOutOfBounds  = errors.New("E2|MemoryOutOfBounds: Scratch memory index out of range.")
	ErrMemoryOverflow     = errors.New("E3|MemoryOverflow: Scratch memory would exceed its word limit.")
	ErrSlotOutOfBounds    = errors.New("E4|SlotOutOfBounds: State slot index out of range.")
	ErrSlotsOverflow      = errors.New("E5|SlotsOverflow: State slot store would exceed its slot limit.")
	ErrKeyNotMutable      = errors.New("E6|KeyNotMutable: Slot is backed by a key outside the mutable key set.")
	ErrJumpedToSelf       = errors.New("E7|JumpedToSelf: Jump distance of zero.")
	ErrJumpOutOfBounds    = errors.New("E8|JumpOutOfBounds: Jump target is outside the program.")
	ErrUnmatchedRepeat    = errors.New("E9|UnmatchedRepeat: REP has no matching REND.")
	ErrStepLimit          = errors.New("E10|StepLimit: Execution exceeded its step limit.")
	ErrInvalidInstruction = errors.New("E11|InvalidInstruction: Instruction has no handler.")
)

// Harness (H) Errors
var (
	ErrNoProver          = errors.New("H1|NoProver: Prove mode requires a configured prover.")
	ErrPredicateNotFound = errors.New("H2|PredicateNotFound: No predicate stored at the content address.")
	ErrInvalidConfig     = errors.New("H3|InvalidConfig: Configuration value out of range.")
)

var all = []error{
	ErrMalformedBytecode, ErrUnknownOpcode, ErrTruncatedOperand,
	ErrStackUnderflow, ErrStackOverflow, ErrIndexOutOfRange, ErrMalformedSet,
	ErrOverflow, ErrDivisionByZero,
	ErrPathwayOutOfBounds, ErrDecisionVarOutOfBounds, ErrValueRangeOutOfBounds, ErrStateSlotOutOfBounds,
	ErrInvalidStateDelta, ErrInvalidSlotKind, ErrKeyRangeOverflow, ErrStateRead, ErrNoRepeatFrame,
	ErrExplicitPanic, ErrMemoryOutOfBounds, ErrMemoryOverflow, ErrSlotOutOfBounds, ErrSlotsOverflow,
	ErrKeyNotMutable, ErrJumpedToSelf, ErrJumpOutOfBounds, ErrUnmatchedRepeat, ErrStepLimit,
	ErrInvalidInstruction,
	ErrNoProver, ErrPredicateNotFound, ErrInvalidConfig,
}

// Sentinel returns the first sentinel error in err's chain. Wrapping puts the
// context in front of the code, so the chain is searched instead of the text.
func Sentinel(err error) error {
	if err == nil {
		return nil
	}
	for _, s := range all {
		if errors.Is(err, s) {
			return s
		}
	}
	return nil
}

// GetErrorName extracts the error name from the error message.
func GetErrorName(err error) string {
	if err == nil {
		return "No Error"
	}
	if s := Sentinel(err); s != nil {
		err = s
	}
	errStr := err.Error()
	if !strings.Contains(errStr, "|") || !strings.Contains(errStr, ":") {
		return errStr
	}
	parts := strings.SplitN(errStr, "|", 2)
	nameParts := strings.SplitN(parts[1], ":", 2)
	return strings.TrimSpace(nameParts[0])
}

// GetErrorCode extracts the error code from the error message.
func GetErrorCode(err error) string {
	if err == nil {
		return ""
	}
	if s := Sentinel(err); s != nil {
		err = s
	}
	errStr := err.Error()
	if !strings.Contains(errStr, "|") {
		return ""
	}
	parts := strings.SplitN(errStr, "|", 2)
	return strings.TrimSpace(parts[0])
}

// GetErrorCodeWithName returns the error code and name in the format "Code_ErrorName".
func GetErrorCodeWithName(err error) string {
	code := GetErrorCode(err)
	name := GetErrorName(err)
	if code == "" || name == "" {
		return ""
	}
	return code + "_" + name
}
