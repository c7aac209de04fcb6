package program

// Constraint VM Instructions - Unified Definition
// All other packages should import and use these constants instead of defining their own.

// Op is a one byte opcode.
type Op byte

// Stack manipulation.
const (
	PUSH  Op = 0x01 // push the operand word
	POP   Op = 0x02
	DUP   Op = 0x03
	DUPI  Op = 0x04 // duplicate the word at a stack depth
	SWAP  Op = 0x05
	SWAPI Op = 0x06 // swap the top word with the word at a stack depth
	SEL   Op = 0x07 // keep one of the top two words
	SELN  Op = 0x08 // keep one of the top two ranges
)

// Repeat.
const (
	REP  Op = 0x09
	REND Op = 0x0A
)

// Predicates.
const (
	EQ  Op = 0x10
	EQN Op = 0x11 // two ranges equal
	GT  Op = 0x12
	LT  Op = 0x13
	GTE Op = 0x14
	LTE Op = 0x15
	AND Op = 0x16
	OR  Op = 0x17
	NOT Op = 0x18
	EQS Op = 0x19 // two sets equal
)

// Arithmetic.
const (
	ADD Op = 0x20
	SUB Op = 0x21
	MUL Op = 0x22
	DIV Op = 0x23
	MOD Op = 0x24
)

// Access.
const (
	PREDICATE        Op = 0x30 // content hash of this predicate
	CONTRACT         Op = 0x31 // content hash of this predicate's contract
	SOLUTION         Op = 0x32 // pathway of this predicate
	PREDICATE_AT     Op = 0x33
	MUT_KEYS         Op = 0x34
	PUB_VAR_KEYS     Op = 0x35
	REPEAT_COUNTER   Op = 0x36
	DECISION_VAR     Op = 0x37
	DECISION_VAR_LEN Op = 0x38
	STATE            Op = 0x39
	STATE_LEN        Op = 0x3A
	PUB_VAR          Op = 0x3B
	PUB_VAR_LEN      Op = 0x3C
	NUM_SLOTS        Op = 0x3D
)

// Cryptography.
const (
	SHA256            Op = 0x50
	VERIFY_ED25519    Op = 0x51
	RECOVER_SECP256K1 Op = 0x52
)

// Control flow.
const (
	HALT   Op = 0x60
	HALTI  Op = 0x61
	JMPI   Op = 0x63
	PANICI Op = 0x64
)

// Scratch memory.
const (
	MGROW  Op = 0x70
	MLOAD  Op = 0x71
	MSTORE Op = 0x72
)

// State slots.
const (
	ALLOC_SLOTS     Op = 0x80
	LOAD_SLOT       Op = 0x81
	STORE_SLOT      Op = 0x82
	LOAD_SLOT_WORD  Op = 0x83
	STORE_SLOT_WORD Op = 0x84
	CLEAR_SLOT      Op = 0x85
	CLEAR_SLOTS     Op = 0x86
	SLOTS_LEN       Op = 0x87
	SLOTS_VALUE_LEN Op = 0x88
)

// Key ranges.
const (
	SLOAD            Op = 0x90
	KEY_RANGE_EXTERN Op = 0x91
)

// Class groups opcodes the way the instruction set is documented.
type Class uint8

const (
	ClassStack Class = iota
	ClassPredicate
	ClassArithmetic
	ClassAccess
	ClassCrypto
	ClassControl
	ClassMemory
	ClassSlots
	ClassKeyRange
)

func (c Class) String() string {
	switch c {
	case ClassStack:
		return "stack"
	case ClassPredicate:
		return "predicate"
	case ClassArithmetic:
		return "arithmetic"
	case ClassAccess:
		return "access"
	case ClassCrypto:
		return "crypto"
	case ClassControl:
		return "control"
	case ClassMemory:
		return "memory"
	case ClassSlots:
		return "slots"
	case ClassKeyRange:
		return "keyrange"
	default:
		return "unknown"
	}
}

type opInfo struct {
	name        string
	operandSize int
	class       Class
}

var opcodeTable = map[Op]opInfo{
	PUSH:  {"PUSH", 8, ClassStack},
	POP:   {"POP", 0, ClassStack},
	DUP:   {"DUP", 0, ClassStack},
	DUPI:  {"DUPI", 0, ClassStack},
	SWAP:  {"SWAP", 0, ClassStack},
	SWAPI: {"SWAPI", 0, ClassStack},
	SEL:   {"SEL", 0, ClassStack},
	SELN:  {"SELN", 0, ClassStack},

	REP:  {"REP", 0, ClassControl},
	REND: {"REND", 0, ClassControl},

	EQ:  {"EQ", 0, ClassPredicate},
	EQN: {"EQN", 0, ClassPredicate},
	GT:  {"GT", 0, ClassPredicate},
	LT:  {"LT", 0, ClassPredicate},
	GTE: {"GTE", 0, ClassPredicate},
	LTE: {"LTE", 0, ClassPredicate},
	AND: {"AND", 0, ClassPredicate},
	OR:  {"OR", 0, ClassPredicate},
	NOT: {"NOT", 0, ClassPredicate},
	EQS: {"EQS", 0, ClassPredicate},

	ADD: {"ADD", 0, ClassArithmetic},
	SUB: {"SUB", 0, ClassArithmetic},
	MUL: {"MUL", 0, ClassArithmetic},
	DIV: {"DIV", 0, ClassArithmetic},
	MOD: {"MOD", 0, ClassArithmetic},

	PREDICATE:        {"PREDICATE", 0, ClassAccess},
	CONTRACT:         {"CONTRACT", 0, ClassAccess},
	SOLUTION:         {"SOLUTION", 0, ClassAccess},
	PREDICATE_AT:     {"PREDICATE_AT", 0, ClassAccess},
	MUT_KEYS:         {"MUT_KEYS", 0, ClassAccess},
	PUB_VAR_KEYS:     {"PUB_VAR_KEYS", 0, ClassAccess},
	REPEAT_COUNTER:   {"REPEAT_COUNTER", 0, ClassAccess},
	DECISION_VAR:     {"DECISION_VAR", 0, ClassAccess},
	DECISION_VAR_LEN: {"DECISION_VAR_LEN", 0, ClassAccess},
	STATE:            {"STATE", 0, ClassAccess},
	STATE_LEN:        {"STATE_LEN", 0, ClassAccess},
	PUB_VAR:          {"PUB_VAR", 0, ClassAccess},
	PUB_VAR_LEN:      {"PUB_VAR_LEN", 0, ClassAccess},
	NUM_SLOTS:        {"NUM_SLOTS", 0, ClassAccess},

	SHA256:            {"SHA256", 0, ClassCrypto},
	VERIFY_ED25519:    {"VERIFY_ED25519", 0, ClassCrypto},
	RECOVER_SECP256K1: {"RECOVER_SECP256K1", 0, ClassCrypto},

	HALT:   {"HALT", 0, ClassControl},
	HALTI:  {"HALTI", 0, ClassControl},
	JMPI:   {"JMPI", 0, ClassControl},
	PANICI: {"PANICI", 0, ClassControl},

	MGROW:  {"MGROW", 0, ClassMemory},
	MLOAD:  {"MLOAD", 0, ClassMemory},
	MSTORE: {"MSTORE", 0, ClassMemory},

	ALLOC_SLOTS:     {"ALLOC_SLOTS", 0, ClassSlots},
	LOAD_SLOT:       {"LOAD_SLOT", 0, ClassSlots},
	STORE_SLOT:      {"STORE_SLOT", 0, ClassSlots},
	LOAD_SLOT_WORD:  {"LOAD_SLOT_WORD", 0, ClassSlots},
	STORE_SLOT_WORD: {"STORE_SLOT_WORD", 0, ClassSlots},
	CLEAR_SLOT:      {"CLEAR_SLOT", 0, ClassSlots},
	CLEAR_SLOTS:     {"CLEAR_SLOTS", 0, ClassSlots},
	SLOTS_LEN:       {"SLOTS_LEN", 0, ClassSlots},
	SLOTS_VALUE_LEN: {"SLOTS_VALUE_LEN", 0, ClassSlots},

	SLOAD:            {"SLOAD", 0, ClassKeyRange},
	KEY_RANGE_EXTERN: {"KEY_RANGE_EXTERN", 0, ClassKeyRange},
}

var opcodeByName = func() map[string]Op {
	m := make(map[string]Op, len(opcodeTable))
	for op, info := range opcodeTable {
		m[info.name] = op
	}
	return m
}()

// Valid reports whether op is part of the instruction set.
func (op Op) Valid() bool {
	_, ok := opcodeTable[op]
	return ok
}

// String returns the string representation of an opcode
func (op Op) String() string {
	info, ok := opcodeTable[op]
	if !ok {
		return "UNKNOWN"
	}
	return info.name
}

// OperandSize is the number of operand bytes following the opcode.
func (op Op) OperandSize() int {
	return opcodeTable[op].operandSize
}

func (op Op) Class() Class {
	return opcodeTable[op].class
}

// OpcodeFromName looks an opcode up by its mnemonic.
func OpcodeFromName(name string) (Op, bool) {
	op, ok := opcodeByName[name]
	return op, ok
}

// IsArithmeticInstruction reports ALU opcodes.
func IsArithmeticInstruction(op Op) bool {
	return op.Class() == ClassArithmetic && op.Valid()
}

// IsControlInstruction reports opcodes that may move the program counter
// somewhere other than the next instruction.
func IsControlInstruction(op Op) bool {
	switch op {
	case HALT, HALTI, JMPI, PANICI, REP, REND:
		return true
	}
	return false
}
