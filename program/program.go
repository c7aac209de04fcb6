package program

import (
	"encoding/binary"
	"fmt"

	"github.com/jam-duna/fraudproof/common"
	"github.com/jam-duna/fraudproof/log"
	"github.com/jam-duna/fraudproof/vmerrors"
)

// Instruction is one decoded instruction. Imm is only meaningful for PUSH.
type Instruction struct {
	Op  Op
	Imm common.Word
}

func (in Instruction) String() string {
	if in.Op.OperandSize() > 0 {
		return fmt.Sprintf("%s 0x%016x", in.Op, in.Imm)
	}
	return in.Op.String()
}

// Push builds a PUSH instruction.
func Push(w common.Word) Instruction {
	return Instruction{Op: PUSH, Imm: w}
}

// Inst builds an instruction without an operand.
func Inst(op Op) Instruction {
	return Instruction{Op: op}
}

// Program is a mapped bytecode program. Instructions are addressed by index;
// Offsets[i] is the byte offset instruction i was decoded from.
type Program struct {
	Instructions []Instruction
	Offsets      []int
	CodeSize     int
}

// Len is the number of instructions.
func (p *Program) Len() int {
	return len(p.Instructions)
}

// At returns instruction i; ok is false past the end.
func (p *Program) At(i int) (Instruction, bool) {
	if i < 0 || i >= len(p.Instructions) {
		return Instruction{}, false
	}
	return p.Instructions[i], true
}

// Map decodes raw bytecode into a Program. Any unknown opcode or truncated
// operand rejects the whole program.
func Map(code []byte) (*Program, error) {
	p := &Program{
		Instructions: make([]Instruction, 0, len(code)),
		Offsets:      make([]int, 0, len(code)),
		CodeSize:     len(code),
	}
	for pc := 0; pc < len(code); {
		op := Op(code[pc])
		if !op.Valid() {
			log.Debug(log.MapperMonitoring, "unknown opcode", "offset", pc, "byte", fmt.Sprintf("0x%02x", code[pc]))
			return nil, fmt.Errorf("%w: offset %d: byte 0x%02x: %w", vmerrors.ErrMalformedBytecode, pc, code[pc], vmerrors.ErrUnknownOpcode)
		}
		olen := op.OperandSize()
		if pc+1+olen > len(code) {
			log.Debug(log.MapperMonitoring, "truncated operand", "offset", pc, "op", op.String(), "want", olen, "have", len(code)-pc-1)
			return nil, fmt.Errorf("%w: offset %d: %s needs %d operand bytes, %d left: %w", vmerrors.ErrMalformedBytecode, pc, op, olen, len(code)-pc-1, vmerrors.ErrTruncatedOperand)
		}
		in := Instruction{Op: op}
		if olen == common.WordSize {
			in.Imm = binary.BigEndian.Uint64(code[pc+1 : pc+1+olen])
		}
		p.Instructions = append(p.Instructions, in)
		p.Offsets = append(p.Offsets, pc)
		pc += 1 + olen
	}
	log.Debug(log.MapperMonitoring, "mapped bytecode", "bytes", len(code), "instructions", len(p.Instructions))
	return p, nil
}

// MustMap is Map for bytecode known to be valid, such as fixtures.
func MustMap(code []byte) *Program {
	p, err := Map(code)
	if err != nil {
		panic(err)
	}
	return p
}

// Encode serializes instructions back to bytecode.
func Encode(instructions []Instruction) []byte {
	out := make([]byte, 0, len(instructions)*2)
	for _, in := range instructions {
		out = append(out, byte(in.Op))
		if in.Op.OperandSize() == common.WordSize {
			b := common.WordToBytes(in.Imm)
			out = append(out, b[:]...)
		}
	}
	return out
}

// Bytecode re-encodes the mapped program.
func (p *Program) Bytecode() []byte {
	return Encode(p.Instructions)
}

// FromInstructions builds a Program directly, as if the encoded instructions
// had been mapped.
func FromInstructions(instructions ...Instruction) *Program {
	return MustMap(Encode(instructions))
}
