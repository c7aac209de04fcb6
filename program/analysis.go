package program

// ProgramStats contains statistics about a mapped constraint program
type ProgramStats struct {
	InstructionCount   int        // Total number of instructions
	CodeSize           int        // Bytecode length in bytes
	MaxRepeatDepth     int        // Deepest REP nesting
	OpcodeDistribution map[Op]int // Distribution of opcodes
	ClassDistribution  map[Class]int
}

// Analyze analyzes the program and returns statistics including
// instruction count and repeat nesting
func (p *Program) Analyze() *ProgramStats {
	stats := &ProgramStats{
		InstructionCount:   len(p.Instructions),
		CodeSize:           p.CodeSize,
		OpcodeDistribution: make(map[Op]int),
		ClassDistribution:  make(map[Class]int),
	}
	depth := 0
	for _, in := range p.Instructions {
		stats.OpcodeDistribution[in.Op]++
		stats.ClassDistribution[in.Op.Class()]++
		switch in.Op {
		case REP:
			depth++
			if depth > stats.MaxRepeatDepth {
				stats.MaxRepeatDepth = depth
			}
		case REND:
			if depth > 0 {
				depth--
			}
		}
	}
	return stats
}

// MatchingRepeatEnd returns the index of the REND closing the REP at start,
// honouring nesting. ok is false when the loop is never closed.
func (p *Program) MatchingRepeatEnd(start int) (int, bool) {
	depth := 0
	for i := start + 1; i < len(p.Instructions); i++ {
		switch p.Instructions[i].Op {
		case REP:
			depth++
		case REND:
			if depth == 0 {
				return i, true
			}
			depth--
		}
	}
	return 0, false
}
