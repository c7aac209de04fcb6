package program

import (
	"bufio"
	"fmt"
	"strconv"
	"strings"

	"github.com/jam-duna/fraudproof/common"
)

// Assemble parses a textual listing: one mnemonic per line, PUSH followed by
// a decimal or 0x-prefixed word. Text after '#' or ';' is a comment.
func Assemble(src string) ([]byte, error) {
	var out []Instruction
	sc := bufio.NewScanner(strings.NewReader(src))
	line := 0
	for sc.Scan() {
		line++
		text := sc.Text()
		if i := strings.IndexAny(text, "#;"); i >= 0 {
			text = text[:i]
		}
		fields := strings.Fields(text)
		if len(fields) == 0 {
			continue
		}
		op, ok := OpcodeFromName(strings.ToUpper(fields[0]))
		if !ok {
			return nil, fmt.Errorf("line %d: unknown mnemonic %q", line, fields[0])
		}
		in := Instruction{Op: op}
		switch {
		case op.OperandSize() > 0 && len(fields) != 2:
			return nil, fmt.Errorf("line %d: %s takes one operand", line, op)
		case op.OperandSize() == 0 && len(fields) != 1:
			return nil, fmt.Errorf("line %d: %s takes no operand", line, op)
		case op.OperandSize() > 0:
			w, err := parseWord(fields[1])
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", line, err)
			}
			in.Imm = w
		}
		out = append(out, in)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return Encode(out), nil
}

func parseWord(s string) (common.Word, error) {
	if strings.HasPrefix(s, "-") {
		v, err := strconv.ParseInt(s, 0, 64)
		if err != nil {
			return 0, fmt.Errorf("bad operand %q: %w", s, err)
		}
		return common.Word(v), nil
	}
	v, err := strconv.ParseUint(s, 0, 64)
	if err != nil {
		return 0, fmt.Errorf("bad operand %q: %w", s, err)
	}
	return v, nil
}
