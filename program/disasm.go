package program

import (
	"fmt"
	"strings"

	"github.com/xlab/treeprint"
)

// Disassemble renders one instruction per line with its index and byte offset.
func (p *Program) Disassemble() string {
	var sb strings.Builder
	for i, in := range p.Instructions {
		fmt.Fprintf(&sb, "%4d  [%04x]  %s\n", i, p.Offsets[i], in)
	}
	return sb.String()
}

// Tree renders the program with each REP ... REND body nested under its REP.
func (p *Program) Tree() string {
	root := treeprint.NewWithRoot(fmt.Sprintf("program (%d instructions, %d bytes)", len(p.Instructions), p.CodeSize))
	stack := []treeprint.Tree{root}
	for i, in := range p.Instructions {
		top := stack[len(stack)-1]
		label := fmt.Sprintf("%d: %s", i, in)
		switch in.Op {
		case REP:
			stack = append(stack, top.AddBranch(label))
		case REND:
			top.AddNode(label)
			if len(stack) > 1 {
				stack = stack[:len(stack)-1]
			}
		default:
			top.AddNode(label)
		}
	}
	return root.String()
}
