package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/jam-duna/fraudproof/program"
)

func newDisasmCmd(g *globalFlags) *cobra.Command {
	var in inputFlags
	cmd := &cobra.Command{
		Use:   "disasm",
		Short: "Print a listing, loop tree and statistics of a predicate",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := g.load(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			code, err := in.bytecode(cfg)
			if err != nil {
				return err
			}
			prog, err := program.Map(code)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprint(out, prog.Disassemble())
			fmt.Fprintln(out)
			fmt.Fprint(out, prog.Tree())

			stats := prog.Analyze()
			fmt.Fprintf(out, "\ninstructions: %d  bytes: %d  max repeat depth: %d\n",
				stats.InstructionCount, stats.CodeSize, stats.MaxRepeatDepth)
			ops := make([]program.Op, 0, len(stats.OpcodeDistribution))
			for op := range stats.OpcodeDistribution {
				ops = append(ops, op)
			}
			sort.Slice(ops, func(i, j int) bool { return ops[i] < ops[j] })
			for _, op := range ops {
				fmt.Fprintf(out, "  %-18s %d\n", op, stats.OpcodeDistribution[op])
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&in.bytecodePath, "bytecode", "", "Hex encoded bytecode file")
	cmd.Flags().StringVar(&in.asmPath, "asm", "", "Assembly source file")
	cmd.Flags().StringVar(&in.predicate, "predicate", "", "Content address of a stored predicate")
	return cmd
}
