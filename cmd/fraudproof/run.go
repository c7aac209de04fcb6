package main

import (
	"errors"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"github.com/spf13/cobra"

	"github.com/jam-duna/fraudproof/harness"
	"github.com/jam-duna/fraudproof/interpreter"
	log "github.com/jam-duna/fraudproof/log"
)

var errModeRequired = errors.New("You must specify either --execute or --prove")

func newRunCmd(g *globalFlags) *cobra.Command {
	var (
		execute     bool
		prove       bool
		n           uint32
		showMetrics bool
		in          inputFlags
	)
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Execute or prove a predicate",
		RunE: func(cmd *cobra.Command, args []string) error {
			if execute == prove {
				return errModeRequired
			}
			cfg, err := g.load(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("n") {
				cfg.N = n
			}

			ctx := cmd.Context()
			tp, shutdown, err := setupTracing(ctx, cfg.Tracing)
			if err != nil {
				return err
			}
			defer func() {
				if err := shutdown(ctx); err != nil {
					log.Warn(log.HarnessMonitoring, "tracer shutdown", "err", err)
				}
			}()

			code, err := in.bytecode(cfg)
			if err != nil {
				return err
			}
			acc, err := in.access(cfg)
			if err != nil {
				return err
			}

			reg := prometheus.NewRegistry()
			h, err := harness.New(cfg,
				harness.WithTracerProvider(tp),
				harness.WithRegisterer(reg),
				harness.WithProver(harness.NewReplayProver(cfg)),
			)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if execute {
				report, err := h.Execute(ctx, code, acc)
				if err != nil {
					return err
				}
				fmt.Fprintln(out, "Program executed successfully.")
				fmt.Fprintf(out, "Number of steps: %d\n", report.Result.Steps)
				if report.Result.Panicked() {
					fmt.Fprintf(out, "VM state: %s (%v)\n", interpreter.StateName(report.Result.State), report.Result.Reason)
				}
				fmt.Fprintln(out)
				pv := report.PublicValues
				fmt.Fprintf(out, "block_hash: %s\n", pv.BlockHash.Hex())
				fmt.Fprintf(out, "solution: 0x%x\n", pv.Solution)
				fmt.Fprintf(out, "constraint: 0x%x\n", pv.Constraint)
				fmt.Fprintf(out, "fraud_type: %d\n", pv.FraudType)
			} else {
				_, _, err := h.Prove(ctx, code, acc)
				if err != nil {
					return err
				}
				fmt.Fprintln(out, "Successfully generated proof!")
				fmt.Fprintln(out, "Successfully verified proof!")
			}

			if showMetrics {
				families, err := reg.Gather()
				if err != nil {
					return err
				}
				for _, mf := range families {
					if _, err := expfmt.MetricFamilyToText(out, mf); err != nil {
						return err
					}
				}
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&execute, "execute", false, "Execute the predicate and print the public values")
	cmd.Flags().BoolVar(&prove, "prove", false, "Execute, prove and verify the predicate")
	cmd.Flags().Uint32Var(&n, "n", 20, "Numeric input passed to the prover")
	cmd.Flags().BoolVar(&showMetrics, "metrics", false, "Print run metrics in Prometheus text format")
	addInputFlags(cmd, &in)
	return cmd
}

func addInputFlags(cmd *cobra.Command, in *inputFlags) {
	cmd.Flags().StringVar(&in.bytecodePath, "bytecode", "", "Hex encoded bytecode file")
	cmd.Flags().StringVar(&in.asmPath, "asm", "", "Assembly source file")
	cmd.Flags().StringVar(&in.predicate, "predicate", "", "Content address of a stored predicate")
	cmd.Flags().StringVar(&in.snapshotPath, "snapshot", "", "JSON solution and state snapshot")
}
