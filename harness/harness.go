// Package harness drives one predicate evaluation end to end: map the
// bytecode, run the VM, extract the outcome and encode the public values.
package harness

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/jam-duna/fraudproof/access"
	"github.com/jam-duna/fraudproof/config"
	"github.com/jam-duna/fraudproof/interpreter"
	"github.com/jam-duna/fraudproof/log"
	"github.com/jam-duna/fraudproof/outcome"
	"github.com/jam-duna/fraudproof/program"
	"github.com/jam-duna/fraudproof/publicvalues"
	"github.com/jam-duna/fraudproof/vmerrors"
)

const tracerName = "ConstraintTracer"

type Option func(*Harness)

func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(h *Harness) { h.tracer = tp.Tracer(tracerName) }
}

// WithRegisterer registers the harness metrics on reg.
func WithRegisterer(reg prometheus.Registerer) Option {
	return func(h *Harness) { h.metrics = newMetrics(reg) }
}

func WithProver(p Prover) Option {
	return func(h *Harness) { h.prover = p }
}

func WithPolicy(p outcome.Policy) Option {
	return func(h *Harness) { h.policy = p }
}

type Harness struct {
	cfg     config.Config
	policy  outcome.Policy
	tracer  trace.Tracer
	metrics *metrics
	prover  Prover
}

// Report is everything one evaluation produced.
type Report struct {
	Result       *interpreter.Result
	Stats        *program.ProgramStats
	Outcome      uint8
	PublicValues publicvalues.PublicValues
	Encoded      []byte
	N            uint32
}

func New(cfg config.Config, opts ...Option) (*Harness, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	h := &Harness{
		cfg:    cfg,
		policy: cfg.Policy(),
		tracer: otel.GetTracerProvider().Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(h)
	}
	if h.metrics == nil {
		h.metrics = newMetrics(nil)
	}
	return h, nil
}

func (h *Harness) Policy() outcome.Policy {
	return h.policy
}

// Execute evaluates bytecode against acc. Malformed bytecode is returned as
// an error before any VM exists; every execution failure is a Report whose
// outcome is the policy's failure code.
func (h *Harness) Execute(ctx context.Context, bytecode []byte, acc *access.Access) (*Report, error) {
	if acc == nil {
		acc = EmptyAccess()
	}

	_, span := h.tracer.Start(ctx, "map-bytecode")
	prog, err := program.Map(bytecode)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, vmerrors.GetErrorCodeWithName(err))
		span.End()
		h.metrics.mapperFailures.Inc()
		log.Warn(log.HarnessMonitoring, "bytecode rejected", "bytes", len(bytecode), "err", err)
		return nil, err
	}
	span.SetAttributes(attribute.Int("instructions", prog.Len()), attribute.Int("bytes", prog.CodeSize))
	span.End()

	_, span = h.tracer.Start(ctx, "constraint-vm")
	result := interpreter.Execute(prog, acc, h.cfg.VM)
	span.SetAttributes(
		attribute.String("state", interpreter.StateName(result.State)),
		attribute.Int64("steps", int64(result.Steps)),
		attribute.Int64("n", int64(h.cfg.N)),
	)
	if result.Reason != nil {
		span.RecordError(result.Reason)
		span.SetStatus(codes.Error, vmerrors.GetErrorCodeWithName(result.Reason))
	}
	span.End()
	h.metrics.observe(result)

	code := h.policy.Extract(result)

	_, span = h.tracer.Start(ctx, "abi-encode")
	pv := publicvalues.PublicValues{FraudType: code}
	encoded, err := pv.Encode()
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		span.End()
		return nil, fmt.Errorf("encode public values: %w", err)
	}
	span.End()

	log.Debug(log.HarnessMonitoring, "predicate evaluated",
		"state", interpreter.StateName(result.State), "steps", result.Steps, "outcome", code, "policy", h.policy.Name())
	return &Report{
		Result:       result,
		Stats:        prog.Analyze(),
		Outcome:      code,
		PublicValues: pv,
		Encoded:      encoded,
		N:            h.cfg.N,
	}, nil
}

// Prove executes bytecode, then has the prover prove and verify the run.
func (h *Harness) Prove(ctx context.Context, bytecode []byte, acc *access.Access) (*Report, *Proof, error) {
	if h.prover == nil {
		return nil, nil, vmerrors.ErrNoProver
	}
	report, err := h.Execute(ctx, bytecode, acc)
	if err != nil {
		return nil, nil, err
	}
	if acc == nil {
		acc = EmptyAccess()
	}
	proof, err := h.prover.Prove(ctx, ProveRequest{
		Bytecode:     bytecode,
		Access:       acc,
		N:            h.cfg.N,
		PublicValues: report.Encoded,
	})
	if err != nil {
		return report, nil, fmt.Errorf("prove: %w", err)
	}
	if err := h.prover.Verify(ctx, proof); err != nil {
		return report, proof, fmt.Errorf("verify: %w", err)
	}
	log.Info(log.HarnessMonitoring, "proof verified", "outcome", report.Outcome)
	return report, proof, nil
}
