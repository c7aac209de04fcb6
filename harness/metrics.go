package harness

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/jam-duna/fraudproof/interpreter"
)

type metrics struct {
	runs           *prometheus.CounterVec
	steps          prometheus.Histogram
	mapperFailures prometheus.Counter
}

func newMetrics(reg prometheus.Registerer) *metrics {
	m := &metrics{
		runs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "fraudproof_vm_runs_total",
			Help: "Constraint VM runs by terminal state.",
		}, []string{"state"}),
		steps: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "fraudproof_vm_steps",
			Help:    "Instructions executed per run.",
			Buckets: prometheus.ExponentialBuckets(8, 4, 10),
		}),
		mapperFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "fraudproof_mapper_failures_total",
			Help: "Bytecode rejected before execution.",
		}),
	}
	if reg == nil {
		return m
	}
	m.runs = register(reg, m.runs)
	m.steps = register(reg, m.steps)
	m.mapperFailures = register(reg, m.mapperFailures)
	return m
}

// register reuses a collector already registered under the same name.
func register[T prometheus.Collector](reg prometheus.Registerer, c T) T {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(T); ok {
				return existing
			}
		}
	}
	return c
}

func (m *metrics) observe(r *interpreter.Result) {
	m.runs.WithLabelValues(interpreter.StateName(r.State)).Inc()
	m.steps.Observe(float64(r.Steps))
}
