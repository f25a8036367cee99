package lint

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics records per-linter activity.
type Metrics struct {
	Runs     *prometheus.CounterVec
	Failures *prometheus.CounterVec
	Duration *prometheus.HistogramVec
}

// NewMetrics creates lint metrics and registers them with reg. A nil reg
// leaves them unregistered.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Runs: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Help:      "Total linter invocations",
				Namespace: "kubetools",
				Subsystem: "lint",
				Name:      "runs_total",
			},
			[]string{"linter", "operation"},
		),
		Failures: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Help:      "Total linter invocations that returned an error or panicked",
				Namespace: "kubetools",
				Subsystem: "lint",
				Name:      "failures_total",
			},
			[]string{"linter", "operation"},
		),
		Duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Help:      "Linter invocation duration distributions",
				Namespace: "kubetools",
				Subsystem: "lint",
				Name:      "duration_seconds",
				Buckets:   []float64{.001, .01, .1, 1, 10},
			},
			[]string{"linter", "operation"},
		),
	}
	if reg != nil {
		reg.MustRegister(m.Runs, m.Failures, m.Duration)
	}
	return m
}
