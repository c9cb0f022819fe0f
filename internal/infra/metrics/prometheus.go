// Package metrics exports credential operation outcomes to Prometheus.
package metrics

import (
	"net/http"

	"warden/internal/domain/service"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder counts credential operations by operation and outcome.
type Recorder struct {
	registry   *prometheus.Registry
	operations *prometheus.CounterVec
}

// NewRecorder builds a recorder on its own registry, with Go runtime and process collectors.
func NewRecorder() *Recorder {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	operations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "warden",
		Subsystem: "credential",
		Name:      "operations_total",
		Help:      "Credential operations by operation and outcome (success or error kind).",
	}, []string{"operation", "outcome"})
	registry.MustRegister(operations)

	return &Recorder{
		registry:   registry,
		operations: operations,
	}
}

// NewCredentialMetrics exposes the recorder through the domain interface.
func NewCredentialMetrics(r *Recorder) service.CredentialMetrics {
	return r
}

// ObserveOutcome increments the counter for one finished operation.
func (r *Recorder) ObserveOutcome(operation, outcome string) {
	r.operations.WithLabelValues(operation, outcome).Inc()
}

// Handler serves the registry in the Prometheus exposition format.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{Registry: r.registry})
}

// Register adds another collector, such as connection pool stats, to the registry.
func (r *Recorder) Register(c prometheus.Collector) error {
	return r.registry.Register(c)
}

// Counter returns the underlying counter vector.
func (r *Recorder) Counter() *prometheus.CounterVec {
	return r.operations
}
