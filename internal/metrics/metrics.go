// Package metrics provides Prometheus metrics for the assistant server.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// LLMLatencyBuckets are latency buckets for external model calls, which
// routinely run into multiple seconds.
var LLMLatencyBuckets = []float64{0.1, 0.25, 0.5, 1.0, 2.5, 5.0, 10.0, 30.0, 60.0}

// Metrics holds all Prometheus metrics for the server.
type Metrics struct {
	// RequestTotal counts /api/ask requests by safety level and outcome.
	RequestTotal *prometheus.CounterVec

	// LLMLatency tracks the duration of external model calls.
	LLMLatency prometheus.Histogram

	// InFlightRequests tracks currently processing requests.
	InFlightRequests prometheus.Gauge

	registry *prometheus.Registry
}

// New creates and registers the server metrics on a fresh registry.
func New() *Metrics {
	m := &Metrics{
		RequestTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ask_requests_total",
				Help: "Total /api/ask requests by safety level and status",
			},
			[]string{"safety_level", "status"},
		),
		LLMLatency: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "llm_call_duration_seconds",
				Help:    "External LLM call duration in seconds",
				Buckets: LLMLatencyBuckets,
			},
		),
		InFlightRequests: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "ask_in_flight_requests",
				Help: "Requests currently being processed",
			},
		),
		registry: prometheus.NewRegistry(),
	}
	m.registry.MustRegister(m.RequestTotal, m.LLMLatency, m.InFlightRequests)
	return m
}

// Handler returns the HTTP handler that exposes the registry, for
// mounting at /metrics.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
