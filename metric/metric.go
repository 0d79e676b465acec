// Package metric provides Prometheus instrumentation for the bridge:
// dispatch counters for the asynchronous event path and request metrics
// for the synchronous facade path, registered on a dedicated registry so
// embedding applications can mount it wherever they expose metrics.
package metric

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Metrics holds the core bridge instruments.
type Metrics struct {
	// EventsDispatched counts callback events routed to a handler, by category.
	EventsDispatched *prometheus.CounterVec
	// EventsDropped counts non-fatal dropped events, by category and reason.
	EventsDropped *prometheus.CounterVec
	// HandlerFailures counts trigger invocations that panicked or failed, by category.
	HandlerFailures *prometheus.CounterVec
	// DispatchDuration observes time spent inside handler triggers, by category.
	DispatchDuration *prometheus.HistogramVec
	// RequestsTotal counts synchronous facade operations, by operation and outcome.
	RequestsTotal *prometheus.CounterVec
	// RequestDuration observes synchronous round-trip latency, by operation.
	RequestDuration *prometheus.HistogramVec
	// ConnectionsActive tracks the number of live connections.
	ConnectionsActive prometheus.Gauge
}

// NewMetrics creates the core instruments without registering them.
func NewMetrics() *Metrics {
	return &Metrics{
		EventsDispatched: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "iecbridge_events_dispatched_total",
			Help: "Callback events routed to a registered handler",
		}, []string{"category"}),
		EventsDropped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "iecbridge_events_dropped_total",
			Help: "Callback events dropped without reaching a handler",
		}, []string{"category", "reason"}),
		HandlerFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "iecbridge_handler_failures_total",
			Help: "Handler trigger invocations that failed or panicked",
		}, []string{"category"}),
		DispatchDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "iecbridge_dispatch_duration_seconds",
			Help:    "Time spent inside handler triggers",
			Buckets: prometheus.DefBuckets,
		}, []string{"category"}),
		RequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "iecbridge_requests_total",
			Help: "Synchronous facade operations",
		}, []string{"operation", "outcome"}),
		RequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "iecbridge_request_duration_seconds",
			Help:    "Synchronous facade round-trip latency",
			Buckets: prometheus.DefBuckets,
		}, []string{"operation"}),
		ConnectionsActive: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "iecbridge_connections_active",
			Help: "Live connections",
		}),
	}
}

// Registry couples the bridge instruments with a Prometheus registry.
type Registry struct {
	prometheusRegistry *prometheus.Registry
	Metrics            *Metrics
}

// NewRegistry creates a registry with the core bridge metrics and Go
// runtime collectors registered.
func NewRegistry() *Registry {
	r := &Registry{
		prometheusRegistry: prometheus.NewRegistry(),
		Metrics:            NewMetrics(),
	}

	r.prometheusRegistry.MustRegister(
		r.Metrics.EventsDispatched,
		r.Metrics.EventsDropped,
		r.Metrics.HandlerFailures,
		r.Metrics.DispatchDuration,
		r.Metrics.RequestsTotal,
		r.Metrics.RequestDuration,
		r.Metrics.ConnectionsActive,
	)

	r.prometheusRegistry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return r
}

// PrometheusRegistry returns the underlying Prometheus registry.
func (r *Registry) PrometheusRegistry() *prometheus.Registry {
	return r.prometheusRegistry
}
