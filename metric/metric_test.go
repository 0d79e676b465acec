package metric

import (
	"testing"

	promtest "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMetricsInstruments(t *testing.T) {
	m := NewMetrics()

	m.EventsDispatched.WithLabelValues("report").Inc()
	m.EventsDropped.WithLabelValues("report", "unregistered").Inc()
	m.HandlerFailures.WithLabelValues("goose").Inc()
	m.DispatchDuration.WithLabelValues("report").Observe(0.01)
	m.RequestsTotal.WithLabelValues("read", "success").Inc()
	m.RequestDuration.WithLabelValues("read").Observe(0.02)
	m.ConnectionsActive.Inc()

	assert.Equal(t, 1.0, promtest.ToFloat64(m.EventsDispatched.WithLabelValues("report")))
	assert.Equal(t, 1.0, promtest.ToFloat64(m.ConnectionsActive))
}

func TestRegistryRegistersAllInstruments(t *testing.T) {
	r := NewRegistry()
	require.NotNil(t, r.Metrics)
	require.NotNil(t, r.PrometheusRegistry())

	r.Metrics.EventsDispatched.WithLabelValues("report").Inc()
	r.Metrics.RequestsTotal.WithLabelValues("connect", "error").Inc()

	families, err := r.PrometheusRegistry().Gather()
	require.NoError(t, err)

	names := make(map[string]bool)
	for _, f := range families {
		names[f.GetName()] = true
	}
	assert.True(t, names["iecbridge_events_dispatched_total"])
	assert.True(t, names["iecbridge_requests_total"])
	assert.True(t, names["go_goroutines"], "runtime collectors registered")
}
