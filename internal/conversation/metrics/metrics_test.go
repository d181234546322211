package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"ayala/pkg/platform/circuit"
)

func TestMetrics(t *testing.T) {
	m := NewWithRegistry(prometheus.NewRegistry())

	m.ObserveTurn("degraded", "fallback_search", 120*time.Millisecond)
	m.IncrementDegraded("circuit_open")
	m.IncrementDegraded("")
	m.BreakerStateChanged("gemini", circuit.StateClosed, circuit.StateOpen)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.Turns.WithLabelValues("degraded", "fallback_search")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Degraded.WithLabelValues("circuit_open")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.BreakerState.WithLabelValues("gemini")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.BreakerChanges.WithLabelValues("gemini", "open")))
}

func TestMetrics_NilSafe(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveTurn("ok", "primary", time.Second)
		m.IncrementDegraded("unclear")
		m.ObserveResults(3)
		m.BreakerStateChanged("gemini", circuit.StateOpen, circuit.StateHalfOpen)
		m.IncrementEventsDropped()
		m.AddEventsDropped(3)
		m.AddEventsPublished(2)
		m.IncrementEventPublishError()
	})
}
