package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics(t *testing.T) {
	m := NewWithRegistry(prometheus.NewRegistry())

	m.ObserveQuery("tiered", 10*time.Millisecond)
	m.IncrementFallback()
	m.IncrementFailure()
	m.IncrementFailure()

	assert.Equal(t, 1.0, testutil.ToFloat64(m.QueryFallbacks))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.QueryFailures))
	assert.Equal(t, 1, testutil.CollectAndCount(m.QueryLatency))
}

func TestMetrics_NilSafe(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveQuery("simplified", time.Second)
		m.IncrementFallback()
		m.IncrementFailure()
	})
}
