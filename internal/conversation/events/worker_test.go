package events

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	promtest "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	convmetrics "ayala/internal/conversation/metrics"
	"ayala/internal/conversation/models"
)

type sinkFunc func(ctx context.Context, batch []models.TurnEvent) error

func (f sinkFunc) Write(ctx context.Context, batch []models.TurnEvent) error {
	return f(ctx, batch)
}

func TestWorker_FlushDeliversInBatches(t *testing.T) {
	sink := NewMemorySink()
	w, err := NewWorker(sink, WithBatchSize(2))
	require.NoError(t, err)

	for _, s := range []string{"a", "b", "c"} {
		require.NoError(t, w.Publish(context.Background(), event(s)))
	}
	w.Flush(context.Background())

	assert.Equal(t, []string{"a", "b", "c"}, sessions(sink.Events()))
	assert.Zero(t, w.Pending())
}

func TestWorker_FailedBatchIsRetained(t *testing.T) {
	sink := NewMemorySink()
	sink.FailWith(errors.New("broker unavailable"))
	w, err := NewWorker(sink)
	require.NoError(t, err)

	require.NoError(t, w.Publish(context.Background(), event("a")))
	w.Flush(context.Background())
	assert.Equal(t, 1, w.Pending())
	assert.Empty(t, sink.Events())

	sink.FailWith(nil)
	w.Flush(context.Background())
	assert.Equal(t, []string{"a"}, sessions(sink.Events()))
}

func TestWorker_RunFlushesOnShutdown(t *testing.T) {
	sink := NewMemorySink()
	w, err := NewWorker(sink, WithFlushInterval(time.Hour))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	require.NoError(t, w.Publish(context.Background(), event("a")))
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("worker did not stop")
	}
	assert.Equal(t, []string{"a"}, sessions(sink.Events()))
	assert.ErrorIs(t, w.Publish(context.Background(), event("b")), ErrClosed)
}

func TestWorker_RunWakesOnFullBatch(t *testing.T) {
	sink := NewMemorySink()
	w, err := NewWorker(sink, WithBatchSize(2), WithFlushInterval(time.Hour))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = w.Run(ctx) }()

	require.NoError(t, w.Publish(ctx, event("a")))
	require.NoError(t, w.Publish(ctx, event("b")))

	assert.Eventually(t, func() bool {
		return len(sink.Events()) == 2
	}, 2*time.Second, 10*time.Millisecond)
}

func TestWorker_RequeueOverflowIsCounted(t *testing.T) {
	m := convmetrics.NewWithRegistry(prometheus.NewRegistry())
	var w *Worker
	sink := sinkFunc(func(ctx context.Context, _ []models.TurnEvent) error {
		// New turns fill the buffer while the failed batch is in flight.
		require.NoError(t, w.Publish(ctx, event("c")))
		require.NoError(t, w.Publish(ctx, event("d")))
		return errors.New("broker unavailable")
	})
	var err error
	w, err = NewWorker(sink, WithBatchSize(2), WithBufferCapacity(2), WithMetrics(m))
	require.NoError(t, err)

	require.NoError(t, w.Publish(context.Background(), event("a")))
	require.NoError(t, w.Publish(context.Background(), event("b")))
	w.Flush(context.Background())

	assert.Equal(t, 2.0, promtest.ToFloat64(m.EventsDropped))
	assert.Equal(t, 1.0, promtest.ToFloat64(m.EventPublishErrs))
	assert.Equal(t, 2, w.Pending())
}

func TestNewWorker_RequiresSink(t *testing.T) {
	_, err := NewWorker(nil)
	assert.Error(t, err)
}
