// Package events ships turn summaries off the request path. Publish only
// touches an in-memory ring buffer; a Worker drains it in batches to a Sink.
package events

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"time"

	convmetrics "ayala/internal/conversation/metrics"
	"ayala/internal/conversation/models"
)

// ErrClosed is returned by Publish after the worker has stopped.
var ErrClosed = errors.New("turn event publisher closed")

const (
	defaultBatchSize     = 100
	defaultFlushInterval = time.Second
	shutdownFlushTimeout = 5 * time.Second
)

type Worker struct {
	buffer        *RingBuffer
	sink          Sink
	batchSize     int
	flushInterval time.Duration
	wake          chan struct{}
	closed        atomic.Bool
	logger        *slog.Logger
	metrics       *convmetrics.Metrics
}

type Option func(*Worker)

func WithBatchSize(n int) Option {
	return func(w *Worker) {
		if n > 0 {
			w.batchSize = n
		}
	}
}

func WithFlushInterval(d time.Duration) Option {
	return func(w *Worker) {
		if d > 0 {
			w.flushInterval = d
		}
	}
}

func WithBufferCapacity(n int) Option {
	return func(w *Worker) {
		w.buffer = NewRingBuffer(n)
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(w *Worker) {
		w.logger = logger
	}
}

func WithMetrics(m *convmetrics.Metrics) Option {
	return func(w *Worker) {
		w.metrics = m
	}
}

func NewWorker(sink Sink, opts ...Option) (*Worker, error) {
	if sink == nil {
		return nil, errors.New("event sink is required")
	}
	w := &Worker{
		sink:          sink,
		batchSize:     defaultBatchSize,
		flushInterval: defaultFlushInterval,
		wake:          make(chan struct{}, 1),
	}
	for _, opt := range opts {
		opt(w)
	}
	if w.buffer == nil {
		w.buffer = NewRingBuffer(defaultCapacity)
	}
	if w.logger == nil {
		w.logger = slog.Default()
	}
	return w, nil
}

// Publish enqueues event without blocking.
func (w *Worker) Publish(_ context.Context, event models.TurnEvent) error {
	if w.closed.Load() {
		return ErrClosed
	}
	if w.buffer.Enqueue(event) {
		w.metrics.IncrementEventsDropped()
	}
	if w.buffer.Len() >= w.batchSize {
		select {
		case w.wake <- struct{}{}:
		default:
		}
	}
	return nil
}

// Pending returns the number of buffered events.
func (w *Worker) Pending() int {
	return w.buffer.Len()
}

// Run drains the buffer until ctx is done, then makes one last bounded flush.
func (w *Worker) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.flushInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.closed.Store(true)
			flushCtx, cancel := context.WithTimeout(context.Background(), shutdownFlushTimeout)
			w.Flush(flushCtx)
			cancel()
			return nil
		case <-ticker.C:
			w.Flush(ctx)
		case <-w.wake:
			w.Flush(ctx)
		}
	}
}

// Flush ships batches until the buffer is empty or a write fails. A failed
// batch is put back for the next attempt.
func (w *Worker) Flush(ctx context.Context) {
	for {
		batch := w.buffer.DequeueBatch(w.batchSize)
		if len(batch) == 0 {
			return
		}
		if err := w.sink.Write(ctx, batch); err != nil {
			dropped := w.buffer.Requeue(batch)
			w.metrics.AddEventsDropped(dropped)
			w.metrics.IncrementEventPublishError()
			w.logger.WarnContext(ctx, "failed to ship turn events",
				"batch_size", len(batch),
				"dropped", dropped,
				"pending", w.buffer.Len(),
				"error", err,
			)
			return
		}
		w.metrics.AddEventsPublished(len(batch))
	}
}
