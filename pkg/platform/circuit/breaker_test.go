package circuit

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errUpstream = errors.New("upstream failed")

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2025, 7, 19, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func failingOp(calls *int) func(context.Context) (string, error) {
	return func(context.Context) (string, error) {
		*calls++
		return "", errUpstream
	}
}

func succeedingOp(calls *int) func(context.Context) (string, error) {
	return func(context.Context) (string, error) {
		*calls++
		return "ok", nil
	}
}

func TestBreaker_InitialState(t *testing.T) {
	b := New("test")
	assert.False(t, b.IsOpen())
	assert.Equal(t, StateClosed, b.State())
	assert.Equal(t, "test", b.Name())

	snap := b.Snapshot()
	assert.Equal(t, 0, snap.FailureCount)
	assert.Equal(t, defaultFailureThreshold, snap.FailureThreshold)
	assert.Nil(t, snap.TimeSinceLastFailure)
}

func TestBreaker_OpensAfterThreshold(t *testing.T) {
	ctx := context.Background()
	b := New("test", WithFailureThreshold(3))
	calls := 0

	for i := 0; i < 2; i++ {
		_, err := Execute(ctx, b, failingOp(&calls))
		require.ErrorIs(t, err, errUpstream)
		assert.Equal(t, StateClosed, b.State())
	}

	_, err := Execute(ctx, b, failingOp(&calls))
	require.ErrorIs(t, err, errUpstream)
	assert.True(t, b.IsOpen())
	assert.Equal(t, 3, calls)
	assert.Equal(t, 3, b.Snapshot().FailureCount)
}

func TestBreaker_OpenRejectsWithoutInvoking(t *testing.T) {
	ctx := context.Background()
	clock := newFakeClock()
	b := New("test", WithFailureThreshold(1), WithOpenTimeout(time.Minute), WithClock(clock.Now))
	calls := 0

	_, _ = Execute(ctx, b, failingOp(&calls))
	require.True(t, b.IsOpen())

	clock.Advance(30 * time.Second)
	_, err := Execute(ctx, b, succeedingOp(&calls))
	assert.ErrorIs(t, err, ErrOpen)
	assert.Equal(t, 1, calls, "operation must not run while open")

	// Exactly at the timeout the circuit is still open.
	clock.Advance(30 * time.Second)
	_, err = Execute(ctx, b, succeedingOp(&calls))
	assert.ErrorIs(t, err, ErrOpen)
	assert.Equal(t, 1, calls)
}

func TestBreaker_HalfOpenSuccessCloses(t *testing.T) {
	ctx := context.Background()
	clock := newFakeClock()
	b := New("test", WithFailureThreshold(2), WithOpenTimeout(time.Minute), WithClock(clock.Now))
	calls := 0

	_, _ = Execute(ctx, b, failingOp(&calls))
	_, _ = Execute(ctx, b, failingOp(&calls))
	require.True(t, b.IsOpen())

	clock.Advance(time.Minute + time.Second)
	result, err := Execute(ctx, b, succeedingOp(&calls))
	require.NoError(t, err)
	assert.Equal(t, "ok", result)
	assert.Equal(t, StateClosed, b.State())
	assert.Equal(t, 0, b.Snapshot().FailureCount)
}

func TestBreaker_HalfOpenFailureReopensAndRestartsTimer(t *testing.T) {
	ctx := context.Background()
	clock := newFakeClock()
	b := New("test", WithFailureThreshold(1), WithOpenTimeout(time.Minute), WithClock(clock.Now))
	calls := 0

	_, _ = Execute(ctx, b, failingOp(&calls))
	clock.Advance(2 * time.Minute)

	_, err := Execute(ctx, b, failingOp(&calls))
	require.ErrorIs(t, err, errUpstream)
	assert.True(t, b.IsOpen())

	clock.Advance(30 * time.Second)
	_, err = Execute(ctx, b, succeedingOp(&calls))
	assert.ErrorIs(t, err, ErrOpen, "timer restarted by the failed trial")
	assert.Equal(t, 2, calls)
}

func TestBreaker_HalfOpenAllowsSingleTrial(t *testing.T) {
	clock := newFakeClock()
	b := New("test", WithFailureThreshold(1), WithOpenTimeout(time.Second), WithClock(clock.Now))

	require.NoError(t, b.Allow())
	b.RecordFailure()
	clock.Advance(2 * time.Second)

	require.NoError(t, b.Allow(), "first call after timeout is the trial")
	assert.Equal(t, StateHalfOpen, b.State())
	assert.ErrorIs(t, b.Allow(), ErrOpen, "second concurrent call is rejected")

	b.RecordSuccess()
	assert.NoError(t, b.Allow())
}

func TestBreaker_SuccessResetsFailureCount(t *testing.T) {
	ctx := context.Background()
	b := New("test", WithFailureThreshold(3))
	calls := 0

	_, _ = Execute(ctx, b, failingOp(&calls))
	_, _ = Execute(ctx, b, failingOp(&calls))
	_, _ = Execute(ctx, b, succeedingOp(&calls))

	_, _ = Execute(ctx, b, failingOp(&calls))
	_, _ = Execute(ctx, b, failingOp(&calls))
	assert.False(t, b.IsOpen())

	_, _ = Execute(ctx, b, failingOp(&calls))
	assert.True(t, b.IsOpen())
}

func TestBreaker_Reset(t *testing.T) {
	b := New("test", WithFailureThreshold(1))

	require.NoError(t, b.Allow())
	b.RecordFailure()
	require.True(t, b.IsOpen())

	b.Reset()
	assert.False(t, b.IsOpen())
	assert.Equal(t, StateClosed, b.State())
	assert.Equal(t, 0, b.Snapshot().FailureCount)
	assert.Nil(t, b.Snapshot().TimeSinceLastFailure)
}

func TestBreaker_StateChangeHook(t *testing.T) {
	ctx := context.Background()
	clock := newFakeClock()
	var transitions []string
	b := New("gemini",
		WithFailureThreshold(1),
		WithOpenTimeout(time.Second),
		WithClock(clock.Now),
		WithOnStateChange(func(name string, from, to State) {
			transitions = append(transitions, name+":"+from.String()+"->"+to.String())
		}),
	)
	calls := 0

	_, _ = Execute(ctx, b, failingOp(&calls))
	clock.Advance(2 * time.Second)
	_, _ = Execute(ctx, b, succeedingOp(&calls))

	assert.Equal(t, []string{
		"gemini:closed->open",
		"gemini:open->half_open",
		"gemini:half_open->closed",
	}, transitions)
}

func TestBreaker_PanicCountsAsFailure(t *testing.T) {
	b := New("test", WithFailureThreshold(1))

	assert.Panics(t, func() {
		_, _ = Execute(context.Background(), b, func(context.Context) (int, error) {
			panic("boom")
		})
	})
	assert.True(t, b.IsOpen())
}

func TestBreaker_ConcurrentFailuresAreNotLost(t *testing.T) {
	const goroutines = 64
	b := New("test", WithFailureThreshold(goroutines*2))

	var wg sync.WaitGroup
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = Execute(context.Background(), b, func(context.Context) (struct{}, error) {
				return struct{}{}, errUpstream
			})
		}()
	}
	wg.Wait()

	assert.Equal(t, goroutines, b.Snapshot().FailureCount)
	assert.Equal(t, StateClosed, b.State())
}

func TestBreaker_LateSuccessDoesNotCloseOpenCircuit(t *testing.T) {
	ctx := context.Background()
	b := New("test", WithFailureThreshold(2), WithOpenTimeout(time.Minute))
	calls := 0

	slow, err := b.Admit()
	require.NoError(t, err)

	_, _ = Execute(ctx, b, failingOp(&calls))
	_, _ = Execute(ctx, b, failingOp(&calls))
	require.True(t, b.IsOpen())

	slow.Success()
	assert.True(t, b.IsOpen(), "a call admitted before the circuit opened must not close it")
	assert.Equal(t, 2, b.Snapshot().FailureCount)
}

func TestBreaker_LateFailureDoesNotReopenTrial(t *testing.T) {
	ctx := context.Background()
	clock := newFakeClock()
	b := New("test", WithFailureThreshold(1), WithOpenTimeout(time.Second), WithClock(clock.Now))
	calls := 0

	slow, err := b.Admit()
	require.NoError(t, err)
	_, _ = Execute(ctx, b, failingOp(&calls))
	clock.Advance(2 * time.Second)

	trial, err := b.Admit()
	require.NoError(t, err)
	require.Equal(t, StateHalfOpen, b.State())

	slow.Failure()
	assert.Equal(t, StateHalfOpen, b.State())
	assert.ErrorIs(t, b.Allow(), ErrOpen, "the trial slot is still taken")

	trial.Success()
	assert.Equal(t, StateClosed, b.State())
}

func TestBreaker_ResetDiscardsInFlightOutcomes(t *testing.T) {
	b := New("test", WithFailureThreshold(1))

	slow, err := b.Admit()
	require.NoError(t, err)
	b.Reset()

	slow.Failure()
	assert.False(t, b.IsOpen())
	assert.Equal(t, 0, b.Snapshot().FailureCount)
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "closed", StateClosed.String())
	assert.Equal(t, "open", StateOpen.String())
	assert.Equal(t, "half_open", StateHalfOpen.String())
	assert.Equal(t, "unknown", State(42).String())
}
