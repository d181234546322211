// Package circuit guards calls to an unreliable dependency.
//
// A Breaker moves between three states:
//   - Closed: calls pass through; consecutive failures are counted and reaching
//     the threshold opens the circuit.
//   - Open: calls are rejected with ErrOpen without running the operation until
//     the open timeout has elapsed since the last failure.
//   - HalfOpen: a single trial call is let through. Success closes the circuit
//     and clears the failure count; failure reopens it and restarts the timer.
//
// One Breaker protects one dependency and is shared by every caller of it.
// The Breaker never retries; retry policy belongs to the caller.
//
// Every state change starts a new generation. An outcome reported through a
// Permit from an earlier generation is ignored, so a slow call admitted while
// Closed cannot close a circuit that opened in the meantime.
package circuit

import (
	"context"
	"errors"
	"sync"
	"time"
)

// ErrOpen is returned when the circuit rejects a call without running it.
var ErrOpen = errors.New("circuit open")

// State is the breaker's position in its lifecycle.
type State int

const (
	StateClosed State = iota
	StateOpen
	StateHalfOpen
)

func (s State) String() string {
	switch s {
	case StateClosed:
		return "closed"
	case StateOpen:
		return "open"
	case StateHalfOpen:
		return "half_open"
	default:
		return "unknown"
	}
}

const (
	defaultFailureThreshold = 5
	defaultOpenTimeout      = 60 * time.Second
)

// Breaker is a lock-protected circuit breaker. The zero value is not usable;
// construct with New.
type Breaker struct {
	mu sync.Mutex

	name             string
	failureThreshold int
	openTimeout      time.Duration
	now              func() time.Time
	onStateChange    func(name string, from, to State)

	state         State
	failureCount  int
	lastFailure   time.Time
	trialInFlight bool
	generation    uint64
}

// Option configures a Breaker.
type Option func(*Breaker)

// WithFailureThreshold sets how many consecutive failures open the circuit.
func WithFailureThreshold(n int) Option {
	return func(b *Breaker) {
		if n > 0 {
			b.failureThreshold = n
		}
	}
}

// WithOpenTimeout sets how long the circuit stays open after the last failure.
func WithOpenTimeout(d time.Duration) Option {
	return func(b *Breaker) {
		if d > 0 {
			b.openTimeout = d
		}
	}
}

// WithClock overrides the time source. Tests use it to step past the timeout.
func WithClock(now func() time.Time) Option {
	return func(b *Breaker) {
		if now != nil {
			b.now = now
		}
	}
}

// WithOnStateChange registers a hook run after every state transition.
// The hook runs with the breaker lock released.
func WithOnStateChange(fn func(name string, from, to State)) Option {
	return func(b *Breaker) {
		b.onStateChange = fn
	}
}

// New creates a closed breaker for the named dependency.
func New(name string, opts ...Option) *Breaker {
	b := &Breaker{
		name:             name,
		failureThreshold: defaultFailureThreshold,
		openTimeout:      defaultOpenTimeout,
		now:              time.Now,
		state:            StateClosed,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(b)
		}
	}
	return b
}

// Name returns the dependency name the breaker protects.
func (b *Breaker) Name() string {
	return b.name
}

// State returns the current state. An open circuit whose timeout has elapsed
// still reports StateOpen until the next call moves it to HalfOpen.
func (b *Breaker) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state
}

// IsOpen reports whether calls are currently being rejected.
func (b *Breaker) IsOpen() bool {
	return b.State() == StateOpen
}

// Permit is one admitted call. Exactly one of Success or Failure must be
// called on it.
type Permit struct {
	b          *Breaker
	generation uint64
}

// Success reports that the admitted call succeeded.
func (p Permit) Success() {
	p.b.record(&p.generation, true)
}

// Failure reports that the admitted call failed.
func (p Permit) Failure() {
	p.b.record(&p.generation, false)
}

// Admit reserves permission for one call. It returns ErrOpen when the call
// must be rejected.
func (b *Breaker) Admit() (Permit, error) {
	b.mu.Lock()
	var change *transition
	defer func() {
		b.mu.Unlock()
		b.notify(change)
	}()

	switch b.state {
	case StateClosed:
	case StateOpen:
		if b.now().Sub(b.lastFailure) <= b.openTimeout {
			return Permit{}, ErrOpen
		}
		change = b.setState(StateHalfOpen)
		b.trialInFlight = true
	case StateHalfOpen:
		if b.trialInFlight {
			return Permit{}, ErrOpen
		}
		b.trialInFlight = true
	default:
		return Permit{}, ErrOpen
	}
	return Permit{b: b, generation: b.generation}, nil
}

// Allow reserves permission for one call. It returns ErrOpen when the call
// must be rejected. Every nil return must be followed by exactly one
// RecordSuccess or RecordFailure. Callers that may finish after the state
// changed should use Admit instead.
func (b *Breaker) Allow() error {
	_, err := b.Admit()
	return err
}

// RecordSuccess reports that an allowed call succeeded. It applies to the
// current generation.
func (b *Breaker) RecordSuccess() {
	b.record(nil, true)
}

// RecordFailure reports that an allowed call failed. It applies to the
// current generation.
func (b *Breaker) RecordFailure() {
	b.record(nil, false)
}

// record applies one outcome. A nil generation means the current one.
func (b *Breaker) record(generation *uint64, ok bool) {
	b.mu.Lock()
	var change *transition
	defer func() {
		b.mu.Unlock()
		b.notify(change)
	}()

	if generation != nil && *generation != b.generation {
		return
	}
	if ok {
		b.failureCount = 0
		b.trialInFlight = false
		if b.state != StateClosed {
			change = b.setState(StateClosed)
		}
		return
	}

	b.failureCount++
	b.lastFailure = b.now()
	b.trialInFlight = false

	switch b.state {
	case StateHalfOpen:
		change = b.setState(StateOpen)
	case StateClosed:
		if b.failureCount >= b.failureThreshold {
			change = b.setState(StateOpen)
		}
	}
}

// Reset forces the circuit closed with zero failures. Intended for operators.
func (b *Breaker) Reset() {
	b.mu.Lock()
	var change *transition
	defer func() {
		b.mu.Unlock()
		b.notify(change)
	}()

	b.failureCount = 0
	b.lastFailure = time.Time{}
	b.trialInFlight = false
	if b.state != StateClosed {
		change = b.setState(StateClosed)
	} else {
		b.generation++
	}
}

// Snapshot is a consistent, read-only view of the breaker.
type Snapshot struct {
	Name             string
	State            State
	FailureCount     int
	FailureThreshold int
	OpenTimeout      time.Duration
	LastFailure      time.Time
	// TimeSinceLastFailure is nil when no failure has been recorded since the
	// last reset.
	TimeSinceLastFailure *time.Duration
}

// Snapshot returns the breaker's current counters.
func (b *Breaker) Snapshot() Snapshot {
	b.mu.Lock()
	defer b.mu.Unlock()

	s := Snapshot{
		Name:             b.name,
		State:            b.state,
		FailureCount:     b.failureCount,
		FailureThreshold: b.failureThreshold,
		OpenTimeout:      b.openTimeout,
		LastFailure:      b.lastFailure,
	}
	if !b.lastFailure.IsZero() {
		since := b.now().Sub(b.lastFailure)
		s.TimeSinceLastFailure = &since
	}
	return s
}

// Execute runs op through the breaker. A rejected call returns ErrOpen and op
// is not invoked. Any error returned by op counts as one failure.
func Execute[T any](ctx context.Context, b *Breaker, op func(ctx context.Context) (T, error)) (T, error) {
	var zero T
	permit, err := b.Admit()
	if err != nil {
		return zero, err
	}

	// A panicking op still releases a half-open trial slot.
	finished := false
	defer func() {
		if !finished {
			permit.Failure()
		}
	}()

	result, err := op(ctx)
	finished = true
	if err != nil {
		permit.Failure()
		return zero, err
	}
	permit.Success()
	return result, nil
}

type transition struct {
	from, to State
}

// setState must be called with b.mu held.
func (b *Breaker) setState(to State) *transition {
	from := b.state
	b.state = to
	b.generation++
	return &transition{from: from, to: to}
}

func (b *Breaker) notify(t *transition) {
	if t == nil || b.onStateChange == nil {
		return
	}
	b.onStateChange(b.name, t.from, t.to)
}
