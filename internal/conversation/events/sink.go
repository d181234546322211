package events

import (
	"context"
	"sync"

	"ayala/internal/conversation/models"
)

// Sink delivers a batch of turn events. A returned error means the whole
// batch should be retried.
type Sink interface {
	Write(ctx context.Context, batch []models.TurnEvent) error
}

// MemorySink keeps delivered events in process. Used by tests and when no
// broker is configured.
type MemorySink struct {
	mu     sync.Mutex
	events []models.TurnEvent
	err    error
}

func NewMemorySink() *MemorySink {
	return &MemorySink{}
}

func (s *MemorySink) Write(_ context.Context, batch []models.TurnEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.events = append(s.events, batch...)
	return nil
}

// FailWith makes subsequent writes fail with err; nil restores delivery.
func (s *MemorySink) FailWith(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = err
}

// Events returns a copy of everything delivered so far.
func (s *MemorySink) Events() []models.TurnEvent {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.TurnEvent(nil), s.events...)
}
