package store

import (
	"context"
	"sync"

	"ayala/internal/conversation/models"
)

// InMemory is a process-local session store. TTL is not enforced.
type InMemory struct {
	mu       sync.RWMutex
	sessions map[string]models.History
	cfg      config
}

func NewInMemory(opts ...Option) *InMemory {
	return &InMemory{sessions: make(map[string]models.History), cfg: newConfig(opts)}
}

func (s *InMemory) Load(_ context.Context, sessionID string) (models.History, error) {
	if sessionID == "" {
		return nil, errSessionIDRequired
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append(models.History(nil), s.sessions[sessionID]...), nil
}

func (s *InMemory) Append(_ context.Context, sessionID string, turns ...models.Turn) error {
	if sessionID == "" {
		return errSessionIDRequired
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	h := s.sessions[sessionID].Append(turns...)
	if len(h) > s.cfg.maxTurns {
		h = h[len(h)-s.cfg.maxTurns:]
	}
	s.sessions[sessionID] = h
	return nil
}
