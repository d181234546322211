// Package store persists per-session chat turns. Sessions are append-only
// logs; a session that was never written loads as an empty history.
package store

import (
	"errors"
	"time"
)

var errSessionIDRequired = errors.New("session id is required")

const (
	defaultTTL      = 30 * 24 * time.Hour
	defaultMaxTurns = 200
)

type config struct {
	ttl      time.Duration
	maxTurns int
}

type Option func(*config)

// WithTTL sets how long an idle session is kept. Every append refreshes it.
func WithTTL(d time.Duration) Option {
	return func(c *config) {
		if d > 0 {
			c.ttl = d
		}
	}
}

// WithMaxTurns keeps only the newest n turns of a session.
func WithMaxTurns(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.maxTurns = n
		}
	}
}

func newConfig(opts []Option) config {
	c := config{ttl: defaultTTL, maxTurns: defaultMaxTurns}
	for _, opt := range opts {
		if opt != nil {
			opt(&c)
		}
	}
	return c
}
