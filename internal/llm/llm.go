// Package llm adapts hosted language models to a single Generate call.
package llm

import (
	"context"
	"errors"
)

// Role is the author of a prompt message.
type Role string

const (
	RoleUser  Role = "user"
	RoleModel Role = "model"
)

// Message is one prompt message.
type Message struct {
	Role    Role
	Content string
}

// Request is a system instruction plus the conversation so far. The model is
// asked to answer with a single JSON object.
type Request struct {
	System   string
	Messages []Message
}

// Model generates a raw text completion for a request.
type Model interface {
	Generate(ctx context.Context, req Request) (string, error)
}

// ErrNotConfigured is returned by Disabled.
var ErrNotConfigured = errors.New("language model not configured")

// ErrEmptyResponse is returned when the model answered with no text.
var ErrEmptyResponse = errors.New("language model returned no text")

// Disabled is a Model for deployments without an API key. Every call fails,
// so the circuit breaker opens quickly and turns go straight to the heuristics.
type Disabled struct{}

func (Disabled) Generate(context.Context, Request) (string, error) {
	return "", ErrNotConfigured
}
