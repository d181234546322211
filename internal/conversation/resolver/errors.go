package resolver

import (
	"context"
	"errors"
	"fmt"

	"ayala/internal/conversation/models"
	"ayala/pkg/platform/circuit"
	"ayala/pkg/platform/sentinel"
)

var (
	// ErrTimeout means the model did not answer within the resolver timeout.
	ErrTimeout = fmt.Errorf("intent resolver: %w", sentinel.ErrTimeout)
	// ErrMalformed means the model answered but not with a valid intent object.
	ErrMalformed = fmt.Errorf("intent resolver: %w", sentinel.ErrMalformed)
)

// ReasonFor classifies a resolver error for the turn resolution.
func ReasonFor(err error) models.Reason {
	switch {
	case errors.Is(err, circuit.ErrOpen):
		return models.ReasonCircuitOpen
	case errors.Is(err, ErrTimeout), errors.Is(err, context.DeadlineExceeded):
		return models.ReasonResolverTimeout
	case errors.Is(err, ErrMalformed):
		return models.ReasonResolverMalformed
	default:
		return models.ReasonResolverFailed
	}
}
