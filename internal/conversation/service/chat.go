package service

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"ayala/internal/conversation/models"
	"ayala/internal/conversation/rules"
	dErrors "ayala/pkg/domain-errors"
	"ayala/pkg/requestcontext"
)

// ChatRequest is one chat call. History is only used to seed a new session;
// an existing session's history always comes from the store.
type ChatRequest struct {
	SessionID string
	Input     string
	History   models.History
}

type ChatResponse struct {
	SessionID string `json:"session_id"`
	TurnResult
}

// Chat loads the session, handles the turn and persists the new turn pair.
func (s *Service) Chat(ctx context.Context, req ChatRequest) (*ChatResponse, error) {
	if s.history == nil {
		return nil, dErrors.New(dErrors.CodeInternal, "chat history store is not configured")
	}
	input := strings.TrimSpace(req.Input)
	if input == "" {
		return nil, dErrors.New(dErrors.CodeValidation, "user_input is required")
	}
	if utf8.RuneCountInString(input) > rules.MaxInputRunes {
		return nil, dErrors.New(dErrors.CodeValidation, "user_input is too long")
	}

	sessionID := strings.TrimSpace(req.SessionID)
	var history models.History
	if sessionID == "" {
		sessionID = uuid.NewString()
		history = req.History
		if len(history) > 0 {
			if err := s.history.Append(ctx, sessionID, history...); err != nil {
				return nil, dErrors.Wrap(err, dErrors.CodeUnavailable, "chat history is temporarily unavailable")
			}
		}
	} else {
		loaded, err := s.history.Load(ctx, sessionID)
		if err != nil {
			return nil, dErrors.Wrap(err, dErrors.CodeUnavailable, "chat history is temporarily unavailable")
		}
		history = loaded
	}
	ctx = requestcontext.WithSessionID(ctx, sessionID)

	start := time.Now()
	result := s.HandleTurn(ctx, input, history)

	added := result.UpdatedHistory[len(history):]
	if err := s.history.Append(ctx, sessionID, added...); err != nil {
		s.logger.ErrorContext(ctx, "failed to persist chat turns",
			"request_id", requestcontext.RequestID(ctx),
			"session_id", sessionID,
			"error", err,
		)
	}
	s.publish(ctx, sessionID, result, time.Since(start))

	return &ChatResponse{SessionID: sessionID, TurnResult: result}, nil
}

func (s *Service) publish(ctx context.Context, sessionID string, result TurnResult, d time.Duration) {
	if s.publisher == nil {
		return
	}
	event := models.TurnEvent{
		RequestID:   requestcontext.RequestID(ctx),
		SessionID:   sessionID,
		Kind:        result.Intent.Kind,
		Source:      result.Intent.Source,
		Resolution:  result.Resolution,
		Location:    result.Intent.LocationValue(),
		Page:        result.Intent.PageNumber,
		ResultCount: len(result.Results),
		DurationMS:  d.Milliseconds(),
		OccurredAt:  requestcontext.Now(ctx),
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.WarnContext(ctx, "failed to publish turn event",
			"request_id", event.RequestID,
			"session_id", sessionID,
			"error", err,
		)
	}
}
