package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"ayala/internal/conversation/models"
	"ayala/internal/conversation/service"
	dErrors "ayala/pkg/domain-errors"
	"ayala/pkg/platform/circuit"
	"ayala/pkg/platform/httputil"
	"ayala/pkg/platform/middleware/admin"
	"ayala/pkg/requestcontext"
)

// Service is the chat operation the handler needs.
type Service interface {
	Chat(ctx context.Context, req service.ChatRequest) (*service.ChatResponse, error)
}

// HealthChecker forces one probe through the resolver breaker.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// Handler serves the chat endpoint and the resolver breaker controls.
type Handler struct {
	service    Service
	breaker    *circuit.Breaker
	health     HealthChecker
	adminToken string
	logger     *slog.Logger
}

func New(svc Service, breaker *circuit.Breaker, health HealthChecker, adminToken string, logger *slog.Logger) *Handler {
	return &Handler{
		service:    svc,
		breaker:    breaker,
		health:     health,
		adminToken: adminToken,
		logger:     logger,
	}
}

// Register mounts conversation endpoints. Breaker controls require the admin
// token.
func (h *Handler) Register(r chi.Router) {
	r.Post("/ai/chat", h.HandleChat)
	r.Get("/ai/status", h.HandleStatus)
	r.Group(func(r chi.Router) {
		r.Use(admin.RequireAdminToken(h.adminToken, h.logger))
		r.Post("/ai/reset-circuit-breaker", h.HandleResetBreaker)
		r.Post("/ai/health-check", h.HandleHealthCheck)
	})
}

type historyTurn struct {
	Role    models.Role `json:"role"`
	Content string      `json:"content"`
}

type chatRequest struct {
	SessionID string        `json:"session_id"`
	UserInput string        `json:"user_input"`
	History   []historyTurn `json:"history"`
}

func (req chatRequest) toHistory() (models.History, error) {
	history := make(models.History, 0, len(req.History))
	for _, t := range req.History {
		if t.Role != models.RoleUser && t.Role != models.RoleAssistant {
			return nil, dErrors.New(dErrors.CodeValidation, "history role must be user or assistant")
		}
		history = append(history, models.Turn{Role: t.Role, Content: t.Content})
	}
	return history, nil
}

// HandleChat handles POST /ai/chat.
func (h *Handler) HandleChat(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeJSON[chatRequest](w, r, h.logger, requestID)
	if !ok {
		return
	}
	history, err := req.toHistory()
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	resp, err := h.service.Chat(ctx, service.ChatRequest{
		SessionID: req.SessionID,
		Input:     req.UserInput,
		History:   history,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "chat turn rejected",
			"request_id", requestID,
			"session_id", req.SessionID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, resp)
}

type statusResponse struct {
	State                string   `json:"circuit_breaker_state"`
	Failures             int      `json:"circuit_breaker_failures"`
	Threshold            int      `json:"circuit_breaker_threshold"`
	OpenTimeoutSeconds   float64  `json:"open_timeout_seconds"`
	TimeSinceLastFailure *float64 `json:"time_since_last_failure"`
}

func toStatus(s circuit.Snapshot) statusResponse {
	resp := statusResponse{
		State:              s.State.String(),
		Failures:           s.FailureCount,
		Threshold:          s.FailureThreshold,
		OpenTimeoutSeconds: s.OpenTimeout.Seconds(),
	}
	if s.TimeSinceLastFailure != nil {
		secs := s.TimeSinceLastFailure.Seconds()
		resp.TimeSinceLastFailure = &secs
	}
	return resp
}

// HandleStatus handles GET /ai/status.
func (h *Handler) HandleStatus(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, toStatus(h.breaker.Snapshot()))
}

// HandleResetBreaker handles POST /ai/reset-circuit-breaker.
func (h *Handler) HandleResetBreaker(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	before := h.breaker.Snapshot()
	h.breaker.Reset()
	h.logger.InfoContext(ctx, "circuit breaker reset",
		"request_id", requestcontext.RequestID(ctx),
		"breaker", before.Name,
		"previous_state", before.State.String(),
		"previous_failures", before.FailureCount,
	)
	httputil.WriteJSON(w, http.StatusOK, toStatus(h.breaker.Snapshot()))
}

type healthResponse struct {
	Healthy bool           `json:"healthy"`
	Error   string         `json:"error,omitempty"`
	Status  statusResponse `json:"status"`
}

// HandleHealthCheck handles POST /ai/health-check. The probe result is
// reported in the body; the endpoint itself answers 200.
func (h *Handler) HandleHealthCheck(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	resp := healthResponse{Healthy: true}
	if err := h.health.HealthCheck(ctx); err != nil {
		resp.Healthy = false
		resp.Error = err.Error()
		h.logger.WarnContext(ctx, "resolver health check failed",
			"request_id", requestcontext.RequestID(ctx),
			"error", err,
		)
	}
	resp.Status = toStatus(h.breaker.Snapshot())
	httputil.WriteJSON(w, http.StatusOK, resp)
}
