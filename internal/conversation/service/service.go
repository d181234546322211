// Package service runs one conversation turn end to end: intent resolution
// with fallback, page tracking, company search and the localized reply.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime/debug"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	companymodels "ayala/internal/companies/models"
	"ayala/internal/companies/store"
	convmetrics "ayala/internal/conversation/metrics"
	"ayala/internal/conversation/models"
	"ayala/internal/conversation/pagination"
	"ayala/internal/conversation/resolver"
	"ayala/internal/conversation/rules"
	"ayala/pkg/requestcontext"
)

//go:generate mockgen -source=service.go -destination=mocks/mocks.go -package=mocks IntentResolver,Fallback,CompanySearcher,HistoryStore,EventPublisher

// IntentResolver is the model-backed resolver behind the breaker.
type IntentResolver interface {
	Resolve(ctx context.Context, history models.History) (models.ResolvedIntent, error)
}

// Fallback is the rule-based resolver used when IntentResolver fails.
type Fallback interface {
	ResolveFallback(history models.History) (models.ResolvedIntent, bool)
	ResolveSearch(history models.History) models.ResolvedIntent
}

// CompanySearcher runs one page of a company search.
type CompanySearcher interface {
	Search(ctx context.Context, f companymodels.SearchFilter) ([]companymodels.Company, error)
}

// HistoryStore is the append-only per-session turn log.
type HistoryStore interface {
	Load(ctx context.Context, sessionID string) (models.History, error)
	Append(ctx context.Context, sessionID string, turns ...models.Turn) error
}

// EventPublisher ships turn summaries. Publish must not block on the network.
type EventPublisher interface {
	Publish(ctx context.Context, event models.TurnEvent) error
}

// TurnResult is everything one turn produced. UpdatedHistory always ends with
// the user turn followed by the assistant turn.
type TurnResult struct {
	Message        string                      `json:"message"`
	Results        []companymodels.Company     `json:"results"`
	UpdatedHistory models.History              `json:"updated_history"`
	Intent         models.ResolvedIntent       `json:"resolved_intent"`
	Filter         *companymodels.SearchFilter `json:"filter,omitempty"`
	Resolution     models.Resolution           `json:"resolution"`
	HasMore        bool                        `json:"has_more"`
}

type Service struct {
	primary   IntentResolver
	fallback  Fallback
	tracker   *pagination.Tracker
	searcher  CompanySearcher
	history   HistoryStore
	publisher EventPublisher
	metrics   *convmetrics.Metrics
	logger    *slog.Logger
	tracer    trace.Tracer
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithMetrics(m *convmetrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// WithHistoryStore enables Chat. HandleTurn works without it.
func WithHistoryStore(h HistoryStore) Option {
	return func(s *Service) {
		s.history = h
	}
}

func WithEventPublisher(p EventPublisher) Option {
	return func(s *Service) {
		s.publisher = p
	}
}

func New(primary IntentResolver, fallback Fallback, tracker *pagination.Tracker, searcher CompanySearcher, opts ...Option) (*Service, error) {
	if primary == nil {
		return nil, errors.New("intent resolver is required")
	}
	if fallback == nil {
		return nil, errors.New("fallback resolver is required")
	}
	if tracker == nil {
		return nil, errors.New("pagination tracker is required")
	}
	if searcher == nil {
		return nil, errors.New("company searcher is required")
	}
	s := &Service{
		primary:  primary,
		fallback: fallback,
		tracker:  tracker,
		searcher: searcher,
		tracer:   otel.Tracer("ayala/conversation/service"),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	return s, nil
}

// HandleTurn answers input given the prior history. It never fails: every
// path, including a recovered panic, returns history extended by exactly one
// user turn and one assistant turn.
func (s *Service) HandleTurn(ctx context.Context, input string, history models.History) (result TurnResult) {
	ctx, span := s.tracer.Start(ctx, "conversation.handle_turn")
	defer span.End()

	start := time.Now()
	lang := rules.DetectLanguage(input)
	log := s.logger.With(requestcontext.LogAttrs(ctx)...)
	userTurn := models.Turn{Role: models.RoleUser, Content: input, CreatedAt: requestcontext.Now(ctx)}

	defer func() {
		if r := recover(); r != nil {
			log.ErrorContext(ctx, "panic while handling turn",
				"panic", fmt.Sprint(r),
				"stack", string(debug.Stack()),
			)
			span.SetStatus(codes.Error, "panic")
			intent := models.Unclear("internal error")
			result = TurnResult{
				Message:        msgInternal.in(lang),
				UpdatedHistory: history.Append(userTurn, s.assistantTurn(ctx, msgInternal.in(lang), nil)),
				Intent:         intent,
				Resolution:     models.Failed(models.ReasonInternal),
			}
		}
		s.metrics.ObserveTurn(string(result.Resolution.Outcome), string(result.Intent.Source), time.Since(start))
		s.metrics.IncrementDegraded(string(result.Resolution.Reason))
		span.SetAttributes(
			attribute.String("turn.outcome", string(result.Resolution.Outcome)),
			attribute.String("turn.reason", string(result.Resolution.Reason)),
			attribute.String("intent.source", string(result.Intent.Source)),
		)
	}()

	working := history.Append(userTurn)
	intent, resolution := s.resolve(ctx, working)
	intent = s.tracker.Refine(working, intent)
	if intent.Kind == models.KindUnclear {
		resolution = models.Failed(models.ReasonUnclear)
	}

	result = TurnResult{Intent: intent, Resolution: resolution}
	switch {
	case intent.Kind == models.KindGeneralQuestion:
		result.Message = msgGeneral.in(lang)
		if intent.PreliminaryMessage != "" {
			result.Message = intent.PreliminaryMessage
		}
	case intent.Kind == models.KindUnclear:
		result.Message = msgUnclear.in(lang)
	case !intent.HasLocation():
		result.Message = msgNeedLocation.in(lang)
	default:
		s.search(ctx, lang, &result)
	}

	// The stored user turn carries the intent it was read as.
	userTurn.Intent = &result.Intent
	result.UpdatedHistory = history.Append(userTurn, s.assistantTurn(ctx, result.Message, result.Results))

	log.InfoContext(ctx, "turn handled",
		"intent", result.Intent.Kind,
		"source", result.Intent.Source,
		"outcome", result.Resolution.Outcome,
		"reason", result.Resolution.Reason,
		"results", len(result.Results),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return result
}

// resolve runs the primary resolver and then the fallback strategies in order.
func (s *Service) resolve(ctx context.Context, history models.History) (models.ResolvedIntent, models.Resolution) {
	intent, err := s.primary.Resolve(ctx, history)
	if err == nil {
		return intent, models.OK()
	}

	reason := resolver.ReasonFor(err)
	if in, ok := s.fallback.ResolveFallback(history); ok {
		return in, models.Degraded(reason)
	}
	in := s.fallback.ResolveSearch(history)
	if in.Kind == models.KindUnclear {
		return in, models.Failed(models.ReasonUnclear)
	}
	return in, models.Degraded(reason)
}

func (s *Service) search(ctx context.Context, lang rules.Language, result *TurnResult) {
	intent := result.Intent
	page := s.tracker.ComputeOffset(intent)
	filter := companymodels.SearchFilter{
		Location:         intent.LocationValue(),
		ActivityKeywords: intent.ActivityKeywords,
		Limit:            page.Limit,
		Offset:           page.Offset,
	}
	result.Filter = &filter

	companies, err := s.searcher.Search(ctx, filter)
	if err != nil {
		if store.IsQueryFailed(err) {
			result.Resolution = models.Failed(models.ReasonQueryFailed)
			result.Message = msgUnavailable.in(lang)
			return
		}
		s.logger.With(requestcontext.LogAttrs(ctx)...).ErrorContext(ctx, "company search failed", "error", err)
		result.Resolution = models.Failed(models.ReasonInternal)
		result.Message = msgInternal.in(lang)
		return
	}
	s.metrics.ObserveResults(len(companies))

	if len(companies) == 0 {
		if intent.PageNumber > 1 {
			result.Message = fmt.Sprintf(msgNoMore.in(lang), intent.LocationValue())
		} else {
			result.Message = msgNothingFound.in(lang)
		}
		return
	}

	result.Results = companies
	result.HasMore = len(companies) == page.Limit
	result.Message = renderResults(lang, companies, result.HasMore)
}

func (s *Service) assistantTurn(ctx context.Context, content string, results []companymodels.Company) models.Turn {
	return models.Turn{
		Role:          models.RoleAssistant,
		Content:       content,
		ResultSummary: results,
		CreatedAt:     requestcontext.Now(ctx),
	}
}
