package resolver

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"ayala/internal/companies/locality"
	"ayala/internal/conversation/models"
	"ayala/internal/llm"
	"ayala/pkg/platform/circuit"
	"ayala/pkg/requestcontext"
)

const defaultTimeout = 15 * time.Second

// Primary resolves intents with a language model. Every call goes through the
// breaker and is bounded by the resolver timeout; timeouts and malformed
// answers both count as breaker failures.
type Primary struct {
	model       llm.Model
	breaker     *circuit.Breaker
	timeout     time.Duration
	maxQuantity int
	logger      *slog.Logger
	tracer      trace.Tracer
}

type PrimaryOption func(*Primary)

func WithTimeout(d time.Duration) PrimaryOption {
	return func(p *Primary) {
		if d > 0 {
			p.timeout = d
		}
	}
}

func WithMaxQuantity(n int) PrimaryOption {
	return func(p *Primary) {
		if n > 0 {
			p.maxQuantity = n
		}
	}
}

func WithLogger(logger *slog.Logger) PrimaryOption {
	return func(p *Primary) {
		p.logger = logger
	}
}

// NewPrimary wires a model behind a breaker.
func NewPrimary(model llm.Model, breaker *circuit.Breaker, opts ...PrimaryOption) (*Primary, error) {
	if model == nil {
		return nil, errors.New("language model is required")
	}
	if breaker == nil {
		return nil, errors.New("circuit breaker is required")
	}
	p := &Primary{
		model:       model,
		breaker:     breaker,
		timeout:     defaultTimeout,
		maxQuantity: models.MaxQuantity,
		tracer:      otel.Tracer("ayala/conversation/resolver"),
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.logger == nil {
		p.logger = slog.Default()
	}
	return p, nil
}

// Breaker exposes the gate for status and reset tooling.
func (p *Primary) Breaker() *circuit.Breaker {
	return p.breaker
}

// Resolve reads the last user turn of history. The returned intent is
// normalized and its location translated to the registry spelling.
func (p *Primary) Resolve(ctx context.Context, history models.History) (models.ResolvedIntent, error) {
	ctx, span := p.tracer.Start(ctx, "resolver.primary",
		trace.WithAttributes(attribute.Int("history.turns", len(history))))
	defer span.End()

	start := time.Now()
	intent, err := circuit.Execute(ctx, p.breaker, func(ctx context.Context) (models.ResolvedIntent, error) {
		return p.generate(ctx, history)
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "resolve failed")
		p.logger.WarnContext(ctx, "primary intent resolution failed",
			"request_id", requestcontext.RequestID(ctx),
			"reason", ReasonFor(err),
			"breaker_state", p.breaker.State().String(),
			"duration_ms", time.Since(start).Milliseconds(),
			"error", err,
		)
		return models.ResolvedIntent{}, err
	}

	intent.Source = models.SourcePrimary
	if intent.HasLocation() {
		intent = intent.WithLocation(locality.Translate(intent.LocationValue()))
	}
	intent = intent.Normalize(p.maxQuantity)
	span.SetAttributes(
		attribute.String("intent.kind", string(intent.Kind)),
		attribute.Int("intent.page", intent.PageNumber),
	)
	return intent, nil
}

func (p *Primary) generate(ctx context.Context, history models.History) (models.ResolvedIntent, error) {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	raw, err := p.model.Generate(ctx, buildRequest(history))
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return models.ResolvedIntent{}, fmt.Errorf("%w after %s: %v", ErrTimeout, p.timeout, err)
		}
		return models.ResolvedIntent{}, fmt.Errorf("generate intent: %w", err)
	}
	return decodeIntent(raw)
}

// healthProbe is a fixed, unambiguous request used by HealthCheck.
var healthProbe = models.History{{Role: models.RoleUser, Content: "Найди 5 компаний в Алматы"}}

// HealthCheck forces one request through the breaker and reports whether the
// model produced a decodable intent.
func (p *Primary) HealthCheck(ctx context.Context) error {
	_, err := p.Resolve(ctx, healthProbe)
	return err
}
