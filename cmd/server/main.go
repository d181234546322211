package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	chatstore "ayala/internal/chats/store"
	companyhandler "ayala/internal/companies/handler"
	companymetrics "ayala/internal/companies/metrics"
	companyservice "ayala/internal/companies/service"
	companystore "ayala/internal/companies/store"
	"ayala/internal/conversation/events"
	convhandler "ayala/internal/conversation/handler"
	convmetrics "ayala/internal/conversation/metrics"
	"ayala/internal/conversation/pagination"
	"ayala/internal/conversation/resolver"
	convservice "ayala/internal/conversation/service"
	"ayala/internal/llm"
	"ayala/internal/platform/config"
	"ayala/internal/platform/httpserver"
	"ayala/internal/platform/kafka"
	"ayala/internal/platform/logger"
	"ayala/internal/platform/metrics"
	"ayala/internal/platform/postgres"
	"ayala/internal/platform/redis"
	"ayala/pkg/platform/circuit"
	"ayala/pkg/platform/httputil"
	"ayala/pkg/platform/middleware/requestid"
)

// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Business logic lives in internal services packages.
func main() {
	cfg := config.FromEnv()
	log := logger.New(cfg.Log)
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config, log *slog.Logger) error {
	convMetrics := convmetrics.New()

	searcher, closeDB, err := buildCompanyStore(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer closeDB()

	history, closeRedis, err := buildHistoryStore(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer closeRedis()

	sink, closeKafka, err := buildEventSink(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer closeKafka()

	worker, err := events.NewWorker(sink, events.WithLogger(log), events.WithMetrics(convMetrics))
	if err != nil {
		return err
	}

	model, err := buildModel(ctx, cfg, log)
	if err != nil {
		return err
	}
	breaker := circuit.New("gemini",
		circuit.WithFailureThreshold(cfg.Breaker.FailureThreshold),
		circuit.WithOpenTimeout(cfg.Breaker.OpenTimeout),
		circuit.WithOnStateChange(func(name string, from, to circuit.State) {
			convMetrics.BreakerStateChanged(name, from, to)
			log.Warn("circuit breaker state changed", "dependency", name, "from", from.String(), "to", to.String())
		}),
	)
	primary, err := resolver.NewPrimary(model, breaker,
		resolver.WithTimeout(cfg.Gemini.Timeout),
		resolver.WithMaxQuantity(cfg.Search.MaxLimit),
		resolver.WithLogger(log),
	)
	if err != nil {
		return err
	}

	conversation, err := convservice.New(
		primary,
		resolver.NewHeuristic(cfg.Search.MaxLimit),
		pagination.New(cfg.Search.MaxLimit),
		searcher,
		convservice.WithLogger(log),
		convservice.WithMetrics(convMetrics),
		convservice.WithHistoryStore(history),
		convservice.WithEventPublisher(worker),
	)
	if err != nil {
		return err
	}
	companies, err := companyservice.New(searcher,
		companyservice.WithLogger(log),
		companyservice.WithMaxLimit(cfg.Search.MaxLimit),
	)
	if err != nil {
		return err
	}

	httpMetrics := metrics.New(prometheus.DefaultRegisterer)
	r := chi.NewRouter()
	r.Use(requestid.Middleware)
	r.Use(httpMetrics.Middleware)
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", promhttp.Handler())
	companyhandler.New(companies, log).Register(r)
	convhandler.New(conversation, breaker, primary, cfg.Server.AdminToken, log).Register(r)

	srv := httpserver.New(cfg.Server, r)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return worker.Run(gctx)
	})
	g.Go(func() error {
		log.Info("starting ayala", "addr", cfg.Server.Addr, "model", modelName(model))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		log.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

func buildCompanyStore(ctx context.Context, cfg config.Config, log *slog.Logger) (companyservice.Store, func(), error) {
	db, err := postgres.Open(ctx, cfg.Database)
	if err != nil {
		return nil, nil, err
	}
	if db == nil {
		log.Warn("DATABASE_URL not set, using empty in-memory company registry")
		return companystore.NewInMemory(), func() {}, nil
	}
	st := companystore.NewPostgres(db,
		companystore.WithLogger(log),
		companystore.WithMetrics(companymetrics.New()),
		companystore.WithQueryTimeout(cfg.Search.QueryTimeout),
	)
	return st, func() { _ = db.Close() }, nil
}

func buildHistoryStore(ctx context.Context, cfg config.Config, log *slog.Logger) (convservice.HistoryStore, func(), error) {
	opts := []chatstore.Option{
		chatstore.WithTTL(cfg.Chat.SessionTTL),
		chatstore.WithMaxTurns(cfg.Chat.MaxTurns),
	}
	rc, err := redis.Open(ctx, cfg.Redis)
	if err != nil {
		return nil, nil, err
	}
	if rc == nil {
		log.Warn("REDIS_URL not set, chat sessions are kept in memory")
		return chatstore.NewInMemory(opts...), func() {}, nil
	}
	return chatstore.NewRedis(rc, opts...), func() { _ = rc.Close() }, nil
}

func buildEventSink(ctx context.Context, cfg config.Config, log *slog.Logger) (events.Sink, func(), error) {
	client, err := kafka.NewClient(ctx, cfg.Kafka)
	if err != nil {
		return nil, nil, err
	}
	if client == nil {
		log.Warn("KAFKA_BROKERS not set, turn events are kept in memory")
		return events.NewMemorySink(), func() {}, nil
	}
	if err := events.EnsureTopic(ctx, client, cfg.Kafka.TurnTopic,
		int32(cfg.Kafka.Partitions), int16(cfg.Kafka.ReplicationFactor)); err != nil {
		client.Close()
		return nil, nil, err
	}
	sink, err := events.NewKafkaSink(client, cfg.Kafka.TurnTopic)
	if err != nil {
		client.Close()
		return nil, nil, err
	}
	return sink, client.Close, nil
}

func buildModel(ctx context.Context, cfg config.Config, log *slog.Logger) (llm.Model, error) {
	if cfg.Gemini.APIKey == "" {
		log.Warn("GEMINI_API_KEY not set, intent resolution runs on heuristics only")
		return llm.Disabled{}, nil
	}
	return llm.NewGemini(ctx, cfg.Gemini.APIKey, cfg.Gemini.Model)
}

func modelName(m llm.Model) string {
	if named, ok := m.(interface{ Name() string }); ok {
		return named.Name()
	}
	return "disabled"
}
