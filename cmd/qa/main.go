package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/Adithya-Monish-Kumar-K/Member-QA-Platform/internal/analytics"
	"github.com/Adithya-Monish-Kumar-K/Member-QA-Platform/internal/corpus"
	"github.com/Adithya-Monish-Kumar-K/Member-QA-Platform/internal/qa"
	qacache "github.com/Adithya-Monish-Kumar-K/Member-QA-Platform/internal/qa/cache"
	"github.com/Adithya-Monish-Kumar-K/Member-QA-Platform/internal/qa/handler"
	"github.com/Adithya-Monish-Kumar-K/Member-QA-Platform/pkg/config"
	"github.com/Adithya-Monish-Kumar-K/Member-QA-Platform/pkg/health"
	"github.com/Adithya-Monish-Kumar-K/Member-QA-Platform/pkg/kafka"
	"github.com/Adithya-Monish-Kumar-K/Member-QA-Platform/pkg/logger"
	"github.com/Adithya-Monish-Kumar-K/Member-QA-Platform/pkg/metrics"
	"github.com/Adithya-Monish-Kumar-K/Member-QA-Platform/pkg/middleware"
	"github.com/Adithya-Monish-Kumar-K/Member-QA-Platform/pkg/postgres"
	pkgredis "github.com/Adithya-Monish-Kumar-K/Member-QA-Platform/pkg/redis"
	"github.com/Adithya-Monish-Kumar-K/Member-QA-Platform/pkg/resilience"
)

func main() {
	configPath := flag.String("config", "configs/development.yaml", "path to config file")
	flag.Parse()

	_ = godotenv.Load()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger.Setup(cfg.Logging.Level, cfg.Logging.Format)
	slog.Info("starting member QA service", "port", cfg.Server.Port, "corpus_source", cfg.Corpus.Source)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var m *metrics.Metrics
	if cfg.Metrics.Enabled {
		m = metrics.New()
		shutdownMetrics := metrics.StartServer(cfg.Metrics.Port)
		defer shutdownMetrics(context.Background())
	}

	var pgClient *postgres.Client
	if cfg.Corpus.Source == "postgres" {
		pgClient, err = postgres.New(cfg.Postgres)
		if err != nil {
			slog.Error("failed to connect to postgres", "error", err)
			os.Exit(1)
		}
		defer pgClient.Close()
	}

	source, err := corpus.FromConfig(cfg.Corpus, pgClient)
	if err != nil {
		slog.Error("failed to configure corpus source", "error", err)
		os.Exit(1)
	}

	engine := qa.NewEngine(source, cfg.QA, m)
	err = resilience.WithTimeout(ctx, cfg.Corpus.LoadTimeout, "initial-index-build", func(ctx context.Context) error {
		return engine.Ensure(ctx)
	})
	if err != nil {
		// A failed initial build is not fatal: every question degrades to
		// the not-found sentinel until a refresh succeeds.
		slog.Warn("initial index build failed, serving degraded", "error", err)
	}

	var answerCache *qacache.AnswerCache
	redisClient, err := pkgredis.NewClient(cfg.Redis)
	if err != nil {
		slog.Warn("redis unavailable, answer caching disabled", "error", err)
	} else {
		defer redisClient.Close()
		answerCache = qacache.New(redisClient, cfg.Redis)
		slog.Info("answer cache enabled",
			"addr", cfg.Redis.Addr,
			"ttl", cfg.Redis.CacheTTL,
		)
	}

	producer := kafka.NewProducer(cfg.Kafka, cfg.Kafka.Topics.QuestionEvents)
	defer producer.Close()
	collector := analytics.NewCollector(producer, 10000)
	collector.Start(ctx)
	defer collector.Close()

	aggregator := analytics.NewAggregator(nil)
	consumer := kafka.NewConsumer(cfg.Kafka, cfg.Kafka.Topics.QuestionEvents, analytics.HandleEvent(aggregator))
	aggregator.SetConsumer(consumer)
	go func() {
		if err := aggregator.Start(ctx); err != nil {
			slog.Error("analytics aggregator error", "error", err)
		}
	}()
	slog.Info("analytics pipeline started", "topic", cfg.Kafka.Topics.QuestionEvents)

	checker := health.NewChecker()
	checker.Register("qa_index", func(ctx context.Context) health.ComponentHealth {
		if engine.Ready() {
			return health.ComponentHealth{
				Status:  health.StatusUp,
				Message: fmt.Sprintf("%d messages indexed", engine.CorpusSize()),
			}
		}
		return health.ComponentHealth{Status: health.StatusDegraded, Message: "index not built"}
	})
	checker.Register("redis", func(ctx context.Context) health.ComponentHealth {
		if redisClient == nil {
			return health.ComponentHealth{Status: health.StatusDegraded, Message: "not configured"}
		}
		if err := redisClient.Ping(ctx); err != nil {
			return health.ComponentHealth{Status: health.StatusDegraded, Message: err.Error()}
		}
		return health.ComponentHealth{Status: health.StatusUp}
	})
	if pgClient != nil {
		checker.Register("postgres", func(ctx context.Context) health.ComponentHealth {
			if err := pgClient.DB.PingContext(ctx); err != nil {
				return health.ComponentHealth{Status: health.StatusDown, Message: err.Error()}
			}
			return health.ComponentHealth{Status: health.StatusUp}
		})
	}

	h := handler.New(engine, answerCache, collector, m)
	analyticsH := analytics.NewHandler(aggregator)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v1/ask", h.Ask)
	mux.HandleFunc("POST /api/v1/refresh", h.Refresh)
	mux.HandleFunc("GET /api/v1/cache/stats", h.CacheStats)
	mux.HandleFunc("POST /api/v1/cache/invalidate", h.CacheInvalidate)
	mux.HandleFunc("GET /api/v1/analytics", analyticsH.Stats)
	mux.HandleFunc("GET /health/live", checker.LiveHandler())
	mux.HandleFunc("GET /health/ready", checker.ReadyHandler())

	var chain http.Handler = mux
	chain = middleware.Timeout(cfg.Server.WriteTimeout)(chain)
	if m != nil {
		chain = middleware.Metrics(m)(chain)
	}
	chain = middleware.RequestID(chain)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      chain,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		<-ctx.Done()
		slog.Info("shutdown signal received")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("server shutdown error", "error", err)
		}
	}()

	slog.Info("member QA service listening", "addr", server.Addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		slog.Error("server error", "error", err)
		os.Exit(1)
	}

	slog.Info("member QA service stopped")
}
