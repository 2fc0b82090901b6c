// Package main is the entry point for the DroneWatch scraper — the periodic
// worker that polls the configured feeds, runs every fresh report through the
// validation/geocoding/dedup pipeline, and writes consolidated incidents. It
// shares the pipeline code with the api binary but exposes no HTTP surface.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/exaring/otelpgx"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/dronewatch/dronewatch/internal/collector"
	"github.com/dronewatch/dronewatch/internal/config"
	"github.com/dronewatch/dronewatch/internal/events"
	"github.com/dronewatch/dronewatch/internal/geocoder"
	"github.com/dronewatch/dronewatch/internal/registry"
	"github.com/dronewatch/dronewatch/internal/repository/db"
	"github.com/dronewatch/dronewatch/internal/scheduler"
	"github.com/dronewatch/dronewatch/internal/service"
	"github.com/dronewatch/dronewatch/internal/telemetry"
	"github.com/dronewatch/dronewatch/internal/validator"
	"github.com/dronewatch/dronewatch/internal/validator/llm"
	"github.com/dronewatch/dronewatch/internal/worker"
)

func main() {
	// ── Structured Logger ──────────────────────────────────────────────────
	logger, _ := zap.NewProduction()
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("config load failed", zap.Error(err))
	}
	if err := cfg.RequireScraper(); err != nil {
		logger.Fatal("config invalid", zap.Error(err))
	}

	// ── OpenTelemetry Tracer ───────────────────────────────────────────────
	shutdownTracer, err := telemetry.Init(context.Background(), "dronewatch-scraper", cfg.OTLPEndpoint, cfg.Env)
	if err != nil {
		logger.Error("failed to init OTel tracer", zap.Error(err))
	} else {
		defer shutdownTracer(context.Background())
	}

	// ── Postgres Pool ──────────────────────────────────────────────────────
	poolCfg, err := pgxpool.ParseConfig(cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("failed to parse DATABASE_URL", zap.Error(err))
	}
	poolCfg.ConnConfig.Tracer = otelpgx.NewTracer()

	pool, err := pgxpool.NewWithConfig(context.Background(), poolCfg)
	if err != nil {
		logger.Fatal("Postgres connection failed", zap.Error(err))
	}
	defer pool.Close()

	if err := pool.Ping(context.Background()); err != nil {
		logger.Fatal("Postgres ping failed", zap.Error(err))
	}
	logger.Info("Postgres connected")

	store := db.NewStore(pool)

	// ── Registry + Pipeline ────────────────────────────────────────────────
	reg, err := registry.New()
	if err != nil {
		logger.Fatal("registry invalid", zap.Error(err))
	}

	var classifier validator.Classifier
	if cfg.LLMAPIKey != "" {
		classifier = llm.NewAnthropicClassifier(cfg.LLMAPIKey, cfg.LLMModel, logger)
		logger.Info("LLM classifier enabled", zap.String("model", cfg.LLMModel))
	} else {
		logger.Warn("no LLM_API_KEY, validator runs degraded")
	}
	val := validator.New(classifier, logger)
	geo := geocoder.New(reg)

	// ── NATS JetStream (optional) ──────────────────────────────────────────
	var publisher service.EventPublisher
	if cfg.NATSURL != "" {
		pub, err := events.NewPublisher(cfg.NATSURL, logger)
		if err != nil {
			logger.Warn("NATS unavailable, events disabled", zap.Error(err))
		} else {
			defer pub.Close()
			publisher = pub
		}
	}

	ingestSvc := service.NewIngestService(store, reg, val, geo, publisher, logger)

	// ── Collectors ─────────────────────────────────────────────────────────
	var collectors []collector.Collector
	for _, src := range reg.Active() {
		if src.FeedURL == "" {
			continue
		}
		collectors = append(collectors, collector.NewRSSCollector(src, logger))
	}
	if len(collectors) == 0 {
		logger.Fatal("no active sources with feeds")
	}
	logger.Info("collectors ready", zap.Int("count", len(collectors)))

	metrics, err := telemetry.NewPipelineMetrics()
	if err != nil {
		logger.Warn("pipeline metrics unavailable", zap.Error(err))
	}

	runner := worker.NewScrapeRunner(
		collectors, ingestSvc, store,
		cfg.CycleDeadline, cfg.CollectorConcurrency,
		metrics, logger,
	)

	// ── Scheduler ──────────────────────────────────────────────────────────
	sched, err := scheduler.New(runner, store, cfg.ScrapeInterval, logger)
	if err != nil {
		logger.Fatal("scheduler setup failed", zap.Error(err))
	}
	sched.Start()
	logger.Info("dronewatch-scraper running",
		zap.Duration("interval", cfg.ScrapeInterval),
		zap.Duration("cycle_deadline", cfg.CycleDeadline),
	)

	// ── Graceful Shutdown ──────────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	logger.Info("initiating graceful shutdown")
	sched.Stop()
	logger.Info("dronewatch-scraper shut down cleanly")
}
