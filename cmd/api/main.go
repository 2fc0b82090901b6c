// Package main is the entry point for the DroneWatch API — the public query
// surface (incident list, detail, embed snippet) plus the authenticated
// ingest endpoint. The scraper binary feeds the same pipeline through the
// same service code; this process is the only HTTP listener.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/exaring/otelpgx"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.opentelemetry.io/contrib/instrumentation/github.com/labstack/echo/otelecho"
	"go.uber.org/zap"

	"github.com/dronewatch/dronewatch/internal/cache"
	"github.com/dronewatch/dronewatch/internal/config"
	"github.com/dronewatch/dronewatch/internal/events"
	"github.com/dronewatch/dronewatch/internal/geocoder"
	"github.com/dronewatch/dronewatch/internal/handler"
	"github.com/dronewatch/dronewatch/internal/registry"
	"github.com/dronewatch/dronewatch/internal/repository/db"
	"github.com/dronewatch/dronewatch/internal/service"
	"github.com/dronewatch/dronewatch/internal/telemetry"
	"github.com/dronewatch/dronewatch/internal/validator"
	"github.com/dronewatch/dronewatch/internal/validator/llm"
)

func main() {
	// ── Structured Logger ──────────────────────────────────────────────────
	logger, _ := zap.NewProduction()
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("config load failed", zap.Error(err))
	}
	if err := cfg.RequireAPI(); err != nil {
		logger.Fatal("config invalid", zap.Error(err))
	}

	// ── OpenTelemetry Tracer ───────────────────────────────────────────────
	shutdownTracer, err := telemetry.Init(context.Background(), "dronewatch-api", cfg.OTLPEndpoint, cfg.Env)
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

	// ── Redis Cache (optional) ─────────────────────────────────────────────
	var listCache service.ListCache
	if cfg.RedisURL != "" {
		c, err := cache.New(context.Background(), cfg.RedisURL, logger)
		if err != nil {
			logger.Warn("Redis unavailable, list cache disabled", zap.Error(err))
		} else {
			defer c.Close()
			listCache = c
			logger.Info("Redis list cache enabled", zap.Duration("ttl", cfg.CacheTTL))
		}
	}

	ingestSvc := service.NewIngestService(store, reg, val, geo, publisher, logger)
	incidentSvc := service.NewIncidentService(store, reg, listCache, cfg.CacheTTL, logger)

	// ── HTTP Server ────────────────────────────────────────────────────────
	e := echo.New()
	e.HideBanner = true

	e.Use(otelecho.Middleware("dronewatch-api"))
	if cors := handler.CORS(cfg.AllowedOrigins); cors != nil {
		e.Use(cors)
	}
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:    true,
		LogStatus: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			logger.Info("HTTP request",
				zap.String("URI", v.URI),
				zap.Int("status", v.Status),
			)
			return nil
		},
	}))
	e.Use(middleware.Recover())

	handler.New(ingestSvc, incidentSvc, store, cfg.IngestToken, cfg.CacheTTL, logger).Register(e)

	go func() {
		logger.Info("dronewatch-api listening", zap.String("addr", cfg.ListenAddr))
		if err := e.Start(cfg.ListenAddr); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP server failure", zap.Error(err))
		}
	}()

	// ── Graceful Shutdown ──────────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	logger.Info("initiating graceful shutdown")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("Echo shutdown error", zap.Error(err))
	}
	logger.Info("dronewatch-api shut down cleanly")
}
