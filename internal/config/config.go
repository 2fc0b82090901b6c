// Package config loads runtime configuration from the environment.
//
// Everything is environment-driven so the same binaries run unchanged in
// docker-compose and in production; there is no config file. Secrets
// (DATABASE_URL, INGEST_TOKEN, LLM_API_KEY) are injected by the deployment
// platform.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config is the full runtime configuration shared by the api and scraper
// binaries. Fields that only one binary uses are still loaded everywhere;
// validation only enforces what the caller declares it needs.
type Config struct {
	Env         string
	DatabaseURL string

	IngestToken string

	LLMAPIKey string
	LLMModel  string

	AllowedOrigins []string
	ListenAddr     string

	NATSURL  string
	RedisURL string

	CacheTTL       time.Duration
	ScrapeInterval time.Duration
	CycleDeadline  time.Duration

	// Per-source in-flight cap for collectors; clamped to [1,4].
	CollectorConcurrency int

	OTLPEndpoint string
}

// Load reads the environment and applies defaults.
func Load() (*Config, error) {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("ENV", "development")
	v.SetDefault("LISTEN_ADDR", ":8080")
	v.SetDefault("LLM_MODEL", "claude-haiku-4-5")
	v.SetDefault("CACHE_TTL_SECONDS", 15)
	v.SetDefault("SCRAPE_INTERVAL", "15m")
	v.SetDefault("CYCLE_DEADLINE", "10m")
	v.SetDefault("COLLECTOR_CONCURRENCY", 2)

	scrapeInterval, err := time.ParseDuration(v.GetString("SCRAPE_INTERVAL"))
	if err != nil {
		return nil, fmt.Errorf("config: SCRAPE_INTERVAL: %w", err)
	}
	cycleDeadline, err := time.ParseDuration(v.GetString("CYCLE_DEADLINE"))
	if err != nil {
		return nil, fmt.Errorf("config: CYCLE_DEADLINE: %w", err)
	}

	conc := v.GetInt("COLLECTOR_CONCURRENCY")
	if conc < 1 {
		conc = 1
	}
	if conc > 4 {
		conc = 4
	}

	cfg := &Config{
		Env:                  v.GetString("ENV"),
		DatabaseURL:          v.GetString("DATABASE_URL"),
		IngestToken:          v.GetString("INGEST_TOKEN"),
		LLMAPIKey:            v.GetString("LLM_API_KEY"),
		LLMModel:             v.GetString("LLM_MODEL"),
		AllowedOrigins:       splitOrigins(v.GetString("ALLOWED_ORIGINS")),
		ListenAddr:           v.GetString("LISTEN_ADDR"),
		NATSURL:              v.GetString("NATS_URL"),
		RedisURL:             v.GetString("REDIS_URL"),
		CacheTTL:             time.Duration(v.GetInt("CACHE_TTL_SECONDS")) * time.Second,
		ScrapeInterval:       scrapeInterval,
		CycleDeadline:        cycleDeadline,
		CollectorConcurrency: conc,
		OTLPEndpoint:         v.GetString("OTEL_EXPORTER_OTLP_ENDPOINT"),
	}
	return cfg, nil
}

// RequireAPI validates the settings the api binary cannot run without.
func (c *Config) RequireAPI() error {
	if c.DatabaseURL == "" {
		return fmt.Errorf("config: DATABASE_URL is required")
	}
	if c.IngestToken == "" {
		return fmt.Errorf("config: INGEST_TOKEN is required")
	}
	return nil
}

// RequireScraper validates the settings the scraper binary cannot run without.
func (c *Config) RequireScraper() error {
	if c.DatabaseURL == "" {
		return fmt.Errorf("config: DATABASE_URL is required")
	}
	return nil
}

// splitOrigins parses the comma-separated exact-origin whitelist. Wildcards
// are deliberately not supported; an empty value means no cross-origin access.
func splitOrigins(raw string) []string {
	var out []string
	for _, o := range strings.Split(raw, ",") {
		o = strings.TrimSpace(o)
		if o == "" || o == "*" {
			continue
		}
		out = append(out, o)
	}
	return out
}
