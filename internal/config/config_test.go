package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, ":8080", cfg.ListenAddr)
	assert.Equal(t, "claude-haiku-4-5", cfg.LLMModel)
	assert.Equal(t, 15*time.Second, cfg.CacheTTL)
	assert.Equal(t, 15*time.Minute, cfg.ScrapeInterval)
	assert.Equal(t, 10*time.Minute, cfg.CycleDeadline)
	assert.Equal(t, 2, cfg.CollectorConcurrency)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("ENV", "production")
	t.Setenv("SCRAPE_INTERVAL", "5m")
	t.Setenv("ALLOWED_ORIGINS", "https://dronewatch.eu, https://staging.dronewatch.eu")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "production", cfg.Env)
	assert.Equal(t, 5*time.Minute, cfg.ScrapeInterval)
	assert.Equal(t, []string{"https://dronewatch.eu", "https://staging.dronewatch.eu"}, cfg.AllowedOrigins)
}

func TestLoadRejectsBadDurations(t *testing.T) {
	t.Setenv("SCRAPE_INTERVAL", "soon")

	_, err := Load()
	assert.Error(t, err)
}

func TestCollectorConcurrencyClamped(t *testing.T) {
	t.Setenv("COLLECTOR_CONCURRENCY", "99")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 4, cfg.CollectorConcurrency)

	t.Setenv("COLLECTOR_CONCURRENCY", "0")
	cfg, err = Load()
	require.NoError(t, err)
	assert.Equal(t, 1, cfg.CollectorConcurrency)
}

func TestSplitOriginsDropsWildcard(t *testing.T) {
	assert.Nil(t, splitOrigins("*"))
	assert.Nil(t, splitOrigins(""))
	assert.Equal(t, []string{"https://a.example.dk"}, splitOrigins("https://a.example.dk,*,"))
}

func TestRequireAPI(t *testing.T) {
	cfg := &Config{}
	assert.Error(t, cfg.RequireAPI())

	cfg.DatabaseURL = "postgres://localhost/dw"
	assert.Error(t, cfg.RequireAPI(), "ingest token still missing")

	cfg.IngestToken = "secret"
	assert.NoError(t, cfg.RequireAPI())
	assert.NoError(t, cfg.RequireScraper())
}
