// Package scheduler owns the scraper's periodic jobs: the scrape cycle on a
// fixed interval and the nightly scraper-cache purge.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/dronewatch/dronewatch/internal/service"
	"github.com/dronewatch/dronewatch/internal/worker"
)

// cachePurgeAge is how long processed-report fingerprints are kept. Old
// entries only matter within the feed lookback window, so 30 days is generous.
const cachePurgeAge = 30 * 24 * time.Hour

// purgeSchedule runs the cache purge nightly, off-peak.
const purgeSchedule = "0 3 * * *"

// Scheduler runs the scrape cycle and housekeeping jobs.
type Scheduler struct {
	cron   *cron.Cron
	runner *worker.ScrapeRunner
	store  service.Store
	logger *zap.Logger
}

// New builds the scheduler. interval is the scrape cadence.
func New(runner *worker.ScrapeRunner, store service.Store, interval time.Duration, logger *zap.Logger) (*Scheduler, error) {
	s := &Scheduler{
		cron:   cron.New(),
		runner: runner,
		store:  store,
		logger: logger,
	}

	if _, err := s.cron.AddFunc(fmt.Sprintf("@every %s", interval), s.scrape); err != nil {
		return nil, fmt.Errorf("schedule scrape: %w", err)
	}
	if _, err := s.cron.AddFunc(purgeSchedule, s.purgeCache); err != nil {
		return nil, fmt.Errorf("schedule cache purge: %w", err)
	}
	return s, nil
}

// Start launches the cron loop and fires one immediate scrape so a fresh
// deployment does not wait a full interval for data.
func (s *Scheduler) Start() {
	s.cron.Start()
	go s.scrape()
}

// Stop halts scheduling and waits for running jobs to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}

func (s *Scheduler) scrape() {
	s.runner.RunCycle(context.Background())
}

func (s *Scheduler) purgeCache() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	cutoff := pgtype.Timestamptz{Time: time.Now().Add(-cachePurgeAge), Valid: true}
	purged, err := s.store.Queries().PurgeScraperCache(ctx, cutoff)
	if err != nil {
		s.logger.Warn("scraper cache purge failed", zap.Error(err))
		return
	}
	s.logger.Info("scraper cache purged", zap.Int64("entries", purged))
}
