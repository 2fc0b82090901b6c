// Package worker drives the periodic scrape cycle: fan out over the active
// collectors, funnel every fresh report through the ingest pipeline, and
// short-circuit already-seen reports via the scraper cache.
package worker

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
	"go.uber.org/zap"

	"github.com/dronewatch/dronewatch/internal/collector"
	"github.com/dronewatch/dronewatch/internal/dedup"
	"github.com/dronewatch/dronewatch/internal/model"
	"github.com/dronewatch/dronewatch/internal/registry"
	"github.com/dronewatch/dronewatch/internal/repository/db"
	"github.com/dronewatch/dronewatch/internal/service"
	"github.com/dronewatch/dronewatch/internal/telemetry"
)

// Ingestor is the pipeline surface the runner feeds reports into.
type Ingestor interface {
	Ingest(ctx context.Context, in service.IngestInput) (service.IngestResult, error)
}

// CycleStats aggregates one scrape cycle across all sources.
type CycleStats struct {
	Sources   int
	Reports   int
	Created   int
	Merged    int
	Rejected  int
	CacheHits int
	Errors    int
	Duration  time.Duration
}

// ScrapeRunner executes scrape cycles. It is safe to call RunCycle from a
// single scheduler goroutine; cycles never overlap because the scheduler
// waits for completion.
type ScrapeRunner struct {
	collectors  []collector.Collector
	ingest      Ingestor
	store       service.Store
	deadline    time.Duration
	concurrency int
	metrics     *telemetry.PipelineMetrics
	logger      *zap.Logger
}

// NewScrapeRunner builds a runner over the given collectors. metrics may be
// nil.
func NewScrapeRunner(
	collectors []collector.Collector,
	ingest Ingestor,
	store service.Store,
	deadline time.Duration,
	concurrency int,
	metrics *telemetry.PipelineMetrics,
	logger *zap.Logger,
) *ScrapeRunner {
	if concurrency < 1 {
		concurrency = 1
	}
	return &ScrapeRunner{
		collectors:  collectors,
		ingest:      ingest,
		store:       store,
		deadline:    deadline,
		concurrency: concurrency,
		metrics:     metrics,
		logger:      logger,
	}
}

// RunCycle runs one full scrape cycle under the cycle deadline. Collectors
// run in parallel bounded by the concurrency cap; reports from one source are
// processed in feed order.
func (r *ScrapeRunner) RunCycle(ctx context.Context) CycleStats {
	start := time.Now()
	cctx, cancel := context.WithTimeout(ctx, r.deadline)
	defer cancel()

	sem := make(chan struct{}, r.concurrency)
	results := make(chan CycleStats, len(r.collectors))

	var wg sync.WaitGroup
	for _, col := range r.collectors {
		wg.Add(1)
		go func(col collector.Collector) {
			defer wg.Done()
			select {
			case sem <- struct{}{}:
				defer func() { <-sem }()
			case <-cctx.Done():
				results <- CycleStats{Errors: 1}
				return
			}
			results <- r.runSource(cctx, col)
		}(col)
	}
	wg.Wait()
	close(results)

	total := CycleStats{Sources: len(r.collectors)}
	for res := range results {
		total.Reports += res.Reports
		total.Created += res.Created
		total.Merged += res.Merged
		total.Rejected += res.Rejected
		total.CacheHits += res.CacheHits
		total.Errors += res.Errors
	}
	total.Duration = time.Since(start)

	if r.metrics != nil {
		r.metrics.AddOutcome(ctx, "created", total.Created)
		r.metrics.AddOutcome(ctx, "merged", total.Merged)
		r.metrics.AddOutcome(ctx, "rejected", total.Rejected)
		r.metrics.AddOutcome(ctx, "cache_hit", total.CacheHits)
		r.metrics.AddOutcome(ctx, "error", total.Errors)
	}

	r.logger.Info("scrape cycle finished",
		zap.Int("sources", total.Sources),
		zap.Int("reports", total.Reports),
		zap.Int("created", total.Created),
		zap.Int("merged", total.Merged),
		zap.Int("rejected", total.Rejected),
		zap.Int("cache_hits", total.CacheHits),
		zap.Int("errors", total.Errors),
		zap.Duration("duration", total.Duration),
	)
	return total
}

func (r *ScrapeRunner) runSource(ctx context.Context, col collector.Collector) CycleStats {
	var stats CycleStats

	reports, cstats, err := col.Collect(ctx)
	if err != nil {
		stats.Errors++
		r.logger.Warn("collector failed",
			zap.String("source", col.Source().Key),
			zap.Error(err),
		)
		return stats
	}
	r.logger.Debug("collector done",
		zap.String("source", cstats.SourceKey),
		zap.Int("found", cstats.Found),
		zap.Duration("duration", cstats.Duration),
	)
	if r.metrics != nil {
		r.metrics.AddReports(ctx, cstats.SourceKey, cstats.Found)
	}

	for _, report := range reports {
		if ctx.Err() != nil {
			stats.Errors++
			return stats
		}
		stats.Reports++
		r.processReport(ctx, col.Source(), report, &stats)
	}
	return stats
}

func (r *ScrapeRunner) processReport(ctx context.Context, desc registry.SourceDescriptor, report model.RawReport, stats *CycleStats) {
	fingerprint := dedup.ReportFingerprint(report.SourceURL, report.Title)
	q := r.store.Queries()

	_, err := q.GetScraperCacheEntry(ctx, fingerprint)
	if err == nil {
		stats.CacheHits++
		return
	}
	if !errors.Is(err, db.ErrNoRows) {
		stats.Errors++
		r.logger.Warn("scraper cache lookup failed", zap.Error(err))
		// Fall through: reprocessing a report is safe, dropping one is not.
	}

	res, err := r.ingest.Ingest(ctx, service.IngestInput{
		Title:        report.Title,
		Narrative:    report.Body,
		OccurredAt:   report.PublishedAt,
		SourceURL:    report.SourceURL,
		SourceType:   desc.Type,
		SourceName:   desc.Name,
		TrustWeight:  desc.TrustWeight,
		Lang:         report.Lang,
		LocationHint: report.LocationHint,
		PublishedAt:  report.PublishedAt,
	})

	switch {
	case err == nil:
		if res.Action == service.ActionMerged {
			stats.Merged++
		} else {
			stats.Created++
		}
	case isPermanentRejection(err):
		stats.Rejected++
		if rej, _ := service.AsRejection(err); rej != nil {
			r.logger.Debug("report rejected",
				zap.String("source", desc.Key),
				zap.String("reason", rej.Reason),
				zap.String("detail", rej.Detail),
			)
		}
	default:
		// Transient failure: leave the report uncached so the next cycle
		// retries it.
		stats.Errors++
		r.logger.Warn("ingest failed",
			zap.String("source", desc.Key),
			zap.String("url", report.SourceURL),
			zap.Error(err),
		)
		return
	}

	occurredAt := pgtype.Timestamptz{}
	if !report.PublishedAt.IsZero() {
		occurredAt = pgtype.Timestamptz{Time: report.PublishedAt, Valid: true}
	}
	if err := q.PutScraperCacheEntry(ctx, db.PutScraperCacheEntryParams{
		IncidentHash: fingerprint,
		OccurredAt:   occurredAt,
		SourceName:   desc.Key,
	}); err != nil {
		stats.Errors++
		r.logger.Warn("scraper cache write failed", zap.Error(err))
	}
}

// isPermanentRejection reports whether err means the report will never be
// accepted, so it can be cached and skipped in future cycles.
func isPermanentRejection(err error) bool {
	if _, ok := service.AsRejection(err); ok {
		return true
	}
	return errors.Is(err, service.ErrInvalidInput)
}
