package db

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
)

const getScraperCacheEntry = `
SELECT id, incident_hash, occurred_at, source_name, processed_at
FROM scraper_cache
WHERE incident_hash = $1`

// GetScraperCacheEntry looks up a processed-report fingerprint. ErrNoRows
// means the report has not been seen (or its entry was purged).
func (q *Queries) GetScraperCacheEntry(ctx context.Context, incidentHash string) (ScraperCacheEntry, error) {
	var e ScraperCacheEntry
	err := q.db.QueryRow(ctx, getScraperCacheEntry, incidentHash).Scan(
		&e.ID, &e.IncidentHash, &e.OccurredAt, &e.SourceName, &e.ProcessedAt,
	)
	return e, err
}

const putScraperCacheEntry = `
INSERT INTO scraper_cache (incident_hash, occurred_at, source_name, processed_at)
VALUES ($1, $2, $3, now())
ON CONFLICT (incident_hash) DO UPDATE SET processed_at = now()`

// PutScraperCacheEntryParams record one processed report.
type PutScraperCacheEntryParams struct {
	IncidentHash string
	OccurredAt   pgtype.Timestamptz
	SourceName   string
}

// PutScraperCacheEntry records (or refreshes) a processed-report fingerprint.
func (q *Queries) PutScraperCacheEntry(ctx context.Context, arg PutScraperCacheEntryParams) error {
	_, err := q.db.Exec(ctx, putScraperCacheEntry, arg.IncidentHash, arg.OccurredAt, arg.SourceName)
	return err
}

const purgeScraperCache = `DELETE FROM scraper_cache WHERE processed_at < $1`

// PurgeScraperCache deletes entries older than the cutoff and returns how
// many were removed. The scheduler runs this daily with a 30-day cutoff.
func (q *Queries) PurgeScraperCache(ctx context.Context, olderThan pgtype.Timestamptz) (int64, error) {
	tag, err := q.db.Exec(ctx, purgeScraperCache, olderThan)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
