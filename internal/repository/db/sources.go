package db

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
)

const upsertSource = `
INSERT INTO sources (id, name, domain, source_type, homepage_url, feed_url, trust_weight, country, is_active)
VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''), $7, NULLIF($8, ''), $9)
ON CONFLICT (domain, source_type) DO UPDATE SET
	name         = EXCLUDED.name,
	homepage_url = EXCLUDED.homepage_url,
	trust_weight = EXCLUDED.trust_weight,
	is_active    = EXCLUDED.is_active
RETURNING id, name, domain, source_type, homepage_url, feed_url, trust_weight, country, is_active, metadata, created_at`

// UpsertSourceParams insert or refresh a publisher keyed on (domain, type).
type UpsertSourceParams struct {
	ID          pgtype.UUID
	Name        string
	Domain      string
	SourceType  string
	HomepageURL string
	FeedURL     string
	TrustWeight float64
	Country     string
	IsActive    bool
}

// UpsertSource inserts or updates a publisher row and returns it. Sources are
// never deleted while referenced; deactivation flips is_active.
func (q *Queries) UpsertSource(ctx context.Context, arg UpsertSourceParams) (Source, error) {
	var s Source
	err := q.db.QueryRow(ctx, upsertSource,
		arg.ID, arg.Name, arg.Domain, arg.SourceType, arg.HomepageURL,
		arg.FeedURL, arg.TrustWeight, arg.Country, arg.IsActive,
	).Scan(
		&s.ID, &s.Name, &s.Domain, &s.SourceType, &s.HomepageURL,
		&s.FeedURL, &s.TrustWeight, &s.Country, &s.IsActive, &s.Metadata, &s.CreatedAt,
	)
	return s, err
}

const attachIncidentSource = `
INSERT INTO incident_sources (id, incident_id, source_id, source_url, source_quote, source_title, published_at, lang, fetched_at)
VALUES ($1, $2, $3, $4, NULLIF($5, ''), NULLIF($6, ''), $7, NULLIF($8, ''), now())
ON CONFLICT DO NOTHING`

// AttachIncidentSourceParams attach one article URL to an incident.
type AttachIncidentSourceParams struct {
	ID          pgtype.UUID
	IncidentID  pgtype.UUID
	SourceID    pgtype.UUID
	SourceURL   string
	SourceQuote string
	SourceTitle string
	PublishedAt pgtype.Timestamptz
	Lang        string
}

// AttachIncidentSource inserts the join row. ON CONFLICT DO NOTHING makes the
// call idempotent against both uniqueness barriers: the global source_url
// unique and the (incident_id, source_url) pair. Returns the number of rows
// actually inserted (0 means the URL was already attached somewhere).
func (q *Queries) AttachIncidentSource(ctx context.Context, arg AttachIncidentSourceParams) (int64, error) {
	tag, err := q.db.Exec(ctx, attachIncidentSource,
		arg.ID, arg.IncidentID, arg.SourceID, arg.SourceURL,
		arg.SourceQuote, arg.SourceTitle, arg.PublishedAt, arg.Lang,
	)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

const countIncidentSources = `SELECT count(*) FROM incident_sources WHERE incident_id = $1`

// CountIncidentSources returns how many source rows an incident carries.
func (q *Queries) CountIncidentSources(ctx context.Context, incidentID pgtype.UUID) (int64, error) {
	var n int64
	err := q.db.QueryRow(ctx, countIncidentSources, incidentID).Scan(&n)
	return n, err
}
