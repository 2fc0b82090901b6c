package db

import (
	"github.com/jackc/pgx/v5/pgtype"
)

// Incident is one consolidated real-world event. Lat/Lon are projected out of
// the PostGIS geography column by every query that returns incidents.
// NormalizedTitle, LocationHash, ContentHash, Country, and EvidenceScore are
// derived columns owned by the database triggers.
type Incident struct {
	ID              pgtype.UUID
	Title           string
	Narrative       string
	OccurredAt      pgtype.Timestamptz
	FirstSeenAt     pgtype.Timestamptz
	LastSeenAt      pgtype.Timestamptz
	Lat             float64
	Lon             float64
	AssetType       string
	Status          string
	EvidenceScore   int16
	Country         string
	NormalizedTitle string
	LocationHash    string
	ContentHash     string
	CreatedAt       pgtype.Timestamptz
	UpdatedAt       pgtype.Timestamptz
}

// IncidentWithSources is an Incident plus its aggregated source rows as the
// JSON produced by the list/detail LEFT JOIN.
type IncidentWithSources struct {
	Incident
	SourcesJSON []byte
}

// Source is a publisher row.
type Source struct {
	ID          pgtype.UUID
	Name        string
	Domain      string
	SourceType  string
	HomepageURL string
	FeedURL     pgtype.Text
	TrustWeight float64
	Country     pgtype.Text
	IsActive    bool
	Metadata    []byte
	CreatedAt   pgtype.Timestamptz
}

// IncidentSource is a join row attaching one article URL to one incident.
type IncidentSource struct {
	ID          pgtype.UUID
	IncidentID  pgtype.UUID
	SourceID    pgtype.UUID
	SourceURL   string
	SourceQuote pgtype.Text
	SourceTitle pgtype.Text
	PublishedAt pgtype.Timestamptz
	Lang        pgtype.Text
	FetchedAt   pgtype.Timestamptz
}

// ScraperCacheEntry short-circuits reprocessing of an already-seen report.
type ScraperCacheEntry struct {
	ID           int64
	IncidentHash string
	OccurredAt   pgtype.Timestamptz
	SourceName   string
	ProcessedAt  pgtype.Timestamptz
}
