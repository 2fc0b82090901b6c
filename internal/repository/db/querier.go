package db

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
)

// Querier is the interface the service layer depends on, satisfied by
// *Queries. internal/repository/mock provides a gomock implementation.
type Querier interface {
	CreateIncident(ctx context.Context, arg CreateIncidentParams) (Incident, error)
	GetIncidentForUpdate(ctx context.Context, id pgtype.UUID) (Incident, error)
	GetIncidentByContentHash(ctx context.Context, contentHash string) (Incident, error)
	FindNearbyIncident(ctx context.Context, arg FindNearbyIncidentParams) (Incident, error)
	MergeIncident(ctx context.Context, arg MergeIncidentParams) error
	ListIncidents(ctx context.Context, arg ListIncidentsParams) ([]IncidentWithSources, error)
	GetIncidentWithSources(ctx context.Context, id pgtype.UUID) (IncidentWithSources, error)

	UpsertSource(ctx context.Context, arg UpsertSourceParams) (Source, error)
	AttachIncidentSource(ctx context.Context, arg AttachIncidentSourceParams) (int64, error)
	CountIncidentSources(ctx context.Context, incidentID pgtype.UUID) (int64, error)

	GetScraperCacheEntry(ctx context.Context, incidentHash string) (ScraperCacheEntry, error)
	PutScraperCacheEntry(ctx context.Context, arg PutScraperCacheEntryParams) error
	PurgeScraperCache(ctx context.Context, olderThan pgtype.Timestamptz) (int64, error)
}

var _ Querier = (*Queries)(nil)
