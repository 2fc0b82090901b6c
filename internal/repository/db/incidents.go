package db

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

// incidentCols is the canonical projection of an incident row, including the
// lat/lon extraction from the geography column. Every incident-returning
// statement uses it so scanIncident stays in one place.
const incidentCols = `
	i.id, i.title, i.narrative, i.occurred_at, i.first_seen_at, i.last_seen_at,
	ST_Y(i.location::geometry) AS lat, ST_X(i.location::geometry) AS lon,
	i.asset_type, i.status, i.evidence_score, i.country,
	i.normalized_title, i.location_hash, i.content_hash,
	i.created_at, i.updated_at`

func scanIncident(row pgx.Row) (Incident, error) {
	var i Incident
	err := row.Scan(
		&i.ID, &i.Title, &i.Narrative, &i.OccurredAt, &i.FirstSeenAt, &i.LastSeenAt,
		&i.Lat, &i.Lon,
		&i.AssetType, &i.Status, &i.EvidenceScore, &i.Country,
		&i.NormalizedTitle, &i.LocationHash, &i.ContentHash,
		&i.CreatedAt, &i.UpdatedAt,
	)
	return i, err
}

// The INSERT runs through a CTE so the projection can reuse incidentCols with
// its `i` alias (RETURNING cannot alias the target table).
const createIncident = `
WITH ins AS (
	INSERT INTO incidents (id, title, narrative, occurred_at, location, asset_type, status, country)
	VALUES ($1, $2, $3, $4, ST_SetSRID(ST_MakePoint($5, $6), 4326)::geography, $7, NULLIF($8, ''), NULLIF($9, ''))
	RETURNING *
)
SELECT` + incidentCols + `
FROM ins i`

// CreateIncidentParams carries the caller-supplied fields; the validation
// trigger populates fingerprints, derives country when empty, and defaults
// status to active.
type CreateIncidentParams struct {
	ID         pgtype.UUID
	Title      string
	Narrative  string
	OccurredAt pgtype.Timestamptz
	Lon        float64
	Lat        float64
	AssetType  string
	Status     string
	Country    string
}

// CreateIncident inserts a new incident. A unique violation on the content
// hash (IsUniqueViolation with ConstraintContentHash) means another report of
// the same event won the race; callers retry as a merge.
func (q *Queries) CreateIncident(ctx context.Context, arg CreateIncidentParams) (Incident, error) {
	row := q.db.QueryRow(ctx, createIncident,
		arg.ID, arg.Title, arg.Narrative, arg.OccurredAt,
		arg.Lon, arg.Lat, arg.AssetType, arg.Status, arg.Country,
	)
	return scanIncident(row)
}

const getIncidentByContentHash = `SELECT` + incidentCols + ` FROM incidents i WHERE i.content_hash = $1`

// GetIncidentByContentHash is the first dedup probe.
func (q *Queries) GetIncidentByContentHash(ctx context.Context, contentHash string) (Incident, error) {
	return scanIncident(q.db.QueryRow(ctx, getIncidentByContentHash, contentHash))
}

const getIncidentForUpdate = `SELECT` + incidentCols + ` FROM incidents i WHERE i.id = $1 FOR UPDATE`

// GetIncidentForUpdate locks the incident row for the duration of the merge
// transaction so concurrent merges serialise per incident.
func (q *Queries) GetIncidentForUpdate(ctx context.Context, id pgtype.UUID) (Incident, error) {
	return scanIncident(q.db.QueryRow(ctx, getIncidentForUpdate, id))
}

const findNearbyIncident = `
SELECT` + incidentCols + `
FROM find_nearby_incident($1, $2, $3, $4, $5) i
LIMIT 1`

// FindNearbyIncidentParams drive the spatio-temporal match. RadiusMeters 0
// lets the SQL function pick the asset-aware default.
type FindNearbyIncidentParams struct {
	Lat          float64
	Lon          float64
	AssetType    string
	OccurredAt   pgtype.Timestamptz
	RadiusMeters float64
}

// FindNearbyIncident runs the stored spatial match: same asset type, within
// the asset radius, within ±7 days, ordered by distance then time delta.
// Returns ErrNoRows when nothing qualifies.
func (q *Queries) FindNearbyIncident(ctx context.Context, arg FindNearbyIncidentParams) (Incident, error) {
	row := q.db.QueryRow(ctx, findNearbyIncident,
		arg.Lat, arg.Lon, arg.AssetType, arg.OccurredAt, arg.RadiusMeters,
	)
	return scanIncident(row)
}

const mergeIncident = `
UPDATE incidents SET
	occurred_at   = LEAST(occurred_at, $2),
	first_seen_at = LEAST(first_seen_at, $3),
	last_seen_at  = GREATEST(last_seen_at, $4),
	narrative     = CASE WHEN length($5) > length(narrative) THEN $5 ELSE narrative END,
	updated_at    = now()
WHERE id = $1`

// MergeIncidentParams extend an existing incident with a newly attached
// report: times widen, the narrative becomes the longest candidate.
type MergeIncidentParams struct {
	ID         pgtype.UUID
	OccurredAt pgtype.Timestamptz
	SeenAt     pgtype.Timestamptz
	LastSeenAt pgtype.Timestamptz
	Narrative  string
}

// MergeIncident applies the merge mutation. Evidence recomputation is the
// trigger's job once the new incident_sources row lands.
func (q *Queries) MergeIncident(ctx context.Context, arg MergeIncidentParams) error {
	_, err := q.db.Exec(ctx, mergeIncident,
		arg.ID, arg.OccurredAt, arg.SeenAt, arg.LastSeenAt, arg.Narrative,
	)
	return err
}

const sourcesJSONFragment = `
	COALESCE(
		json_agg(
			json_build_object(
				'source_url', isrc.source_url,
				'source_type', s.source_type,
				'source_name', s.name,
				'source_title', isrc.source_title,
				'source_quote', isrc.source_quote,
				'trust_weight', s.trust_weight,
				'published_at', isrc.published_at
			)
			ORDER BY s.trust_weight DESC, isrc.fetched_at ASC
		) FILTER (WHERE isrc.id IS NOT NULL),
		'[]'
	) AS sources`

const listIncidents = `
SELECT` + incidentCols + `,` + sourcesJSONFragment + `
FROM incidents i
LEFT JOIN incident_sources isrc ON isrc.incident_id = i.id
LEFT JOIN sources s ON s.id = isrc.source_id
WHERE i.evidence_score >= $1
  AND ($2 = '' OR i.country = $2)
  AND ($3 = '' OR i.status = $3)
  AND ($4 = '' OR i.asset_type = $4)
  AND (NOT $5::bool OR (
		ST_X(i.location::geometry) BETWEEN $6 AND $8
	AND ST_Y(i.location::geometry) BETWEEN $7 AND $9))
  AND ($10::timestamptz IS NULL OR i.occurred_at >= $10)
  AND ($11 = '' OR i.title ILIKE '%' || $11 || '%' OR i.narrative ILIKE '%' || $11 || '%')
GROUP BY i.id
ORDER BY i.occurred_at DESC
LIMIT $12 OFFSET $13`

// ListIncidentsParams are the pre-parsed query filters. Zero values mean "no
// filter" except MinEvidence, which callers default to 1.
type ListIncidentsParams struct {
	MinEvidence int16
	Country     string
	Status      string
	AssetType   string
	UseBBox     bool
	MinLon      float64
	MinLat      float64
	MaxLon      float64
	MaxLat      float64
	Since       pgtype.Timestamptz
	Search      string
	Limit       int32
	Offset      int32
}

// ListIncidents returns filtered incidents, newest first, each with its
// aggregated sources array from a single LEFT JOIN.
func (q *Queries) ListIncidents(ctx context.Context, arg ListIncidentsParams) ([]IncidentWithSources, error) {
	rows, err := q.db.Query(ctx, listIncidents,
		arg.MinEvidence, arg.Country, arg.Status, arg.AssetType,
		arg.UseBBox, arg.MinLon, arg.MinLat, arg.MaxLon, arg.MaxLat,
		arg.Since, arg.Search, arg.Limit, arg.Offset,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []IncidentWithSources
	for rows.Next() {
		var item IncidentWithSources
		if err := rows.Scan(
			&item.ID, &item.Title, &item.Narrative, &item.OccurredAt, &item.FirstSeenAt, &item.LastSeenAt,
			&item.Lat, &item.Lon,
			&item.AssetType, &item.Status, &item.EvidenceScore, &item.Country,
			&item.NormalizedTitle, &item.LocationHash, &item.ContentHash,
			&item.CreatedAt, &item.UpdatedAt,
			&item.SourcesJSON,
		); err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	return out, rows.Err()
}

const getIncidentWithSources = `
SELECT` + incidentCols + `,` + sourcesJSONFragment + `
FROM incidents i
LEFT JOIN incident_sources isrc ON isrc.incident_id = i.id
LEFT JOIN sources s ON s.id = isrc.source_id
WHERE i.id = $1
GROUP BY i.id`

// GetIncidentWithSources is the detail-endpoint projection.
func (q *Queries) GetIncidentWithSources(ctx context.Context, id pgtype.UUID) (IncidentWithSources, error) {
	var item IncidentWithSources
	err := q.db.QueryRow(ctx, getIncidentWithSources, id).Scan(
		&item.ID, &item.Title, &item.Narrative, &item.OccurredAt, &item.FirstSeenAt, &item.LastSeenAt,
		&item.Lat, &item.Lon,
		&item.AssetType, &item.Status, &item.EvidenceScore, &item.Country,
		&item.NormalizedTitle, &item.LocationHash, &item.ContentHash,
		&item.CreatedAt, &item.UpdatedAt,
		&item.SourcesJSON,
	)
	return item, err
}
