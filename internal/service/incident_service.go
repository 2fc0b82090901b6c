package service

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"go.uber.org/zap"

	"github.com/dronewatch/dronewatch/internal/model"
	"github.com/dronewatch/dronewatch/internal/registry"
	"github.com/dronewatch/dronewatch/internal/repository/db"
)

// ListCache is the optional read-through cache in front of List. A nil cache
// disables caching; errors inside the cache are swallowed (the database is
// the source of truth).
type ListCache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, val []byte, ttl time.Duration)
}

const (
	defaultListLimit = 500
	maxListLimit     = 1000
)

// ListInput are the raw query filters as they arrive from the API.
type ListInput struct {
	MinEvidence int
	Country     string
	Status      string
	AssetType   string
	BBox        string // "minLon,minLat,maxLon,maxLat"
	DateRange   string // day | week | month | all
	Search      string
	Limit       int
	Offset      int
}

// SourceView is one attached source as served by the API.
type SourceView struct {
	SourceURL   string     `json:"source_url"`
	SourceType  string     `json:"source_type"`
	SourceName  string     `json:"source_name"`
	SourceTitle string     `json:"source_title,omitempty"`
	SourceQuote string     `json:"source_quote,omitempty"`
	TrustWeight float64    `json:"trust_weight"`
	PublishedAt *time.Time `json:"published_at,omitempty"`
}

// IncidentView is one consolidated incident as served by the API.
type IncidentView struct {
	ID            string       `json:"id"`
	Title         string       `json:"title"`
	Narrative     string       `json:"narrative"`
	OccurredAt    time.Time    `json:"occurred_at"`
	FirstSeenAt   time.Time    `json:"first_seen_at"`
	LastSeenAt    time.Time    `json:"last_seen_at"`
	Lat           float64      `json:"lat"`
	Lon           float64      `json:"lon"`
	AssetType     string       `json:"asset_type"`
	Status        string       `json:"status"`
	EvidenceScore int          `json:"evidence_score"`
	Country       string       `json:"country"`
	Sources       []SourceView `json:"sources"`
}

// IncidentService serves the read side of the API.
type IncidentService struct {
	store    Store
	registry *registry.Registry
	cache    ListCache
	cacheTTL time.Duration
	logger   *zap.Logger
}

// NewIncidentService wires the query service. cache may be nil.
func NewIncidentService(store Store, reg *registry.Registry, cache ListCache, cacheTTL time.Duration, logger *zap.Logger) *IncidentService {
	return &IncidentService{
		store:    store,
		registry: reg,
		cache:    cache,
		cacheTTL: cacheTTL,
		logger:   logger,
	}
}

// List returns filtered incidents, newest first, read-through cached.
func (s *IncidentService) List(ctx context.Context, in ListInput) ([]IncidentView, error) {
	params, err := s.toParams(in)
	if err != nil {
		return nil, err
	}

	key := listCacheKey(params)
	if s.cache != nil {
		if raw, ok := s.cache.Get(ctx, key); ok {
			var views []IncidentView
			if err := json.Unmarshal(raw, &views); err == nil {
				return views, nil
			}
		}
	}

	rows, err := s.store.Queries().ListIncidents(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("list incidents: %w", err)
	}

	views := make([]IncidentView, 0, len(rows))
	for _, row := range rows {
		v, err := s.toView(row)
		if err != nil {
			return nil, err
		}
		views = append(views, v)
	}

	if s.cache != nil {
		if raw, err := json.Marshal(views); err == nil {
			s.cache.Set(ctx, key, raw, s.cacheTTL)
		}
	}
	return views, nil
}

// Get returns one incident with its sources.
func (s *IncidentService) Get(ctx context.Context, id string) (IncidentView, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return IncidentView{}, errors.Join(ErrInvalidInput, errors.New("malformed incident id"))
	}

	row, err := s.store.Queries().GetIncidentWithSources(ctx, pgUUID(parsed))
	if errors.Is(err, db.ErrNoRows) {
		return IncidentView{}, ErrNotFound
	}
	if err != nil {
		return IncidentView{}, fmt.Errorf("get incident: %w", err)
	}
	return s.toView(row)
}

func (s *IncidentService) toParams(in ListInput) (db.ListIncidentsParams, error) {
	var p db.ListIncidentsParams

	minEvidence := in.MinEvidence
	if minEvidence < model.EvidenceUnconfirmed {
		minEvidence = model.EvidenceUnconfirmed
	}
	if minEvidence > model.EvidenceOfficial {
		minEvidence = model.EvidenceOfficial
	}
	p.MinEvidence = int16(minEvidence)

	if in.Status != "" && !model.IncidentStatus(in.Status).Valid() {
		return p, errors.Join(ErrInvalidInput, errors.New("unknown status"))
	}
	if in.AssetType != "" && !model.AssetType(in.AssetType).Valid() {
		return p, errors.Join(ErrInvalidInput, errors.New("unknown asset_type"))
	}
	p.Status = in.Status
	p.AssetType = in.AssetType
	p.Country = strings.ToUpper(strings.TrimSpace(in.Country))
	p.Search = strings.TrimSpace(in.Search)

	if in.BBox != "" {
		minLon, minLat, maxLon, maxLat, err := parseBBox(in.BBox)
		if err != nil {
			return p, Reject(model.ReasonBadCoords, err.Error())
		}
		p.UseBBox = true
		p.MinLon, p.MinLat, p.MaxLon, p.MaxLat = minLon, minLat, maxLon, maxLat
	}

	since, err := sinceFor(in.DateRange)
	if err != nil {
		return p, err
	}
	p.Since = since

	limit := in.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}
	p.Limit = int32(limit)
	if in.Offset > 0 {
		p.Offset = int32(in.Offset)
	}
	return p, nil
}

// parseBBox parses "minLon,minLat,maxLon,maxLat".
func parseBBox(raw string) (minLon, minLat, maxLon, maxLat float64, err error) {
	parts := strings.Split(raw, ",")
	if len(parts) != 4 {
		return 0, 0, 0, 0, errors.New("bbox must be minLon,minLat,maxLon,maxLat")
	}
	vals := make([]float64, 4)
	for i, part := range parts {
		v, perr := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if perr != nil {
			return 0, 0, 0, 0, fmt.Errorf("bbox component %d is not a number", i+1)
		}
		vals[i] = v
	}
	if vals[0] > vals[2] || vals[1] > vals[3] {
		return 0, 0, 0, 0, errors.New("bbox min exceeds max")
	}
	return vals[0], vals[1], vals[2], vals[3], nil
}

func sinceFor(dateRange string) (pgtype.Timestamptz, error) {
	switch dateRange {
	case "", "all":
		return pgtype.Timestamptz{}, nil
	case "day":
		return pgTime(time.Now().Add(-24 * time.Hour)), nil
	case "week":
		return pgTime(time.Now().Add(-7 * 24 * time.Hour)), nil
	case "month":
		return pgTime(time.Now().Add(-30 * 24 * time.Hour)), nil
	default:
		return pgtype.Timestamptz{}, errors.Join(ErrInvalidInput, errors.New("unknown date_range"))
	}
}

// listCacheKey derives a stable cache key from the resolved filter set. Since
// is bucketed to the minute so day/week/month keys stay cacheable.
func listCacheKey(p db.ListIncidentsParams) string {
	since := ""
	if p.Since.Valid {
		since = p.Since.Time.Truncate(time.Minute).UTC().Format(time.RFC3339)
	}
	raw := fmt.Sprintf("%d|%s|%s|%s|%v|%g|%g|%g|%g|%s|%s|%d|%d",
		p.MinEvidence, p.Country, p.Status, p.AssetType,
		p.UseBBox, p.MinLon, p.MinLat, p.MaxLon, p.MaxLat,
		since, p.Search, p.Limit, p.Offset,
	)
	sum := md5.Sum([]byte(raw))
	return "incidents:list:" + hex.EncodeToString(sum[:])
}

// sourceRow mirrors the JSON emitted by the sources aggregate in the list and
// detail queries.
type sourceRow struct {
	SourceURL   string     `json:"source_url"`
	SourceType  string     `json:"source_type"`
	SourceName  string     `json:"source_name"`
	SourceTitle string     `json:"source_title"`
	SourceQuote string     `json:"source_quote"`
	TrustWeight float64    `json:"trust_weight"`
	PublishedAt *time.Time `json:"published_at"`
}

func (s *IncidentService) toView(row db.IncidentWithSources) (IncidentView, error) {
	var srcRows []sourceRow
	if len(row.SourcesJSON) > 0 {
		if err := json.Unmarshal(row.SourcesJSON, &srcRows); err != nil {
			return IncidentView{}, fmt.Errorf("decode sources for %s: %w", fromPGUUID(row.ID), err)
		}
	}

	sources := make([]SourceView, 0, len(srcRows))
	for _, r := range srcRows {
		sources = append(sources, SourceView{
			SourceURL:   r.SourceURL,
			SourceType:  r.SourceType,
			SourceName:  s.registry.NameFor(r.SourceURL, r.SourceName),
			SourceTitle: r.SourceTitle,
			SourceQuote: r.SourceQuote,
			TrustWeight: r.TrustWeight,
			PublishedAt: r.PublishedAt,
		})
	}

	return IncidentView{
		ID:            fromPGUUID(row.ID).String(),
		Title:         row.Title,
		Narrative:     row.Narrative,
		OccurredAt:    row.OccurredAt.Time,
		FirstSeenAt:   row.FirstSeenAt.Time,
		LastSeenAt:    row.LastSeenAt.Time,
		Lat:           row.Lat,
		Lon:           row.Lon,
		AssetType:     row.AssetType,
		Status:        row.Status,
		EvidenceScore: int(row.EvidenceScore),
		Country:       strings.TrimSpace(row.Country),
		Sources:       sources,
	}, nil
}
