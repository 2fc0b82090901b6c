// Package service implements the application core: the ingest pipeline that
// turns validated reports into consolidated incidents, and the query side
// serving the public API. Services speak db.Querier, never raw SQL, and
// return sentinel or Rejection errors the transport layer maps to HTTP.
package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/dronewatch/dronewatch/internal/dedup"
	"github.com/dronewatch/dronewatch/internal/geocoder"
	"github.com/dronewatch/dronewatch/internal/model"
	"github.com/dronewatch/dronewatch/internal/registry"
	"github.com/dronewatch/dronewatch/internal/repository/db"
	"github.com/dronewatch/dronewatch/internal/validator"
)

// Store is the persistence surface the services need: pool-bound statements
// plus transactional units of work. *db.Store implements it.
type Store interface {
	Queries() db.Querier
	InTx(ctx context.Context, fn func(db.Querier) error) error
}

// EventPublisher fans incident lifecycle events out to the message bus.
// Publishing is best-effort: a bus outage never fails an ingest.
type EventPublisher interface {
	IncidentCreated(ctx context.Context, incidentID uuid.UUID) error
	IncidentMerged(ctx context.Context, incidentID uuid.UUID) error
}

// Ingest actions.
const (
	ActionCreated = "created"
	ActionMerged  = "merged"
)

// errCreateRace marks a CreateIncident that lost the content-hash race to a
// concurrent writer. The caller retries once as a merge.
var errCreateRace = errors.New("incident create race")

// IngestInput is one report submitted for consolidation, either by the
// scraper pipeline or through the authenticated ingest endpoint.
type IngestInput struct {
	Title      string
	Narrative  string
	OccurredAt time.Time
	Lat        *float64 // nil means geocode from text
	Lon        *float64
	AssetType  model.AssetType      // empty means take the geocoder's asset
	Status     model.IncidentStatus // empty defaults to active (unconfirmed when degraded)
	Country    string               // empty means derive from coordinates

	SourceURL    string
	SourceType   model.SourceType
	SourceName   string
	SourceQuote  string
	TrustWeight  float64 // hint only; the registry wins
	Lang         string
	LocationHint string
	PublishedAt  time.Time
}

// IngestResult reports where the incident landed.
type IngestResult struct {
	ID     uuid.UUID
	Action string // created | merged
}

// IngestService runs the validate → geocode → dedup → persist pipeline.
type IngestService struct {
	store     Store
	registry  *registry.Registry
	validator *validator.Validator
	geocoder  *geocoder.Geocoder
	events    EventPublisher
	logger    *zap.Logger
}

// NewIngestService wires the pipeline. events may be nil when no bus is
// configured.
func NewIngestService(
	store Store,
	reg *registry.Registry,
	val *validator.Validator,
	geo *geocoder.Geocoder,
	events EventPublisher,
	logger *zap.Logger,
) *IngestService {
	return &IngestService{
		store:     store,
		registry:  reg,
		validator: val,
		geocoder:  geo,
		events:    events,
		logger:    logger,
	}
}

// Ingest processes one report end to end. Duplicates are not errors: a report
// matching an existing incident returns ActionMerged. Rejections come back as
// *RejectionError, malformed input as ErrInvalidInput.
func (s *IngestService) Ingest(ctx context.Context, in IngestInput) (IngestResult, error) {
	if err := s.checkInput(in); err != nil {
		return IngestResult{}, err
	}
	if err := model.ValidateSourceURL(in.SourceURL); err != nil {
		return IngestResult{}, Reject(model.ReasonBadSourceURL, err.Error())
	}

	vres := s.validator.Validate(ctx, in.Title, in.Narrative, in.Lang)
	if !vres.OK {
		return IngestResult{}, Reject(model.ReasonValidationFailed, vres.Reason)
	}

	lat, lon, asset, country, err := s.locate(in)
	if err != nil {
		return IngestResult{}, err
	}
	if b := validator.CheckBounds(lat, lon); !b.OK {
		return IngestResult{}, Reject(model.ReasonValidationFailed, "coordinates outside monitored bounds")
	}

	status := in.Status
	if status == "" {
		status = model.StatusActive
		if vres.Degraded {
			status = model.StatusUnconfirmed
		}
	}

	contentHash := dedup.ContentHash(in.OccurredAt, lat, lon, in.Title, asset)

	result, err := s.persist(ctx, in, lat, lon, asset, country, status, contentHash)
	if errors.Is(err, errCreateRace) {
		// Lost the create race; the content-hash probe in a fresh transaction
		// finds the winner and the report merges into it. Only the create path
		// retries: a unique violation out of a merge would fail identically on
		// a second pass.
		result, err = s.persist(ctx, in, lat, lon, asset, country, status, contentHash)
	}
	if err != nil {
		if msg, ok := db.IsValidationRejection(err); ok {
			return IngestResult{}, Reject(model.ReasonValidationFailed, msg)
		}
		return IngestResult{}, err
	}

	s.publish(ctx, result)
	return result, nil
}

func (s *IngestService) checkInput(in IngestInput) error {
	switch {
	case strings.TrimSpace(in.Title) == "":
		return errors.Join(ErrInvalidInput, errors.New("title is required"))
	case in.OccurredAt.IsZero():
		return errors.Join(ErrInvalidInput, errors.New("occurred_at is required"))
	case (in.Lat == nil) != (in.Lon == nil):
		return errors.Join(ErrInvalidInput, errors.New("lat and lon must be supplied together"))
	case in.AssetType != "" && !in.AssetType.Valid():
		return errors.Join(ErrInvalidInput, errors.New("unknown asset_type"))
	case in.Status != "" && !in.Status.Valid():
		return errors.Join(ErrInvalidInput, errors.New("unknown status"))
	case !in.SourceType.Valid():
		return errors.Join(ErrInvalidInput, errors.New("unknown source_type"))
	}
	return nil
}

// locate resolves coordinates, asset, and country. Supplied coordinates are
// authoritative; otherwise the gazetteer decides or the report is rejected.
func (s *IngestService) locate(in IngestInput) (lat, lon float64, asset model.AssetType, country string, err error) {
	asset = in.AssetType
	country = in.Country

	if in.Lat != nil && in.Lon != nil {
		lat, lon = *in.Lat, *in.Lon
	} else {
		res, gerr := s.geocoder.Resolve(in.LocationHint, in.Title, in.Narrative, s.sourceCountry(in))
		if gerr != nil {
			kind := "ambiguous_location"
			if errors.Is(gerr, geocoder.ErrNoLocation) {
				kind = "no_location"
			}
			return 0, 0, "", "", Reject(model.ReasonAmbiguousLocation, kind+": "+gerr.Error())
		}
		lat, lon = res.Lat, res.Lon
		if asset == "" {
			asset = res.Asset
		}
		if country == "" {
			country = res.Country
		}
	}
	if asset == "" {
		asset = model.AssetOther
	}
	if country == "" {
		country = geocoder.CountryForCoords(lat, lon)
	}
	return lat, lon, asset, country, nil
}

func (s *IngestService) sourceCountry(in IngestInput) string {
	if desc, ok := s.registry.ByDomain(model.DomainOf(in.SourceURL), in.SourceType); ok {
		return desc.Country
	}
	return ""
}

// persist runs the dedup decision and the resulting write in one transaction.
func (s *IngestService) persist(
	ctx context.Context,
	in IngestInput,
	lat, lon float64,
	asset model.AssetType,
	country string,
	status model.IncidentStatus,
	contentHash string,
) (IngestResult, error) {
	var result IngestResult
	err := s.store.InTx(ctx, func(q db.Querier) error {
		outcome, err := s.decide(ctx, q, contentHash, lat, lon, asset, in.OccurredAt)
		if err != nil {
			return err
		}

		if id, merge := outcome.IsMerge(); merge {
			if err := s.merge(ctx, q, id, in); err != nil {
				return err
			}
			if err := s.attachSource(ctx, q, id, in); err != nil {
				return err
			}
			if n, cerr := q.CountIncidentSources(ctx, pgUUID(id)); cerr == nil {
				s.logger.Debug("incident corroborated",
					zap.String("incident_id", id.String()),
					zap.Int64("sources", n),
				)
			}
			result = IngestResult{ID: id, Action: ActionMerged}
			return nil
		}

		id := uuid.Must(uuid.NewV7())
		if _, err := q.CreateIncident(ctx, db.CreateIncidentParams{
			ID:         pgUUID(id),
			Title:      in.Title,
			Narrative:  in.Narrative,
			OccurredAt: pgTime(in.OccurredAt),
			Lon:        lon,
			Lat:        lat,
			AssetType:  string(asset),
			Status:     string(status),
			Country:    country,
		}); err != nil {
			if db.IsUniqueViolation(err, db.ConstraintContentHash) {
				return errors.Join(errCreateRace, err)
			}
			return err
		}
		result = IngestResult{ID: id, Action: ActionCreated}
		return s.attachSource(ctx, q, id, in)
	})
	return result, err
}

// decide is the two-stage dedup: exact content-hash match first, then the
// spatio-temporal match via the stored function.
func (s *IngestService) decide(
	ctx context.Context,
	q db.Querier,
	contentHash string,
	lat, lon float64,
	asset model.AssetType,
	occurredAt time.Time,
) (dedup.Outcome, error) {
	inc, err := q.GetIncidentByContentHash(ctx, contentHash)
	if err == nil {
		return dedup.MergeInto(fromPGUUID(inc.ID)), nil
	}
	if !errors.Is(err, db.ErrNoRows) {
		return dedup.Outcome{}, err
	}

	inc, err = q.FindNearbyIncident(ctx, db.FindNearbyIncidentParams{
		Lat:        lat,
		Lon:        lon,
		AssetType:  string(asset),
		OccurredAt: pgTime(occurredAt),
	})
	if err == nil {
		return dedup.MergeInto(fromPGUUID(inc.ID)), nil
	}
	if errors.Is(err, db.ErrNoRows) {
		return dedup.NewIncident(), nil
	}
	return dedup.Outcome{}, err
}

// merge widens the existing incident under a row lock so concurrent merges
// into the same incident serialise.
func (s *IngestService) merge(ctx context.Context, q db.Querier, id uuid.UUID, in IngestInput) error {
	locked, err := q.GetIncidentForUpdate(ctx, pgUUID(id))
	if err != nil {
		return err
	}

	seenAt := in.PublishedAt
	if seenAt.IsZero() {
		seenAt = in.OccurredAt
	}
	return q.MergeIncident(ctx, db.MergeIncidentParams{
		ID:         locked.ID,
		OccurredAt: pgTime(in.OccurredAt),
		SeenAt:     pgTime(seenAt),
		LastSeenAt: pgTime(seenAt),
		Narrative:  in.Narrative,
	})
}

// attachSource upserts the publisher row and links the article URL to the
// incident. A zero rows-affected attach means the URL was already linked —
// idempotent, not an error.
func (s *IngestService) attachSource(ctx context.Context, q db.Querier, incidentID uuid.UUID, in IngestInput) error {
	domain := model.DomainOf(in.SourceURL)
	trust := s.registry.TrustWeightFor(in.SourceURL, in.SourceType, in.TrustWeight)
	name := s.registry.NameFor(in.SourceURL, in.SourceName)

	homepage := "https://" + domain
	feedURL := ""
	country := ""
	active := true
	if desc, ok := s.registry.ByDomain(domain, in.SourceType); ok {
		homepage = desc.HomepageURL
		feedURL = desc.FeedURL
		country = desc.Country
		active = desc.Active
	}

	src, err := q.UpsertSource(ctx, db.UpsertSourceParams{
		ID:          pgUUID(uuid.Must(uuid.NewV7())),
		Name:        name,
		Domain:      domain,
		SourceType:  string(in.SourceType),
		HomepageURL: homepage,
		FeedURL:     feedURL,
		TrustWeight: trust,
		Country:     country,
		IsActive:    active,
	})
	if err != nil {
		return err
	}

	rows, err := q.AttachIncidentSource(ctx, db.AttachIncidentSourceParams{
		ID:          pgUUID(uuid.Must(uuid.NewV7())),
		IncidentID:  pgUUID(incidentID),
		SourceID:    src.ID,
		SourceURL:   in.SourceURL,
		SourceQuote: in.SourceQuote,
		SourceTitle: in.Title,
		PublishedAt: pgTimeOrNull(in.PublishedAt),
		Lang:        in.Lang,
	})
	if err != nil {
		return err
	}
	if rows == 0 {
		s.logger.Debug("source url already attached",
			zap.String("source_url", in.SourceURL),
			zap.String("incident_id", incidentID.String()),
		)
	}
	return nil
}

func (s *IngestService) publish(ctx context.Context, res IngestResult) {
	if s.events == nil {
		return
	}
	var err error
	switch res.Action {
	case ActionCreated:
		err = s.events.IncidentCreated(ctx, res.ID)
	case ActionMerged:
		err = s.events.IncidentMerged(ctx, res.ID)
	}
	if err != nil {
		s.logger.Warn("event publish failed",
			zap.String("action", res.Action),
			zap.String("incident_id", res.ID.String()),
			zap.Error(err),
		)
	}
}
