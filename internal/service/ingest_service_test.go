package service_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap/zaptest"

	"github.com/dronewatch/dronewatch/internal/geocoder"
	"github.com/dronewatch/dronewatch/internal/model"
	"github.com/dronewatch/dronewatch/internal/registry"
	"github.com/dronewatch/dronewatch/internal/repository/db"
	"github.com/dronewatch/dronewatch/internal/repository/mock"
	"github.com/dronewatch/dronewatch/internal/service"
	"github.com/dronewatch/dronewatch/internal/validator"
)

// fakeStore runs transactional work against the mock querier directly.
type fakeStore struct {
	q db.Querier
}

func (f fakeStore) Queries() db.Querier { return f.q }

func (f fakeStore) InTx(_ context.Context, fn func(db.Querier) error) error {
	return fn(f.q)
}

// recordingPublisher captures emitted events.
type recordingPublisher struct {
	mu      sync.Mutex
	created []uuid.UUID
	merged  []uuid.UUID
}

func (p *recordingPublisher) IncidentCreated(_ context.Context, id uuid.UUID) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.created = append(p.created, id)
	return nil
}

func (p *recordingPublisher) IncidentMerged(_ context.Context, id uuid.UUID) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.merged = append(p.merged, id)
	return nil
}

func newIngestService(t *testing.T, q db.Querier, pub service.EventPublisher) *service.IngestService {
	t.Helper()
	reg, err := registry.New()
	require.NoError(t, err)
	logger := zaptest.NewLogger(t)
	return service.NewIngestService(
		fakeStore{q: q},
		reg,
		validator.New(nil, logger), // degraded path: layers 1-2 decide
		geocoder.New(reg),
		pub,
		logger,
	)
}

func policeInput() service.IngestInput {
	return service.IngestInput{
		Title:      "Drone observeret over Aalborg Lufthavn",
		Narrative:  "Politiet har indstillet flytrafikken efter en droneobservation.",
		OccurredAt: time.Date(2026, 3, 14, 21, 30, 0, 0, time.UTC),
		SourceURL:  "https://politi.dk/nordjyllands-politi/presse/drone-aalborg",
		SourceType: model.SourcePolice,
		SourceName: "Nordjyllands Politi",
		Lang:       "da",
	}
}

func noRowsIncident() (db.Incident, error) {
	return db.Incident{}, db.ErrNoRows
}

func TestIngestCreatesIncidentFromGeocodedReport(t *testing.T) {
	ctrl := gomock.NewController(t)
	q := mock.NewMockQuerier(ctrl)
	pub := &recordingPublisher{}
	svc := newIngestService(t, q, pub)

	q.EXPECT().GetIncidentByContentHash(gomock.Any(), gomock.Any()).Return(noRowsIncident())
	q.EXPECT().FindNearbyIncident(gomock.Any(), gomock.Any()).Return(noRowsIncident())
	q.EXPECT().CreateIncident(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, arg db.CreateIncidentParams) (db.Incident, error) {
			assert.Equal(t, "airport", arg.AssetType, "asset comes from the gazetteer anchor")
			assert.InDelta(t, 57.0928, arg.Lat, 0.0001)
			assert.InDelta(t, 9.8492, arg.Lon, 0.0001)
			assert.Equal(t, "DK", arg.Country)
			assert.Equal(t, "unconfirmed", arg.Status, "degraded validation starts unconfirmed")
			return db.Incident{ID: arg.ID}, nil
		})
	q.EXPECT().UpsertSource(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, arg db.UpsertSourceParams) (db.Source, error) {
			assert.Equal(t, "politi.dk", arg.Domain)
			assert.Equal(t, 4.0, arg.TrustWeight, "registry weight wins")
			return db.Source{ID: arg.ID}, nil
		})
	q.EXPECT().AttachIncidentSource(gomock.Any(), gomock.Any()).Return(int64(1), nil)

	res, err := svc.Ingest(context.Background(), policeInput())
	require.NoError(t, err)
	assert.Equal(t, service.ActionCreated, res.Action)
	assert.NotEqual(t, uuid.Nil, res.ID)
	assert.Equal(t, []uuid.UUID{res.ID}, pub.created)
	assert.Empty(t, pub.merged)
}

func TestIngestMergesOnContentHashHit(t *testing.T) {
	ctrl := gomock.NewController(t)
	q := mock.NewMockQuerier(ctrl)
	pub := &recordingPublisher{}
	svc := newIngestService(t, q, pub)

	existing := uuid.New()
	existingRow := db.Incident{ID: pgtype.UUID{Bytes: existing, Valid: true}}

	q.EXPECT().GetIncidentByContentHash(gomock.Any(), gomock.Any()).Return(existingRow, nil)
	q.EXPECT().GetIncidentForUpdate(gomock.Any(), gomock.Any()).Return(existingRow, nil)
	q.EXPECT().MergeIncident(gomock.Any(), gomock.Any()).Return(nil)
	q.EXPECT().UpsertSource(gomock.Any(), gomock.Any()).Return(db.Source{}, nil)
	q.EXPECT().AttachIncidentSource(gomock.Any(), gomock.Any()).Return(int64(1), nil)
	q.EXPECT().CountIncidentSources(gomock.Any(), gomock.Any()).Return(int64(2), nil)

	res, err := svc.Ingest(context.Background(), policeInput())
	require.NoError(t, err)
	assert.Equal(t, service.ActionMerged, res.Action)
	assert.Equal(t, existing, res.ID)
	assert.Equal(t, []uuid.UUID{existing}, pub.merged)
}

func TestIngestMergesOnSpatialMatch(t *testing.T) {
	ctrl := gomock.NewController(t)
	q := mock.NewMockQuerier(ctrl)
	svc := newIngestService(t, q, nil)

	existing := uuid.New()
	existingRow := db.Incident{ID: pgtype.UUID{Bytes: existing, Valid: true}}

	q.EXPECT().GetIncidentByContentHash(gomock.Any(), gomock.Any()).Return(noRowsIncident())
	q.EXPECT().FindNearbyIncident(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, arg db.FindNearbyIncidentParams) (db.Incident, error) {
			assert.Equal(t, "airport", arg.AssetType)
			assert.Zero(t, arg.RadiusMeters, "asset-aware default radius")
			return existingRow, nil
		})
	q.EXPECT().GetIncidentForUpdate(gomock.Any(), gomock.Any()).Return(existingRow, nil)
	q.EXPECT().MergeIncident(gomock.Any(), gomock.Any()).Return(nil)
	q.EXPECT().UpsertSource(gomock.Any(), gomock.Any()).Return(db.Source{}, nil)
	q.EXPECT().AttachIncidentSource(gomock.Any(), gomock.Any()).Return(int64(0), nil)
	q.EXPECT().CountIncidentSources(gomock.Any(), gomock.Any()).Return(int64(1), nil)

	res, err := svc.Ingest(context.Background(), policeInput())
	require.NoError(t, err)
	assert.Equal(t, service.ActionMerged, res.Action)
}

func TestIngestRetriesCreateRaceAsMerge(t *testing.T) {
	ctrl := gomock.NewController(t)
	q := mock.NewMockQuerier(ctrl)
	svc := newIngestService(t, q, nil)

	winner := uuid.New()
	winnerRow := db.Incident{ID: pgtype.UUID{Bytes: winner, Valid: true}}
	raceErr := &pgconn.PgError{Code: "23505", ConstraintName: db.ConstraintContentHash}

	// First pass: nothing found, create loses the race.
	q.EXPECT().GetIncidentByContentHash(gomock.Any(), gomock.Any()).Return(noRowsIncident())
	q.EXPECT().FindNearbyIncident(gomock.Any(), gomock.Any()).Return(noRowsIncident())
	q.EXPECT().CreateIncident(gomock.Any(), gomock.Any()).Return(db.Incident{}, raceErr)

	// Second pass: the winner is found by content hash and the report merges.
	q.EXPECT().GetIncidentByContentHash(gomock.Any(), gomock.Any()).Return(winnerRow, nil)
	q.EXPECT().GetIncidentForUpdate(gomock.Any(), gomock.Any()).Return(winnerRow, nil)
	q.EXPECT().MergeIncident(gomock.Any(), gomock.Any()).Return(nil)
	q.EXPECT().UpsertSource(gomock.Any(), gomock.Any()).Return(db.Source{}, nil)
	q.EXPECT().AttachIncidentSource(gomock.Any(), gomock.Any()).Return(int64(1), nil)
	q.EXPECT().CountIncidentSources(gomock.Any(), gomock.Any()).Return(int64(2), nil)

	res, err := svc.Ingest(context.Background(), policeInput())
	require.NoError(t, err)
	assert.Equal(t, service.ActionMerged, res.Action)
	assert.Equal(t, winner, res.ID)
}

func TestIngestMergeConflictIsNotRetried(t *testing.T) {
	ctrl := gomock.NewController(t)
	q := mock.NewMockQuerier(ctrl)
	svc := newIngestService(t, q, nil)

	existing := uuid.New()
	existingRow := db.Incident{ID: pgtype.UUID{Bytes: existing, Valid: true}}
	conflict := &pgconn.PgError{Code: "23505", ConstraintName: db.ConstraintContentHash}

	// A unique violation out of the merge path would fail identically on a
	// second pass, so exactly one pass runs and the error surfaces.
	q.EXPECT().GetIncidentByContentHash(gomock.Any(), gomock.Any()).Return(existingRow, nil)
	q.EXPECT().GetIncidentForUpdate(gomock.Any(), gomock.Any()).Return(existingRow, nil)
	q.EXPECT().MergeIncident(gomock.Any(), gomock.Any()).Return(conflict)

	_, err := svc.Ingest(context.Background(), policeInput())
	require.Error(t, err)
	assert.True(t, db.IsUniqueViolation(err, db.ConstraintContentHash))
}

func TestIngestRejectsPlaceholderSourceURL(t *testing.T) {
	ctrl := gomock.NewController(t)
	q := mock.NewMockQuerier(ctrl)
	svc := newIngestService(t, q, nil)

	in := policeInput()
	in.SourceURL = "https://example.com/article"

	_, err := svc.Ingest(context.Background(), in)
	rej, ok := service.AsRejection(err)
	require.True(t, ok)
	assert.Equal(t, model.ReasonBadSourceURL, rej.Reason)
}

func TestIngestRejectsForeignRegionText(t *testing.T) {
	ctrl := gomock.NewController(t)
	q := mock.NewMockQuerier(ctrl)
	svc := newIngestService(t, q, nil)

	in := policeInput()
	in.Title = "Droner rammer mål i Ukraina"

	_, err := svc.Ingest(context.Background(), in)
	rej, ok := service.AsRejection(err)
	require.True(t, ok)
	assert.Equal(t, model.ReasonValidationFailed, rej.Reason)
	assert.Contains(t, rej.Detail, "foreign_keyword")
}

func TestIngestRejectsUnresolvableLocation(t *testing.T) {
	ctrl := gomock.NewController(t)
	q := mock.NewMockQuerier(ctrl)
	svc := newIngestService(t, q, nil)

	in := policeInput()
	in.Title = "Drone set over en mark"
	in.Narrative = "Ingen stedsangivelse i rapporten."

	_, err := svc.Ingest(context.Background(), in)
	rej, ok := service.AsRejection(err)
	require.True(t, ok)
	assert.Equal(t, model.ReasonAmbiguousLocation, rej.Reason)
	assert.Contains(t, rej.Detail, "no_location")
}

func TestIngestRejectsAmbiguousLocationWithDetail(t *testing.T) {
	ctrl := gomock.NewController(t)
	q := mock.NewMockQuerier(ctrl)
	svc := newIngestService(t, q, nil)

	in := policeInput()
	in.Title = "Droner observeret ved Aalborg og Esbjerg"
	in.Narrative = "Meldinger fra begge byer."

	_, err := svc.Ingest(context.Background(), in)
	rej, ok := service.AsRejection(err)
	require.True(t, ok)
	assert.Equal(t, model.ReasonAmbiguousLocation, rej.Reason)
	assert.Contains(t, rej.Detail, "ambiguous_location")
}

func TestIngestRejectsOutOfBoundsCoordinates(t *testing.T) {
	ctrl := gomock.NewController(t)
	q := mock.NewMockQuerier(ctrl)
	svc := newIngestService(t, q, nil)

	in := policeInput()
	lat, lon := 40.7128, -74.0060 // New York
	in.Lat, in.Lon = &lat, &lon
	in.AssetType = model.AssetAirport

	_, err := svc.Ingest(context.Background(), in)
	rej, ok := service.AsRejection(err)
	require.True(t, ok)
	assert.Equal(t, model.ReasonValidationFailed, rej.Reason)
}

func TestIngestInvalidInput(t *testing.T) {
	ctrl := gomock.NewController(t)
	q := mock.NewMockQuerier(ctrl)
	svc := newIngestService(t, q, nil)

	missingTitle := policeInput()
	missingTitle.Title = "   "
	_, err := svc.Ingest(context.Background(), missingTitle)
	assert.ErrorIs(t, err, service.ErrInvalidInput)

	halfCoords := policeInput()
	lat := 57.0
	halfCoords.Lat = &lat
	_, err = svc.Ingest(context.Background(), halfCoords)
	assert.ErrorIs(t, err, service.ErrInvalidInput)

	badType := policeInput()
	badType.SourceType = "blog"
	_, err = svc.Ingest(context.Background(), badType)
	assert.ErrorIs(t, err, service.ErrInvalidInput)
}
