// Package mock provides a gomock implementation of db.Querier for service
// tests. Hand-maintained against the Querier interface; keep the two in sync
// when adding statements.
package mock

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
	"go.uber.org/mock/gomock"

	"github.com/dronewatch/dronewatch/internal/repository/db"
)

// MockQuerier mocks db.Querier.
type MockQuerier struct {
	ctrl     *gomock.Controller
	recorder *MockQuerierRecorder
}

// MockQuerierRecorder records expected calls.
type MockQuerierRecorder struct {
	mock *MockQuerier
}

// NewMockQuerier creates a MockQuerier bound to ctrl.
func NewMockQuerier(ctrl *gomock.Controller) *MockQuerier {
	m := &MockQuerier{ctrl: ctrl}
	m.recorder = &MockQuerierRecorder{mock: m}
	return m
}

// EXPECT returns the recorder.
func (m *MockQuerier) EXPECT() *MockQuerierRecorder {
	return m.recorder
}

var _ db.Querier = (*MockQuerier)(nil)

func toError(v any) error {
	if v == nil {
		return nil
	}
	return v.(error)
}

// CreateIncident

func (m *MockQuerier) CreateIncident(ctx context.Context, arg db.CreateIncidentParams) (db.Incident, error) {
	ret := m.ctrl.Call(m, "CreateIncident", ctx, arg)
	ret0, _ := ret[0].(db.Incident)
	return ret0, toError(ret[1])
}

func (mr *MockQuerierRecorder) CreateIncident(ctx, arg any) *gomock.Call {
	return mr.mock.ctrl.RecordCall(mr.mock, "CreateIncident", ctx, arg)
}

// GetIncidentForUpdate

func (m *MockQuerier) GetIncidentForUpdate(ctx context.Context, id pgtype.UUID) (db.Incident, error) {
	ret := m.ctrl.Call(m, "GetIncidentForUpdate", ctx, id)
	ret0, _ := ret[0].(db.Incident)
	return ret0, toError(ret[1])
}

func (mr *MockQuerierRecorder) GetIncidentForUpdate(ctx, id any) *gomock.Call {
	return mr.mock.ctrl.RecordCall(mr.mock, "GetIncidentForUpdate", ctx, id)
}

// GetIncidentByContentHash

func (m *MockQuerier) GetIncidentByContentHash(ctx context.Context, contentHash string) (db.Incident, error) {
	ret := m.ctrl.Call(m, "GetIncidentByContentHash", ctx, contentHash)
	ret0, _ := ret[0].(db.Incident)
	return ret0, toError(ret[1])
}

func (mr *MockQuerierRecorder) GetIncidentByContentHash(ctx, contentHash any) *gomock.Call {
	return mr.mock.ctrl.RecordCall(mr.mock, "GetIncidentByContentHash", ctx, contentHash)
}

// FindNearbyIncident

func (m *MockQuerier) FindNearbyIncident(ctx context.Context, arg db.FindNearbyIncidentParams) (db.Incident, error) {
	ret := m.ctrl.Call(m, "FindNearbyIncident", ctx, arg)
	ret0, _ := ret[0].(db.Incident)
	return ret0, toError(ret[1])
}

func (mr *MockQuerierRecorder) FindNearbyIncident(ctx, arg any) *gomock.Call {
	return mr.mock.ctrl.RecordCall(mr.mock, "FindNearbyIncident", ctx, arg)
}

// MergeIncident

func (m *MockQuerier) MergeIncident(ctx context.Context, arg db.MergeIncidentParams) error {
	ret := m.ctrl.Call(m, "MergeIncident", ctx, arg)
	return toError(ret[0])
}

func (mr *MockQuerierRecorder) MergeIncident(ctx, arg any) *gomock.Call {
	return mr.mock.ctrl.RecordCall(mr.mock, "MergeIncident", ctx, arg)
}

// ListIncidents

func (m *MockQuerier) ListIncidents(ctx context.Context, arg db.ListIncidentsParams) ([]db.IncidentWithSources, error) {
	ret := m.ctrl.Call(m, "ListIncidents", ctx, arg)
	ret0, _ := ret[0].([]db.IncidentWithSources)
	return ret0, toError(ret[1])
}

func (mr *MockQuerierRecorder) ListIncidents(ctx, arg any) *gomock.Call {
	return mr.mock.ctrl.RecordCall(mr.mock, "ListIncidents", ctx, arg)
}

// GetIncidentWithSources

func (m *MockQuerier) GetIncidentWithSources(ctx context.Context, id pgtype.UUID) (db.IncidentWithSources, error) {
	ret := m.ctrl.Call(m, "GetIncidentWithSources", ctx, id)
	ret0, _ := ret[0].(db.IncidentWithSources)
	return ret0, toError(ret[1])
}

func (mr *MockQuerierRecorder) GetIncidentWithSources(ctx, id any) *gomock.Call {
	return mr.mock.ctrl.RecordCall(mr.mock, "GetIncidentWithSources", ctx, id)
}

// UpsertSource

func (m *MockQuerier) UpsertSource(ctx context.Context, arg db.UpsertSourceParams) (db.Source, error) {
	ret := m.ctrl.Call(m, "UpsertSource", ctx, arg)
	ret0, _ := ret[0].(db.Source)
	return ret0, toError(ret[1])
}

func (mr *MockQuerierRecorder) UpsertSource(ctx, arg any) *gomock.Call {
	return mr.mock.ctrl.RecordCall(mr.mock, "UpsertSource", ctx, arg)
}

// AttachIncidentSource

func (m *MockQuerier) AttachIncidentSource(ctx context.Context, arg db.AttachIncidentSourceParams) (int64, error) {
	ret := m.ctrl.Call(m, "AttachIncidentSource", ctx, arg)
	ret0, _ := ret[0].(int64)
	return ret0, toError(ret[1])
}

func (mr *MockQuerierRecorder) AttachIncidentSource(ctx, arg any) *gomock.Call {
	return mr.mock.ctrl.RecordCall(mr.mock, "AttachIncidentSource", ctx, arg)
}

// CountIncidentSources

func (m *MockQuerier) CountIncidentSources(ctx context.Context, incidentID pgtype.UUID) (int64, error) {
	ret := m.ctrl.Call(m, "CountIncidentSources", ctx, incidentID)
	ret0, _ := ret[0].(int64)
	return ret0, toError(ret[1])
}

func (mr *MockQuerierRecorder) CountIncidentSources(ctx, incidentID any) *gomock.Call {
	return mr.mock.ctrl.RecordCall(mr.mock, "CountIncidentSources", ctx, incidentID)
}

// GetScraperCacheEntry

func (m *MockQuerier) GetScraperCacheEntry(ctx context.Context, incidentHash string) (db.ScraperCacheEntry, error) {
	ret := m.ctrl.Call(m, "GetScraperCacheEntry", ctx, incidentHash)
	ret0, _ := ret[0].(db.ScraperCacheEntry)
	return ret0, toError(ret[1])
}

func (mr *MockQuerierRecorder) GetScraperCacheEntry(ctx, incidentHash any) *gomock.Call {
	return mr.mock.ctrl.RecordCall(mr.mock, "GetScraperCacheEntry", ctx, incidentHash)
}

// PutScraperCacheEntry

func (m *MockQuerier) PutScraperCacheEntry(ctx context.Context, arg db.PutScraperCacheEntryParams) error {
	ret := m.ctrl.Call(m, "PutScraperCacheEntry", ctx, arg)
	return toError(ret[0])
}

func (mr *MockQuerierRecorder) PutScraperCacheEntry(ctx, arg any) *gomock.Call {
	return mr.mock.ctrl.RecordCall(mr.mock, "PutScraperCacheEntry", ctx, arg)
}

// PurgeScraperCache

func (m *MockQuerier) PurgeScraperCache(ctx context.Context, olderThan pgtype.Timestamptz) (int64, error) {
	ret := m.ctrl.Call(m, "PurgeScraperCache", ctx, olderThan)
	ret0, _ := ret[0].(int64)
	return ret0, toError(ret[1])
}

func (mr *MockQuerierRecorder) PurgeScraperCache(ctx, olderThan any) *gomock.Call {
	return mr.mock.ctrl.RecordCall(mr.mock, "PurgeScraperCache", ctx, olderThan)
}
