package dedup

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dronewatch/dronewatch/internal/model"
)

func TestNormalizeTitle(t *testing.T) {
	assert.Equal(t, "drone over aalborg lufthavn", NormalizeTitle("Drone over Aalborg Lufthavn!"))
	assert.Equal(t, "drnare vid arlanda", NormalizeTitle("Drönare vid Arlanda"))
	assert.Equal(t, "2 droner set", NormalizeTitle("2 droner set..."))
	assert.Equal(t, "", NormalizeTitle("!!!"))
}

func TestContentHashStableAcrossPunctuationAndRounding(t *testing.T) {
	at := time.Date(2026, 3, 14, 21, 30, 0, 0, time.UTC)

	a := ContentHash(at, 57.09281, 9.84919, "Drone over Aalborg Lufthavn", model.AssetAirport)
	b := ContentHash(at, 57.09280, 9.84920, "drone over aalborg lufthavn!!!", model.AssetAirport)
	assert.Equal(t, a, b, "same rounded cell and normalized title must collide")

	c := ContentHash(at.Add(26*time.Hour), 57.09281, 9.84919, "Drone over Aalborg Lufthavn", model.AssetAirport)
	assert.NotEqual(t, a, c, "different UTC date must not collide")

	d := ContentHash(at, 57.09281, 9.84919, "Drone over Aalborg Lufthavn", model.AssetMilitary)
	assert.NotEqual(t, a, d, "different asset type must not collide")

	require.Len(t, a, 32)
}

func TestContentHashUsesUTCDate(t *testing.T) {
	cph := time.FixedZone("CET", 3600)
	// 00:30 local on the 15th is 23:30 UTC on the 14th.
	local := time.Date(2026, 3, 15, 0, 30, 0, 0, cph)
	utc := time.Date(2026, 3, 14, 23, 30, 0, 0, time.UTC)

	assert.Equal(t,
		ContentHash(local, 55.618, 12.656, "drone ved kastrup", model.AssetAirport),
		ContentHash(utc, 55.618, 12.656, "drone ved kastrup", model.AssetAirport),
	)
}

func TestLocationHash(t *testing.T) {
	h := LocationHash(57.0928, 9.8492, model.AssetAirport)
	require.Len(t, h, 16)
	assert.Equal(t, h, LocationHash(57.09281, 9.84919, model.AssetAirport), "3-decimal rounding defines the cell")
	assert.NotEqual(t, h, LocationHash(57.0928, 9.8492, model.AssetHarbor))
}

func TestReportFingerprint(t *testing.T) {
	a := ReportFingerprint("https://politi.dk/artikel/123", "Drone over lufthavn")
	b := ReportFingerprint(" HTTPS://POLITI.DK/artikel/123 ", "drone over lufthavn")
	assert.Equal(t, a, b)
	assert.NotEqual(t, a, ReportFingerprint("https://politi.dk/artikel/124", "Drone over lufthavn"))
}

func TestWithinWindow(t *testing.T) {
	base := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

	assert.True(t, WithinWindow(base, base.Add(7*24*time.Hour)), "boundary is inclusive")
	assert.True(t, WithinWindow(base.Add(7*24*time.Hour), base), "symmetric")
	assert.False(t, WithinWindow(base, base.Add(7*24*time.Hour+time.Second)))
}

func TestHaversineMeters(t *testing.T) {
	// Aalborg Lufthavn to Aalborg city centre is roughly 6.8 km.
	d := HaversineMeters(57.0928, 9.8492, 57.0488, 9.9217)
	assert.InDelta(t, 6500, d, 1000)

	assert.Zero(t, HaversineMeters(57.0928, 9.8492, 57.0928, 9.8492))
}

func TestOutcome(t *testing.T) {
	_, merge := NewIncident().IsMerge()
	assert.False(t, merge)

	id := uuid.New()
	got, merge := MergeInto(id).IsMerge()
	assert.True(t, merge)
	assert.Equal(t, id, got)
}
