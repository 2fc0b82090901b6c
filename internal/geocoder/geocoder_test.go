package geocoder_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dronewatch/dronewatch/internal/geocoder"
	"github.com/dronewatch/dronewatch/internal/model"
	"github.com/dronewatch/dronewatch/internal/registry"
)

func newGeocoder(t *testing.T) *geocoder.Geocoder {
	t.Helper()
	reg, err := registry.New()
	require.NoError(t, err)
	return geocoder.New(reg)
}

func TestResolveFacilityBeatsCity(t *testing.T) {
	g := newGeocoder(t)

	// "aalborg lufthavn" (facility) and "aalborg" (city) both match; the
	// facility must win and bring its asset type along.
	res, err := g.Resolve("", "Drone observeret over Aalborg Lufthavn", "Politiet har afspærret området.", "DK")
	require.NoError(t, err)
	assert.InDelta(t, 57.0928, res.Lat, 0.0001)
	assert.InDelta(t, 9.8492, res.Lon, 0.0001)
	assert.Equal(t, model.AssetAirport, res.Asset)
	assert.Equal(t, "DK", res.Country)
}

func TestResolveAlias(t *testing.T) {
	g := newGeocoder(t)

	res, err := g.Resolve("", "Drone sighting closes Kastrup for an hour", "", "DK")
	require.NoError(t, err)
	assert.InDelta(t, 55.6181, res.Lat, 0.0001)
	assert.Equal(t, model.AssetAirport, res.Asset)
}

func TestResolveHintOutranksTitle(t *testing.T) {
	g := newGeocoder(t)

	// The hint names Arlanda; the title mentions Copenhagen. The hint wins
	// because it is scanned first.
	res, err := g.Resolve("arlanda", "Drönare sedd nära Copenhagen", "", "SE")
	require.NoError(t, err)
	assert.InDelta(t, 59.6498, res.Lat, 0.0001)
	assert.Equal(t, "SE", res.Country)
}

func TestResolveSourceCountryBreaksTie(t *testing.T) {
	g := newGeocoder(t)

	// "bergen" (NO city) is the only match here; with a Norwegian source the
	// city resolves cleanly.
	res, err := g.Resolve("", "Drone over Bergen sentrum", "", "NO")
	require.NoError(t, err)
	assert.InDelta(t, 60.3913, res.Lat, 0.0001)
	assert.Equal(t, "NO", res.Country)
}

func TestResolveAmbiguousCitiesRejected(t *testing.T) {
	g := newGeocoder(t)

	// Two same-tier anchors of equal match length in different places, and the
	// source country matches neither uniquely.
	_, err := g.Resolve("", "Droner set i både Aalborg og Esbjerg", "", "")
	require.Error(t, err)
	assert.ErrorIs(t, err, geocoder.ErrAmbiguousLocation)
}

func TestResolveNoLocation(t *testing.T) {
	g := newGeocoder(t)

	_, err := g.Resolve("", "Drone set over en mark", "Ingen stedsangivelse.", "DK")
	assert.ErrorIs(t, err, geocoder.ErrNoLocation)
}

func TestCountryForCoords(t *testing.T) {
	cases := []struct {
		name     string
		lat, lon float64
		want     string
	}{
		{"aalborg airport", 57.0928, 9.8492, "DK"},
		{"oslo", 59.9139, 10.7522, "NO"},
		{"stockholm", 59.3293, 18.0686, "SE"},
		{"helsinki", 60.1699, 24.9384, "FI"},
		{"zurich is CH not DE", 47.3769, 8.5417, "CH"},
		{"berlin", 52.52, 13.405, "DE"},
		{"lisbon is PT not ES", 38.7223, -9.1393, "PT"},
		{"madrid", 40.4168, -3.7038, "ES"},
		{"rome", 41.9028, 12.4964, "IT"},
		{"schiphol", 52.3105, 4.7683, "NL"},
		{"open water", 56.5, 3.0, "XX"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, geocoder.CountryForCoords(tc.lat, tc.lon))
		})
	}
}
