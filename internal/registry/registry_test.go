package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dronewatch/dronewatch/internal/model"
)

func TestNewValidatesEmbeddedCatalog(t *testing.T) {
	reg, err := New()
	require.NoError(t, err, "the embedded catalog must always construct")

	assert.NotEmpty(t, reg.Active())
	assert.NotEmpty(t, reg.Gazetteer())

	// Every descriptor carries a working homepage; feed-less sources are
	// allowed but the active ones the scraper uses all have feeds.
	for _, s := range reg.All() {
		assert.NoError(t, model.ValidateSourceURL(s.HomepageURL), s.Key)
	}
}

func TestNewRejectsBadDescriptors(t *testing.T) {
	bad := []SourceDescriptor{{
		Key:         "bad_homepage",
		Domain:      "example.com",
		Type:        model.SourceMedia,
		TrustWeight: 2,
		HomepageURL: "https://example.com",
	}}
	_, err := newFrom(bad, nil)
	assert.Error(t, err, "placeholder homepage must fail construction")

	dupe := []SourceDescriptor{
		{Key: "a", Domain: "dr.dk", Type: model.SourceMedia, TrustWeight: 2, HomepageURL: "https://dr.dk"},
		{Key: "a", Domain: "tv2.dk", Type: model.SourceMedia, TrustWeight: 2, HomepageURL: "https://tv2.dk"},
	}
	_, err = newFrom(dupe, nil)
	assert.Error(t, err, "duplicate key must fail construction")
}

func TestLookupAndByDomain(t *testing.T) {
	reg, err := New()
	require.NoError(t, err)

	desc, ok := reg.Lookup("dk_police_nordjylland")
	require.True(t, ok)
	assert.Equal(t, "politi.dk", desc.Domain)
	assert.Equal(t, 4.0, desc.TrustWeight)

	// Same domain, different type is a distinct descriptor.
	other, ok := reg.ByDomain("politi.dk", model.SourceOther)
	require.True(t, ok)
	assert.NotEqual(t, desc.Key, other.Key)

	_, ok = reg.ByDomain("unknown.example", model.SourceMedia)
	assert.False(t, ok)
}

func TestTrustWeightForRegistryWins(t *testing.T) {
	reg, err := New()
	require.NoError(t, err)

	// Registered domain: registry weight, hint ignored.
	w := reg.TrustWeightFor("https://politi.dk/presse/1", model.SourcePolice, 1)
	assert.Equal(t, 4.0, w)

	// Unknown media domain claiming official trust is clamped to media level.
	w = reg.TrustWeightFor("https://ukendtavis.dk/artikel", model.SourceMedia, 4)
	assert.Equal(t, 2.0, w)

	// Unknown social source with a plausible hint keeps the hint.
	w = reg.TrustWeightFor("https://etforum.dk/post", model.SourceSocial, 0.5)
	assert.Equal(t, 0.5, w)

	// No hint falls back to the type default.
	w = reg.TrustWeightFor("https://ukendtavis.dk/artikel", model.SourceMedia, 0)
	assert.Equal(t, 2.0, w)
}

func TestNameForFallbackChain(t *testing.T) {
	reg, err := New()
	require.NoError(t, err)

	assert.Equal(t, "Nordjyllands Politi", reg.NameFor("https://politi.dk/presse/1", "ignored"))
	assert.Equal(t, "Row Name", reg.NameFor("https://ukendtavis.dk/a", "Row Name"))
	assert.Equal(t, "Ekstra Bladet", reg.NameFor("https://ekstrabladet.dk/a", ""))
	assert.Equal(t, "Unknown Source", reg.NameFor("https://ukendtavis.dk/a", ""))
}

func TestActiveExcludesDisabledSources(t *testing.T) {
	reg, err := New()
	require.NoError(t, err)

	for _, s := range reg.Active() {
		assert.True(t, s.Active, s.Key)
		assert.NotEqual(t, "x_police_mirror", s.Key, "disabled mirror must not be active")
	}
	assert.Greater(t, len(reg.All()), len(reg.Active()))
}
