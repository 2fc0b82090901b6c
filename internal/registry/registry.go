// Package registry is the static, process-wide catalog of publishers and the
// curated gazetteer of geographic anchors. It is compiled into the binary,
// built once at init, and read-only afterwards. It is the authoritative table
// for trust weights used during ingest and evidence scoring.
package registry

import (
	"fmt"
	"strings"

	"github.com/dronewatch/dronewatch/internal/model"
)

// SourceDescriptor describes one publisher.
type SourceDescriptor struct {
	Key         string // stable registry key, e.g. "dk_police_nordjylland"
	Name        string // display name
	Domain      string // registrable domain, e.g. "politi.dk"
	Type        model.SourceType
	TrustWeight float64 // [0.0, 4.0]; 4 official, 3 verified media, 2 media, 1 social
	HomepageURL string
	FeedURL     string
	Lang        string // ISO 639-1
	Country     string // ISO 3166-1 alpha-2
	Keywords    []string
	Active      bool
}

// GazetteerEntry is a geographic anchor: a facility or city with coordinates,
// asset tag, and country. Specificity drives tie-breaking in the geocoder.
type GazetteerEntry struct {
	Name        string // canonical, lowercased
	Aliases     []string
	Lat         float64
	Lon         float64
	Asset       model.AssetType
	Country     string
	Specificity int // higher wins: facility 3, city 2, region 1
}

// Registry bundles the source catalog and gazetteer behind lookup maps.
type Registry struct {
	sources    []SourceDescriptor
	byKey      map[string]SourceDescriptor
	byDomain   map[string]SourceDescriptor // keyed "domain|source_type"
	gazetteer  []GazetteerEntry
	nameByHost map[string]string // domain → display name fallback
}

// New builds the registry from the embedded catalog. It validates every
// descriptor so a bad catalog entry fails at startup, not at ingest time.
func New() (*Registry, error) {
	return newFrom(catalog, gazetteer)
}

func newFrom(sources []SourceDescriptor, entries []GazetteerEntry) (*Registry, error) {
	r := &Registry{
		sources:    sources,
		byKey:      make(map[string]SourceDescriptor, len(sources)),
		byDomain:   make(map[string]SourceDescriptor, len(sources)),
		gazetteer:  entries,
		nameByHost: make(map[string]string, len(sources)),
	}
	for _, s := range sources {
		if s.Key == "" || s.Domain == "" {
			return nil, fmt.Errorf("registry: descriptor missing key or domain: %+v", s)
		}
		if !s.Type.Valid() {
			return nil, fmt.Errorf("registry: %s has unknown source type %q", s.Key, s.Type)
		}
		if s.TrustWeight < 0 || s.TrustWeight > 4 {
			return nil, fmt.Errorf("registry: %s trust weight %v out of [0,4]", s.Key, s.TrustWeight)
		}
		if err := model.ValidateSourceURL(s.HomepageURL); err != nil {
			return nil, fmt.Errorf("registry: %s homepage: %w", s.Key, err)
		}
		if _, dup := r.byKey[s.Key]; dup {
			return nil, fmt.Errorf("registry: duplicate key %s", s.Key)
		}
		dk := domainKey(s.Domain, s.Type)
		if _, dup := r.byDomain[dk]; dup {
			return nil, fmt.Errorf("registry: duplicate (domain, type) %s", dk)
		}
		r.byKey[s.Key] = s
		r.byDomain[dk] = s
		// First catalog entry for a domain owns the display name.
		if _, seen := r.nameByHost[strings.ToLower(s.Domain)]; !seen {
			r.nameByHost[strings.ToLower(s.Domain)] = s.Name
		}
	}
	for _, g := range entries {
		if !g.Asset.Valid() {
			return nil, fmt.Errorf("registry: gazetteer %q has unknown asset %q", g.Name, g.Asset)
		}
		if !model.InBounds(g.Lat, g.Lon) {
			return nil, fmt.Errorf("registry: gazetteer %q outside European bounds", g.Name)
		}
	}
	return r, nil
}

func domainKey(domain string, t model.SourceType) string {
	return strings.ToLower(domain) + "|" + string(t)
}

// Lookup returns the descriptor for a registry key.
func (r *Registry) Lookup(key string) (SourceDescriptor, bool) {
	s, ok := r.byKey[key]
	return s, ok
}

// ByDomain returns the descriptor for a (domain, source type) pair.
func (r *Registry) ByDomain(domain string, t model.SourceType) (SourceDescriptor, bool) {
	s, ok := r.byDomain[domainKey(domain, t)]
	return s, ok
}

// TrustWeightFor resolves the trust weight for a source URL. Registry entries
// win; an unknown domain falls back to the caller's hint, clamped to the
// weight implied by its source type so an unregistered blog cannot claim
// official trust.
func (r *Registry) TrustWeightFor(sourceURL string, t model.SourceType, hint float64) float64 {
	if s, ok := r.ByDomain(model.DomainOf(sourceURL), t); ok {
		return s.TrustWeight
	}
	max := defaultWeight(t)
	if hint <= 0 || hint > max {
		return max
	}
	return hint
}

func defaultWeight(t model.SourceType) float64 {
	switch t {
	case model.SourcePolice, model.SourceNOTAM, model.SourceAviationAuthority:
		return 4
	case model.SourceMedia:
		return 2
	default:
		return 1
	}
}

// NameFor resolves a display name for a source URL, falling back through the
// registry, the caller-provided name, and a domain dictionary.
func (r *Registry) NameFor(sourceURL, rowName string) string {
	domain := model.DomainOf(sourceURL)
	if n, ok := r.nameByHost[domain]; ok {
		return n
	}
	if rowName != "" {
		return rowName
	}
	if n, ok := domainNames[domain]; ok {
		return n
	}
	return "Unknown Source"
}

// Active returns all active source descriptors, for the orchestrator.
func (r *Registry) Active() []SourceDescriptor {
	out := make([]SourceDescriptor, 0, len(r.sources))
	for _, s := range r.sources {
		if s.Active {
			out = append(out, s)
		}
	}
	return out
}

// All returns every descriptor, active or not. Used by the seed migration
// generator and tests.
func (r *Registry) All() []SourceDescriptor {
	return r.sources
}

// Gazetteer returns the geographic anchors.
func (r *Registry) Gazetteer() []GazetteerEntry {
	return r.gazetteer
}
