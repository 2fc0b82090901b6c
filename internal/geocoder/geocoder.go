// Package geocoder resolves textual location hints to coordinates using the
// registry gazetteer. It is deliberately conservative: when a report matches
// multiple anchors at the same specificity in different places it refuses to
// guess and the report is rejected upstream as AMBIGUOUS_LOCATION.
package geocoder

import (
	"errors"
	"strings"

	"github.com/dronewatch/dronewatch/internal/model"
	"github.com/dronewatch/dronewatch/internal/registry"
)

// ErrNoLocation is returned when no gazetteer anchor appears in the text.
var ErrNoLocation = errors.New("no known location in text")

// ErrAmbiguousLocation is returned when competing anchors cannot be separated
// by specificity, match length, or source country.
var ErrAmbiguousLocation = errors.New("ambiguous location")

// Result is a resolved location.
type Result struct {
	Lat     float64
	Lon     float64
	Asset   model.AssetType
	Country string
}

// Geocoder matches report text against the gazetteer.
type Geocoder struct {
	entries []registry.GazetteerEntry
}

// New builds a geocoder over the given registry's gazetteer.
func New(reg *registry.Registry) *Geocoder {
	return &Geocoder{entries: reg.Gazetteer()}
}

type candidate struct {
	entry    registry.GazetteerEntry
	matchLen int
}

// Resolve scans the location hint, title, and body (in that order of
// authority) for gazetteer anchors. Selection rules:
//
//  1. highest specificity wins (facility > city > region);
//  2. within a specificity tier, the longest matched name wins;
//  3. remaining ties are broken by the source's country;
//  4. anything still tied in different places is ErrAmbiguousLocation.
func (g *Geocoder) Resolve(hint, title, body, sourceCountry string) (Result, error) {
	for _, text := range []string{hint, title, body} {
		if strings.TrimSpace(text) == "" {
			continue
		}
		res, err := g.resolveText(text, sourceCountry)
		if err == nil {
			return res, nil
		}
		if errors.Is(err, ErrAmbiguousLocation) {
			return Result{}, err
		}
	}
	return Result{}, ErrNoLocation
}

func (g *Geocoder) resolveText(text, sourceCountry string) (Result, error) {
	lowered := strings.ToLower(text)

	var cands []candidate
	for _, e := range g.entries {
		if l := matchLen(lowered, e); l > 0 {
			cands = append(cands, candidate{entry: e, matchLen: l})
		}
	}
	if len(cands) == 0 {
		return Result{}, ErrNoLocation
	}

	// Rule 1: keep only the highest specificity tier.
	best := cands[:0]
	top := 0
	for _, c := range cands {
		switch {
		case c.entry.Specificity > top:
			top = c.entry.Specificity
			best = append(best[:0], c)
		case c.entry.Specificity == top:
			best = append(best, c)
		}
	}

	// Rule 2: longest match within the tier.
	longest := best[:0]
	maxLen := 0
	for _, c := range best {
		switch {
		case c.matchLen > maxLen:
			maxLen = c.matchLen
			longest = append(longest[:0], c)
		case c.matchLen == maxLen:
			longest = append(longest, c)
		}
	}

	if winner, ok := single(longest); ok {
		return toResult(winner), nil
	}

	// Rule 3: tie-break by source country.
	if sourceCountry != "" {
		var local []candidate
		for _, c := range longest {
			if c.entry.Country == sourceCountry {
				local = append(local, c)
			}
		}
		if winner, ok := single(local); ok {
			return toResult(winner), nil
		}
		if len(local) > 0 {
			longest = local
		}
	}

	// Rule 4: equal candidates naming the same place are fine (alias overlap);
	// different places are a refusal.
	first := longest[0].entry
	for _, c := range longest[1:] {
		if c.entry.Lat != first.Lat || c.entry.Lon != first.Lon {
			return Result{}, ErrAmbiguousLocation
		}
	}
	return toResult(longest[0]), nil
}

func single(cands []candidate) (candidate, bool) {
	if len(cands) == 1 {
		return cands[0], true
	}
	return candidate{}, false
}

func toResult(c candidate) Result {
	return Result{
		Lat:     c.entry.Lat,
		Lon:     c.entry.Lon,
		Asset:   c.entry.Asset,
		Country: CountryForCoords(c.entry.Lat, c.entry.Lon),
	}
}

// matchLen returns the length of the longest name/alias of e contained in the
// lowered text, or 0.
func matchLen(lowered string, e registry.GazetteerEntry) int {
	best := 0
	if strings.Contains(lowered, e.Name) && len(e.Name) > best {
		best = len(e.Name)
	}
	for _, a := range e.Aliases {
		if strings.Contains(lowered, a) && len(a) > best {
			best = len(a)
		}
	}
	return best
}
