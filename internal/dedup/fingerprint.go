// Package dedup computes the incident fingerprints and decides whether an
// incoming report is a new incident or a merge into an existing one.
//
// The fingerprint definitions here are mirrored byte-for-byte by the database
// validation trigger (migrations/0002). Change one and you must change both.
package dedup

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"math"
	"regexp"
	"strings"
	"time"

	"github.com/dronewatch/dronewatch/internal/model"
)

var nonAlnum = regexp.MustCompile(`[^a-z0-9 ]`)

// NormalizeTitle lowercases the title and strips everything that is not an
// ASCII alphanumeric or a space. Accented and non-Latin characters are
// dropped, which keeps the fingerprint stable across publishers that differ
// only in diacritics rendering.
func NormalizeTitle(title string) string {
	return nonAlnum.ReplaceAllString(strings.ToLower(title), "")
}

// round3 formats a coordinate rounded to 3 decimal places (~110 m cell).
// The SQL mirror uses to_char(round(x::numeric,3), 'FM999990.000').
func round3(v float64) string {
	return fmt.Sprintf("%.3f", v)
}

// LocationHash returns the 16-hex-char spatial-equivalence key:
// md5(lon|lat|asset_type) over 3-decimal rounded coordinates, truncated.
func LocationHash(lat, lon float64, asset model.AssetType) string {
	sum := md5.Sum([]byte(round3(lon) + "|" + round3(lat) + "|" + string(asset)))
	return hex.EncodeToString(sum[:])[:16]
}

// ContentHash returns the 32-hex-char primary duplicate barrier:
// md5(date|lon|lat|normalized_title|asset_type). The date component is the
// UTC calendar date of occurred_at, so two reports of the same event on the
// same day at the same rounded location collide by construction.
func ContentHash(occurredAt time.Time, lat, lon float64, title string, asset model.AssetType) string {
	key := occurredAt.UTC().Format("2006-01-02") +
		"|" + round3(lon) +
		"|" + round3(lat) +
		"|" + NormalizeTitle(title) +
		"|" + string(asset)
	sum := md5.Sum([]byte(key))
	return hex.EncodeToString(sum[:])
}

// ReportFingerprint is the scraper-cache key for a processed raw report. It
// is keyed on the source URL plus the normalized title so a republished
// article with an unchanged URL is not reprocessed within the cache window.
func ReportFingerprint(sourceURL, title string) string {
	sum := md5.Sum([]byte(strings.ToLower(strings.TrimSpace(sourceURL)) + "|" + NormalizeTitle(title)))
	return hex.EncodeToString(sum[:])
}

const earthRadiusMeters = 6371000.0

// HaversineMeters is the great-circle distance between two coordinates. The
// authoritative spatial match runs in PostGIS (ST_DWithin over geography);
// this mirror exists for the matcher tests and the in-process radius checks.
func HaversineMeters(lat1, lon1, lat2, lon2 float64) float64 {
	la1 := lat1 * math.Pi / 180
	la2 := lat2 * math.Pi / 180
	dla := (lat2 - lat1) * math.Pi / 180
	dlo := (lon2 - lon1) * math.Pi / 180

	a := math.Sin(dla/2)*math.Sin(dla/2) +
		math.Cos(la1)*math.Cos(la2)*math.Sin(dlo/2)*math.Sin(dlo/2)
	return 2 * earthRadiusMeters * math.Asin(math.Sqrt(a))
}

// TemporalWindow is how far apart two reports of the same event may be.
const TemporalWindow = 7 * 24 * time.Hour

// WithinWindow reports whether two occurrence times fall inside the merge
// window.
func WithinWindow(a, b time.Time) bool {
	d := a.Sub(b)
	if d < 0 {
		d = -d
	}
	return d <= TemporalWindow
}
