// Package model holds the shared domain value types used across the
// collector, validator, dedup, and service layers. The repository layer has
// its own row structs; these are the pipeline-facing types.
package model

import "time"

// AssetType is the category of protected infrastructure a report pertains to.
type AssetType string

const (
	AssetAirport    AssetType = "airport"
	AssetHarbor     AssetType = "harbor"
	AssetMilitary   AssetType = "military"
	AssetPowerplant AssetType = "powerplant"
	AssetBridge     AssetType = "bridge"
	AssetOther      AssetType = "other"
)

// Valid reports whether a is a known asset type.
func (a AssetType) Valid() bool {
	switch a {
	case AssetAirport, AssetHarbor, AssetMilitary, AssetPowerplant, AssetBridge, AssetOther:
		return true
	}
	return false
}

// MatchRadiusMeters returns the spatial radius used when deciding whether two
// reports describe the same physical event. Larger sites get larger radii:
// an airport perimeter can span kilometres, a bridge cannot.
func (a AssetType) MatchRadiusMeters() float64 {
	switch a {
	case AssetAirport, AssetMilitary:
		return 3000
	case AssetHarbor:
		return 1500
	case AssetPowerplant:
		return 1000
	default:
		return 500
	}
}

// IncidentStatus is the lifecycle state of a consolidated incident.
type IncidentStatus string

const (
	StatusActive        IncidentStatus = "active"
	StatusResolved      IncidentStatus = "resolved"
	StatusUnconfirmed   IncidentStatus = "unconfirmed"
	StatusFalsePositive IncidentStatus = "false_positive"
)

// Valid reports whether s is a known status.
func (s IncidentStatus) Valid() bool {
	switch s {
	case StatusActive, StatusResolved, StatusUnconfirmed, StatusFalsePositive:
		return true
	}
	return false
}

// SourceType categorises a publisher. The trust ladder (official 4, verified
// media 3, media 2, social/unknown 1) hangs off this.
type SourceType string

const (
	SourcePolice            SourceType = "police"
	SourceNOTAM             SourceType = "notam"
	SourceMedia             SourceType = "media"
	SourceSocial            SourceType = "social"
	SourceOSINT             SourceType = "osint"
	SourceAviationAuthority SourceType = "aviation_authority"
	SourceOther             SourceType = "other"
)

// Valid reports whether t is a known source type.
func (t SourceType) Valid() bool {
	switch t {
	case SourcePolice, SourceNOTAM, SourceMedia, SourceSocial, SourceOSINT,
		SourceAviationAuthority, SourceOther:
		return true
	}
	return false
}

// Evidence score tiers. The score is derived from the attached source set and
// is only ever written by the database trigger (mirrored in service/evidence
// for tests).
const (
	EvidenceUnconfirmed = 1
	EvidenceReported    = 2
	EvidenceVerified    = 3
	EvidenceOfficial    = 4
)

// European admit region. Coordinates outside this box are rejected by the
// validator and, as the final gate, by the database trigger.
const (
	BoundsLatMin = 35.0
	BoundsLatMax = 71.0
	BoundsLonMin = -10.0
	BoundsLonMax = 31.0
)

// InBounds reports whether the coordinate falls inside the European admit
// region. Boundary values are included.
func InBounds(lat, lon float64) bool {
	return lat >= BoundsLatMin && lat <= BoundsLatMax &&
		lon >= BoundsLonMin && lon <= BoundsLonMax
}

// RawReport is the uniform output contract of every collector. Collectors do
// fetching and surface extraction only; they never decide whether a report is
// an incident.
type RawReport struct {
	SourceKey    string    // registry key of the publishing source
	SourceURL    string    // canonical URL of the article/post
	PublishedAt  time.Time // publisher timestamp, UTC
	Title        string
	Body         string // excerpt or full body, plain text
	Lang         string // ISO 639-1 hint from the source descriptor
	LocationHint string // pre-extracted location string, may be empty
}

// Rejection reasons recorded by the pipeline. The validator returns the first
// failing reason; the orchestrator aggregates metrics by reason.
const (
	ReasonNotAnIncident     = "NOT_AN_INCIDENT"
	ReasonForeignRegion     = "FOREIGN_REGION"
	ReasonAmbiguousLocation = "AMBIGUOUS_LOCATION"
	ReasonValidationFailed  = "VALIDATION_FAILED"
	ReasonDuplicate         = "DUPLICATE"
	ReasonBadSourceURL      = "BAD_SOURCE_URL"
	ReasonBadCoords         = "BAD_COORDS"
	ReasonUnauthorized      = "UNAUTHORIZED"
	ReasonInternal          = "INTERNAL"
)
