package dedup

import "github.com/google/uuid"

// Outcome is the dedup decision for a validated, geocoded report. A
// content-hash collision or a spatio-temporal match both resolve to a merge;
// everything else creates a new incident. Duplicate is control flow here, not
// an error.
type Outcome struct {
	merge bool
	id    uuid.UUID
}

// NewIncident is the outcome that creates a fresh incident row.
func NewIncident() Outcome {
	return Outcome{}
}

// MergeInto routes the report onto an existing incident.
func MergeInto(id uuid.UUID) Outcome {
	return Outcome{merge: true, id: id}
}

// IsMerge reports whether the outcome attaches to an existing incident, and
// if so which one.
func (o Outcome) IsMerge() (uuid.UUID, bool) {
	return o.id, o.merge
}
