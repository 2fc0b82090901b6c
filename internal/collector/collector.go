// Package collector fetches raw reports from external publishers. Collectors
// only fetch and extract; classification, geocoding, and dedup happen
// downstream. Every collector yields the uniform model.RawReport contract.
package collector

import (
	"context"
	"time"

	"github.com/dronewatch/dronewatch/internal/model"
	"github.com/dronewatch/dronewatch/internal/registry"
)

// Stats summarises one collector run for the cycle report.
type Stats struct {
	SourceKey string
	Found     int
	Errors    int
	Duration  time.Duration
}

// Collector fetches the current batch of reports for one source.
type Collector interface {
	// Source returns the descriptor this collector serves.
	Source() registry.SourceDescriptor

	// Collect fetches and extracts reports. Partial results with a nil error
	// are fine; a non-nil error means the fetch itself failed.
	Collect(ctx context.Context) ([]model.RawReport, Stats, error)
}
