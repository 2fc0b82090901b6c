package telemetry

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// PipelineMetrics are the scrape-cycle counters. They ride the global meter
// provider, so without a metrics backend configured they are no-ops.
type PipelineMetrics struct {
	reports  metric.Int64Counter
	outcomes metric.Int64Counter
}

// NewPipelineMetrics registers the counters.
func NewPipelineMetrics() (*PipelineMetrics, error) {
	meter := otel.Meter("dronewatch/pipeline")

	reports, err := meter.Int64Counter("pipeline.reports",
		metric.WithDescription("raw reports entering the pipeline"))
	if err != nil {
		return nil, err
	}
	outcomes, err := meter.Int64Counter("pipeline.outcomes",
		metric.WithDescription("pipeline outcomes by kind (created, merged, rejected, cache_hit, error)"))
	if err != nil {
		return nil, err
	}
	return &PipelineMetrics{reports: reports, outcomes: outcomes}, nil
}

// AddReports counts reports fetched for a source.
func (m *PipelineMetrics) AddReports(ctx context.Context, source string, n int) {
	m.reports.Add(ctx, int64(n), metric.WithAttributes(attribute.String("source", source)))
}

// AddOutcome counts one pipeline outcome.
func (m *PipelineMetrics) AddOutcome(ctx context.Context, kind string, n int) {
	m.outcomes.Add(ctx, int64(n), metric.WithAttributes(attribute.String("kind", kind)))
}
