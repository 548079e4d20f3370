package pipeline

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"paldata/pkg/contracts/domain"
)

// Metrics instruments pipeline runs against an injected OpenTelemetry
// meter. A nil *Metrics is valid and records nothing, so the pipeline can
// run unobserved.
type Metrics struct {
	stageDuration    metric.Float64Histogram
	recordsProcessed metric.Int64Counter
	stageFailures    metric.Int64Counter
}

// NewMetrics creates the pipeline instruments on the given meter.
func NewMetrics(meter metric.Meter) (*Metrics, error) {
	stageDuration, err := meter.Float64Histogram("pipeline.stage.duration",
		metric.WithDescription("Duration of a pipeline stage in seconds"),
		metric.WithUnit("s"))
	if err != nil {
		return nil, fmt.Errorf("failed to create stage duration histogram: %w", err)
	}

	recordsProcessed, err := meter.Int64Counter("pipeline.records.processed",
		metric.WithDescription("Canonical records produced per run"))
	if err != nil {
		return nil, fmt.Errorf("failed to create records counter: %w", err)
	}

	stageFailures, err := meter.Int64Counter("pipeline.stage.failures",
		metric.WithDescription("Pipeline stage failures"))
	if err != nil {
		return nil, fmt.Errorf("failed to create failures counter: %w", err)
	}

	return &Metrics{
		stageDuration:    stageDuration,
		recordsProcessed: recordsProcessed,
		stageFailures:    stageFailures,
	}, nil
}

// RecordStage records one stage's duration.
func (m *Metrics) RecordStage(ctx context.Context, stage string, category domain.Category, d time.Duration) {
	if m == nil {
		return
	}
	m.stageDuration.Record(ctx, d.Seconds(), metric.WithAttributes(
		attribute.String("stage", stage),
		attribute.String("category", string(category)),
	))
}

// RecordBatch records the record count of a completed run.
func (m *Metrics) RecordBatch(ctx context.Context, category domain.Category, count int) {
	if m == nil {
		return
	}
	m.recordsProcessed.Add(ctx, int64(count), metric.WithAttributes(
		attribute.String("category", string(category)),
	))
}

// RecordFailure counts one stage failure.
func (m *Metrics) RecordFailure(ctx context.Context, stage string, category domain.Category) {
	if m == nil {
		return
	}
	m.stageFailures.Add(ctx, 1, metric.WithAttributes(
		attribute.String("stage", stage),
		attribute.String("category", string(category)),
	))
}
