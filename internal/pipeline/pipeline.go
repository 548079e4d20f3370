package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"paldata/internal/config"
	"paldata/internal/enrichment"
	pipeerrors "paldata/internal/errors"
	"paldata/internal/linker"
	"paldata/internal/partition"
	"paldata/internal/transform"
	"paldata/internal/validation"
	"paldata/pkg/contracts/domain"
)

// Options is the per-run configuration surface.
type Options struct {
	Enrich       bool
	Validate     bool
	Partition    bool
	LinkData     bool
	AllDatasets  map[domain.Category][]domain.Record
	OutputDir    string
	BaselineDate string // overrides the configured baseline when set
}

// DefaultOptions enables enrichment, validation and partitioning.
func DefaultOptions() Options {
	return Options{Enrich: true, Validate: true, Partition: true}
}

// StageError is one stage failure surfaced on the result. Code carries the
// failure taxonomy code when the underlying error is a coded pipeline error.
type StageError struct {
	Stage   string `json:"stage"`
	Code    string `json:"code,omitempty"`
	Message string `json:"message"`
}

// Stats summarizes a completed run.
type Stats struct {
	RecordCount    int           `json:"record_count"`
	ProcessingTime time.Duration `json:"processing_time"`
}

// Result is the structured outcome of one pipeline run. Earlier stages'
// outputs remain available even when a later stage failed.
type Result struct {
	RunID       string             `json:"run_id"`
	Success     bool               `json:"success"`
	Transformed []domain.Record    `json:"transformed,omitempty"`
	Enriched    bool               `json:"enriched"`
	Validated   *validation.Result `json:"validated,omitempty"`
	Linked      bool               `json:"linked"`
	Partitioned *partition.Result  `json:"partitioned,omitempty"`
	Errors      []StageError       `json:"errors,omitempty"`
	Warnings    []string           `json:"warnings,omitempty"`
	Stages      []*StageState      `json:"stages"`
	Stats       Stats              `json:"stats"`
}

// Pipeline orchestrates Transform → Enrich → Validate → Link → Partition
// over one batch of raw records. It holds no state between invocations;
// concurrent runs for different categories are safe as long as their
// output directories are disjoint.
type Pipeline struct {
	logger      *slog.Logger
	metrics     *Metrics
	cfg         config.PipelineConfig
	geo         *enrichment.GeoEnricher
	temporal    *enrichment.TemporalEnricher
	validator   *validation.SchemaValidator
	linker      *linker.Linker
	partitioner *partition.Partitioner
}

// New wires a pipeline from configuration. The metrics may be nil.
func New(cfg *config.Config, logger *slog.Logger, metrics *Metrics) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}

	baseline, err := time.Parse(domain.DateLayout, cfg.Pipeline.BaselineDate)
	if err != nil {
		logger.Warn("invalid baseline date in config, using default",
			slog.String("baseline", cfg.Pipeline.BaselineDate))
		baseline = time.Time{}
	}

	return &Pipeline{
		logger:    logger,
		metrics:   metrics,
		cfg:       cfg.Pipeline,
		geo:       enrichment.NewGeoEnricher(logger),
		temporal:  enrichment.NewTemporalEnricher(logger, baseline),
		validator: validation.NewSchemaValidator(logger, cfg.Pipeline.QualityThreshold),
		linker: linker.New(logger,
			linker.WithRadius(cfg.Pipeline.LinkRadiusMeters),
			linker.WithWindow(cfg.Pipeline.LinkWindowDays)),
		partitioner: partition.New(logger,
			partition.WithThreshold(cfg.Partition.Threshold),
			partition.WithRecentDays(cfg.Partition.RecentDays)),
	}
}

// Process runs the full pipeline over one raw batch. It never panics and
// never drops the whole batch silently: a failing stage marks the result
// unsuccessful, records the error and returns everything computed so far.
func (p *Pipeline) Process(ctx context.Context, raw []transform.RawRecord, meta transform.Metadata, tr transform.Transformer, opts Options) *Result {
	start := time.Now()
	result := &Result{RunID: uuid.New().String()}

	category := meta.Category
	if tr != nil {
		category = tr.Category()
	}
	p.logger.InfoContext(ctx, "pipeline run started",
		slog.String("run_id", result.RunID),
		slog.String("category", string(category)),
		slog.Int("raw_records", len(raw)))

	defer func() {
		result.Stats.ProcessingTime = time.Since(start)
		result.Stats.RecordCount = len(result.Transformed)
		p.metrics.RecordBatch(ctx, category, result.Stats.RecordCount)
		p.logger.InfoContext(ctx, "pipeline run finished",
			slog.String("run_id", result.RunID),
			slog.Bool("success", result.Success),
			slog.Int("records", result.Stats.RecordCount),
			slog.Duration("took", result.Stats.ProcessingTime))
	}()

	// Transform
	records, ok := p.runTransform(ctx, result, raw, meta, tr, category)
	if !ok {
		return result
	}
	result.Transformed = records
	if len(records) == 0 {
		result.Warnings = append(result.Warnings, "transform produced no records")
		result.Success = true
		p.skipRemaining(result, StageEnrich, StageValidate, StageLink, StagePartition)
		return result
	}

	// Enrich
	if opts.Enrich {
		p.runEnrich(ctx, result, records, tr, opts, category)
	} else {
		p.appendSkipped(result, StageEnrich, "disabled by options")
	}

	// Validate
	if opts.Validate {
		p.runValidate(ctx, result, records, category)
	} else {
		p.appendSkipped(result, StageValidate, "disabled by options")
	}

	// Link
	switch {
	case opts.LinkData && opts.AllDatasets != nil:
		p.runLink(ctx, result, records, opts, category)
	case !opts.LinkData:
		p.appendSkipped(result, StageLink, "disabled by options")
	default:
		p.appendSkipped(result, StageLink, "no companion datasets supplied")
	}

	// Partition
	if opts.Partition {
		if !p.runPartition(ctx, result, records, opts, category) {
			return result
		}
	} else {
		p.appendSkipped(result, StagePartition, "disabled by options")
	}

	result.Success = true
	return result
}

func (p *Pipeline) runTransform(ctx context.Context, result *Result, raw []transform.RawRecord, meta transform.Metadata, tr transform.Transformer, category domain.Category) ([]domain.Record, bool) {
	state := NewStageState(StageTransform)
	result.Stages = append(result.Stages, state)
	state.Start()

	if tr == nil {
		err := fmt.Errorf("%w for category %q", pipeerrors.ErrNilTransformer, meta.Category)
		p.failStage(ctx, result, state, category, err)
		return nil, false
	}

	records, err := tr.Transform(raw, meta)
	if err != nil {
		p.failStage(ctx, result, state, category, err)
		return nil, false
	}

	state.Complete()
	p.metrics.RecordStage(ctx, StageTransform, category, state.Duration())
	return records, true
}

func (p *Pipeline) runEnrich(ctx context.Context, result *Result, records []domain.Record, tr transform.Transformer, opts Options, category domain.Category) {
	state := NewStageState(StageEnrich)
	result.Stages = append(result.Stages, state)
	state.Start()

	temporal := p.temporal
	if opts.BaselineDate != "" {
		if baseline, err := time.Parse(domain.DateLayout, opts.BaselineDate); err == nil {
			temporal = enrichment.NewTemporalEnricher(p.logger, baseline)
		} else {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("ignoring invalid baseline override %q", opts.BaselineDate))
		}
	}

	for i := range records {
		p.geo.EnrichLocation(&records[i].Location)
		temporal.Enrich(&records[i])
	}
	if enricher, ok := tr.(transform.Enricher); ok {
		enricher.Enrich(records)
	}
	now := time.Now().UTC()
	for i := range records {
		records[i].Touch(now)
	}

	result.Enriched = true
	state.Complete()
	p.metrics.RecordStage(ctx, StageEnrich, category, state.Duration())
}

func (p *Pipeline) runValidate(ctx context.Context, result *Result, records []domain.Record, category domain.Category) {
	state := NewStageState(StageValidate)
	result.Stages = append(result.Stages, state)
	state.Start()

	result.Validated = p.validator.Validate(records, string(category))
	if !result.Validated.MeetsThreshold {
		result.Warnings = append(result.Warnings, fmt.Sprintf(
			"quality score %.3f below threshold %.3f",
			result.Validated.QualityScore, p.cfg.QualityThreshold))
	}

	state.Complete()
	p.metrics.RecordStage(ctx, StageValidate, category, state.Duration())
}

func (p *Pipeline) runLink(ctx context.Context, result *Result, records []domain.Record, opts Options, category domain.Category) {
	state := NewStageState(StageLink)
	result.Stages = append(result.Stages, state)
	state.Start()

	p.linker.Link(records, opts.AllDatasets)
	result.Linked = true

	state.Complete()
	p.metrics.RecordStage(ctx, StageLink, category, state.Duration())
}

// runPartition returns false when the stage failed and processing must
// stop; earlier stage outputs remain on the result.
func (p *Pipeline) runPartition(ctx context.Context, result *Result, records []domain.Record, opts Options, category domain.Category) bool {
	state := NewStageState(StagePartition)
	result.Stages = append(result.Stages, state)
	state.Start()

	partResult, err := p.partitioner.Partition(records, opts.OutputDir)
	if err != nil {
		p.failStage(ctx, result, state, category, err)
		return false
	}
	result.Partitioned = partResult

	state.Complete()
	p.metrics.RecordStage(ctx, StagePartition, category, state.Duration())
	return true
}

func (p *Pipeline) failStage(ctx context.Context, result *Result, state *StageState, category domain.Category, err error) {
	state.Fail(err)
	result.Success = false

	var perr *pipeerrors.PipelineError
	if !errors.As(err, &perr) {
		perr = pipeerrors.StageError(state.Name, err)
	}
	result.Errors = append(result.Errors, StageError{Stage: state.Name, Code: perr.Code, Message: err.Error()})
	p.metrics.RecordFailure(ctx, state.Name, category)
	p.logger.ErrorContext(ctx, "pipeline stage failed",
		slog.String("stage", state.Name),
		slog.String("category", string(category)),
		slog.String("error", err.Error()))
}

func (p *Pipeline) appendSkipped(result *Result, name, reason string) {
	state := NewStageState(name)
	state.Skip(reason)
	result.Stages = append(result.Stages, state)
}

func (p *Pipeline) skipRemaining(result *Result, names ...string) {
	for _, name := range names {
		p.appendSkipped(result, name, "no records to process")
	}
}
