package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"paldata/internal/aggregation"
	"paldata/internal/config"
	"paldata/internal/enrichment"
	pipeerrors "paldata/internal/errors"
	"paldata/internal/exporter"
	"paldata/internal/infrastructure"
	"paldata/internal/pipeline"
	"paldata/internal/transform"
	"paldata/pkg/contracts/domain"
)

func main() {
	dataDir := flag.String("in", "", "data directory holding raw/<category>.json inputs (defaults to configured data dir)")
	outputDir := flag.String("out", "", "output directory for processed datasets (defaults to configured output dir)")
	categories := flag.String("categories", "", "comma-separated categories to process (defaults to all registered)")
	baseline := flag.String("baseline", "", "baseline date override, YYYY-MM-DD")
	skipAggregates := flag.Bool("skip-aggregates", false, "skip CSV/Excel aggregate artifacts")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}
	if *dataDir != "" {
		cfg.Paths.DataDir = *dataDir
	}
	if *outputDir != "" {
		cfg.Paths.OutputDir = *outputDir
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Error("Failed to initialize logger", "error", err)
		os.Exit(1)
	}
	defer infrastructure.CloseLogFile()

	paths := config.NewPaths(cfg.Paths)
	if err := paths.EnsureDirectories(); err != nil {
		logger.Error("Failed to create directories", "error", err)
		os.Exit(1)
	}

	provider := infrastructure.NewMeterProvider()
	defer provider.Shutdown(context.Background())

	metrics, err := pipeline.NewMetrics(infrastructure.Meter())
	if err != nil {
		logger.Warn("Metrics unavailable, continuing without instrumentation", "error", err)
	}

	baselineDate := cfg.Pipeline.BaselineDate
	if *baseline != "" {
		if _, err := time.Parse(domain.DateLayout, *baseline); err != nil {
			logger.Error("Invalid baseline date", "baseline", *baseline)
			os.Exit(1)
		}
		baselineDate = *baseline
	}
	baselineTime, _ := time.Parse(domain.DateLayout, baselineDate)

	analyzer := enrichment.NewTrendAnalyzer(logger, baselineTime)
	registry := transform.DefaultRegistry(analyzer)

	selected, err := selectCategories(registry, *categories)
	if err != nil {
		logger.Error("Invalid category selection", "error", err)
		os.Exit(1)
	}

	// First pass: transform every category so cross-dataset linking has the
	// full canonical corpus to search against.
	batches := make(map[domain.Category]batch)
	datasets := make(map[domain.Category][]domain.Record)
	for _, category := range selected {
		raw, meta, err := loadRaw(paths, category)
		if err != nil {
			if os.IsNotExist(err) {
				logger.Warn("No raw input for category, skipping",
					"category", string(category),
					"path", paths.RawFile(category))
				continue
			}
			if pipeerrors.IsCode(err, pipeerrors.CodeStructural) {
				logger.Warn("Malformed raw input, skipping category",
					"category", string(category), "error", err)
				continue
			}
			logger.Error("Failed to load raw input",
				"category", string(category), "error", err)
			os.Exit(1)
		}

		tr, err := registry.Get(category)
		if err != nil {
			logger.Error("No transformer registered", "category", string(category))
			os.Exit(1)
		}
		records, err := tr.Transform(raw, meta)
		if err != nil {
			logger.Error("Transform prepass failed",
				"category", string(category), "error", err)
			os.Exit(1)
		}

		batches[category] = batch{raw: raw, meta: meta, transformer: tr}
		datasets[category] = records
		logger.Info("Loaded raw dataset",
			"category", string(category),
			"raw_records", len(raw),
			"transformed", len(records))
	}
	if len(batches) == 0 {
		logger.Error("No input data found", "data_dir", cfg.Paths.DataDir)
		os.Exit(1)
	}

	// Second pass: full pipeline runs, one per category. Output directories
	// are disjoint so the runs can proceed concurrently.
	pipe := pipeline.New(cfg, logger, metrics)
	writer := exporter.NewWriter(logger)

	var mu sync.Mutex
	results := make(map[domain.Category]*pipeline.Result)

	g, ctx := errgroup.WithContext(context.Background())
	for category, b := range batches {
		category, b := category, b
		g.Go(func() error {
			opts := pipeline.DefaultOptions()
			opts.OutputDir = paths.CategoryDir(category)
			opts.BaselineDate = baselineDate
			opts.LinkData = len(batches) > 1
			opts.AllDatasets = datasets

			result := pipe.Process(ctx, b.raw, b.meta, b.transformer, opts)
			if !result.Success {
				return fmt.Errorf("pipeline failed for category %s", category)
			}

			pkg := pipe.CreateOutputPackage(result, b.meta)
			if err := writer.WritePackage(paths.CategoryDir(category), pkg); err != nil {
				return fmt.Errorf("write package for %s: %w", category, err)
			}

			mu.Lock()
			results[category] = result
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		logger.Error("Processing failed", "error", err)
		os.Exit(1)
	}

	if !*skipAggregates {
		if err := writeAggregates(logger, writer, paths, results); err != nil {
			logger.Error("Failed to write aggregate artifacts", "error", err)
			os.Exit(1)
		}
	}

	total := 0
	for _, result := range results {
		total += result.Stats.RecordCount
	}
	logger.Info("Processing complete",
		"categories", len(results),
		"records", total,
		"output", cfg.Paths.OutputDir)
}

// batch holds one category's input plus its transformer, carried from the
// prepass to the full pipeline run.
type batch struct {
	raw         []transform.RawRecord
	meta        transform.Metadata
	transformer transform.Transformer
}

func selectCategories(registry *transform.Registry, list string) ([]domain.Category, error) {
	if list == "" {
		return registry.Categories(), nil
	}
	var selected []domain.Category
	for _, name := range strings.Split(list, ",") {
		category := domain.Category(strings.TrimSpace(name))
		if _, err := registry.Get(category); err != nil {
			return nil, fmt.Errorf("unknown category %q", name)
		}
		selected = append(selected, category)
	}
	return selected, nil
}

func loadRaw(paths *config.Paths, category domain.Category) ([]transform.RawRecord, transform.Metadata, error) {
	path := paths.RawFile(category)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, transform.Metadata{}, err
	}

	var payload struct {
		Source        string                `json:"source"`
		Organization  string                `json:"organization"`
		IndicatorCode string                `json:"indicator_code"`
		IndicatorName string                `json:"indicator_name"`
		Data          []transform.RawRecord `json:"data"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		// Bare arrays are accepted too.
		var rows []transform.RawRecord
		if arrErr := json.Unmarshal(data, &rows); arrErr != nil {
			return nil, transform.Metadata{}, pipeerrors.StructuralError(
				fmt.Sprintf("%s is neither a dataset object nor a record array", path))
		}
		payload.Data = rows
	}

	meta := transform.Metadata{
		Source:        payload.Source,
		Organization:  payload.Organization,
		Category:      category,
		IndicatorCode: payload.IndicatorCode,
		IndicatorName: payload.IndicatorName,
	}
	if meta.Source == "" {
		meta.Source = filepath.Base(path)
	}
	return payload.Data, meta, nil
}

// writeAggregates emits the cross-cutting analyst artifacts for the conflict
// dataset: a per-region CSV summary and an Excel workbook with daily series.
func writeAggregates(logger *slog.Logger, writer *exporter.Writer, paths *config.Paths, results map[domain.Category]*pipeline.Result) error {
	result, ok := results[domain.CategoryConflict]
	if !ok || len(result.Transformed) == 0 {
		logger.Info("No conflict dataset processed, skipping aggregates")
		return nil
	}

	agg := aggregation.NewAggregator(logger)
	byRegion := agg.ByRegion(result.Transformed)

	aggregatesDir := filepath.Join(paths.OutputDir, "aggregates")
	if err := writer.WriteRegionSummaryCSV(filepath.Join(aggregatesDir, "region-summary.csv"), byRegion); err != nil {
		return err
	}
	return writer.WriteAggregateWorkbook(filepath.Join(aggregatesDir, "region-aggregates.xlsx"), byRegion)
}
