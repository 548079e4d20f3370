package partition

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"time"

	"paldata/internal/enrichment"
	pipeerrors "paldata/internal/errors"
	"paldata/pkg/contracts/domain"
)

// Result describes the outcome of a partitioning run. Partitioned is false
// when the dataset was below the threshold and left whole. Recent holds the
// recent-window records for the exporter to materialize next to the data.
type Result struct {
	Partitioned    bool                   `json:"partitioned"`
	PartitionCount int                    `json:"partition_count"`
	TotalRecords   int                    `json:"total_records"`
	RecentCount    int                    `json:"recent_count"`
	WindowDays     int                    `json:"window_days,omitempty"`
	SkippedNoDate  int                    `json:"skipped_no_date,omitempty"`
	Index          *domain.PartitionIndex `json:"index,omitempty"`
	Recent         []domain.Record        `json:"-"`
}

// Partitioner splits a canonical record set into quarter-keyed partition
// files plus a bounded recent-window file and an index describing them.
// The reference instant for the recent window is injected so partitioning
// stays deterministic under test.
type Partitioner struct {
	logger     *slog.Logger
	threshold  int
	recentDays int
	now        func() time.Time
}

// Option customizes a Partitioner.
type Option func(*Partitioner)

// WithThreshold sets the minimum record count that triggers partitioning.
func WithThreshold(n int) Option {
	return func(p *Partitioner) { p.threshold = n }
}

// WithRecentDays sets the recent-window size in days.
func WithRecentDays(days int) Option {
	return func(p *Partitioner) { p.recentDays = days }
}

// WithNow injects the reference clock for the recent window.
func WithNow(now func() time.Time) Option {
	return func(p *Partitioner) { p.now = now }
}

// New creates a partitioner with a threshold of 1000 records and a 90-day
// recent window unless overridden.
func New(logger *slog.Logger, opts ...Option) *Partitioner {
	if logger == nil {
		logger = slog.Default()
	}
	p := &Partitioner{
		logger:     logger,
		threshold:  1000,
		recentDays: 90,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Partition writes quarter partition files and the partition index under
// outputDir, and computes the recent window for the caller to persist.
// Records lacking a parseable date are silently excluded from partitioning.
// Below the threshold the dataset is left whole and nothing is written.
func (p *Partitioner) Partition(records []domain.Record, outputDir string) (*Result, error) {
	if len(records) < p.threshold {
		p.logger.Info("dataset below partition threshold, keeping whole",
			slog.Int("records", len(records)),
			slog.Int("threshold", p.threshold))
		return &Result{Partitioned: false, TotalRecords: len(records)}, nil
	}
	if outputDir == "" {
		return nil, pipeerrors.ErrMissingOutputDir
	}

	partitionsDir := filepath.Join(outputDir, "partitions")
	if err := os.MkdirAll(partitionsDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create partitions directory: %w", err)
	}

	quarters := make(map[string][]domain.Record)
	skipped := 0
	for _, rec := range records {
		date, ok := rec.ParsedDate()
		if !ok {
			skipped++
			continue
		}
		key := enrichment.QuarterKey(date)
		quarters[key] = append(quarters[key], rec)
	}

	keys := make([]string, 0, len(quarters))
	for key := range quarters {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	// The recent window always accompanies a partitioned dataset; the
	// exporter materializes it as recent.json next to the data.
	index := &domain.PartitionIndex{HasRecentFile: true}
	for _, key := range keys {
		part := buildPartition(key, quarters[key])
		fileName := key + ".json"
		if err := writeJSON(filepath.Join(partitionsDir, fileName), part); err != nil {
			return nil, fmt.Errorf("failed to write partition %s: %w", key, err)
		}
		index.Partitions = append(index.Partitions, domain.PartitionDescriptor{
			Quarter:     part.Quarter,
			RecordCount: part.RecordCount,
			DateRange:   part.DateRange,
			FileName:    fileName,
		})
		index.TotalRecords += part.RecordCount
	}
	index.TotalPartitions = len(index.Partitions)

	recent := p.recentWindow(records)

	if err := writeJSON(filepath.Join(partitionsDir, "index.json"), index); err != nil {
		return nil, fmt.Errorf("failed to write partition index: %w", err)
	}

	p.logger.Info("partitioned dataset",
		slog.Int("partitions", index.TotalPartitions),
		slog.Int("records", index.TotalRecords),
		slog.Int("recent", len(recent)),
		slog.Int("skipped_no_date", skipped))

	return &Result{
		Partitioned:    true,
		PartitionCount: index.TotalPartitions,
		TotalRecords:   index.TotalRecords,
		RecentCount:    len(recent),
		WindowDays:     p.recentDays,
		SkippedNoDate:  skipped,
		Index:          index,
		Recent:         recent,
	}, nil
}

// buildPartition assembles one quarter's partition with its records sorted
// by date ascending.
func buildPartition(quarter string, records []domain.Record) *domain.Partition {
	sort.Slice(records, func(i, j int) bool { return records[i].Date < records[j].Date })
	return &domain.Partition{
		Quarter:     quarter,
		RecordCount: len(records),
		DateRange: domain.DateRange{
			Start: records[0].Date,
			End:   records[len(records)-1].Date,
		},
		Data: records,
	}
}

// recentWindow returns the records dated within recentDays of the
// reference instant.
func (p *Partitioner) recentWindow(records []domain.Record) []domain.Record {
	cutoff := p.now().AddDate(0, 0, -p.recentDays)
	recent := make([]domain.Record, 0)
	for _, rec := range records {
		date, ok := rec.ParsedDate()
		if !ok {
			continue
		}
		if !date.Before(cutoff) {
			recent = append(recent, rec)
		}
	}
	sort.Slice(recent, func(i, j int) bool { return recent[i].Date < recent[j].Date })
	return recent
}

func writeJSON(path string, v interface{}) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
