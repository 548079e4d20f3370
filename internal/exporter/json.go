package exporter

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"paldata/internal/pipeline"
)

// Writer materializes pipeline output packages as the static JSON
// artifacts the serving layer reads.
type Writer struct {
	logger *slog.Logger
}

// NewWriter creates an artifact writer.
func NewWriter(logger *slog.Logger) *Writer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Writer{logger: logger}
}

// recentMetadata narrows the dataset metadata to the recent window.
type recentMetadata struct {
	pipeline.PackageMetadata
	WindowDays int `json:"window_days"`
}

// WritePackage writes all-data.json, metadata.json and, when the dataset
// was partitioned, recent.json for a package into dir. Quarter partition
// files and the index are the partitioner's own writes.
func (w *Writer) WritePackage(dir string, pkg *pipeline.OutputPackage) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	allData := map[string]interface{}{
		"data":     pkg.Data,
		"metadata": pkg.Metadata,
	}
	if err := w.WriteJSON(filepath.Join(dir, "all-data.json"), allData); err != nil {
		return err
	}

	// recent.json mirrors the all-data shape restricted to the window.
	if pkg.Partitions != nil && pkg.Partitions.Partitioned {
		meta := recentMetadata{
			PackageMetadata: pkg.Metadata,
			WindowDays:      pkg.Partitions.WindowDays,
		}
		meta.RecordCount = len(pkg.Partitions.Recent)
		recent := map[string]interface{}{
			"data":     pkg.Partitions.Recent,
			"metadata": meta,
		}
		if err := w.WriteJSON(filepath.Join(dir, "recent.json"), recent); err != nil {
			return err
		}
	}

	metadata := map[string]interface{}{
		"metadata":   pkg.Metadata,
		"validation": pkg.Validation,
		"partitions": pkg.Partitions,
	}
	if err := w.WriteJSON(filepath.Join(dir, "metadata.json"), metadata); err != nil {
		return err
	}

	w.logger.Info("wrote output package",
		slog.String("dir", dir),
		slog.String("category", string(pkg.Metadata.Category)),
		slog.Int("records", pkg.Metadata.RecordCount))
	return nil
}

// WriteJSON writes v to path as indented JSON.
func (w *Writer) WriteJSON(path string, v interface{}) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(v); err != nil {
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}
	return nil
}
