package config

import (
	"fmt"
	"os"
	"path/filepath"

	"paldata/pkg/contracts/domain"
)

// Paths is the single source of truth for the dataset output layout.
// Each category gets its own directory so concurrent pipeline runs never
// write to the same location:
//
//	output/
//	  ├── conflict/
//	  │   ├── all-data.json
//	  │   ├── recent.json
//	  │   ├── metadata.json
//	  │   └── partitions/
//	  │       ├── 2023-Q4.json
//	  │       └── index.json
//	  └── economic/ ...
type Paths struct {
	DataDir   string
	OutputDir string
	LogsDir   string
}

// NewPaths builds the path layout from configuration.
func NewPaths(cfg PathsConfig) *Paths {
	return &Paths{
		DataDir:   cfg.DataDir,
		OutputDir: cfg.OutputDir,
		LogsDir:   cfg.LogsDir,
	}
}

// CategoryDir returns the output directory for one category's artifacts.
func (p *Paths) CategoryDir(category domain.Category) string {
	return filepath.Join(p.OutputDir, string(category))
}

// PartitionsDir returns the partitions subdirectory for a category.
func (p *Paths) PartitionsDir(category domain.Category) string {
	return filepath.Join(p.CategoryDir(category), "partitions")
}

// RawFile returns the expected location of a category's raw input file.
func (p *Paths) RawFile(category domain.Category) string {
	return filepath.Join(p.DataDir, "raw", string(category)+".json")
}

// LogPath returns the full path for a log file name.
func (p *Paths) LogPath(name string) string {
	return filepath.Join(p.LogsDir, name)
}

// EnsureDirectories creates all directories the processor writes into.
func (p *Paths) EnsureDirectories() error {
	dirs := []string{p.DataDir, p.OutputDir, p.LogsDir}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return nil
}
