package config

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// Config represents the complete processor configuration.
type Config struct {
	Logging   LoggingConfig   `yaml:"logging" envconfig:"LOGGING"`
	Pipeline  PipelineConfig  `yaml:"pipeline" envconfig:"PIPELINE"`
	Partition PartitionConfig `yaml:"partition" envconfig:"PARTITION"`
	Paths     PathsConfig     `yaml:"paths" envconfig:"PATHS"`
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL"`
	Format   string `yaml:"format" envconfig:"FORMAT"`
	Output   string `yaml:"output" envconfig:"OUTPUT"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH"`
}

// PipelineConfig contains the knobs the pipeline stages consult.
type PipelineConfig struct {
	BaselineDate     string  `yaml:"baseline_date" envconfig:"BASELINE_DATE"`
	QualityThreshold float64 `yaml:"quality_threshold" envconfig:"QUALITY_THRESHOLD" validate:"min=0,max=1"`
	LinkRadiusMeters float64 `yaml:"link_radius_meters" envconfig:"LINK_RADIUS_METERS" validate:"min=0"`
	LinkWindowDays   int     `yaml:"link_window_days" envconfig:"LINK_WINDOW_DAYS" validate:"min=0"`
}

// PartitionConfig contains partitioning configuration. Threshold is the
// single source of truth for when a dataset is large enough to fragment;
// the pipeline and the partitioner both read it from here.
type PartitionConfig struct {
	Threshold  int `yaml:"threshold" envconfig:"THRESHOLD" validate:"min=1"`
	RecentDays int `yaml:"recent_days" envconfig:"RECENT_DAYS" validate:"min=1"`
}

// PathsConfig contains file system paths configuration.
type PathsConfig struct {
	DataDir   string `yaml:"data_dir" envconfig:"DATA_DIR"`
	OutputDir string `yaml:"output_dir" envconfig:"OUTPUT_DIR"`
	LogsDir   string `yaml:"logs_dir" envconfig:"LOGS_DIR"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:    "info",
			Format:   "json",
			Output:   "console",
			FilePath: "logs/processor.log",
		},
		Pipeline: PipelineConfig{
			BaselineDate:     "2023-10-07",
			QualityThreshold: 0.8,
			LinkRadiusMeters: 10000,
			LinkWindowDays:   30,
		},
		Partition: PartitionConfig{
			Threshold:  1000,
			RecentDays: 90,
		},
		Paths: PathsConfig{
			DataDir:   "data",
			OutputDir: "data/output",
			LogsDir:   "logs",
		},
	}
}

// Load builds the configuration in ascending precedence: built-in defaults,
// then the optional YAML file named by PAL_CONFIG_FILE, then PAL_-prefixed
// environment variables.
func Load() (*Config, error) {
	cfg := Default()

	if configFile := os.Getenv("PAL_CONFIG_FILE"); configFile != "" {
		if err := loadFromFile(cfg, configFile); err != nil {
			return nil, err
		}
	}

	if err := envconfig.Process("PAL", cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func loadFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return nil
}

// Validate checks configuration invariants.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}
