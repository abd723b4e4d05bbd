// Package config provides configuration management for the data-prep tools.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	// DefaultPath is where the tools look for a config file when
	// METPREP_CONFIG is not set.
	DefaultPath = "configs/metprep.yaml"

	// EnvConfigPath names the environment variable holding an explicit config path.
	EnvConfigPath = "METPREP_CONFIG"
	// EnvLogLevel overrides logging.level.
	EnvLogLevel = "METPREP_LOG_LEVEL"
)

// Configuration validation errors.
var (
	ErrMissingInput         = errors.New("input path is required")
	ErrMissingOutput        = errors.New("output path is required")
	ErrSameInputOutput      = errors.New("input and output must be different files")
	ErrNoColumns            = errors.New("projector.columns must list at least one column")
	ErrDuplicateColumn      = errors.New("projector.columns contains a duplicate column")
	ErrEmptyColumn          = errors.New("projector.columns contains an empty column name")
	ErrMissingCountryColumn = errors.New("countries.column is required")
	ErrInvalidLogLevel      = errors.New("logging.level must be one of: debug, info, warn, error")
	ErrInvalidLogFormat     = errors.New("logging.format must be 'text' or 'json'")
	ErrNegativeSample       = errors.New("logging.sample_countries must be non-negative")
)

// DefaultColumns is the column set kept by the projector.
var DefaultColumns = []string{
	"AccessionYear",
	"Object Name",
	"Object ID",
	"Title",
	"Is Highlight",
	"Department",
}

// Config represents the complete tool configuration.
type Config struct {
	Projector ProjectorConfig `yaml:"projector"`
	Countries CountriesConfig `yaml:"countries"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// ProjectorConfig configures the column projector.
type ProjectorConfig struct {
	Input   string   `yaml:"input"`
	Output  string   `yaml:"output"`
	Columns []string `yaml:"columns"`
}

// CountriesConfig configures the country normalizer.
type CountriesConfig struct {
	Input  string `yaml:"input"`
	Output string `yaml:"output"`
	Column string `yaml:"column"`
}

// LoggingConfig defines logging behavior.
type LoggingConfig struct {
	Level           string `yaml:"level"`
	Format          string `yaml:"format"`
	SampleCountries int    `yaml:"sample_countries"`
}

// Default returns the configuration used when no config file is present.
func Default() *Config {
	return &Config{
		Projector: ProjectorConfig{
			Input:   "MetObjects.csv",
			Output:  "MetObjects.min.csv",
			Columns: append([]string(nil), DefaultColumns...),
		},
		Countries: CountriesConfig{
			Input:  "MetObjects_clean.csv",
			Output: "country_counts.json",
			Column: "Country",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// LoadConfig loads configuration from a YAML file. Keys missing from the
// file keep their default values.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// LoadEnv reads a .env file from the working directory if there is one.
// A missing file is not an error.
func LoadEnv() error {
	err := godotenv.Load()
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to load .env: %w", err)
	}

	return nil
}

// Resolve loads the environment and returns the effective configuration:
// the file named by METPREP_CONFIG, else DefaultPath when it exists, else
// Default(). METPREP_LOG_LEVEL is applied last.
func Resolve() (*Config, error) {
	if err := LoadEnv(); err != nil {
		return nil, err
	}

	var cfg *Config

	path := os.Getenv(EnvConfigPath)
	if path == "" {
		if _, statErr := os.Stat(DefaultPath); statErr == nil {
			path = DefaultPath
		}
	}

	if path != "" {
		loaded, err := LoadConfig(path)
		if err != nil {
			return nil, err
		}

		cfg = loaded
	} else {
		cfg = Default()
	}

	if level := os.Getenv(EnvLogLevel); level != "" {
		cfg.Logging.Level = level
		if err := cfg.Validate(); err != nil {
			return nil, fmt.Errorf("%s: %w", EnvLogLevel, err)
		}
	}

	return cfg, nil
}

// SaveConfig saves configuration to YAML file.
func (c *Config) SaveConfig(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if err := c.Projector.validate(); err != nil {
		return fmt.Errorf("projector: %w", err)
	}

	if err := c.Countries.validate(); err != nil {
		return fmt.Errorf("countries: %w", err)
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[c.Logging.Level] {
		return ErrInvalidLogLevel
	}

	if c.Logging.Format != "text" && c.Logging.Format != "json" {
		return ErrInvalidLogFormat
	}

	if c.Logging.SampleCountries < 0 {
		return ErrNegativeSample
	}

	return nil
}

func (p *ProjectorConfig) validate() error {
	if err := validatePaths(p.Input, p.Output); err != nil {
		return err
	}

	if len(p.Columns) == 0 {
		return ErrNoColumns
	}

	seen := make(map[string]bool, len(p.Columns))
	for i, col := range p.Columns {
		if col == "" {
			return fmt.Errorf("%w: columns[%d]", ErrEmptyColumn, i)
		}

		if seen[col] {
			return fmt.Errorf("%w: %q", ErrDuplicateColumn, col)
		}

		seen[col] = true
	}

	return nil
}

func (c *CountriesConfig) validate() error {
	if err := validatePaths(c.Input, c.Output); err != nil {
		return err
	}

	if c.Column == "" {
		return ErrMissingCountryColumn
	}

	return nil
}

func validatePaths(input, output string) error {
	if input == "" {
		return ErrMissingInput
	}

	if output == "" {
		return ErrMissingOutput
	}

	if filepath.Clean(input) == filepath.Clean(output) {
		return ErrSameInputOutput
	}

	return nil
}

// String returns a string representation of the config.
func (c *Config) String() string {
	return fmt.Sprintf(
		"Config{Projector: %s -> %s (%d columns), Countries: %s[%s] -> %s, Log: %s}",
		c.Projector.Input,
		c.Projector.Output,
		len(c.Projector.Columns),
		c.Countries.Input,
		c.Countries.Column,
		c.Countries.Output,
		c.Logging.Level,
	)
}
