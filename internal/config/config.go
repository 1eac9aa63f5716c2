// Package config loads planmark configuration from a YAML file, with
// defaults that work without any file at all.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds all planmark configuration.
type Config struct {
	// MaxRow is the dataset row ceiling. The shipped deployments use 215
	// rows; it is configurable because nothing else in the model depends
	// on that exact number.
	MaxRow int `yaml:"max_row"`

	// MarkerSize is the nominal marker diameter in pixels at scale 1.
	MarkerSize float64 `yaml:"marker_size"`

	// DatabasePath locates the SQLite document store.
	DatabasePath string `yaml:"database_path"`

	// DatasetPath locates the external dataset JSON; empty or missing
	// falls back to placeholder records.
	DatasetPath string `yaml:"dataset_path"`

	Logging LoggingConfig `yaml:"logging"`
}

// LoggingConfig configures the file logger. The TUI owns the terminal, so
// logs always go to a file.
type LoggingConfig struct {
	Path  string `yaml:"path"`
	Level string `yaml:"level"` // debug, info, warn, error
}

// Default returns the configuration used when no file is present.
func Default() Config {
	home, _ := os.UserHomeDir()
	base := filepath.Join(home, ".planmark")
	return Config{
		MaxRow:       215,
		MarkerSize:   24,
		DatabasePath: filepath.Join(base, "planmark.db"),
		Logging: LoggingConfig{
			Path:  filepath.Join(base, "planmark.log"),
			Level: "info",
		},
	}
}

// Load reads path over the defaults. A missing file is not an error; a
// malformed one is.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Default(), fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return Default(), err
	}
	return cfg, nil
}

func (c Config) validate() error {
	if c.MaxRow < 1 {
		return fmt.Errorf("config: max_row must be positive, got %d", c.MaxRow)
	}
	if c.MarkerSize <= 0 {
		return fmt.Errorf("config: marker_size must be positive, got %v", c.MarkerSize)
	}
	switch c.Logging.Level {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("config: unknown log level %q", c.Logging.Level)
	}
	return nil
}
