// Package config loads hammer settings from a YAML file and the environment.
//
// Precedence, lowest first: built-in defaults, the config file, HAMMER_*
// environment variables, command-line flags (applied by the caller).
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"

	"github.com/arnau/data-standards-authority/internal/store"
)

// DefaultFile is looked up in the working directory when no path is given.
const DefaultFile = "hammer.yaml"

const envPrefix = "hammer"

// Config holds every setting a run needs.
type Config struct {
	// Source is the root of the card tree.
	Source string `yaml:"source"`
	// Cache is a database path or ":memory:".
	Cache string `yaml:"cache"`
	// Ignore lists doublestar patterns relative to Source.
	Ignore []string `yaml:"ignore"`
	// MetricsFile receives a Prometheus textfile after each sync when set.
	MetricsFile string `yaml:"metricsFile" split_words:"true"`
	// ReportFile receives the JSON run report after each sync when set.
	ReportFile string `yaml:"reportFile" split_words:"true"`
	// Debounce is how long watch waits for the tree to settle.
	Debounce time.Duration `yaml:"debounce"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		Source:   ".",
		Cache:    store.MemoryLocation,
		Debounce: 500 * time.Millisecond,
	}
}

// Load reads path (or DefaultFile when path is empty and the file exists)
// over the defaults, then applies the environment.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		if _, err := os.Stat(DefaultFile); err == nil {
			path = DefaultFile
		}
	}

	if path != "" {
		buf, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		dec := yaml.NewDecoder(bytes.NewReader(buf))
		dec.KnownFields(true)
		if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("error parsing config file %s: %w", path, err)
		}
	}

	if err := envconfig.Process(envPrefix, cfg); err != nil {
		return nil, fmt.Errorf("error processing environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects settings no run could use.
func (c *Config) Validate() error {
	if c.Source == "" {
		return errors.New("source must not be empty")
	}
	if c.Debounce <= 0 {
		return fmt.Errorf("debounce must be positive, got %s", c.Debounce)
	}
	return nil
}
