// Package config loads the run configuration file. Command-line flags
// override anything set here.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultAnalyzersPath is the conventional directory searched for analyzer
// plugin binaries when none is configured.
const DefaultAnalyzersPath = "analyzers"

// Config represents the run configuration for the driver.
type Config struct {
	AnalyzersPath  string   `yaml:"analyzers_path"`
	IgnoreFiles    []string `yaml:"ignore_files"`
	FailOnWarnings []string `yaml:"fail_on_warnings"`
	Jobs           int      `yaml:"jobs"`
	Format         string   `yaml:"format"`
}

// Default returns the configuration used when no config file is given.
func Default() *Config {
	return &Config{
		AnalyzersPath: DefaultAnalyzersPath,
		Format:        "text",
	}
}

// Load reads a run configuration from a YAML file. Fields absent from the
// file keep their defaults.
func Load(filename string) (*Config, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open config: %w", err)
	}
	defer file.Close()

	cfg := Default()
	if err := yaml.NewDecoder(file).Decode(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if cfg.AnalyzersPath == "" {
		cfg.AnalyzersPath = DefaultAnalyzersPath
	}
	if cfg.Format == "" {
		cfg.Format = "text"
	}
	return cfg, nil
}
