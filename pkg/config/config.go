// Package config loads analyzer configuration from TOML, YAML, or JSON
// files. Loaded files are validated against an embedded JSON schema before
// unmarshalling, so typos fail loudly instead of silently falling back to
// defaults.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Config holds all configuration options for the analyzer.
type Config struct {
	// Analysis settings
	Analysis AnalysisConfig `koanf:"analysis"`

	// Cache settings
	Cache CacheConfig `koanf:"cache"`

	// Output settings
	Output OutputConfig `koanf:"output"`
}

// AnalysisConfig controls what the analyzer reports.
type AnalysisConfig struct {
	// Extensions lists the file extensions treated as Drafter sources.
	Extensions []string `koanf:"extensions"`
	// WarnUnusedRecords toggles the unused-dataclass audit.
	WarnUnusedRecords bool `koanf:"warn_unused_records"`
	// WarnUnusedFields toggles the unused-field audit.
	WarnUnusedFields bool `koanf:"warn_unused_fields"`
	// ComplexityThreshold marks records at or above this score in tables.
	ComplexityThreshold float64 `koanf:"complexity_threshold"`
}

// CacheConfig controls caching behavior.
type CacheConfig struct {
	Enabled bool   `koanf:"enabled"`
	Dir     string `koanf:"dir"`
	TTL     int    `koanf:"ttl"` // TTL in hours
}

// OutputConfig controls output formatting.
type OutputConfig struct {
	Format string `koanf:"format"` // text, json, csv, markdown, yaml, toon
	Color  bool   `koanf:"color"`
}

// DefaultConfig returns a config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Analysis: AnalysisConfig{
			Extensions:          []string{".py"},
			WarnUnusedRecords:   true,
			WarnUnusedFields:    true,
			ComplexityThreshold: 10,
		},
		Cache: CacheConfig{
			Enabled: true,
			Dir:     ".drafter-analyze/cache",
			TTL:     24,
		},
		Output: OutputConfig{
			Format: "text",
			Color:  true,
		},
	}
}

// Load loads configuration from a file, layered over defaults.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	cfg := DefaultConfig()

	var parser koanf.Parser
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		parser = yaml.Parser()
	case ".json":
		parser = json.Parser()
	default:
		parser = toml.Parser()
	}

	if err := k.Load(file.Provider(path), parser); err != nil {
		return nil, err
	}

	if err := validate(k.Raw()); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadOrDefault tries the standard config locations and falls back to
// defaults when none parse.
func LoadOrDefault() *Config {
	configNames := []string{
		"drafter-analyze.toml",
		"drafter-analyze.yaml",
		"drafter-analyze.yml",
		"drafter-analyze.json",
		".drafter-analyze.toml",
		".drafter-analyze.yaml",
		".drafter-analyze.yml",
		".drafter-analyze.json",
	}

	for _, name := range configNames {
		if _, err := os.Stat(name); err == nil {
			if cfg, err := Load(name); err == nil {
				return cfg
			}
		}
	}

	return DefaultConfig()
}
