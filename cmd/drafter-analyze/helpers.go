package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/drafter-edu/analyze-drafter-site/internal/cache"
	"github.com/drafter-edu/analyze-drafter-site/internal/scanner"
	"github.com/drafter-edu/analyze-drafter-site/internal/service/analysis"
	"github.com/drafter-edu/analyze-drafter-site/pkg/config"
)

// getPaths returns paths from positional args, defaulting to ["."]
func getPaths(c *cli.Context) []string {
	if c.Args().Len() > 0 {
		return c.Args().Slice()
	}
	return []string{"."}
}

// loadConfig loads the config named by --config, or searches the standard
// locations.
func loadConfig(c *cli.Context) (*config.Config, error) {
	if path := c.String("config"); path != "" {
		return config.Load(path)
	}
	return config.LoadOrDefault(), nil
}

// newService builds the analysis service for a command, honoring --no-cache.
func newService(c *cli.Context) (*analysis.Service, error) {
	cfg, err := loadConfig(c)
	if err != nil {
		return nil, err
	}

	enabled := cfg.Cache.Enabled && !c.Bool("no-cache")
	resultCache, err := cache.New(cfg.Cache.Dir, cfg.Cache.TTL, enabled)
	if err != nil {
		return nil, fmt.Errorf("cache init failed: %w", err)
	}

	return analysis.New(
		analysis.WithConfig(cfg),
		analysis.WithCache(resultCache),
	), nil
}

// collectFiles expands each path into source files using the scanner.
func collectFiles(c *cli.Context, cfg *config.Config) ([]string, error) {
	s := scanner.NewScanner(cfg)
	var files []string
	for _, path := range getPaths(c) {
		info, err := os.Stat(path)
		if err != nil {
			return nil, err
		}
		if info.IsDir() {
			found, err := s.ScanDir(path)
			if err != nil {
				return nil, err
			}
			files = append(files, found...)
			continue
		}
		files = append(files, path)
	}
	return files, nil
}

// sanitizeID replaces non-alphanumeric characters for Mermaid diagram IDs.
func sanitizeID(id string) string {
	var result strings.Builder
	for _, c := range id {
		if (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9') || c == '_' {
			result.WriteRune(c)
		} else {
			result.WriteRune('_')
		}
	}
	return result.String()
}
