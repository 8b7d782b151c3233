// Package analysis orchestrates per-file site and structure analysis,
// handling caching and parallel execution so commands stay thin.
package analysis

import (
	"encoding/json"
	"os"
	"sort"

	"github.com/drafter-edu/analyze-drafter-site/internal/cache"
	"github.com/drafter-edu/analyze-drafter-site/internal/fileproc"
	"github.com/drafter-edu/analyze-drafter-site/internal/report"
	"github.com/drafter-edu/analyze-drafter-site/pkg/analyzer/site"
	"github.com/drafter-edu/analyze-drafter-site/pkg/analyzer/structure"
	"github.com/drafter-edu/analyze-drafter-site/pkg/config"
)

// Service orchestrates site analysis operations.
type Service struct {
	config *config.Config
	cache  *cache.Cache
}

// Option configures a Service.
type Option func(*Service)

// WithConfig sets the configuration.
func WithConfig(cfg *config.Config) Option {
	return func(s *Service) {
		s.config = cfg
	}
}

// WithCache sets the result cache.
func WithCache(c *cache.Cache) Option {
	return func(s *Service) {
		s.cache = c
	}
}

// New creates a new analysis service.
func New(opts ...Option) *Service {
	s := &Service{
		config: config.LoadOrDefault(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.cache == nil {
		c, err := cache.New(s.config.Cache.Dir, s.config.Cache.TTL, s.config.Cache.Enabled)
		if err != nil {
			c, _ = cache.New("", 0, false)
		}
		s.cache = c
	}
	return s
}

// Config returns the active configuration.
func (s *Service) Config() *config.Config {
	return s.config
}

// AnalyzeSource analyzes in-memory source text, bypassing the cache.
func (s *Service) AnalyzeSource(name string, source []byte) (*FileResult, error) {
	return analyzeSource(name, source, s.config)
}

// AnalyzeFile analyzes a single file, consulting the cache first.
func (s *Service) AnalyzeFile(path string) (*FileResult, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	hash := cache.HashBytes(source)
	if data, ok := s.cache.Get(hash); ok {
		var result FileResult
		if err := json.Unmarshal(data, &result); err == nil {
			result.Path = path
			return &result, nil
		}
	}

	result, err := analyzeSource(path, source, s.config)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(result); err == nil {
		_ = s.cache.Set(hash, data)
	}
	return result, nil
}

// Options configures a multi-file analysis run.
type Options struct {
	OnProgress func()
}

// AnalyzeFiles analyzes files in parallel. Results come back sorted by
// path; per-file failures are collected rather than aborting the run.
func (s *Service) AnalyzeFiles(files []string, opts Options) ([]*FileResult, *fileproc.ProcessingErrors) {
	results, errs := fileproc.ForEachFileCollectErrors(files, s.AnalyzeFile, opts.OnProgress)
	sort.Slice(results, func(i, j int) bool {
		return results[i].Path < results[j].Path
	})
	return results, errs
}

func analyzeSource(name string, source []byte, cfg *config.Config) (*FileResult, error) {
	siteAnalyzer := site.New()
	defer siteAnalyzer.Close()

	model, err := siteAnalyzer.Analyze(source)
	if err != nil {
		return nil, err
	}

	structAnalyzer := structure.New()
	defer structAnalyzer.Close()

	sections, diags, err := structAnalyzer.Analyze(source)
	if err != nil {
		return nil, err
	}

	result := newFileResult(name, cache.HashBytes(source), model, sections, diags)
	result.Warnings = append(result.Warnings,
		report.Warnings(model, cfg.Analysis.WarnUnusedRecords, cfg.Analysis.WarnUnusedFields)...)
	return result, nil
}
