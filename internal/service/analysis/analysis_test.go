package analysis

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/drafter-edu/analyze-drafter-site/internal/cache"
	"github.com/drafter-edu/analyze-drafter-site/pkg/config"
	"github.com/drafter-edu/analyze-drafter-site/pkg/parser"
)

const sampleSite = `from drafter import *
from dataclasses import dataclass

@dataclass
class State:
    count: int

@route
def index(state: State) -> Page:
    return Page(state, [Header("Shop"), Button("Go", shop)])

@route
def shop(state: State) -> Page:
    state.count = state.count + 1
    return Page(state, [str(state.count)])

start_server(State(0))
`

func newTestService(t *testing.T) *Service {
	t.Helper()
	c, err := cache.New(t.TempDir(), 24, true)
	require.NoError(t, err)
	return New(WithConfig(config.DefaultConfig()), WithCache(c))
}

func writeSite(t *testing.T, dir, name, source string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(source), 0o644))
	return path
}

func TestAnalyzeSource(t *testing.T) {
	svc := newTestService(t)

	result, err := svc.AnalyzeSource("site.py", []byte(sampleSite))
	require.NoError(t, err)

	assert.Equal(t, "site.py", result.Path)
	require.Len(t, result.Records, 1)
	assert.Equal(t, "State", result.Records[0].Name)
	require.Len(t, result.Records[0].Fields, 1)
	assert.Equal(t, "int", result.Records[0].Fields[0].Type)

	require.Len(t, result.Routes, 2)
	assert.Equal(t, "index(state)", result.Routes[0].Signature)
	assert.Equal(t, 1, result.ComponentTotals["Button"])
	assert.Equal(t, 1, result.ComponentTotals["Header"])
	assert.NotEmpty(t, result.CallGraph)
	assert.Len(t, result.Sections, 2)
}

func TestAnalyzeSourceSyntaxError(t *testing.T) {
	svc := newTestService(t)
	_, err := svc.AnalyzeSource("bad.py", []byte("def broken(:\n"))
	require.ErrorIs(t, err, parser.ErrSyntax)
}

func TestAnalyzeFileUsesCache(t *testing.T) {
	dir := t.TempDir()
	svc := newTestService(t)
	path := writeSite(t, dir, "site.py", sampleSite)

	first, err := svc.AnalyzeFile(path)
	require.NoError(t, err)

	// Same content under a new name must hit the cache and report the
	// new path.
	copied := writeSite(t, dir, "copy.py", sampleSite)
	second, err := svc.AnalyzeFile(copied)
	require.NoError(t, err)

	assert.Equal(t, copied, second.Path)
	assert.Equal(t, first.Hash, second.Hash)
	assert.Len(t, second.Records, len(first.Records))
}

func TestAnalyzeFilesSortedWithErrors(t *testing.T) {
	dir := t.TempDir()
	svc := newTestService(t)

	writeSite(t, dir, "b.py", sampleSite)
	writeSite(t, dir, "a.py", sampleSite)
	bad := writeSite(t, dir, "c.py", "def broken(:\n")

	files := []string{
		filepath.Join(dir, "b.py"),
		bad,
		filepath.Join(dir, "a.py"),
	}

	var ticks int
	results, errs := svc.AnalyzeFiles(files, Options{OnProgress: func() { ticks++ }})

	require.Len(t, results, 2)
	assert.Equal(t, filepath.Join(dir, "a.py"), results[0].Path)
	assert.Equal(t, filepath.Join(dir, "b.py"), results[1].Path)

	require.NotNil(t, errs)
	require.Len(t, errs.Errors, 1)
	assert.Equal(t, bad, errs.Errors[0].Path)
	assert.Equal(t, 3, ticks)
}

func TestNewDefaultsToConfigCache(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Cache.Dir = filepath.Join(t.TempDir(), "cache")

	svc := New(WithConfig(cfg))
	assert.Same(t, cfg, svc.Config())
	require.NotNil(t, svc.cache)

	_, err := os.Stat(cfg.Cache.Dir)
	assert.NoError(t, err, "cache dir not created")
}

func TestWarningsIncludeUnusedFields(t *testing.T) {
	svc := newTestService(t)

	source := `from dataclasses import dataclass

@dataclass
class Orphan:
    x: int
`
	result, err := svc.AnalyzeSource("site.py", []byte(source))
	require.NoError(t, err)

	assert.Equal(t, []string{"Orphan"}, result.UnusedRecords)
	assert.NotEmpty(t, result.Warnings)
}

func TestWarningTogglesSuppressWarnings(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Analysis.WarnUnusedRecords = false
	cfg.Analysis.WarnUnusedFields = false

	c, err := cache.New(t.TempDir(), 24, true)
	require.NoError(t, err)
	svc := New(WithConfig(cfg), WithCache(c))

	source := `from dataclasses import dataclass

@dataclass
class Orphan:
    x: int
`
	result, err := svc.AnalyzeSource("site.py", []byte(source))
	require.NoError(t, err)

	// The audits still run; only the warning lines are suppressed.
	assert.Equal(t, []string{"Orphan"}, result.UnusedRecords)
	assert.NotEmpty(t, result.UnusedFields)
	assert.Empty(t, result.Warnings)
}
