package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile() error: %v", err)
	}
	return path
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if len(cfg.Analysis.Extensions) != 1 || cfg.Analysis.Extensions[0] != ".py" {
		t.Errorf("Extensions = %v", cfg.Analysis.Extensions)
	}
	if !cfg.Analysis.WarnUnusedRecords || !cfg.Analysis.WarnUnusedFields {
		t.Error("unused audits should default on")
	}
	if cfg.Analysis.ComplexityThreshold != 10 {
		t.Errorf("ComplexityThreshold = %v", cfg.Analysis.ComplexityThreshold)
	}
	if !cfg.Cache.Enabled || cfg.Cache.TTL != 24 {
		t.Errorf("Cache = %+v", cfg.Cache)
	}
	if cfg.Output.Format != "text" {
		t.Errorf("Output.Format = %q", cfg.Output.Format)
	}
}

func TestLoadTOML(t *testing.T) {
	path := writeConfig(t, "drafter-analyze.toml", `
[analysis]
complexity_threshold = 5.5
warn_unused_fields = false

[output]
format = "json"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.Analysis.ComplexityThreshold != 5.5 {
		t.Errorf("ComplexityThreshold = %v", cfg.Analysis.ComplexityThreshold)
	}
	if cfg.Analysis.WarnUnusedFields {
		t.Error("warn_unused_fields should be false")
	}
	if cfg.Output.Format != "json" {
		t.Errorf("Format = %q", cfg.Output.Format)
	}
	// Untouched keys keep their defaults.
	if !cfg.Analysis.WarnUnusedRecords {
		t.Error("warn_unused_records default lost")
	}
	if cfg.Cache.Dir != ".drafter-analyze/cache" {
		t.Errorf("Cache.Dir = %q", cfg.Cache.Dir)
	}
}

func TestLoadYAML(t *testing.T) {
	path := writeConfig(t, "drafter-analyze.yaml", `
analysis:
  extensions: [".py", ".pyw"]
cache:
  enabled: false
  ttl: 1
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if len(cfg.Analysis.Extensions) != 2 || cfg.Analysis.Extensions[1] != ".pyw" {
		t.Errorf("Extensions = %v", cfg.Analysis.Extensions)
	}
	if cfg.Cache.Enabled || cfg.Cache.TTL != 1 {
		t.Errorf("Cache = %+v", cfg.Cache)
	}
}

func TestLoadJSON(t *testing.T) {
	path := writeConfig(t, "drafter-analyze.json", `{"output": {"color": false}}`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Output.Color {
		t.Error("color should be false")
	}
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	path := writeConfig(t, "drafter-analyze.toml", `
[analysis]
complexity_treshold = 5
`)

	if _, err := Load(path); err == nil {
		t.Fatal("Load() accepted a misspelled key")
	}
}

func TestLoadRejectsBadFormat(t *testing.T) {
	path := writeConfig(t, "drafter-analyze.toml", `
[output]
format = "xml"
`)

	if _, err := Load(path); err == nil {
		t.Fatal("Load() accepted an unknown output format")
	}
}

func TestLoadRejectsExtensionWithoutDot(t *testing.T) {
	path := writeConfig(t, "drafter-analyze.yaml", `
analysis:
  extensions: ["py"]
`)

	if _, err := Load(path); err == nil {
		t.Fatal("Load() accepted an extension without a leading dot")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
		t.Fatal("Load() succeeded on a missing file")
	}
}
