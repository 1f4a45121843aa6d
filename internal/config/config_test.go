package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Workspace != "." {
		t.Errorf("expected default workspace %q, got %q", ".", cfg.Workspace)
	}
	if cfg.OutputDir != "analysis_output" {
		t.Errorf("expected default output_dir %q, got %q", "analysis_output", cfg.OutputDir)
	}
	if cfg.MaxWorkers != 8 {
		t.Errorf("expected default max_workers 8, got %d", cfg.MaxWorkers)
	}
	if cfg.ComplexityThreshold != 15 {
		t.Errorf("expected default complexity_threshold 15, got %d", cfg.ComplexityThreshold)
	}
	if !cfg.HasFormat(FormatMermaid) || cfg.HasFormat(FormatInteractive) {
		t.Errorf("unexpected default formats: %v", cfg.Formats)
	}
	if cfg.Store.Enabled {
		t.Error("store should be disabled by default")
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("expected default server port 8080, got %d", cfg.Server.Port)
	}
}

func TestSaveAndLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.flowlens.yml")

	original := DefaultConfig()
	original.Workspace = "/srv/toka"
	original.OutputDir = "out"
	original.SourceRoots = []string{"crates"}
	original.Formats = []Format{FormatJSON, FormatInteractive}
	original.MaxWorkers = 3
	original.Store.Enabled = true
	original.Store.Path = "out/results.db"

	// Save.
	if err := original.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	// Load back.
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	// Verify round-trip.
	if loaded.Workspace != original.Workspace {
		t.Errorf("workspace: got %q, want %q", loaded.Workspace, original.Workspace)
	}
	if loaded.OutputDir != original.OutputDir {
		t.Errorf("output_dir: got %q, want %q", loaded.OutputDir, original.OutputDir)
	}
	if loaded.MaxWorkers != original.MaxWorkers {
		t.Errorf("max_workers: got %d, want %d", loaded.MaxWorkers, original.MaxWorkers)
	}
	if !loaded.Store.Enabled || loaded.Store.Path != "out/results.db" {
		t.Errorf("store: got %+v, want %+v", loaded.Store, original.Store)
	}
	if len(loaded.SourceRoots) != 1 || loaded.SourceRoots[0] != "crates" {
		t.Errorf("source_roots: got %v, want %v", loaded.SourceRoots, original.SourceRoots)
	}
	if len(loaded.Formats) != 2 || loaded.Formats[0] != FormatJSON {
		t.Errorf("formats: got %v, want %v", loaded.Formats, original.Formats)
	}
}

func TestLoadMissingFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nonexistent.yml")

	// Loading a missing file should return defaults, not an error.
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load should not fail for missing file: %v", err)
	}
	if cfg.OutputDir != "analysis_output" {
		t.Errorf("expected default output_dir, got %q", cfg.OutputDir)
	}
}

func TestLoadEnvOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.yml")

	cfg := DefaultConfig()
	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	// Override workspace via env var.
	os.Setenv("FLOWLENS_WORKSPACE", "/srv/override")
	defer os.Unsetenv("FLOWLENS_WORKSPACE")

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.Workspace != "/srv/override" {
		t.Errorf("env override failed: got %q, want %q", loaded.Workspace, "/srv/override")
	}
}

func TestValidateValid(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Errorf("DefaultConfig should be valid, got: %v", err)
	}
}

func TestValidateEmptyWorkspace(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Workspace = ""
	if err := cfg.Validate(); err == nil {
		t.Error("expected validation error for empty workspace")
	}
}

func TestValidateEmptyOutputDir(t *testing.T) {
	cfg := DefaultConfig()
	cfg.OutputDir = ""
	if err := cfg.Validate(); err == nil {
		t.Error("expected validation error for empty output_dir")
	}
}

func TestValidateInvalidFormat(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Formats = []Format{"dot"}
	if err := cfg.Validate(); err == nil {
		t.Error("expected validation error for unknown format")
	}
}

func TestValidateNoFormats(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Formats = nil
	if err := cfg.Validate(); err == nil {
		t.Error("expected validation error for empty formats")
	}
}

func TestValidateNegativeWorkers(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxWorkers = -1
	if err := cfg.Validate(); err == nil {
		t.Error("expected validation error for negative max_workers")
	}
}

func TestValidateStoreWithoutPath(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Store.Enabled = true
	cfg.Store.Path = ""
	if err := cfg.Validate(); err == nil {
		t.Error("expected validation error for enabled store without path")
	}
}

func TestValidateBadPort(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Server.Port = 0
	if err := cfg.Validate(); err == nil {
		t.Error("expected validation error for port 0")
	}
}

func TestSplitAndTrim(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{"a,b,c", []string{"a", "b", "c"}},
		{" a , b , c ", []string{"a", "b", "c"}},
		{"mermaid", []string{"mermaid"}},
		{"", nil},
		{"  ,  , ", nil},
	}
	for _, tt := range tests {
		got := splitAndTrim(tt.input)
		if len(got) != len(tt.want) {
			t.Errorf("splitAndTrim(%q) len = %d, want %d", tt.input, len(got), len(tt.want))
			continue
		}
		for i, v := range got {
			if v != tt.want[i] {
				t.Errorf("splitAndTrim(%q)[%d] = %q, want %q", tt.input, i, v, tt.want[i])
			}
		}
	}
}
