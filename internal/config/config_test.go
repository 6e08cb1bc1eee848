package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.MaxFiles != DefaultMaxFiles {
		t.Errorf("expected default max_files %d, got %d", DefaultMaxFiles, cfg.MaxFiles)
	}
	if !cfg.Simulate() {
		t.Error("expected simulation on by default")
	}
}

func TestLoadPartialConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := "max_files: 100\nsimulation: false\nlog_level: debug\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.MaxFiles != 100 {
		t.Errorf("expected max_files 100, got %d", cfg.MaxFiles)
	}
	if cfg.Simulate() {
		t.Error("expected simulation off")
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("expected log_level debug, got %q", cfg.LogLevel)
	}
	// Untouched fields keep defaults
	if cfg.MaxDepth != DefaultMaxDepth {
		t.Errorf("expected default max_depth, got %d", cfg.MaxDepth)
	}
}

func TestLoadInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	os.WriteFile(path, []byte("max_files: [not a number"), 0o644)

	if _, err := Load(path); err == nil {
		t.Error("expected parse error")
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "config.yaml")
	cfg := Default()
	cfg.MaxFiles = 42

	if err := cfg.Save(path); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.MaxFiles != 42 {
		t.Errorf("expected max_files 42, got %d", got.MaxFiles)
	}
}

func TestDataPaths(t *testing.T) {
	cfg := Default()
	cfg.DataDir = "/data"

	if cfg.DBPath() != filepath.Join("/data", "filepurge.db") {
		t.Errorf("unexpected db path %q", cfg.DBPath())
	}
	if cfg.FeedbackPath() != filepath.Join("/data", "feedback.json") {
		t.Errorf("unexpected feedback path %q", cfg.FeedbackPath())
	}
}
