package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/chazu/lazyk/graph"
)

func TestDefaultMatchesGraphDefaults(t *testing.T) {
	cfg := Default()
	if cfg.NodeCapacity != graph.DefaultNodeCapacity {
		t.Errorf("NodeCapacity = %d, want %d", cfg.NodeCapacity, graph.DefaultNodeCapacity)
	}
	if cfg.RootCapacity != graph.DefaultRootCapacity {
		t.Errorf("RootCapacity = %d, want %d", cfg.RootCapacity, graph.DefaultRootCapacity)
	}
	if cfg.CachePath == "" {
		t.Errorf("CachePath should never be empty by default")
	}
}

func TestDefaultValidates(t *testing.T) {
	if err := Validate(Default()); err != nil {
		t.Errorf("default config should pass validation, got: %v", err)
	}
}

func TestValidateRejectsOutOfRangeNodeCapacity(t *testing.T) {
	cfg := Default()
	cfg.NodeCapacity = 1 // well below graph.MinNodeCapacity
	if err := Validate(cfg); err == nil {
		t.Errorf("expected validation to reject a node_capacity of 1")
	}
}

func TestValidateRejectsEmptyCachePath(t *testing.T) {
	cfg := Default()
	cfg.CachePath = ""
	if err := Validate(cfg); err == nil {
		t.Errorf("expected validation to reject an empty cache_path")
	}
}

func TestLoadWithExplicitPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.toml")
	contents := `node_capacity = 2048
root_capacity = 512
verbose = true
cache_path = "/tmp/custom-cache.db"
`
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.NodeCapacity != 2048 || cfg.RootCapacity != 512 || !cfg.Verbose {
		t.Errorf("Load did not apply file contents: %+v", cfg)
	}
}

func TestLoadFallsBackToDefaultWhenNoFileFound(t *testing.T) {
	dir := t.TempDir()
	cwd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Getwd: %v", err)
	}
	defer os.Chdir(cwd)
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("Chdir: %v", err)
	}

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg != Default() {
		t.Errorf("Load with no config file anywhere should return Default(), got %+v", cfg)
	}
}

func TestLoadRejectsInvalidFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.toml")
	if err := os.WriteFile(path, []byte(`node_capacity = 1`), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	if _, err := Load(path); err == nil {
		t.Errorf("Load should reject a config file with an out-of-range value")
	}
}
