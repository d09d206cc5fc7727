package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/chazu/lazyk/graph"
)

// Config holds defaults for flags the CLI doesn't override.
type Config struct {
	NodeCapacity int    `toml:"node_capacity" json:"node_capacity"`
	RootCapacity int    `toml:"root_capacity" json:"root_capacity"`
	Verbose      bool   `toml:"verbose" json:"verbose"`
	CachePath    string `toml:"cache_path" json:"cache_path"`
}

// Default returns the built-in configuration, used when no config file is
// found anywhere in the search path.
func Default() Config {
	return Config{
		NodeCapacity: graph.DefaultNodeCapacity,
		RootCapacity: graph.DefaultRootCapacity,
		Verbose:      false,
		CachePath:    defaultCachePath(),
	}
}

func defaultCachePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".lazyk-cache.db"
	}
	return filepath.Join(home, ".lazyk", "cache.db")
}

// Load resolves a configuration by search order: explicitPath (the
// -config flag) if non-empty, then ./.lazyrc.toml, then
// $HOME/.lazyrc.toml, then Default(). A configuration read from a file is
// validated against the CUE schema before being returned; Default() is
// returned as is.
func Load(explicitPath string) (Config, error) {
	cfg := Default()

	path := explicitPath
	if path == "" {
		if _, err := os.Stat(".lazyrc.toml"); err == nil {
			path = ".lazyrc.toml"
		} else if home, err := os.UserHomeDir(); err == nil {
			candidate := filepath.Join(home, ".lazyrc.toml")
			if _, err := os.Stat(candidate); err == nil {
				path = candidate
			}
		}
	}

	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: reading %s: %w", path, err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parsing %s: %w", path, err)
	}

	if err := Validate(cfg); err != nil {
		return Config{}, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}
