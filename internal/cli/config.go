package cli

import (
	"context"
	"os"
	"path/filepath"

	"github.com/hungdaqq/mappymatch/pkg/cache"
	"github.com/hungdaqq/mappymatch/pkg/pipeline"
)

// defaultConfigPath returns the config file path using the XDG standard
// (~/.config/mappymatch/config.toml).
func defaultConfigPath() string {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName, "config.toml")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "config.toml"
	}
	return filepath.Join(home, ".config", appName, "config.toml")
}

// cacheDir returns the cache directory using the XDG standard
// (~/.cache/mappymatch/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// loadConfig reads the config file named by path. Errors degrade to the
// zero config so a broken config never blocks read-only commands; the
// caller decides whether to surface them.
func loadConfig(path string) (*pipeline.Config, error) {
	cfg, err := pipeline.LoadConfig(path)
	if err != nil {
		return &pipeline.Config{}, err
	}
	return cfg, nil
}

// openCache constructs the configured cache backend. Without a configured
// backend it falls back to a file cache under cacheDir, and to a null cache
// when even that is unavailable.
func openCache(ctx context.Context, cfg *pipeline.Config, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	if cfg.Cache.Backend == "" && cfg.Cache.Dir == "" {
		dir, err := cacheDir()
		if err != nil {
			return cache.NewNullCache(), nil
		}
		return cache.NewFileCache(dir)
	}
	return cfg.Cache.OpenCache(ctx)
}
