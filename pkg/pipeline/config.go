package pipeline

import (
	"context"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/hungdaqq/mappymatch/pkg/cache"
	"github.com/hungdaqq/mappymatch/pkg/errors"
)

// Config is the on-disk configuration, loaded from a TOML file. It carries
// the settings that outlive a single invocation: cache backend selection
// and pipeline defaults. Flags override config values.
type Config struct {
	// Defaults applied when the corresponding option is unset.
	Vintage string `toml:"vintage"`
	CRS     string `toml:"crs"`

	Cache CacheConfig `toml:"cache"`
}

// CacheConfig selects and configures the cache backend.
type CacheConfig struct {
	// Backend is one of "file", "redis", or "none". Empty selects "file".
	Backend string `toml:"backend"`

	// Dir is the cache directory for the file backend. Empty selects a
	// directory under the user cache dir.
	Dir string `toml:"dir"`

	// Prefix namespaces keys on shared backends.
	Prefix string `toml:"prefix"`

	Redis RedisConfig `toml:"redis"`
}

// RedisConfig configures the redis backend.
type RedisConfig struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
}

// LoadConfig reads a TOML config file. A missing file yields the zero
// config, so running without one is always valid.
func LoadConfig(path string) (*Config, error) {
	var cfg Config
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return &cfg, nil
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "parse config file: %s", path)
	}
	return &cfg, nil
}

// ApplyDefaults fills unset options from the config.
func (c *Config) ApplyDefaults(opts *Options) {
	if opts.Vintage == "" {
		opts.Vintage = c.Vintage
	}
	if opts.CRS == "" {
		opts.CRS = c.CRS
	}
}

// OpenCache constructs the configured cache backend.
func (c *CacheConfig) OpenCache(ctx context.Context) (cache.Cache, error) {
	switch c.Backend {
	case "", "file":
		dir := c.Dir
		if dir == "" {
			base, err := os.UserCacheDir()
			if err != nil {
				return cache.NewNullCache(), nil
			}
			dir = filepath.Join(base, "mappymatch")
		}
		return cache.NewFileCache(dir)
	case "redis":
		return cache.NewRedisCache(ctx, c.Redis.Addr, c.Redis.Password, c.Redis.DB)
	case "none":
		return cache.NewNullCache(), nil
	default:
		return nil, errors.New(errors.ErrCodeInvalidInput,
			"invalid cache backend: %q (must be one of: file, redis, none)", c.Backend)
	}
}

// Keyer constructs the configured key generator.
func (c *CacheConfig) Keyer() cache.Keyer {
	if c.Prefix != "" {
		return cache.NewScopedKeyer(cache.NewDefaultKeyer(), c.Prefix)
	}
	return cache.NewDefaultKeyer()
}
