package cli

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// appName is the application name used for directories and display.
const appName = "topograph"

// Config holds CLI defaults that can be overridden per invocation with
// flags. It is read from an optional TOML file; a missing file yields
// the built-in defaults.
type Config struct {
	// Threshold is the default simplification threshold, a fraction of
	// the scalar span in [0, 1]. Zero disables simplification.
	Threshold float64 `toml:"threshold"`

	// Field is the default scalar field name used when a mesh carries
	// several fields.
	Field string `toml:"field"`

	// CacheDir overrides the published-graph cache directory.
	CacheDir string `toml:"cache_dir"`

	// RedisAddr selects a Redis cache backend for serve (host:port).
	// Empty means the file cache.
	RedisAddr string `toml:"redis_addr"`
}

// defaultConfigPath returns the conventional config file location,
// honoring XDG_CONFIG_HOME.
func defaultConfigPath() string {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		base = filepath.Join(home, ".config")
	}
	return filepath.Join(base, appName, "config.toml")
}

// defaultCacheDir returns the conventional cache directory.
func defaultCacheDir() string {
	base, err := os.UserCacheDir()
	if err != nil {
		return filepath.Join(os.TempDir(), appName)
	}
	return filepath.Join(base, appName)
}

// loadConfig reads the config file at path, or the default location when
// path is empty. A missing file is not an error; malformed TOML is.
func loadConfig(path string) (Config, error) {
	cfg := Config{}
	if path == "" {
		path = defaultConfigPath()
	}
	if path == "" {
		return cfg, nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}
