package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	pebblestore "github.com/lava-xyz/bdk-pebble/internal/storage/pebble"
)

// Config is the top-level configuration loaded from file/env.
type Config struct {
	DataDir         string `json:"dataDir" toml:"data_dir" env:"DATA_DIR"`
	Fsync           string `json:"fsync" toml:"fsync" env:"FSYNC"`
	FsyncIntervalMs int    `json:"fsyncIntervalMs" toml:"fsync_interval_ms" env:"FSYNC_INTERVAL_MS"`

	// Codec pins new tables. Empty selects the default for new tables and
	// adopts the pinned codec of existing ones; a set value must match it.
	Codec string `json:"codec" toml:"codec" env:"CODEC"`

	// SyncAppends flushes after every append unless the store already
	// fsyncs each write.
	SyncAppends bool `json:"syncAppends" toml:"sync_appends" env:"SYNC_APPENDS"`

	Log LogConfig `json:"log" toml:"log" envPrefix:"LOG_"`
}

// LogConfig selects the logger level and output format.
type LogConfig struct {
	Level  string `json:"level" toml:"level" env:"LEVEL"`
	Format string `json:"format" toml:"format" env:"FORMAT"`
}

// Default returns built-in defaults.
func Default() Config {
	return Config{
		DataDir:         DefaultDataDir(),
		Fsync:           "always",
		FsyncIntervalMs: 5,
		SyncAppends:     true,
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load reads configuration from a JSON or TOML file (by extension). If path is empty, returns defaults.
func Load(path string) (Config, error) {
	if path == "" {
		return Default(), nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	cfg := Default()
	switch filepath.Ext(path) {
	case ".toml":
		if _, err := toml.Decode(string(b), &cfg); err != nil {
			return Config{}, fmt.Errorf("config: %s: %w", path, err)
		}
	case ".yaml", ".yml":
		return Config{}, errors.New("yaml config not supported; use JSON or TOML")
	default:
		if err := json.Unmarshal(b, &cfg); err != nil {
			return Config{}, fmt.Errorf("config: %s: %w", path, err)
		}
	}
	return cfg, nil
}

// FsyncMode maps the textual fsync setting to the store mode.
func (c Config) FsyncMode() (pebblestore.FsyncMode, error) {
	return pebblestore.ParseFsyncMode(c.Fsync)
}

// FsyncInterval returns the group-commit window.
func (c Config) FsyncInterval() time.Duration {
	return time.Duration(c.FsyncIntervalMs) * time.Millisecond
}
