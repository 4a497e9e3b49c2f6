// Package config holds bootstrap settings read once at process start: the
// data directory the SQLite file lives in, and the defaults applied when a
// CLI invocation doesn't override them. Settings the engine needs to see
// change without a restart live in the store-backed registry instead
// (internal/storage's meta table); Seed carries this file's values into
// that registry the first time a data directory is initialized, so an
// operator can set the initial backoff/trace-ceiling once here instead of
// issuing a "config set" for every fresh deployment.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"

	"github.com/pranavk/queuectl/internal/storage"
)

type Config struct {
	DataDir       string  `json:"data_dir"`
	MaxRetries    int     `json:"max_retries"`
	BackoffBase   float64 `json:"backoff_base"`
	MaxTraceBytes int     `json:"max_trace_bytes"`
}

const configFileName = "config.json"

// NewConfig returns a Config populated with default values.
func NewConfig() *Config {
	return &Config{
		DataDir:       "./db",
		MaxRetries:    3,
		BackoffBase:   2.0,
		MaxTraceBytes: 65536,
	}
}

// Seed copies this bootstrap config's backoff_base and max_trace_bytes into
// the store's runtime registry, but only for keys that aren't already set
// there. It's meant to be called once at startup, right after the store is
// opened: on a brand-new data directory it turns the bootstrap file's
// values into the registry's initial values; on an existing one it's a
// no-op, since the registry (possibly edited live via "config set") already
// wins.
func Seed(store *storage.Store, cfg *Config) error {
	seeds := map[string]string{
		storage.KeyBackoffBase:   strconv.FormatFloat(cfg.BackoffBase, 'f', -1, 64),
		storage.KeyMaxTraceBytes: strconv.Itoa(cfg.MaxTraceBytes),
	}
	for key, value := range seeds {
		_, ok, err := store.ConfigGet(key)
		if err != nil {
			return err
		}
		if ok {
			continue
		}
		if err := store.ConfigSet(key, value); err != nil {
			return err
		}
	}
	return nil
}

func configPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	appConfigDir := filepath.Join(configDir, "queuectl")
	if err := os.MkdirAll(appConfigDir, 0755); err != nil {
		return "", err
	}
	return filepath.Join(appConfigDir, configFileName), nil
}

// LoadConfig reads the on-disk config, saving and returning the defaults on
// first run.
func LoadConfig() (*Config, error) {
	path, err := configPath()
	if err != nil {
		return nil, err
	}

	cfg := NewConfig()

	file, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, SaveConfig(cfg)
		}
		return nil, err
	}
	if err := json.Unmarshal(file, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func SaveConfig(cfg *Config) error {
	path, err := configPath()
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}
