// Package config loads and saves the application configuration from a YAML
// file, creating a default one on first run.
package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config is the top-level application configuration.
type Config struct {
	// StoragePath is the SQLite database file holding all durable state.
	StoragePath string `yaml:"storage_path"`

	// WorkStartHour and WorkEndHour bound the availability search to the
	// working day, in local hours.
	WorkStartHour int `yaml:"work_start_hour"`
	WorkEndHour   int `yaml:"work_end_hour"`

	// MaxDaysToSearch caps how many days the availability search walks
	// before giving up with the fallback slot.
	MaxDaysToSearch int `yaml:"max_days_to_search"`

	// DefaultDurationMinutes is the slot length used when a command does
	// not say otherwise.
	DefaultDurationMinutes int `yaml:"default_duration_minutes"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level"`
}

// DefaultConfig returns an in-memory default configuration. The database
// lives next to the config file in the user's config directory.
func DefaultConfig() *Config {
	return &Config{
		StoragePath:            defaultStoragePath(),
		WorkStartHour:          9,
		WorkEndHour:            17,
		MaxDaysToSearch:        7,
		DefaultDurationMinutes: 60,
		LogLevel:               "info",
	}
}

// Normalize fills in missing/zero values with defaults so partially-filled
// configs from older versions still behave.
func (c *Config) Normalize() {
	d := DefaultConfig()
	if c.StoragePath == "" {
		c.StoragePath = d.StoragePath
	}
	if c.WorkStartHour <= 0 || c.WorkStartHour > 23 {
		c.WorkStartHour = d.WorkStartHour
	}
	if c.WorkEndHour <= c.WorkStartHour || c.WorkEndHour > 24 {
		c.WorkEndHour = d.WorkEndHour
	}
	if c.MaxDaysToSearch <= 0 {
		c.MaxDaysToSearch = d.MaxDaysToSearch
	}
	if c.DefaultDurationMinutes <= 0 {
		c.DefaultDurationMinutes = d.DefaultDurationMinutes
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		c.LogLevel = d.LogLevel
	}
}

// Load reads configuration from the given YAML path. A missing file is
// first-run: the default config is written there and returned.
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, errors.New("config path is empty")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			cfg := DefaultConfig()
			if err := Save(path, cfg); err != nil {
				return cfg, err
			}
			return cfg, nil
		}
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	cfg.Normalize()

	return &cfg, nil
}

// Save writes the configuration atomically (temp file + rename) with 0600
// permissions, creating the parent directory if needed.
func Save(path string, cfg *Config) error {
	if path == "" {
		return errors.New("config path is empty")
	}
	if cfg == nil {
		return errors.New("config is nil")
	}

	cfg.Normalize()

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".agenda-config-*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmpName, 0o600); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}

// DefaultPath returns the config file location: $AGENDA_CONFIG if set,
// otherwise agenda/config.yaml under the OS config directory.
func DefaultPath() string {
	if p := os.Getenv("AGENDA_CONFIG"); p != "" {
		return p
	}
	base, err := os.UserConfigDir()
	if err != nil {
		base = "."
	}
	return filepath.Join(base, "agenda", "config.yaml")
}

func defaultStoragePath() string {
	base, err := os.UserConfigDir()
	if err != nil {
		base = "."
	}
	return filepath.Join(base, "agenda", "agenda.db")
}
