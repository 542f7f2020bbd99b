// Package config loads taskrange settings from defaults, an optional YAML
// file and TASKRANGE_* environment variables, in that order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all runtime settings.
type Config struct {
	// DBPath is the SQLite database file. ":memory:" keeps everything in
	// process memory.
	DBPath string `yaml:"db"`
	// Timezone resolves floating date-times in imported files.
	Timezone string `yaml:"timezone"`
	// LogUseCases enables slog output for every service use case.
	LogUseCases bool `yaml:"log_use_cases"`
	// Addr is the listen address of the HTTP API.
	Addr string `yaml:"addr"`
	// ShutdownTimeout bounds graceful HTTP shutdown.
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// DefaultDir returns ~/.taskrange.
func DefaultDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("finding home directory: %w", err)
	}
	return filepath.Join(home, ".taskrange"), nil
}

// DefaultConfig returns the built-in settings. The database lives in
// ~/.taskrange when the home directory is known.
func DefaultConfig() *Config {
	dbPath := "taskrange.db"
	if dir, err := DefaultDir(); err == nil {
		dbPath = filepath.Join(dir, "taskrange.db")
	}
	return &Config{
		DBPath:          dbPath,
		Timezone:        "UTC",
		LogUseCases:     false,
		Addr:            "127.0.0.1:8080",
		ShutdownTimeout: 5 * time.Second,
	}
}

// LoadFromFile overlays the YAML file at path on the defaults.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file %s: %w", path, err)
	}
	return cfg, nil
}

// Load resolves the effective configuration. path may be empty, in which
// case TASKRANGE_CONFIG and then ~/.taskrange/config.yaml are tried; a
// missing default file is not an error.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		path = os.Getenv("TASKRANGE_CONFIG")
		explicit = path != ""
	}
	if !explicit {
		if dir, err := DefaultDir(); err == nil {
			path = filepath.Join(dir, "config.yaml")
		}
	}

	cfg := DefaultConfig()
	if path != "" {
		loaded, err := LoadFromFile(path)
		switch {
		case err == nil:
			cfg = loaded
		case !explicit && errors.Is(err, os.ErrNotExist):
		default:
			return nil, err
		}
	}

	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyEnv overrides fields from TASKRANGE_* environment variables.
func (c *Config) ApplyEnv() error {
	if v := os.Getenv("TASKRANGE_DB"); v != "" {
		c.DBPath = v
	}
	if v := os.Getenv("TASKRANGE_TIMEZONE"); v != "" {
		c.Timezone = v
	}
	if v := os.Getenv("TASKRANGE_LOG_USE_CASES"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("TASKRANGE_LOG_USE_CASES: %w", err)
		}
		c.LogUseCases = b
	}
	if v := os.Getenv("TASKRANGE_ADDR"); v != "" {
		c.Addr = v
	}
	return nil
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if c.DBPath == "" {
		return fmt.Errorf("db is required")
	}
	if c.Addr == "" {
		return fmt.Errorf("addr is required")
	}
	if c.ShutdownTimeout < 0 {
		return fmt.Errorf("shutdown_timeout must not be negative")
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	return nil
}

// Location returns the time zone for floating date-times.
func (c *Config) Location() (*time.Location, error) {
	if c.Timezone == "" {
		return time.UTC, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}
