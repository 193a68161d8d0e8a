// Package config holds watchlog's YAML configuration: where the
// export file lives, which timezone timestamps resolve into, and the
// output defaults.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultConfigPath is where watchlog looks for its config file.
const DefaultConfigPath = "~/.config/watchlog/config.yaml"

// Config holds all watchlog configuration.
type Config struct {
	History  HistoryConfig  `yaml:"history"`
	Timezone TimezoneConfig `yaml:"timezone"`
	Output   OutputConfig   `yaml:"output"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// HistoryConfig locates the watch-history export.
type HistoryConfig struct {
	File string `yaml:"file"`
}

// TimezoneConfig names the reference timezone. Timestamps carrying a
// zone token are converted into it; timestamps without one are
// assumed to already be in it.
type TimezoneConfig struct {
	Name string `yaml:"name"`
}

// OutputConfig carries presentation defaults.
type OutputConfig struct {
	Limit      int `yaml:"limit"`
	ChartWidth int `yaml:"chart_width"`
}

// LoggingConfig controls the stderr logger.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// Location resolves the configured timezone name. An empty or
// invalid name falls back to UTC.
func (c *Config) Location() *time.Location {
	if c.Timezone.Name == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(c.Timezone.Name)
	if err != nil {
		return time.UTC
	}
	return loc
}

// Load reads a YAML config file at path and merges it with defaults.
// Returns an error if the file cannot be read or contains invalid YAML.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	return cfg, nil
}

// expandPath replaces a leading ~ with the user's home directory.
func expandPath(path string) (string, error) {
	if len(path) > 0 && path[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolving home directory: %w", err)
		}
		return filepath.Join(home, path[1:]), nil
	}
	return path, nil
}

// LoadOrCreate loads the config from the default path. If the file
// does not exist, it creates the directory structure and writes
// defaults.
func LoadOrCreate() (*Config, error) {
	path, err := expandPath(DefaultConfigPath)
	if err != nil {
		return nil, err
	}
	return LoadOrCreateAt(path)
}

// LoadOrCreateAt loads the config from the given path. If the file
// does not exist, it creates the directory structure and writes
// defaults.
func LoadOrCreateAt(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		cfg := DefaultConfig()

		dir := filepath.Dir(path)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("creating config directory: %w", err)
		}

		data, err := yaml.Marshal(cfg)
		if err != nil {
			return nil, fmt.Errorf("marshaling default config: %w", err)
		}

		if err := os.WriteFile(path, data, 0644); err != nil {
			return nil, fmt.Errorf("writing default config: %w", err)
		}

		return cfg, nil
	}

	return Load(path)
}
