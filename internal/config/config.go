// Package config holds the default input paths and their overrides.
package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds the application configuration. Flags override config values,
// config values override the built-in ~/.codex defaults.
type Config struct {
	// HistoryPath is the flat append-only log of timestamped entries.
	HistoryPath string `yaml:"history_path"`

	// SessionsDir is the directory tree of per-session metadata files.
	SessionsDir string `yaml:"sessions_dir"`

	// LogLevel is the default diagnostic verbosity (debug, info, warn, error).
	LogLevel string `yaml:"log_level"`
}

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() *Config {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return &Config{
		HistoryPath: filepath.Join(home, ".codex", "history.jsonl"),
		SessionsDir: filepath.Join(home, ".codex", "sessions"),
		LogLevel:    "info",
	}
}

// Load reads the config from a YAML file, falling back to defaults for
// fields the file does not set. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFromDefaultPath attempts to load config from standard locations.
func LoadFromDefaultPath() (*Config, error) {
	paths := []string{
		filepath.Join(os.Getenv("HOME"), ".config", "codex-log", "config.yaml"),
	}
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		paths = append(paths, filepath.Join(xdg, "codex-log", "config.yaml"))
	}

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			return Load(path)
		}
	}
	return DefaultConfig(), nil
}
