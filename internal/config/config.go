// Package config loads process configuration from the environment and defines
// the versioned settings value objects stored in the settings table.
package config

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v11"
)

// Config is the process configuration read from GOVBOARD_* variables.
type Config struct {
	DBPath             string `env:"GOVBOARD_DB_PATH"`
	LogLevel           string `env:"GOVBOARD_LOG_LEVEL" envDefault:"info"`
	LogFormat          string `env:"GOVBOARD_LOG_FORMAT" envDefault:"text"`
	Actor              string `env:"GOVBOARD_ACTOR"`
	HeatmapConcurrency int    `env:"GOVBOARD_HEATMAP_CONCURRENCY" envDefault:"8"`
}

// Load reads the configuration from the environment and fills in defaults
// that depend on the host.
func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if cfg.DBPath == "" {
		path, err := DefaultDBPath()
		if err != nil {
			return nil, err
		}
		cfg.DBPath = path
	}
	if cfg.HeatmapConcurrency < 1 {
		return nil, fmt.Errorf("GOVBOARD_HEATMAP_CONCURRENCY must be at least 1, got %d", cfg.HeatmapConcurrency)
	}
	return &cfg, nil
}

// DefaultDBPath returns ~/.govboard/govboard.db.
func DefaultDBPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".govboard", "govboard.db"), nil
}

// SlogLevel maps the configured level name onto a slog level. Unknown names
// fall back to info.
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// NewLogger builds the structured logger described by the configuration.
func (c *Config) NewLogger(w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: c.SlogLevel()}
	if strings.EqualFold(c.LogFormat, "json") {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}
