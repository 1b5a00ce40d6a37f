package config

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	// Conversion
	BaseDepth int  `env:"CHECKLIST_BASE_DEPTH" envDefault:"0"` // 0 detects per document
	DedupeIDs bool `env:"CHECKLIST_DEDUPE_IDS" envDefault:"false"`

	// HTTP service
	Port           string `env:"PORT" envDefault:"8090"`
	MaxUploadBytes int64  `env:"MAX_UPLOAD_BYTES" envDefault:"5242880"` // 5MB
	APIKey         string `env:"CHECKLIST_API_KEY"`                     // empty disables auth

	// Logging
	LogLevel  string `env:"LOG_LEVEL" envDefault:"warn"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"text"`
}

// Load reads the configuration from the environment.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = 5242880
	}
	if cfg.Port == "" {
		cfg.Port = "8090"
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.BaseDepth != 0 && (c.BaseDepth < 2 || c.BaseDepth > 4) {
		return fmt.Errorf("CHECKLIST_BASE_DEPTH must be 0, 2, 3 or 4, got %d", c.BaseDepth)
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	switch strings.ToLower(c.LogFormat) {
	case "text", "json":
	default:
		return fmt.Errorf("LOG_FORMAT must be text or json, got %q", c.LogFormat)
	}
	return nil
}

// Level parses LogLevel.
func (c Config) Level() (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("LOG_LEVEL: %w", err)
	}
	return l, nil
}
