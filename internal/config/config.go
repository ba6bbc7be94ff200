package config

import (
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"go-simpler.org/env"
)

type Config struct {
	Endpoint          string        `env:"LENS_ENDPOINT" default:"http://localhost:8000/generate-images/"`
	Timeout           time.Duration `env:"LENS_TIMEOUT" default:"2m"`
	DecodeConcurrency int           `env:"DECODE_CONCURRENCY" default:"4"`
	LogLevel          string        `env:"LOG_LEVEL" default:"info"`
	LogFormat         string        `env:"LOG_FORMAT" default:"text"`
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Debug("No .env file found, using environment variables")
	}

	var cfg Config
	if err := env.Load(&cfg, nil); err != nil {
		return nil, errors.Wrap(err, "failed to load environment variables")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks the values, including those overridden after Load.
func (cfg *Config) Validate() error {
	u, err := url.Parse(cfg.Endpoint)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("LENS_ENDPOINT must be an absolute URL, got %q", cfg.Endpoint)
	}

	if cfg.Timeout <= 0 {
		return fmt.Errorf("LENS_TIMEOUT must be positive, got %s", cfg.Timeout)
	}

	if cfg.DecodeConcurrency < 1 || cfg.DecodeConcurrency > 64 {
		return fmt.Errorf("DECODE_CONCURRENCY must be between 1 and 64, got %d", cfg.DecodeConcurrency)
	}

	switch cfg.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("LOG_FORMAT must be text or json, got %q", cfg.LogFormat)
	}

	return nil
}
