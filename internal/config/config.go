package config

import (
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/rs/zerolog"
)

type Config struct {
	Port           string        `env:"PORT" envDefault:"8080"`
	TaxServiceURL  string        `env:"TAX_SERVICE_URL" envDefault:"https://localhost:44342"`
	RequestTimeout time.Duration `env:"TAX_SERVICE_TIMEOUT" envDefault:"10s"`
	LogLevel       string        `env:"LOG_LEVEL" envDefault:"info"`
}

// Load reads Config from the environment.
func Load() (Config, error) {
	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	if cfg.RequestTimeout <= 0 {
		return Config{}, fmt.Errorf("TAX_SERVICE_TIMEOUT must be positive, got %s", cfg.RequestTimeout)
	}
	if _, err := zerolog.ParseLevel(cfg.LogLevel); err != nil {
		return Config{}, fmt.Errorf("LOG_LEVEL: %w", err)
	}
	return cfg, nil
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Exitf writes a formatted error message to stderr and exits with code 1.
func Exitf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
