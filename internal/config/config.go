// Package config provides configuration management functionality.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds application configuration.
type Config struct {
	Port                 int
	LogLevel             string
	DataDir              string // directory holding the persisted profile document
	MarketAssumptionsURL string // optional registry overriding historical asset returns
}

// Load reads configuration from a .env file (when present) and the
// environment.
func Load() (*Config, error) {
	// A missing .env file is fine; the environment still applies.
	_ = godotenv.Load()

	cfg := &Config{
		Port:                 8080,
		LogLevel:             "info",
		MarketAssumptionsURL: os.Getenv("MARKET_ASSUMPTIONS_URL"),
	}

	if v := os.Getenv("PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid PORT %q: %w", v, err)
		}
		cfg.Port = port
	}

	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}

	if v := os.Getenv("DATA_DIR"); v != "" {
		cfg.DataDir = v
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolving home directory: %w", err)
		}
		cfg.DataDir = filepath.Join(home, ".retirement-engine")
	}

	return cfg, nil
}
