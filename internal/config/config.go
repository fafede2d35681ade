// Package config loads service configuration from the environment.
package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

// Config holds the configuration for the Mandi Counter service.
// Environment variables are parsed from the MANDI_ prefix, e.g. MANDI_HTTP_PORT.
type Config struct {
	// DBDriver selects the storage adapter: "postgres" or "sqlite".
	// "auto" picks postgres when a DSN is set, sqlite otherwise.
	DBDriver string `envconfig:"DB_DRIVER" default:"auto"`

	// Postgres configuration.
	PostgresDSN string `envconfig:"POSTGRES_DSN" default:""`

	// SQLite configuration.
	SQLitePath string `envconfig:"SQLITE_PATH" default:"./data/mandi.db"`

	// HTTP configuration.
	HTTPPort int `envconfig:"HTTP_PORT" default:"8080"`

	// Change-feed buffer per subscriber; events are dropped for a subscriber
	// whose buffer is full.
	FeedBuffer int `envconfig:"FEED_BUFFER" default:"256"`

	// Health probe settings.
	HealthIntervalSeconds     int `envconfig:"HEALTH_INTERVAL_SECONDS" default:"30"`
	HealthProbeTimeoutSeconds int `envconfig:"HEALTH_PROBE_TIMEOUT_SECONDS" default:"2"`
}

// ResolveDefaults derives DBDriver when set to "auto" and validates the choice.
func (c *Config) ResolveDefaults() error {
	if c.DBDriver == "" || c.DBDriver == "auto" {
		if c.PostgresDSN != "" {
			c.DBDriver = "postgres"
		} else {
			c.DBDriver = "sqlite"
		}
	}
	switch c.DBDriver {
	case "postgres":
		if c.PostgresDSN == "" {
			return fmt.Errorf("DB_DRIVER=postgres requires MANDI_POSTGRES_DSN")
		}
	case "sqlite":
		if c.SQLitePath == "" {
			return fmt.Errorf("DB_DRIVER=sqlite requires MANDI_SQLITE_PATH")
		}
	default:
		return fmt.Errorf("unsupported DB_DRIVER: %s", c.DBDriver)
	}
	return nil
}

// New creates a Config by parsing MANDI_-prefixed environment variables.
func New() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("MANDI", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment variables: %w", err)
	}
	if err := cfg.ResolveDefaults(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// GetHTTPAddr returns the HTTP server address.
func (c *Config) GetHTTPAddr() string {
	return fmt.Sprintf(":%d", c.HTTPPort)
}
