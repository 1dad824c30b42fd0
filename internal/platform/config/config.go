// Copyright (c) 2026 Pressgate. All rights reserved.
// Author: dev@pressgate.app

/*
Package config handles application-wide settings and environment parsing.

It leverages 'caarlos0/env' to map OS environment variables into a strongly-typed
Go struct, providing early validation and default values.

Usage:

	cfg, err := config.Load()
	if err != nil {
	    log.Fatal(err)
	}

Architecture:

  - Immutability: Once loaded, configuration is read-only.
  - DI-Friendly: Passed to core components (transports, cache) via constructors.
  - Zero Hidden State: No global variables are used to store config.

This ensures the application is Twelve-Factor compliant by storing config in the env.
*/
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// # Configuration Schema

// Config holds all runtime configuration for the Pressgate gateway.
type Config struct {

	// Server settings
	ServerPort  string `env:"SERVER_PORT"  envDefault:"8080"`
	Environment string `env:"ENVIRONMENT"  envDefault:"development"`
	Debug       bool   `env:"DEBUG"        envDefault:"false"`

	// BackendBaseURL is the root URL of the content backend
	// (e.g. "https://cms.example.com"). When empty, every read path
	// degrades to empty results instead of failing — the gateway stays up
	// with no content rather than crashing.
	BackendBaseURL string `env:"BACKEND_BASE_URL"`

	// WebhookSecret authenticates invalidation webhook calls. When empty,
	// the webhook endpoint permanently responds 500.
	WebhookSecret string `env:"REVALIDATE_WEBHOOK_SECRET"`

	// RedisURL selects the shared cache backend. When empty, the gateway
	// uses its in-process tag cache.
	RedisURL string `env:"REDIS_URL"`

	// CacheTTL is the freshness window for cached backend responses.
	CacheTTL time.Duration `env:"CACHE_TTL" envDefault:"1h"`

	// CountQueryCap bounds the ids-only count query. The backend exposes no
	// total-count field, so totals above this cap are never observed: it is
	// the scalability ceiling for any single filtered collection.
	CountQueryCap int `env:"COUNT_QUERY_CAP" envDefault:"10000"`

	// WebhookRateLimit is the number of invalidation requests allowed per
	// sliding minute, per process.
	WebhookRateLimit int `env:"WEBHOOK_RATE_LIMIT" envDefault:"30"`

	// Cross-Origin Resource Sharing
	ExtraOrigins string `env:"EXTRA_ORIGINS"`
}

// # Configuration Loading

// Load parses environment variables into a [Config] struct.
func Load() (*Config, error) {

	// Initialize an empty config struct
	cfg := &Config{}

	// Use the 'env' package to map environment variables to struct fields.
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}

	// Normalize the backend URL so path joining stays predictable.
	cfg.BackendBaseURL = strings.TrimRight(strings.TrimSpace(cfg.BackendBaseURL), "/")

	return cfg, nil
}

// BackendConfigured reports whether a content backend is reachable in
// principle. A false value switches the whole read side to degraded mode.
func (c *Config) BackendConfigured() bool {
	return c.BackendBaseURL != ""
}

// AllowedOrigins returns the comma-separated ExtraOrigins as a trimmed list.
func (c *Config) AllowedOrigins() []string {
	var origins []string
	for _, origin := range strings.Split(c.ExtraOrigins, ",") {
		if trimmed := strings.TrimSpace(origin); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}

// IsDevelopment reports whether the server is running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction reports whether the server is running in production mode.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
