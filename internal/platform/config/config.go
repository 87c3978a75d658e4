// Copyright (c) 2026 SmoothStack. All rights reserved.
// Author: vincent.owuor@smoothstack.dev

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
  - DI-Friendly: Passed to core components (DB, Redis, Token Issuer) via constructors.
  - Zero Hidden State: No global variables are used to store config.

This ensures the application is Twelve-Factor compliant by storing config in the env.
*/
package config

import (
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"

	"github.com/owuorvin/task-management-backend/internal/platform/constants"
)

// # Configuration Schema

// Config holds all runtime configuration for the task management API server.
type Config struct {

	// Server settings
	ServerPort  string `env:"SERVER_PORT"  envDefault:"8080"`
	Environment string `env:"ENVIRONMENT"  envDefault:"development"`
	Debug       bool   `env:"DEBUG"        envDefault:"false"`

	// Relational Database (PostgreSQL)
	DatabaseURL string `env:"DATABASE_URL,required"`

	// MigrationPath is the filesystem path to the SQL migrations directory.
	MigrationPath string `env:"MIGRATION_PATH" envDefault:"./data/migrations"`

	// Key-Value Cache (Redis) for login throttling
	RedisURL string `env:"REDIS_URL,required"`

	// Token signing. JWTSecret has NO envDefault on purpose: the fallback
	// to a placeholder happens explicitly in main, and only outside of
	// production.
	JWTSecret          string `env:"JWT_SECRET"`
	JWTIssuer          string `env:"JWT_ISSUER"           envDefault:"TaskManagementAPI"`
	JWTAudience        string `env:"JWT_AUDIENCE"         envDefault:"TaskManagementClient"`
	TokenExpiryMinutes int    `env:"TOKEN_EXPIRY_MINUTES" envDefault:"60"`

	// Cross-Origin Resource Sharing: comma-separated list of extra origins
	// allowed in production (development allows everything).
	ExtraOrigins string `env:"EXTRA_ORIGINS"`
}

// # Configuration Loading

// Load parses environment variables into a [Config] struct.
func Load() (*Config, error) {

	// Initialize an empty config struct
	cfg := &Config{}

	// Use the 'env' package to map environment variables to struct fields.
	// This will fail if any field marked with 'required' is missing.
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}

	if cfg.TokenExpiryMinutes <= 0 {
		return nil, fmt.Errorf("config: TOKEN_EXPIRY_MINUTES must be a positive integer, got %d", cfg.TokenExpiryMinutes)
	}

	if cfg.IsProduction() && cfg.JWTSecret == "" {
		return nil, fmt.Errorf("config: JWT_SECRET is required in production")
	}

	if cfg.IsProduction() && cfg.JWTSecret == constants.DevFallbackJWTSecret {
		return nil, fmt.Errorf("config: JWT_SECRET must not be the development placeholder in production")
	}

	return cfg, nil
}

// IsDevelopment reports whether the server is running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction reports whether the server is running in production mode.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// CORSOrigins returns the configured extra origins as a cleaned slice.
func (c *Config) CORSOrigins() []string {
	if strings.TrimSpace(c.ExtraOrigins) == "" {
		return nil
	}

	parts := strings.Split(c.ExtraOrigins, ",")
	origins := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}
