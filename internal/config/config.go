// Copyright (c) 2025-2026 David Mendez
// SPDX-License-Identifier: MIT

package config

import (
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"

	"github.com/davidmendez/portfolio/internal/flags"
)

// Config holds the application configuration loaded from environment variables.
type Config struct {
	DBPath     string `env:"PORTFOLIO_DB_PATH" envDefault:"./data/portfolio.db"`
	ServerHost string `env:"PORTFOLIO_SERVER_HOST" envDefault:"localhost"`
	ServerPort int    `env:"PORTFOLIO_SERVER_PORT" envDefault:"8080"`
	Env        string `env:"PORTFOLIO_ENV" envDefault:"development"`
	LogLevel   string `env:"PORTFOLIO_LOG_LEVEL" envDefault:"info"`

	// Admin identity: the single email allowed to edit content.
	AdminEmail string `env:"PORTFOLIO_ADMIN_EMAIL,required"`

	// Google OAuth (sign-in is disabled when unset; the API write path
	// still verifies bearer tokens against the userinfo endpoint).
	GoogleClientID     string `env:"PORTFOLIO_GOOGLE_CLIENT_ID"`
	GoogleClientSecret string `env:"PORTFOLIO_GOOGLE_CLIENT_SECRET"`
	OAuthRedirectURL   string `env:"PORTFOLIO_OAUTH_REDIRECT_URL" envDefault:"http://localhost:8080/auth/callback"`

	// Key-value namespace for overrides and the feature flag.
	// An empty URL means unconfigured: reads fall back to static content
	// and writes are acknowledged without persisting.
	KVURL    string `env:"PORTFOLIO_KV_URL"`
	KVPrefix string `env:"PORTFOLIO_KV_PREFIX" envDefault:"portfolio:"`
	// KVMemory switches to an in-process store for development.
	KVMemory bool `env:"PORTFOLIO_KV_MEMORY" envDefault:"false"`

	// OverrideCacheTTL bounds read amplification against the KV backend,
	// in seconds.
	OverrideCacheTTL int `env:"PORTFOLIO_OVERRIDE_CACHE_TTL" envDefault:"60"`

	// Build artifacts
	SnapshotPath string `env:"PORTFOLIO_SNAPSHOT_PATH" envDefault:"./data/case-studies.json"`
	ContentDir   string `env:"PORTFOLIO_CONTENT_DIR" envDefault:"./content"`

	// UnderConstruction is the build-time gate. When truthy it forces the
	// placeholder regardless of the runtime KV flag.
	UnderConstruction string `env:"PORTFOLIO_UNDER_CONSTRUCTION"`

	// Seeding configuration
	DoSeed bool `env:"PORTFOLIO_DO_SEED" envDefault:"false"`
}

// IsDevelopment returns true if the application is running in development mode.
func (c Config) IsDevelopment() bool {
	return c.Env == "development"
}

// ServerAddr returns the full server address in host:port format.
func (c Config) ServerAddr() string {
	return fmt.Sprintf("%s:%d", c.ServerHost, c.ServerPort)
}

// UseRedisKV returns true if a Redis-backed KV namespace is configured.
func (c Config) UseRedisKV() bool {
	return c.KVURL != ""
}

// OAuthEnabled returns true if the browser sign-in flow is configured.
func (c Config) OAuthEnabled() bool {
	return c.GoogleClientID != "" && c.GoogleClientSecret != ""
}

// UnderConstructionForced reports whether the build-time gate is set.
// It parses through the same truthy vocabulary as the runtime flag.
func (c Config) UnderConstructionForced() bool {
	return flags.IsTruthy(c.UnderConstruction)
}

// Load parses environment variables and returns a Config struct.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	cfg.AdminEmail = strings.ToLower(strings.TrimSpace(cfg.AdminEmail))
	if !strings.Contains(cfg.AdminEmail, "@") {
		return nil, fmt.Errorf("PORTFOLIO_ADMIN_EMAIL %q is not an email address", cfg.AdminEmail)
	}

	if cfg.OverrideCacheTTL < 0 {
		return nil, fmt.Errorf("PORTFOLIO_OVERRIDE_CACHE_TTL must not be negative, got %d", cfg.OverrideCacheTTL)
	}

	return cfg, nil
}
