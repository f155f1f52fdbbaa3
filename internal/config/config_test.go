// Copyright (c) 2025-2026 David Mendez
// SPDX-License-Identifier: MIT

package config

import (
	"testing"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("PORTFOLIO_ADMIN_EMAIL", "me@davidmendez.dev")
}

func TestLoad_Defaults(t *testing.T) {
	setRequired(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.DBPath != "./data/portfolio.db" {
		t.Errorf("DBPath = %q", cfg.DBPath)
	}
	if cfg.ServerAddr() != "localhost:8080" {
		t.Errorf("ServerAddr = %q", cfg.ServerAddr())
	}
	if !cfg.IsDevelopment() {
		t.Error("default env should be development")
	}
	if cfg.UseRedisKV() {
		t.Error("KV should default to unconfigured")
	}
	if cfg.OAuthEnabled() {
		t.Error("OAuth should default to disabled")
	}
	if cfg.OverrideCacheTTL != 60 {
		t.Errorf("OverrideCacheTTL = %d; want 60", cfg.OverrideCacheTTL)
	}
	if cfg.KVPrefix != "portfolio:" {
		t.Errorf("KVPrefix = %q", cfg.KVPrefix)
	}
	if cfg.UnderConstructionForced() {
		t.Error("under-construction gate should default to off")
	}
}

func TestLoad_RequiresAdminEmail(t *testing.T) {
	t.Setenv("PORTFOLIO_ADMIN_EMAIL", "")

	if _, err := Load(); err == nil {
		t.Fatal("Load should fail without an admin email")
	}

	t.Setenv("PORTFOLIO_ADMIN_EMAIL", "not-an-email")
	if _, err := Load(); err == nil {
		t.Fatal("Load should reject a non-email admin value")
	}
}

func TestLoad_NormalizesAdminEmail(t *testing.T) {
	t.Setenv("PORTFOLIO_ADMIN_EMAIL", "  Me@DavidMendez.dev ")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.AdminEmail != "me@davidmendez.dev" {
		t.Errorf("AdminEmail = %q; want lowercased and trimmed", cfg.AdminEmail)
	}
}

func TestLoad_UnderConstructionVocabulary(t *testing.T) {
	setRequired(t)

	for value, want := range map[string]bool{
		"true":    true,
		"1":       true,
		"enabled": true,
		"TRUE":    false,
		"yes":     false,
		"":        false,
	} {
		t.Setenv("PORTFOLIO_UNDER_CONSTRUCTION", value)
		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load: %v", err)
		}
		if got := cfg.UnderConstructionForced(); got != want {
			t.Errorf("UnderConstructionForced with %q = %v; want %v", value, got, want)
		}
	}
}

func TestLoad_RejectsNegativeCacheTTL(t *testing.T) {
	setRequired(t)
	t.Setenv("PORTFOLIO_OVERRIDE_CACHE_TTL", "-5")

	if _, err := Load(); err == nil {
		t.Fatal("Load should reject a negative cache TTL")
	}
}
