// Copyright (c) 2025-2026 David Mendez
// SPDX-License-Identifier: MIT

// Package flags implements the runtime feature flag read from the
// key-value namespace, plus the single truthy-token vocabulary shared by
// the build-time environment gate and the runtime flag.
package flags

import (
	"context"
	"log/slog"
	"time"

	"github.com/davidmendez/portfolio/internal/kv"
)

// KeyUnderConstruction is the fixed key of the under-construction flag.
const KeyUnderConstruction = "UNDER_CONSTRUCTION"

// truthyTokens is the one set of recognized truthy values. strconv.ParseBool
// is deliberately not used: "enabled" must be truthy and "t"/"TRUE" must not,
// matching the stored-value contract.
var truthyTokens = map[string]bool{
	"true":    true,
	"1":       true,
	"enabled": true,
}

// IsTruthy reports whether s is one of the recognized truthy tokens.
// Anything else, including the empty string, is false.
func IsTruthy(s string) bool {
	return truthyTokens[s]
}

// Service reads the under-construction flag. The flag fails open to
// "site is live": a missing key, an unconfigured namespace, and any
// backend error all read as disabled.
type Service struct {
	ns          *kv.Namespace
	cache       *kv.MemoryStore
	cacheTTL    time.Duration
	envOverride bool
	logger      *slog.Logger
}

// NewService creates a flag service. envOverride is the build-time gate:
// when true the flag reads as enabled regardless of the stored value.
// cacheTTL bounds KV reads; zero disables caching.
func NewService(ns *kv.Namespace, envOverride bool, cacheTTL time.Duration, logger *slog.Logger) *Service {
	var cache *kv.MemoryStore
	if cacheTTL > 0 {
		cache = NewFlagCache()
	}
	return &Service{
		ns:          ns,
		cache:       cache,
		cacheTTL:    cacheTTL,
		envOverride: envOverride,
		logger:      logger,
	}
}

// NewFlagCache returns the memory store used for flag caching.
// Split out so the scheduler warm job and tests share the construction.
func NewFlagCache() *kv.MemoryStore {
	return kv.NewMemoryStore(0)
}

// Enabled returns the effective flag value. The environment override wins;
// otherwise the stored value decides, read through the short-TTL cache.
func (s *Service) Enabled(ctx context.Context) bool {
	if s.envOverride {
		return true
	}
	return s.stored(ctx)
}

// stored resolves the KV-backed value, failing open to false.
func (s *Service) stored(ctx context.Context) bool {
	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, KeyUnderConstruction); err == nil {
			return IsTruthy(string(cached))
		}
	}

	value, err := s.ns.Get(ctx, KeyUnderConstruction)
	switch err {
	case nil:
	case kv.ErrNotFound, kv.ErrNotConfigured:
		value = ""
	default:
		s.logger.Warn("reading under-construction flag failed, defaulting to disabled", "error", err)
		return false
	}

	if s.cache != nil {
		_ = s.cache.Set(ctx, KeyUnderConstruction, []byte(value), s.cacheTTL)
	}
	return IsTruthy(value)
}

// Warm refreshes the cached flag value ahead of expiry. Used by the
// scheduler so gate checks read a hot value.
func (s *Service) Warm(ctx context.Context) {
	if s.cache == nil || s.envOverride {
		return
	}
	_ = s.cache.Delete(ctx, KeyUnderConstruction)
	s.stored(ctx)
}
