// Copyright (c) 2025-2026 David Mendez
// SPDX-License-Identifier: MIT

package content

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/davidmendez/portfolio/internal/kv"
	"github.com/davidmendez/portfolio/internal/model"
)

// OverrideService layers runtime content overrides over the static
// snapshot. Overrides live in the KV namespace; when the namespace is
// unconfigured reads fall back to static content and writes are
// acknowledged without persisting.
type OverrideService struct {
	ns       *kv.Namespace
	cache    *kv.MemoryStore
	cacheTTL time.Duration
	logger   *slog.Logger
}

// WriteResult reports what happened to an override write.
type WriteResult struct {
	// Persisted is false when the namespace is unconfigured: the write was
	// acknowledged but nothing was stored.
	Persisted bool
	UpdatedAt time.Time
	UpdatedBy string
}

// NewOverrideService creates an override service. cacheTTL bounds reads
// against the KV backend; zero disables caching.
func NewOverrideService(ns *kv.Namespace, cacheTTL time.Duration, logger *slog.Logger) *OverrideService {
	var cache *kv.MemoryStore
	if cacheTTL > 0 {
		cache = kv.NewMemoryStore(time.Minute)
	}
	return &OverrideService{
		ns:       ns,
		cache:    cache,
		cacheTTL: cacheTTL,
		logger:   logger,
	}
}

// Read returns the override for slug, or nil when none exists. A missing
// override and an unconfigured namespace both read as nil without error,
// so callers fall back to static content.
func (s *OverrideService) Read(ctx context.Context, family Family, slug string) (*model.Override, error) {
	key := family.Key(slug)

	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, key); err == nil {
			return &model.Override{Slug: slug, Content: string(cached)}, nil
		}
	}

	value, err := s.ns.Get(ctx, key)
	switch err {
	case nil:
	case kv.ErrNotFound, kv.ErrNotConfigured:
		return nil, nil
	default:
		return nil, fmt.Errorf("reading override %s: %w", key, err)
	}

	ov := &model.Override{Slug: slug, Content: value}
	if meta, err := s.ns.GetMetadata(ctx, key); err == nil && meta != nil {
		ov.UpdatedAt = meta.UpdatedAt
		ov.UpdatedBy = meta.UpdatedBy
	}

	if s.cache != nil {
		_ = s.cache.Set(ctx, key, []byte(value), s.cacheTTL)
	}
	return ov, nil
}

// Write stores an override. Last write wins; overrides never expire.
// Against an unconfigured namespace the call succeeds with
// Persisted=false and logs a warning, matching the read-side fallback.
func (s *OverrideService) Write(ctx context.Context, family Family, slug, content, updatedBy string) (*WriteResult, error) {
	key := family.Key(slug)
	now := time.Now().UTC()

	if !s.ns.Configured() {
		s.logger.Warn("override store unconfigured, write not persisted",
			"key", key, "updated_by", updatedBy)
		return &WriteResult{Persisted: false, UpdatedAt: now, UpdatedBy: updatedBy}, nil
	}

	meta := &kv.Metadata{UpdatedAt: now, UpdatedBy: updatedBy}
	if err := s.ns.Put(ctx, key, content, meta); err != nil {
		return nil, fmt.Errorf("writing override %s: %w", key, err)
	}

	if s.cache != nil {
		_ = s.cache.Delete(ctx, key)
	}

	s.logger.Info("override written", "key", key, "updated_by", updatedBy, "bytes", len(content))
	return &WriteResult{Persisted: true, UpdatedAt: now, UpdatedBy: updatedBy}, nil
}

// Has reports whether an override exists for slug. Unconfigured
// namespaces report false.
func (s *OverrideService) Has(ctx context.Context, family Family, slug string) (bool, error) {
	return s.ns.Has(ctx, family.Key(slug))
}

// Configured reports whether the backing namespace can persist writes.
func (s *OverrideService) Configured() bool {
	return s.ns.Configured()
}
