// Copyright (c) 2025-2026 David Mendez
// SPDX-License-Identifier: MIT

package transfer

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/davidmendez/portfolio/internal/content"
	"github.com/davidmendez/portfolio/internal/kv"
	"github.com/davidmendez/portfolio/internal/model"
)

// SeedResult summarizes one KV seeding run.
type SeedResult struct {
	Seeded  []string
	Skipped []string
}

// SeedKV writes each case study's markdown body into the override
// namespace. Seeding is idempotent per key: existing keys are skipped so
// reseeding never clobbers admin edits. With reseed set, existing keys
// are overwritten instead.
func SeedKV(ctx context.Context, ns *kv.Namespace, studies []model.CaseStudy, reseed bool, logger *slog.Logger) (*SeedResult, error) {
	if !ns.Configured() {
		return nil, kv.ErrNotConfigured
	}

	result := &SeedResult{}
	for _, cs := range studies {
		key := content.FamilyCaseStudy.Key(cs.Slug)

		if !reseed {
			exists, err := ns.Has(ctx, key)
			if err != nil {
				return nil, fmt.Errorf("checking %s: %w", key, err)
			}
			if exists {
				result.Skipped = append(result.Skipped, cs.Slug)
				logger.Info("key exists, skipping", "key", key)
				continue
			}
		}

		if err := ns.Put(ctx, key, cs.Markdown, nil); err != nil {
			return nil, fmt.Errorf("seeding %s: %w", key, err)
		}
		result.Seeded = append(result.Seeded, cs.Slug)
		logger.Info("seeded key", "key", key, "bytes", len(cs.Markdown))
	}

	logger.Info("kv seed complete", "seeded", len(result.Seeded), "skipped", len(result.Skipped))
	return result, nil
}
