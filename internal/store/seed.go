// Copyright (c) 2025-2026 David Mendez
// SPDX-License-Identifier: MIT

package store

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"
)

// seedCaseStudies is the initial catalog. Seeding is idempotent: rows are
// only inserted when the table is empty, unless forced.
var seedCaseStudies = []CreateCaseStudyParams{
	{
		Slug:     "globalvision-modernization",
		Title:    "GlobalVision Platform Modernization",
		Subtitle: "Incremental migration of a legacy monolith to a service-oriented platform",
		Status:   "published",
		Timeline: "2022 - 2024",
		Impact:   "Cut release lead time from weeks to hours while keeping the legacy system in production",
		Problem:  "A decade-old monolith had become the bottleneck for every team: releases were coupled, test cycles took days, and the risk of each deploy kept growing.",
		Solution: "Carved seams into the monolith with a strangler-fig approach, extracting the highest-churn domains first and routing traffic through a compatibility facade.",
		Outcome:  "Thirty services in production, independent deploys per team, and the legacy core reduced to a thin read-only shell.",
		MdxPath:  "adr-001-legacy-migration",
	},
	{
		Slug:     "release-track-system",
		Title:    "Release Track System",
		Subtitle: "Predictable multi-channel releases for a platform with weekly, beta, and stable consumers",
		Status:   "published",
		Timeline: "2023",
		Impact:   "Escaped-defect rate dropped by two thirds across three release channels",
		Problem:  "Every consumer received the same build at the same time, so a regression for one early adopter meant a regression for everyone.",
		Solution: "Introduced staged release tracks with automated promotion criteria, channel-scoped feature flags, and rollback as a first-class operation.",
		Outcome:  "Teams ship to the fast track daily, promotions to stable are automatic once soak metrics clear, and rollbacks take minutes.",
		MdxPath:  "adr-002-release-tracks",
	},
	{
		Slug:     "observability-standardization",
		Title:    "Observability Standardization",
		Subtitle: "One telemetry contract across a polyglot service fleet",
		Status:   "published",
		Timeline: "2024",
		Impact:   "Mean time to diagnose cross-service incidents fell from hours to minutes",
		Problem:  "Each team had its own logging shape, metric names, and tracing setup, so every incident started with an archaeology phase.",
		Solution: "Defined a single telemetry contract with shared libraries per language, wired trace propagation through every transport, and gated onboarding on conformance checks.",
		Outcome:  "Uniform dashboards and alerts across the fleet, and incident timelines that read as one story instead of twelve.",
		MdxPath:  "adr-003-observability",
	},
}

// Seed creates initial data in the database. Existing rows are left
// untouched unless force is set, which replaces the whole catalog with
// the fixed list.
func Seed(ctx context.Context, db *sql.DB, force bool) error {
	queries := New(db)

	count, err := queries.CountCaseStudies(ctx)
	if err != nil {
		return fmt.Errorf("counting case studies: %w", err)
	}
	if count > 0 {
		if !force {
			slog.Info("case studies already present, skipping seed", "count", count)
			return nil
		}
		if err := queries.DeleteAllCaseStudies(ctx); err != nil {
			return fmt.Errorf("clearing case studies: %w", err)
		}
		slog.Info("reseeding case studies", "replaced", count)
	}

	now := time.Now()
	for _, params := range seedCaseStudies {
		params.CreatedAt = now
		params.UpdatedAt = now
		cs, err := queries.CreateCaseStudy(ctx, params)
		if err != nil {
			return fmt.Errorf("creating case study %q: %w", params.Slug, err)
		}
		slog.Info("seeded case study", "id", cs.ID, "slug", cs.Slug)
	}

	return nil
}
