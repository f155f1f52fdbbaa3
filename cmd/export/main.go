// Copyright (c) 2025-2026 David Mendez
// SPDX-License-Identifier: MIT

// Command export runs the build pipeline: seed the case-study database,
// write the static JSON snapshot, and optionally seed the KV namespace
// with initial override values.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"github.com/davidmendez/portfolio/internal/kv"
	"github.com/davidmendez/portfolio/internal/store"
	"github.com/davidmendez/portfolio/internal/transfer"
)

func main() {
	dbPath := flag.String("db", "./data/portfolio.db", "SQLite database path")
	contentDir := flag.String("content", "./content", "Directory holding per-study markdown files")
	outPath := flag.String("out", "./data/case-studies.json", "Snapshot output path")
	seedKV := flag.Bool("seed-kv", false, "Seed the KV namespace with case-study markdown (requires PORTFOLIO_KV_URL)")
	reseed := flag.Bool("reseed", false, "Replace existing seed rows and overwrite existing KV keys instead of skipping them")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if err := run(*dbPath, *contentDir, *outPath, *seedKV, *reseed, logger); err != nil {
		logger.Error("export failed", "error", err)
		os.Exit(1)
	}
}

func run(dbPath, contentDir, outPath string, seedKV, reseed bool, logger *slog.Logger) error {
	_ = godotenv.Load()

	db, err := store.NewDB(dbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer func() { _ = db.Close() }()

	if err := store.Migrate(db); err != nil {
		return fmt.Errorf("migrating database: %w", err)
	}

	ctx := context.Background()
	if err := store.Seed(ctx, db, reseed); err != nil {
		return fmt.Errorf("seeding database: %w", err)
	}

	exporter := transfer.NewExporter(store.New(db), contentDir, logger)
	if err := exporter.WriteSnapshot(ctx, outPath); err != nil {
		return err
	}

	if !seedKV {
		return nil
	}

	kvURL := os.Getenv("PORTFOLIO_KV_URL")
	if kvURL == "" {
		return fmt.Errorf("seed-kv requires PORTFOLIO_KV_URL")
	}
	prefix := os.Getenv("PORTFOLIO_KV_PREFIX")
	if prefix == "" {
		prefix = "portfolio:"
	}

	redisStore, err := kv.NewRedisStoreFromURL(kvURL, prefix)
	if err != nil {
		return fmt.Errorf("connecting to KV store: %w", err)
	}
	ns := kv.NewNamespace(redisStore)
	defer func() { _ = ns.Close() }()

	studies, err := exporter.Export(ctx)
	if err != nil {
		return err
	}

	result, err := transfer.SeedKV(ctx, ns, studies, reseed, logger)
	if err != nil {
		return fmt.Errorf("seeding KV: %w", err)
	}
	logger.Info("kv seeding done", "seeded", len(result.Seeded), "skipped", len(result.Skipped))
	return nil
}
