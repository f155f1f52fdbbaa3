// Copyright (c) 2025-2026 David Mendez
// SPDX-License-Identifier: MIT

// Package transfer implements the build pipeline: exporting the seeded
// case-study catalog to the JSON snapshot the server loads at startup,
// and seeding the KV namespace with initial override values.
package transfer

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/davidmendez/portfolio/internal/model"
	"github.com/davidmendez/portfolio/internal/store"
)

// Exporter turns database rows plus per-study markdown files into the
// static snapshot artifact.
type Exporter struct {
	store      *store.Queries
	logger     *slog.Logger
	contentDir string
}

// NewExporter creates an Exporter reading markdown bodies from contentDir.
func NewExporter(queries *store.Queries, contentDir string, logger *slog.Logger) *Exporter {
	return &Exporter{
		store:      queries,
		logger:     logger,
		contentDir: contentDir,
	}
}

// Export assembles the full case-study catalog. Each row's MdxPath names
// a markdown file in the content directory; a missing file logs a warning
// and leaves the body empty rather than failing the build.
func (e *Exporter) Export(ctx context.Context) ([]model.CaseStudy, error) {
	rows, err := e.store.ListCaseStudies(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing case studies: %w", err)
	}

	studies := make([]model.CaseStudy, 0, len(rows))
	for _, row := range rows {
		cs := model.CaseStudy{
			Slug:         row.Slug,
			Title:        row.Title,
			Subtitle:     row.Subtitle,
			Status:       row.Status,
			Timeline:     row.Timeline,
			Impact:       row.Impact,
			Problem:      row.Problem,
			Solution:     row.Solution,
			Outcome:      row.Outcome,
			MarkdownPath: row.MdxPath,
			CreatedAt:    row.CreatedAt,
			UpdatedAt:    row.UpdatedAt,
		}

		if row.MdxPath != "" {
			body, err := os.ReadFile(filepath.Join(e.contentDir, row.MdxPath+".md"))
			if err != nil {
				e.logger.Warn("markdown body missing, exporting without it",
					"slug", row.Slug, "path", row.MdxPath, "error", err)
			} else {
				cs.Markdown = string(body)
			}
		}

		studies = append(studies, cs)
	}

	e.logger.Info("exported case studies", "count", len(studies))
	return studies, nil
}

// WriteSnapshot exports the catalog and writes it as indented JSON to path,
// creating parent directories as needed.
func (e *Exporter) WriteSnapshot(ctx context.Context, path string) error {
	studies, err := e.Export(ctx)
	if err != nil {
		return err
	}

	raw, err := json.MarshalIndent(studies, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding snapshot: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating snapshot directory: %w", err)
	}
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return fmt.Errorf("writing snapshot: %w", err)
	}

	e.logger.Info("wrote snapshot", "path", path, "bytes", len(raw))
	return nil
}
