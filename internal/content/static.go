// Copyright (c) 2025-2026 David Mendez
// SPDX-License-Identifier: MIT

// Package content serves case studies: the build-time static snapshot,
// the runtime override layer on top of it, and markdown rendering.
package content

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/davidmendez/portfolio/internal/model"
)

// Snapshot is the immutable case-study catalog exported at build time.
// It is loaded once at startup and never mutated, so reads need no locking.
type Snapshot struct {
	studies []model.CaseStudy
	bySlug  map[string]int
}

// LoadSnapshot reads the JSON artifact produced by the export pipeline.
func LoadSnapshot(path string) (*Snapshot, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading snapshot %s: %w", path, err)
	}
	return ParseSnapshot(raw)
}

// ParseSnapshot builds a Snapshot from raw JSON.
func ParseSnapshot(raw []byte) (*Snapshot, error) {
	var studies []model.CaseStudy
	if err := json.Unmarshal(raw, &studies); err != nil {
		return nil, fmt.Errorf("parsing snapshot: %w", err)
	}

	bySlug := make(map[string]int, len(studies))
	for i, cs := range studies {
		if cs.Slug == "" {
			return nil, fmt.Errorf("snapshot entry %d has no slug", i)
		}
		if _, dup := bySlug[cs.Slug]; dup {
			return nil, fmt.Errorf("snapshot has duplicate slug %q", cs.Slug)
		}
		bySlug[cs.Slug] = i
	}

	return &Snapshot{studies: studies, bySlug: bySlug}, nil
}

// All returns the case studies in export order.
func (s *Snapshot) All() []model.CaseStudy {
	out := make([]model.CaseStudy, len(s.studies))
	copy(out, s.studies)
	return out
}

// BySlug returns the case study with the given slug.
func (s *Snapshot) BySlug(slug string) (model.CaseStudy, bool) {
	i, ok := s.bySlug[slug]
	if !ok {
		return model.CaseStudy{}, false
	}
	return s.studies[i], true
}

// Next returns the case study after slug in export order, wrapping around
// at the end. Used for the next-project footer navigation.
func (s *Snapshot) Next(slug string) (model.CaseStudy, bool) {
	i, ok := s.bySlug[slug]
	if !ok || len(s.studies) < 2 {
		return model.CaseStudy{}, false
	}
	return s.studies[(i+1)%len(s.studies)], true
}

// Len returns the number of case studies in the snapshot.
func (s *Snapshot) Len() int {
	return len(s.studies)
}
