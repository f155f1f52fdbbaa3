// Copyright (c) 2025-2026 David Mendez
// SPDX-License-Identifier: MIT

package model

import "time"

// CaseStudy is one case-study record from the relational source.
// Markdown holds the full write-up body; it is only populated in the
// exported snapshot, not by row queries.
type CaseStudy struct {
	Slug         string    `json:"slug"`
	Title        string    `json:"title"`
	Subtitle     string    `json:"subtitle"`
	Status       string    `json:"status"`
	Timeline     string    `json:"timeline"`
	Impact       string    `json:"impact"`
	Problem      string    `json:"problem"`
	Solution     string    `json:"solution"`
	Outcome      string    `json:"outcome"`
	MarkdownPath string    `json:"markdownPath"`
	Markdown     string    `json:"markdown,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Override is a runtime replacement for a slug's static content.
type Override struct {
	Slug      string    `json:"slug"`
	Content   string    `json:"content"`
	UpdatedAt time.Time `json:"updatedAt"`
	UpdatedBy string    `json:"updatedBy"`
}
