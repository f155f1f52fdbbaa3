// Copyright (c) 2025-2026 David Mendez
// SPDX-License-Identifier: MIT

package handler

import (
	"embed"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/davidmendez/portfolio/internal/content"
	"github.com/davidmendez/portfolio/internal/model"
	"github.com/davidmendez/portfolio/internal/session"
)

//go:embed templates/*.gohtml
var templateFS embed.FS

// FrontendHandler renders the public pages from the static snapshot,
// overlaying runtime overrides where they exist.
type FrontendHandler struct {
	snapshot  *content.Snapshot
	overrides *content.OverrideService
	sessions  session.Store
	templates *template.Template
	logger    *slog.Logger
}

// NewFrontendHandler parses the embedded templates and returns a handler.
func NewFrontendHandler(snapshot *content.Snapshot, overrides *content.OverrideService, sessions session.Store, logger *slog.Logger) (*FrontendHandler, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.gohtml")
	if err != nil {
		return nil, fmt.Errorf("parsing templates: %w", err)
	}
	return &FrontendHandler{
		snapshot:  snapshot,
		overrides: overrides,
		sessions:  sessions,
		templates: tmpl,
		logger:    logger,
	}, nil
}

// pageData is the payload every template receives.
type pageData struct {
	Title   string
	IsAdmin bool
	Data    any
}

// caseStudyView is a case study prepared for rendering.
type caseStudyView struct {
	model.CaseStudy
	Body       template.HTML
	Overridden bool
	Next       *model.CaseStudy
}

func (h *FrontendHandler) render(w http.ResponseWriter, r *http.Request, name string, data pageData) {
	if s, err := h.sessions.Get(r.Context()); err == nil && s != nil {
		data.IsAdmin = s.User.IsAdmin
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.templates.ExecuteTemplate(w, name, data); err != nil {
		h.logger.Error("rendering template failed", "template", name, "error", err)
	}
}

// Home handles GET /: the case-study index.
func (h *FrontendHandler) Home(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, "home", pageData{
		Title: "David Mendez",
		Data:  h.snapshot.All(),
	})
}

// CaseStudy handles GET /case-studies/{slug}. The markdown body comes
// from the override when one exists, otherwise from the snapshot.
func (h *FrontendHandler) CaseStudy(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	cs, ok := h.snapshot.BySlug(slug)
	if !ok {
		http.NotFound(w, r)
		return
	}

	markdown := cs.Markdown
	overridden := false
	if ov, err := h.overrides.Read(r.Context(), content.FamilyCaseStudy, slug); err == nil && ov != nil {
		markdown = ov.Content
		overridden = true
	} else if err != nil {
		h.logger.Warn("override read failed, serving static content", "slug", slug, "error", err)
	}

	body, err := content.RenderMarkdown(markdown)
	if err != nil {
		h.logger.Error("rendering case study failed", "slug", slug, "error", err)
		http.Error(w, "Failed to render page", http.StatusInternalServerError)
		return
	}

	view := caseStudyView{CaseStudy: cs, Body: body, Overridden: overridden}
	if next, ok := h.snapshot.Next(slug); ok {
		view.Next = &next
	}

	h.render(w, r, "case_study", pageData{Title: cs.Title, Data: view})
}

// UnderConstruction renders the placeholder page served while the gate
// is enabled.
func (h *FrontendHandler) UnderConstruction(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusServiceUnavailable)
	if err := h.templates.ExecuteTemplate(w, "under_construction", pageData{Title: "Coming Soon"}); err != nil {
		h.logger.Error("rendering placeholder failed", "error", err)
	}
}
