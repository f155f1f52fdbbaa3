// Copyright (c) 2025-2026 David Mendez
// SPDX-License-Identifier: MIT

package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/davidmendez/portfolio/internal/content"
	"github.com/davidmendez/portfolio/internal/kv"
	"github.com/davidmendez/portfolio/internal/session"
	"github.com/davidmendez/portfolio/internal/testutil"
)

const frontendSnapshot = `[
	{"slug": "alpha", "title": "Alpha Project", "status": "published", "markdown": "Static alpha body"},
	{"slug": "beta", "title": "Beta Project", "status": "published", "markdown": "Static beta body"},
	{"slug": "hidden", "title": "Hidden Draft", "status": "draft"}
]`

func newFrontend(t *testing.T) (*FrontendHandler, *content.OverrideService) {
	t.Helper()

	snap, err := content.ParseSnapshot([]byte(frontendSnapshot))
	if err != nil {
		t.Fatalf("ParseSnapshot: %v", err)
	}

	memStore := kv.NewMemoryStore(0)
	t.Cleanup(func() { _ = memStore.Close() })
	overrides := content.NewOverrideService(kv.NewNamespace(memStore), 0, testutil.TestLoggerSilent())

	h, err := NewFrontendHandler(snap, overrides, session.NewMemoryStore(), testutil.TestLoggerSilent())
	if err != nil {
		t.Fatalf("NewFrontendHandler: %v", err)
	}
	return h, overrides
}

func newRouter(h *FrontendHandler) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.Home)
	r.Get("/case-studies/{slug}", h.CaseStudy)
	return r
}

func TestHome_ListsPublishedOnly(t *testing.T) {
	h, _ := newFrontend(t)
	r := newRouter(h)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "Alpha Project") || !strings.Contains(body, "Beta Project") {
		t.Errorf("published studies missing from home page")
	}
	if strings.Contains(body, "Hidden Draft") {
		t.Errorf("draft study leaked onto home page")
	}
}

func TestCaseStudy_StaticBody(t *testing.T) {
	h, _ := newFrontend(t)
	r := newRouter(h)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/case-studies/alpha", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Static alpha body") {
		t.Error("static markdown body missing")
	}
}

func TestCaseStudy_OverrideWins(t *testing.T) {
	h, overrides := newFrontend(t)
	r := newRouter(h)

	_, err := overrides.Write(context.Background(), content.FamilyCaseStudy, "alpha", "Override body", "me@davidmendez.dev")
	if err != nil {
		t.Fatalf("Write: %v", err)
	}

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/case-studies/alpha", nil))

	body := rec.Body.String()
	if !strings.Contains(body, "Override body") {
		t.Error("override body missing")
	}
	if strings.Contains(body, "Static alpha body") {
		t.Error("static body should be replaced by the override")
	}
}

func TestCaseStudy_NotFound(t *testing.T) {
	h, _ := newFrontend(t)
	r := newRouter(h)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/case-studies/missing", nil))

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d; want 404", rec.Code)
	}
}

func TestCaseStudy_NextNavigation(t *testing.T) {
	h, _ := newFrontend(t)
	r := newRouter(h)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/case-studies/alpha", nil))

	if !strings.Contains(rec.Body.String(), "/case-studies/beta") {
		t.Error("next-project link missing")
	}
}

func TestUnderConstructionPage(t *testing.T) {
	h, _ := newFrontend(t)

	rec := httptest.NewRecorder()
	h.UnderConstruction(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d; want 503", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Coming Soon") {
		t.Error("placeholder copy missing")
	}
}
