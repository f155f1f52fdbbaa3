// Copyright (c) 2025-2026 David Mendez
// SPDX-License-Identifier: MIT

package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/davidmendez/portfolio/internal/auth"
	"github.com/davidmendez/portfolio/internal/content"
	"github.com/davidmendez/portfolio/internal/flags"
	"github.com/davidmendez/portfolio/internal/kv"
	"github.com/davidmendez/portfolio/internal/session"
	"github.com/davidmendez/portfolio/internal/testutil"
)

// fakeVerifier maps tokens to identities without calling Google.
type fakeVerifier struct {
	users map[string]*auth.UserInfo
}

func (f *fakeVerifier) Verify(_ context.Context, token string) (*auth.UserInfo, error) {
	if info, ok := f.users[token]; ok {
		return info, nil
	}
	return nil, auth.ErrInvalidToken
}

type apiFixture struct {
	handler   *APIHandler
	overrides *content.OverrideService
	ns        *kv.Namespace
}

// newAPIFixture wires an APIHandler against an in-memory KV store. With
// configured=false the override namespace is left unconfigured.
func newAPIFixture(t *testing.T, configured bool) *apiFixture {
	t.Helper()

	var ns *kv.Namespace
	if configured {
		memStore := kv.NewMemoryStore(0)
		t.Cleanup(func() { _ = memStore.Close() })
		ns = kv.NewNamespace(memStore)
	} else {
		ns = kv.NewNamespace(nil)
	}

	logger := testutil.TestLoggerSilent()
	overrides := content.NewOverrideService(ns, 0, logger)
	flagSvc := flags.NewService(ns, false, 0, logger)

	a := auth.New(auth.Options{
		AdminEmail: "me@davidmendez.dev",
		Verifier: &fakeVerifier{users: map[string]*auth.UserInfo{
			"admin-token": {Email: "me@davidmendez.dev", Name: "David"},
			"other-token": {Email: "someone@else.dev", Name: "Someone"},
		}},
		Sessions: session.NewMemoryStore(),
	})

	return &apiFixture{
		handler:   NewAPIHandler(a, overrides, flagSvc, logger),
		overrides: overrides,
		ns:        ns,
	}
}

func doUpdate(t *testing.T, f *apiFixture, token, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/api/case-studies/update", strings.NewReader(body))
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	f.handler.UpdateCaseStudy(rec, req)
	return rec
}

func decodeJSON(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), v); err != nil {
		t.Fatalf("decoding response %q: %v", rec.Body.String(), err)
	}
}

func TestUpdate_AuthorizationLadder(t *testing.T) {
	f := newAPIFixture(t, true)
	validBody := `{"slug":"alpha","content":"# Body"}`

	tests := []struct {
		name     string
		token    string
		body     string
		wantCode int
	}{
		{"missing auth", "", validBody, http.StatusUnauthorized},
		{"invalid token", "garbage", validBody, http.StatusUnauthorized},
		{"wrong identity", "other-token", validBody, http.StatusForbidden},
		{"missing slug", "admin-token", `{"content":"x"}`, http.StatusBadRequest},
		{"missing content", "admin-token", `{"slug":"alpha"}`, http.StatusBadRequest},
		{"malformed body", "admin-token", `{not json`, http.StatusBadRequest},
		{"malformed slug", "admin-token", `{"slug":"Not A Slug!","content":"x"}`, http.StatusBadRequest},
		{"ok", "admin-token", validBody, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doUpdate(t, f, tt.token, tt.body)
			if rec.Code != tt.wantCode {
				t.Errorf("status = %d; want %d (body %s)", rec.Code, tt.wantCode, rec.Body.String())
			}
		})
	}
}

func TestUpdate_LadderOrder(t *testing.T) {
	f := newAPIFixture(t, true)

	// Credentials are checked before the payload: a bad body with no
	// token must fail on the token.
	rec := doUpdate(t, f, "", `{not json`)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d; want 401 before payload validation", rec.Code)
	}

	rec = doUpdate(t, f, "other-token", `{not json`)
	if rec.Code != http.StatusForbidden {
		t.Errorf("status = %d; want 403 before payload validation", rec.Code)
	}
}

func TestUpdate_FailedWriteLeavesNoOverride(t *testing.T) {
	f := newAPIFixture(t, true)
	ctx := context.Background()

	rec := doUpdate(t, f, "other-token", `{"slug":"alpha","content":"evil"}`)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("status = %d", rec.Code)
	}

	ov, err := f.overrides.Read(ctx, content.FamilyCaseStudy, "alpha")
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if ov != nil {
		t.Errorf("rejected write left an override behind: %+v", ov)
	}
}

func TestReadWriteRoundTrip(t *testing.T) {
	f := newAPIFixture(t, true)

	// Before any write the read returns a null content.
	req := httptest.NewRequest(http.MethodGet, "/api/case-studies/read?slug=alpha", nil)
	rec := httptest.NewRecorder()
	f.handler.ReadCaseStudy(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var read readResponse
	decodeJSON(t, rec, &read)
	if read.Content != nil {
		t.Errorf("Content = %q; want null", *read.Content)
	}
	if cc := rec.Header().Get("Cache-Control"); cc != "public, max-age=60" {
		t.Errorf("Cache-Control = %q", cc)
	}

	rec = doUpdate(t, f, "admin-token", `{"slug":"alpha","content":"# Updated"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("update status = %d: %s", rec.Code, rec.Body.String())
	}
	var upd updateResponse
	decodeJSON(t, rec, &upd)
	if !upd.Success || !upd.Persisted {
		t.Errorf("update response = %+v", upd)
	}
	if upd.Message != "Content updated" {
		t.Errorf("Message = %q", upd.Message)
	}
	if upd.Slug != "alpha" {
		t.Errorf("Slug = %q", upd.Slug)
	}
	if upd.UpdatedBy != "me@davidmendez.dev" {
		t.Errorf("UpdatedBy = %q", upd.UpdatedBy)
	}

	rec = httptest.NewRecorder()
	f.handler.ReadCaseStudy(rec, httptest.NewRequest(http.MethodGet, "/api/case-studies/read?slug=alpha", nil))
	decodeJSON(t, rec, &read)
	if read.Content == nil || *read.Content != "# Updated" {
		t.Errorf("read after write = %v", read.Content)
	}
}

func TestRead_MissingSlug(t *testing.T) {
	f := newAPIFixture(t, true)

	rec := httptest.NewRecorder()
	f.handler.ReadCaseStudy(rec, httptest.NewRequest(http.MethodGet, "/api/case-studies/read", nil))
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d; want 400", rec.Code)
	}
}

func TestRead_InvalidSlug(t *testing.T) {
	f := newAPIFixture(t, true)

	for _, slug := range []string{"UPPER", "has_underscore", "-leading", "double--hyphen"} {
		rec := httptest.NewRecorder()
		f.handler.ReadCaseStudy(rec, httptest.NewRequest(http.MethodGet, "/api/case-studies/read?slug="+slug, nil))
		if rec.Code != http.StatusBadRequest {
			t.Errorf("slug %q: status = %d; want 400", slug, rec.Code)
		}
	}
}

func TestFamiliesAreIsolated(t *testing.T) {
	f := newAPIFixture(t, true)

	req := httptest.NewRequest(http.MethodPost, "/api/content/update",
		strings.NewReader(`{"slug":"alpha","content":"generic block"}`))
	req.Header.Set("Authorization", "Bearer admin-token")
	rec := httptest.NewRecorder()
	f.handler.UpdateContent(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("content update status = %d", rec.Code)
	}

	// The case-study read under the same slug stays empty.
	rec = httptest.NewRecorder()
	f.handler.ReadCaseStudy(rec, httptest.NewRequest(http.MethodGet, "/api/case-studies/read?slug=alpha", nil))
	var read readResponse
	decodeJSON(t, rec, &read)
	if read.Content != nil {
		t.Errorf("case-study read leaked a content-family write: %q", *read.Content)
	}
}

func TestUpdate_UnconfiguredStoreAcknowledgesWithoutPersisting(t *testing.T) {
	f := newAPIFixture(t, false)

	rec := doUpdate(t, f, "admin-token", `{"slug":"alpha","content":"# Body"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d; unconfigured store must not fail writes", rec.Code)
	}
	var upd updateResponse
	decodeJSON(t, rec, &upd)
	if !upd.Success {
		t.Error("Success = false")
	}
	if upd.Persisted {
		t.Error("Persisted = true; nothing was stored")
	}

	rec = httptest.NewRecorder()
	f.handler.ReadCaseStudy(rec, httptest.NewRequest(http.MethodGet, "/api/case-studies/read?slug=alpha", nil))
	var read readResponse
	decodeJSON(t, rec, &read)
	if read.Content != nil {
		t.Errorf("unconfigured read = %q; want null", *read.Content)
	}
}

func TestReadFlag(t *testing.T) {
	f := newAPIFixture(t, true)
	ctx := context.Background()

	rec := httptest.NewRecorder()
	f.handler.ReadFlag(rec, httptest.NewRequest(http.MethodGet, "/api/under-construction/read", nil))
	var resp map[string]bool
	decodeJSON(t, rec, &resp)
	if resp["enabled"] {
		t.Error("flag should default to disabled")
	}

	if err := f.ns.Put(ctx, flags.KeyUnderConstruction, "enabled", nil); err != nil {
		t.Fatalf("Put: %v", err)
	}

	rec = httptest.NewRecorder()
	f.handler.ReadFlag(rec, httptest.NewRequest(http.MethodGet, "/api/under-construction/read", nil))
	decodeJSON(t, rec, &resp)
	if !resp["enabled"] {
		t.Error("flag should read enabled after write")
	}
}

func TestBearerToken(t *testing.T) {
	tests := []struct {
		header string
		want   string
		ok     bool
	}{
		{"", "", false},
		{"Bearer abc", "abc", true},
		{"bearer abc", "abc", true},
		{"Basic abc", "", false},
		{"Bearer", "", false},
		{"Bearer ", "", false},
	}

	for _, tt := range tests {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if tt.header != "" {
			req.Header.Set("Authorization", tt.header)
		}
		got, ok := bearerToken(req)
		if got != tt.want || ok != tt.ok {
			t.Errorf("bearerToken(%q) = (%q, %v); want (%q, %v)", tt.header, got, ok, tt.want, tt.ok)
		}
	}
}
