// Copyright (c) 2025-2026 David Mendez
// SPDX-License-Identifier: MIT

package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/davidmendez/portfolio/internal/auth"
	"github.com/davidmendez/portfolio/internal/content"
	"github.com/davidmendez/portfolio/internal/flags"
	"github.com/davidmendez/portfolio/internal/util"
)

// readCacheSeconds is the Cache-Control max-age for override reads. It
// matches the service-side read cache so both layers expire together.
const readCacheSeconds = 60

// APIHandler serves the override read/write endpoints and the
// under-construction flag.
type APIHandler struct {
	auth      *auth.Authenticator
	overrides *content.OverrideService
	flags     *flags.Service
	logger    *slog.Logger
}

// NewAPIHandler creates an APIHandler.
func NewAPIHandler(a *auth.Authenticator, overrides *content.OverrideService, f *flags.Service, logger *slog.Logger) *APIHandler {
	return &APIHandler{
		auth:      a,
		overrides: overrides,
		flags:     f,
		logger:    logger,
	}
}

// readResponse carries an override read. Content is null when no override
// exists, signalling the client to fall back to static content.
type readResponse struct {
	Content *string `json:"content"`
}

// updateRequest is the write payload for both override families.
type updateRequest struct {
	Slug    string `json:"slug"`
	Content string `json:"content"`
}

// updateResponse acknowledges a write. Persisted is false when the
// override store is unconfigured and the write went nowhere.
type updateResponse struct {
	Success   bool      `json:"success"`
	Message   string    `json:"message"`
	Slug      string    `json:"slug"`
	Persisted bool      `json:"persisted"`
	UpdatedAt time.Time `json:"updatedAt"`
	UpdatedBy string    `json:"updatedBy"`
}

// ReadCaseStudy handles GET /api/case-studies/read?slug=...
// The endpoint is public: overrides are published content.
func (h *APIHandler) ReadCaseStudy(w http.ResponseWriter, r *http.Request) {
	h.read(w, r, content.FamilyCaseStudy)
}

// UpdateCaseStudy handles POST /api/case-studies/update.
func (h *APIHandler) UpdateCaseStudy(w http.ResponseWriter, r *http.Request) {
	h.update(w, r, content.FamilyCaseStudy)
}

// UpdateContent handles POST /api/content/update.
func (h *APIHandler) UpdateContent(w http.ResponseWriter, r *http.Request) {
	h.update(w, r, content.FamilyContent)
}

// ReadFlag handles GET /api/under-construction/read.
func (h *APIHandler) ReadFlag(w http.ResponseWriter, r *http.Request) {
	enabled := h.flags.Enabled(r.Context())
	writeJSON(w, http.StatusOK, map[string]bool{"enabled": enabled})
}

func (h *APIHandler) read(w http.ResponseWriter, r *http.Request, family content.Family) {
	slug := r.URL.Query().Get("slug")
	if slug == "" {
		writeJSONError(w, http.StatusBadRequest, "Missing slug parameter")
		return
	}
	if !util.IsValidSlug(slug) {
		writeJSONError(w, http.StatusBadRequest, "Invalid slug")
		return
	}

	ov, err := h.overrides.Read(r.Context(), family, slug)
	if err != nil {
		h.logger.Error("override read failed", "family", family, "slug", slug, "error", err)
		writeJSONError(w, http.StatusInternalServerError, "Failed to read content")
		return
	}

	w.Header().Set("Cache-Control", "public, max-age="+strconv.Itoa(readCacheSeconds))

	resp := readResponse{}
	if ov != nil {
		resp.Content = &ov.Content
	}
	writeJSON(w, http.StatusOK, resp)
}

// update walks the authorization ladder before touching the request body:
// missing credentials, then token validity, then identity, then payload.
func (h *APIHandler) update(w http.ResponseWriter, r *http.Request, family content.Family) {
	token, ok := bearerToken(r)
	if !ok {
		writeJSONError(w, http.StatusUnauthorized, "Missing authorization")
		return
	}

	info, err := h.auth.VerifyAdminToken(r.Context(), token)
	switch {
	case err == nil:
	case errors.Is(err, auth.ErrInvalidToken):
		writeJSONError(w, http.StatusUnauthorized, "Invalid token")
		return
	case errors.Is(err, auth.ErrAccessDenied):
		writeJSONError(w, http.StatusForbidden, "Unauthorized")
		return
	default:
		h.logger.Error("token verification failed", "error", err)
		writeJSONError(w, http.StatusInternalServerError, "Failed to verify token")
		return
	}

	var req updateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Slug == "" || req.Content == "" {
		writeJSONError(w, http.StatusBadRequest, "Missing slug or content")
		return
	}
	if !util.IsValidSlug(req.Slug) {
		writeJSONError(w, http.StatusBadRequest, "Invalid slug")
		return
	}

	result, err := h.overrides.Write(r.Context(), family, req.Slug, req.Content, info.Email)
	if err != nil {
		h.logger.Error("override write failed", "family", family, "slug", req.Slug, "error", err)
		writeJSONError(w, http.StatusInternalServerError, "Failed to update content")
		return
	}

	writeJSON(w, http.StatusOK, updateResponse{
		Success:   true,
		Message:   "Content updated",
		Slug:      req.Slug,
		Persisted: result.Persisted,
		UpdatedAt: result.UpdatedAt,
		UpdatedBy: result.UpdatedBy,
	})
}

// bearerToken extracts the token from an "Authorization: Bearer x" header.
func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", false
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}
