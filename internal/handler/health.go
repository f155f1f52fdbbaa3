// Copyright (c) 2025-2026 David Mendez
// SPDX-License-Identifier: MIT

package handler

import (
	"database/sql"
	"net/http"

	"github.com/davidmendez/portfolio/internal/kv"
	"github.com/davidmendez/portfolio/internal/version"
)

// HealthHandler reports process health for load balancers and uptime checks.
type HealthHandler struct {
	db      *sql.DB
	ns      *kv.Namespace
	version version.Info
}

// NewHealthHandler creates a HealthHandler.
func NewHealthHandler(db *sql.DB, ns *kv.Namespace, info version.Info) *HealthHandler {
	return &HealthHandler{db: db, ns: ns, version: info}
}

type healthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
	DB      string `json:"db"`
	KV      string `json:"kv"`
}

// Health handles GET /healthz. The KV namespace being unconfigured or
// unreachable degrades the report but does not fail it: the site serves
// static content without it.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	resp := healthResponse{Status: "ok", Version: h.version.Version, DB: "ok", KV: "ok"}
	code := http.StatusOK

	if err := h.db.PingContext(r.Context()); err != nil {
		resp.Status = "unhealthy"
		resp.DB = "unreachable"
		code = http.StatusServiceUnavailable
	}

	switch err := h.ns.Ping(r.Context()); {
	case err == kv.ErrNotConfigured:
		resp.KV = "unconfigured"
	case err != nil:
		resp.KV = "unreachable"
	}

	writeJSON(w, code, resp)
}
