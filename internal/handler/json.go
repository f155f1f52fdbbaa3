// Copyright (c) 2025-2026 David Mendez
// SPDX-License-Identifier: MIT

// Package handler implements the HTTP surface: the override API, the
// feature-flag endpoint, the auth flow, and the rendered pages.
package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// errorResponse is the JSON error envelope for API endpoints.
type errorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// writeJSON writes v with the given status code.
func writeJSON(w http.ResponseWriter, statusCode int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encoding JSON response", "error", err)
	}
}

// writeJSONError writes a JSON error response.
func writeJSONError(w http.ResponseWriter, statusCode int, message string) {
	writeJSON(w, statusCode, errorResponse{Success: false, Error: message})
}
