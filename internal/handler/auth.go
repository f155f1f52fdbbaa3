// Copyright (c) 2025-2026 David Mendez
// SPDX-License-Identifier: MIT

package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/davidmendez/portfolio/internal/auth"
	"github.com/davidmendez/portfolio/internal/model"
)

// stateCookie carries the OAuth CSRF state between login and callback.
const stateCookie = "oauth_state"

// AuthHandler serves the browser sign-in flow.
type AuthHandler struct {
	auth   *auth.Authenticator
	isDev  bool
	logger *slog.Logger
}

// NewAuthHandler creates an AuthHandler.
func NewAuthHandler(a *auth.Authenticator, isDev bool, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{auth: a, isDev: isDev, logger: logger}
}

// Login handles GET /auth/login: sets the state cookie and redirects to
// the Google consent page.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	state := uuid.NewString()

	http.SetCookie(w, &http.Cookie{
		Name:     stateCookie,
		Value:    state,
		Path:     "/",
		MaxAge:   300,
		HttpOnly: true,
		Secure:   !h.isDev,
		SameSite: http.SameSiteLaxMode,
	})

	http.Redirect(w, r, h.auth.LoginURL(state), http.StatusFound)
}

// Callback handles GET /auth/callback: validates the state, exchanges the
// code, and redirects home. A non-admin identity gets a 403 page and no
// session.
func (h *AuthHandler) Callback(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie(stateCookie)
	if err != nil || cookie.Value == "" || cookie.Value != r.URL.Query().Get("state") {
		http.Error(w, "Invalid OAuth state", http.StatusBadRequest)
		return
	}

	// State is single-use.
	http.SetCookie(w, &http.Cookie{Name: stateCookie, Value: "", Path: "/", MaxAge: -1})

	code := r.URL.Query().Get("code")
	if code == "" {
		http.Error(w, "Missing authorization code", http.StatusBadRequest)
		return
	}

	s, err := h.auth.SignIn(r.Context(), code)
	switch {
	case err == nil:
	case errors.Is(err, auth.ErrAccessDenied):
		h.logger.Warn("sign-in attempt by non-admin identity")
		http.Error(w, "This account is not allowed to sign in", http.StatusForbidden)
		return
	default:
		h.logger.Error("sign-in failed", "error", err)
		http.Error(w, "Sign-in failed", http.StatusInternalServerError)
		return
	}

	h.logger.Info("admin signed in", "email", s.User.Email)
	http.Redirect(w, r, "/", http.StatusFound)
}

// Logout handles POST /auth/logout. Logging out while logged out succeeds.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.auth.SignOut(r.Context()); err != nil {
		h.logger.Error("sign-out failed", "error", err)
		writeJSONError(w, http.StatusInternalServerError, "Failed to sign out")
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// sessionResponse mirrors the stored session minus the access token,
// which never leaves the server.
type sessionResponse struct {
	User      *model.AuthUser `json:"user"`
	ExpiresAt int64           `json:"expiresAt,omitempty"`
}

// Session handles GET /auth/session: returns the signed-in identity, or
// a null user when signed out or expired.
func (h *AuthHandler) Session(w http.ResponseWriter, r *http.Request) {
	s, err := h.auth.GetSession(r.Context())
	if err != nil {
		h.logger.Error("reading session failed", "error", err)
		writeJSONError(w, http.StatusInternalServerError, "Failed to read session")
		return
	}

	resp := sessionResponse{}
	if s != nil {
		user := s.User
		resp.User = &user
		resp.ExpiresAt = s.ExpiresAt
	}
	writeJSON(w, http.StatusOK, resp)
}
