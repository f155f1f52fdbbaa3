// Copyright (c) 2025-2026 David Mendez
// SPDX-License-Identifier: MIT

// Package auth implements single-admin authentication: Google OAuth
// sign-in for the browser flow and bearer-token verification for the
// write API. Exactly one email address is allowed in.
package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"github.com/davidmendez/portfolio/internal/model"
	"github.com/davidmendez/portfolio/internal/session"
)

// ErrAccessDenied means the verified identity is not the configured admin.
var ErrAccessDenied = errors.New("access denied")

// sessionLifetime bounds how long a browser session stays valid.
const sessionLifetime = 24 * time.Hour

// Authenticator owns the sign-in flow and session lifecycle.
type Authenticator struct {
	oauth      *oauth2.Config
	verifier   *Resource[Verifier]
	sessions   session.Store
	adminEmail string
}

// Options configures an Authenticator. Provide either a ready Verifier
// or a VerifierFactory; the factory defers construction to the first
// verification, with concurrent first callers sharing one build.
type Options struct {
	ClientID        string
	ClientSecret    string
	RedirectURL     string
	AdminEmail      string
	Verifier        Verifier
	VerifierFactory func(ctx context.Context) (Verifier, error)
	Sessions        session.Store
}

// New creates an Authenticator. The admin email comparison is
// case-insensitive.
func New(opts Options) *Authenticator {
	factory := opts.VerifierFactory
	if factory == nil {
		v := opts.Verifier
		factory = func(context.Context) (Verifier, error) {
			if v == nil {
				return nil, errors.New("no verifier configured")
			}
			return v, nil
		}
	}

	return &Authenticator{
		oauth: &oauth2.Config{
			ClientID:     opts.ClientID,
			ClientSecret: opts.ClientSecret,
			RedirectURL:  opts.RedirectURL,
			Scopes:       []string{"openid", "email", "profile"},
			Endpoint:     google.Endpoint,
		},
		verifier:   NewResource(factory),
		sessions:   opts.Sessions,
		adminEmail: strings.ToLower(opts.AdminEmail),
	}
}

// LoginURL returns the Google consent page URL for the given CSRF state.
func (a *Authenticator) LoginURL(state string) string {
	return a.oauth.AuthCodeURL(state, oauth2.AccessTypeOnline)
}

// SignIn exchanges an authorization code, verifies the resulting identity
// against the admin allowlist, and persists the session. A non-admin
// identity gets ErrAccessDenied and no session.
func (a *Authenticator) SignIn(ctx context.Context, code string) (*model.Session, error) {
	token, err := a.oauth.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("exchanging authorization code: %w", err)
	}

	verifier, err := a.verifier.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("initializing verifier: %w", err)
	}
	info, err := verifier.Verify(ctx, token.AccessToken)
	if err != nil {
		return nil, err
	}

	if !a.IsAdmin(info.Email) {
		return nil, ErrAccessDenied
	}

	s := &model.Session{
		User: model.AuthUser{
			Email:   info.Email,
			Name:    info.Name,
			Picture: info.Picture,
			IsAdmin: true,
		},
		Token:     token.AccessToken,
		ExpiresAt: time.Now().Add(sessionLifetime).UnixMilli(),
	}
	if err := a.sessions.Set(ctx, s); err != nil {
		return nil, fmt.Errorf("persisting session: %w", err)
	}
	return s, nil
}

// SignOut discards the current session. Signing out while signed out is
// not an error.
func (a *Authenticator) SignOut(ctx context.Context) error {
	return a.sessions.Clear(ctx)
}

// GetSession returns the current session, or nil when signed out or
// expired.
func (a *Authenticator) GetSession(ctx context.Context) (*model.Session, error) {
	return a.sessions.Get(ctx)
}

// IsAdmin reports whether email matches the configured admin.
func (a *Authenticator) IsAdmin(email string) bool {
	return strings.EqualFold(strings.TrimSpace(email), a.adminEmail)
}

// VerifyAdminToken resolves a bearer token and checks it belongs to the
// admin. It distinguishes an invalid token (ErrInvalidToken) from a valid
// token for the wrong account (ErrAccessDenied).
func (a *Authenticator) VerifyAdminToken(ctx context.Context, token string) (*UserInfo, error) {
	verifier, err := a.verifier.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("initializing verifier: %w", err)
	}
	info, err := verifier.Verify(ctx, token)
	if err != nil {
		return nil, err
	}
	if !a.IsAdmin(info.Email) {
		return nil, ErrAccessDenied
	}
	return info, nil
}
