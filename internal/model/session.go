// Copyright (c) 2025-2026 David Mendez
// SPDX-License-Identifier: MIT

// Package model defines the core data types shared across the application.
package model

import "time"

// AuthUser is the identity resolved from the OAuth provider.
type AuthUser struct {
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture,omitempty"`
	IsAdmin bool   `json:"isAdmin"`
}

// Session is the persisted sign-in state. IsAdmin on the embedded user is
// true if and only if the email equals the configured admin address; a
// session is only ever created for that address.
type Session struct {
	User      AuthUser `json:"user"`
	Token     string   `json:"token"`
	ExpiresAt int64    `json:"expiresAt"` // epoch milliseconds
}

// Expired reports whether the session has passed its expiry at the given time.
func (s *Session) Expired(now time.Time) bool {
	return now.UnixMilli() >= s.ExpiresAt
}
