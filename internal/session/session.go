// Copyright (c) 2025-2026 David Mendez
// SPDX-License-Identifier: MIT

// Package session stores the signed-in admin identity between requests.
package session

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"time"

	"github.com/alexedwards/scs/sqlite3store"
	"github.com/alexedwards/scs/v2"

	"github.com/davidmendez/portfolio/internal/model"
)

// sessionKey is the scs data key holding the serialized auth session.
const sessionKey = "auth_session"

// Store persists at most one auth session per browser session.
// Expired sessions read as absent.
type Store interface {
	Get(ctx context.Context) (*model.Session, error)
	Set(ctx context.Context, s *model.Session) error
	Clear(ctx context.Context) error
}

// New creates a session manager backed by the SQLite sessions table.
func New(db *sql.DB, isDev bool) *scs.SessionManager {
	sm := scs.New()

	sm.Store = sqlite3store.New(db)

	sm.Lifetime = 24 * time.Hour
	sm.Cookie.HttpOnly = true
	sm.Cookie.SameSite = http.SameSiteLaxMode
	sm.Cookie.Secure = !isDev // Secure cookies in production only

	return sm
}

// Manager adapts scs to the Store interface. Sessions ride the scs
// cookie, so ctx must come from a request that passed through
// scs.LoadAndSave.
type Manager struct {
	sm *scs.SessionManager
}

// NewManager wraps an scs session manager.
func NewManager(sm *scs.SessionManager) *Manager {
	return &Manager{sm: sm}
}

// Get returns the current auth session, or (nil, nil) when absent or expired.
// An expired session is cleared as a side effect.
func (m *Manager) Get(ctx context.Context) (*model.Session, error) {
	raw := m.sm.GetBytes(ctx, sessionKey)
	if len(raw) == 0 {
		return nil, nil
	}

	var s model.Session
	if err := json.Unmarshal(raw, &s); err != nil {
		// Corrupt payload: drop it rather than fail every request.
		m.sm.Remove(ctx, sessionKey)
		return nil, nil
	}

	if s.Expired(time.Now()) {
		m.sm.Remove(ctx, sessionKey)
		return nil, nil
	}
	return &s, nil
}

// Set stores the auth session.
func (m *Manager) Set(ctx context.Context, s *model.Session) error {
	raw, err := json.Marshal(s)
	if err != nil {
		return err
	}
	m.sm.Put(ctx, sessionKey, raw)
	return nil
}

// Clear removes the auth session.
func (m *Manager) Clear(ctx context.Context) error {
	m.sm.Remove(ctx, sessionKey)
	return nil
}
