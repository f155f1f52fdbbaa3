// Copyright (c) 2025-2026 David Mendez
// SPDX-License-Identifier: MIT

package session

import (
	"context"
	"sync"
	"time"

	"github.com/davidmendez/portfolio/internal/model"
)

// MemoryStore is a process-local Store for tests and single-user tooling.
type MemoryStore struct {
	mu      sync.Mutex
	session *model.Session
}

// NewMemoryStore returns an empty in-memory session store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Get returns the stored session, clearing it first if expired.
func (m *MemoryStore) Get(_ context.Context) (*model.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.session == nil {
		return nil, nil
	}
	if m.session.Expired(time.Now()) {
		m.session = nil
		return nil, nil
	}
	s := *m.session
	return &s, nil
}

// Set replaces the stored session.
func (m *MemoryStore) Set(_ context.Context, s *model.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	copied := *s
	m.session = &copied
	return nil
}

// Clear removes the stored session.
func (m *MemoryStore) Clear(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.session = nil
	return nil
}
