// Copyright (c) 2025-2026 David Mendez
// SPDX-License-Identifier: MIT

package kv

import (
	"context"
	"sync"
	"sync/atomic"
	"time"
)

// MemoryStore is a thread-safe in-memory Store. It backs development
// setups and tests, and doubles as the short-TTL read cache in front of
// the remote namespace.
type MemoryStore struct {
	data   sync.Map
	stopCh chan struct{}
	closed atomic.Bool
}

// memoryEntry holds a value with its expiration time. A zero expiresAt
// means the entry never expires.
type memoryEntry struct {
	value     []byte
	expiresAt time.Time
}

func (e *memoryEntry) expired(now time.Time) bool {
	return !e.expiresAt.IsZero() && now.After(e.expiresAt)
}

// NewMemoryStore creates a memory store. If cleanupInterval is positive,
// a background goroutine sweeps expired entries at that interval until
// Close is called.
func NewMemoryStore(cleanupInterval time.Duration) *MemoryStore {
	s := &MemoryStore{stopCh: make(chan struct{})}
	if cleanupInterval > 0 {
		go s.cleanupLoop(cleanupInterval)
	}
	return s
}

// Get retrieves a value, expiring lazily on read.
func (s *MemoryStore) Get(_ context.Context, key string) ([]byte, error) {
	if s.closed.Load() {
		return nil, ErrClosed
	}

	val, ok := s.data.Load(key)
	if !ok {
		return nil, ErrNotFound
	}

	entry := val.(*memoryEntry)
	if entry.expired(time.Now()) {
		s.data.Delete(key)
		return nil, ErrNotFound
	}

	// Return a copy to prevent mutation
	result := make([]byte, len(entry.value))
	copy(result, entry.value)
	return result, nil
}

// Set stores a value, replacing any prior entry.
func (s *MemoryStore) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	if s.closed.Load() {
		return ErrClosed
	}

	valueCopy := make([]byte, len(value))
	copy(valueCopy, value)

	entry := &memoryEntry{value: valueCopy}
	if ttl > 0 {
		entry.expiresAt = time.Now().Add(ttl)
	}
	s.data.Store(key, entry)
	return nil
}

// Delete removes a key.
func (s *MemoryStore) Delete(_ context.Context, key string) error {
	if s.closed.Load() {
		return ErrClosed
	}
	s.data.Delete(key)
	return nil
}

// Has checks whether a key exists and is not expired.
func (s *MemoryStore) Has(ctx context.Context, key string) (bool, error) {
	_, err := s.Get(ctx, key)
	if err == ErrNotFound {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Close stops the cleanup goroutine and marks the store closed.
func (s *MemoryStore) Close() error {
	if s.closed.CompareAndSwap(false, true) {
		close(s.stopCh)
	}
	return nil
}

// cleanupLoop periodically removes expired entries.
func (s *MemoryStore) cleanupLoop(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stopCh:
			return
		case <-ticker.C:
			now := time.Now()
			s.data.Range(func(key, val any) bool {
				if val.(*memoryEntry).expired(now) {
					s.data.Delete(key)
				}
				return true
			})
		}
	}
}

var _ Store = (*MemoryStore)(nil)
