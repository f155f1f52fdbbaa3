// Copyright (c) 2025-2026 David Mendez
// SPDX-License-Identifier: MIT

// Package kv provides the external key-value namespace used for content
// overrides and feature flags. All implementations must be thread-safe.
package kv

import (
	"context"
	"time"
)

// Store defines the interface for key-value backends.
// Values are raw bytes so the same backend serves both text content and
// serialized metadata records.
type Store interface {
	// Get retrieves a value. Returns ErrNotFound if the key is absent
	// or expired.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores a value. A zero TTL means the key does not expire.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete removes a key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// Has checks whether a key exists (and is not expired).
	Has(ctx context.Context, key string) (bool, error)

	// Close releases any resources held by the store.
	Close() error
}

// Error is the error type for key-value operations.
type Error string

func (e Error) Error() string {
	return string(e)
}

const (
	// ErrNotFound indicates the key is absent or has expired.
	ErrNotFound Error = "kv: key not found"

	// ErrClosed indicates the store has been closed.
	ErrClosed Error = "kv: store closed"

	// ErrNotConfigured indicates no key-value namespace is configured.
	// Callers treat this as "no override exists", never as a fault.
	ErrNotConfigured Error = "kv: namespace not configured"
)
