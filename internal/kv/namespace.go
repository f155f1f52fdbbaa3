// Copyright (c) 2025-2026 David Mendez
// SPDX-License-Identifier: MIT

package kv

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

// metaKeyPrefix marks the companion key holding a record's metadata.
const metaKeyPrefix = "meta:"

// Metadata is the audit sidecar stored alongside a record where the
// backend supports it.
type Metadata struct {
	UpdatedAt time.Time `json:"updatedAt"`
	UpdatedBy string    `json:"updatedBy"`
}

// Namespace wraps a Store with string values and metadata sidecars.
// A Namespace with a nil store represents "not configured": reads return
// ErrNotConfigured and writers decide how to degrade (the update endpoints
// report success without persisting, matching the original deployment
// without a bound KV namespace).
type Namespace struct {
	store Store
}

// NewNamespace creates a namespace over the given store. A nil store is
// allowed and yields an unconfigured namespace.
func NewNamespace(store Store) *Namespace {
	return &Namespace{store: store}
}

// Configured reports whether a backing store is present.
func (n *Namespace) Configured() bool {
	return n != nil && n.store != nil
}

// Get returns the string value at key, ErrNotFound when absent, or
// ErrNotConfigured when no store is bound.
func (n *Namespace) Get(ctx context.Context, key string) (string, error) {
	if !n.Configured() {
		return "", ErrNotConfigured
	}
	val, err := n.store.Get(ctx, key)
	if err != nil {
		return "", err
	}
	return string(val), nil
}

// Put overwrites the value at key unconditionally (last write wins) and
// stores the metadata sidecar when meta is non-nil. Records never expire.
func (n *Namespace) Put(ctx context.Context, key, value string, meta *Metadata) error {
	if !n.Configured() {
		return ErrNotConfigured
	}
	if err := n.store.Set(ctx, key, []byte(value), 0); err != nil {
		return fmt.Errorf("writing %s: %w", key, err)
	}
	if meta != nil {
		raw, err := json.Marshal(meta)
		if err != nil {
			return fmt.Errorf("encoding metadata for %s: %w", key, err)
		}
		// Metadata is best-effort; the record itself is already durable.
		if err := n.store.Set(ctx, metaKeyPrefix+key, raw, 0); err != nil {
			return fmt.Errorf("writing metadata for %s: %w", key, err)
		}
	}
	return nil
}

// GetMetadata returns the metadata sidecar for key, or ErrNotFound.
func (n *Namespace) GetMetadata(ctx context.Context, key string) (*Metadata, error) {
	if !n.Configured() {
		return nil, ErrNotConfigured
	}
	raw, err := n.store.Get(ctx, metaKeyPrefix+key)
	if err != nil {
		return nil, err
	}
	var meta Metadata
	if err := json.Unmarshal(raw, &meta); err != nil {
		return nil, fmt.Errorf("decoding metadata for %s: %w", key, err)
	}
	return &meta, nil
}

// Has reports whether key exists. An unconfigured namespace has no keys.
func (n *Namespace) Has(ctx context.Context, key string) (bool, error) {
	if !n.Configured() {
		return false, nil
	}
	return n.store.Has(ctx, key)
}

// Ping verifies the backing store is reachable, when it supports pinging.
func (n *Namespace) Ping(ctx context.Context) error {
	if !n.Configured() {
		return ErrNotConfigured
	}
	if p, ok := n.store.(interface{ Ping(context.Context) error }); ok {
		return p.Ping(ctx)
	}
	return nil
}

// Close releases the backing store.
func (n *Namespace) Close() error {
	if !n.Configured() {
		return nil
	}
	return n.store.Close()
}
