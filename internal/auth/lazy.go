// Copyright (c) 2025-2026 David Mendez
// SPDX-License-Identifier: MIT

package auth

import (
	"context"
	"sync"

	"golang.org/x/sync/singleflight"
)

// Resource lazily initializes a value exactly once, collapsing concurrent
// initializations into a single call. A successful result is memoized; a
// failed one is not, so the next caller retries.
type Resource[T any] struct {
	init func(ctx context.Context) (T, error)

	group singleflight.Group
	mu    sync.RWMutex
	value T
	ready bool
}

// NewResource wraps an initializer.
func NewResource[T any](init func(ctx context.Context) (T, error)) *Resource[T] {
	return &Resource[T]{init: init}
}

// Get returns the initialized value, running the initializer on first use.
// Concurrent callers share one in-flight initialization.
func (r *Resource[T]) Get(ctx context.Context) (T, error) {
	r.mu.RLock()
	if r.ready {
		v := r.value
		r.mu.RUnlock()
		return v, nil
	}
	r.mu.RUnlock()

	v, err, _ := r.group.Do("init", func() (any, error) {
		// Re-check: another caller may have completed while we queued.
		r.mu.RLock()
		if r.ready {
			v := r.value
			r.mu.RUnlock()
			return v, nil
		}
		r.mu.RUnlock()

		value, err := r.init(ctx)
		if err != nil {
			return value, err
		}

		r.mu.Lock()
		r.value = value
		r.ready = true
		r.mu.Unlock()
		return value, nil
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return v.(T), nil
}

// Ready reports whether the value has been initialized.
func (r *Resource[T]) Ready() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.ready
}
