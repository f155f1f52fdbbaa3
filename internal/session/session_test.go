// Copyright (c) 2025-2026 David Mendez
// SPDX-License-Identifier: MIT

package session

import (
	"context"
	"testing"
	"time"

	"github.com/davidmendez/portfolio/internal/model"
)

func TestMemoryStore_RoundTrip(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	got, err := store.Get(ctx)
	if err != nil || got != nil {
		t.Fatalf("empty store Get = (%v, %v); want (nil, nil)", got, err)
	}

	s := &model.Session{
		User:      model.AuthUser{Email: "me@davidmendez.dev", IsAdmin: true},
		Token:     "tok",
		ExpiresAt: time.Now().Add(time.Hour).UnixMilli(),
	}
	if err := store.Set(ctx, s); err != nil {
		t.Fatalf("Set: %v", err)
	}

	got, err = store.Get(ctx)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got == nil || got.User.Email != "me@davidmendez.dev" || !got.User.IsAdmin {
		t.Errorf("Get = %+v", got)
	}

	// Mutating the returned copy must not affect the stored session.
	got.User.Email = "tampered"
	again, _ := store.Get(ctx)
	if again.User.Email != "me@davidmendez.dev" {
		t.Error("stored session mutated through returned copy")
	}

	if err := store.Clear(ctx); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	got, _ = store.Get(ctx)
	if got != nil {
		t.Error("session should be gone after Clear")
	}
}

func TestMemoryStore_LazyExpiry(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	s := &model.Session{
		User:      model.AuthUser{Email: "me@davidmendez.dev"},
		Token:     "tok",
		ExpiresAt: time.Now().Add(-time.Minute).UnixMilli(),
	}
	if err := store.Set(ctx, s); err != nil {
		t.Fatalf("Set: %v", err)
	}

	got, err := store.Get(ctx)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got != nil {
		t.Error("expired session should read as absent")
	}
}
