// Copyright (c) 2025-2026 David Mendez
// SPDX-License-Identifier: MIT

package flags

import (
	"context"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/davidmendez/portfolio/internal/kv"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

func TestIsTruthy(t *testing.T) {
	for _, s := range []string{"true", "1", "enabled"} {
		if !IsTruthy(s) {
			t.Errorf("IsTruthy(%q) = false; want true", s)
		}
	}
	for _, s := range []string{"", "false", "0", "TRUE", "t", "yes", "on", "enabled "} {
		if IsTruthy(s) {
			t.Errorf("IsTruthy(%q) = true; want false", s)
		}
	}
}

func TestService_DefaultsToDisabled(t *testing.T) {
	ctx := context.Background()

	// Unconfigured namespace
	svc := NewService(kv.NewNamespace(nil), false, 0, testLogger())
	if svc.Enabled(ctx) {
		t.Error("unconfigured namespace should read as disabled")
	}

	// Configured namespace, key absent
	store := kv.NewMemoryStore(0)
	defer func() { _ = store.Close() }()
	svc = NewService(kv.NewNamespace(store), false, 0, testLogger())
	if svc.Enabled(ctx) {
		t.Error("absent key should read as disabled")
	}
}

func TestService_ReadsStoredValue(t *testing.T) {
	ctx := context.Background()
	store := kv.NewMemoryStore(0)
	defer func() { _ = store.Close() }()
	ns := kv.NewNamespace(store)

	svc := NewService(ns, false, 0, testLogger())

	for value, want := range map[string]bool{
		"true":     true,
		"1":        true,
		"enabled":  true,
		"false":    false,
		"anything": false,
	} {
		if err := ns.Put(ctx, KeyUnderConstruction, value, nil); err != nil {
			t.Fatalf("Put: %v", err)
		}
		if got := svc.Enabled(ctx); got != want {
			t.Errorf("Enabled with stored %q = %v; want %v", value, got, want)
		}
	}
}

func TestService_EnvOverrideWins(t *testing.T) {
	ctx := context.Background()
	store := kv.NewMemoryStore(0)
	defer func() { _ = store.Close() }()
	ns := kv.NewNamespace(store)

	if err := ns.Put(ctx, KeyUnderConstruction, "false", nil); err != nil {
		t.Fatalf("Put: %v", err)
	}

	svc := NewService(ns, true, 0, testLogger())
	if !svc.Enabled(ctx) {
		t.Error("environment override should force enabled regardless of stored value")
	}
}

func TestService_CacheAndWarm(t *testing.T) {
	ctx := context.Background()
	store := kv.NewMemoryStore(0)
	defer func() { _ = store.Close() }()
	ns := kv.NewNamespace(store)

	svc := NewService(ns, false, time.Minute, testLogger())

	if svc.Enabled(ctx) {
		t.Fatal("flag should start disabled")
	}

	// Stored value changes, but the cache still holds the old read.
	if err := ns.Put(ctx, KeyUnderConstruction, "true", nil); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if svc.Enabled(ctx) {
		t.Error("cached value should mask the new store value until warm/expiry")
	}

	svc.Warm(ctx)
	if !svc.Enabled(ctx) {
		t.Error("Warm should pick up the new store value")
	}
}
