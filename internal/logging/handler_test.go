// Copyright (c) 2025-2026 David Mendez
// SPDX-License-Identifier: MIT

package logging

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/davidmendez/portfolio/internal/store"
	"github.com/davidmendez/portfolio/internal/testutil"
)

func TestEventLogHandler_ForwardsWarnAndAbove(t *testing.T) {
	db, cleanup := testutil.TestDB(t)
	defer cleanup()

	inner := slog.NewTextHandler(io.Discard, nil)
	logger := slog.New(NewEventLogHandler(inner, db))

	logger.Info("informational, should not be persisted")
	logger.Warn("something looks off", "component", "kv")
	logger.Error("something broke")

	events, err := store.New(db).ListRecentEvents(context.Background(), 10)
	if err != nil {
		t.Fatalf("ListRecentEvents: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(events))
	}

	// Newest first
	if events[0].Level != "ERROR" || events[0].Message != "something broke" {
		t.Errorf("unexpected event: %+v", events[0])
	}
	if events[1].Level != "WARN" {
		t.Errorf("unexpected level: %q", events[1].Level)
	}
	if !strings.Contains(events[1].Meta, "kv") {
		t.Errorf("attributes not captured in meta: %q", events[1].Meta)
	}
}
