// Copyright (c) 2025-2026 David Mendez
// SPDX-License-Identifier: MIT

// Package logging provides a custom slog handler that forwards logs at
// WARN level and above to the database-backed event log for auditing.
package logging

import (
	"context"
	"database/sql"
	"encoding/json"
	"log/slog"

	"github.com/davidmendez/portfolio/internal/store"
)

// EventLogHandler is a slog.Handler that wraps another handler and also
// writes WARN and ERROR level logs to the events table.
type EventLogHandler struct {
	inner   slog.Handler
	queries *store.Queries
	level   slog.Level
}

// NewEventLogHandler creates an EventLogHandler that wraps the given handler.
// Logs at WARN level and above are written to both the wrapped handler and
// the event log.
func NewEventLogHandler(inner slog.Handler, db *sql.DB) *EventLogHandler {
	return &EventLogHandler{
		inner:   inner,
		queries: store.New(db),
		level:   slog.LevelWarn,
	}
}

// Enabled implements slog.Handler.
func (h *EventLogHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.inner.Enabled(ctx, level)
}

// Handle implements slog.Handler.
func (h *EventLogHandler) Handle(ctx context.Context, r slog.Record) error {
	if err := h.inner.Handle(ctx, r); err != nil {
		return err
	}

	if r.Level >= h.level {
		h.writeToEventLog(r)
	}

	return nil
}

// WithAttrs implements slog.Handler.
func (h *EventLogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &EventLogHandler{
		inner:   h.inner.WithAttrs(attrs),
		queries: h.queries,
		level:   h.level,
	}
}

// WithGroup implements slog.Handler.
func (h *EventLogHandler) WithGroup(name string) slog.Handler {
	return &EventLogHandler{
		inner:   h.inner.WithGroup(name),
		queries: h.queries,
		level:   h.level,
	}
}

// writeToEventLog persists a log record. A background context is used so
// the event is logged even if the request context is cancelled.
func (h *EventLogHandler) writeToEventLog(r slog.Record) {
	meta := map[string]string{}
	r.Attrs(func(a slog.Attr) bool {
		meta[a.Key] = a.Value.String()
		return true
	})

	var metaJSON string
	if len(meta) > 0 {
		if raw, err := json.Marshal(meta); err == nil {
			metaJSON = string(raw)
		}
	}

	_ = h.queries.CreateEvent(context.Background(), store.CreateEventParams{
		Level:     levelName(r.Level),
		Message:   r.Message,
		Meta:      metaJSON,
		CreatedAt: r.Time,
	})
}

func levelName(level slog.Level) string {
	if level >= slog.LevelError {
		return "ERROR"
	}
	return "WARN"
}
