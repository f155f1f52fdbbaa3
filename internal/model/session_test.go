// Copyright (c) 2025-2026 David Mendez
// SPDX-License-Identifier: MIT

package model

import (
	"testing"
	"time"
)

func TestSessionExpired(t *testing.T) {
	now := time.Now()

	live := &Session{ExpiresAt: now.Add(time.Hour).UnixMilli()}
	if live.Expired(now) {
		t.Error("session expiring in an hour reported expired")
	}

	dead := &Session{ExpiresAt: now.Add(-time.Minute).UnixMilli()}
	if !dead.Expired(now) {
		t.Error("session that expired a minute ago reported live")
	}

	// Expiry boundary counts as expired
	edge := &Session{ExpiresAt: now.UnixMilli()}
	if !edge.Expired(now) {
		t.Error("session at exact expiry instant reported live")
	}
}
