// Copyright (c) 2025-2026 David Mendez
// SPDX-License-Identifier: MIT

package middleware

import (
	"net/http"

	"github.com/davidmendez/portfolio/internal/flags"
	"github.com/davidmendez/portfolio/internal/session"
)

// UnderConstructionGate replaces page responses with a placeholder while
// the under-construction flag is enabled. A signed-in admin bypasses the
// gate so the site can be previewed before launch. API and auth routes
// are mounted outside the gate and stay reachable.
func UnderConstructionGate(svc *flags.Service, sessions session.Store, placeholder http.Handler) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !svc.Enabled(r.Context()) {
				next.ServeHTTP(w, r)
				return
			}

			if s, err := sessions.Get(r.Context()); err == nil && s != nil && s.User.IsAdmin {
				next.ServeHTTP(w, r)
				return
			}

			placeholder.ServeHTTP(w, r)
		})
	}
}
