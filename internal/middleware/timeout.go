// Copyright (c) 2025-2026 David Mendez
// SPDX-License-Identifier: MIT

package middleware

import (
	"context"
	"net/http"
	"sync"
	"time"
)

// Timeout cancels the request context after d and answers 503 if the
// handler has not started writing by then. A handler that already wrote
// its header keeps the connection and finishes on its own.
func Timeout(d time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, cancel := context.WithTimeout(r.Context(), d)
			defer cancel()

			gw := &guardedWriter{rw: w}
			done := make(chan struct{})
			go func() {
				defer close(done)
				next.ServeHTTP(gw, r.WithContext(ctx))
			}()

			select {
			case <-done:
			case <-ctx.Done():
				gw.timeout()
			}
		})
	}
}

// guardedWriter serializes the handler goroutine and the timeout path so
// exactly one of them produces a response.
type guardedWriter struct {
	rw    http.ResponseWriter
	mu    sync.Mutex
	wrote bool
}

func (g *guardedWriter) Header() http.Header { return g.rw.Header() }

func (g *guardedWriter) WriteHeader(code int) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.wrote {
		return
	}
	g.wrote = true
	g.rw.WriteHeader(code)
}

func (g *guardedWriter) Write(b []byte) (int, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if !g.wrote {
		g.wrote = true
		g.rw.WriteHeader(http.StatusOK)
	}
	return g.rw.Write(b)
}

func (g *guardedWriter) timeout() {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.wrote {
		return
	}
	g.wrote = true
	g.rw.Header().Set("Content-Type", "text/plain; charset=utf-8")
	g.rw.WriteHeader(http.StatusServiceUnavailable)
	_, _ = g.rw.Write([]byte("Request timeout"))
}
