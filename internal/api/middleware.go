// GameRank - Safety-Constrained Game Recommendations and Charts
// Copyright 2026 Playforge Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/playforge/gamerank

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/playforge/gamerank/internal/logging"
	"github.com/playforge/gamerank/internal/metrics"
)

// requestIDMiddleware attaches a request ID to the context, reusing the
// client-provided X-Request-ID when present.
func requestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-ID")
		if id == "" {
			id = logging.NewRequestID()
		}
		w.Header().Set("X-Request-ID", id)
		next.ServeHTTP(w, r.WithContext(logging.ContextWithRequestID(r.Context(), id)))
	})
}

// statusRecorder captures the response status code for logging and metrics.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// observeMiddleware logs each request and records Prometheus metrics keyed by
// the chi route pattern.
func observeMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		pattern := chi.RouteContext(r.Context()).RoutePattern()
		if pattern == "" {
			pattern = r.URL.Path
		}
		elapsed := time.Since(start)
		metrics.ObserveAPIRequest(r.Method, pattern, rec.status, elapsed)

		reqLogger := logging.Ctx(r.Context())
		reqLogger.Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", rec.status).
			Dur("elapsed", elapsed).
			Msg("request handled")
	})
}
