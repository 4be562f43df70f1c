// CarSelect - AHP Car Recommendation Backend
// Copyright 2026 aterii
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/aterii/practice-4

package middleware

import (
	"net/http"
	"time"

	"github.com/aterii/practice-4/internal/logging"
)

// DefaultSlowThreshold is the latency above which AccessLog warns.
const DefaultSlowThreshold = time.Second

// AccessLog returns middleware that logs every request at debug level and
// requests slower than slow, or failing with a 5xx, at warn level.
func AccessLog(slow time.Duration) func(http.Handler) http.Handler {
	if slow <= 0 {
		slow = DefaultSlowThreshold
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			wrapper := newStatusRecorder(w)

			next.ServeHTTP(wrapper, r)

			duration := time.Since(start)
			logger := logging.Ctx(r.Context())
			event := logger.Debug()
			switch {
			case wrapper.statusCode >= http.StatusInternalServerError:
				event = logger.Warn()
			case duration > slow:
				event = logger.Warn().Bool("slow", true)
			}
			event.
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Str("route", routePattern(r)).
				Int("status", wrapper.statusCode).
				Int("bytes", wrapper.bytes).
				Int64("duration_ms", duration.Milliseconds()).
				Msg("HTTP request")
		})
	}
}
