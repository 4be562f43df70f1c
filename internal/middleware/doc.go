// CarSelect - AHP Car Recommendation Backend
// Copyright 2026 aterii
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/aterii/practice-4

/*
Package middleware provides the HTTP middleware shared by the API router.

  - RequestID assigns an X-Request-ID and threads it into the logging context
  - AccessLog writes one structured log line per request and flags slow ones
  - PrometheusMetrics records request counts and latency by route pattern
  - Compression gzips responses for clients that accept it

All middleware has the func(http.Handler) http.Handler shape so it can be
passed to chi's Use.
*/
package middleware
