// CarSelect - AHP Car Recommendation Backend
// Copyright 2026 aterii
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/aterii/practice-4

// Package api exposes the HTTP interface of the backend.
//
// Routes are served by chi. Successful responses carry the resource itself
// as the JSON body; failures use a single envelope:
//
//	{"success": false, "error": {"code": "...", "message": "...", "request_id": "..."}}
//
// Everything under /api except /api/auth and /api/health requires a bearer
// token issued by the auth endpoints.
package api
