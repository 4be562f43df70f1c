// CarSelect - AHP Car Recommendation Backend
// Copyright 2026 aterii
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/aterii/practice-4

package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/aterii/practice-4/internal/recommend"
)

// Recommendations ranks the catalog for the user. limit defaults to the
// engine's configured value.
func (h *Handler) Recommendations(w http.ResponseWriter, r *http.Request) {
	uid, ok := requireUser(w, r)
	if !ok {
		return
	}

	req := recommend.Request{UserID: uid}
	if s := r.URL.Query().Get("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 0 {
			respondBadRequest(w, r, "limit must be a non-negative integer")
			return
		}
		req.Limit = n
	}

	resp, err := h.recommender.Recommend(r.Context(), req)
	if err != nil {
		if errors.Is(err, recommend.ErrCatalog) {
			respondCatalogError(w, r, err)
			return
		}
		respondInternal(w, r, "Failed to build recommendations", err)
		return
	}
	respondOK(w, resp)
}

// HealthResponse is the body of GET /api/health.
type HealthResponse struct {
	Status string `json:"status"`
	Uptime string `json:"uptime"`
}

// Health reports liveness.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	respondOK(w, &HealthResponse{
		Status: "ok",
		Uptime: time.Since(h.startTime).Round(time.Second).String(),
	})
}
