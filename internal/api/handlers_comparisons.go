// CarSelect - AHP Car Recommendation Backend
// Copyright 2026 aterii
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/aterii/practice-4

package api

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/aterii/practice-4/internal/store"
)

// ListComparisons returns the user's comparison list, oldest first.
func (h *Handler) ListComparisons(w http.ResponseWriter, r *http.Request) {
	uid, ok := requireUser(w, r)
	if !ok {
		return
	}
	list, err := h.comparisons.ListComparisons(r.Context(), uid)
	if err != nil {
		respondDatabaseError(w, r, err)
		return
	}
	respondOK(w, list)
}

// AddComparison adds a car to the comparison list.
func (h *Handler) AddComparison(w http.ResponseWriter, r *http.Request) {
	uid, ok := requireUser(w, r)
	if !ok {
		return
	}
	var req CreateComparisonRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondBadRequest(w, r, "carId and score are required")
		return
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondValidation(w, r, apiErr)
		return
	}

	c, err := h.comparisons.AddComparison(r.Context(), uid, *req.CarID, *req.Score)
	if err != nil {
		respondDatabaseError(w, r, err)
		return
	}
	respondCreated(w, c)
}

// UpdateComparison changes the score of one entry.
func (h *Handler) UpdateComparison(w http.ResponseWriter, r *http.Request) {
	uid, ok := requireUser(w, r)
	if !ok {
		return
	}
	var req UpdateComparisonRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondBadRequest(w, r, "score is required")
		return
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondValidation(w, r, apiErr)
		return
	}

	c, err := h.comparisons.UpdateComparisonScore(r.Context(), uid, chi.URLParam(r, "id"), *req.Score)
	if errors.Is(err, store.ErrNotFound) {
		respondNotFound(w, r, "Comparison not found")
		return
	}
	if err != nil {
		respondDatabaseError(w, r, err)
		return
	}
	respondOK(w, c)
}

// DeleteComparison removes one entry.
func (h *Handler) DeleteComparison(w http.ResponseWriter, r *http.Request) {
	uid, ok := requireUser(w, r)
	if !ok {
		return
	}
	err := h.comparisons.DeleteComparison(r.Context(), uid, chi.URLParam(r, "id"))
	if errors.Is(err, store.ErrNotFound) {
		respondNotFound(w, r, "Comparison not found")
		return
	}
	if err != nil {
		respondDatabaseError(w, r, err)
		return
	}
	respondNoContent(w)
}
