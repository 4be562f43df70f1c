// CarSelect - AHP Car Recommendation Backend
// Copyright 2026 aterii
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/aterii/practice-4

package api

import (
	"bytes"
	"net/http"

	"github.com/goccy/go-json"

	"github.com/aterii/practice-4/internal/models"
)

// GetPreferences returns the saved preferences or null.
func (h *Handler) GetPreferences(w http.ResponseWriter, r *http.Request) {
	uid, ok := requireUser(w, r)
	if !ok {
		return
	}
	prefs, err := h.preferences.GetPreferences(r.Context(), uid)
	if err != nil {
		respondDatabaseError(w, r, err)
		return
	}
	if prefs == nil {
		respondOK(w, nil)
		return
	}
	prefs.Sanitize()
	respondOK(w, prefs)
}

// PatchPreferences merges the present fields into the stored preferences.
// criteriaWeights is ignored here; PUT /weights owns it.
func (h *Handler) PatchPreferences(w http.ResponseWriter, r *http.Request) {
	h.savePreferences(w, r, false)
}

// MergePreferences merges the body over the stored preferences, criteria
// weights included. Omitted fields keep their stored values.
func (h *Handler) MergePreferences(w http.ResponseWriter, r *http.Request) {
	h.savePreferences(w, r, true)
}

func (h *Handler) savePreferences(w http.ResponseWriter, r *http.Request, withWeights bool) {
	uid, ok := requireUser(w, r)
	if !ok {
		return
	}

	var patch models.PreferencesPatch
	if err := decodeJSON(w, r, &patch); err != nil {
		respondBadRequest(w, r, "Invalid preferences format")
		return
	}
	if apiErr := validateRequest(&patch); apiErr != nil {
		respondValidation(w, r, apiErr)
		return
	}

	prefs, err := h.preferences.UpdatePreferences(r.Context(), uid, func(p *models.Preferences) error {
		p.Apply(&patch, withWeights)
		p.Sanitize()
		return nil
	})
	if err != nil {
		respondDatabaseError(w, r, err)
		return
	}
	respondOK(w, prefs)
}

// UpdateCriteriaWeights stores criteriaWeights, creating the preferences
// when the user has none yet.
func (h *Handler) UpdateCriteriaWeights(w http.ResponseWriter, r *http.Request) {
	uid, ok := requireUser(w, r)
	if !ok {
		return
	}

	var req CriteriaWeightsRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondBadRequest(w, r, "Invalid criteria weights format")
		return
	}
	raw := bytes.TrimSpace(req.CriteriaWeights)
	if len(raw) == 0 || raw[0] != '{' {
		respondBadRequest(w, r, "Invalid criteria weights format")
		return
	}

	patch := models.PreferencesPatch{}
	if err := json.Unmarshal(raw, &patch.CriteriaWeights); err != nil {
		respondBadRequest(w, r, "Invalid criteria weights format")
		return
	}
	if apiErr := validateRequest(&patch); apiErr != nil {
		respondValidation(w, r, apiErr)
		return
	}

	prefs, err := h.preferences.UpdatePreferences(r.Context(), uid, func(p *models.Preferences) error {
		p.SetCriteriaWeights(patch.CriteriaWeights)
		p.Sanitize()
		return nil
	})
	if err != nil {
		respondDatabaseError(w, r, err)
		return
	}
	respondOK(w, prefs)
}
