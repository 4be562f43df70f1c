// CarSelect - AHP Car Recommendation Backend
// Copyright 2026 aterii
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/aterii/practice-4

package api

import (
	"bytes"
	"errors"
	"net/http"
	"time"

	"github.com/goccy/go-json"

	"github.com/aterii/practice-4/internal/ahp"
	"github.com/aterii/practice-4/internal/logging"
	"github.com/aterii/practice-4/internal/metrics"
	"github.com/aterii/practice-4/internal/models"
	"github.com/aterii/practice-4/internal/store"
)

// SaveAHPComparison evaluates a pairwise comparison matrix and stores it as
// the user's current record. A 5×5 matrix also becomes the user's criteria
// weights in CriteriaOrder.
//
// The optional method query parameter selects normalization (default) or
// power.
func (h *Handler) SaveAHPComparison(w http.ResponseWriter, r *http.Request) {
	uid, ok := requireUser(w, r)
	if !ok {
		return
	}

	var req AHPMatrixRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondBadRequest(w, r, "Matrix is required")
		return
	}
	raw := bytes.TrimSpace(req.Matrix)
	if len(raw) == 0 || raw[0] != '[' {
		respondBadRequest(w, r, "Matrix is required")
		return
	}
	var matrix ahp.Matrix
	if err := json.Unmarshal(raw, &matrix); err != nil {
		metrics.RecordAHPRejected()
		respondError(w, r, http.StatusBadRequest, ErrCodeInvalidMatrix,
			"Matrix must be an array of numeric rows", nil)
		return
	}

	method, err := ahp.ParseMethod(r.URL.Query().Get("method"))
	if err != nil {
		respondBadRequest(w, r, "method must be normalization or power")
		return
	}

	res, err := ahp.EvaluateWith(matrix, method)
	if err != nil {
		if errors.Is(err, ahp.ErrInvalidInput) || errors.Is(err, ahp.ErrNumericDegeneracy) {
			metrics.RecordAHPRejected()
			respondError(w, r, http.StatusBadRequest, ErrCodeInvalidMatrix, err.Error(), nil)
			return
		}
		respondInternal(w, r, "Failed to evaluate matrix", err)
		return
	}
	metrics.RecordAHPEvaluation(matrix.Size(), res.CR, res.IsConsistent)

	ctx := r.Context()
	rec := &models.AHPRecord{
		UserID:    uid,
		Matrix:    matrix,
		Weights:   res.Weights,
		CR:        res.CR,
		UpdatedAt: time.Now().UTC(),
	}
	if err := h.ahp.Upsert(ctx, uid, rec); err != nil {
		respondDatabaseError(w, r, err)
		return
	}

	if cw, err := ahp.CriteriaWeightsFrom(res.Weights); err == nil {
		_, err := h.preferences.UpdatePreferences(ctx, uid, func(p *models.Preferences) error {
			p.SetCriteriaWeights(criteriaMap(cw))
			return nil
		})
		if err != nil {
			// The record is already stored; the weights follow on the next save.
			logging.Ctx(ctx).Warn().Err(err).Msg("Failed to copy AHP weights to preferences")
		}
	}

	logging.Ctx(ctx).Debug().
		Int("size", matrix.Size()).
		Str("method", string(method)).
		Float64("cr", res.CR).
		Bool("consistent", res.IsConsistent).
		Msg("AHP matrix evaluated")

	respondOK(w, &AHPResult{
		Weights:      res.Weights,
		CR:           res.CR,
		IsConsistent: res.IsConsistent,
	})
}

// GetAHPComparison returns the stored matrix and its results.
func (h *Handler) GetAHPComparison(w http.ResponseWriter, r *http.Request) {
	uid, ok := requireUser(w, r)
	if !ok {
		return
	}
	rec, err := h.ahp.GetByUser(r.Context(), uid)
	if errors.Is(err, store.ErrNotFound) {
		respondNotFound(w, r, "No comparison found")
		return
	}
	if err != nil {
		respondDatabaseError(w, r, err)
		return
	}
	respondOK(w, &AHPRecordResponse{
		Matrix:  rec.Matrix,
		Weights: rec.Weights,
		CR:      rec.CR,
	})
}

func criteriaMap(cw ahp.CriteriaWeights) map[string]float64 {
	out := make(map[string]float64, len(cw))
	for c, v := range cw {
		out[string(c)] = v
	}
	return out
}
