// CarSelect - AHP Car Recommendation Backend
// Copyright 2026 aterii
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/aterii/practice-4

package api

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/goccy/go-json"

	"github.com/aterii/practice-4/internal/validation"
)

const maxBodyBytes = 1 << 20

var errEmptyBody = errors.New("request body is empty")

// RegisterRequest is the body of POST /api/auth/register.
type RegisterRequest struct {
	Email    string `json:"email" validate:"omitempty,email,max=254"`
	Password string `json:"password" validate:"omitempty,max=72"`
	Name     string `json:"name" validate:"omitempty,max=100"`
}

// LoginRequest is the body of POST /api/auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse is returned by register and login.
type AuthResponse struct {
	User  interface{} `json:"user"`
	Token string      `json:"token"`
}

// CreateComparisonRequest is the body of POST /api/comparisons.
type CreateComparisonRequest struct {
	CarID *int     `json:"carId" validate:"required,gt=0"`
	Score *float64 `json:"score" validate:"required"`
}

// UpdateComparisonRequest is the body of PUT /api/comparisons/{id}.
type UpdateComparisonRequest struct {
	Score *float64 `json:"score" validate:"required"`
}

// AHPMatrixRequest is the body of POST /api/ahp/comparisons. Matrix is kept
// raw so a non-array value can be told apart from malformed JSON.
type AHPMatrixRequest struct {
	Matrix json.RawMessage `json:"matrix"`
}

// AHPResult is the response of POST /api/ahp/comparisons.
type AHPResult struct {
	Weights      []float64 `json:"weights"`
	CR           float64   `json:"CR"`
	IsConsistent bool      `json:"isConsistent"`
}

// AHPRecordResponse is the response of GET /api/ahp/comparisons.
type AHPRecordResponse struct {
	Matrix  [][]float64 `json:"matrix"`
	Weights []float64   `json:"weights"`
	CR      float64     `json:"CR"`
}

// CriteriaWeightsRequest is the body of PUT /api/preferences/weights.
type CriteriaWeightsRequest struct {
	CriteriaWeights json.RawMessage `json:"criteriaWeights"`
}

// decodeJSON reads a size limited JSON body into v.
func decodeJSON(w http.ResponseWriter, r *http.Request, v interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return errEmptyBody
		}
		return fmt.Errorf("invalid JSON body: %w", err)
	}
	return nil
}

// validateRequest runs the struct validator and converts failures to the
// API error shape.
func validateRequest(v interface{}) *APIError {
	verr := validation.ValidateStruct(v)
	if verr == nil {
		return nil
	}
	apiErr := verr.ToAPIError()
	return &APIError{
		Code:    apiErr.Code,
		Message: apiErr.Message,
		Details: apiErr.Details,
	}
}

// respondValidation writes a 400 for a failed validateRequest.
func respondValidation(w http.ResponseWriter, r *http.Request, apiErr *APIError) {
	respondError(w, r, http.StatusBadRequest, apiErr.Code, apiErr.Message, apiErr.Details)
}
