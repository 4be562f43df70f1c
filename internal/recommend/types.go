// CarSelect - AHP Car Recommendation Backend
// Copyright 2026 aterii
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/aterii/practice-4

package recommend

import (
	"context"

	"github.com/aterii/practice-4/internal/catalog"
	"github.com/aterii/practice-4/internal/models"
)

// CarSource lists the cars that can be recommended.
type CarSource interface {
	ListCars(ctx context.Context) ([]catalog.Car, error)
}

// PreferenceSource loads stored preferences. A nil result means none.
type PreferenceSource interface {
	GetPreferences(ctx context.Context, userID string) (*models.Preferences, error)
}

// RecordSource loads the stored AHP record of a user. A missing record is
// reported with an error matched by the engine's notFound func.
type RecordSource interface {
	GetByUser(ctx context.Context, userID string) (*models.AHPRecord, error)
}

// WeightsSource says where the ranking weights came from.
type WeightsSource string

const (
	WeightsFromPreferences WeightsSource = "preferences"
	WeightsFromAHP         WeightsSource = "ahp"
	WeightsNone            WeightsSource = "none"
)

// Request asks for the top cars of a user.
type Request struct {
	UserID string
	Limit  int
}

// ScoredCar is a recommended car. Score is relative to the other matching
// cars and lies in [0, 1] when a complete weight set was used. MatchScore
// measures the car against the user's own stated bounds instead.
type ScoredCar struct {
	Car        catalog.Car `json:"car"`
	Score      float64     `json:"score"`
	MatchScore float64     `json:"matchScore"`
	Rank       int         `json:"rank"`
}

// Response is a ranked recommendation list.
type Response struct {
	Items    []ScoredCar      `json:"items"`
	Metadata ResponseMetadata `json:"metadata"`
}

// ResponseMetadata describes how the list was produced.
type ResponseMetadata struct {
	TotalCandidates int                `json:"totalCandidates"`
	Matching        int                `json:"matching"`
	WeightsSource   WeightsSource      `json:"weightsSource"`
	Weights         map[string]float64 `json:"weights,omitempty"`
	LatencyMS       int64              `json:"latencyMs"`
}
