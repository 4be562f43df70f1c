// CarSelect - AHP Car Recommendation Backend
// Copyright 2026 aterii
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/aterii/practice-4

package models

import "time"

// Comparison is a car the user placed on their comparison list, with the
// score it was given at the time.
type Comparison struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	CarID     int       `json:"carId"`
	Score     float64   `json:"score"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// AHPRecord is the last pairwise comparison matrix a user submitted together
// with the derived weights. One record per user.
type AHPRecord struct {
	UserID    string      `json:"userId"`
	Matrix    [][]float64 `json:"matrix"`
	Weights   []float64   `json:"weights"`
	CR        float64     `json:"CR"`
	UpdatedAt time.Time   `json:"updatedAt"`
}
