// CarSelect - AHP Car Recommendation Backend
// Copyright 2026 aterii
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/aterii/practice-4

package ahp

import (
	"fmt"
	"math"
)

// Criterion names a car evaluation criterion.
type Criterion string

const (
	CriterionPrice           Criterion = "price"
	CriterionPower           Criterion = "power"
	CriterionFuelConsumption Criterion = "fuelConsumption"
	CriterionSafety          Criterion = "safety"
	CriterionComfort         Criterion = "comfort"
)

// CriteriaOrder is the row order of the 5×5 car comparison matrix built by
// the comparison page: price, safety, economy, comfort, capacity.
var CriteriaOrder = []Criterion{
	CriterionPrice,
	CriterionSafety,
	CriterionFuelConsumption,
	CriterionComfort,
	CriterionPower,
}

// IsCriterion reports whether name is a known criterion.
func IsCriterion(name string) bool {
	for _, c := range CriteriaOrder {
		if string(c) == name {
			return true
		}
	}
	return false
}

// CriteriaWeights maps criteria to their weights. Absent criteria weigh 0.
type CriteriaWeights map[Criterion]float64

// CriteriaWeightsFrom labels w with CriteriaOrder. w must have one entry per
// criterion.
func CriteriaWeightsFrom(w Weights) (CriteriaWeights, error) {
	if len(w) != len(CriteriaOrder) {
		return nil, fmt.Errorf("%w: %d weights, want %d", ErrInvalidInput, len(w), len(CriteriaOrder))
	}
	cw := make(CriteriaWeights, len(w))
	for i, c := range CriteriaOrder {
		cw[c] = w[i]
	}
	return cw, nil
}

// Complete reports whether every criterion has a usable weight.
func (cw CriteriaWeights) Complete() bool {
	for _, c := range CriteriaOrder {
		if _, ok := cw.get(c); !ok {
			return false
		}
	}
	return true
}

func (cw CriteriaWeights) get(c Criterion) (float64, bool) {
	v, ok := cw[c]
	if !ok || !isFinite(v) || v <= 0 {
		return 0, false
	}
	return v, true
}

// Entity is the scorable view of a car.
type Entity struct {
	ID              string
	Price           float64
	Power           float64
	FuelConsumption float64
	SafetyFeatures  []string
	ComfortFeatures []string
}

// Reference carries the user-stated bounds an Entity is scored against.
type Reference struct {
	MaxBudget          float64
	MinPower           float64
	MaxFuelConsumption float64
	SafetyFeatures     []string
	ComfortFeatures    []string
}

// ScoreEntity returns the weighted sum of the per-criterion scores of e:
//
//	price            1 - price/maxBudget
//	power            power/minPower
//	fuelConsumption  1 - fuelConsumption/maxFuelConsumption
//	safety, comfort  share of desired features that e has
//
// A term whose weight or bound is missing contributes 0.
func ScoreEntity(e Entity, weights CriteriaWeights, ref Reference) float64 {
	var score float64

	if w, ok := weights.get(CriterionPrice); ok && positive(ref.MaxBudget) {
		score += w * (1 - e.Price/ref.MaxBudget)
	}
	if w, ok := weights.get(CriterionPower); ok && positive(ref.MinPower) {
		score += w * (e.Power / ref.MinPower)
	}
	if w, ok := weights.get(CriterionFuelConsumption); ok && positive(ref.MaxFuelConsumption) {
		score += w * (1 - e.FuelConsumption/ref.MaxFuelConsumption)
	}
	if w, ok := weights.get(CriterionSafety); ok && len(ref.SafetyFeatures) > 0 {
		score += w * coverage(e.SafetyFeatures, ref.SafetyFeatures)
	}
	if w, ok := weights.get(CriterionComfort); ok && len(ref.ComfortFeatures) > 0 {
		score += w * coverage(e.ComfortFeatures, ref.ComfortFeatures)
	}

	if !isFinite(score) {
		return 0
	}
	return score
}

// coverage returns the fraction of desired that appears in have.
func coverage(have, desired []string) float64 {
	set := make(map[string]struct{}, len(have))
	for _, f := range have {
		set[f] = struct{}{}
	}
	var hits int
	for _, f := range desired {
		if _, ok := set[f]; ok {
			hits++
		}
	}
	return float64(hits) / float64(len(desired))
}

func positive(v float64) bool {
	return v > 0 && !math.IsInf(v, 1)
}
