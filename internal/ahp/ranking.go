// CarSelect - AHP Car Recommendation Backend
// Copyright 2026 aterii
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/aterii/practice-4

package ahp

import (
	"math"
	"sort"
)

// Bounds holds min/max statistics of a candidate set.
type Bounds struct {
	MinPrice, MaxPrice                     float64
	MinPower, MaxPower                     float64
	MinFuelConsumption, MaxFuelConsumption float64
	MaxSafety, MaxComfort                  int
}

// Ranked is an Entity with its candidate-relative score.
type Ranked struct {
	Entity Entity
	Index  int
	Score  float64
}

// Normalize maps v into [0,1] relative to [min,max]. reverse flips the scale
// for lower-is-better criteria. Degenerate ranges yield 1.
func Normalize(v, min, max float64, reverse bool) float64 {
	if !isFinite(min) || !isFinite(max) || max == min {
		return 1
	}
	norm := (v - min) / (max - min)
	if reverse {
		return 1 - norm
	}
	return norm
}

// ComputeBounds collects the statistics of candidates. An empty set yields
// the zero ranges [0,1] and feature maxima of 1.
func ComputeBounds(candidates []Entity) Bounds {
	if len(candidates) == 0 {
		return Bounds{MaxPrice: 1, MaxPower: 1, MaxFuelConsumption: 1, MaxSafety: 1, MaxComfort: 1}
	}
	b := Bounds{
		MinPrice: math.Inf(1), MaxPrice: math.Inf(-1),
		MinPower: math.Inf(1), MaxPower: math.Inf(-1),
		MinFuelConsumption: math.Inf(1), MaxFuelConsumption: math.Inf(-1),
	}
	for _, c := range candidates {
		b.MinPrice = math.Min(b.MinPrice, c.Price)
		b.MaxPrice = math.Max(b.MaxPrice, c.Price)
		b.MinPower = math.Min(b.MinPower, c.Power)
		b.MaxPower = math.Max(b.MaxPower, c.Power)
		b.MinFuelConsumption = math.Min(b.MinFuelConsumption, c.FuelConsumption)
		b.MaxFuelConsumption = math.Max(b.MaxFuelConsumption, c.FuelConsumption)
		b.MaxSafety = max(b.MaxSafety, len(c.SafetyFeatures))
		b.MaxComfort = max(b.MaxComfort, len(c.ComfortFeatures))
	}
	return b
}

// CandidateScore scores e relative to the candidate set described by b.
func CandidateScore(e Entity, weights CriteriaWeights, b Bounds) float64 {
	var score float64
	if w, ok := weights.get(CriterionPrice); ok {
		score += w * Normalize(e.Price, b.MinPrice, b.MaxPrice, true)
	}
	if w, ok := weights.get(CriterionSafety); ok {
		score += w * float64(len(e.SafetyFeatures)) / float64(max(b.MaxSafety, 1))
	}
	if w, ok := weights.get(CriterionFuelConsumption); ok {
		score += w * Normalize(e.FuelConsumption, b.MinFuelConsumption, b.MaxFuelConsumption, true)
	}
	if w, ok := weights.get(CriterionComfort); ok {
		score += w * float64(len(e.ComfortFeatures)) / float64(max(b.MaxComfort, 1))
	}
	if w, ok := weights.get(CriterionPower); ok {
		score += w * Normalize(e.Power, b.MinPower, b.MaxPower, false)
	}
	return score
}

// Rank scores every candidate against the set's own bounds. With a complete
// weight set the result is ordered by score, best first; otherwise it falls
// back to cheapest first. Ties keep input order.
func Rank(candidates []Entity, weights CriteriaWeights) []Ranked {
	b := ComputeBounds(candidates)
	out := make([]Ranked, len(candidates))
	for i, c := range candidates {
		out[i] = Ranked{Entity: c, Index: i, Score: CandidateScore(c, weights, b)}
	}

	if weights.Complete() {
		sort.SliceStable(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	} else {
		sort.SliceStable(out, func(i, j int) bool { return out[i].Entity.Price < out[j].Entity.Price })
	}
	return out
}
