// CarSelect - AHP Car Recommendation Backend
// Copyright 2026 aterii
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/aterii/practice-4

package models

import (
	"math"
	"sort"
	"strings"
	"time"
)

// Preferences are a user's stated requirements for a car.
type Preferences struct {
	UserID             string             `json:"userId"`
	UsagePurpose       []string           `json:"usagePurpose"`
	MaxBudget          float64            `json:"maxBudget"`
	BodyType           string             `json:"bodyType"`
	FuelType           string             `json:"fuelType"`
	Transmission       string             `json:"transmission"`
	DriveType          string             `json:"driveType"`
	MinPower           float64            `json:"minPower"`
	MaxFuelConsumption float64            `json:"maxFuelConsumption"`
	SafetyFeatures     map[string]bool    `json:"safetyFeatures"`
	ComfortFeatures    map[string]bool    `json:"comfortFeatures"`
	CriteriaWeights    map[string]float64 `json:"criteriaWeights"`
	UpdatedAt          time.Time          `json:"updatedAt"`
}

// PreferencesPatch carries the fields of a partial update. Nil fields are
// left unchanged.
type PreferencesPatch struct {
	UsagePurpose       *[]string           `json:"usagePurpose,omitempty"`
	MaxBudget          *float64            `json:"maxBudget,omitempty"`
	BodyType           *string             `json:"bodyType,omitempty" validate:"omitempty,max=64"`
	FuelType           *string             `json:"fuelType,omitempty" validate:"omitempty,max=64"`
	Transmission       *string             `json:"transmission,omitempty" validate:"omitempty,max=64"`
	DriveType          *string             `json:"driveType,omitempty" validate:"omitempty,max=64"`
	MinPower           *float64            `json:"minPower,omitempty"`
	MaxFuelConsumption *float64            `json:"maxFuelConsumption,omitempty"`
	SafetyFeatures     map[string]bool     `json:"safetyFeatures,omitempty"`
	ComfortFeatures    map[string]bool     `json:"comfortFeatures,omitempty"`
	CriteriaWeights    map[string]float64  `json:"criteriaWeights,omitempty" validate:"omitempty,dive,keys,criterion,endkeys,gte=0"`
}

// DefaultPreferences returns the empty preference set of a user who has not
// saved anything yet.
func DefaultPreferences(userID string) *Preferences {
	return &Preferences{
		UserID:          userID,
		UsagePurpose:    []string{},
		SafetyFeatures:  map[string]bool{},
		ComfortFeatures: map[string]bool{},
	}
}

// Apply merges the non-nil fields of patch into p. Numbers are clamped at 0
// and strings are trimmed. CriteriaWeights is only applied when
// withWeights is set; the partial update endpoint ignores it.
func (p *Preferences) Apply(patch *PreferencesPatch, withWeights bool) {
	if patch.UsagePurpose != nil {
		p.UsagePurpose = append([]string{}, (*patch.UsagePurpose)...)
	}
	if patch.MaxBudget != nil {
		p.MaxBudget = clampNonNegative(*patch.MaxBudget)
	}
	if patch.BodyType != nil {
		p.BodyType = strings.TrimSpace(*patch.BodyType)
	}
	if patch.FuelType != nil {
		p.FuelType = strings.TrimSpace(*patch.FuelType)
	}
	if patch.Transmission != nil {
		p.Transmission = strings.TrimSpace(*patch.Transmission)
	}
	if patch.DriveType != nil {
		p.DriveType = strings.TrimSpace(*patch.DriveType)
	}
	if patch.MinPower != nil {
		p.MinPower = clampNonNegative(*patch.MinPower)
	}
	if patch.MaxFuelConsumption != nil {
		p.MaxFuelConsumption = clampNonNegative(*patch.MaxFuelConsumption)
	}
	if patch.SafetyFeatures != nil {
		p.SafetyFeatures = copyFlags(patch.SafetyFeatures)
	}
	if patch.ComfortFeatures != nil {
		p.ComfortFeatures = copyFlags(patch.ComfortFeatures)
	}
	if withWeights && patch.CriteriaWeights != nil {
		p.SetCriteriaWeights(patch.CriteriaWeights)
	}
}

// SetCriteriaWeights replaces the stored criteria weights. An empty map
// clears them.
func (p *Preferences) SetCriteriaWeights(w map[string]float64) {
	if len(w) == 0 {
		p.CriteriaWeights = nil
		return
	}
	p.CriteriaWeights = make(map[string]float64, len(w))
	for k, v := range w {
		p.CriteriaWeights[k] = v
	}
}

// Sanitize fills nil collections and resets any non-finite or negative
// number to 0.
func (p *Preferences) Sanitize() {
	if p.UsagePurpose == nil {
		p.UsagePurpose = []string{}
	}
	if p.SafetyFeatures == nil {
		p.SafetyFeatures = map[string]bool{}
	}
	if p.ComfortFeatures == nil {
		p.ComfortFeatures = map[string]bool{}
	}
	p.MaxBudget = clampNonNegative(p.MaxBudget)
	p.MinPower = clampNonNegative(p.MinPower)
	p.MaxFuelConsumption = clampNonNegative(p.MaxFuelConsumption)
	p.BodyType = strings.TrimSpace(p.BodyType)
	p.FuelType = strings.TrimSpace(p.FuelType)
	p.Transmission = strings.TrimSpace(p.Transmission)
	p.DriveType = strings.TrimSpace(p.DriveType)
}

// DesiredSafety lists the safety features flagged true, sorted.
func (p *Preferences) DesiredSafety() []string {
	return enabledFlags(p.SafetyFeatures)
}

// DesiredComfort lists the comfort features flagged true, sorted.
func (p *Preferences) DesiredComfort() []string {
	return enabledFlags(p.ComfortFeatures)
}

func clampNonNegative(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}

func copyFlags(in map[string]bool) map[string]bool {
	out := make(map[string]bool, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

func enabledFlags(m map[string]bool) []string {
	out := make([]string, 0, len(m))
	for k, v := range m {
		if v {
			out = append(out, k)
		}
	}
	sort.Strings(out)
	return out
}
