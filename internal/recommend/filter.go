// CarSelect - AHP Car Recommendation Backend
// Copyright 2026 aterii
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/aterii/practice-4

package recommend

import (
	"strings"

	"github.com/aterii/practice-4/internal/catalog"
	"github.com/aterii/practice-4/internal/models"
)

// Matches reports whether car satisfies the hard constraints of p. Zero or
// empty preference fields do not constrain.
func Matches(car *catalog.Car, p *models.Preferences) bool {
	if p == nil {
		return true
	}
	if p.MaxBudget > 0 && car.Price > p.MaxBudget {
		return false
	}
	if p.MinPower > 0 && car.Power < p.MinPower {
		return false
	}
	if p.MaxFuelConsumption > 0 && car.FuelConsumption > p.MaxFuelConsumption {
		return false
	}
	return sameOrAny(p.BodyType, car.BodyType) &&
		sameOrAny(p.FuelType, car.FuelType) &&
		sameOrAny(p.Transmission, car.Transmission) &&
		sameOrAny(p.DriveType, car.DriveType)
}

// Filter returns the cars matching p, keeping catalog order.
func Filter(cars []catalog.Car, p *models.Preferences) []catalog.Car {
	out := make([]catalog.Car, 0, len(cars))
	for i := range cars {
		if Matches(&cars[i], p) {
			out = append(out, cars[i])
		}
	}
	return out
}

func sameOrAny(want, got string) bool {
	want = strings.TrimSpace(want)
	return want == "" || strings.EqualFold(want, strings.TrimSpace(got))
}
