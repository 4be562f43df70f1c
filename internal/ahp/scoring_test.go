// CarSelect - AHP Car Recommendation Backend
// Copyright 2026 aterii
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/aterii/practice-4

package ahp_test

import (
	"math"
	"testing"

	"github.com/aterii/practice-4/internal/ahp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScoreEntity(t *testing.T) {
	t.Parallel()

	car := ahp.Entity{
		Price:           1_500_000,
		Power:           150,
		FuelConsumption: 6,
		SafetyFeatures:  []string{"abs", "esp", "airbags"},
		ComfortFeatures: []string{"climate"},
	}
	ref := ahp.Reference{
		MaxBudget:          2_000_000,
		MinPower:           100,
		MaxFuelConsumption: 8,
		SafetyFeatures:     []string{"abs", "esp", "isofix", "airbags"},
		ComfortFeatures:    []string{"climate", "heatedSeats"},
	}

	tests := []struct {
		name    string
		weights ahp.CriteriaWeights
		ref     ahp.Reference
		want    float64
	}{
		{
			name:    "price only",
			weights: ahp.CriteriaWeights{ahp.CriterionPrice: 1},
			ref:     ref,
			want:    0.25,
		},
		{
			name:    "power only",
			weights: ahp.CriteriaWeights{ahp.CriterionPower: 0.5},
			ref:     ref,
			want:    0.75,
		},
		{
			name:    "fuel only",
			weights: ahp.CriteriaWeights{ahp.CriterionFuelConsumption: 1},
			ref:     ref,
			want:    0.25,
		},
		{
			name: "features",
			weights: ahp.CriteriaWeights{
				ahp.CriterionSafety:  0.4,
				ahp.CriterionComfort: 0.6,
			},
			ref:  ref,
			want: 0.4*0.75 + 0.6*0.5,
		},
		{
			name: "all criteria",
			weights: ahp.CriteriaWeights{
				ahp.CriterionPrice:           0.2,
				ahp.CriterionPower:           0.2,
				ahp.CriterionFuelConsumption: 0.2,
				ahp.CriterionSafety:          0.2,
				ahp.CriterionComfort:         0.2,
			},
			ref:  ref,
			want: 0.2*0.25 + 0.2*1.5 + 0.2*0.25 + 0.2*0.75 + 0.2*0.5,
		},
		{
			name:    "missing bounds contribute nothing",
			weights: ahp.CriteriaWeights{ahp.CriterionPrice: 0.5, ahp.CriterionPower: 0.3, ahp.CriterionSafety: 0.2},
			ref:     ahp.Reference{},
			want:    0,
		},
		{
			name:    "missing weights contribute nothing",
			weights: ahp.CriteriaWeights{ahp.CriterionPrice: 0, ahp.CriterionPower: math.NaN()},
			ref:     ref,
			want:    0,
		},
		{
			name:    "nil weights",
			weights: nil,
			ref:     ref,
			want:    0,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := ahp.ScoreEntity(car, tt.weights, tt.ref)
			assert.InDelta(t, tt.want, got, 1e-12)
		})
	}
}

func TestCriteriaWeightsFrom(t *testing.T) {
	t.Parallel()

	cw, err := ahp.CriteriaWeightsFrom(ahp.Weights{0.4, 0.2, 0.2, 0.1, 0.1})
	require.NoError(t, err)
	assert.Equal(t, 0.4, cw[ahp.CriterionPrice])
	assert.Equal(t, 0.2, cw[ahp.CriterionSafety])
	assert.Equal(t, 0.2, cw[ahp.CriterionFuelConsumption])
	assert.Equal(t, 0.1, cw[ahp.CriterionComfort])
	assert.Equal(t, 0.1, cw[ahp.CriterionPower])
	assert.True(t, cw.Complete())

	_, err = ahp.CriteriaWeightsFrom(ahp.Weights{0.5, 0.5})
	assert.ErrorIs(t, err, ahp.ErrInvalidInput)
}

func TestIsCriterion(t *testing.T) {
	t.Parallel()
	for _, c := range ahp.CriteriaOrder {
		assert.True(t, ahp.IsCriterion(string(c)))
	}
	assert.False(t, ahp.IsCriterion("colour"))
	assert.False(t, ahp.IsCriterion(""))
}

func TestNormalize(t *testing.T) {
	t.Parallel()
	assert.Equal(t, 0.5, ahp.Normalize(5, 0, 10, false))
	assert.Equal(t, 0.5, ahp.Normalize(5, 0, 10, true))
	assert.Equal(t, 0.25, ahp.Normalize(7.5, 0, 10, true))
	assert.Equal(t, 1.0, ahp.Normalize(3, 3, 3, false))
	assert.Equal(t, 1.0, ahp.Normalize(3, math.Inf(1), math.Inf(-1), true))
}

func TestRank(t *testing.T) {
	t.Parallel()

	cars := []ahp.Entity{
		{ID: "cheap", Price: 1_000_000, Power: 100, FuelConsumption: 6, SafetyFeatures: []string{"abs"}},
		{ID: "fast", Price: 3_000_000, Power: 300, FuelConsumption: 12, SafetyFeatures: []string{"abs", "esp"}, ComfortFeatures: []string{"climate"}},
		{ID: "middle", Price: 2_000_000, Power: 200, FuelConsumption: 9},
	}

	t.Run("complete weights rank by score", func(t *testing.T) {
		t.Parallel()
		cw, err := ahp.CriteriaWeightsFrom(ahp.Weights{0.6, 0.1, 0.1, 0.1, 0.1})
		require.NoError(t, err)

		ranked := ahp.Rank(cars, cw)
		require.Len(t, ranked, 3)
		assert.Equal(t, "cheap", ranked[0].Entity.ID)
		// cheap: 0.6*1 + 0.1*0.5 + 0.1*1 + 0 + 0.1*0
		assert.InDelta(t, 0.75, ranked[0].Score, 1e-12)
		assert.Equal(t, 0, ranked[0].Index)
		for i := 1; i < len(ranked); i++ {
			assert.GreaterOrEqual(t, ranked[i-1].Score, ranked[i].Score)
		}
	})

	t.Run("power heavy weights favour power", func(t *testing.T) {
		t.Parallel()
		cw, err := ahp.CriteriaWeightsFrom(ahp.Weights{0.05, 0.05, 0.05, 0.05, 0.8})
		require.NoError(t, err)
		ranked := ahp.Rank(cars, cw)
		assert.Equal(t, "fast", ranked[0].Entity.ID)
	})

	t.Run("incomplete weights fall back to price", func(t *testing.T) {
		t.Parallel()
		ranked := ahp.Rank(cars, ahp.CriteriaWeights{ahp.CriterionPower: 1})
		ids := []string{ranked[0].Entity.ID, ranked[1].Entity.ID, ranked[2].Entity.ID}
		assert.Equal(t, []string{"cheap", "middle", "fast"}, ids)
	})

	t.Run("empty set", func(t *testing.T) {
		t.Parallel()
		assert.Empty(t, ahp.Rank(nil, nil))
	})
}
