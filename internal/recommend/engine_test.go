// CarSelect - AHP Car Recommendation Backend
// Copyright 2026 aterii
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/aterii/practice-4

package recommend

import (
	"context"
	"errors"
	"testing"

	"github.com/aterii/practice-4/internal/catalog"
	"github.com/aterii/practice-4/internal/models"
)

var errMissing = errors.New("missing")

type mockSources struct {
	cars    []catalog.Car
	prefs   *models.Preferences
	record  *models.AHPRecord
	carsErr error
}

func (m *mockSources) ListCars(ctx context.Context) ([]catalog.Car, error) {
	if m.carsErr != nil {
		return nil, m.carsErr
	}
	return m.cars, nil
}

func (m *mockSources) GetPreferences(ctx context.Context, userID string) (*models.Preferences, error) {
	return m.prefs, nil
}

func (m *mockSources) GetByUser(ctx context.Context, userID string) (*models.AHPRecord, error) {
	if m.record == nil {
		return nil, errMissing
	}
	return m.record, nil
}

func testCars() []catalog.Car {
	return []catalog.Car{
		{ID: 1, Price: 30000, Power: 150, FuelConsumption: 7, BodyType: "sedan", SafetyFeatures: []string{"abs"}, ComfortFeatures: []string{}},
		{ID: 2, Price: 20000, Power: 100, FuelConsumption: 5, BodyType: "hatchback", SafetyFeatures: []string{}, ComfortFeatures: []string{}},
		{ID: 3, Price: 50000, Power: 300, FuelConsumption: 10, BodyType: "sedan", SafetyFeatures: []string{"abs", "esp"}, ComfortFeatures: []string{"climate"}},
	}
}

func newTestEngine(t *testing.T, src *mockSources) *Engine {
	t.Helper()
	e, err := NewEngine(DefaultConfig(), src, src, src, WithNotFound(func(err error) bool {
		return errors.Is(err, errMissing)
	}))
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}
	return e
}

func TestRecommend_NoWeightsSortsByPrice(t *testing.T) {
	e := newTestEngine(t, &mockSources{cars: testCars()})

	resp, err := e.Recommend(context.Background(), Request{UserID: "u1"})
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}

	if resp.Metadata.WeightsSource != WeightsNone {
		t.Errorf("WeightsSource = %q, want none", resp.Metadata.WeightsSource)
	}
	want := []int{2, 1, 3}
	for i, id := range want {
		if resp.Items[i].Car.ID != id {
			t.Errorf("item %d = car %d, want car %d", i, resp.Items[i].Car.ID, id)
		}
		if resp.Items[i].Rank != i+1 {
			t.Errorf("item %d rank = %d", i, resp.Items[i].Rank)
		}
	}
}

func TestRecommend_PowerHeavyWeightsFromRecord(t *testing.T) {
	// CriteriaOrder: price, safety, fuelConsumption, comfort, power.
	e := newTestEngine(t, &mockSources{
		cars:   testCars(),
		record: &models.AHPRecord{Weights: []float64{0.05, 0.05, 0.05, 0.05, 0.8}},
	})

	resp, err := e.Recommend(context.Background(), Request{UserID: "u1"})
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	if resp.Metadata.WeightsSource != WeightsFromAHP {
		t.Errorf("WeightsSource = %q, want ahp", resp.Metadata.WeightsSource)
	}
	if resp.Items[0].Car.ID != 3 {
		t.Errorf("top car = %d, want 3", resp.Items[0].Car.ID)
	}
	for i := 1; i < len(resp.Items); i++ {
		if resp.Items[i].Score > resp.Items[i-1].Score {
			t.Errorf("scores not descending at %d", i)
		}
	}
}

func TestRecommend_PreferencesFilterAndWeights(t *testing.T) {
	prefs := models.DefaultPreferences("u1")
	prefs.BodyType = "Sedan"
	prefs.MaxBudget = 40000
	prefs.CriteriaWeights = map[string]float64{
		"price": 0.2, "power": 0.2, "fuelConsumption": 0.2, "safety": 0.2, "comfort": 0.2,
	}

	e := newTestEngine(t, &mockSources{
		cars:   testCars(),
		prefs:  prefs,
		record: &models.AHPRecord{Weights: []float64{0.05, 0.05, 0.05, 0.05, 0.8}},
	})

	resp, err := e.Recommend(context.Background(), Request{UserID: "u1"})
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	if resp.Metadata.WeightsSource != WeightsFromPreferences {
		t.Errorf("WeightsSource = %q, want preferences", resp.Metadata.WeightsSource)
	}
	if resp.Metadata.TotalCandidates != 3 || resp.Metadata.Matching != 1 {
		t.Errorf("candidates/matching = %d/%d, want 3/1", resp.Metadata.TotalCandidates, resp.Metadata.Matching)
	}
	if len(resp.Items) != 1 || resp.Items[0].Car.ID != 1 {
		t.Fatalf("items = %+v, want only car 1", resp.Items)
	}
	// Only the budget bound is set: 0.2 * (1 - 30000/40000).
	if got := resp.Items[0].MatchScore; got < 0.0499 || got > 0.0501 {
		t.Errorf("MatchScore = %v, want 0.05", got)
	}
}

func TestRecommend_Limit(t *testing.T) {
	e := newTestEngine(t, &mockSources{cars: testCars()})

	resp, err := e.Recommend(context.Background(), Request{UserID: "u1", Limit: 2})
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	if len(resp.Items) != 2 {
		t.Errorf("len(items) = %d, want 2", len(resp.Items))
	}
}

func TestRecommend_CatalogError(t *testing.T) {
	e := newTestEngine(t, &mockSources{carsErr: catalog.ErrUnavailable})

	_, err := e.Recommend(context.Background(), Request{UserID: "u1"})
	if !errors.Is(err, catalog.ErrUnavailable) {
		t.Errorf("error = %v, want ErrUnavailable", err)
	}
	if !errors.Is(err, ErrCatalog) {
		t.Errorf("error = %v, want ErrCatalog", err)
	}
}

func TestMatches(t *testing.T) {
	car := catalog.Car{Price: 25000, Power: 120, FuelConsumption: 6, BodyType: "SUV", FuelType: "diesel", Transmission: "manual", DriveType: "awd"}

	tests := []struct {
		name  string
		prefs *models.Preferences
		want  bool
	}{
		{"nil prefs", nil, true},
		{"empty prefs", &models.Preferences{}, true},
		{"over budget", &models.Preferences{MaxBudget: 20000}, false},
		{"within budget", &models.Preferences{MaxBudget: 25000}, true},
		{"too weak", &models.Preferences{MinPower: 150}, false},
		{"too thirsty", &models.Preferences{MaxFuelConsumption: 5}, false},
		{"body type case-insensitive", &models.Preferences{BodyType: "suv"}, true},
		{"wrong fuel", &models.Preferences{FuelType: "petrol"}, false},
		{"wrong transmission", &models.Preferences{Transmission: "automatic"}, false},
		{"matching drive", &models.Preferences{DriveType: " AWD "}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Matches(&car, tt.prefs); got != tt.want {
				t.Errorf("Matches() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestConfigValidate(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Errorf("DefaultConfig().Validate() = %v", err)
	}
	if err := (&Config{DefaultLimit: 0, MaxLimit: 10}).Validate(); err == nil {
		t.Error("expected error for zero default limit")
	}
	if err := (&Config{DefaultLimit: 20, MaxLimit: 10}).Validate(); err == nil {
		t.Error("expected error for max < default")
	}

	cfg := DefaultConfig()
	if got := cfg.clampLimit(0); got != 10 {
		t.Errorf("clampLimit(0) = %d", got)
	}
	if got := cfg.clampLimit(1000); got != 100 {
		t.Errorf("clampLimit(1000) = %d", got)
	}
}
