// CarSelect - AHP Car Recommendation Backend
// Copyright 2026 aterii
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/aterii/practice-4

package catalog

import (
	"bytes"
	"strconv"
	"strings"

	"github.com/goccy/go-json"

	"github.com/aterii/practice-4/internal/ahp"
)

// RawCar is a car as the upstream catalog serves it.
type RawCar struct {
	ID                int       `json:"id"`
	Brand             string    `json:"brand"`
	Model             string    `json:"model"`
	Year              int       `json:"year"`
	Price             flexFloat `json:"price"`
	BodyType          string    `json:"body_type"`
	FuelType          string    `json:"fuel_type"`
	Transmission      string    `json:"transmission"`
	DriveType         string    `json:"drive_type"`
	Power             flexFloat `json:"power"`
	FuelConsumption   flexFloat `json:"fuel_consumption"`
	SafetyFeatures    string    `json:"safety_features"`
	ComfortFeatures   string    `json:"comfort_features"`
	Capacity          int       `json:"capacity"`
	MaintenanceCost   flexFloat `json:"maintenance_cost"`
	AdditionalOptions string    `json:"additional_options"`
	ImageURL          string    `json:"image_url"`
	CreatedAt         string    `json:"created_at"`
}

// Car is the camelCase shape served to clients.
type Car struct {
	ID                int      `json:"id"`
	Brand             string   `json:"brand"`
	Model             string   `json:"model"`
	Year              int      `json:"year"`
	Price             float64  `json:"price"`
	BodyType          string   `json:"bodyType"`
	FuelType          string   `json:"fuelType"`
	Transmission      string   `json:"transmission"`
	DriveType         string   `json:"driveType"`
	Power             float64  `json:"power"`
	FuelConsumption   float64  `json:"fuelConsumption"`
	SafetyFeatures    []string `json:"safetyFeatures"`
	ComfortFeatures   []string `json:"comfortFeatures"`
	Capacity          int      `json:"capacity"`
	MaintenanceCost   float64  `json:"maintenanceCost"`
	AdditionalOptions []string `json:"additionalOptions"`
	ImageURL          string   `json:"imageUrl"`
	CreatedAt         string   `json:"createdAt"`
}

// ToCar maps the upstream representation to Car.
func (r *RawCar) ToCar() Car {
	return Car{
		ID:                r.ID,
		Brand:             r.Brand,
		Model:             r.Model,
		Year:              r.Year,
		Price:             float64(r.Price),
		BodyType:          r.BodyType,
		FuelType:          r.FuelType,
		Transmission:      r.Transmission,
		DriveType:         r.DriveType,
		Power:             float64(r.Power),
		FuelConsumption:   float64(r.FuelConsumption),
		SafetyFeatures:    splitFeatures(r.SafetyFeatures),
		ComfortFeatures:   splitFeatures(r.ComfortFeatures),
		Capacity:          r.Capacity,
		MaintenanceCost:   float64(r.MaintenanceCost),
		AdditionalOptions: splitFeatures(r.AdditionalOptions),
		ImageURL:          r.ImageURL,
		CreatedAt:         r.CreatedAt,
	}
}

// Entity returns the scorable view of c.
func (c *Car) Entity() ahp.Entity {
	return ahp.Entity{
		ID:              strconv.Itoa(c.ID),
		Price:           c.Price,
		Power:           c.Power,
		FuelConsumption: c.FuelConsumption,
		SafetyFeatures:  c.SafetyFeatures,
		ComfortFeatures: c.ComfortFeatures,
	}
}

// splitFeatures splits a comma separated list, trimming blanks. The result
// is never nil so it encodes as [].
func splitFeatures(s string) []string {
	out := []string{}
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// flexFloat decodes a JSON number, a numeric string or null.
type flexFloat float64

func (f *flexFloat) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*f = 0
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		s = strings.TrimSpace(s)
		if s == "" {
			*f = 0
			return nil
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return err
		}
		*f = flexFloat(v)
		return nil
	}
	var v float64
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	*f = flexFloat(v)
	return nil
}
