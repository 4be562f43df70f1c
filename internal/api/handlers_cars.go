// CarSelect - AHP Car Recommendation Backend
// Copyright 2026 aterii
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/aterii/practice-4

package api

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/aterii/practice-4/internal/catalog"
	"github.com/aterii/practice-4/internal/logging"
)

// ListCarsRaw proxies the upstream car list unchanged.
func (h *Handler) ListCarsRaw(w http.ResponseWriter, r *http.Request) {
	body, err := h.catalog.ListCarsRaw(r.Context())
	if err != nil {
		respondCatalogError(w, r, err)
		return
	}
	writeRaw(w, body)
}

// GetCarRaw proxies one upstream car unchanged.
func (h *Handler) GetCarRaw(w http.ResponseWriter, r *http.Request) {
	body, err := h.catalog.GetCarRaw(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondCatalogError(w, r, err)
		return
	}
	writeRaw(w, body)
}

// ListExternalCars returns the catalog mapped to the frontend shape.
func (h *Handler) ListExternalCars(w http.ResponseWriter, r *http.Request) {
	cars, err := h.catalog.ListCars(r.Context())
	if err != nil {
		respondCatalogError(w, r, err)
		return
	}
	if cars == nil {
		cars = []catalog.Car{}
	}
	respondOK(w, cars)
}

// GetExternalCar returns one mapped car.
func (h *Handler) GetExternalCar(w http.ResponseWriter, r *http.Request) {
	car, err := h.catalog.GetCar(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondCatalogError(w, r, err)
		return
	}
	respondOK(w, car)
}

// respondCatalogError maps catalog failures: unknown car 404, open breaker
// 503, anything else 502.
func respondCatalogError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, catalog.ErrCarNotFound):
		respondNotFound(w, r, "Car not found")
	case errors.Is(err, catalog.ErrUnavailable):
		logging.Ctx(r.Context()).Warn().Err(err).Msg("Car catalog unavailable")
		respondError(w, r, http.StatusServiceUnavailable, ErrCodeServiceUnavailable,
			"Car catalog is temporarily unavailable", nil)
	default:
		logging.Ctx(r.Context()).Error().Err(err).Msg("Car catalog request failed")
		respondError(w, r, http.StatusBadGateway, ErrCodeExternalServiceFail,
			"Failed to fetch cars from remote server", nil)
	}
}

func writeRaw(w http.ResponseWriter, body []byte) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		logging.Debug().Err(err).Msg("Failed to write proxied response")
	}
}
