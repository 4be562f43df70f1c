// CarSelect - AHP Car Recommendation Backend
// Copyright 2026 aterii
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/aterii/practice-4

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/aterii/practice-4/internal/auth"
	"github.com/aterii/practice-4/internal/middleware"
)

// NewRouter wires every route of the API.
func NewRouter(h *Handler, mw *ChiMiddleware) http.Handler {
	authn := auth.NewMiddleware(h.jwt, respondAuthError)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.AccessLog(middleware.DefaultSlowThreshold))
	r.Use(mw.CORS())
	r.Use(middleware.PrometheusMetrics)
	r.Use(middleware.Compression)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		respondNotFound(w, r, "Route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		respondError(w, r, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "Method not allowed", nil)
	})

	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", h.Health)

		r.Route("/auth", func(r chi.Router) {
			r.Use(mw.RateLimitAuth())
			r.Post("/register", h.Register)
			r.Post("/login", h.Login)
		})

		r.Group(func(r chi.Router) {
			r.Use(mw.RateLimit())

			r.Get("/cars", h.ListCarsRaw)
			r.Get("/cars/{id}", h.GetCarRaw)
			r.Get("/external-cars", h.ListExternalCars)
			r.Get("/external-cars/{id}", h.GetExternalCar)

			r.Group(func(r chi.Router) {
				r.Use(authn.Authenticate)

				r.Get("/preferences", h.GetPreferences)
				r.Post("/preferences", h.PatchPreferences)
				r.Put("/preferences", h.MergePreferences)
				r.Put("/preferences/weights", h.UpdateCriteriaWeights)

				r.Get("/comparisons", h.ListComparisons)
				r.Post("/comparisons", h.AddComparison)
				r.Put("/comparisons/{id}", h.UpdateComparison)
				r.Delete("/comparisons/{id}", h.DeleteComparison)

				r.Post("/ahp/comparisons", h.SaveAHPComparison)
				r.Get("/ahp/comparisons", h.GetAHPComparison)

				r.Get("/recommendations", h.Recommendations)
			})
		})
	})

	return r
}
