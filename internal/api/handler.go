// CarSelect - AHP Car Recommendation Backend
// Copyright 2026 aterii
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/aterii/practice-4

package api

import (
	"context"
	"time"

	"github.com/goccy/go-json"

	"github.com/aterii/practice-4/internal/auth"
	"github.com/aterii/practice-4/internal/catalog"
	"github.com/aterii/practice-4/internal/models"
	"github.com/aterii/practice-4/internal/recommend"
)

// UserStore persists accounts.
type UserStore interface {
	CreateUser(ctx context.Context, u *models.User) error
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
}

// PreferenceStore persists user preferences.
type PreferenceStore interface {
	GetPreferences(ctx context.Context, userID string) (*models.Preferences, error)
	UpdatePreferences(ctx context.Context, userID string, fn func(p *models.Preferences) error) (*models.Preferences, error)
}

// ComparisonStore persists the per-user comparison list.
type ComparisonStore interface {
	ListComparisons(ctx context.Context, userID string) ([]models.Comparison, error)
	AddComparison(ctx context.Context, userID string, carID int, score float64) (*models.Comparison, error)
	UpdateComparisonScore(ctx context.Context, userID, id string, score float64) (*models.Comparison, error)
	DeleteComparison(ctx context.Context, userID, id string) error
}

// AHPStore persists the last AHP matrix of each user.
type AHPStore interface {
	GetByUser(ctx context.Context, userID string) (*models.AHPRecord, error)
	Upsert(ctx context.Context, userID string, rec *models.AHPRecord) error
}

// CarCatalog reads the external car catalog.
type CarCatalog interface {
	ListCars(ctx context.Context) ([]catalog.Car, error)
	GetCar(ctx context.Context, id string) (*catalog.Car, error)
	ListCarsRaw(ctx context.Context) (json.RawMessage, error)
	GetCarRaw(ctx context.Context, id string) (json.RawMessage, error)
}

// Recommender ranks cars for a user.
type Recommender interface {
	Recommend(ctx context.Context, req recommend.Request) (*recommend.Response, error)
}

// Deps are the collaborators of Handler.
type Deps struct {
	Users       UserStore
	Preferences PreferenceStore
	Comparisons ComparisonStore
	AHP         AHPStore
	Catalog     CarCatalog
	Recommender Recommender
	JWT         *auth.JWTManager
	Hasher      *auth.Hasher
}

// Handler holds the HTTP handlers.
type Handler struct {
	users       UserStore
	preferences PreferenceStore
	comparisons ComparisonStore
	ahp         AHPStore
	catalog     CarCatalog
	recommender Recommender
	jwt         *auth.JWTManager
	hasher      *auth.Hasher
	startTime   time.Time
}

// NewHandler creates a Handler from deps.
func NewHandler(deps Deps) *Handler {
	return &Handler{
		users:       deps.Users,
		preferences: deps.Preferences,
		comparisons: deps.Comparisons,
		ahp:         deps.AHP,
		catalog:     deps.Catalog,
		recommender: deps.Recommender,
		jwt:         deps.JWT,
		hasher:      deps.Hasher,
		startTime:   time.Now(),
	}
}
