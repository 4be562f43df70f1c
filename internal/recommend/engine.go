// CarSelect - AHP Car Recommendation Backend
// Copyright 2026 aterii
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/aterii/practice-4

package recommend

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/aterii/practice-4/internal/ahp"
	"github.com/aterii/practice-4/internal/catalog"
	"github.com/aterii/practice-4/internal/logging"
	"github.com/aterii/practice-4/internal/models"
)

// Engine produces car recommendations. It is safe for concurrent use.
type Engine struct {
	config   *Config
	logger   zerolog.Logger
	cars     CarSource
	prefs    PreferenceSource
	records  RecordSource
	notFound func(error) bool
}

// Option customizes an Engine.
type Option func(*Engine)

// WithNotFound sets the predicate that recognizes a missing AHP record.
func WithNotFound(fn func(error) bool) Option {
	return func(e *Engine) { e.notFound = fn }
}

// NewEngine creates an engine. A nil cfg uses DefaultConfig.
func NewEngine(cfg *Config, cars CarSource, prefs PreferenceSource, records RecordSource, opts ...Option) (*Engine, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	e := &Engine{
		config:   cfg,
		logger:   logging.WithComponent("recommend"),
		cars:     cars,
		prefs:    prefs,
		records:  records,
		notFound: func(error) bool { return false },
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// ErrCatalog wraps failures of the car source so callers can tell them
// apart from storage errors.
var ErrCatalog = errors.New("recommend: car catalog failed")

// Recommend returns the best cars for req.UserID.
func (e *Engine) Recommend(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()
	limit := e.config.clampLimit(req.Limit)

	var (
		cars   []catalog.Car
		prefs  *models.Preferences
		record *models.AHPRecord
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		cars, err = e.cars.ListCars(gctx)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrCatalog, err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		prefs, err = e.prefs.GetPreferences(gctx, req.UserID)
		if err != nil {
			return fmt.Errorf("load preferences: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		record, err = e.records.GetByUser(gctx, req.UserID)
		if err != nil && e.notFound(err) {
			record, err = nil, nil
		}
		if err != nil {
			return fmt.Errorf("load ahp record: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	weights, source := resolveWeights(prefs, record)
	matching := Filter(cars, prefs)

	entities := make([]ahp.Entity, len(matching))
	for i := range matching {
		entities[i] = matching[i].Entity()
	}
	ranked := ahp.Rank(entities, weights)
	ref := reference(prefs)

	items := make([]ScoredCar, 0, min(limit, len(ranked)))
	for i, r := range ranked {
		if i == limit {
			break
		}
		items = append(items, ScoredCar{
			Car:        matching[r.Index],
			Score:      r.Score,
			MatchScore: ahp.ScoreEntity(r.Entity, weights, ref),
			Rank:       i + 1,
		})
	}

	resp := &Response{
		Items: items,
		Metadata: ResponseMetadata{
			TotalCandidates: len(cars),
			Matching:        len(matching),
			WeightsSource:   source,
			Weights:         weightsMap(weights),
			LatencyMS:       time.Since(start).Milliseconds(),
		},
	}

	e.logger.Debug().
		Str("user_id", req.UserID).
		Int("candidates", len(cars)).
		Int("matching", len(matching)).
		Int("returned", len(items)).
		Str("weights_source", string(source)).
		Int64("latency_ms", resp.Metadata.LatencyMS).
		Msg("recommendation complete")

	return resp, nil
}

// resolveWeights prefers complete preference weights over a 5×5 AHP record.
// Partial preference weights are still used when nothing better exists.
func resolveWeights(prefs *models.Preferences, record *models.AHPRecord) (ahp.CriteriaWeights, WeightsSource) {
	var fromPrefs ahp.CriteriaWeights
	if prefs != nil && len(prefs.CriteriaWeights) > 0 {
		fromPrefs = make(ahp.CriteriaWeights, len(prefs.CriteriaWeights))
		for k, v := range prefs.CriteriaWeights {
			fromPrefs[ahp.Criterion(k)] = v
		}
		if fromPrefs.Complete() {
			return fromPrefs, WeightsFromPreferences
		}
	}

	if record != nil {
		if cw, err := ahp.CriteriaWeightsFrom(record.Weights); err == nil && cw.Complete() {
			return cw, WeightsFromAHP
		}
	}

	if fromPrefs != nil {
		return fromPrefs, WeightsFromPreferences
	}
	return nil, WeightsNone
}

func reference(prefs *models.Preferences) ahp.Reference {
	if prefs == nil {
		return ahp.Reference{}
	}
	return ahp.Reference{
		MaxBudget:          prefs.MaxBudget,
		MinPower:           prefs.MinPower,
		MaxFuelConsumption: prefs.MaxFuelConsumption,
		SafetyFeatures:     prefs.DesiredSafety(),
		ComfortFeatures:    prefs.DesiredComfort(),
	}
}

func weightsMap(cw ahp.CriteriaWeights) map[string]float64 {
	if len(cw) == 0 {
		return nil
	}
	out := make(map[string]float64, len(cw))
	for k, v := range cw {
		out[string(k)] = v
	}
	return out
}
