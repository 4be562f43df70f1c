// CarSelect - AHP Car Recommendation Backend
// Copyright 2026 aterii
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/aterii/practice-4

package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// ValueLogCollector runs one value log garbage collection cycle.
type ValueLogCollector interface {
	RunValueLogGC(ctx context.Context, discardRatio float64) error
}

// GCServiceConfig configures GCService.
type GCServiceConfig struct {
	// Interval between GC cycles. Default: 10m
	Interval time.Duration

	// DiscardRatio is passed to badger. Default: 0.5
	DiscardRatio float64
}

// GCService periodically reclaims BadgerDB value log space.
type GCService struct {
	store  ValueLogCollector
	config GCServiceConfig
	logger zerolog.Logger
	name   string
}

// NewGCService creates the service.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewGCService(store ValueLogCollector, cfg GCServiceConfig, logger zerolog.Logger) *GCService {
	if cfg.Interval <= 0 {
		cfg.Interval = 10 * time.Minute
	}
	if cfg.DiscardRatio <= 0 || cfg.DiscardRatio >= 1 {
		cfg.DiscardRatio = 0.5
	}
	return &GCService{
		store:  store,
		config: cfg,
		logger: logger.With().Str("service", "badger-gc").Logger(),
		name:   "badger-gc",
	}
}

// Serve implements suture.Service. A failed cycle is logged and retried on
// the next tick; only ctx ends the loop.
func (s *GCService) Serve(ctx context.Context) error {
	s.logger.Info().
		Dur("interval", s.config.Interval).
		Float64("discard_ratio", s.config.DiscardRatio).
		Msg("value log GC service starting")

	ticker := time.NewTicker(s.config.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info().Msg("value log GC service stopping")
			return ctx.Err()
		case <-ticker.C:
			start := time.Now()
			if err := s.store.RunValueLogGC(ctx, s.config.DiscardRatio); err != nil {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				s.logger.Warn().Err(err).Msg("value log GC failed")
				continue
			}
			s.logger.Debug().Dur("took", time.Since(start)).Msg("value log GC finished")
		}
	}
}

// String names the service in suture events.
func (s *GCService) String() string {
	return s.name
}
