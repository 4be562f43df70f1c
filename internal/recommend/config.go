// CarSelect - AHP Car Recommendation Backend
// Copyright 2026 aterii
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/aterii/practice-4

package recommend

import "fmt"

// Config holds the operational limits of the engine.
type Config struct {
	// DefaultLimit is used when a request does not set Limit.
	DefaultLimit int `json:"default_limit"`

	// MaxLimit caps Request.Limit.
	MaxLimit int `json:"max_limit"`
}

// DefaultConfig returns the limits used by the API.
func DefaultConfig() *Config {
	return &Config{
		DefaultLimit: 10,
		MaxLimit:     100,
	}
}

// Validate checks the limits are usable.
func (c *Config) Validate() error {
	if c.DefaultLimit < 1 {
		return fmt.Errorf("default_limit must be positive, got %d", c.DefaultLimit)
	}
	if c.MaxLimit < c.DefaultLimit {
		return fmt.Errorf("max_limit (%d) must be >= default_limit (%d)", c.MaxLimit, c.DefaultLimit)
	}
	return nil
}

// clampLimit applies the default and the cap to a requested limit.
func (c *Config) clampLimit(limit int) int {
	if limit <= 0 {
		return c.DefaultLimit
	}
	return min(limit, c.MaxLimit)
}
