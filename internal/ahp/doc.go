// CarSelect - AHP Car Recommendation Backend
// Copyright 2026 aterii
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/aterii/practice-4

/*
Package ahp implements the Analytic Hierarchy Process weight engine.

Given an N×N pairwise comparison matrix of criteria (N in 1..10), the engine
derives a priority vector and the Saaty consistency ratio. Two weight methods
are available:

  - Normalization (canonical): column sums, cell/colSum, row means.
  - Power iteration: approximates the principal eigenvector, capped at
    MaxIterations with a convergence tolerance of Tolerance.

All functions are pure. They allocate their own outputs, never retain the
input slices, and are safe to call from multiple goroutines.

Usage:

	res, err := ahp.Evaluate(ahp.Matrix{
		{1, 3, 5},
		{1.0 / 3, 1, 3},
		{1.0 / 5, 1.0 / 3, 1},
	})
	if err != nil {
		return err
	}
	fmt.Println(res.Weights, res.CR, res.IsConsistent)

Errors are typed sentinels; test them with errors.Is:

	if errors.Is(err, ahp.ErrInvalidInput) { ... }

The package also carries the car scoring helpers used by the recommendation
endpoint: ScoreEntity (bounds taken from user preferences) and Rank
(bounds taken from the min/max of the candidate set).
*/
package ahp
