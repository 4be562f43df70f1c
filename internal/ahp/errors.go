// CarSelect - AHP Car Recommendation Backend
// Copyright 2026 aterii
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/aterii/practice-4

package ahp

import "errors"

var (
	// ErrInvalidInput indicates a malformed comparison matrix: empty,
	// non-square, larger than MaxSize, or holding non-positive or non-finite
	// entries. Also returned when a weight vector does not match the matrix.
	ErrInvalidInput = errors.New("ahp: invalid input")

	// ErrNumericDegeneracy indicates a computation that would divide by zero
	// or overflow, such as a zero or infinite column sum.
	ErrNumericDegeneracy = errors.New("ahp: numeric degeneracy")

	// ErrNotReciprocal is returned by CheckReciprocal.
	ErrNotReciprocal = errors.New("ahp: matrix is not reciprocal")
)
