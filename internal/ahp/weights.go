// CarSelect - AHP Car Recommendation Backend
// Copyright 2026 aterii
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/aterii/practice-4

package ahp

import (
	"fmt"
	"math"
)

const (
	// MaxIterations bounds PowerIterationWeights.
	MaxIterations = 100

	// Tolerance is the max component-wise change that ends power iteration.
	Tolerance = 1e-6
)

// Method selects the weight derivation algorithm.
type Method string

const (
	MethodNormalization Method = "normalization"
	MethodPower         Method = "power"
)

// ParseMethod maps a method name to a Method. The empty string selects
// MethodNormalization.
func ParseMethod(s string) (Method, error) {
	switch Method(s) {
	case "", MethodNormalization:
		return MethodNormalization, nil
	case MethodPower:
		return MethodPower, nil
	default:
		return "", fmt.Errorf("%w: unknown method %q", ErrInvalidInput, s)
	}
}

// ComputeWeights derives the priority vector with the column normalization
// method: each column is divided by its sum and weight[i] is the mean of
// row i of the normalized matrix.
func ComputeWeights(m Matrix) (Weights, error) {
	if err := Validate(m); err != nil {
		return nil, err
	}
	n := len(m)

	colSums := make([]float64, n)
	for _, row := range m {
		for j, v := range row {
			colSums[j] += v
		}
	}
	for j, s := range colSums {
		if s == 0 || !isFinite(s) {
			return nil, fmt.Errorf("%w: column %d sums to %g", ErrNumericDegeneracy, j, s)
		}
	}

	w := make(Weights, n)
	for i, row := range m {
		var acc float64
		for j, v := range row {
			acc += v / colSums[j]
		}
		w[i] = acc / float64(n)
	}
	return w, nil
}

// PowerIterationWeights approximates the principal eigenvector of m. It
// starts from the uniform vector and repeats v = m·v / sum(m·v) until the
// largest component change drops below Tolerance or MaxIterations is
// reached. The last iterate is returned either way.
func PowerIterationWeights(m Matrix) (Weights, error) {
	if err := Validate(m); err != nil {
		return nil, err
	}
	n := len(m)

	v := make(Weights, n)
	for i := range v {
		v[i] = 1 / float64(n)
	}
	next := make(Weights, n)

	for iter := 0; iter < MaxIterations; iter++ {
		var sum float64
		for i, row := range m {
			var acc float64
			for j, x := range row {
				acc += x * v[j]
			}
			next[i] = acc
			sum += acc
		}
		if sum == 0 || !isFinite(sum) {
			return nil, fmt.Errorf("%w: iterate sums to %g", ErrNumericDegeneracy, sum)
		}

		var delta float64
		for i := range next {
			next[i] /= sum
			delta = math.Max(delta, math.Abs(next[i]-v[i]))
		}
		v, next = next, v
		if delta < Tolerance {
			break
		}
	}
	return v, nil
}

// WeightsWith dispatches to the weight method named by method.
func WeightsWith(m Matrix, method Method) (Weights, error) {
	switch method {
	case MethodNormalization, "":
		return ComputeWeights(m)
	case MethodPower:
		return PowerIterationWeights(m)
	default:
		return nil, fmt.Errorf("%w: unknown method %q", ErrInvalidInput, method)
	}
}
