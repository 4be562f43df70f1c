// CarSelect - AHP Car Recommendation Backend
// Copyright 2026 aterii
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/aterii/practice-4

package ahp

import "fmt"

// ConsistencyThreshold is the CR below which a matrix is accepted.
const ConsistencyThreshold = 0.1

// randomIndex holds Saaty's random consistency index for n = 1..10.
// Index 0 is unused.
var randomIndex = [MaxSize + 1]float64{0, 0, 0, 0.58, 0.90, 1.12, 1.24, 1.32, 1.41, 1.45, 1.49}

// Result is the outcome of Evaluate.
type Result struct {
	Weights      Weights `json:"weights"`
	LambdaMax    float64 `json:"lambdaMax"`
	CI           float64 `json:"ci"`
	CR           float64 `json:"CR"`
	IsConsistent bool    `json:"isConsistent"`
}

// RandomIndex returns the random index for a matrix of order n.
func RandomIndex(n int) (float64, error) {
	if n < 1 || n > MaxSize {
		return 0, fmt.Errorf("%w: no random index for order %d", ErrInvalidInput, n)
	}
	return randomIndex[n], nil
}

// LambdaMax estimates the principal eigenvalue of m as the mean over rows of
// (m·w)[i] / w[i].
func LambdaMax(m Matrix, w Weights) (float64, error) {
	if err := Validate(m); err != nil {
		return 0, err
	}
	n := len(m)
	if len(w) != n {
		return 0, fmt.Errorf("%w: %d weights for order %d matrix", ErrInvalidInput, len(w), n)
	}

	var total float64
	for i, row := range m {
		if w[i] == 0 || !isFinite(w[i]) {
			return 0, fmt.Errorf("%w: weight %d is %g", ErrNumericDegeneracy, i, w[i])
		}
		var acc float64
		for j, v := range row {
			acc += v * w[j]
		}
		total += acc / w[i]
	}
	lambda := total / float64(n)
	if !isFinite(lambda) {
		return 0, fmt.Errorf("%w: lambda max is %g", ErrNumericDegeneracy, lambda)
	}
	return lambda, nil
}

// ConsistencyIndex returns CI = (λmax - n) / (n - 1). Orders 1 and 2 are
// always consistent and yield 0.
func ConsistencyIndex(m Matrix, w Weights) (float64, error) {
	lambda, err := LambdaMax(m, w)
	if err != nil {
		return 0, err
	}
	return consistencyIndex(lambda, len(m)), nil
}

// ConsistencyRatio returns CR = CI / RI[n].
func ConsistencyRatio(m Matrix, w Weights) (float64, error) {
	lambda, err := LambdaMax(m, w)
	if err != nil {
		return 0, err
	}
	return consistencyRatio(consistencyIndex(lambda, len(m)), len(m))
}

// Evaluate computes weights with the normalization method together with the
// consistency figures of m.
func Evaluate(m Matrix) (Result, error) {
	return EvaluateWith(m, MethodNormalization)
}

// EvaluateWith is Evaluate with an explicit weight method.
func EvaluateWith(m Matrix, method Method) (Result, error) {
	w, err := WeightsWith(m, method)
	if err != nil {
		return Result{}, err
	}
	lambda, err := LambdaMax(m, w)
	if err != nil {
		return Result{}, err
	}
	ci := consistencyIndex(lambda, len(m))
	cr, err := consistencyRatio(ci, len(m))
	if err != nil {
		return Result{}, err
	}
	return Result{
		Weights:      w,
		LambdaMax:    lambda,
		CI:           ci,
		CR:           cr,
		IsConsistent: cr < ConsistencyThreshold,
	}, nil
}

func consistencyIndex(lambda float64, n int) float64 {
	if n <= 2 {
		return 0
	}
	ci := (lambda - float64(n)) / float64(n-1)
	// λmax >= n for positive reciprocal matrices; rounding can dip below.
	if ci < 0 {
		return 0
	}
	return ci
}

func consistencyRatio(ci float64, n int) (float64, error) {
	ri, err := RandomIndex(n)
	if err != nil {
		return 0, err
	}
	if ri == 0 {
		return 0, nil
	}
	return ci / ri, nil
}
