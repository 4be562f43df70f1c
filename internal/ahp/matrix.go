// CarSelect - AHP Car Recommendation Backend
// Copyright 2026 aterii
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/aterii/practice-4

package ahp

import (
	"fmt"
	"math"
)

// MaxSize is the largest matrix order with a tabulated random index.
const MaxSize = 10

// Matrix is a square pairwise comparison matrix. m[i][j] states how much more
// important criterion i is than criterion j on the Saaty scale.
type Matrix [][]float64

// Weights is a priority vector index-aligned with the rows of a Matrix.
type Weights []float64

// Size returns the matrix order.
func (m Matrix) Size() int {
	return len(m)
}

// Clone returns a deep copy of m.
func (m Matrix) Clone() Matrix {
	out := make(Matrix, len(m))
	for i, row := range m {
		out[i] = append([]float64(nil), row...)
	}
	return out
}

// Sum returns the sum of all weights.
func (w Weights) Sum() float64 {
	var s float64
	for _, v := range w {
		s += v
	}
	return s
}

// Validate checks that m is non-empty, square, no larger than MaxSize and
// that every entry is a positive finite number.
func Validate(m Matrix) error {
	n := len(m)
	if n == 0 {
		return fmt.Errorf("%w: matrix is empty", ErrInvalidInput)
	}
	if n > MaxSize {
		return fmt.Errorf("%w: matrix order %d exceeds %d", ErrInvalidInput, n, MaxSize)
	}
	for i, row := range m {
		if len(row) != n {
			return fmt.Errorf("%w: row %d has %d columns, want %d", ErrInvalidInput, i, len(row), n)
		}
		for j, v := range row {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return fmt.Errorf("%w: entry [%d][%d] is not finite", ErrInvalidInput, i, j)
			}
			if v <= 0 {
				return fmt.Errorf("%w: entry [%d][%d] must be positive, got %g", ErrInvalidInput, i, j, v)
			}
		}
	}
	return nil
}

// CheckReciprocal reports whether m has a unit diagonal and m[i][j]*m[j][i]
// equals 1 within eps. The engine does not require reciprocity; callers
// that build matrices by hand can use this to reject typos early.
func CheckReciprocal(m Matrix, eps float64) error {
	if err := Validate(m); err != nil {
		return err
	}
	for i := range m {
		if math.Abs(m[i][i]-1) > eps {
			return fmt.Errorf("%w: diagonal [%d][%d] = %g", ErrNotReciprocal, i, i, m[i][i])
		}
		for j := i + 1; j < len(m); j++ {
			if math.Abs(m[i][j]*m[j][i]-1) > eps {
				return fmt.Errorf("%w: [%d][%d]*[%d][%d] = %g", ErrNotReciprocal, i, j, j, i, m[i][j]*m[j][i])
			}
		}
	}
	return nil
}

// FromWeights builds the perfectly consistent matrix m[i][j] = w[i]/w[j].
func FromWeights(w Weights) (Matrix, error) {
	if len(w) == 0 || len(w) > MaxSize {
		return nil, fmt.Errorf("%w: weight vector length %d", ErrInvalidInput, len(w))
	}
	for i, v := range w {
		if !(v > 0) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("%w: weight %d must be positive and finite", ErrInvalidInput, i)
		}
	}
	m := make(Matrix, len(w))
	for i := range w {
		m[i] = make([]float64, len(w))
		for j := range w {
			m[i][j] = w[i] / w[j]
		}
	}
	return m, nil
}

// FromUpperTriangle expands the strictly upper triangular judgements of an
// n×n matrix (row-major, n*(n-1)/2 values) into a full reciprocal matrix.
func FromUpperTriangle(n int, upper []float64) (Matrix, error) {
	if n < 1 || n > MaxSize {
		return nil, fmt.Errorf("%w: matrix order %d", ErrInvalidInput, n)
	}
	if want := n * (n - 1) / 2; len(upper) != want {
		return nil, fmt.Errorf("%w: got %d judgements, want %d", ErrInvalidInput, len(upper), want)
	}
	m := make(Matrix, n)
	for i := range m {
		m[i] = make([]float64, n)
		m[i][i] = 1
	}
	k := 0
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			v := upper[k]
			k++
			if !(v > 0) || math.IsInf(v, 0) {
				return nil, fmt.Errorf("%w: judgement [%d][%d] must be positive and finite", ErrInvalidInput, i, j)
			}
			m[i][j] = v
			m[j][i] = 1 / v
		}
	}
	return m, nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
