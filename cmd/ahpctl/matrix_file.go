// CarSelect - AHP Car Recommendation Backend
// Copyright 2026 aterii
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/aterii/practice-4

package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/aterii/practice-4/internal/ahp"
)

// matrixFile is the on-disk form of a comparison. Either Matrix or Upper
// is set. A bare top-level sequence is read as Matrix.
//
//	criteria: [price, safety, comfort]
//	matrix:
//	  - [1, 3, 5]
//	  - [1/3, 1, 3]
//	  - [1/5, 1/3, 1]
//
// or, listing only the judgements above the diagonal:
//
//	criteria: [price, safety, comfort]
//	upper: [3, 5, 3]
type matrixFile struct {
	Criteria []string      `yaml:"criteria"`
	Matrix   [][]judgement `yaml:"matrix"`
	Upper    []judgement   `yaml:"upper"`
}

// judgement is a matrix entry written as a number or a fraction "a/b".
type judgement float64

func (j *judgement) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: judgement must be a number", node.Line)
	}
	v, err := parseJudgement(node.Value)
	if err != nil {
		return fmt.Errorf("line %d: %w", node.Line, err)
	}
	*j = judgement(v)
	return nil
}

func parseJudgement(s string) (float64, error) {
	s = strings.TrimSpace(s)
	num, den, isFraction := strings.Cut(s, "/")
	if !isFraction {
		return strconv.ParseFloat(s, 64)
	}
	a, err := strconv.ParseFloat(strings.TrimSpace(num), 64)
	if err != nil {
		return 0, fmt.Errorf("bad numerator in %q", s)
	}
	b, err := strconv.ParseFloat(strings.TrimSpace(den), 64)
	if err != nil || b == 0 {
		return 0, fmt.Errorf("bad denominator in %q", s)
	}
	return a / b, nil
}

// parseMatrixFile decodes YAML or JSON into a matrix and its labels. Labels
// default to C1..Cn.
func parseMatrixFile(data []byte) (ahp.Matrix, []string, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, nil, fmt.Errorf("parse matrix file: %w", err)
	}
	if len(doc.Content) == 0 {
		return nil, nil, errors.New("matrix file is empty")
	}
	root := doc.Content[0]

	var f matrixFile
	if root.Kind == yaml.SequenceNode {
		if err := root.Decode(&f.Matrix); err != nil {
			return nil, nil, fmt.Errorf("decode matrix: %w", err)
		}
	} else if err := root.Decode(&f); err != nil {
		return nil, nil, fmt.Errorf("decode matrix file: %w", err)
	}

	var (
		m   ahp.Matrix
		err error
	)
	switch {
	case len(f.Matrix) > 0 && len(f.Upper) > 0:
		return nil, nil, errors.New("set either matrix or upper, not both")
	case len(f.Matrix) > 0:
		m = make(ahp.Matrix, len(f.Matrix))
		for i, row := range f.Matrix {
			m[i] = make([]float64, len(row))
			for j, v := range row {
				m[i][j] = float64(v)
			}
		}
	case len(f.Upper) > 0:
		if len(f.Criteria) == 0 {
			return nil, nil, errors.New("upper needs criteria to know the matrix order")
		}
		upper := make([]float64, len(f.Upper))
		for i, v := range f.Upper {
			upper[i] = float64(v)
		}
		m, err = ahp.FromUpperTriangle(len(f.Criteria), upper)
		if err != nil {
			return nil, nil, err
		}
	default:
		return nil, nil, errors.New("matrix file has no matrix")
	}

	labels := f.Criteria
	if len(labels) == 0 {
		labels = make([]string, len(m))
		for i := range labels {
			labels[i] = fmt.Sprintf("C%d", i+1)
		}
	}
	if len(labels) != len(m) {
		return nil, nil, fmt.Errorf("%d criteria for a matrix of order %d", len(labels), len(m))
	}
	seen := make(map[string]int, len(labels))
	for i, l := range labels {
		if j, ok := seen[l]; ok {
			return nil, nil, fmt.Errorf("duplicate criterion %q at positions %d and %d", l, j+1, i+1)
		}
		seen[l] = i
	}
	return m, labels, nil
}
