// CarSelect - AHP Car Recommendation Backend
// Copyright 2026 aterii
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/aterii/practice-4

// Command ahpctl evaluates AHP pairwise comparison matrices from files.
//
//	ahpctl weigh criteria.yaml
//	ahpctl weigh --method power --format json matrix.json
package main

import (
	"errors"
	"fmt"
	"os"
)

// Exit codes
const (
	ExitSuccess      = 0
	ExitError        = 1
	ExitInconsistent = 2 // --strict and CR >= 0.1
)

// InconsistentError reports a matrix whose consistency ratio is too high.
type InconsistentError struct {
	CR float64
}

func (e *InconsistentError) Error() string {
	return fmt.Sprintf("matrix is inconsistent: CR = %.4f", e.CR)
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)

		var inconsistent *InconsistentError
		if errors.As(err, &inconsistent) {
			os.Exit(ExitInconsistent)
		}
		os.Exit(ExitError)
	}
}
