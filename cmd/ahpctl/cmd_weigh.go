// CarSelect - AHP Car Recommendation Backend
// Copyright 2026 aterii
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/aterii/practice-4

package main

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/aterii/practice-4/internal/ahp"
)

type weighOptions struct {
	method     string
	format     string
	strict     bool
	reciprocal bool
}

// weighOutput is the JSON shape of a weigh result.
type weighOutput struct {
	Method       string             `json:"method"`
	Criteria     []string           `json:"criteria"`
	Weights      map[string]float64 `json:"weights"`
	LambdaMax    float64            `json:"lambdaMax"`
	CI           float64            `json:"ci"`
	CR           float64            `json:"CR"`
	IsConsistent bool               `json:"isConsistent"`
}

func newWeighCommand() *cobra.Command {
	opts := &weighOptions{}
	cmd := &cobra.Command{
		Use:   "weigh <file>",
		Short: "Compute weights and consistency of a comparison matrix",
		Long: `Compute the priority weights, principal eigenvalue, consistency index
and consistency ratio of the pairwise comparison matrix in <file>.

The file is YAML or JSON and holds either the full matrix or only the
judgements above the diagonal. Entries may be written as fractions ("1/3").
Use "-" to read from standard input.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWeigh(cmd, args[0], opts)
		},
	}

	cmd.Flags().StringVar(&opts.method, "method", string(ahp.MethodNormalization), "Weight method: normalization or power")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "table", "Output format: table or json")
	cmd.Flags().BoolVar(&opts.strict, "strict", false, "Exit with status 2 when CR >= 0.1")
	cmd.Flags().BoolVar(&opts.reciprocal, "check-reciprocal", false, "Reject matrices that are not reciprocal")

	return cmd
}

func runWeigh(cmd *cobra.Command, path string, opts *weighOptions) error {
	method, err := ahp.ParseMethod(opts.method)
	if err != nil {
		return err
	}
	if opts.format != "table" && opts.format != "json" {
		return fmt.Errorf("unknown format %q", opts.format)
	}

	data, err := readInput(cmd.InOrStdin(), path)
	if err != nil {
		return err
	}
	m, labels, err := parseMatrixFile(data)
	if err != nil {
		return err
	}
	if opts.reciprocal {
		if err := ahp.CheckReciprocal(m, 1e-3); err != nil {
			return err
		}
	}

	res, err := ahp.EvaluateWith(m, method)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if opts.format == "json" {
		err = writeJSON(out, method, labels, res)
	} else {
		err = writeTable(out, method, labels, res)
	}
	if err != nil {
		return err
	}

	if opts.strict && !res.IsConsistent {
		return &InconsistentError{CR: res.CR}
	}
	return nil
}

func readInput(stdin io.Reader, path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(stdin)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading matrix file: %w", err)
	}
	return data, nil
}

func writeJSON(w io.Writer, method ahp.Method, labels []string, res ahp.Result) error {
	weights := make(map[string]float64, len(labels))
	for i, l := range labels {
		weights[l] = res.Weights[i]
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(&weighOutput{
		Method:       string(method),
		Criteria:     labels,
		Weights:      weights,
		LambdaMax:    res.LambdaMax,
		CI:           res.CI,
		CR:           res.CR,
		IsConsistent: res.IsConsistent,
	})
}

func writeTable(w io.Writer, method ahp.Method, labels []string, res ahp.Result) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "CRITERION\tWEIGHT")
	for i, l := range labels {
		fmt.Fprintf(tw, "%s\t%.4f\n", l, res.Weights[i])
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	verdict := "consistent"
	if !res.IsConsistent {
		verdict = "INCONSISTENT"
	}
	_, err := fmt.Fprintf(w, "\nmethod %s  lambda_max %.4f  CI %.4f  CR %.4f (%s)\n",
		method, res.LambdaMax, res.CI, res.CR, verdict)
	return err
}
