// CarSelect - AHP Car Recommendation Backend
// Copyright 2026 aterii
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/aterii/practice-4

package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var version = "dev"

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ahpctl",
		Short: "Evaluate AHP pairwise comparison matrices",
		Long: `ahpctl derives criteria weights and the consistency ratio from a
pairwise comparison matrix, using the same engine as the CarSelect server.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.AddCommand(newWeighCommand())
	cmd.AddCommand(newVersionCommand())

	return cmd
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the ahpctl version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "ahpctl %s\n", version)
		},
	}
}
