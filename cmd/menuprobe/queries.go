// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/pdiddy/menuprobe/internal/probe"
)

var queriesCmd = &cobra.Command{
	Use:   "queries",
	Short: "List the queries a run would send",
	Long: `Queries renders every query strategy for each configured restaurant and
prints the resulting search strings. With --write-plan it saves the effective
plan as YAML so it can be edited and passed back with --plan.`,
	RunE: runQueries,
}

func init() {
	probeFlags(queriesCmd)
	queriesCmd.Flags().String("write-plan", "", "write the effective plan to this YAML file")

	rootCmd.AddCommand(queriesCmd)
}

func runQueries(cmd *cobra.Command, args []string) error {
	if err := bindProbeFlags(cmd); err != nil {
		return err
	}
	plan, err := loadPlan()
	if err != nil {
		return err
	}
	targets, err := plan.Targets()
	if err != nil {
		return err
	}

	if path, _ := cmd.Flags().GetString("write-plan"); path != "" {
		if err := probe.WritePlan(path, plan); err != nil {
			return err
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "wrote plan to %s\n", path)
	}

	printQueries(cmd.OutOrStdout(), targets)
	return nil
}

func printQueries(w io.Writer, targets []probe.Target) {
	for _, t := range targets {
		fmt.Fprintf(w, "Restaurant: %s (%s)\n\n", t.Restaurant.Name, t.Restaurant.Location)
		for i, q := range t.Queries {
			fmt.Fprintf(w, "%d. [%s] %s\n", i+1, q.Strategy, q.Text)
			if q.Description != "" {
				fmt.Fprintf(w, "   %s\n", q.Description)
			}
		}
		fmt.Fprintln(w)
	}
	fmt.Fprintf(w, "%d queries\n", probe.CountQueries(targets))
}
