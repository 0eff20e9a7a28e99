// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/menuprobe/internal/probe"
	"github.com/pdiddy/menuprobe/internal/secrets"
	"github.com/pdiddy/menuprobe/internal/tavily"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run every menu query and print the results",
	Long: `Run sends each query strategy to the Tavily search API in order, waiting
a fixed pause after each one. A plan naming several restaurants runs every
strategy for each restaurant in turn and ends with one completion banner. For every query it prints the result count and,
per result, the title, URL, score, a content excerpt and the menu keywords
found in the content.

A failing query is reported and the run continues. The command exits zero
even when some queries failed.`,
	RunE: runProbe,
}

func init() {
	probeFlags(runCmd)
	runCmd.Flags().String("api-key", "", "Tavily API key (overrides TAVILY_API_KEY and .secrets/tavily-api-key)")
	runCmd.Flags().Bool("json", false, "write one JSON document per query instead of the text report")
	runCmd.Flags().Bool("dry-run", false, "print the queries without calling the API")

	rootCmd.AddCommand(runCmd)
}

func runProbe(cmd *cobra.Command, args []string) error {
	if err := bindProbeFlags(cmd); err != nil {
		return err
	}
	if err := viper.BindPFlag("api_key", cmd.Flags().Lookup("api-key")); err != nil {
		return err
	}

	cfg, err := probeConfig()
	if err != nil {
		return err
	}
	plan, err := loadPlan()
	if err != nil {
		return err
	}
	cfg.Keywords = plan.Keywords

	targets, err := plan.Targets()
	if err != nil {
		return err
	}
	total := probe.CountQueries(targets)

	out := cmd.OutOrStdout()
	if dryRun, _ := cmd.Flags().GetBool("dry-run"); dryRun {
		printQueries(out, targets)
		return nil
	}

	apiKey, source, err := secrets.APIKey(viper.GetString("api_key"), loadedSecrets)
	if err != nil {
		return err
	}

	log := logrus.WithField("run_id", uuid.NewString())
	log.WithFields(logrus.Fields{
		"restaurants": len(targets),
		"queries":     total,
		"depth":       cfg.Depth,
		"key_source":  source,
	}).Info("starting probe run")

	var reporter probe.Reporter = probe.NewTextReporter(out, cfg)
	if jsonOut, _ := cmd.Flags().GetBool("json"); jsonOut {
		reporter = probe.NewJSONReporter(out, cfg)
	}

	client := tavily.NewClient(apiKey, cfg.HTTPConfig)
	client.Endpoint = viper.GetString("tavily.endpoint")

	runner := &probe.Runner{
		Searcher: client,
		Reporter: reporter,
		Config:   cfg,
		Log:      log,
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	summary, err := runner.Run(ctx, targets)
	if errors.Is(err, context.Canceled) {
		return fmt.Errorf("probe interrupted after %d of %d queries", summary.Queries, total)
	}
	return err
}
