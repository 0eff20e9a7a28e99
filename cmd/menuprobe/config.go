// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/menuprobe/internal/probe"
	"github.com/pdiddy/menuprobe/pkg/types"
)

// probeFlags registers the flags shared by commands that build queries or
// run them, and binds them to their viper keys.
func probeFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.String("plan", "", "YAML plan file with the restaurant and query strategies")
	f.String("depth", string(types.DepthBasic), "search depth: basic or advanced (advanced costs more)")
	f.Int("max-results", types.DefaultMaxResults, "maximum results requested per query")
	f.Duration("pause", types.DefaultPause, "pause after each query")
	f.Int("excerpt", types.DefaultExcerptLimit, "content characters printed per result")
	f.Duration("timeout", types.DefaultTimeout, "HTTP request timeout")
	f.Int("max-retries", 0, "retries on HTTP 429 (0 sends each query once)")
}

var probeKeys = map[string]string{
	"plan":                "plan",
	"probe.depth":         "depth",
	"probe.max_results":   "max-results",
	"probe.pause":         "pause",
	"probe.excerpt_limit": "excerpt",
	"probe.timeout":       "timeout",
	"probe.max_retries":   "max-retries",
}

// bindProbeFlags binds cmd's probe flags to viper. It runs at execution time
// because run and queries register flags under the same keys.
func bindProbeFlags(cmd *cobra.Command) error {
	for key, name := range probeKeys {
		if err := viper.BindPFlag(key, cmd.Flags().Lookup(name)); err != nil {
			return fmt.Errorf("binding flag %s: %w", name, err)
		}
	}
	return nil
}

// probeConfig assembles the run configuration from viper.
func probeConfig() (types.ProbeConfig, error) {
	depth, err := types.ParseSearchDepth(viper.GetString("probe.depth"))
	if err != nil {
		return types.ProbeConfig{}, err
	}
	cfg := types.ProbeConfig{
		HTTPConfig: types.HTTPConfig{
			Timeout:    viper.GetDuration("probe.timeout"),
			UserAgent:  viper.GetString("probe.user_agent"),
			MaxRetries: viper.GetInt("probe.max_retries"),
		},
		Depth:        depth,
		MaxResults:   viper.GetInt("probe.max_results"),
		Pause:        viper.GetDuration("probe.pause"),
		ExcerptLimit: viper.GetInt("probe.excerpt_limit"),
	}
	return cfg.WithDefaults(), nil
}

// loadPlan reads the plan file named by the "plan" key, or returns the
// default plan when none is set.
func loadPlan() (probe.Plan, error) {
	path := viper.GetString("plan")
	if path == "" {
		return probe.DefaultPlan(), nil
	}
	return probe.ReadPlan(path)
}
