// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package probe runs a fixed list of menu-discovery queries against a search
// API and reports each raw response for manual inspection.
//
// Queries run one at a time with a fixed pause after each. A failing query is
// reported and the run moves on; only context cancellation stops it early.
package probe

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/pdiddy/menuprobe/pkg/types"
)

// Searcher is the remote search call the runner depends on.
type Searcher interface {
	Search(ctx context.Context, query string, depth types.SearchDepth, maxResults int) (*types.Response, error)
}

// PauseFunc waits for d or until ctx is done.
type PauseFunc func(ctx context.Context, d time.Duration) error

// RunSummary counts what a run did.
type RunSummary struct {
	Queries int
	Failed  int
	Results int
}

// Runner issues queries sequentially through a Searcher.
type Runner struct {
	Searcher Searcher
	Reporter Reporter
	Config   types.ProbeConfig

	// Pause defaults to Sleep. Tests replace it to avoid real delays.
	Pause PauseFunc

	// Log defaults to the logrus standard logger.
	Log logrus.FieldLogger
}

// Sleep blocks for d, returning early with ctx.Err() if ctx is cancelled.
func Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// Query runs a single query, reports it and returns the raw response.
func (r *Runner) Query(ctx context.Context, q Query) (*types.Response, error) {
	cfg := r.Config.WithDefaults()
	log := r.logger().WithFields(logrus.Fields{
		"restaurant": q.Restaurant,
		"strategy":   q.Strategy,
		"depth":      cfg.Depth,
	})

	r.Reporter.Begin(q, cfg.Depth)
	start := time.Now()
	resp, err := r.Searcher.Search(ctx, q.Text, cfg.Depth, cfg.MaxResults)
	if err != nil {
		log.WithError(err).Warn("query failed")
		return nil, err
	}
	if resp == nil {
		resp = &types.Response{Query: q.Text}
	}

	log.WithFields(logrus.Fields{
		"results": len(resp.Results),
		"elapsed": time.Since(start).Round(time.Millisecond),
	}).Debug("query complete")
	r.Reporter.Result(q, cfg.Depth, resp)
	return resp, nil
}

// Run issues the queries of each target in order, pausing after every query,
// and finishes with a single completion banner. Each target's restaurant
// header is reported before its queries. Query errors are reported and do not
// stop the run. The returned error is non-nil only when ctx is cancelled.
func (r *Runner) Run(ctx context.Context, targets []Target) (RunSummary, error) {
	cfg := r.Config.WithDefaults()
	pause := r.Pause
	if pause == nil {
		pause = Sleep
	}

	var summary RunSummary
	for _, t := range targets {
		r.Reporter.Start(t.Restaurant, t.Queries)

		for _, q := range t.Queries {
			if err := ctx.Err(); err != nil {
				return summary, err
			}

			summary.Queries++
			resp, err := r.Query(ctx, q)
			if err != nil {
				summary.Failed++
				r.Reporter.Failure(q, err)
			} else {
				summary.Results += len(resp.Results)
			}

			if err := pause(ctx, cfg.Pause); err != nil {
				return summary, err
			}
		}
	}

	r.Reporter.Finish(summary)
	r.logger().WithFields(logrus.Fields{
		"restaurants": len(targets),
		"queries":     summary.Queries,
		"failed":      summary.Failed,
		"results":     summary.Results,
	}).Info("probe run complete")
	return summary, nil
}

func (r *Runner) logger() logrus.FieldLogger {
	if r.Log != nil {
		return r.Log
	}
	return logrus.StandardLogger()
}
