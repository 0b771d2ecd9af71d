// Package pipeline orchestrates a full run: discover, process each file,
// aggregate, report.
package pipeline

import (
	"context"

	"github.com/confaudit/confaudit/internal/aggregate"
	"github.com/confaudit/confaudit/internal/collector"
	"github.com/confaudit/confaudit/internal/config"
	"github.com/confaudit/confaudit/internal/logger"
	"github.com/confaudit/confaudit/internal/models"
	"github.com/confaudit/confaudit/internal/report"
	"github.com/confaudit/confaudit/internal/schema"
)

// Options configures one run.
type Options struct {
	InputDir  string
	OutputDir string
	Schema    *schema.Schema
	Config    *config.Config
}

// Result is what the CLI needs for the exit decision.
type Result struct {
	Stats       models.SummaryStatistics
	SummaryPath string
}

// Run executes the pipeline. A failed discovery aborts before any artifact
// is written; per-file failures are absorbed into the summary and only
// influence the caller's exit decision. Aggregation and reporting errors
// are returned as-is: they indicate an internal defect, not bad input, and
// are allowed to be fatal.
func Run(ctx context.Context, opts Options) (*Result, error) {
	log := logger.Named("pipeline")

	paths, err := collector.Discover(opts.InputDir)
	if err != nil {
		return nil, err
	}
	log.Infow("documents discovered", "count", len(paths), "input", opts.InputDir)

	if err := config.EnsureDirectories(opts.OutputDir); err != nil {
		return nil, err
	}

	res := collector.New(opts.Schema).Collect(paths)

	store, err := aggregate.NewStore(opts.Config.Aggregate.TempDir, opts.Config.Aggregate.BatchSize)
	if err != nil {
		return nil, err
	}
	defer store.Close()

	if err := store.AddAll(res.Rows); err != nil {
		return nil, err
	}

	valueStats, err := store.Summarize(ctx)
	if err != nil {
		return nil, err
	}
	means, err := store.MeansByName(ctx)
	if err != nil {
		return nil, err
	}
	series, err := store.ValueSeries(ctx)
	if err != nil {
		return nil, err
	}
	values, err := store.Values(ctx)
	if err != nil {
		return nil, err
	}

	stats := models.SummaryStatistics{
		FilesOK:     len(res.Rows),
		FilesFailed: len(res.Errors),
		ValueCount:  valueStats.Count,
		ValueMean:   valueStats.Mean,
		ValueMin:    valueStats.Min,
		ValueMax:    valueStats.Max,
		Errors:      res.Errors,
	}

	w := report.NewWriter(opts.OutputDir)
	if err := w.WriteTable(res.Rows); err != nil {
		return nil, err
	}
	if err := w.WriteRows(res.Rows); err != nil {
		return nil, err
	}
	summaryPath, err := w.WriteSummary(stats)
	if err != nil {
		return nil, err
	}
	if err := w.RenderHistogram(values); err != nil {
		return nil, err
	}
	if err := w.RenderMeansByName(means); err != nil {
		return nil, err
	}
	if err := w.RenderValueSeries(series); err != nil {
		return nil, err
	}

	log.Infow("run complete",
		"files_ok", stats.FilesOK,
		"files_failed", stats.FilesFailed,
		"value_count", stats.ValueCount,
		"output", opts.OutputDir)

	return &Result{Stats: stats, SummaryPath: summaryPath}, nil
}
