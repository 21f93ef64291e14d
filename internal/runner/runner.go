// Package runner drives one end-to-end analysis run: load the ledger,
// compute the aggregates, write insights.json, render the charts, and
// optionally announce completion over AMQP.
package runner

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"spendsight/internal/analysis"
	"spendsight/internal/charts"
	"spendsight/internal/config"
	"spendsight/internal/ledger"
	applog "spendsight/internal/log"
	"spendsight/internal/notify"
	"spendsight/internal/report"
)

// Notifier publishes run-completed events. Nil disables notification.
type Notifier interface {
	PublishRunCompleted(ctx context.Context, ev *notify.RunCompletedEvent) error
}

type Runner struct {
	cfg      *config.Config
	source   ledger.Source
	notifier Notifier
	logger   *applog.Logger
}

func New(cfg *config.Config, source ledger.Source, notifier Notifier, logger *applog.Logger) *Runner {
	if logger == nil {
		logger = applog.New(applog.DefaultConfig())
	}
	return &Runner{
		cfg:      cfg,
		source:   source,
		notifier: notifier,
		logger:   logger.WithComponent(applog.ComponentRunner),
	}
}

// Summary describes a completed run.
type Summary struct {
	RunID        string
	Transactions int
	ReportPath   string
	ChartsDir    string
	Elapsed      time.Duration
}

// Run executes the pipeline once.
func (r *Runner) Run(ctx context.Context) (*Summary, error) {
	start := time.Now()
	runID := uuid.New().String()
	logger := r.logger.With(applog.FieldRunID, runID)

	l, err := r.source.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load ledger: %w", err)
	}
	logger.InfoContext(ctx, "Ledger loaded",
		applog.FieldOperation, applog.OpLoad,
		applog.FieldTransactions, len(l))

	opts := analysis.DefaultOptions()
	opts.TopN = r.cfg.TopTransactions
	results := analysis.Run(ctx, l, opts)
	logger.InfoContext(ctx, "Aggregations computed",
		applog.FieldOperation, applog.OpAggregate,
		"categories", len(results.Categories),
		"months", len(results.Monthly))

	rep := report.Build(l, results, r.cfg.CurrencyLabel, runID, time.Now().UTC())
	reportPath := filepath.Join(r.cfg.OutputDir, "insights.json")
	if err := rep.WriteFile(reportPath); err != nil {
		return nil, fmt.Errorf("write report: %w", err)
	}
	logger.InfoContext(ctx, "Report written",
		applog.FieldOperation, applog.OpWrite,
		applog.FieldPath, reportPath)

	renderer := charts.NewRenderer(r.cfg.ChartsDir, r.logger)
	if err := renderer.RenderAll(ctx, results, r.cfg.ChartWorkers); err != nil {
		return nil, fmt.Errorf("render charts: %w", err)
	}

	if r.notifier != nil {
		ev := notify.NewRunCompletedEvent(runID,
			rep.Summary.TotalSpent, rep.Summary.TotalTransactions,
			reportPath, r.cfg.ChartsDir)
		if err := r.notifier.PublishRunCompleted(ctx, ev); err != nil {
			// Notification is best-effort; the artifacts are already on disk.
			logger.WarnContext(ctx, "Run-completed notification failed",
				applog.FieldOperation, applog.OpPublish,
				applog.FieldError, err)
		}
	}

	s := &Summary{
		RunID:        runID,
		Transactions: len(l),
		ReportPath:   reportPath,
		ChartsDir:    r.cfg.ChartsDir,
		Elapsed:      time.Since(start),
	}
	logger.InfoContext(ctx, "Run completed",
		applog.FieldTransactions, s.Transactions,
		applog.FieldDuration, s.Elapsed.Milliseconds())
	return s, nil
}
