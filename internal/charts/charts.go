// Package charts renders the fixed battery of chart images. Each view
// consumes exactly one aggregate from the analysis package and writes one
// PNG; no chart reads another chart's output.
package charts

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/plot/vg"

	"spendsight/internal/analysis"
	applog "spendsight/internal/log"
)

// Renderer writes chart PNGs into a target directory with a fixed visual
// style.
type Renderer struct {
	dir    string
	logger *applog.Logger
}

func NewRenderer(dir string, logger *applog.Logger) *Renderer {
	if logger == nil {
		logger = applog.New(applog.DefaultConfig())
	}
	return &Renderer{dir: dir, logger: logger.WithComponent(applog.ComponentCharts)}
}

const (
	chartWidth  = 12 * vg.Inch
	chartHeight = 6 * vg.Inch
)

// view is one chart: a file name and a render function. Views whose
// aggregate is empty return skip=true and write nothing, the same way the
// year-over-year comparison is skipped for single-year ledgers.
type view struct {
	file   string
	render func(r analysis.Results, path string) (skip bool, err error)
}

func (c *Renderer) views() []view {
	return []view{
		{"spending_by_category.png", c.categoryShare},
		{"monthly_trend.png", c.monthlyTrend},
		{"category_trends.png", c.categoryTrends},
		{"spending_by_day.png", c.spendingByDay},
		{"category_totals.png", c.categoryTotals},
		{"spending_heatmap.png", c.heatmap},
		{"transaction_frequency.png", c.categoryCounts},
		{"category_averages.png", c.categoryAverages},
		{"spending_percentiles.png", c.percentiles},
		{"year_over_year.png", c.yearOverYear},
		{"quarterly_trends.png", c.quarterlyTrends},
		{"top_transactions.png", c.topTransactions},
		{"category_percentage.png", c.categoryPercentage},
		{"growth_rate.png", c.growthRate},
		{"transaction_size_distribution.png", c.sizeDistribution},
		{"avg_spending_by_month.png", c.calendarMonthAverages},
	}
}

// RenderAll renders every view, fanning out over at most workers
// goroutines. The aggregates are read-only, so no locking is needed.
func (c *Renderer) RenderAll(ctx context.Context, r analysis.Results, workers int) error {
	if err := os.MkdirAll(c.dir, 0755); err != nil {
		return fmt.Errorf("create charts directory: %w", err)
	}
	if workers < 1 {
		workers = 1
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for _, v := range c.views() {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			path := filepath.Join(c.dir, v.file)
			skip, err := v.render(r, path)
			if err != nil {
				return fmt.Errorf("render %s: %w", v.file, err)
			}
			if skip {
				c.logger.DebugContext(ctx, "Skipped chart without data", applog.FieldChart, v.file)
				return nil
			}
			c.logger.DebugContext(ctx, "Rendered chart", applog.FieldChart, v.file)
			return nil
		})
	}
	return g.Wait()
}
