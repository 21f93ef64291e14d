package analysis

import (
	"context"

	"golang.org/x/sync/errgroup"

	"spendsight/internal/core"
)

// Results holds every aggregate one run produces. Each field is computed
// independently from the same read-only ledger.
type Results struct {
	Categories      []Bucket
	CategoryGrid    CategoryMonthGrid
	Monthly         []Bucket
	Quarterly       []Bucket
	Yearly          []Bucket
	Weekdays        [7]DayStat
	Heatmap         HourHeatmap
	Percentiles     []PercentileValue
	SizeBuckets     []SizeBucket
	Shares          SizeShares
	TopTransactions []core.Transaction
	Savings         SavingsProjection
	Growth          []GrowthPoint
	YearSeries      []YearSeries
	CalendarMonths  [12]MonthOfYearStat
}

// Options parameterizes a run of the engine.
type Options struct {
	TopN         int
	SavingsRules []SavingsRule
}

// DefaultOptions mirror the report's fixed battery.
func DefaultOptions() Options {
	return Options{TopN: 15, SavingsRules: DefaultSavingsRules}
}

// Run computes every aggregate over the ledger. The aggregations are
// independent, so they fan out over goroutines; the ledger is the only
// shared resource and has no writers. The derived savings projection and
// growth series run after their inputs inside the same goroutine.
func Run(ctx context.Context, l core.Ledger, opts Options) Results {
	var r Results

	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error {
		r.Categories = CategoryTotals(l)
		r.Savings = ProjectSavings(r.Categories, opts.SavingsRules)
		return nil
	})
	g.Go(func() error {
		r.CategoryGrid = DenseCategoryByMonth(l)
		return nil
	})
	g.Go(func() error {
		r.Monthly = MonthlyTotals(l)
		r.Growth = GrowthRates(r.Monthly)
		return nil
	})
	g.Go(func() error {
		r.Quarterly = QuarterlyTotals(l)
		return nil
	})
	g.Go(func() error {
		r.Yearly = YearlyTotals(l)
		return nil
	})
	g.Go(func() error {
		r.Weekdays = WeekdayStats(l)
		return nil
	})
	g.Go(func() error {
		r.Heatmap = HourlyHeatmap(l)
		return nil
	})
	g.Go(func() error {
		r.Percentiles = Percentiles(l, ReportPercentiles)
		return nil
	})
	g.Go(func() error {
		r.SizeBuckets = SizeBuckets(l)
		r.Shares = Shares(l)
		return nil
	})
	g.Go(func() error {
		r.TopTransactions = TopTransactions(l, opts.TopN)
		return nil
	})
	g.Go(func() error {
		r.YearSeries = YearMonthMatrix(l)
		return nil
	})
	g.Go(func() error {
		r.CalendarMonths = CalendarMonthAverages(l)
		return nil
	})

	// The aggregations cannot fail; Wait only joins the goroutines.
	_ = g.Wait()
	return r
}
