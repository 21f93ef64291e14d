package charts

import (
	"fmt"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette/moreland"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"spendsight/internal/analysis"
)

func newPlot(title, xLabel, yLabel string) *plot.Plot {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = xLabel
	p.Y.Label.Text = yLabel
	p.Add(plotter.NewGrid())
	return p
}

// barPlot renders a single labeled bar series, one bar per label.
func barPlot(title, xLabel, yLabel string, labels []string, values []float64, path string) error {
	p := newPlot(title, xLabel, yLabel)
	bars, err := plotter.NewBarChart(plotter.Values(values), vg.Points(20))
	if err != nil {
		return err
	}
	bars.Color = plotutil.Color(0)
	p.Add(bars)
	p.NominalX(labels...)
	return p.Save(chartWidth, chartHeight, path)
}

func bucketValues(buckets []analysis.Bucket) (labels []string, values []float64) {
	labels = make([]string, len(buckets))
	values = make([]float64, len(buckets))
	for i, b := range buckets {
		labels[i] = b.Key
		values[i] = b.Sum.Units()
	}
	return labels, values
}

func (c *Renderer) categoryShare(r analysis.Results, path string) (bool, error) {
	if len(r.Categories) == 0 {
		return true, nil
	}
	var total float64
	for _, b := range r.Categories {
		total += b.Sum.Units()
	}
	labels := make([]string, len(r.Categories))
	values := make([]float64, len(r.Categories))
	for i, b := range r.Categories {
		labels[i] = b.Key
		if total > 0 {
			values[i] = b.Sum.Units() / total * 100
		}
	}
	return false, barPlot("Spending Distribution by Category", "Category", "Share of Total (%)", labels, values, path)
}

func (c *Renderer) monthlyTrend(r analysis.Results, path string) (bool, error) {
	if len(r.Monthly) == 0 {
		return true, nil
	}
	p := newPlot("Monthly Spending Trend", "Month", "Total Spending")

	pts := make(plotter.XYs, len(r.Monthly))
	var total float64
	for i, b := range r.Monthly {
		pts[i].X = float64(i)
		pts[i].Y = b.Sum.Units()
		total += b.Sum.Units()
	}
	line, err := plotter.NewLine(pts)
	if err != nil {
		return false, err
	}
	line.LineStyle.Width = vg.Points(2)
	line.Color = plotutil.Color(0)
	p.Add(line)

	// Horizontal rule at the monthly average.
	mean := total / float64(len(r.Monthly))
	rule, err := plotter.NewLine(plotter.XYs{
		{X: 0, Y: mean},
		{X: float64(len(r.Monthly) - 1), Y: mean},
	})
	if err != nil {
		return false, err
	}
	rule.LineStyle.Dashes = []vg.Length{vg.Points(4), vg.Points(4)}
	rule.Color = color.RGBA{R: 200, A: 255}
	p.Add(rule)
	p.Legend.Add(fmt.Sprintf("Average: %.2f", mean), rule)

	labels, _ := bucketValues(r.Monthly)
	p.NominalX(labels...)
	return false, p.Save(chartWidth, chartHeight, path)
}

// categoryTrends draws stacked per-category areas over the dense
// month-by-category grid. Filled cumulative lines are added from the full
// stack down to the single largest category, so each band stays visible.
func (c *Renderer) categoryTrends(r analysis.Results, path string) (bool, error) {
	grid := r.CategoryGrid
	if len(grid.Months) == 0 || len(grid.Categories) == 0 {
		return true, nil
	}
	p := newPlot("Category Spending Trends Over Time", "Month", "Spending")

	for j := len(grid.Categories) - 1; j >= 0; j-- {
		pts := make(plotter.XYs, len(grid.Months))
		for i := range grid.Months {
			var cum float64
			for k := 0; k <= j; k++ {
				cum += grid.Cells[i][k]
			}
			pts[i].X = float64(i)
			pts[i].Y = cum
		}
		line, err := plotter.NewLine(pts)
		if err != nil {
			return false, err
		}
		line.Color = plotutil.Color(j)
		line.FillColor = plotutil.Color(j)
		p.Add(line)
		p.Legend.Add(grid.Categories[j], line)
	}
	p.NominalX(grid.Months...)
	return false, p.Save(chartWidth, chartHeight, path)
}

func (c *Renderer) spendingByDay(r analysis.Results, path string) (bool, error) {
	labels := make([]string, len(r.Weekdays))
	values := make([]float64, len(r.Weekdays))
	var any bool
	for i, d := range r.Weekdays {
		labels[i] = d.Day.String()
		if m, ok := d.Mean(); ok {
			values[i] = m
			any = true
		}
	}
	if !any {
		return true, nil
	}
	return false, barPlot("Average Spending by Day of Week", "Day of Week", "Average per Transaction", labels, values, path)
}

func (c *Renderer) categoryTotals(r analysis.Results, path string) (bool, error) {
	if len(r.Categories) == 0 {
		return true, nil
	}
	labels, values := bucketValues(r.Categories)
	return false, barPlot("Total Spending by Category", "Category", "Total Spending", labels, values, path)
}

type heatGrid struct {
	hm analysis.HourHeatmap
}

func (g heatGrid) Dims() (c, r int)   { return 24, 7 }
func (g heatGrid) Z(c, r int) float64 { return g.hm[r][c] }
func (g heatGrid) X(c int) float64    { return float64(c) }
func (g heatGrid) Y(r int) float64    { return float64(r) }

func (c *Renderer) heatmap(r analysis.Results, path string) (bool, error) {
	var any bool
	for _, row := range r.Heatmap {
		for _, v := range row {
			if v != 0 {
				any = true
			}
		}
	}
	if !any {
		return true, nil
	}
	p := newPlot("Spending Patterns by Day and Hour", "Hour of Day", "Day of Week")
	pal := moreland.SmoothBlueRed().Palette(255)
	p.Add(plotter.NewHeatMap(heatGrid{hm: r.Heatmap}, pal))
	return false, p.Save(chartWidth, 8*vg.Inch, path)
}

func (c *Renderer) categoryCounts(r analysis.Results, path string) (bool, error) {
	if len(r.Categories) == 0 {
		return true, nil
	}
	labels := make([]string, len(r.Categories))
	values := make([]float64, len(r.Categories))
	for i, b := range r.Categories {
		labels[i] = b.Key
		values[i] = float64(b.Count)
	}
	return false, barPlot("Transaction Frequency by Category", "Category", "Number of Transactions", labels, values, path)
}

func (c *Renderer) categoryAverages(r analysis.Results, path string) (bool, error) {
	if len(r.Categories) == 0 {
		return true, nil
	}
	labels := make([]string, len(r.Categories))
	values := make([]float64, len(r.Categories))
	for i, b := range r.Categories {
		labels[i] = b.Key
		values[i], _ = b.Mean()
	}
	return false, barPlot("Average Spending per Transaction", "Category", "Average Amount", labels, values, path)
}

func (c *Renderer) percentiles(r analysis.Results, path string) (bool, error) {
	if len(r.Percentiles) == 0 {
		return true, nil
	}
	labels := make([]string, len(r.Percentiles))
	values := make([]float64, len(r.Percentiles))
	for i, pv := range r.Percentiles {
		labels[i] = fmt.Sprintf("%dth", pv.Rank)
		values[i] = pv.Value
	}
	return false, barPlot("Spending Distribution by Percentile", "Percentile", "Transaction Amount", labels, values, path)
}

func (c *Renderer) yearOverYear(r analysis.Results, path string) (bool, error) {
	// Mirrors the single-year skip: the comparison needs two years.
	if len(r.YearSeries) < 2 {
		return true, nil
	}
	p := newPlot("Year-over-Year Monthly Spending Comparison", "Month", "Total Spending")
	for i, s := range r.YearSeries {
		pts := make(plotter.XYs, 12)
		for m := 0; m < 12; m++ {
			pts[m].X = float64(m + 1)
			pts[m].Y = s.Totals[m]
		}
		line, err := plotter.NewLine(pts)
		if err != nil {
			return false, err
		}
		line.LineStyle.Width = vg.Points(2)
		line.Color = plotutil.Color(i)
		p.Add(line)
		p.Legend.Add(fmt.Sprintf("%d", s.Year), line)
	}
	p.NominalX("Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec")
	return false, p.Save(chartWidth, chartHeight, path)
}

func (c *Renderer) quarterlyTrends(r analysis.Results, path string) (bool, error) {
	if len(r.Quarterly) == 0 {
		return true, nil
	}
	labels, values := bucketValues(r.Quarterly)
	return false, barPlot("Quarterly Spending Trends", "Quarter", "Total Spending", labels, values, path)
}

func (c *Renderer) topTransactions(r analysis.Results, path string) (bool, error) {
	if len(r.TopTransactions) == 0 {
		return true, nil
	}
	labels := make([]string, len(r.TopTransactions))
	values := make([]float64, len(r.TopTransactions))
	for i, t := range r.TopTransactions {
		labels[i] = fmt.Sprintf("%s (%s)", t.Category, t.Date.Format("2006-01-02"))
		values[i] = t.Amount.Units()
	}
	return false, barPlot("Most Expensive Transactions", "Transaction", "Amount", labels, values, path)
}

func (c *Renderer) categoryPercentage(r analysis.Results, path string) (bool, error) {
	if len(r.Categories) == 0 {
		return true, nil
	}
	var total float64
	for _, b := range r.Categories {
		total += b.Sum.Units()
	}
	if total == 0 {
		return true, nil
	}
	labels := make([]string, len(r.Categories))
	values := make([]float64, len(r.Categories))
	for i, b := range r.Categories {
		labels[i] = b.Key
		values[i] = b.Sum.Units() / total * 100
	}
	return false, barPlot("Category Distribution (% of Total Spending)", "Category", "Percent", labels, values, path)
}

func (c *Renderer) growthRate(r analysis.Results, path string) (bool, error) {
	if len(r.Growth) == 0 {
		return true, nil
	}
	labels := make([]string, len(r.Growth))
	values := make([]float64, len(r.Growth))
	for i, g := range r.Growth {
		labels[i] = g.Month
		if g.Valid {
			values[i] = g.Pct
		}
	}
	return false, barPlot("Month-over-Month Spending Growth Rate", "Month", "Growth Rate (%)", labels, values, path)
}

func (c *Renderer) sizeDistribution(r analysis.Results, path string) (bool, error) {
	if len(r.SizeBuckets) == 0 {
		return true, nil
	}
	labels := make([]string, len(r.SizeBuckets))
	values := make([]float64, len(r.SizeBuckets))
	for i, b := range r.SizeBuckets {
		labels[i] = b.Label
		values[i] = float64(b.Count)
	}
	return false, barPlot("Distribution of Transactions by Amount Range", "Transaction Size Range", "Number of Transactions", labels, values, path)
}

func (c *Renderer) calendarMonthAverages(r analysis.Results, path string) (bool, error) {
	labels := make([]string, 12)
	values := make([]float64, 12)
	var any bool
	for i, s := range r.CalendarMonths {
		labels[i] = s.Month.String()[:3]
		if m, ok := s.Mean(); ok {
			values[i] = m
			any = true
		}
	}
	if !any {
		return true, nil
	}
	return false, barPlot("Average Transaction Amount by Month (All Years)", "Month", "Average Amount", labels, values, path)
}
