package analysis

import (
	"sort"
	"strconv"
	"time"

	"spendsight/internal/core"
)

// MonthlyTotals groups by calendar month ("2024-03"). Only observed months
// get a bucket; months without transactions are not zero-filled, so
// extremes and averages operate over observed buckets only.
func MonthlyTotals(l core.Ledger) []Bucket {
	return groupTotals(l, func(t core.Transaction) string { return t.YearMonth() })
}

// QuarterlyTotals groups by calendar quarter ("2024Q1").
func QuarterlyTotals(l core.Ledger) []Bucket {
	return groupTotals(l, func(t core.Transaction) string { return t.Quarter() })
}

// YearlyTotals groups by calendar year ("2024").
func YearlyTotals(l core.Ledger) []Bucket {
	return groupTotals(l, func(t core.Transaction) string { return strconv.Itoa(t.Year()) })
}

// GrowthPoint is the month-over-month change of total spending.
// Valid is false when the previous month's total is zero.
type GrowthPoint struct {
	Month string
	Pct   float64
	Valid bool
}

// GrowthRates derives the month-over-month growth series from monthly
// totals. The first observed month has no predecessor and yields no point.
func GrowthRates(monthly []Bucket) []GrowthPoint {
	if len(monthly) < 2 {
		return nil
	}
	out := make([]GrowthPoint, 0, len(monthly)-1)
	for i := 1; i < len(monthly); i++ {
		prev := monthly[i-1].Sum.Cents
		cur := monthly[i].Sum.Cents
		p := GrowthPoint{Month: monthly[i].Key}
		if prev != 0 {
			p.Pct = (float64(cur) - float64(prev)) / float64(prev) * 100
			p.Valid = true
		}
		out = append(out, p)
	}
	return out
}

// YearSeries is one year's spending dense-filled across the twelve
// calendar months, for the year-over-year comparison view.
type YearSeries struct {
	Year   int
	Totals [12]float64 // currency units, index 0 = January
}

// YearMonthMatrix returns one dense series per observed year, ascending.
func YearMonthMatrix(l core.Ledger) []YearSeries {
	byYear := make(map[int]*YearSeries)
	for _, t := range l {
		s, ok := byYear[t.Year()]
		if !ok {
			s = &YearSeries{Year: t.Year()}
			byYear[t.Year()] = s
		}
		s.Totals[t.Month()-1] += t.Amount.Units()
	}

	out := make([]YearSeries, 0, len(byYear))
	for _, s := range byYear {
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Year < out[j].Year })
	return out
}

// MonthOfYearStat aggregates all transactions that fall in one calendar
// month regardless of year (all Januaries together, and so on).
type MonthOfYearStat struct {
	Month time.Month
	Sum   core.Money
	Count int
}

// Mean returns the mean transaction amount for the calendar month,
// ok=false when no transactions fall in it.
func (m MonthOfYearStat) Mean() (float64, bool) {
	if m.Count == 0 {
		return 0, false
	}
	return m.Sum.Units() / float64(m.Count), true
}

// CalendarMonthAverages returns per-calendar-month stats across all years,
// always twelve entries January through December.
func CalendarMonthAverages(l core.Ledger) [12]MonthOfYearStat {
	var out [12]MonthOfYearStat
	for i := range out {
		out[i].Month = time.Month(i + 1)
	}
	for _, t := range l {
		s := &out[t.Month()-1]
		s.Sum = s.Sum.Add(t.Amount)
		s.Count++
	}
	return out
}
