// Package report assembles aggregation results into the persisted
// insights document. It holds no logic of its own beyond mapping and
// rounding; every number comes from the analysis package.
package report

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"

	"spendsight/internal/analysis"
	"spendsight/internal/core"
)

type (
	// InsightsReport is the full structured report written at the end of a
	// run. It is derived from scratch every time; nothing carries over
	// between runs. Means over empty populations serialize as null.
	InsightsReport struct {
		RunID               string              `json:"run_id"`
		GeneratedAt         string              `json:"generated_at"`
		Currency            string              `json:"currency"`
		Summary             Summary             `json:"summary"`
		Categories          CategoryBlock       `json:"categories"`
		Monthly             MonthlyBlock        `json:"monthly"`
		Yearly              PeriodBlock         `json:"yearly"`
		Quarterly           PeriodBlock         `json:"quarterly"`
		DailyPatterns       DailyPatterns       `json:"daily_patterns"`
		TransactionAnalysis TransactionAnalysis `json:"transaction_analysis"`
		Percentiles         map[string]float64  `json:"percentiles"`
		SavingsPotential    map[string]float64  `json:"savings_potential"`
	}

	Summary struct {
		TotalSpent        float64   `json:"total_spent"`
		TotalTransactions int       `json:"total_transactions"`
		AvgTransaction    *float64  `json:"avg_transaction"`
		MedianTransaction *float64  `json:"median_transaction"`
		DateRange         DateRange `json:"date_range"`
	}

	DateRange struct {
		Start     string `json:"start"`
		End       string `json:"end"`
		TotalDays int    `json:"total_days"`
	}

	CategoryBlock struct {
		Breakdown         map[string]float64 `json:"breakdown"`
		TransactionCounts map[string]int     `json:"transaction_counts"`
		TopCategory       string             `json:"top_category"`
		TopCategoryAmount float64            `json:"top_category_amount"`
		TopCategoryPct    *float64           `json:"top_category_pct"`
		CategoryAverages  map[string]float64 `json:"category_averages"`
	}

	MonthlyBlock struct {
		AvgSpending            *float64 `json:"avg_spending"`
		HighestMonth           string   `json:"highest_month"`
		HighestMonthAmount     float64  `json:"highest_month_amount"`
		LowestMonth            string   `json:"lowest_month"`
		LowestMonthAmount      float64  `json:"lowest_month_amount"`
		AvgMonthlyTransactions *float64 `json:"avg_monthly_transactions"`
	}

	// PeriodBlock serves both the yearly and quarterly summaries; keys are
	// the canonical period strings ("2024", "2024Q1").
	PeriodBlock struct {
		Breakdown   map[string]float64 `json:"breakdown"`
		AvgSpending *float64           `json:"avg_spending"`
	}

	DailyPatterns struct {
		MostExpensiveDay    string   `json:"most_expensive_day"`
		MostExpensiveDayAvg *float64 `json:"most_expensive_day_avg"`
		CheapestDay         string   `json:"cheapest_day"`
		CheapestDayAvg      *float64 `json:"cheapest_day_avg"`
		WeekdayAvg          *float64 `json:"weekday_avg"`
		WeekendAvg          *float64 `json:"weekend_avg"`
	}

	TransactionAnalysis struct {
		SmallTransactionsPct  float64          `json:"small_transactions_pct"`
		MediumTransactionsPct float64          `json:"medium_transactions_pct"`
		LargeTransactionsPct  float64          `json:"large_transactions_pct"`
		TopTransactions       []TopTransaction `json:"top_15_transactions"`
	}

	TopTransaction struct {
		Date     string  `json:"date"`
		Category string  `json:"category"`
		Amount   float64 `json:"amount"`
	}
)

// Build maps aggregation results onto the report document.
func Build(l core.Ledger, r analysis.Results, currency, runID string, generatedAt time.Time) *InsightsReport {
	rep := &InsightsReport{
		RunID:       runID,
		GeneratedAt: generatedAt.UTC().Format(time.RFC3339),
		Currency:    currency,
		Percentiles: percentileBlock(r.Percentiles),
	}

	rep.Summary = summaryBlock(l)
	rep.Categories = categoryBlock(l, r.Categories)
	rep.Monthly = monthlyBlock(r.Monthly)
	rep.Yearly = periodBlock(r.Yearly)
	rep.Quarterly = periodBlock(r.Quarterly)
	rep.DailyPatterns = dailyPatterns(r.Weekdays)
	rep.TransactionAnalysis = transactionAnalysis(r)
	rep.SavingsPotential = savingsBlock(r.Savings)
	return rep
}

// WriteFile serializes the report as indented JSON, creating the target
// directory when needed.
func (rep *InsightsReport) WriteFile(path string) error {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create report directory: %w", err)
		}
	}
	data, err := json.MarshalIndent(rep, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}

func summaryBlock(l core.Ledger) Summary {
	s := Summary{
		TotalSpent:        round2(l.Total().Units()),
		TotalTransactions: len(l),
	}
	if len(l) > 0 {
		s.AvgTransaction = roundPtr(l.Total().Units() / float64(len(l)))
		if median, ok := analysis.Percentile(l.Amounts(), 50); ok {
			s.MedianTransaction = roundPtr(median)
		}
	}
	if first, last, ok := l.DateRange(); ok {
		s.DateRange = DateRange{
			Start:     first.Format("2006-01-02"),
			End:       last.Format("2006-01-02"),
			TotalDays: int(last.Sub(first).Hours() / 24),
		}
	}
	return s
}

func categoryBlock(l core.Ledger, categories []analysis.Bucket) CategoryBlock {
	b := CategoryBlock{
		Breakdown:         make(map[string]float64, len(categories)),
		TransactionCounts: make(map[string]int, len(categories)),
		CategoryAverages:  make(map[string]float64, len(categories)),
	}
	for _, c := range categories {
		b.Breakdown[c.Key] = round2(c.Sum.Units())
		b.TransactionCounts[c.Key] = c.Count
		if m, ok := c.Mean(); ok {
			b.CategoryAverages[c.Key] = round2(m)
		}
	}
	if len(categories) > 0 {
		top := categories[0] // already ordered by sum descending
		b.TopCategory = top.Key
		b.TopCategoryAmount = round2(top.Sum.Units())
		if total := l.Total().Units(); total > 0 {
			b.TopCategoryPct = roundPtr(top.Sum.Units() / total * 100)
		}
	}
	return b
}

func monthlyBlock(monthly []analysis.Bucket) MonthlyBlock {
	var b MonthlyBlock
	if avg, ok := analysis.MeanOfSums(monthly); ok {
		b.AvgSpending = roundPtr(avg)
	}
	if max, ok := analysis.MaxBySum(monthly); ok {
		b.HighestMonth = max.Key
		b.HighestMonthAmount = round2(max.Sum.Units())
	}
	if min, ok := analysis.MinBySum(monthly); ok {
		b.LowestMonth = min.Key
		b.LowestMonthAmount = round2(min.Sum.Units())
	}
	if avg, ok := analysis.MeanOfCounts(monthly); ok {
		b.AvgMonthlyTransactions = roundPtr(avg)
	}
	return b
}

func periodBlock(buckets []analysis.Bucket) PeriodBlock {
	b := PeriodBlock{Breakdown: make(map[string]float64, len(buckets))}
	for _, p := range buckets {
		b.Breakdown[p.Key] = round2(p.Sum.Units())
	}
	if avg, ok := analysis.MeanOfSums(buckets); ok {
		b.AvgSpending = roundPtr(avg)
	}
	return b
}

func dailyPatterns(days [7]analysis.DayStat) DailyPatterns {
	var b DailyPatterns
	if most, least, ok := analysis.DayExtremes(days); ok {
		b.MostExpensiveDay = most.Day.String()
		if m, defined := most.Mean(); defined {
			b.MostExpensiveDayAvg = roundPtr(m)
		}
		b.CheapestDay = least.Day.String()
		if m, defined := least.Mean(); defined {
			b.CheapestDayAvg = roundPtr(m)
		}
	}
	weekday, wdOK, weekend, weOK := analysis.WeekdayWeekendAverages(days)
	if wdOK {
		b.WeekdayAvg = roundPtr(weekday)
	}
	if weOK {
		b.WeekendAvg = roundPtr(weekend)
	}
	return b
}

func transactionAnalysis(r analysis.Results) TransactionAnalysis {
	b := TransactionAnalysis{
		SmallTransactionsPct:  round2(r.Shares.SmallPct),
		MediumTransactionsPct: round2(r.Shares.MediumPct),
		LargeTransactionsPct:  round2(r.Shares.LargePct),
		TopTransactions:       make([]TopTransaction, len(r.TopTransactions)),
	}
	for i, t := range r.TopTransactions {
		b.TopTransactions[i] = TopTransaction{
			Date:     t.Date.Format("2006-01-02"),
			Category: t.Category,
			Amount:   round2(t.Amount.Units()),
		}
	}
	return b
}

func percentileBlock(values []analysis.PercentileValue) map[string]float64 {
	if values == nil {
		return nil
	}
	out := make(map[string]float64, len(values))
	for _, v := range values {
		out[fmt.Sprintf("%dth", v.Rank)] = round2(v.Value)
	}
	return out
}

func savingsBlock(s analysis.SavingsProjection) map[string]float64 {
	out := make(map[string]float64, len(s.PerCategory)+1)
	for _, c := range s.PerCategory {
		key := fmt.Sprintf("if_reduce_%s_%dpct",
			strings.ToLower(c.Category), int(math.Round(c.Reduction*100)))
		out[key] = round2(c.Amount.Units())
	}
	out["total_potential_savings"] = round2(s.Total.Units())
	return out
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func roundPtr(v float64) *float64 {
	r := round2(v)
	return &r
}
