package report

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"spendsight/internal/analysis"
	"spendsight/internal/core"
)

func tx(date, category string, cents int64) core.Transaction {
	d, err := time.Parse("2006-01-02", date)
	if err != nil {
		panic(err)
	}
	return core.Transaction{Date: d, Category: category, Amount: core.Money{Cents: cents}}
}

func buildFixture(t *testing.T, l core.Ledger) *InsightsReport {
	t.Helper()
	r := analysis.Run(context.Background(), l, analysis.DefaultOptions())
	return Build(l, r, "AZN (Manat)", "test-run", time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC))
}

func TestBuildSummary(t *testing.T) {
	l := core.Ledger{
		tx("2024-01-01", "Coffee", 300),
		tx("2024-01-02", "Taxi", 1200),
		tx("2024-02-01", "Coffee", 500),
	}
	rep := buildFixture(t, l)

	if rep.Summary.TotalSpent != 20.00 {
		t.Errorf("total_spent = %v, want 20.00", rep.Summary.TotalSpent)
	}
	if rep.Summary.TotalTransactions != 3 {
		t.Errorf("total_transactions = %d, want 3", rep.Summary.TotalTransactions)
	}
	if rep.Summary.AvgTransaction == nil || *rep.Summary.AvgTransaction != 6.67 {
		t.Errorf("avg_transaction = %v, want 6.67", rep.Summary.AvgTransaction)
	}
	if rep.Summary.MedianTransaction == nil || *rep.Summary.MedianTransaction != 5.00 {
		t.Errorf("median_transaction = %v, want 5.00", rep.Summary.MedianTransaction)
	}
	if rep.Summary.DateRange.Start != "2024-01-01" || rep.Summary.DateRange.End != "2024-02-01" {
		t.Errorf("date_range = %+v", rep.Summary.DateRange)
	}
	if rep.Summary.DateRange.TotalDays != 31 {
		t.Errorf("total_days = %d, want 31", rep.Summary.DateRange.TotalDays)
	}
}

func TestBuildBlocks(t *testing.T) {
	l := core.Ledger{
		tx("2024-01-01", "Coffee", 300),
		tx("2024-01-02", "Taxi", 1200),
		tx("2024-02-01", "Coffee", 500),
	}
	rep := buildFixture(t, l)

	if rep.Categories.Breakdown["Coffee"] != 8.00 || rep.Categories.Breakdown["Taxi"] != 12.00 {
		t.Errorf("category breakdown = %v", rep.Categories.Breakdown)
	}
	if rep.Categories.TopCategory != "Taxi" || rep.Categories.TopCategoryAmount != 12.00 {
		t.Errorf("top category = %s/%v", rep.Categories.TopCategory, rep.Categories.TopCategoryAmount)
	}
	if rep.Categories.TopCategoryPct == nil || *rep.Categories.TopCategoryPct != 60.00 {
		t.Errorf("top category pct = %v, want 60.00", rep.Categories.TopCategoryPct)
	}

	if rep.Monthly.HighestMonth != "2024-01" || rep.Monthly.HighestMonthAmount != 15.00 {
		t.Errorf("highest month = %s/%v", rep.Monthly.HighestMonth, rep.Monthly.HighestMonthAmount)
	}
	if rep.Monthly.LowestMonth != "2024-02" || rep.Monthly.LowestMonthAmount != 5.00 {
		t.Errorf("lowest month = %s/%v", rep.Monthly.LowestMonth, rep.Monthly.LowestMonthAmount)
	}
	if rep.Monthly.AvgSpending == nil || *rep.Monthly.AvgSpending != 10.00 {
		t.Errorf("avg monthly spending = %v, want 10.00", rep.Monthly.AvgSpending)
	}

	if rep.Yearly.Breakdown["2024"] != 20.00 {
		t.Errorf("yearly breakdown = %v", rep.Yearly.Breakdown)
	}
	if rep.Quarterly.Breakdown["2024Q1"] != 20.00 {
		t.Errorf("quarterly breakdown = %v", rep.Quarterly.Breakdown)
	}

	// 2 of 3 amounts below 10: small share is 66.67, not 33.33.
	if rep.TransactionAnalysis.SmallTransactionsPct != 66.67 {
		t.Errorf("small pct = %v, want 66.67", rep.TransactionAnalysis.SmallTransactionsPct)
	}
	if len(rep.TransactionAnalysis.TopTransactions) != 3 {
		t.Errorf("top transactions = %d entries, want 3", len(rep.TransactionAnalysis.TopTransactions))
	}
	if rep.TransactionAnalysis.TopTransactions[0].Amount != 12.00 {
		t.Errorf("top transaction = %v, want 12.00", rep.TransactionAnalysis.TopTransactions[0])
	}

	if rep.Percentiles["50th"] != 5.00 {
		t.Errorf("50th percentile = %v, want 5.00", rep.Percentiles["50th"])
	}

	if rep.SavingsPotential["if_reduce_coffee_30pct"] != 2.40 {
		t.Errorf("coffee savings = %v, want 2.40", rep.SavingsPotential["if_reduce_coffee_30pct"])
	}
	if rep.SavingsPotential["if_reduce_taxi_25pct"] != 3.00 {
		t.Errorf("taxi savings = %v, want 3.00", rep.SavingsPotential["if_reduce_taxi_25pct"])
	}
	// Restaurant absent from the ledger: projected saving is zero.
	if rep.SavingsPotential["if_reduce_restaurant_20pct"] != 0 {
		t.Errorf("restaurant savings = %v, want 0", rep.SavingsPotential["if_reduce_restaurant_20pct"])
	}
	if rep.SavingsPotential["total_potential_savings"] != 5.40 {
		t.Errorf("total savings = %v, want 5.40", rep.SavingsPotential["total_potential_savings"])
	}
}

func TestBuildEmptyLedger(t *testing.T) {
	rep := buildFixture(t, nil)

	if rep.Summary.TotalSpent != 0 || rep.Summary.TotalTransactions != 0 {
		t.Errorf("summary = %+v, want zeros", rep.Summary)
	}
	if rep.Summary.AvgTransaction != nil || rep.Summary.MedianTransaction != nil {
		t.Error("means over an empty ledger must be null, not zero")
	}
	if rep.DailyPatterns.WeekdayAvg != nil || rep.DailyPatterns.MostExpensiveDayAvg != nil {
		t.Error("daily patterns must be null on an empty ledger")
	}

	// Null means survive serialization as JSON null.
	data, err := json.Marshal(rep)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !strings.Contains(string(data), `"avg_transaction":null`) {
		t.Error("undefined mean should serialize as null")
	}
}

func TestWriteFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out", "insights.json")

	rep := buildFixture(t, core.Ledger{tx("2024-01-01", "Coffee", 300)})
	if err := rep.WriteFile(path); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	var decoded InsightsReport
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if decoded.Summary.TotalSpent != 3.00 {
		t.Errorf("round-tripped total = %v, want 3.00", decoded.Summary.TotalSpent)
	}
	if decoded.RunID != "test-run" {
		t.Errorf("run_id = %q", decoded.RunID)
	}
}
