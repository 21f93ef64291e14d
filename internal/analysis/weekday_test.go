package analysis

import (
	"testing"
	"time"

	"spendsight/internal/core"
)

func TestWeekdayStats(t *testing.T) {
	// 2024-01-01 is a Monday.
	l := core.Ledger{
		tx("2024-01-01", "A", 1000), // Monday
		tx("2024-01-01", "A", 2000), // Monday
		tx("2024-01-06", "A", 500),  // Saturday
	}
	days := WeekdayStats(l)

	if days[0].Day != time.Monday || days[6].Day != time.Sunday {
		t.Fatal("days must run Monday through Sunday")
	}
	if days[0].Count != 2 || days[0].Sum.Cents != 3000 {
		t.Errorf("Monday = %+v", days[0])
	}
	if m, ok := days[0].Mean(); !ok || m != 15.00 {
		t.Errorf("Monday mean = %v (ok=%v), want 15.00", m, ok)
	}
	if days[5].Count != 1 {
		t.Errorf("Saturday count = %d, want 1", days[5].Count)
	}
	// A day with no transactions stays present with count 0 and an
	// undefined mean.
	if days[1].Count != 0 {
		t.Errorf("Tuesday count = %d, want 0", days[1].Count)
	}
	if _, ok := days[1].Mean(); ok {
		t.Error("Tuesday mean must be undefined")
	}
}

func TestWeekdayCountsSumToTotal(t *testing.T) {
	l := core.Ledger{
		tx("2024-01-01", "A", 100),
		tx("2024-01-02", "B", 200),
		tx("2024-01-06", "C", 300),
		tx("2024-01-07", "D", 400),
	}
	days := WeekdayStats(l)
	var n int
	for _, d := range days {
		n += d.Count
	}
	if n != len(l) {
		t.Fatalf("day counts sum to %d, want %d", n, len(l))
	}
}

// The weekday/weekend figures are a mean of per-day means, not a pooled
// mean over transactions. With Monday mean 15.00 and Tuesday mean 1.00 the
// weekday average is 8.00 even though Monday has twice the transactions.
func TestWeekdayWeekendAverages(t *testing.T) {
	l := core.Ledger{
		tx("2024-01-01", "A", 1000), // Monday
		tx("2024-01-01", "A", 2000), // Monday
		tx("2024-01-02", "A", 100),  // Tuesday
		tx("2024-01-06", "A", 600),  // Saturday
		tx("2024-01-07", "A", 400),  // Sunday
	}
	days := WeekdayStats(l)
	weekday, wdOK, weekend, weOK := WeekdayWeekendAverages(days)

	if !wdOK || weekday != 8.00 {
		t.Errorf("weekday avg = %v (ok=%v), want 8.00", weekday, wdOK)
	}
	if !weOK || weekend != 5.00 {
		t.Errorf("weekend avg = %v (ok=%v), want 5.00", weekend, weOK)
	}
}

func TestWeekdayWeekendAveragesExcludeEmptyDays(t *testing.T) {
	// Only Monday has data: the weekday average is Monday's mean, not a
	// fifth of it; the weekend average is undefined.
	l := core.Ledger{tx("2024-01-01", "A", 1000)}
	days := WeekdayStats(l)
	weekday, wdOK, _, weOK := WeekdayWeekendAverages(days)

	if !wdOK || weekday != 10.00 {
		t.Errorf("weekday avg = %v (ok=%v), want 10.00", weekday, wdOK)
	}
	if weOK {
		t.Error("weekend avg must be undefined without weekend data")
	}
}

func TestDayExtremes(t *testing.T) {
	l := core.Ledger{
		tx("2024-01-01", "A", 1000), // Monday, mean 10
		tx("2024-01-02", "A", 3000), // Tuesday, mean 30
		tx("2024-01-06", "A", 500),  // Saturday, mean 5
	}
	most, least, ok := DayExtremes(WeekdayStats(l))
	if !ok {
		t.Fatal("extremes must be defined")
	}
	if most.Day != time.Tuesday {
		t.Errorf("most expensive day = %v, want Tuesday", most.Day)
	}
	if least.Day != time.Saturday {
		t.Errorf("cheapest day = %v, want Saturday", least.Day)
	}

	if _, _, ok := DayExtremes(WeekdayStats(nil)); ok {
		t.Error("extremes must be undefined on an empty ledger")
	}
}

func TestHourlyHeatmap(t *testing.T) {
	l := core.Ledger{
		tx("2024-01-01 09:30:00", "A", 1000), // Monday 09
		tx("2024-01-01 09:45:00", "A", 500),  // Monday 09
		tx("2024-01-07 23:00:00", "A", 200),  // Sunday 23
	}
	hm := HourlyHeatmap(l)

	if hm[0][9] != 15.00 {
		t.Errorf("Monday 09 = %v, want 15.00", hm[0][9])
	}
	if hm[6][23] != 2.00 {
		t.Errorf("Sunday 23 = %v, want 2.00", hm[6][23])
	}
	// Dense fill: untouched cells are zero.
	if hm[3][12] != 0 {
		t.Errorf("Thursday 12 = %v, want 0", hm[3][12])
	}
}
