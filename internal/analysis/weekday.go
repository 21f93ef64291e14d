package analysis

import (
	"time"

	"spendsight/internal/core"
)

// DayOrder is the canonical weekday order used by every day-of-week
// aggregation and visualization.
var DayOrder = [7]time.Weekday{
	time.Monday,
	time.Tuesday,
	time.Wednesday,
	time.Thursday,
	time.Friday,
	time.Saturday,
	time.Sunday,
}

// DayStat is the aggregate for one day of the week. A day with no
// transactions is still present with Count 0 and an undefined mean; it is
// never silently dropped.
type DayStat struct {
	Day   time.Weekday
	Sum   core.Money
	Count int
}

// Mean returns the mean transaction amount for the day, ok=false when the
// day has no transactions.
func (d DayStat) Mean() (float64, bool) {
	if d.Count == 0 {
		return 0, false
	}
	return d.Sum.Units() / float64(d.Count), true
}

// WeekdayStats groups by day of week. The result always has seven entries
// in DayOrder, Monday first.
func WeekdayStats(l core.Ledger) [7]DayStat {
	var out [7]DayStat
	for i, d := range DayOrder {
		out[i].Day = d
	}
	for _, t := range l {
		s := &out[dayIndex(t.Weekday())]
		s.Sum = s.Sum.Add(t.Amount)
		s.Count++
	}
	return out
}

// dayIndex maps a time.Weekday onto the Monday-first DayOrder index.
func dayIndex(d time.Weekday) int {
	if d == time.Sunday {
		return 6
	}
	return int(d) - 1
}

// WeekdayWeekendAverages returns the arithmetic mean of the per-day means
// over Monday-Friday and over Saturday-Sunday. This is a mean of means,
// not a pooled mean over transactions: a weekday with few large purchases
// weighs the same as one with many small ones. Days without transactions
// are excluded; ok is false when no day in the group has data.
func WeekdayWeekendAverages(days [7]DayStat) (weekday float64, weekdayOK bool, weekend float64, weekendOK bool) {
	weekday, weekdayOK = meanOfDayMeans(days[:5])
	weekend, weekendOK = meanOfDayMeans(days[5:])
	return
}

func meanOfDayMeans(days []DayStat) (float64, bool) {
	var sum float64
	var n int
	for _, d := range days {
		if m, ok := d.Mean(); ok {
			sum += m
			n++
		}
	}
	if n == 0 {
		return 0, false
	}
	return sum / float64(n), true
}

// DayExtremes returns the days with the highest and lowest mean
// transaction amount among days that have data. Ties keep the earlier day
// in DayOrder. ok is false for a ledger with no transactions at all.
func DayExtremes(days [7]DayStat) (most, least DayStat, ok bool) {
	var bestMean, worstMean float64
	for _, d := range days {
		m, defined := d.Mean()
		if !defined {
			continue
		}
		if !ok {
			most, least, bestMean, worstMean, ok = d, d, m, m, true
			continue
		}
		if m > bestMean {
			most, bestMean = d, m
		}
		if m < worstMean {
			least, worstMean = d, m
		}
	}
	return
}

// HourHeatmap is total spending in currency units for every
// (day-of-week, hour) combination, dense-filled with zeros.
// Rows follow DayOrder; columns are hours 0-23.
type HourHeatmap [7][24]float64

// HourlyHeatmap groups summed amounts by day of week and hour of day.
func HourlyHeatmap(l core.Ledger) HourHeatmap {
	var out HourHeatmap
	for _, t := range l {
		out[dayIndex(t.Weekday())][t.Hour()] += t.Amount.Units()
	}
	return out
}
