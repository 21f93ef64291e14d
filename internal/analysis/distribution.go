package analysis

import (
	"math"
	"sort"

	"spendsight/internal/core"
)

// ReportPercentiles is the fixed set of ranks the insights report carries.
var ReportPercentiles = []int{10, 25, 50, 75, 90, 95, 99}

// PercentileValue is the interpolated amount at one percentile rank.
type PercentileValue struct {
	Rank  int
	Value float64
}

// Percentile computes the interpolated percentile of values at rank p
// (0-100): position p/100*(n-1) in the sorted values, linearly
// interpolated between the two bracketing order statistics. The input is
// not modified and its order does not affect the result. ok is false for
// an empty input.
func Percentile(values []float64, p float64) (float64, bool) {
	if len(values) == 0 {
		return 0, false
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	pos := p / 100 * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo < 0 {
		lo, hi = 0, 0
	}
	if hi > len(sorted)-1 {
		lo, hi = len(sorted)-1, len(sorted)-1
	}
	if lo == hi {
		return sorted[lo], true
	}
	frac := pos - float64(lo)
	return sorted[lo] + frac*(sorted[hi]-sorted[lo]), true
}

// Percentiles computes the amount percentile for each requested rank over
// the full transaction population. An empty ledger yields nil.
func Percentiles(l core.Ledger, ranks []int) []PercentileValue {
	if len(l) == 0 {
		return nil
	}
	amounts := l.Amounts()
	out := make([]PercentileValue, len(ranks))
	for i, r := range ranks {
		v, _ := Percentile(amounts, float64(r))
		out[i] = PercentileValue{Rank: r, Value: v}
	}
	return out
}

// SizeBucket is the transaction count for one fixed amount range.
type SizeBucket struct {
	Label string
	Count int
}

// Amount-range boundaries in cents. Ranges are half-open [lo, hi) with the
// last bucket unbounded above, so every non-negative amount lands in
// exactly one bucket and counts reconcile with the transaction total.
var sizeBoundaries = []struct {
	label string
	hi    int64 // exclusive upper bound in cents
}{
	{"<5", 500},
	{"5-10", 1000},
	{"10-20", 2000},
	{"20-50", 5000},
	{"50-100", 10000},
	{"100-200", 20000},
	{"200-500", 50000},
	{">500", math.MaxInt64},
}

// SizeBuckets partitions transactions into the fixed amount ranges. Every
// bucket is present even at count 0 so chart axes stay fixed.
func SizeBuckets(l core.Ledger) []SizeBucket {
	out := make([]SizeBucket, len(sizeBoundaries))
	for i, b := range sizeBoundaries {
		out[i].Label = b.label
	}
	for _, t := range l {
		for i, b := range sizeBoundaries {
			if t.Amount.Cents < b.hi {
				out[i].Count++
				break
			}
		}
	}
	return out
}

// SizeShares is the share of transaction count (not amount) in the small,
// medium and large partitions: amount < 10, 10 <= amount <= 50, and
// amount > 50 currency units. The partitions are exhaustive and disjoint;
// the percentages are rounded independently downstream and need not sum to
// exactly 100.
type SizeShares struct {
	SmallCount  int
	MediumCount int
	LargeCount  int
	SmallPct    float64
	MediumPct   float64
	LargePct    float64
}

// Shares computes the small/medium/large partition of transaction counts.
// An empty ledger yields all-zero shares.
func Shares(l core.Ledger) SizeShares {
	var s SizeShares
	for _, t := range l {
		switch {
		case t.Amount.Cents < 1000:
			s.SmallCount++
		case t.Amount.Cents <= 5000:
			s.MediumCount++
		default:
			s.LargeCount++
		}
	}
	if len(l) == 0 {
		return s
	}
	total := float64(len(l))
	s.SmallPct = float64(s.SmallCount) / total * 100
	s.MediumPct = float64(s.MediumCount) / total * 100
	s.LargePct = float64(s.LargeCount) / total * 100
	return s
}
