package analysis

import (
	"math"
	"testing"

	"spendsight/internal/core"
)

func TestPercentileInterpolation(t *testing.T) {
	values := []float64{1, 2, 3, 4}

	cases := []struct {
		p    float64
		want float64
	}{
		{0, 1},   // min
		{100, 4}, // max
		{50, 2.5},
		{25, 1.75},
		{75, 3.25},
	}
	for _, tc := range cases {
		got, ok := Percentile(values, tc.p)
		if !ok || math.Abs(got-tc.want) > 1e-9 {
			t.Errorf("Percentile(%v) = %v (ok=%v), want %v", tc.p, got, ok, tc.want)
		}
	}
}

func TestPercentileOrderIndependent(t *testing.T) {
	a := []float64{5, 1, 9, 3, 7}
	b := []float64{9, 7, 5, 3, 1}
	for _, p := range []float64{10, 50, 90} {
		va, _ := Percentile(a, p)
		vb, _ := Percentile(b, p)
		if va != vb {
			t.Errorf("p=%v: %v != %v, result depends on input order", p, va, vb)
		}
	}
	// The input must not be reordered.
	if a[0] != 5 || a[4] != 7 {
		t.Error("Percentile mutated its input")
	}
}

func TestPercentileMedianMatches(t *testing.T) {
	odd := []float64{3, 1, 2}
	if got, _ := Percentile(odd, 50); got != 2 {
		t.Errorf("median of odd set = %v, want 2", got)
	}
	even := []float64{1, 2, 3, 10}
	if got, _ := Percentile(even, 50); got != 2.5 {
		t.Errorf("median of even set = %v, want 2.5", got)
	}
}

func TestPercentileDegenerate(t *testing.T) {
	if _, ok := Percentile(nil, 50); ok {
		t.Error("empty input must report undefined")
	}
	if got, ok := Percentile([]float64{7}, 99); !ok || got != 7 {
		t.Errorf("single value = %v (ok=%v), want 7", got, ok)
	}
}

func TestPercentilesReportRanks(t *testing.T) {
	got := Percentiles(smallLedger(), ReportPercentiles)
	if len(got) != len(ReportPercentiles) {
		t.Fatalf("got %d ranks, want %d", len(got), len(ReportPercentiles))
	}
	// Values must be non-decreasing across increasing ranks.
	for i := 1; i < len(got); i++ {
		if got[i].Value < got[i-1].Value {
			t.Errorf("rank %d value %v below rank %d value %v",
				got[i].Rank, got[i].Value, got[i-1].Rank, got[i-1].Value)
		}
	}
}

func TestSizeBuckets(t *testing.T) {
	l := core.Ledger{
		tx("2024-01-01", "A", 0),      // <5
		tx("2024-01-01", "A", 499),    // <5
		tx("2024-01-01", "A", 500),    // 5-10
		tx("2024-01-01", "A", 1999),   // 10-20
		tx("2024-01-01", "A", 2000),   // 20-50
		tx("2024-01-01", "A", 50000),  // >500
		tx("2024-01-01", "A", 999999), // >500
	}
	got := SizeBuckets(l)

	want := map[string]int{
		"<5": 2, "5-10": 1, "10-20": 1, "20-50": 1,
		"50-100": 0, "100-200": 0, "200-500": 0, ">500": 2,
	}
	if len(got) != len(want) {
		t.Fatalf("got %d buckets, want %d", len(got), len(want))
	}
	var total int
	for _, b := range got {
		if b.Count != want[b.Label] {
			t.Errorf("bucket %s = %d, want %d", b.Label, b.Count, want[b.Label])
		}
		total += b.Count
	}
	if total != len(l) {
		t.Fatalf("bucket counts sum to %d, want %d", total, len(l))
	}
}

func TestShares(t *testing.T) {
	// Two of three amounts are below 10, so the small share is 66.67%,
	// not 33.33%: boundary semantics matter.
	s := Shares(smallLedger())

	if s.SmallCount != 2 || s.MediumCount != 1 || s.LargeCount != 0 {
		t.Fatalf("counts = %d/%d/%d, want 2/1/0", s.SmallCount, s.MediumCount, s.LargeCount)
	}
	if math.Abs(s.SmallPct-200.0/3) > 1e-9 {
		t.Errorf("small pct = %v, want 66.66...", s.SmallPct)
	}
	if s.SmallCount+s.MediumCount+s.LargeCount != 3 {
		t.Error("partition must be exhaustive")
	}
}

func TestSharesBoundaries(t *testing.T) {
	l := core.Ledger{
		tx("2024-01-01", "A", 999),  // small: < 10
		tx("2024-01-01", "A", 1000), // medium: 10 inclusive
		tx("2024-01-01", "A", 5000), // medium: 50 inclusive
		tx("2024-01-01", "A", 5001), // large: > 50
	}
	s := Shares(l)
	if s.SmallCount != 1 || s.MediumCount != 2 || s.LargeCount != 1 {
		t.Fatalf("counts = %d/%d/%d, want 1/2/1", s.SmallCount, s.MediumCount, s.LargeCount)
	}
}
