// Package analysis is the aggregation engine: a fixed catalogue of grouped
// statistics over an immutable core.Ledger. Every operation is a pure
// function of the ledger, independently recomputable, with no I/O and no
// shared state. Means over empty groups are never invented; they report
// ok=false instead.
package analysis

import (
	"sort"

	"spendsight/internal/core"
)

// Bucket is the sum/count produced for one grouping key.
// The mean is always derived from sum and count, never stored.
type Bucket struct {
	Key   string
	Sum   core.Money
	Count int
}

// Mean returns the mean amount in currency units.
// ok is false when the bucket is empty.
func (b Bucket) Mean() (float64, bool) {
	if b.Count == 0 {
		return 0, false
	}
	return b.Sum.Units() / float64(b.Count), true
}

// groupTotals groups the ledger by key and returns one bucket per observed
// key, sorted by key ascending. Absent keys get no bucket.
func groupTotals(l core.Ledger, key func(core.Transaction) string) []Bucket {
	byKey := make(map[string]*Bucket)
	for _, t := range l {
		k := key(t)
		b, ok := byKey[k]
		if !ok {
			b = &Bucket{Key: k}
			byKey[k] = b
		}
		b.Sum = b.Sum.Add(t.Amount)
		b.Count++
	}

	out := make([]Bucket, 0, len(byKey))
	for _, b := range byKey {
		out = append(out, *b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}

// MaxBySum returns the bucket with the greatest sum, ok=false when
// the slice is empty. Ties keep the earliest bucket in slice order.
func MaxBySum(buckets []Bucket) (Bucket, bool) {
	if len(buckets) == 0 {
		return Bucket{}, false
	}
	best := buckets[0]
	for _, b := range buckets[1:] {
		if b.Sum.Cents > best.Sum.Cents {
			best = b
		}
	}
	return best, true
}

// MinBySum returns the bucket with the smallest sum, ok=false when
// the slice is empty. Ties keep the earliest bucket in slice order.
func MinBySum(buckets []Bucket) (Bucket, bool) {
	if len(buckets) == 0 {
		return Bucket{}, false
	}
	best := buckets[0]
	for _, b := range buckets[1:] {
		if b.Sum.Cents < best.Sum.Cents {
			best = b
		}
	}
	return best, true
}

// MeanOfSums returns the mean of the bucket sums in currency units,
// ok=false when there are no buckets.
func MeanOfSums(buckets []Bucket) (float64, bool) {
	if len(buckets) == 0 {
		return 0, false
	}
	var cents int64
	for _, b := range buckets {
		cents += b.Sum.Cents
	}
	return float64(cents) / 100.0 / float64(len(buckets)), true
}

// MeanOfCounts returns the mean transaction count per bucket,
// ok=false when there are no buckets.
func MeanOfCounts(buckets []Bucket) (float64, bool) {
	if len(buckets) == 0 {
		return 0, false
	}
	var n int
	for _, b := range buckets {
		n += b.Count
	}
	return float64(n) / float64(len(buckets)), true
}
