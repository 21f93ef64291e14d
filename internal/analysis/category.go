package analysis

import (
	"sort"

	"github.com/samber/lo"

	"spendsight/internal/core"
)

// CategoryTotals groups the ledger by category and returns per-category
// sum, count and mean, ordered by sum descending. Equal sums are ordered
// lexicographically by category name so the result is deterministic.
func CategoryTotals(l core.Ledger) []Bucket {
	out := groupTotals(l, func(t core.Transaction) string { return t.Category })
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Sum.Cents != out[j].Sum.Cents {
			return out[i].Sum.Cents > out[j].Sum.Cents
		}
		return out[i].Key < out[j].Key
	})
	return out
}

// CategoryByMonth returns the sparse (year-month, category) cross-tabulation
// of summed amounts. Combinations with no transactions have no entry.
func CategoryByMonth(l core.Ledger) map[string]map[string]core.Money {
	out := make(map[string]map[string]core.Money)
	for _, t := range l {
		ym := t.YearMonth()
		row, ok := out[ym]
		if !ok {
			row = make(map[string]core.Money)
			out[ym] = row
		}
		row[t.Category] = row[t.Category].Add(t.Amount)
	}
	return out
}

// CategoryMonthGrid is the dense form of the category-by-month cross-tab:
// observed months by observed categories, absent combinations filled with 0.
// Only the stacked and cumulative chart views need this materialization.
type CategoryMonthGrid struct {
	Months     []string   // ascending year-month keys
	Categories []string   // ordered by overall total descending
	Cells      [][]float64 // Cells[monthIdx][categoryIdx], currency units
}

// DenseCategoryByMonth materializes the sparse cross-tab into a dense grid.
func DenseCategoryByMonth(l core.Ledger) CategoryMonthGrid {
	sparse := CategoryByMonth(l)

	months := lo.Keys(sparse)
	sort.Strings(months)

	categories := lo.Map(CategoryTotals(l), func(b Bucket, _ int) string { return b.Key })

	cells := make([][]float64, len(months))
	for i, ym := range months {
		row := make([]float64, len(categories))
		for j, cat := range categories {
			row[j] = sparse[ym][cat].Units()
		}
		cells[i] = row
	}
	return CategoryMonthGrid{Months: months, Categories: categories, Cells: cells}
}
