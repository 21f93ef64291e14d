package analysis

import (
	"sort"

	"spendsight/internal/core"
)

// TopTransactions selects the n transactions with the greatest amount,
// descending. Equal amounts keep their original ledger order. The result
// length is min(n, len(ledger)).
func TopTransactions(l core.Ledger, n int) []core.Transaction {
	if n <= 0 || len(l) == 0 {
		return nil
	}
	sorted := make([]core.Transaction, len(l))
	copy(sorted, l)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Amount.Cents > sorted[j].Amount.Cents
	})
	if n > len(sorted) {
		n = len(sorted)
	}
	return sorted[:n]
}

// SavingsRule projects the saving from reducing one category's total
// spending by a fixed factor. Categories match by exact string equality.
type SavingsRule struct {
	Category  string
	Reduction float64 // 0.20 means "spend 20% less"
}

// DefaultSavingsRules are the categories the report projects savings for.
var DefaultSavingsRules = []SavingsRule{
	{Category: "Restaurant", Reduction: 0.20},
	{Category: "Coffee", Reduction: 0.30},
	{Category: "Taxi", Reduction: 0.25},
}

// CategorySaving is the projected saving for one rule.
type CategorySaving struct {
	Category  string
	Reduction float64
	Amount    core.Money
}

// SavingsProjection is the per-rule projections and their sum.
type SavingsProjection struct {
	PerCategory []CategorySaving
	Total       core.Money
}

// ProjectSavings applies each rule to the category totals. A rule whose
// category is absent from the ledger contributes zero; that is never an
// error.
func ProjectSavings(categories []Bucket, rules []SavingsRule) SavingsProjection {
	totals := make(map[string]core.Money, len(categories))
	for _, b := range categories {
		totals[b.Key] = b.Sum
	}

	out := SavingsProjection{PerCategory: make([]CategorySaving, len(rules))}
	for i, r := range rules {
		saved := totals[r.Category].Scale(r.Reduction)
		out.PerCategory[i] = CategorySaving{Category: r.Category, Reduction: r.Reduction, Amount: saved}
		out.Total = out.Total.Add(saved)
	}
	return out
}
