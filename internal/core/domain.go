package core

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrZeroDate       = errors.New("transaction date cannot be zero")
	ErrEmptyCategory  = errors.New("empty category")
	ErrInvalidAmount  = errors.New("invalid amount")
	ErrNegativeAmount = errors.New("negative amount")
)

type (
	// Transaction is one ledger entry. Category is kept verbatim as loaded;
	// no case folding or fuzzy matching happens anywhere downstream.
	Transaction struct {
		Date     time.Time
		Category string
		Amount   Money
	}

	// Ledger is the full ordered collection of transactions for one run.
	// It is immutable after load; every aggregation treats it as read-only.
	Ledger []Transaction
)

func (t Transaction) Validate() error {
	if t.Date.IsZero() {
		return ErrZeroDate
	}
	if strings.TrimSpace(t.Category) == "" {
		return ErrEmptyCategory
	}
	if t.Amount.Cents < 0 {
		return ErrNegativeAmount
	}
	return nil
}

// Year returns the calendar year of the transaction.
func (t Transaction) Year() int {
	return t.Date.Year()
}

// Month returns the calendar month, 1-12.
func (t Transaction) Month() int {
	return int(t.Date.Month())
}

// YearMonth returns the calendar-month bucket key, e.g. "2024-03".
func (t Transaction) YearMonth() string {
	return t.Date.Format("2006-01")
}

// Quarter returns the calendar-quarter bucket key, e.g. "2024Q1".
func (t Transaction) Quarter() string {
	q := (int(t.Date.Month())-1)/3 + 1
	return fmt.Sprintf("%dQ%d", t.Date.Year(), q)
}

// Weekday returns the day of the week of the transaction.
func (t Transaction) Weekday() time.Weekday {
	return t.Date.Weekday()
}

// Hour returns the hour of day, 0-23.
func (t Transaction) Hour() int {
	return t.Date.Hour()
}

// Total returns the sum of all transaction amounts.
func (l Ledger) Total() Money {
	var cents int64
	for _, t := range l {
		cents += t.Amount.Cents
	}
	return Money{Cents: cents}
}

// Amounts returns every transaction amount in currency units, in ledger order.
func (l Ledger) Amounts() []float64 {
	out := make([]float64, len(l))
	for i, t := range l {
		out[i] = t.Amount.Units()
	}
	return out
}

// DateRange returns the earliest and latest transaction dates.
// ok is false for an empty ledger.
func (l Ledger) DateRange() (first, last time.Time, ok bool) {
	if len(l) == 0 {
		return time.Time{}, time.Time{}, false
	}
	first, last = l[0].Date, l[0].Date
	for _, t := range l[1:] {
		if t.Date.Before(first) {
			first = t.Date
		}
		if t.Date.After(last) {
			last = t.Date
		}
	}
	return first, last, true
}

// Validate checks every transaction and reports the first invalid one.
func (l Ledger) Validate() error {
	for i, t := range l {
		if err := t.Validate(); err != nil {
			return fmt.Errorf("transaction %d: %w", i, err)
		}
	}
	return nil
}
