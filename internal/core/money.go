// Package core defines the transaction ledger domain model.
//
// This file contains money parsing and conversion between cents and
// currency-unit representations.
package core

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Money is a non-negative amount in a single implicit currency, held as
// integer cents. Use cents for sums; Units is for statistics and display.
type Money struct {
	Cents int64
}

var hundred = decimal.NewFromInt(100)

// ParseMoney converts a decimal string to Money with half-up rounding to
// cents. Both dot (12.34) and comma (12,34) separators are accepted.
// Negative values and unparseable input are rejected; zero is allowed.
//
// Examples:
//
//	ParseMoney("12.34")  -> 1234 cents
//	ParseMoney("12,345") -> 1235 cents (rounds up)
//	ParseMoney("-1")     -> ErrNegativeAmount
func ParseMoney(s string) (Money, error) {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", "."))
	if s == "" {
		return Money{}, ErrInvalidAmount
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, ErrInvalidAmount
	}
	if d.IsNegative() {
		return Money{}, ErrNegativeAmount
	}
	return Money{Cents: d.Mul(hundred).Round(0).IntPart()}, nil
}

// MoneyFromUnits converts a unit amount to Money with half-up rounding.
func MoneyFromUnits(units float64) Money {
	return Money{Cents: decimal.NewFromFloat(units).Mul(hundred).Round(0).IntPart()}
}

// Units returns the amount in currency units as a float64.
func (m Money) Units() float64 {
	return float64(m.Cents) / 100.0
}

// Add returns the sum of two amounts.
func (m Money) Add(other Money) Money {
	return Money{Cents: m.Cents + other.Cents}
}

// Scale multiplies the amount by a factor, rounding half-up to cents.
func (m Money) Scale(factor float64) Money {
	return Money{Cents: decimal.NewFromInt(m.Cents).Mul(decimal.NewFromFloat(factor)).Round(0).IntPart()}
}

// String formats the amount with two decimals, e.g. "12.34".
func (m Money) String() string {
	return decimal.NewFromInt(m.Cents).Div(hundred).StringFixed(2)
}
