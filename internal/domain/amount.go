package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// DefaultMonthlyGoal is the goal a fresh ledger starts with
var DefaultMonthlyGoal = decimal.NewFromInt(20000)

const (
	// MaxAmountIntegerDigits caps the digits left of the decimal point
	MaxAmountIntegerDigits = 15
	// MaxAmountScale is the finest fraction kept; finer input is rounded to it
	MaxAmountScale = 8

	// exponents below this are rejected before any rounding work is done
	minAmountExponent = -64
)

// ParseAmount parses user-entered money. Blank, non-numeric and negative input is rejected,
// as is anything with more than MaxAmountIntegerDigits integer digits or an extreme exponent.
func ParseAmount(raw string) (decimal.Decimal, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return decimal.Zero, fmt.Errorf("%w: empty", ErrInvalidAmount)
	}

	amount, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrInvalidAmount, raw)
	}
	if amount.IsNegative() {
		return decimal.Zero, ErrNegativeAmount
	}
	return boundAmount(amount, raw)
}

// boundAmount checks magnitude from the exponent and digit count only, so an input
// like "1e2000000000" is refused without ever being expanded
func boundAmount(amount decimal.Decimal, raw string) (decimal.Decimal, error) {
	exp := amount.Exponent()
	if exp < minAmountExponent || exp > MaxAmountIntegerDigits {
		return decimal.Zero, fmt.Errorf("%w: %q out of range", ErrInvalidAmount, raw)
	}
	if exp < -MaxAmountScale {
		amount = amount.Round(MaxAmountScale)
	}
	if amount.IsZero() {
		return decimal.Zero, nil
	}
	if int64(amount.NumDigits())+int64(amount.Exponent()) > MaxAmountIntegerDigits {
		return decimal.Zero, fmt.Errorf("%w: %q out of range", ErrInvalidAmount, raw)
	}
	return amount, nil
}

// CoerceAmount parses like ParseAmount but degrades any failure to zero
func CoerceAmount(raw string) decimal.Decimal {
	amount, err := ParseAmount(raw)
	if err != nil {
		return decimal.Zero
	}
	return amount
}

// sumAmounts adds up every value in m; an empty map sums to zero
func sumAmounts[K comparable](m map[K]decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, v := range m {
		total = total.Add(v)
	}
	return total
}
