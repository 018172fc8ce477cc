package core

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// Money is an amount held as whole cents.
type Money struct {
	Cents int64
}

// MaxCents bounds every amount so ledger totals cannot overflow int64.
const MaxCents int64 = 999_999_999_999

var (
	amountPattern = regexp.MustCompile(`^[+-]?\d+(\.\d+)?$`)

	maxCents = decimal.NewFromInt(MaxCents)
)

// ParseAmount converts a signed decimal numeral to Money, rounding half away
// from zero on the third decimal place.
//
// Examples:
//
//	ParseAmount("12.5")   -> 12.50
//	ParseAmount("12.345") -> 12.35
//	ParseAmount("-3")     -> -3.00
//	ParseAmount("1e3")    -> ErrInvalidAmountFormat
//	ParseAmount("1e10")   -> ErrInvalidAmountFormat
//	ParseAmount("10000000000") -> ErrAmountTooLarge
func ParseAmount(s string) (Money, error) {
	s = strings.TrimSpace(s)
	if !amountPattern.MatchString(s) {
		return Money{}, ErrInvalidAmountFormat
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, ErrInvalidAmountFormat
	}
	cents := d.Round(2).Shift(2)
	if cents.Abs().GreaterThan(maxCents) {
		return Money{}, ErrAmountTooLarge
	}
	return Money{Cents: cents.IntPart()}, nil
}

// String renders the amount with exactly two decimals, e.g. "12.50".
func (m Money) String() string {
	return decimal.New(m.Cents, -2).StringFixed(2)
}

func (m Money) IsZero() bool     { return m.Cents == 0 }
func (m Money) IsNegative() bool { return m.Cents < 0 }

func (m Money) Add(o Money) Money { return Money{Cents: m.Cents + o.Cents} }
func (m Money) Sub(o Money) Money { return Money{Cents: m.Cents - o.Cents} }

// Validate reports whether the amount is strictly positive and within MaxCents.
func (m Money) Validate() error {
	if m.Cents <= 0 {
		return ErrNonPositiveAmount
	}
	return m.checkRange()
}

func (m Money) checkRange() error {
	if m.Cents > MaxCents || m.Cents < -MaxCents {
		return ErrAmountTooLarge
	}
	return nil
}
