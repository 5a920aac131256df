// Package money holds the two-decimal rounding rules shared by every amount in a bill.
package money

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Places is the number of decimal places every stored amount is rounded to.
const Places = 2

// ErrInvalidAmount is returned when an amount string cannot be parsed.
var ErrInvalidAmount = errors.New("invalid amount")

// Cent is the smallest representable amount (0.01).
var Cent = decimal.New(1, -Places)

// Round rounds d to two decimal places, half away from zero.
func Round(d decimal.Decimal) decimal.Decimal {
	return d.Round(Places)
}

// Cents returns d, rounded to two places, as an integer number of cents.
func Cents(d decimal.Decimal) int64 {
	return Round(d).Shift(Places).IntPart()
}

// FromCents converts an integer number of cents back to an amount.
func FromCents(cents int64) decimal.Decimal {
	return decimal.New(cents, -Places)
}

// IsSettled reports whether |d| is below one cent.
func IsSettled(d decimal.Decimal) bool {
	return d.Abs().LessThan(Cent)
}

// Parse reads a user-entered amount such as "12.5" or " 3 ".
func Parse(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, fmt.Errorf("%w: empty", ErrInvalidAmount)
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	return d, nil
}

// Format renders d with exactly two digits after the decimal point.
func Format(d decimal.Decimal) string {
	return d.StringFixed(Places)
}
