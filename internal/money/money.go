// Package money represents currency amounts as integer minor units (cents).
//
// All arithmetic that has to add up exactly to a target happens on Cents.
// Decimal input from users goes through Parse, which rounds half away from
// zero to two places before converting. Parsed amounts are bounded by
// MaxAmount and sums go through Add or Sum, so nothing wraps silently.
package money

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	ErrInvalidAmount  = errors.New("invalid amount")
	ErrNegativeAmount = errors.New("amount must not be negative")
	ErrOverflow       = errors.New("amount out of range")
)

// Places is the number of decimal places in a minor unit.
const Places = 2

// MaxAmount is the largest magnitude Parse accepts: ten trillion major units.
const MaxAmount Cents = 1_000_000_000_000_000

// maxDigits is the number of integer digits in MaxAmount's major units.
const maxDigits = 14

var hundred = decimal.NewFromInt(100)

// Cents is an amount in minor units.
type Cents int64

// Parse converts a decimal string such as "10.00" or "3.335" to Cents.
// Sub-cent precision is rounded half away from zero.
func Parse(s string) (Cents, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("%w: empty", ErrInvalidAmount)
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	c, err := FromDecimal(d)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", err, s)
	}
	return c, nil
}

// ParseNonNegative is Parse that also rejects negative amounts.
func ParseNonNegative(s string) (Cents, error) {
	c, err := Parse(s)
	if err != nil {
		return 0, err
	}
	if c < 0 {
		return 0, fmt.Errorf("%w: %s", ErrNegativeAmount, c)
	}
	return c, nil
}

// FromDecimal converts a decimal major-unit amount to Cents. Amounts beyond
// MaxAmount after rounding are rejected with ErrInvalidAmount.
func FromDecimal(d decimal.Decimal) (Cents, error) {
	if d.IsZero() {
		return 0, nil
	}
	// Bound by digit count first; rounding a huge exponent is expensive.
	switch digits := int64(d.NumDigits()) + int64(d.Exponent()); {
	case digits > maxDigits:
		return 0, fmt.Errorf("%w: exceeds %s", ErrInvalidAmount, MaxAmount)
	case digits < -Places:
		return 0, nil
	}

	d = d.Round(Places)
	if d.Abs().GreaterThan(MaxAmount.Decimal()) {
		return 0, fmt.Errorf("%w: exceeds %s", ErrInvalidAmount, MaxAmount)
	}
	return Cents(d.Mul(hundred).IntPart()), nil
}

// InRange reports whether c is within MaxAmount of zero.
func (c Cents) InRange() bool {
	return c >= -MaxAmount && c <= MaxAmount
}

// Add returns c+o, or ErrOverflow if the sum doesn't fit in Cents.
func (c Cents) Add(o Cents) (Cents, error) {
	s := c + o
	if (o > 0 && s < c) || (o < 0 && s > c) {
		return 0, fmt.Errorf("%w: %d + %d", ErrOverflow, c, o)
	}
	return s, nil
}

// Sum adds amounts with Add.
func Sum(amounts ...Cents) (Cents, error) {
	var total Cents
	for _, a := range amounts {
		var err error
		if total, err = total.Add(a); err != nil {
			return 0, err
		}
	}
	return total, nil
}

// Decimal returns the amount in major units.
func (c Cents) Decimal() decimal.Decimal {
	return decimal.New(int64(c), -Places)
}

// String formats the amount with exactly two decimals, e.g. "3.34".
func (c Cents) String() string {
	return c.Decimal().StringFixed(Places)
}
