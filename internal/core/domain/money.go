package domain

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// Money is an amount in pence. All balance and change arithmetic is done on
// this integer type; decimal strings only appear at the storage and display edges.
type Money int64

// amountPattern is plain pounds with at most two decimals: no sign other than
// a leading minus, no exponent, no trailing zeros past the pence.
var amountPattern = regexp.MustCompile(`^-?[0-9]+(\.[0-9]{1,2})?$`)

// ParseMoney parses a decimal pounds string such as "1.50" into pence.
// Exponents, a leading plus and more than two decimal places are errors.
func ParseMoney(s string) (Money, error) {
	s = strings.TrimSpace(s)
	if !amountPattern.MatchString(s) {
		return 0, fmt.Errorf("parse amount %q: want pounds with at most two decimal places", s)
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("parse amount %q: %w", s, err)
	}
	pence := d.Shift(2)
	if !pence.IsInteger() {
		return 0, fmt.Errorf("parse amount %q: more than two decimal places", s)
	}
	if !pence.BigInt().IsInt64() {
		return 0, fmt.Errorf("parse amount %q: out of range", s)
	}
	return Money(pence.IntPart()), nil
}

// Decimal returns the amount in pounds.
func (m Money) Decimal() decimal.Decimal {
	return decimal.New(int64(m), -2)
}

// String formats the amount with exactly two decimal places, e.g. "0.50".
func (m Money) String() string {
	return m.Decimal().StringFixed(2)
}

// Pounds formats the amount for the customer, e.g. "£1.50".
func (m Money) Pounds() string {
	if m < 0 {
		return "-£" + (-m).String()
	}
	return "£" + m.String()
}
