package core

// convert.go turns raw form values into typed inventory fields.
//
// Numeric inputs arrive from <input type="number"> widgets, so only plain
// decimal notation is accepted. A blank numeric field is rejected: number
// widgets submit "" for text they cannot parse. Text fields are kept exactly
// as typed.

import (
	"errors"
	"regexp"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	// ErrNotANumber is returned for values that are not plain decimal numbers.
	ErrNotANumber = errors.New("invalid number")

	// ErrNegative is returned for numbers below zero.
	ErrNegative = errors.New("invalid number: must not be negative")

	// ErrNotInteger is returned when a quantity has a fractional part.
	ErrNotInteger = errors.New("invalid number: must be a whole number")
)

// decimalRegex accepts what a number input submits: optional sign, digits,
// optional fraction. Exponents and separators are rejected.
var decimalRegex = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)$`)

// ParseMoney converts a form value to a non-negative decimal amount.
func ParseMoney(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if !decimalRegex.MatchString(s) {
		return decimal.Zero, ErrNotANumber
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, ErrNotANumber
	}
	if d.IsNegative() {
		return decimal.Zero, ErrNegative
	}
	return d, nil
}

// ParseQuantity converts a form value to a non-negative whole number.
func ParseQuantity(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if !decimalRegex.MatchString(s) {
		return 0, ErrNotANumber
	}

	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		if strings.Contains(s, ".") {
			return 0, ErrNotInteger
		}
		return 0, ErrNotANumber
	}
	if n < 0 {
		return 0, ErrNegative
	}
	return n, nil
}

// FormatMoney renders an amount in plain decimal form, e.g. "9.99".
func FormatMoney(d decimal.Decimal) string {
	return d.String()
}
