// Package money is the parsing boundary between user-entered currency text
// and the decimal amounts the rest of the system works with.
package money

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

var ErrMalformedAmount = errors.New("malformed monetary amount")

// Parse converts user-entered monetary text into a non-negative decimal with
// two-decimal scale. Both plain decimal notation ("1234.56") and pt-BR
// currency notation ("R$ 1.234,56") are accepted.
func Parse(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, ErrMalformedAmount
	}

	if strings.ContainsAny(s, "R$,") {
		return parseBRL(s)
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, ErrMalformedAmount
	}
	if d.IsNegative() {
		return decimal.Zero, ErrMalformedAmount
	}
	if d.Exponent() < -2 {
		return decimal.Zero, ErrMalformedAmount
	}

	return d, nil
}

// parseBRL reads pt-BR currency notation the same way the entry form does:
// every non-digit is stripped and the trailing two digits are cents.
func parseBRL(s string) (decimal.Decimal, error) {
	var digits strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	if digits.Len() == 0 {
		return decimal.Zero, ErrMalformedAmount
	}

	cents, err := decimal.NewFromString(digits.String())
	if err != nil {
		return decimal.Zero, ErrMalformedAmount
	}

	return cents.Shift(-2), nil
}

// Format renders an amount with exactly two decimal places.
func Format(d decimal.Decimal) string {
	return d.StringFixed(2)
}
