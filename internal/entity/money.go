package domain

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

var ErrBadPrice = errors.New("price is not a valid decimal")

// ParsePrice converts a decimal string coming from an external boundary
// (DB row, JSON body, persisted cart) into a Decimal. Non-numeric input is
// rejected instead of being coerced to zero.
func ParsePrice(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, fmt.Errorf("%w: empty", ErrBadPrice)
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrBadPrice, s)
	}
	return d, nil
}

// FormatAmount renders a monetary value for the presentation boundary:
// exactly two fractional digits. Internal arithmetic keeps full precision.
func FormatAmount(d decimal.Decimal) string {
	return d.StringFixed(2)
}
