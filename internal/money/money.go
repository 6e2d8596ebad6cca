package money

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// ParseCents converts catalog price text ("$12.50", "7") to integer cents.
// Scaling is decimal-exact; malformed text is an error, never a silent zero,
// since it means the catalog row itself is corrupt.
func ParseCents(priceText string) (int64, error) {
	clean := strings.TrimSpace(strings.ReplaceAll(priceText, "$", ""))
	d, err := decimal.NewFromString(clean)
	if err != nil {
		return 0, fmt.Errorf("bad price text %q: %w", priceText, err)
	}
	cents := d.Mul(hundred)
	if !cents.IsInteger() {
		return 0, fmt.Errorf("bad price text %q: sub-cent precision", priceText)
	}
	return cents.IntPart(), nil
}

// FormatCents renders integer cents as "$12.50" for templates.
func FormatCents(cents int64) string {
	return "$" + decimal.NewFromInt(cents).Div(hundred).StringFixed(2)
}
