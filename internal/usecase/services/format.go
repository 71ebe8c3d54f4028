package services

import (
	"strings"

	"github.com/shopspring/decimal"
)

// formatAmount renders an amount the way the product displays Kwanza values:
// two decimal places, "." as the thousands separator and "," as the decimal
// mark, followed by the currency suffix. 33500 -> "33.500,00 Kz".
func formatAmount(amount decimal.Decimal, suffix string) string {
	fixed := amount.StringFixed(2)

	negative := strings.HasPrefix(fixed, "-")
	fixed = strings.TrimPrefix(fixed, "-")

	parts := strings.SplitN(fixed, ".", 2)
	intPart, fracPart := parts[0], parts[1]

	var groups []string
	for len(intPart) > 3 {
		groups = append([]string{intPart[len(intPart)-3:]}, groups...)
		intPart = intPart[:len(intPart)-3]
	}
	groups = append([]string{intPart}, groups...)

	formatted := strings.Join(groups, ".") + "," + fracPart
	if negative {
		formatted = "-" + formatted
	}
	if suffix != "" {
		formatted += " " + suffix
	}

	return formatted
}
