package payroll

import (
	"strings"

	"github.com/shopspring/decimal"
)

// NormalizeEmail trims surrounding whitespace and lowercases.
func NormalizeEmail(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}

// NormalizeRate keeps only digits and decimal points, then parses the
// remainder. Empty or unparseable input yields an invalid NullDecimal.
func NormalizeRate(raw string) decimal.NullDecimal {
	cleaned := strings.Map(func(r rune) rune {
		if r == '.' || (r >= '0' && r <= '9') {
			return r
		}
		return -1
	}, raw)
	if cleaned == "" {
		return decimal.NullDecimal{}
	}

	value, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(value)
}

func normalizeProjectName(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}

func isEmpty(value string) bool {
	return strings.TrimSpace(value) == ""
}
