package payroll

import (
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

const (
	secondsPerHour = 3600
	// maxClockHours keeps hours*secondsPerHour plus minutes and seconds
	// inside int64.
	maxClockHours = math.MaxInt64/secondsPerHour - 1
	// MoneyPlaces is the number of decimal places totals and decimal hours are
	// rounded to. Rounding is half away from zero.
	MoneyPlaces = 2
)

// NormalizeDuration turns HH:MM into HH:MM:00. Values with two colons and the
// empty string pass through; surrounding whitespace is dropped.
func NormalizeDuration(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return trimmed
	}
	if strings.Count(trimmed, ":") == 1 {
		return trimmed + ":00"
	}
	return trimmed
}

// ParseHours converts an H:M:S clock duration into fractional hours. Hours may
// exceed 24 up to maxClockHours; minutes and seconds must be below 60.
// Anything else is invalid.
func ParseHours(duration string) decimal.NullDecimal {
	parts := strings.Split(duration, ":")
	if len(parts) != 3 {
		return decimal.NullDecimal{}
	}

	hours, ok := parseClockInt(parts[0], -1)
	if !ok || hours > maxClockHours {
		return decimal.NullDecimal{}
	}
	minutes, ok := parseClockInt(parts[1], 60)
	if !ok {
		return decimal.NullDecimal{}
	}
	seconds, err := decimal.NewFromString(parts[2])
	if err != nil || parts[2] == "" || strings.ContainsAny(parts[2], "+-eE") ||
		seconds.IsNegative() || seconds.GreaterThanOrEqual(decimal.NewFromInt(60)) {
		return decimal.NullDecimal{}
	}

	total := decimal.NewFromInt(hours*secondsPerHour + minutes*60).Add(seconds)
	return decimal.NewNullDecimal(total.Div(decimal.NewFromInt(secondsPerHour)))
}

// parseClockInt accepts an unsigned decimal integer below limit; a negative
// limit means unbounded.
func parseClockInt(value string, limit int64) (int64, bool) {
	if value == "" || strings.ContainsAny(value, "+-") {
		return 0, false
	}
	parsed, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, false
	}
	if limit >= 0 && parsed >= limit {
		return 0, false
	}
	return parsed, true
}

// ComputeTotal multiplies hours by rate and rounds to MoneyPlaces. The result
// is invalid when either operand is.
func ComputeTotal(hours, rate decimal.NullDecimal) decimal.NullDecimal {
	if !hours.Valid || !rate.Valid {
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(hours.Decimal.Mul(rate.Decimal).Round(MoneyPlaces))
}

// derive fills duration, hours and total. A row without a timer config match
// has no pay process, so its total stays null even when hours and rate are
// known.
func derive(rows []JoinedRow) {
	for i := range rows {
		rows[i].Duration = NormalizeDuration(rows[i].Entry.Time)
		rows[i].Hours = ParseHours(rows[i].Duration)
		if rows[i].Timer == nil {
			rows[i].Total = decimal.NullDecimal{}
			continue
		}
		rows[i].Total = ComputeTotal(rows[i].Hours, rows[i].Rate)
	}
}
