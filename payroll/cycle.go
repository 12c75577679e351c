package payroll

import (
	"fmt"
	"strings"
	"time"

	"payprep/internal/timeutil"
)

// Cycle is a closed calendar-date interval covering one semi-monthly pay period.
type Cycle struct {
	Start time.Time
	End   time.Time
}

// ResolveCycle returns the pay cycle containing today: the 1st through the
// 15th, or the 16th through the last day of the month.
func ResolveCycle(today time.Time) Cycle {
	day := timeutil.StartOfDay(today)
	year, month, dom := day.Date()
	loc := day.Location()

	if dom <= 15 {
		return Cycle{
			Start: time.Date(year, month, 1, 0, 0, 0, 0, loc),
			End:   time.Date(year, month, 15, 0, 0, 0, 0, loc),
		}
	}
	return Cycle{
		Start: time.Date(year, month, 16, 0, 0, 0, 0, loc),
		End:   time.Date(year, month, timeutil.LastDayOfMonth(day), 0, 0, 0, 0, loc),
	}
}

// Contains reports whether day falls within the cycle, both ends inclusive.
func (c Cycle) Contains(day time.Time) bool {
	return timeutil.CompareDay(day, c.Start) >= 0 && timeutil.CompareDay(day, c.End) <= 0
}

func (c Cycle) String() string {
	return fmt.Sprintf("%s..%s", c.Start.Format(time.DateOnly), c.End.Format(time.DateOnly))
}

var dateLayouts = []string{
	time.DateOnly,
	"2006/01/02",
	"01/02/2006",
	"1/2/2006",
	"01-02-2006",
	"Jan 2, 2006",
	"January 2, 2006",
	"2-Jan-2006",
	"02-Jan-2006",
	time.DateTime,
	"2006-01-02T15:04:05",
	time.RFC3339,
	"01/02/2006 15:04",
	"1/2/2006 15:04",
	"01/02/2006 15:04:05",
	"1/2/2006 15:04:05",
}

// ParseDate reads a time-entry date in loc. Any time-of-day component is kept
// but ignored by Cycle.Contains.
func ParseDate(value string, loc *time.Location) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}

	for _, layout := range dateLayouts {
		if parsed, err := time.ParseInLocation(layout, value, loc); err == nil {
			return parsed, nil
		}
	}
	return time.Time{}, fmt.Errorf("unsupported date format: %q", value)
}
