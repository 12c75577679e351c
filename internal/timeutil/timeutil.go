package timeutil

import "time"

func StartOfDay(value time.Time) time.Time {
	return time.Date(value.Year(), value.Month(), value.Day(), 0, 0, 0, 0, value.Location())
}

func SameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}

// LastDayOfMonth returns the calendar day number of the final day in value's month.
func LastDayOfMonth(value time.Time) int {
	// Day 0 of the following month normalizes to the last day of this one.
	return time.Date(value.Year(), value.Month()+1, 0, 0, 0, 0, 0, value.Location()).Day()
}

// CompareDay orders two instants by calendar date only, ignoring time of day.
func CompareDay(a, b time.Time) int {
	if SameDay(a, b) {
		return 0
	}
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	switch {
	case ay != by:
		return compareInt(ay, by)
	case am != bm:
		return compareInt(int(am), int(bm))
	default:
		return compareInt(ad, bd)
	}
}

func compareInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
