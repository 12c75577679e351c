package timeutil

import (
	"testing"
	"time"
)

func TestStartOfDay(t *testing.T) {
	t.Parallel()

	input := time.Date(2026, 3, 1, 14, 37, 9, 123, time.Local)
	got := StartOfDay(input)

	if got.Year() != 2026 || got.Month() != time.March || got.Day() != 1 {
		t.Fatalf("unexpected date: %v", got)
	}
	if got.Hour() != 0 || got.Minute() != 0 || got.Second() != 0 || got.Nanosecond() != 0 {
		t.Fatalf("expected midnight, got %v", got)
	}
}

func TestSameDay(t *testing.T) {
	t.Parallel()

	a := time.Date(2026, 3, 1, 9, 0, 0, 0, time.Local)
	b := time.Date(2026, 3, 1, 18, 30, 0, 0, time.Local)
	c := time.Date(2026, 3, 2, 0, 0, 0, 0, time.Local)

	if !SameDay(a, b) {
		t.Fatalf("expected same day for %v and %v", a, b)
	}
	if SameDay(a, c) {
		t.Fatalf("expected different days for %v and %v", a, c)
	}
}

func TestLastDayOfMonth(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   time.Time
		want int
	}{
		{name: "thirty one", in: time.Date(2026, 1, 20, 0, 0, 0, 0, time.UTC), want: 31},
		{name: "thirty", in: time.Date(2026, 4, 16, 0, 0, 0, 0, time.UTC), want: 30},
		{name: "february", in: time.Date(2026, 2, 16, 0, 0, 0, 0, time.UTC), want: 28},
		{name: "leap february", in: time.Date(2028, 2, 16, 0, 0, 0, 0, time.UTC), want: 29},
		{name: "december", in: time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC), want: 31},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := LastDayOfMonth(tc.in); got != tc.want {
				t.Fatalf("unexpected last day for %v: want %d, got %d", tc.in, tc.want, got)
			}
		})
	}
}

func TestCompareDay(t *testing.T) {
	t.Parallel()

	morning := time.Date(2026, 3, 15, 1, 0, 0, 0, time.UTC)
	evening := time.Date(2026, 3, 15, 23, 0, 0, 0, time.UTC)
	next := time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC)

	if got := CompareDay(morning, evening); got != 0 {
		t.Fatalf("expected same day to compare equal, got %d", got)
	}
	if got := CompareDay(evening, next); got != -1 {
		t.Fatalf("expected -1, got %d", got)
	}
	if got := CompareDay(next, morning); got != 1 {
		t.Fatalf("expected 1, got %d", got)
	}
}
