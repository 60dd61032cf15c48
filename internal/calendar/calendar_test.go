package calendar

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestMondayHelpers(t *testing.T) {
	cases := []struct {
		name       string
		in         time.Time
		onOrAfter  time.Time
		onOrBefore time.Time
	}{
		{"monday maps to itself", date(2025, 12, 1), date(2025, 12, 1), date(2025, 12, 1)},
		{"wednesday", date(2025, 12, 3), date(2025, 12, 8), date(2025, 12, 1)},
		{"sunday", date(2025, 12, 7), date(2025, 12, 8), date(2025, 12, 1)},
		{"saturday across month", date(2026, 1, 31), date(2026, 2, 2), date(2026, 1, 26)},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := MondayOnOrAfter(tc.in); !got.Equal(tc.onOrAfter) {
				t.Errorf("MondayOnOrAfter(%v) = %v, want %v", tc.in, got, tc.onOrAfter)
			}
			if got := MondayOnOrBefore(tc.in); !got.Equal(tc.onOrBefore) {
				t.Errorf("MondayOnOrBefore(%v) = %v, want %v", tc.in, got, tc.onOrBefore)
			}
		})
	}
}

func TestDefaultWindow(t *testing.T) {
	// Mid-December: window starts at the Monday of the week containing Nov 1.
	from, to := DefaultWindow(date(2025, 12, 15))

	// Nov 1 2025 is a Saturday; its week's Monday is Oct 27.
	if want := date(2025, 10, 27); !from.Equal(want) {
		t.Errorf("window start = %v, want %v", from, want)
	}
	if from.Weekday() != time.Monday {
		t.Errorf("window start is a %v, want Monday", from.Weekday())
	}

	if got := daysBetween(from, to) + 1; got != 26*7 {
		t.Errorf("window spans %d days, want %d", got, 26*7)
	}
	if to.Weekday() != time.Sunday {
		t.Errorf("window end is a %v, want Sunday", to.Weekday())
	}
}

func TestDefaultWindow_JanuaryLooksAtDecember(t *testing.T) {
	from, _ := DefaultWindow(date(2026, 1, 10))
	// Dec 1 2025 is itself a Monday.
	if want := date(2025, 12, 1); !from.Equal(want) {
		t.Errorf("window start = %v, want %v", from, want)
	}
}
