// Package calendar resolves what a client sees on each calendar date: their
// assigned program's template day projected via week/day arithmetic, unless a
// per-date workout override exists, in which case the override wins outright.
// Entries are derived on demand and never stored.
package calendar

import (
	"time"

	"fitbysuarez/coaching/internal/domain"
)

// Source says where a resolved entry came from.
type Source string

const (
	// SourceEmpty means no workout and no rest marker for the date.
	SourceEmpty Source = "empty"
	// SourceTemplate means the entry was projected from the assigned program.
	SourceTemplate Source = "template"
	// SourceOverride means a persisted per-date workout replaced the template.
	SourceOverride Source = "override"
)

// Exercise is one line of a resolved entry, unified across both sources.
// Detail holds the template's stats text or the override's instructions.
type Exercise struct {
	Name       string `json:"name"`
	Detail     string `json:"detail,omitempty"`
	VideoURL   string `json:"videoUrl,omitempty"`
	IsSuperset bool   `json:"isSuperset"`
	// Label is the display letter ("A", "B1", "B2", ...), recomputed from list
	// order and superset flags on every resolve.
	Label string `json:"label"`
}

// Entry is the resolved value for one calendar cell.
type Entry struct {
	Date      string     `json:"date"` // domain.DateLayout
	IsToday   bool       `json:"isToday"`
	Source    Source     `json:"source"`
	Title     string     `json:"title,omitempty"`
	Warmup    string     `json:"warmup,omitempty"`
	Cooldown  string     `json:"cooldown,omitempty"`
	IsRest    bool       `json:"isRest"`
	Exercises []Exercise `json:"exercises,omitempty"`
}

// MondayOnOrAfter returns the first Monday on or after t's date.
func MondayOnOrAfter(t time.Time) time.Time {
	d := Midnight(t)
	offset := (int(time.Monday) - int(d.Weekday()) + 7) % 7
	return d.AddDate(0, 0, offset)
}

// NextMonday is the anchor stamped when a program is assigned: the first
// Monday on or after the assignment date, so week 1 day 1 lands on a Monday.
func NextMonday(t time.Time) time.Time {
	return MondayOnOrAfter(t)
}

// MondayOnOrBefore returns the last Monday on or before t's date.
func MondayOnOrBefore(t time.Time) time.Time {
	d := Midnight(t)
	offset := (int(d.Weekday()) - int(time.Monday) + 7) % 7
	return d.AddDate(0, 0, -offset)
}

// Midnight normalizes t to UTC midnight of its calendar date, which makes
// whole-day subtraction exact.
func Midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// DefaultWindow reproduces the continuous calendar the UI renders: from the
// Monday of the week containing the first of the previous month, 26 weeks out.
func DefaultWindow(today time.Time) (from, to time.Time) {
	d := Midnight(today)
	firstOfPrevMonth := time.Date(d.Year(), d.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -1, 0)
	from = MondayOnOrBefore(firstOfPrevMonth)
	to = from.AddDate(0, 0, 26*domain.DaysPerWeek-1)
	return from, to
}

// daysBetween counts whole days from a to b; both must be midnights.
func daysBetween(a, b time.Time) int {
	return int(b.Sub(a) / (24 * time.Hour))
}
