// Package calendar provides the pure date arithmetic used by the booking
// ledger and the auto-booking allocator: ISO week numbers, week boundaries
// and weekday placement. All computation is UTC and date-only.
package calendar

import "time"

// DateLayout is the wire format for calendar dates.
const DateLayout = "2006-01-02"

// DateOnly truncates t to midnight UTC.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// ParseDate parses a YYYY-MM-DD string into a midnight-UTC time.
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, s, time.UTC)
}

// FormatDate renders t as YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// WeekNumber returns the ISO week-of-year for t using the
// Thursday-of-week rule: the date is shifted to the Thursday of its week,
// and weeks are counted from January 1st of that Thursday's year.
func WeekNumber(t time.Time) int {
	d := DateOnly(t)
	dayNum := int(d.Weekday())
	if dayNum == 0 {
		dayNum = 7
	}
	thursday := d.AddDate(0, 0, 4-dayNum)
	yearStart := time.Date(thursday.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
	days := int(thursday.Sub(yearStart).Hours() / 24)
	return days/7 + 1
}

// StartOfWeek returns the Monday of t's week, at midnight UTC.
func StartOfWeek(t time.Time) time.Time {
	d := DateOnly(t)
	dayNum := int(d.Weekday())
	if dayNum == 0 {
		dayNum = 7
	}
	return d.AddDate(0, 0, 1-dayNum)
}

// EndOfWeek returns the Sunday of t's week, at midnight UTC.
func EndOfWeek(t time.Time) time.Time {
	return StartOfWeek(t).AddDate(0, 0, 6)
}

// NextMonday returns the first Monday strictly after any day of the current
// week has begun: for a Monday input it returns the same day (the upcoming
// week's anchor), otherwise the Monday that follows t.
func NextMonday(t time.Time) time.Time {
	d := DateOnly(t)
	offset := (int(time.Monday) - int(d.Weekday()) + 7) % 7
	return d.AddDate(0, 0, offset)
}

// AddDays returns t shifted by n calendar days.
func AddDays(t time.Time, n int) time.Time {
	return DateOnly(t).AddDate(0, 0, n)
}

// DateForWeekday returns the concrete date of the given weekday
// (0=Sunday..6=Saturday) within the week beginning at weekStart.
func DateForWeekday(weekStart time.Time, weekday int) time.Time {
	d := DateOnly(weekStart)
	offset := (weekday - int(d.Weekday()) + 7) % 7
	return d.AddDate(0, 0, offset)
}

// SameDate reports whether a and b fall on the same calendar date.
func SameDate(a, b time.Time) bool {
	return DateOnly(a).Equal(DateOnly(b))
}

// IsPastDate reports whether d falls strictly before now's date.
func IsPastDate(d, now time.Time) bool {
	return DateOnly(d).Before(DateOnly(now))
}
