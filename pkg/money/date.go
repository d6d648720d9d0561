package money

import (
	"fmt"
	"time"
)

// DateLayout is the canonical calendar-date wire format.
const DateLayout = "2006-01-02"

const day = 24 * time.Hour

// DateOf drops the time of day. The calendar fields are read in t's own
// location, so "2024-03-01" means the same day regardless of locale.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDate parses YYYY-MM-DD into a UTC calendar date.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return t, nil
}

// MustDate is ParseDate for constants and tests.
func MustDate(s string) time.Time {
	t, err := ParseDate(s)
	if err != nil {
		panic(err)
	}
	return t
}

// FormatDate renders a calendar date as YYYY-MM-DD.
func FormatDate(t time.Time) string { return DateOf(t).Format(DateLayout) }

// DaysBetween returns the whole calendar days from a to b (negative when b is
// before a).
func DaysBetween(a, b time.Time) int {
	return int(DateOf(b).Sub(DateOf(a)) / day)
}

// AddMonths adds n calendar months, normalising overflow the way time.Date
// does (Jan 31 + 1 month = Mar 2 or 3).
func AddMonths(t time.Time, n int) time.Time {
	d := DateOf(t)
	return time.Date(d.Year(), d.Month()+time.Month(n), d.Day(), 0, 0, 0, 0, time.UTC)
}

// Clock supplies "today" so callers and tests can pin the as-of date.
type Clock interface {
	Today() time.Time
}

// SystemClock reads the wall clock in UTC.
type SystemClock struct{}

func (SystemClock) Today() time.Time { return DateOf(time.Now().UTC()) }

// FixedClock always reports the same day.
type FixedClock time.Time

func (c FixedClock) Today() time.Time { return DateOf(time.Time(c)) }
