package availability

import (
	"time"
)

// DateFormat is the wire format for visit dates across the API
const DateFormat = "2006-01-02"

// Calendar is the rolling window of bookable visit dates: tomorrow through
// tomorrow+windowDays-1, recomputed on every call so the window slides as
// days pass.
type Calendar struct {
	windowDays int
	now        func() time.Time
}

// NewCalendar creates a calendar with the given window size in days
func NewCalendar(windowDays int) *Calendar {
	if windowDays <= 0 {
		windowDays = 7
	}
	return &Calendar{
		windowDays: windowDays,
		now:        time.Now,
	}
}

// WithClock overrides the time source (used by tests)
func (c *Calendar) WithClock(now func() time.Time) *Calendar {
	c.now = now
	return c
}

// Dates returns every currently bookable date in chronological order
func (c *Calendar) Dates() []time.Time {
	today := Normalize(c.now())
	out := make([]time.Time, 0, c.windowDays)
	for i := 1; i <= c.windowDays; i++ {
		out = append(out, today.AddDate(0, 0, i))
	}
	return out
}

// Contains reports whether the given date is currently bookable
func (c *Calendar) Contains(date time.Time) bool {
	day := Normalize(date)
	today := Normalize(c.now())
	first := today.AddDate(0, 0, 1)
	last := today.AddDate(0, 0, c.windowDays)
	return !day.Before(first) && !day.After(last)
}

// Normalize truncates a timestamp to its UTC calendar date
func Normalize(t time.Time) time.Time {
	year, month, day := t.UTC().Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// ParseDate parses a visit date in the API wire format
func ParseDate(value string) (time.Time, error) {
	parsed, err := time.Parse(DateFormat, value)
	if err != nil {
		return time.Time{}, err
	}
	return Normalize(parsed), nil
}
