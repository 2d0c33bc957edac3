package availability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedClock(value string) func() time.Time {
	parsed, err := time.Parse(time.RFC3339, value)
	if err != nil {
		panic(err)
	}
	return func() time.Time { return parsed }
}

func TestDatesStartTomorrow(t *testing.T) {
	calendar := NewCalendar(7).WithClock(fixedClock("2026-03-10T14:30:00Z"))

	dates := calendar.Dates()
	require.Len(t, dates, 7)

	assert.Equal(t, "2026-03-11", dates[0].Format(DateFormat))
	assert.Equal(t, "2026-03-17", dates[6].Format(DateFormat))
}

func TestDatesSlideWithTheClock(t *testing.T) {
	calendar := NewCalendar(7)

	calendar.WithClock(fixedClock("2026-03-10T00:00:00Z"))
	first := calendar.Dates()[0]

	calendar.WithClock(fixedClock("2026-03-11T00:00:00Z"))
	shifted := calendar.Dates()[0]

	assert.Equal(t, first.AddDate(0, 0, 1), shifted)
}

func TestContains(t *testing.T) {
	calendar := NewCalendar(7).WithClock(fixedClock("2026-03-10T14:30:00Z"))

	tests := []struct {
		name string
		date string
		want bool
	}{
		{"today is not bookable", "2026-03-10", false},
		{"tomorrow is the first bookable day", "2026-03-11", true},
		{"last day of the window", "2026-03-17", true},
		{"first day past the window", "2026-03-18", false},
		{"distant past", "2020-01-01", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			date, err := ParseDate(tt.date)
			require.NoError(t, err)
			assert.Equal(t, tt.want, calendar.Contains(date))
		})
	}
}

func TestContainsIgnoresTimeOfDay(t *testing.T) {
	calendar := NewCalendar(7).WithClock(fixedClock("2026-03-10T14:30:00Z"))

	lateEvening := time.Date(2026, 3, 11, 23, 59, 59, 0, time.UTC)
	assert.True(t, calendar.Contains(lateEvening))
}

func TestNewCalendarDefaultsWindow(t *testing.T) {
	calendar := NewCalendar(0).WithClock(fixedClock("2026-03-10T00:00:00Z"))
	assert.Len(t, calendar.Dates(), 7)
}

func TestParseDate(t *testing.T) {
	date, err := ParseDate("2026-03-11")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 3, 11, 0, 0, 0, 0, time.UTC), date)

	_, err = ParseDate("11-03-2026")
	assert.Error(t, err)

	_, err = ParseDate("tomorrow")
	assert.Error(t, err)
}

func TestNormalize(t *testing.T) {
	timestamp := time.Date(2026, 3, 11, 18, 45, 12, 999, time.UTC)
	assert.Equal(t, time.Date(2026, 3, 11, 0, 0, 0, 0, time.UTC), Normalize(timestamp))
}
