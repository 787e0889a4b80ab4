package calendar_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clb2clb2/sgtri-desp-sub000/calendar"
)

func TestParseDate(t *testing.T) {
	cases := []struct {
		in   string
		want calendar.Date
		ok   bool
	}{
		{"05/06/25", calendar.NewDate(2025, time.June, 5), true},
		{"5/6/25", calendar.NewDate(2025, time.June, 5), true},
		{"05/06/2025", calendar.NewDate(2025, time.June, 5), true},
		{" 29/02/24 ", calendar.NewDate(2024, time.February, 29), true},
		{"29/02/25", calendar.Date{}, false},
		{"31/04/25", calendar.Date{}, false},
		{"00/01/25", calendar.Date{}, false},
		{"01/13/25", calendar.Date{}, false},
		{"01/01/025", calendar.Date{}, false},
		{"01/01", calendar.Date{}, false},
		{"aa/01/25", calendar.Date{}, false},
		{"", calendar.Date{}, false},
		{"01-01-25", calendar.Date{}, false},
		{"01/01/1900", calendar.NewDate(1900, time.January, 1), true},
		{"31/12/2099", calendar.NewDate(2099, time.December, 31), true},
		{"31/12/1899", calendar.Date{}, false},
		{"01/01/2100", calendar.Date{}, false},
		{"01/01/1700", calendar.Date{}, false},
		{"31/12/9999", calendar.Date{}, false},
	}

	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			got, ok := calendar.ParseDate(tc.in)
			assert.Equal(t, tc.ok, ok)
			if tc.ok {
				assert.True(t, got.Equal(tc.want), "got %s, want %s", got, tc.want)
			}
		})
	}
}

func TestParseClock(t *testing.T) {
	cases := []struct {
		in   string
		want calendar.Clock
		ok   bool
	}{
		{"00:00", calendar.NewClock(0, 0), true},
		{"7:05", calendar.NewClock(7, 5), true},
		{"23:59", calendar.NewClock(23, 59), true},
		{"24:00", calendar.Clock{}, false},
		{"12:60", calendar.Clock{}, false},
		{"12:5", calendar.Clock{}, false},
		{"12", calendar.Clock{}, false},
		{"ab:cd", calendar.Clock{}, false},
		{"", calendar.Clock{}, false},
	}

	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			got, ok := calendar.ParseClock(tc.in)
			assert.Equal(t, tc.ok, ok)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestDisplayRoundTrips(t *testing.T) {
	d := calendar.NewDate(2025, time.January, 4)
	assert.Equal(t, "04/01/2025", d.Display())

	parsed, ok := calendar.ParseDate(d.Display())
	require.True(t, ok)
	assert.True(t, parsed.Equal(d))
}

func TestCombine_DefaultsToMidnight(t *testing.T) {
	d := calendar.NewDate(2025, time.March, 1)

	assert.Equal(t, time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), calendar.Combine(d, nil))

	c := calendar.NewClock(6, 59)
	assert.Equal(t, time.Date(2025, 3, 1, 6, 59, 0, 0, time.UTC), calendar.Combine(d, &c))
}

func TestDaysBetween_NeverNegative(t *testing.T) {
	jan1 := calendar.NewDate(2025, time.January, 1)
	jan5 := calendar.NewDate(2025, time.January, 5)

	assert.Equal(t, 4, calendar.DaysBetween(jan1, jan5))
	assert.Equal(t, 0, calendar.DaysBetween(jan5, jan1))
	assert.Equal(t, 0, calendar.DaysBetween(jan1, jan1))

	// Across a month and a leap day.
	assert.Equal(t, 2, calendar.DaysBetween(calendar.NewDate(2024, time.February, 28), calendar.NewDate(2024, time.March, 1)))
}

func TestDaysBetween_LongerThanDurationRange(t *testing.T) {
	// GIVEN: 400 Gregorian years, past what a time.Duration can hold
	from := calendar.NewDate(1700, time.January, 1)
	to := calendar.NewDate(2100, time.January, 1)

	// THEN: the count is exact
	assert.Equal(t, 146097, calendar.DaysBetween(from, to))
}

func TestSpan_NightsMatchDays(t *testing.T) {
	span := calendar.Span{
		Start: calendar.NewDate(calendar.MinYear, time.January, 1),
		End:   calendar.NewDate(calendar.MaxYear, time.December, 31),
	}

	assert.Len(t, span.Days(), span.Nights()+1)
}

func TestSpan(t *testing.T) {
	s := calendar.Span{
		Start: calendar.NewDate(2025, time.December, 30),
		End:   calendar.NewDate(2026, time.January, 2),
	}

	days := s.Days()
	require.Len(t, days, 4)
	assert.True(t, days[0].Equal(s.Start))
	assert.True(t, days[3].Equal(s.End))
	assert.Equal(t, 3, s.Nights())

	assert.True(t, s.Contains(calendar.NewDate(2026, time.January, 1)))
	assert.False(t, s.Contains(calendar.NewDate(2026, time.January, 3)))
	assert.Equal(t, "[2025-12-30, 2026-01-02]", s.String())
}
