package calendar_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-wtime/internal/calendar"
)

func TestIsLeapYear(t *testing.T) {
	tests := []struct {
		year uint64
		want bool
	}{
		{1970, false},
		{1972, true},
		{1900, false},
		{2000, true},
		{2023, false},
		{2024, true},
		{2100, false},
		{2400, true},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, calendar.IsLeapYear(tt.year), "year %d", tt.year)
	}
}

func TestDateFromSeconds(t *testing.T) {
	tests := []struct {
		name    string
		seconds uint64
		want    calendar.Date
	}{
		{"Epoch", 0, calendar.Date{Year: 1970, Month: 1, Day: 1}},
		{"Last second of first day", 86_399, calendar.Date{Year: 1970, Month: 1, Day: 1}},
		{"Second day", 86_400, calendar.Date{Year: 1970, Month: 1, Day: 2}},
		{"Last second of January", 2_678_399, calendar.Date{Year: 1970, Month: 1, Day: 31}},
		{"Month boundary lands in February", 2_678_400, calendar.Date{Year: 1970, Month: 2, Day: 1}},
		{"Last second of 1970", 31_535_999, calendar.Date{Year: 1970, Month: 12, Day: 31}},
		{"Year boundary lands in 1971", 31_536_000, calendar.Date{Year: 1971, Month: 1, Day: 1}},
		{"Regression vector", 1_728_933_069, calendar.Date{Year: 2024, Month: 10, Day: 14}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, calendar.DateFromSeconds(tt.seconds))
		})
	}
}

// TestDateFromSeconds_MatchesStdlib cross-checks the year/month walk against
// the standard library across several centuries, including 2000 and 2100.
func TestDateFromSeconds_MatchesStdlib(t *testing.T) {
	const step = 7_919 * 1_009 // prime-ish stride, lands on varied times of day
	const limit = uint64(9_000_000_000)

	for s := uint64(0); s < limit; s += step {
		got := calendar.DateFromSeconds(s)
		y, m, d := time.Unix(int64(s), 0).UTC().Date()

		require.Equal(t, calendar.Date{Year: uint64(y), Month: uint64(m), Day: uint64(d)}, got, "seconds=%d", s)
		require.True(t, got.Valid(), "seconds=%d", s)
	}
}

// TestDateFromSeconds_RoundTrip rebuilds the input from the decomposed date
// and the sub-day remainder.
func TestDateFromSeconds_RoundTrip(t *testing.T) {
	const step = 104_729 * 37
	const limit = uint64(5_000_000_000)

	for s := uint64(0); s < limit; s += step {
		d := calendar.DateFromSeconds(s)
		rebuilt := calendar.SecondsBeforeDate(d) + s%calendar.SecondsPerDay
		require.Equal(t, s, rebuilt, "date=%s", d)
	}
}

func TestDaysInMonth(t *testing.T) {
	assert.Equal(t, uint64(29), calendar.DaysInMonth(2024, 2))
	assert.Equal(t, uint64(28), calendar.DaysInMonth(2023, 2))
	assert.Equal(t, uint64(28), calendar.DaysInMonth(1900, 2))
	assert.Equal(t, uint64(31), calendar.DaysInMonth(2023, 12))
	assert.Equal(t, uint64(30), calendar.DaysInMonth(2023, 4))
	assert.Zero(t, calendar.DaysInMonth(2023, 0))
	assert.Zero(t, calendar.DaysInMonth(2023, 13))
}

func TestDayOfYear(t *testing.T) {
	assert.Equal(t, uint64(1), calendar.DayOfYear(calendar.Date{Year: 2024, Month: 1, Day: 1}))
	assert.Equal(t, uint64(60), calendar.DayOfYear(calendar.Date{Year: 2024, Month: 2, Day: 29}))
	assert.Equal(t, uint64(288), calendar.DayOfYear(calendar.Date{Year: 2024, Month: 10, Day: 14}))
	assert.Equal(t, uint64(365), calendar.DayOfYear(calendar.Date{Year: 2023, Month: 12, Day: 31}))
	assert.Equal(t, uint64(366), calendar.DayOfYear(calendar.Date{Year: 2024, Month: 12, Day: 31}))
}

func TestSecondsBeforeYear(t *testing.T) {
	assert.Zero(t, calendar.SecondsBeforeYear(1970))
	assert.Equal(t, uint64(31_536_000), calendar.SecondsBeforeYear(1971))
	// 2000-01-01T00:00:00Z
	assert.Equal(t, uint64(946_684_800), calendar.SecondsBeforeYear(2000))
}

func TestISOWeekNumber(t *testing.T) {
	tests := []struct {
		date calendar.Date
		want uint64
	}{
		{calendar.Date{Year: 1970, Month: 1, Day: 1}, 1},
		{calendar.Date{Year: 2023, Month: 6, Day: 15}, 24},
		{calendar.Date{Year: 2024, Month: 1, Day: 1}, 1},
		{calendar.Date{Year: 2024, Month: 10, Day: 14}, 42},
	}

	for _, tt := range tests {
		t.Run(tt.date.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, calendar.ISOWeekNumber(tt.date))
		})
	}
}

func TestDate_StringAndValid(t *testing.T) {
	d := calendar.Date{Year: 2024, Month: 3, Day: 7}
	assert.Equal(t, "2024-03-07", d.String())
	assert.True(t, d.Valid())

	assert.False(t, calendar.Date{Year: 1969, Month: 12, Day: 31}.Valid(), "before epoch")
	assert.False(t, calendar.Date{Year: 2023, Month: 2, Day: 29}.Valid(), "not a leap year")
	assert.False(t, calendar.Date{Year: 2023, Month: 13, Day: 1}.Valid())
	assert.False(t, calendar.Date{Year: 2023, Month: 1, Day: 0}.Valid())
}
