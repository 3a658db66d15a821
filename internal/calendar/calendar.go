// Package calendar converts elapsed seconds since the Unix epoch into
// proleptic Gregorian calendar dates.
//
// Every function is pure: no clock reads, no I/O, no shared state. Callers
// obtain the elapsed count elsewhere (see package engine) and feed it here.
package calendar

import "fmt"

const (
	// EpochYear is the first year representable by the engine.
	EpochYear uint64 = 1970

	SecondsPerMinute uint64 = 60
	SecondsPerHour   uint64 = 3600
	SecondsPerDay    uint64 = 86_400

	// SecondsPerCommonYear is the length of a 365-day year.
	SecondsPerCommonYear uint64 = 365 * SecondsPerDay

	MonthsPerYear = 12
)

// monthDays lists month lengths for common and leap years, January first.
var monthDays = [2][MonthsPerYear]uint64{
	{31, 28, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31},
	{31, 29, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31},
}

// Date is a calendar day. Year is at least EpochYear, Month is 1-based and
// Day is 1-based within the month.
type Date struct {
	Year  uint64
	Month uint64
	Day   uint64
}

// String renders the date as YYYY-MM-DD.
func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

// Valid reports whether the date is within the engine's domain.
func (d Date) Valid() bool {
	if d.Year < EpochYear || d.Month < 1 || d.Month > MonthsPerYear {
		return false
	}
	return d.Day >= 1 && d.Day <= DaysInMonth(d.Year, d.Month)
}

// IsLeapYear applies the Gregorian rule: divisible by 4 and not by 100,
// or divisible by 400.
func IsLeapYear(year uint64) bool {
	return (year%4 == 0 && year%100 != 0) || year%400 == 0
}

func monthTable(year uint64) *[MonthsPerYear]uint64 {
	if IsLeapYear(year) {
		return &monthDays[1]
	}
	return &monthDays[0]
}

// DaysInMonth returns the number of days in month (1-12) of year.
// It returns 0 for a month outside 1-12.
func DaysInMonth(year, month uint64) uint64 {
	if month < 1 || month > MonthsPerYear {
		return 0
	}
	return monthTable(year)[month-1]
}

// DaysInYear returns 366 for leap years and 365 otherwise.
func DaysInYear(year uint64) uint64 {
	if IsLeapYear(year) {
		return 366
	}
	return 365
}

func secondsInYear(year uint64) uint64 {
	return DaysInYear(year) * SecondsPerDay
}

// DateFromSeconds returns the date containing the instant totalSeconds after
// the epoch.
//
// Whole years are consumed from 1970 onwards, then whole months of the
// resulting year; the leftover counts whole days into the month. An instant
// exactly on a year or month boundary belongs to the later period.
func DateFromSeconds(totalSeconds uint64) Date {
	remaining := totalSeconds

	year := EpochYear
	for remaining >= secondsInYear(year) {
		remaining -= secondsInYear(year)
		year++
	}

	days := monthTable(year)
	month := 0
	for month < MonthsPerYear {
		monthSeconds := days[month] * SecondsPerDay
		if remaining < monthSeconds {
			break
		}
		remaining -= monthSeconds
		month++
	}

	return Date{
		Year:  year,
		Month: uint64(month) + 1,
		Day:   remaining/SecondsPerDay + 1,
	}
}

// DayOfYear returns the 1-based ordinal of d within its year.
// d must be valid.
func DayOfYear(d Date) uint64 {
	days := monthTable(d.Year)
	var total uint64
	for m := uint64(0); m+1 < d.Month; m++ {
		total += days[m]
	}
	return total + d.Day
}

// SecondsBeforeYear returns the number of seconds between the epoch and
// January 1 of year.
func SecondsBeforeYear(year uint64) uint64 {
	var total uint64
	for y := EpochYear; y < year; y++ {
		total += secondsInYear(y)
	}
	return total
}

// SecondsBeforeDate returns the number of seconds between the epoch and the
// start of d. It inverts DateFromSeconds up to the sub-day remainder.
func SecondsBeforeDate(d Date) uint64 {
	return SecondsBeforeYear(d.Year) + (DayOfYear(d)-1)*SecondsPerDay
}

// ISOWeekNumber returns the ISO 8601 week of d, counting week 1 as the week
// holding the year's first Thursday.
//
// The weekday of January 1 is taken from a closed-form congruence over the
// years elapsed since 1970. d is not re-validated.
func ISOWeekNumber(d Date) uint64 {
	doy := DayOfYear(d)

	n := d.Year - EpochYear
	jan1 := (365*n + n/4 - n/100 + n/400 + 1) % 7

	var firstThursday uint64
	if jan1 <= 3 {
		firstThursday = 1 + (3 - jan1)
	} else {
		firstThursday = 8 - jan1
	}

	// firstThursday never exceeds 4, so the sum stays positive.
	return (doy + 10 - firstThursday) / 7
}
