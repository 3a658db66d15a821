package calendar

import (
	"errors"
	"fmt"
)

// ErrMonthOutOfRange is returned when a month number falls outside 1-12.
var ErrMonthOutOfRange = errors.New("month out of range")

// weekdays is anchored on 1970-01-01, a Thursday.
var weekdays = [7]string{
	"Thursday",
	"Friday",
	"Saturday",
	"Sunday",
	"Monday",
	"Tuesday",
	"Wednesday",
}

var months = [MonthsPerYear]string{
	"January",
	"February",
	"March",
	"April",
	"May",
	"June",
	"July",
	"August",
	"September",
	"October",
	"November",
	"December",
}

// WeekdayName returns the English name of the weekday containing the instant
// totalSeconds after the epoch.
func WeekdayName(totalSeconds uint64) string {
	return weekdays[(totalSeconds/SecondsPerDay)%7]
}

// MonthName returns the English name of month (1-12).
func MonthName(month uint64) (string, error) {
	if month < 1 || month > MonthsPerYear {
		return "", fmt.Errorf("%w: %d", ErrMonthOutOfRange, month)
	}
	return months[month-1], nil
}
