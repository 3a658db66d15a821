package engine

import (
	"fmt"
	"math/bits"
	"time"

	"github.com/tartampluch/go-wtime/internal/calendar"
	"github.com/tartampluch/go-wtime/internal/config"
)

// Snapshot is a single reading of the clock, optionally shifted by a
// whole-hour UTC offset. Every accessor derives from the same reading, so
// fields never straddle a clock tick.
type Snapshot struct {
	utc    Instant
	offset int64
	local  Instant
}

// NewSnapshot builds a snapshot from the time since the epoch and an offset
// in hours. The calendar date is derived from the shifted instant, so an
// offset that crosses midnight also moves the date. A shifted instant before
// the epoch yields ErrClockBeforeEpoch.
func NewSnapshot(utc Instant, offsetHours int64) (Snapshot, error) {
	local := utc
	if offsetHours < 0 {
		shift := uint64(-offsetHours) * calendar.SecondsPerHour
		if utc.Seconds < shift {
			return Snapshot{}, fmt.Errorf("%w: offset %+d h at %d s", ErrClockBeforeEpoch, offsetHours, utc.Seconds)
		}
		local.Seconds -= shift
	} else {
		var carry uint64
		local.Seconds, carry = bits.Add64(utc.Seconds, uint64(offsetHours)*calendar.SecondsPerHour, 0)
		if carry != 0 {
			return Snapshot{}, fmt.Errorf("%w: offset %+d h at %d s", ErrInstantOverflow, offsetHours, utc.Seconds)
		}
	}
	return Snapshot{utc: utc, offset: offsetHours, local: local}, nil
}

// Seconds returns the total whole seconds since the epoch.
func (s Snapshot) Seconds() uint64 { return s.local.Seconds }

// Millis returns the total whole milliseconds since the epoch.
func (s Snapshot) Millis() (uint64, error) { return s.local.TotalMillis() }

// Nanos returns the total nanoseconds since the epoch.
func (s Snapshot) Nanos() (uint64, error) { return s.local.TotalNanos() }

// OffsetHours returns the offset the snapshot was shifted by.
func (s Snapshot) OffsetHours() int64 { return s.offset }

// Elapsed returns the shifted time since the epoch.
func (s Snapshot) Elapsed() Instant { return s.local }

// Unix returns the unshifted time since the epoch.
func (s Snapshot) Unix() Instant { return s.utc }

// Date returns the calendar date of the snapshot.
func (s Snapshot) Date() calendar.Date { return calendar.DateFromSeconds(s.Seconds()) }

// Year returns the calendar year.
func (s Snapshot) Year() uint64 { return s.Date().Year }

// Month returns the month of the year, 1-12.
func (s Snapshot) Month() uint64 { return s.Date().Month }

// Day returns the day of the month, 1-31.
func (s Snapshot) Day() uint64 { return s.Date().Day }

// Hour returns the hour of day, 0-23.
func (s Snapshot) Hour() uint64 {
	return (s.Seconds() / calendar.SecondsPerHour) % 24
}

// Minute returns the minute of the hour, 0-59.
func (s Snapshot) Minute() uint64 {
	return (s.Seconds() / calendar.SecondsPerMinute) % 60
}

// Second returns the second of the minute, 0-59.
func (s Snapshot) Second() uint64 {
	return s.Seconds() % 60
}

// MillisComponent returns the millisecond of the second, 0-999.
func (s Snapshot) MillisComponent() uint64 {
	return uint64(s.local.Nanos) / 1_000_000
}

// NanosComponent returns total nanoseconds modulo one million: the
// sub-millisecond remainder in nanoseconds, 0-999999. It is not the
// nanosecond of the second.
func (s Snapshot) NanosComponent() uint64 {
	// A second is a whole number of milliseconds, so only the
	// sub-second part contributes.
	return uint64(s.local.Nanos) % 1_000_000
}

// Weekday returns the English weekday name.
func (s Snapshot) Weekday() string {
	return calendar.WeekdayName(s.Seconds())
}

// MonthName returns the English month name.
func (s Snapshot) MonthName() string {
	// Date always yields a month in 1-12.
	name, _ := calendar.MonthName(s.Month())
	return name
}

// ISOWeek returns the ISO 8601 week number of the snapshot date.
func (s Snapshot) ISOWeek() uint64 {
	return calendar.ISOWeekNumber(s.Date())
}

// DayOfYear returns the 1-based day of the year.
func (s Snapshot) DayOfYear() uint64 {
	return calendar.DayOfYear(s.Date())
}

// IsLeapYear reports whether the snapshot year is a leap year.
func (s Snapshot) IsLeapYear() bool {
	return calendar.IsLeapYear(s.Year())
}

// Time returns the shifted wall-clock reading expressed in UTC. For a UTC
// snapshot this is the instant itself.
func (s Snapshot) Time() time.Time {
	return s.local.Time()
}

// UTC returns the unshifted instant.
func (s Snapshot) UTC() time.Time {
	return s.utc.Time()
}

// Format renders YYYY-MM-DD-HH-mm-SS-mmm-nnnnnn.
func (s Snapshot) Format() string {
	d := s.Date()
	return fmt.Sprintf(config.FormatTimestamp,
		d.Year, d.Month, d.Day,
		s.Hour(), s.Minute(), s.Second(),
		s.MillisComponent(), s.NanosComponent(),
	)
}

// String implements fmt.Stringer.
func (s Snapshot) String() string {
	return s.Format()
}
