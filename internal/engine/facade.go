package engine

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/tartampluch/go-wtime/internal/calendar"
	"github.com/tartampluch/go-wtime/internal/config"
)

// Facade composes a Clock and, for local time, an OffsetResolver into
// calendar and clock accessors.
//
// Snapshot samples the clock and the offset once. The single-field accessors
// are conveniences that each take their own snapshot; combine fields from one
// Snapshot when they must agree.
type Facade struct {
	clock  Clock
	offset OffsetResolver
}

// NewUTC returns a Facade reporting UTC.
func NewUTC(clock Clock) *Facade {
	return &Facade{clock: clock}
}

// NewLocal returns a Facade shifted by the resolver's offset. The offset is
// resolved again on every snapshot and never cached.
func NewLocal(clock Clock, offset OffsetResolver) *Facade {
	return &Facade{clock: clock, offset: offset}
}

// NewForMode builds a Facade for one of the config.Mode* values. fixedHours
// is only used in fixed mode.
func NewForMode(clock Clock, mode string, fixedHours int64) (*Facade, error) {
	switch mode {
	case config.ModeUTC:
		return NewUTC(clock), nil
	case config.ModeLocal:
		return NewLocal(clock, HostOffset{Clock: clock}), nil
	case config.ModeFixed:
		return NewLocal(clock, FixedOffset(fixedHours)), nil
	default:
		return nil, fmt.Errorf("%s: %q", config.ErrUnknownMode, mode)
	}
}

// IsLocal reports whether the Facade applies an offset resolver.
func (f *Facade) IsLocal() bool {
	return f.offset != nil
}

// Snapshot reads the clock and the offset once.
func (f *Facade) Snapshot() (Snapshot, error) {
	utc, err := Elapsed(f.clock)
	if err != nil {
		return Snapshot{}, fmt.Errorf("%s: %w", config.ErrClockRead, err)
	}

	var offset int64
	if f.offset != nil {
		offset = f.offset.OffsetHours()
	}

	s, err := NewSnapshot(utc, offset)
	if err != nil {
		return Snapshot{}, fmt.Errorf("%s: %w", config.ErrClockRead, err)
	}

	slog.Debug(config.MsgSnapshot,
		config.LogKeyComponent, config.CompEngine,
		config.LogKeyOffset, offset,
		config.LogKeyTimestamp, s.Format(),
	)
	return s, nil
}

func field[T any](f *Facade, get func(Snapshot) T) (T, error) {
	s, err := f.Snapshot()
	if err != nil {
		var zero T
		return zero, err
	}
	return get(s), nil
}

func total(f *Facade, get func(Snapshot) (uint64, error)) (uint64, error) {
	s, err := f.Snapshot()
	if err != nil {
		return 0, err
	}
	return get(s)
}

// Elapsed returns the (shifted) time since the epoch.
func (f *Facade) Elapsed() (Instant, error) { return field(f, Snapshot.Elapsed) }

// Now returns the (shifted) wall-clock reading expressed in UTC.
func (f *Facade) Now() (time.Time, error) { return field(f, Snapshot.Time) }

// Seconds returns the whole seconds since the epoch.
func (f *Facade) Seconds() (uint64, error) { return field(f, Snapshot.Seconds) }

// Millis returns the whole milliseconds since the epoch.
func (f *Facade) Millis() (uint64, error) { return total(f, Snapshot.Millis) }

// Nanos returns the nanoseconds since the epoch. Readings after 2554 do not
// fit and yield ErrInstantOverflow.
func (f *Facade) Nanos() (uint64, error) { return total(f, Snapshot.Nanos) }

// Date returns the calendar date.
func (f *Facade) Date() (calendar.Date, error) { return field(f, Snapshot.Date) }

// Year returns the calendar year.
func (f *Facade) Year() (uint64, error) { return field(f, Snapshot.Year) }

// Month returns the month of the year, 1-12.
func (f *Facade) Month() (uint64, error) { return field(f, Snapshot.Month) }

// Day returns the day of the month.
func (f *Facade) Day() (uint64, error) { return field(f, Snapshot.Day) }

// Hour returns the hour of the day, 0-23.
func (f *Facade) Hour() (uint64, error) { return field(f, Snapshot.Hour) }

// Minute returns the minute of the hour.
func (f *Facade) Minute() (uint64, error) { return field(f, Snapshot.Minute) }

// Second returns the second of the minute.
func (f *Facade) Second() (uint64, error) { return field(f, Snapshot.Second) }

// MillisComponent returns the millisecond of the second.
func (f *Facade) MillisComponent() (uint64, error) { return field(f, Snapshot.MillisComponent) }

// NanosComponent returns the sub-millisecond remainder in nanoseconds.
func (f *Facade) NanosComponent() (uint64, error) { return field(f, Snapshot.NanosComponent) }

// Weekday returns the English weekday name.
func (f *Facade) Weekday() (string, error) { return field(f, Snapshot.Weekday) }

// MonthName returns the English month name.
func (f *Facade) MonthName() (string, error) { return field(f, Snapshot.MonthName) }

// ISOWeek returns the ISO week number of the current date.
func (f *Facade) ISOWeek() (uint64, error) { return field(f, Snapshot.ISOWeek) }

// FormatTimestamp renders the current time as YYYY-MM-DD-HH-mm-SS-mmm-nnnnnn
// from a single snapshot.
func (f *Facade) FormatTimestamp() (string, error) { return field(f, Snapshot.Format) }
