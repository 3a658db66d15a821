package engine

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/tartampluch/go-wtime/internal/config"
)

// OffsetResolver supplies the signed whole-hour offset of a zone from UTC at
// the moment of the call. Implementations never fail: when the offset cannot
// be determined they report 0 (UTC).
type OffsetResolver interface {
	OffsetHours() int64
}

// FixedOffset is an OffsetResolver that always reports the same offset.
type FixedOffset int64

// OffsetHours returns the fixed offset.
func (f FixedOffset) OffsetHours() int64 {
	return int64(f)
}

// HostOffset resolves the offset of the host's local zone at the current
// instant. It is re-evaluated on every call, so a DST transition between two
// calls is observed.
type HostOffset struct {
	// Clock defaults to RealClock.
	Clock Clock

	// Location defaults to time.Local.
	Location *time.Location
}

// zone returns the zone abbreviation and offset in seconds east of UTC.
func (h HostOffset) zone() (string, int) {
	clock := h.Clock
	if clock == nil {
		clock = RealClock{}
	}
	loc := h.Location
	if loc == nil {
		loc = time.Local
	}
	return clock.Now().In(loc).Zone()
}

// OffsetSeconds returns the raw offset in seconds east of UTC, or 0 when the
// zone reports an offset no real zone uses.
func (h HostOffset) OffsetSeconds() int {
	name, secs := h.zone()
	limit := (config.MaxOffsetHours + 1) * 3600
	if secs <= -limit || secs >= limit {
		slog.Debug(config.ErrOffsetResolution,
			config.LogKeyComponent, config.CompOffset,
			config.LogKeyZone, name,
			config.LogKeySeconds, secs,
		)
		return 0
	}
	return secs
}

// OffsetHours returns the whole-hour part of the local offset. Sub-hour
// offsets are truncated toward zero, so +05:30 reports 5 and -03:30 reports -3.
func (h HostOffset) OffsetHours() int64 {
	return int64(h.OffsetSeconds() / 3600)
}

// String renders the local offset as +HH:MM.
func (h HostOffset) String() string {
	return FormatOffset(h.OffsetSeconds())
}

// FormatOffset renders an offset in seconds east of UTC as +HH:MM or -HH:MM.
// Zero renders as +00:00.
func FormatOffset(seconds int) string {
	sign := '+'
	if seconds < 0 {
		sign = '-'
		seconds = -seconds
	}
	return fmt.Sprintf(config.FormatOffset, sign, seconds/3600, (seconds%3600)/60)
}
