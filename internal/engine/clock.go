package engine

import (
	"errors"
	"fmt"
	"math/bits"
	"time"

	"github.com/tartampluch/go-wtime/internal/config"
)

// ErrClockBeforeEpoch is returned when the clock, or a local instant derived
// from it, lies before 1970-01-01T00:00:00Z. It signals a broken host
// environment and is not worth retrying.
var ErrClockBeforeEpoch = errors.New(config.ErrBeforeEpoch)

// ErrInstantOverflow is returned when a count since the epoch does not fit
// in an unsigned 64-bit integer.
var ErrInstantOverflow = errors.New(config.ErrInstantOverflow)

// Epoch is the reference instant all elapsed counts are measured from.
var Epoch = time.Unix(0, 0).UTC()

// Clock abstracts time.Now() to allow deterministic testing.
// Every Facade samples it exactly once per Snapshot.
type Clock interface {
	Now() time.Time
}

// RealClock implements Clock using the standard time package.
type RealClock struct{}

// Now returns the current time.
func (RealClock) Now() time.Time {
	return time.Now()
}

// Instant is a non-negative count of time since the epoch, split into whole
// seconds and the nanoseconds within the second. It covers every reading a
// time.Time can hold after the epoch, unlike time.Duration which stops at 2262.
type Instant struct {
	Seconds uint64
	Nanos   uint32 // 0-999_999_999
}

// TotalMillis returns the whole milliseconds since the epoch, or
// ErrInstantOverflow when the count does not fit in 64 bits.
func (i Instant) TotalMillis() (uint64, error) {
	return i.total(1_000, uint64(i.Nanos)/1_000_000)
}

// TotalNanos returns the nanoseconds since the epoch, or ErrInstantOverflow
// when the count does not fit in 64 bits (after 2554-07-21).
func (i Instant) TotalNanos() (uint64, error) {
	return i.total(1_000_000_000, uint64(i.Nanos))
}

func (i Instant) total(perSecond, sub uint64) (uint64, error) {
	hi, lo := bits.Mul64(i.Seconds, perSecond)
	sum, carry := bits.Add64(lo, sub, 0)
	if hi != 0 || carry != 0 {
		return 0, fmt.Errorf("%w: %d s", ErrInstantOverflow, i.Seconds)
	}
	return sum, nil
}

// Time returns the instant as a UTC time.Time.
func (i Instant) Time() time.Time {
	return time.Unix(int64(i.Seconds), int64(i.Nanos)).UTC()
}

// Elapsed returns the time between the epoch and the clock's current reading.
// A reading before the epoch yields ErrClockBeforeEpoch rather than a
// clamped or negative count.
func Elapsed(c Clock) (Instant, error) {
	now := c.Now()
	if now.Before(Epoch) {
		return Instant{}, fmt.Errorf("%w: %s", ErrClockBeforeEpoch, now.UTC().Format(time.RFC3339))
	}
	return Instant{Seconds: uint64(now.Unix()), Nanos: uint32(now.Nanosecond())}, nil
}
