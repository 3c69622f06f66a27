package isodate

import (
	"fmt"
	"math"
	"time"
)

const (
	errOutOfRangeUTC = "year out of range in UTC"

	// 9999-12-31T23:59:59Z, the last instant a four digit year can express.
	maxUnixSec = 253402300799
	// 0000-01-01T00:00:00Z
	minUnixSec = -62167219200
)

// Instant plus the offset it was originally expressed in.
//
// Timestamp is immutable, the offset only affects display and field accessors, two Timestamps expressing
// the same instant in different offsets are not [Timestamp.Equal] but are [Timestamp.SameInstant].
//
// The zero value represents an absent timestamp, see [Timestamp.IsZero].
type Timestamp struct {
	t      time.Time // wall clock in offset's location, truncated to microsecond
	offset FixedOffset
	set    bool
}

// Create Timestamp from calendar and clock fields.
//
// Invalid calendar dates and clock values fail with [errs.ErrFormatMismatch].
func NewTimestamp(year, month, day, hour, minute, second, microsecond int, offset FixedOffset) (Timestamp, error) {
	if detail, ok := validateFields(year, month, day, hour, minute, second, microsecond); !ok {
		return Timestamp{}, errFormatMismatch(fmt.Sprintf("%04d-%02d-%02dT%02d:%02d:%02d.%06d", year, month, day, hour, minute, second, microsecond), detail)
	}
	ts := newTimestamp(year, month, day, hour, minute, second, microsecond, offset)
	if !inUnixRange(ts.t) {
		return Timestamp{}, errFormatMismatch(fmt.Sprintf("%04d-%02d-%02dT%02d:%02d:%02d.%06d%v", year, month, day, hour, minute, second, microsecond, offset), errOutOfRangeUTC)
	}
	return ts, nil
}

func newTimestamp(year, month, day, hour, minute, second, microsecond int, offset FixedOffset) Timestamp {
	t := time.Date(year, time.Month(month), day, hour, minute, second, microsecond*1000, offset.Location())
	return Timestamp{t: t, offset: offset, set: true}
}

func validateFields(year, month, day, hour, minute, second, microsecond int) (string, bool) {
	if year < 0 || year > 9999 {
		return "year out of range", false
	}
	if month < 1 || month > 12 {
		return "month out of range", false
	}
	if day < 1 || day > daysIn(year, month) {
		return "day out of range for month", false
	}
	if hour < 0 || hour > 23 {
		return "hour out of range", false
	}
	if minute < 0 || minute > 59 {
		return "minute out of range", false
	}
	if second < 0 || second > 59 {
		return "second out of range", false
	}
	if microsecond < 0 || microsecond > 999999 {
		return "microsecond out of range", false
	}
	return "", true
}

// Whether the instant falls within years 0000..9999 in UTC.
func inUnixRange(t time.Time) bool {
	sec := t.Unix()
	return sec >= minUnixSec && sec <= maxUnixSec
}

func daysIn(year int, month int) int {
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// Convert time.Time to Timestamp, precision below microsecond is truncated.
//
// The offset of t is kept, unless the offset is not a whole minute (e.g., LMT of some historical zones),
// in which case the Timestamp is normalized to UTC.
func FromTime(t time.Time) Timestamp {
	t = t.Truncate(time.Microsecond)
	name, secs := t.Zone()
	if secs%60 != 0 {
		return Timestamp{t: t.UTC(), offset: UTC, set: true}
	}
	off := offsetOfSeconds(secs, name)
	return Timestamp{t: t.In(off.Location()), offset: off, set: true}
}

// Convert seconds since unix epoch to Timestamp in UTC.
func FromUnix(sec int64) Timestamp {
	return FromTime(time.Unix(sec, 0).UTC())
}

// Convert fractional seconds since unix epoch to Timestamp in UTC, rounded to microsecond.
func FromUnixFloat(f float64) Timestamp {
	sec := math.Floor(f)
	micro := math.Round((f - sec) * 1e6)
	if micro >= 1e6 {
		sec += 1
		micro = 0
	}
	return FromTime(time.Unix(int64(sec), int64(micro)*1000).UTC())
}

func (ts Timestamp) Year() int {
	return ts.t.Year()
}

func (ts Timestamp) Month() int {
	return int(ts.t.Month())
}

func (ts Timestamp) Day() int {
	return ts.t.Day()
}

func (ts Timestamp) Hour() int {
	return ts.t.Hour()
}

func (ts Timestamp) Minute() int {
	return ts.t.Minute()
}

func (ts Timestamp) Second() int {
	return ts.t.Second()
}

func (ts Timestamp) Microsecond() int {
	return ts.t.Nanosecond() / 1000
}

func (ts Timestamp) Offset() FixedOffset {
	return ts.offset
}

// Whether the Timestamp is absent.
//
// Only the zero value is absent, the unix epoch is a legitimate instant.
func (ts Timestamp) IsZero() bool {
	return !ts.set
}

// Unwrap as time.Time in the Timestamp's offset.
func (ts Timestamp) Time() time.Time {
	return ts.t
}

// Same instant expressed in UTC.
func (ts Timestamp) UTC() Timestamp {
	if !ts.set {
		return ts
	}
	return Timestamp{t: ts.t.UTC(), offset: UTC, set: true}
}

// Same instant expressed in the given offset.
func (ts Timestamp) In(offset FixedOffset) Timestamp {
	if !ts.set {
		return ts
	}
	return Timestamp{t: ts.t.In(offset.Location()), offset: offset, set: true}
}

// Whether both represent the same instant in the same offset.
func (ts Timestamp) Equal(other Timestamp) bool {
	if ts.set != other.set {
		return false
	}
	return !ts.set || (ts.t.Equal(other.t) && ts.offset.Equal(other.offset))
}

// Whether both represent the same instant, regardless of offsets.
func (ts Timestamp) SameInstant(other Timestamp) bool {
	return ts.set == other.set && ts.t.Equal(other.t)
}

// Format as 2006-01-02T15:04:05.999999±07:00.
func (ts Timestamp) String() string {
	if !ts.set {
		return "<absent>"
	}
	return ts.t.Format("2006-01-02T15:04:05.999999") + ts.offset.String()
}

func (ts Timestamp) GoString() string {
	return ts.String()
}
