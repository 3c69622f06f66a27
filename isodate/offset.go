package isodate

import (
	"fmt"
	"regexp"
	"strconv"
	"time"

	"github.com/curtisnewbie/isodate/util/errs"
)

const (
	ZuluMarker = "Z"
)

var (
	// UTC, the default when no timezone is expressed.
	UTC = FixedOffset{label: "UTC"}

	timezonePat = regexp.MustCompile(`^([+-])([0-9]{2}):([0-9]{2})$`)
)

// Constant offset from UTC, not subject to daylight saving transitions.
//
// The signs of hours and minutes are always consistent, e.g., -05:30 is represented as -5 hours and -30 minutes.
//
// The zero value is equivalent to [UTC].
type FixedOffset struct {
	hours   int
	minutes int
	label   string
}

// Create FixedOffset.
//
// |minutes| must not exceed 59, |hours| must not exceed 23, and signs of hours and minutes must be consistent.
func NewFixedOffset(hours int, minutes int, label string) (FixedOffset, error) {
	if minutes < -59 || minutes > 59 || hours < -23 || hours > 23 || (hours > 0 && minutes < 0) || (hours < 0 && minutes > 0) {
		return FixedOffset{}, errs.ErrMalformedTimezone.WithInput(label, "offset %dh%dm out of range", hours, minutes)
	}
	return FixedOffset{hours: hours, minutes: minutes, label: label}, nil
}

func (o FixedOffset) Hours() int {
	return o.hours
}

func (o FixedOffset) Minutes() int {
	return o.minutes
}

// Original token or a synthetic name.
func (o FixedOffset) Label() string {
	if o.label != "" {
		return o.label
	}
	if o.IsUTC() {
		return UTC.label
	}
	return o.String()
}

// Offset in seconds east of UTC.
func (o FixedOffset) Seconds() int {
	return o.hours*3600 + o.minutes*60
}

func (o FixedOffset) IsUTC() bool {
	return o.hours == 0 && o.minutes == 0
}

// Whether both offsets represent the same difference from UTC, labels are ignored.
func (o FixedOffset) Equal(other FixedOffset) bool {
	return o.hours == other.hours && o.minutes == other.minutes
}

func (o FixedOffset) Location() *time.Location {
	if o.IsUTC() && (o.label == "" || o.label == UTC.label) {
		return time.UTC
	}
	return time.FixedZone(o.Label(), o.Seconds())
}

// Format as ±HH:MM.
func (o FixedOffset) String() string {
	sign := '+'
	h, m := o.hours, o.minutes
	if h < 0 || m < 0 {
		sign = '-'
		h, m = -h, -m
	}
	return fmt.Sprintf("%c%02d:%02d", sign, h, m)
}

func (o FixedOffset) GoString() string {
	return fmt.Sprintf("<FixedOffset %q>", o.Label())
}

// Build FixedOffset from seconds east of UTC, seconds below one minute are dropped.
func offsetOfSeconds(secs int, label string) FixedOffset {
	if secs == 0 {
		return UTC
	}
	return FixedOffset{hours: secs / 3600, minutes: (secs % 3600) / 60, label: label}
}

// Resolve timezone token into FixedOffset.
//
//   - "Z" is always resolved to [UTC].
//   - nil, i.e., no timezone expressed, is resolved to def.
//   - "±HH:MM" is resolved to a FixedOffset labeled with the token.
//
// Any other token fails with [errs.ErrMalformedTimezone].
func ResolveTimezone(token *string, def FixedOffset) (FixedOffset, error) {
	if token == nil {
		return def, nil
	}
	tok := *token
	if tok == ZuluMarker {
		return UTC, nil
	}

	m := timezonePat.FindStringSubmatch(tok)
	if m == nil {
		return FixedOffset{}, errs.ErrMalformedTimezone.WithInput(tok, "expecting 'Z' or '±HH:MM'")
	}
	hours, _ := strconv.Atoi(m[2])
	minutes, _ := strconv.Atoi(m[3])
	if m[1] == "-" {
		hours, minutes = -hours, -minutes
	}
	return NewFixedOffset(hours, minutes, tok)
}

// Same as [ResolveTimezone], but empty token means no timezone expressed.
func ResolveTimezoneStr(token string, def FixedOffset) (FixedOffset, error) {
	if token == "" {
		return def, nil
	}
	return ResolveTimezone(&token, def)
}
