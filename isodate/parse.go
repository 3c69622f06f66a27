package isodate

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/curtisnewbie/isodate/util/errs"
	inf "gopkg.in/inf.v0"
)

const (
	microDigits inf.Scale = 6
)

// Precision of a parsed ISO 8601 date.
type Precision int

const (
	PrecisionYear     Precision = iota + 1 // YYYY
	PrecisionMonth                         // YYYY-MM
	PrecisionDate                          // YYYY-MM-DD
	PrecisionDateTime                      // YYYY-MM-DDThh:mm[:ss[.f]][TZ]
)

func (p Precision) String() string {
	switch p {
	case PrecisionYear:
		return "year"
	case PrecisionMonth:
		return "year-month"
	case PrecisionDate:
		return "date"
	case PrecisionDateTime:
		return "date-time"
	}
	return fmt.Sprintf("Precision(%d)", int(p))
}

var (
	iso8601Pat = regexp.MustCompile(`^(?P<year>[0-9]{4})` +
		`(?:-(?P<month>[0-9]{1,2})` +
		`(?:-(?P<day>[0-9]{1,2})` +
		`(?:[Tt ](?P<hour>[0-9]{2}):(?P<minute>[0-9]{2})` +
		`(?::(?P<second>[0-9]{2})(?:\.(?P<fraction>[0-9]+))?)?` +
		`(?P<timezone>Z|[-+][0-9]{2}:[0-9]{2})?)?)?)?$`)

	groupYear     = iso8601Pat.SubexpIndex("year")
	groupMonth    = iso8601Pat.SubexpIndex("month")
	groupDay      = iso8601Pat.SubexpIndex("day")
	groupHour     = iso8601Pat.SubexpIndex("hour")
	groupMinute   = iso8601Pat.SubexpIndex("minute")
	groupSecond   = iso8601Pat.SubexpIndex("second")
	groupFraction = iso8601Pat.SubexpIndex("fraction")
	groupTimezone = iso8601Pat.SubexpIndex("timezone")
)

// Result of [ParsePartial], fields beyond Precision are zero.
type PartialDate struct {
	Precision Precision
	Year      int
	Month     int
	Day       int

	// Only available when Precision is PrecisionDateTime.
	Timestamp Timestamp
}

// Parse ISO 8601 date string that may only be partially specified, e.g., '2010' or '2010-09'.
//
// Timezone token is resolved by [ResolveTimezoneStr] with def as the default.
func ParsePartial(text string, def FixedOffset) (PartialDate, error) {
	m := iso8601Pat.FindStringSubmatch(text)
	if m == nil {
		return PartialDate{}, errFormatMismatch(text, "unable to parse date string")
	}

	pd := PartialDate{Precision: PrecisionYear, Year: atoi(m[groupYear])}
	if m[groupMonth] == "" {
		return pd, nil
	}

	pd.Precision = PrecisionMonth
	pd.Month = atoi(m[groupMonth])
	if pd.Month < 1 || pd.Month > 12 {
		return PartialDate{}, errFormatMismatch(text, "month out of range")
	}
	if m[groupDay] == "" {
		return pd, nil
	}

	pd.Precision = PrecisionDate
	pd.Day = atoi(m[groupDay])
	if pd.Day < 1 || pd.Day > daysIn(pd.Year, pd.Month) {
		return PartialDate{}, errFormatMismatch(text, "day out of range for month")
	}
	if m[groupHour] == "" {
		return pd, nil
	}

	tz, err := ResolveTimezoneStr(m[groupTimezone], def)
	if err != nil {
		return PartialDate{}, err
	}
	micro, err := scaleFraction(m[groupFraction])
	if err != nil {
		return PartialDate{}, errs.ErrFormatMismatch.WithInput(text, "invalid fraction, %v", err)
	}

	hour, minute, second := atoi(m[groupHour]), atoi(m[groupMinute]), atoi(m[groupSecond])
	if detail, ok := validateFields(pd.Year, pd.Month, pd.Day, hour, minute, second, micro); !ok {
		return PartialDate{}, errFormatMismatch(text, detail)
	}
	ts := newTimestamp(pd.Year, pd.Month, pd.Day, hour, minute, second, micro, tz)
	if !inUnixRange(ts.t) {
		return PartialDate{}, errFormatMismatch(text, errOutOfRangeUTC)
	}
	pd.Precision = PrecisionDateTime
	pd.Timestamp = ts
	return pd, nil
}

// Parse ISO 8601 date-time string.
//
// Date and time of day are both required, partially specified dates fail with [errs.ErrMissingField], use [ParsePartial]
// to accept them. Text that doesn't match the grammar fails with [errs.ErrFormatMismatch].
//
// If the text doesn't carry a timezone, def is used (usually [UTC]).
func Parse(text string, def FixedOffset) (Timestamp, error) {
	pd, err := ParsePartial(text, def)
	if err != nil {
		return Timestamp{}, err
	}
	switch pd.Precision {
	case PrecisionYear:
		return Timestamp{}, errs.ErrMissingField.WithInput(text, "month is missing")
	case PrecisionMonth:
		return Timestamp{}, errs.ErrMissingField.WithInput(text, "day is missing")
	case PrecisionDate:
		return Timestamp{}, errs.ErrMissingField.WithInput(text, "time is missing")
	}
	return pd.Timestamp, nil
}

// Same as [Parse] but v may be of any type, only string, *string and []byte are accepted,
// other types fail with [errs.ErrTypeMismatch].
func ParseAny(v any, def FixedOffset) (Timestamp, error) {
	switch s := v.(type) {
	case string:
		return Parse(s, def)
	case *string:
		if s != nil {
			return Parse(*s, def)
		}
	case []byte:
		return Parse(string(s), def)
	}
	return Timestamp{}, errs.ErrTypeMismatch.WithInput(fmt.Sprintf("%#v", v), "expecting a string, got %T", v)
}

// Scale decimal fraction of one second to microseconds, digits beyond microsecond are truncated.
func scaleFraction(digits string) (int, error) {
	if digits == "" {
		return 0, nil
	}
	d, ok := new(inf.Dec).SetString("0." + digits)
	if !ok {
		return 0, fmt.Errorf("'%v' is not a decimal", digits)
	}
	d.Round(d, microDigits, inf.RoundDown)
	n, ok := d.Unscaled()
	if !ok {
		return 0, fmt.Errorf("'%v' overflows", digits)
	}
	return int(n), nil
}

func atoi(s string) int {
	n, _ := strconv.Atoi(s) // absent optional groups are 0
	return n
}

func errFormatMismatch(input string, detail string) error {
	return errs.ErrFormatMismatch.WithInput(input, "%s", detail)
}
