package isodate

import (
	"database/sql/driver"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/curtisnewbie/isodate/util/errs"
)

const (
	legacyDateLayout = "Jan 02 2006 03:04:05"
)

var (
	legacyPat = regexp.MustCompile(`(?i)^([a-z]{3}) ([0-9]{1,2}) ([0-9]{4}) ([0-9]{1,2}):([0-9]{2}):([0-9]{2})([0-9]{1,6})(AM|PM)$`)

	legacyMonths = map[string]int{
		"jan": 1, "feb": 2, "mar": 3, "apr": 4, "may": 5, "jun": 6,
		"jul": 7, "aug": 8, "sep": 9, "oct": 10, "nov": 11, "dec": 12,
	}
)

// Encode Timestamp using the legacy pattern 'Mon DD YYYY hh:MM:SSffffffAM', e.g., 'Sep 15 2010 03:44:43000000PM'.
//
// The value is rendered in UTC without timezone, microseconds are kept. Absent Timestamp is encoded as empty string.
func LegacyEncode(ts Timestamp) string {
	if ts.IsZero() {
		return ""
	}
	t := ts.Time().UTC()
	return fmt.Sprintf("%s%06d%s", t.Format(legacyDateLayout), t.Nanosecond()/1000, t.Format("PM"))
}

// Decode text produced by [LegacyEncode], the result is in UTC.
//
// Blank text is decoded as absent Timestamp without error. Malformed text fails with [errs.ErrFormatMismatch].
//
// Month abbreviation and AM/PM are case-insensitive, fractional digits shorter than 6 are padded on the right.
func LegacyDecode(text string) (Timestamp, error) {
	if strings.TrimSpace(text) == "" {
		return Timestamp{}, nil
	}

	m := legacyPat.FindStringSubmatch(text)
	if m == nil {
		return Timestamp{}, errs.ErrFormatMismatch.WithInput(text, "expecting 'Mon DD YYYY hh:MM:SSffffffAM'")
	}
	month, ok := legacyMonths[strings.ToLower(m[1])]
	if !ok {
		return Timestamp{}, errs.ErrFormatMismatch.WithInput(text, "unknown month '%v'", m[1])
	}
	hour := atoi(m[4])
	if hour < 1 || hour > 12 {
		return Timestamp{}, errs.ErrFormatMismatch.WithInput(text, "hour out of range")
	}
	hour %= 12
	if strings.EqualFold(m[8], "PM") {
		hour += 12
	}
	micro := atoi(m[7] + strings.Repeat("0", 6-len(m[7])))

	year, day, minute, second := atoi(m[3]), atoi(m[2]), atoi(m[5]), atoi(m[6])
	if detail, ok := validateFields(year, month, day, hour, minute, second, micro); !ok {
		return Timestamp{}, errFormatMismatch(text, detail)
	}
	return newTimestamp(year, month, day, hour, minute, second, micro, UTC), nil
}

// Timestamp persisted using the legacy pattern, see [LegacyEncode].
//
// LegacyTime implements sql.Scanner and driver.Valuer, it can be used in GORM models directly.
type LegacyTime struct {
	Timestamp
}

func WrapLegacy(ts Timestamp) LegacyTime {
	return LegacyTime{ts}
}

func (l LegacyTime) Unwrap() Timestamp {
	return l.Timestamp
}

// Column type used by GORM.
func (l LegacyTime) GormDataType() string {
	return "string"
}

// Implements driver.Valuer in database/sql.
func (l LegacyTime) Value() (driver.Value, error) {
	if l.IsZero() {
		return nil, nil
	}
	return LegacyEncode(l.Timestamp), nil
}

// Implements sql.Scanner in database/sql.
func (l *LegacyTime) Scan(value interface{}) error {
	var (
		ts  Timestamp
		err error
	)
	switch v := value.(type) {
	case nil:
	case string:
		ts, err = LegacyDecode(v)
	case []byte:
		ts, err = LegacyDecode(string(v))
	case time.Time:
		ts = FromTime(v)
	default:
		return errs.ErrTypeMismatch.WithInput(fmt.Sprintf("%#v", v), "invalid field type '%T' for LegacyTime", value)
	}
	if err != nil {
		return err
	}
	*l = LegacyTime{ts}
	return nil
}
