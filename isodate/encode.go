package isodate

import (
	"encoding/json"
	"fmt"
	"html"
	"reflect"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/curtisnewbie/isodate/logging"
	"golang.org/x/text/cases"
)

const (
	Iso8601Layout  = "2006-01-02T15:04:05Z"
	GridDateLayout = "01-02-2006 03:04 PM"
)

// Named output format variant.
type Presentation string

const (
	Iso8601  Presentation = "iso8601"  // 2006-01-02T15:04:05Z, always in UTC
	GridDate Presentation = "gridDate" // 01-02-2006 03:04 PM, in the target zone or the timestamp's own offset
)

var (
	presentations = []Presentation{Iso8601, GridDate}

	epochPat = regexp.MustCompile(`^[+-]?[0-9]+(\.[0-9]+)?$`)
)

// Resolve presentation by name, case-insensitive.
func ParsePresentation(name string) (Presentation, bool) {
	fold := cases.Fold() // casers are stateful
	n := fold.String(strings.TrimSpace(name))
	for _, p := range presentations {
		if fold.String(string(p)) == n {
			return p, true
		}
	}
	return "", false
}

type encodeOpts struct {
	presentation Presentation
	zone         string
	wrap         bool
}

type EncodeOption func(o *encodeOpts)

// Presentation class, unknown presentations fall back to [Iso8601].
func WithPresentation(p Presentation) EncodeOption {
	return func(o *encodeOpts) {
		if v, ok := ParsePresentation(string(p)); ok {
			o.presentation = v
		} else {
			logging.Warnf("Unknown presentation '%v', fallback to %v", p, Iso8601)
			o.presentation = Iso8601
		}
	}
}

// IANA zone name, e.g., America/Chicago, the [GridDate] value is shifted into the zone.
//
// [Iso8601] values are always in UTC regardless of the zone.
func WithZone(name string) EncodeOption {
	return func(o *encodeOpts) {
		o.zone = strings.TrimSpace(name)
	}
}

// Whether to wrap the value in the html annotation, enabled by default.
func WithWrap(wrap bool) EncodeOption {
	return func(o *encodeOpts) {
		o.wrap = wrap
	}
}

func WithoutWrap() EncodeOption {
	return WithWrap(false)
}

func buildOpts(opts []EncodeOption) encodeOpts {
	o := encodeOpts{presentation: Iso8601, wrap: true}
	for _, op := range opts {
		op(&o)
	}
	return o
}

// Encode Timestamp as text.
//
// By default, the value is formatted as [Iso8601] and wrapped in a html annotation:
//
//	<div data-date="2010-09-15T15:44:43Z" class="iso8601" title="2010-09-15T15:44:43Z">2010-09-15T15:44:43Z</div>
//
// The data-date attribute is always the [Iso8601] value, the title and the text are the value formatted
// using the presentation class.
//
// Absent Timestamp is encoded as empty string.
func Encode(ts Timestamp, opts ...EncodeOption) string {
	return encode(ts, buildOpts(opts))
}

func encode(ts Timestamp, o encodeOpts) string {
	if ts.IsZero() {
		return ""
	}

	iso := ts.Time().UTC().Format(Iso8601Layout)
	display := iso
	if o.presentation == GridDate {
		t := ts.Time()
		if o.zone != "" {
			t = t.In(loadZone(o.zone))
		}
		display = t.Format(GridDateLayout)
	}

	if o.wrap {
		return wrapAnnotation(iso, o.presentation, display)
	}
	return display
}

func loadZone(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		logging.Warnf("Unknown zone '%v', fallback to UTC, %v", name, err)
		return time.UTC
	}
	return loc
}

func wrapAnnotation(iso string, p Presentation, display string) string {
	display = html.EscapeString(display)
	return fmt.Sprintf(`<div data-date="%s" class="%s" title="%s">%s</div>`,
		html.EscapeString(iso), html.EscapeString(string(p)), display, display)
}

// Normalize value of any type into encoded text, values that are already encoded are returned unchanged.
//
//   - nil, absent Timestamp, zero time.Time, empty string and numeric zero are normalized to empty string.
//   - Timestamp and time.Time (or pointers to them) are encoded using [Encode].
//   - numbers and numeric strings are treated as seconds since unix epoch, and then encoded using [Encode].
//   - text that contains an annotation is returned unchanged.
//   - text ending with 'Z' is wrapped in an [Iso8601] annotation, or returned unchanged if wrapping is disabled.
//   - any other text is returned unchanged.
//
// Values of unsupported types are normalized to empty string.
//
// Normalize is idempotent, i.e., Normalize(Normalize(v, opts...), opts...) == Normalize(v, opts...).
func Normalize(v any, opts ...EncodeOption) string {
	o := buildOpts(opts)

	switch t := v.(type) {
	case nil:
		return ""
	case Timestamp:
		return encode(t, o)
	case *Timestamp:
		if t == nil {
			return ""
		}
		return encode(*t, o)
	case time.Time:
		if t.IsZero() {
			return ""
		}
		return encode(FromTime(t), o)
	case *time.Time:
		if t == nil || t.IsZero() {
			return ""
		}
		return encode(FromTime(*t), o)
	case string:
		return normalizeText(t, o)
	case *string:
		if t == nil {
			return ""
		}
		return normalizeText(*t, o)
	case []byte:
		return normalizeText(string(t), o)
	case json.Number:
		return normalizeText(string(t), o)
	}

	if f, ok := numericValue(v); ok {
		if f == 0 {
			return ""
		}
		if ts, ok := epochTimestamp(f); ok {
			return encode(ts, o)
		}
		logging.Warnf("Epoch %v out of range", v)
		return ""
	}

	logging.Warnf("Unable to normalize value of type %T", v)
	return ""
}

func normalizeText(s string, o encodeOpts) string {
	if s == "" {
		return ""
	}
	if trimmed := strings.TrimSpace(s); epochPat.MatchString(trimmed) {
		if f, err := strconv.ParseFloat(trimmed, 64); err == nil {
			if ts, ok := epochTimestamp(f); ok {
				return encode(ts, o)
			}
		}
	}
	if strings.Contains(s, "<div") {
		return s
	}
	if strings.HasSuffix(s, ZuluMarker) {
		if o.wrap {
			return wrapAnnotation(s, Iso8601, s)
		}
		return s
	}
	return s
}

func epochTimestamp(f float64) (Timestamp, bool) {
	if f < minUnixSec || f > maxUnixSec {
		return Timestamp{}, false
	}
	return FromUnixFloat(f), true
}

func numericValue(v any) (float64, bool) {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(rv.Uint()), true
	case reflect.Float32, reflect.Float64:
		return rv.Float(), true
	}
	return 0, false
}
