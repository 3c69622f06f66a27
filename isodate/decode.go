package isodate

import (
	"regexp"
	"strings"
	"time"

	"github.com/curtisnewbie/isodate/util/errs"
	"github.com/curtisnewbie/isodate/util/markup"
)

var (
	annotatedPat = regexp.MustCompile(`^[0-9]{4}-[0-9]{2}-[0-9]{2}T[0-9]{2}:[0-9]{2}:[0-9]{2}Z$`)
)

// Decode value produced by [Encode], the html annotation is optional, e.g.,
//
//	<div data-date="2010-09-15T15:44:43Z" class="iso8601" title="2010-09-15T15:44:43Z">2010-09-15T15:44:43Z</div>
//	2010-09-14T20:30:22Z
//
// Markup is stripped, the remaining text must match 2006-01-02T15:04:05Z exactly, fractional seconds and
// numeric offsets are rejected with [errs.ErrFormatMismatch].
func DecodeAnnotated(text string) (Timestamp, error) {
	s := strings.TrimSpace(markup.StripTags(text))
	if !annotatedPat.MatchString(s) {
		return Timestamp{}, errs.ErrFormatMismatch.WithInput(text, "expecting '%v'", Iso8601Layout)
	}
	t, err := time.Parse(Iso8601Layout, s)
	if err != nil {
		return Timestamp{}, errs.ErrFormatMismatch.WithInput(text, "%v", err)
	}
	return FromTime(t), nil
}
