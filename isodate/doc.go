// Package for ISO 8601 / RFC 3339 date processing.
//
// The core type in this package is [Timestamp], an immutable instant plus the [FixedOffset] it was expressed in.
//
// Parse text into [Timestamp] using [Parse]:
//
//	ts, err := isodate.Parse("2010-09-15T15:44:43+02:00", isodate.UTC)
//
// Dates without timezone are resolved using the given default. Partially specified dates (e.g., '2010-09')
// are rejected by [Parse], use [ParsePartial] to accept them.
//
// Encode [Timestamp] back into text using [Encode]. Two presentation classes are supported:
//   - [Iso8601]: 2006-01-02T15:04:05Z, always in UTC
//   - [GridDate]: 01-02-2006 03:04 PM, optionally shifted into an IANA zone using [WithZone]
//
// By default, the encoded value is wrapped in a html annotation that carries the canonical [Iso8601] value:
//
//	<div data-date="2010-09-15T13:44:43Z" class="iso8601" title="2010-09-15T13:44:43Z">2010-09-15T13:44:43Z</div>
//
// [DecodeAnnotated] reverses [Encode] for the [Iso8601] class.
//
// [Normalize] accepts values of any type, including values that are already encoded, which makes it safe
// to apply repetitively in display contexts.
//
// [LegacyEncode] and [LegacyDecode] convert between [Timestamp] and the legacy storage pattern
// 'Mon DD YYYY hh:MM:SSffffffAM', [LegacyTime] persists [Timestamp] in database using that pattern.
//
// Errors are reported using the sentinels in package errs, e.g.,
//
//	if errors.Is(err, errs.ErrFormatMismatch) {
//		// ...
//	}
package isodate
