package isodate

import (
	"encoding/json"
	"testing"
	"time"
	_ "time/tzdata"
)

const (
	annotated = `<div data-date="2010-09-15T15:44:43Z" class="iso8601" title="2010-09-15T15:44:43Z">2010-09-15T15:44:43Z</div>`
)

func TestEncode(t *testing.T) {
	ts := mustParse(t, "2010-09-15T15:44:43Z")

	if s := Encode(ts); s != annotated {
		t.Fatal(s)
	}
	if s := Encode(ts, WithoutWrap()); s != "2010-09-15T15:44:43Z" {
		t.Fatal(s)
	}
	if s := Encode(ts, WithPresentation(Iso8601), WithZone("America/Chicago"), WithWrap(false)); s != "2010-09-15T15:44:43Z" {
		t.Fatalf("iso8601 should ignore zone, got %v", s)
	}
	if s := Encode(Timestamp{}); s != "" {
		t.Fatalf("absent timestamp should be encoded as empty string, got %v", s)
	}
}

func TestEncodeGridDate(t *testing.T) {
	ts := mustParse(t, "2010-09-15T15:44:43Z")

	if s := Encode(ts, WithPresentation(GridDate), WithoutWrap()); s != "09-15-2010 03:44 PM" {
		t.Fatal(s)
	}
	if s := Encode(ts, WithPresentation(GridDate), WithZone("America/Chicago"), WithoutWrap()); s != "09-15-2010 10:44 AM" {
		t.Fatal(s)
	}

	want := `<div data-date="2010-09-15T15:44:43Z" class="gridDate" title="09-15-2010 10:44 AM">09-15-2010 10:44 AM</div>`
	if s := Encode(ts, WithPresentation(GridDate), WithZone("America/Chicago")); s != want {
		t.Fatal(s)
	}

	// unknown zones fallback to UTC
	if s := Encode(ts, WithPresentation(GridDate), WithZone("Mars/Base"), WithoutWrap()); s != "09-15-2010 03:44 PM" {
		t.Fatal(s)
	}

	// without zone, the timestamp's own offset is used
	ts = mustParse(t, "2010-09-15T00:15:00+02:00")
	if s := Encode(ts, WithPresentation(GridDate), WithoutWrap()); s != "09-15-2010 12:15 AM" {
		t.Fatal(s)
	}
	want = `<div data-date="2010-09-14T22:15:00Z" class="gridDate" title="09-15-2010 12:15 AM">09-15-2010 12:15 AM</div>`
	if s := Encode(ts, WithPresentation(GridDate)); s != want {
		t.Fatal(s)
	}
}

func TestEncodeEpoch(t *testing.T) {
	if s := Encode(FromUnix(0), WithoutWrap()); s != "1970-01-01T00:00:00Z" {
		t.Fatalf("epoch is a legitimate instant, got %q", s)
	}
	if s := Encode(mustParse(t, "1970-01-01T00:00:00Z"), WithoutWrap()); s != "1970-01-01T00:00:00Z" {
		t.Fatal(s)
	}
}

func TestParsePresentation(t *testing.T) {
	cases := map[string]Presentation{
		"iso8601":   Iso8601,
		" ISO8601 ": Iso8601,
		"gridDate":  GridDate,
		"GRIDDATE":  GridDate,
		"griddate":  GridDate,
	}
	for in, want := range cases {
		p, ok := ParsePresentation(in)
		if !ok || p != want {
			t.Fatalf("ParsePresentation(%q) = %v, %v", in, p, ok)
		}
	}
	if _, ok := ParsePresentation("grid"); ok {
		t.Fatal("grid should not be a presentation")
	}

	ts := mustParse(t, "2010-09-15T15:44:43Z")
	if s := Encode(ts, WithPresentation("bogus"), WithoutWrap()); s != "2010-09-15T15:44:43Z" {
		t.Fatal(s)
	}
	if s := Encode(ts, WithPresentation("GridDate"), WithoutWrap()); s != "09-15-2010 03:44 PM" {
		t.Fatal(s)
	}
}

type myInt int

func TestNormalizeAbsent(t *testing.T) {
	var nilTs *Timestamp
	var nilTime *time.Time
	var nilStr *string
	for _, v := range []any{nil, Timestamp{}, nilTs, time.Time{}, nilTime, nilStr, "", []byte{}, 0, 0.0, int64(0), uint8(0), myInt(0)} {
		if s := Normalize(v); s != "" {
			t.Fatalf("%#v should be normalized as empty string, got %q", v, s)
		}
		if s := Normalize(v, WithoutWrap()); s != "" {
			t.Fatalf("%#v should be normalized as empty string, got %q", v, s)
		}
	}
}

func TestNormalizeEpoch(t *testing.T) {
	for _, v := range []any{
		1284565483,
		int64(1284565483),
		uint32(1284565483),
		1284565483.25,
		myInt(1284565483),
		"1284565483",
		" 1284565483 ",
		"1284565483.5",
		json.Number("1284565483"),
	} {
		if s := Normalize(v); s != annotated {
			t.Fatalf("%#v: %v", v, s)
		}
	}

	// numeric string zero is not absent
	if s := Normalize("0", WithoutWrap()); s != "1970-01-01T00:00:00Z" {
		t.Fatal(s)
	}
	if s := Normalize(-1, WithoutWrap()); s != "1969-12-31T23:59:59Z" {
		t.Fatal(s)
	}

	// out of range
	if s := Normalize(1e18); s != "" {
		t.Fatal(s)
	}
	if s := Normalize("1000000000000000000", WithoutWrap()); s != "1000000000000000000" {
		t.Fatal(s)
	}
}

func TestNormalizePassthrough(t *testing.T) {
	if s := Normalize(annotated); s != annotated {
		t.Fatal(s)
	}
	if s := Normalize(annotated, WithoutWrap()); s != annotated {
		t.Fatal(s)
	}

	bare := "2010-09-15T15:44:43Z"
	if s := Normalize(bare, WithoutWrap()); s != bare {
		t.Fatal(s)
	}
	if s := Normalize(bare); s != annotated {
		t.Fatal(s)
	}
	if s := Normalize(bare, WithPresentation(GridDate)); s != annotated {
		t.Fatalf("bare iso8601 text should always be annotated as iso8601, got %v", s)
	}

	for _, v := range []string{"hello", "09-15-2010 03:44 PM", "NaN", "Inf", "0x10"} {
		if s := Normalize(v); s != v {
			t.Fatalf("%q should be returned unchanged, got %q", v, s)
		}
	}

	if s := Normalize(struct{}{}); s != "" {
		t.Fatal(s)
	}
}

func TestNormalizeTimes(t *testing.T) {
	ts := mustParse(t, "2010-09-15T15:44:43Z")
	if s := Normalize(ts); s != annotated {
		t.Fatal(s)
	}
	if s := Normalize(&ts); s != annotated {
		t.Fatal(s)
	}

	tt := time.Date(2010, 9, 15, 17, 44, 43, 999, time.FixedZone("CEST", 7200))
	if s := Normalize(tt); s != annotated {
		t.Fatal(s)
	}
	if s := Normalize(&tt, WithPresentation(GridDate), WithoutWrap()); s != "09-15-2010 05:44 PM" {
		t.Fatal(s)
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	ts := mustParse(t, "2010-09-15T15:44:43+02:00")
	optsList := [][]EncodeOption{
		nil,
		{WithoutWrap()},
		{WithPresentation(GridDate)},
		{WithPresentation(GridDate), WithZone("Asia/Shanghai"), WithoutWrap()},
	}
	for _, opts := range optsList {
		for _, v := range []any{ts, "2010-09-15T15:44:43Z", "1284565483", 1284565483, "hello", annotated, nil} {
			once := Normalize(v, opts...)
			twice := Normalize(once, opts...)
			if once != twice {
				t.Fatalf("%#v: %q != %q", v, once, twice)
			}
		}
	}
}
