package isodate

import (
	"errors"
	"testing"

	"github.com/curtisnewbie/isodate/util/errs"
)

func TestDecodeAnnotated(t *testing.T) {
	ts, err := DecodeAnnotated(annotated)
	if err != nil {
		t.Fatal(err)
	}
	assertFields(t, ts, 2010, 9, 15, 15, 44, 43, 0)
	if ts.Offset() != UTC {
		t.Fatalf("offset: %#v", ts.Offset())
	}

	ts, err = DecodeAnnotated("2010-09-14T20:30:22Z")
	if err != nil {
		t.Fatal(err)
	}
	assertFields(t, ts, 2010, 9, 14, 20, 30, 22, 0)

	ts, err = DecodeAnnotated("  <span>2010-09-14T20:30:22Z</span>\n")
	if err != nil {
		t.Fatal(err)
	}
	assertFields(t, ts, 2010, 9, 14, 20, 30, 22, 0)
}

func TestDecodeAnnotatedMismatch(t *testing.T) {
	for _, in := range []string{
		"",
		"<div></div>",
		"<div>junk</div>",
		"2010-09-14T20:30:22.5Z",
		"2010-09-14T20:30:22+02:00",
		"2010-09-14T20:30:22",
		"2010-02-30T00:00:00Z",
		"2010-09-14 20:30:22Z",
		"09-15-2010 03:44 PM",
	} {
		_, err := DecodeAnnotated(in)
		if !errors.Is(err, errs.ErrFormatMismatch) {
			t.Fatalf("%q should fail with format mismatch, got %v", in, err)
		}
		if s, ok := errs.InputOf(err); !ok || s != in {
			t.Fatalf("error should carry the input %q, got %q", in, s)
		}
	}
}

func TestDecodeAnnotatedRoundTrip(t *testing.T) {
	for _, s := range []string{
		"2010-09-15T15:44:43Z",
		"2010-09-15T15:44:43+02:00",
		"1999-12-31T23:59:59-05:30",
	} {
		ts := mustParse(t, s)
		for _, opts := range [][]EncodeOption{nil, {WithoutWrap()}} {
			dec, err := DecodeAnnotated(Encode(ts, opts...))
			if err != nil {
				t.Fatal(err)
			}
			if !dec.SameInstant(ts) {
				t.Fatalf("%v decoded as %v", ts, dec)
			}
		}
	}

	// the data-date attribute is not consulted, grid date text can't be decoded
	ts := mustParse(t, "2010-09-15T15:44:43Z")
	if _, err := DecodeAnnotated(Encode(ts, WithPresentation(GridDate))); err == nil {
		t.Fatal("grid date annotation should not be decoded")
	}
}
