package isodate

import (
	"testing"
	"time"
)

func TestPrep(t *testing.T) {
	ts := mustParse(t, "2010-09-15T17:44:43+02:00")
	tt := ts.Time()
	in := map[string]any{
		"created": ts,
		"ptr":     &ts,
		"time":    tt,
		"absent":  Timestamp{},
		"name":    "apple",
		"count":   3,
		"nested": map[string]any{
			"list": []any{ts, "2010-09-15T15:44:43Z", nil, &tt},
		},
	}

	out, ok := Prep(in).(map[string]any)
	if !ok {
		t.Fatalf("unexpected type %T", out)
	}
	want := "2010-09-15T15:44:43Z"
	for _, k := range []string{"created", "ptr", "time"} {
		if out[k] != want {
			t.Fatalf("%v: %#v", k, out[k])
		}
	}
	if out["absent"] != "" {
		t.Fatalf("absent: %#v", out["absent"])
	}
	if out["name"] != "apple" || out["count"] != 3 {
		t.Fatalf("non-timestamp values should be kept: %#v", out)
	}

	l := out["nested"].(map[string]any)["list"].([]any)
	if l[0] != want || l[1] != want || l[2] != nil || l[3] != want {
		t.Fatalf("list: %#v", l)
	}

	// input is not modified
	if _, ok := in["created"].(Timestamp); !ok {
		t.Fatalf("input modified: %#v", in["created"])
	}
	if _, ok := in["nested"].(map[string]any)["list"].([]any)[0].(Timestamp); !ok {
		t.Fatal("nested input modified")
	}
}

func TestPrepScalar(t *testing.T) {
	if v := Prep(time.Time{}); v != "" {
		t.Fatalf("%#v", v)
	}
	if v := Prep(nil); v != nil {
		t.Fatalf("%#v", v)
	}
	if v := Prep(1284565483); v != 1284565483 {
		t.Fatalf("numbers should not be treated as timestamps: %#v", v)
	}
}
