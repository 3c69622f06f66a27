package json

import (
	"bytes"
	jso "encoding/json"
	"testing"
)

type record struct {
	Input   string
	Encoded string `json:"encoded_value"`
	Hidden  string `json:"-"`
	Epoch   jso.Number
}

func TestWriteJson(t *testing.T) {
	s, err := SWriteJson(record{Input: "2010-09-15T15:44:43Z", Encoded: "09-15-2010 03:44 PM", Hidden: "x", Epoch: "1284565483"})
	if err != nil {
		t.Fatal(err)
	}
	want := `{"input":"2010-09-15T15:44:43Z","encoded_value":"09-15-2010 03:44 PM","epoch":1284565483}`
	if s != want {
		t.Fatalf("got %v, want %v", s, want)
	}
	t.Logf("%v", s)

	if s, _ := SWriteJson("raw"); s != "raw" {
		t.Fatal(s)
	}
}

func TestParseJson(t *testing.T) {
	var m map[string]any
	if err := SParseJson(`{"b":1284565483.5,"a":"2010-09-15T15:44:43Z"}`, &m); err != nil {
		t.Fatal(err)
	}
	if n, ok := m["b"].(jso.Number); !ok || n.String() != "1284565483.5" {
		t.Fatalf("number should be decoded as json.Number, got %#v", m["b"])
	}

	s, err := SWriteJson(m)
	if err != nil {
		t.Fatal(err)
	}
	if s != `{"a":"2010-09-15T15:44:43Z","b":1284565483.5}` {
		t.Fatalf("map keys should be sorted, got %v", s)
	}

	r, err := ParseJsonAs[record]([]byte(`{"input":"abc","encoded_value":"def"}`))
	if err != nil {
		t.Fatal(err)
	}
	if r.Input != "abc" || r.Encoded != "def" {
		t.Fatalf("%+v", r)
	}

	if err := SParseJson(`{`, &m); err == nil {
		t.Fatal("should fail")
	}
}

func TestEncodeDecodeJson(t *testing.T) {
	var buf bytes.Buffer
	if err := EncodeJson(&buf, []any{"a", 1}); err != nil {
		t.Fatal(err)
	}
	var l []any
	if err := DecodeJson(&buf, &l); err != nil {
		t.Fatal(err)
	}
	if len(l) != 2 || l[0] != "a" || l[1] != jso.Number("1") {
		t.Fatalf("%#v", l)
	}
}

func TestLowercaseNamingStrategy(t *testing.T) {
	if s := LowercaseNamingStrategy("LegacyText"); s != "legacyText" {
		t.Fatal(s)
	}
	if s := LowercaseNamingStrategy(""); s != "" {
		t.Fatal(s)
	}
}
