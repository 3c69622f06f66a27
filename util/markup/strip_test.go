package markup

import "testing"

func TestStripTags(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{in: "", want: ""},
		{in: "2010-09-14T20:30:22Z", want: "2010-09-14T20:30:22Z"},
		{
			in:   `<div data-date="2010-09-15T15:44:43Z" class="iso8601" title="2010-09-15T15:44:43Z">2010-09-15T15:44:43Z</div>`,
			want: "2010-09-15T15:44:43Z",
		},
		{in: "<p>a</p><p>b</p>", want: "a b"},
		{in: "<b>fish &amp; chips</b>", want: "fish & chips"},
		{in: "<br/>", want: ""},
	}
	for _, c := range cases {
		if got := StripTags(c.in); got != c.want {
			t.Fatalf("StripTags(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}
