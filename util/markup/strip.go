package markup

import (
	"io"
	"regexp"
	"strings"

	"golang.org/x/net/html"
)

var (
	tagPat = regexp.MustCompile(`<[^>]*?>`)
)

// Remove any html tags from a string, text nodes are joined with a single space.
//
// Entities in text nodes are unescaped. If the tokenizer fails for any reason other than EOF,
// tags are replaced with a space using a simple regex instead.
func StripTags(s string) string {
	z := html.NewTokenizer(strings.NewReader(s))
	texts := []string{}
	for {
		switch z.Next() {
		case html.ErrorToken:
			if z.Err() == io.EOF {
				return strings.Join(texts, " ")
			}
			return tagPat.ReplaceAllString(s, " ")
		case html.TextToken:
			texts = append(texts, string(z.Text()))
		}
	}
}
