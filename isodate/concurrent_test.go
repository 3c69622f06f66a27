package isodate

import (
	"sync"
	"testing"
)

func TestConcurrentUse(t *testing.T) {
	cases := []struct {
		in     string
		iso    string
		legacy string
	}{
		{in: "2010-09-15T15:44:43Z", iso: "2010-09-15T15:44:43Z", legacy: "Sep 15 2010 03:44:43000000PM"},
		{in: "2010-09-15T17:44:43.25+02:00", iso: "2010-09-15T15:44:43Z", legacy: "Sep 15 2010 03:44:43250000PM"},
		{in: "1999-12-31T23:59:59-05:30", iso: "2000-01-01T05:29:59Z", legacy: "Jan 01 2000 05:29:59000000AM"},
		{in: "2012-02-29 12:00Z", iso: "2012-02-29T12:00:00Z", legacy: "Feb 29 2012 12:00:00000000PM"},
	}

	var wg sync.WaitGroup
	errCh := make(chan string, 64)
	for g := 0; g < 16; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 50; i++ {
				c := cases[(g+i)%len(cases)]
				ts, err := Parse(c.in, UTC)
				if err != nil {
					errCh <- err.Error()
					return
				}
				if s := Encode(ts, WithoutWrap()); s != c.iso {
					errCh <- c.in + ": " + s
					return
				}
				if s := Encode(ts, WithPresentation(GridDate), WithZone("America/Chicago")); s == "" {
					errCh <- c.in + ": empty grid date"
					return
				}
				l := LegacyEncode(ts)
				if l != c.legacy {
					errCh <- c.in + ": " + l
					return
				}
				dec, err := LegacyDecode(l)
				if err != nil || !dec.SameInstant(ts) {
					errCh <- c.in + ": legacy round trip failed"
					return
				}
			}
		}()
	}
	wg.Wait()
	close(errCh)
	for msg := range errCh {
		t.Fatal(msg)
	}
}
