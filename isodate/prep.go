package isodate

import "time"

// Prepare JSON-like value for marshalling, timestamps are encoded as unwrapped [Iso8601] text.
//
// Maps and slices are copied recursively, v is never modified.
func Prep(v any) any {
	switch t := v.(type) {
	case map[string]any:
		m := make(map[string]any, len(t))
		for k, v := range t {
			m[k] = Prep(v)
		}
		return m
	case []any:
		l := make([]any, len(t))
		for i, v := range t {
			l[i] = Prep(v)
		}
		return l
	case Timestamp, *Timestamp, time.Time, *time.Time:
		return Normalize(t, WithoutWrap())
	}
	return v
}
