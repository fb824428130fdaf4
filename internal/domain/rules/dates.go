package rules

import (
	"fmt"
	"sort"
	"time"
)

const dayKeyLayout = "2006-01-02"

// DayKey is the civil date of t in loc, formatted as YYYY-MM-DD.
func DayKey(t time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.UTC
	}
	return t.In(loc).Format(dayKeyLayout)
}

// ParseDayKey validates a YYYY-MM-DD key and returns it normalized.
func ParseDayKey(raw string) (string, error) {
	t, err := time.Parse(dayKeyLayout, raw)
	if err != nil {
		return "", fmt.Errorf("parse day key %q: %w", raw, err)
	}
	return t.Format(dayKeyLayout), nil
}

// DistinctDayKeys returns the sorted set of civil dates the given instants
// fall on.
func DistinctDayKeys(instants []time.Time, loc *time.Location) []string {
	seen := make(map[string]struct{}, len(instants))
	out := make([]string, 0, len(instants))
	for _, t := range instants {
		key := DayKey(t, loc)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, key)
	}
	sort.Strings(out)
	return out
}
