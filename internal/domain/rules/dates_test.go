package rules

import (
	"testing"
	"time"
)

func TestDayKeyUsesTimezone(t *testing.T) {
	loc, err := time.LoadLocation("Europe/Berlin")
	if err != nil {
		t.Fatalf("load location: %v", err)
	}

	utc := time.Date(2025, 12, 15, 23, 30, 0, 0, time.UTC)
	got := DayKey(utc, loc)
	want := "2025-12-16"
	if got != want {
		t.Fatalf("unexpected day key: got %s want %s", got, want)
	}
}

func TestDayKeyDefaultsToUTC(t *testing.T) {
	utc := time.Date(2025, 12, 15, 23, 59, 59, 0, time.UTC)
	got := DayKey(utc, nil)
	want := "2025-12-15"
	if got != want {
		t.Fatalf("unexpected day key: got %s want %s", got, want)
	}
}

func TestParseDayKeyRejectsGarbage(t *testing.T) {
	if _, err := ParseDayKey("Dec 15"); err == nil {
		t.Fatalf("expected parse error")
	}
	got, err := ParseDayKey("2025-12-15")
	if err != nil {
		t.Fatalf("parse day key: %v", err)
	}
	if got != "2025-12-15" {
		t.Fatalf("unexpected key: %s", got)
	}
}

func TestDistinctDayKeysSortsAndDeduplicates(t *testing.T) {
	instants := []time.Time{
		time.Date(2025, 12, 16, 18, 0, 0, 0, time.UTC),
		time.Date(2025, 12, 15, 9, 0, 0, 0, time.UTC),
		time.Date(2025, 12, 15, 14, 0, 0, 0, time.UTC),
	}

	got := DistinctDayKeys(instants, time.UTC)
	if len(got) != 2 || got[0] != "2025-12-15" || got[1] != "2025-12-16" {
		t.Fatalf("unexpected day keys: %v", got)
	}
}
