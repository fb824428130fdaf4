package rules

import (
	"reflect"
	"testing"
	"time"

	"github.com/shvshnn-coder/venue-pilot/internal/domain/enums"
	"github.com/shvshnn-coder/venue-pilot/internal/domain/model"
)

func TestInterestedEventIDsKeepsOnlyRightSwipedEvents(t *testing.T) {
	base := time.Date(2025, 12, 1, 10, 0, 0, 0, time.UTC)
	decisions := []model.Decision{
		{ID: "d3", UserID: "u1", TargetID: "evt3", TargetType: enums.TargetTypeEvent, Direction: enums.DirectionLeft, CreatedAt: base.Add(2 * time.Minute)},
		{ID: "d2", UserID: "u1", TargetID: "evt2", TargetType: enums.TargetTypeEvent, Direction: enums.DirectionRight, CreatedAt: base.Add(time.Minute)},
		{ID: "d1", UserID: "u1", TargetID: "evt1", TargetType: enums.TargetTypeEvent, Direction: enums.DirectionRight, CreatedAt: base},
		{ID: "d4", UserID: "u1", TargetID: "att1", TargetType: enums.TargetTypeAttendee, Direction: enums.DirectionRight, CreatedAt: base.Add(3 * time.Minute)},
	}

	got := InterestedEventIDs(decisions)
	want := []string{"evt1", "evt2"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected interested events: got %v want %v", got, want)
	}

	again := InterestedEventIDs(decisions)
	if !reflect.DeepEqual(got, again) {
		t.Fatalf("derivation is not stable: %v vs %v", got, again)
	}
}

func TestInterestedEventIDsEmptyLog(t *testing.T) {
	got := InterestedEventIDs(nil)
	if got == nil || len(got) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", got)
	}
}

func TestDecidedTargetsFiltersByType(t *testing.T) {
	decisions := []model.Decision{
		{TargetID: "evt1", TargetType: enums.TargetTypeEvent, Direction: enums.DirectionLeft},
		{TargetID: "att1", TargetType: enums.TargetTypeAttendee, Direction: enums.DirectionRight},
	}

	events := DecidedTargets(decisions, enums.TargetTypeEvent)
	if _, ok := events["evt1"]; !ok || len(events) != 1 {
		t.Fatalf("unexpected decided events: %v", events)
	}
	attendees := DecidedTargets(decisions, enums.TargetTypeAttendee)
	if _, ok := attendees["att1"]; !ok || len(attendees) != 1 {
		t.Fatalf("unexpected decided attendees: %v", attendees)
	}
}
