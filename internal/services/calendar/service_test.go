package calendar

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shvshnn-coder/venue-pilot/internal/domain/enums"
	memrepo "github.com/shvshnn-coder/venue-pilot/internal/repo/memory"
	catalogsvc "github.com/shvshnn-coder/venue-pilot/internal/services/catalog"
	swipesvc "github.com/shvshnn-coder/venue-pilot/internal/services/swipes"
)

func seedEvents(t *testing.T, catalog *catalogsvc.Service) {
	t.Helper()

	events := []catalogsvc.EventInput{
		{ID: "E1", Name: "Opening keynote", StartsAt: time.Date(2025, 12, 15, 9, 0, 0, 0, time.UTC)},
		{ID: "E2", Name: "Hack night", StartsAt: time.Date(2025, 12, 16, 19, 0, 0, 0, time.UTC)},
		{ID: "E3", Name: "Closing panel", StartsAt: time.Date(2025, 12, 17, 16, 0, 0, 0, time.UTC)},
	}
	for _, in := range events {
		if _, err := catalog.CreateEvent(context.Background(), in); err != nil {
			t.Fatalf("create event %s: %v", in.ID, err)
		}
	}
}

func TestCalendarDerivedFromRightSwipes(t *testing.T) {
	ctx := context.Background()
	store := memrepo.NewStore()
	catalog := catalogsvc.NewService(store)
	seedEvents(t, catalog)

	swipes := swipesvc.NewService(swipesvc.Dependencies{Decisions: store}, swipesvc.Config{})
	for _, step := range []struct {
		id  string
		dir enums.Direction
	}{
		{id: "E1", dir: enums.DirectionRight},
		{id: "E2", dir: enums.DirectionRight},
		{id: "E3", dir: enums.DirectionLeft},
	} {
		if _, err := swipes.Record(ctx, "U", step.id, enums.TargetTypeEvent, step.dir); err != nil {
			t.Fatalf("record %s: %v", step.id, err)
		}
	}

	svc := NewService(store, catalog, Config{})

	events, err := svc.InterestedEvents(ctx, "U")
	if err != nil {
		t.Fatalf("interested events: %v", err)
	}
	if len(events) != 2 || events[0].ID != "E1" || events[1].ID != "E2" {
		t.Fatalf("unexpected interested events: %+v", events)
	}

	dates, err := svc.Dates(ctx, "U")
	if err != nil {
		t.Fatalf("dates: %v", err)
	}
	if len(dates) != 2 || dates[0] != "2025-12-15" || dates[1] != "2025-12-16" {
		t.Fatalf("unexpected dates: %v", dates)
	}

	again, err := svc.Dates(ctx, "U")
	if err != nil {
		t.Fatalf("dates again: %v", err)
	}
	if len(again) != len(dates) || again[0] != dates[0] || again[1] != dates[1] {
		t.Fatalf("calendar derivation is not stable: got %v want %v", again, dates)
	}

	if _, err := swipes.Record(ctx, "U", "E1", enums.TargetTypeEvent, enums.DirectionRight); !errors.Is(err, swipesvc.ErrConflict) {
		t.Fatalf("unexpected error on repeated swipe: got %v want %v", err, swipesvc.ErrConflict)
	}
}

func TestEventsOnUsesConfiguredTimezone(t *testing.T) {
	ctx := context.Background()
	store := memrepo.NewStore()
	catalog := catalogsvc.NewService(store)

	late := time.Date(2025, 12, 15, 23, 30, 0, 0, time.UTC)
	if _, err := catalog.CreateEvent(ctx, catalogsvc.EventInput{ID: "late", Name: "Late session", StartsAt: late}); err != nil {
		t.Fatalf("create event: %v", err)
	}
	swipes := swipesvc.NewService(swipesvc.Dependencies{Decisions: store}, swipesvc.Config{})
	if _, err := swipes.Record(ctx, "U", "late", enums.TargetTypeEvent, enums.DirectionRight); err != nil {
		t.Fatalf("record: %v", err)
	}

	tokyo := time.FixedZone("JST", 9*60*60)
	svc := NewService(store, catalog, Config{Location: tokyo})

	day, events, err := svc.EventsOn(ctx, "U", "2025-12-16")
	if err != nil {
		t.Fatalf("events on: %v", err)
	}
	if day != "2025-12-16" || len(events) != 1 || events[0].ID != "late" {
		t.Fatalf("unexpected events on %s: %+v", day, events)
	}

	_, events, err = svc.EventsOn(ctx, "U", "2025-12-15")
	if err != nil {
		t.Fatalf("events on: %v", err)
	}
	if len(events) != 0 {
		t.Fatalf("unexpected events: %+v", events)
	}

	if _, _, err := svc.EventsOn(ctx, "U", "15/12/2025"); !errors.Is(err, ErrValidation) {
		t.Fatalf("unexpected error for bad date: %v", err)
	}
}

func TestCalendarEmptyForUnknownUser(t *testing.T) {
	store := memrepo.NewStore()
	svc := NewService(store, catalogsvc.NewService(store), Config{})

	overview, err := svc.Overview(context.Background(), "nobody")
	if err != nil {
		t.Fatalf("overview: %v", err)
	}
	if len(overview.Dates) != 0 || len(overview.Events) != 0 {
		t.Fatalf("unexpected overview: %+v", overview)
	}
	if overview.Dates == nil || overview.Events == nil {
		t.Fatalf("expected empty slices, got nil")
	}
}
