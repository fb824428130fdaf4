package catalog

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shvshnn-coder/venue-pilot/internal/domain/enums"
	memrepo "github.com/shvshnn-coder/venue-pilot/internal/repo/memory"
)

func TestCreateEventNormalizesTags(t *testing.T) {
	svc := NewService(memrepo.NewStore())
	ctx := context.Background()

	event, err := svc.CreateEvent(ctx, EventInput{
		ID:       "evt1",
		Name:     " Keynote ",
		StartsAt: time.Date(2025, 12, 15, 9, 0, 0, 0, time.UTC),
		Tags:     []string{"#AI", "ai", " ", "Ethics"},
	})
	if err != nil {
		t.Fatalf("create event: %v", err)
	}
	if event.Name != "Keynote" {
		t.Fatalf("unexpected name: %q", event.Name)
	}
	if len(event.Tags) != 2 || event.Tags[0] != "#AI" || event.Tags[1] != "Ethics" {
		t.Fatalf("unexpected tags: %v", event.Tags)
	}

	if _, err := svc.CreateEvent(ctx, EventInput{ID: "evt1", Name: "Again", StartsAt: event.StartsAt}); !errors.Is(err, ErrConflict) {
		t.Fatalf("unexpected duplicate error: %v", err)
	}
	if _, err := svc.CreateEvent(ctx, EventInput{Name: "No date"}); !errors.Is(err, ErrValidation) {
		t.Fatalf("unexpected error for missing date: %v", err)
	}
}

func TestImportAttendeesUpsertsAndExposesItems(t *testing.T) {
	svc := NewService(memrepo.NewStore())
	ctx := context.Background()

	if _, err := svc.ImportAttendees(ctx, []AttendeeInput{{ID: "a1", Name: "Ada"}, {ID: "a2", Name: "Grace"}}); err != nil {
		t.Fatalf("import roster: %v", err)
	}
	if _, err := svc.ImportAttendees(ctx, []AttendeeInput{{ID: "a1", Name: "Ada Lovelace", Role: "Speaker"}}); err != nil {
		t.Fatalf("re-import roster: %v", err)
	}

	items, err := svc.Items(ctx, enums.TargetTypeAttendee)
	if err != nil {
		t.Fatalf("items: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("unexpected attendee count: %d", len(items))
	}
	for _, item := range items {
		if item.ID() == "a1" && item.Attendee.Name != "Ada Lovelace" {
			t.Fatalf("attendee was not updated: %+v", item.Attendee)
		}
	}

	if _, err := svc.ImportAttendees(ctx, []AttendeeInput{{ID: "a3"}}); !errors.Is(err, ErrValidation) {
		t.Fatalf("unexpected error for nameless attendee: %v", err)
	}
	if _, err := svc.Items(ctx, enums.TargetType("venue")); !errors.Is(err, ErrValidation) {
		t.Fatalf("unexpected error for unknown type: %v", err)
	}
}
