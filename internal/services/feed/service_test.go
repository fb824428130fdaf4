package feed

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shvshnn-coder/venue-pilot/internal/domain/enums"
	"github.com/shvshnn-coder/venue-pilot/internal/domain/model"
	memrepo "github.com/shvshnn-coder/venue-pilot/internal/repo/memory"
	catalogsvc "github.com/shvshnn-coder/venue-pilot/internal/services/catalog"
	modsvc "github.com/shvshnn-coder/venue-pilot/internal/services/moderation"
)

type catalogStub struct {
	items []model.SwipeableItem
}

func (s catalogStub) Items(context.Context, enums.TargetType) ([]model.SwipeableItem, error) {
	return s.items, nil
}

func newFeed(t *testing.T) (*Service, *memrepo.Store) {
	t.Helper()

	store := memrepo.NewStore()
	catalog := catalogsvc.NewService(store)
	_, err := catalog.ImportAttendees(context.Background(), []catalogsvc.AttendeeInput{
		{ID: "viewer", Name: "Viewer"},
		{ID: "a1", Name: "Ada", Tags: []string{"#AI"}},
		{ID: "a2", Name: "Grace", Recommended: true},
		{ID: "a3", Name: "Linus"},
		{ID: "a4", Name: "Barbara", Tags: []string{"ai"}},
	})
	if err != nil {
		t.Fatalf("import roster: %v", err)
	}

	svc := NewService(Dependencies{
		Catalog:    catalog,
		Decisions:  store,
		Moderation: modsvc.NewService(modsvc.Dependencies{Blocks: store, Reports: store}),
	}, Config{})
	return svc, store
}

func ids(items []model.SwipeableItem) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		out = append(out, item.ID())
	}
	return out
}

func TestDiscoverExcludesSelfDecidedAndBlocked(t *testing.T) {
	svc, store := newFeed(t)
	ctx := context.Background()

	if err := store.CreateDecision(ctx, model.Decision{ID: "d1", UserID: "viewer", TargetID: "a3", TargetType: enums.TargetTypeAttendee, Direction: enums.DirectionLeft}); err != nil {
		t.Fatalf("seed decision: %v", err)
	}
	if err := store.CreateBlock(ctx, model.Block{ID: "b1", BlockerID: "a4", BlockedUserID: "viewer"}); err != nil {
		t.Fatalf("seed block: %v", err)
	}

	res, err := svc.Discover(ctx, Query{ViewerID: "viewer", Type: enums.TargetTypeAttendee})
	if err != nil {
		t.Fatalf("discover: %v", err)
	}
	got := ids(res.Items)
	if len(got) != 2 || got[0] != "a2" || got[1] != "a1" {
		t.Fatalf("unexpected queue: %v", got)
	}
	if res.Exhausted || res.NextCursor != "" {
		t.Fatalf("unexpected paging state: %+v", res)
	}
}

func TestDiscoverFiltersByTagAndRecommendation(t *testing.T) {
	svc, _ := newFeed(t)
	ctx := context.Background()

	tagged, err := svc.Discover(ctx, Query{ViewerID: "viewer", Type: enums.TargetTypeAttendee, Tag: "ai"})
	if err != nil {
		t.Fatalf("discover by tag: %v", err)
	}
	if got := ids(tagged.Items); len(got) != 2 || got[0] != "a1" || got[1] != "a4" {
		t.Fatalf("unexpected tagged queue: %v", got)
	}

	recommended, err := svc.Discover(ctx, Query{ViewerID: "viewer", Type: enums.TargetTypeAttendee, RecommendedOnly: true})
	if err != nil {
		t.Fatalf("discover recommended: %v", err)
	}
	if got := ids(recommended.Items); len(got) != 1 || got[0] != "a2" {
		t.Fatalf("unexpected recommended queue: %v", got)
	}
}

func TestDiscoverPaginatesWithCursor(t *testing.T) {
	base := time.Date(2025, 12, 1, 9, 0, 0, 0, time.UTC)
	items := make([]model.SwipeableItem, 0, 5)
	for i, id := range []string{"e1", "e2", "e3", "e4", "e5"} {
		items = append(items, model.EventItem(model.Event{ID: id, CreatedAt: base.Add(time.Duration(i) * time.Minute)}))
	}
	svc := NewService(Dependencies{Catalog: catalogStub{items: items}, Decisions: memrepo.NewStore()}, Config{})
	ctx := context.Background()

	seen := []string{}
	cursor := ""
	for page := 0; page < 5; page++ {
		res, err := svc.Discover(ctx, Query{ViewerID: "u1", Type: enums.TargetTypeEvent, Limit: 2, Cursor: cursor})
		if err != nil {
			t.Fatalf("discover page %d: %v", page, err)
		}
		seen = append(seen, ids(res.Items)...)
		if res.NextCursor == "" {
			break
		}
		cursor = res.NextCursor
	}

	if len(seen) != 5 || seen[0] != "e1" || seen[4] != "e5" {
		t.Fatalf("unexpected pages: %v", seen)
	}
}

func TestDiscoverReportsExhaustion(t *testing.T) {
	svc, store := newFeed(t)
	ctx := context.Background()

	for _, id := range []string{"a1", "a2", "a3", "a4"} {
		if err := store.CreateDecision(ctx, model.Decision{ID: "d-" + id, UserID: "viewer", TargetID: id, TargetType: enums.TargetTypeAttendee, Direction: enums.DirectionLeft}); err != nil {
			t.Fatalf("seed decision: %v", err)
		}
	}

	res, err := svc.Discover(ctx, Query{ViewerID: "viewer", Type: enums.TargetTypeAttendee})
	if err != nil {
		t.Fatalf("discover: %v", err)
	}
	if !res.Exhausted || len(res.Items) != 0 {
		t.Fatalf("expected exhausted queue, got %+v", res)
	}
}

func TestDiscoverRejectsBadInput(t *testing.T) {
	svc, _ := newFeed(t)
	ctx := context.Background()

	if _, err := svc.Discover(ctx, Query{Type: enums.TargetTypeEvent}); !errors.Is(err, ErrValidation) {
		t.Fatalf("unexpected error for missing viewer: %v", err)
	}
	if _, err := svc.Discover(ctx, Query{ViewerID: "viewer", Type: "venue"}); !errors.Is(err, ErrValidation) {
		t.Fatalf("unexpected error for bad type: %v", err)
	}
	if _, err := svc.Discover(ctx, Query{ViewerID: "viewer", Type: enums.TargetTypeEvent, Cursor: "%%%"}); !errors.Is(err, ErrInvalidCursor) {
		t.Fatalf("unexpected error for bad cursor: %v", err)
	}
}
