package connections

import (
	"context"
	"errors"
	"testing"

	memrepo "github.com/shvshnn-coder/venue-pilot/internal/repo/memory"
)

func TestFormIsSymmetricAndDeduplicated(t *testing.T) {
	svc := NewService(memrepo.NewStore(), nil)
	ctx := context.Background()

	first, created, err := svc.Form(ctx, "alice", "bob")
	if err != nil || !created {
		t.Fatalf("form first connection: created=%v err=%v", created, err)
	}

	second, created, err := svc.Form(ctx, "bob", "alice")
	if err != nil {
		t.Fatalf("form reverse connection: %v", err)
	}
	if created {
		t.Fatalf("reverse swipe must not create a second connection")
	}
	if second.ID != first.ID {
		t.Fatalf("unexpected connection id: got %s want %s", second.ID, first.ID)
	}

	for _, user := range []string{"alice", "bob"} {
		items, err := svc.ConnectionsOf(ctx, user)
		if err != nil {
			t.Fatalf("connections of %s: %v", user, err)
		}
		if len(items) != 1 {
			t.Fatalf("unexpected connections for %s: %d", user, len(items))
		}
	}

	aliceView, _ := svc.ConnectionsOf(ctx, "alice")
	bobView, _ := svc.ConnectionsOf(ctx, "bob")
	if aliceView[0].OtherUserID != "bob" || bobView[0].OtherUserID != "alice" {
		t.Fatalf("unexpected counterparts: %s / %s", aliceView[0].OtherUserID, bobView[0].OtherUserID)
	}
}

func TestFormRejectsSelfAndEmpty(t *testing.T) {
	svc := NewService(memrepo.NewStore(), nil)
	for _, pair := range [][2]string{{"a", "a"}, {"", "b"}, {"a", " "}} {
		if _, _, err := svc.Form(context.Background(), pair[0], pair[1]); !errors.Is(err, ErrValidation) {
			t.Fatalf("unexpected error for %v: %v", pair, err)
		}
	}
}

func TestRemoveThenRemoveAgain(t *testing.T) {
	svc := NewService(memrepo.NewStore(), nil)
	ctx := context.Background()

	if _, _, err := svc.Form(ctx, "A", "B"); err != nil {
		t.Fatalf("form: %v", err)
	}

	if err := svc.Remove(ctx, "B", "A"); err != nil {
		t.Fatalf("remove with reversed ordering: %v", err)
	}

	for _, user := range []string{"A", "B"} {
		count, err := svc.Count(ctx, user)
		if err != nil {
			t.Fatalf("count %s: %v", user, err)
		}
		if count != 0 {
			t.Fatalf("unexpected count for %s after remove: %d", user, count)
		}
	}

	if err := svc.Remove(ctx, "A", "B"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("unexpected second remove error: got %v want %v", err, ErrNotFound)
	}
}
