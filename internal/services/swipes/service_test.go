package swipes

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/shvshnn-coder/venue-pilot/internal/domain/enums"
	"github.com/shvshnn-coder/venue-pilot/internal/domain/model"
	memrepo "github.com/shvshnn-coder/venue-pilot/internal/repo/memory"
	connsvc "github.com/shvshnn-coder/venue-pilot/internal/services/connections"
	ratesvc "github.com/shvshnn-coder/venue-pilot/internal/services/rate"
)

type failingFormer struct {
	calls int
}

func (f *failingFormer) Form(context.Context, string, string) (model.Connection, bool, error) {
	f.calls++
	return model.Connection{}, false, errors.New("connections table unavailable")
}

type rateLimiterStub struct {
	allowed    bool
	retryAfter int64
}

func (s rateLimiterStub) AllowDecision(context.Context, string) (int64, bool, error) {
	return s.retryAfter, s.allowed, nil
}

func (s rateLimiterStub) RetryAfterDecision(context.Context, string) (int64, error) {
	if s.allowed {
		return 0, nil
	}
	return s.retryAfter, nil
}

func newTestService(mode ConnectionMode) (*Service, *memrepo.Store) {
	store := memrepo.NewStore()
	svc := NewService(Dependencies{
		Decisions:   store,
		Connections: connsvc.NewService(store, nil),
		Tx:          store,
	}, Config{ConnectionMode: mode})
	return svc, store
}

func TestRecordRejectsSecondDecisionForSameTarget(t *testing.T) {
	svc, _ := newTestService(ConnectionModeBestEffort)
	ctx := context.Background()

	if _, err := svc.Record(ctx, "u1", "evt1", enums.TargetTypeEvent, enums.DirectionRight); err != nil {
		t.Fatalf("first record: %v", err)
	}

	for _, dir := range []enums.Direction{enums.DirectionRight, enums.DirectionLeft} {
		_, err := svc.Record(ctx, "u1", "evt1", enums.TargetTypeEvent, dir)
		if !errors.Is(err, ErrConflict) {
			t.Fatalf("unexpected error for repeated %s: got %v want %v", dir, err, ErrConflict)
		}
	}

	items, err := svc.DecisionsOf(ctx, "u1")
	if err != nil {
		t.Fatalf("decisions of: %v", err)
	}
	if len(items) != 1 || items[0].Direction != enums.DirectionRight {
		t.Fatalf("first decision must stay untouched, got %+v", items)
	}
}

func TestRecordConcurrentSameKeyStoresOnce(t *testing.T) {
	svc, _ := newTestService(ConnectionModeBestEffort)
	ctx := context.Background()

	const workers = 12
	var wg sync.WaitGroup
	results := make(chan error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Record(ctx, "u1", "att2", enums.TargetTypeAttendee, enums.DirectionRight)
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	ok, conflicts := 0, 0
	for err := range results {
		switch {
		case err == nil:
			ok++
		case errors.Is(err, ErrConflict):
			conflicts++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if ok != 1 || conflicts != workers-1 {
		t.Fatalf("unexpected outcome: ok=%d conflicts=%d", ok, conflicts)
	}
}

func TestRecordFormsConnectionOnlyForRightSwipedAttendee(t *testing.T) {
	svc, store := newTestService(ConnectionModeBestEffort)
	ctx := context.Background()

	left, err := svc.Record(ctx, "u1", "u2", enums.TargetTypeAttendee, enums.DirectionLeft)
	if err != nil {
		t.Fatalf("record left: %v", err)
	}
	if left.Connection != nil {
		t.Fatalf("left swipe must not form a connection")
	}

	event, err := svc.Record(ctx, "u1", "evt1", enums.TargetTypeEvent, enums.DirectionRight)
	if err != nil {
		t.Fatalf("record event: %v", err)
	}
	if event.Connection != nil {
		t.Fatalf("event swipe must not form a connection")
	}

	right, err := svc.Record(ctx, "u1", "u3", enums.TargetTypeAttendee, enums.DirectionRight)
	if err != nil {
		t.Fatalf("record right: %v", err)
	}
	if right.Connection == nil || !right.ConnectionCreated {
		t.Fatalf("expected connection to be created, got %+v", right)
	}

	for _, user := range []string{"u1", "u3"} {
		items, _ := store.ListConnectionsByUser(ctx, user)
		if len(items) != 1 {
			t.Fatalf("unexpected connections for %s: %d", user, len(items))
		}
	}
}

func TestRecordMutualRightSwipesShareOneConnection(t *testing.T) {
	svc, store := newTestService(ConnectionModeAtomic)
	ctx := context.Background()

	first, err := svc.Record(ctx, "a", "b", enums.TargetTypeAttendee, enums.DirectionRight)
	if err != nil {
		t.Fatalf("record a->b: %v", err)
	}
	second, err := svc.Record(ctx, "b", "a", enums.TargetTypeAttendee, enums.DirectionRight)
	if err != nil {
		t.Fatalf("record b->a: %v", err)
	}
	if second.ConnectionCreated || second.Connection.ID != first.Connection.ID {
		t.Fatalf("expected existing connection to be reused, got %+v", second)
	}

	items, _ := store.ListConnectionsByUser(ctx, "a")
	if len(items) != 1 {
		t.Fatalf("unexpected connection count: %d", len(items))
	}
}

func TestRecordBestEffortKeepsDecisionWhenConnectionFails(t *testing.T) {
	store := memrepo.NewStore()
	former := &failingFormer{}
	svc := NewService(Dependencies{Decisions: store, Connections: former, Tx: store}, Config{})

	res, err := svc.Record(context.Background(), "u1", "u2", enums.TargetTypeAttendee, enums.DirectionRight)
	if err != nil {
		t.Fatalf("best effort must not fail the decision: %v", err)
	}
	if !errors.Is(res.ConnectionErr, ErrDownstreamUnavailable) {
		t.Fatalf("unexpected connection error: %v", res.ConnectionErr)
	}
	if former.calls != 1 {
		t.Fatalf("unexpected former calls: %d", former.calls)
	}

	items, _ := store.ListDecisionsByUser(context.Background(), "u1")
	if len(items) != 1 {
		t.Fatalf("decision must be kept, got %d", len(items))
	}
}

func TestRecordAtomicRollsBackDecisionWhenConnectionFails(t *testing.T) {
	store := memrepo.NewStore()
	svc := NewService(Dependencies{Decisions: store, Connections: &failingFormer{}, Tx: store}, Config{ConnectionMode: ConnectionModeAtomic})

	_, err := svc.Record(context.Background(), "u1", "u2", enums.TargetTypeAttendee, enums.DirectionRight)
	if !errors.Is(err, ErrDownstreamUnavailable) {
		t.Fatalf("unexpected error: %v", err)
	}

	items, _ := store.ListDecisionsByUser(context.Background(), "u1")
	if len(items) != 0 {
		t.Fatalf("decision must be rolled back, got %d", len(items))
	}
}

func TestRecordValidation(t *testing.T) {
	svc, _ := newTestService(ConnectionModeBestEffort)
	ctx := context.Background()

	cases := []struct {
		name       string
		userID     string
		targetID   string
		targetType enums.TargetType
		direction  enums.Direction
	}{
		{"empty user", "", "evt1", enums.TargetTypeEvent, enums.DirectionLeft},
		{"empty target", "u1", " ", enums.TargetTypeEvent, enums.DirectionLeft},
		{"bad type", "u1", "x", enums.TargetType("venue"), enums.DirectionLeft},
		{"bad direction", "u1", "x", enums.TargetTypeEvent, enums.Direction("up")},
		{"self swipe", "u1", "u1", enums.TargetTypeAttendee, enums.DirectionRight},
	}
	for _, tc := range cases {
		if _, err := svc.Record(ctx, tc.userID, tc.targetID, tc.targetType, tc.direction); !errors.Is(err, ErrValidation) {
			t.Fatalf("%s: unexpected error: %v", tc.name, err)
		}
	}
}

func TestRecordRateLimited(t *testing.T) {
	store := memrepo.NewStore()
	svc := NewService(Dependencies{
		Decisions:   store,
		RateLimiter: rateLimiterStub{allowed: false, retryAfter: 7},
	}, Config{})

	_, err := svc.Record(context.Background(), "u1", "evt1", enums.TargetTypeEvent, enums.DirectionRight)
	tooFast, ok := IsTooFast(err)
	if !ok {
		t.Fatalf("expected TooFastError, got %v", err)
	}
	if tooFast.RetryAfter() != 7 {
		t.Fatalf("unexpected retry_after: %d", tooFast.RetryAfter())
	}

	items, _ := store.ListDecisionsByUser(context.Background(), "u1")
	if len(items) != 0 {
		t.Fatalf("rate limited decision must not be stored")
	}
}

func TestSummaryCountsDecisions(t *testing.T) {
	svc, _ := newTestService(ConnectionModeBestEffort)
	ctx := context.Background()

	for _, target := range []string{"evt1", "evt2"} {
		if _, err := svc.Record(ctx, "u1", target, enums.TargetTypeEvent, enums.DirectionLeft); err != nil {
			t.Fatalf("record %s: %v", target, err)
		}
	}
	summary, err := svc.Summary(ctx, "u1")
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	if summary.Swiped != 2 {
		t.Fatalf("unexpected swiped count: %d", summary.Swiped)
	}
}

func TestSummaryReportsCooldown(t *testing.T) {
	store := memrepo.NewStore()
	svc := NewService(Dependencies{
		Decisions:   store,
		RateLimiter: rateLimiterStub{allowed: false, retryAfter: 4},
	}, Config{})

	summary, err := svc.Summary(context.Background(), "u1")
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	if summary.Swiped != 0 || summary.CooldownSec != 4 {
		t.Fatalf("unexpected summary: got %+v want swiped=0 cooldown_sec=4", summary)
	}
}

func TestRecordNormalizesEnumCase(t *testing.T) {
	svc, store := newTestService(ConnectionModeBestEffort)
	ctx := context.Background()

	if _, err := svc.Record(ctx, "u1", "evt1", enums.TargetTypeEvent, enums.DirectionRight); err != nil {
		t.Fatalf("first record: %v", err)
	}
	if _, err := svc.Record(ctx, "u1", "evt1", enums.TargetType("Event"), enums.DirectionRight); !errors.Is(err, ErrConflict) {
		t.Fatalf("unexpected error for case variant: got %v want %v", err, ErrConflict)
	}

	res, err := svc.Record(ctx, "u1", "att1", enums.TargetType(" ATTENDEE "), enums.Direction("RIGHT"))
	if err != nil {
		t.Fatalf("record upper-case attendee swipe: %v", err)
	}
	if res.Decision.TargetType != enums.TargetTypeAttendee || res.Decision.Direction != enums.DirectionRight {
		t.Fatalf("unexpected stored enums: got %q/%q want %q/%q",
			res.Decision.TargetType, res.Decision.Direction, enums.TargetTypeAttendee, enums.DirectionRight)
	}
	if res.Connection == nil || !res.ConnectionCreated {
		t.Fatalf("expected connection for right attendee swipe, got %+v", res)
	}

	items, err := store.ListDecisionsByUser(ctx, "u1")
	if err != nil {
		t.Fatalf("list decisions: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("unexpected stored decisions: got %d want 2", len(items))
	}
	conns, err := store.ListConnectionsByUser(ctx, "u1")
	if err != nil {
		t.Fatalf("list connections: %v", err)
	}
	if len(conns) != 1 {
		t.Fatalf("unexpected connections: got %d want 1", len(conns))
	}
}

func TestRecordConflictDoesNotSpendRateBudget(t *testing.T) {
	store := memrepo.NewStore()
	limiter := ratesvc.NewLimiter(memrepo.NewStore(), ratesvc.Config{DecisionsPer10Sec: 2})
	svc := NewService(Dependencies{Decisions: store, RateLimiter: limiter}, Config{})
	ctx := context.Background()

	if _, err := svc.Record(ctx, "u1", "evt1", enums.TargetTypeEvent, enums.DirectionLeft); err != nil {
		t.Fatalf("first record: %v", err)
	}
	for i := 0; i < 3; i++ {
		if _, err := svc.Record(ctx, "u1", "evt1", enums.TargetTypeEvent, enums.DirectionLeft); !errors.Is(err, ErrConflict) {
			t.Fatalf("replay #%d: got %v want %v", i+1, err, ErrConflict)
		}
	}

	if _, err := svc.Record(ctx, "u1", "evt2", enums.TargetTypeEvent, enums.DirectionLeft); err != nil {
		t.Fatalf("second distinct record must fit the budget: %v", err)
	}
	if _, err := svc.Record(ctx, "u1", "evt3", enums.TargetTypeEvent, enums.DirectionLeft); err == nil {
		t.Fatalf("third distinct record must be rate limited")
	} else if _, ok := IsTooFast(err); !ok {
		t.Fatalf("unexpected error: got %v want TooFastError", err)
	}
}
