// Package memory is the in-process storage driver. A single mutex guards every
// collection, which makes each write atomic with respect to the uniqueness
// checks that precede it.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/shvshnn-coder/venue-pilot/internal/domain/model"
)

type Store struct {
	mu sync.Mutex

	decisions   []model.Decision
	connections []model.Connection
	blocks      []model.Block
	reports     []model.Report
	events      []model.Event
	attendees   map[string]model.Attendee
	windows     map[string]rateWindow
	nextSweep   time.Time

	now func() time.Time
}

func NewStore() *Store {
	return &Store{
		attendees: make(map[string]model.Attendee),
		windows:   make(map[string]rateWindow),
		now:       time.Now,
	}
}

type txKey struct{}

// WithinTx runs fn with the store lock held. Calls made with the context it
// receives do not lock again. If fn fails every collection is restored to
// its state before the call.
func (s *Store) WithinTx(ctx context.Context, fn func(context.Context) error) error {
	if owner, _ := ctx.Value(txKey{}).(*Store); owner == s {
		return fn(ctx)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	snap := s.snapshot()
	if err := fn(context.WithValue(ctx, txKey{}, s)); err != nil {
		s.restore(snap)
		return err
	}
	return nil
}

func (s *Store) lock(ctx context.Context) func() {
	if owner, _ := ctx.Value(txKey{}).(*Store); owner == s {
		return func() {}
	}
	s.mu.Lock()
	return s.mu.Unlock
}

type snapshot struct {
	decisions   []model.Decision
	connections []model.Connection
	blocks      []model.Block
	reports     []model.Report
	events      []model.Event
	attendees   map[string]model.Attendee
}

func (s *Store) snapshot() snapshot {
	attendees := make(map[string]model.Attendee, len(s.attendees))
	for id, a := range s.attendees {
		attendees[id] = a
	}
	return snapshot{
		decisions:   append([]model.Decision(nil), s.decisions...),
		connections: append([]model.Connection(nil), s.connections...),
		blocks:      append([]model.Block(nil), s.blocks...),
		reports:     append([]model.Report(nil), s.reports...),
		events:      append([]model.Event(nil), s.events...),
		attendees:   attendees,
	}
}

func (s *Store) restore(snap snapshot) {
	s.decisions = snap.decisions
	s.connections = snap.connections
	s.blocks = snap.blocks
	s.reports = snap.reports
	s.events = snap.events
	s.attendees = snap.attendees
}
