package memory

import (
	"context"
	"sort"

	"github.com/shvshnn-coder/venue-pilot/internal/domain/model"
	"github.com/shvshnn-coder/venue-pilot/internal/repo"
)

func (s *Store) CreateEvent(ctx context.Context, event model.Event) error {
	unlock := s.lock(ctx)
	defer unlock()

	for _, e := range s.events {
		if e.ID == event.ID {
			return repo.ErrDuplicate
		}
	}
	s.events = append(s.events, event)
	return nil
}

func (s *Store) ListEvents(ctx context.Context) ([]model.Event, error) {
	unlock := s.lock(ctx)
	defer unlock()

	return append([]model.Event{}, s.events...), nil
}

func (s *Store) ListEventsByIDs(ctx context.Context, ids []string) ([]model.Event, error) {
	unlock := s.lock(ctx)
	defer unlock()

	wanted := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		wanted[id] = struct{}{}
	}
	out := make([]model.Event, 0, len(ids))
	for _, e := range s.events {
		if _, ok := wanted[e.ID]; ok {
			out = append(out, e)
		}
	}
	return out, nil
}

// UpsertAttendees replaces attendees with the same ID and keeps their original
// creation time.
func (s *Store) UpsertAttendees(ctx context.Context, attendees []model.Attendee) error {
	unlock := s.lock(ctx)
	defer unlock()

	for _, a := range attendees {
		if existing, ok := s.attendees[a.ID]; ok {
			a.CreatedAt = existing.CreatedAt
		}
		s.attendees[a.ID] = a
	}
	return nil
}

func (s *Store) ListAttendees(ctx context.Context) ([]model.Attendee, error) {
	unlock := s.lock(ctx)
	defer unlock()

	out := make([]model.Attendee, 0, len(s.attendees))
	for _, a := range s.attendees {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}
