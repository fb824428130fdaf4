package memory

import (
	"context"

	"github.com/shvshnn-coder/venue-pilot/internal/domain/model"
	"github.com/shvshnn-coder/venue-pilot/internal/repo"
)

// CreateConnection rejects a second record for the same unordered pair.
func (s *Store) CreateConnection(ctx context.Context, conn model.Connection) error {
	unlock := s.lock(ctx)
	defer unlock()

	for _, existing := range s.connections {
		if existing.Links(conn.UserID, conn.ConnectedUserID) {
			return repo.ErrDuplicate
		}
	}
	s.connections = append(s.connections, conn)
	return nil
}

func (s *Store) FindConnectionBetween(ctx context.Context, userID, otherID string) (model.Connection, error) {
	unlock := s.lock(ctx)
	defer unlock()

	for _, c := range s.connections {
		if c.Links(userID, otherID) {
			return c, nil
		}
	}
	return model.Connection{}, repo.ErrNotFound
}

func (s *Store) ListConnectionsByUser(ctx context.Context, userID string) ([]model.Connection, error) {
	unlock := s.lock(ctx)
	defer unlock()

	out := make([]model.Connection, 0)
	for _, c := range s.connections {
		if c.Involves(userID) {
			out = append(out, c)
		}
	}
	return out, nil
}

func (s *Store) CountConnectionsByUser(ctx context.Context, userID string) (int, error) {
	items, err := s.ListConnectionsByUser(ctx, userID)
	return len(items), err
}

// DeleteConnectionBetween removes the pair in either ordering.
func (s *Store) DeleteConnectionBetween(ctx context.Context, userID, otherID string) error {
	unlock := s.lock(ctx)
	defer unlock()

	kept := s.connections[:0:0]
	removed := 0
	for _, c := range s.connections {
		if c.Links(userID, otherID) {
			removed++
			continue
		}
		kept = append(kept, c)
	}
	if removed == 0 {
		return repo.ErrNotFound
	}
	s.connections = kept
	return nil
}
