package memory

import (
	"context"

	"github.com/shvshnn-coder/venue-pilot/internal/domain/model"
	"github.com/shvshnn-coder/venue-pilot/internal/repo"
)

func (s *Store) CreateDecision(ctx context.Context, decision model.Decision) error {
	unlock := s.lock(ctx)
	defer unlock()

	key := decision.Key()
	for _, existing := range s.decisions {
		if existing.Key() == key {
			return repo.ErrDuplicate
		}
	}
	s.decisions = append(s.decisions, decision)
	return nil
}

func (s *Store) ListDecisionsByUser(ctx context.Context, userID string) ([]model.Decision, error) {
	unlock := s.lock(ctx)
	defer unlock()

	out := make([]model.Decision, 0)
	for _, d := range s.decisions {
		if d.UserID == userID {
			out = append(out, d)
		}
	}
	return out, nil
}

func (s *Store) CountDecisionsByUser(ctx context.Context, userID string) (int, error) {
	items, err := s.ListDecisionsByUser(ctx, userID)
	return len(items), err
}
