package memory

import (
	"context"
	"time"

	"github.com/shvshnn-coder/venue-pilot/internal/domain/model"
	"github.com/shvshnn-coder/venue-pilot/internal/repo"
)

func (s *Store) CreateBlock(ctx context.Context, block model.Block) error {
	unlock := s.lock(ctx)
	defer unlock()

	for _, b := range s.blocks {
		if b.BlockerID == block.BlockerID && b.BlockedUserID == block.BlockedUserID {
			return repo.ErrDuplicate
		}
	}
	s.blocks = append(s.blocks, block)
	return nil
}

func (s *Store) DeleteBlock(ctx context.Context, blockerID, blockedUserID string) error {
	unlock := s.lock(ctx)
	defer unlock()

	for i, b := range s.blocks {
		if b.BlockerID == blockerID && b.BlockedUserID == blockedUserID {
			s.blocks = append(s.blocks[:i:i], s.blocks[i+1:]...)
			return nil
		}
	}
	return repo.ErrNotFound
}

func (s *Store) BlockExists(ctx context.Context, blockerID, blockedUserID string) (bool, error) {
	unlock := s.lock(ctx)
	defer unlock()

	for _, b := range s.blocks {
		if b.BlockerID == blockerID && b.BlockedUserID == blockedUserID {
			return true, nil
		}
	}
	return false, nil
}

func (s *Store) ListBlocksByBlocker(ctx context.Context, blockerID string) ([]model.Block, error) {
	unlock := s.lock(ctx)
	defer unlock()

	out := make([]model.Block, 0)
	for _, b := range s.blocks {
		if b.BlockerID == blockerID {
			out = append(out, b)
		}
	}
	return out, nil
}

func (s *Store) ListBlocksInvolving(ctx context.Context, userID string) ([]model.Block, error) {
	unlock := s.lock(ctx)
	defer unlock()

	out := make([]model.Block, 0)
	for _, b := range s.blocks {
		if b.BlockerID == userID || b.BlockedUserID == userID {
			out = append(out, b)
		}
	}
	return out, nil
}

func (s *Store) CreateReport(ctx context.Context, report model.Report) error {
	unlock := s.lock(ctx)
	defer unlock()

	for _, r := range s.reports {
		if r.ID == report.ID {
			return repo.ErrDuplicate
		}
	}
	s.reports = append(s.reports, report)
	return nil
}

func (s *Store) ListReportsByReporter(ctx context.Context, reporterID string) ([]model.Report, error) {
	unlock := s.lock(ctx)
	defer unlock()

	out := make([]model.Report, 0)
	for _, r := range s.reports {
		if r.ReporterID == reporterID {
			out = append(out, r)
		}
	}
	return out, nil
}

// ListUndispatchedReports returns the oldest reports not yet handed to
// moderators.
func (s *Store) ListUndispatchedReports(ctx context.Context, limit int) ([]model.Report, error) {
	unlock := s.lock(ctx)
	defer unlock()

	out := make([]model.Report, 0)
	for _, r := range s.reports {
		if r.DispatchedAt != nil {
			continue
		}
		out = append(out, r)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}

func (s *Store) MarkReportDispatched(ctx context.Context, reportID string, at time.Time) error {
	unlock := s.lock(ctx)
	defer unlock()

	for i := range s.reports {
		if s.reports[i].ID == reportID {
			stamp := at.UTC()
			s.reports[i].DispatchedAt = &stamp
			return nil
		}
	}
	return repo.ErrNotFound
}
