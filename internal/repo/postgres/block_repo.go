package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/shvshnn-coder/venue-pilot/internal/domain/model"
	"github.com/shvshnn-coder/venue-pilot/internal/repo"
)

type BlockRepo struct {
	pool *pgxpool.Pool
}

func NewBlockRepo(pool *pgxpool.Pool) *BlockRepo {
	return &BlockRepo{pool: pool}
}

func (r *BlockRepo) CreateBlock(ctx context.Context, b model.Block) error {
	q, err := conn(ctx, r.pool)
	if err != nil {
		return err
	}

	_, err = q.Exec(ctx, `
INSERT INTO blocks (
	id,
	blocker_id,
	blocked_user_id,
	created_at
) VALUES ($1, $2, $3, $4)
`, b.ID, b.BlockerID, b.BlockedUserID, b.CreatedAt.UTC())
	if err != nil {
		return mapWriteErr("create block", err)
	}
	return nil
}

func (r *BlockRepo) DeleteBlock(ctx context.Context, blockerID, blockedUserID string) error {
	q, err := conn(ctx, r.pool)
	if err != nil {
		return err
	}

	result, err := q.Exec(ctx, `
DELETE FROM blocks
WHERE blocker_id = $1 AND blocked_user_id = $2
`, blockerID, blockedUserID)
	if err != nil {
		return fmt.Errorf("delete block: %w", err)
	}
	if result.RowsAffected() == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *BlockRepo) BlockExists(ctx context.Context, blockerID, blockedUserID string) (bool, error) {
	q, err := conn(ctx, r.pool)
	if err != nil {
		return false, err
	}

	var exists bool
	err = q.QueryRow(ctx, `
SELECT EXISTS (
	SELECT 1 FROM blocks WHERE blocker_id = $1 AND blocked_user_id = $2
)
`, blockerID, blockedUserID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check block: %w", err)
	}
	return exists, nil
}

func (r *BlockRepo) ListBlocksByBlocker(ctx context.Context, blockerID string) ([]model.Block, error) {
	return r.list(ctx, `
SELECT id, blocker_id, blocked_user_id, created_at
FROM blocks
WHERE blocker_id = $1
ORDER BY created_at ASC, id ASC
`, blockerID)
}

func (r *BlockRepo) ListBlocksInvolving(ctx context.Context, userID string) ([]model.Block, error) {
	return r.list(ctx, `
SELECT id, blocker_id, blocked_user_id, created_at
FROM blocks
WHERE blocker_id = $1 OR blocked_user_id = $1
ORDER BY created_at ASC, id ASC
`, userID)
}

func (r *BlockRepo) list(ctx context.Context, query, userID string) ([]model.Block, error) {
	q, err := conn(ctx, r.pool)
	if err != nil {
		return nil, err
	}

	rows, err := q.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list blocks: %w", err)
	}
	defer rows.Close()

	out := make([]model.Block, 0)
	for rows.Next() {
		var b model.Block
		if err := rows.Scan(&b.ID, &b.BlockerID, &b.BlockedUserID, &b.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan block: %w", err)
		}
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate blocks: %w", err)
	}
	return out, nil
}
