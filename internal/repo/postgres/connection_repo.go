package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/shvshnn-coder/venue-pilot/internal/domain/model"
	"github.com/shvshnn-coder/venue-pilot/internal/repo"
)

type ConnectionRepo struct {
	pool *pgxpool.Pool
}

func NewConnectionRepo(pool *pgxpool.Pool) *ConnectionRepo {
	return &ConnectionRepo{pool: pool}
}

func (r *ConnectionRepo) CreateConnection(ctx context.Context, c model.Connection) error {
	q, err := conn(ctx, r.pool)
	if err != nil {
		return err
	}

	result, err := q.Exec(ctx, `
INSERT INTO connections (
	id,
	user_id,
	connected_user_id,
	created_at
) VALUES ($1, $2, $3, $4)
ON CONFLICT DO NOTHING
`, c.ID, c.UserID, c.ConnectedUserID, c.CreatedAt.UTC())
	if err != nil {
		return mapWriteErr("create connection", err)
	}
	// conflicts must not abort an enclosing transaction
	if result.RowsAffected() == 0 {
		return repo.ErrDuplicate
	}
	return nil
}

func (r *ConnectionRepo) FindConnectionBetween(ctx context.Context, userID, otherID string) (model.Connection, error) {
	q, err := conn(ctx, r.pool)
	if err != nil {
		return model.Connection{}, err
	}

	var c model.Connection
	err = q.QueryRow(ctx, `
SELECT id, user_id, connected_user_id, created_at
FROM connections
WHERE (user_id = $1 AND connected_user_id = $2)
   OR (user_id = $2 AND connected_user_id = $1)
LIMIT 1
`, userID, otherID).Scan(&c.ID, &c.UserID, &c.ConnectedUserID, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Connection{}, repo.ErrNotFound
		}
		return model.Connection{}, fmt.Errorf("find connection: %w", err)
	}
	return c, nil
}

func (r *ConnectionRepo) ListConnectionsByUser(ctx context.Context, userID string) ([]model.Connection, error) {
	q, err := conn(ctx, r.pool)
	if err != nil {
		return nil, err
	}

	rows, err := q.Query(ctx, `
SELECT id, user_id, connected_user_id, created_at
FROM connections
WHERE user_id = $1 OR connected_user_id = $1
ORDER BY created_at ASC, id ASC
`, userID)
	if err != nil {
		return nil, fmt.Errorf("list connections: %w", err)
	}
	defer rows.Close()

	out := make([]model.Connection, 0)
	for rows.Next() {
		var c model.Connection
		if err := rows.Scan(&c.ID, &c.UserID, &c.ConnectedUserID, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan connection: %w", err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate connections: %w", err)
	}
	return out, nil
}

func (r *ConnectionRepo) CountConnectionsByUser(ctx context.Context, userID string) (int, error) {
	q, err := conn(ctx, r.pool)
	if err != nil {
		return 0, err
	}

	var count int
	err = q.QueryRow(ctx, `
SELECT COUNT(*)::INT
FROM connections
WHERE user_id = $1 OR connected_user_id = $1
`, userID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count connections: %w", err)
	}
	return count, nil
}

func (r *ConnectionRepo) DeleteConnectionBetween(ctx context.Context, userID, otherID string) error {
	q, err := conn(ctx, r.pool)
	if err != nil {
		return err
	}

	result, err := q.Exec(ctx, `
DELETE FROM connections
WHERE (user_id = $1 AND connected_user_id = $2)
   OR (user_id = $2 AND connected_user_id = $1)
`, userID, otherID)
	if err != nil {
		return fmt.Errorf("delete connection: %w", err)
	}
	if result.RowsAffected() == 0 {
		return repo.ErrNotFound
	}
	return nil
}
