package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/shvshnn-coder/venue-pilot/internal/domain/model"
)

type DecisionRepo struct {
	pool *pgxpool.Pool
}

func NewDecisionRepo(pool *pgxpool.Pool) *DecisionRepo {
	return &DecisionRepo{pool: pool}
}

// CreateDecision relies on decisions_user_target_uq: a concurrent second
// insert for the same key fails with repo.ErrDuplicate.
func (r *DecisionRepo) CreateDecision(ctx context.Context, d model.Decision) error {
	q, err := conn(ctx, r.pool)
	if err != nil {
		return err
	}

	_, err = q.Exec(ctx, `
INSERT INTO decisions (
	id,
	user_id,
	target_id,
	target_type,
	direction,
	created_at
) VALUES ($1, $2, $3, $4, $5, $6)
`, d.ID, d.UserID, d.TargetID, string(d.TargetType), string(d.Direction), d.CreatedAt.UTC())
	if err != nil {
		return mapWriteErr("create decision", err)
	}
	return nil
}

func (r *DecisionRepo) ListDecisionsByUser(ctx context.Context, userID string) ([]model.Decision, error) {
	q, err := conn(ctx, r.pool)
	if err != nil {
		return nil, err
	}

	rows, err := q.Query(ctx, `
SELECT id, user_id, target_id, target_type, direction, created_at
FROM decisions
WHERE user_id = $1
ORDER BY created_at ASC, id ASC
`, userID)
	if err != nil {
		return nil, fmt.Errorf("list decisions: %w", err)
	}
	defer rows.Close()

	out := make([]model.Decision, 0)
	for rows.Next() {
		d, err := scanDecision(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate decisions: %w", err)
	}
	return out, nil
}

func (r *DecisionRepo) CountDecisionsByUser(ctx context.Context, userID string) (int, error) {
	q, err := conn(ctx, r.pool)
	if err != nil {
		return 0, err
	}

	var count int
	if err := q.QueryRow(ctx, `SELECT COUNT(*)::INT FROM decisions WHERE user_id = $1`, userID).Scan(&count); err != nil {
		return 0, fmt.Errorf("count decisions: %w", err)
	}
	return count, nil
}

func scanDecision(row pgx.Row) (model.Decision, error) {
	var (
		d          model.Decision
		targetType string
		direction  string
	)
	if err := row.Scan(&d.ID, &d.UserID, &d.TargetID, &targetType, &direction, &d.CreatedAt); err != nil {
		return model.Decision{}, fmt.Errorf("scan decision: %w", err)
	}
	d.TargetType = enumsTargetType(targetType)
	d.Direction = enumsDirection(direction)
	return d, nil
}
