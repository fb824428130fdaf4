package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/shvshnn-coder/venue-pilot/internal/domain/model"
)

type AttendeeRepo struct {
	pool *pgxpool.Pool
}

func NewAttendeeRepo(pool *pgxpool.Pool) *AttendeeRepo {
	return &AttendeeRepo{pool: pool}
}

// UpsertAttendees writes a roster import in one batch. Existing rows keep
// their created_at so feed ordering is stable across re-imports.
func (r *AttendeeRepo) UpsertAttendees(ctx context.Context, attendees []model.Attendee) error {
	if len(attendees) == 0 {
		return nil
	}
	q, err := conn(ctx, r.pool)
	if err != nil {
		return err
	}

	const query = `
INSERT INTO attendees (
	id,
	name,
	role,
	bio,
	tags,
	recommended,
	created_at
) VALUES ($1, $2, $3, $4, $5, $6, $7)
ON CONFLICT (id) DO UPDATE SET
	name = EXCLUDED.name,
	role = EXCLUDED.role,
	bio = EXCLUDED.bio,
	tags = EXCLUDED.tags,
	recommended = EXCLUDED.recommended
`

	batch := &pgx.Batch{}
	for _, a := range attendees {
		batch.Queue(query, a.ID, a.Name, a.Role, a.Bio, nonNilTags(a.Tags), a.Recommended, a.CreatedAt.UTC())
	}

	results := q.SendBatch(ctx, batch)
	defer results.Close()

	for range attendees {
		if _, err := results.Exec(); err != nil {
			return fmt.Errorf("upsert attendee: %w", err)
		}
	}
	return nil
}

func (r *AttendeeRepo) ListAttendees(ctx context.Context) ([]model.Attendee, error) {
	q, err := conn(ctx, r.pool)
	if err != nil {
		return nil, err
	}

	rows, err := q.Query(ctx, `
SELECT id, name, role, bio, tags, recommended, created_at
FROM attendees
ORDER BY created_at ASC, id ASC
`)
	if err != nil {
		return nil, fmt.Errorf("list attendees: %w", err)
	}
	defer rows.Close()

	out := make([]model.Attendee, 0)
	for rows.Next() {
		var a model.Attendee
		if err := rows.Scan(&a.ID, &a.Name, &a.Role, &a.Bio, &a.Tags, &a.Recommended, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan attendee: %w", err)
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate attendees: %w", err)
	}
	return out, nil
}
