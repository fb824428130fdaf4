package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/shvshnn-coder/venue-pilot/internal/domain/model"
)

// EventRepo stores the conference programme in catalog_events.
type EventRepo struct {
	pool *pgxpool.Pool
}

func NewEventRepo(pool *pgxpool.Pool) *EventRepo {
	return &EventRepo{pool: pool}
}

func (r *EventRepo) CreateEvent(ctx context.Context, e model.Event) error {
	q, err := conn(ctx, r.pool)
	if err != nil {
		return err
	}

	_, err = q.Exec(ctx, `
INSERT INTO catalog_events (
	id,
	name,
	location,
	starts_at,
	tags,
	recommended,
	organizer_id,
	created_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
`, e.ID, e.Name, e.Location, e.StartsAt.UTC(), nonNilTags(e.Tags), e.Recommended, e.OrganizerID, e.CreatedAt.UTC())
	if err != nil {
		return mapWriteErr("create event", err)
	}
	return nil
}

func (r *EventRepo) ListEvents(ctx context.Context) ([]model.Event, error) {
	return r.list(ctx, `
SELECT id, name, location, starts_at, tags, recommended, organizer_id, created_at
FROM catalog_events
ORDER BY created_at ASC, id ASC
`)
}

func (r *EventRepo) ListEventsByIDs(ctx context.Context, ids []string) ([]model.Event, error) {
	if len(ids) == 0 {
		return []model.Event{}, nil
	}
	return r.list(ctx, `
SELECT id, name, location, starts_at, tags, recommended, organizer_id, created_at
FROM catalog_events
WHERE id = ANY($1)
ORDER BY starts_at ASC, id ASC
`, ids)
}

func (r *EventRepo) list(ctx context.Context, query string, args ...any) ([]model.Event, error) {
	q, err := conn(ctx, r.pool)
	if err != nil {
		return nil, err
	}

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	defer rows.Close()

	out := make([]model.Event, 0)
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate events: %w", err)
	}
	return out, nil
}

func scanEvent(row pgx.Row) (model.Event, error) {
	var e model.Event
	if err := row.Scan(&e.ID, &e.Name, &e.Location, &e.StartsAt, &e.Tags, &e.Recommended, &e.OrganizerID, &e.CreatedAt); err != nil {
		return model.Event{}, fmt.Errorf("scan event: %w", err)
	}
	return e, nil
}

func nonNilTags(tags []string) []string {
	if tags == nil {
		return []string{}
	}
	return tags
}
