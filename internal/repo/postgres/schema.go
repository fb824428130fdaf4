package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// schemaStatements are idempotent. Uniqueness of decisions, blocks and
// connections is enforced here rather than by read-then-write checks.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS decisions (
	id TEXT PRIMARY KEY,
	user_id TEXT NOT NULL,
	target_id TEXT NOT NULL,
	target_type TEXT NOT NULL CHECK (target_type IN ('event', 'attendee')),
	direction TEXT NOT NULL CHECK (direction IN ('left', 'right')),
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS decisions_user_target_uq
	ON decisions (user_id, target_id, target_type)`,
	`CREATE TABLE IF NOT EXISTS connections (
	id TEXT PRIMARY KEY,
	user_id TEXT NOT NULL,
	connected_user_id TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	CHECK (user_id <> connected_user_id)
)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS connections_pair_uq
	ON connections (LEAST(user_id, connected_user_id), GREATEST(user_id, connected_user_id))`,
	`CREATE INDEX IF NOT EXISTS connections_connected_user_idx ON connections (connected_user_id)`,
	`CREATE TABLE IF NOT EXISTS blocks (
	id TEXT PRIMARY KEY,
	blocker_id TEXT NOT NULL,
	blocked_user_id TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS blocks_pair_uq ON blocks (blocker_id, blocked_user_id)`,
	`CREATE INDEX IF NOT EXISTS blocks_blocked_user_idx ON blocks (blocked_user_id)`,
	`CREATE TABLE IF NOT EXISTS reports (
	id TEXT PRIMARY KEY,
	reporter_id TEXT NOT NULL,
	reported_user_id TEXT NOT NULL,
	reason TEXT NOT NULL,
	additional_details TEXT,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	dispatched_at TIMESTAMPTZ
)`,
	`CREATE INDEX IF NOT EXISTS reports_pending_idx ON reports (created_at) WHERE dispatched_at IS NULL`,
	`CREATE TABLE IF NOT EXISTS catalog_events (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	location TEXT NOT NULL DEFAULT '',
	starts_at TIMESTAMPTZ NOT NULL,
	tags TEXT[] NOT NULL DEFAULT '{}',
	recommended BOOLEAN NOT NULL DEFAULT FALSE,
	organizer_id TEXT NOT NULL DEFAULT '',
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`,
	`CREATE TABLE IF NOT EXISTS attendees (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	role TEXT NOT NULL DEFAULT '',
	bio TEXT NOT NULL DEFAULT '',
	tags TEXT[] NOT NULL DEFAULT '{}',
	recommended BOOLEAN NOT NULL DEFAULT FALSE,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`,
}

func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	for i, stmt := range schemaStatements {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("apply schema statement %d: %w", i+1, err)
		}
	}
	return nil
}
