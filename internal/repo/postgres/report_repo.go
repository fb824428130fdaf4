package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/shvshnn-coder/venue-pilot/internal/domain/model"
	"github.com/shvshnn-coder/venue-pilot/internal/repo"
)

type ReportRepo struct {
	pool *pgxpool.Pool
}

func NewReportRepo(pool *pgxpool.Pool) *ReportRepo {
	return &ReportRepo{pool: pool}
}

func (r *ReportRepo) CreateReport(ctx context.Context, report model.Report) error {
	q, err := conn(ctx, r.pool)
	if err != nil {
		return err
	}

	_, err = q.Exec(ctx, `
INSERT INTO reports (
	id,
	reporter_id,
	reported_user_id,
	reason,
	additional_details,
	created_at
) VALUES ($1, $2, $3, $4, $5, $6)
`, report.ID, report.ReporterID, report.ReportedUserID, string(report.Reason), report.AdditionalDetails, report.CreatedAt.UTC())
	if err != nil {
		return mapWriteErr("create report", err)
	}
	return nil
}

func (r *ReportRepo) ListReportsByReporter(ctx context.Context, reporterID string) ([]model.Report, error) {
	return r.list(ctx, `
SELECT id, reporter_id, reported_user_id, reason, additional_details, created_at, dispatched_at
FROM reports
WHERE reporter_id = $1
ORDER BY created_at ASC, id ASC
`, reporterID)
}

func (r *ReportRepo) ListUndispatchedReports(ctx context.Context, limit int) ([]model.Report, error) {
	if limit <= 0 {
		limit = 50
	}
	return r.list(ctx, `
SELECT id, reporter_id, reported_user_id, reason, additional_details, created_at, dispatched_at
FROM reports
WHERE dispatched_at IS NULL
ORDER BY created_at ASC, id ASC
LIMIT $1
`, limit)
}

func (r *ReportRepo) MarkReportDispatched(ctx context.Context, reportID string, at time.Time) error {
	q, err := conn(ctx, r.pool)
	if err != nil {
		return err
	}

	result, err := q.Exec(ctx, `
UPDATE reports
SET dispatched_at = $2
WHERE id = $1
`, reportID, at.UTC())
	if err != nil {
		return fmt.Errorf("mark report dispatched: %w", err)
	}
	if result.RowsAffected() == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *ReportRepo) list(ctx context.Context, query string, arg any) ([]model.Report, error) {
	q, err := conn(ctx, r.pool)
	if err != nil {
		return nil, err
	}

	rows, err := q.Query(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("list reports: %w", err)
	}
	defer rows.Close()

	out := make([]model.Report, 0)
	for rows.Next() {
		var (
			report model.Report
			reason string
		)
		if err := rows.Scan(
			&report.ID,
			&report.ReporterID,
			&report.ReportedUserID,
			&reason,
			&report.AdditionalDetails,
			&report.CreatedAt,
			&report.DispatchedAt,
		); err != nil {
			return nil, fmt.Errorf("scan report: %w", err)
		}
		report.Reason = enumsReportReason(reason)
		out = append(out, report)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate reports: %w", err)
	}
	return out, nil
}
