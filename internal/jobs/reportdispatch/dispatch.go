package reportdispatch

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/shvshnn-coder/venue-pilot/internal/domain/model"
)

const defaultBatchSize = 50

type ReportStore interface {
	ListUndispatchedReports(ctx context.Context, limit int) ([]model.Report, error)
	MarkReportDispatched(ctx context.Context, reportID string, at time.Time) error
}

type Archive interface {
	PutJSON(ctx context.Context, key string, payload any) error
}

type Notifier interface {
	SendText(ctx context.Context, text string) error
}

// Job hands new user reports to moderators: every report is archived as a
// JSON object and announced in the moderators chat, then marked dispatched.
// A report whose archive or alert fails stays pending for the next run.
type Job struct {
	reports   ReportStore
	archive   Archive
	notifier  Notifier
	batchSize int
	now       func() time.Time
	logger    *zap.Logger
}

func New(reports ReportStore, archive Archive, notifier Notifier, batchSize int, logger *zap.Logger) *Job {
	if batchSize <= 0 {
		batchSize = defaultBatchSize
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Job{
		reports:   reports,
		archive:   archive,
		notifier:  notifier,
		batchSize: batchSize,
		now:       time.Now,
		logger:    logger,
	}
}

// Enabled reports whether at least one delivery leg is configured.
func (j *Job) Enabled() bool {
	return j != nil && j.reports != nil && (j.archive != nil || j.notifier != nil)
}

func (j *Job) Run(ctx context.Context) error {
	if !j.Enabled() {
		return nil
	}

	dispatched := 0
	for {
		batch, err := j.reports.ListUndispatchedReports(ctx, j.batchSize)
		if err != nil {
			return fmt.Errorf("list undispatched reports: %w", err)
		}
		if len(batch) == 0 {
			break
		}

		marked := 0
		for _, report := range batch {
			if err := ctx.Err(); err != nil {
				return err
			}
			if !j.deliver(ctx, report) {
				continue
			}
			if err := j.reports.MarkReportDispatched(ctx, report.ID, j.now()); err != nil {
				return fmt.Errorf("mark report %s dispatched: %w", report.ID, err)
			}
			marked++
		}
		dispatched += marked

		if len(batch) < j.batchSize || marked == 0 {
			break
		}
	}

	if dispatched > 0 {
		j.logger.Info("report dispatch completed", zap.Int("dispatched", dispatched))
	}
	return nil
}

func (j *Job) deliver(ctx context.Context, report model.Report) bool {
	if j.archive != nil {
		if err := j.archive.PutJSON(ctx, ObjectKey(report), newArchivedReport(report)); err != nil {
			j.logger.Warn("failed to archive report", zap.Error(err), zap.String("report_id", report.ID))
			return false
		}
	}
	if j.notifier != nil {
		if err := j.notifier.SendText(ctx, FormatAlert(report)); err != nil {
			j.logger.Warn("failed to notify moderators", zap.Error(err), zap.String("report_id", report.ID))
			return false
		}
	}
	return true
}

// ObjectKey is reports/YYYY/MM/DD/<id>.json, dated by the report's UTC
// creation day.
func ObjectKey(report model.Report) string {
	return fmt.Sprintf("reports/%s/%s.json", report.CreatedAt.UTC().Format("2006/01/02"), report.ID)
}

type archivedReport struct {
	model.Report
	ReasonLabel string `json:"reason_label"`
}

func newArchivedReport(report model.Report) archivedReport {
	return archivedReport{Report: report, ReasonLabel: report.Reason.Label()}
}

func FormatAlert(report model.Report) string {
	lines := []string{
		fmt.Sprintf("New report %s", report.ID),
		fmt.Sprintf("Reporter: %s", report.ReporterID),
		fmt.Sprintf("Reported user: %s", report.ReportedUserID),
		fmt.Sprintf("Reason: %s", report.Reason.Label()),
	}
	if report.AdditionalDetails != nil && strings.TrimSpace(*report.AdditionalDetails) != "" {
		lines = append(lines, fmt.Sprintf("Details: %s", strings.TrimSpace(*report.AdditionalDetails)))
	}
	lines = append(lines, fmt.Sprintf("Created at: %s", report.CreatedAt.UTC().Format(time.RFC3339)))
	return strings.Join(lines, "\n")
}
