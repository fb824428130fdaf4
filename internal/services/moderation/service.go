package moderation

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/shvshnn-coder/venue-pilot/internal/domain/enums"
	"github.com/shvshnn-coder/venue-pilot/internal/domain/model"
	"github.com/shvshnn-coder/venue-pilot/internal/repo"
)

const maxDetailsLength = 2000

var (
	ErrValidation          = errors.New("validation error")
	ErrConflict            = errors.New("already blocked")
	ErrNotFound            = errors.New("block not found")
	ErrInvalidReportReason = errors.New("invalid report reason")
)

type TooFastError struct {
	RetryAfterSec int64
}

func (e TooFastError) Error() string {
	return "too many reports"
}

func IsTooFast(err error) (*TooFastError, bool) {
	var tf TooFastError
	if errors.As(err, &tf) {
		return &tf, true
	}
	return nil, false
}

type BlockStore interface {
	CreateBlock(ctx context.Context, block model.Block) error
	DeleteBlock(ctx context.Context, blockerID, blockedUserID string) error
	BlockExists(ctx context.Context, blockerID, blockedUserID string) (bool, error)
	ListBlocksByBlocker(ctx context.Context, blockerID string) ([]model.Block, error)
	ListBlocksInvolving(ctx context.Context, userID string) ([]model.Block, error)
}

type ReportStore interface {
	CreateReport(ctx context.Context, report model.Report) error
	ListReportsByReporter(ctx context.Context, reporterID string) ([]model.Report, error)
}

type RateLimiter interface {
	AllowReport(ctx context.Context, userID string) (int64, bool, error)
}

type Dependencies struct {
	Blocks      BlockStore
	Reports     ReportStore
	RateLimiter RateLimiter
	Logger      *zap.Logger
}

type ReportInput struct {
	ReporterID        string
	ReportedUserID    string
	Reason            string
	AdditionalDetails string
	AlsoBlock         bool
}

type ReportResult struct {
	Report model.Report
	Block  *model.Block
	// AlreadyBlocked is set when AlsoBlock was requested and the reporter
	// had blocked the user before.
	AlreadyBlocked bool
}

type Service struct {
	blocks      BlockStore
	reports     ReportStore
	rateLimiter RateLimiter
	logger      *zap.Logger
	now         func() time.Time
	newID       func() string
}

func NewService(deps Dependencies) *Service {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		blocks:      deps.Blocks,
		reports:     deps.Reports,
		rateLimiter: deps.RateLimiter,
		logger:      logger,
		now:         time.Now,
		newID:       uuid.NewString,
	}
}

func (s *Service) Block(ctx context.Context, blockerID, blockedUserID string) (model.Block, error) {
	blockerID, blockedUserID, err := normalizePair(blockerID, blockedUserID)
	if err != nil {
		return model.Block{}, err
	}

	block := model.Block{
		ID:            s.newID(),
		BlockerID:     blockerID,
		BlockedUserID: blockedUserID,
		CreatedAt:     s.now().UTC(),
	}
	if err := s.blocks.CreateBlock(ctx, block); err != nil {
		if errors.Is(err, repo.ErrDuplicate) {
			return model.Block{}, ErrConflict
		}
		return model.Block{}, fmt.Errorf("create block: %w", err)
	}

	s.logger.Info("user blocked",
		zap.String("blocker_id", blockerID),
		zap.String("blocked_user_id", blockedUserID),
	)
	return block, nil
}

func (s *Service) Unblock(ctx context.Context, blockerID, blockedUserID string) error {
	blockerID, blockedUserID, err := normalizePair(blockerID, blockedUserID)
	if err != nil {
		return err
	}
	if err := s.blocks.DeleteBlock(ctx, blockerID, blockedUserID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("delete block: %w", err)
	}
	return nil
}

// IsBlocked is directional: it only looks at blocks placed by blockerID.
func (s *Service) IsBlocked(ctx context.Context, blockerID, blockedUserID string) (bool, error) {
	blockerID, blockedUserID, err := normalizePair(blockerID, blockedUserID)
	if err != nil {
		return false, err
	}
	exists, err := s.blocks.BlockExists(ctx, blockerID, blockedUserID)
	if err != nil {
		return false, fmt.Errorf("check block: %w", err)
	}
	return exists, nil
}

func (s *Service) BlocksBy(ctx context.Context, blockerID string) ([]model.Block, error) {
	blockerID = strings.TrimSpace(blockerID)
	if blockerID == "" {
		return nil, ErrValidation
	}
	items, err := s.blocks.ListBlocksByBlocker(ctx, blockerID)
	if err != nil {
		return nil, fmt.Errorf("list blocks: %w", err)
	}
	return items, nil
}

// Report files a report and, when requested, blocks the reported user too.
// The report is stored even if the block fails.
func (s *Service) Report(ctx context.Context, in ReportInput) (ReportResult, error) {
	reporterID, reportedUserID, err := normalizePair(in.ReporterID, in.ReportedUserID)
	if err != nil {
		return ReportResult{}, err
	}
	reason, ok := enums.ParseReportReason(in.Reason)
	if !ok {
		return ReportResult{}, ErrInvalidReportReason
	}
	details := strings.TrimSpace(in.AdditionalDetails)
	if len(details) > maxDetailsLength {
		return ReportResult{}, fmt.Errorf("%w: additional_details is too long", ErrValidation)
	}

	if s.rateLimiter != nil {
		retryAfter, allowed, err := s.rateLimiter.AllowReport(ctx, reporterID)
		if err != nil {
			return ReportResult{}, fmt.Errorf("apply report rate limiter: %w", err)
		}
		if !allowed {
			return ReportResult{}, TooFastError{RetryAfterSec: retryAfter}
		}
	}

	report := model.Report{
		ID:             s.newID(),
		ReporterID:     reporterID,
		ReportedUserID: reportedUserID,
		Reason:         reason,
		CreatedAt:      s.now().UTC(),
	}
	if details != "" {
		report.AdditionalDetails = &details
	}
	if err := s.reports.CreateReport(ctx, report); err != nil {
		return ReportResult{}, fmt.Errorf("create report: %w", err)
	}

	s.logger.Info("user reported",
		zap.String("report_id", report.ID),
		zap.String("reporter_id", reporterID),
		zap.String("reported_user_id", reportedUserID),
		zap.String("reason", string(reason)),
	)

	result := ReportResult{Report: report}
	if !in.AlsoBlock {
		return result, nil
	}

	block, err := s.Block(ctx, reporterID, reportedUserID)
	switch {
	case errors.Is(err, ErrConflict):
		result.AlreadyBlocked = true
	case err != nil:
		return result, fmt.Errorf("block after report: %w", err)
	default:
		result.Block = &block
	}
	return result, nil
}

func (s *Service) ReportsBy(ctx context.Context, reporterID string) ([]model.Report, error) {
	reporterID = strings.TrimSpace(reporterID)
	if reporterID == "" {
		return nil, ErrValidation
	}
	items, err := s.reports.ListReportsByReporter(ctx, reporterID)
	if err != nil {
		return nil, fmt.Errorf("list reports: %w", err)
	}
	return items, nil
}

// HiddenUsers is everyone viewerID must not see: users they blocked and
// users who blocked them.
func (s *Service) HiddenUsers(ctx context.Context, viewerID string) (map[string]struct{}, error) {
	viewerID = strings.TrimSpace(viewerID)
	if viewerID == "" {
		return nil, ErrValidation
	}
	blocks, err := s.blocks.ListBlocksInvolving(ctx, viewerID)
	if err != nil {
		return nil, fmt.Errorf("list blocks: %w", err)
	}

	hidden := make(map[string]struct{}, len(blocks))
	for _, b := range blocks {
		if b.BlockerID == viewerID {
			hidden[b.BlockedUserID] = struct{}{}
		} else {
			hidden[b.BlockerID] = struct{}{}
		}
	}
	return hidden, nil
}

// VisibleCandidates drops attendees hidden by a block in either direction.
// Events are never subject to blocking.
func (s *Service) VisibleCandidates(ctx context.Context, viewerID string, items []model.SwipeableItem) ([]model.SwipeableItem, error) {
	hidden, err := s.HiddenUsers(ctx, viewerID)
	if err != nil {
		return nil, err
	}

	out := make([]model.SwipeableItem, 0, len(items))
	for _, item := range items {
		if item.Type == enums.TargetTypeAttendee {
			if _, ok := hidden[item.ID()]; ok {
				continue
			}
		}
		out = append(out, item)
	}
	return out, nil
}

func normalizePair(actorID, targetID string) (string, string, error) {
	actorID = strings.TrimSpace(actorID)
	targetID = strings.TrimSpace(targetID)
	if actorID == "" || targetID == "" {
		return "", "", fmt.Errorf("%w: both user ids are required", ErrValidation)
	}
	if actorID == targetID {
		return "", "", fmt.Errorf("%w: cannot target yourself", ErrValidation)
	}
	return actorID, targetID, nil
}
