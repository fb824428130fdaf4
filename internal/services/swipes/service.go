package swipes

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

type ConnectionMode string

const (
	// ConnectionModeBestEffort keeps the decision when forming the
	// connection fails and reports the failure alongside it.
	ConnectionModeBestEffort ConnectionMode = "best_effort"
	// ConnectionModeAtomic writes decision and connection in one
	// transaction.
	ConnectionModeAtomic ConnectionMode = "atomic"
)

type DecisionStore interface {
	CreateDecision(ctx context.Context, decision model.Decision) error
	ListDecisionsByUser(ctx context.Context, userID string) ([]model.Decision, error)
	CountDecisionsByUser(ctx context.Context, userID string) (int, error)
}

type ConnectionFormer interface {
	Form(ctx context.Context, userID, targetUserID string) (model.Connection, bool, error)
}

type Transactor interface {
	WithinTx(ctx context.Context, fn func(context.Context) error) error
}

type RateLimiter interface {
	AllowDecision(ctx context.Context, userID string) (int64, bool, error)
	RetryAfterDecision(ctx context.Context, userID string) (int64, error)
}

type Config struct {
	ConnectionMode ConnectionMode
}

type Dependencies struct {
	Decisions   DecisionStore
	Connections ConnectionFormer
	Tx          Transactor
	RateLimiter RateLimiter
	Logger      *zap.Logger
}

type RecordResult struct {
	Decision          model.Decision
	Connection        *model.Connection
	ConnectionCreated bool
	// ConnectionErr is set in best-effort mode when the decision was stored
	// but the connection could not be formed. It wraps
	// ErrDownstreamUnavailable.
	ConnectionErr error
}

// Summary is a user's swipe activity. CooldownSec is how long the client
// must pause before the next swipe is accepted, zero when it can swipe now.
type Summary struct {
	Swiped      int   `json:"swiped"`
	CooldownSec int64 `json:"cooldown_sec"`
}

type Service struct {
	decisions   DecisionStore
	connections ConnectionFormer
	tx          Transactor
	rateLimiter RateLimiter
	logger      *zap.Logger
	cfg         Config
	now         func() time.Time
	newID       func() string
}

func NewService(deps Dependencies, cfg Config) *Service {
	if cfg.ConnectionMode != ConnectionModeAtomic {
		cfg.ConnectionMode = ConnectionModeBestEffort
	}
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Service{
		decisions:   deps.Decisions,
		connections: deps.Connections,
		tx:          deps.Tx,
		rateLimiter: deps.RateLimiter,
		logger:      logger,
		cfg:         cfg,
		now:         time.Now,
		newID:       uuid.NewString,
	}
}

// Record stores one decision. Only the first decision per user, target and
// target type is accepted; later attempts fail with ErrConflict whatever
// their direction. A right swipe on an attendee also forms a connection.
func (s *Service) Record(ctx context.Context, userID, targetID string, targetType enums.TargetType, direction enums.Direction) (RecordResult, error) {
	userID = strings.TrimSpace(userID)
	targetID = strings.TrimSpace(targetID)
	if userID == "" || targetID == "" {
		return RecordResult{}, fmt.Errorf("%w: user_id and target_id are required", ErrValidation)
	}
	parsedType, ok := enums.ParseTargetType(string(targetType))
	if !ok {
		return RecordResult{}, fmt.Errorf("%w: unknown target type %q", ErrValidation, targetType)
	}
	parsedDirection, ok := enums.ParseDirection(string(direction))
	if !ok {
		return RecordResult{}, fmt.Errorf("%w: unknown direction %q", ErrValidation, direction)
	}
	targetType, direction = parsedType, parsedDirection
	if targetType == enums.TargetTypeAttendee && targetID == userID {
		return RecordResult{}, fmt.Errorf("%w: cannot swipe on yourself", ErrValidation)
	}
	if s.decisions == nil {
		return RecordResult{}, fmt.Errorf("decision store is not configured")
	}

	// Only stored decisions are counted, so a replay answered with
	// ErrConflict leaves the budget untouched.
	if s.rateLimiter != nil {
		retryAfter, err := s.rateLimiter.RetryAfterDecision(ctx, userID)
		if err != nil {
			return RecordResult{}, fmt.Errorf("apply decision rate limiter: %w", err)
		}
		if retryAfter > 0 {
			return RecordResult{}, TooFastError{RetryAfterSec: retryAfter}
		}
	}

	decision := model.Decision{
		ID:         s.newID(),
		UserID:     userID,
		TargetID:   targetID,
		TargetType: targetType,
		Direction:  direction,
		CreatedAt:  s.now().UTC(),
	}
	forms := decision.IsRight() && targetType == enums.TargetTypeAttendee && s.connections != nil

	if forms && s.cfg.ConnectionMode == ConnectionModeAtomic && s.tx != nil {
		result, err := s.recordAtomic(ctx, decision)
		if err == nil {
			s.countDecision(ctx, userID)
		}
		return result, err
	}

	if err := s.createDecision(ctx, decision); err != nil {
		return RecordResult{}, err
	}
	s.countDecision(ctx, userID)
	result := RecordResult{Decision: decision}
	if !forms {
		return result, nil
	}

	conn, created, err := s.connections.Form(ctx, userID, targetID)
	if err != nil {
		s.logger.Warn("connection formation failed after decision was stored",
			zap.String("decision_id", decision.ID),
			zap.String("user_id", userID),
			zap.String("target_id", targetID),
			zap.Error(err),
		)
		result.ConnectionErr = fmt.Errorf("%w: form connection: %v", ErrDownstreamUnavailable, err)
		return result, nil
	}
	result.Connection = &conn
	result.ConnectionCreated = created
	return result, nil
}

func (s *Service) recordAtomic(ctx context.Context, decision model.Decision) (RecordResult, error) {
	result := RecordResult{Decision: decision}
	err := s.tx.WithinTx(ctx, func(txCtx context.Context) error {
		if err := s.createDecision(txCtx, decision); err != nil {
			return err
		}
		conn, created, err := s.connections.Form(txCtx, decision.UserID, decision.TargetID)
		if err != nil {
			return fmt.Errorf("%w: form connection: %v", ErrDownstreamUnavailable, err)
		}
		result.Connection = &conn
		result.ConnectionCreated = created
		return nil
	})
	if err != nil {
		return RecordResult{}, err
	}
	return result, nil
}

func (s *Service) countDecision(ctx context.Context, userID string) {
	if s.rateLimiter == nil {
		return
	}
	if _, _, err := s.rateLimiter.AllowDecision(ctx, userID); err != nil {
		s.logger.Warn("count decision in rate window failed", zap.String("user_id", userID), zap.Error(err))
	}
}

func (s *Service) createDecision(ctx context.Context, decision model.Decision) error {
	if err := s.decisions.CreateDecision(ctx, decision); err != nil {
		if errors.Is(err, repo.ErrDuplicate) {
			return ErrConflict
		}
		return fmt.Errorf("store decision: %w", err)
	}
	return nil
}

// DecisionsOf returns the user's decision log, oldest first.
func (s *Service) DecisionsOf(ctx context.Context, userID string) ([]model.Decision, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, ErrValidation
	}
	items, err := s.decisions.ListDecisionsByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list decisions: %w", err)
	}
	return items, nil
}

func (s *Service) Summary(ctx context.Context, userID string) (Summary, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return Summary{}, ErrValidation
	}
	count, err := s.decisions.CountDecisionsByUser(ctx, userID)
	if err != nil {
		return Summary{}, fmt.Errorf("count decisions: %w", err)
	}

	summary := Summary{Swiped: count}
	if s.rateLimiter != nil {
		cooldown, err := s.rateLimiter.RetryAfterDecision(ctx, userID)
		if err != nil {
			s.logger.Warn("read swipe cooldown failed", zap.String("user_id", userID), zap.Error(err))
		} else {
			summary.CooldownSec = cooldown
		}
	}
	return summary, nil
}
