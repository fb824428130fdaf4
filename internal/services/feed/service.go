package feed

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/shvshnn-coder/venue-pilot/internal/domain/enums"
	"github.com/shvshnn-coder/venue-pilot/internal/domain/model"
	"github.com/shvshnn-coder/venue-pilot/internal/domain/rules"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

var (
	ErrValidation    = errors.New("validation error")
	ErrInvalidCursor = errors.New("invalid cursor")
)

type Catalog interface {
	Items(ctx context.Context, targetType enums.TargetType) ([]model.SwipeableItem, error)
}

type DecisionLog interface {
	ListDecisionsByUser(ctx context.Context, userID string) ([]model.Decision, error)
}

type ModerationGate interface {
	VisibleCandidates(ctx context.Context, viewerID string, items []model.SwipeableItem) ([]model.SwipeableItem, error)
}

type Config struct {
	DefaultPageSize int
	MaxPageSize     int
}

type Dependencies struct {
	Catalog    Catalog
	Decisions  DecisionLog
	Moderation ModerationGate
}

type Query struct {
	ViewerID        string
	Type            enums.TargetType
	Tag             string
	RecommendedOnly bool
	Limit           int
	Cursor          string
}

// Result is one page of the card queue. Exhausted is set when the viewer has
// nothing left to swipe in this queue, which clients must render differently
// from a page that is still loading.
type Result struct {
	Items      []model.SwipeableItem
	NextCursor string
	Exhausted  bool
}

type pageCursor struct {
	Priority  int    `json:"p"`
	CreatedAt int64  `json:"t"`
	ID        string `json:"i"`
}

type Service struct {
	catalog    Catalog
	decisions  DecisionLog
	moderation ModerationGate
	cfg        Config
}

func NewService(deps Dependencies, cfg Config) *Service {
	if cfg.DefaultPageSize <= 0 {
		cfg.DefaultPageSize = defaultPageSize
	}
	if cfg.MaxPageSize <= 0 {
		cfg.MaxPageSize = maxPageSize
	}
	if cfg.DefaultPageSize > cfg.MaxPageSize {
		cfg.DefaultPageSize = cfg.MaxPageSize
	}

	return &Service{
		catalog:    deps.Catalog,
		decisions:  deps.Decisions,
		moderation: deps.Moderation,
		cfg:        cfg,
	}
}

// Discover builds the viewer's card queue: catalog items of the requested
// type minus everything already decided, the viewer themself, and attendees
// hidden by a block. Recommended items come first, then creation order.
func (s *Service) Discover(ctx context.Context, q Query) (Result, error) {
	viewerID := strings.TrimSpace(q.ViewerID)
	if viewerID == "" {
		return Result{}, fmt.Errorf("%w: user_id is required", ErrValidation)
	}
	if _, ok := enums.ParseTargetType(string(q.Type)); !ok {
		return Result{}, fmt.Errorf("%w: unknown target type %q", ErrValidation, q.Type)
	}
	if s.catalog == nil || s.decisions == nil {
		return Result{}, fmt.Errorf("feed dependencies are not configured")
	}

	limit := q.Limit
	if limit <= 0 {
		limit = s.cfg.DefaultPageSize
	}
	if limit > s.cfg.MaxPageSize {
		limit = s.cfg.MaxPageSize
	}

	after, hasCursor, err := decodeCursor(q.Cursor)
	if err != nil {
		return Result{}, err
	}

	items, err := s.catalog.Items(ctx, q.Type)
	if err != nil {
		return Result{}, err
	}
	decisions, err := s.decisions.ListDecisionsByUser(ctx, viewerID)
	if err != nil {
		return Result{}, fmt.Errorf("list decisions: %w", err)
	}
	decided := rules.DecidedTargets(decisions, q.Type)

	candidates := make([]model.SwipeableItem, 0, len(items))
	for _, item := range items {
		if _, ok := decided[item.ID()]; ok {
			continue
		}
		if item.Type == enums.TargetTypeAttendee && item.ID() == viewerID {
			continue
		}
		if q.RecommendedOnly && !item.Recommended() {
			continue
		}
		if tag := strings.TrimSpace(q.Tag); tag != "" && !item.HasTag(tag) {
			continue
		}
		candidates = append(candidates, item)
	}

	if s.moderation != nil {
		candidates, err = s.moderation.VisibleCandidates(ctx, viewerID, candidates)
		if err != nil {
			return Result{}, err
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return less(keyOf(candidates[i]), keyOf(candidates[j]))
	})

	start := 0
	if hasCursor {
		start = sort.Search(len(candidates), func(i int) bool {
			return less(after, keyOf(candidates[i]))
		})
	}

	end := start + limit
	if end > len(candidates) {
		end = len(candidates)
	}
	page := append([]model.SwipeableItem{}, candidates[start:end]...)

	result := Result{Items: page}
	if end < len(candidates) {
		next, err := encodeCursor(keyOf(page[len(page)-1]))
		if err != nil {
			return Result{}, err
		}
		result.NextCursor = next
	}
	result.Exhausted = len(page) == 0
	return result, nil
}

func keyOf(item model.SwipeableItem) pageCursor {
	priority := 1
	if item.Recommended() {
		priority = 0
	}
	return pageCursor{
		Priority:  priority,
		CreatedAt: item.CreatedAt().UTC().UnixNano(),
		ID:        item.ID(),
	}
}

func less(a, b pageCursor) bool {
	if a.Priority != b.Priority {
		return a.Priority < b.Priority
	}
	if a.CreatedAt != b.CreatedAt {
		return a.CreatedAt < b.CreatedAt
	}
	return a.ID < b.ID
}

func decodeCursor(raw string) (pageCursor, bool, error) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return pageCursor{}, false, nil
	}

	data, err := base64.RawURLEncoding.DecodeString(value)
	if err != nil {
		return pageCursor{}, false, ErrInvalidCursor
	}

	var cursor pageCursor
	if err := json.Unmarshal(data, &cursor); err != nil {
		return pageCursor{}, false, ErrInvalidCursor
	}
	if cursor.ID == "" || cursor.Priority < 0 || cursor.Priority > 1 {
		return pageCursor{}, false, ErrInvalidCursor
	}

	return cursor, true, nil
}

func encodeCursor(cursor pageCursor) (string, error) {
	payload, err := json.Marshal(cursor)
	if err != nil {
		return "", fmt.Errorf("marshal feed cursor: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(payload), nil
}
