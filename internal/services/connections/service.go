package connections

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/shvshnn-coder/venue-pilot/internal/domain/model"
	"github.com/shvshnn-coder/venue-pilot/internal/repo"
)

var (
	ErrValidation = errors.New("validation error")
	ErrNotFound   = errors.New("connection not found")
)

type Store interface {
	CreateConnection(ctx context.Context, conn model.Connection) error
	FindConnectionBetween(ctx context.Context, userID, otherID string) (model.Connection, error)
	ListConnectionsByUser(ctx context.Context, userID string) ([]model.Connection, error)
	CountConnectionsByUser(ctx context.Context, userID string) (int, error)
	DeleteConnectionBetween(ctx context.Context, userID, otherID string) error
}

// ConnectionView is a connection as seen by one of its two sides.
type ConnectionView struct {
	Connection  model.Connection `json:"connection"`
	OtherUserID string           `json:"other_user_id"`
}

type Service struct {
	store  Store
	logger *zap.Logger
	now    func() time.Time
	newID  func() string
}

func NewService(store Store, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		store:  store,
		logger: logger,
		now:    time.Now,
		newID:  uuid.NewString,
	}
}

// Form records that userID wants to connect with targetUserID. A pair is
// stored once: if either side already connected, the existing record is
// returned and created is false.
func (s *Service) Form(ctx context.Context, userID, targetUserID string) (model.Connection, bool, error) {
	userID = strings.TrimSpace(userID)
	targetUserID = strings.TrimSpace(targetUserID)
	if userID == "" || targetUserID == "" || userID == targetUserID {
		return model.Connection{}, false, ErrValidation
	}
	if s.store == nil {
		return model.Connection{}, false, fmt.Errorf("connection store is not configured")
	}

	existing, err := s.store.FindConnectionBetween(ctx, userID, targetUserID)
	switch {
	case err == nil:
		return existing, false, nil
	case !errors.Is(err, repo.ErrNotFound):
		return model.Connection{}, false, fmt.Errorf("lookup connection: %w", err)
	}

	conn := model.Connection{
		ID:              s.newID(),
		UserID:          userID,
		ConnectedUserID: targetUserID,
		CreatedAt:       s.now().UTC(),
	}
	if err := s.store.CreateConnection(ctx, conn); err != nil {
		if errors.Is(err, repo.ErrDuplicate) {
			// the other side won a concurrent insert
			existing, findErr := s.store.FindConnectionBetween(ctx, userID, targetUserID)
			if findErr != nil {
				return model.Connection{}, false, fmt.Errorf("lookup raced connection: %w", findErr)
			}
			return existing, false, nil
		}
		return model.Connection{}, false, fmt.Errorf("create connection: %w", err)
	}

	s.logger.Debug("connection formed",
		zap.String("connection_id", conn.ID),
		zap.String("user_id", userID),
		zap.String("connected_user_id", targetUserID),
	)
	return conn, true, nil
}

// ConnectionsOf lists every connection the user is on either side of.
func (s *Service) ConnectionsOf(ctx context.Context, userID string) ([]ConnectionView, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, ErrValidation
	}

	items, err := s.store.ListConnectionsByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list connections: %w", err)
	}

	out := make([]ConnectionView, 0, len(items))
	for _, c := range items {
		out = append(out, ConnectionView{Connection: c, OtherUserID: c.Other(userID)})
	}
	return out, nil
}

// Remove deletes the connection between the two users whichever of them
// created it. The right-swipe decision that formed it is left in place.
func (s *Service) Remove(ctx context.Context, userID, otherID string) error {
	userID = strings.TrimSpace(userID)
	otherID = strings.TrimSpace(otherID)
	if userID == "" || otherID == "" {
		return ErrValidation
	}

	if err := s.store.DeleteConnectionBetween(ctx, userID, otherID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("remove connection: %w", err)
	}
	return nil
}

func (s *Service) Count(ctx context.Context, userID string) (int, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return 0, ErrValidation
	}
	count, err := s.store.CountConnectionsByUser(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("count connections: %w", err)
	}
	return count, nil
}
