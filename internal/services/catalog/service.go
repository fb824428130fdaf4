package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/shvshnn-coder/venue-pilot/internal/domain/enums"
	"github.com/shvshnn-coder/venue-pilot/internal/domain/model"
	"github.com/shvshnn-coder/venue-pilot/internal/repo"
)

var (
	ErrValidation = errors.New("validation error")
	ErrConflict   = errors.New("event already exists")
)

type Store interface {
	CreateEvent(ctx context.Context, event model.Event) error
	ListEvents(ctx context.Context) ([]model.Event, error)
	ListEventsByIDs(ctx context.Context, ids []string) ([]model.Event, error)
	UpsertAttendees(ctx context.Context, attendees []model.Attendee) error
	ListAttendees(ctx context.Context) ([]model.Attendee, error)
}

type EventInput struct {
	ID          string
	Name        string
	Location    string
	StartsAt    time.Time
	Tags        []string
	Recommended bool
	OrganizerID string
}

type AttendeeInput struct {
	ID          string
	Name        string
	Role        string
	Bio         string
	Tags        []string
	Recommended bool
}

// Service owns the swipeable catalog: the event programme and the attendee
// roster. The swipe engine only reads it.
type Service struct {
	store Store
	now   func() time.Time
	newID func() string
}

func NewService(store Store) *Service {
	return &Service{
		store: store,
		now:   time.Now,
		newID: uuid.NewString,
	}
}

func (s *Service) CreateEvent(ctx context.Context, in EventInput) (model.Event, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return model.Event{}, fmt.Errorf("%w: name is required", ErrValidation)
	}
	if in.StartsAt.IsZero() {
		return model.Event{}, fmt.Errorf("%w: starts_at is required", ErrValidation)
	}

	id := strings.TrimSpace(in.ID)
	if id == "" {
		id = s.newID()
	}
	event := model.Event{
		ID:          id,
		Name:        name,
		Location:    strings.TrimSpace(in.Location),
		StartsAt:    in.StartsAt.UTC(),
		Tags:        model.NormalizeTags(in.Tags),
		Recommended: in.Recommended,
		OrganizerID: strings.TrimSpace(in.OrganizerID),
		CreatedAt:   s.now().UTC(),
	}
	if err := s.store.CreateEvent(ctx, event); err != nil {
		if errors.Is(err, repo.ErrDuplicate) {
			return model.Event{}, ErrConflict
		}
		return model.Event{}, fmt.Errorf("create event: %w", err)
	}
	return event, nil
}

func (s *Service) ListEvents(ctx context.Context) ([]model.Event, error) {
	items, err := s.store.ListEvents(ctx)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	return items, nil
}

func (s *Service) EventsByIDs(ctx context.Context, ids []string) ([]model.Event, error) {
	items, err := s.store.ListEventsByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("list events by id: %w", err)
	}
	return items, nil
}

// ImportAttendees upserts a roster. Every entry needs an id and a name; the
// whole import is rejected otherwise.
func (s *Service) ImportAttendees(ctx context.Context, in []AttendeeInput) ([]model.Attendee, error) {
	if len(in) == 0 {
		return nil, fmt.Errorf("%w: roster is empty", ErrValidation)
	}

	now := s.now().UTC()
	seen := make(map[string]struct{}, len(in))
	out := make([]model.Attendee, 0, len(in))
	for i, a := range in {
		id := strings.TrimSpace(a.ID)
		name := strings.TrimSpace(a.Name)
		if id == "" || name == "" {
			return nil, fmt.Errorf("%w: attendee %d needs id and name", ErrValidation, i)
		}
		if _, dup := seen[id]; dup {
			return nil, fmt.Errorf("%w: attendee %s listed twice", ErrValidation, id)
		}
		seen[id] = struct{}{}
		out = append(out, model.Attendee{
			ID:          id,
			Name:        name,
			Role:        strings.TrimSpace(a.Role),
			Bio:         strings.TrimSpace(a.Bio),
			Tags:        model.NormalizeTags(a.Tags),
			Recommended: a.Recommended,
			CreatedAt:   now,
		})
	}

	if err := s.store.UpsertAttendees(ctx, out); err != nil {
		return nil, fmt.Errorf("import attendees: %w", err)
	}
	return out, nil
}

func (s *Service) ListAttendees(ctx context.Context) ([]model.Attendee, error) {
	items, err := s.store.ListAttendees(ctx)
	if err != nil {
		return nil, fmt.Errorf("list attendees: %w", err)
	}
	return items, nil
}

// Items returns the catalog of one target type as swipeable items.
func (s *Service) Items(ctx context.Context, targetType enums.TargetType) ([]model.SwipeableItem, error) {
	switch targetType {
	case enums.TargetTypeEvent:
		events, err := s.ListEvents(ctx)
		if err != nil {
			return nil, err
		}
		out := make([]model.SwipeableItem, 0, len(events))
		for _, e := range events {
			out = append(out, model.EventItem(e))
		}
		return out, nil
	case enums.TargetTypeAttendee:
		attendees, err := s.ListAttendees(ctx)
		if err != nil {
			return nil, err
		}
		out := make([]model.SwipeableItem, 0, len(attendees))
		for _, a := range attendees {
			out = append(out, model.AttendeeItem(a))
		}
		return out, nil
	default:
		return nil, fmt.Errorf("%w: unknown target type %q", ErrValidation, targetType)
	}
}
