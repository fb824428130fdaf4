package calendar

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/shvshnn-coder/venue-pilot/internal/domain/model"
	"github.com/shvshnn-coder/venue-pilot/internal/domain/rules"
)

var ErrValidation = errors.New("validation error")

type DecisionLog interface {
	ListDecisionsByUser(ctx context.Context, userID string) ([]model.Decision, error)
}

type EventSource interface {
	EventsByIDs(ctx context.Context, ids []string) ([]model.Event, error)
}

type Config struct {
	Location *time.Location
}

// Overview is a user's whole calendar: the days with at least one
// interested event and the events themselves in start order.
type Overview struct {
	Dates  []string      `json:"dates"`
	Events []model.Event `json:"events"`
}

// Service derives calendar views from the decision log on every call.
// Nothing is cached, so repeated calls over an unchanged log agree.
type Service struct {
	decisions DecisionLog
	events    EventSource
	loc       *time.Location
}

func NewService(decisions DecisionLog, events EventSource, cfg Config) *Service {
	loc := cfg.Location
	if loc == nil {
		loc = time.UTC
	}
	return &Service{decisions: decisions, events: events, loc: loc}
}

// InterestedEvents returns the events userID swiped right on, ordered by
// start time. Events no longer in the catalog are skipped.
func (s *Service) InterestedEvents(ctx context.Context, userID string) ([]model.Event, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, fmt.Errorf("%w: user_id is required", ErrValidation)
	}

	log, err := s.decisions.ListDecisionsByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list decisions: %w", err)
	}
	ids := rules.InterestedEventIDs(log)
	if len(ids) == 0 {
		return []model.Event{}, nil
	}

	events, err := s.events.EventsByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("load interested events: %w", err)
	}
	sort.SliceStable(events, func(i, j int) bool {
		if !events[i].StartsAt.Equal(events[j].StartsAt) {
			return events[i].StartsAt.Before(events[j].StartsAt)
		}
		return events[i].ID < events[j].ID
	})
	return events, nil
}

// Dates is the sorted set of civil dates, in the configured timezone, that
// hold at least one interested event.
func (s *Service) Dates(ctx context.Context, userID string) ([]string, error) {
	overview, err := s.Overview(ctx, userID)
	if err != nil {
		return nil, err
	}
	return overview.Dates, nil
}

func (s *Service) Overview(ctx context.Context, userID string) (Overview, error) {
	events, err := s.InterestedEvents(ctx, userID)
	if err != nil {
		return Overview{}, err
	}

	starts := make([]time.Time, 0, len(events))
	for _, e := range events {
		starts = append(starts, e.StartsAt)
	}
	return Overview{
		Dates:  rules.DistinctDayKeys(starts, s.loc),
		Events: events,
	}, nil
}

// EventsOn returns the interested events that start on date (YYYY-MM-DD).
func (s *Service) EventsOn(ctx context.Context, userID, date string) (string, []model.Event, error) {
	day, err := rules.ParseDayKey(strings.TrimSpace(date))
	if err != nil {
		return "", nil, fmt.Errorf("%w: date must be YYYY-MM-DD", ErrValidation)
	}

	events, err := s.InterestedEvents(ctx, userID)
	if err != nil {
		return "", nil, err
	}

	out := make([]model.Event, 0, len(events))
	for _, e := range events {
		if rules.DayKey(e.StartsAt, s.loc) == day {
			out = append(out, e)
		}
	}
	return day, out, nil
}
