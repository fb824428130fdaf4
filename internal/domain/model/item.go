package model

import (
	"time"

	"github.com/shvshnn-coder/venue-pilot/internal/domain/enums"
)

// SwipeableItem is either an Event or an Attendee. Exactly one of the two
// pointers is set, matching Type.
type SwipeableItem struct {
	Type     enums.TargetType `json:"type"`
	Event    *Event           `json:"event,omitempty"`
	Attendee *Attendee        `json:"attendee,omitempty"`
}

func EventItem(e Event) SwipeableItem {
	return SwipeableItem{Type: enums.TargetTypeEvent, Event: &e}
}

func AttendeeItem(a Attendee) SwipeableItem {
	return SwipeableItem{Type: enums.TargetTypeAttendee, Attendee: &a}
}

func (i SwipeableItem) ID() string {
	switch {
	case i.Event != nil:
		return i.Event.ID
	case i.Attendee != nil:
		return i.Attendee.ID
	default:
		return ""
	}
}

func (i SwipeableItem) Tags() []string {
	switch {
	case i.Event != nil:
		return i.Event.Tags
	case i.Attendee != nil:
		return i.Attendee.Tags
	default:
		return nil
	}
}

func (i SwipeableItem) Recommended() bool {
	switch {
	case i.Event != nil:
		return i.Event.Recommended
	case i.Attendee != nil:
		return i.Attendee.Recommended
	default:
		return false
	}
}

func (i SwipeableItem) CreatedAt() time.Time {
	switch {
	case i.Event != nil:
		return i.Event.CreatedAt
	case i.Attendee != nil:
		return i.Attendee.CreatedAt
	default:
		return time.Time{}
	}
}

func (i SwipeableItem) HasTag(tag string) bool {
	for _, t := range i.Tags() {
		if equalFoldTag(t, tag) {
			return true
		}
	}
	return false
}

func equalFoldTag(a, b string) bool {
	return normalizeTag(a) == normalizeTag(b)
}
