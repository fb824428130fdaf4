package enums

import "strings"

type TargetType string

const (
	TargetTypeEvent    TargetType = "event"
	TargetTypeAttendee TargetType = "attendee"
)

func ParseTargetType(raw string) (TargetType, bool) {
	switch TargetType(strings.ToLower(strings.TrimSpace(raw))) {
	case TargetTypeEvent:
		return TargetTypeEvent, true
	case TargetTypeAttendee:
		return TargetTypeAttendee, true
	default:
		return "", false
	}
}
