package dto

type DiscoverItemResponse struct {
	Type     string            `json:"type"`
	ID       string            `json:"id"`
	Event    *EventResponse    `json:"event,omitempty"`
	Attendee *AttendeeResponse `json:"attendee,omitempty"`
}

type DiscoverResponse struct {
	Items      []DiscoverItemResponse `json:"items"`
	NextCursor *string                `json:"next_cursor"`
	Exhausted  bool                   `json:"exhausted"`
}
