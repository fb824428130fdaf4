package model

import "time"

type Event struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Location    string    `json:"location"`
	StartsAt    time.Time `json:"starts_at"`
	Tags        []string  `json:"tags"`
	Recommended bool      `json:"recommended"`
	OrganizerID string    `json:"organizer_id,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// Attendee is the discoverable profile of a user; its ID is the user ID.
type Attendee struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Role        string    `json:"role"`
	Bio         string    `json:"bio"`
	Tags        []string  `json:"tags"`
	Recommended bool      `json:"recommended"`
	CreatedAt   time.Time `json:"created_at"`
}
