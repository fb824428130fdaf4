package dto

import "time"

type CreateEventRequest struct {
	ID          string    `json:"id,omitempty"`
	Name        string    `json:"name"`
	Location    string    `json:"location"`
	StartsAt    time.Time `json:"starts_at"`
	Tags        []string  `json:"tags"`
	Recommended bool      `json:"recommended"`
	OrganizerID string    `json:"organizer_id,omitempty"`
}

type EventResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Location    string    `json:"location"`
	StartsAt    time.Time `json:"starts_at"`
	Tags        []string  `json:"tags"`
	Recommended bool      `json:"recommended"`
	OrganizerID string    `json:"organizer_id,omitempty"`
}

type EventsResponse struct {
	Items []EventResponse `json:"items"`
}

type AttendeeRequest struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Role        string   `json:"role"`
	Bio         string   `json:"bio"`
	Tags        []string `json:"tags"`
	Recommended bool     `json:"recommended"`
}

type ImportAttendeesRequest struct {
	Attendees []AttendeeRequest `json:"attendees"`
}

type AttendeeResponse struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Role        string   `json:"role"`
	Bio         string   `json:"bio"`
	Tags        []string `json:"tags"`
	Recommended bool     `json:"recommended"`
}

type AttendeesResponse struct {
	Items []AttendeeResponse `json:"items"`
}
