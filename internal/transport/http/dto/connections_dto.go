package dto

import "time"

type ConnectionResponse struct {
	ID              string    `json:"id"`
	UserID          string    `json:"user_id"`
	ConnectedUserID string    `json:"connected_user_id"`
	OtherUserID     string    `json:"other_user_id,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

type ConnectionsResponse struct {
	Items []ConnectionResponse `json:"items"`
}

type RemoveConnectionRequest struct {
	UserID  string `json:"user_id"`
	OtherID string `json:"other_id"`
}
