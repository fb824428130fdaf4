package model

import "time"

// Connection is stored once, keyed by whoever swiped first, but describes a
// symmetric relation: every lookup must check both columns.
type Connection struct {
	ID              string    `json:"id"`
	UserID          string    `json:"user_id"`
	ConnectedUserID string    `json:"connected_user_id"`
	CreatedAt       time.Time `json:"created_at"`
}

func (c Connection) Involves(userID string) bool {
	return c.UserID == userID || c.ConnectedUserID == userID
}

func (c Connection) Links(a, b string) bool {
	return (c.UserID == a && c.ConnectedUserID == b) || (c.UserID == b && c.ConnectedUserID == a)
}

// Other returns the counterpart of userID, or "" when userID is not part of
// the connection.
func (c Connection) Other(userID string) string {
	switch userID {
	case c.UserID:
		return c.ConnectedUserID
	case c.ConnectedUserID:
		return c.UserID
	default:
		return ""
	}
}
