package model

import (
	"time"

	"github.com/shvshnn-coder/venue-pilot/internal/domain/enums"
)

type Block struct {
	ID            string    `json:"id"`
	BlockerID     string    `json:"blocker_id"`
	BlockedUserID string    `json:"blocked_user_id"`
	CreatedAt     time.Time `json:"created_at"`
}

type Report struct {
	ID                string             `json:"id"`
	ReporterID        string             `json:"reporter_id"`
	ReportedUserID    string             `json:"reported_user_id"`
	Reason            enums.ReportReason `json:"reason"`
	AdditionalDetails *string            `json:"additional_details,omitempty"`
	CreatedAt         time.Time          `json:"created_at"`
	DispatchedAt      *time.Time         `json:"-"`
}
