package dto

import "time"

type BlockRequest struct {
	BlockerID     string `json:"blocker_id"`
	BlockedUserID string `json:"blocked_user_id"`
}

type BlockResponse struct {
	ID            string    `json:"id"`
	BlockerID     string    `json:"blocker_id"`
	BlockedUserID string    `json:"blocked_user_id"`
	CreatedAt     time.Time `json:"created_at"`
}

type BlocksResponse struct {
	Items []BlockResponse `json:"items"`
}

type BlockStatusResponse struct {
	IsBlocked bool `json:"is_blocked"`
}

type ReportRequest struct {
	ReporterID        string  `json:"reporter_id"`
	ReportedUserID    string  `json:"reported_user_id"`
	Reason            string  `json:"reason"`
	AdditionalDetails *string `json:"additional_details,omitempty"`
	Block             bool    `json:"block"`
}

type ReportItemResponse struct {
	ID                string    `json:"id"`
	ReporterID        string    `json:"reporter_id"`
	ReportedUserID    string    `json:"reported_user_id"`
	Reason            string    `json:"reason"`
	ReasonLabel       string    `json:"reason_label"`
	AdditionalDetails *string   `json:"additional_details,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
}

type ReportResponse struct {
	Report         ReportItemResponse `json:"report"`
	Block          *BlockResponse     `json:"block,omitempty"`
	AlreadyBlocked bool               `json:"already_blocked"`
}

type ReportsResponse struct {
	Items []ReportItemResponse `json:"items"`
}
