package dto

import "time"

type CreateDecisionRequest struct {
	UserID     string `json:"user_id"`
	TargetID   string `json:"target_id"`
	TargetType string `json:"target_type"`
	Direction  string `json:"direction"`
}

type DecisionResponse struct {
	ID         string    `json:"id"`
	UserID     string    `json:"user_id"`
	TargetID   string    `json:"target_id"`
	TargetType string    `json:"target_type"`
	Direction  string    `json:"direction"`
	CreatedAt  time.Time `json:"created_at"`
}

// ConnectionStatus values: "none", "created", "existing", "failed".
type CreateDecisionResponse struct {
	Decision         DecisionResponse    `json:"decision"`
	Connection       *ConnectionResponse `json:"connection,omitempty"`
	ConnectionStatus string              `json:"connection_status"`
}

type DecisionsResponse struct {
	Items []DecisionResponse `json:"items"`
}
