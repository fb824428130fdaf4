package model

import (
	"time"

	"github.com/shvshnn-coder/venue-pilot/internal/domain/enums"
)

// Decision is one user's left/right choice on one target. Decisions are
// append-only: they are never updated or deleted.
type Decision struct {
	ID         string           `json:"id"`
	UserID     string           `json:"user_id"`
	TargetID   string           `json:"target_id"`
	TargetType enums.TargetType `json:"target_type"`
	Direction  enums.Direction  `json:"direction"`
	CreatedAt  time.Time        `json:"created_at"`
}

// DecisionKey identifies the (user, target, target type) tuple a decision
// is unique on.
type DecisionKey struct {
	UserID     string
	TargetID   string
	TargetType enums.TargetType
}

func (d Decision) Key() DecisionKey {
	return DecisionKey{UserID: d.UserID, TargetID: d.TargetID, TargetType: d.TargetType}
}

func (d Decision) IsRight() bool {
	return d.Direction == enums.DirectionRight
}
