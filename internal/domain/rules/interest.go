package rules

import (
	"github.com/shvshnn-coder/venue-pilot/internal/domain/enums"
	"github.com/shvshnn-coder/venue-pilot/internal/domain/model"
)

// InterestedEventIDs derives a user's interested events from their decision
// log: every event they swiped right on, in decision order. It is a pure
// function of the log and never caches.
func InterestedEventIDs(decisions []model.Decision) []string {
	out := make([]string, 0)
	seen := make(map[string]struct{})
	for _, d := range sortedByCreation(decisions) {
		if d.TargetType != enums.TargetTypeEvent || !d.IsRight() {
			continue
		}
		if _, ok := seen[d.TargetID]; ok {
			continue
		}
		seen[d.TargetID] = struct{}{}
		out = append(out, d.TargetID)
	}
	return out
}

// DecidedTargets is the set of target IDs of the given type the user has
// already decided on, in either direction.
func DecidedTargets(decisions []model.Decision, targetType enums.TargetType) map[string]struct{} {
	out := make(map[string]struct{}, len(decisions))
	for _, d := range decisions {
		if d.TargetType == targetType {
			out[d.TargetID] = struct{}{}
		}
	}
	return out
}
