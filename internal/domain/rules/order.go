package rules

import (
	"sort"

	"github.com/shvshnn-coder/venue-pilot/internal/domain/model"
)

func sortedByCreation(decisions []model.Decision) []model.Decision {
	out := append([]model.Decision(nil), decisions...)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out
}
