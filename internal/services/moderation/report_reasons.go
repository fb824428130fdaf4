package moderation

import "github.com/shvshnn-coder/venue-pilot/internal/domain/enums"

type ReportReasonItem struct {
	Code  string `json:"code"`
	Label string `json:"label"`
}

// ReportReasonItems is the catalogue clients render in the report dialog.
func ReportReasonItems() []ReportReasonItem {
	reasons := enums.ReportReasons()
	out := make([]ReportReasonItem, 0, len(reasons))
	for _, r := range reasons {
		out = append(out, ReportReasonItem{Code: string(r), Label: r.Label()})
	}
	return out
}
