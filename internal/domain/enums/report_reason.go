package enums

import "strings"

type ReportReason string

const (
	ReportReasonHarassment           ReportReason = "harassment"
	ReportReasonInappropriateContent ReportReason = "inappropriate_content"
	ReportReasonSpam                 ReportReason = "spam"
	ReportReasonFakeProfile          ReportReason = "fake_profile"
	ReportReasonOffensiveBehavior    ReportReason = "offensive_behavior"
	ReportReasonPrivacyViolation     ReportReason = "privacy_violation"
	ReportReasonOther                ReportReason = "other"
)

var reportReasonLabels = map[ReportReason]string{
	ReportReasonHarassment:           "Harassment or bullying",
	ReportReasonInappropriateContent: "Inappropriate content",
	ReportReasonSpam:                 "Spam or scam",
	ReportReasonFakeProfile:          "Fake profile",
	ReportReasonOffensiveBehavior:    "Offensive behavior",
	ReportReasonPrivacyViolation:     "Privacy violation",
	ReportReasonOther:                "Other",
}

// ReportReasons lists the reasons in the order clients should offer them.
func ReportReasons() []ReportReason {
	return []ReportReason{
		ReportReasonHarassment,
		ReportReasonInappropriateContent,
		ReportReasonSpam,
		ReportReasonFakeProfile,
		ReportReasonOffensiveBehavior,
		ReportReasonPrivacyViolation,
		ReportReasonOther,
	}
}

func (r ReportReason) Label() string {
	return reportReasonLabels[r]
}

// ParseReportReason accepts either the slug or the human label.
func ParseReportReason(raw string) (ReportReason, bool) {
	value := strings.ToLower(strings.TrimSpace(raw))
	if value == "" {
		return "", false
	}
	if _, ok := reportReasonLabels[ReportReason(value)]; ok {
		return ReportReason(value), true
	}
	for reason, label := range reportReasonLabels {
		if strings.ToLower(label) == value {
			return reason, true
		}
	}
	return "", false
}
