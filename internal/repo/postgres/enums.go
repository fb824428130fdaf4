package postgres

import "github.com/shvshnn-coder/venue-pilot/internal/domain/enums"

func enumsTargetType(raw string) enums.TargetType {
	t, _ := enums.ParseTargetType(raw)
	return t
}

func enumsDirection(raw string) enums.Direction {
	d, _ := enums.ParseDirection(raw)
	return d
}

func enumsReportReason(raw string) enums.ReportReason {
	r, _ := enums.ParseReportReason(raw)
	return r
}
