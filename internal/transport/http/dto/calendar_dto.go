package dto

type CalendarResponse struct {
	Dates  []string        `json:"dates"`
	Events []EventResponse `json:"events"`
}

type CalendarDayResponse struct {
	Date   string          `json:"date"`
	Events []EventResponse `json:"events"`
}

type StatsResponse struct {
	Swiped      int   `json:"swiped"`
	Connections int   `json:"connections"`
	CooldownSec int64 `json:"cooldown_sec"`
}
