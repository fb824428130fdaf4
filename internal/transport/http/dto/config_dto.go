package dto

type ConfigResponse struct {
	CardStack      ConfigCardStack      `json:"cardstack"`
	Feed           ConfigFeed           `json:"feed"`
	ConnectionMode string               `json:"connection_mode"`
	Timezone       string               `json:"timezone"`
	ReportReasons  []ConfigReportReason `json:"report_reasons"`
}

type ConfigCardStack struct {
	Threshold float64 `json:"threshold"`
	CardWidth float64 `json:"card_width"`
	PeekDepth int     `json:"peek_depth"`
}

type ConfigFeed struct {
	DefaultPageSize int `json:"default_page_size"`
	MaxPageSize     int `json:"max_page_size"`
}

type ConfigReportReason struct {
	Code  string `json:"code"`
	Label string `json:"label"`
}
