package handlers

import (
	"net/http"

	"github.com/shvshnn-coder/venue-pilot/internal/config"
	modsvc "github.com/shvshnn-coder/venue-pilot/internal/services/moderation"
	"github.com/shvshnn-coder/venue-pilot/internal/transport/http/dto"
	httperrors "github.com/shvshnn-coder/venue-pilot/internal/transport/http/errors"
)

// ConfigHandler serves the client-side knobs: card-stack gesture defaults,
// feed paging and the report dialog reasons.
type ConfigHandler struct {
	cfg config.Config
}

func NewConfigHandler(cfg config.Config) *ConfigHandler {
	return &ConfigHandler{cfg: cfg}
}

func (h *ConfigHandler) Handle(w http.ResponseWriter, _ *http.Request) {
	reasons := modsvc.ReportReasonItems()
	reasonItems := make([]dto.ConfigReportReason, 0, len(reasons))
	for _, reason := range reasons {
		reasonItems = append(reasonItems, dto.ConfigReportReason{Code: reason.Code, Label: reason.Label})
	}

	httperrors.Write(w, http.StatusOK, dto.ConfigResponse{
		CardStack: dto.ConfigCardStack{
			Threshold: h.cfg.CardStack.Threshold,
			CardWidth: h.cfg.CardStack.CardWidth,
			PeekDepth: h.cfg.CardStack.PeekDepth,
		},
		Feed: dto.ConfigFeed{
			DefaultPageSize: h.cfg.Feed.DefaultPageSize,
			MaxPageSize:     h.cfg.Feed.MaxPageSize,
		},
		ConnectionMode: h.cfg.Swipes.ConnectionMode,
		Timezone:       h.cfg.Calendar.Timezone,
		ReportReasons:  reasonItems,
	})
}
