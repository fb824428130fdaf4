package handlers

import (
	"net/http"

	connsvc "github.com/shvshnn-coder/venue-pilot/internal/services/connections"
	swipesvc "github.com/shvshnn-coder/venue-pilot/internal/services/swipes"
	"github.com/shvshnn-coder/venue-pilot/internal/transport/http/dto"
	httperrors "github.com/shvshnn-coder/venue-pilot/internal/transport/http/errors"
)

type StatsHandler struct {
	swipes      *swipesvc.Service
	connections *connsvc.Service
}

func NewStatsHandler(swipes *swipesvc.Service, connections *connsvc.Service) *StatsHandler {
	return &StatsHandler{swipes: swipes, connections: connections}
}

func (h *StatsHandler) Handle(w http.ResponseWriter, r *http.Request) {
	if h.swipes == nil || h.connections == nil {
		writeInternal(w, "STATS_UNAVAILABLE", "stats are unavailable")
		return
	}
	userID, ok := actorFromRequest(w, r, r.URL.Query().Get("user_id"))
	if !ok {
		return
	}

	summary, err := h.swipes.Summary(r.Context(), userID)
	if err != nil {
		writeInternal(w, "INTERNAL_ERROR", "failed to count decisions")
		return
	}
	connections, err := h.connections.Count(r.Context(), userID)
	if err != nil {
		writeInternal(w, "INTERNAL_ERROR", "failed to count connections")
		return
	}

	httperrors.Write(w, http.StatusOK, dto.StatsResponse{
		Swiped:      summary.Swiped,
		Connections: connections,
		CooldownSec: summary.CooldownSec,
	})
}
