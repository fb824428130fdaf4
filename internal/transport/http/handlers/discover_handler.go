package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/shvshnn-coder/venue-pilot/internal/domain/enums"
	feedsvc "github.com/shvshnn-coder/venue-pilot/internal/services/feed"
	"github.com/shvshnn-coder/venue-pilot/internal/transport/http/dto"
	httperrors "github.com/shvshnn-coder/venue-pilot/internal/transport/http/errors"
)

type DiscoverHandler struct {
	service *feedsvc.Service
}

func NewDiscoverHandler(service *feedsvc.Service) *DiscoverHandler {
	return &DiscoverHandler{service: service}
}

func (h *DiscoverHandler) Handle(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		writeInternal(w, "FEED_SERVICE_UNAVAILABLE", "feed service is unavailable")
		return
	}

	// "/v1/discover/events" and "/v1/discover/event" are both accepted.
	targetType, ok := enums.ParseTargetType(strings.TrimSuffix(chi.URLParam(r, "type"), "s"))
	if !ok {
		writeBadRequest(w, "VALIDATION_ERROR", "type must be events or attendees")
		return
	}
	query := r.URL.Query()
	userID, ok := actorFromRequest(w, r, query.Get("user_id"))
	if !ok {
		return
	}

	result, err := h.service.Discover(r.Context(), feedsvc.Query{
		ViewerID:        userID,
		Type:            targetType,
		Tag:             query.Get("tag"),
		RecommendedOnly: parseBool(query.Get("recommended")),
		Limit:           parseIntOrDefault(query.Get("limit"), 0),
		Cursor:          query.Get("cursor"),
	})
	if err != nil {
		switch {
		case errors.Is(err, feedsvc.ErrInvalidCursor):
			writeBadRequest(w, "VALIDATION_ERROR", "invalid cursor")
		case errors.Is(err, feedsvc.ErrValidation):
			writeBadRequest(w, "VALIDATION_ERROR", "invalid discover request")
		default:
			writeInternal(w, "INTERNAL_ERROR", "failed to load cards")
		}
		return
	}

	resp := dto.DiscoverResponse{
		Items:     make([]dto.DiscoverItemResponse, 0, len(result.Items)),
		Exhausted: result.Exhausted,
	}
	for _, item := range result.Items {
		resp.Items = append(resp.Items, mapItem(item))
	}
	if result.NextCursor != "" {
		next := result.NextCursor
		resp.NextCursor = &next
	}
	httperrors.Write(w, http.StatusOK, resp)
}
