package handlers

import (
	"errors"
	"net/http"

	connsvc "github.com/shvshnn-coder/venue-pilot/internal/services/connections"
	"github.com/shvshnn-coder/venue-pilot/internal/transport/http/dto"
	httperrors "github.com/shvshnn-coder/venue-pilot/internal/transport/http/errors"
)

type ConnectionsHandler struct {
	service *connsvc.Service
}

func NewConnectionsHandler(service *connsvc.Service) *ConnectionsHandler {
	return &ConnectionsHandler{service: service}
}

func (h *ConnectionsHandler) List(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		writeInternal(w, "CONNECTION_SERVICE_UNAVAILABLE", "connection service is unavailable")
		return
	}
	userID, ok := actorFromRequest(w, r, r.URL.Query().Get("user_id"))
	if !ok {
		return
	}

	items, err := h.service.ConnectionsOf(r.Context(), userID)
	if err != nil {
		switch {
		case errors.Is(err, connsvc.ErrValidation):
			writeBadRequest(w, "VALIDATION_ERROR", "invalid connections request")
		default:
			writeInternal(w, "INTERNAL_ERROR", "failed to load connections")
		}
		return
	}

	resp := dto.ConnectionsResponse{Items: make([]dto.ConnectionResponse, 0, len(items))}
	for _, item := range items {
		resp.Items = append(resp.Items, mapConnectionView(item))
	}
	httperrors.Write(w, http.StatusOK, resp)
}

func (h *ConnectionsHandler) Remove(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		writeInternal(w, "CONNECTION_SERVICE_UNAVAILABLE", "connection service is unavailable")
		return
	}

	var req dto.RemoveConnectionRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "VALIDATION_ERROR", "invalid request body")
		return
	}
	userID, ok := actorFromRequest(w, r, req.UserID)
	if !ok {
		return
	}

	if err := h.service.Remove(r.Context(), userID, req.OtherID); err != nil {
		switch {
		case errors.Is(err, connsvc.ErrValidation):
			writeBadRequest(w, "VALIDATION_ERROR", "user_id and other_id are required")
		case errors.Is(err, connsvc.ErrNotFound):
			writeNotFound(w, "CONNECTION_NOT_FOUND", "connection not found")
		default:
			writeInternal(w, "INTERNAL_ERROR", "failed to remove connection")
		}
		return
	}
	httperrors.Write(w, http.StatusOK, map[string]bool{"ok": true})
}
