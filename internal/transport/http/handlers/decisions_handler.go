package handlers

import (
	"errors"
	"net/http"

	"github.com/shvshnn-coder/venue-pilot/internal/domain/enums"
	swipesvc "github.com/shvshnn-coder/venue-pilot/internal/services/swipes"
	"github.com/shvshnn-coder/venue-pilot/internal/transport/http/dto"
	httperrors "github.com/shvshnn-coder/venue-pilot/internal/transport/http/errors"
)

const (
	connectionStatusNone     = "none"
	connectionStatusCreated  = "created"
	connectionStatusExisting = "existing"
	connectionStatusFailed   = "failed"
)

type DecisionsHandler struct {
	service *swipesvc.Service
}

func NewDecisionsHandler(service *swipesvc.Service) *DecisionsHandler {
	return &DecisionsHandler{service: service}
}

func (h *DecisionsHandler) Create(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		writeInternal(w, "SWIPE_SERVICE_UNAVAILABLE", "swipe service is unavailable")
		return
	}

	var req dto.CreateDecisionRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "VALIDATION_ERROR", "invalid request body")
		return
	}
	targetType, ok := enums.ParseTargetType(req.TargetType)
	if !ok {
		writeBadRequest(w, "VALIDATION_ERROR", "target_type must be event or attendee")
		return
	}
	direction, ok := enums.ParseDirection(req.Direction)
	if !ok {
		writeBadRequest(w, "VALIDATION_ERROR", "direction must be left or right")
		return
	}
	userID, ok := actorFromRequest(w, r, req.UserID)
	if !ok {
		return
	}

	result, err := h.service.Record(r.Context(), userID, req.TargetID, targetType, direction)
	if err != nil {
		switch {
		case errors.Is(err, swipesvc.ErrValidation):
			writeBadRequest(w, "VALIDATION_ERROR", err.Error())
		case errors.Is(err, swipesvc.ErrConflict):
			writeConflict(w, "ALREADY_DECIDED", "a decision for this target already exists")
		case errors.Is(err, swipesvc.ErrDownstreamUnavailable):
			httperrors.Write(w, http.StatusServiceUnavailable, httperrors.APIError{
				Code:    "DOWNSTREAM_UNAVAILABLE",
				Message: "failed to form connection, decision was not stored",
			})
		default:
			if tf, ok := swipesvc.IsTooFast(err); ok {
				writeTooFast(w, "too many decisions, slow down", tf.RetryAfter())
				return
			}
			writeInternal(w, "INTERNAL_ERROR", "failed to record decision")
		}
		return
	}

	resp := dto.CreateDecisionResponse{
		Decision:         mapDecision(result.Decision),
		ConnectionStatus: connectionStatusNone,
	}
	switch {
	case result.ConnectionErr != nil:
		resp.ConnectionStatus = connectionStatusFailed
	case result.Connection != nil:
		conn := mapConnection(*result.Connection, userID)
		resp.Connection = &conn
		resp.ConnectionStatus = connectionStatusExisting
		if result.ConnectionCreated {
			resp.ConnectionStatus = connectionStatusCreated
		}
	}
	httperrors.Write(w, http.StatusCreated, resp)
}

func (h *DecisionsHandler) List(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		writeInternal(w, "SWIPE_SERVICE_UNAVAILABLE", "swipe service is unavailable")
		return
	}
	userID, ok := actorFromRequest(w, r, r.URL.Query().Get("user_id"))
	if !ok {
		return
	}

	items, err := h.service.DecisionsOf(r.Context(), userID)
	if err != nil {
		switch {
		case errors.Is(err, swipesvc.ErrValidation):
			writeBadRequest(w, "VALIDATION_ERROR", "invalid decisions request")
		default:
			writeInternal(w, "INTERNAL_ERROR", "failed to load decisions")
		}
		return
	}

	resp := dto.DecisionsResponse{Items: make([]dto.DecisionResponse, 0, len(items))}
	for _, d := range items {
		resp.Items = append(resp.Items, mapDecision(d))
	}
	httperrors.Write(w, http.StatusOK, resp)
}
