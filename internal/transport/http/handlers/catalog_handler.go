package handlers

import (
	"errors"
	"net/http"

	authsvc "github.com/shvshnn-coder/venue-pilot/internal/services/auth"
	catalogsvc "github.com/shvshnn-coder/venue-pilot/internal/services/catalog"
	"github.com/shvshnn-coder/venue-pilot/internal/transport/http/dto"
	httperrors "github.com/shvshnn-coder/venue-pilot/internal/transport/http/errors"
)

type CatalogHandler struct {
	service *catalogsvc.Service
}

func NewCatalogHandler(service *catalogsvc.Service) *CatalogHandler {
	return &CatalogHandler{service: service}
}

func (h *CatalogHandler) CreateEvent(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		writeInternal(w, "CATALOG_SERVICE_UNAVAILABLE", "catalog service is unavailable")
		return
	}

	var req dto.CreateEventRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "VALIDATION_ERROR", "invalid request body")
		return
	}
	organizerID := req.OrganizerID
	if identity, ok := authsvc.IdentityFromContext(r.Context()); ok {
		organizerID = identity.UserID
	}

	event, err := h.service.CreateEvent(r.Context(), catalogsvc.EventInput{
		ID:          req.ID,
		Name:        req.Name,
		Location:    req.Location,
		StartsAt:    req.StartsAt,
		Tags:        req.Tags,
		Recommended: req.Recommended,
		OrganizerID: organizerID,
	})
	if err != nil {
		switch {
		case errors.Is(err, catalogsvc.ErrValidation):
			writeBadRequest(w, "VALIDATION_ERROR", err.Error())
		case errors.Is(err, catalogsvc.ErrConflict):
			writeConflict(w, "EVENT_EXISTS", "event already exists")
		default:
			writeInternal(w, "INTERNAL_ERROR", "failed to create event")
		}
		return
	}
	httperrors.Write(w, http.StatusCreated, mapEvent(event))
}

func (h *CatalogHandler) ListEvents(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		writeInternal(w, "CATALOG_SERVICE_UNAVAILABLE", "catalog service is unavailable")
		return
	}
	events, err := h.service.ListEvents(r.Context())
	if err != nil {
		writeInternal(w, "INTERNAL_ERROR", "failed to load events")
		return
	}
	httperrors.Write(w, http.StatusOK, dto.EventsResponse{Items: mapEvents(events)})
}

func (h *CatalogHandler) ImportAttendees(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		writeInternal(w, "CATALOG_SERVICE_UNAVAILABLE", "catalog service is unavailable")
		return
	}

	var req dto.ImportAttendeesRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "VALIDATION_ERROR", "invalid request body")
		return
	}
	in := make([]catalogsvc.AttendeeInput, 0, len(req.Attendees))
	for _, a := range req.Attendees {
		in = append(in, catalogsvc.AttendeeInput{
			ID:          a.ID,
			Name:        a.Name,
			Role:        a.Role,
			Bio:         a.Bio,
			Tags:        a.Tags,
			Recommended: a.Recommended,
		})
	}

	attendees, err := h.service.ImportAttendees(r.Context(), in)
	if err != nil {
		switch {
		case errors.Is(err, catalogsvc.ErrValidation):
			writeBadRequest(w, "VALIDATION_ERROR", err.Error())
		default:
			writeInternal(w, "INTERNAL_ERROR", "failed to import attendees")
		}
		return
	}

	resp := dto.AttendeesResponse{Items: make([]dto.AttendeeResponse, 0, len(attendees))}
	for _, a := range attendees {
		resp.Items = append(resp.Items, mapAttendee(a))
	}
	httperrors.Write(w, http.StatusCreated, resp)
}

func (h *CatalogHandler) ListAttendees(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		writeInternal(w, "CATALOG_SERVICE_UNAVAILABLE", "catalog service is unavailable")
		return
	}
	attendees, err := h.service.ListAttendees(r.Context())
	if err != nil {
		writeInternal(w, "INTERNAL_ERROR", "failed to load attendees")
		return
	}

	resp := dto.AttendeesResponse{Items: make([]dto.AttendeeResponse, 0, len(attendees))}
	for _, a := range attendees {
		resp.Items = append(resp.Items, mapAttendee(a))
	}
	httperrors.Write(w, http.StatusOK, resp)
}
