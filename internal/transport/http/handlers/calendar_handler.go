package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	calendarsvc "github.com/shvshnn-coder/venue-pilot/internal/services/calendar"
	"github.com/shvshnn-coder/venue-pilot/internal/transport/http/dto"
	httperrors "github.com/shvshnn-coder/venue-pilot/internal/transport/http/errors"
)

type CalendarHandler struct {
	service *calendarsvc.Service
}

func NewCalendarHandler(service *calendarsvc.Service) *CalendarHandler {
	return &CalendarHandler{service: service}
}

func (h *CalendarHandler) Overview(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		writeInternal(w, "CALENDAR_SERVICE_UNAVAILABLE", "calendar service is unavailable")
		return
	}
	userID, ok := actorFromRequest(w, r, r.URL.Query().Get("user_id"))
	if !ok {
		return
	}

	overview, err := h.service.Overview(r.Context(), userID)
	if err != nil {
		handleCalendarError(w, err)
		return
	}
	httperrors.Write(w, http.StatusOK, dto.CalendarResponse{
		Dates:  overview.Dates,
		Events: mapEvents(overview.Events),
	})
}

func (h *CalendarHandler) Day(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		writeInternal(w, "CALENDAR_SERVICE_UNAVAILABLE", "calendar service is unavailable")
		return
	}
	userID, ok := actorFromRequest(w, r, r.URL.Query().Get("user_id"))
	if !ok {
		return
	}

	day, events, err := h.service.EventsOn(r.Context(), userID, chi.URLParam(r, "date"))
	if err != nil {
		handleCalendarError(w, err)
		return
	}
	httperrors.Write(w, http.StatusOK, dto.CalendarDayResponse{
		Date:   day,
		Events: mapEvents(events),
	})
}

func handleCalendarError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, calendarsvc.ErrValidation):
		writeBadRequest(w, "VALIDATION_ERROR", err.Error())
	default:
		writeInternal(w, "INTERNAL_ERROR", "failed to load calendar")
	}
}
