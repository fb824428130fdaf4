package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	modsvc "github.com/shvshnn-coder/venue-pilot/internal/services/moderation"
	"github.com/shvshnn-coder/venue-pilot/internal/transport/http/dto"
	httperrors "github.com/shvshnn-coder/venue-pilot/internal/transport/http/errors"
)

type ModerationHandler struct {
	service *modsvc.Service
}

func NewModerationHandler(service *modsvc.Service) *ModerationHandler {
	return &ModerationHandler{service: service}
}

func (h *ModerationHandler) Block(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		writeInternal(w, "MODERATION_SERVICE_UNAVAILABLE", "moderation service is unavailable")
		return
	}

	var req dto.BlockRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "VALIDATION_ERROR", "invalid request body")
		return
	}
	blockerID, ok := actorFromRequest(w, r, req.BlockerID)
	if !ok {
		return
	}

	block, err := h.service.Block(r.Context(), blockerID, req.BlockedUserID)
	if err != nil {
		switch {
		case errors.Is(err, modsvc.ErrValidation):
			writeBadRequest(w, "VALIDATION_ERROR", err.Error())
		case errors.Is(err, modsvc.ErrConflict):
			writeConflict(w, "ALREADY_BLOCKED", "user is already blocked")
		default:
			writeInternal(w, "INTERNAL_ERROR", "failed to block user")
		}
		return
	}
	httperrors.Write(w, http.StatusCreated, mapBlock(block))
}

func (h *ModerationHandler) Unblock(w http.ResponseWriter, r *http.Request) {
	var req dto.BlockRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "VALIDATION_ERROR", "invalid request body")
		return
	}
	h.unblock(w, r, req.BlockerID, req.BlockedUserID)
}

func (h *ModerationHandler) UnblockByPath(w http.ResponseWriter, r *http.Request) {
	h.unblock(w, r, chi.URLParam(r, "blocker_id"), chi.URLParam(r, "blocked_user_id"))
}

func (h *ModerationHandler) unblock(w http.ResponseWriter, r *http.Request, claimedBlockerID, blockedUserID string) {
	if h.service == nil {
		writeInternal(w, "MODERATION_SERVICE_UNAVAILABLE", "moderation service is unavailable")
		return
	}
	blockerID, ok := actorFromRequest(w, r, claimedBlockerID)
	if !ok {
		return
	}

	if err := h.service.Unblock(r.Context(), blockerID, blockedUserID); err != nil {
		switch {
		case errors.Is(err, modsvc.ErrValidation):
			writeBadRequest(w, "VALIDATION_ERROR", err.Error())
		case errors.Is(err, modsvc.ErrNotFound):
			writeNotFound(w, "BLOCK_NOT_FOUND", "block not found")
		default:
			writeInternal(w, "INTERNAL_ERROR", "failed to unblock user")
		}
		return
	}
	httperrors.Write(w, http.StatusOK, map[string]bool{"ok": true})
}

func (h *ModerationHandler) BlockStatus(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		writeInternal(w, "MODERATION_SERVICE_UNAVAILABLE", "moderation service is unavailable")
		return
	}
	query := r.URL.Query()
	blockerID, ok := actorFromRequest(w, r, query.Get("blocker_id"))
	if !ok {
		return
	}

	blocked, err := h.service.IsBlocked(r.Context(), blockerID, query.Get("blocked_user_id"))
	if err != nil {
		switch {
		case errors.Is(err, modsvc.ErrValidation):
			writeBadRequest(w, "VALIDATION_ERROR", err.Error())
		default:
			writeInternal(w, "INTERNAL_ERROR", "failed to check block")
		}
		return
	}
	httperrors.Write(w, http.StatusOK, dto.BlockStatusResponse{IsBlocked: blocked})
}

func (h *ModerationHandler) Blocks(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		writeInternal(w, "MODERATION_SERVICE_UNAVAILABLE", "moderation service is unavailable")
		return
	}
	blockerID, ok := actorFromRequest(w, r, r.URL.Query().Get("blocker_id"))
	if !ok {
		return
	}

	items, err := h.service.BlocksBy(r.Context(), blockerID)
	if err != nil {
		writeInternal(w, "INTERNAL_ERROR", "failed to load blocks")
		return
	}
	resp := dto.BlocksResponse{Items: make([]dto.BlockResponse, 0, len(items))}
	for _, b := range items {
		resp.Items = append(resp.Items, mapBlock(b))
	}
	httperrors.Write(w, http.StatusOK, resp)
}

func (h *ModerationHandler) Report(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		writeInternal(w, "MODERATION_SERVICE_UNAVAILABLE", "moderation service is unavailable")
		return
	}

	var req dto.ReportRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "VALIDATION_ERROR", "invalid request body")
		return
	}
	reporterID, ok := actorFromRequest(w, r, req.ReporterID)
	if !ok {
		return
	}

	in := modsvc.ReportInput{
		ReporterID:     reporterID,
		ReportedUserID: req.ReportedUserID,
		Reason:         req.Reason,
		AlsoBlock:      req.Block,
	}
	if req.AdditionalDetails != nil {
		in.AdditionalDetails = *req.AdditionalDetails
	}

	result, err := h.service.Report(r.Context(), in)
	if err != nil {
		switch {
		case errors.Is(err, modsvc.ErrInvalidReportReason):
			writeBadRequest(w, "INVALID_REPORT_REASON", "unknown report reason")
		case errors.Is(err, modsvc.ErrValidation):
			writeBadRequest(w, "VALIDATION_ERROR", err.Error())
		default:
			if tf, ok := modsvc.IsTooFast(err); ok {
				writeTooFast(w, "too many reports, try again later", tf.RetryAfterSec)
				return
			}
			writeInternal(w, "INTERNAL_ERROR", "failed to file report")
		}
		return
	}

	resp := dto.ReportResponse{
		Report:         mapReport(result.Report),
		AlreadyBlocked: result.AlreadyBlocked,
	}
	if result.Block != nil {
		block := mapBlock(*result.Block)
		resp.Block = &block
	}
	httperrors.Write(w, http.StatusCreated, resp)
}

func (h *ModerationHandler) Reports(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		writeInternal(w, "MODERATION_SERVICE_UNAVAILABLE", "moderation service is unavailable")
		return
	}
	reporterID, ok := actorFromRequest(w, r, r.URL.Query().Get("reporter_id"))
	if !ok {
		return
	}

	items, err := h.service.ReportsBy(r.Context(), reporterID)
	if err != nil {
		writeInternal(w, "INTERNAL_ERROR", "failed to load reports")
		return
	}
	resp := dto.ReportsResponse{Items: make([]dto.ReportItemResponse, 0, len(items))}
	for _, item := range items {
		resp.Items = append(resp.Items, mapReport(item))
	}
	httperrors.Write(w, http.StatusOK, resp)
}
