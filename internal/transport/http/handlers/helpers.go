package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	authsvc "github.com/shvshnn-coder/venue-pilot/internal/services/auth"
	httperrors "github.com/shvshnn-coder/venue-pilot/internal/transport/http/errors"
)

func decodeJSON(r *http.Request, target any) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(target)
}

func writeBadRequest(w http.ResponseWriter, code, message string) {
	httperrors.Write(w, http.StatusBadRequest, httperrors.APIError{Code: code, Message: message})
}

func writeUnauthorized(w http.ResponseWriter, code, message string) {
	httperrors.Write(w, http.StatusUnauthorized, httperrors.APIError{Code: code, Message: message})
}

func writeForbidden(w http.ResponseWriter, code, message string) {
	httperrors.Write(w, http.StatusForbidden, httperrors.APIError{Code: code, Message: message})
}

func writeNotFound(w http.ResponseWriter, code, message string) {
	httperrors.Write(w, http.StatusNotFound, httperrors.APIError{Code: code, Message: message})
}

func writeConflict(w http.ResponseWriter, code, message string) {
	httperrors.Write(w, http.StatusConflict, httperrors.APIError{Code: code, Message: message})
}

func writeInternal(w http.ResponseWriter, code, message string) {
	httperrors.Write(w, http.StatusInternalServerError, httperrors.APIError{Code: code, Message: message})
}

func writeTooFast(w http.ResponseWriter, message string, retryAfterSec int64) {
	httperrors.WriteRateLimited(w, httperrors.RateLimitError{
		Code:          "TOO_FAST",
		Message:       message,
		RetryAfterSec: retryAfterSec,
	})
}

// actorFromRequest resolves the acting user and writes the error response
// when it cannot.
func actorFromRequest(w http.ResponseWriter, r *http.Request, claimed string) (string, bool) {
	actor, err := authsvc.ResolveActor(r.Context(), claimed)
	if err != nil {
		switch {
		case errors.Is(err, authsvc.ErrForbidden):
			writeForbidden(w, "FORBIDDEN", "user id does not match the access token")
		default:
			writeUnauthorized(w, "UNAUTHORIZED", "user id is required")
		}
		return "", false
	}
	return actor, true
}

func parseIntOrDefault(raw string, fallback int) int {
	value, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return fallback
	}
	return value
}

func parseBool(raw string) bool {
	value, err := strconv.ParseBool(strings.TrimSpace(raw))
	return err == nil && value
}
