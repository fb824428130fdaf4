package errors

import (
	"encoding/json"
	"net/http"
	"strconv"
)

type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// RateLimitError is the 429 body; RetryAfterSec mirrors the Retry-After header.
type RateLimitError struct {
	Code          string `json:"code"`
	Message       string `json:"message"`
	RetryAfterSec int64  `json:"retry_after_sec"`
}

func Write(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// WriteRateLimited answers 429 with a Retry-After of at least one second.
func WriteRateLimited(w http.ResponseWriter, payload RateLimitError) {
	if payload.RetryAfterSec <= 0 {
		payload.RetryAfterSec = 1
	}
	w.Header().Set("Retry-After", strconv.FormatInt(payload.RetryAfterSec, 10))
	Write(w, http.StatusTooManyRequests, payload)
}
