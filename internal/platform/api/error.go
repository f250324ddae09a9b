package api

import (
	"net/http"
)

// Error codes understood by clients. The HTTP status is determined solely by
// the code, never by the individual failure site.
const (
	CodeBadRequest   = "BAD_REQUEST"
	CodeUnauthorized = "UNAUTHORIZED"
	CodeForbidden    = "FORBIDDEN"
	CodeNotFound     = "NOT_FOUND"
	CodeConflict     = "CONFLICT"
	CodeRateLimited  = "RATE_LIMITED"
	CodeInternal     = "INTERNAL"
)

type ErrorResponse struct {
	Error APIError `json:"error"`
}

type APIError struct {
	Code      string         `json:"code"`
	Message   string         `json:"message"`
	Details   map[string]any `json:"details,omitempty"`
	RequestID string         `json:"request_id,omitempty"`
}

func WriteError(w http.ResponseWriter, status int, code, message, requestID string, details map[string]any) {
	WriteJSON(w, status, ErrorResponse{Error: APIError{Code: code, Message: message, Details: details, RequestID: requestID}})
}

// Convenience helpers
func BadRequest(w http.ResponseWriter, message, requestID string, details map[string]any) {
	WriteError(w, http.StatusBadRequest, CodeBadRequest, message, requestID, details)
}

func Unauthorized(w http.ResponseWriter, message, requestID string) {
	WriteError(w, http.StatusUnauthorized, CodeUnauthorized, message, requestID, nil)
}

func Forbidden(w http.ResponseWriter, message, requestID string) {
	WriteError(w, http.StatusForbidden, CodeForbidden, message, requestID, nil)
}

func NotFound(w http.ResponseWriter, message, requestID string) {
	WriteError(w, http.StatusNotFound, CodeNotFound, message, requestID, nil)
}

func Conflict(w http.ResponseWriter, message, requestID string, details map[string]any) {
	WriteError(w, http.StatusConflict, CodeConflict, message, requestID, details)
}

func RateLimited(w http.ResponseWriter, message, requestID string, details map[string]any) {
	WriteError(w, http.StatusTooManyRequests, CodeRateLimited, message, requestID, details)
}

func Internal(w http.ResponseWriter, requestID string) {
	WriteError(w, http.StatusInternalServerError, CodeInternal, "Internal server error", requestID, nil)
}
