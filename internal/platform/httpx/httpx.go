// Package httpx holds the shared JSON request/response plumbing for the HTTP
// handlers, including the central mapping from service sentinel errors to
// HTTP status codes.
package httpx

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"

	enrollmentservice "learnai/backend/internal/enrollment/service"
	identityservice "learnai/backend/internal/identity/service"
	"learnai/backend/internal/security"
)

// ErrorResponse is the JSON error envelope for every failed request.
type ErrorResponse struct {
	Error     string `json:"error"`
	RequestID string `json:"requestId,omitempty"`
}

// RespondJSON writes v as a JSON body with the given status code.
func RespondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		_ = json.NewEncoder(w).Encode(v)
	}
}

// RespondError maps err to an HTTP status and writes the error envelope.
func RespondError(w http.ResponseWriter, r *http.Request, err error) {
	RespondJSON(w, StatusFromError(err), ErrorResponse{
		Error:     err.Error(),
		RequestID: middleware.GetReqID(r.Context()),
	})
}

// StatusFromError maps service sentinel errors to HTTP status codes. Unknown
// errors map to 500.
func StatusFromError(err error) int {
	switch {
	case errors.Is(err, identityservice.ErrPrincipalNotFound):
		return http.StatusNotFound
	case errors.Is(err, identityservice.ErrInvalidCredentials),
		errors.Is(err, security.ErrInvalidToken):
		return http.StatusUnauthorized
	case errors.Is(err, identityservice.ErrEmailAlreadyRegistered),
		errors.Is(err, enrollmentservice.ErrEmailOwnedByInstructor):
		return http.StatusConflict
	case errors.Is(err, identityservice.ErrInvalidEmail):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// DecodeJSON decodes the request body into v. Unknown fields are tolerated
// to stay compatible with older clients sending extra keys.
func DecodeJSON(r *http.Request, v any) error {
	defer func() { _ = r.Body.Close() }()
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return errors.New("malformed request body")
	}
	return nil
}
