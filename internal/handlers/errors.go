package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/mkrecek/todolist/internal/apperr"
)

// ErrMessageInternal is the generic message for 500 responses. Do not expose internal details to clients.
const ErrMessageInternal = "internal server error"

// JSONError sends a JSON error response with a single "error" field.
func JSONError(w http.ResponseWriter, message string, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}

// WriteError maps a taxonomy error to its status code and the uniform
// envelope. This is the single point where repository, session, and
// policy failures become HTTP responses; anything outside the taxonomy
// is logged and surfaced as a generic 500.
func WriteError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, apperr.ErrValidation), errors.Is(err, apperr.ErrDuplicateIdentity):
		JSONError(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, apperr.ErrInvalidCredentials):
		JSONError(w, "invalid credentials", http.StatusUnauthorized)
	case errors.Is(err, apperr.ErrUnauthorized):
		JSONError(w, "unauthorized", http.StatusUnauthorized)
	case errors.Is(err, apperr.ErrForbidden):
		JSONError(w, "forbidden", http.StatusForbidden)
	case errors.Is(err, apperr.ErrNotFound):
		JSONError(w, err.Error(), http.StatusNotFound)
	default:
		slog.Error("request failed", "error", err)
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
	}
}

// writeJSON sends v with the given status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
