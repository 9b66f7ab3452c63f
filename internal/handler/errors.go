package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/surgeproject/surge/internal/domain"
)

// errorResponse is the JSON body for every non-2xx response.
type errorResponse struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// writeJSON writes v as a JSON response with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	//nolint:errcheck — headers are already sent; nothing useful to do on failure.
	json.NewEncoder(w).Encode(v)
}

// writeError writes a structured error body with the given status.
func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{Error: errorDetail{Code: code, Message: message}})
}

// writeServiceError maps a service-layer error to its protocol response:
// invalid token → 404, invalid zone → 400, store unavailable → 503,
// anything else → 500 (logged, body kept opaque).
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidToken):
		writeError(w, http.StatusNotFound, "invalid_token", "invalid or expired token")
	case errors.Is(err, domain.ErrInvalidZone):
		writeError(w, http.StatusBadRequest, "invalid_zone", "zone is not in the configured set")
	case errors.Is(err, domain.ErrStoreUnavailable):
		writeError(w, http.StatusServiceUnavailable, "store_unavailable", "shared store is unreachable")
	default:
		slog.ErrorContext(r.Context(), "unhandled service error", "error", err)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
	}
}
