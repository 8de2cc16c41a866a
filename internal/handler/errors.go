package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/pkordes/trip-registry/internal/domain"
)

// Messages returned to API callers.
const (
	msgClientNotFound      = "Client not found"
	msgClientHasTrips      = "Client has trips assigned and cannot be deleted"
	msgAlreadyRegistered   = "Client is already registered for this trip"
	msgTripUnavailable     = "Trip does not exist or has already occurred"
	msgClientAdded         = "Client successfully added to trip"
	msgConflict            = "The request conflicts with a concurrent change, please retry"
	msgInternalServerError = "Internal server error"
	msgBodyTooLarge        = "Request body too large"
)

// writeJSON encodes v as the response body with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("write response", "error", err)
	}
}

// writeMessage writes a MessageResponse.
func writeMessage(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, MessageResponse{Message: message})
}

// writeInternalError logs err with request context and answers with the
// generic 500 body. Internal detail never reaches the caller.
func writeInternalError(w http.ResponseWriter, r *http.Request, err error) {
	slog.ErrorContext(r.Context(), "request failed",
		"method", r.Method,
		"path", r.URL.Path,
		"error", err,
	)
	writeMessage(w, http.StatusInternalServerError, msgInternalServerError)
}

// writeServiceError maps a domain error to its HTTP response. Errors that do
// not match any domain sentinel become a generic 500.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		writeMessage(w, http.StatusNotFound, msgClientNotFound)
	case errors.Is(err, domain.ErrClientHasTrips):
		writeMessage(w, http.StatusBadRequest, msgClientHasTrips)
	case errors.Is(err, domain.ErrAlreadyRegistered):
		writeMessage(w, http.StatusBadRequest, msgAlreadyRegistered)
	case errors.Is(err, domain.ErrTripUnavailable):
		writeMessage(w, http.StatusBadRequest, msgTripUnavailable)
	case errors.Is(err, domain.ErrConflict):
		writeMessage(w, http.StatusConflict, msgConflict)
	case errors.Is(err, domain.ErrValidation):
		writeMessage(w, http.StatusBadRequest, unwrapMessage(err))
	default:
		writeInternalError(w, r, err)
	}
}

// unwrapMessage extracts the human-readable part from a wrapped validation error.
// e.g. "service.ClientService.RegisterClient: validation error: pesel is required" → "pesel is required"
func unwrapMessage(err error) string {
	if err == nil {
		return ""
	}
	msg := err.Error()
	prefix := domain.ErrValidation.Error() + ": "
	if i := strings.LastIndex(msg, prefix); i >= 0 && len(msg) > i+len(prefix) {
		return msg[i+len(prefix):]
	}
	return msg
}
