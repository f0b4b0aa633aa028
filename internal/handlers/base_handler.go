package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/citywatch/backend/internal/services"
	"go.uber.org/zap"
)

// BaseHandler provides common handler functionality
type BaseHandler struct {
	Logger *zap.Logger
}

// RespondJSON sends a JSON response
func (h *BaseHandler) RespondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.Logger.Error("failed to encode JSON response", zap.Error(err))
	}
}

// RespondError sends an error JSON response in the standard envelope
func (h *BaseHandler) RespondError(w http.ResponseWriter, status int, message string) {
	h.RespondJSON(w, status, map[string]any{"success": false, "message": message})
}

// RespondServiceError maps service sentinel errors onto HTTP statuses.
// Unrecognized errors become a 500 with a generic message so internals never leak.
func (h *BaseHandler) RespondServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, services.ErrValidation), errors.Is(err, services.ErrDuplicateAccount):
		h.RespondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, services.ErrInvalidCredentials):
		h.RespondError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, services.ErrNotFound):
		h.RespondError(w, http.StatusNotFound, err.Error())
	default:
		h.Logger.Error("internal error", zap.Error(err))
		h.RespondError(w, http.StatusInternalServerError, "internal server error")
	}
}

// DecodeJSON decodes the request body into dst, rejecting malformed payloads
func (h *BaseHandler) DecodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}
