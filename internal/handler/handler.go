package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"tienda-pos/internal/model"

	"github.com/rs/zerolog"
)

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		// Log the error but don't expose it to the client
		return
	}
}

// writeError writes an error response with the given status code and message.
func writeError(w http.ResponseWriter, status int, message string, logger zerolog.Logger) {
	logger.Error().Str("error", message).Int("status", status).Msg("handler error")
	writeJSON(w, status, ErrorResponse{Error: message})
}

// writeDomainError maps a service error onto an HTTP status. Validation
// errors are 400, missing sessions and lines 404, backend sale rejections
// 502 with the backend's message verbatim, anything else 500.
func writeDomainError(w http.ResponseWriter, err error, logger zerolog.Logger) {
	var rejected *model.SaleRejectedError
	if errors.As(err, &rejected) {
		writeError(w, http.StatusBadGateway, rejected.Error(), logger)
		return
	}

	var domainErr *model.DomainError
	if errors.As(err, &domainErr) {
		status := http.StatusBadRequest
		switch domainErr.Code {
		case model.ErrCodeSessionNotFound, model.ErrCodeLineNotFound:
			status = http.StatusNotFound
		}
		writeError(w, status, domainErr.Message, logger)
		return
	}

	writeError(w, http.StatusInternalServerError, err.Error(), logger)
}
