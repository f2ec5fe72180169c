package handler

import (
	"net/http"

	"tienda-pos/internal/service"

	"github.com/rs/zerolog"
)

// CustomerHandler proxies customer lookups to the backend.
type CustomerHandler struct {
	service service.SessionService
	logger  zerolog.Logger
}

// NewCustomerHandler creates a new customer handler.
func NewCustomerHandler(svc service.SessionService, logger zerolog.Logger) *CustomerHandler {
	return &CustomerHandler{
		service: svc,
		logger:  logger.With().Str("handler", "customer").Logger(),
	}
}

// Search handles GET /api/customers/{id} requests. An unknown customer is a
// 404, a backend failure a 502.
func (h *CustomerHandler) Search(w http.ResponseWriter, r *http.Request) {
	customer, err := h.service.SearchCustomer(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadGateway, "customer lookup failed", h.logger)
		return
	}
	if customer == nil {
		writeError(w, http.StatusNotFound, "customer not found", h.logger)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"customer": customer})
}
