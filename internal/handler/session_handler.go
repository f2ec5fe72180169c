package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"tienda-pos/internal/model"
	"tienda-pos/internal/service"

	"github.com/rs/zerolog"
)

// SessionHandler handles checkout-session HTTP requests.
type SessionHandler struct {
	service service.SessionService
	logger  zerolog.Logger
}

// NewSessionHandler creates a new session handler.
func NewSessionHandler(svc service.SessionService, logger zerolog.Logger) *SessionHandler {
	return &SessionHandler{
		service: svc,
		logger:  logger.With().Str("handler", "session").Logger(),
	}
}

// Create handles POST /api/sessions requests.
func (h *SessionHandler) Create(w http.ResponseWriter, r *http.Request) {
	id := h.service.CreateSession(r.Context())
	writeJSON(w, http.StatusCreated, map[string]string{"sessionId": id})
}

// Lines handles GET /api/sessions/{id} requests.
func (h *SessionHandler) Lines(w http.ResponseWriter, r *http.Request) {
	lines, err := h.service.Lines(r.Context(), r.PathValue("id"))
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"lines": lines})
}

// AddLine handles POST /api/sessions/{id}/lines requests.
func (h *SessionHandler) AddLine(w http.ResponseWriter, r *http.Request) {
	var req model.AddLineRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", h.logger)
		return
	}

	if err := h.service.AddLine(r.Context(), r.PathValue("id"), &req); err != nil {
		writeDomainError(w, err, h.logger)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// RemoveLine handles DELETE /api/sessions/{id}/lines/{index} requests.
func (h *SessionHandler) RemoveLine(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(r.PathValue("index"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid line index", h.logger)
		return
	}

	if err := h.service.RemoveLine(r.Context(), r.PathValue("id"), index); err != nil {
		writeDomainError(w, err, h.logger)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// PatchLine handles PATCH /api/sessions/{id}/lines/{index} requests. It
// mutates the line's suppress / forced-promotion flags; totals are always
// recomputed on the next read, so no figures are returned here.
func (h *SessionHandler) PatchLine(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(r.PathValue("index"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid line index", h.logger)
		return
	}

	var req model.PatchLineRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", h.logger)
		return
	}

	sessionID := r.PathValue("id")

	if req.SuppressPromotion != nil {
		if err := h.service.SetSuppressPromotion(r.Context(), sessionID, index, *req.SuppressPromotion); err != nil {
			writeDomainError(w, err, h.logger)
			return
		}
	}

	if req.ClearForcedPromotion {
		if err := h.service.SetForcedPromotion(r.Context(), sessionID, index, nil); err != nil {
			writeDomainError(w, err, h.logger)
			return
		}
	} else if req.ForcedPromotionID != nil {
		if err := h.service.SetForcedPromotion(r.Context(), sessionID, index, req.ForcedPromotionID); err != nil {
			writeDomainError(w, err, h.logger)
			return
		}
	}

	w.WriteHeader(http.StatusNoContent)
}

// ClearCart handles DELETE /api/sessions/{id}/lines requests.
func (h *SessionHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	if err := h.service.ClearCart(r.Context(), r.PathValue("id")); err != nil {
		writeDomainError(w, err, h.logger)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Totals handles GET /api/sessions/{id}/totals requests.
func (h *SessionHandler) Totals(w http.ResponseWriter, r *http.Request) {
	totals, err := h.service.Totals(r.Context(), r.PathValue("id"))
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, totals)
}

// Checkout handles POST /api/sessions/{id}/checkout requests. The
// depleted-size notice from the backend rides along in the response body as
// an informational field, never as an error.
func (h *SessionHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	var req model.CheckoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", h.logger)
		return
	}

	result, err := h.service.Checkout(r.Context(), r.PathValue("id"), &req)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusCreated, result)
}
