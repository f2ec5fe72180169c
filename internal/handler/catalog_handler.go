package handler

import (
	"net/http"

	"tienda-pos/internal/catalog"
	"tienda-pos/internal/rate"

	"github.com/rs/zerolog"
)

// CatalogHandler exposes the catalogue cache and the exchange rate to the
// UI layer.
type CatalogHandler struct {
	catalog *catalog.Cache
	rates   *rate.Cache
	logger  zerolog.Logger
}

// NewCatalogHandler creates a new catalog handler.
func NewCatalogHandler(catalogCache *catalog.Cache, rateCache *rate.Cache, logger zerolog.Logger) *CatalogHandler {
	return &CatalogHandler{
		catalog: catalogCache,
		rates:   rateCache,
		logger:  logger.With().Str("handler", "catalog").Logger(),
	}
}

// Refresh handles POST /api/catalog/refresh requests. A partially failed
// refresh keeps the previous snapshots for the failed collections and is
// reported as 502 so the operator knows the catalogue may be stale.
func (h *CatalogHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	if err := h.catalog.Refresh(r.Context()); err != nil {
		writeError(w, http.StatusBadGateway, "catalog refresh incomplete: "+err.Error(), h.logger)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Products handles GET /api/products requests from the cached snapshot.
func (h *CatalogHandler) Products(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"products": h.catalog.Products()})
}

// Promotions handles GET /api/promotions requests from the cached snapshot.
func (h *CatalogHandler) Promotions(w http.ResponseWriter, r *http.Request) {
	promotions := h.catalog.Promotions()
	out := make([]map[string]any, 0, len(promotions))
	for i := range promotions {
		p := &promotions[i]
		out = append(out, map[string]any{
			"id":   p.ID,
			"name": p.Name,
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{"promotions": out})
}

// ExchangeRate handles GET /api/exchange-rate requests, serving from the
// rate cache.
func (h *CatalogHandler) ExchangeRate(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"rate": h.rates.Rate(r.Context())})
}
