package router

import (
	"net/http"

	"tienda-pos/internal/handler"
	"tienda-pos/internal/middleware"

	"github.com/rs/zerolog"
)

// New creates a new HTTP router with all routes and middleware configured.
func New(
	sessionHandler *handler.SessionHandler,
	catalogHandler *handler.CatalogHandler,
	customerHandler *handler.CustomerHandler,
	apiKey string,
	logger zerolog.Logger,
) http.Handler {
	mux := http.NewServeMux()

	// Health check endpoint (no authentication required)
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "healthy"}`))
	})

	// Checkout session routes
	mux.HandleFunc("POST /api/sessions", sessionHandler.Create)
	mux.HandleFunc("GET /api/sessions/{id}", sessionHandler.Lines)
	mux.HandleFunc("POST /api/sessions/{id}/lines", sessionHandler.AddLine)
	mux.HandleFunc("DELETE /api/sessions/{id}/lines", sessionHandler.ClearCart)
	mux.HandleFunc("PATCH /api/sessions/{id}/lines/{index}", sessionHandler.PatchLine)
	mux.HandleFunc("DELETE /api/sessions/{id}/lines/{index}", sessionHandler.RemoveLine)
	mux.HandleFunc("GET /api/sessions/{id}/totals", sessionHandler.Totals)
	mux.HandleFunc("POST /api/sessions/{id}/checkout", sessionHandler.Checkout)

	// Catalogue and rate routes
	mux.HandleFunc("POST /api/catalog/refresh", catalogHandler.Refresh)
	mux.HandleFunc("GET /api/products", catalogHandler.Products)
	mux.HandleFunc("GET /api/promotions", catalogHandler.Promotions)
	mux.HandleFunc("GET /api/exchange-rate", catalogHandler.ExchangeRate)

	// Customer lookup
	mux.HandleFunc("GET /api/customers/{id}", customerHandler.Search)

	// Apply middleware in order: Recovery -> RequestID -> Logging -> CORS -> APIKeyAuth
	var h http.Handler = mux
	h = middleware.APIKeyAuth(apiKey, logger)(h)
	h = middleware.CORS(h)
	h = middleware.Logging(logger)(h)
	h = middleware.RequestID(h)
	h = middleware.Recovery(logger)(h)

	return h
}
