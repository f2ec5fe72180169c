package service

import (
	"context"

	"tienda-pos/internal/cart"
	"tienda-pos/internal/model"
)

// SessionService defines the checkout operations the presentation layer may
// depend on. Each session owns one cart; all reads and mutations of a
// session are serialised.
type SessionService interface {
	// CreateSession opens a new checkout session with an empty cart and
	// returns its id.
	CreateSession(ctx context.Context) string

	// Lines returns the session's cart lines in insertion order.
	Lines(ctx context.Context, sessionID string) ([]model.CartLine, error)

	// AddLine validates and appends a cart line, resolving the product's
	// category from the catalogue when the request leaves it unset.
	AddLine(ctx context.Context, sessionID string, req *model.AddLineRequest) error

	// RemoveLine removes the line at index.
	RemoveLine(ctx context.Context, sessionID string, index int) error

	// SetSuppressPromotion toggles a line's promotion suppression.
	SetSuppressPromotion(ctx context.Context, sessionID string, index int, suppress bool) error

	// SetForcedPromotion pins or unpins a promotion on a line.
	SetForcedPromotion(ctx context.Context, sessionID string, index int, promotionID *string) error

	// ClearCart empties the session's cart.
	ClearCart(ctx context.Context, sessionID string) error

	// Totals prices the cart against the current promotion snapshot and
	// exchange rate. Never cached: every call re-evaluates.
	Totals(ctx context.Context, sessionID string) (*cart.Totals, error)

	// Checkout submits the session's cart as a sale.
	Checkout(ctx context.Context, sessionID string, req *model.CheckoutRequest) (*model.SaleResult, error)

	// SearchCustomer looks a customer up on the backend. A missing
	// customer is (nil, nil).
	SearchCustomer(ctx context.Context, id string) (*model.Customer, error)
}
