package backend

import (
	"context"

	"tienda-pos/internal/model"

	"github.com/shopspring/decimal"
)

// Backend is the ERP side of the POS. Catalogue, promotions, currency rate,
// customer lookup and sale persistence all live behind it as JSON over
// HTTP; this service owns no storage of its own.
type Backend interface {
	// Products retrieves the full product list.
	Products(ctx context.Context) ([]model.Product, error)

	// Product retrieves a single product, used to lazily resolve a
	// missing category.
	Product(ctx context.Context, id string) (*model.Product, error)

	// Categories retrieves all product categories.
	Categories(ctx context.Context) ([]model.Category, error)

	// ActivePromotions retrieves the promotions currently flagged active
	// on the backend. Date-window filtering still happens locally at
	// evaluation time.
	ActivePromotions(ctx context.Context) ([]model.Promotion, error)

	// ExchangeRate retrieves the local-per-base currency rate.
	ExchangeRate(ctx context.Context) (decimal.Decimal, error)

	// SearchCustomer looks a customer up by identity document. A missing
	// customer is (nil, nil), not an error.
	SearchCustomer(ctx context.Context, id string) (*model.Customer, error)

	// SubmitSale posts a sale. A non-success status is returned as a
	// *model.SaleRejectedError carrying the backend's message.
	SubmitSale(ctx context.Context, req *model.SaleRequest) (*model.SaleResult, error)
}
