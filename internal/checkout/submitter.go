package checkout

import (
	"context"
	"errors"
	"fmt"

	"tienda-pos/internal/backend"
	"tienda-pos/internal/cart"
	"tienda-pos/internal/model"

	"github.com/rs/zerolog"
)

// Submitter turns a cart into one sale request against the backend. A sale
// is all-or-nothing: the backend persists every line or rejects the whole
// request, so there is no partial-failure state to reconcile on this side.
type Submitter struct {
	backend backend.Backend
	logger  zerolog.Logger
}

// NewSubmitter creates a checkout submitter.
func NewSubmitter(b backend.Backend, logger zerolog.Logger) *Submitter {
	return &Submitter{
		backend: b,
		logger:  logger.With().Str("component", "checkout").Logger(),
	}
}

// Submit sends the cart as a sale. An empty cart is rejected locally with
// no network call. On rejection the cart is left untouched so the operator
// can correct and retry; on success the cart is cleared and the
// confirmation returned, including the depleted-size notice when this sale
// exhausted a size variant's stock.
func (s *Submitter) Submit(ctx context.Context, c *cart.Cart, customer model.Customer, paymentType string) (*model.SaleResult, error) {
	if c.IsEmpty() {
		return nil, model.ErrEmptyCart
	}

	req := buildRequest(c.Lines(), customer, paymentType)

	result, err := s.backend.SubmitSale(ctx, req)
	if err != nil {
		var rejected *model.SaleRejectedError
		if errors.As(err, &rejected) {
			s.logger.Warn().
				Int("status", rejected.StatusCode).
				Str("message", rejected.Message).
				Int("lines", len(req.Lines)).
				Msg("sale rejected, cart preserved for retry")
			return nil, err
		}
		s.logger.Error().Err(err).Msg("sale submission failed")
		return nil, fmt.Errorf("submit sale: %w", err)
	}

	c.Clear()

	event := s.logger.Info().
		Str("sale_id", result.SaleID).
		Str("total", result.Total.String()).
		Int("lines", len(req.Lines))
	if result.DepletedSize {
		event = event.Bool("depleted_size", true)
	}
	event.Msg("sale submitted")

	return result, nil
}

// buildRequest serialises the cart lines with base-currency prices. The
// category id is sent under both key conventions the sales endpoint has
// accepted.
func buildRequest(lines []model.CartLine, customer model.Customer, paymentType string) *model.SaleRequest {
	req := &model.SaleRequest{
		Lines:        make([]model.SaleLine, 0, len(lines)),
		CustomerID:   customer.ID,
		CustomerName: customer.Name,
		PaymentType:  paymentType,
	}
	for _, l := range lines {
		req.Lines = append(req.Lines, model.SaleLine{
			ProductID:         l.ProductID,
			SizeID:            l.SizeID,
			Quantity:          l.Quantity,
			UnitPrice:         l.UnitPrice,
			CategoryID:        l.CategoryID,
			CategoryIDCompat:  l.CategoryID,
			SuppressPromotion: l.SuppressPromotion,
			ForcedPromotionID: l.ForcedPromotionID,
		})
	}
	return req
}
