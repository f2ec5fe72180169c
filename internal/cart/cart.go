package cart

import (
	"tienda-pos/internal/model"

	"github.com/shopspring/decimal"
)

// AddLineInput carries the operator's input for a new cart line. The unit
// price is entered in the local currency.
type AddLineInput struct {
	ProductID      string
	SizeID         *string
	Quantity       int
	UnitPriceLocal decimal.Decimal
	CategoryID     *string
}

// Cart is an ordered sequence of lines. Identical lines are never merged:
// two adds of the same product stay two lines, and insertion order decides
// how global flat discounts are shared out.
type Cart struct {
	lines []model.CartLine
}

// New creates an empty cart.
func New() *Cart {
	return &Cart{}
}

// Lines returns a copy of the cart's lines in insertion order.
func (c *Cart) Lines() []model.CartLine {
	out := make([]model.CartLine, len(c.lines))
	copy(out, c.lines)
	return out
}

// Len returns the number of lines.
func (c *Cart) Len() int {
	return len(c.lines)
}

// IsEmpty reports whether the cart has no lines.
func (c *Cart) IsEmpty() bool {
	return len(c.lines) == 0
}

// AddLine validates the input and appends a line. The base-currency unit
// price is derived from the entered local price at the given exchange rate;
// a non-positive rate yields a zero base price.
func (c *Cart) AddLine(in AddLineInput, rate decimal.Decimal) error {
	if in.ProductID == "" {
		return model.ErrMissingProduct
	}
	if in.Quantity <= 0 {
		return model.ErrInvalidQuantity
	}

	unitPrice := decimal.Zero
	if rate.IsPositive() {
		unitPrice = in.UnitPriceLocal.Div(rate)
	}

	c.lines = append(c.lines, model.CartLine{
		ProductID:      in.ProductID,
		SizeID:         in.SizeID,
		Quantity:       in.Quantity,
		UnitPrice:      unitPrice,
		UnitPriceLocal: in.UnitPriceLocal,
		CategoryID:     in.CategoryID,
	})
	return nil
}

// RemoveLine removes the line at index; subsequent lines shift down.
func (c *Cart) RemoveLine(index int) error {
	if index < 0 || index >= len(c.lines) {
		return model.ErrLineNotFound
	}
	c.lines = append(c.lines[:index], c.lines[index+1:]...)
	return nil
}

// SetSuppressPromotion toggles the line's promotion suppression flag.
func (c *Cart) SetSuppressPromotion(index int, suppress bool) error {
	if index < 0 || index >= len(c.lines) {
		return model.ErrLineNotFound
	}
	c.lines[index].SuppressPromotion = suppress
	return nil
}

// SetForcedPromotion pins a specific promotion to the line, or unpins with
// nil.
func (c *Cart) SetForcedPromotion(index int, promotionID *string) error {
	if index < 0 || index >= len(c.lines) {
		return model.ErrLineNotFound
	}
	c.lines[index].ForcedPromotionID = promotionID
	return nil
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.lines = nil
}
