package model

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// Promotion type tags on the wire.
const (
	PromoTypePercent  = "PERCENT_DISCOUNT"
	PromoTypeFixed    = "FIXED_DISCOUNT"
	PromoTypeBuyXGetY = "BUY_X_GET_Y"
)

// Rule is the discount rule carried by a promotion. Exactly one concrete
// variant backs each promotion; the backend's flat {type, value, buyQty,
// getQty} wire form is mapped onto the variant during decoding.
type Rule interface {
	rule()
}

// PercentDiscount takes a percentage off a line's subtotal.
type PercentDiscount struct {
	Percent decimal.Decimal
}

// FixedDiscount takes a flat amount off: per unit when the promotion is
// scoped to a product or category, shared across the cart by each line's
// share of the cart subtotal when global.
type FixedDiscount struct {
	Amount decimal.Decimal
}

// BuyXGetY grants Get free units for every complete Buy+Get block in a
// line's quantity. Buy must be positive; Get may be zero, which grants
// nothing.
type BuyXGetY struct {
	Buy int
	Get int
}

func (PercentDiscount) rule() {}
func (FixedDiscount) rule()   {}
func (BuyXGetY) rule()        {}

// Promotion is one campaign from the active-promotions feed. It scopes to
// at most one of a product or a category; neither set means it applies to
// the whole cart. Date bounds are inclusive.
type Promotion struct {
	ID          string
	Name        string
	Rule        Rule
	ProductID   *string
	CategoryID  *string
	MinPurchase *decimal.Decimal
	Active      bool
	StartDate   Date
	EndDate     Date
}

// IsGlobal reports whether the promotion applies cart-wide rather than to a
// specific product or category.
func (p *Promotion) IsGlobal() bool {
	return p.ProductID == nil && p.CategoryID == nil
}

// promotionWire is the backend's flat JSON form of a promotion.
type promotionWire struct {
	ID          string           `json:"id"`
	Name        string           `json:"name"`
	Type        string           `json:"type"`
	Value       decimal.Decimal  `json:"value"`
	BuyQty      int              `json:"buyQty"`
	GetQty      int              `json:"getQty"`
	ProductID   *string          `json:"productId"`
	CategoryID  *string          `json:"categoryId"`
	MinPurchase *decimal.Decimal `json:"minPurchase"`
	Active      bool             `json:"active"`
	StartDate   Date             `json:"startDate"`
	EndDate     Date             `json:"endDate"`
}

// UnmarshalJSON decodes the backend's flat form into the tagged variant.
func (p *Promotion) UnmarshalJSON(data []byte) error {
	var w promotionWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}

	var rule Rule
	switch w.Type {
	case PromoTypePercent:
		rule = PercentDiscount{Percent: w.Value}
	case PromoTypeFixed:
		rule = FixedDiscount{Amount: w.Value}
	case PromoTypeBuyXGetY:
		rule = BuyXGetY{Buy: w.BuyQty, Get: w.GetQty}
	default:
		return fmt.Errorf("unknown promotion type %q", w.Type)
	}

	*p = Promotion{
		ID:          w.ID,
		Name:        w.Name,
		Rule:        rule,
		ProductID:   w.ProductID,
		CategoryID:  w.CategoryID,
		MinPurchase: w.MinPurchase,
		Active:      w.Active,
		StartDate:   w.StartDate,
		EndDate:     w.EndDate,
	}
	return nil
}
