package model

import "github.com/shopspring/decimal"

// CartLine is one product/size/quantity entry in a checkout cart. The unit
// price is captured in both currencies at add time. The category is carried
// on the line because category-scoped promotions cannot match a line whose
// category is unresolved.
type CartLine struct {
	ProductID         string          `json:"productId"`
	SizeID            *string         `json:"sizeId,omitempty"`
	Quantity          int             `json:"quantity"`
	UnitPrice         decimal.Decimal `json:"unitPrice"`
	UnitPriceLocal    decimal.Decimal `json:"unitPriceLocal"`
	CategoryID        *string         `json:"categoryId"`
	SuppressPromotion bool            `json:"suppressPromotion"`
	ForcedPromotionID *string         `json:"forcedPromotionId,omitempty"`
}

// Subtotal is quantity times the base-currency unit price.
func (l *CartLine) Subtotal() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}
