package model

import "github.com/shopspring/decimal"

// AddLineRequest is the payload for adding a line to a cart. The unit price
// is entered in the local currency; the base-currency price is derived at
// the current exchange rate. CategoryID may be omitted, in which case the
// category is resolved from the catalogue.
type AddLineRequest struct {
	ProductID      string          `json:"productId"`
	SizeID         *string         `json:"sizeId,omitempty"`
	Quantity       int             `json:"quantity"`
	UnitPriceLocal decimal.Decimal `json:"unitPriceLocal"`
	CategoryID     *string         `json:"categoryId,omitempty"`
}

// PatchLineRequest mutates a line's promotion flags. ClearForcedPromotion
// distinguishes "unset the forced promotion" from "leave it alone".
type PatchLineRequest struct {
	SuppressPromotion    *bool   `json:"suppressPromotion,omitempty"`
	ForcedPromotionID    *string `json:"forcedPromotionId,omitempty"`
	ClearForcedPromotion bool    `json:"clearForcedPromotion,omitempty"`
}

// CheckoutRequest submits the session's cart as a sale.
type CheckoutRequest struct {
	CustomerID   string `json:"customerId,omitempty"`
	CustomerName string `json:"customerName,omitempty"`
	PaymentType  string `json:"paymentType"`
}
