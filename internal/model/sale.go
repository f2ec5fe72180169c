package model

import "github.com/shopspring/decimal"

// SaleLine mirrors one cart line in a sale submission. The resolved
// category travels under both key conventions the sales endpoint has
// accepted historically.
type SaleLine struct {
	ProductID         string          `json:"productId"`
	SizeID            *string         `json:"sizeId,omitempty"`
	Quantity          int             `json:"quantity"`
	UnitPrice         decimal.Decimal `json:"unitPrice"`
	CategoryID        *string         `json:"categoryId"`
	CategoryIDCompat  *string         `json:"category_id"`
	SuppressPromotion bool            `json:"suppressPromotion"`
	ForcedPromotionID *string         `json:"forcedPromotionId,omitempty"`
}

// SaleRequest is the single atomic request submitted at checkout. The
// backend persists every line or rejects the whole sale.
type SaleRequest struct {
	Lines        []SaleLine `json:"lines"`
	CustomerID   string     `json:"customerId,omitempty"`
	CustomerName string     `json:"customerName,omitempty"`
	PaymentType  string     `json:"paymentType"`
}

// SaleResult is the backend's confirmation of a submitted sale.
// DepletedSize signals that this sale exhausted the stock of a size
// variant; it is informational, not an error.
type SaleResult struct {
	OK           bool            `json:"ok"`
	SaleID       string          `json:"saleId"`
	Total        decimal.Decimal `json:"total"`
	DepletedSize bool            `json:"depletedSize"`
	Message      string          `json:"message,omitempty"`
}

// Customer is the identity attached to a sale.
type Customer struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Phone string `json:"phone,omitempty"`
}
