package model

import "github.com/shopspring/decimal"

// SizeStock is the remaining stock for one size variant of a product.
type SizeStock struct {
	SizeID string `json:"sizeId"`
	Stock  int    `json:"stock"`
}

// Product is one catalogue entry as snapshotted at the last refresh.
// CategoryID may be nil when the backend has not categorised the product
// yet; it is resolved lazily before a cart line built from the product can
// match category-scoped promotions.
type Product struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	Brand      string          `json:"brand"`
	UnitPrice  decimal.Decimal `json:"price"`
	CategoryID *string         `json:"categoryId"`
	Sizes      []SizeStock     `json:"sizes"`
}

// Category is a product category.
type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
