package cart

import (
	"tienda-pos/internal/model"
	"tienda-pos/internal/promo"

	"github.com/shopspring/decimal"
)

// LineTotals is one line's priced figures in both currencies, with the
// promotion that was applied, if any.
type LineTotals struct {
	Line          model.CartLine  `json:"line"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	Discount      decimal.Decimal `json:"discount"`
	Total         decimal.Decimal `json:"total"`
	SubtotalLocal decimal.Decimal `json:"subtotalLocal"`
	DiscountLocal decimal.Decimal `json:"discountLocal"`
	TotalLocal    decimal.Decimal `json:"totalLocal"`
	PromotionID   *string         `json:"promotionId,omitempty"`
	PromotionName string          `json:"promotionName,omitempty"`
}

// Totals is the priced cart: per-line figures plus cart-level aggregates in
// both currencies.
type Totals struct {
	Lines              []LineTotals    `json:"lines"`
	Subtotal           decimal.Decimal `json:"subtotal"`
	TotalDiscount      decimal.Decimal `json:"totalDiscount"`
	GrandTotal         decimal.Decimal `json:"grandTotal"`
	SubtotalLocal      decimal.Decimal `json:"subtotalLocal"`
	TotalDiscountLocal decimal.Decimal `json:"totalDiscountLocal"`
	GrandTotalLocal    decimal.Decimal `json:"grandTotalLocal"`
}

// ComputeTotals prices the cart from scratch. Promotion selection is never
// cached across mutations: flag flips and line changes shift what applies,
// and a global flat discount moves with every line's share of the cart.
// Local-currency figures are converted per line and then summed, so the
// aggregate never drifts from the lines it is built from.
func (c *Cart) ComputeTotals(promotions []model.Promotion, today model.Date, rate decimal.Decimal) Totals {
	totals := Totals{
		Lines:              make([]LineTotals, 0, len(c.lines)),
		Subtotal:           decimal.Zero,
		TotalDiscount:      decimal.Zero,
		GrandTotal:         decimal.Zero,
		SubtotalLocal:      decimal.Zero,
		TotalDiscountLocal: decimal.Zero,
		GrandTotalLocal:    decimal.Zero,
	}

	for _, line := range c.lines {
		result := promo.Evaluate(line, c.lines, promotions, today)

		subtotal := line.Subtotal()
		total := subtotal.Sub(result.Discount)

		lt := LineTotals{
			Line:          line,
			Subtotal:      subtotal,
			Discount:      result.Discount,
			Total:         total,
			SubtotalLocal: subtotal.Mul(rate),
			DiscountLocal: result.Discount.Mul(rate),
			TotalLocal:    total.Mul(rate),
		}
		if result.Promotion != nil {
			id := result.Promotion.ID
			lt.PromotionID = &id
			lt.PromotionName = result.Promotion.Name
		}
		totals.Lines = append(totals.Lines, lt)

		totals.Subtotal = totals.Subtotal.Add(subtotal)
		totals.TotalDiscount = totals.TotalDiscount.Add(result.Discount)
		totals.GrandTotal = totals.GrandTotal.Add(total)
		totals.SubtotalLocal = totals.SubtotalLocal.Add(lt.SubtotalLocal)
		totals.TotalDiscountLocal = totals.TotalDiscountLocal.Add(lt.DiscountLocal)
		totals.GrandTotalLocal = totals.GrandTotalLocal.Add(lt.TotalLocal)
	}

	return totals
}
