package promo

import (
	"tienda-pos/internal/model"

	"github.com/shopspring/decimal"
)

// Result is the outcome of evaluating one cart line: the discount amount in
// the base currency and the promotion that produced it. A nil Promotion
// means no promotion applied and the discount is zero.
type Result struct {
	Discount  decimal.Decimal
	Promotion *model.Promotion
}

var hundred = decimal.NewFromInt(100)

// Evaluate selects the single best applicable promotion for one cart line
// and returns its discount. It is a pure function of the line, the full
// cart, the promotion snapshot and the evaluation day: global flat
// discounts are shared across lines by their portion of the cart subtotal,
// so the whole cart participates even though the result is per line.
//
// A forced promotion on the line short-circuits the best-of search when its
// scope fits and it yields a positive discount; otherwise evaluation falls
// through to automatic selection rather than failing. Ties on discount keep
// the first promotion in snapshot order. The line's size never participates
// in selection.
func Evaluate(line model.CartLine, lines []model.CartLine, promotions []model.Promotion, today model.Date) Result {
	if line.SuppressPromotion {
		return Result{Discount: decimal.Zero}
	}
	if len(promotions) == 0 {
		return Result{Discount: decimal.Zero}
	}

	applicable := filterApplicable(promotions, today)

	lineSubtotal := line.Subtotal()
	cartSubtotal := decimal.Zero
	for i := range lines {
		cartSubtotal = cartSubtotal.Add(lines[i].Subtotal())
	}

	if line.ForcedPromotionID != nil {
		for i := range applicable {
			p := &applicable[i]
			if p.ID != *line.ForcedPromotionID {
				continue
			}
			if scopeMatches(p, &line) {
				d := ruleDiscount(p, &line, lineSubtotal, cartSubtotal)
				if d.IsPositive() {
					return Result{Discount: d, Promotion: p}
				}
			}
			break
		}
	}

	best := Result{Discount: decimal.Zero}
	for i := range applicable {
		p := &applicable[i]
		if !scopeMatches(p, &line) {
			continue
		}
		if !meetsThreshold(p, lineSubtotal, cartSubtotal) {
			continue
		}
		d := ruleDiscount(p, &line, lineSubtotal, cartSubtotal)
		if d.GreaterThan(best.Discount) {
			best = Result{Discount: d, Promotion: p}
		}
	}
	return best
}

// filterApplicable keeps promotions that are active and whose inclusive
// calendar-day window contains today. An unset bound is open on that side.
func filterApplicable(promotions []model.Promotion, today model.Date) []model.Promotion {
	out := make([]model.Promotion, 0, len(promotions))
	for _, p := range promotions {
		if !p.Active {
			continue
		}
		if !p.StartDate.IsZero() && p.StartDate.After(today) {
			continue
		}
		if !p.EndDate.IsZero() && p.EndDate.Before(today) {
			continue
		}
		out = append(out, p)
	}
	return out
}

// scopeMatches reports whether the promotion's scope fits the line. A line
// with an unresolved category can never match a category-scoped promotion.
func scopeMatches(p *model.Promotion, line *model.CartLine) bool {
	if p.ProductID != nil && *p.ProductID != line.ProductID {
		return false
	}
	if p.CategoryID != nil {
		if line.CategoryID == nil || *p.CategoryID != *line.CategoryID {
			return false
		}
	}
	return true
}

// meetsThreshold checks the minimum-purchase threshold. Product- and
// category-scoped promotions compare against the line subtotal; global
// promotions compare against the whole cart.
func meetsThreshold(p *model.Promotion, lineSubtotal, cartSubtotal decimal.Decimal) bool {
	if p.MinPurchase == nil {
		return true
	}
	relevant := lineSubtotal
	if p.IsGlobal() {
		relevant = cartSubtotal
	}
	return relevant.GreaterThanOrEqual(*p.MinPurchase)
}

// ruleDiscount computes the discount for one promotion variant, floored at
// zero.
func ruleDiscount(p *model.Promotion, line *model.CartLine, lineSubtotal, cartSubtotal decimal.Decimal) decimal.Decimal {
	var d decimal.Decimal

	switch r := p.Rule.(type) {
	case model.PercentDiscount:
		d = lineSubtotal.Mul(r.Percent).Div(hundred)

	case model.FixedDiscount:
		if p.IsGlobal() {
			// Flat cart-wide amount, distributed by each line's share
			// of the cart subtotal.
			if cartSubtotal.IsPositive() {
				d = lineSubtotal.Div(cartSubtotal).Mul(r.Amount)
			}
		} else {
			d = r.Amount.Mul(decimal.NewFromInt(int64(line.Quantity)))
		}

	case model.BuyXGetY:
		if r.Buy > 0 && r.Get >= 0 {
			block := r.Buy + r.Get
			freeUnits := (line.Quantity / block) * r.Get
			d = line.UnitPrice.Mul(decimal.NewFromInt(int64(freeUnits)))
		}
	}

	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}
