package pricing

import (
	"math"

	"fleet-dispatch/internal/data/entity"
)

// Line is one priced service. TimeAdjustment is a signed percentage.
type Line struct {
	Category       ServiceCategory
	UnitPrice      float64
	Quantity       int
	ServiceDays    int
	TimeAdjustment float64
}

// LineFromItem converts a stored quotation item. The stored total_price is
// ignored and recomputed.
func LineFromItem(item entity.QuotationItem) Line {
	l := Line{
		Category:    Resolve(item.ServiceCategory, item.ServiceTypeName),
		UnitPrice:   item.UnitPrice,
		Quantity:    item.Quantity,
		ServiceDays: item.ServiceDays,
	}
	if item.TimeBasedAdjustment != nil {
		l.TimeAdjustment = *item.TimeBasedAdjustment
	}
	return l
}

// LinesFromItems skips package lines; the package price is summed separately.
func LinesFromItems(items []entity.QuotationItem) []Line {
	lines := make([]Line, 0, len(items))
	for _, item := range items {
		if !item.IsServiceItem {
			continue
		}
		lines = append(lines, LineFromItem(item))
	}
	return lines
}

func (l Line) quantity() int {
	if l.Quantity < 1 {
		return 1
	}
	return l.Quantity
}

func (l Line) serviceDays() int {
	if l.ServiceDays < 1 {
		return 1
	}
	return l.ServiceDays
}

func (l Line) category() ServiceCategory {
	if l.Category == CategoryUnknown {
		return CategoryOther
	}
	return l.Category
}

// BaseTotal is the line before any time based adjustment.
func (l Line) BaseTotal() float64 {
	return l.category().strategy()(l.UnitPrice, l.quantity(), l.serviceDays())
}

// Total folds the time based adjustment in for categories that take it.
func (l Line) Total() float64 {
	base := l.BaseTotal()
	if l.TimeAdjustment == 0 || !l.category().AppliesTimeAdjustment() {
		return base
	}
	return ApplyAdjustment(base, l.TimeAdjustment)
}

func ApplyAdjustment(amount, percentage float64) float64 {
	return amount * (1 + percentage/100)
}

type Totals struct {
	LineTotals        []float64 `json:"line_totals"`
	ServiceTotal      float64   `json:"service_total"`
	PackageTotal      float64   `json:"package_total"`
	BaseTotal         float64   `json:"base_total"`
	PromotionDiscount float64   `json:"promotion_discount"`
	RegularDiscount   float64   `json:"regular_discount"`
	TotalDiscount     float64   `json:"total_discount"`
	Subtotal          float64   `json:"subtotal"`
	TaxAmount         float64   `json:"tax_amount"`
	FinalTotal        float64   `json:"final_total"`
}

// ComputeQuotationTotals is the only place quotation totals are derived.
// promo must already have passed ValidatePromotion; pass nil when no code is
// applied.
func ComputeQuotationTotals(lines []Line, pkg *entity.PricingPackage, promo *entity.PricingPromotion, discountPct, taxPct float64) Totals {
	var t Totals

	t.LineTotals = make([]float64, len(lines))
	for i, l := range lines {
		t.LineTotals[i] = l.Total()
		t.ServiceTotal += t.LineTotals[i]
	}

	if pkg != nil {
		t.PackageTotal = pkg.BasePrice
	}
	t.BaseTotal = t.ServiceTotal + t.PackageTotal

	t.PromotionDiscount = PromotionDiscount(promo, t.BaseTotal)
	t.RegularDiscount = t.BaseTotal * discountPct / 100
	t.TotalDiscount = t.PromotionDiscount + t.RegularDiscount

	// tax is never computed on a negative base
	t.Subtotal = math.Max(0, t.BaseTotal-t.TotalDiscount)
	t.TaxAmount = t.Subtotal * taxPct / 100
	t.FinalTotal = t.Subtotal + t.TaxAmount

	return t
}

// PromotionDiscount is the amount promo takes off baseTotal.
func PromotionDiscount(promo *entity.PricingPromotion, baseTotal float64) float64 {
	if promo == nil || baseTotal <= 0 {
		return 0
	}

	switch promo.DiscountType {
	case entity.DiscountTypePercentage:
		discount := baseTotal * promo.DiscountValue / 100
		if promo.MaximumDiscount != nil && *promo.MaximumDiscount > 0 {
			discount = math.Min(discount, *promo.MaximumDiscount)
		}
		return discount
	case entity.DiscountTypeFixed, entity.DiscountTypeFixedAmount:
		return math.Min(promo.DiscountValue, baseTotal)
	default:
		return 0
	}
}
