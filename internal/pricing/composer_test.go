package pricing

import (
	"testing"

	"fleet-dispatch/internal/data/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func TestCharterIgnoresQuantity(t *testing.T) {
	charter := LineFromItem(entity.QuotationItem{
		ServiceTypeName: "Charter Services (Hourly)",
		UnitPrice:       5000,
		Quantity:        7,
		ServiceDays:     3,
		IsServiceItem:   true,
	})
	transfer := LineFromItem(entity.QuotationItem{
		ServiceTypeName: "Airport Transfer Haneda",
		UnitPrice:       5000,
		Quantity:        7,
		ServiceDays:     3,
		IsServiceItem:   true,
	})

	assert.Equal(t, CategoryCharter, charter.Category)
	assert.InDelta(t, 15000, charter.Total(), 0.001)
	assert.InDelta(t, 105000, transfer.Total(), 0.001)
}

func TestStoredCategoryWinsOverName(t *testing.T) {
	line := LineFromItem(entity.QuotationItem{
		ServiceTypeName: "Charter-like day tour",
		ServiceCategory: "other",
		UnitPrice:       1000,
		Quantity:        2,
		ServiceDays:     2,
	})
	assert.Equal(t, CategoryOther, line.Category)
	assert.InDelta(t, 4000, line.Total(), 0.001)
}

func TestLineDefaults(t *testing.T) {
	line := Line{Category: CategoryTransfer, UnitPrice: 8000}
	assert.InDelta(t, 8000, line.Total(), 0.001)

	unknown := Line{UnitPrice: 100, Quantity: 2, ServiceDays: 2}
	assert.InDelta(t, 400, unknown.Total(), 0.001)
}

func TestTimeAdjustmentSkipsCharter(t *testing.T) {
	transfer := Line{Category: CategoryTransfer, UnitPrice: 10000, Quantity: 1, ServiceDays: 1, TimeAdjustment: 25}
	charter := Line{Category: CategoryCharter, UnitPrice: 10000, Quantity: 1, ServiceDays: 2, TimeAdjustment: 25}
	discount := Line{Category: CategoryOther, UnitPrice: 10000, TimeAdjustment: -10}

	assert.InDelta(t, 12500, transfer.Total(), 0.001)
	assert.InDelta(t, 20000, charter.Total(), 0.001)
	assert.InDelta(t, 9000, discount.Total(), 0.001)
}

func TestTaxOnClampedSubtotal(t *testing.T) {
	lines := []Line{{Category: CategoryOther, UnitPrice: 1000}}
	promo := &entity.PricingPromotion{DiscountType: entity.DiscountTypeFixed, DiscountValue: 700}

	totals := ComputeQuotationTotals(lines, nil, promo, 50, 10)

	assert.InDelta(t, 1000, totals.BaseTotal, 0.001)
	assert.InDelta(t, 700, totals.PromotionDiscount, 0.001)
	assert.InDelta(t, 500, totals.RegularDiscount, 0.001)
	assert.InDelta(t, 1200, totals.TotalDiscount, 0.001)
	assert.Zero(t, totals.Subtotal)
	assert.Zero(t, totals.TaxAmount)
	assert.Zero(t, totals.FinalTotal)
}

func TestPromotionStackingIsAdditive(t *testing.T) {
	lines := []Line{{Category: CategoryOther, UnitPrice: 10000}}
	promo := &entity.PricingPromotion{DiscountType: entity.DiscountTypePercentage, DiscountValue: 20}

	totals := ComputeQuotationTotals(lines, nil, promo, 10, 0)

	assert.InDelta(t, 2000, totals.PromotionDiscount, 0.001)
	assert.InDelta(t, 1000, totals.RegularDiscount, 0.001)
	assert.InDelta(t, 3000, totals.TotalDiscount, 0.001)
	assert.InDelta(t, 7000, totals.Subtotal, 0.001)
	assert.InDelta(t, 7000, totals.FinalTotal, 0.001)
}

func TestPromotionCap(t *testing.T) {
	promo := &entity.PricingPromotion{
		DiscountType:    entity.DiscountTypePercentage,
		DiscountValue:   50,
		MaximumDiscount: ptr(1000.0),
	}
	assert.InDelta(t, 1000, PromotionDiscount(promo, 10000), 0.001)
}

func TestFixedPromotionNeverExceedsBase(t *testing.T) {
	fixed := &entity.PricingPromotion{DiscountType: entity.DiscountTypeFixedAmount, DiscountValue: 5000}
	assert.InDelta(t, 3000, PromotionDiscount(fixed, 3000), 0.001)
	assert.Zero(t, PromotionDiscount(nil, 3000))
}

func TestPackageIsSummedWithServices(t *testing.T) {
	items := []entity.QuotationItem{
		{ServiceTypeName: "Airport Transfer", UnitPrice: 20000, Quantity: 1, ServiceDays: 1, IsServiceItem: true},
		{Description: "Tokyo Highlights package", UnitPrice: 50000, IsServiceItem: false},
	}
	pkg := &entity.PricingPackage{Name: "Tokyo Highlights", BasePrice: 50000}

	totals := ComputeQuotationTotals(LinesFromItems(items), pkg, nil, 0, 10)

	require.Len(t, totals.LineTotals, 1)
	assert.InDelta(t, 20000, totals.ServiceTotal, 0.001)
	assert.InDelta(t, 50000, totals.PackageTotal, 0.001)
	assert.InDelta(t, 70000, totals.BaseTotal, 0.001)
	assert.InDelta(t, 7000, totals.TaxAmount, 0.001)
	assert.InDelta(t, 77000, totals.FinalTotal, 0.001)
}

func TestClassify(t *testing.T) {
	assert.Equal(t, CategoryCharter, Classify("CHARTER services"))
	assert.Equal(t, CategoryTransfer, Classify("Airport Transfer Narita"))
	assert.Equal(t, CategoryOther, Classify("Wedding car"))
	assert.Equal(t, CategoryTransfer, Resolve("transfer", "whatever"))
	assert.Equal(t, CategoryCharter, Resolve("", "Full-day charter"))
}
