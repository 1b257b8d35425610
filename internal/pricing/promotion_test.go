package pricing

import (
	"testing"
	"time"

	"fleet-dispatch/internal/data/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func promotions() []entity.PricingPromotion {
	return []entity.PricingPromotion{
		{Code: "SUMMER20", DiscountType: entity.DiscountTypePercentage, DiscountValue: 20, IsActive: true},
		{Code: "OFF", DiscountType: entity.DiscountTypePercentage, DiscountValue: 50, IsActive: false},
		{Code: "SOON", IsActive: true, StartDate: ptr(now.Add(48 * time.Hour))},
		{Code: "OLD", IsActive: true, EndDate: ptr(now.Add(-time.Hour))},
		{Code: "USED", IsActive: true, UsageLimit: ptr(3), TimesUsed: 3},
		{Code: "BIG", IsActive: true, MinimumAmount: ptr(5000.0)},
		// every check fails, the earliest reason must win
		{Code: "ALLBAD", IsActive: true, StartDate: ptr(now.Add(time.Hour)), EndDate: ptr(now.Add(-time.Hour)), UsageLimit: ptr(0), MinimumAmount: ptr(1e9)},
	}
}

func TestValidatePromotionMatchesCaseInsensitive(t *testing.T) {
	promo, rej := ValidatePromotion("  summer20 ", promotions(), 10000, now)
	require.Nil(t, rej)
	require.NotNil(t, promo)
	assert.Equal(t, "SUMMER20", promo.Code)
}

func TestValidatePromotionRejections(t *testing.T) {
	cases := []struct {
		code string
		want RejectionReason
	}{
		{"", RejectInvalid},
		{"NOPE", RejectInvalid},
		{"OFF", RejectInvalid},
		{"SOON", RejectNotActive},
		{"OLD", RejectExpired},
		{"USED", RejectUsageLimitReached},
		{"BIG", RejectMinimumAmount},
		{"ALLBAD", RejectNotActive},
	}
	for _, tc := range cases {
		t.Run(tc.code, func(t *testing.T) {
			promo, rej := ValidatePromotion(tc.code, promotions(), 4000, now)
			assert.Nil(t, promo)
			require.NotNil(t, rej)
			assert.Equal(t, tc.want, rej.Reason)
		})
	}
}

func TestMinimumAmountGateLeavesTotalsAlone(t *testing.T) {
	lines := []Line{{Category: CategoryOther, UnitPrice: 4000}}
	before := ComputeQuotationTotals(lines, nil, nil, 0, 10)

	promo, rej := ValidatePromotion("BIG", promotions(), before.BaseTotal, now)
	require.NotNil(t, rej)
	assert.Equal(t, RejectMinimumAmount, rej.Reason)
	assert.InDelta(t, 5000, rej.MinimumAmount, 0.001)
	assert.Contains(t, rej.Error(), "5000")

	after := ComputeQuotationTotals(lines, nil, promo, 0, 10)
	assert.Equal(t, before, after)
}

func TestMinimumAmountMetAtBoundary(t *testing.T) {
	promo, rej := ValidatePromotion("BIG", promotions(), 5000, now)
	assert.Nil(t, rej)
	assert.NotNil(t, promo)
}
