package usecase

import (
	"context"
	"testing"
	"time"

	"fleet-dispatch/internal/data/entity"
	"fleet-dispatch/internal/dto/request"
	"fleet-dispatch/internal/pricing"
	"fleet-dispatch/pkg/apperr"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pricingFixture struct {
	svc         *pricingService
	m           *mocks
	serviceType *entity.ServiceType
	vehicle     *entity.Vehicle
}

func newPricingFixture(rates pricing.Rates) *pricingFixture {
	repo, m := newMocks()
	svc := NewPricingService(repo, staticRates(rates), testConfig().Pricing, nopLog).(*pricingService)
	svc.now = fixedNow

	st := m.serviceTypes.add("Airport Transfer", "transfer")
	vehicle := &entity.Vehicle{Base: entity.Base{ID: uuid.New()}, Brand: "Toyota", Model: "Alphard", PassengerCapacity: 6}
	m.vehicles.vehicles[vehicle.ID] = vehicle

	return &pricingFixture{svc: svc, m: m, serviceType: st, vehicle: vehicle}
}

func (f *pricingFixture) request() *request.CalculatePriceRequest {
	return &request.CalculatePriceRequest{
		ServiceTypeID: f.serviceType.ID.String(),
		VehicleID:     f.vehicle.ID.String(),
		DurationHours: 1,
	}
}

func TestCalculatePriceFallback(t *testing.T) {
	f := newPricingFixture(nil)

	resp, err := f.svc.CalculatePrice(context.Background(), f.request())
	require.NoError(t, err)

	assert.Equal(t, pricing.SourceFallback, resp.PriceSource)
	assert.InDelta(t, 32000, resp.BaseAmount, 0.001)
	assert.InDelta(t, 10, resp.TaxPercentage, 0.001)
	assert.InDelta(t, 35200, resp.TotalAmount, 0.001)
	assert.Equal(t, "JPY", resp.DisplayCurrency)
	assert.Equal(t, "¥35,200", resp.Formatted)
	assert.Equal(t, "Standard", resp.Category)
	assert.Equal(t, 6, resp.Vehicle.PassengerCapacity)
}

func TestCalculatePriceExactMatch(t *testing.T) {
	f := newPricingFixture(nil)
	f.m.pricing.items = []entity.PricingItem{
		{ID: uuid.New(), ServiceTypeID: f.serviceType.ID, VehicleID: &f.vehicle.ID, DurationHours: 3, Price: 45000, Currency: "JPY", IsActive: true},
		{ID: uuid.New(), ServiceTypeID: f.serviceType.ID, VehicleID: &f.vehicle.ID, DurationHours: 1, Price: 12000, Currency: "JPY", IsActive: true},
	}
	zero := 0.0

	req := f.request()
	req.DurationHours = 3
	req.TaxPercentage = &zero
	resp, err := f.svc.CalculatePrice(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, pricing.SourceExact, resp.PriceSource)
	assert.InDelta(t, 45000, resp.TotalAmount, 0.001)
}

func TestCalculatePriceCoupon(t *testing.T) {
	f := newPricingFixture(nil)
	minimum := 50000.0
	f.m.pricing.promotions = []entity.PricingPromotion{
		{ID: uuid.New(), Code: "SPRING", Name: "Spring", DiscountType: entity.DiscountTypePercentage, DiscountValue: 10, IsActive: true},
		{ID: uuid.New(), Code: "BIG", Name: "Big spender", DiscountType: entity.DiscountTypeFixed, DiscountValue: 5000, MinimumAmount: &minimum, IsActive: true},
	}

	t.Run("applied", func(t *testing.T) {
		req := f.request()
		req.CouponCode = "spring"
		resp, err := f.svc.CalculatePrice(context.Background(), req)
		require.NoError(t, err)

		assert.Equal(t, "Promotion Spring applied", resp.CouponMessage)
		assert.InDelta(t, 10, resp.CouponDiscountPercentage, 0.001)
		assert.InDelta(t, 3200, resp.CouponDiscountAmount, 0.001)
		assert.InDelta(t, 31680, resp.TotalAmount, 0.001)
	})

	t.Run("below minimum", func(t *testing.T) {
		req := f.request()
		req.CouponCode = "BIG"
		resp, err := f.svc.CalculatePrice(context.Background(), req)
		require.NoError(t, err)

		assert.Equal(t, "Minimum amount required: ¥50,000", resp.CouponMessage)
		assert.Zero(t, resp.CouponDiscountAmount)
		assert.InDelta(t, 35200, resp.TotalAmount, 0.001)
	})
}

func TestCalculatePriceTeamTaxAndDisplayCurrency(t *testing.T) {
	f := newPricingFixture(pricing.Rates{"JPY": 1, "USD": 0.01})

	req := f.request()
	req.TeamLocation = entity.TeamThailand
	req.Currency = "usd"
	resp, err := f.svc.CalculatePrice(context.Background(), req)
	require.NoError(t, err)

	assert.InDelta(t, 7, resp.TaxPercentage, 0.001)
	assert.InDelta(t, 34240, resp.TotalAmount, 0.001)
	assert.Equal(t, "USD", resp.DisplayCurrency)
	assert.InDelta(t, 342.4, resp.DisplayTotal, 0.001)
	assert.Equal(t, "$342", resp.Formatted)

	req.Currency = "XYZ"
	_, err = f.svc.CalculatePrice(context.Background(), req)
	assert.True(t, apperr.Is(err, apperr.KindBadRequest))
}

func TestCalculatePriceTimeRule(t *testing.T) {
	f := newPricingFixture(nil)
	f.m.pricing.rules = []entity.TimeBasedRule{
		{ID: uuid.New(), Name: "Weekend", DaysOfWeek: []string{"saturday"}, AdjustmentPercentage: 20, Priority: 1, IsActive: true},
	}

	req := f.request()
	req.PickupDate = "2026-03-14"
	req.PickupTime = "09:00"
	resp, err := f.svc.CalculatePrice(context.Background(), req)
	require.NoError(t, err)

	require.NotNil(t, resp.TimeAdjustment.RuleName)
	assert.Equal(t, "Weekend", *resp.TimeAdjustment.RuleName)
	assert.InDelta(t, 38400, resp.BaseAmount, 0.001)
	assert.InDelta(t, 42240, resp.TotalAmount, 0.001)
}

func TestCalculatePriceUnknownVehicle(t *testing.T) {
	f := newPricingFixture(nil)
	req := f.request()
	req.VehicleID = uuid.NewString()

	_, err := f.svc.CalculatePrice(context.Background(), req)
	require.Error(t, err)
	assert.Equal(t, "Vehicle not found", apperr.Message(err))
}

func TestValidatePromotion(t *testing.T) {
	f := newPricingFixture(nil)
	ended := fixedNow().Add(-time.Hour)
	f.m.pricing.promotions = []entity.PricingPromotion{
		{ID: uuid.New(), Code: "FLAT", Name: "Flat", DiscountType: entity.DiscountTypeFixed, DiscountValue: 5000, IsActive: true},
		{ID: uuid.New(), Code: "OLD", Name: "Old", DiscountType: entity.DiscountTypeFixed, DiscountValue: 5000, EndDate: &ended, IsActive: true},
	}

	resp, err := f.svc.ValidatePromotion(context.Background(), &request.ValidatePromotionRequest{Code: "flat", BaseTotal: 20000})
	require.NoError(t, err)
	assert.True(t, resp.Valid)
	assert.InDelta(t, 5000, resp.Discount, 0.001)
	assert.Equal(t, "¥5,000", resp.Formatted)
	require.NotNil(t, resp.Promotion)
	assert.Equal(t, "FLAT", resp.Promotion.Code)

	resp, err = f.svc.ValidatePromotion(context.Background(), &request.ValidatePromotionRequest{Code: "OLD", BaseTotal: 20000})
	require.NoError(t, err)
	assert.False(t, resp.Valid)
	assert.Equal(t, pricing.RejectExpired, resp.Reason)
	assert.Equal(t, "This promotion has expired", resp.Message)

	resp, err = f.svc.ValidatePromotion(context.Background(), &request.ValidatePromotionRequest{Code: "NOPE", BaseTotal: 20000})
	require.NoError(t, err)
	assert.Equal(t, pricing.RejectInvalid, resp.Reason)
	assert.Equal(t, "Invalid promotion code", resp.Message)
}

func TestEvaluateTimeRule(t *testing.T) {
	f := newPricingFixture(nil)
	start, end := "22:00", "05:00"
	f.m.pricing.rules = []entity.TimeBasedRule{
		{ID: uuid.New(), Name: "Night", StartTime: &start, EndTime: &end, AdjustmentPercentage: 25, Priority: 2, IsActive: true},
	}

	adj, err := f.svc.EvaluateTimeRule(context.Background(), &request.EvaluateTimeRuleRequest{PickupDate: "2026-03-11", PickupTime: "23:30"})
	require.NoError(t, err)
	assert.InDelta(t, 25, adj.Percentage, 0.001)

	adj, err = f.svc.EvaluateTimeRule(context.Background(), &request.EvaluateTimeRuleRequest{PickupDate: "2026-03-11", PickupTime: "12:00"})
	require.NoError(t, err)
	assert.Nil(t, adj.RuleID)
}

func TestPricingCatalogLists(t *testing.T) {
	f := newPricingFixture(nil)
	pkg := &entity.PricingPackage{ID: uuid.New(), Name: "Tokyo day", BasePrice: 90000, IsActive: true}
	f.m.pricing.packages[pkg.ID] = pkg
	f.m.pricing.promotions = []entity.PricingPromotion{{ID: uuid.New(), Code: "A", IsActive: true}}

	packages, err := f.svc.ListPackages(context.Background())
	require.NoError(t, err)
	require.Len(t, packages, 1)
	assert.Equal(t, "Tokyo day", packages[0].Name)

	promotions, err := f.svc.ListPromotions(context.Background())
	require.NoError(t, err)
	assert.Len(t, promotions, 1)

	rules, err := f.svc.ListTimeRules(context.Background())
	require.NoError(t, err)
	assert.Empty(t, rules)
}
