package usecase

import (
	"context"
	"time"

	"fleet-dispatch/internal/data/entity"
	"fleet-dispatch/internal/data/repository"
	"fleet-dispatch/internal/dto/request"
	"fleet-dispatch/internal/dto/response"
	"fleet-dispatch/internal/i18n"
	"fleet-dispatch/internal/pricing"
	"fleet-dispatch/pkg/apperr"
	"fleet-dispatch/pkg/utils"

	"go.uber.org/zap"
)

type PricingService interface {
	CalculatePrice(ctx context.Context, req *request.CalculatePriceRequest) (*response.PriceCalculationResponse, error)
	ValidatePromotion(ctx context.Context, req *request.ValidatePromotionRequest) (*response.PromotionValidationResponse, error)
	EvaluateTimeRule(ctx context.Context, req *request.EvaluateTimeRuleRequest) (*pricing.Adjustment, error)
	ListPackages(ctx context.Context) ([]*response.PackageResponse, error)
	ListPromotions(ctx context.Context) ([]*response.PromotionResponse, error)
	ListTimeRules(ctx context.Context) ([]response.TimeRuleResponse, error)
}

type pricingService struct {
	repo   *repository.Repository
	rates  RateProvider
	config utils.PricingConfig
	now    func() time.Time
	log    *zap.Logger
}

func NewPricingService(repo *repository.Repository, rates RateProvider, config utils.PricingConfig, log *zap.Logger) PricingService {
	return &pricingService{
		repo:   repo,
		rates:  rates,
		config: config,
		now:    time.Now,
		log:    log.With(zap.String("service", "pricing")),
	}
}

func (s *pricingService) CalculatePrice(ctx context.Context, req *request.CalculatePriceRequest) (*response.PriceCalculationResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Calculate price validation failed", zap.Any("errors", errs))
		return nil, validationError(errs)
	}

	serviceTypeID, err := parseID(req.ServiceTypeID, "service_type_id")
	if err != nil {
		return nil, err
	}
	vehicleID, err := parseID(req.VehicleID, "vehicle_id")
	if err != nil {
		return nil, err
	}

	serviceType, err := s.repo.ServiceType.FindByID(ctx, serviceTypeID)
	if err != nil {
		return nil, apperr.Internal(err, "failed to load service type")
	}
	if serviceType == nil {
		return nil, apperr.NotFound("Service type not found")
	}

	vehicle, err := s.repo.Vehicle.FindByID(ctx, vehicleID)
	if err != nil {
		return nil, apperr.Internal(err, "failed to load vehicle")
	}
	if vehicle == nil {
		return nil, apperr.NotFound("Vehicle not found")
	}

	categoryName := "Standard"
	if vehicle.CategoryID != nil {
		category, err := s.repo.Vehicle.FindCategoryByID(ctx, *vehicle.CategoryID)
		if err != nil {
			return nil, apperr.Internal(err, "failed to load vehicle category")
		}
		if category != nil && category.Name != "" {
			categoryName = category.Name
		}
	}

	items, err := s.repo.Pricing.FindItems(ctx, serviceTypeID)
	if err != nil {
		return nil, apperr.Internal(err, "failed to load pricing items")
	}

	category := pricing.Resolve(serviceType.Category, serviceType.Name)
	base := pricing.ResolveBasePrice(items, pricing.PriceQuery{
		ServiceTypeID: serviceTypeID,
		Category:      category,
		VehicleID:     &vehicleID,
		CategoryID:    vehicle.CategoryID,
		DurationHours: req.DurationHours,
		HoursPerDay:   req.HoursPerDay,
	}, s.config.FallbackBasePrice)

	var adjustment pricing.Adjustment
	if req.PickupDate != "" {
		date, _ := time.Parse(time.DateOnly, req.PickupDate)
		rules, err := s.repo.Pricing.FindTimeRules(ctx)
		if err != nil {
			return nil, apperr.Internal(err, "failed to load time based rules")
		}
		adjustment = pricing.EvaluateTimeRules(rules, pricing.Pickup{
			Date:          date,
			Time:          req.PickupTime,
			CategoryID:    vehicle.CategoryID,
			ServiceTypeID: &serviceTypeID,
		})
	}

	serviceDays := req.ServiceDays
	if serviceDays < 1 {
		serviceDays = 1
	}
	line := pricing.Line{
		Category:       category,
		UnitPrice:      base.Amount,
		Quantity:       1,
		ServiceDays:    serviceDays,
		TimeAdjustment: adjustment.Percentage,
	}

	locale := localeOf(ctx, req.Language)
	resp := &response.PriceCalculationResponse{
		TimeAdjustment: adjustment,
		Currency:       base.Currency,
		PriceSource:    base.Source,
		Category:       categoryName,
		Vehicle: response.VehicleSummary{
			Brand:             vehicle.Brand,
			Model:             vehicle.Model,
			ImageURL:          vehicle.ImageURL,
			PassengerCapacity: vehicle.PassengerCapacity,
			LuggageCapacity:   vehicle.LuggageCapacity,
		},
	}

	var promo *entity.PricingPromotion
	if req.CouponCode != "" {
		promotions, err := s.repo.Pricing.FindPromotionsByCode(ctx, req.CouponCode)
		if err != nil {
			return nil, apperr.Internal(err, "failed to load promotions")
		}
		var rejection *pricing.Rejection
		promo, rejection = pricing.ValidatePromotion(req.CouponCode, promotions, line.Total(), s.now())
		if rejection != nil {
			resp.CouponMessage = promotionMessage(locale, rejection, base.Currency)
		} else {
			resp.CouponMessage = i18n.T(locale, "quotations.form.promotions.applied", i18n.Params{"name": promo.Name})
			if promo.DiscountType == entity.DiscountTypePercentage {
				resp.CouponDiscountPercentage = promo.DiscountValue
			}
		}
	}

	taxPct := s.defaultTax(req.TeamLocation)
	if req.TaxPercentage != nil {
		taxPct = *req.TaxPercentage
	}

	totals := pricing.ComputeQuotationTotals([]pricing.Line{line}, nil, promo, req.DiscountPercentage, taxPct)
	resp.BaseAmount = totals.BaseTotal
	resp.RegularDiscountAmount = totals.RegularDiscount
	resp.CouponDiscountAmount = totals.PromotionDiscount
	resp.DiscountAmount = totals.TotalDiscount
	resp.TaxPercentage = taxPct
	resp.TaxAmount = totals.TaxAmount
	resp.TotalAmount = totals.FinalTotal

	resp.DisplayCurrency = base.Currency
	resp.DisplayTotal = totals.FinalTotal
	if req.Currency != "" {
		display, err := pricing.NormalizeCurrency(req.Currency)
		if err != nil {
			return nil, apperr.BadRequest("%s", err.Error())
		}
		resp.DisplayCurrency = display
		resp.DisplayTotal = s.rates.Rates(ctx).Convert(totals.FinalTotal, base.Currency, display)
	}
	resp.Formatted = pricing.FormatAmount(resp.DisplayTotal, resp.DisplayCurrency)

	s.log.Debug("Price calculated",
		zap.String("service_type_id", serviceTypeID.String()),
		zap.String("vehicle_id", vehicleID.String()),
		zap.String("source", string(base.Source)),
		zap.Float64("total", totals.FinalTotal),
	)

	return resp, nil
}

func (s *pricingService) ValidatePromotion(ctx context.Context, req *request.ValidatePromotionRequest) (*response.PromotionValidationResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, validationError(errs)
	}

	currency := pricing.BaseCurrency
	if req.Currency != "" {
		c, err := pricing.NormalizeCurrency(req.Currency)
		if err != nil {
			return nil, apperr.BadRequest("%s", err.Error())
		}
		currency = c
	}

	promotions, err := s.repo.Pricing.FindPromotionsByCode(ctx, req.Code)
	if err != nil {
		return nil, apperr.Internal(err, "failed to load promotions")
	}

	locale := localeOf(ctx, req.Language)
	promo, rejection := pricing.ValidatePromotion(req.Code, promotions, req.BaseTotal, s.now())
	if rejection != nil {
		return &response.PromotionValidationResponse{
			Valid:   false,
			Reason:  rejection.Reason,
			Message: promotionMessage(locale, rejection, currency),
		}, nil
	}

	discount := pricing.PromotionDiscount(promo, req.BaseTotal)
	return &response.PromotionValidationResponse{
		Valid:     true,
		Message:   i18n.T(locale, "quotations.form.promotions.applied", i18n.Params{"name": promo.Name}),
		Discount:  discount,
		Formatted: pricing.FormatAmount(discount, currency),
		Promotion: response.PromotionToResponse(promo),
	}, nil
}

func (s *pricingService) EvaluateTimeRule(ctx context.Context, req *request.EvaluateTimeRuleRequest) (*pricing.Adjustment, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, validationError(errs)
	}

	date, _ := time.Parse(time.DateOnly, req.PickupDate)
	categoryID, err := parseOptionalID(req.CategoryID, "category_id")
	if err != nil {
		return nil, err
	}
	serviceTypeID, err := parseOptionalID(req.ServiceTypeID, "service_type_id")
	if err != nil {
		return nil, err
	}

	rules, err := s.repo.Pricing.FindTimeRules(ctx)
	if err != nil {
		return nil, apperr.Internal(err, "failed to load time based rules")
	}

	adjustment := pricing.EvaluateTimeRules(rules, pricing.Pickup{
		Date:          date,
		Time:          req.PickupTime,
		CategoryID:    categoryID,
		ServiceTypeID: serviceTypeID,
	})
	return &adjustment, nil
}

func (s *pricingService) ListPackages(ctx context.Context) ([]*response.PackageResponse, error) {
	packages, err := s.repo.Pricing.FindPackages(ctx)
	if err != nil {
		return nil, apperr.Internal(err, "failed to load packages")
	}

	out := make([]*response.PackageResponse, 0, len(packages))
	for i := range packages {
		out = append(out, response.PackageToResponse(&packages[i]))
	}
	return out, nil
}

func (s *pricingService) ListPromotions(ctx context.Context) ([]*response.PromotionResponse, error) {
	promotions, err := s.repo.Pricing.FindPromotions(ctx)
	if err != nil {
		return nil, apperr.Internal(err, "failed to load promotions")
	}

	out := make([]*response.PromotionResponse, 0, len(promotions))
	for i := range promotions {
		out = append(out, response.PromotionToResponse(&promotions[i]))
	}
	return out, nil
}

func (s *pricingService) ListTimeRules(ctx context.Context) ([]response.TimeRuleResponse, error) {
	rules, err := s.repo.Pricing.FindTimeRules(ctx)
	if err != nil {
		return nil, apperr.Internal(err, "failed to load time based rules")
	}

	out := make([]response.TimeRuleResponse, 0, len(rules))
	for _, r := range rules {
		out = append(out, response.TimeRuleToResponse(r))
	}
	return out, nil
}

func (s *pricingService) defaultTax(team entity.TeamLocation) float64 {
	return defaultTax(s.config, team)
}

// defaultTax prefers the configured rate and falls back to the statutory one.
func defaultTax(config utils.PricingConfig, team entity.TeamLocation) float64 {
	switch {
	case team == entity.TeamThailand && config.TaxThailand > 0:
		return config.TaxThailand
	case team != entity.TeamThailand && config.TaxJapan > 0:
		return config.TaxJapan
	default:
		return pricing.DefaultTaxPercentage(team)
	}
}

func promotionMessage(locale string, rejection *pricing.Rejection, currency string) string {
	params := i18n.Params{}
	if rejection.Reason == pricing.RejectMinimumAmount {
		params["amount"] = pricing.FormatAmount(rejection.MinimumAmount, currency)
	}
	return i18n.T(locale, "quotations.form.promotions."+string(rejection.Reason), params)
}
