package response

import (
	"time"

	"fleet-dispatch/internal/data/entity"
	"fleet-dispatch/internal/pricing"
)

type VehicleSummary struct {
	Brand             string  `json:"brand"`
	Model             string  `json:"model"`
	ImageURL          *string `json:"image_url,omitempty"`
	PassengerCapacity int     `json:"passenger_capacity"`
	LuggageCapacity   int     `json:"luggage_capacity"`
}

type PriceCalculationResponse struct {
	BaseAmount               float64             `json:"base_amount"`
	TimeAdjustment           pricing.Adjustment  `json:"time_adjustment"`
	DiscountAmount           float64             `json:"discount_amount"`
	RegularDiscountAmount    float64             `json:"regular_discount_amount"`
	CouponDiscountAmount     float64             `json:"coupon_discount_amount"`
	CouponDiscountPercentage float64             `json:"coupon_discount_percentage"`
	CouponMessage            string              `json:"coupon_message,omitempty"`
	TaxPercentage            float64             `json:"tax_percentage"`
	TaxAmount                float64             `json:"tax_amount"`
	TotalAmount              float64             `json:"total_amount"`
	Currency                 string              `json:"currency"`
	DisplayCurrency          string              `json:"display_currency"`
	DisplayTotal             float64             `json:"display_total"`
	Formatted                string              `json:"formatted"`
	PriceSource              pricing.PriceSource `json:"price_source"`
	Category                 string              `json:"category"`
	Vehicle                  VehicleSummary      `json:"vehicle"`
}

type PromotionResponse struct {
	ID              string              `json:"id"`
	Code            string              `json:"code"`
	Name            string              `json:"name"`
	Description     *string             `json:"description,omitempty"`
	DiscountType    entity.DiscountType `json:"discount_type"`
	DiscountValue   float64             `json:"discount_value"`
	MaximumDiscount *float64            `json:"maximum_discount,omitempty"`
	MinimumAmount   *float64            `json:"minimum_amount,omitempty"`
	StartDate       *time.Time          `json:"start_date,omitempty"`
	EndDate         *time.Time          `json:"end_date,omitempty"`
	UsageLimit      *int                `json:"usage_limit,omitempty"`
	TimesUsed       int                 `json:"times_used"`
}

type PromotionValidationResponse struct {
	Valid     bool                    `json:"valid"`
	Reason    pricing.RejectionReason `json:"reason,omitempty"`
	Message   string                  `json:"message"`
	Discount  float64                 `json:"discount"`
	Formatted string                  `json:"formatted,omitempty"`
	Promotion *PromotionResponse      `json:"promotion,omitempty"`
}

type PackageItemResponse struct {
	Name        string  `json:"name"`
	VehicleType *string `json:"vehicle_type,omitempty"`
	Price       float64 `json:"price"`
	Quantity    int     `json:"quantity"`
}

type PackageResponse struct {
	ID          string                `json:"id"`
	Name        string                `json:"name"`
	Description *string               `json:"description,omitempty"`
	BasePrice   float64               `json:"base_price"`
	IsFeatured  bool                  `json:"is_featured"`
	Items       []PackageItemResponse `json:"items"`
}

type TimeRuleResponse struct {
	ID                   string   `json:"id"`
	Name                 string   `json:"name"`
	CategoryID           *string  `json:"category_id,omitempty"`
	ServiceTypeID        *string  `json:"service_type_id,omitempty"`
	DaysOfWeek           []string `json:"days_of_week"`
	StartTime            *string  `json:"start_time,omitempty"`
	EndTime              *string  `json:"end_time,omitempty"`
	AdjustmentPercentage float64  `json:"adjustment_percentage"`
	Priority             int      `json:"priority"`
}

func PromotionToResponse(p *entity.PricingPromotion) *PromotionResponse {
	if p == nil {
		return nil
	}
	return &PromotionResponse{
		ID:              p.ID.String(),
		Code:            p.Code,
		Name:            p.Name,
		Description:     p.Description,
		DiscountType:    p.DiscountType,
		DiscountValue:   p.DiscountValue,
		MaximumDiscount: p.MaximumDiscount,
		MinimumAmount:   p.MinimumAmount,
		StartDate:       p.StartDate,
		EndDate:         p.EndDate,
		UsageLimit:      p.UsageLimit,
		TimesUsed:       p.TimesUsed,
	}
}

func PackageToResponse(p *entity.PricingPackage) *PackageResponse {
	if p == nil {
		return nil
	}
	items := make([]PackageItemResponse, 0, len(p.Items))
	for _, it := range p.Items {
		items = append(items, PackageItemResponse{
			Name:        it.Name,
			VehicleType: it.VehicleType,
			Price:       it.Price,
			Quantity:    it.Quantity,
		})
	}
	return &PackageResponse{
		ID:          p.ID.String(),
		Name:        p.Name,
		Description: p.Description,
		BasePrice:   p.BasePrice,
		IsFeatured:  p.IsFeatured,
		Items:       items,
	}
}

func TimeRuleToResponse(r entity.TimeBasedRule) TimeRuleResponse {
	resp := TimeRuleResponse{
		ID:                   r.ID.String(),
		Name:                 r.Name,
		DaysOfWeek:           r.DaysOfWeek,
		StartTime:            r.StartTime,
		EndTime:              r.EndTime,
		AdjustmentPercentage: r.AdjustmentPercentage,
		Priority:             r.Priority,
	}
	if r.CategoryID != nil {
		resp.CategoryID = uuidString(r.CategoryID)
	}
	if r.ServiceTypeID != nil {
		resp.ServiceTypeID = uuidString(r.ServiceTypeID)
	}
	if resp.DaysOfWeek == nil {
		resp.DaysOfWeek = []string{}
	}
	return resp
}
