package request

import "fleet-dispatch/internal/data/entity"

type CalculatePriceRequest struct {
	ServiceTypeID      string              `json:"service_type_id" validate:"required,uuid"`
	VehicleID          string              `json:"vehicle_id" validate:"required,uuid"`
	DurationHours      int                 `json:"duration_hours" validate:"required,min=1"`
	ServiceDays        int                 `json:"service_days" validate:"omitempty,min=1"`
	HoursPerDay        int                 `json:"hours_per_day" validate:"omitempty,min=1,max=24"`
	DiscountPercentage float64             `json:"discount_percentage" validate:"gte=0,lte=100"`
	TaxPercentage      *float64            `json:"tax_percentage,omitempty" validate:"omitempty,gte=0,lte=100"`
	CouponCode         string              `json:"coupon_code"`
	PickupDate         string              `json:"pickup_date" validate:"omitempty,isodate"`
	PickupTime         string              `json:"pickup_time" validate:"omitempty,clock"`
	TeamLocation       entity.TeamLocation `json:"team_location" validate:"omitempty,oneof=japan thailand"`
	Currency           string              `json:"currency" validate:"omitempty,len=3"`
	Language           string              `json:"language" validate:"omitempty,oneof=en ja"`
}

type ValidatePromotionRequest struct {
	Code      string  `json:"code" validate:"required"`
	BaseTotal float64 `json:"base_total" validate:"gte=0"`
	Currency  string  `json:"currency" validate:"omitempty,len=3"`
	Language  string  `json:"language" validate:"omitempty,oneof=en ja"`
}

type EvaluateTimeRuleRequest struct {
	PickupDate    string  `json:"pickup_date" validate:"required,isodate"`
	PickupTime    string  `json:"pickup_time" validate:"required,clock"`
	CategoryID    *string `json:"category_id,omitempty" validate:"omitempty,uuid"`
	ServiceTypeID *string `json:"service_type_id,omitempty" validate:"omitempty,uuid"`
}
