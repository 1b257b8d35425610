package request

import "fleet-dispatch/internal/data/entity"

type ListBookingsRequest struct {
	PaginatedRequest
	Status string `json:"status" validate:"omitempty,oneof=all pending confirmed assigned completed cancelled"`
	// Source "legacy" skips the local store and reads WordPress directly.
	Source string `json:"source" validate:"omitempty,oneof=local legacy"`
}

type CreateBookingRequest struct {
	CustomerEmail   string   `json:"customer_email" validate:"required,email"`
	CustomerName    *string  `json:"customer_name,omitempty" validate:"omitempty,max=200"`
	CustomerPhone   *string  `json:"customer_phone,omitempty" validate:"omitempty,max=30"`
	ServiceName     string   `json:"service_name" validate:"required"`
	ServiceTypeID   *string  `json:"service_type_id,omitempty" validate:"omitempty,uuid"`
	Date            string   `json:"date" validate:"required,isodate"`
	Time            string   `json:"time" validate:"required,clock"`
	VehicleID       *string  `json:"vehicle_id,omitempty" validate:"omitempty,uuid"`
	DriverID        *string  `json:"driver_id,omitempty" validate:"omitempty,uuid"`
	PickupLocation  *string  `json:"pickup_location,omitempty"`
	DropoffLocation *string  `json:"dropoff_location,omitempty"`
	DurationHours   *float64 `json:"duration_hours,omitempty" validate:"omitempty,gt=0"`
	HoursPerDay     *int     `json:"hours_per_day,omitempty" validate:"omitempty,min=1,max=24"`
	Distance        *string  `json:"distance,omitempty"`
	Notes           *string  `json:"notes,omitempty"`
	CouponCode      *string  `json:"coupon_code,omitempty"`
	// CalculatePrice prices the booking from the catalog instead of taking
	// PriceAmount as given.
	CalculatePrice bool                `json:"calculate_price"`
	PriceAmount    *float64            `json:"price_amount,omitempty" validate:"omitempty,gte=0"`
	PriceCurrency  *string             `json:"price_currency,omitempty" validate:"omitempty,len=3"`
	TeamLocation   entity.TeamLocation `json:"team_location,omitempty" validate:"omitempty,oneof=japan thailand"`
	entity.BillingAddress
}

// UpdateBookingRequest only touches the fields that are present.
type UpdateBookingRequest struct {
	ServiceName     *string  `json:"service_name,omitempty" validate:"omitempty,min=1"`
	ServiceTypeID   *string  `json:"service_type_id,omitempty" validate:"omitempty,uuid"`
	Date            *string  `json:"date,omitempty" validate:"omitempty,isodate"`
	Time            *string  `json:"time,omitempty" validate:"omitempty,clock"`
	Status          *string  `json:"status,omitempty" validate:"omitempty,oneof=pending confirmed assigned completed cancelled"`
	CustomerName    *string  `json:"customer_name,omitempty"`
	CustomerEmail   *string  `json:"customer_email,omitempty" validate:"omitempty,email"`
	CustomerPhone   *string  `json:"customer_phone,omitempty"`
	VehicleID       *string  `json:"vehicle_id,omitempty" validate:"omitempty,uuid"`
	PickupLocation  *string  `json:"pickup_location,omitempty"`
	DropoffLocation *string  `json:"dropoff_location,omitempty"`
	DurationHours   *float64 `json:"duration_hours,omitempty" validate:"omitempty,gt=0"`
	Distance        *string  `json:"distance,omitempty"`
	Notes           *string  `json:"notes,omitempty"`
	PriceAmount     *float64 `json:"price_amount,omitempty" validate:"omitempty,gte=0"`
	PriceCurrency   *string  `json:"price_currency,omitempty" validate:"omitempty,len=3"`
	PaymentStatus   *string  `json:"payment_status,omitempty"`
	PaymentMethod   *string  `json:"payment_method,omitempty"`
	PaymentLink     *string  `json:"payment_link,omitempty" validate:"omitempty,url"`
	CouponCode      *string  `json:"coupon_code,omitempty"`
	CouponDiscount  *float64 `json:"coupon_discount_percentage,omitempty" validate:"omitempty,gte=0,lte=100"`
	entity.BillingAddress
}

type RescheduleBookingRequest struct {
	Date string `json:"date" validate:"required,isodate"`
	Time string `json:"time" validate:"required,clock"`
}

type AssignBookingRequest struct {
	DriverID  string  `json:"driver_id" validate:"required,uuid"`
	VehicleID *string `json:"vehicle_id,omitempty" validate:"omitempty,uuid"`
}

// UnassignBookingRequest is checked by the service so a missing driver gets
// the same message as a missing booking.
type UnassignBookingRequest struct {
	DriverID string `json:"driver_id"`
}

type SyncBookingsRequest struct {
	Status string `json:"status" validate:"omitempty,oneof=all pending confirmed assigned completed cancelled"`
	Limit  int    `json:"limit" validate:"omitempty,min=1,max=1000"`
}

type DriverBookingsRequest struct {
	Limit    int    `json:"limit" validate:"omitempty,min=1,max=100"`
	Status   string `json:"status" validate:"omitempty,oneof=all pending confirmed assigned completed cancelled"`
	Upcoming bool   `json:"upcoming"`
}
