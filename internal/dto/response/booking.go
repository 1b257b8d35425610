package response

import (
	"time"

	"fleet-dispatch/internal/data/entity"
	"fleet-dispatch/internal/legacy"
)

type BookingResponse struct {
	ID              string               `json:"id"`
	WPID            *string              `json:"wp_id,omitempty"`
	BookingNumber   *string              `json:"booking_number,omitempty"`
	Reference       string               `json:"reference"`
	ServiceName     string               `json:"service_name"`
	ServiceType     *string              `json:"service_type,omitempty"`
	ServiceTypeID   *string              `json:"service_type_id,omitempty"`
	Date            string               `json:"date"`
	Time            string               `json:"time"`
	Status          entity.BookingStatus `json:"status"`
	CustomerName    *string              `json:"customer_name,omitempty"`
	CustomerEmail   *string              `json:"customer_email,omitempty"`
	CustomerPhone   *string              `json:"customer_phone,omitempty"`
	PickupLocation  *string              `json:"pickup_location,omitempty"`
	DropoffLocation *string              `json:"dropoff_location,omitempty"`
	DurationHours   *float64             `json:"duration_hours,omitempty"`
	Distance        *string              `json:"distance,omitempty"`
	Notes           *string              `json:"notes,omitempty"`
	VehicleID       *string              `json:"vehicle_id,omitempty"`
	VehicleName     *string              `json:"vehicle_name,omitempty"`
	DriverID        *string              `json:"driver_id,omitempty"`
	Price           *PriceResponse       `json:"price,omitempty"`
	PaymentStatus   *string              `json:"payment_status,omitempty"`
	PaymentMethod   *string              `json:"payment_method,omitempty"`
	PaymentLink     *string              `json:"payment_link,omitempty"`
	CouponCode      *string              `json:"coupon_code,omitempty"`
	CouponDiscount  *float64             `json:"coupon_discount_percentage,omitempty"`
	entity.BillingAddress
	Meta      map[string]any `json:"meta,omitempty"`
	SyncedAt  *time.Time     `json:"synced_at,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

type PriceResponse struct {
	Amount    float64 `json:"amount"`
	Currency  string  `json:"currency"`
	Formatted string  `json:"formatted"`
}

// BookingListResponse reports where the page came from. Attempts is only
// filled when the legacy site was queried.
type BookingListResponse struct {
	PaginatedResponse[BookingResponse]
	Source   string           `json:"source"`
	Endpoint string           `json:"endpoint,omitempty"`
	Attempts []legacy.Attempt `json:"attempts,omitempty"`
}

type SyncErrorResponse struct {
	WPID  string `json:"wp_id"`
	Error string `json:"error"`
}

type SyncResponse struct {
	Total   int                 `json:"total"`
	Created int                 `json:"created"`
	Updated int                 `json:"updated"`
	Errors  []SyncErrorResponse `json:"errors,omitempty"`
}

func uuidString(id interface{ String() string }) *string {
	s := id.String()
	return &s
}

func BookingToResponse(b *entity.Booking) BookingResponse {
	resp := BookingResponse{
		ID:              b.ID.String(),
		WPID:            b.WPID,
		BookingNumber:   b.BookingNumber,
		Reference:       b.Reference(),
		ServiceName:     b.ServiceName,
		ServiceType:     b.ServiceType,
		Date:            b.Date.Format(time.DateOnly),
		Time:            b.Time,
		Status:          b.Status,
		CustomerName:    b.CustomerName,
		CustomerEmail:   b.CustomerEmail,
		CustomerPhone:   b.CustomerPhone,
		PickupLocation:  b.PickupLocation,
		DropoffLocation: b.DropoffLocation,
		DurationHours:   b.DurationHours,
		Distance:        b.Distance,
		Notes:           b.Notes,
		VehicleName:     b.VehicleName,
		PaymentStatus:   b.PaymentStatus,
		PaymentMethod:   b.PaymentMethod,
		PaymentLink:     b.PaymentLink,
		CouponCode:      b.CouponCode,
		CouponDiscount:  b.CouponDiscount,
		BillingAddress:  b.BillingAddress,
		Meta:            b.Meta,
		SyncedAt:        b.SyncedAt,
		CreatedAt:       b.CreatedAt,
		UpdatedAt:       b.UpdatedAt,
	}
	if b.ServiceTypeID != nil {
		resp.ServiceTypeID = uuidString(b.ServiceTypeID)
	}
	if b.VehicleID != nil {
		resp.VehicleID = uuidString(b.VehicleID)
	}
	if b.DriverID != nil {
		resp.DriverID = uuidString(b.DriverID)
	}
	if b.PriceAmount != nil {
		price := &PriceResponse{Amount: *b.PriceAmount}
		if b.PriceCurrency != nil {
			price.Currency = *b.PriceCurrency
		}
		if b.PriceFormatted != nil {
			price.Formatted = *b.PriceFormatted
		}
		resp.Price = price
	}
	return resp
}

func BookingsToResponse(bookings []*entity.Booking) []BookingResponse {
	out := make([]BookingResponse, 0, len(bookings))
	for _, b := range bookings {
		out = append(out, BookingToResponse(b))
	}
	return out
}

type DriverSummary struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Email string  `json:"email"`
	Phone *string `json:"phone,omitempty"`
}

// BookingDetailResponse adds the assigned driver and vehicle. Source is
// "legacy" when the booking was read from WordPress and not stored locally.
type BookingDetailResponse struct {
	BookingResponse
	Vehicle *VehicleSummary `json:"vehicle,omitempty"`
	Driver  *DriverSummary  `json:"driver,omitempty"`
	Source  string          `json:"source"`
}

func DriverToSummary(d *entity.Driver) *DriverSummary {
	if d == nil {
		return nil
	}
	return &DriverSummary{
		ID:    d.ID.String(),
		Name:  d.FullName(),
		Email: d.Email,
		Phone: d.Phone,
	}
}

func VehicleToSummary(v *entity.Vehicle) *VehicleSummary {
	if v == nil {
		return nil
	}
	return &VehicleSummary{
		Brand:             v.Brand,
		Model:             v.Model,
		ImageURL:          v.ImageURL,
		PassengerCapacity: v.PassengerCapacity,
		LuggageCapacity:   v.LuggageCapacity,
	}
}
