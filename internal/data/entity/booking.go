package entity

import (
	"time"

	"github.com/google/uuid"
)

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusAssigned  BookingStatus = "assigned"
	BookingStatusCompleted BookingStatus = "completed"
	BookingStatusCancelled BookingStatus = "cancelled"
)

// Booking is a customer trip. WPID is the key the WordPress site uses and is
// distinct from ID.
type Booking struct {
	Base
	WPID            *string       `db:"wp_id"`
	BookingNumber   *string       `db:"booking_number"`
	CustomerID      *uuid.UUID    `db:"customer_id"`
	VehicleID       *uuid.UUID    `db:"vehicle_id"`
	DriverID        *uuid.UUID    `db:"driver_id"`
	ServiceName     string        `db:"service_name"`
	ServiceTypeID   *uuid.UUID    `db:"service_type_id"`
	ServiceType     *string       `db:"service_type"`
	Date            time.Time     `db:"date"`
	Time            string        `db:"time"`
	Status          BookingStatus `db:"status"`
	CustomerName    *string       `db:"customer_name"`
	CustomerEmail   *string       `db:"customer_email"`
	CustomerPhone   *string       `db:"customer_phone"`
	PickupLocation  *string       `db:"pickup_location"`
	DropoffLocation *string       `db:"dropoff_location"`
	DurationHours   *float64      `db:"duration_hours"`
	Distance        *string       `db:"distance"`
	Notes           *string       `db:"notes"`
	VehicleName     *string       `db:"vehicle_name"`
	PriceAmount     *float64      `db:"price_amount"`
	PriceCurrency   *string       `db:"price_currency"`
	PriceFormatted  *string       `db:"price_formatted"`
	PaymentStatus   *string       `db:"payment_status"`
	PaymentMethod   *string       `db:"payment_method"`
	PaymentLink     *string       `db:"payment_link"`
	CouponCode      *string       `db:"coupon_code"`
	CouponDiscount  *float64      `db:"coupon_discount_percentage"`
	BillingAddress
	Meta      map[string]any `db:"meta"`
	CreatedBy *uuid.UUID     `db:"created_by"`
	SyncedAt  *time.Time     `db:"synced_at"`
}

// Reference is the identifier shown to operators.
func (b *Booking) Reference() string {
	switch {
	case b.BookingNumber != nil && *b.BookingNumber != "":
		return *b.BookingNumber
	case b.WPID != nil && *b.WPID != "":
		return "BOOK-" + *b.WPID
	default:
		return b.ID.String()
	}
}

// BookingFilter narrows list queries. Zero values mean no filter.
type BookingFilter struct {
	Status   string
	DriverID *uuid.UUID
	FromDate *time.Time
	Limit    int
	Offset   int
}
