package entity

import (
	"time"

	"github.com/google/uuid"
)

type QuotationStatus string

const (
	QuotationStatusDraft     QuotationStatus = "draft"
	QuotationStatusSent      QuotationStatus = "sent"
	QuotationStatusApproved  QuotationStatus = "approved"
	QuotationStatusRejected  QuotationStatus = "rejected"
	QuotationStatusExpired   QuotationStatus = "expired"
	QuotationStatusConverted QuotationStatus = "converted"
	QuotationStatusPaid      QuotationStatus = "paid"
)

type TeamLocation string

const (
	TeamJapan    TeamLocation = "japan"
	TeamThailand TeamLocation = "thailand"
)

// Quotation stores package and promotion details as snapshots taken when the
// quotation was saved.
type Quotation struct {
	Base
	QuoteNumber   int64           `db:"quote_number"`
	Title         string          `db:"title"`
	Status        QuotationStatus `db:"status"`
	CustomerName  *string         `db:"customer_name"`
	CustomerEmail string          `db:"customer_email"`
	CustomerPhone *string         `db:"customer_phone"`
	BillingAddress
	ServiceTypeID   *uuid.UUID `db:"service_type_id"`
	VehicleCategory *string    `db:"vehicle_category"`
	VehicleType     *string    `db:"vehicle_type"`
	PickupDate      *time.Time `db:"pickup_date"`
	PickupTime      *string    `db:"pickup_time"`
	DurationHours   float64    `db:"duration_hours"`
	ServiceDays     int        `db:"service_days"`
	HoursPerDay     *float64   `db:"hours_per_day"`
	PassengerCount  *int       `db:"passenger_count"`
	MerchantNotes   *string    `db:"merchant_notes"`
	CustomerNotes   *string    `db:"customer_notes"`
	GeneralNotes    *string    `db:"general_notes"`

	Amount             float64 `db:"amount"`
	DiscountPercentage float64 `db:"discount_percentage"`
	TaxPercentage      float64 `db:"tax_percentage"`
	TotalAmount        float64 `db:"total_amount"`
	Currency           string  `db:"currency"`
	DisplayCurrency    string  `db:"display_currency"`

	SelectedPackageID          *uuid.UUID `db:"selected_package_id"`
	SelectedPackageName        *string    `db:"selected_package_name"`
	SelectedPackageDescription *string    `db:"selected_package_description"`
	SelectedPackagePrice       *float64   `db:"selected_package_price"`
	PackageDiscount            float64    `db:"package_discount"`

	SelectedPromotionID          *uuid.UUID `db:"selected_promotion_id"`
	SelectedPromotionName        *string    `db:"selected_promotion_name"`
	SelectedPromotionDescription *string    `db:"selected_promotion_description"`
	SelectedPromotionCode        *string    `db:"selected_promotion_code"`
	PromotionDiscount            float64    `db:"promotion_discount"`

	TeamLocation TeamLocation `db:"team_location"`
	ExpiryDate   time.Time    `db:"expiry_date"`
	MerchantID   *uuid.UUID   `db:"merchant_id"`
	SentAt       *time.Time   `db:"sent_at"`

	Items []QuotationItem `db:"-"`
}

type QuotationItem struct {
	ID                  uuid.UUID  `db:"id"`
	QuotationID         uuid.UUID  `db:"quotation_id"`
	Description         string     `db:"description"`
	ServiceTypeID       *uuid.UUID `db:"service_type_id"`
	ServiceTypeName     string     `db:"service_type_name"`
	ServiceCategory     string     `db:"service_category"`
	VehicleCategory     *string    `db:"vehicle_category"`
	VehicleType         *string    `db:"vehicle_type"`
	DurationHours       float64    `db:"duration_hours"`
	ServiceDays         int        `db:"service_days"`
	HoursPerDay         *float64   `db:"hours_per_day"`
	UnitPrice           float64    `db:"unit_price"`
	Quantity            int        `db:"quantity"`
	TotalPrice          float64    `db:"total_price"`
	PickupDate          *time.Time `db:"pickup_date"`
	PickupTime          *string    `db:"pickup_time"`
	TimeBasedAdjustment *float64   `db:"time_based_adjustment"`
	TimeBasedRuleName   *string    `db:"time_based_rule_name"`
	IsServiceItem       bool       `db:"is_service_item"`
	SortOrder           int        `db:"sort_order"`
	CreatedAt           time.Time  `db:"created_at"`
}

type QuotationFilter struct {
	Status string
	Search string
	Limit  int
	Offset int
}
