package request

import "fleet-dispatch/internal/data/entity"

type QuotationItemRequest struct {
	Description     string   `json:"description" validate:"required"`
	ServiceTypeID   *string  `json:"service_type_id,omitempty" validate:"omitempty,uuid"`
	ServiceTypeName string   `json:"service_type_name"`
	VehicleCategory *string  `json:"vehicle_category,omitempty"`
	// CategoryID scopes time-based rules; it is not stored on the item.
	CategoryID    *string  `json:"category_id,omitempty" validate:"omitempty,uuid"`
	VehicleType   *string  `json:"vehicle_type,omitempty"`
	DurationHours float64  `json:"duration_hours" validate:"gte=0"`
	ServiceDays   int      `json:"service_days" validate:"gte=0"`
	HoursPerDay   *float64 `json:"hours_per_day,omitempty" validate:"omitempty,gt=0,lte=24"`
	UnitPrice     float64  `json:"unit_price" validate:"gte=0"`
	Quantity      int      `json:"quantity" validate:"gte=0"`
	PickupDate    *string  `json:"pickup_date,omitempty" validate:"omitempty,isodate"`
	PickupTime    *string  `json:"pickup_time,omitempty" validate:"omitempty,clock"`
	// IsServiceItem defaults to true; package marker lines send false.
	IsServiceItem *bool `json:"is_service_item,omitempty"`
}

// SaveQuotationRequest is used by create, update and preview. Totals sent by
// the client are ignored and recomputed.
type SaveQuotationRequest struct {
	Title           string  `json:"title" validate:"max=255"`
	CustomerEmail   string  `json:"customer_email" validate:"required,email"`
	CustomerName    *string `json:"customer_name,omitempty"`
	CustomerPhone   *string `json:"customer_phone,omitempty"`
	ServiceTypeID   *string `json:"service_type_id,omitempty" validate:"omitempty,uuid"`
	VehicleCategory *string `json:"vehicle_category,omitempty"`
	VehicleType     *string `json:"vehicle_type,omitempty"`
	PickupDate      *string `json:"pickup_date,omitempty" validate:"omitempty,isodate"`
	PickupTime      *string `json:"pickup_time,omitempty" validate:"omitempty,clock"`

	DurationHours  float64  `json:"duration_hours" validate:"gte=0"`
	ServiceDays    int      `json:"service_days" validate:"gte=0"`
	HoursPerDay    *float64 `json:"hours_per_day,omitempty" validate:"omitempty,gt=0,lte=24"`
	PassengerCount *int     `json:"passenger_count,omitempty" validate:"omitempty,min=0"`

	MerchantNotes *string `json:"merchant_notes,omitempty"`
	CustomerNotes *string `json:"customer_notes,omitempty"`
	GeneralNotes  *string `json:"general_notes,omitempty"`

	DiscountPercentage float64  `json:"discount_percentage" validate:"gte=0,lte=100"`
	TaxPercentage      *float64 `json:"tax_percentage,omitempty" validate:"omitempty,gte=0,lte=100"`
	Currency           string   `json:"currency" validate:"omitempty,len=3"`
	DisplayCurrency    string   `json:"display_currency" validate:"omitempty,len=3"`

	TeamLocation      entity.TeamLocation `json:"team_location" validate:"omitempty,oneof=japan thailand"`
	SelectedPackageID *string             `json:"selected_package_id,omitempty" validate:"omitempty,uuid"`
	PromotionCode     *string             `json:"promotion_code,omitempty"`

	Items []QuotationItemRequest `json:"items" validate:"dive"`

	// Send marks the quotation sent and emails it after saving.
	Send      bool   `json:"send"`
	Language  string `json:"language" validate:"omitempty,oneof=en ja"`
	BCCEmails string `json:"bcc_emails"`

	entity.BillingAddress
}

type SendQuotationRequest struct {
	Email     string `json:"email" validate:"required,email"`
	Language  string `json:"language" validate:"omitempty,oneof=en ja"`
	BCCEmails string `json:"bcc_emails"`
}

type UpdateQuotationStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=draft sent approved rejected expired converted paid"`
}

type ListQuotationsRequest struct {
	PaginatedRequest
	Status string `json:"status" validate:"omitempty,oneof=all draft sent approved rejected expired converted paid"`
	Search string `json:"search" validate:"max=100"`
}
