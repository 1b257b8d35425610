package response

import (
	"time"

	"fleet-dispatch/internal/data/entity"
	"fleet-dispatch/internal/pricing"
	"fleet-dispatch/pkg/utils"
)

type QuotationItemResponse struct {
	ID                  string   `json:"id"`
	Description         string   `json:"description"`
	ServiceTypeID       *string  `json:"service_type_id,omitempty"`
	ServiceTypeName     string   `json:"service_type_name"`
	ServiceCategory     string   `json:"service_category"`
	VehicleCategory     *string  `json:"vehicle_category,omitempty"`
	VehicleType         *string  `json:"vehicle_type,omitempty"`
	DurationHours       float64  `json:"duration_hours"`
	ServiceDays         int      `json:"service_days"`
	HoursPerDay         *float64 `json:"hours_per_day,omitempty"`
	UnitPrice           float64  `json:"unit_price"`
	Quantity            int      `json:"quantity"`
	TotalPrice          float64  `json:"total_price"`
	PickupDate          *string  `json:"pickup_date,omitempty"`
	PickupTime          *string  `json:"pickup_time,omitempty"`
	TimeBasedAdjustment *float64 `json:"time_based_adjustment,omitempty"`
	TimeBasedRuleName   *string  `json:"time_based_rule_name,omitempty"`
	IsServiceItem       bool     `json:"is_service_item"`
	SortOrder           int      `json:"sort_order"`
}

type TotalsResponse struct {
	pricing.Totals
	Currency  string            `json:"currency"`
	Formatted map[string]string `json:"formatted"`
}

type QuotationResponse struct {
	ID            string                 `json:"id"`
	DisplayID     string                 `json:"display_id"`
	QuoteNumber   int64                  `json:"quote_number"`
	Title         string                 `json:"title"`
	Status        entity.QuotationStatus `json:"status"`
	StatusLabel   string                 `json:"status_label,omitempty"`
	CustomerName  *string                `json:"customer_name,omitempty"`
	CustomerEmail string                 `json:"customer_email"`
	CustomerPhone *string                `json:"customer_phone,omitempty"`
	entity.BillingAddress
	ServiceTypeID   *string  `json:"service_type_id,omitempty"`
	VehicleCategory *string  `json:"vehicle_category,omitempty"`
	VehicleType     *string  `json:"vehicle_type,omitempty"`
	PickupDate      *string  `json:"pickup_date,omitempty"`
	PickupTime      *string  `json:"pickup_time,omitempty"`
	DurationHours   float64  `json:"duration_hours"`
	ServiceDays     int      `json:"service_days"`
	HoursPerDay     *float64 `json:"hours_per_day,omitempty"`
	PassengerCount  *int     `json:"passenger_count,omitempty"`
	MerchantNotes   *string  `json:"merchant_notes,omitempty"`
	CustomerNotes   *string  `json:"customer_notes,omitempty"`
	GeneralNotes    *string  `json:"general_notes,omitempty"`

	Amount             float64 `json:"amount"`
	DiscountPercentage float64 `json:"discount_percentage"`
	TaxPercentage      float64 `json:"tax_percentage"`
	TotalAmount        float64 `json:"total_amount"`
	Currency           string  `json:"currency"`
	DisplayCurrency    string  `json:"display_currency"`

	SelectedPackageID          *string  `json:"selected_package_id,omitempty"`
	SelectedPackageName        *string  `json:"selected_package_name,omitempty"`
	SelectedPackageDescription *string  `json:"selected_package_description,omitempty"`
	SelectedPackagePrice       *float64 `json:"selected_package_price,omitempty"`
	PackageDiscount            float64  `json:"package_discount"`

	SelectedPromotionID          *string `json:"selected_promotion_id,omitempty"`
	SelectedPromotionName        *string `json:"selected_promotion_name,omitempty"`
	SelectedPromotionDescription *string `json:"selected_promotion_description,omitempty"`
	SelectedPromotionCode        *string `json:"selected_promotion_code,omitempty"`
	PromotionDiscount            float64 `json:"promotion_discount"`

	TeamLocation entity.TeamLocation     `json:"team_location"`
	ExpiryDate   time.Time               `json:"expiry_date"`
	SentAt       *time.Time              `json:"sent_at,omitempty"`
	Items        []QuotationItemResponse `json:"items"`
	Totals       *TotalsResponse         `json:"totals,omitempty"`
	CreatedAt    time.Time               `json:"created_at"`
	UpdatedAt    time.Time               `json:"updated_at"`
}

// PreviewResponse is a priced quotation that was not saved.
type PreviewResponse struct {
	Items   []QuotationItemResponse `json:"items"`
	Totals  TotalsResponse          `json:"totals"`
	Package *PackageResponse        `json:"package,omitempty"`
	// PromotionMessage is the localized reason a code was rejected.
	Promotion        *PromotionResponse `json:"promotion,omitempty"`
	PromotionMessage string             `json:"promotion_message,omitempty"`
}

func datePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(time.DateOnly)
	return &s
}

func QuotationItemToResponse(item entity.QuotationItem) QuotationItemResponse {
	resp := QuotationItemResponse{
		ID:                  item.ID.String(),
		Description:         item.Description,
		ServiceTypeName:     item.ServiceTypeName,
		ServiceCategory:     item.ServiceCategory,
		VehicleCategory:     item.VehicleCategory,
		VehicleType:         item.VehicleType,
		DurationHours:       item.DurationHours,
		ServiceDays:         item.ServiceDays,
		HoursPerDay:         item.HoursPerDay,
		UnitPrice:           item.UnitPrice,
		Quantity:            item.Quantity,
		TotalPrice:          item.TotalPrice,
		PickupDate:          datePtr(item.PickupDate),
		PickupTime:          item.PickupTime,
		TimeBasedAdjustment: item.TimeBasedAdjustment,
		TimeBasedRuleName:   item.TimeBasedRuleName,
		IsServiceItem:       item.IsServiceItem,
		SortOrder:           item.SortOrder,
	}
	if item.ServiceTypeID != nil {
		resp.ServiceTypeID = uuidString(item.ServiceTypeID)
	}
	return resp
}

func QuotationItemsToResponse(items []entity.QuotationItem) []QuotationItemResponse {
	out := make([]QuotationItemResponse, 0, len(items))
	for _, item := range items {
		out = append(out, QuotationItemToResponse(item))
	}
	return out
}

// TotalsToResponse formats every amount in currency.
func TotalsToResponse(t pricing.Totals, currency string) TotalsResponse {
	return TotalsResponse{
		Totals:   t,
		Currency: currency,
		Formatted: map[string]string{
			"service_total":      pricing.FormatAmount(t.ServiceTotal, currency),
			"package_total":      pricing.FormatAmount(t.PackageTotal, currency),
			"base_total":         pricing.FormatAmount(t.BaseTotal, currency),
			"promotion_discount": pricing.FormatAmount(t.PromotionDiscount, currency),
			"regular_discount":   pricing.FormatAmount(t.RegularDiscount, currency),
			"subtotal":           pricing.FormatAmount(t.Subtotal, currency),
			"tax_amount":         pricing.FormatAmount(t.TaxAmount, currency),
			"final_total":        pricing.FormatAmount(t.FinalTotal, currency),
		},
	}
}

func QuotationToResponse(q *entity.Quotation) QuotationResponse {
	resp := QuotationResponse{
		ID:                           q.ID.String(),
		DisplayID:                    utils.FormatQuotationID(q.QuoteNumber),
		QuoteNumber:                  q.QuoteNumber,
		Title:                        q.Title,
		Status:                       q.Status,
		CustomerName:                 q.CustomerName,
		CustomerEmail:                q.CustomerEmail,
		CustomerPhone:                q.CustomerPhone,
		BillingAddress:               q.BillingAddress,
		VehicleCategory:              q.VehicleCategory,
		VehicleType:                  q.VehicleType,
		PickupDate:                   datePtr(q.PickupDate),
		PickupTime:                   q.PickupTime,
		DurationHours:                q.DurationHours,
		ServiceDays:                  q.ServiceDays,
		HoursPerDay:                  q.HoursPerDay,
		PassengerCount:               q.PassengerCount,
		MerchantNotes:                q.MerchantNotes,
		CustomerNotes:                q.CustomerNotes,
		GeneralNotes:                 q.GeneralNotes,
		Amount:                       q.Amount,
		DiscountPercentage:           q.DiscountPercentage,
		TaxPercentage:                q.TaxPercentage,
		TotalAmount:                  q.TotalAmount,
		Currency:                     q.Currency,
		DisplayCurrency:              q.DisplayCurrency,
		SelectedPackageName:          q.SelectedPackageName,
		SelectedPackageDescription:   q.SelectedPackageDescription,
		SelectedPackagePrice:         q.SelectedPackagePrice,
		PackageDiscount:              q.PackageDiscount,
		SelectedPromotionName:        q.SelectedPromotionName,
		SelectedPromotionDescription: q.SelectedPromotionDescription,
		SelectedPromotionCode:        q.SelectedPromotionCode,
		PromotionDiscount:            q.PromotionDiscount,
		TeamLocation:                 q.TeamLocation,
		ExpiryDate:                   q.ExpiryDate,
		SentAt:                       q.SentAt,
		Items:                        QuotationItemsToResponse(q.Items),
		CreatedAt:                    q.CreatedAt,
		UpdatedAt:                    q.UpdatedAt,
	}
	if q.ServiceTypeID != nil {
		resp.ServiceTypeID = uuidString(q.ServiceTypeID)
	}
	if q.SelectedPackageID != nil {
		resp.SelectedPackageID = uuidString(q.SelectedPackageID)
	}
	if q.SelectedPromotionID != nil {
		resp.SelectedPromotionID = uuidString(q.SelectedPromotionID)
	}
	return resp
}

func QuotationsToResponse(quotations []*entity.Quotation) []QuotationResponse {
	out := make([]QuotationResponse, 0, len(quotations))
	for _, q := range quotations {
		out = append(out, QuotationToResponse(q))
	}
	return out
}
