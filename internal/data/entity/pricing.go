package entity

import (
	"time"

	"github.com/google/uuid"
)

// ServiceType carries an explicit category so totals never depend on the
// display name. Category may be empty for rows created before the column.
type ServiceType struct {
	ID       uuid.UUID `db:"id"`
	Name     string    `db:"name"`
	Category string    `db:"category"`
	IsActive bool      `db:"is_active"`
}

type PricingItem struct {
	ID            uuid.UUID  `db:"id"`
	CategoryID    *uuid.UUID `db:"category_id"`
	ServiceTypeID uuid.UUID  `db:"service_type_id"`
	VehicleID     *uuid.UUID `db:"vehicle_id"`
	DurationHours int        `db:"duration_hours"`
	Price         float64    `db:"price"`
	Currency      string     `db:"currency"`
	IsActive      bool       `db:"is_active"`
	UpdatedAt     time.Time  `db:"updated_at"`
}

type PricingPackage struct {
	ID          uuid.UUID            `db:"id"`
	Name        string               `db:"name"`
	Description *string              `db:"description"`
	BasePrice   float64              `db:"base_price"`
	IsFeatured  bool                 `db:"is_featured"`
	IsActive    bool                 `db:"is_active"`
	Items       []PricingPackageItem `db:"-"`
}

type PricingPackageItem struct {
	ID          uuid.UUID `db:"id"`
	PackageID   uuid.UUID `db:"package_id"`
	Name        string    `db:"name"`
	VehicleType *string   `db:"vehicle_type"`
	Price       float64   `db:"price"`
	Quantity    int       `db:"quantity"`
}

type DiscountType string

const (
	DiscountTypePercentage DiscountType = "percentage"
	DiscountTypeFixed      DiscountType = "fixed"

	// older rows use the long form
	DiscountTypeFixedAmount DiscountType = "fixed_amount"
)

type PricingPromotion struct {
	ID              uuid.UUID    `db:"id"`
	Code            string       `db:"code"`
	Name            string       `db:"name"`
	Description     *string      `db:"description"`
	DiscountType    DiscountType `db:"discount_type"`
	DiscountValue   float64      `db:"discount_value"`
	MaximumDiscount *float64     `db:"maximum_discount"`
	MinimumAmount   *float64     `db:"minimum_amount"`
	StartDate       *time.Time   `db:"start_date"`
	EndDate         *time.Time   `db:"end_date"`
	UsageLimit      *int         `db:"usage_limit"`
	TimesUsed       int          `db:"times_used"`
	IsActive        bool         `db:"is_active"`
}

// TimeBasedRule adjusts a line by a signed percentage when the pickup falls
// on one of DaysOfWeek inside [StartTime, EndTime]. StartTime after EndTime
// wraps past midnight.
type TimeBasedRule struct {
	ID                   uuid.UUID  `db:"id"`
	Name                 string     `db:"name"`
	CategoryID           *uuid.UUID `db:"category_id"`
	ServiceTypeID        *uuid.UUID `db:"service_type_id"`
	DaysOfWeek           []string   `db:"days_of_week"`
	StartTime            *string    `db:"start_time"`
	EndTime              *string    `db:"end_time"`
	AdjustmentPercentage float64    `db:"adjustment_percentage"`
	Priority             int        `db:"priority"`
	IsActive             bool       `db:"is_active"`
}
