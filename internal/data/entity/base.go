package entity

import (
	"time"

	"github.com/google/uuid"
)

type Base struct {
	ID        uuid.UUID `db:"id"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

type BaseSimple struct {
	ID        uuid.UUID `db:"id"`
	CreatedAt time.Time `db:"created_at"`
}

// BillingAddress is shared by bookings and quotations.
type BillingAddress struct {
	CompanyName  *string `db:"billing_company_name" json:"billing_company_name,omitempty"`
	TaxNumber    *string `db:"billing_tax_number" json:"billing_tax_number,omitempty"`
	StreetName   *string `db:"billing_street_name" json:"billing_street_name,omitempty"`
	StreetNumber *string `db:"billing_street_number" json:"billing_street_number,omitempty"`
	City         *string `db:"billing_city" json:"billing_city,omitempty"`
	State        *string `db:"billing_state" json:"billing_state,omitempty"`
	PostalCode   *string `db:"billing_postal_code" json:"billing_postal_code,omitempty"`
	Country      *string `db:"billing_country" json:"billing_country,omitempty"`
}
