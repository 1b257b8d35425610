package legacy

import (
	"errors"
	"strings"
	"time"

	"fleet-dispatch/internal/data/entity"
	"fleet-dispatch/internal/pricing"
	"fleet-dispatch/pkg/utils"
)

var ErrMissingID = errors.New("legacy booking has no id")

const (
	defaultServiceName = "Vehicle Service"
	defaultCurrency    = "THB"
	airportTransfer    = "Airport Transfer"
)

// MapRecord converts a WordPress booking into a local booking. Records
// carrying plugin meta are read from chbs_* fields; anything else is treated
// as already being in the local shape.
func MapRecord(r Record, now time.Time) (*entity.Booking, error) {
	wpID := r.ID()
	if wpID == "" {
		return nil, ErrMissingID
	}

	meta := r.Meta()
	if meta == nil {
		return mapPlain(r, wpID, now), nil
	}

	b := &entity.Booking{
		WPID:        &wpID,
		ServiceName: firstNonEmpty(scalar(meta["chbs_vehicle_name"]), defaultServiceName),
		ServiceType: optional(serviceType(meta)),
		Date:        pickupDate(scalar(meta["chbs_pickup_date"]), scalar(r["date"])),
		Time:        firstNonEmpty(scalar(meta["chbs_pickup_time"]), "00:00"),
		Status:      wordpressStatus(scalar(r["status"]), meta),
		Meta:        meta,
		SyncedAt:    &now,
	}

	name := strings.TrimSpace(scalar(meta["chbs_client_contact_detail_first_name"]) + " " +
		scalar(meta["chbs_client_contact_detail_last_name"]))
	b.CustomerName = optional(name)
	if email := utils.NormalizeEmail(scalar(meta["chbs_client_contact_detail_email_address"])); email != "" {
		b.CustomerEmail = &email
	}
	b.CustomerPhone = optional(scalar(meta["chbs_client_contact_detail_phone_number"]))

	b.PickupLocation, b.DropoffLocation = coordinates(meta["chbs_coordinate"])
	b.Distance = optional(scalar(meta["chbs_distance"]))
	if d, ok := number(meta["chbs_duration"]); ok {
		b.DurationHours = &d
	}
	b.Notes = optional(scalar(meta["chbs_comment"]))
	b.VehicleName = optional(scalar(meta["chbs_vehicle_name"]))

	if amount, ok := number(meta["chbs_price_fixed_value"]); ok {
		currency := strings.ToUpper(firstNonEmpty(scalar(meta["chbs_currency_id"]), defaultCurrency))
		formatted := pricing.FormatAmount(amount, currency)
		b.PriceAmount = &amount
		b.PriceCurrency = &currency
		b.PriceFormatted = &formatted
	}

	b.PaymentMethod = optional(scalar(meta["chbs_payment_name"]))
	b.PaymentStatus = optional(firstNonEmpty(scalar(meta["chbs_payment_status"]), scalar(r["payment_status"])))
	b.PaymentLink = optional(firstNonEmpty(
		scalar(meta["ipps_payment_link"]),
		scalar(meta["chbs_ipps_payment_url"]),
		scalar(r["payment_link"]),
	))
	b.CouponCode = optional(firstNonEmpty(scalar(meta["chbs_coupon_code"]), scalar(r["coupon_code"])))
	if pct, ok := number(meta["chbs_coupon_discount_percentage"]); ok {
		b.CouponDiscount = &pct
	}

	return b, nil
}

// mapPlain handles records that already use local field names.
func mapPlain(r Record, wpID string, now time.Time) *entity.Booking {
	b := &entity.Booking{
		WPID:            &wpID,
		ServiceName:     firstNonEmpty(scalar(r["service_name"]), defaultServiceName),
		ServiceType:     optional(scalar(r["service_type"])),
		Date:            pickupDate("", scalar(r["date"])),
		Time:            firstNonEmpty(scalar(r["time"]), "00:00"),
		Status:          localStatus(scalar(r["status"])),
		CustomerName:    optional(scalar(r["customer_name"])),
		CustomerPhone:   optional(scalar(r["customer_phone"])),
		PickupLocation:  optional(scalar(r["pickup_location"])),
		DropoffLocation: optional(scalar(r["dropoff_location"])),
		Distance:        optional(scalar(r["distance"])),
		Notes:           optional(scalar(r["notes"])),
		PaymentStatus:   optional(scalar(r["payment_status"])),
		PaymentMethod:   optional(scalar(r["payment_method"])),
		PaymentLink:     optional(firstNonEmpty(scalar(r["payment_link"]), scalar(r["ipps_payment_link"]))),
		CouponCode:      optional(scalar(r["coupon_code"])),
		SyncedAt:        &now,
	}
	if email := utils.NormalizeEmail(scalar(r["customer_email"])); email != "" {
		b.CustomerEmail = &email
	}
	if d, ok := number(r["duration"]); ok {
		b.DurationHours = &d
	}
	if price, ok := r["price"].(map[string]any); ok {
		if amount, ok := number(price["amount"]); ok {
			currency := strings.ToUpper(firstNonEmpty(scalar(price["currency"]), defaultCurrency))
			formatted := firstNonEmpty(scalar(price["formatted"]), pricing.FormatAmount(amount, currency))
			b.PriceAmount = &amount
			b.PriceCurrency = &currency
			b.PriceFormatted = &formatted
		}
	}
	return b
}

// serviceType prefers the explicit plugin field, then airport detection on
// the route name, then the route's own service type, then airport detection
// on the booking detail blob.
func serviceType(meta map[string]any) string {
	if st := scalar(meta["chbs_service_type"]); st != "" {
		return st
	}
	if strings.Contains(strings.ToLower(scalar(meta["chbs_route_name"])), "airport") {
		return airportTransfer
	}
	if st := scalar(meta["chbs_route_service_type"]); st != "" {
		return st
	}
	if detail, ok := meta["chbs_booking_detail"]; ok && strings.Contains(strings.ToLower(flat(detail)), "airport") {
		return airportTransfer
	}
	return ""
}

// flat renders nested values so they can be searched as text.
func flat(v any) string {
	switch val := v.(type) {
	case map[string]any:
		var sb strings.Builder
		for k, item := range val {
			sb.WriteString(k)
			sb.WriteByte(' ')
			sb.WriteString(flat(item))
			sb.WriteByte(' ')
		}
		return sb.String()
	case []any:
		var sb strings.Builder
		for _, item := range val {
			sb.WriteString(flat(item))
			sb.WriteByte(' ')
		}
		return sb.String()
	}
	return scalar(v)
}

// pickupDate reads the plugin's DD-MM-YYYY date and falls back to the post
// date.
func pickupDate(pickup, posted string) time.Time {
	if pickup != "" {
		if t, err := time.Parse("02-01-2006", pickup); err == nil {
			return t
		}
		if t, err := utils.ParseDate(pickup); err == nil {
			return t
		}
	}
	if posted != "" {
		day, _, _ := strings.Cut(strings.ReplaceAll(posted, "T", " "), " ")
		if t, err := utils.ParseDate(day); err == nil {
			return t
		}
	}
	return time.Time{}
}

func wordpressStatus(postStatus string, meta map[string]any) entity.BookingStatus {
	if postStatus != "publish" {
		return localStatus(postStatus)
	}
	switch {
	case scalar(meta["chbs_booking_declined"]) == "1":
		return entity.BookingStatusCancelled
	case scalar(meta["chbs_booking_status_id"]) == "2":
		return entity.BookingStatusCompleted
	default:
		return entity.BookingStatusConfirmed
	}
}

func localStatus(s string) entity.BookingStatus {
	switch st := entity.BookingStatus(strings.ToLower(s)); st {
	case entity.BookingStatusPending, entity.BookingStatusConfirmed, entity.BookingStatusAssigned,
		entity.BookingStatusCompleted, entity.BookingStatusCancelled:
		return st
	}
	return entity.BookingStatusPending
}

func coordinates(v any) (pickup, dropoff *string) {
	list, ok := v.([]any)
	if !ok {
		return nil, nil
	}
	address := func(i int) *string {
		if i >= len(list) {
			return nil
		}
		if m, ok := list[i].(map[string]any); ok {
			return optional(scalar(m["address"]))
		}
		return nil
	}
	return address(0), address(1)
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
