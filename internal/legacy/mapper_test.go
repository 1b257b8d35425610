package legacy

import (
	"testing"
	"time"

	"fleet-dispatch/internal/data/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func wordpressRecord(t *testing.T, body string) Record {
	t.Helper()
	got, err := Extract([]byte(body))
	require.NoError(t, err)
	require.Len(t, got.Records, 1)
	return got.Records[0]
}

func TestMapRecordFromPluginMeta(t *testing.T) {
	r := wordpressRecord(t, `{
		"id": 1234,
		"status": "publish",
		"date": "2024-03-01T09:00:00",
		"meta": {
			"chbs_vehicle_name": "Toyota Hiace Grand Cabin",
			"chbs_pickup_date": "15-03-2024",
			"chbs_pickup_time": "08:30",
			"chbs_route_name": "Narita Airport to Tokyo",
			"chbs_client_contact_detail_first_name": "Aiko",
			"chbs_client_contact_detail_last_name": "Sato",
			"chbs_client_contact_detail_email_address": " Aiko@Example.com ",
			"chbs_client_contact_detail_phone_number": "+81 90 0000 0000",
			"chbs_coordinate": [{"address": "Narita T1"}, {"address": "Shinjuku"}],
			"chbs_distance": 72,
			"chbs_duration": "2.5",
			"chbs_comment": "Two suitcases",
			"chbs_price_fixed_value": "16500",
			"chbs_currency_id": "jpy",
			"chbs_payment_name": "Card",
			"ipps_payment_link": "https://pay.example/1234"
		}
	}`)

	now := time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC)
	b, err := MapRecord(r, now)
	require.NoError(t, err)

	assert.Equal(t, "1234", *b.WPID)
	assert.Equal(t, "Toyota Hiace Grand Cabin", b.ServiceName)
	assert.Equal(t, "Airport Transfer", *b.ServiceType)
	assert.Equal(t, time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), b.Date)
	assert.Equal(t, "08:30", b.Time)
	assert.Equal(t, entity.BookingStatusConfirmed, b.Status)
	assert.Equal(t, "Aiko Sato", *b.CustomerName)
	assert.Equal(t, "aiko@example.com", *b.CustomerEmail)
	assert.Equal(t, "Narita T1", *b.PickupLocation)
	assert.Equal(t, "Shinjuku", *b.DropoffLocation)
	assert.Equal(t, "72", *b.Distance)
	assert.Equal(t, 2.5, *b.DurationHours)
	assert.Equal(t, "Two suitcases", *b.Notes)
	assert.Equal(t, 16500.0, *b.PriceAmount)
	assert.Equal(t, "JPY", *b.PriceCurrency)
	assert.Equal(t, "¥16,500", *b.PriceFormatted)
	assert.Equal(t, "Card", *b.PaymentMethod)
	assert.Equal(t, "https://pay.example/1234", *b.PaymentLink)
	assert.Equal(t, now, *b.SyncedAt)
	assert.NotEmpty(t, b.Meta)
}

func TestMapRecordStatus(t *testing.T) {
	tests := []struct {
		status string
		meta   string
		want   entity.BookingStatus
	}{
		{"publish", `{"chbs_booking_declined":"1"}`, entity.BookingStatusCancelled},
		{"publish", `{"chbs_booking_status_id":"2"}`, entity.BookingStatusCompleted},
		{"publish", `{}`, entity.BookingStatusConfirmed},
		{"draft", `{}`, entity.BookingStatusPending},
	}
	for _, tt := range tests {
		r := wordpressRecord(t, `{"id":1,"status":"`+tt.status+`","meta":`+tt.meta+`}`)
		b, err := MapRecord(r, time.Now())
		require.NoError(t, err)
		assert.Equal(t, tt.want, b.Status, tt.meta)
	}
}

func TestMapRecordServiceTypeFromBookingDetail(t *testing.T) {
	r := wordpressRecord(t, `{"id":1,"meta":{"chbs_booking_detail":{"route":"Haneda AIRPORT pickup"}}}`)
	b, err := MapRecord(r, time.Now())
	require.NoError(t, err)
	assert.Equal(t, "Airport Transfer", *b.ServiceType)
	assert.Equal(t, "Vehicle Service", b.ServiceName)
	assert.Equal(t, "00:00", b.Time)
}

func TestMapRecordPlainShape(t *testing.T) {
	r := wordpressRecord(t, `{
		"id": "55",
		"date": "2024-05-01 10:00:00",
		"time": "10:00",
		"status": "assigned",
		"service_name": "Charter Services (Hourly)",
		"customer_email": "a@b.co",
		"price": {"amount": 40000, "currency": "JPY"}
	}`)
	b, err := MapRecord(r, time.Now())
	require.NoError(t, err)

	assert.Equal(t, "55", *b.WPID)
	assert.Equal(t, entity.BookingStatusAssigned, b.Status)
	assert.Equal(t, time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), b.Date)
	assert.Equal(t, "¥40,000", *b.PriceFormatted)
	assert.Nil(t, b.Meta)
}

func TestMapRecordRequiresID(t *testing.T) {
	_, err := MapRecord(Record{"title": "Booking"}, time.Now())
	assert.ErrorIs(t, err, ErrMissingID)
}
