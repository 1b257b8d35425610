package utils

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseInt(t *testing.T) {
	assert.Equal(t, 5, ParseInt("5", 1))
	assert.Equal(t, 1, ParseInt("", 1))
	assert.Equal(t, 10, ParseInt("abc", 10))
	assert.Equal(t, 10, ParseInt("0", 10))
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2025-03-14")
	require.NoError(t, err)
	assert.Equal(t, 14, d.Day())

	d, err = ParseDate("2025-03-14T08:30:00Z")
	require.NoError(t, err)
	assert.Equal(t, 8, d.Hour())

	_, err = ParseDate("tomorrow")
	assert.Error(t, err)
}

func TestSplitList(t *testing.T) {
	assert.Equal(t, []string{"a@x.jp", "b@x.jp"}, SplitList(" a@x.jp, ;b@x.jp ,"))
	assert.Empty(t, SplitList(""))
}

func TestFormatNumbers(t *testing.T) {
	assert.Equal(t, "BOO-000042", FormatBookingNumber(42))
	assert.Equal(t, "QUO-JPDR-000123", FormatQuotationID(123))
}

func TestUserContextRoundTrip(t *testing.T) {
	id := uuid.New()
	ctx := SetUserContext(context.Background(), id, "admin")

	got, ok := GetUserIDFromContext(ctx)
	require.True(t, ok)
	assert.Equal(t, id, got)

	role, ok := GetRoleFromContext(ctx)
	require.True(t, ok)
	assert.Equal(t, "admin", role)

	assert.Nil(t, ActorFromContext(context.Background()))
}

func TestValidateStructUsesJSONNames(t *testing.T) {
	type payload struct {
		Email string `json:"customer_email" validate:"required,email"`
		Time  string `json:"time" validate:"required,clock"`
		Date  string `json:"date" validate:"required,isodate"`
	}

	errs := ValidateStruct(payload{Email: "nope", Time: "25:00", Date: "2025-13-01"})
	assert.Equal(t, "Invalid email format", errs["customer_email"])
	assert.Equal(t, "Must be a time in HH:MM format", errs["time"])
	assert.Equal(t, "Must be a date in YYYY-MM-DD format", errs["date"])

	assert.Nil(t, ValidateStruct(payload{Email: "a@b.jp", Time: "09:30", Date: "2025-01-01"}))
	assert.Equal(t, "a: x; b: y", FormatValidationErrors(map[string]string{"b": "y", "a": "x"}))
}
