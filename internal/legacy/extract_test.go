package legacy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractShapes(t *testing.T) {
	tests := []struct {
		name  string
		body  string
		shape Shape
		ids   []string
	}{
		{"paginated envelope", `{"data":[{"id":1}],"total":1}`, ShapePaginated, []string{"1"}},
		{"bookings property", `{"bookings":[{"id":2},{"id":3}]}`, ShapeProperty, []string{"2", "3"}},
		{"appointments property", `{"appointments":[{"booking_id":"A-4"}]}`, ShapeProperty, []string{"A-4"}},
		{"results property", `{"results":[{"id":5}]}`, ShapeProperty, []string{"5"}},
		{"nested bookings", `{"data":{"bookings":[{"id":6}]}}`, ShapeNested, []string{"6"}},
		{"bare array", `[{"id":7},"junk",{"id":8}]`, ShapeArray, []string{"7", "8"}},
		{"single object", `{"id":9,"title":"Booking 9"}`, ShapeWrapped, []string{"9"}},
		{"empty list", `{"bookings":[]}`, ShapeProperty, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Extract([]byte(tt.body))
			require.NoError(t, err)
			assert.Equal(t, tt.shape, got.Shape)

			ids := make([]string, 0, len(got.Records))
			for _, r := range got.Records {
				ids = append(ids, r.ID())
			}
			assert.Equal(t, tt.ids, ids)
		})
	}
}

func TestExtractSkipsFalsyProperties(t *testing.T) {
	got, err := Extract([]byte(`{"bookings":null,"data":"","results":[{"id":1}]}`))
	require.NoError(t, err)
	assert.Equal(t, ShapeProperty, got.Shape)
	assert.Len(t, got.Records, 1)
}

func TestExtractRejectsScalarsAndGarbage(t *testing.T) {
	_, err := Extract([]byte(`"ok"`))
	assert.Error(t, err)

	_, err = Extract([]byte(`{not json`))
	assert.Error(t, err)
}

func TestExtractPaginationOnlyWhenReported(t *testing.T) {
	got, err := Extract([]byte(`{"data":[]}`))
	require.NoError(t, err)
	assert.Nil(t, got.Pagination)
}

func TestFindByID(t *testing.T) {
	r, ok := FindByID([]byte(`{"data":[{"id":1},{"id":2}]}`), "2")
	require.True(t, ok)
	assert.Equal(t, "2", r.ID())

	r, ok = FindByID([]byte(`[{"booking_id":"X1"}]`), "x1")
	require.True(t, ok)
	assert.Equal(t, "X1", r.ID())

	r, ok = FindByID([]byte(`{"id":3,"meta":{}}`), "3")
	require.True(t, ok)
	assert.NotNil(t, r.Meta())

	_, ok = FindByID([]byte(`{"data":[{"id":1}]}`), "2")
	assert.False(t, ok)

	_, ok = FindByID([]byte(`{"message":"nope"}`), "2")
	assert.False(t, ok)
}

func TestRecordTitle(t *testing.T) {
	r := Record{"title": map[string]any{"rendered": "Booking 77"}}
	assert.Equal(t, "Booking 77", r.Title())
	assert.True(t, r.IsBooking())
	assert.True(t, r.Matches("77"))
	assert.False(t, Record{"name": "x"}.IsBooking())
}
