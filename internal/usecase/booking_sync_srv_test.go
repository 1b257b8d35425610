package usecase

import (
	"context"
	"errors"
	"testing"

	"fleet-dispatch/internal/data/entity"
	"fleet-dispatch/internal/dto/request"
	"fleet-dispatch/internal/legacy"
	"fleet-dispatch/pkg/apperr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSyncService(wp *fakeLegacy) (*bookingSyncService, *mocks) {
	repo, m := newMocks()
	svc := NewBookingSyncService(repo, wp, nopLog).(*bookingSyncService)
	svc.now = fixedNow
	return svc, m
}

func wpRecord(id, email string) legacy.Record {
	return legacy.Record{
		"id":             id,
		"service_name":   "Airport Transfer",
		"date":           "2026-03-20",
		"time":           "10:00",
		"status":         "confirmed",
		"customer_email": email,
	}
}

func TestSyncBookingsCountsCreatedAndUpdated(t *testing.T) {
	wp := &fakeLegacy{configured: true, result: &legacy.Result{
		Endpoint: "/wp-json/custom/v1/bookings",
		Bookings: []legacy.Record{
			wpRecord("1", "a@example.com"),
			wpRecord("2", "b@example.com"),
			{"service_name": "orphan"},
		},
	}}
	svc, m := newSyncService(wp)
	existing := "2"
	m.bookings.add(&entity.Booking{WPID: &existing, Status: entity.BookingStatusPending})

	outcome, err := svc.SyncBookings(context.Background(), &request.SyncBookingsRequest{})
	require.NoError(t, err)

	assert.True(t, outcome.Success)
	assert.Equal(t, 1, outcome.Result.Created)
	assert.Equal(t, 1, outcome.Result.Updated)
	assert.Equal(t, 2, outcome.Result.Total)
	assert.Empty(t, outcome.Result.Errors)
	assert.Equal(t, "Successfully synced 2 bookings (1 created, 1 updated)", outcome.Message)
	assert.Equal(t, 100, wp.lastFilter.Limit)

	assert.Len(t, m.bookings.bookings, 2)
	assert.Contains(t, m.customers.customers, "a@example.com")
}

func TestSyncBookingsPartialFailure(t *testing.T) {
	wp := &fakeLegacy{configured: true, result: &legacy.Result{Bookings: []legacy.Record{
		wpRecord("1", "a@example.com"),
		wpRecord("2", "b@example.com"),
	}}}
	svc, m := newSyncService(wp)
	m.bookings.upsertErr = map[string]error{"2": errors.New("duplicate key")}

	outcome, err := svc.SyncBookings(context.Background(), &request.SyncBookingsRequest{Limit: 10})
	require.NoError(t, err)

	assert.True(t, outcome.Success)
	require.Len(t, outcome.Result.Errors, 1)
	assert.Equal(t, "2", outcome.Result.Errors[0].WPID)
	assert.Contains(t, outcome.Message, "with 1 errors")
	assert.Equal(t, 10, wp.lastFilter.Limit)
}

func TestSyncBookingsAllFailed(t *testing.T) {
	wp := &fakeLegacy{configured: true, result: &legacy.Result{Bookings: []legacy.Record{
		wpRecord("1", "a@example.com"),
	}}}
	svc, m := newSyncService(wp)
	m.bookings.upsertErr = map[string]error{"1": errors.New("boom")}

	outcome, err := svc.SyncBookings(context.Background(), &request.SyncBookingsRequest{})
	require.NoError(t, err)

	assert.False(t, outcome.Success)
	assert.Equal(t, "Sync failed with 1 errors", outcome.Message)
}

func TestSyncBookingsEmpty(t *testing.T) {
	svc, _ := newSyncService(&fakeLegacy{configured: true, result: &legacy.Result{}})

	outcome, err := svc.SyncBookings(context.Background(), &request.SyncBookingsRequest{})
	require.NoError(t, err)
	assert.True(t, outcome.Success)
	assert.Equal(t, "No bookings found to sync", outcome.Message)
}

func TestSyncBookingsLegacyErrors(t *testing.T) {
	svc, _ := newSyncService(&fakeLegacy{err: legacy.ErrNotConfigured})
	_, err := svc.SyncBookings(context.Background(), &request.SyncBookingsRequest{})
	assert.True(t, apperr.Is(err, apperr.KindBadRequest))

	svc, _ = newSyncService(&fakeLegacy{configured: true, err: legacy.ErrUnavailable})
	_, err = svc.SyncBookings(context.Background(), &request.SyncBookingsRequest{})
	assert.True(t, apperr.Is(err, apperr.KindUpstream))
}

func TestSyncSingleBooking(t *testing.T) {
	wp := &fakeLegacy{configured: true, single: &legacy.SingleResult{Booking: wpRecord("42", "c@example.com")}}
	svc, m := newSyncService(wp)

	resp, msg, err := svc.SyncBooking(context.Background(), "42")
	require.NoError(t, err)
	assert.Equal(t, "42", *resp.WPID)
	assert.Equal(t, "Successfully synced 1 bookings (1 created, 0 updated)", msg)

	_, msg, err = svc.SyncBooking(context.Background(), "42")
	require.NoError(t, err)
	assert.Equal(t, "Successfully synced 1 bookings (0 created, 1 updated)", msg)
	assert.Len(t, m.bookings.bookings, 1)

	wp.single, wp.singleErr = nil, legacy.ErrNotFound
	_, _, err = svc.SyncBooking(context.Background(), "43")
	assert.True(t, apperr.Is(err, apperr.KindNotFound))
}
