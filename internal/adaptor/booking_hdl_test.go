package adaptor

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"fleet-dispatch/internal/dto/request"
	"fleet-dispatch/internal/dto/response"
	"fleet-dispatch/internal/usecase"
	"fleet-dispatch/pkg/apperr"
	"fleet-dispatch/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// stubBookings embeds the interface so only the methods under test need bodies.
type stubBookings struct {
	usecase.BookingService
	cancelRef string
	cancelErr error
}

func (s *stubBookings) CancelBooking(_ context.Context, ref string) (string, error) {
	s.cancelRef = ref
	if s.cancelErr != nil {
		return "", s.cancelErr
	}
	return "Booking " + ref + " has been cancelled successfully", nil
}

type stubSync struct {
	usecase.BookingSyncService
	outcome *usecase.SyncOutcome
	err     error
	lastReq *request.SyncBookingsRequest
}

func (s *stubSync) SyncBookings(_ context.Context, req *request.SyncBookingsRequest) (*usecase.SyncOutcome, error) {
	s.lastReq = req
	return s.outcome, s.err
}

func newBookingRouter(svc usecase.BookingService, sync usecase.BookingSyncService) http.Handler {
	h := NewBookingHandler(svc, sync, zap.NewNop())
	r := chi.NewRouter()
	r.Post("/api/bookings/{ref}/cancel", h.CancelBooking)
	r.Post("/api/bookings/sync", h.SyncBookings)
	return r
}

func serve(t *testing.T, h http.Handler, method, target, body string) (int, utils.Response) {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var resp utils.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return rec.Code, resp
}

func TestCancelBookingHandler(t *testing.T) {
	svc := &stubBookings{}
	router := newBookingRouter(svc, &stubSync{})

	code, resp := serve(t, router, http.MethodPost, "/api/bookings/123/cancel", "")
	assert.Equal(t, http.StatusOK, code)
	assert.True(t, resp.Status)
	assert.Equal(t, "Booking 123 has been cancelled successfully", resp.Message)
	assert.Equal(t, "123", svc.cancelRef)
}

func TestRespondErrorMapping(t *testing.T) {
	cases := []struct {
		name    string
		err     error
		code    int
		message string
	}{
		{"not found", apperr.NotFound("Booking not found"), http.StatusNotFound, "Booking not found"},
		{"validation", apperr.Validation("Driver ID is required"), http.StatusBadRequest, "Driver ID is required"},
		{"upstream keeps message", apperr.Upstream(errors.New("timeout"), "WordPress unavailable"), http.StatusBadGateway, "WordPress unavailable"},
		{"internal hides cause", apperr.Internal(errors.New("pq: broken"), "failed to cancel booking"), http.StatusInternalServerError, "Internal server error"},
		{"plain error", errors.New("boom"), http.StatusInternalServerError, "Internal server error"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			router := newBookingRouter(&stubBookings{cancelErr: tc.err}, &stubSync{})
			code, resp := serve(t, router, http.MethodPost, "/api/bookings/abc/cancel", "")
			assert.Equal(t, tc.code, code)
			assert.False(t, resp.Status)
			assert.Equal(t, tc.message, resp.Message)
		})
	}
}

func TestSyncBookingsStatusCodes(t *testing.T) {
	partial := response.SyncResponse{Total: 2, Created: 1, Errors: []response.SyncErrorResponse{{WPID: "9", Error: "bad date"}}}

	cases := []struct {
		name    string
		outcome *usecase.SyncOutcome
		code    int
		status  bool
	}{
		{"all synced", &usecase.SyncOutcome{Result: response.SyncResponse{Total: 1, Created: 1}, Message: "ok", Success: true}, http.StatusOK, true},
		{"partial", &usecase.SyncOutcome{Result: partial, Message: "partial", Success: true}, http.StatusMultiStatus, true},
		{"failed", &usecase.SyncOutcome{Result: response.SyncResponse{Total: 1, Errors: partial.Errors}, Message: "Sync failed with 1 errors"}, http.StatusBadGateway, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			sync := &stubSync{outcome: tc.outcome}
			router := newBookingRouter(&stubBookings{}, sync)

			code, resp := serve(t, router, http.MethodPost, "/api/bookings/sync?limit=5&status=confirmed", "")
			assert.Equal(t, tc.code, code)
			assert.Equal(t, tc.status, resp.Status)
			assert.Equal(t, tc.outcome.Message, resp.Message)
			assert.Equal(t, 5, sync.lastReq.Limit)
			assert.Equal(t, "confirmed", sync.lastReq.Status)
		})
	}
}

func TestSyncBookingsBodyWinsOverQuery(t *testing.T) {
	sync := &stubSync{outcome: &usecase.SyncOutcome{Message: "No bookings found to sync", Success: true}}
	router := newBookingRouter(&stubBookings{}, sync)

	code, _ := serve(t, router, http.MethodPost, "/api/bookings/sync?limit=5", `{"limit":50}`)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, 50, sync.lastReq.Limit)

	code, resp := serve(t, router, http.MethodPost, "/api/bookings/sync", `{"limit":`)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Invalid request body", resp.Message)
}
