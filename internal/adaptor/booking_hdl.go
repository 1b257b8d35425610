package adaptor

import (
	"net/http"

	"fleet-dispatch/internal/dto/request"
	"fleet-dispatch/internal/usecase"
	"fleet-dispatch/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type BookingHandler struct {
	service usecase.BookingService
	sync    usecase.BookingSyncService
	log     *zap.Logger
}

func NewBookingHandler(service usecase.BookingService, sync usecase.BookingSyncService, log *zap.Logger) *BookingHandler {
	return &BookingHandler{
		service: service,
		sync:    sync,
		log:     log.With(zap.String("handler", "booking")),
	}
}

// ListBookings handles GET /api/bookings
func (h *BookingHandler) ListBookings(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	req := &request.ListBookingsRequest{
		PaginatedRequest: request.PaginatedRequest{
			Page:    utils.ParseInt(query.Get("page"), 1),
			PerPage: utils.ParseInt(query.Get("per_page"), 10),
		},
		Status: query.Get("status"),
		Source: query.Get("source"),
	}

	resp, err := h.service.ListBookings(r.Context(), req)
	if err != nil {
		respondError(w, h.log, err, "list bookings")
		return
	}

	utils.ResponseSuccess(w, "success", resp)
}

// GetBooking handles GET /api/bookings/{ref}
func (h *BookingHandler) GetBooking(w http.ResponseWriter, r *http.Request) {
	resp, err := h.service.GetBooking(r.Context(), chi.URLParam(r, "ref"))
	if err != nil {
		respondError(w, h.log, err, "get booking")
		return
	}

	utils.ResponseSuccess(w, "success", resp)
}

// ListDriverBookings handles GET /api/drivers/{id}/bookings
func (h *BookingHandler) ListDriverBookings(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	req := &request.DriverBookingsRequest{
		Limit:    utils.ParseInt(query.Get("limit"), 20),
		Status:   query.Get("status"),
		Upcoming: utils.ParseBool(query.Get("upcoming"), false),
	}

	resp, err := h.service.ListDriverBookings(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		respondError(w, h.log, err, "list driver bookings")
		return
	}

	utils.ResponseSuccess(w, "success", resp)
}

// CreateBooking handles POST /api/bookings
func (h *BookingHandler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	var req request.CreateBookingRequest
	if err := decodeJSON(r, &req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	resp, msg, err := h.service.CreateBooking(r.Context(), &req)
	if err != nil {
		respondError(w, h.log, err, "create booking")
		return
	}

	utils.ResponseCreated(w, msg, resp)
}

// UpdateBooking handles PUT /api/bookings/{ref}
func (h *BookingHandler) UpdateBooking(w http.ResponseWriter, r *http.Request) {
	var req request.UpdateBookingRequest
	if err := decodeJSON(r, &req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	resp, msg, err := h.service.UpdateBooking(r.Context(), chi.URLParam(r, "ref"), &req)
	if err != nil {
		respondError(w, h.log, err, "update booking")
		return
	}

	utils.ResponseSuccess(w, msg, resp)
}

// RescheduleBooking handles POST /api/bookings/{ref}/reschedule
func (h *BookingHandler) RescheduleBooking(w http.ResponseWriter, r *http.Request) {
	var req request.RescheduleBookingRequest
	if err := decodeJSON(r, &req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	resp, msg, err := h.service.RescheduleBooking(r.Context(), chi.URLParam(r, "ref"), &req)
	if err != nil {
		respondError(w, h.log, err, "reschedule booking")
		return
	}

	utils.ResponseSuccess(w, msg, resp)
}

// CancelBooking handles POST /api/bookings/{ref}/cancel
func (h *BookingHandler) CancelBooking(w http.ResponseWriter, r *http.Request) {
	msg, err := h.service.CancelBooking(r.Context(), chi.URLParam(r, "ref"))
	if err != nil {
		respondError(w, h.log, err, "cancel booking")
		return
	}

	utils.ResponseSuccess(w, msg, nil)
}

// DeleteBooking handles DELETE /api/bookings/{ref} (admin)
func (h *BookingHandler) DeleteBooking(w http.ResponseWriter, r *http.Request) {
	msg, err := h.service.DeleteBooking(r.Context(), chi.URLParam(r, "ref"))
	if err != nil {
		respondError(w, h.log, err, "delete booking")
		return
	}

	utils.ResponseSuccess(w, msg, nil)
}

// AssignBooking handles POST /api/bookings/{ref}/assign
func (h *BookingHandler) AssignBooking(w http.ResponseWriter, r *http.Request) {
	var req request.AssignBookingRequest
	if err := decodeJSON(r, &req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	resp, msg, err := h.service.AssignBooking(r.Context(), chi.URLParam(r, "ref"), &req)
	if err != nil {
		respondError(w, h.log, err, "assign booking")
		return
	}

	utils.ResponseSuccess(w, msg, resp)
}

// UnassignBooking handles POST /api/bookings/{ref}/unassign. Only the booking
// UUID is accepted here.
func (h *BookingHandler) UnassignBooking(w http.ResponseWriter, r *http.Request) {
	var req request.UnassignBookingRequest
	if err := decodeJSON(r, &req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	msg, err := h.service.UnassignBooking(r.Context(), chi.URLParam(r, "ref"), &req)
	if err != nil {
		respondError(w, h.log, err, "unassign booking")
		return
	}

	utils.ResponseSuccess(w, msg, nil)
}

// SyncBookings handles POST /api/bookings/sync (admin)
func (h *BookingHandler) SyncBookings(w http.ResponseWriter, r *http.Request) {
	var req request.SyncBookingsRequest
	if err := decodeJSON(r, &req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}
	query := r.URL.Query()
	if req.Status == "" {
		req.Status = query.Get("status")
	}
	if req.Limit == 0 {
		req.Limit = utils.ParseInt(query.Get("limit"), 0)
	}

	outcome, err := h.sync.SyncBookings(r.Context(), &req)
	if err != nil {
		respondError(w, h.log, err, "sync bookings")
		return
	}

	switch {
	case !outcome.Success:
		h.log.Error("Booking sync failed", zap.Int("errors", len(outcome.Result.Errors)))
		utils.ResponseJSON(w, http.StatusBadGateway, false, outcome.Message, outcome.Result, outcome.Result.Errors)
	case len(outcome.Result.Errors) > 0:
		utils.ResponseMultiStatus(w, outcome.Message, outcome.Result)
	default:
		utils.ResponseSuccess(w, outcome.Message, outcome.Result)
	}
}

// SyncBooking handles POST /api/bookings/sync/{wpID} (admin)
func (h *BookingHandler) SyncBooking(w http.ResponseWriter, r *http.Request) {
	resp, msg, err := h.sync.SyncBooking(r.Context(), chi.URLParam(r, "wpID"))
	if err != nil {
		respondError(w, h.log, err, "sync booking")
		return
	}

	utils.ResponseSuccess(w, msg, resp)
}
