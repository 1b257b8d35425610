package wire

import (
	"fleet-dispatch/internal/adaptor"
	"fleet-dispatch/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// wireBooking expects an authenticated router.
func wireBooking(r chi.Router, bookingHandler *adaptor.BookingHandler, log *zap.Logger) {
	r.Route("/bookings", func(r chi.Router) {
		r.Get("/", bookingHandler.ListBookings)
		r.Post("/", bookingHandler.CreateBooking)

		r.With(middleware.Admin(log)).Post("/sync", bookingHandler.SyncBookings)
		r.With(middleware.Admin(log)).Post("/sync/{wpID}", bookingHandler.SyncBooking)

		r.Get("/{ref}", bookingHandler.GetBooking)
		r.Put("/{ref}", bookingHandler.UpdateBooking)
		r.With(middleware.Admin(log)).Delete("/{ref}", bookingHandler.DeleteBooking)
		r.Post("/{ref}/reschedule", bookingHandler.RescheduleBooking)
		r.Post("/{ref}/cancel", bookingHandler.CancelBooking)
		r.Post("/{ref}/assign", bookingHandler.AssignBooking)
		r.Post("/{ref}/unassign", bookingHandler.UnassignBooking)
	})

	r.Get("/drivers/{id}/bookings", bookingHandler.ListDriverBookings)
}
