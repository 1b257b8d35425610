package wire

import (
	"fleet-dispatch/internal/adaptor"
	"fleet-dispatch/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// wireFleet expects an authenticated router. Driver routes stay flat so they
// sit beside /drivers/{id}/bookings from wireBooking.
func wireFleet(r chi.Router, fleetHandler *adaptor.FleetHandler, log *zap.Logger) {
	r.Get("/vehicles", fleetHandler.ListVehicles)
	r.Get("/vehicles/{id}", fleetHandler.GetVehicle)
	r.Get("/vehicles/{id}/maintenance", fleetHandler.ListVehicleMaintenance)
	r.Get("/vehicles/{id}/inspections", fleetHandler.ListVehicleInspections)

	r.Get("/drivers", fleetHandler.ListDrivers)
	r.Get("/drivers/{id}", fleetHandler.GetDriver)

	r.Route("/maintenance", func(r chi.Router) {
		r.Get("/", fleetHandler.ListMaintenance)
		r.Post("/", fleetHandler.CreateMaintenance)
		r.Get("/{id}", fleetHandler.GetMaintenance)
		r.Put("/{id}", fleetHandler.UpdateMaintenance)
		r.Patch("/{id}/status", fleetHandler.UpdateMaintenanceStatus)
		r.With(middleware.Admin(log)).Delete("/{id}", fleetHandler.DeleteMaintenance)
	})

	r.Route("/inspections", func(r chi.Router) {
		r.Get("/", fleetHandler.ListInspections)
		r.Post("/", fleetHandler.CreateInspection)
		r.Get("/{id}", fleetHandler.GetInspection)
		r.Patch("/{id}/status", fleetHandler.UpdateInspectionStatus)
		r.Post("/{id}/results", fleetHandler.SaveInspectionResults)
	})
}
