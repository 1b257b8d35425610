package repository

import (
	"errors"

	"fleet-dispatch/pkg/database"

	"go.uber.org/zap"
)

// ErrNotFound is wrapped by writes that matched no row. Reads return
// (nil, nil) instead.
var ErrNotFound = errors.New("not found")

type Repository struct {
	User        UserRepository
	Session     SessionRepository
	Booking     BookingRepository
	Customer    CustomerRepository
	Vehicle     VehicleRepository
	Driver      DriverRepository
	ServiceType ServiceTypeRepository
	Pricing     PricingRepository
	Quotation   QuotationRepository
	Maintenance MaintenanceRepository
	Inspection  InspectionRepository
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		User:        NewUserRepository(db, log),
		Session:     NewSessionRepository(db, log),
		Booking:     NewBookingRepository(db, log),
		Customer:    NewCustomerRepository(db, log),
		Vehicle:     NewVehicleRepository(db, log),
		Driver:      NewDriverRepository(db, log),
		ServiceType: NewServiceTypeRepository(db, log),
		Pricing:     NewPricingRepository(db, log),
		Quotation:   NewQuotationRepository(db, log),
		Maintenance: NewMaintenanceRepository(db, log),
		Inspection:  NewInspectionRepository(db, log),
	}
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
