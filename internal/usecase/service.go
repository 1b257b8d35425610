package usecase

import (
	"fleet-dispatch/internal/data/repository"
	"fleet-dispatch/pkg/mailer"
	"fleet-dispatch/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Auth        AuthService
	Booking     BookingService
	BookingSync BookingSyncService
	Quotation   QuotationService
	Pricing     PricingService
	Fleet       FleetService
	Maintenance MaintenanceService
}

func NewService(repo *repository.Repository, wp LegacyBookings, sender mailer.Sender, rates RateProvider, config *utils.Config, log *zap.Logger) *Service {
	pricer := NewPricingService(repo, rates, config.Pricing, log)

	return &Service{
		Auth:        NewAuthService(repo, config, log),
		Booking:     NewBookingService(repo, wp, pricer, config.App.Location, log),
		BookingSync: NewBookingSyncService(repo, wp, log),
		Quotation:   NewQuotationService(repo, sender, rates, config, log),
		Pricing:     pricer,
		Fleet:       NewFleetService(repo, config.App.Location, log),
		Maintenance: NewMaintenanceService(repo, config.App.Location, log),
	}
}
