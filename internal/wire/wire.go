package wire

import (
	"net/http"

	"fleet-dispatch/internal/adaptor"
	"fleet-dispatch/internal/data/repository"
	"fleet-dispatch/internal/legacy"
	"fleet-dispatch/internal/usecase"
	"fleet-dispatch/pkg/idempotency"
	"fleet-dispatch/pkg/mailer"
	"fleet-dispatch/pkg/middleware"
	"fleet-dispatch/pkg/utils"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type App struct {
	Router  *chi.Mux
	Service *usecase.Service
}

// Wiring builds services, handlers and the router from the shared
// infrastructure.
func Wiring(repo *repository.Repository, rdb *redis.Client, sender mailer.Sender, config *utils.Config, logger *zap.Logger) *App {
	wp := legacy.NewClient(config.Legacy)
	if !wp.Configured() {
		logger.Warn("WordPress API not configured; legacy bookings disabled")
	}

	rates := usecase.NewRateProvider(rdb, config.Pricing.RatesURL, 0, logger)
	service := usecase.NewService(repo, wp, sender, rates, config, logger)
	handler := adaptor.NewHandler(service, logger)
	keys := idempotency.NewStore(rdb, config.Redis.IdempotencyTTL)

	return &App{
		Router:  setupRouter(handler, service, keys, config, logger),
		Service: service,
	}
}

func setupRouter(
	handler *adaptor.Handler,
	service *usecase.Service,
	keys middleware.Keys,
	config *utils.Config,
	logger *zap.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(middleware.SecureHeaders(config.App.Production, logger))
	r.Use(middleware.CORS())
	r.Use(middleware.RateLimit(config.App.RateLimit))
	if config.App.RequestTimeout > 0 {
		r.Use(chimw.Timeout(config.App.RequestTimeout))
	}
	r.Use(middleware.Locale)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		utils.ResponseSuccess(w, "OK", map[string]string{"app": config.App.Name})
	})

	r.Route("/api", func(r chi.Router) {
		wireAuth(r, handler.Auth, service.Auth, logger)

		r.Group(func(r chi.Router) {
			r.Use(middleware.AuthSession(service.Auth, logger))
			r.Use(middleware.Idempotency(keys, logger))

			wireBooking(r, handler.Booking, logger)
			wireQuotation(r, handler.Quotation)
			wirePricing(r, handler.Pricing)
			wireFleet(r, handler.Fleet, logger)
		})
	})

	return r
}
