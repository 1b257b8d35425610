package adaptor

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"fleet-dispatch/internal/usecase"
	"fleet-dispatch/pkg/apperr"
	"fleet-dispatch/pkg/utils"

	"go.uber.org/zap"
)

type Handler struct {
	Auth      *AuthHandler
	Booking   *BookingHandler
	Quotation *QuotationHandler
	Pricing   *PricingHandler
	Fleet     *FleetHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		Auth:      NewAuthHandler(service.Auth, log),
		Booking:   NewBookingHandler(service.Booking, service.BookingSync, log),
		Quotation: NewQuotationHandler(service.Quotation, log),
		Pricing:   NewPricingHandler(service.Pricing, log),
		Fleet:     NewFleetHandler(service.Fleet, service.Maintenance, log),
	}
}

// decodeJSON reads the body into dst. An empty body leaves dst untouched.
func decodeJSON(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// respondError writes err with the status its kind maps to. Server side
// failures are logged with the cause and answered with a generic message.
func respondError(w http.ResponseWriter, log *zap.Logger, err error, operation string) {
	appErr, ok := apperr.As(err)
	if !ok {
		log.Error("Failed to "+operation, zap.Error(err))
		utils.ResponseInternalError(w, "Internal server error")
		return
	}

	status := appErr.HTTPStatus()
	switch {
	case status >= http.StatusInternalServerError && appErr.Kind != apperr.KindUpstream:
		log.Error("Failed to "+operation, zap.Error(err))
		utils.ResponseInternalError(w, "Internal server error")
		return
	case status >= http.StatusInternalServerError:
		log.Error(operation+" failed upstream", zap.Error(err))
	default:
		log.Warn(operation+" failed", zap.Error(err), zap.String("kind", appErr.Kind.String()))
	}

	utils.ResponseJSON(w, status, false, appErr.Message, nil, appErr.Details)
}
