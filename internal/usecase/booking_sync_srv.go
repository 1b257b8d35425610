package usecase

import (
	"context"
	"errors"
	"time"

	"fleet-dispatch/internal/data/entity"
	"fleet-dispatch/internal/data/repository"
	"fleet-dispatch/internal/dto/request"
	"fleet-dispatch/internal/dto/response"
	"fleet-dispatch/internal/i18n"
	"fleet-dispatch/internal/legacy"
	"fleet-dispatch/pkg/apperr"
	"fleet-dispatch/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SyncOutcome is a bulk sync summary. Success is false only when records
// were found and none of them could be stored.
type SyncOutcome struct {
	Result  response.SyncResponse
	Message string
	Success bool
}

type BookingSyncService interface {
	SyncBookings(ctx context.Context, req *request.SyncBookingsRequest) (*SyncOutcome, error)
	SyncBooking(ctx context.Context, wpID string) (*response.BookingResponse, string, error)
}

type bookingSyncService struct {
	repo   *repository.Repository
	legacy LegacyBookings
	now    func() time.Time
	log    *zap.Logger
}

func NewBookingSyncService(repo *repository.Repository, wp LegacyBookings, log *zap.Logger) BookingSyncService {
	return &bookingSyncService{
		repo:   repo,
		legacy: wp,
		now:    time.Now,
		log:    log.With(zap.String("service", "booking_sync")),
	}
}

func (s *bookingSyncService) SyncBookings(ctx context.Context, req *request.SyncBookingsRequest) (*SyncOutcome, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, validationError(errs)
	}

	limit := req.Limit
	if limit <= 0 {
		limit = 100
	}

	result, err := s.legacy.FetchBookings(ctx, legacy.Filter{Status: req.Status, Limit: limit, Page: 1})
	if err != nil {
		if errors.Is(err, legacy.ErrNotConfigured) {
			return nil, apperr.BadRequest("WordPress API is not configured")
		}
		var attempts []legacy.Attempt
		if result != nil {
			attempts = result.Attempts
		}
		s.log.Error("Sync fetch failed", zap.Error(err), zap.Int("attempts", len(attempts)))
		return nil, apperr.Upstream(err, "failed to fetch bookings from WordPress").WithDetails(attempts)
	}

	locale := localeOf(ctx, "")
	outcome := &SyncOutcome{Success: true}
	if len(result.Bookings) == 0 {
		outcome.Message = i18n.T(locale, "bookings.messages.syncEmpty", nil)
		return outcome, nil
	}

	now := s.now()
	for _, record := range result.Bookings {
		booking, err := legacy.MapRecord(record, now)
		if errors.Is(err, legacy.ErrMissingID) {
			s.log.Warn("Skipping WordPress record without id")
			continue
		}
		if err != nil {
			outcome.Result.Errors = append(outcome.Result.Errors, response.SyncErrorResponse{WPID: record.ID(), Error: err.Error()})
			continue
		}

		inserted, err := s.upsert(ctx, booking, now)
		if err != nil {
			s.log.Error("Failed to store synced booking", zap.Error(err), zap.Stringp("wp_id", booking.WPID))
			outcome.Result.Errors = append(outcome.Result.Errors, response.SyncErrorResponse{
				WPID:  utils.StringValue(booking.WPID),
				Error: err.Error(),
			})
			continue
		}
		if inserted {
			outcome.Result.Created++
		} else {
			outcome.Result.Updated++
		}
	}

	r := &outcome.Result
	r.Total = r.Created + r.Updated
	params := i18n.Params{"count": r.Total, "created": r.Created, "updated": r.Updated, "errors": len(r.Errors)}
	switch {
	case len(r.Errors) > 0 && r.Total == 0:
		outcome.Success = false
		outcome.Message = i18n.T(locale, "bookings.messages.syncFailed", params)
	case len(r.Errors) > 0:
		outcome.Message = i18n.T(locale, "bookings.messages.syncPartial", params)
	default:
		outcome.Message = i18n.T(locale, "bookings.messages.syncSuccess", params)
	}

	s.log.Info("Bookings synced",
		zap.String("endpoint", result.Endpoint),
		zap.Int("created", r.Created),
		zap.Int("updated", r.Updated),
		zap.Int("errors", len(r.Errors)),
	)
	return outcome, nil
}

func (s *bookingSyncService) SyncBooking(ctx context.Context, wpID string) (*response.BookingResponse, string, error) {
	locale := localeOf(ctx, "")

	single, err := s.legacy.FetchBooking(ctx, wpID)
	if err != nil {
		var attempts []legacy.Attempt
		if single != nil {
			attempts = single.Attempts
		}
		switch {
		case errors.Is(err, legacy.ErrNotConfigured):
			return nil, "", apperr.BadRequest("WordPress API is not configured")
		case errors.Is(err, legacy.ErrNotFound):
			return nil, "", apperr.NotFound("%s", i18n.T(locale, "bookings.messages.notFoundWordPress", i18n.Params{"id": wpID})).
				WithDetails(attempts)
		default:
			return nil, "", apperr.Upstream(err, "failed to fetch booking %s from WordPress", wpID).WithDetails(attempts)
		}
	}

	now := s.now()
	booking, err := legacy.MapRecord(single.Booking, now)
	if err != nil {
		return nil, "", apperr.Upstream(err, "WordPress returned an unusable booking")
	}

	inserted, err := s.upsert(ctx, booking, now)
	if err != nil {
		return nil, "", apperr.Internal(err, "failed to store booking %s", wpID)
	}

	created, updated := 0, 1
	if inserted {
		created, updated = 1, 0
	}
	msg := i18n.T(locale, "bookings.messages.syncSuccess", i18n.Params{"count": 1, "created": created, "updated": updated})

	resp := response.BookingToResponse(booking)
	return &resp, msg, nil
}

func (s *bookingSyncService) upsert(ctx context.Context, booking *entity.Booking, now time.Time) (bool, error) {
	booking.ID = uuid.New()
	booking.CreatedAt = now
	booking.UpdatedAt = now

	if booking.CustomerEmail != nil {
		customer := &entity.Customer{Email: *booking.CustomerEmail, Name: booking.CustomerName, Phone: booking.CustomerPhone}
		if err := s.repo.Customer.Upsert(ctx, customer); err != nil {
			return false, err
		}
		booking.CustomerID = &customer.ID
	}

	return s.repo.Booking.UpsertByWPID(ctx, booking)
}
