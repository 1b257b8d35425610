package usecase

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"

	"fleet-dispatch/internal/data/entity"
	"fleet-dispatch/internal/data/repository"
	"fleet-dispatch/internal/dto/request"
	"fleet-dispatch/internal/dto/response"
	"fleet-dispatch/internal/i18n"
	"fleet-dispatch/internal/legacy"
	"fleet-dispatch/internal/pricing"
	"fleet-dispatch/pkg/apperr"
	"fleet-dispatch/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var (
	uuidPattern            = regexp.MustCompile(`^[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}$`)
	quotationNumberPattern = regexp.MustCompile(`^QUO-\d+-\d+$`)
)

// LegacyBookings is the WordPress side of the booking store.
type LegacyBookings interface {
	Configured() bool
	FetchBookings(ctx context.Context, filter legacy.Filter) (*legacy.Result, error)
	FetchBooking(ctx context.Context, id string) (*legacy.SingleResult, error)
}

type BookingService interface {
	ListBookings(ctx context.Context, req *request.ListBookingsRequest) (*response.BookingListResponse, error)
	GetBooking(ctx context.Context, ref string) (*response.BookingDetailResponse, error)
	ListDriverBookings(ctx context.Context, driverID string, req *request.DriverBookingsRequest) ([]response.BookingResponse, error)
	CreateBooking(ctx context.Context, req *request.CreateBookingRequest) (*response.BookingResponse, string, error)

	// Mutations accept the booking UUID or its WordPress id and return the
	// message shown to the operator.
	UpdateBooking(ctx context.Context, ref string, req *request.UpdateBookingRequest) (*response.BookingResponse, string, error)
	RescheduleBooking(ctx context.Context, ref string, req *request.RescheduleBookingRequest) (*response.BookingResponse, string, error)
	CancelBooking(ctx context.Context, ref string) (string, error)
	DeleteBooking(ctx context.Context, ref string) (string, error)
	AssignBooking(ctx context.Context, ref string, req *request.AssignBookingRequest) (*response.BookingResponse, string, error)
	UnassignBooking(ctx context.Context, bookingID string, req *request.UnassignBookingRequest) (string, error)
}

type bookingService struct {
	repo    *repository.Repository
	legacy  LegacyBookings
	pricing PricingService
	now     func() time.Time
	loc     *time.Location
	log     *zap.Logger
}

func NewBookingService(repo *repository.Repository, wp LegacyBookings, pricer PricingService, loc *time.Location, log *zap.Logger) BookingService {
	if loc == nil {
		loc = time.UTC
	}
	return &bookingService{
		repo:    repo,
		legacy:  wp,
		pricing: pricer,
		now:     time.Now,
		loc:     loc,
		log:     log.With(zap.String("service", "booking")),
	}
}

func (s *bookingService) ListBookings(ctx context.Context, req *request.ListBookingsRequest) (*response.BookingListResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, validationError(errs)
	}

	filter := entity.BookingFilter{
		Status: req.Status,
		Limit:  req.Limit(),
		Offset: req.Offset(),
	}

	if req.Source != "legacy" {
		bookings, err := s.repo.Booking.FindAll(ctx, filter)
		if err != nil {
			return nil, apperr.Internal(err, "failed to list bookings")
		}
		if len(bookings) > 0 || !s.legacy.Configured() {
			total, err := s.repo.Booking.CountAll(ctx, filter)
			if err != nil {
				return nil, apperr.Internal(err, "failed to count bookings")
			}
			page := response.NewPaginatedResponse(response.BookingsToResponse(bookings), req.CurrentPage(), req.Limit(), total)
			return &response.BookingListResponse{PaginatedResponse: *page, Source: "local"}, nil
		}
		s.log.Info("No local bookings, reading WordPress", zap.String("status", req.Status))
	}

	result, err := s.legacy.FetchBookings(ctx, legacy.Filter{Status: req.Status, Limit: req.Limit(), Page: req.CurrentPage()})
	if err != nil {
		var attempts []legacy.Attempt
		if result != nil {
			attempts = result.Attempts
		}
		s.log.Error("WordPress booking fetch failed", zap.Error(err), zap.Int("attempts", len(attempts)))
		if errors.Is(err, legacy.ErrNotConfigured) {
			return nil, apperr.BadRequest("WordPress API is not configured")
		}
		return nil, apperr.Upstream(err, "failed to fetch bookings from WordPress").WithDetails(attempts)
	}

	now := s.now()
	bookings := make([]*entity.Booking, 0, len(result.Bookings))
	for _, record := range result.Bookings {
		b, err := legacy.MapRecord(record, now)
		if err != nil {
			s.log.Warn("Skipping WordPress record", zap.Error(err))
			continue
		}
		bookings = append(bookings, b)
	}

	total := int64(len(bookings))
	if result.Pagination != nil && result.Pagination.Total > 0 {
		total = int64(result.Pagination.Total)
	}

	page := response.NewPaginatedResponse(response.BookingsToResponse(bookings), req.CurrentPage(), req.Limit(), total)
	return &response.BookingListResponse{
		PaginatedResponse: *page,
		Source:            "legacy",
		Endpoint:          result.Endpoint,
		Attempts:          result.Attempts,
	}, nil
}

func (s *bookingService) GetBooking(ctx context.Context, ref string) (*response.BookingDetailResponse, error) {
	ref = strings.TrimSpace(ref)
	locale := localeOf(ctx, "")

	var (
		booking *entity.Booking
		err     error
	)
	isUUID := uuidPattern.MatchString(strings.ToLower(ref))
	switch {
	case quotationNumberPattern.MatchString(ref):
		booking, err = s.repo.Booking.FindByBookingNumber(ctx, ref)
	case isUUID:
		booking, err = s.repo.Booking.FindByID(ctx, uuid.MustParse(ref))
	default:
		booking, err = s.repo.Booking.FindByWPID(ctx, ref)
	}
	if err != nil {
		return nil, apperr.Internal(err, "failed to load booking")
	}

	if booking != nil {
		return s.detail(ctx, booking)
	}
	if isUUID {
		return nil, apperr.NotFound("%s", i18n.T(locale, "bookings.messages.notFoundUUID", i18n.Params{"id": ref}))
	}
	if !s.legacy.Configured() {
		return nil, apperr.NotFound("%s", i18n.T(locale, "bookings.messages.notFoundWordPress", i18n.Params{"id": ref}))
	}

	single, err := s.legacy.FetchBooking(ctx, ref)
	if err != nil {
		var attempts []legacy.Attempt
		if single != nil {
			attempts = single.Attempts
		}
		if errors.Is(err, legacy.ErrNotFound) {
			return nil, apperr.NotFound("%s", i18n.T(locale, "bookings.messages.notFoundWordPress", i18n.Params{"id": ref})).
				WithDetails(attempts)
		}
		s.log.Error("WordPress single booking fetch failed", zap.Error(err), zap.String("ref", ref))
		return nil, apperr.Upstream(err, "failed to fetch booking %s from WordPress", ref).WithDetails(attempts)
	}

	mapped, err := legacy.MapRecord(single.Booking, s.now())
	if err != nil {
		return nil, apperr.Upstream(err, "WordPress returned an unusable booking")
	}
	return &response.BookingDetailResponse{
		BookingResponse: response.BookingToResponse(mapped),
		Source:          "legacy",
	}, nil
}

// detail loads the assigned vehicle and driver side by side.
func (s *bookingService) detail(ctx context.Context, booking *entity.Booking) (*response.BookingDetailResponse, error) {
	var (
		vehicle *entity.Vehicle
		driver  *entity.Driver
	)

	g, gctx := errgroup.WithContext(ctx)
	if booking.VehicleID != nil {
		g.Go(func() error {
			v, err := s.repo.Vehicle.FindByID(gctx, *booking.VehicleID)
			vehicle = v
			return err
		})
	}
	if booking.DriverID != nil {
		g.Go(func() error {
			d, err := s.repo.Driver.FindByID(gctx, *booking.DriverID)
			driver = d
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, apperr.Internal(err, "failed to load booking assignment")
	}

	return &response.BookingDetailResponse{
		BookingResponse: response.BookingToResponse(booking),
		Vehicle:         response.VehicleToSummary(vehicle),
		Driver:          response.DriverToSummary(driver),
		Source:          "local",
	}, nil
}

func (s *bookingService) ListDriverBookings(ctx context.Context, driverID string, req *request.DriverBookingsRequest) ([]response.BookingResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, validationError(errs)
	}
	id, err := parseID(driverID, "driver id")
	if err != nil {
		return nil, err
	}

	filter := entity.BookingFilter{DriverID: &id, Status: req.Status, Limit: req.Limit}
	if req.Upcoming {
		today := s.today()
		filter.FromDate = &today
	}

	bookings, err := s.repo.Booking.FindAll(ctx, filter)
	if err != nil {
		return nil, apperr.Internal(err, "failed to list driver bookings")
	}
	return response.BookingsToResponse(bookings), nil
}

// today is the operator's calendar date in the UTC-midnight form booking
// dates are stored in.
func (s *bookingService) today() time.Time {
	return calendarDay(s.now(), s.loc)
}

func (s *bookingService) CreateBooking(ctx context.Context, req *request.CreateBookingRequest) (*response.BookingResponse, string, error) {
	locale := localeOf(ctx, "")
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create booking validation failed", zap.Any("errors", errs))
		return nil, "", apperr.Validation("%s", i18n.T(locale, "bookings.messages.requiredFieldsError", nil)).WithDetails(errs)
	}

	date, _ := time.Parse(time.DateOnly, req.Date)
	serviceTypeID, err := parseOptionalID(req.ServiceTypeID, "service_type_id")
	if err != nil {
		return nil, "", err
	}
	vehicleID, err := parseOptionalID(req.VehicleID, "vehicle_id")
	if err != nil {
		return nil, "", err
	}
	driverID, err := parseOptionalID(req.DriverID, "driver_id")
	if err != nil {
		return nil, "", err
	}

	now := s.now()
	email := utils.NormalizeEmail(req.CustomerEmail)
	booking := &entity.Booking{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		ServiceName:     req.ServiceName,
		ServiceTypeID:   serviceTypeID,
		Date:            date,
		Time:            req.Time,
		Status:          entity.BookingStatusPending,
		CustomerName:    req.CustomerName,
		CustomerEmail:   &email,
		CustomerPhone:   req.CustomerPhone,
		PickupLocation:  req.PickupLocation,
		DropoffLocation: req.DropoffLocation,
		DurationHours:   req.DurationHours,
		Distance:        req.Distance,
		Notes:           req.Notes,
		CouponCode:      req.CouponCode,
		BillingAddress:  req.BillingAddress,
		CreatedBy:       utils.ActorFromContext(ctx),
	}

	if serviceTypeID != nil {
		st, err := s.repo.ServiceType.FindByID(ctx, *serviceTypeID)
		if err != nil {
			return nil, "", apperr.Internal(err, "failed to load service type")
		}
		if st == nil {
			return nil, "", apperr.NotFound("Service type not found")
		}
		booking.ServiceType = &st.Name
	}

	if vehicleID != nil {
		vehicle, err := s.repo.Vehicle.FindByID(ctx, *vehicleID)
		if err != nil {
			return nil, "", apperr.Internal(err, "failed to load vehicle")
		}
		if vehicle == nil {
			return nil, "", apperr.NotFound("Vehicle not found")
		}
		name := vehicle.DisplayName()
		booking.VehicleID = vehicleID
		booking.VehicleName = &name
	}

	if driverID != nil {
		driver, err := s.repo.Driver.FindByID(ctx, *driverID)
		if err != nil {
			return nil, "", apperr.Internal(err, "failed to load driver")
		}
		if driver == nil {
			return nil, "", apperr.NotFound("Driver not found")
		}
		booking.DriverID = driverID
		booking.Status = entity.BookingStatusAssigned
	}

	if err := s.applyPrice(ctx, booking, req); err != nil {
		return nil, "", err
	}

	customer := &entity.Customer{Email: email, Name: req.CustomerName, Phone: req.CustomerPhone}
	if err := s.repo.Customer.Upsert(ctx, customer); err != nil {
		return nil, "", apperr.Internal(err, "failed to save customer")
	}
	booking.CustomerID = &customer.ID

	seq, err := s.repo.Booking.NextBookingNumber(ctx)
	if err != nil {
		return nil, "", apperr.Internal(err, "failed to allocate booking number")
	}
	number := utils.FormatBookingNumber(seq)
	booking.BookingNumber = &number

	if err := s.repo.Booking.Create(ctx, booking); err != nil {
		return nil, "", apperr.Internal(err, "failed to create booking")
	}

	s.log.Info("Booking created",
		zap.String("booking_id", booking.ID.String()),
		zap.String("booking_number", number),
		zap.String("customer_email", email),
	)

	resp := response.BookingToResponse(booking)
	return &resp, i18n.T(locale, "bookings.messages.created", i18n.Params{"id": number}), nil
}

// applyPrice either prices the booking from the catalog or records the
// amount given by the operator.
func (s *bookingService) applyPrice(ctx context.Context, booking *entity.Booking, req *request.CreateBookingRequest) error {
	if req.CalculatePrice {
		if req.ServiceTypeID == nil || req.VehicleID == nil {
			return apperr.Validation("service_type_id and vehicle_id are required to calculate a price")
		}
		duration := 1
		if req.DurationHours != nil && *req.DurationHours >= 1 {
			duration = int(*req.DurationHours)
		}
		calc := &request.CalculatePriceRequest{
			ServiceTypeID: *req.ServiceTypeID,
			VehicleID:     *req.VehicleID,
			DurationHours: duration,
			PickupDate:    req.Date,
			PickupTime:    req.Time,
			TeamLocation:  req.TeamLocation,
		}
		if req.HoursPerDay != nil {
			calc.HoursPerDay = *req.HoursPerDay
		}
		if req.CouponCode != nil {
			calc.CouponCode = *req.CouponCode
		}

		price, err := s.pricing.CalculatePrice(ctx, calc)
		if err != nil {
			return err
		}
		formatted := pricing.FormatAmount(price.TotalAmount, price.Currency)
		booking.PriceAmount = &price.TotalAmount
		booking.PriceCurrency = &price.Currency
		booking.PriceFormatted = &formatted
		if price.CouponDiscountPercentage > 0 {
			booking.CouponDiscount = &price.CouponDiscountPercentage
		}
		return nil
	}

	if req.PriceAmount != nil {
		currency := pricing.BaseCurrency
		if req.PriceCurrency != nil && *req.PriceCurrency != "" {
			currency = strings.ToUpper(*req.PriceCurrency)
		}
		formatted := pricing.FormatAmount(*req.PriceAmount, currency)
		booking.PriceAmount = req.PriceAmount
		booking.PriceCurrency = &currency
		booking.PriceFormatted = &formatted
	}
	return nil
}

// resolve finds a booking by UUID or, failing the UUID shape, by WordPress id.
func (s *bookingService) resolve(ctx context.Context, ref string) (*entity.Booking, error) {
	ref = strings.TrimSpace(ref)
	locale := localeOf(ctx, "")

	if uuidPattern.MatchString(strings.ToLower(ref)) {
		booking, err := s.repo.Booking.FindByID(ctx, uuid.MustParse(ref))
		if err != nil {
			return nil, apperr.Internal(err, "failed to load booking")
		}
		if booking == nil {
			return nil, apperr.NotFound("%s", i18n.T(locale, "bookings.messages.notFoundUUID", i18n.Params{"id": ref}))
		}
		return booking, nil
	}

	booking, err := s.repo.Booking.FindByWPID(ctx, ref)
	if err != nil {
		return nil, apperr.Internal(err, "failed to load booking")
	}
	if booking == nil {
		return nil, apperr.NotFound("%s", i18n.T(locale, "bookings.messages.notFoundWordPress", i18n.Params{"id": ref}))
	}
	return booking, nil
}

func (s *bookingService) UpdateBooking(ctx context.Context, ref string, req *request.UpdateBookingRequest) (*response.BookingResponse, string, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, "", validationError(errs)
	}

	booking, err := s.resolve(ctx, ref)
	if err != nil {
		return nil, "", err
	}

	if err := s.applyUpdate(ctx, booking, req); err != nil {
		return nil, "", err
	}
	booking.UpdatedAt = s.now()

	if err := s.repo.Booking.Update(ctx, booking); err != nil {
		if isRowMissing(err) {
			return nil, "", apperr.NotFound("Booking %s no longer exists", ref)
		}
		return nil, "", apperr.Internal(err, "failed to update booking")
	}

	s.log.Info("Booking updated", zap.String("booking_id", booking.ID.String()), zap.String("ref", ref))

	resp := response.BookingToResponse(booking)
	return &resp, i18n.T(localeOf(ctx, ""), "bookings.messages.updated", i18n.Params{"id": ref}), nil
}

// applyUpdate copies the fields present in req. Identity and sync columns are
// not part of the request and cannot change here.
func (s *bookingService) applyUpdate(ctx context.Context, b *entity.Booking, req *request.UpdateBookingRequest) error {
	if req.ServiceName != nil {
		b.ServiceName = *req.ServiceName
	}
	if req.ServiceTypeID != nil {
		id, err := parseOptionalID(req.ServiceTypeID, "service_type_id")
		if err != nil {
			return err
		}
		b.ServiceTypeID = id
	}
	if req.Date != nil {
		date, err := time.Parse(time.DateOnly, *req.Date)
		if err != nil {
			return apperr.BadRequest("invalid date: %s", *req.Date)
		}
		b.Date = date
	}
	if req.Time != nil {
		b.Time = *req.Time
	}
	if req.Status != nil {
		b.Status = entity.BookingStatus(*req.Status)
	}
	if req.CustomerName != nil {
		b.CustomerName = req.CustomerName
	}
	if req.CustomerEmail != nil {
		email := utils.NormalizeEmail(*req.CustomerEmail)
		b.CustomerEmail = &email
	}
	if req.CustomerPhone != nil {
		b.CustomerPhone = req.CustomerPhone
	}
	if req.VehicleID != nil {
		id, err := parseID(*req.VehicleID, "vehicle_id")
		if err != nil {
			return err
		}
		vehicle, err := s.repo.Vehicle.FindByID(ctx, id)
		if err != nil {
			return apperr.Internal(err, "failed to load vehicle")
		}
		if vehicle == nil {
			return apperr.NotFound("Vehicle not found")
		}
		name := vehicle.DisplayName()
		b.VehicleID = &id
		b.VehicleName = &name
	}
	if req.PickupLocation != nil {
		b.PickupLocation = req.PickupLocation
	}
	if req.DropoffLocation != nil {
		b.DropoffLocation = req.DropoffLocation
	}
	if req.DurationHours != nil {
		b.DurationHours = req.DurationHours
	}
	if req.Distance != nil {
		b.Distance = req.Distance
	}
	if req.Notes != nil {
		b.Notes = req.Notes
	}
	if req.PriceCurrency != nil {
		currency := strings.ToUpper(*req.PriceCurrency)
		b.PriceCurrency = &currency
	}
	if req.PriceAmount != nil {
		b.PriceAmount = req.PriceAmount
	}
	if b.PriceAmount != nil && (req.PriceAmount != nil || req.PriceCurrency != nil) {
		currency := pricing.BaseCurrency
		if b.PriceCurrency != nil {
			currency = *b.PriceCurrency
		}
		formatted := pricing.FormatAmount(*b.PriceAmount, currency)
		b.PriceFormatted = &formatted
	}
	if req.PaymentStatus != nil {
		b.PaymentStatus = req.PaymentStatus
	}
	if req.PaymentMethod != nil {
		b.PaymentMethod = req.PaymentMethod
	}
	if req.PaymentLink != nil {
		b.PaymentLink = req.PaymentLink
	}
	if req.CouponCode != nil {
		b.CouponCode = req.CouponCode
	}
	if req.CouponDiscount != nil {
		b.CouponDiscount = req.CouponDiscount
	}
	mergeBilling(&b.BillingAddress, req.BillingAddress)
	return nil
}

func mergeBilling(dst *entity.BillingAddress, src entity.BillingAddress) {
	set := func(dst **string, src *string) {
		if src != nil {
			*dst = src
		}
	}
	set(&dst.CompanyName, src.CompanyName)
	set(&dst.TaxNumber, src.TaxNumber)
	set(&dst.StreetName, src.StreetName)
	set(&dst.StreetNumber, src.StreetNumber)
	set(&dst.City, src.City)
	set(&dst.State, src.State)
	set(&dst.PostalCode, src.PostalCode)
	set(&dst.Country, src.Country)
}

func (s *bookingService) RescheduleBooking(ctx context.Context, ref string, req *request.RescheduleBookingRequest) (*response.BookingResponse, string, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, "", validationError(errs)
	}

	booking, err := s.resolve(ctx, ref)
	if err != nil {
		return nil, "", err
	}

	date, _ := time.Parse(time.DateOnly, req.Date)
	if err := s.repo.Booking.Reschedule(ctx, booking.ID, date, req.Time); err != nil {
		if isRowMissing(err) {
			return nil, "", apperr.NotFound("Booking %s no longer exists", ref)
		}
		return nil, "", apperr.Internal(err, "failed to reschedule booking")
	}
	booking.Date = date
	booking.Time = req.Time
	booking.UpdatedAt = s.now()

	s.log.Info("Booking rescheduled",
		zap.String("booking_id", booking.ID.String()),
		zap.String("date", req.Date),
		zap.String("time", req.Time),
	)

	resp := response.BookingToResponse(booking)
	return &resp, i18n.T(localeOf(ctx, ""), "bookings.messages.rescheduled", i18n.Params{"id": ref}), nil
}

func (s *bookingService) CancelBooking(ctx context.Context, ref string) (string, error) {
	booking, err := s.resolve(ctx, ref)
	if err != nil {
		return "", err
	}

	if err := s.repo.Booking.UpdateStatus(ctx, booking.ID, entity.BookingStatusCancelled); err != nil {
		if isRowMissing(err) {
			return "", apperr.NotFound("Booking %s no longer exists", ref)
		}
		return "", apperr.Internal(err, "failed to cancel booking")
	}

	s.log.Info("Booking cancelled", zap.String("booking_id", booking.ID.String()), zap.String("ref", ref))
	return i18n.T(localeOf(ctx, ""), "bookings.messages.cancelled", i18n.Params{"id": ref}), nil
}

func (s *bookingService) DeleteBooking(ctx context.Context, ref string) (string, error) {
	booking, err := s.resolve(ctx, ref)
	if err != nil {
		return "", err
	}

	if err := s.repo.Booking.Delete(ctx, booking.ID); err != nil {
		if isRowMissing(err) {
			return "", apperr.NotFound("Booking %s no longer exists", ref)
		}
		return "", apperr.Internal(err, "failed to delete booking")
	}

	return i18n.T(localeOf(ctx, ""), "bookings.messages.deleted", i18n.Params{"id": ref}), nil
}

func (s *bookingService) AssignBooking(ctx context.Context, ref string, req *request.AssignBookingRequest) (*response.BookingResponse, string, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, "", validationError(errs)
	}

	booking, err := s.resolve(ctx, ref)
	if err != nil {
		return nil, "", err
	}

	driverID, err := parseID(req.DriverID, "driver_id")
	if err != nil {
		return nil, "", err
	}
	driver, err := s.repo.Driver.FindByID(ctx, driverID)
	if err != nil {
		return nil, "", apperr.Internal(err, "failed to load driver")
	}
	if driver == nil {
		return nil, "", apperr.NotFound("Driver not found")
	}

	vehicleID, err := parseOptionalID(req.VehicleID, "vehicle_id")
	if err != nil {
		return nil, "", err
	}
	if vehicleID != nil {
		vehicle, err := s.repo.Vehicle.FindByID(ctx, *vehicleID)
		if err != nil {
			return nil, "", apperr.Internal(err, "failed to load vehicle")
		}
		if vehicle == nil {
			return nil, "", apperr.NotFound("Vehicle not found")
		}
		booking.VehicleID = vehicleID
	}

	if err := s.repo.Booking.Assign(ctx, booking.ID, &driverID, vehicleID); err != nil {
		if isRowMissing(err) {
			return nil, "", apperr.NotFound("Booking %s no longer exists", ref)
		}
		return nil, "", apperr.Internal(err, "failed to assign booking")
	}
	booking.DriverID = &driverID
	booking.Status = entity.BookingStatusAssigned

	s.log.Info("Booking assigned",
		zap.String("booking_id", booking.ID.String()),
		zap.String("driver_id", driverID.String()),
	)

	resp := response.BookingToResponse(booking)
	return &resp, i18n.T(localeOf(ctx, ""), "bookings.messages.assigned", i18n.Params{"id": ref}), nil
}

func (s *bookingService) UnassignBooking(ctx context.Context, bookingID string, req *request.UnassignBookingRequest) (string, error) {
	locale := localeOf(ctx, "")
	if strings.TrimSpace(bookingID) == "" || strings.TrimSpace(req.DriverID) == "" {
		return "", apperr.Validation("%s", i18n.T(locale, "bookings.messages.unassignRequired", nil))
	}

	id, err := parseID(bookingID, "booking id")
	if err != nil {
		return "", err
	}
	driverID, err := parseID(req.DriverID, "driver_id")
	if err != nil {
		return "", err
	}

	changed, err := s.repo.Booking.Unassign(ctx, id, driverID)
	if err != nil {
		return "", apperr.Internal(err, "failed to unassign driver")
	}
	if !changed {
		return "", apperr.NotFound("%s", i18n.T(locale, "bookings.messages.unassignFailed", nil))
	}

	s.log.Info("Driver unassigned",
		zap.String("booking_id", id.String()),
		zap.String("driver_id", driverID.String()),
	)
	return i18n.T(locale, "bookings.messages.unassigned", nil), nil
}
