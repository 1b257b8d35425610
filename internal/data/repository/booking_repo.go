package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"fleet-dispatch/internal/data/entity"
	"fleet-dispatch/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type BookingRepository interface {
	Create(ctx context.Context, booking *entity.Booking) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error)
	FindByWPID(ctx context.Context, wpID string) (*entity.Booking, error)
	FindByBookingNumber(ctx context.Context, number string) (*entity.Booking, error)
	FindAll(ctx context.Context, filter entity.BookingFilter) ([]*entity.Booking, error)
	CountAll(ctx context.Context, filter entity.BookingFilter) (int64, error)
	Update(ctx context.Context, booking *entity.Booking) error
	Delete(ctx context.Context, id uuid.UUID) error

	UpdateStatus(ctx context.Context, id uuid.UUID, status entity.BookingStatus) error
	Reschedule(ctx context.Context, id uuid.UUID, date time.Time, clock string) error
	Assign(ctx context.Context, id uuid.UUID, driverID, vehicleID *uuid.UUID) error
	Unassign(ctx context.Context, id, driverID uuid.UUID) (bool, error)
	NextBookingNumber(ctx context.Context) (int64, error)
	UpsertByWPID(ctx context.Context, booking *entity.Booking) (bool, error)
}

type bookingRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewBookingRepository(db database.PgxIface, log *zap.Logger) BookingRepository {
	return &bookingRepository{
		db:  db,
		log: log.With(zap.String("repository", "booking")),
	}
}

const bookingColumns = `
	id, wp_id, booking_number, customer_id, vehicle_id, driver_id,
	service_name, service_type_id, service_type, date, time, status,
	customer_name, customer_email, customer_phone, pickup_location, dropoff_location,
	duration_hours, distance, notes, vehicle_name,
	price_amount, price_currency, price_formatted,
	payment_status, payment_method, payment_link, coupon_code, coupon_discount_percentage,
	billing_company_name, billing_tax_number, billing_street_name, billing_street_number,
	billing_city, billing_state, billing_postal_code, billing_country,
	meta, created_by, synced_at, created_at, updated_at`

func scanBooking(row pgx.Row) (*entity.Booking, error) {
	var b entity.Booking
	err := row.Scan(
		&b.ID, &b.WPID, &b.BookingNumber, &b.CustomerID, &b.VehicleID, &b.DriverID,
		&b.ServiceName, &b.ServiceTypeID, &b.ServiceType, &b.Date, &b.Time, &b.Status,
		&b.CustomerName, &b.CustomerEmail, &b.CustomerPhone, &b.PickupLocation, &b.DropoffLocation,
		&b.DurationHours, &b.Distance, &b.Notes, &b.VehicleName,
		&b.PriceAmount, &b.PriceCurrency, &b.PriceFormatted,
		&b.PaymentStatus, &b.PaymentMethod, &b.PaymentLink, &b.CouponCode, &b.CouponDiscount,
		&b.CompanyName, &b.TaxNumber, &b.StreetName, &b.StreetNumber,
		&b.City, &b.State, &b.PostalCode, &b.Country,
		&b.Meta, &b.CreatedBy, &b.SyncedAt, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// bookingValues lists every column after id in bookingColumns order, minus
// created_at and updated_at.
func bookingValues(b *entity.Booking) []any {
	return []any{
		b.WPID, b.BookingNumber, b.CustomerID, b.VehicleID, b.DriverID,
		b.ServiceName, b.ServiceTypeID, b.ServiceType, b.Date, b.Time, b.Status,
		b.CustomerName, b.CustomerEmail, b.CustomerPhone, b.PickupLocation, b.DropoffLocation,
		b.DurationHours, b.Distance, b.Notes, b.VehicleName,
		b.PriceAmount, b.PriceCurrency, b.PriceFormatted,
		b.PaymentStatus, b.PaymentMethod, b.PaymentLink, b.CouponCode, b.CouponDiscount,
		b.CompanyName, b.TaxNumber, b.StreetName, b.StreetNumber,
		b.City, b.State, b.PostalCode, b.Country,
		b.Meta, b.CreatedBy, b.SyncedAt,
	}
}

func (r *bookingRepository) Create(ctx context.Context, booking *entity.Booking) error {
	query := `
		INSERT INTO bookings (` + bookingColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17,
		        $18, $19, $20, $21, $22, $23, $24, $25, $26, $27, $28, $29, $30, $31, $32,
		        $33, $34, $35, $36, $37, $38, $39, $40, $41, $42)
	`

	args := append([]any{booking.ID}, bookingValues(booking)...)
	args = append(args, booking.CreatedAt, booking.UpdatedAt)

	_, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to create booking",
			zap.Error(err),
			zap.String("booking_id", booking.ID.String()),
			zap.Stringp("booking_number", booking.BookingNumber),
		)
		return fmt.Errorf("create booking %s: %w", booking.ID, err)
	}

	return nil
}

func (r *bookingRepository) findOne(ctx context.Context, where string, arg any) (*entity.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE ` + where

	booking, err := scanBooking(r.db.QueryRow(ctx, query, arg))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find booking",
			zap.Error(err),
			zap.String("where", where),
			zap.Any("value", arg),
		)
		return nil, fmt.Errorf("find booking where %s: %w", where, err)
	}

	return booking, nil
}

func (r *bookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	return r.findOne(ctx, "id = $1", id)
}

func (r *bookingRepository) FindByWPID(ctx context.Context, wpID string) (*entity.Booking, error) {
	return r.findOne(ctx, "wp_id = $1", wpID)
}

func (r *bookingRepository) FindByBookingNumber(ctx context.Context, number string) (*entity.Booking, error) {
	return r.findOne(ctx, "booking_number = $1", number)
}

func bookingWhere(filter entity.BookingFilter) (string, []any) {
	var sb strings.Builder
	sb.WriteString(" WHERE 1 = 1")
	args := []any{}

	if filter.Status != "" && filter.Status != "all" {
		args = append(args, filter.Status)
		sb.WriteString(fmt.Sprintf(" AND status = $%d", len(args)))
	}
	if filter.DriverID != nil {
		args = append(args, *filter.DriverID)
		sb.WriteString(fmt.Sprintf(" AND driver_id = $%d", len(args)))
	}
	if filter.FromDate != nil {
		args = append(args, *filter.FromDate)
		sb.WriteString(fmt.Sprintf(" AND date >= $%d", len(args)))
	}
	return sb.String(), args
}

func (r *bookingRepository) FindAll(ctx context.Context, filter entity.BookingFilter) ([]*entity.Booking, error) {
	where, args := bookingWhere(filter)

	order := " ORDER BY date DESC, time DESC"
	if filter.FromDate != nil {
		// upcoming lists read soonest first
		order = " ORDER BY date ASC, time ASC"
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 10
	}
	args = append(args, limit, filter.Offset)
	query := `SELECT ` + bookingColumns + ` FROM bookings` + where + order +
		fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to find bookings",
			zap.Error(err),
			zap.String("status", filter.Status),
			zap.Int("limit", limit),
			zap.Int("offset", filter.Offset),
		)
		return nil, fmt.Errorf("find bookings: %w", err)
	}
	defer rows.Close()

	var bookings []*entity.Booking
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			r.log.Error("Failed to scan booking row", zap.Error(err))
			return nil, fmt.Errorf("scan booking row: %w", err)
		}
		bookings = append(bookings, booking)
	}

	if err := rows.Err(); err != nil {
		r.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("iterate booking rows: %w", err)
	}

	return bookings, nil
}

func (r *bookingRepository) CountAll(ctx context.Context, filter entity.BookingFilter) (int64, error) {
	where, args := bookingWhere(filter)

	var count int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM bookings`+where, args...).Scan(&count); err != nil {
		r.log.Error("Failed to count bookings", zap.Error(err), zap.String("status", filter.Status))
		return 0, fmt.Errorf("count bookings: %w", err)
	}

	return count, nil
}

func (r *bookingRepository) Update(ctx context.Context, booking *entity.Booking) error {
	query := `
		UPDATE bookings
		SET wp_id = $2, booking_number = $3, customer_id = $4, vehicle_id = $5, driver_id = $6,
		    service_name = $7, service_type_id = $8, service_type = $9, date = $10, time = $11, status = $12,
		    customer_name = $13, customer_email = $14, customer_phone = $15,
		    pickup_location = $16, dropoff_location = $17, duration_hours = $18, distance = $19,
		    notes = $20, vehicle_name = $21, price_amount = $22, price_currency = $23, price_formatted = $24,
		    payment_status = $25, payment_method = $26, payment_link = $27,
		    coupon_code = $28, coupon_discount_percentage = $29,
		    billing_company_name = $30, billing_tax_number = $31, billing_street_name = $32,
		    billing_street_number = $33, billing_city = $34, billing_state = $35,
		    billing_postal_code = $36, billing_country = $37,
		    meta = $38, created_by = $39, synced_at = $40, updated_at = $41
		WHERE id = $1
	`

	args := append([]any{booking.ID}, bookingValues(booking)...)
	args = append(args, booking.UpdatedAt)

	result, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to update booking",
			zap.Error(err),
			zap.String("booking_id", booking.ID.String()),
		)
		return fmt.Errorf("update booking %s: %w", booking.ID, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("booking %s: %w", booking.ID, ErrNotFound)
	}

	return nil
}

func (r *bookingRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.Exec(ctx, `DELETE FROM bookings WHERE id = $1`, id)
	if err != nil {
		r.log.Error("Failed to delete booking",
			zap.Error(err),
			zap.String("booking_id", id.String()),
		)
		return fmt.Errorf("delete booking %s: %w", id, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("booking %s: %w", id, ErrNotFound)
	}

	r.log.Info("Booking deleted", zap.String("booking_id", id.String()))
	return nil
}

func (r *bookingRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status entity.BookingStatus) error {
	query := `UPDATE bookings SET status = $2, updated_at = NOW() WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id, status)
	if err != nil {
		r.log.Error("Failed to update booking status",
			zap.Error(err),
			zap.String("booking_id", id.String()),
			zap.String("status", string(status)),
		)
		return fmt.Errorf("update booking %s status to %s: %w", id, status, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("booking %s: %w", id, ErrNotFound)
	}

	return nil
}

func (r *bookingRepository) Reschedule(ctx context.Context, id uuid.UUID, date time.Time, clock string) error {
	query := `UPDATE bookings SET date = $2, time = $3, updated_at = NOW() WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id, date, clock)
	if err != nil {
		r.log.Error("Failed to reschedule booking",
			zap.Error(err),
			zap.String("booking_id", id.String()),
		)
		return fmt.Errorf("reschedule booking %s: %w", id, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("booking %s: %w", id, ErrNotFound)
	}

	return nil
}

func (r *bookingRepository) Assign(ctx context.Context, id uuid.UUID, driverID, vehicleID *uuid.UUID) error {
	query := `
		UPDATE bookings
		SET driver_id = $2, vehicle_id = COALESCE($3, vehicle_id), status = $4, updated_at = NOW()
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query, id, driverID, vehicleID, entity.BookingStatusAssigned)
	if err != nil {
		r.log.Error("Failed to assign booking",
			zap.Error(err),
			zap.String("booking_id", id.String()),
		)
		return fmt.Errorf("assign booking %s: %w", id, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("booking %s: %w", id, ErrNotFound)
	}

	return nil
}

// Unassign clears the driver only when the booking is held by driverID. It
// reports whether a row changed.
func (r *bookingRepository) Unassign(ctx context.Context, id, driverID uuid.UUID) (bool, error) {
	query := `
		UPDATE bookings
		SET driver_id = NULL, status = $3, updated_at = NOW()
		WHERE id = $1 AND driver_id = $2
	`

	result, err := r.db.Exec(ctx, query, id, driverID, entity.BookingStatusConfirmed)
	if err != nil {
		r.log.Error("Failed to unassign booking",
			zap.Error(err),
			zap.String("booking_id", id.String()),
			zap.String("driver_id", driverID.String()),
		)
		return false, fmt.Errorf("unassign booking %s: %w", id, err)
	}

	return result.RowsAffected() > 0, nil
}

func (r *bookingRepository) NextBookingNumber(ctx context.Context) (int64, error) {
	var seq int64
	if err := r.db.QueryRow(ctx, `SELECT nextval('booking_number_seq')`).Scan(&seq); err != nil {
		r.log.Error("Failed to allocate booking number", zap.Error(err))
		return 0, fmt.Errorf("next booking number: %w", err)
	}
	return seq, nil
}

// UpsertByWPID writes a booking synced from WordPress. Local assignment
// (driver, vehicle, created_by) survives an update. It reports whether a new
// row was inserted.
func (r *bookingRepository) UpsertByWPID(ctx context.Context, booking *entity.Booking) (bool, error) {
	query := `
		INSERT INTO bookings (` + bookingColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17,
		        $18, $19, $20, $21, $22, $23, $24, $25, $26, $27, $28, $29, $30, $31, $32,
		        $33, $34, $35, $36, $37, $38, $39, $40, $41, $42)
		ON CONFLICT (wp_id) DO UPDATE SET
		    service_name = EXCLUDED.service_name,
		    service_type = EXCLUDED.service_type,
		    date = EXCLUDED.date,
		    time = EXCLUDED.time,
		    status = EXCLUDED.status,
		    customer_name = EXCLUDED.customer_name,
		    customer_email = EXCLUDED.customer_email,
		    customer_phone = EXCLUDED.customer_phone,
		    pickup_location = EXCLUDED.pickup_location,
		    dropoff_location = EXCLUDED.dropoff_location,
		    duration_hours = EXCLUDED.duration_hours,
		    distance = EXCLUDED.distance,
		    notes = EXCLUDED.notes,
		    vehicle_name = EXCLUDED.vehicle_name,
		    price_amount = EXCLUDED.price_amount,
		    price_currency = EXCLUDED.price_currency,
		    price_formatted = EXCLUDED.price_formatted,
		    payment_status = EXCLUDED.payment_status,
		    payment_method = EXCLUDED.payment_method,
		    payment_link = EXCLUDED.payment_link,
		    coupon_code = EXCLUDED.coupon_code,
		    coupon_discount_percentage = EXCLUDED.coupon_discount_percentage,
		    meta = EXCLUDED.meta,
		    synced_at = EXCLUDED.synced_at,
		    updated_at = EXCLUDED.updated_at
		RETURNING id, (xmax = 0) AS inserted
	`

	args := append([]any{booking.ID}, bookingValues(booking)...)
	args = append(args, booking.CreatedAt, booking.UpdatedAt)

	var inserted bool
	if err := r.db.QueryRow(ctx, query, args...).Scan(&booking.ID, &inserted); err != nil {
		r.log.Error("Failed to upsert synced booking",
			zap.Error(err),
			zap.Stringp("wp_id", booking.WPID),
		)
		return false, fmt.Errorf("upsert booking wp_id %s: %w", derefString(booking.WPID), err)
	}

	return inserted, nil
}
