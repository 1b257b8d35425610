package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"fleet-dispatch/internal/data/entity"
	"fleet-dispatch/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type VehicleRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Vehicle, error)
	FindAll(ctx context.Context, filter entity.VehicleFilter) ([]*entity.Vehicle, error)
	CountAll(ctx context.Context, filter entity.VehicleFilter) (int64, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status entity.VehicleStatus) error
	FindCategoryByID(ctx context.Context, id uuid.UUID) (*entity.VehicleCategory, error)
}

type DriverRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Driver, error)
	FindAll(ctx context.Context, filter entity.DriverFilter) ([]*entity.Driver, error)
	CountAll(ctx context.Context, filter entity.DriverFilter) (int64, error)
}

type vehicleRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewVehicleRepository(db database.PgxIface, log *zap.Logger) VehicleRepository {
	return &vehicleRepository{
		db:  db,
		log: log.With(zap.String("repository", "vehicle")),
	}
}

const vehicleColumns = `id, brand, model, plate_number, category_id,
	passenger_capacity, luggage_capacity, image_url, status, created_at, updated_at`

func scanVehicle(row pgx.Row) (*entity.Vehicle, error) {
	var v entity.Vehicle
	err := row.Scan(
		&v.ID,
		&v.Brand,
		&v.Model,
		&v.PlateNumber,
		&v.CategoryID,
		&v.PassengerCapacity,
		&v.LuggageCapacity,
		&v.ImageURL,
		&v.Status,
		&v.CreatedAt,
		&v.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *vehicleRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Vehicle, error) {
	v, err := scanVehicle(r.db.QueryRow(ctx, `SELECT `+vehicleColumns+` FROM vehicles WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find vehicle by ID", zap.Error(err), zap.String("vehicle_id", id.String()))
		return nil, fmt.Errorf("find vehicle by ID %s: %w", id, err)
	}

	return v, nil
}

func vehicleWhere(filter entity.VehicleFilter) (string, []any) {
	var sb strings.Builder
	sb.WriteString(" WHERE 1 = 1")
	args := []any{}

	if filter.Status != "" && filter.Status != "all" {
		args = append(args, filter.Status)
		sb.WriteString(fmt.Sprintf(" AND status = $%d", len(args)))
	}
	if s := strings.TrimSpace(filter.Search); s != "" {
		args = append(args, "%"+s+"%")
		sb.WriteString(fmt.Sprintf(" AND (brand ILIKE $%[1]d OR model ILIKE $%[1]d OR plate_number ILIKE $%[1]d)", len(args)))
	}
	return sb.String(), args
}

func (r *vehicleRepository) FindAll(ctx context.Context, filter entity.VehicleFilter) ([]*entity.Vehicle, error) {
	where, args := vehicleWhere(filter)

	limit := filter.Limit
	if limit <= 0 {
		limit = 10
	}
	args = append(args, limit, filter.Offset)
	query := `SELECT ` + vehicleColumns + ` FROM vehicles` + where +
		fmt.Sprintf(" ORDER BY brand, model, plate_number LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to find vehicles", zap.Error(err), zap.String("status", filter.Status))
		return nil, fmt.Errorf("find vehicles: %w", err)
	}
	defer rows.Close()

	var vehicles []*entity.Vehicle
	for rows.Next() {
		v, err := scanVehicle(rows)
		if err != nil {
			r.log.Error("Failed to scan vehicle row", zap.Error(err))
			return nil, fmt.Errorf("scan vehicle row: %w", err)
		}
		vehicles = append(vehicles, v)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate vehicle rows: %w", err)
	}

	return vehicles, nil
}

func (r *vehicleRepository) CountAll(ctx context.Context, filter entity.VehicleFilter) (int64, error) {
	where, args := vehicleWhere(filter)

	var count int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM vehicles`+where, args...).Scan(&count); err != nil {
		r.log.Error("Failed to count vehicles", zap.Error(err))
		return 0, fmt.Errorf("count vehicles: %w", err)
	}

	return count, nil
}

func (r *vehicleRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status entity.VehicleStatus) error {
	result, err := r.db.Exec(ctx, `UPDATE vehicles SET status = $2, updated_at = NOW() WHERE id = $1`, id, status)
	if err != nil {
		r.log.Error("Failed to update vehicle status",
			zap.Error(err),
			zap.String("vehicle_id", id.String()),
			zap.String("status", string(status)),
		)
		return fmt.Errorf("update status of vehicle %s: %w", id, err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("vehicle %s: %w", id, ErrNotFound)
	}

	return nil
}

func (r *vehicleRepository) FindCategoryByID(ctx context.Context, id uuid.UUID) (*entity.VehicleCategory, error) {
	var c entity.VehicleCategory
	err := r.db.QueryRow(ctx, `SELECT id, name FROM vehicle_categories WHERE id = $1`, id).Scan(&c.ID, &c.Name)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find vehicle category", zap.Error(err), zap.String("category_id", id.String()))
		return nil, fmt.Errorf("find vehicle category %s: %w", id, err)
	}

	return &c, nil
}

type driverRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewDriverRepository(db database.PgxIface, log *zap.Logger) DriverRepository {
	return &driverRepository{
		db:  db,
		log: log.With(zap.String("repository", "driver")),
	}
}

const driverColumns = `id, first_name, last_name, email, phone, created_at, updated_at`

func scanDriver(row pgx.Row) (*entity.Driver, error) {
	var d entity.Driver
	err := row.Scan(
		&d.ID,
		&d.FirstName,
		&d.LastName,
		&d.Email,
		&d.Phone,
		&d.CreatedAt,
		&d.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *driverRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Driver, error) {
	d, err := scanDriver(r.db.QueryRow(ctx, `SELECT `+driverColumns+` FROM drivers WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find driver by ID", zap.Error(err), zap.String("driver_id", id.String()))
		return nil, fmt.Errorf("find driver by ID %s: %w", id, err)
	}

	return d, nil
}

func driverWhere(filter entity.DriverFilter) (string, []any) {
	if s := strings.TrimSpace(filter.Search); s != "" {
		return " WHERE (first_name ILIKE $1 OR last_name ILIKE $1 OR email ILIKE $1)", []any{"%" + s + "%"}
	}
	return "", []any{}
}

func (r *driverRepository) FindAll(ctx context.Context, filter entity.DriverFilter) ([]*entity.Driver, error) {
	where, args := driverWhere(filter)

	limit := filter.Limit
	if limit <= 0 {
		limit = 10
	}
	args = append(args, limit, filter.Offset)
	query := `SELECT ` + driverColumns + ` FROM drivers` + where +
		fmt.Sprintf(" ORDER BY last_name, first_name LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to find drivers", zap.Error(err))
		return nil, fmt.Errorf("find drivers: %w", err)
	}
	defer rows.Close()

	var drivers []*entity.Driver
	for rows.Next() {
		d, err := scanDriver(rows)
		if err != nil {
			r.log.Error("Failed to scan driver row", zap.Error(err))
			return nil, fmt.Errorf("scan driver row: %w", err)
		}
		drivers = append(drivers, d)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate driver rows: %w", err)
	}

	return drivers, nil
}

func (r *driverRepository) CountAll(ctx context.Context, filter entity.DriverFilter) (int64, error) {
	where, args := driverWhere(filter)

	var count int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM drivers`+where, args...).Scan(&count); err != nil {
		r.log.Error("Failed to count drivers", zap.Error(err))
		return 0, fmt.Errorf("count drivers: %w", err)
	}

	return count, nil
}
