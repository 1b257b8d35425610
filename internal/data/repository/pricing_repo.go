package repository

import (
	"context"
	"errors"
	"fmt"

	"fleet-dispatch/internal/data/entity"
	"fleet-dispatch/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// PricingRepository reads the price catalog: per-vehicle prices, packages,
// promotion codes and time-based rules.
type PricingRepository interface {
	FindItems(ctx context.Context, serviceTypeID uuid.UUID) ([]entity.PricingItem, error)
	FindPackages(ctx context.Context) ([]entity.PricingPackage, error)
	FindPackageByID(ctx context.Context, id uuid.UUID) (*entity.PricingPackage, error)
	FindPromotions(ctx context.Context) ([]entity.PricingPromotion, error)
	FindPromotionsByCode(ctx context.Context, code string) ([]entity.PricingPromotion, error)
	IncrementPromotionUsage(ctx context.Context, id uuid.UUID) error
	FindTimeRules(ctx context.Context) ([]entity.TimeBasedRule, error)
}

type pricingRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewPricingRepository(db database.PgxIface, log *zap.Logger) PricingRepository {
	return &pricingRepository{
		db:  db,
		log: log.With(zap.String("repository", "pricing")),
	}
}

func (r *pricingRepository) FindItems(ctx context.Context, serviceTypeID uuid.UUID) ([]entity.PricingItem, error) {
	query := `
		SELECT id, category_id, service_type_id, vehicle_id, duration_hours,
		       price, currency, is_active, updated_at
		FROM pricing_items
		WHERE service_type_id = $1 AND is_active = true
		ORDER BY updated_at DESC
	`

	rows, err := r.db.Query(ctx, query, serviceTypeID)
	if err != nil {
		r.log.Error("Failed to find pricing items",
			zap.Error(err),
			zap.String("service_type_id", serviceTypeID.String()),
		)
		return nil, fmt.Errorf("find pricing items for %s: %w", serviceTypeID, err)
	}
	defer rows.Close()

	var items []entity.PricingItem
	for rows.Next() {
		var it entity.PricingItem
		if err := rows.Scan(
			&it.ID,
			&it.CategoryID,
			&it.ServiceTypeID,
			&it.VehicleID,
			&it.DurationHours,
			&it.Price,
			&it.Currency,
			&it.IsActive,
			&it.UpdatedAt,
		); err != nil {
			r.log.Error("Failed to scan pricing item row", zap.Error(err))
			return nil, fmt.Errorf("scan pricing item row: %w", err)
		}
		items = append(items, it)
	}

	return items, rows.Err()
}

const packageColumns = `id, name, description, base_price, is_featured, is_active`

func (r *pricingRepository) FindPackages(ctx context.Context) ([]entity.PricingPackage, error) {
	query := `SELECT ` + packageColumns + ` FROM pricing_packages WHERE is_active = true ORDER BY is_featured DESC, name`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.log.Error("Failed to find pricing packages", zap.Error(err))
		return nil, fmt.Errorf("find pricing packages: %w", err)
	}

	var packages []entity.PricingPackage
	for rows.Next() {
		var p entity.PricingPackage
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.BasePrice, &p.IsFeatured, &p.IsActive); err != nil {
			rows.Close()
			r.log.Error("Failed to scan pricing package row", zap.Error(err))
			return nil, fmt.Errorf("scan pricing package row: %w", err)
		}
		packages = append(packages, p)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate pricing package rows: %w", err)
	}

	for i := range packages {
		items, err := r.findPackageItems(ctx, packages[i].ID)
		if err != nil {
			return nil, err
		}
		packages[i].Items = items
	}

	return packages, nil
}

func (r *pricingRepository) FindPackageByID(ctx context.Context, id uuid.UUID) (*entity.PricingPackage, error) {
	query := `SELECT ` + packageColumns + ` FROM pricing_packages WHERE id = $1`

	var p entity.PricingPackage
	err := r.db.QueryRow(ctx, query, id).Scan(&p.ID, &p.Name, &p.Description, &p.BasePrice, &p.IsFeatured, &p.IsActive)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find pricing package", zap.Error(err), zap.String("package_id", id.String()))
		return nil, fmt.Errorf("find pricing package %s: %w", id, err)
	}

	items, err := r.findPackageItems(ctx, id)
	if err != nil {
		return nil, err
	}
	p.Items = items

	return &p, nil
}

func (r *pricingRepository) findPackageItems(ctx context.Context, packageID uuid.UUID) ([]entity.PricingPackageItem, error) {
	query := `
		SELECT id, package_id, name, vehicle_type, price, quantity
		FROM pricing_package_items
		WHERE package_id = $1
		ORDER BY sort_order, name
	`

	rows, err := r.db.Query(ctx, query, packageID)
	if err != nil {
		r.log.Error("Failed to find package items", zap.Error(err), zap.String("package_id", packageID.String()))
		return nil, fmt.Errorf("find package items for %s: %w", packageID, err)
	}
	defer rows.Close()

	var items []entity.PricingPackageItem
	for rows.Next() {
		var it entity.PricingPackageItem
		if err := rows.Scan(&it.ID, &it.PackageID, &it.Name, &it.VehicleType, &it.Price, &it.Quantity); err != nil {
			return nil, fmt.Errorf("scan package item row: %w", err)
		}
		items = append(items, it)
	}

	return items, rows.Err()
}

const promotionColumns = `
	id, code, name, description, discount_type, discount_value, maximum_discount,
	minimum_amount, start_date, end_date, usage_limit, times_used, is_active`

func (r *pricingRepository) queryPromotions(ctx context.Context, where string, args ...any) ([]entity.PricingPromotion, error) {
	query := `SELECT ` + promotionColumns + ` FROM pricing_promotions WHERE is_active = true` + where + ` ORDER BY code`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to find promotions", zap.Error(err))
		return nil, fmt.Errorf("find promotions: %w", err)
	}
	defer rows.Close()

	var promos []entity.PricingPromotion
	for rows.Next() {
		var p entity.PricingPromotion
		if err := rows.Scan(
			&p.ID,
			&p.Code,
			&p.Name,
			&p.Description,
			&p.DiscountType,
			&p.DiscountValue,
			&p.MaximumDiscount,
			&p.MinimumAmount,
			&p.StartDate,
			&p.EndDate,
			&p.UsageLimit,
			&p.TimesUsed,
			&p.IsActive,
		); err != nil {
			r.log.Error("Failed to scan promotion row", zap.Error(err))
			return nil, fmt.Errorf("scan promotion row: %w", err)
		}
		promos = append(promos, p)
	}

	return promos, rows.Err()
}

func (r *pricingRepository) FindPromotions(ctx context.Context) ([]entity.PricingPromotion, error) {
	return r.queryPromotions(ctx, "")
}

func (r *pricingRepository) FindPromotionsByCode(ctx context.Context, code string) ([]entity.PricingPromotion, error) {
	return r.queryPromotions(ctx, " AND UPPER(code) = UPPER($1)", code)
}

func (r *pricingRepository) IncrementPromotionUsage(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.Exec(ctx, `UPDATE pricing_promotions SET times_used = times_used + 1 WHERE id = $1`, id)
	if err != nil {
		r.log.Error("Failed to increment promotion usage", zap.Error(err), zap.String("promotion_id", id.String()))
		return fmt.Errorf("increment promotion %s usage: %w", id, err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("promotion %s: %w", id, ErrNotFound)
	}
	return nil
}

func (r *pricingRepository) FindTimeRules(ctx context.Context) ([]entity.TimeBasedRule, error) {
	query := `
		SELECT id, name, category_id, service_type_id, COALESCE(days_of_week, '{}'),
		       to_char(start_time, 'HH24:MI'), to_char(end_time, 'HH24:MI'),
		       adjustment_percentage, priority, is_active
		FROM pricing_time_rules
		WHERE is_active = true
		ORDER BY priority DESC
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.log.Error("Failed to find time rules", zap.Error(err))
		return nil, fmt.Errorf("find time rules: %w", err)
	}
	defer rows.Close()

	var rules []entity.TimeBasedRule
	for rows.Next() {
		var tr entity.TimeBasedRule
		if err := rows.Scan(
			&tr.ID,
			&tr.Name,
			&tr.CategoryID,
			&tr.ServiceTypeID,
			&tr.DaysOfWeek,
			&tr.StartTime,
			&tr.EndTime,
			&tr.AdjustmentPercentage,
			&tr.Priority,
			&tr.IsActive,
		); err != nil {
			r.log.Error("Failed to scan time rule row", zap.Error(err))
			return nil, fmt.Errorf("scan time rule row: %w", err)
		}
		rules = append(rules, tr)
	}

	return rules, rows.Err()
}
