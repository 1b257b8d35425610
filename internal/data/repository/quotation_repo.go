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

type QuotationRepository interface {
	Create(ctx context.Context, quotation *entity.Quotation) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Quotation, error)
	FindAll(ctx context.Context, filter entity.QuotationFilter) ([]*entity.Quotation, error)
	CountAll(ctx context.Context, filter entity.QuotationFilter) (int64, error)
	Update(ctx context.Context, quotation *entity.Quotation) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status entity.QuotationStatus, sentAt *time.Time) error
	ReplaceItems(ctx context.Context, quotationID uuid.UUID, items []entity.QuotationItem) error
	FindItems(ctx context.Context, quotationID uuid.UUID) ([]entity.QuotationItem, error)
}

type quotationRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewQuotationRepository(db database.PgxIface, log *zap.Logger) QuotationRepository {
	return &quotationRepository{
		db:  db,
		log: log.With(zap.String("repository", "quotation")),
	}
}

// quotationFields are the columns written by Create and Update, in the order
// quotationValues returns them.
var quotationFields = []string{
	"title", "status", "customer_name", "customer_email", "customer_phone",
	"billing_company_name", "billing_tax_number", "billing_street_name", "billing_street_number",
	"billing_city", "billing_state", "billing_postal_code", "billing_country",
	"service_type_id", "vehicle_category", "vehicle_type", "pickup_date", "pickup_time",
	"duration_hours", "service_days", "hours_per_day", "passenger_count",
	"merchant_notes", "customer_notes", "general_notes",
	"amount", "discount_percentage", "tax_percentage", "total_amount", "currency", "display_currency",
	"selected_package_id", "selected_package_name", "selected_package_description", "selected_package_price",
	"package_discount",
	"selected_promotion_id", "selected_promotion_name", "selected_promotion_description",
	"selected_promotion_code", "promotion_discount",
	"team_location", "expiry_date", "merchant_id", "sent_at",
}

func quotationValues(q *entity.Quotation) []any {
	return []any{
		q.Title, q.Status, q.CustomerName, q.CustomerEmail, q.CustomerPhone,
		q.CompanyName, q.TaxNumber, q.StreetName, q.StreetNumber,
		q.City, q.State, q.PostalCode, q.Country,
		q.ServiceTypeID, q.VehicleCategory, q.VehicleType, q.PickupDate, q.PickupTime,
		q.DurationHours, q.ServiceDays, q.HoursPerDay, q.PassengerCount,
		q.MerchantNotes, q.CustomerNotes, q.GeneralNotes,
		q.Amount, q.DiscountPercentage, q.TaxPercentage, q.TotalAmount, q.Currency, q.DisplayCurrency,
		q.SelectedPackageID, q.SelectedPackageName, q.SelectedPackageDescription, q.SelectedPackagePrice, q.PackageDiscount,
		q.SelectedPromotionID, q.SelectedPromotionName, q.SelectedPromotionDescription,
		q.SelectedPromotionCode, q.PromotionDiscount,
		q.TeamLocation, q.ExpiryDate, q.MerchantID, q.SentAt,
	}
}

var quotationSelect = `SELECT id, quote_number, ` + strings.Join(quotationFields, ", ") +
	`, created_at, updated_at FROM quotations`

func scanQuotation(row pgx.Row) (*entity.Quotation, error) {
	var q entity.Quotation
	err := row.Scan(
		&q.ID, &q.QuoteNumber,
		&q.Title, &q.Status, &q.CustomerName, &q.CustomerEmail, &q.CustomerPhone,
		&q.CompanyName, &q.TaxNumber, &q.StreetName, &q.StreetNumber,
		&q.City, &q.State, &q.PostalCode, &q.Country,
		&q.ServiceTypeID, &q.VehicleCategory, &q.VehicleType, &q.PickupDate, &q.PickupTime,
		&q.DurationHours, &q.ServiceDays, &q.HoursPerDay, &q.PassengerCount,
		&q.MerchantNotes, &q.CustomerNotes, &q.GeneralNotes,
		&q.Amount, &q.DiscountPercentage, &q.TaxPercentage, &q.TotalAmount, &q.Currency, &q.DisplayCurrency,
		&q.SelectedPackageID, &q.SelectedPackageName, &q.SelectedPackageDescription, &q.SelectedPackagePrice, &q.PackageDiscount,
		&q.SelectedPromotionID, &q.SelectedPromotionName, &q.SelectedPromotionDescription,
		&q.SelectedPromotionCode, &q.PromotionDiscount,
		&q.TeamLocation, &q.ExpiryDate, &q.MerchantID, &q.SentAt,
		&q.CreatedAt, &q.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &q, nil
}

func placeholders(from, n int) string {
	ph := make([]string, n)
	for i := range ph {
		ph[i] = fmt.Sprintf("$%d", from+i)
	}
	return strings.Join(ph, ", ")
}

// Create inserts the header and fills QuoteNumber from the sequence.
func (r *quotationRepository) Create(ctx context.Context, quotation *entity.Quotation) error {
	n := len(quotationFields)
	query := `INSERT INTO quotations (id, ` + strings.Join(quotationFields, ", ") + `, created_at, updated_at)
		VALUES (` + placeholders(1, n+3) + `)
		RETURNING quote_number`

	args := append([]any{quotation.ID}, quotationValues(quotation)...)
	args = append(args, quotation.CreatedAt, quotation.UpdatedAt)

	if err := r.db.QueryRow(ctx, query, args...).Scan(&quotation.QuoteNumber); err != nil {
		r.log.Error("Failed to create quotation",
			zap.Error(err),
			zap.String("quotation_id", quotation.ID.String()),
			zap.String("customer_email", quotation.CustomerEmail),
		)
		return fmt.Errorf("create quotation %s: %w", quotation.ID, err)
	}

	return nil
}

func (r *quotationRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Quotation, error) {
	quotation, err := scanQuotation(r.db.QueryRow(ctx, quotationSelect+` WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find quotation by ID", zap.Error(err), zap.String("quotation_id", id.String()))
		return nil, fmt.Errorf("find quotation by ID %s: %w", id, err)
	}

	items, err := r.FindItems(ctx, id)
	if err != nil {
		return nil, err
	}
	quotation.Items = items

	return quotation, nil
}

func quotationWhere(filter entity.QuotationFilter) (string, []any) {
	var sb strings.Builder
	sb.WriteString(" WHERE 1 = 1")
	args := []any{}

	if filter.Status != "" && filter.Status != "all" {
		args = append(args, filter.Status)
		sb.WriteString(fmt.Sprintf(" AND status = $%d", len(args)))
	}
	if s := strings.TrimSpace(filter.Search); s != "" {
		args = append(args, "%"+s+"%")
		sb.WriteString(fmt.Sprintf(" AND (title ILIKE $%[1]d OR customer_email ILIKE $%[1]d OR customer_name ILIKE $%[1]d)", len(args)))
	}
	return sb.String(), args
}

func (r *quotationRepository) FindAll(ctx context.Context, filter entity.QuotationFilter) ([]*entity.Quotation, error) {
	where, args := quotationWhere(filter)

	limit := filter.Limit
	if limit <= 0 {
		limit = 10
	}
	args = append(args, limit, filter.Offset)
	query := quotationSelect + where +
		fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to find quotations",
			zap.Error(err),
			zap.String("status", filter.Status),
			zap.Int("limit", limit),
			zap.Int("offset", filter.Offset),
		)
		return nil, fmt.Errorf("find quotations: %w", err)
	}
	defer rows.Close()

	var quotations []*entity.Quotation
	for rows.Next() {
		q, err := scanQuotation(rows)
		if err != nil {
			r.log.Error("Failed to scan quotation row", zap.Error(err))
			return nil, fmt.Errorf("scan quotation row: %w", err)
		}
		quotations = append(quotations, q)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate quotation rows: %w", err)
	}

	return quotations, nil
}

func (r *quotationRepository) CountAll(ctx context.Context, filter entity.QuotationFilter) (int64, error) {
	where, args := quotationWhere(filter)

	var count int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM quotations`+where, args...).Scan(&count); err != nil {
		r.log.Error("Failed to count quotations", zap.Error(err))
		return 0, fmt.Errorf("count quotations: %w", err)
	}

	return count, nil
}

func (r *quotationRepository) Update(ctx context.Context, quotation *entity.Quotation) error {
	set := make([]string, 0, len(quotationFields)+1)
	for i, field := range quotationFields {
		set = append(set, fmt.Sprintf("%s = $%d", field, i+2))
	}
	set = append(set, fmt.Sprintf("updated_at = $%d", len(quotationFields)+2))
	query := `UPDATE quotations SET ` + strings.Join(set, ", ") + ` WHERE id = $1`

	args := append([]any{quotation.ID}, quotationValues(quotation)...)
	args = append(args, quotation.UpdatedAt)

	result, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to update quotation", zap.Error(err), zap.String("quotation_id", quotation.ID.String()))
		return fmt.Errorf("update quotation %s: %w", quotation.ID, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("quotation %s: %w", quotation.ID, ErrNotFound)
	}

	return nil
}

func (r *quotationRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status entity.QuotationStatus, sentAt *time.Time) error {
	query := `UPDATE quotations SET status = $2, sent_at = COALESCE($3, sent_at), updated_at = NOW() WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id, status, sentAt)
	if err != nil {
		r.log.Error("Failed to update quotation status",
			zap.Error(err),
			zap.String("quotation_id", id.String()),
			zap.String("status", string(status)),
		)
		return fmt.Errorf("update quotation %s status to %s: %w", id, status, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("quotation %s: %w", id, ErrNotFound)
	}

	return nil
}

const quotationItemColumns = `
	id, quotation_id, description, service_type_id, service_type_name, service_category,
	vehicle_category, vehicle_type, duration_hours, service_days, hours_per_day,
	unit_price, quantity, total_price, pickup_date, pickup_time,
	time_based_adjustment, time_based_rule_name, is_service_item, sort_order, created_at`

// ReplaceItems deletes every item of the quotation and inserts items in one
// transaction, queued as a single batch.
func (r *quotationRepository) ReplaceItems(ctx context.Context, quotationID uuid.UUID, items []entity.QuotationItem) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin replace items: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM quotation_items WHERE quotation_id = $1`, quotationID); err != nil {
		r.log.Error("Failed to delete quotation items", zap.Error(err), zap.String("quotation_id", quotationID.String()))
		return fmt.Errorf("delete items of quotation %s: %w", quotationID, err)
	}

	if len(items) > 0 {
		query := `INSERT INTO quotation_items (` + quotationItemColumns + `) VALUES (` + placeholders(1, 21) + `)`

		batch := &pgx.Batch{}
		for i := range items {
			it := &items[i]
			if it.ID == uuid.Nil {
				it.ID = uuid.New()
			}
			it.QuotationID = quotationID
			if it.CreatedAt.IsZero() {
				it.CreatedAt = time.Now()
			}
			batch.Queue(query,
				it.ID, it.QuotationID, it.Description, it.ServiceTypeID, it.ServiceTypeName, it.ServiceCategory,
				it.VehicleCategory, it.VehicleType, it.DurationHours, it.ServiceDays, it.HoursPerDay,
				it.UnitPrice, it.Quantity, it.TotalPrice, it.PickupDate, it.PickupTime,
				it.TimeBasedAdjustment, it.TimeBasedRuleName, it.IsServiceItem, it.SortOrder, it.CreatedAt,
			)
		}

		br := tx.SendBatch(ctx, batch)
		for range items {
			if _, err := br.Exec(); err != nil {
				br.Close()
				r.log.Error("Failed to insert quotation items",
					zap.Error(err),
					zap.String("quotation_id", quotationID.String()),
					zap.Int("count", len(items)),
				)
				return fmt.Errorf("insert items of quotation %s: %w", quotationID, err)
			}
		}
		if err := br.Close(); err != nil {
			return fmt.Errorf("close item batch: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit items of quotation %s: %w", quotationID, err)
	}

	return nil
}

func (r *quotationRepository) FindItems(ctx context.Context, quotationID uuid.UUID) ([]entity.QuotationItem, error) {
	query := `SELECT ` + quotationItemColumns + ` FROM quotation_items WHERE quotation_id = $1 ORDER BY sort_order, created_at`

	rows, err := r.db.Query(ctx, query, quotationID)
	if err != nil {
		r.log.Error("Failed to find quotation items", zap.Error(err), zap.String("quotation_id", quotationID.String()))
		return nil, fmt.Errorf("find items of quotation %s: %w", quotationID, err)
	}
	defer rows.Close()

	var items []entity.QuotationItem
	for rows.Next() {
		var it entity.QuotationItem
		if err := rows.Scan(
			&it.ID, &it.QuotationID, &it.Description, &it.ServiceTypeID, &it.ServiceTypeName, &it.ServiceCategory,
			&it.VehicleCategory, &it.VehicleType, &it.DurationHours, &it.ServiceDays, &it.HoursPerDay,
			&it.UnitPrice, &it.Quantity, &it.TotalPrice, &it.PickupDate, &it.PickupTime,
			&it.TimeBasedAdjustment, &it.TimeBasedRuleName, &it.IsServiceItem, &it.SortOrder, &it.CreatedAt,
		); err != nil {
			r.log.Error("Failed to scan quotation item row", zap.Error(err))
			return nil, fmt.Errorf("scan quotation item row: %w", err)
		}
		items = append(items, it)
	}

	return items, rows.Err()
}
