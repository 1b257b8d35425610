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

type MaintenanceRepository interface {
	Create(ctx context.Context, task *entity.MaintenanceTask) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.MaintenanceTask, error)
	FindAll(ctx context.Context, filter entity.MaintenanceFilter) ([]*entity.MaintenanceTask, error)
	CountAll(ctx context.Context, filter entity.MaintenanceFilter) (int64, error)
	Update(ctx context.Context, task *entity.MaintenanceTask) error
	Delete(ctx context.Context, id uuid.UUID) error
	// CountInProgress counts the vehicle's started but unfinished tasks.
	CountInProgress(ctx context.Context, vehicleID uuid.UUID) (int64, error)
}

type InspectionRepository interface {
	Create(ctx context.Context, inspection *entity.Inspection) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Inspection, error)
	FindAll(ctx context.Context, filter entity.InspectionFilter) ([]*entity.Inspection, error)
	CountAll(ctx context.Context, filter entity.InspectionFilter) (int64, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status entity.InspectionStatus, completedAt *time.Time) error
	// SaveResults replaces the item results and marks the inspection completed.
	SaveResults(ctx context.Context, id uuid.UUID, items []entity.InspectionItem, completedAt time.Time) error
}

type maintenanceRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewMaintenanceRepository(db database.PgxIface, log *zap.Logger) MaintenanceRepository {
	return &maintenanceRepository{
		db:  db,
		log: log.With(zap.String("repository", "maintenance")),
	}
}

const maintenanceColumns = `id, vehicle_id, inspection_id, title, description, due_date, priority, status,
	estimated_duration, cost, started_at, completed_at, created_by, created_at, updated_at`

func scanMaintenanceTask(row pgx.Row) (*entity.MaintenanceTask, error) {
	var t entity.MaintenanceTask
	err := row.Scan(
		&t.ID, &t.VehicleID, &t.InspectionID, &t.Title, &t.Description, &t.DueDate, &t.Priority, &t.Status,
		&t.EstimatedDuration, &t.Cost, &t.StartedAt, &t.CompletedAt, &t.CreatedBy, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *maintenanceRepository) Create(ctx context.Context, t *entity.MaintenanceTask) error {
	query := `INSERT INTO maintenance_tasks (` + maintenanceColumns + `) VALUES (` + placeholders(1, 15) + `)`

	_, err := r.db.Exec(ctx, query,
		t.ID, t.VehicleID, t.InspectionID, t.Title, t.Description, t.DueDate, t.Priority, t.Status,
		t.EstimatedDuration, t.Cost, t.StartedAt, t.CompletedAt, t.CreatedBy, t.CreatedAt, t.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to create maintenance task",
			zap.Error(err),
			zap.String("task_id", t.ID.String()),
			zap.String("vehicle_id", t.VehicleID.String()),
		)
		return fmt.Errorf("create maintenance task %s: %w", t.ID, err)
	}

	return nil
}

func (r *maintenanceRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.MaintenanceTask, error) {
	task, err := scanMaintenanceTask(r.db.QueryRow(ctx, `SELECT `+maintenanceColumns+` FROM maintenance_tasks WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find maintenance task", zap.Error(err), zap.String("task_id", id.String()))
		return nil, fmt.Errorf("find maintenance task %s: %w", id, err)
	}

	return task, nil
}

func maintenanceWhere(filter entity.MaintenanceFilter) (string, []any) {
	var sb strings.Builder
	sb.WriteString(" WHERE 1 = 1")
	args := []any{}

	if filter.Status != "" && filter.Status != "all" {
		args = append(args, filter.Status)
		sb.WriteString(fmt.Sprintf(" AND status = $%d", len(args)))
	}
	if filter.VehicleID != nil {
		args = append(args, *filter.VehicleID)
		sb.WriteString(fmt.Sprintf(" AND vehicle_id = $%d", len(args)))
	}
	if s := strings.TrimSpace(filter.Search); s != "" {
		args = append(args, "%"+s+"%")
		sb.WriteString(fmt.Sprintf(" AND (title ILIKE $%[1]d OR description ILIKE $%[1]d)", len(args)))
	}
	return sb.String(), args
}

func (r *maintenanceRepository) FindAll(ctx context.Context, filter entity.MaintenanceFilter) ([]*entity.MaintenanceTask, error) {
	where, args := maintenanceWhere(filter)

	limit := filter.Limit
	if limit <= 0 {
		limit = 10
	}
	args = append(args, limit, filter.Offset)
	query := `SELECT ` + maintenanceColumns + ` FROM maintenance_tasks` + where +
		fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to find maintenance tasks", zap.Error(err), zap.String("status", filter.Status))
		return nil, fmt.Errorf("find maintenance tasks: %w", err)
	}
	defer rows.Close()

	var tasks []*entity.MaintenanceTask
	for rows.Next() {
		t, err := scanMaintenanceTask(rows)
		if err != nil {
			r.log.Error("Failed to scan maintenance row", zap.Error(err))
			return nil, fmt.Errorf("scan maintenance row: %w", err)
		}
		tasks = append(tasks, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate maintenance rows: %w", err)
	}

	return tasks, nil
}

func (r *maintenanceRepository) CountAll(ctx context.Context, filter entity.MaintenanceFilter) (int64, error) {
	where, args := maintenanceWhere(filter)

	var count int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM maintenance_tasks`+where, args...).Scan(&count); err != nil {
		r.log.Error("Failed to count maintenance tasks", zap.Error(err))
		return 0, fmt.Errorf("count maintenance tasks: %w", err)
	}

	return count, nil
}

func (r *maintenanceRepository) Update(ctx context.Context, t *entity.MaintenanceTask) error {
	query := `
		UPDATE maintenance_tasks
		SET title = $2, description = $3, due_date = $4, priority = $5, status = $6,
		    estimated_duration = $7, cost = $8, started_at = $9, completed_at = $10, updated_at = $11
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query,
		t.ID, t.Title, t.Description, t.DueDate, t.Priority, t.Status,
		t.EstimatedDuration, t.Cost, t.StartedAt, t.CompletedAt, t.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to update maintenance task", zap.Error(err), zap.String("task_id", t.ID.String()))
		return fmt.Errorf("update maintenance task %s: %w", t.ID, err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("maintenance task %s: %w", t.ID, ErrNotFound)
	}

	return nil
}

func (r *maintenanceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.Exec(ctx, `DELETE FROM maintenance_tasks WHERE id = $1`, id)
	if err != nil {
		r.log.Error("Failed to delete maintenance task", zap.Error(err), zap.String("task_id", id.String()))
		return fmt.Errorf("delete maintenance task %s: %w", id, err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("maintenance task %s: %w", id, ErrNotFound)
	}

	return nil
}

func (r *maintenanceRepository) CountInProgress(ctx context.Context, vehicleID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM maintenance_tasks WHERE vehicle_id = $1 AND status = $2`,
		vehicleID, entity.MaintenanceInProgress,
	).Scan(&count)
	if err != nil {
		r.log.Error("Failed to count open maintenance", zap.Error(err), zap.String("vehicle_id", vehicleID.String()))
		return 0, fmt.Errorf("count open maintenance of vehicle %s: %w", vehicleID, err)
	}

	return count, nil
}

type inspectionRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewInspectionRepository(db database.PgxIface, log *zap.Logger) InspectionRepository {
	return &inspectionRepository{
		db:  db,
		log: log.With(zap.String("repository", "inspection")),
	}
}

const inspectionColumns = `id, vehicle_id, type, date, status, inspector_id, notes,
	completed_at, created_by, created_at, updated_at`

const inspectionItemColumns = `id, inspection_id, category, name, result, notes, sort_order`

func scanInspection(row pgx.Row) (*entity.Inspection, error) {
	var i entity.Inspection
	err := row.Scan(
		&i.ID, &i.VehicleID, &i.Type, &i.Date, &i.Status, &i.InspectorID, &i.Notes,
		&i.CompletedAt, &i.CreatedBy, &i.CreatedAt, &i.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &i, nil
}

func (r *inspectionRepository) Create(ctx context.Context, i *entity.Inspection) error {
	query := `INSERT INTO inspections (` + inspectionColumns + `) VALUES (` + placeholders(1, 11) + `)`

	_, err := r.db.Exec(ctx, query,
		i.ID, i.VehicleID, i.Type, i.Date, i.Status, i.InspectorID, i.Notes,
		i.CompletedAt, i.CreatedBy, i.CreatedAt, i.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to create inspection",
			zap.Error(err),
			zap.String("inspection_id", i.ID.String()),
			zap.String("vehicle_id", i.VehicleID.String()),
		)
		return fmt.Errorf("create inspection %s: %w", i.ID, err)
	}

	return nil
}

// FindByID loads the inspection with its item results.
func (r *inspectionRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Inspection, error) {
	inspection, err := scanInspection(r.db.QueryRow(ctx, `SELECT `+inspectionColumns+` FROM inspections WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find inspection", zap.Error(err), zap.String("inspection_id", id.String()))
		return nil, fmt.Errorf("find inspection %s: %w", id, err)
	}

	rows, err := r.db.Query(ctx,
		`SELECT `+inspectionItemColumns+` FROM inspection_items WHERE inspection_id = $1 ORDER BY sort_order`, id)
	if err != nil {
		r.log.Error("Failed to find inspection items", zap.Error(err), zap.String("inspection_id", id.String()))
		return nil, fmt.Errorf("find items of inspection %s: %w", id, err)
	}
	defer rows.Close()

	for rows.Next() {
		var it entity.InspectionItem
		if err := rows.Scan(&it.ID, &it.InspectionID, &it.Category, &it.Name, &it.Result, &it.Notes, &it.SortOrder); err != nil {
			return nil, fmt.Errorf("scan inspection item: %w", err)
		}
		inspection.Items = append(inspection.Items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate inspection items: %w", err)
	}

	return inspection, nil
}

func inspectionWhere(filter entity.InspectionFilter) (string, []any) {
	var sb strings.Builder
	sb.WriteString(" WHERE 1 = 1")
	args := []any{}

	if filter.Status != "" && filter.Status != "all" {
		args = append(args, filter.Status)
		sb.WriteString(fmt.Sprintf(" AND status = $%d", len(args)))
	}
	if filter.VehicleID != nil {
		args = append(args, *filter.VehicleID)
		sb.WriteString(fmt.Sprintf(" AND vehicle_id = $%d", len(args)))
	}
	return sb.String(), args
}

func (r *inspectionRepository) FindAll(ctx context.Context, filter entity.InspectionFilter) ([]*entity.Inspection, error) {
	where, args := inspectionWhere(filter)

	limit := filter.Limit
	if limit <= 0 {
		limit = 10
	}
	args = append(args, limit, filter.Offset)
	query := `SELECT ` + inspectionColumns + ` FROM inspections` + where +
		fmt.Sprintf(" ORDER BY date DESC, created_at DESC LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to find inspections", zap.Error(err), zap.String("status", filter.Status))
		return nil, fmt.Errorf("find inspections: %w", err)
	}
	defer rows.Close()

	var inspections []*entity.Inspection
	for rows.Next() {
		i, err := scanInspection(rows)
		if err != nil {
			r.log.Error("Failed to scan inspection row", zap.Error(err))
			return nil, fmt.Errorf("scan inspection row: %w", err)
		}
		inspections = append(inspections, i)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate inspection rows: %w", err)
	}

	return inspections, nil
}

func (r *inspectionRepository) CountAll(ctx context.Context, filter entity.InspectionFilter) (int64, error) {
	where, args := inspectionWhere(filter)

	var count int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM inspections`+where, args...).Scan(&count); err != nil {
		r.log.Error("Failed to count inspections", zap.Error(err))
		return 0, fmt.Errorf("count inspections: %w", err)
	}

	return count, nil
}

func (r *inspectionRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status entity.InspectionStatus, completedAt *time.Time) error {
	result, err := r.db.Exec(ctx,
		`UPDATE inspections SET status = $2, completed_at = $3, updated_at = NOW() WHERE id = $1`,
		id, status, completedAt,
	)
	if err != nil {
		r.log.Error("Failed to update inspection status",
			zap.Error(err),
			zap.String("inspection_id", id.String()),
			zap.String("status", string(status)),
		)
		return fmt.Errorf("update status of inspection %s: %w", id, err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("inspection %s: %w", id, ErrNotFound)
	}

	return nil
}

// SaveResults runs in one transaction: the status flip, the delete of old
// results and the batched insert of the new ones.
func (r *inspectionRepository) SaveResults(ctx context.Context, id uuid.UUID, items []entity.InspectionItem, completedAt time.Time) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin save results: %w", err)
	}
	defer tx.Rollback(ctx)

	result, err := tx.Exec(ctx,
		`UPDATE inspections SET status = $2, completed_at = $3, updated_at = $3 WHERE id = $1`,
		id, entity.InspectionCompleted, completedAt,
	)
	if err != nil {
		r.log.Error("Failed to complete inspection", zap.Error(err), zap.String("inspection_id", id.String()))
		return fmt.Errorf("complete inspection %s: %w", id, err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("inspection %s: %w", id, ErrNotFound)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM inspection_items WHERE inspection_id = $1`, id); err != nil {
		r.log.Error("Failed to delete inspection items", zap.Error(err), zap.String("inspection_id", id.String()))
		return fmt.Errorf("delete items of inspection %s: %w", id, err)
	}

	if len(items) > 0 {
		query := `INSERT INTO inspection_items (` + inspectionItemColumns + `) VALUES (` + placeholders(1, 7) + `)`

		batch := &pgx.Batch{}
		for i := range items {
			it := &items[i]
			if it.ID == uuid.Nil {
				it.ID = uuid.New()
			}
			it.InspectionID = id
			batch.Queue(query, it.ID, it.InspectionID, it.Category, it.Name, it.Result, it.Notes, it.SortOrder)
		}

		br := tx.SendBatch(ctx, batch)
		for range items {
			if _, err := br.Exec(); err != nil {
				br.Close()
				r.log.Error("Failed to insert inspection items",
					zap.Error(err),
					zap.String("inspection_id", id.String()),
					zap.Int("count", len(items)),
				)
				return fmt.Errorf("insert items of inspection %s: %w", id, err)
			}
		}
		if err := br.Close(); err != nil {
			return fmt.Errorf("close inspection item batch: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit results of inspection %s: %w", id, err)
	}

	return nil
}
