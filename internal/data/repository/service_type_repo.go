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

type ServiceTypeRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*entity.ServiceType, error)
	FindByName(ctx context.Context, name string) (*entity.ServiceType, error)
}

type serviceTypeRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewServiceTypeRepository(db database.PgxIface, log *zap.Logger) ServiceTypeRepository {
	return &serviceTypeRepository{
		db:  db,
		log: log.With(zap.String("repository", "service_type")),
	}
}

func (r *serviceTypeRepository) find(ctx context.Context, where string, arg any) (*entity.ServiceType, error) {
	query := `SELECT id, name, COALESCE(category, ''), is_active FROM service_types WHERE ` + where

	var st entity.ServiceType
	err := r.db.QueryRow(ctx, query, arg).Scan(&st.ID, &st.Name, &st.Category, &st.IsActive)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find service type", zap.Error(err), zap.Any("value", arg))
		return nil, fmt.Errorf("find service type %v: %w", arg, err)
	}

	return &st, nil
}

func (r *serviceTypeRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.ServiceType, error) {
	return r.find(ctx, "id = $1", id)
}

// FindByName matches case-insensitively.
func (r *serviceTypeRepository) FindByName(ctx context.Context, name string) (*entity.ServiceType, error) {
	return r.find(ctx, "LOWER(name) = LOWER($1) ORDER BY is_active DESC LIMIT 1", name)
}
