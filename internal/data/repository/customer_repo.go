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

type CustomerRepository interface {
	FindByEmail(ctx context.Context, email string) (*entity.Customer, error)
	Upsert(ctx context.Context, customer *entity.Customer) error
}

type customerRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewCustomerRepository(db database.PgxIface, log *zap.Logger) CustomerRepository {
	return &customerRepository{
		db:  db,
		log: log.With(zap.String("repository", "customer")),
	}
}

func (r *customerRepository) FindByEmail(ctx context.Context, email string) (*entity.Customer, error) {
	query := `
		SELECT id, email, name, phone, created_at, updated_at
		FROM customers
		WHERE email = $1
	`

	var c entity.Customer
	err := r.db.QueryRow(ctx, query, email).Scan(
		&c.ID,
		&c.Email,
		&c.Name,
		&c.Phone,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find customer by email", zap.Error(err), zap.String("email", email))
		return nil, fmt.Errorf("find customer by email %s: %w", email, err)
	}

	return &c, nil
}

// Upsert creates the customer or refreshes name and phone on an existing
// email. The stored id is written back into customer.
func (r *customerRepository) Upsert(ctx context.Context, customer *entity.Customer) error {
	if customer.ID == uuid.Nil {
		customer.ID = uuid.New()
	}

	query := `
		INSERT INTO customers (id, email, name, phone, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
		ON CONFLICT (email) DO UPDATE SET
		    name = COALESCE(EXCLUDED.name, customers.name),
		    phone = COALESCE(EXCLUDED.phone, customers.phone),
		    updated_at = NOW()
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRow(ctx, query, customer.ID, customer.Email, customer.Name, customer.Phone).
		Scan(&customer.ID, &customer.CreatedAt, &customer.UpdatedAt)
	if err != nil {
		r.log.Error("Failed to upsert customer", zap.Error(err), zap.String("email", customer.Email))
		return fmt.Errorf("upsert customer %s: %w", customer.Email, err)
	}

	return nil
}
