package database

import (
	"errors"
	"fmt"
	"testing"

	"fleet-dispatch/pkg/utils"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestDSNEscapesCredentials(t *testing.T) {
	dsn := DSN(utils.DatabaseConfig{
		Host:     "db",
		Port:     "5432",
		Name:     "fleet",
		User:     "ops",
		Password: "p@ss/word",
		SSLMode:  "disable",
	})

	assert.Equal(t, "postgres://ops:p%40ss%2Fword@db:5432/fleet?sslmode=disable", dsn)
}

func TestIsUniqueViolation(t *testing.T) {
	err := fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505"})
	assert.True(t, IsUniqueViolation(err))
	assert.False(t, IsUniqueViolation(&pgconn.PgError{Code: "23503"}))
	assert.False(t, IsUniqueViolation(errors.New("plain")))
}

func TestIsNoRows(t *testing.T) {
	assert.True(t, IsNoRows(fmt.Errorf("find: %w", pgx.ErrNoRows)))
	assert.False(t, IsNoRows(errors.New("other")))
}
