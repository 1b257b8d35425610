package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"fleet-dispatch/internal/data/entity"
	"fleet-dispatch/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// SessionRepository stores opaque login tokens. Expiry is judged by the
// caller's clock, so lookups return revoked and expired rows too.
type SessionRepository interface {
	Create(ctx context.Context, session *entity.Session) error
	FindByToken(ctx context.Context, token uuid.UUID) (*entity.Session, error)
	// Revoke marks the token revoked at the given time and returns its owner.
	Revoke(ctx context.Context, token uuid.UUID, at time.Time) (uuid.UUID, error)
}

type sessionRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewSessionRepository(db database.PgxIface, log *zap.Logger) SessionRepository {
	return &sessionRepository{
		db:  db,
		log: log.With(zap.String("repository", "session")),
	}
}

const sessionColumns = `id, user_id, token, user_agent, ip_address, expires_at, revoked_at, created_at`

func (r *sessionRepository) Create(ctx context.Context, session *entity.Session) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO sessions (`+sessionColumns+`) VALUES ($1, $2, $3, $4, $5, $6, NULL, $7)`,
		session.ID, session.UserID, session.Token, session.UserAgent, session.IPAddress,
		session.ExpiresAt, session.CreatedAt,
	)
	if err != nil {
		r.log.Error("Failed to store session", zap.Error(err), zap.Stringer("user_id", session.UserID))
		return fmt.Errorf("create session: %w", err)
	}
	return nil
}

func (r *sessionRepository) FindByToken(ctx context.Context, token uuid.UUID) (*entity.Session, error) {
	var s entity.Session
	err := r.db.QueryRow(ctx, `SELECT `+sessionColumns+` FROM sessions WHERE token = $1`, token).Scan(
		&s.ID, &s.UserID, &s.Token, &s.UserAgent, &s.IPAddress, &s.ExpiresAt, &s.RevokedAt, &s.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		// token is a credential; never log it
		r.log.Error("Failed to load session", zap.Error(err))
		return nil, fmt.Errorf("find session: %w", err)
	}
	return &s, nil
}

func (r *sessionRepository) Revoke(ctx context.Context, token uuid.UUID, at time.Time) (uuid.UUID, error) {
	var userID uuid.UUID
	err := r.db.QueryRow(ctx,
		`UPDATE sessions SET revoked_at = $2 WHERE token = $1 AND revoked_at IS NULL RETURNING user_id`,
		token, at,
	).Scan(&userID)
	if errors.Is(err, pgx.ErrNoRows) {
		return uuid.Nil, fmt.Errorf("session: %w", ErrNotFound)
	}
	if err != nil {
		r.log.Error("Failed to revoke session", zap.Error(err))
		return uuid.Nil, fmt.Errorf("revoke session: %w", err)
	}
	return userID, nil
}
