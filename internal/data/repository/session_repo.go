package repository

import (
	"context"
	"errors"
	"fmt"

	"airport-api/internal/data/entity"
	"airport-api/internal/domain"
	"airport-api/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type SessionRepository interface {
	Create(ctx context.Context, session *entity.Session) error
	FindValidSession(ctx context.Context, id uuid.UUID) (*entity.SessionUser, error)
	Revoke(ctx context.Context, id uuid.UUID) error
	RevokeAllUserSessions(ctx context.Context, userID uuid.UUID) error
	CleanExpiredSessions(ctx context.Context) (int64, error)
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

func (r *sessionRepository) Create(ctx context.Context, session *entity.Session) error {
	query := `
		INSERT INTO sessions (id, user_id, user_agent, ip_address, expires_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := conn(ctx, r.db).Exec(ctx, query,
		session.ID,
		session.UserID,
		session.UserAgent,
		session.IPAddress,
		session.ExpiresAt,
		session.CreatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create session",
			zap.Error(err),
			zap.String("user_id", session.UserID.String()),
		)
		return fmt.Errorf("failed to create session: %w", err)
	}

	return nil
}

// FindValidSession returns nil when the session is unknown, revoked or expired.
func (r *sessionRepository) FindValidSession(ctx context.Context, id uuid.UUID) (*entity.SessionUser, error) {
	query := `
		SELECT s.id, s.user_id, u.is_staff, u.is_active
		FROM sessions s
		JOIN users u ON u.id = s.user_id
		WHERE s.id = $1
		  AND s.revoked_at IS NULL
		  AND s.expires_at > NOW()
	`

	var su entity.SessionUser
	err := conn(ctx, r.db).QueryRow(ctx, query, id).Scan(
		&su.SessionID,
		&su.UserID,
		&su.IsStaff,
		&su.IsActive,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find valid session",
			zap.Error(err),
			zap.String("session_id", id.String()),
		)
		return nil, fmt.Errorf("failed to find session: %w", err)
	}

	return &su, nil
}

func (r *sessionRepository) Revoke(ctx context.Context, id uuid.UUID) error {
	query := `
		UPDATE sessions
		SET revoked_at = NOW()
		WHERE id = $1 AND revoked_at IS NULL
	`

	result, err := conn(ctx, r.db).Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to revoke session",
			zap.Error(err),
			zap.String("session_id", id.String()),
		)
		return fmt.Errorf("failed to revoke session: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("session not found or already revoked: %w", domain.ErrUnauthorized)
	}

	return nil
}

func (r *sessionRepository) RevokeAllUserSessions(ctx context.Context, userID uuid.UUID) error {
	query := `
		UPDATE sessions
		SET revoked_at = NOW()
		WHERE user_id = $1 AND revoked_at IS NULL
	`

	_, err := conn(ctx, r.db).Exec(ctx, query, userID)
	if err != nil {
		r.log.Error("Failed to revoke all user sessions",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return fmt.Errorf("failed to revoke sessions: %w", err)
	}

	return nil
}

// CleanExpiredSessions deletes sessions that expired more than a week ago.
func (r *sessionRepository) CleanExpiredSessions(ctx context.Context) (int64, error) {
	query := `
		DELETE FROM sessions
		WHERE expires_at < NOW() - INTERVAL '7 days'
	`

	result, err := conn(ctx, r.db).Exec(ctx, query)
	if err != nil {
		r.log.Error("Failed to clean expired sessions",
			zap.Error(err),
		)
		return 0, fmt.Errorf("failed to clean sessions: %w", err)
	}

	return result.RowsAffected(), nil
}
