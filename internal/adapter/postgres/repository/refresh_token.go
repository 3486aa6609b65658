package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/miservicio/auth-service/internal/core/domain"

	"github.com/lib/pq"
)

type PostgresRefreshTokenRepository struct {
	db *sql.DB
}

func NewRefreshTokenRepository(db *sql.DB) *PostgresRefreshTokenRepository {
	return &PostgresRefreshTokenRepository{
		db,
	}
}

func (r *PostgresRefreshTokenRepository) Create(ctx context.Context, rec *domain.RefreshTokenRecord) error {
	query := `INSERT INTO refresh_tokens (user_id, jti, token_hash, revoked, expires_at)
    VALUES ($1, $2, $3, false, $4)
    RETURNING id, created_at, updated_at`

	err := r.db.QueryRowContext(ctx, query, rec.UserID, rec.JTI, rec.TokenHash, rec.ExpiresAt).Scan(
		&rec.ID,
		&rec.CreatedAt,
		&rec.UpdatedAt,
	)
	if err != nil {
		// The jti unique constraint doubles as a collision guard for the
		// randomly generated identifier.
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == uniqueViolation {
			return domain.ErrInternal
		}
		return err
	}
	return nil
}

// ConsumeLive is the rotation check-and-flip. The read and the write are one
// conditional UPDATE, so two racing rotations of the same token resolve to
// exactly one winner; the loser sees zero affected rows.
func (r *PostgresRefreshTokenRepository) ConsumeLive(ctx context.Context, jti, tokenHash string, now time.Time) (int64, error) {
	query := `UPDATE refresh_tokens
        SET revoked = true, updated_at = now()
        WHERE jti = $1 AND token_hash = $2 AND revoked = false AND expires_at > $3
        RETURNING user_id`

	var userID int64
	err := r.db.QueryRowContext(ctx, query, jti, tokenHash, now).Scan(&userID)
	if err == sql.ErrNoRows {
		return 0, domain.ErrRefreshRevoked
	}
	if err != nil {
		return 0, err
	}
	return userID, nil
}

func (r *PostgresRefreshTokenRepository) RevokeByJTI(ctx context.Context, jti string) error {
	query := `UPDATE refresh_tokens SET revoked = true, updated_at = now() WHERE jti = $1`

	_, err := r.db.ExecContext(ctx, query, jti)
	return err
}
