package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/miservicio/auth-service/internal/core/domain"
)

type PostgresVerificationTokenRepository struct {
	db *sql.DB
}

func NewVerificationTokenRepository(db *sql.DB) *PostgresVerificationTokenRepository {
	return &PostgresVerificationTokenRepository{
		db,
	}
}

// Replace supersedes every still-unused token for the user and inserts the
// new one, atomically. Guarantees at most one usable token per user.
func (r *PostgresVerificationTokenRepository) Replace(ctx context.Context, userID int64, token string, expiresAt time.Time) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`UPDATE email_verification_tokens SET used = true, updated_at = now()
         WHERE user_id = $1 AND used = false`, userID)
	if err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO email_verification_tokens (user_id, token, expires_at) VALUES ($1, $2, $3)`,
		userID, token, expiresAt)
	if err != nil {
		return err
	}

	return tx.Commit()
}

// Consume marks the token used and flips the owner's verified flag in one
// transaction. The row lock makes a concurrent double consume lose cleanly.
// An expired row is left unused so retention stays the ledger's concern.
func (r *PostgresVerificationTokenRepository) Consume(ctx context.Context, token string, now time.Time) (*domain.User, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var id, userID int64
	var expiresAt time.Time
	err = tx.QueryRowContext(ctx,
		`SELECT id, user_id, expires_at FROM email_verification_tokens
         WHERE token = $1 AND used = false FOR UPDATE`, token).Scan(&id, &userID, &expiresAt)
	if err == sql.ErrNoRows {
		return nil, domain.ErrInvalidToken
	}
	if err != nil {
		return nil, err
	}

	if expiresAt.Before(now) {
		return nil, domain.ErrTokenExpired
	}

	_, err = tx.ExecContext(ctx,
		`UPDATE email_verification_tokens SET used = true, updated_at = now() WHERE id = $1`, id)
	if err != nil {
		return nil, err
	}

	user := &domain.User{}
	err = tx.QueryRowContext(ctx,
		`UPDATE users SET is_email_verified = true, updated_at = now()
         WHERE id = $1
         RETURNING id, email, password_hash, role, is_email_verified, created_at, updated_at`,
		userID).Scan(
		&user.ID,
		&user.Email,
		&user.PasswordHash,
		&user.Role,
		&user.IsEmailVerified,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return user, nil
}
