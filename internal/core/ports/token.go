package ports

import (
	"context"
	"time"

	"github.com/miservicio/auth-service/internal/core/domain"
)

type RefreshTokenRepository interface {
	Create(ctx context.Context, rec *domain.RefreshTokenRecord) error
	// ConsumeLive atomically flips the record matching jti and tokenHash from
	// live to revoked and returns its owner. It is a single conditional
	// update: if the record is already revoked, expired, or the hash does not
	// match, no row is touched and domain.ErrRefreshRevoked is returned.
	// Exactly one of two concurrent calls for the same jti can succeed.
	ConsumeLive(ctx context.Context, jti, tokenHash string, now time.Time) (int64, error)
	// RevokeByJTI marks the record revoked regardless of state. Missing jti is
	// not an error.
	RevokeByJTI(ctx context.Context, jti string) error
}

type VerificationTokenRepository interface {
	// Replace marks every unused token for the user as used and inserts the
	// new one, in a single transaction.
	Replace(ctx context.Context, userID int64, token string, expiresAt time.Time) error
	// Consume marks the token used and flips the owner's email-verified flag
	// in one transaction, returning the owner. An unknown or already-used
	// token yields domain.ErrInvalidToken; a known unused token past its
	// deadline yields domain.ErrTokenExpired and is left untouched.
	Consume(ctx context.Context, token string, now time.Time) (*domain.User, error)
}
