package ports

import (
	"context"
	"time"

	"github.com/miservicio/auth-service/internal/core/domain"
)

type TokenService interface {
	CreateAccessToken(user *domain.User) (string, error)
	// CreateRefreshToken returns the signed token together with its expiry so
	// the ledger record and the token always agree on the deadline.
	CreateRefreshToken(user *domain.User, jti string) (string, time.Time, error)
	VerifyAccessToken(token string) (domain.AccessPayload, error)
	VerifyRefreshToken(token string) (domain.RefreshPayload, error)
}

type AuthService interface {
	Register(ctx context.Context, email, password string) (*domain.AuthResult, error)
	Login(ctx context.Context, email, password string) (*domain.AuthResult, error)
	Refresh(ctx context.Context, refreshToken string) (*domain.AuthResult, error)
	Logout(ctx context.Context, refreshToken string) error
}

type VerificationService interface {
	Issue(ctx context.Context, userID int64) error
	Consume(ctx context.Context, token string) (*domain.User, error)
}
