package ports

import (
	"context"

	"github.com/miservicio/auth-service/internal/core/domain"
)

type UserRepository interface {
	CreateUser(ctx context.Context, user *domain.User) (*domain.User, error)
	GetUserByID(ctx context.Context, id int64) (*domain.User, error)
	// GetUserByEmail returns (nil, nil) when no user matches.
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)
	SetRole(ctx context.Context, id int64, role domain.UserRole) error
	Summary(ctx context.Context) (*domain.UsersSummary, error)
}
