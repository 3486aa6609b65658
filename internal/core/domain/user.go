package domain

import (
	"time"
)

type UserRole string

const (
	RoleUser     UserRole = "user"
	RoleProvider UserRole = "provider"
	RoleAdmin    UserRole = "admin"
)

// swagger:model domain.User
type User struct {
	ID              int64     `json:"id"`
	Email           string    `json:"email" validate:"required,email,max=160"`
	PasswordHash    string    `json:"password_hash,omitempty"`
	Role            UserRole  `json:"role"`
	IsEmailVerified bool      `json:"isEmailVerified"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// UsersSummary is the aggregate behind the operational reporting endpoint.
type UsersSummary struct {
	TotalUsers    int64            `json:"totalUsers"`
	VerifiedUsers int64            `json:"verifiedUsers"`
	ByRole        map[string]int64 `json:"byRole"`
}
