package domain

import (
	"time"
)

// RefreshTokenRecord is the persisted side of a refresh token. The record
// stores a SHA-256 of the full signed token, never the token itself, and is
// flipped to revoked exactly once: by rotation or by logout. Records are kept
// after revocation for replay detection.
type RefreshTokenRecord struct {
	ID        int64
	UserID    int64
	JTI       string
	TokenHash string
	Revoked   bool
	ExpiresAt time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

// VerificationToken is a single-use opaque token proving control of an email
// address. Used becomes true on consumption or when a newer token for the
// same user supersedes it.
type VerificationToken struct {
	ID        int64
	UserID    int64
	Token     string
	Used      bool
	ExpiresAt time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

// AccessPayload is what a verified access token carries.
type AccessPayload struct {
	UserID int64
	Role   UserRole
}

// RefreshPayload is what a verified refresh token carries. JTI correlates the
// token with its RefreshTokenRecord.
type RefreshPayload struct {
	UserID int64
	JTI    string
}

// AuthResult is the triple returned by register, login and refresh.
type AuthResult struct {
	User         *User
	AccessToken  string
	RefreshToken string
	IsProvider   bool
}
