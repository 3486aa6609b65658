package domain

// Error is a domain failure with a stable machine-readable code. Handlers map
// codes to HTTP statuses; anything that is not a *Error surfaces to callers as
// INTERNAL_ERROR with no detail attached.
type Error struct {
	Code    string
	Message string
}

func (e *Error) Error() string { return e.Message }

var (
	ErrValidation         = &Error{Code: "VALIDATION_ERROR", Message: "invalid input"}
	ErrEmailTaken         = &Error{Code: "EMAIL_TAKEN", Message: "email already registered"}
	ErrInvalidCredentials = &Error{Code: "INVALID_CREDENTIALS", Message: "invalid credentials"}
	ErrInvalidEmailDomain = &Error{Code: "INVALID_EMAIL_DOMAIN", Message: "email domain does not exist"}
	ErrMissingRefresh     = &Error{Code: "MISSING_REFRESH", Message: "refresh token required"}
	ErrInvalidRefresh     = &Error{Code: "INVALID_REFRESH", Message: "invalid refresh token"}
	ErrRefreshRevoked     = &Error{Code: "REFRESH_REVOKED", Message: "refresh token revoked or expired"}
	ErrMissingToken       = &Error{Code: "MISSING_TOKEN", Message: "token required"}
	ErrInvalidToken       = &Error{Code: "INVALID_TOKEN", Message: "invalid token"}
	ErrTokenExpired       = &Error{Code: "TOKEN_EXPIRED", Message: "token expired"}
	ErrAlreadyVerified    = &Error{Code: "ALREADY_VERIFIED", Message: "email already verified"}
	ErrUserNotFound       = &Error{Code: "USER_NOT_FOUND", Message: "user not found"}
	ErrInternal           = &Error{Code: "INTERNAL_ERROR", Message: "internal error"}
)
