package ports

import "context"

// VerificationMailer delivers the verification message. Delivery failures are
// the caller's to log; they never surface to the user synchronously.
type VerificationMailer interface {
	SendVerificationEmail(ctx context.Context, to, token string) error
}

// DomainChecker answers whether the email's domain can receive mail. It is
// advisory: resolver failures and timeouts must report true rather than block
// registration.
type DomainChecker interface {
	DomainExists(ctx context.Context, email string) bool
}

// ProviderClient asks the provider-status service whether the user is also a
// provider there. Non-authoritative: any failure degrades to false.
type ProviderClient interface {
	IsProvider(ctx context.Context, userID int64) bool
}
