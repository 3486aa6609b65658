package services

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"time"

	"github.com/miservicio/auth-service/internal/core/domain"
	"github.com/miservicio/auth-service/internal/core/ports"
)

// verificationTokenTTL is the deadline baked into every issued token. Expiry
// is evaluated lazily at consume time; nothing sweeps expired records.
const verificationTokenTTL = 24 * time.Hour

type VerificationService struct {
	userRepo  ports.UserRepository
	tokenRepo ports.VerificationTokenRepository
	mailer    ports.VerificationMailer
	logger    ports.LoggerPort
	cache     ports.CachePort
}

func NewVerificationService(
	userRepo ports.UserRepository,
	tokenRepo ports.VerificationTokenRepository,
	mailer ports.VerificationMailer,
	logger ports.LoggerPort,
	cache ports.CachePort,
) *VerificationService {
	return &VerificationService{
		userRepo:  userRepo,
		tokenRepo: tokenRepo,
		mailer:    mailer,
		logger:    logger,
		cache:     cache,
	}
}

// Issue creates a fresh verification token for the user, superseding any
// still-usable ones, and dispatches the email after the write commits.
func (s *VerificationService) Issue(ctx context.Context, userID int64) error {
	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return err
	}
	if user.IsEmailVerified {
		return domain.ErrAlreadyVerified
	}

	token, err := newOpaqueToken()
	if err != nil {
		s.logger.Error("Failed to generate verification token", map[string]interface{}{
			"user_id": userID,
			"error":   err.Error(),
		})
		return err
	}

	if err := s.tokenRepo.Replace(ctx, userID, token, time.Now().Add(verificationTokenTTL)); err != nil {
		s.logger.Error("Failed to store verification token", map[string]interface{}{
			"user_id": userID,
			"error":   err.Error(),
		})
		return err
	}

	// Delivery is fire-and-forget: failure is logged and the user recovers by
	// requesting a new email.
	go func(email, token string) {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := s.mailer.SendVerificationEmail(ctx, email, token); err != nil {
			s.logger.Warn("Failed to send verification email", map[string]interface{}{
				"user_id": userID,
				"error":   err.Error(),
			})
			return
		}
		s.logger.Info("Verification email sent", map[string]interface{}{
			"user_id": userID,
		})
	}(user.Email, token)

	return nil
}

// Consume exchanges a still-live token for a verified identity.
func (s *VerificationService) Consume(ctx context.Context, token string) (*domain.User, error) {
	user, err := s.tokenRepo.Consume(ctx, token, time.Now())
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Delete(UserEmailCacheKey(user.Email)); err != nil {
			s.logger.Warn("Failed to invalidate user email cache", map[string]interface{}{
				"email": user.Email,
				"error": err.Error(),
			})
		}
	}

	s.logger.Info("Email verified", map[string]interface{}{
		"user_id": user.ID,
	})
	return user, nil
}

func newOpaqueToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
