package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/miservicio/auth-service/internal/core/domain"
	"github.com/miservicio/auth-service/internal/core/ports"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// passwordHashCost keeps bcrypt slow enough to resist offline brute force.
const passwordHashCost = 12

const userEmailCacheTTL = 10 * time.Minute

type AuthService struct {
	userRepo     ports.UserRepository
	refreshRepo  ports.RefreshTokenRepository
	tokens       ports.TokenService
	verification ports.VerificationService
	provider     ports.ProviderClient
	domains      ports.DomainChecker
	logger       ports.LoggerPort
	cache        ports.CachePort
	validate     *validator.Validate

	// checkEmailDomain gates the advisory DNS lookup on registration.
	checkEmailDomain bool
}

// credentials mirrors the transport-level constraints so malformed input that
// slips past a handler still fails closed here.
type credentials struct {
	Email    string `validate:"required,email,max=160"`
	Password string `validate:"required,min=8,max=72"`
}

func NewAuthService(
	userRepo ports.UserRepository,
	refreshRepo ports.RefreshTokenRepository,
	tokens ports.TokenService,
	verification ports.VerificationService,
	provider ports.ProviderClient,
	domains ports.DomainChecker,
	logger ports.LoggerPort,
	cache ports.CachePort,
	validate *validator.Validate,
	checkEmailDomain bool,
) *AuthService {
	return &AuthService{
		userRepo:         userRepo,
		refreshRepo:      refreshRepo,
		tokens:           tokens,
		verification:     verification,
		provider:         provider,
		domains:          domains,
		logger:           logger,
		cache:            cache,
		validate:         validate,
		checkEmailDomain: checkEmailDomain,
	}
}

// NormalizeEmail is the single point of truth for email comparison: lowercase
// and trimmed before every store write and query.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

func (s *AuthService) Register(ctx context.Context, email, password string) (*domain.AuthResult, error) {
	email = NormalizeEmail(email)

	if s.validate != nil {
		if err := s.validate.Struct(credentials{Email: email, Password: password}); err != nil {
			s.logger.Info("Registration validation failed", map[string]interface{}{
				"error": err.Error(),
			})
			return nil, domain.ErrValidation
		}
	}

	if s.checkEmailDomain && s.domains != nil && !s.domains.DomainExists(ctx, email) {
		s.logger.Info("Registration rejected: email domain does not resolve", map[string]interface{}{
			"email": email,
		})
		return nil, domain.ErrInvalidEmailDomain
	}

	existing, err := s.userRepo.GetUserByEmail(ctx, email)
	if err != nil {
		s.logger.Error("Failed to check existing email", map[string]interface{}{
			"email": email,
			"error": err.Error(),
		})
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailTaken
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), passwordHashCost)
	if err != nil {
		s.logger.Error("Error during password hashing", map[string]interface{}{
			"error":  err.Error(),
			"method": "Register",
		})
		return nil, err
	}

	user, err := s.userRepo.CreateUser(ctx, &domain.User{
		Email:        email,
		PasswordHash: string(hashed),
		Role:         domain.RoleUser,
	})
	if err != nil {
		if errors.Is(err, domain.ErrEmailTaken) {
			return nil, domain.ErrEmailTaken
		}
		s.logger.Error("Failed to create user", map[string]interface{}{
			"email": email,
			"error": err.Error(),
		})
		return nil, err
	}

	result, err := s.issueTokenPair(ctx, user)
	if err != nil {
		return nil, err
	}

	// Best effort: the registration response never waits on, or fails from,
	// verification-email issuance.
	s.dispatchVerification(user.ID)

	s.logger.Info("User registered", map[string]interface{}{
		"user_id": user.ID,
		"email":   user.Email,
	})
	return result, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.AuthResult, error) {
	email = NormalizeEmail(email)

	user := s.cachedUserByEmail(email)
	if user == nil {
		var err error
		user, err = s.userRepo.GetUserByEmail(ctx, email)
		if err != nil {
			// A store fault is not a credential failure; let it surface.
			s.logger.Error("Failed to get user by email", map[string]interface{}{
				"email": email,
				"error": err.Error(),
			})
			return nil, err
		}
		if user == nil {
			// Same failure as a bad password so callers cannot probe which
			// emails are registered.
			return nil, domain.ErrInvalidCredentials
		}
		s.cacheUserByEmail(email, user)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		s.logger.Info("Invalid password attempt", map[string]interface{}{
			"email": email,
		})
		return nil, domain.ErrInvalidCredentials
	}

	result, err := s.issueTokenPair(ctx, user)
	if err != nil {
		return nil, err
	}
	result.IsProvider = s.lookupProvider(ctx, user.ID)
	return result, nil
}

func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*domain.AuthResult, error) {
	if refreshToken == "" {
		return nil, domain.ErrMissingRefresh
	}

	payload, err := s.tokens.VerifyRefreshToken(refreshToken)
	if err != nil {
		if errors.Is(err, domain.ErrTokenExpired) {
			// The ledger record carries the same deadline, so an expired
			// token is a revoked rotation, not a malformed one.
			return nil, domain.ErrRefreshRevoked
		}
		return nil, domain.ErrInvalidRefresh
	}

	userID, err := s.refreshRepo.ConsumeLive(ctx, payload.JTI, hashToken(refreshToken), time.Now())
	if err != nil {
		if errors.Is(err, domain.ErrRefreshRevoked) {
			s.logger.Warn("Refresh token replay or expiry", map[string]interface{}{
				"jti":     payload.JTI,
				"user_id": payload.UserID,
			})
			return nil, domain.ErrRefreshRevoked
		}
		s.logger.Error("Failed to consume refresh token", map[string]interface{}{
			"jti":   payload.JTI,
			"error": err.Error(),
		})
		return nil, err
	}

	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		s.logger.Error("Failed to load user for rotation", map[string]interface{}{
			"user_id": userID,
			"error":   err.Error(),
		})
		return nil, err
	}

	result, err := s.issueTokenPair(ctx, user)
	if err != nil {
		return nil, err
	}
	result.IsProvider = s.lookupProvider(ctx, user.ID)
	return result, nil
}

// Logout is idempotent: a missing, malformed or already-revoked token still
// satisfies the caller's intent, so nothing here is an error.
func (s *AuthService) Logout(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return nil
	}
	payload, err := s.tokens.VerifyRefreshToken(refreshToken)
	if err != nil {
		return nil
	}
	if err := s.refreshRepo.RevokeByJTI(ctx, payload.JTI); err != nil {
		s.logger.Warn("Failed to revoke refresh token on logout", map[string]interface{}{
			"jti":   payload.JTI,
			"error": err.Error(),
		})
	}
	return nil
}

func (s *AuthService) issueTokenPair(ctx context.Context, user *domain.User) (*domain.AuthResult, error) {
	jti := uuid.New().String()

	accessToken, err := s.tokens.CreateAccessToken(user)
	if err != nil {
		s.logger.Error("Failed to create access token", map[string]interface{}{
			"user_id": user.ID,
			"error":   err.Error(),
		})
		return nil, err
	}

	refreshToken, expiresAt, err := s.tokens.CreateRefreshToken(user, jti)
	if err != nil {
		s.logger.Error("Failed to create refresh token", map[string]interface{}{
			"user_id": user.ID,
			"error":   err.Error(),
		})
		return nil, err
	}

	err = s.refreshRepo.Create(ctx, &domain.RefreshTokenRecord{
		UserID:    user.ID,
		JTI:       jti,
		TokenHash: hashToken(refreshToken),
		ExpiresAt: expiresAt,
	})
	if err != nil {
		s.logger.Error("Failed to persist refresh token record", map[string]interface{}{
			"user_id": user.ID,
			"jti":     jti,
			"error":   err.Error(),
		})
		return nil, err
	}

	return &domain.AuthResult{
		User:         user,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

func (s *AuthService) dispatchVerification(userID int64) {
	if s.verification == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := s.verification.Issue(ctx, userID); err != nil {
			s.logger.Warn("Post-registration verification issuance failed", map[string]interface{}{
				"user_id": userID,
				"error":   err.Error(),
			})
		}
	}()
}

// lookupProvider enriches the result with the advisory provider flag. The
// client owns its own 5s bound and degrades to false on any failure.
func (s *AuthService) lookupProvider(ctx context.Context, userID int64) bool {
	if s.provider == nil {
		return false
	}
	return s.provider.IsProvider(ctx, userID)
}

func (s *AuthService) cachedUserByEmail(email string) *domain.User {
	if s.cache == nil {
		return nil
	}
	data, err := s.cache.Get(UserEmailCacheKey(email))
	if err != nil {
		return nil
	}
	var user domain.User
	if err := json.Unmarshal(data, &user); err != nil {
		return nil
	}
	s.logger.Debug("User found in email cache", map[string]interface{}{
		"email": email,
	})
	return &user
}

func (s *AuthService) cacheUserByEmail(email string, user *domain.User) {
	if s.cache == nil {
		return
	}
	data, err := json.Marshal(user)
	if err != nil {
		s.logger.Warn("Failed to marshal user for email cache", map[string]interface{}{
			"email": email,
			"error": err.Error(),
		})
		return
	}
	if err := s.cache.Set(UserEmailCacheKey(email), data, userEmailCacheTTL); err != nil {
		s.logger.Warn("Failed to cache user by email", map[string]interface{}{
			"email": email,
			"error": err.Error(),
		})
	}
}

// UserEmailCacheKey names the cached login lookup for an email. Anything that
// changes a user's stored identity out of band (role promotion, verification)
// must delete this key or logins serve the stale copy until the TTL runs out.
func UserEmailCacheKey(email string) string {
	return fmt.Sprintf("user_email:%s", email)
}
