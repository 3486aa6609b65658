package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/miservicio/auth-service/internal/core/domain"
	"github.com/miservicio/auth-service/internal/core/ports"

	"github.com/golang-jwt/jwt/v5"
)

const (
	defaultAccessTTL  = 15 * time.Minute
	defaultRefreshTTL = 30 * 24 * time.Hour

	// accessLeeway absorbs small clock skew between services verifying
	// access tokens. Refresh verification gets none; the ledger record is
	// the authority on refresh expiry.
	accessLeeway = 5 * time.Second
)

// JWTTokenService signs and verifies both token flavors. The two keys are
// independent and never interchangeable: a token signed with one fails
// verification against the other.
type JWTTokenService struct {
	accessKey  []byte
	refreshKey []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
	logger     ports.LoggerPort
}

func NewJWTTokenService(accessSecret, refreshSecret, accessTTLStr, refreshTTLStr string, logger ports.LoggerPort) *JWTTokenService {
	accessTTL, err := time.ParseDuration(accessTTLStr)
	if err != nil {
		logger.Warn("Invalid access token TTL, using default 15m", map[string]interface{}{
			"ttl": accessTTLStr,
		})
		accessTTL = defaultAccessTTL
	}
	refreshTTL, err := time.ParseDuration(refreshTTLStr)
	if err != nil {
		logger.Warn("Invalid refresh token TTL, using default 720h", map[string]interface{}{
			"ttl": refreshTTLStr,
		})
		refreshTTL = defaultRefreshTTL
	}

	return &JWTTokenService{
		accessKey:  []byte(accessSecret),
		refreshKey: []byte(refreshSecret),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		logger:     logger,
	}
}

func (j *JWTTokenService) CreateAccessToken(user *domain.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"user_id": user.ID,
		"role":    string(user.Role),
		"iat":     now.Unix(),
		"exp":     now.Add(j.accessTTL).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(j.accessKey)
}

func (j *JWTTokenService) CreateRefreshToken(user *domain.User, jti string) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(j.refreshTTL)
	claims := jwt.MapClaims{
		"user_id": user.ID,
		"jti":     jti,
		"iat":     now.Unix(),
		"exp":     expiresAt.Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(j.refreshKey)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

func (j *JWTTokenService) VerifyAccessToken(token string) (domain.AccessPayload, error) {
	claims, err := j.parse(token, j.accessKey, jwt.WithLeeway(accessLeeway))
	if err != nil {
		return domain.AccessPayload{}, err
	}

	userID, err := claimUserID(claims)
	if err != nil {
		return domain.AccessPayload{}, domain.ErrInvalidToken
	}

	roleClaimed, ok := claims["role"].(string)
	if !ok {
		return domain.AccessPayload{}, domain.ErrInvalidToken
	}
	role := domain.UserRole(roleClaimed)
	if role != domain.RoleUser && role != domain.RoleProvider && role != domain.RoleAdmin {
		j.logger.Warn("Invalid role in token", map[string]interface{}{
			"role": roleClaimed,
		})
		return domain.AccessPayload{}, domain.ErrInvalidToken
	}

	return domain.AccessPayload{UserID: userID, Role: role}, nil
}

func (j *JWTTokenService) VerifyRefreshToken(token string) (domain.RefreshPayload, error) {
	claims, err := j.parse(token, j.refreshKey)
	if err != nil {
		return domain.RefreshPayload{}, err
	}

	userID, err := claimUserID(claims)
	if err != nil {
		return domain.RefreshPayload{}, domain.ErrInvalidToken
	}

	jti, ok := claims["jti"].(string)
	if !ok || jti == "" {
		return domain.RefreshPayload{}, domain.ErrInvalidToken
	}

	return domain.RefreshPayload{UserID: userID, JTI: jti}, nil
}

func (j *JWTTokenService) parse(token string, key []byte, opts ...jwt.ParserOption) (jwt.MapClaims, error) {
	parsed, err := jwt.Parse(token, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return key, nil
	}, opts...)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, domain.ErrTokenExpired
		}
		return nil, domain.ErrInvalidToken
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok || !parsed.Valid {
		return nil, domain.ErrInvalidToken
	}
	return claims, nil
}

// claimUserID tolerates the numeric widening JSON applies to claims.
func claimUserID(claims jwt.MapClaims) (int64, error) {
	switch v := claims["user_id"].(type) {
	case float64:
		return int64(v), nil
	case int64:
		return v, nil
	default:
		return 0, errors.New("missing user_id claim")
	}
}

var _ ports.TokenService = (*JWTTokenService)(nil)
