package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/miservicio/auth-service/internal/core/domain"
	"github.com/miservicio/auth-service/internal/core/ports"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authService ports.AuthService
	logger      ports.LoggerPort
	metrics     ports.MetricsPort
}

func NewAuthHandler(
	authService ports.AuthService,
	logger ports.LoggerPort,
	metrics ports.MetricsPort,
) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		logger:      logger,
		metrics:     metrics,
	}
}

type CredentialsRequest struct {
	Email    string `json:"email" binding:"required,email,max=160" example:"user@example.com"`
	Password string `json:"password" binding:"required,min=8,max=72" example:"password123"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

type UserInfo struct {
	ID              int64           `json:"id"`
	Email           string          `json:"email"`
	Role            domain.UserRole `json:"role"`
	IsEmailVerified bool            `json:"isEmailVerified"`
}

type AuthResponse struct {
	User         UserInfo `json:"user"`
	AccessToken  string   `json:"accessToken"`
	RefreshToken string   `json:"refreshToken"`
	IsProvider   bool     `json:"isProvider"`
}

func toAuthResponse(result *domain.AuthResult) AuthResponse {
	return AuthResponse{
		User: UserInfo{
			ID:              result.User.ID,
			Email:           result.User.Email,
			Role:            result.User.Role,
			IsEmailVerified: result.User.IsEmailVerified,
		},
		AccessToken:  result.AccessToken,
		RefreshToken: result.RefreshToken,
		IsProvider:   result.IsProvider,
	}
}

// @Summary Register a new user
// @Description Creates an identity and returns an access/refresh token pair
// @Tags auth
// @Accept json
// @Produce json
// @Param request body CredentialsRequest true "Email and password"
// @Success 201 {object} AuthResponse "User registered"
// @Failure 400 {object} errorResponse "Validation failed"
// @Failure 409 {object} errorResponse "Email already registered"
// @Router /api/v1/auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	start := time.Now()
	defer func() {
		h.metrics.RecordMetrics(c, start)
	}()

	var req CredentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Failed JSON parse in registration", map[string]interface{}{
			"error": err.Error(),
		})
		newErrorResponse(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid email or password format")
		return
	}

	result, err := h.authService.Register(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrEmailTaken) {
			h.logger.Info("Registration failed: duplicate email", map[string]interface{}{
				"email": req.Email,
			})
		} else {
			h.logger.Error("Failed to register user", map[string]interface{}{
				"email": req.Email,
				"error": err.Error(),
			})
		}
		newDomainErrorResponse(c, err)
		return
	}

	h.logger.Info("User registered successfully", map[string]interface{}{
		"email":   req.Email,
		"user_id": result.User.ID,
	})
	c.JSON(http.StatusCreated, toAuthResponse(result))
}

// @Summary Log in
// @Description Verifies credentials and returns an access/refresh token pair
// @Tags auth
// @Accept json
// @Produce json
// @Param request body CredentialsRequest true "Email and password"
// @Success 200 {object} AuthResponse "Logged in"
// @Failure 400 {object} errorResponse "Validation failed"
// @Failure 401 {object} errorResponse "Invalid credentials"
// @Router /api/v1/auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	start := time.Now()
	defer func() {
		h.metrics.RecordMetrics(c, start)
	}()

	var req CredentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Failed JSON parse in login", map[string]interface{}{
			"error": err.Error(),
		})
		newErrorResponse(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid email or password format")
		return
	}

	result, err := h.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.logger.Info("Login failed", map[string]interface{}{
			"email": req.Email,
			"error": err.Error(),
		})
		newDomainErrorResponse(c, err)
		return
	}

	h.logger.Info("User logged in successfully", map[string]interface{}{
		"email":   req.Email,
		"user_id": result.User.ID,
	})
	c.JSON(http.StatusOK, toAuthResponse(result))
}

// @Summary Rotate a refresh token
// @Description Exchanges a live refresh token for a new access/refresh pair
// @Tags auth
// @Accept json
// @Produce json
// @Param request body RefreshRequest true "Refresh token"
// @Success 200 {object} AuthResponse "Rotated"
// @Failure 400 {object} errorResponse "Refresh token required"
// @Failure 401 {object} errorResponse "Invalid or revoked refresh token"
// @Router /api/v1/auth/refresh [post]
func (h *AuthHandler) Refresh(c *gin.Context) {
	start := time.Now()
	defer func() {
		h.metrics.RecordMetrics(c, start)
	}()

	var req RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		newDomainErrorResponse(c, domain.ErrMissingRefresh)
		return
	}

	result, err := h.authService.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		newDomainErrorResponse(c, err)
		return
	}

	c.JSON(http.StatusOK, toAuthResponse(result))
}

// @Summary Log out
// @Description Revokes the supplied refresh token; always succeeds
// @Tags auth
// @Accept json
// @Produce json
// @Param request body RefreshRequest true "Refresh token"
// @Success 200 {object} successResponse "Logged out"
// @Router /api/v1/auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	start := time.Now()
	defer func() {
		h.metrics.RecordMetrics(c, start)
	}()

	var req RefreshRequest
	// A malformed body is still a successful logout.
	_ = c.ShouldBindJSON(&req)

	_ = h.authService.Logout(c.Request.Context(), req.RefreshToken)
	newSuccessResponse(c, http.StatusOK, "Logged out", nil)
}

// @Summary Current identity
// @Description Returns the authenticated caller's id and role
// @Tags auth
// @Security BearerAuth
// @Produce json
// @Success 200 {object} successResponse "Identity"
// @Failure 401 {object} errorResponse "Not authenticated"
// @Router /api/v1/auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	start := time.Now()
	defer func() {
		h.metrics.RecordMetrics(c, start)
	}()

	payload, exists := getAuthPayload(c, authorizationPayloadKey)
	if !exists {
		newErrorResponse(c, http.StatusUnauthorized, domain.ErrMissingToken.Code, domain.ErrMissingToken.Message)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"userId": payload.UserID,
		"role":   payload.Role,
	})
}
