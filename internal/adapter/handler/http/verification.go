package http

import (
	"net/http"
	"time"

	"github.com/miservicio/auth-service/internal/core/domain"
	"github.com/miservicio/auth-service/internal/core/ports"

	"github.com/gin-gonic/gin"
)

type VerificationHandler struct {
	verification ports.VerificationService
	logger       ports.LoggerPort
	metrics      ports.MetricsPort
}

func NewVerificationHandler(
	verification ports.VerificationService,
	logger ports.LoggerPort,
	metrics ports.MetricsPort,
) *VerificationHandler {
	return &VerificationHandler{
		verification: verification,
		logger:       logger,
		metrics:      metrics,
	}
}

// @Summary Send a verification email
// @Description Issues a new verification token for the caller and emails it
// @Tags verification
// @Security BearerAuth
// @Produce json
// @Success 200 {object} successResponse "Verification email queued"
// @Failure 401 {object} errorResponse "Not authenticated"
// @Failure 404 {object} errorResponse "User not found"
// @Failure 409 {object} errorResponse "Email already verified"
// @Router /api/v1/auth/verify-email/send [post]
func (h *VerificationHandler) Send(c *gin.Context) {
	start := time.Now()
	defer func() {
		h.metrics.RecordMetrics(c, start)
	}()

	payload, exists := getAuthPayload(c, authorizationPayloadKey)
	if !exists {
		newErrorResponse(c, http.StatusUnauthorized, domain.ErrMissingToken.Code, domain.ErrMissingToken.Message)
		return
	}

	if err := h.verification.Issue(c.Request.Context(), payload.UserID); err != nil {
		h.logger.Info("Verification issuance failed", map[string]interface{}{
			"user_id": payload.UserID,
			"error":   err.Error(),
		})
		newDomainErrorResponse(c, err)
		return
	}

	newSuccessResponse(c, http.StatusOK, "Verification email sent", nil)
}

// @Summary Verify an email address
// @Description Consumes a verification token from the emailed link
// @Tags verification
// @Produce json
// @Param token query string true "Verification token"
// @Success 200 {object} successResponse "Email verified"
// @Failure 400 {object} errorResponse "Token required"
// @Failure 401 {object} errorResponse "Invalid or expired token"
// @Router /api/v1/auth/verify-email [get]
func (h *VerificationHandler) Verify(c *gin.Context) {
	start := time.Now()
	defer func() {
		h.metrics.RecordMetrics(c, start)
	}()

	token := c.Query("token")
	if token == "" {
		newErrorResponse(c, http.StatusBadRequest, domain.ErrMissingToken.Code, domain.ErrMissingToken.Message)
		return
	}

	user, err := h.verification.Consume(c.Request.Context(), token)
	if err != nil {
		newDomainErrorResponse(c, err)
		return
	}

	newSuccessResponse(c, http.StatusOK, "Email verified", UserInfo{
		ID:              user.ID,
		Email:           user.Email,
		Role:            user.Role,
		IsEmailVerified: user.IsEmailVerified,
	})
}
