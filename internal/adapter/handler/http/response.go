package http

import (
	"errors"
	"net/http"

	"github.com/miservicio/auth-service/internal/core/domain"

	"github.com/gin-gonic/gin"
)

type errorBody struct {
	Code      string `json:"code" example:"INVALID_CREDENTIALS"`
	Message   string `json:"message" example:"invalid credentials"`
	RequestID string `json:"requestId,omitempty" example:"6e1a1a5f-0b0e-4c05-9a58-1f2b6d9c3a41"`
}

type errorResponse struct {
	Error errorBody `json:"error"`
}

type successResponse struct {
	Success bool        `json:"success" example:"true"`
	Message string      `json:"message,omitempty" example:"Success message"`
	Data    interface{} `json:"data,omitempty" swaggertype:"object"`
}

func newErrorResponse(c *gin.Context, statusCode int, code, message string) {
	c.AbortWithStatusJSON(statusCode, errorResponse{
		Error: errorBody{
			Code:      code,
			Message:   message,
			RequestID: requestID(c),
		},
	})
}

func newSuccessResponse(c *gin.Context, statusCode int, message string, data interface{}) {
	c.JSON(statusCode, successResponse{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// newDomainErrorResponse maps a domain error code to its HTTP status. Any
// untyped error is an internal fault and leaks nothing to the caller.
func newDomainErrorResponse(c *gin.Context, err error) {
	var domainErr *domain.Error
	if !errors.As(err, &domainErr) {
		newErrorResponse(c, http.StatusInternalServerError, domain.ErrInternal.Code, domain.ErrInternal.Message)
		return
	}
	newErrorResponse(c, statusForCode(domainErr.Code), domainErr.Code, domainErr.Message)
}

func statusForCode(code string) int {
	switch code {
	case domain.ErrEmailTaken.Code, domain.ErrAlreadyVerified.Code:
		return http.StatusConflict
	case domain.ErrInvalidCredentials.Code, domain.ErrInvalidRefresh.Code,
		domain.ErrRefreshRevoked.Code, domain.ErrInvalidToken.Code,
		domain.ErrTokenExpired.Code:
		return http.StatusUnauthorized
	case domain.ErrMissingRefresh.Code, domain.ErrMissingToken.Code,
		domain.ErrInvalidEmailDomain.Code, domain.ErrValidation.Code:
		return http.StatusBadRequest
	case domain.ErrUserNotFound.Code:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
