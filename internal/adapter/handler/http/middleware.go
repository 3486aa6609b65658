package http

import (
	"net/http"
	"strings"

	"github.com/miservicio/auth-service/internal/core/domain"
	"github.com/miservicio/auth-service/internal/core/ports"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	authorizationHeaderKey  = "authorization"
	authorizationType       = "bearer"
	authorizationPayloadKey = "authorization_payload"

	requestIDHeaderKey = "x-request-id"
	requestIDKey       = "request_id"
)

// RequestIDMiddleware honors an inbound x-request-id or mints one, and echoes
// it on the response so every reply is traceable.
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeaderKey)
		if id == "" {
			id = uuid.New().String()
		}
		c.Set(requestIDKey, id)
		c.Writer.Header().Set(requestIDHeaderKey, id)
		c.Next()
	}
}

func AuthMiddleware(tokens ports.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authorizationHeader := c.GetHeader(authorizationHeaderKey)
		if authorizationHeader == "" {
			newErrorResponse(c, http.StatusUnauthorized, domain.ErrMissingToken.Code, domain.ErrMissingToken.Message)
			return
		}

		fields := strings.Fields(authorizationHeader)
		if len(fields) != 2 || strings.ToLower(fields[0]) != authorizationType {
			newErrorResponse(c, http.StatusUnauthorized, domain.ErrInvalidToken.Code, domain.ErrInvalidToken.Message)
			return
		}

		payload, err := tokens.VerifyAccessToken(fields[1])
		if err != nil {
			newDomainErrorResponse(c, err)
			return
		}

		c.Set(authorizationPayloadKey, &payload)
		c.Next()
	}
}

func AdminMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		payload, ok := getAuthPayload(c, authorizationPayloadKey)
		if !ok {
			newErrorResponse(c, http.StatusUnauthorized, domain.ErrMissingToken.Code, domain.ErrMissingToken.Message)
			return
		}

		if payload.Role != domain.RoleAdmin {
			newErrorResponse(c, http.StatusForbidden, "FORBIDDEN", "admin access required")
			return
		}

		c.Next()
	}
}
