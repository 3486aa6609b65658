package http

import (
	"github.com/miservicio/auth-service/internal/core/domain"

	"github.com/gin-gonic/gin"
)

func getAuthPayload(ctx *gin.Context, key string) (*domain.AccessPayload, bool) {
	value, exists := ctx.Get(key)
	if !exists {
		return nil, false
	}
	payload, ok := value.(*domain.AccessPayload)
	if !ok {
		return nil, false
	}
	return payload, true
}

func requestID(ctx *gin.Context) string {
	value, exists := ctx.Get(requestIDKey)
	if !exists {
		return ""
	}
	id, ok := value.(string)
	if !ok {
		return ""
	}
	return id
}
