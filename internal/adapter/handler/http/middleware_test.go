package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/miservicio/auth-service/internal/adapter/token"
	"github.com/miservicio/auth-service/internal/core/domain"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopLogger struct{}

func (nopLogger) Info(string, map[string]interface{})  {}
func (nopLogger) Error(string, map[string]interface{}) {}
func (nopLogger) Debug(string, map[string]interface{}) {}
func (nopLogger) Warn(string, map[string]interface{})  {}

func newMiddlewareRouter(tokens *token.JWTTokenService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(RequestIDMiddleware())

	authed := router.Group("", AuthMiddleware(tokens))
	authed.GET("/protected", func(c *gin.Context) {
		payload, _ := getAuthPayload(c, authorizationPayloadKey)
		c.JSON(http.StatusOK, gin.H{"userId": payload.UserID, "role": payload.Role})
	})
	authed.GET("/admin-only", AdminMiddleware(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return router
}

func errorCode(t *testing.T, body []byte) string {
	t.Helper()
	var resp errorResponse
	require.NoError(t, json.Unmarshal(body, &resp))
	return resp.Error.Code
}

func TestAuthMiddleware(t *testing.T) {
	tokens := token.NewJWTTokenService("test-access", "test-refresh", "15m", "720h", nopLogger{})
	router := newMiddlewareRouter(tokens)

	t.Run("missing header", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, domain.ErrMissingToken.Code, errorCode(t, w.Body.Bytes()))
	})

	t.Run("malformed header", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Token abc")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, domain.ErrInvalidToken.Code, errorCode(t, w.Body.Bytes()))
	})

	t.Run("garbage token", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer not-a-jwt")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, domain.ErrInvalidToken.Code, errorCode(t, w.Body.Bytes()))
	})

	t.Run("expired token", func(t *testing.T) {
		expired := token.NewJWTTokenService("test-access", "test-refresh", "-1m", "720h", nopLogger{})
		signed, err := expired.CreateAccessToken(&domain.User{ID: 1, Role: domain.RoleUser})
		require.NoError(t, err)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+signed)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, domain.ErrTokenExpired.Code, errorCode(t, w.Body.Bytes()))
	})

	t.Run("valid token reaches handler", func(t *testing.T) {
		signed, err := tokens.CreateAccessToken(&domain.User{ID: 7, Role: domain.RoleUser})
		require.NoError(t, err)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+signed)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"userId":7,"role":"user"}`, w.Body.String())
	})
}

func TestAdminMiddleware(t *testing.T) {
	tokens := token.NewJWTTokenService("test-access", "test-refresh", "15m", "720h", nopLogger{})
	router := newMiddlewareRouter(tokens)

	t.Run("non-admin forbidden", func(t *testing.T) {
		signed, err := tokens.CreateAccessToken(&domain.User{ID: 1, Role: domain.RoleUser})
		require.NoError(t, err)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/admin-only", nil)
		req.Header.Set("Authorization", "Bearer "+signed)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("admin allowed", func(t *testing.T) {
		signed, err := tokens.CreateAccessToken(&domain.User{ID: 1, Role: domain.RoleAdmin})
		require.NoError(t, err)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/admin-only", nil)
		req.Header.Set("Authorization", "Bearer "+signed)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestRequestIDMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(RequestIDMiddleware())
	router.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, requestID(c))
	})

	t.Run("inbound id is honored", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.Header.Set("x-request-id", "trace-me")
		router.ServeHTTP(w, req)

		assert.Equal(t, "trace-me", w.Body.String())
		assert.Equal(t, "trace-me", w.Header().Get("x-request-id"))
	})

	t.Run("missing id is minted and echoed", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		router.ServeHTTP(w, req)

		assert.NotEmpty(t, w.Body.String())
		assert.Equal(t, w.Body.String(), w.Header().Get("x-request-id"))
	})
}
