package http

import (
	"database/sql"
	"net/http"
	"strings"

	"github.com/miservicio/auth-service/internal/config"
	"github.com/miservicio/auth-service/internal/core/ports"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type Router struct {
	*gin.Engine
}

func NewRouter(
	config *config.HTTP,
	db *sql.DB,
	tokenService ports.TokenService,
	authHandler *AuthHandler,
	verificationHandler *VerificationHandler,
	adminHandler *AdminHandler,
) (*Router, error) {
	if config.Env == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}

	// CORS
	ginConfig := cors.DefaultConfig()
	ginConfig.AllowOrigins = strings.Split(config.AllowedOrigins, ",")
	ginConfig.AllowHeaders = append(ginConfig.AllowHeaders, "Authorization", "x-request-id")

	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery(), RequestIDMiddleware(), cors.New(ginConfig))

	// Swagger
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Metrics
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Health / Readiness
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true, "service": "auth-service"})
	})
	router.GET("/ready", func(c *gin.Context) {
		if err := db.PingContext(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"ok": false})
			return
		}
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	auth := router.Group("/api/v1/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
		auth.POST("/refresh", authHandler.Refresh)
		auth.POST("/logout", authHandler.Logout)
		auth.GET("/verify-email", verificationHandler.Verify)

		authed := auth.Group("")
		authed.Use(AuthMiddleware(tokenService))
		{
			authed.GET("/me", authHandler.Me)
			authed.POST("/verify-email/send", verificationHandler.Send)

			admin := authed.Group("/admin")
			admin.Use(AdminMiddleware())
			{
				admin.GET("/users-summary", adminHandler.UsersSummary)
			}
		}
	}

	return &Router{
		Engine: router,
	}, nil
}

// Starts the HTTP server
func (r *Router) Serve(listenAddr string) error {
	return r.Run(listenAddr)
}
