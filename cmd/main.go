package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/miservicio/auth-service/docs"
	"github.com/miservicio/auth-service/internal/adapter/handler/http"
	"github.com/miservicio/auth-service/internal/adapter/logger"
	"github.com/miservicio/auth-service/internal/adapter/mailer"
	"github.com/miservicio/auth-service/internal/adapter/prometheus"
	"github.com/miservicio/auth-service/internal/adapter/provider"
	redis "github.com/miservicio/auth-service/internal/adapter/redis"
	"github.com/miservicio/auth-service/internal/adapter/token"

	redisClient "github.com/redis/go-redis/v9"

	"github.com/miservicio/auth-service/internal/adapter/postgres/repository"
	"github.com/miservicio/auth-service/internal/config"
	"github.com/miservicio/auth-service/internal/core/services"

	"github.com/go-playground/validator/v10"
	_ "github.com/lib/pq"
	"github.com/pressly/goose"
)

// @title Auth Service API
// @version 1.0
// @description Credential and token lifecycle service: registration, login, refresh rotation, logout and email verification

// @host localhost:4001
// @BasePath /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// Loading environment
	cfg, err := config.New()
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}

	// Set redis
	redisConn := redisClient.NewClient(&redisClient.Options{
		Addr:     cfg.Redis.Address,
		Password: cfg.Redis.Password,
		DB:       0,
	})

	ctx := context.Background()
	if _, err := redisConn.Ping(ctx).Result(); err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}

	// Set logger
	loggerAdapter := logger.NewLoggerAdapter(cfg.App.Env)
	loggerAdapter.Info("Starting the application", map[string]interface{}{
		"app": cfg.App.Name,
		"env": cfg.App.Env,
	})

	// Connect DB
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		cfg.DB.Host, cfg.DB.Port, cfg.DB.User, cfg.DB.Password, cfg.DB.Name)
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		log.Fatal("Failed to connect to database: ", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: ", err)
	}

	// Migrate DB
	if err := goose.Up(db, "./internal/adapter/postgres/migrations"); err != nil {
		log.Fatal("Failed to run migrations: ", err)
	}

	// Cache
	cacheAdapter := redis.NewRedisAdapter(redisConn)

	// Validate
	validate := validator.New()

	// Observability
	metrics := prometheus.NewPrometheusAdapter()

	// Repositories
	userRepo := repository.NewUserRepository(db)
	refreshRepo := repository.NewRefreshTokenRepository(db)
	verificationRepo := repository.NewVerificationTokenRepository(db)

	// Token issuer
	tokenService := token.NewJWTTokenService(
		cfg.Token.AccessSecret,
		cfg.Token.RefreshSecret,
		cfg.Token.AccessTTL,
		cfg.Token.RefreshTTL,
		loggerAdapter,
	)

	// External collaborators
	smtpMailer := mailer.NewSMTPMailer(
		cfg.SMTP.Host,
		cfg.SMTP.Port,
		cfg.SMTP.Username,
		cfg.SMTP.Password,
		cfg.SMTP.From,
		cfg.Verification.FrontendURL,
		loggerAdapter,
	)
	domainChecker := mailer.NewDNSDomainChecker(loggerAdapter)
	providerClient := provider.NewClient(cfg.Provider.BaseURL, loggerAdapter)

	// Services
	verificationService := services.NewVerificationService(userRepo, verificationRepo, smtpMailer, loggerAdapter, cacheAdapter)
	authService := services.NewAuthService(
		userRepo,
		refreshRepo,
		tokenService,
		verificationService,
		providerClient,
		domainChecker,
		loggerAdapter,
		cacheAdapter,
		validate,
		cfg.Verification.CheckEmailDomain,
	)
	reportService := services.NewReportService(userRepo, loggerAdapter, cacheAdapter)

	// Handlers
	authHandler := http.NewAuthHandler(authService, loggerAdapter, metrics)
	verificationHandler := http.NewVerificationHandler(verificationService, loggerAdapter, metrics)
	adminHandler := http.NewAdminHandler(reportService, loggerAdapter, metrics)

	// Init router
	router, err := http.NewRouter(
		cfg.HTTP,
		db,
		tokenService,
		authHandler,
		verificationHandler,
		adminHandler,
	)
	if err != nil {
		log.Fatal("Error initializing router:", err)
	}

	go func() {
		listenAddr := fmt.Sprintf("%s:%s", cfg.HTTP.URL, cfg.HTTP.Port)
		loggerAdapter.Info("Starting the HTTP server", map[string]interface{}{
			"addr": listenAddr,
		})

		if err := router.Serve(listenAddr); err != nil {
			log.Fatal("Error starting the HTTP server:", err)
		}
	}()

	// Graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGTERM, syscall.SIGINT)

	loggerAdapter.Info("Application is running", nil)

	<-stop

	loggerAdapter.Info("Application stopped", nil)
}
