package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type (
	Container struct {
		App          *App
		Token        *Token
		DB           *DB
		HTTP         *HTTP
		Redis        *Redis
		SMTP         *SMTP
		Provider     *Provider
		Verification *Verification
	}

	App struct {
		Name string
		Env  string
	}

	// Token holds both signing secrets. They are independent: one for access
	// tokens, one for refresh tokens, loaded once and never mutated.
	Token struct {
		AccessSecret  string
		RefreshSecret string
		AccessTTL     string
		RefreshTTL    string
	}

	DB struct {
		Host     string
		Port     string
		User     string
		Password string
		Name     string
	}

	HTTP struct {
		Env            string
		Port           string
		AllowedOrigins string
		URL            string
	}

	Redis struct {
		Address  string
		Password string
	}

	SMTP struct {
		Host     string
		Port     int
		Username string
		Password string
		From     string
	}

	Provider struct {
		BaseURL string
	}

	Verification struct {
		FrontendURL      string
		CheckEmailDomain bool
	}
)

func New() (*Container, error) {
	if os.Getenv("APP_ENV") != "production" {
		err := godotenv.Load()
		if err != nil {
			return nil, err
		}
	}

	app := &App{
		Name: os.Getenv("APP_NAME"),
		Env:  os.Getenv("APP_ENV"),
	}

	token := &Token{
		AccessSecret:  os.Getenv("JWT_ACCESS_SECRET"),
		RefreshSecret: os.Getenv("JWT_REFRESH_SECRET"),
		AccessTTL:     os.Getenv("ACCESS_TOKEN_TTL"),
		RefreshTTL:    os.Getenv("REFRESH_TOKEN_TTL"),
	}

	db := &DB{
		Host:     os.Getenv("DB_HOST"),
		Port:     os.Getenv("DB_PORT"),
		User:     os.Getenv("DB_USER"),
		Password: os.Getenv("DB_PASSWORD"),
		Name:     os.Getenv("DB_NAME"),
	}

	http := &HTTP{
		Port:           os.Getenv("HTTP_PORT"),
		AllowedOrigins: os.Getenv("ALLOWED_ORIGINS"),
		URL:            os.Getenv("HTTP_URL"),
		Env:            os.Getenv("APP_ENV"),
	}

	redis := &Redis{
		Address:  os.Getenv("REDIS_ADDRESS"),
		Password: os.Getenv("REDIS_PASSWORD"),
	}

	smtpPort, err := strconv.Atoi(os.Getenv("SMTP_PORT"))
	if err != nil {
		smtpPort = 587
	}
	smtp := &SMTP{
		Host:     os.Getenv("SMTP_HOST"),
		Port:     smtpPort,
		Username: os.Getenv("SMTP_USER"),
		Password: os.Getenv("SMTP_PASS"),
		From:     os.Getenv("SMTP_FROM"),
	}

	provider := &Provider{
		BaseURL: os.Getenv("PROVIDER_SERVICE_URL"),
	}

	verification := &Verification{
		FrontendURL:      os.Getenv("FRONTEND_URL"),
		CheckEmailDomain: os.Getenv("CHECK_EMAIL_DOMAIN") == "true",
	}

	return &Container{
		App:          app,
		Token:        token,
		DB:           db,
		HTTP:         http,
		Redis:        redis,
		SMTP:         smtp,
		Provider:     provider,
		Verification: verification,
	}, nil
}
