// Command create-admin promotes an existing user to the admin role.
//
// Usage:
//
//	create-admin -email app.miservicio@gmail.com -yes
package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/miservicio/auth-service/internal/adapter/postgres/repository"
	redisAdapter "github.com/miservicio/auth-service/internal/adapter/redis"
	"github.com/miservicio/auth-service/internal/config"
	"github.com/miservicio/auth-service/internal/core/domain"
	"github.com/miservicio/auth-service/internal/core/services"

	_ "github.com/lib/pq"
	redisClient "github.com/redis/go-redis/v9"
)

func main() {
	email := flag.String("email", "", "email of the user to promote")
	confirm := flag.Bool("yes", false, "confirm the promotion")
	flag.Parse()

	if *email == "" {
		flag.Usage()
		os.Exit(2)
	}
	if !*confirm {
		log.Fatal("refusing to promote without -yes")
	}

	cfg, err := config.New()
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}

	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		cfg.DB.Host, cfg.DB.Port, cfg.DB.User, cfg.DB.Password, cfg.DB.Name)
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		log.Fatal("Failed to connect to database: ", err)
	}
	defer db.Close()

	ctx := context.Background()
	userRepo := repository.NewUserRepository(db)

	user, err := userRepo.GetUserByEmail(ctx, services.NormalizeEmail(*email))
	if err != nil {
		log.Fatalf("Failed to look up user: %v", err)
	}
	if user == nil {
		log.Fatalf("No user with email %s", *email)
	}
	if user.Role == domain.RoleAdmin {
		fmt.Printf("%s is already an admin\n", user.Email)
		return
	}

	if err := userRepo.SetRole(ctx, user.ID, domain.RoleAdmin); err != nil {
		log.Fatalf("Failed to promote user: %v", err)
	}

	// Drop the cached login lookup so the next login carries the new role
	// instead of serving the stale copy until its TTL runs out.
	redisConn := redisClient.NewClient(&redisClient.Options{
		Addr:     cfg.Redis.Address,
		Password: cfg.Redis.Password,
		DB:       0,
	})
	if _, err := redisConn.Ping(ctx).Result(); err != nil {
		log.Printf("Warning: could not reach Redis, cached login may stay stale for up to 10m: %v", err)
	} else {
		cache := redisAdapter.NewRedisAdapter(redisConn)
		if err := cache.Delete(services.UserEmailCacheKey(user.Email)); err != nil {
			log.Printf("Warning: failed to invalidate cached login: %v", err)
		}
	}

	fmt.Printf("%s promoted to admin\n", user.Email)
}
