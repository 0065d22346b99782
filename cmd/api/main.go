package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-auth-api/internal/application/auth"
	"github.com/go-auth-api/internal/config"
	"github.com/go-auth-api/internal/infrastructure/blacklist"
	"github.com/go-auth-api/internal/infrastructure/dynamo"
	jwtinfra "github.com/go-auth-api/internal/infrastructure/jwt"
	"github.com/go-auth-api/internal/infrastructure/smtp"
	snsinfra "github.com/go-auth-api/internal/infrastructure/sns"
	"github.com/go-auth-api/internal/pkg/password"
	transporthttp "github.com/go-auth-api/internal/transport/http"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading from environment")
	}

	cfg := config.Load()

	// JWT provider — fatal if the signing secret is unset.
	jwtProvider, err := jwtinfra.NewProvider(cfg)
	if err != nil {
		log.Fatalf("jwt provider: %v", err)
	}

	// Bootstrap DynamoDB tables (creates them if they don't exist).
	dynamoClient := dynamo.NewClient(cfg)
	dynamo.Bootstrap(context.Background(), dynamoClient, cfg.DynamoTables)

	// Revocation store: Redis (shared) or in-memory (single instance).
	var store auth.Store
	switch cfg.RevocationBackend {
	case "redis":
		client, err := blacklist.NewClient(context.Background(), cfg.RedisAddr)
		if err != nil {
			log.Fatalf("revocation store: %v", err)
		}
		store = blacklist.NewRedisStore(client)
	default:
		store = blacklist.NewMemoryStore()
	}

	// Notifier: SNS topic fan-out or direct SMTP.
	var notifier auth.Notifier
	if cfg.NotifierBackend == "sns" {
		publisher, err := snsinfra.NewPublisher(cfg)
		if err != nil {
			log.Fatalf("sns notifier: %v", err)
		}
		notifier = publisher
	} else {
		notifier = smtp.NewMailer(cfg)
	}

	deps := &transporthttp.Deps{
		UserRepo:    dynamo.NewUserRepo(dynamoClient, cfg.DynamoTables.Users),
		Notifier:    notifier,
		Blacklist:   store,
		JWTProvider: jwtProvider,
		Hasher:      password.NewBcrypt(),
	}

	router := transporthttp.NewRouter(cfg, deps)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.AppPort),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Server starting on :%s (env=%s)", cfg.AppPort, cfg.AppEnv)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("forced shutdown: %v", err)
	}
	log.Println("Server stopped")
}
