package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/princinho/todoapi/config"
	"github.com/princinho/todoapi/database"
	"github.com/princinho/todoapi/logging"
	"github.com/princinho/todoapi/router"
	"github.com/princinho/todoapi/services"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logCloser, err := logging.Setup(cfg.LogFile)
	if err != nil {
		log.Fatalf("logging: %v", err)
	}
	defer logCloser.Close()

	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}

	ctx := context.Background()

	var store database.Store
	var client *mongo.Client
	switch cfg.DatabaseDriver {
	case config.DriverMemory:
		log.Println("Using in-memory store")
		store = database.NewMemoryStore()
	default:
		connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		client, err = database.Connect(connectCtx, cfg.MongoURI)
		if err != nil {
			cancel()
			log.Fatal(err)
		}
		db := client.Database(cfg.DatabaseName)
		if err := database.EnsureIndexes(connectCtx, db); err != nil {
			cancel()
			log.Fatal(err)
		}
		cancel()
		store = database.NewMongoStore(db)
	}

	tokens := services.NewTokenService(store, cfg.JWTSecret)
	users := services.NewUserService(store, tokens, services.UserServiceConfig{
		BcryptCost:        cfg.BcryptCost,
		PasswordMinLength: cfg.PasswordMinLength,
	})
	todos := services.NewTodoService(store)

	//seeding initial user
	if cfg.SeedEmail != "" && cfg.SeedPassword != "" {
		created, err := users.Seed(ctx, cfg.SeedEmail, cfg.SeedPassword)
		if err != nil {
			log.Fatalf("seed user: %v", err)
		}
		if created {
			log.Println("User seeded:", cfg.SeedEmail)
		} else {
			log.Println("User already exists:", cfg.SeedEmail)
		}
	}

	r := router.New(cfg.AllowedOrigins, router.Services{
		Users:  users,
		Todos:  todos,
		Tokens: tokens,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("Started on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("listen: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("server shutdown: %v", err)
	}
	if client != nil {
		if err := client.Disconnect(shutdownCtx); err != nil {
			log.Printf("mongo disconnect: %v", err)
		}
	}
}
