package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/santad/internal/common/clock"
	"github.com/KirkDiggler/santad/internal/common/token"
	"github.com/KirkDiggler/santad/internal/draw"
	"github.com/KirkDiggler/santad/internal/handlers/web"
	roomRepo "github.com/KirkDiggler/santad/internal/repositories/room"
	"github.com/KirkDiggler/santad/internal/services/mailer"
	roomService "github.com/KirkDiggler/santad/internal/services/room"
)

func main() {
	// Load .env if present; real deployments use the environment directly
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment")
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// Initialize Redis client
	redisClient := redis.NewClient(&redis.Options{
		Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
		Password: getEnv("REDIS_PASSWORD", ""),
		DB:       0,
	})

	// Test Redis connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := redisClient.Ping(ctx).Err(); err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}

	// Initialize repository
	repo, err := roomRepo.NewRedis(&roomRepo.Config{
		RedisClient: redisClient,
	})
	if err != nil {
		log.Fatalf("Failed to create room repository: %v", err)
	}

	// Get the Resend key from the environment
	resendAPIKey := getEnv("RESEND_API_KEY", "")
	if resendAPIKey == "" {
		log.Fatal("RESEND_API_KEY environment variable is required")
	}

	sender, err := mailer.NewResendSender(&mailer.ResendConfig{
		APIKey: resendAPIKey,
		From:   getEnv("MAIL_FROM", "Secret Santa <noreply@example.com>"),
	})
	if err != nil {
		log.Fatalf("Failed to create email sender: %v", err)
	}

	mailerSvc, err := mailer.New(&mailer.Config{
		Sender: sender,
		Logger: logger,
	})
	if err != nil {
		log.Fatalf("Failed to create mailer service: %v", err)
	}

	// Initialize room service
	roomSvc, err := roomService.New(&roomService.Config{
		RoomRepo:       repo,
		DrawEngine:     draw.New(&draw.Config{}),
		Mailer:         mailerSvc,
		TokenGenerator: token.New(),
		Clock:          &clock.DefaultClock{},
		Logger:         logger,
	})
	if err != nil {
		log.Fatalf("Failed to create room service: %v", err)
	}

	handler, err := web.New(&web.Config{
		RoomService: roomSvc,
		Logger:      logger,
	})
	if err != nil {
		log.Fatalf("Failed to create web handler: %v", err)
	}

	// Set up the router
	router := gin.Default()
	handler.RegisterRoutes(router, web.RateLimiter(redisClient, logger))

	server := &http.Server{
		Addr:    getEnv("LISTEN_ADDR", ":8080"),
		Handler: router,
	}

	go func() {
		logger.Info("server starting", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	<-sc

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Error shutting down server: %v", err)
	}

	logger.Info("server has shut down")
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
