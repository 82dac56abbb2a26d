package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/ntalk/chatterline/backend/internal/repositories"
	"github.com/ntalk/chatterline/backend/internal/router"
	"github.com/ntalk/chatterline/backend/pkg/config"
	"github.com/ntalk/chatterline/backend/validators"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database connection
	db, err := config.InitDB(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.CloseDB()

	// Create Echo instance
	e := echo.New()

	// Setup global middleware
	router.SetupMiddleware(e)

	// Setup routes and dependencies
	router.SetupRoutes(e, db.Gorm, cfg.MaxFileBytes)

	// Validator
	e.Validator = validators.NewValidator()

	// Background sweep for expired statuses; reads already filter expired
	// rows, this only reclaims storage.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	go reapExpiredStatuses(ctx, repositories.NewStatusRepository(db.Gorm), cfg.ReapInterval)

	// Start server
	e.Logger.Fatal(e.Start(":" + cfg.Port))
}

func reapExpiredStatuses(ctx context.Context, statuses repositories.StatusRepository, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			reaped, err := statuses.ReapExpired()
			if err != nil {
				log.Printf("Failed to reap expired statuses: %v", err)
				continue
			}
			if reaped > 0 {
				log.Printf("Reaped %d expired statuses", reaped)
			}
		}
	}
}
