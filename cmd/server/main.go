package main

import (
	"context"
	"log"

	"github.com/labstack/echo/v4"

	"github.com/olekh/social-media-api/internal/router"
	"github.com/olekh/social-media-api/internal/scheduler"
	"github.com/olekh/social-media-api/pkg/config"
	"github.com/olekh/social-media-api/pkg/logger"
	"github.com/olekh/social-media-api/validators"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize logger early
	zlog, err := logger.New(cfg.LogLevel, cfg.LogPath)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer zlog.Sync()

	// Initialize database connections
	db, err := config.InitDB(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize databases: %v", err)
	}
	defer db.CloseDB() // Ensure database connections are closed when main exits

	// Create Echo instance
	e := echo.New()

	// Setup global middleware
	router.SetupMiddleware(e)

	// Setup routes and dependencies
	deps, err := router.SetupRoutes(e, db.Postgres, db.Redis, cfg.JWTSecret, cfg.UploadRoot, zlog)
	if err != nil {
		log.Fatalf("Failed to set up routes: %v", err)
	}

	// Validator
	e.Validator = validators.NewValidator()

	// Start the visibility scheduler worker
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	activator := scheduler.NewActivator(deps.PostRepository, zlog)
	worker := scheduler.NewWorker(deps.ScheduledQueue, activator, cfg.SchedulerInterval, zlog)
	go worker.Run(ctx)

	// Start server
	e.Logger.Fatal(e.Start(":" + cfg.Port))
}
