// Command main is the entry point for the PostPilot simulation server.
package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"postpilot/internal/config"
	"postpilot/internal/scheduler"
	"postpilot/internal/seed"
	"postpilot/internal/server"

	"github.com/gofiber/fiber/v2"
)

// @title PostPilot API
// @version 1.0
// @description Social media post lifecycle and engagement simulation API

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8460
// @BasePath /api
// @schemes http https

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Create server with dependency injection
	srv, err := server.NewServer(cfg)
	if err != nil {
		log.Fatalf("Failed to create server: %v", err)
	}

	// Seed demo data so a fresh instance has something to promote
	if cfg.SeedDemo {
		if err := seed.Run(srv.Store(), slog.Default(), seed.DefaultOptions()); err != nil {
			log.Fatalf("Failed to seed demo data: %v", err)
		}
	}

	// Initialize Fiber app
	app := fiber.New(fiber.Config{
		AppName:   "PostPilot API",
		BodyLimit: 1 * 1024 * 1024, // 1MB limit; requests are small JSON commands
	})

	// Setup middleware and routes
	srv.SetupMiddleware(app)
	srv.SetupRoutes(app)

	// Background scheduler driving promotion and engagement growth
	runnerCtx, stopRunner := context.WithCancel(context.Background())
	runner := scheduler.NewRunner(srv.Store(), slog.Default(),
		scheduler.WithInterval(cfg.TickInterval()),
		scheduler.WithResultHandler(srv.PublishTickResult),
	)
	go runner.Run(runnerCtx)

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		log.Println("Shutting down server...")
		stopRunner()

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := app.ShutdownWithContext(ctx); err != nil {
			log.Printf("Server shutdown error: %v", err)
		}

		// Shutdown server resources
		if err := srv.Shutdown(ctx); err != nil {
			log.Printf("Server resource shutdown error: %v", err)
		}
	}()

	// Start server
	log.Printf("Server starting on port %s...", cfg.Port)
	log.Fatal(app.Listen(":" + cfg.Port))
}
