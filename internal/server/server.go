// Package server contains HTTP and WebSocket handlers for the application's API endpoints.
package server

import (
	"context"
	"time"

	_ "postpilot/docs" // swagger docs
	"postpilot/internal/cache"
	"postpilot/internal/config"
	"postpilot/internal/events"
	"postpilot/internal/featureflags"
	"postpilot/internal/middleware"
	"postpilot/internal/store"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/monitor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/swagger"
	"github.com/gofiber/websocket/v2"
	"github.com/redis/go-redis/v9"
)

// Server holds all dependencies and provides handlers
type Server struct {
	config         *config.Config
	store          *store.Store
	redis          *redis.Client
	promMiddleware *fiberprometheus.FiberPrometheus
	notifier       *events.Notifier
	hub            *events.Hub
	flags          *featureflags.Manager
	shutdownCtx    context.Context
	shutdownFn     context.CancelFunc
}

// NewServer creates a new server instance with all dependencies
func NewServer(cfg *config.Config) (*Server, error) {
	// Initialize Redis (optional)
	cache.InitRedis(cfg.RedisURL)
	redisClient := cache.GetClient()

	return NewServerWithDeps(cfg, store.New(), redisClient)
}

// NewServerWithDeps creates a Server using already-initialized dependencies.
// Use this in tests or when a bootstrap layer establishes the store and Redis
// and optionally performs explicit seeding.
func NewServerWithDeps(cfg *config.Config, st *store.Store, redisClient *redis.Client) (*Server, error) {
	shutdownCtx, shutdownFn := context.WithCancel(context.Background())

	server := &Server{
		config:         cfg,
		store:          st,
		redis:          redisClient,
		promMiddleware: middleware.InitMetrics("postpilot-api"),
		notifier:       events.NewNotifier(redisClient),
		hub:            events.NewHub(),
		flags:          featureflags.NewManager(cfg.FeatureFlags),
		shutdownCtx:    shutdownCtx,
		shutdownFn:     shutdownFn,
	}

	// Forward Redis-published events to local websocket clients. With no
	// Redis this is a no-op and the hub broadcasts locally only.
	if err := server.hub.StartWiring(shutdownCtx, server.notifier); err != nil {
		shutdownFn()
		return nil, err
	}

	return server, nil
}

// Store exposes the engine for the bootstrap layer (seeding, scheduler).
func (s *Server) Store() *store.Store {
	return s.store
}

// SetupMiddleware configures middleware for the Fiber app
func (s *Server) SetupMiddleware(app *fiber.App) {
	// Panic recovery
	app.Use(recover.New())

	// Request ID for tracing
	app.Use(requestid.New())

	// Context Middleware to propagate Request ID
	app.Use(middleware.ContextMiddleware())

	// Prometheus Metrics
	if s.promMiddleware != nil {
		app.Use(middleware.MetricsMiddleware(s.promMiddleware))
	}

	// Security headers
	app.Use(helmet.New())

	// Structured Logging middleware (after requestid and context middleware)
	app.Use(middleware.StructuredLogger())

	// CORS middleware should run before middlewares that can short-circuit
	// (e.g. limiter) so browser clients still receive CORS headers on error
	// responses.
	origins := s.config.AllowedOrigins
	if origins == "" {
		origins = "http://localhost:5173,http://localhost:3000,http://127.0.0.1:5173"
	}

	app.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, Upgrade, Connection, Sec-WebSocket-Key, Sec-WebSocket-Version",
		AllowCredentials: true,
		MaxAge:           86400, // 24 hours
	}))

	// Global rate limiting (100 requests per minute per IP)
	app.Use(limiter.New(limiter.Config{
		Max:        100,
		Expiration: 1 * time.Minute,
		// Never rate-limit preflight requests; they should be handled by CORS.
		Next: func(c *fiber.Ctx) bool {
			return c.Method() == fiber.MethodOptions
		},
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "Too many requests, please try again later.",
			})
		},
	}))
}

// SetupRoutes configures all routes for the application
func (s *Server) SetupRoutes(app *fiber.App) {
	api := app.Group("/api")

	// Health checks
	app.Get("/health/live", s.LivenessCheck)
	app.Get("/health/ready", s.ReadinessCheck)
	app.Get("/health", s.ReadinessCheck)

	// Metrics endpoint for Prometheus
	if s.promMiddleware != nil {
		s.promMiddleware.RegisterAt(app, "/metrics")
	}
	if s.flags.Enabled("metrics_dashboard", "") {
		api.Get("/metrics/dashboard", monitor.New(monitor.Config{
			Title: "PostPilot Metrics Dashboard",
		}))
	}

	// Evaluated flags for the requesting client
	api.Get("/flags", s.GetFeatureFlags)

	// Swagger documentation
	api.Get("/swagger/*", swagger.HandlerDefault)

	// Accounts
	api.Get("/accounts", s.ListAccounts)
	api.Post("/accounts", middleware.RateLimit(s.redis, 30, time.Minute, "accounts"), s.CreateAccount)
	api.Post("/accounts/:id/toggle", s.ToggleAccount)
	api.Get("/platforms", s.PlatformSummary)

	// Posts
	api.Post("/posts", middleware.RateLimit(s.redis, 30, time.Minute, "posts"), s.SchedulePost)
	api.Get("/posts/scheduled", s.ListScheduledPosts)
	api.Get("/posts/posted", s.ListPostedPosts)
	api.Get("/timeline", s.GetTimeline)

	// Analytics
	api.Get("/analytics", s.ListAnalytics)
	api.Get("/analytics/totals", s.GetEngagementTotals)
	api.Get("/analytics/:postId", s.GetPostAnalytics)

	// Content generation
	api.Post("/generate", s.GenerateContent)

	// Manual tick trigger for the presentation layer / debugging
	api.Post("/tick", s.TriggerTick)

	// WebSocket event stream
	app.Use("/ws", s.WebSocketUpgrade)
	app.Get("/ws", websocket.New(s.WebSocketEvents))
}

// Shutdown releases server resources: the event hub and its Redis wiring.
func (s *Server) Shutdown(ctx context.Context) error {
	s.shutdownFn()

	if err := s.hub.Shutdown(ctx); err != nil {
		return err
	}
	if s.redis != nil {
		return s.redis.Close()
	}
	return nil
}
