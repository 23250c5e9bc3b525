package main

import (
	"time"

	"devconnector/internal/config"
	"devconnector/internal/handlers"
	"devconnector/internal/middleware"
	"devconnector/internal/repositories"
	"devconnector/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"
)

// newApp wires repositories, services and handlers into a Fiber app.
// publisher may be nil, in which case no events are emitted.
func newApp(cfg *config.Config, db *gorm.DB, publisher services.EventPublisher) *fiber.App {
	// --- Repositories ---
	userRepo := repositories.NewGORMUserRepository(db)
	profileRepo := repositories.NewGORMProfileRepository(db)

	// --- Services ---
	authService := services.NewAuthService(userRepo, publisher, cfg.JWTSecret, cfg.JWTTTL)
	profileService := services.NewProfileService(profileRepo, publisher)

	// --- Handlers ---
	authHandler := handlers.NewAuthHandler(authService)
	profileHandler := handlers.NewProfileHandler(profileService, authService)

	app := fiber.New(fiber.Config{AppName: cfg.AppName})

	// --- Middleware ---
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(middleware.Metrics())

	// --- API Routes ---
	requireAuth := middleware.AuthRequired(authService)
	api := app.Group("/api")
	authHandler.RegisterRoutes(api, requireAuth)
	profileHandler.RegisterRoutes(api, requireAuth)

	// --- Operational Endpoints ---
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
			"events": publisher != nil,
		})
	})
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	return app
}
