package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	"github.com/hotelsoft/guest-api/internal/config"
	"github.com/hotelsoft/guest-api/internal/handlers"
	"github.com/hotelsoft/guest-api/internal/middleware"
)

func Setup(
	app *fiber.App,
	cfg *config.Config,
	guestHandler *handlers.GuestHandler,
	healthHandler *handlers.HealthHandler,
) {
	api := app.Group("/api")

	// General API rate limiter: 60 req/min per IP
	api.Use(limiter.New(limiter.Config{
		Max:               60,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))

	api.Get("/health", healthHandler.Check)

	guests := api.Group("/guests")

	// Credential endpoints get a stricter limit: 10 req/min per IP
	authLimiter := limiter.New(limiter.Config{
		Max:               10,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	})

	// Public
	guests.Post("/login", authLimiter, guestHandler.Login)
	guests.Post("/", authLimiter, guestHandler.Create)
	guests.Get("/", guestHandler.List)

	// /deleted and /:id/hard must be registered before the /:id routes
	guests.Get("/deleted", middleware.JWTProtected(cfg), guestHandler.ListDeleted)
	guests.Delete("/:id/hard", middleware.JWTProtected(cfg), guestHandler.HardDelete)
	guests.Patch("/:id/restore", middleware.JWTProtected(cfg), guestHandler.Restore)

	guests.Get("/:id", guestHandler.GetByID)
	guests.Put("/:id", middleware.JWTProtected(cfg), guestHandler.Update)
	guests.Delete("/:id", middleware.JWTProtected(cfg), guestHandler.SoftDelete)
}
