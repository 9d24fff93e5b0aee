package api

import (
	"nenmatch/internal/domain/entity"
	"nenmatch/internal/domain/repository"
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"go.uber.org/zap"
)

func SetupRouter(app *fiber.App, handler *QuizHandler, limiter repository.RateLimiter) {
	// Middleware
	app.Use(logger.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status":  "healthy",
			"version": os.Getenv("APP_VERSION"),
			"env":     os.Getenv("ENV"),
		})
	})

	v1 := app.Group("/api")
	if limiter != nil {
		v1.Use(rateLimit(handler, limiter))
	}

	v1.Get("/questions/generate", handler.HandleGenerateQuiz)
	v1.Post("/diagnosis", handler.HandleDiagnoseAnswers)
	v1.Post("/diagnosis/profile", handler.HandleDiagnoseProfile)
	v1.Post("/affinity/score", handler.HandleScore)
	v1.Post("/players/match", handler.HandleMatch)
}

// rateLimit rejects clients over their window budget. Limiter outages let
// the request through.
func rateLimit(h *QuizHandler, limiter repository.RateLimiter) fiber.Handler {
	return func(c *fiber.Ctx) error {
		allowed, err := limiter.Allow(c.UserContext(), c.IP())
		if err != nil {
			h.logger.Warn("rate limiter check failed", zap.Error(err))
			return c.Next()
		}
		if !allowed {
			return h.fail(c, entity.ErrRateLimitExceeded)
		}
		return c.Next()
	}
}
