package routes

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"studytracker/backend/middleware"
	"studytracker/backend/repository"
	"studytracker/backend/utils"
)

// NewApp builds the Fiber app with the shared middleware chain and every
// route registered.
func NewApp(repo *repository.Repository, logger *slog.Logger, allowOrigins string) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "study-tracker",
		ErrorHandler:          utils.ErrorHandler,
		DisableStartupMessage: true,
	})

	app.Use(middleware.LoggingMiddleware(logger))
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:  allowOrigins,
		AllowHeaders:  "Origin, Content-Type, Accept, " + middleware.UserIDHeader,
		ExposeHeaders: middleware.RequestIDHeader,
	}))

	SetupRoutes(app, repo)
	return app
}
