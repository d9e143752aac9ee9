package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/amdc-hr/interview-intake/internal/config"
	"github.com/amdc-hr/interview-intake/internal/handler"
	"github.com/amdc-hr/interview-intake/internal/observability"
)

// Dependencies groups router dependencies for registration.
type Dependencies struct {
	IntakeHandler     *handler.IntakeHandler
	QuizHandler       *handler.QuizHandler
	SessionMiddleware fiber.Handler
	SubmitLimiter     fiber.Handler
}

// Register wires the HTTP routes into the fiber application.
func Register(app *fiber.App, cfg config.Config, deps Dependencies) {
	app.Get("/health", handler.HealthCheck(cfg))
	app.Get("/metrics", observability.MetricsHandler())

	// Every workflow route reads the candidate session when one is present.
	if deps.SessionMiddleware != nil {
		app.Use(deps.SessionMiddleware)
	}

	if deps.IntakeHandler != nil {
		deps.IntakeHandler.Register(app, deps.SubmitLimiter)
	}

	if deps.QuizHandler != nil {
		deps.QuizHandler.Register(app)
	}
}
