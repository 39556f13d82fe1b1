package server

import (
	"trivia-api/internal/config"
	"trivia-api/internal/handler"
	"trivia-api/internal/metrics"
	"trivia-api/internal/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Handlers groups the HTTP handlers mounted by New.
type Handlers struct {
	Question *handler.QuestionHandler
	Quiz     *handler.QuizHandler
	Health   *handler.HealthHandler
}

// New builds the fiber app: middleware, the trivia routes at the root, and
// the health, metrics and swagger endpoints.
func New(cfg config.ServerConfig, m *metrics.Metrics, h Handlers) *fiber.App {
	app := fiber.New(fiber.Config{
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
		BodyLimit:    cfg.BodyLimit,
		ErrorHandler: middleware.ErrorHandler(),
	})

	app.Use(middleware.RequestID())
	app.Use(middleware.RequestLogger())
	app.Use(middleware.Metrics(m))
	app.Use(middleware.CORS())
	app.Use(recover.New())

	app.Get("/healthz", h.Health.Healthz)
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{})))
	app.Get("/swagger/*", swagger.HandlerDefault)

	app.Get("/categories", h.Question.GetCategories)
	app.Get("/categories/:id<int>/questions", h.Question.GetQuestionsByCategory)

	app.Get("/questions", h.Question.GetQuestions)
	app.Post("/questions", h.Question.PostQuestions)
	app.Delete("/questions/:id<int>", h.Question.DeleteQuestion)

	app.Post("/quizzes", h.Quiz.PlayQuiz)

	return app
}
