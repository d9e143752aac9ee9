package handler

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/amdc-hr/interview-intake/internal/dto"
	"github.com/amdc-hr/interview-intake/internal/service"
	"github.com/amdc-hr/interview-intake/internal/utils"
)

// QuizHandler serves the quiz page, scores submissions and renders the
// timeout landing page.
type QuizHandler struct {
	service service.QuizService
	logger  zerolog.Logger
}

// NewQuizHandler constructs a quiz handler.
func NewQuizHandler(svc service.QuizService, logger zerolog.Logger) *QuizHandler {
	return &QuizHandler{
		service: svc,
		logger:  logger.With().Str("component", "quiz_handler").Logger(),
	}
}

// Register wires the quiz routes.
func (h *QuizHandler) Register(app fiber.Router) {
	app.Get("/quiz", h.show)
	app.Post("/submit_quiz", h.submit)
	app.Get("/test-complete", h.landing)
}

func (h *QuizHandler) show(c *fiber.Ctx) error {
	payload := dto.QuizPageResponse{
		FullName:  fullNameFromContext(c),
		Questions: h.service.Questions(),
	}

	return utils.SendSuccess(c, "quiz", payload)
}

func (h *QuizHandler) submit(c *fiber.Ctx) error {
	answers := collectAnswers(c)

	outcome, err := h.service.Submit(c.Context(), candidateIDFromContext(c), answers)
	if err != nil {
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to process quiz submission")
		return utils.SendError(c, fiber.StatusInternalServerError, fmt.Sprintf("error recording score: %v", err))
	}

	score := outcome.Score
	payload := dto.QuizResultResponse{
		Finished:    true,
		FullName:    fullNameFromContext(c),
		Score:       &score,
		SubmittedAt: outcome.SubmittedAt,
	}

	return utils.SendSuccess(c, "quiz submitted", payload)
}

func (h *QuizHandler) landing(c *fiber.Ctx) error {
	payload := dto.QuizResultResponse{
		Finished: false,
		FullName: fullNameFromContext(c),
	}

	return utils.SendSuccess(c, "test complete", payload)
}

func collectAnswers(c *fiber.Ctx) map[string]string {
	answers := make(map[string]string)

	c.Request().PostArgs().VisitAll(func(key, value []byte) {
		answers[string(key)] = string(value)
	})

	if form, err := c.MultipartForm(); err == nil && form != nil {
		for key, values := range form.Value {
			if len(values) > 0 {
				answers[key] = values[0]
			}
		}
	}

	return answers
}
