package handler

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/amdc-hr/interview-intake/internal/middleware"
)

// defaultCandidateName is displayed when no session names the candidate.
const defaultCandidateName = "Candidate"

func candidateIDFromContext(c *fiber.Ctx) *uint {
	if v := c.Locals("candidate_id"); v != nil {
		if id, ok := v.(uint); ok && id > 0 {
			return &id
		}
	}
	return nil
}

func fullNameFromContext(c *fiber.Ctx) string {
	if v := c.Locals("full_name"); v != nil {
		if name, ok := v.(string); ok && name != "" {
			return name
		}
	}
	return defaultCandidateName
}

func requestLogger(base zerolog.Logger, c *fiber.Ctx) *zerolog.Logger {
	logger := base
	if c != nil {
		if correlation := middleware.GetCorrelationID(c); correlation != "" {
			logger = base.With().Str("correlation_id", correlation).Logger()
		}
	}
	return &logger
}

func isValidationError(err error) bool {
	var validationErrors validator.ValidationErrors
	return errors.As(err, &validationErrors)
}
