package handler

import (
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/amdc-hr/interview-intake/internal/dto"
	"github.com/amdc-hr/interview-intake/internal/service"
	"github.com/amdc-hr/interview-intake/internal/session"
	"github.com/amdc-hr/interview-intake/internal/utils"
)

// IntakeHandler serves the details form and processes submissions.
type IntakeHandler struct {
	service  service.IntakeService
	sessions *session.Manager
	logger   zerolog.Logger
}

// NewIntakeHandler constructs an intake handler.
func NewIntakeHandler(svc service.IntakeService, sessions *session.Manager, logger zerolog.Logger) *IntakeHandler {
	return &IntakeHandler{
		service:  svc,
		sessions: sessions,
		logger:   logger.With().Str("component", "intake_handler").Logger(),
	}
}

// Register wires the intake routes. The limiter, when non-nil, guards the
// submission endpoint.
func (h *IntakeHandler) Register(app fiber.Router, submitLimiter fiber.Handler) {
	app.Get("/", h.form)
	if submitLimiter != nil {
		app.Post("/submit_details", submitLimiter, h.submitDetails)
		return
	}
	app.Post("/submit_details", h.submitDetails)
}

func (h *IntakeHandler) form(c *fiber.Ctx) error {
	payload := dto.DetailsFormResponse{
		Fields: []dto.FormField{
			{Name: "full_name", Required: true},
			{Name: "email_id", Required: true},
			{Name: "phone_no", Required: false},
			{Name: "year_of_exp", Required: false},
			{Name: "date_of_birth", Required: true},
			{Name: "highest_degree", Required: false},
			{Name: "stream_of_degree", Required: false},
			{Name: "current_location", Required: false},
		},
		FileFields:        []string{service.RoleAadhaar, service.RoleResume},
		AllowedExtensions: h.service.AllowedExtensions(),
	}

	return utils.SendSuccess(c, "candidate details form", payload)
}

func (h *IntakeHandler) submitDetails(c *fiber.Ctx) error {
	var payload dto.DetailsSubmitRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	// Missing file fields are not an error; both attachments are optional.
	aadhaar, _ := c.FormFile(service.RoleAadhaar)
	resume, _ := c.FormFile(service.RoleResume)

	response, err := h.service.SubmitDetails(c.Context(), payload, aadhaar, resume)
	if err != nil {
		switch {
		case isValidationError(err):
			return utils.SendError(c, fiber.StatusBadRequest, "required fields missing")
		case errors.Is(err, service.ErrNonNumericField):
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrFileTypeNotAllowed):
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrUploadTooLarge):
			return utils.SendError(c, fiber.StatusRequestEntityTooLarge, err.Error())
		case errors.Is(err, service.ErrDuplicateSubmission):
			return utils.SendError(c, fiber.StatusTooManyRequests, "duplicate submission")
		default:
			requestLogger(h.logger, c).Error().Err(err).Msg("failed to save candidate details")
			return utils.SendError(c, fiber.StatusInternalServerError, fmt.Sprintf("error saving details: %v", err))
		}
	}

	token, err := h.sessions.Issue(response.ID, response.FullName)
	if err != nil {
		requestLogger(h.logger, c).Error().Err(err).Uint("candidate_id", response.ID).Msg("failed to issue session token")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to establish session")
	}

	c.Cookie(&fiber.Cookie{
		Name:     session.CookieName,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(h.sessions.TTL()),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})

	return utils.SendSuccess(c, "details submitted", response)
}
