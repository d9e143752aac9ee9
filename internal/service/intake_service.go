package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"mime/multipart"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/amdc-hr/interview-intake/internal/dto"
	"github.com/amdc-hr/interview-intake/internal/models"
	"github.com/amdc-hr/interview-intake/internal/observability"
	"github.com/amdc-hr/interview-intake/internal/repository"
)

var (
	// ErrNonNumericField indicates a numeric form field carried a non-numeric value.
	ErrNonNumericField = errors.New("must be a whole number")
	// ErrDuplicateSubmission indicates an identical submission arrived within the dedupe window.
	ErrDuplicateSubmission = errors.New("duplicate submission")
)

// IntakeService orchestrates the details-submission workflow: validation, file
// intake and candidate record creation.
type IntakeService interface {
	SubmitDetails(ctx context.Context, req dto.DetailsSubmitRequest, aadhaar, resume *multipart.FileHeader) (dto.CandidateResponse, error)
	AllowedExtensions() []string
}

type intakeService struct {
	repo      repository.CandidateRepository
	sink      AttachmentSink
	cache     *redis.Client
	validator *validator.Validate
	logger    zerolog.Logger
	dedupeTTL time.Duration
	tracer    trace.Tracer
}

// NewIntakeService constructs an intake service. The cache client is optional;
// when nil the duplicate-submission guard is disabled.
func NewIntakeService(repo repository.CandidateRepository, sink AttachmentSink, cache *redis.Client, validate *validator.Validate, dedupeTTL time.Duration, logger zerolog.Logger) IntakeService {
	if dedupeTTL <= 0 {
		dedupeTTL = 5 * time.Minute
	}

	return &intakeService{
		repo:      repo,
		sink:      sink,
		cache:     cache,
		validator: validate,
		logger:    logger.With().Str("component", "intake_service").Logger(),
		dedupeTTL: dedupeTTL,
		tracer:    otel.Tracer("github.com/amdc-hr/interview-intake/internal/service/intake"),
	}
}

func (s *intakeService) AllowedExtensions() []string {
	return s.sink.AllowedExtensions()
}

func (s *intakeService) SubmitDetails(ctx context.Context, req dto.DetailsSubmitRequest, aadhaar, resume *multipart.FileHeader) (dto.CandidateResponse, error) {
	ctx, span := s.tracer.Start(ctx, "intake.submit_details")
	defer span.End()

	trimFields(&req)

	if err := s.validator.Struct(req); err != nil {
		observability.IntakeSubmissions().WithLabelValues("validation_failed").Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, "validation failed")
		return dto.CandidateResponse{}, err
	}

	phone, err := coerceInt("phone_no", req.PhoneNo)
	if err != nil {
		observability.IntakeSubmissions().WithLabelValues("validation_failed").Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, "validation failed")
		return dto.CandidateResponse{}, err
	}

	years, err := coerceInt("year_of_exp", req.YearOfExp)
	if err != nil {
		observability.IntakeSubmissions().WithLabelValues("validation_failed").Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, "validation failed")
		return dto.CandidateResponse{}, err
	}

	if s.cache != nil {
		key := fmt.Sprintf("intake:dedupe:%s", submissionChecksum(req.FullName, req.EmailID, req.DateOfBirth))
		ok, err := s.cache.SetNX(ctx, key, 1, s.dedupeTTL).Result()
		if err != nil {
			s.logger.Warn().Err(err).Msg("dedupe check unavailable, continuing")
		} else if !ok {
			observability.IntakeSubmissions().WithLabelValues("duplicate").Inc()
			span.SetStatus(codes.Error, "duplicate submission")
			return dto.CandidateResponse{}, ErrDuplicateSubmission
		}
	}

	// Files are validated and written before any database write. A rejected
	// second file aborts the submission; an already written first file stays
	// behind as accepted residue.
	aadhaarPath, err := s.storeAttachment(ctx, req, RoleAadhaar, aadhaar)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "aadhaar intake failed")
		return dto.CandidateResponse{}, err
	}

	resumePath, err := s.storeAttachment(ctx, req, RoleResume, resume)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "resume intake failed")
		return dto.CandidateResponse{}, err
	}

	candidate := models.Candidate{
		FullName:        req.FullName,
		EmailID:         req.EmailID,
		PhoneNo:         phone,
		YearOfExp:       years,
		DateOfBirth:     req.DateOfBirth,
		HighestDegree:   req.HighestDegree,
		StreamOfDegree:  req.StreamOfDegree,
		CurrentLocation: req.CurrentLocation,
		AadhaarPath:     aadhaarPath,
		ResumePath:      resumePath,
	}

	if err := s.repo.Create(ctx, &candidate); err != nil {
		observability.IntakeSubmissions().WithLabelValues("persistence_failed").Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, "persistence failed")
		return dto.CandidateResponse{}, fmt.Errorf("failed to save candidate details: %w", err)
	}

	observability.IntakeSubmissions().WithLabelValues("accepted").Inc()
	span.SetAttributes(attribute.Int("candidate.id", int(candidate.ID)))
	span.SetStatus(codes.Ok, "accepted")
	s.logger.Info().Uint("candidate_id", candidate.ID).Msg("candidate details submitted")

	return dto.NewCandidateResponse(candidate), nil
}

func (s *intakeService) storeAttachment(ctx context.Context, req dto.DetailsSubmitRequest, role string, file *multipart.FileHeader) (*string, error) {
	if file == nil || strings.TrimSpace(file.Filename) == "" {
		return nil, nil
	}

	stored, err := s.sink.Store(ctx, req.FullName, req.DateOfBirth, role, file)
	if err != nil {
		return nil, err
	}

	return &stored, nil
}

func trimFields(req *dto.DetailsSubmitRequest) {
	req.FullName = strings.TrimSpace(req.FullName)
	req.EmailID = strings.TrimSpace(req.EmailID)
	req.PhoneNo = strings.TrimSpace(req.PhoneNo)
	req.YearOfExp = strings.TrimSpace(req.YearOfExp)
	req.DateOfBirth = strings.TrimSpace(req.DateOfBirth)
	req.HighestDegree = strings.TrimSpace(req.HighestDegree)
	req.StreamOfDegree = strings.TrimSpace(req.StreamOfDegree)
	req.CurrentLocation = strings.TrimSpace(req.CurrentLocation)
}

func coerceInt(field, value string) (int, error) {
	if value == "" {
		return 0, nil
	}

	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%s %w", field, ErrNonNumericField)
	}

	return parsed, nil
}

func submissionChecksum(parts ...string) string {
	sum := sha256.Sum256([]byte(strings.Join(parts, "|")))
	return hex.EncodeToString(sum[:])
}
