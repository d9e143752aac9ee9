package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/amdc-hr/interview-intake/internal/dto"
	"github.com/amdc-hr/interview-intake/internal/observability"
	"github.com/amdc-hr/interview-intake/internal/repository"
)

// AnswerKey maps question identifiers to the correct option letter.
type AnswerKey map[string]string

// DefaultAnswerKey returns the fixed 35-question answer key.
func DefaultAnswerKey() AnswerKey {
	return AnswerKey{
		"q1": "B", "q2": "C", "q3": "B", "q4": "B", "q5": "B",
		"q6": "C", "q7": "B", "q8": "B", "q9": "A", "q10": "B",
		"q11": "B", "q12": "B", "q13": "B", "q14": "C", "q15": "B",
		"q16": "B", "q17": "A", "q18": "A", "q19": "A", "q20": "A",
		"q21": "B", "q22": "B", "q23": "A", "q24": "B", "q25": "B",
		"q26": "C", "q27": "B", "q28": "C", "q29": "C", "q30": "B",
		"q31": "A", "q32": "B", "q33": "B", "q34": "B", "q35": "B",
	}
}

// QuizOptions is the fixed option alphabet offered per question.
var QuizOptions = []string{"A", "B", "C"}

// QuizOutcome reports a processed quiz submission. Recorded is false when no
// candidate record could be resolved for score attribution.
type QuizOutcome struct {
	Score       int
	Recorded    bool
	SubmittedAt *time.Time
}

// QuizService scores quiz submissions against the fixed answer key and records
// the result on the candidate row when one is resolvable.
type QuizService interface {
	Questions() []dto.QuizQuestion
	Score(answers map[string]string) int
	Submit(ctx context.Context, candidateID *uint, answers map[string]string) (QuizOutcome, error)
}

type quizService struct {
	repo   repository.CandidateRepository
	key    AnswerKey
	logger zerolog.Logger
	now    func() time.Time
	tracer trace.Tracer
}

// NewQuizService constructs a quiz service around an immutable answer key.
func NewQuizService(repo repository.CandidateRepository, key AnswerKey, logger zerolog.Logger) QuizService {
	if len(key) == 0 {
		key = DefaultAnswerKey()
	}

	return &quizService{
		repo:   repo,
		key:    key,
		logger: logger.With().Str("component", "quiz_service").Logger(),
		now:    time.Now,
		tracer: otel.Tracer("github.com/amdc-hr/interview-intake/internal/service/quiz"),
	}
}

// Questions lists the quiz questions in q1..qN order.
func (s *quizService) Questions() []dto.QuizQuestion {
	questions := make([]dto.QuizQuestion, 0, len(s.key))
	for i := 1; i <= len(s.key); i++ {
		questions = append(questions, dto.QuizQuestion{
			ID:      fmt.Sprintf("q%d", i),
			Options: append([]string(nil), QuizOptions...),
		})
	}
	return questions
}

// Score counts the answers exactly matching the key. Missing answers count as
// incorrect; unknown question identifiers are ignored. Matching is
// case-sensitive.
func (s *quizService) Score(answers map[string]string) int {
	score := 0
	for question, correct := range s.key {
		if answers[question] == correct {
			score++
		}
	}
	return score
}

func (s *quizService) Submit(ctx context.Context, candidateID *uint, answers map[string]string) (QuizOutcome, error) {
	ctx, span := s.tracer.Start(ctx, "quiz.submit")
	defer span.End()

	score := s.Score(answers)
	observability.QuizScores().Observe(float64(score))
	span.SetAttributes(attribute.Int("quiz.score", score))

	outcome := QuizOutcome{Score: score}

	// Score attribution is best effort: a session without a resolvable
	// candidate id still yields a scored result, it is just never persisted.
	if candidateID == nil {
		observability.QuizSubmissions().WithLabelValues("unattributed").Inc()
		span.SetStatus(codes.Ok, "scored without attribution")
		s.logger.Warn().Int("score", score).Msg("quiz submitted without a session candidate id, score not recorded")
		return outcome, nil
	}

	submittedAt := s.now().UTC()
	if _, err := s.repo.UpdateScore(ctx, *candidateID, score, submittedAt); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			observability.QuizSubmissions().WithLabelValues("unattributed").Inc()
			span.SetStatus(codes.Ok, "candidate not found")
			s.logger.Warn().Uint("candidate_id", *candidateID).Msg("candidate not found for score attribution, score not recorded")
			return outcome, nil
		}

		observability.QuizSubmissions().WithLabelValues("failed").Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, "persistence failed")
		return QuizOutcome{}, fmt.Errorf("failed to record score: %w", err)
	}

	observability.QuizSubmissions().WithLabelValues("recorded").Inc()
	span.SetStatus(codes.Ok, "recorded")
	s.logger.Info().Uint("candidate_id", *candidateID).Int("score", score).Msg("quiz score recorded")

	outcome.Recorded = true
	outcome.SubmittedAt = &submittedAt
	return outcome, nil
}
