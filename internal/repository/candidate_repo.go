package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/amdc-hr/interview-intake/internal/models"
)

// CandidateRepository provides access to candidate records.
type CandidateRepository interface {
	Create(ctx context.Context, candidate *models.Candidate) error
	GetByID(ctx context.Context, id uint) (models.Candidate, error)
	UpdateScore(ctx context.Context, id uint, score int, submittedAt time.Time) (models.Candidate, error)
}

type candidateRepository struct {
	db *gorm.DB
}

// NewCandidateRepository constructs a candidate repository.
func NewCandidateRepository(db *gorm.DB) CandidateRepository {
	return &candidateRepository{db: db}
}

func (r *candidateRepository) Create(ctx context.Context, candidate *models.Candidate) error {
	return r.db.WithContext(ctx).Create(candidate).Error
}

func (r *candidateRepository) GetByID(ctx context.Context, id uint) (models.Candidate, error) {
	var candidate models.Candidate
	if err := r.db.WithContext(ctx).First(&candidate, id).Error; err != nil {
		return models.Candidate{}, err
	}

	return candidate, nil
}

func (r *candidateRepository) UpdateScore(ctx context.Context, id uint, score int, submittedAt time.Time) (models.Candidate, error) {
	var candidate models.Candidate

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&candidate, id).Error; err != nil {
			return err
		}

		updates := map[string]interface{}{
			"marks_obtained": score,
			"submitted_at":   submittedAt,
		}
		if err := tx.Model(&candidate).Updates(updates).Error; err != nil {
			return err
		}

		candidate.MarksObtained = &score
		candidate.SubmittedAt = &submittedAt
		return nil
	})
	if err != nil {
		return models.Candidate{}, err
	}

	return candidate, nil
}
