package dto

import (
	"time"

	"github.com/amdc-hr/interview-intake/internal/models"
)

// DetailsSubmitRequest describes the multipart form posted from the details page.
// Phone and experience arrive as raw strings and are coerced by the service so a
// non-numeric value can be reported as a validation failure rather than a panic.
type DetailsSubmitRequest struct {
	FullName        string `form:"full_name" validate:"required"`
	EmailID         string `form:"email_id" validate:"required"`
	PhoneNo         string `form:"phone_no"`
	YearOfExp       string `form:"year_of_exp"`
	DateOfBirth     string `form:"date_of_birth" validate:"required"`
	HighestDegree   string `form:"highest_degree"`
	StreamOfDegree  string `form:"stream_of_degree"`
	CurrentLocation string `form:"current_location"`
}

// CandidateResponse is returned after a successful details submission.
type CandidateResponse struct {
	ID          uint      `json:"id"`
	FullName    string    `json:"full_name"`
	EmailID     string    `json:"email_id"`
	AadhaarPath *string   `json:"aadhaar_path"`
	ResumePath  *string   `json:"resume_path"`
	CreatedAt   time.Time `json:"created_at"`
}

// NewCandidateResponse maps a candidate row to its API representation.
func NewCandidateResponse(candidate models.Candidate) CandidateResponse {
	return CandidateResponse{
		ID:          candidate.ID,
		FullName:    candidate.FullName,
		EmailID:     candidate.EmailID,
		AadhaarPath: candidate.AadhaarPath,
		ResumePath:  candidate.ResumePath,
		CreatedAt:   candidate.CreatedAt,
	}
}

// FormField describes one input on the details form.
type FormField struct {
	Name     string `json:"name"`
	Required bool   `json:"required"`
}

// DetailsFormResponse describes the details form for clients rendering it.
type DetailsFormResponse struct {
	Fields            []FormField `json:"fields"`
	FileFields        []string    `json:"file_fields"`
	AllowedExtensions []string    `json:"allowed_extensions"`
}
