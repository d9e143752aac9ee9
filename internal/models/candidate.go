package models

import "time"

// Candidate represents one submitted interview candidate. Attachment paths and
// scoring fields stay nil until the corresponding workflow step completes.
type Candidate struct {
	ID              uint       `gorm:"primaryKey" json:"id"`
	FullName        string     `gorm:"size:200;not null" json:"full_name"`
	EmailID         string     `gorm:"size:200;not null" json:"email_id"`
	PhoneNo         int        `json:"phone_no"`
	YearOfExp       int        `json:"year_of_exp"`
	DateOfBirth     string     `gorm:"size:200;not null" json:"date_of_birth"`
	HighestDegree   string     `gorm:"size:200" json:"highest_degree"`
	StreamOfDegree  string     `gorm:"size:200" json:"stream_of_degree"`
	CurrentLocation string     `gorm:"size:200" json:"current_location"`
	AadhaarPath     *string    `gorm:"size:500" json:"aadhaar_path"`
	ResumePath      *string    `gorm:"size:500" json:"resume_path"`
	MarksObtained   *int       `json:"marks_obtained"`
	SubmittedAt     *time.Time `json:"submitted_at"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}
