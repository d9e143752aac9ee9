package dto

import "time"

// QuizQuestion is one multiple-choice entry on the quiz page.
type QuizQuestion struct {
	ID      string   `json:"id"`
	Options []string `json:"options"`
}

// QuizPageResponse is the payload rendered by the quiz page.
type QuizPageResponse struct {
	FullName  string         `json:"full_name"`
	Questions []QuizQuestion `json:"questions"`
}

// QuizResultResponse is the result page payload. Score and SubmittedAt are only
// present after a real quiz submission; the timeout landing omits both.
type QuizResultResponse struct {
	Finished    bool       `json:"finished"`
	FullName    string     `json:"full_name"`
	Score       *int       `json:"score,omitempty"`
	SubmittedAt *time.Time `json:"submitted_at,omitempty"`
}
