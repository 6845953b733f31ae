package messaging

import "time"

// Event subjects, relative to the configured prefix.
const (
	SubjectResultSubmitted = "results.submitted"
	SubjectUserDeleted     = "users.deleted"
)

// ResultSubmittedEvent is published after a student's answers are graded.
type ResultSubmittedEvent struct {
	ResultID     int64     `json:"resultId"`
	TestID       int64     `json:"testId"`
	StudentID    int64     `json:"studentId"`
	CorrectCount int       `json:"correctCount"`
	TotalCount   int       `json:"totalCount"`
	Score        float64   `json:"score"`
	SubmittedAt  time.Time `json:"submittedAt"`
}

// UserDeletedEvent is published after an admin, teacher or student is removed.
type UserDeletedEvent struct {
	UserID    int64     `json:"userId"`
	Role      string    `json:"role"`
	DeletedAt time.Time `json:"deletedAt"`
}
