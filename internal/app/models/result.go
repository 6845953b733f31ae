package models

import "time"

// Result is a graded attempt of a student at a test.
type Result struct {
	ID           int64           `json:"id" db:"id"`
	TestID       int64           `json:"testId" db:"test_id"`
	StudentID    int64           `json:"studentId" db:"student_id"`
	CorrectCount int             `json:"correctCount" db:"correct_count"`
	TotalCount   int             `json:"totalCount" db:"total_count"`
	Score        float64         `json:"score" db:"score"`
	CreatedAt    time.Time       `json:"createdAt" db:"created_at"`
	Answers      []*ResultAnswer `json:"answers,omitempty"`
}

// ResultAnswer records which answer a student picked for a question.
type ResultAnswer struct {
	ID         int64 `json:"id" db:"id"`
	ResultID   int64 `json:"resultId" db:"result_id"`
	QuestionID int64 `json:"questionId" db:"question_id"`
	AnswerID   int64 `json:"answerId" db:"answer_id"`
	IsCorrect  bool  `json:"isCorrect" db:"is_correct"`
}

// RefreshToken is a persisted refresh token; only the SHA-256 of the token is stored.
type RefreshToken struct {
	ID         int64     `db:"id"`
	TokenHash  string    `db:"token_hash"`
	UserID     int64     `db:"user_id"`
	Role       Role      `db:"role"`
	ExpiryDate time.Time `db:"expiry_date"`
	IsRevoked  bool      `db:"is_revoked"`
	CreatedAt  time.Time `db:"created_at"`
}
