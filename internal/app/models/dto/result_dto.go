package dto

// SubmittedAnswer is one choice in a submission
type SubmittedAnswer struct {
	QuestionID int64 `json:"questionId" binding:"required,gt=0"`
	AnswerID   int64 `json:"answerId" binding:"required,gt=0"`
}

// SubmitResultRequest is sent by a student finishing a test
type SubmitResultRequest struct {
	TestID  int64             `json:"testId" binding:"required,gt=0"`
	Answers []SubmittedAnswer `json:"answers" binding:"required,min=1,dive"`
}

// CreateResultRequest lets an admin record a score directly
type CreateResultRequest struct {
	TestID       int64 `json:"testId" binding:"required,gt=0"`
	StudentID    int64 `json:"studentId" binding:"required,gt=0"`
	CorrectCount int   `json:"correctCount" binding:"gte=0"`
	TotalCount   int   `json:"totalCount" binding:"required,gt=0"`
}

// UpdateResultRequest corrects recorded counts; the score is recomputed
type UpdateResultRequest struct {
	CorrectCount *int `json:"correctCount" binding:"omitempty,gte=0"`
	TotalCount   *int `json:"totalCount" binding:"omitempty,gt=0"`
}
