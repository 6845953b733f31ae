package dto

import (
	"time"

	"github.com/yigit/eduadmin/internal/app/models"
)

// CreateTestRequest creates a test; a teacher caller becomes its owner
type CreateTestRequest struct {
	SubjectID       int64   `json:"subjectId" binding:"required,gt=0"`
	Title           string  `json:"title" binding:"required,notblank,min=1,max=255"`
	Description     *string `json:"description" binding:"omitempty,max=2000"`
	DurationMinutes int     `json:"durationMinutes" binding:"required,gt=0,max=600"`
	IsActive        *bool   `json:"isActive"`
}

// UpdateTestRequest only touches the fields that are present
type UpdateTestRequest struct {
	SubjectID       *int64  `json:"subjectId" binding:"omitempty,gt=0"`
	Title           *string `json:"title" binding:"omitempty,notblank,min=1,max=255"`
	Description     *string `json:"description" binding:"omitempty,max=2000"`
	DurationMinutes *int    `json:"durationMinutes" binding:"omitempty,gt=0,max=600"`
	IsActive        *bool   `json:"isActive"`
}

// CreateAnswerRequest creates an answer for a question
type CreateAnswerRequest struct {
	Text      string `json:"text" binding:"required,notblank,min=1,max=1000"`
	IsCorrect bool   `json:"isCorrect"`
}

// UpdateAnswerRequest only touches the fields that are present
type UpdateAnswerRequest struct {
	Text      *string `json:"text" binding:"omitempty,notblank,min=1,max=1000"`
	IsCorrect *bool   `json:"isCorrect"`
}

// CreateQuestionRequest creates a question, optionally with its answers
type CreateQuestionRequest struct {
	Text    string                `json:"text" binding:"required,notblank,min=1,max=2000"`
	Answers []CreateAnswerRequest `json:"answers" binding:"omitempty,dive"`
}

// UpdateQuestionRequest changes a question's text
type UpdateQuestionRequest struct {
	Text *string `json:"text" binding:"omitempty,notblank,min=1,max=2000"`
}

// AnswerResponse hides IsCorrect from callers that may not see it
type AnswerResponse struct {
	ID         int64     `json:"id"`
	QuestionID int64     `json:"questionId"`
	Text       string    `json:"text"`
	IsCorrect  *bool     `json:"isCorrect,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// NewAnswerResponse maps an answer; IsCorrect is only set when reveal is true
func NewAnswerResponse(a *models.Answer, reveal bool) AnswerResponse {
	resp := AnswerResponse{
		ID:         a.ID,
		QuestionID: a.QuestionID,
		Text:       a.Text,
		CreatedAt:  a.CreatedAt,
		UpdatedAt:  a.UpdatedAt,
	}
	if reveal {
		isCorrect := a.IsCorrect
		resp.IsCorrect = &isCorrect
	}
	return resp
}

// NewAnswerResponses maps a slice of answers
func NewAnswerResponses(answers []*models.Answer, reveal bool) []AnswerResponse {
	out := make([]AnswerResponse, 0, len(answers))
	for _, a := range answers {
		out = append(out, NewAnswerResponse(a, reveal))
	}
	return out
}

// QuestionResponse is a question with its (possibly redacted) answers
type QuestionResponse struct {
	ID        int64            `json:"id"`
	TestID    int64            `json:"testId"`
	Text      string           `json:"text"`
	Answers   []AnswerResponse `json:"answers"`
	CreatedAt time.Time        `json:"createdAt"`
	UpdatedAt time.Time        `json:"updatedAt"`
}

// NewQuestionResponse maps a question and its loaded answers
func NewQuestionResponse(q *models.Question, reveal bool) QuestionResponse {
	return QuestionResponse{
		ID:        q.ID,
		TestID:    q.TestID,
		Text:      q.Text,
		Answers:   NewAnswerResponses(q.Answers, reveal),
		CreatedAt: q.CreatedAt,
		UpdatedAt: q.UpdatedAt,
	}
}
