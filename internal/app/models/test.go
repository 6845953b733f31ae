package models

import "time"

// Test is an exam for a subject, optionally owned by the teacher who wrote it.
type Test struct {
	ID              int64     `json:"id" db:"id"`
	SubjectID       int64     `json:"subjectId" db:"subject_id"`
	TeacherID       *int64    `json:"teacherId,omitempty" db:"teacher_id"`
	Title           string    `json:"title" db:"title"`
	Description     *string   `json:"description,omitempty" db:"description"`
	DurationMinutes int       `json:"durationMinutes" db:"duration_minutes"`
	IsActive        bool      `json:"isActive" db:"is_active"`
	QuestionsCount  int       `json:"questionsCount" db:"-"`
	CreatedAt       time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt       time.Time `json:"updatedAt" db:"updated_at"`
}

// IsOwnedBy reports whether teacherID wrote the test.
func (t *Test) IsOwnedBy(teacherID int64) bool {
	return t.TeacherID != nil && *t.TeacherID == teacherID
}

// Question belongs to a test.
type Question struct {
	ID        int64     `json:"id" db:"id"`
	TestID    int64     `json:"testId" db:"test_id"`
	Text      string    `json:"text" db:"text"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
	Answers   []*Answer `json:"answers,omitempty"`
}

// Answer is one option of a question.
type Answer struct {
	ID         int64     `json:"id" db:"id"`
	QuestionID int64     `json:"questionId" db:"question_id"`
	Text       string    `json:"text" db:"text"`
	IsCorrect  bool      `json:"isCorrect" db:"is_correct"`
	CreatedAt  time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt  time.Time `json:"updatedAt" db:"updated_at"`
}
