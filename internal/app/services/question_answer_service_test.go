package services

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/yigit/eduadmin/internal/app/models"
	"github.com/yigit/eduadmin/internal/app/models/dto"
	"github.com/yigit/eduadmin/internal/pkg/apperrors"
)

func ownedTest(id int64, active bool) *models.Test {
	return &models.Test{ID: id, SubjectID: 1, TeacherID: int64Ptr(teacher7.UserID), Title: "Algebra", IsActive: active}
}

func TestQuestionService(t *testing.T) {
	ctx := context.Background()

	t.Run("owner creates question with answers", func(t *testing.T) {
		questions, tests := &mockQuestionRepo{}, &mockTestRepo{}
		svc := NewQuestionService(questions, tests, zerolog.Nop())
		tests.On("GetByID", ctx, int64(3)).Return(ownedTest(3, true), nil)
		questions.On("Create", ctx, mock.MatchedBy(func(q *models.Question) bool {
			return q.TestID == 3 && q.Text == "2+2?" && len(q.Answers) == 2 &&
				q.Answers[0].Text == "4" && q.Answers[0].IsCorrect && !q.Answers[1].IsCorrect
		})).Return(nil)

		q, err := svc.CreateQuestion(ctx, teacher7, 3, &dto.CreateQuestionRequest{
			Text: "  2+2? ",
			Answers: []dto.CreateAnswerRequest{
				{Text: "4", IsCorrect: true},
				{Text: " 5 "},
			},
		})
		require.NoError(t, err)
		assert.Equal(t, "5", q.Answers[1].Text)
		questions.AssertExpectations(t)
	})

	t.Run("blank answer rejected", func(t *testing.T) {
		questions, tests := &mockQuestionRepo{}, &mockTestRepo{}
		svc := NewQuestionService(questions, tests, zerolog.Nop())
		tests.On("GetByID", ctx, int64(3)).Return(ownedTest(3, true), nil)

		_, err := svc.CreateQuestion(ctx, plainAdmin, 3, &dto.CreateQuestionRequest{
			Text:    "Capital of France?",
			Answers: []dto.CreateAnswerRequest{{Text: "   "}},
		})
		assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
		questions.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("student cannot create", func(t *testing.T) {
		questions, tests := &mockQuestionRepo{}, &mockTestRepo{}
		svc := NewQuestionService(questions, tests, zerolog.Nop())

		_, err := svc.CreateQuestion(ctx, student11, 3, &dto.CreateQuestionRequest{Text: "x"})
		assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
		tests.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	})

	t.Run("inactive test hidden from students", func(t *testing.T) {
		questions, tests := &mockQuestionRepo{}, &mockTestRepo{}
		svc := NewQuestionService(questions, tests, zerolog.Nop())
		tests.On("GetByID", ctx, int64(3)).Return(ownedTest(3, false), nil)

		_, err := svc.GetQuestionsByTest(ctx, student11, 3)
		assert.ErrorIs(t, err, apperrors.ErrResourceNotFound)
		questions.AssertNotCalled(t, "ListByTest", mock.Anything, mock.Anything)
	})

	t.Run("other teacher cannot delete", func(t *testing.T) {
		questions, tests := &mockQuestionRepo{}, &mockTestRepo{}
		svc := NewQuestionService(questions, tests, zerolog.Nop())
		other := *teacher7
		other.UserID = 8
		questions.On("GetByID", ctx, int64(20)).Return(&models.Question{ID: 20, TestID: 3, Text: "q"}, nil)
		tests.On("GetByID", ctx, int64(3)).Return(ownedTest(3, true), nil)

		err := svc.DeleteQuestion(ctx, &other, 20)
		assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
		questions.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})
}

func TestAnswerService(t *testing.T) {
	ctx := context.Background()
	question := &models.Question{ID: 20, TestID: 3, Text: "2+2?"}

	newService := func() (AnswerService, *mockAnswerRepo, *mockQuestionRepo, *mockTestRepo) {
		answers, questions, tests := &mockAnswerRepo{}, &mockQuestionRepo{}, &mockTestRepo{}
		return NewAnswerService(answers, questions, tests, zerolog.Nop()), answers, questions, tests
	}

	t.Run("admin toggles correctness only", func(t *testing.T) {
		svc, answers, questions, tests := newService()
		answers.On("GetByID", ctx, int64(30)).Return(&models.Answer{ID: 30, QuestionID: 20, Text: "4"}, nil)
		questions.On("GetByID", ctx, int64(20)).Return(question, nil)
		tests.On("GetByID", ctx, int64(3)).Return(ownedTest(3, true), nil)
		answers.On("Update", ctx, mock.MatchedBy(func(a *models.Answer) bool {
			return a.ID == 30 && a.Text == "4" && a.IsCorrect
		})).Return(nil)

		correct := true
		a, err := svc.UpdateAnswer(ctx, plainAdmin, 30, &dto.UpdateAnswerRequest{IsCorrect: &correct})
		require.NoError(t, err)
		assert.True(t, a.IsCorrect)
		answers.AssertExpectations(t)
	})

	t.Run("student lists answers of an active test", func(t *testing.T) {
		svc, answers, questions, tests := newService()
		questions.On("GetByID", ctx, int64(20)).Return(question, nil)
		tests.On("GetByID", ctx, int64(3)).Return(ownedTest(3, true), nil)
		answers.On("ListByQuestion", ctx, int64(20)).
			Return([]*models.Answer{{ID: 30, QuestionID: 20, Text: "4", IsCorrect: true}}, nil)

		list, err := svc.GetAnswersByQuestion(ctx, student11, 20)
		require.NoError(t, err)
		assert.Len(t, list, 1)
	})

	t.Run("teacher cannot add to unowned test", func(t *testing.T) {
		svc, answers, questions, tests := newService()
		questions.On("GetByID", ctx, int64(20)).Return(question, nil)
		tests.On("GetByID", ctx, int64(3)).Return(&models.Test{ID: 3, SubjectID: 1, IsActive: true}, nil)

		_, err := svc.CreateAnswer(ctx, teacher7, 20, &dto.CreateAnswerRequest{Text: "4"})
		assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
		answers.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("owner deletes", func(t *testing.T) {
		svc, answers, questions, tests := newService()
		answers.On("GetByID", ctx, int64(30)).Return(&models.Answer{ID: 30, QuestionID: 20}, nil)
		questions.On("GetByID", ctx, int64(20)).Return(question, nil)
		tests.On("GetByID", ctx, int64(3)).Return(ownedTest(3, true), nil)
		answers.On("Delete", ctx, int64(30)).Return(nil)

		require.NoError(t, svc.DeleteAnswer(ctx, teacher7, 30))
		answers.AssertExpectations(t)
	})

	t.Run("missing question", func(t *testing.T) {
		svc, _, questions, _ := newService()
		questions.On("GetByID", ctx, int64(99)).Return(nil, apperrors.ErrQuestionNotFound)

		_, err := svc.GetAnswersByQuestion(ctx, plainAdmin, 99)
		assert.ErrorIs(t, err, apperrors.ErrResourceNotFound)
	})
}
