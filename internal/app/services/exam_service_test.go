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
	"github.com/yigit/eduadmin/internal/pkg/messaging"
)

func TestCalculateScore(t *testing.T) {
	assert.Equal(t, 0.0, calculateScore(0, 3))
	assert.Equal(t, 33.33, calculateScore(1, 3))
	assert.Equal(t, 66.67, calculateScore(2, 3))
	assert.Equal(t, 100.0, calculateScore(7, 7))
	assert.Equal(t, 0.0, calculateScore(1, 0))
}

func TestTestService(t *testing.T) {
	ctx := context.Background()

	t.Run("teacher becomes owner", func(t *testing.T) {
		repo := &mockTestRepo{}
		svc := NewTestService(repo, zerolog.Nop())
		repo.On("Create", ctx, mock.MatchedBy(func(test *models.Test) bool {
			return test.TeacherID != nil && *test.TeacherID == teacher7.UserID && test.IsActive
		})).Return(nil)

		_, err := svc.CreateTest(ctx, teacher7, &dto.CreateTestRequest{SubjectID: 1, Title: "Algebra", DurationMinutes: 30})
		require.NoError(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("student cannot create", func(t *testing.T) {
		svc := NewTestService(&mockTestRepo{}, zerolog.Nop())
		_, err := svc.CreateTest(ctx, student11, &dto.CreateTestRequest{SubjectID: 1, Title: "x", DurationMinutes: 1})
		assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
	})

	t.Run("other teacher cannot update", func(t *testing.T) {
		repo := &mockTestRepo{}
		svc := NewTestService(repo, zerolog.Nop())
		repo.On("GetByID", ctx, int64(4)).Return(&models.Test{ID: 4, TeacherID: int64Ptr(99)}, nil)

		_, err := svc.UpdateTest(ctx, teacher7, 4, &dto.UpdateTestRequest{Title: strPtr("mine now")})
		assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
		repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("students only list active tests", func(t *testing.T) {
		repo := &mockTestRepo{}
		svc := NewTestService(repo, zerolog.Nop())
		repo.On("List", ctx, models.TestFilter{OnlyActive: true}, models.Page{Offset: 0, Limit: 10}).
			Return([]*models.Test{}, int64(0), nil)

		_, _, err := svc.GetTests(ctx, student11, models.TestFilter{}, 1, 10)
		require.NoError(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("inactive test hidden from students", func(t *testing.T) {
		repo := &mockTestRepo{}
		svc := NewTestService(repo, zerolog.Nop())
		repo.On("GetByID", ctx, int64(5)).Return(&models.Test{ID: 5, IsActive: false}, nil)

		_, err := svc.GetTestByID(ctx, student11, 5)
		assert.ErrorIs(t, err, apperrors.ErrTestNotFound)

		test, err := svc.GetTestByID(ctx, teacher7, 5)
		require.NoError(t, err)
		assert.Equal(t, int64(5), test.ID)
	})
}

func gradedQuestions() []*models.Question {
	return []*models.Question{
		{ID: 1, TestID: 10, Answers: []*models.Answer{
			{ID: 101, QuestionID: 1, IsCorrect: true},
			{ID: 102, QuestionID: 1},
		}},
		{ID: 2, TestID: 10, Answers: []*models.Answer{
			{ID: 201, QuestionID: 2},
			{ID: 202, QuestionID: 2, IsCorrect: true},
		}},
		{ID: 3, TestID: 10, Answers: []*models.Answer{
			{ID: 301, QuestionID: 3, IsCorrect: true},
		}},
	}
}

func TestResultService_SubmitResult(t *testing.T) {
	ctx := context.Background()

	newService := func() (ResultService, *mockResultRepo, *mockTestRepo, *mockQuestionRepo, *mockPublisher) {
		results := &mockResultRepo{}
		tests := &mockTestRepo{}
		questions := &mockQuestionRepo{}
		publisher := &mockPublisher{}
		return NewResultService(results, tests, questions, publisher, zerolog.Nop()), results, tests, questions, publisher
	}

	t.Run("grades and publishes", func(t *testing.T) {
		svc, results, tests, questions, publisher := newService()
		tests.On("GetByID", ctx, int64(10)).Return(&models.Test{ID: 10, IsActive: true}, nil)
		questions.On("ListByTest", ctx, int64(10)).Return(gradedQuestions(), nil)
		results.On("CreateWithAnswers", ctx, mock.AnythingOfType("*models.Result")).
			Run(func(args mock.Arguments) { args.Get(1).(*models.Result).ID = 77 }).
			Return(nil)
		publisher.On("Publish", ctx, messaging.SubjectResultSubmitted, mock.MatchedBy(func(e messaging.ResultSubmittedEvent) bool {
			return e.ResultID == 77 && e.StudentID == student11.UserID && e.Score == 33.33
		})).Return(nil)

		result, err := svc.SubmitResult(ctx, student11, &dto.SubmitResultRequest{
			TestID: 10,
			Answers: []dto.SubmittedAnswer{
				{QuestionID: 1, AnswerID: 101},
				{QuestionID: 2, AnswerID: 201},
			},
		})
		require.NoError(t, err)
		assert.Equal(t, 1, result.CorrectCount)
		assert.Equal(t, 3, result.TotalCount)
		assert.Equal(t, 33.33, result.Score)
		require.Len(t, result.Answers, 2)
		assert.True(t, result.Answers[0].IsCorrect)
		assert.False(t, result.Answers[1].IsCorrect)
		publisher.AssertExpectations(t)
	})

	t.Run("test without questions is rejected", func(t *testing.T) {
		svc, results, tests, questions, _ := newService()
		tests.On("GetByID", ctx, int64(12)).Return(&models.Test{ID: 12, IsActive: true}, nil)
		questions.On("ListByTest", ctx, int64(12)).Return([]*models.Question{}, nil)

		_, err := svc.SubmitResult(ctx, student11, &dto.SubmitResultRequest{
			TestID:  12,
			Answers: []dto.SubmittedAnswer{{QuestionID: 1, AnswerID: 101}},
		})
		assert.ErrorIs(t, err, apperrors.ErrBadRequest)
		results.AssertNotCalled(t, "CreateWithAnswers", mock.Anything, mock.Anything)
	})

	t.Run("answer from another question", func(t *testing.T) {
		svc, results, tests, questions, _ := newService()
		tests.On("GetByID", ctx, int64(10)).Return(&models.Test{ID: 10, IsActive: true}, nil)
		questions.On("ListByTest", ctx, int64(10)).Return(gradedQuestions(), nil)

		_, err := svc.SubmitResult(ctx, student11, &dto.SubmitResultRequest{
			TestID:  10,
			Answers: []dto.SubmittedAnswer{{QuestionID: 1, AnswerID: 202}},
		})
		assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
		results.AssertNotCalled(t, "CreateWithAnswers", mock.Anything, mock.Anything)
	})

	t.Run("question answered twice", func(t *testing.T) {
		svc, _, tests, questions, _ := newService()
		tests.On("GetByID", ctx, int64(10)).Return(&models.Test{ID: 10, IsActive: true}, nil)
		questions.On("ListByTest", ctx, int64(10)).Return(gradedQuestions(), nil)

		_, err := svc.SubmitResult(ctx, student11, &dto.SubmitResultRequest{
			TestID: 10,
			Answers: []dto.SubmittedAnswer{
				{QuestionID: 1, AnswerID: 101},
				{QuestionID: 1, AnswerID: 102},
			},
		})
		assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
	})

	t.Run("question from another test", func(t *testing.T) {
		svc, _, tests, questions, _ := newService()
		tests.On("GetByID", ctx, int64(10)).Return(&models.Test{ID: 10, IsActive: true}, nil)
		questions.On("ListByTest", ctx, int64(10)).Return(gradedQuestions(), nil)

		_, err := svc.SubmitResult(ctx, student11, &dto.SubmitResultRequest{
			TestID:  10,
			Answers: []dto.SubmittedAnswer{{QuestionID: 50, AnswerID: 501}},
		})
		assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
	})

	t.Run("inactive test", func(t *testing.T) {
		svc, _, tests, _, _ := newService()
		tests.On("GetByID", ctx, int64(10)).Return(&models.Test{ID: 10, IsActive: false}, nil)

		_, err := svc.SubmitResult(ctx, student11, &dto.SubmitResultRequest{TestID: 10, Answers: []dto.SubmittedAnswer{{QuestionID: 1, AnswerID: 101}}})
		assert.ErrorIs(t, err, apperrors.ErrBadRequest)
	})

	t.Run("only students submit", func(t *testing.T) {
		svc, _, _, _, _ := newService()
		_, err := svc.SubmitResult(ctx, teacher7, &dto.SubmitResultRequest{TestID: 10})
		assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
	})
}

func TestResultService_Access(t *testing.T) {
	ctx := context.Background()
	results := &mockResultRepo{}
	svc := NewResultService(results, &mockTestRepo{}, &mockQuestionRepo{}, nil, zerolog.Nop())

	t.Run("students list only their own", func(t *testing.T) {
		own := student11.UserID
		results.On("List", ctx, models.ResultFilter{StudentID: &own}, models.Page{Offset: 0, Limit: 10}).
			Return([]*models.Result{}, int64(0), nil).Once()

		other := int64(12)
		_, _, err := svc.GetResults(ctx, student11, models.ResultFilter{StudentID: &other}, 1, 10)
		require.NoError(t, err)
		results.AssertExpectations(t)
	})

	t.Run("student cannot read another result", func(t *testing.T) {
		results.On("GetByID", ctx, int64(3)).Return(&models.Result{ID: 3, StudentID: 12}, nil)
		_, err := svc.GetResultByID(ctx, student11, 3)
		assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)

		_, err = svc.GetResultByID(ctx, teacher7, 3)
		require.NoError(t, err)
	})

	t.Run("update recomputes score", func(t *testing.T) {
		results.On("GetByID", ctx, int64(4)).Return(&models.Result{ID: 4, CorrectCount: 1, TotalCount: 4, Score: 25}, nil)
		results.On("Update", ctx, mock.MatchedBy(func(r *models.Result) bool { return r.Score == 75 })).Return(nil)

		correct := 3
		result, err := svc.UpdateResult(ctx, plainAdmin, 4, &dto.UpdateResultRequest{CorrectCount: &correct})
		require.NoError(t, err)
		assert.Equal(t, 75.0, result.Score)

		tooMany := 9
		_, err = svc.UpdateResult(ctx, plainAdmin, 4, &dto.UpdateResultRequest{CorrectCount: &tooMany})
		assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
	})
}
