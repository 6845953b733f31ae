package services

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/rs/zerolog"
	"github.com/yigit/eduadmin/internal/app/auth"
	"github.com/yigit/eduadmin/internal/app/models"
	"github.com/yigit/eduadmin/internal/app/models/dto"
	"github.com/yigit/eduadmin/internal/pkg/apperrors"
	"github.com/yigit/eduadmin/internal/pkg/helpers"
	"github.com/yigit/eduadmin/internal/pkg/messaging"
)

// ResultService defines the interface for result operations
type ResultService interface {
	// SubmitResult grades a student's answers and stores the attempt
	SubmitResult(ctx context.Context, p *auth.Principal, req *dto.SubmitResultRequest) (*models.Result, error)
	CreateResult(ctx context.Context, p *auth.Principal, req *dto.CreateResultRequest) (*models.Result, error)
	GetResults(ctx context.Context, p *auth.Principal, filter models.ResultFilter, page, size int) ([]*models.Result, int64, error)
	GetResultByID(ctx context.Context, p *auth.Principal, id int64) (*models.Result, error)
	UpdateResult(ctx context.Context, p *auth.Principal, id int64, req *dto.UpdateResultRequest) (*models.Result, error)
	DeleteResult(ctx context.Context, p *auth.Principal, id int64) error
}

type resultServiceImpl struct {
	resultRepo   ResultRepository
	testRepo     TestRepository
	questionRepo QuestionRepository
	publisher    messaging.Publisher
	logger       zerolog.Logger
}

// NewResultService creates a new ResultService
func NewResultService(
	resultRepo ResultRepository,
	testRepo TestRepository,
	questionRepo QuestionRepository,
	publisher messaging.Publisher,
	logger zerolog.Logger,
) ResultService {
	if publisher == nil {
		publisher = messaging.NoopPublisher{}
	}
	return &resultServiceImpl{
		resultRepo:   resultRepo,
		testRepo:     testRepo,
		questionRepo: questionRepo,
		publisher:    publisher,
		logger:       logger,
	}
}

// calculateScore returns correct/total as a percentage rounded to two decimals
func calculateScore(correct, total int) float64 {
	if total <= 0 {
		return 0
	}
	return math.Round(float64(correct)*10000/float64(total)) / 100
}

func validateCounts(correct, total int) error {
	if total <= 0 {
		return fmt.Errorf("%w: total count must be positive", apperrors.ErrValidationFailed)
	}
	if correct < 0 || correct > total {
		return fmt.Errorf("%w: correct count must be between 0 and total count", apperrors.ErrValidationFailed)
	}
	return nil
}

func (s *resultServiceImpl) SubmitResult(ctx context.Context, p *auth.Principal, req *dto.SubmitResultRequest) (*models.Result, error) {
	if err := auth.RequireAuthenticated(p); err != nil {
		return nil, err
	}
	if !auth.IsStudent(p) {
		return nil, apperrors.NewForbiddenError("only students can submit test answers")
	}

	test, err := s.testRepo.GetByID(ctx, req.TestID)
	if err != nil {
		return nil, err
	}
	if !test.IsActive {
		return nil, apperrors.NewBadRequestError("test is not active")
	}

	questions, err := s.questionRepo.ListByTest(ctx, test.ID)
	if err != nil {
		return nil, err
	}
	if len(questions) == 0 {
		return nil, apperrors.NewBadRequestError("test has no questions")
	}

	answersByQuestion := make(map[int64]map[int64]*models.Answer, len(questions))
	for _, q := range questions {
		byID := make(map[int64]*models.Answer, len(q.Answers))
		for _, a := range q.Answers {
			byID[a.ID] = a
		}
		answersByQuestion[q.ID] = byID
	}

	result := &models.Result{
		TestID:     test.ID,
		StudentID:  p.UserID,
		TotalCount: len(questions),
		Answers:    make([]*models.ResultAnswer, 0, len(req.Answers)),
	}

	answered := make(map[int64]bool, len(req.Answers))
	for _, submitted := range req.Answers {
		options, ok := answersByQuestion[submitted.QuestionID]
		if !ok {
			return nil, apperrors.NewValidationError("question does not belong to the test",
				map[string]interface{}{"questionId": submitted.QuestionID})
		}
		if answered[submitted.QuestionID] {
			return nil, apperrors.NewValidationError("question answered more than once",
				map[string]interface{}{"questionId": submitted.QuestionID})
		}
		answered[submitted.QuestionID] = true

		answer, ok := options[submitted.AnswerID]
		if !ok {
			return nil, apperrors.NewValidationError("answer does not belong to the question",
				map[string]interface{}{"questionId": submitted.QuestionID, "answerId": submitted.AnswerID})
		}

		if answer.IsCorrect {
			result.CorrectCount++
		}
		result.Answers = append(result.Answers, &models.ResultAnswer{
			QuestionID: submitted.QuestionID,
			AnswerID:   submitted.AnswerID,
			IsCorrect:  answer.IsCorrect,
		})
	}
	result.Score = calculateScore(result.CorrectCount, result.TotalCount)

	if err := s.resultRepo.CreateWithAnswers(ctx, result); err != nil {
		return nil, err
	}

	s.logger.Info().
		Int64("resultId", result.ID).
		Int64("testId", result.TestID).
		Int64("studentId", result.StudentID).
		Float64("score", result.Score).
		Msg("Result submitted")

	event := messaging.ResultSubmittedEvent{
		ResultID:     result.ID,
		TestID:       result.TestID,
		StudentID:    result.StudentID,
		CorrectCount: result.CorrectCount,
		TotalCount:   result.TotalCount,
		Score:        result.Score,
		SubmittedAt:  time.Now().UTC(),
	}
	if err := s.publisher.Publish(ctx, messaging.SubjectResultSubmitted, event); err != nil {
		s.logger.Warn().Err(err).Int64("resultId", result.ID).Msg("Failed to publish result submitted event")
	}

	return result, nil
}

// CreateResult records a score directly, without per-question answers
func (s *resultServiceImpl) CreateResult(ctx context.Context, p *auth.Principal, req *dto.CreateResultRequest) (*models.Result, error) {
	if err := auth.RequireAdmin(p); err != nil {
		return nil, err
	}
	if err := validateCounts(req.CorrectCount, req.TotalCount); err != nil {
		return nil, err
	}

	result := &models.Result{
		TestID:       req.TestID,
		StudentID:    req.StudentID,
		CorrectCount: req.CorrectCount,
		TotalCount:   req.TotalCount,
		Score:        calculateScore(req.CorrectCount, req.TotalCount),
	}
	if err := s.resultRepo.Create(ctx, result); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("resultId", result.ID).Int64("createdBy", p.UserID).Msg("Result created")
	return result, nil
}

// GetResults lists results; a student only ever sees its own.
func (s *resultServiceImpl) GetResults(ctx context.Context, p *auth.Principal, filter models.ResultFilter, page, size int) ([]*models.Result, int64, error) {
	if err := auth.RequireAuthenticated(p); err != nil {
		return nil, 0, err
	}
	if !auth.IsStaff(p) {
		if !auth.IsStudent(p) {
			return nil, 0, apperrors.NewForbiddenError("you cannot list results")
		}
		studentID := p.UserID
		filter.StudentID = &studentID
	}
	return s.resultRepo.List(ctx, filter, helpers.CalculateOffsetLimit(page, size))
}

func (s *resultServiceImpl) GetResultByID(ctx context.Context, p *auth.Principal, id int64) (*models.Result, error) {
	if err := auth.RequireAuthenticated(p); err != nil {
		return nil, err
	}
	result, err := s.resultRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !auth.IsStaff(p) && !auth.IsUserSelf(p, models.RoleStudent, result.StudentID) {
		return nil, apperrors.NewForbiddenError("you can only access your own results")
	}
	return result, nil
}

// UpdateResult corrects the counts of a result and recomputes its score
func (s *resultServiceImpl) UpdateResult(ctx context.Context, p *auth.Principal, id int64, req *dto.UpdateResultRequest) (*models.Result, error) {
	if err := auth.RequireAdmin(p); err != nil {
		return nil, err
	}

	result, err := s.resultRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.CorrectCount != nil {
		result.CorrectCount = *req.CorrectCount
	}
	if req.TotalCount != nil {
		result.TotalCount = *req.TotalCount
	}
	if err := validateCounts(result.CorrectCount, result.TotalCount); err != nil {
		return nil, err
	}
	result.Score = calculateScore(result.CorrectCount, result.TotalCount)

	if err := s.resultRepo.Update(ctx, result); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("resultId", id).Int64("updatedBy", p.UserID).Msg("Result updated")
	return result, nil
}

func (s *resultServiceImpl) DeleteResult(ctx context.Context, p *auth.Principal, id int64) error {
	if err := auth.RequireAdmin(p); err != nil {
		return err
	}
	if err := s.resultRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Int64("resultId", id).Int64("deletedBy", p.UserID).Msg("Result deleted")
	return nil
}
