package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/yigit/eduadmin/internal/app/auth"
	"github.com/yigit/eduadmin/internal/app/models"
	"github.com/yigit/eduadmin/internal/app/models/dto"
	"github.com/yigit/eduadmin/internal/pkg/apperrors"
)

// AnswerService defines the interface for answer operations. Whether the
// caller may see IsCorrect is decided when the response is built.
type AnswerService interface {
	CreateAnswer(ctx context.Context, p *auth.Principal, questionID int64, req *dto.CreateAnswerRequest) (*models.Answer, error)
	GetAnswersByQuestion(ctx context.Context, p *auth.Principal, questionID int64) ([]*models.Answer, error)
	GetAnswerByID(ctx context.Context, p *auth.Principal, id int64) (*models.Answer, error)
	UpdateAnswer(ctx context.Context, p *auth.Principal, id int64, req *dto.UpdateAnswerRequest) (*models.Answer, error)
	DeleteAnswer(ctx context.Context, p *auth.Principal, id int64) error
}

type answerServiceImpl struct {
	answerRepo   AnswerRepository
	questionRepo QuestionRepository
	testRepo     TestRepository
	logger       zerolog.Logger
}

// NewAnswerService creates a new AnswerService
func NewAnswerService(
	answerRepo AnswerRepository,
	questionRepo QuestionRepository,
	testRepo TestRepository,
	logger zerolog.Logger,
) AnswerService {
	return &answerServiceImpl{
		answerRepo:   answerRepo,
		questionRepo: questionRepo,
		testRepo:     testRepo,
		logger:       logger,
	}
}

func (s *answerServiceImpl) CreateAnswer(ctx context.Context, p *auth.Principal, questionID int64, req *dto.CreateAnswerRequest) (*models.Answer, error) {
	if err := auth.RequireStaff(p); err != nil {
		return nil, err
	}
	question, err := s.questionRepo.GetByID(ctx, questionID)
	if err != nil {
		return nil, err
	}
	if _, err := managedTest(ctx, s.testRepo, p, question.TestID); err != nil {
		return nil, err
	}

	text := strings.TrimSpace(req.Text)
	if text == "" {
		return nil, fmt.Errorf("%w: answer text cannot be empty", apperrors.ErrValidationFailed)
	}

	answer := &models.Answer{
		QuestionID: questionID,
		Text:       text,
		IsCorrect:  req.IsCorrect,
	}
	if err := s.answerRepo.Create(ctx, answer); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("answerId", answer.ID).Int64("questionId", questionID).Msg("Answer created")
	return answer, nil
}

func (s *answerServiceImpl) GetAnswersByQuestion(ctx context.Context, p *auth.Principal, questionID int64) ([]*models.Answer, error) {
	if err := auth.RequireAuthenticated(p); err != nil {
		return nil, err
	}
	question, err := s.questionRepo.GetByID(ctx, questionID)
	if err != nil {
		return nil, err
	}
	if _, err := visibleTest(ctx, s.testRepo, p, question.TestID); err != nil {
		return nil, err
	}
	return s.answerRepo.ListByQuestion(ctx, questionID)
}

func (s *answerServiceImpl) GetAnswerByID(ctx context.Context, p *auth.Principal, id int64) (*models.Answer, error) {
	if err := auth.RequireAuthenticated(p); err != nil {
		return nil, err
	}
	answer, err := s.answerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	question, err := s.questionRepo.GetByID(ctx, answer.QuestionID)
	if err != nil {
		return nil, err
	}
	if _, err := visibleTest(ctx, s.testRepo, p, question.TestID); err != nil {
		return nil, err
	}
	return answer, nil
}

func (s *answerServiceImpl) UpdateAnswer(ctx context.Context, p *auth.Principal, id int64, req *dto.UpdateAnswerRequest) (*models.Answer, error) {
	answer, err := s.managedAnswer(ctx, p, id)
	if err != nil {
		return nil, err
	}

	if req.Text != nil {
		text := strings.TrimSpace(*req.Text)
		if text == "" {
			return nil, fmt.Errorf("%w: answer text cannot be empty", apperrors.ErrValidationFailed)
		}
		answer.Text = text
	}
	if req.IsCorrect != nil {
		answer.IsCorrect = *req.IsCorrect
	}

	if err := s.answerRepo.Update(ctx, answer); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("answerId", id).Msg("Answer updated")
	return answer, nil
}

func (s *answerServiceImpl) DeleteAnswer(ctx context.Context, p *auth.Principal, id int64) error {
	if _, err := s.managedAnswer(ctx, p, id); err != nil {
		return err
	}
	if err := s.answerRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Int64("answerId", id).Msg("Answer deleted")
	return nil
}

func (s *answerServiceImpl) managedAnswer(ctx context.Context, p *auth.Principal, id int64) (*models.Answer, error) {
	if err := auth.RequireStaff(p); err != nil {
		return nil, err
	}
	answer, err := s.answerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	question, err := s.questionRepo.GetByID(ctx, answer.QuestionID)
	if err != nil {
		return nil, err
	}
	if _, err := managedTest(ctx, s.testRepo, p, question.TestID); err != nil {
		return nil, err
	}
	return answer, nil
}
