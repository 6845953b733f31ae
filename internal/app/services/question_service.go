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

// QuestionService defines the interface for question operations
type QuestionService interface {
	CreateQuestion(ctx context.Context, p *auth.Principal, testID int64, req *dto.CreateQuestionRequest) (*models.Question, error)
	GetQuestionsByTest(ctx context.Context, p *auth.Principal, testID int64) ([]*models.Question, error)
	GetQuestionByID(ctx context.Context, p *auth.Principal, id int64) (*models.Question, error)
	UpdateQuestion(ctx context.Context, p *auth.Principal, id int64, req *dto.UpdateQuestionRequest) (*models.Question, error)
	DeleteQuestion(ctx context.Context, p *auth.Principal, id int64) error
}

type questionServiceImpl struct {
	questionRepo QuestionRepository
	testRepo     TestRepository
	logger       zerolog.Logger
}

// NewQuestionService creates a new QuestionService
func NewQuestionService(questionRepo QuestionRepository, testRepo TestRepository, logger zerolog.Logger) QuestionService {
	return &questionServiceImpl{
		questionRepo: questionRepo,
		testRepo:     testRepo,
		logger:       logger,
	}
}

// CreateQuestion adds a question, and the answers sent with it, to a test
func (s *questionServiceImpl) CreateQuestion(ctx context.Context, p *auth.Principal, testID int64, req *dto.CreateQuestionRequest) (*models.Question, error) {
	if _, err := managedTest(ctx, s.testRepo, p, testID); err != nil {
		return nil, err
	}

	text := strings.TrimSpace(req.Text)
	if text == "" {
		return nil, fmt.Errorf("%w: question text cannot be empty", apperrors.ErrValidationFailed)
	}

	question := &models.Question{
		TestID:  testID,
		Text:    text,
		Answers: make([]*models.Answer, 0, len(req.Answers)),
	}
	for i, a := range req.Answers {
		answerText := strings.TrimSpace(a.Text)
		if answerText == "" {
			return nil, fmt.Errorf("%w: answer %d text cannot be empty", apperrors.ErrValidationFailed, i+1)
		}
		question.Answers = append(question.Answers, &models.Answer{
			Text:      answerText,
			IsCorrect: a.IsCorrect,
		})
	}

	if err := s.questionRepo.Create(ctx, question); err != nil {
		return nil, err
	}

	s.logger.Info().
		Int64("questionId", question.ID).
		Int64("testId", testID).
		Int("answers", len(question.Answers)).
		Msg("Question created")
	return question, nil
}

func (s *questionServiceImpl) GetQuestionsByTest(ctx context.Context, p *auth.Principal, testID int64) ([]*models.Question, error) {
	if _, err := visibleTest(ctx, s.testRepo, p, testID); err != nil {
		return nil, err
	}
	return s.questionRepo.ListByTest(ctx, testID)
}

func (s *questionServiceImpl) GetQuestionByID(ctx context.Context, p *auth.Principal, id int64) (*models.Question, error) {
	if err := auth.RequireAuthenticated(p); err != nil {
		return nil, err
	}
	question, err := s.questionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if _, err := visibleTest(ctx, s.testRepo, p, question.TestID); err != nil {
		return nil, err
	}
	return question, nil
}

func (s *questionServiceImpl) UpdateQuestion(ctx context.Context, p *auth.Principal, id int64, req *dto.UpdateQuestionRequest) (*models.Question, error) {
	question, err := s.managedQuestion(ctx, p, id)
	if err != nil {
		return nil, err
	}

	if req.Text != nil {
		text := strings.TrimSpace(*req.Text)
		if text == "" {
			return nil, fmt.Errorf("%w: question text cannot be empty", apperrors.ErrValidationFailed)
		}
		question.Text = text
	}

	if err := s.questionRepo.Update(ctx, question); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("questionId", id).Msg("Question updated")
	return question, nil
}

// DeleteQuestion removes the question and its answers
func (s *questionServiceImpl) DeleteQuestion(ctx context.Context, p *auth.Principal, id int64) error {
	if _, err := s.managedQuestion(ctx, p, id); err != nil {
		return err
	}
	if err := s.questionRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Int64("questionId", id).Msg("Question deleted")
	return nil
}

func (s *questionServiceImpl) managedQuestion(ctx context.Context, p *auth.Principal, id int64) (*models.Question, error) {
	if err := auth.RequireStaff(p); err != nil {
		return nil, err
	}
	question, err := s.questionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if _, err := managedTest(ctx, s.testRepo, p, question.TestID); err != nil {
		return nil, err
	}
	return question, nil
}
