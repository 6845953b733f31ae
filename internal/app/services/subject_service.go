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
	"github.com/yigit/eduadmin/internal/pkg/helpers"
)

// SubjectService defines the interface for subject operations
type SubjectService interface {
	CreateSubject(ctx context.Context, p *auth.Principal, req *dto.CreateSubjectRequest) (*models.Subject, error)
	GetSubjects(ctx context.Context, p *auth.Principal, page, size int) ([]*models.Subject, int64, error)
	GetSubjectByID(ctx context.Context, p *auth.Principal, id int64) (*models.Subject, error)
	UpdateSubject(ctx context.Context, p *auth.Principal, id int64, req *dto.UpdateSubjectRequest) (*models.Subject, error)
	DeleteSubject(ctx context.Context, p *auth.Principal, id int64) error
}

type subjectServiceImpl struct {
	subjectRepo SubjectRepository
	logger      zerolog.Logger
}

// NewSubjectService creates a new SubjectService
func NewSubjectService(subjectRepo SubjectRepository, logger zerolog.Logger) SubjectService {
	return &subjectServiceImpl{
		subjectRepo: subjectRepo,
		logger:      logger,
	}
}

func (s *subjectServiceImpl) CreateSubject(ctx context.Context, p *auth.Principal, req *dto.CreateSubjectRequest) (*models.Subject, error) {
	if err := auth.RequireAdmin(p); err != nil {
		return nil, err
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: subject name cannot be empty", apperrors.ErrValidationFailed)
	}

	subject := &models.Subject{
		Name:        name,
		Description: trimOptional(req.Description),
	}
	if err := s.subjectRepo.Create(ctx, subject); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("subjectId", subject.ID).Str("name", subject.Name).Msg("Subject created")
	return subject, nil
}

func (s *subjectServiceImpl) GetSubjects(ctx context.Context, p *auth.Principal, page, size int) ([]*models.Subject, int64, error) {
	if err := auth.RequireAuthenticated(p); err != nil {
		return nil, 0, err
	}
	return s.subjectRepo.List(ctx, helpers.CalculateOffsetLimit(page, size))
}

func (s *subjectServiceImpl) GetSubjectByID(ctx context.Context, p *auth.Principal, id int64) (*models.Subject, error) {
	if err := auth.RequireAuthenticated(p); err != nil {
		return nil, err
	}
	return s.subjectRepo.GetByID(ctx, id)
}

func (s *subjectServiceImpl) UpdateSubject(ctx context.Context, p *auth.Principal, id int64, req *dto.UpdateSubjectRequest) (*models.Subject, error) {
	if err := auth.RequireAdmin(p); err != nil {
		return nil, err
	}

	subject, err := s.subjectRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: subject name cannot be empty", apperrors.ErrValidationFailed)
		}
		subject.Name = name
	}
	if req.Description != nil {
		subject.Description = trimOptional(req.Description)
	}

	if err := s.subjectRepo.Update(ctx, subject); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("subjectId", id).Msg("Subject updated")
	return subject, nil
}

// DeleteSubject removes the subject together with its tests.
func (s *subjectServiceImpl) DeleteSubject(ctx context.Context, p *auth.Principal, id int64) error {
	if err := auth.RequireAdmin(p); err != nil {
		return err
	}
	if err := s.subjectRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Int64("subjectId", id).Msg("Subject deleted")
	return nil
}
