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

// TestService defines the interface for test operations
type TestService interface {
	CreateTest(ctx context.Context, p *auth.Principal, req *dto.CreateTestRequest) (*models.Test, error)
	GetTests(ctx context.Context, p *auth.Principal, filter models.TestFilter, page, size int) ([]*models.Test, int64, error)
	GetTestByID(ctx context.Context, p *auth.Principal, id int64) (*models.Test, error)
	UpdateTest(ctx context.Context, p *auth.Principal, id int64, req *dto.UpdateTestRequest) (*models.Test, error)
	DeleteTest(ctx context.Context, p *auth.Principal, id int64) error
}

type testServiceImpl struct {
	testRepo TestRepository
	logger   zerolog.Logger
}

// NewTestService creates a new TestService
func NewTestService(testRepo TestRepository, logger zerolog.Logger) TestService {
	return &testServiceImpl{
		testRepo: testRepo,
		logger:   logger,
	}
}

// visibleTest loads a test the principal may read. Inactive tests are
// reported as missing to students.
func visibleTest(ctx context.Context, repo TestRepository, p *auth.Principal, id int64) (*models.Test, error) {
	if err := auth.RequireAuthenticated(p); err != nil {
		return nil, err
	}
	test, err := repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if auth.IsStudent(p) && !test.IsActive {
		return nil, apperrors.ErrTestNotFound
	}
	return test, nil
}

// managedTest loads a test the principal may modify
func managedTest(ctx context.Context, repo TestRepository, p *auth.Principal, id int64) (*models.Test, error) {
	if err := auth.RequireStaff(p); err != nil {
		return nil, err
	}
	test, err := repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := auth.RequireTestManager(p, test); err != nil {
		return nil, err
	}
	return test, nil
}

// CreateTest is open to admins and teachers; a teacher becomes the owner.
func (s *testServiceImpl) CreateTest(ctx context.Context, p *auth.Principal, req *dto.CreateTestRequest) (*models.Test, error) {
	if err := auth.RequireStaff(p); err != nil {
		return nil, err
	}

	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, fmt.Errorf("%w: title cannot be empty", apperrors.ErrValidationFailed)
	}
	if req.DurationMinutes <= 0 {
		return nil, fmt.Errorf("%w: duration must be positive", apperrors.ErrValidationFailed)
	}

	test := &models.Test{
		SubjectID:       req.SubjectID,
		Title:           title,
		Description:     trimOptional(req.Description),
		DurationMinutes: req.DurationMinutes,
		IsActive:        true,
	}
	if req.IsActive != nil {
		test.IsActive = *req.IsActive
	}
	if auth.IsTeacher(p) {
		ownerID := p.UserID
		test.TeacherID = &ownerID
	}

	if err := s.testRepo.Create(ctx, test); err != nil {
		return nil, err
	}

	s.logger.Info().
		Int64("testId", test.ID).
		Int64("subjectId", test.SubjectID).
		Str("role", string(p.Role)).
		Int64("createdBy", p.UserID).
		Msg("Test created")
	return test, nil
}

// GetTests lists tests; students only ever see active ones.
func (s *testServiceImpl) GetTests(ctx context.Context, p *auth.Principal, filter models.TestFilter, page, size int) ([]*models.Test, int64, error) {
	if err := auth.RequireAuthenticated(p); err != nil {
		return nil, 0, err
	}
	if auth.IsStudent(p) {
		filter.OnlyActive = true
	}
	return s.testRepo.List(ctx, filter, helpers.CalculateOffsetLimit(page, size))
}

func (s *testServiceImpl) GetTestByID(ctx context.Context, p *auth.Principal, id int64) (*models.Test, error) {
	return visibleTest(ctx, s.testRepo, p, id)
}

func (s *testServiceImpl) UpdateTest(ctx context.Context, p *auth.Principal, id int64, req *dto.UpdateTestRequest) (*models.Test, error) {
	test, err := managedTest(ctx, s.testRepo, p, id)
	if err != nil {
		return nil, err
	}

	if req.SubjectID != nil {
		test.SubjectID = *req.SubjectID
	}
	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			return nil, fmt.Errorf("%w: title cannot be empty", apperrors.ErrValidationFailed)
		}
		test.Title = title
	}
	if req.Description != nil {
		test.Description = trimOptional(req.Description)
	}
	if req.DurationMinutes != nil {
		if *req.DurationMinutes <= 0 {
			return nil, fmt.Errorf("%w: duration must be positive", apperrors.ErrValidationFailed)
		}
		test.DurationMinutes = *req.DurationMinutes
	}
	if req.IsActive != nil {
		test.IsActive = *req.IsActive
	}

	if err := s.testRepo.Update(ctx, test); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("testId", id).Int64("updatedBy", p.UserID).Msg("Test updated")
	return test, nil
}

func (s *testServiceImpl) DeleteTest(ctx context.Context, p *auth.Principal, id int64) error {
	if _, err := managedTest(ctx, s.testRepo, p, id); err != nil {
		return err
	}
	if err := s.testRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Int64("testId", id).Int64("deletedBy", p.UserID).Msg("Test deleted")
	return nil
}
