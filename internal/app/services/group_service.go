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

// GroupService defines the interface for group operations
type GroupService interface {
	CreateGroup(ctx context.Context, p *auth.Principal, req *dto.CreateGroupRequest) (*models.Group, error)
	GetGroups(ctx context.Context, p *auth.Principal, page, size int) ([]*models.Group, int64, error)
	GetGroupByID(ctx context.Context, p *auth.Principal, id int64) (*models.Group, error)
	GetGroupStudents(ctx context.Context, p *auth.Principal, id int64, page, size int) ([]*models.Student, int64, error)
	UpdateGroup(ctx context.Context, p *auth.Principal, id int64, req *dto.UpdateGroupRequest) (*models.Group, error)
	DeleteGroup(ctx context.Context, p *auth.Principal, id int64) error
}

type groupServiceImpl struct {
	groupRepo   GroupRepository
	studentRepo StudentRepository
	logger      zerolog.Logger
}

// NewGroupService creates a new GroupService
func NewGroupService(groupRepo GroupRepository, studentRepo StudentRepository, logger zerolog.Logger) GroupService {
	return &groupServiceImpl{
		groupRepo:   groupRepo,
		studentRepo: studentRepo,
		logger:      logger,
	}
}

func (s *groupServiceImpl) CreateGroup(ctx context.Context, p *auth.Principal, req *dto.CreateGroupRequest) (*models.Group, error) {
	if err := auth.RequireAdmin(p); err != nil {
		return nil, err
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: group name cannot be empty", apperrors.ErrValidationFailed)
	}

	group := &models.Group{
		Name:        name,
		Description: trimOptional(req.Description),
	}
	if err := s.groupRepo.Create(ctx, group); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("groupId", group.ID).Str("name", group.Name).Msg("Group created")
	return group, nil
}

func (s *groupServiceImpl) GetGroups(ctx context.Context, p *auth.Principal, page, size int) ([]*models.Group, int64, error) {
	if err := auth.RequireAuthenticated(p); err != nil {
		return nil, 0, err
	}
	return s.groupRepo.List(ctx, helpers.CalculateOffsetLimit(page, size))
}

func (s *groupServiceImpl) GetGroupByID(ctx context.Context, p *auth.Principal, id int64) (*models.Group, error) {
	if err := auth.RequireAuthenticated(p); err != nil {
		return nil, err
	}
	return s.groupRepo.GetByID(ctx, id)
}

func (s *groupServiceImpl) GetGroupStudents(ctx context.Context, p *auth.Principal, id int64, page, size int) ([]*models.Student, int64, error) {
	if err := auth.RequireStaff(p); err != nil {
		return nil, 0, err
	}

	exists, err := s.groupRepo.Exists(ctx, id)
	if err != nil {
		return nil, 0, err
	}
	if !exists {
		return nil, 0, apperrors.ErrGroupNotFound
	}

	filter := models.StudentFilter{GroupID: &id}
	return s.studentRepo.List(ctx, filter, helpers.CalculateOffsetLimit(page, size))
}

func (s *groupServiceImpl) UpdateGroup(ctx context.Context, p *auth.Principal, id int64, req *dto.UpdateGroupRequest) (*models.Group, error) {
	if err := auth.RequireAdmin(p); err != nil {
		return nil, err
	}

	group, err := s.groupRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: group name cannot be empty", apperrors.ErrValidationFailed)
		}
		group.Name = name
	}
	if req.Description != nil {
		group.Description = trimOptional(req.Description)
	}

	if err := s.groupRepo.Update(ctx, group); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("groupId", id).Msg("Group updated")
	return group, nil
}

// DeleteGroup removes the group; its students stay and lose the group.
func (s *groupServiceImpl) DeleteGroup(ctx context.Context, p *auth.Principal, id int64) error {
	if err := auth.RequireAdmin(p); err != nil {
		return err
	}
	if err := s.groupRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Int64("groupId", id).Msg("Group deleted")
	return nil
}
