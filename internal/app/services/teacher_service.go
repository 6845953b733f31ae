package services

import (
	"context"
	"mime/multipart"
	"strings"

	"github.com/rs/zerolog"
	"github.com/yigit/eduadmin/internal/app/auth"
	"github.com/yigit/eduadmin/internal/app/models"
	"github.com/yigit/eduadmin/internal/app/models/dto"
	"github.com/yigit/eduadmin/internal/pkg/helpers"
	"github.com/yigit/eduadmin/internal/pkg/messaging"
)

// TeacherService defines the interface for teacher operations
type TeacherService interface {
	CreateTeacher(ctx context.Context, p *auth.Principal, req *dto.CreateTeacherRequest, image *multipart.FileHeader) (*models.Teacher, error)
	GetTeachers(ctx context.Context, p *auth.Principal, page, size int) ([]*models.Teacher, int64, error)
	GetTeacherByID(ctx context.Context, p *auth.Principal, id int64) (*models.Teacher, error)
	UpdateTeacher(ctx context.Context, p *auth.Principal, id int64, req *dto.UpdateTeacherRequest, image *multipart.FileHeader) (*models.Teacher, error)
	DeleteTeacher(ctx context.Context, p *auth.Principal, id int64) error
}

type teacherServiceImpl struct {
	userSupport
	teacherRepo TeacherRepository
}

// NewTeacherService creates a new TeacherService
func NewTeacherService(
	teacherRepo TeacherRepository,
	tokenRepo TokenRepository,
	imageService ImageService,
	publisher messaging.Publisher,
	logger zerolog.Logger,
) TeacherService {
	return &teacherServiceImpl{
		userSupport: newUserSupport(imageService, tokenRepo, publisher, logger),
		teacherRepo: teacherRepo,
	}
}

func (s *teacherServiceImpl) CreateTeacher(ctx context.Context, p *auth.Principal, req *dto.CreateTeacherRequest, image *multipart.FileHeader) (*models.Teacher, error) {
	if err := auth.RequireAdmin(p); err != nil {
		return nil, err
	}

	login, err := normalizeLogin(req.Login)
	if err != nil {
		return nil, err
	}
	fullName, err := normalizeName(req.FullName)
	if err != nil {
		return nil, err
	}
	if err := s.ensureLoginFree(ctx, s.teacherRepo, login, 0); err != nil {
		return nil, err
	}

	passwordHash, err := s.hashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	uploaded, err := s.uploadImage(ctx, image)
	if err != nil {
		return nil, err
	}

	teacher := &models.Teacher{
		Login:        login,
		PasswordHash: passwordHash,
		FullName:     fullName,
		Phone:        trimOptional(req.Phone),
	}
	if uploaded != nil {
		teacher.ImageID = &uploaded.ID
	}

	if err := s.teacherRepo.Create(ctx, teacher); err != nil {
		s.rollbackImage(ctx, uploaded)
		return nil, err
	}

	s.logger.Info().Int64("teacherId", teacher.ID).Int64("createdBy", p.UserID).Msg("Teacher created")
	return s.teacherRepo.GetByID(ctx, teacher.ID)
}

func (s *teacherServiceImpl) GetTeachers(ctx context.Context, p *auth.Principal, page, size int) ([]*models.Teacher, int64, error) {
	if err := auth.RequireAdmin(p); err != nil {
		return nil, 0, err
	}
	return s.teacherRepo.List(ctx, helpers.CalculateOffsetLimit(page, size))
}

func (s *teacherServiceImpl) GetTeacherByID(ctx context.Context, p *auth.Principal, id int64) (*models.Teacher, error) {
	if err := auth.RequireAdminOrSelf(p, models.RoleTeacher, id); err != nil {
		return nil, err
	}
	return s.teacherRepo.GetByID(ctx, id)
}

func (s *teacherServiceImpl) UpdateTeacher(ctx context.Context, p *auth.Principal, id int64, req *dto.UpdateTeacherRequest, image *multipart.FileHeader) (*models.Teacher, error) {
	if err := auth.RequireAdminOrSelf(p, models.RoleTeacher, id); err != nil {
		return nil, err
	}

	teacher, err := s.teacherRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Login != nil {
		login, err := normalizeLogin(*req.Login)
		if err != nil {
			return nil, err
		}
		if login != teacher.Login {
			if err := s.ensureLoginFree(ctx, s.teacherRepo, login, id); err != nil {
				return nil, err
			}
			teacher.Login = login
		}
	}

	if req.FullName != nil {
		if teacher.FullName, err = normalizeName(*req.FullName); err != nil {
			return nil, err
		}
	}

	if req.Phone != nil {
		teacher.Phone = trimOptional(req.Phone)
	}

	if req.Password != nil {
		if teacher.PasswordHash, err = s.hashPassword(*req.Password); err != nil {
			return nil, err
		}
	}

	uploaded, err := s.uploadImage(ctx, image)
	if err != nil {
		return nil, err
	}
	previous := teacher.Image
	if uploaded != nil {
		teacher.ImageID = &uploaded.ID
	}

	if err := s.teacherRepo.Update(ctx, teacher); err != nil {
		s.rollbackImage(ctx, uploaded)
		return nil, err
	}
	s.replacedImage(ctx, previous, uploaded)

	s.logger.Info().Int64("teacherId", id).Int64("updatedBy", p.UserID).Msg("Teacher updated")
	return s.teacherRepo.GetByID(ctx, id)
}

func (s *teacherServiceImpl) DeleteTeacher(ctx context.Context, p *auth.Principal, id int64) error {
	if err := auth.RequireAdmin(p); err != nil {
		return err
	}

	removed, err := s.teacherRepo.Delete(ctx, id)
	if err != nil {
		return err
	}
	s.afterDelete(ctx, id, removed, models.RoleTeacher)

	s.logger.Info().Int64("teacherId", id).Int64("deletedBy", p.UserID).Msg("Teacher deleted")
	return nil
}

// trimOptional trims s and turns an empty value into nil
func trimOptional(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
