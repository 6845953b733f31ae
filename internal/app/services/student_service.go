package services

import (
	"context"
	"fmt"
	"mime/multipart"

	"github.com/rs/zerolog"
	"github.com/yigit/eduadmin/internal/app/auth"
	"github.com/yigit/eduadmin/internal/app/models"
	"github.com/yigit/eduadmin/internal/app/models/dto"
	"github.com/yigit/eduadmin/internal/pkg/apperrors"
	"github.com/yigit/eduadmin/internal/pkg/helpers"
	"github.com/yigit/eduadmin/internal/pkg/messaging"
)

// StudentService defines the interface for student operations
type StudentService interface {
	Signup(ctx context.Context, req *dto.SignupStudentRequest, image *multipart.FileHeader) (*models.Student, error)
	CreateStudent(ctx context.Context, p *auth.Principal, req *dto.CreateStudentRequest, image *multipart.FileHeader) (*models.Student, error)
	GetStudents(ctx context.Context, p *auth.Principal, filter models.StudentFilter, page, size int) ([]*models.Student, int64, error)
	GetStudentByID(ctx context.Context, p *auth.Principal, id int64) (*models.Student, error)
	UpdateStudent(ctx context.Context, p *auth.Principal, id int64, req *dto.UpdateStudentRequest, image *multipart.FileHeader) (*models.Student, error)
	DeleteStudent(ctx context.Context, p *auth.Principal, id int64) error
}

type studentServiceImpl struct {
	userSupport
	studentRepo StudentRepository
	groupRepo   GroupRepository
}

// NewStudentService creates a new StudentService
func NewStudentService(
	studentRepo StudentRepository,
	groupRepo GroupRepository,
	tokenRepo TokenRepository,
	imageService ImageService,
	publisher messaging.Publisher,
	logger zerolog.Logger,
) StudentService {
	return &studentServiceImpl{
		userSupport: newUserSupport(imageService, tokenRepo, publisher, logger),
		studentRepo: studentRepo,
		groupRepo:   groupRepo,
	}
}

// Signup is the public self-registration. The new student has no group.
func (s *studentServiceImpl) Signup(ctx context.Context, req *dto.SignupStudentRequest, image *multipart.FileHeader) (*models.Student, error) {
	student, err := s.create(ctx, req.Login, req.Password, req.FullName, nil, image)
	if err != nil {
		return nil, err
	}
	s.logger.Info().Int64("studentId", student.ID).Msg("Student signed up")
	return student, nil
}

func (s *studentServiceImpl) CreateStudent(ctx context.Context, p *auth.Principal, req *dto.CreateStudentRequest, image *multipart.FileHeader) (*models.Student, error) {
	if err := auth.RequireAdmin(p); err != nil {
		return nil, err
	}

	student, err := s.create(ctx, req.Login, req.Password, req.FullName, req.GroupID, image)
	if err != nil {
		return nil, err
	}
	s.logger.Info().Int64("studentId", student.ID).Int64("createdBy", p.UserID).Msg("Student created")
	return student, nil
}

func (s *studentServiceImpl) create(ctx context.Context, login, password, fullName string, groupID *int64, image *multipart.FileHeader) (*models.Student, error) {
	login, err := normalizeLogin(login)
	if err != nil {
		return nil, err
	}
	fullName, err = normalizeName(fullName)
	if err != nil {
		return nil, err
	}
	if err := s.ensureGroup(ctx, groupID); err != nil {
		return nil, err
	}
	if err := s.ensureLoginFree(ctx, s.studentRepo, login, 0); err != nil {
		return nil, err
	}

	passwordHash, err := s.hashPassword(password)
	if err != nil {
		return nil, err
	}

	uploaded, err := s.uploadImage(ctx, image)
	if err != nil {
		return nil, err
	}

	student := &models.Student{
		Login:        login,
		PasswordHash: passwordHash,
		FullName:     fullName,
		GroupID:      groupID,
	}
	if uploaded != nil {
		student.ImageID = &uploaded.ID
	}

	if err := s.studentRepo.Create(ctx, student); err != nil {
		s.rollbackImage(ctx, uploaded)
		return nil, err
	}

	return s.studentRepo.GetByID(ctx, student.ID)
}

func (s *studentServiceImpl) GetStudents(ctx context.Context, p *auth.Principal, filter models.StudentFilter, page, size int) ([]*models.Student, int64, error) {
	if err := auth.RequireStaff(p); err != nil {
		return nil, 0, err
	}
	return s.studentRepo.List(ctx, filter, helpers.CalculateOffsetLimit(page, size))
}

func (s *studentServiceImpl) GetStudentByID(ctx context.Context, p *auth.Principal, id int64) (*models.Student, error) {
	if !auth.IsStaff(p) {
		if err := auth.RequireAdminOrSelf(p, models.RoleStudent, id); err != nil {
			return nil, err
		}
	}
	return s.studentRepo.GetByID(ctx, id)
}

// UpdateStudent is open to admins and to the student itself, except that a
// student cannot move itself to another group.
func (s *studentServiceImpl) UpdateStudent(ctx context.Context, p *auth.Principal, id int64, req *dto.UpdateStudentRequest, image *multipart.FileHeader) (*models.Student, error) {
	if err := auth.RequireAdminOrSelf(p, models.RoleStudent, id); err != nil {
		return nil, err
	}

	student, err := s.studentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.ClearGroup {
		if req.GroupID != nil {
			return nil, fmt.Errorf("%w: groupId and clearGroup cannot be combined", apperrors.ErrValidationFailed)
		}
		if student.GroupID != nil {
			if !auth.IsAdmin(p) {
				return nil, apperrors.NewForbiddenError("only an admin can change a student's group")
			}
			student.GroupID = nil
			student.Group = nil
		}
	}

	if req.GroupID != nil && !equalID(req.GroupID, student.GroupID) {
		if !auth.IsAdmin(p) {
			return nil, apperrors.NewForbiddenError("only an admin can change a student's group")
		}
		if err := s.ensureGroup(ctx, req.GroupID); err != nil {
			return nil, err
		}
		student.GroupID = req.GroupID
	}

	if req.Login != nil {
		login, err := normalizeLogin(*req.Login)
		if err != nil {
			return nil, err
		}
		if login != student.Login {
			if err := s.ensureLoginFree(ctx, s.studentRepo, login, id); err != nil {
				return nil, err
			}
			student.Login = login
		}
	}

	if req.FullName != nil {
		if student.FullName, err = normalizeName(*req.FullName); err != nil {
			return nil, err
		}
	}

	if req.Password != nil {
		if student.PasswordHash, err = s.hashPassword(*req.Password); err != nil {
			return nil, err
		}
	}

	uploaded, err := s.uploadImage(ctx, image)
	if err != nil {
		return nil, err
	}
	previous := student.Image
	if uploaded != nil {
		student.ImageID = &uploaded.ID
	}

	if err := s.studentRepo.Update(ctx, student); err != nil {
		s.rollbackImage(ctx, uploaded)
		return nil, err
	}
	s.replacedImage(ctx, previous, uploaded)

	s.logger.Info().Int64("studentId", id).Int64("updatedBy", p.UserID).Msg("Student updated")
	return s.studentRepo.GetByID(ctx, id)
}

func (s *studentServiceImpl) DeleteStudent(ctx context.Context, p *auth.Principal, id int64) error {
	if err := auth.RequireAdmin(p); err != nil {
		return err
	}

	removed, err := s.studentRepo.Delete(ctx, id)
	if err != nil {
		return err
	}
	s.afterDelete(ctx, id, removed, models.RoleStudent)

	s.logger.Info().Int64("studentId", id).Int64("deletedBy", p.UserID).Msg("Student deleted")
	return nil
}

func (s *studentServiceImpl) ensureGroup(ctx context.Context, groupID *int64) error {
	if groupID == nil {
		return nil
	}
	exists, err := s.groupRepo.Exists(ctx, *groupID)
	if err != nil {
		return err
	}
	if !exists {
		return apperrors.ErrGroupNotFound
	}
	return nil
}

func equalID(a, b *int64) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
