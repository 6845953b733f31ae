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

// AdminService defines the interface for admin operations
type AdminService interface {
	CreateAdmin(ctx context.Context, p *auth.Principal, req *dto.CreateAdminRequest, image *multipart.FileHeader) (*models.Admin, error)
	GetAdmins(ctx context.Context, p *auth.Principal, page, size int) ([]*models.Admin, int64, error)
	GetAdminByID(ctx context.Context, p *auth.Principal, id int64) (*models.Admin, error)
	UpdateAdmin(ctx context.Context, p *auth.Principal, id int64, req *dto.UpdateAdminRequest, image *multipart.FileHeader) (*models.Admin, error)
	DeleteAdmin(ctx context.Context, p *auth.Principal, id int64) error
}

// adminServiceImpl implements AdminService
type adminServiceImpl struct {
	userSupport
	adminRepo AdminRepository
}

// NewAdminService creates a new AdminService
func NewAdminService(
	adminRepo AdminRepository,
	tokenRepo TokenRepository,
	imageService ImageService,
	publisher messaging.Publisher,
	logger zerolog.Logger,
) AdminService {
	return &adminServiceImpl{
		userSupport: newUserSupport(imageService, tokenRepo, publisher, logger),
		adminRepo:   adminRepo,
	}
}

// CreateAdmin is reserved for super admins. The role defaults to admin.
func (s *adminServiceImpl) CreateAdmin(ctx context.Context, p *auth.Principal, req *dto.CreateAdminRequest, image *multipart.FileHeader) (*models.Admin, error) {
	if err := auth.RequireSuperAdmin(p); err != nil {
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

	role := req.Role
	if role == "" {
		role = models.RoleAdmin
	}
	if !role.IsAdmin() {
		return nil, fmt.Errorf("%w: role must be admin or super_admin", apperrors.ErrValidationFailed)
	}

	if err := s.ensureLoginFree(ctx, s.adminRepo, login, 0); err != nil {
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

	admin := &models.Admin{
		Login:        login,
		PasswordHash: passwordHash,
		FullName:     fullName,
		Role:         role,
	}
	if uploaded != nil {
		admin.ImageID = &uploaded.ID
	}

	if err := s.adminRepo.Create(ctx, admin); err != nil {
		s.rollbackImage(ctx, uploaded)
		return nil, err
	}

	s.logger.Info().
		Int64("adminId", admin.ID).
		Str("role", string(admin.Role)).
		Int64("createdBy", p.UserID).
		Msg("Admin created")

	return s.adminRepo.GetByID(ctx, admin.ID)
}

func (s *adminServiceImpl) GetAdmins(ctx context.Context, p *auth.Principal, page, size int) ([]*models.Admin, int64, error) {
	if err := auth.RequireAdmin(p); err != nil {
		return nil, 0, err
	}
	return s.adminRepo.List(ctx, helpers.CalculateOffsetLimit(page, size))
}

func (s *adminServiceImpl) GetAdminByID(ctx context.Context, p *auth.Principal, id int64) (*models.Admin, error) {
	if err := auth.RequireSelfOrSuperAdmin(p, models.RoleAdmin, id); err != nil {
		return nil, err
	}
	return s.adminRepo.GetByID(ctx, id)
}

// UpdateAdmin lets admins edit themselves; super admins may edit anyone and
// are the only ones allowed to change a role.
func (s *adminServiceImpl) UpdateAdmin(ctx context.Context, p *auth.Principal, id int64, req *dto.UpdateAdminRequest, image *multipart.FileHeader) (*models.Admin, error) {
	if err := auth.RequireSelfOrSuperAdmin(p, models.RoleAdmin, id); err != nil {
		return nil, err
	}

	admin, err := s.adminRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Role != nil && *req.Role != admin.Role {
		if err := auth.RequireSuperAdmin(p); err != nil {
			return nil, err
		}
		if auth.IsUserSelf(p, models.RoleAdmin, id) {
			return nil, apperrors.NewForbiddenError("you cannot change your own role")
		}
		if !req.Role.IsAdmin() {
			return nil, fmt.Errorf("%w: role must be admin or super_admin", apperrors.ErrValidationFailed)
		}
		admin.Role = *req.Role
	}

	if req.Login != nil {
		login, err := normalizeLogin(*req.Login)
		if err != nil {
			return nil, err
		}
		if login != admin.Login {
			if err := s.ensureLoginFree(ctx, s.adminRepo, login, id); err != nil {
				return nil, err
			}
			admin.Login = login
		}
	}

	if req.FullName != nil {
		if admin.FullName, err = normalizeName(*req.FullName); err != nil {
			return nil, err
		}
	}

	if req.Password != nil {
		if admin.PasswordHash, err = s.hashPassword(*req.Password); err != nil {
			return nil, err
		}
	}

	uploaded, err := s.uploadImage(ctx, image)
	if err != nil {
		return nil, err
	}
	previous := admin.Image
	if uploaded != nil {
		admin.ImageID = &uploaded.ID
	}

	if err := s.adminRepo.Update(ctx, admin); err != nil {
		s.rollbackImage(ctx, uploaded)
		return nil, err
	}
	s.replacedImage(ctx, previous, uploaded)

	s.logger.Info().Int64("adminId", id).Int64("updatedBy", p.UserID).Msg("Admin updated")
	return s.adminRepo.GetByID(ctx, id)
}

// DeleteAdmin removes another admin; nobody can delete their own account.
func (s *adminServiceImpl) DeleteAdmin(ctx context.Context, p *auth.Principal, id int64) error {
	if err := auth.RequireSuperAdmin(p); err != nil {
		return err
	}
	if p.UserID == id {
		return apperrors.NewForbiddenError("you cannot delete your own account")
	}

	admin, err := s.adminRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	removed, err := s.adminRepo.Delete(ctx, id)
	if err != nil {
		return err
	}
	s.afterDelete(ctx, id, removed, admin.Role, models.RoleAdmin, models.RoleSuperAdmin)

	s.logger.Info().Int64("adminId", id).Int64("deletedBy", p.UserID).Msg("Admin deleted")
	return nil
}
