package services

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/yigit/eduadmin/internal/app/auth"
	"github.com/yigit/eduadmin/internal/app/models"
	"github.com/yigit/eduadmin/internal/app/models/dto"
	"github.com/yigit/eduadmin/internal/pkg/apperrors"
	pkgauth "github.com/yigit/eduadmin/internal/pkg/auth"
	"github.com/yigit/eduadmin/internal/pkg/messaging"
	"golang.org/x/crypto/bcrypt"
)

var (
	superAdmin = &auth.Principal{UserID: 1, Role: models.RoleSuperAdmin, Login: "root"}
	plainAdmin = &auth.Principal{UserID: 2, Role: models.RoleAdmin, Login: "admin"}
	teacher7   = &auth.Principal{UserID: 7, Role: models.RoleTeacher, Login: "teacher7"}
	student11  = &auth.Principal{UserID: 11, Role: models.RoleStudent, Login: "student11"}
)

func strPtr(s string) *string { return &s }

func int64Ptr(n int64) *int64 { return &n }

func TestAdminService_CreateAdmin(t *testing.T) {
	ctx := context.Background()
	pkgauth.BcryptCost = bcrypt.MinCost

	t.Run("only super admins", func(t *testing.T) {
		svc := NewAdminService(&mockAdminRepo{}, &mockTokenRepo{}, &mockImageService{}, nil, zerolog.Nop())
		_, err := svc.CreateAdmin(ctx, plainAdmin, &dto.CreateAdminRequest{Login: "x", Password: "Password123", FullName: "X"}, nil)
		assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)

		_, err = svc.CreateAdmin(ctx, nil, &dto.CreateAdminRequest{}, nil)
		assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
	})

	t.Run("duplicate login", func(t *testing.T) {
		repo := &mockAdminRepo{}
		svc := NewAdminService(repo, &mockTokenRepo{}, &mockImageService{}, nil, zerolog.Nop())
		repo.On("LoginExists", ctx, "taken", int64(0)).Return(true, nil)

		_, err := svc.CreateAdmin(ctx, superAdmin, &dto.CreateAdminRequest{Login: "taken", Password: "Password123", FullName: "Taken"}, nil)
		assert.ErrorIs(t, err, apperrors.ErrLoginTaken)
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("defaults role and hashes password", func(t *testing.T) {
		repo := &mockAdminRepo{}
		svc := NewAdminService(repo, &mockTokenRepo{}, &mockImageService{}, nil, zerolog.Nop())
		repo.On("LoginExists", ctx, "new", int64(0)).Return(false, nil)
		repo.On("Create", ctx, mock.MatchedBy(func(a *models.Admin) bool {
			return a.Role == models.RoleAdmin && pkgauth.CheckPassword(a.PasswordHash, "Password123")
		})).Run(func(args mock.Arguments) {
			args.Get(1).(*models.Admin).ID = 42
		}).Return(nil)
		repo.On("GetByID", ctx, int64(42)).Return(&models.Admin{ID: 42, Login: "new", Role: models.RoleAdmin}, nil)

		admin, err := svc.CreateAdmin(ctx, superAdmin, &dto.CreateAdminRequest{Login: "new", Password: "Password123", FullName: "New"}, nil)
		require.NoError(t, err)
		assert.Equal(t, int64(42), admin.ID)
		repo.AssertExpectations(t)
	})

	t.Run("failed insert discards uploaded image", func(t *testing.T) {
		repo := &mockAdminRepo{}
		images := &mockImageService{}
		svc := NewAdminService(repo, &mockTokenRepo{}, images, nil, zerolog.Nop())

		uploaded := &models.Image{ID: 8, FilePath: "images/a.png"}
		file := newTestFileHeader(t, "a.png", pngBytes)
		repo.On("LoginExists", ctx, "new", int64(0)).Return(false, nil)
		images.On("Upload", ctx, file).Return(uploaded, nil)
		repo.On("Create", ctx, mock.Anything).Return(errors.New("boom"))
		images.On("Discard", ctx, uploaded).Return()

		_, err := svc.CreateAdmin(ctx, superAdmin, &dto.CreateAdminRequest{Login: "new", Password: "Password123", FullName: "New"}, file)
		require.Error(t, err)
		images.AssertExpectations(t)
	})
}

func TestAdminService_UpdateAdmin(t *testing.T) {
	ctx := context.Background()

	t.Run("admin cannot update another admin", func(t *testing.T) {
		svc := NewAdminService(&mockAdminRepo{}, &mockTokenRepo{}, &mockImageService{}, nil, zerolog.Nop())
		_, err := svc.UpdateAdmin(ctx, plainAdmin, 3, &dto.UpdateAdminRequest{FullName: strPtr("Other")}, nil)
		assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
	})

	t.Run("admin cannot change own role", func(t *testing.T) {
		repo := &mockAdminRepo{}
		svc := NewAdminService(repo, &mockTokenRepo{}, &mockImageService{}, nil, zerolog.Nop())
		repo.On("GetByID", ctx, int64(2)).Return(&models.Admin{ID: 2, Role: models.RoleAdmin}, nil)

		role := models.RoleSuperAdmin
		_, err := svc.UpdateAdmin(ctx, plainAdmin, 2, &dto.UpdateAdminRequest{Role: &role}, nil)
		assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
	})

	t.Run("image replacement discards the previous image", func(t *testing.T) {
		repo := &mockAdminRepo{}
		images := &mockImageService{}
		svc := NewAdminService(repo, &mockTokenRepo{}, images, nil, zerolog.Nop())

		previous := &models.Image{ID: 4, FilePath: "images/old.png"}
		uploaded := &models.Image{ID: 5, FilePath: "images/new.png"}
		file := newTestFileHeader(t, "new.png", pngBytes)

		repo.On("GetByID", ctx, int64(2)).Return(&models.Admin{ID: 2, Login: "admin", Role: models.RoleAdmin, ImageID: int64Ptr(4), Image: previous}, nil)
		images.On("Upload", ctx, file).Return(uploaded, nil)
		repo.On("Update", ctx, mock.MatchedBy(func(a *models.Admin) bool {
			return a.ImageID != nil && *a.ImageID == 5
		})).Return(nil)
		images.On("Discard", ctx, previous).Return()

		_, err := svc.UpdateAdmin(ctx, plainAdmin, 2, &dto.UpdateAdminRequest{}, file)
		require.NoError(t, err)
		images.AssertExpectations(t)
		images.AssertNotCalled(t, "Discard", ctx, uploaded)
	})
}

func TestAdminService_DeleteAdmin(t *testing.T) {
	ctx := context.Background()

	t.Run("cannot delete self", func(t *testing.T) {
		svc := NewAdminService(&mockAdminRepo{}, &mockTokenRepo{}, &mockImageService{}, nil, zerolog.Nop())
		assert.ErrorIs(t, svc.DeleteAdmin(ctx, superAdmin, superAdmin.UserID), apperrors.ErrPermissionDenied)
	})

	t.Run("removes image file revokes tokens and publishes", func(t *testing.T) {
		repo := &mockAdminRepo{}
		tokens := &mockTokenRepo{}
		images := &mockImageService{}
		publisher := &mockPublisher{}
		svc := NewAdminService(repo, tokens, images, publisher, zerolog.Nop())

		removed := &models.Image{ID: 4, FilePath: "images/a.png"}
		repo.On("GetByID", ctx, int64(2)).Return(&models.Admin{ID: 2, Role: models.RoleAdmin}, nil)
		repo.On("Delete", ctx, int64(2)).Return(removed, nil)
		images.On("RemoveFile", removed).Return()
		tokens.On("RevokeAllForUser", ctx, int64(2), []models.Role{models.RoleAdmin, models.RoleAdmin, models.RoleSuperAdmin}).Return(int64(2), nil)
		publisher.On("Publish", ctx, messaging.SubjectUserDeleted, mock.MatchedBy(func(e messaging.UserDeletedEvent) bool {
			return e.UserID == 2 && e.Role == "admin"
		})).Return(nil)

		require.NoError(t, svc.DeleteAdmin(ctx, superAdmin, 2))
		images.AssertExpectations(t)
		tokens.AssertExpectations(t)
		publisher.AssertExpectations(t)
	})
}

func TestStudentService(t *testing.T) {
	ctx := context.Background()
	pkgauth.BcryptCost = bcrypt.MinCost

	t.Run("signup rejects duplicate login", func(t *testing.T) {
		repo := &mockStudentRepo{}
		svc := NewStudentService(repo, &mockGroupRepo{}, &mockTokenRepo{}, &mockImageService{}, nil, zerolog.Nop())
		repo.On("LoginExists", ctx, "dup", int64(0)).Return(true, nil)

		_, err := svc.Signup(ctx, &dto.SignupStudentRequest{Login: "dup", Password: "Password123", FullName: "Dup"}, nil)
		assert.ErrorIs(t, err, apperrors.ErrLoginTaken)
	})

	t.Run("create with missing group", func(t *testing.T) {
		groups := &mockGroupRepo{}
		svc := NewStudentService(&mockStudentRepo{}, groups, &mockTokenRepo{}, &mockImageService{}, nil, zerolog.Nop())
		groups.On("Exists", ctx, int64(99)).Return(false, nil)

		_, err := svc.CreateStudent(ctx, plainAdmin, &dto.CreateStudentRequest{
			Login: "s1", Password: "Password123", FullName: "S One", GroupID: int64Ptr(99),
		}, nil)
		assert.ErrorIs(t, err, apperrors.ErrGroupNotFound)
		assert.ErrorIs(t, err, apperrors.ErrResourceNotFound)
	})

	t.Run("student cannot update another student", func(t *testing.T) {
		svc := NewStudentService(&mockStudentRepo{}, &mockGroupRepo{}, &mockTokenRepo{}, &mockImageService{}, nil, zerolog.Nop())
		_, err := svc.UpdateStudent(ctx, student11, 12, &dto.UpdateStudentRequest{FullName: strPtr("Hacker")}, nil)
		assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
	})

	t.Run("student cannot change own group", func(t *testing.T) {
		repo := &mockStudentRepo{}
		svc := NewStudentService(repo, &mockGroupRepo{}, &mockTokenRepo{}, &mockImageService{}, nil, zerolog.Nop())
		repo.On("GetByID", ctx, int64(11)).Return(&models.Student{ID: 11, GroupID: int64Ptr(1)}, nil)

		_, err := svc.UpdateStudent(ctx, student11, 11, &dto.UpdateStudentRequest{GroupID: int64Ptr(2)}, nil)
		assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
	})

	t.Run("student updates own name", func(t *testing.T) {
		repo := &mockStudentRepo{}
		svc := NewStudentService(repo, &mockGroupRepo{}, &mockTokenRepo{}, &mockImageService{}, nil, zerolog.Nop())
		repo.On("GetByID", ctx, int64(11)).Return(&models.Student{ID: 11, Login: "student11", FullName: "Old"}, nil).Once()
		repo.On("Update", ctx, mock.MatchedBy(func(s *models.Student) bool { return s.FullName == "New Name" })).Return(nil)
		repo.On("GetByID", ctx, int64(11)).Return(&models.Student{ID: 11, Login: "student11", FullName: "New Name"}, nil).Once()

		student, err := svc.UpdateStudent(ctx, student11, 11, &dto.UpdateStudentRequest{FullName: strPtr("  New Name ")}, nil)
		require.NoError(t, err)
		assert.Equal(t, "New Name", student.FullName)
	})

	t.Run("teacher reads any student, student only itself", func(t *testing.T) {
		repo := &mockStudentRepo{}
		svc := NewStudentService(repo, &mockGroupRepo{}, &mockTokenRepo{}, &mockImageService{}, nil, zerolog.Nop())
		repo.On("GetByID", ctx, int64(12)).Return(&models.Student{ID: 12}, nil)

		_, err := svc.GetStudentByID(ctx, teacher7, 12)
		require.NoError(t, err)

		_, err = svc.GetStudentByID(ctx, student11, 12)
		assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
	})

	t.Run("admin removes student from group", func(t *testing.T) {
		repo := &mockStudentRepo{}
		svc := NewStudentService(repo, &mockGroupRepo{}, &mockTokenRepo{}, &mockImageService{}, nil, zerolog.Nop())
		repo.On("GetByID", ctx, int64(11)).Return(&models.Student{ID: 11, Login: "student11", GroupID: int64Ptr(1), Group: &models.Group{ID: 1}}, nil).Once()
		repo.On("Update", ctx, mock.MatchedBy(func(s *models.Student) bool { return s.GroupID == nil })).Return(nil)
		repo.On("GetByID", ctx, int64(11)).Return(&models.Student{ID: 11, Login: "student11"}, nil).Once()

		student, err := svc.UpdateStudent(ctx, plainAdmin, 11, &dto.UpdateStudentRequest{ClearGroup: true}, nil)
		require.NoError(t, err)
		assert.Nil(t, student.GroupID)
		repo.AssertExpectations(t)
	})

	t.Run("student cannot leave its group", func(t *testing.T) {
		repo := &mockStudentRepo{}
		svc := NewStudentService(repo, &mockGroupRepo{}, &mockTokenRepo{}, &mockImageService{}, nil, zerolog.Nop())
		repo.On("GetByID", ctx, int64(11)).Return(&models.Student{ID: 11, GroupID: int64Ptr(1)}, nil)

		_, err := svc.UpdateStudent(ctx, student11, 11, &dto.UpdateStudentRequest{ClearGroup: true}, nil)
		assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
		repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("clear group conflicts with group id", func(t *testing.T) {
		repo := &mockStudentRepo{}
		svc := NewStudentService(repo, &mockGroupRepo{}, &mockTokenRepo{}, &mockImageService{}, nil, zerolog.Nop())
		repo.On("GetByID", ctx, int64(11)).Return(&models.Student{ID: 11, GroupID: int64Ptr(1)}, nil)

		_, err := svc.UpdateStudent(ctx, plainAdmin, 11, &dto.UpdateStudentRequest{ClearGroup: true, GroupID: int64Ptr(2)}, nil)
		assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
	})

	t.Run("delete cleans up", func(t *testing.T) {
		repo := &mockStudentRepo{}
		tokens := &mockTokenRepo{}
		images := &mockImageService{}
		svc := NewStudentService(repo, &mockGroupRepo{}, tokens, images, messaging.NoopPublisher{}, zerolog.Nop())

		repo.On("Delete", ctx, int64(11)).Return(nil, nil)
		images.On("RemoveFile", (*models.Image)(nil)).Return()
		tokens.On("RevokeAllForUser", ctx, int64(11), []models.Role{models.RoleStudent}).Return(int64(0), nil)

		require.NoError(t, svc.DeleteStudent(ctx, plainAdmin, 11))
		tokens.AssertExpectations(t)

		assert.ErrorIs(t, svc.DeleteStudent(ctx, teacher7, 11), apperrors.ErrPermissionDenied)
	})
}
