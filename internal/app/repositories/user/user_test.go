package user_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/eduadmin/internal/app/models"
	"github.com/yigit/eduadmin/internal/app/repositories"
	"github.com/yigit/eduadmin/internal/app/repositories/user"
	"github.com/yigit/eduadmin/internal/pkg/apperrors"
	"github.com/yigit/eduadmin/internal/testing/testdb"
)

func TestUserRepositoriesIntegration(t *testing.T) {
	pg := testdb.SetupSharedPostgres(t)
	ctx := context.Background()

	admins := user.NewAdminRepository(pg.DB)
	teachers := user.NewTeacherRepository(pg.DB)
	students := user.NewStudentRepository(pg.DB)
	images := repositories.NewImageRepository(pg.DB.Pool)

	t.Run("Admin_CreateThenGet", func(t *testing.T) {
		testdb.CleanupTables(t, pg.DB.Pool, testdb.AllTables...)

		admin := &models.Admin{Login: "root", PasswordHash: "hash", FullName: "Root", Role: models.RoleSuperAdmin}
		require.NoError(t, admins.Create(ctx, admin))

		got, err := admins.GetByID(ctx, admin.ID)
		require.NoError(t, err)
		assert.Equal(t, "root", got.Login)
		assert.Equal(t, models.RoleSuperAdmin, got.Role)
		assert.Nil(t, got.Image)

		creds, err := admins.GetCredentialsByLogin(ctx, "root")
		require.NoError(t, err)
		assert.Equal(t, admin.ID, creds.ID)
		assert.Equal(t, models.RoleSuperAdmin, creds.Role)
	})

	t.Run("DuplicateLoginIsRejected", func(t *testing.T) {
		testdb.CleanupTables(t, pg.DB.Pool, testdb.AllTables...)

		require.NoError(t, teachers.Create(ctx, &models.Teacher{Login: "t1", PasswordHash: "h", FullName: "T"}))
		err := teachers.Create(ctx, &models.Teacher{Login: "t1", PasswordHash: "h", FullName: "T2"})
		assert.ErrorIs(t, err, apperrors.ErrLoginTaken)

		exists, err := teachers.LoginExists(ctx, "t1", 0)
		require.NoError(t, err)
		assert.True(t, exists)

		// the same login in another table is allowed
		require.NoError(t, students.Create(ctx, &models.Student{Login: "t1", PasswordHash: "h", FullName: "S"}))

		creds, err := students.GetCredentialsByLogin(ctx, "t1")
		require.NoError(t, err)
		assert.Equal(t, models.RoleStudent, creds.Role)
	})

	t.Run("MissingGroupIsNotFound", func(t *testing.T) {
		testdb.CleanupTables(t, pg.DB.Pool, testdb.AllTables...)

		missing := int64(404)
		err := students.Create(ctx, &models.Student{Login: "s", PasswordHash: "h", FullName: "S", GroupID: &missing})
		assert.ErrorIs(t, err, apperrors.ErrGroupNotFound)
	})

	t.Run("DeleteRemovesImageRow", func(t *testing.T) {
		testdb.CleanupTables(t, pg.DB.Pool, testdb.AllTables...)

		image := &models.Image{FileName: "a.png", FilePath: "teachers/a.png", FileURL: "http://x/uploads/teachers/a.png", FileSize: 10, MimeType: "image/png"}
		require.NoError(t, images.Create(ctx, image))

		teacher := &models.Teacher{Login: "t", PasswordHash: "h", FullName: "T", ImageID: &image.ID}
		require.NoError(t, teachers.Create(ctx, teacher))

		got, err := teachers.GetByID(ctx, teacher.ID)
		require.NoError(t, err)
		require.NotNil(t, got.Image)
		assert.Equal(t, "teachers/a.png", got.Image.FilePath)

		removed, err := teachers.Delete(ctx, teacher.ID)
		require.NoError(t, err)
		require.NotNil(t, removed)
		assert.Equal(t, image.ID, removed.ID)

		_, err = images.GetByID(ctx, image.ID)
		assert.ErrorIs(t, err, apperrors.ErrImageNotFound)

		_, err = teachers.Delete(ctx, teacher.ID)
		assert.ErrorIs(t, err, apperrors.ErrTeacherNotFound)
	})

	t.Run("UpdateChangesLoginAndKeepsUniqueness", func(t *testing.T) {
		testdb.CleanupTables(t, pg.DB.Pool, testdb.AllTables...)

		a := &models.Admin{Login: "a", PasswordHash: "h", FullName: "A", Role: models.RoleAdmin}
		b := &models.Admin{Login: "b", PasswordHash: "h", FullName: "B", Role: models.RoleAdmin}
		require.NoError(t, admins.Create(ctx, a))
		require.NoError(t, admins.Create(ctx, b))

		b.Login = "a"
		assert.ErrorIs(t, admins.Update(ctx, b), apperrors.ErrLoginTaken)

		b.Login = "bee"
		require.NoError(t, admins.Update(ctx, b))

		list, total, err := admins.List(ctx, models.Page{Limit: 10})
		require.NoError(t, err)
		assert.Equal(t, int64(2), total)
		assert.Equal(t, "bee", list[1].Login)
	})
}
