package seed

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	appModels "github.com/yigit/eduadmin/internal/app/models"
	"github.com/yigit/eduadmin/internal/config"
	"github.com/yigit/eduadmin/internal/pkg/auth"
	"golang.org/x/crypto/bcrypt"
)

type fakeAdmins struct {
	created   []*appModels.Admin
	existing  map[string]bool
	existsErr error
}

func (f *fakeAdmins) Create(_ context.Context, admin *appModels.Admin) error {
	admin.ID = int64(len(f.created) + 1)
	f.created = append(f.created, admin)
	return nil
}

func (f *fakeAdmins) LoginExists(_ context.Context, login string, _ int64) (bool, error) {
	return f.existing[login], f.existsErr
}

func seedConfig(login, password string) *config.Config {
	cfg := &config.Config{}
	cfg.Seed.SuperAdminLogin = login
	cfg.Seed.SuperAdminPassword = password
	return cfg
}

func TestCreateDefaultData(t *testing.T) {
	auth.BcryptCost = bcrypt.MinCost
	t.Cleanup(func() { auth.BcryptCost = 12 })
	ctx := context.Background()

	t.Run("creates the super admin", func(t *testing.T) {
		store := &fakeAdmins{}
		require.NoError(t, CreateDefaultData(ctx, seedConfig(" Root ", "s3cret-pass"), store, zerolog.Nop()))

		require.Len(t, store.created, 1)
		admin := store.created[0]
		assert.Equal(t, "root", admin.Login)
		assert.Equal(t, appModels.RoleSuperAdmin, admin.Role)
		assert.Equal(t, "Super Admin", admin.FullName)
		assert.True(t, auth.CheckPassword(admin.PasswordHash, "s3cret-pass"))
	})

	t.Run("is idempotent", func(t *testing.T) {
		store := &fakeAdmins{existing: map[string]bool{"root": true}}
		require.NoError(t, CreateDefaultData(ctx, seedConfig("root", ""), store, zerolog.Nop()))
		assert.Empty(t, store.created)
	})

	t.Run("skips without a login", func(t *testing.T) {
		store := &fakeAdmins{}
		require.NoError(t, CreateDefaultData(ctx, seedConfig("", "x"), store, zerolog.Nop()))
		assert.Empty(t, store.created)
	})

	t.Run("requires a password for a new admin", func(t *testing.T) {
		err := CreateDefaultData(ctx, seedConfig("root", ""), &fakeAdmins{}, zerolog.Nop())
		assert.ErrorIs(t, err, ErrNoSeedPassword)
	})

	t.Run("propagates lookup errors", func(t *testing.T) {
		store := &fakeAdmins{existsErr: errors.New("db down")}
		assert.Error(t, CreateDefaultData(ctx, seedConfig("root", "pw"), store, zerolog.Nop()))
	})
}
