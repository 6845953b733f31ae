package seed

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	appModels "github.com/yigit/eduadmin/internal/app/models"
	"github.com/yigit/eduadmin/internal/config"
	"github.com/yigit/eduadmin/internal/pkg/auth"
)

// ErrNoSeedPassword is returned when a super admin has to be created but no
// password was configured.
var ErrNoSeedPassword = errors.New("seed super admin password is not configured")

// AdminStore is the part of the admin repository seeding needs
type AdminStore interface {
	Create(ctx context.Context, admin *appModels.Admin) error
	LoginExists(ctx context.Context, login string, excludeID int64) (bool, error)
}

// CreateDefaultData makes sure the configured super admin exists so that the
// first admin accounts can be created through the API.
func CreateDefaultData(ctx context.Context, cfg *config.Config, admins AdminStore, lgr zerolog.Logger) error {
	login := strings.ToLower(strings.TrimSpace(cfg.Seed.SuperAdminLogin))
	if login == "" {
		lgr.Info().Msg("No seed super admin configured, skipping default data")
		return nil
	}

	lgr.Info().Str("login", login).Msg("Checking/Creating default super admin...")

	exists, err := admins.LoginExists(ctx, login, 0)
	if err != nil {
		return fmt.Errorf("failed to check seed super admin: %w", err)
	}
	if exists {
		lgr.Info().Str("login", login).Msg("Super admin already exists")
		return nil
	}

	if cfg.Seed.SuperAdminPassword == "" {
		return ErrNoSeedPassword
	}

	hash, err := auth.HashPassword(cfg.Seed.SuperAdminPassword)
	if err != nil {
		return fmt.Errorf("failed to hash seed password: %w", err)
	}

	name := strings.TrimSpace(cfg.Seed.SuperAdminName)
	if name == "" {
		name = "Super Admin"
	}

	admin := &appModels.Admin{
		Login:        login,
		PasswordHash: hash,
		FullName:     name,
		Role:         appModels.RoleSuperAdmin,
	}
	if err := admins.Create(ctx, admin); err != nil {
		return fmt.Errorf("failed to create seed super admin: %w", err)
	}

	lgr.Info().Int64("adminId", admin.ID).Str("login", login).Msg("Default super admin created")
	return nil
}
