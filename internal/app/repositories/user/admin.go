package user

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/yigit/eduadmin/internal/app/models"
	"github.com/yigit/eduadmin/internal/db"
	"github.com/yigit/eduadmin/internal/pkg/apperrors"
)

var adminColumns = []string{"a.id", "a.login", "a.password_hash", "a.full_name", "a.role", "a.image_id", "a.created_at", "a.updated_at"}

// AdminRepository handles admin database operations
type AdminRepository struct {
	base
}

// NewAdminRepository creates a new AdminRepository
func NewAdminRepository(database *db.PostgresDB) *AdminRepository {
	return &AdminRepository{base: newBase(database, "admins", apperrors.ErrAdminNotFound)}
}

func (r *AdminRepository) selectAdmins() squirrel.SelectBuilder {
	return r.sb.Select(append(append([]string{}, adminColumns...), joinedImageColumns...)...).
		From("admins a").
		LeftJoin("images i ON i.id = a.image_id")
}

func scanAdmin(row pgx.Row) (*models.Admin, error) {
	admin := &models.Admin{}
	var img imageScan
	dest := append([]interface{}{
		&admin.ID, &admin.Login, &admin.PasswordHash, &admin.FullName,
		&admin.Role, &admin.ImageID, &admin.CreatedAt, &admin.UpdatedAt,
	}, img.dest()...)
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	admin.Image = img.image()
	return admin, nil
}

// Create inserts an admin and fills in ID and timestamps
func (r *AdminRepository) Create(ctx context.Context, admin *models.Admin) error {
	now := time.Now()
	sql, args, err := r.sb.Insert("admins").
		Columns("login", "password_hash", "full_name", "role", "image_id", "created_at", "updated_at").
		Values(admin.Login, admin.PasswordHash, admin.FullName, admin.Role, admin.ImageID, now, now).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create admin query: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&admin.ID, &admin.CreatedAt, &admin.UpdatedAt); err != nil {
		return r.translateWriteError(err, "create admin")
	}
	return nil
}

// GetByID retrieves an admin with its image
func (r *AdminRepository) GetByID(ctx context.Context, id int64) (*models.Admin, error) {
	sql, args, err := r.selectAdmins().Where(squirrel.Eq{"a.id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get admin query: %w", err)
	}

	admin, err := scanAdmin(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrAdminNotFound
		}
		return nil, fmt.Errorf("error retrieving admin: %w", err)
	}
	return admin, nil
}

// List returns one page of admins ordered by ID and the total count
func (r *AdminRepository) List(ctx context.Context, page models.Page) ([]*models.Admin, int64, error) {
	total, err := r.count(ctx, r.sb.Select("COUNT(*)").From("admins"))
	if err != nil {
		return nil, 0, err
	}

	sql, args, err := r.selectAdmins().
		OrderBy("a.id ASC").
		Limit(uint64(page.Limit)).
		Offset(page.Offset).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build list admins query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("error querying admins: %w", err)
	}
	defer rows.Close()

	admins := []*models.Admin{}
	for rows.Next() {
		admin, err := scanAdmin(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("error scanning admin row: %w", err)
		}
		admins = append(admins, admin)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating admin rows: %w", err)
	}

	return admins, total, nil
}

// Update writes every mutable column of admin
func (r *AdminRepository) Update(ctx context.Context, admin *models.Admin) error {
	sql, args, err := r.sb.Update("admins").
		SetMap(map[string]interface{}{
			"login":         admin.Login,
			"password_hash": admin.PasswordHash,
			"full_name":     admin.FullName,
			"role":          admin.Role,
			"image_id":      admin.ImageID,
			"updated_at":    time.Now(),
		}).
		Where(squirrel.Eq{"id": admin.ID}).
		Suffix("RETURNING updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update admin query: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&admin.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.ErrAdminNotFound
		}
		return r.translateWriteError(err, "update admin")
	}
	return nil
}

// Delete removes the admin and its image row, returning the image
func (r *AdminRepository) Delete(ctx context.Context, id int64) (*models.Image, error) {
	return r.DeleteWithImage(ctx, id)
}

// GetCredentialsByLogin is used by login
func (r *AdminRepository) GetCredentialsByLogin(ctx context.Context, login string) (*models.Credentials, error) {
	return r.credentials(ctx, squirrel.Eq{"login": login}, "role")
}

// GetCredentialsByID is used by token refresh
func (r *AdminRepository) GetCredentialsByID(ctx context.Context, id int64) (*models.Credentials, error) {
	return r.credentials(ctx, squirrel.Eq{"id": id}, "role")
}
