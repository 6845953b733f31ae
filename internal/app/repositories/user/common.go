package user

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yigit/eduadmin/internal/app/models"
	"github.com/yigit/eduadmin/internal/db"
	"github.com/yigit/eduadmin/internal/pkg/apperrors"
	"github.com/yigit/eduadmin/internal/pkg/dberrors"
	"github.com/yigit/eduadmin/internal/pkg/logger"
)

// joinedImageColumns are read through "LEFT JOIN images i ON i.id = <user>.image_id".
var joinedImageColumns = []string{
	"i.id", "i.file_name", "i.file_path", "i.file_url", "i.file_size", "i.mime_type", "i.created_at",
}

// imageScan receives the nullable columns of a left-joined image.
type imageScan struct {
	id        *int64
	fileName  *string
	filePath  *string
	fileURL   *string
	fileSize  *int64
	mimeType  *string
	createdAt *time.Time
}

func (s *imageScan) dest() []interface{} {
	return []interface{}{&s.id, &s.fileName, &s.filePath, &s.fileURL, &s.fileSize, &s.mimeType, &s.createdAt}
}

func (s *imageScan) image() *models.Image {
	if s.id == nil {
		return nil
	}
	return &models.Image{
		ID:        *s.id,
		FileName:  deref(s.fileName),
		FilePath:  deref(s.filePath),
		FileURL:   deref(s.fileURL),
		FileSize:  derefInt(s.fileSize),
		MimeType:  deref(s.mimeType),
		CreatedAt: derefTime(s.createdAt),
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func derefInt(n *int64) int64 {
	if n == nil {
		return 0
	}
	return *n
}

func derefTime(t *time.Time) time.Time {
	if t == nil {
		return time.Time{}
	}
	return *t
}

// base holds what every user table repository shares.
type base struct {
	database *db.PostgresDB
	db       *pgxpool.Pool
	sb       squirrel.StatementBuilderType
	table    string
	loginKey string
	notFound error
}

func newBase(database *db.PostgresDB, table string, notFound error) base {
	return base{
		database: database,
		db:       database.Pool,
		sb:       squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
		table:    table,
		loginKey: table + "_login_key",
		notFound: notFound,
	}
}

// LoginExists checks whether login is used by a row other than excludeID.
func (b *base) LoginExists(ctx context.Context, login string, excludeID int64) (bool, error) {
	where := squirrel.And{squirrel.Eq{"login": login}}
	if excludeID > 0 {
		where = append(where, squirrel.NotEq{"id": excludeID})
	}

	sql, args, err := b.sb.Select("1").
		From(b.table).
		Where(where).
		Prefix("SELECT EXISTS (").
		Suffix(")").
		ToSql()
	if err != nil {
		return false, fmt.Errorf("failed to build login exists query: %w", err)
	}

	var exists bool
	if err := b.db.QueryRow(ctx, sql, args...).Scan(&exists); err != nil {
		logger.Error().Err(err).Str("table", b.table).Msg("Error checking login existence")
		return false, fmt.Errorf("error checking login existence: %w", err)
	}

	return exists, nil
}

// translateWriteError maps constraint violations of an insert or update.
func (b *base) translateWriteError(err error, action string) error {
	switch {
	case dberrors.IsDuplicateConstraintError(err, b.loginKey):
		return apperrors.ErrLoginTaken
	case dberrors.IsForeignKeyError(err, b.table+"_image_id_fkey"):
		return apperrors.ErrImageNotFound
	case dberrors.IsForeignKeyError(err, b.table+"_group_id_fkey"):
		return apperrors.ErrGroupNotFound
	}
	logger.Error().Err(err).Str("table", b.table).Msg("Error executing " + action + " query")
	return fmt.Errorf("error executing %s: %w", action, err)
}

// DeleteWithImage removes the user and its image row in one transaction and
// returns the removed image so the caller can delete the file.
func (b *base) DeleteWithImage(ctx context.Context, id int64) (*models.Image, error) {
	var removed *models.Image

	err := b.database.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		sql, args, err := b.sb.Delete(b.table).
			Where(squirrel.Eq{"id": id}).
			Suffix("RETURNING image_id").
			ToSql()
		if err != nil {
			return fmt.Errorf("failed to build delete query: %w", err)
		}

		var imageID *int64
		if err := tx.QueryRow(ctx, sql, args...).Scan(&imageID); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return b.notFound
			}
			return fmt.Errorf("error deleting from %s: %w", b.table, err)
		}

		if imageID == nil {
			return nil
		}

		sql, args, err = b.sb.Delete("images").
			Where(squirrel.Eq{"id": *imageID}).
			Suffix("RETURNING id, file_name, file_path, file_url, file_size, mime_type, created_at").
			ToSql()
		if err != nil {
			return fmt.Errorf("failed to build delete image query: %w", err)
		}

		image := &models.Image{}
		err = tx.QueryRow(ctx, sql, args...).Scan(
			&image.ID, &image.FileName, &image.FilePath, &image.FileURL,
			&image.FileSize, &image.MimeType, &image.CreatedAt,
		)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil
			}
			return fmt.Errorf("error deleting image: %w", err)
		}
		removed = image
		return nil
	})
	if err != nil {
		return nil, err
	}

	return removed, nil
}

// count runs SELECT COUNT(*) for a prepared builder.
func (b *base) count(ctx context.Context, builder squirrel.SelectBuilder) (int64, error) {
	sql, args, err := builder.ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build count query: %w", err)
	}

	var total int64
	if err := b.db.QueryRow(ctx, sql, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("error counting %s: %w", b.table, err)
	}
	return total, nil
}

func (b *base) credentials(ctx context.Context, where squirrel.Sqlizer, roleColumn string) (*models.Credentials, error) {
	sql, args, err := b.sb.Select("id", "login", "password_hash", roleColumn).
		From(b.table).
		Where(where).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build credentials query: %w", err)
	}

	creds := &models.Credentials{}
	err = b.db.QueryRow(ctx, sql, args...).Scan(&creds.ID, &creds.Login, &creds.PasswordHash, &creds.Role)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, b.notFound
		}
		return nil, fmt.Errorf("error retrieving credentials: %w", err)
	}

	return creds, nil
}
