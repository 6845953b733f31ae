package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yigit/eduadmin/internal/app/models"
	"github.com/yigit/eduadmin/internal/pkg/apperrors"
	"github.com/yigit/eduadmin/internal/pkg/logger"
)

var imageColumns = []string{"id", "file_name", "file_path", "file_url", "file_size", "mime_type", "created_at"}

// ImageRepository handles database operations for uploaded images
type ImageRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewImageRepository creates a new ImageRepository
func NewImageRepository(db *pgxpool.Pool) *ImageRepository {
	return &ImageRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Create inserts image metadata and fills in its ID and CreatedAt
func (r *ImageRepository) Create(ctx context.Context, image *models.Image) error {
	sql, args, err := r.sb.Insert("images").
		Columns("file_name", "file_path", "file_url", "file_size", "mime_type").
		Values(image.FileName, image.FilePath, image.FileURL, image.FileSize, image.MimeType).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create image query: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&image.ID, &image.CreatedAt); err != nil {
		logger.Error().Err(err).Str("path", image.FilePath).Msg("Error creating image")
		return fmt.Errorf("error creating image: %w", err)
	}

	return nil
}

// GetByID retrieves an image by ID
func (r *ImageRepository) GetByID(ctx context.Context, id int64) (*models.Image, error) {
	sql, args, err := r.sb.Select(imageColumns...).
		From("images").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get image query: %w", err)
	}

	image := &models.Image{}
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&image.ID,
		&image.FileName,
		&image.FilePath,
		&image.FileURL,
		&image.FileSize,
		&image.MimeType,
		&image.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrImageNotFound
		}
		return nil, fmt.Errorf("error getting image: %w", err)
	}

	return image, nil
}

// Delete removes image metadata. Users pointing at it get image_id = NULL.
func (r *ImageRepository) Delete(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Delete("images").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete image query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error deleting image: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrImageNotFound
	}

	return nil
}
