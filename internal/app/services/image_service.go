package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/yigit/eduadmin/internal/app/models"
	"github.com/yigit/eduadmin/internal/pkg/apperrors"
	"github.com/yigit/eduadmin/internal/pkg/filestorage"
)

const imagesSubPath = "images"

// sniffLen is how many bytes http.DetectContentType looks at
const sniffLen = 512

var allowedImageTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
	"image/gif":  ".gif",
}

// ImageService stores uploaded profile pictures and removes them again
type ImageService interface {
	GetImageByID(ctx context.Context, id int64) (*models.Image, error)
	// Upload validates the file, writes it to storage and records its metadata
	Upload(ctx context.Context, file *multipart.FileHeader) (*models.Image, error)
	// Discard removes the image row and the stored file; failures are logged
	Discard(ctx context.Context, image *models.Image)
	// RemoveFile deletes only the stored file of an image whose row is already gone
	RemoveFile(image *models.Image)
}

type imageServiceImpl struct {
	imageRepo   ImageRepository
	fileStorage filestorage.FileStorage
	maxBytes    int64
	logger      zerolog.Logger
}

// NewImageService creates a new ImageService
func NewImageService(
	imageRepo ImageRepository,
	fileStorage filestorage.FileStorage,
	maxBytes int64,
	logger zerolog.Logger,
) ImageService {
	return &imageServiceImpl{
		imageRepo:   imageRepo,
		fileStorage: fileStorage,
		maxBytes:    maxBytes,
		logger:      logger,
	}
}

func (s *imageServiceImpl) GetImageByID(ctx context.Context, id int64) (*models.Image, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: invalid image ID", apperrors.ErrValidationFailed)
	}
	return s.imageRepo.GetByID(ctx, id)
}

func (s *imageServiceImpl) Upload(ctx context.Context, file *multipart.FileHeader) (*models.Image, error) {
	if file == nil {
		return nil, apperrors.NewCustomError(apperrors.ErrInvalidFile, "image file is required")
	}
	if file.Size > s.maxBytes {
		return nil, apperrors.NewCustomError(apperrors.ErrInvalidFile,
			fmt.Sprintf("image exceeds the maximum size of %d bytes", s.maxBytes))
	}

	src, err := file.Open()
	if err != nil {
		s.logger.Error().Err(err).Str("filename", file.Filename).Msg("Failed to open uploaded file")
		return nil, fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	head := make([]byte, sniffLen)
	n, err := io.ReadFull(src, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to read uploaded file: %w", err)
	}
	head = head[:n]
	if n == 0 {
		return nil, apperrors.NewCustomError(apperrors.ErrInvalidFile, "image file is empty")
	}

	mimeType := http.DetectContentType(head)
	ext, ok := allowedImageTypes[mimeType]
	if !ok {
		return nil, apperrors.NewCustomError(apperrors.ErrInvalidFile,
			"unsupported image type "+mimeType+"; allowed: jpeg, png, webp, gif")
	}

	// The declared size comes from the client, so the stored size is checked too.
	body := io.LimitReader(io.MultiReader(bytes.NewReader(head), src), s.maxBytes+1)
	stored, err := s.fileStorage.Save(body, "image"+ext, imagesSubPath)
	if err != nil {
		return nil, fmt.Errorf("failed to store image: %w", err)
	}
	if stored.Size > s.maxBytes {
		s.deleteFile(stored.Path)
		return nil, apperrors.NewCustomError(apperrors.ErrInvalidFile,
			fmt.Sprintf("image exceeds the maximum size of %d bytes", s.maxBytes))
	}

	image := &models.Image{
		FileName: filepath.Base(file.Filename),
		FilePath: stored.Path,
		FileURL:  stored.URL,
		FileSize: stored.Size,
		MimeType: mimeType,
	}
	if err := s.imageRepo.Create(ctx, image); err != nil {
		s.deleteFile(stored.Path)
		return nil, fmt.Errorf("failed to save image metadata: %w", err)
	}

	s.logger.Info().Int64("imageId", image.ID).Str("path", image.FilePath).Msg("Image uploaded")
	return image, nil
}

func (s *imageServiceImpl) Discard(ctx context.Context, image *models.Image) {
	if image == nil {
		return
	}
	if err := s.imageRepo.Delete(ctx, image.ID); err != nil && !errors.Is(err, apperrors.ErrResourceNotFound) {
		s.logger.Error().Err(err).Int64("imageId", image.ID).Msg("Failed to delete image record")
	}
	s.deleteFile(image.FilePath)
}

func (s *imageServiceImpl) RemoveFile(image *models.Image) {
	if image == nil {
		return
	}
	s.deleteFile(image.FilePath)
}

func (s *imageServiceImpl) deleteFile(path string) {
	if path == "" {
		return
	}
	if err := s.fileStorage.DeleteFile(path); err != nil {
		s.logger.Error().Err(err).Str("path", path).Msg("Failed to delete image file")
	}
}
