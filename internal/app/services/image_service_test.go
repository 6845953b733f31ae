package services

import (
	"bytes"
	"context"
	"errors"
	"mime/multipart"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/yigit/eduadmin/internal/app/models"
	"github.com/yigit/eduadmin/internal/pkg/apperrors"
	"github.com/yigit/eduadmin/internal/pkg/filestorage"
)

var pngBytes = append([]byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR"), bytes.Repeat([]byte{0}, 64)...)

func newTestFileHeader(t *testing.T, name string, content []byte) *multipart.FileHeader {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("image", name)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	form, err := multipart.NewReader(body, writer.Boundary()).ReadForm(1 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { _ = form.RemoveAll() })
	return form.File["image"][0]
}

func TestImageService_Upload(t *testing.T) {
	ctx := context.Background()

	t.Run("stores png with sniffed type", func(t *testing.T) {
		repo := &mockImageRepo{}
		storage := &mockFileStorage{}
		svc := NewImageService(repo, storage, 1024, zerolog.Nop())

		storage.On("Save", "image.png", "images").
			Return(&filestorage.StoredFile{Path: "images/x.png", URL: "http://host/uploads/images/x.png"}, nil)
		repo.On("Create", ctx, mock.MatchedBy(func(img *models.Image) bool {
			return img.MimeType == "image/png" && img.FileName == "avatar.jpg" && img.FileSize == int64(len(pngBytes))
		})).Run(func(args mock.Arguments) {
			args.Get(1).(*models.Image).ID = 3
		}).Return(nil)

		image, err := svc.Upload(ctx, newTestFileHeader(t, "avatar.jpg", pngBytes))
		require.NoError(t, err)
		assert.Equal(t, int64(3), image.ID)
		assert.Equal(t, "images/x.png", image.FilePath)
		repo.AssertExpectations(t)
	})

	t.Run("rejects non image content", func(t *testing.T) {
		storage := &mockFileStorage{}
		svc := NewImageService(&mockImageRepo{}, storage, 1024, zerolog.Nop())

		_, err := svc.Upload(ctx, newTestFileHeader(t, "evil.png", []byte("<html><script>alert(1)</script></html>")))
		assert.ErrorIs(t, err, apperrors.ErrInvalidFile)
		storage.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("rejects oversized file", func(t *testing.T) {
		svc := NewImageService(&mockImageRepo{}, &mockFileStorage{}, 16, zerolog.Nop())
		_, err := svc.Upload(ctx, newTestFileHeader(t, "big.png", pngBytes))
		assert.ErrorIs(t, err, apperrors.ErrInvalidFile)
	})

	t.Run("metadata failure removes stored file", func(t *testing.T) {
		repo := &mockImageRepo{}
		storage := &mockFileStorage{}
		svc := NewImageService(repo, storage, 1024, zerolog.Nop())

		storage.On("Save", "image.png", "images").Return(&filestorage.StoredFile{Path: "images/y.png"}, nil)
		repo.On("Create", ctx, mock.Anything).Return(errors.New("db down"))
		storage.On("DeleteFile", "images/y.png").Return(nil)

		_, err := svc.Upload(ctx, newTestFileHeader(t, "y.png", pngBytes))
		require.Error(t, err)
		storage.AssertExpectations(t)
	})

	t.Run("missing file", func(t *testing.T) {
		svc := NewImageService(&mockImageRepo{}, &mockFileStorage{}, 1024, zerolog.Nop())
		_, err := svc.Upload(ctx, nil)
		assert.ErrorIs(t, err, apperrors.ErrInvalidFile)
	})
}

func TestImageService_Discard(t *testing.T) {
	ctx := context.Background()
	repo := &mockImageRepo{}
	storage := &mockFileStorage{}
	svc := NewImageService(repo, storage, 1024, zerolog.Nop())

	image := &models.Image{ID: 5, FilePath: "images/z.png"}
	repo.On("Delete", ctx, int64(5)).Return(apperrors.ErrImageNotFound)
	storage.On("DeleteFile", "images/z.png").Return(nil)

	svc.Discard(ctx, image)
	svc.Discard(ctx, nil)
	repo.AssertExpectations(t)
	storage.AssertExpectations(t)
}
