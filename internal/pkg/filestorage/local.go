package filestorage

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/yigit/eduadmin/internal/pkg/logger"
)

// ErrInvalidPath is returned for paths that escape the storage root
var ErrInvalidPath = errors.New("invalid file path")

// LocalStorage handles saving files to the local filesystem.
type LocalStorage struct {
	basePath string
	baseURL  string
}

// NewLocalStorage creates the storage root if needed. baseURL is the prefix
// the root is served under (see the /uploads static route).
func NewLocalStorage(basePath, baseURL string) (*LocalStorage, error) {
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		logger.Error().Err(err).Str("path", basePath).Msg("Failed to create storage directory")
		return nil, fmt.Errorf("failed to create storage directory %s: %w", basePath, err)
	}
	logger.Info().Str("path", basePath).Msg("Local storage directory ensured")

	return &LocalStorage{
		basePath: basePath,
		baseURL:  strings.TrimRight(baseURL, "/"),
	}, nil
}

// Save copies src into basePath/subPath under a uuid name
func (ls *LocalStorage) Save(src io.Reader, originalName, subPath string) (*StoredFile, error) {
	dir := ls.basePath
	if subPath != "" {
		dir = filepath.Join(ls.basePath, filepath.Clean(subPath))
		if err := os.MkdirAll(dir, 0o755); err != nil {
			logger.Error().Err(err).Str("path", dir).Msg("Failed to create subdirectory")
			return nil, fmt.Errorf("failed to create subdirectory: %w", err)
		}
	}

	uniqueName := uuid.New().String() + strings.ToLower(filepath.Ext(originalName))
	dstPath := filepath.Join(dir, uniqueName)

	dst, err := os.Create(dstPath)
	if err != nil {
		logger.Error().Err(err).Str("path", dstPath).Msg("Failed to create destination file")
		return nil, fmt.Errorf("failed to create destination file: %w", err)
	}
	defer dst.Close()

	written, err := io.Copy(dst, src)
	if err != nil {
		logger.Error().Err(err).Str("path", dstPath).Msg("Failed to copy uploaded file content")
		_ = os.Remove(dstPath)
		return nil, fmt.Errorf("failed to save file content: %w", err)
	}

	relPath := path.Join(filepath.ToSlash(subPath), uniqueName)
	stored := &StoredFile{
		Path: relPath,
		URL:  ls.baseURL + "/" + relPath,
		Size: written,
	}

	logger.Info().Str("filename", originalName).Str("saved_as", relPath).Msg("File saved successfully")
	return stored, nil
}

// DeleteFile removes a stored file. Deleting a file that does not exist succeeds.
func (ls *LocalStorage) DeleteFile(relPath string) error {
	if relPath == "" {
		return nil
	}

	fullPath, err := ls.GetFullPath(relPath)
	if err != nil {
		return err
	}

	if err := os.Remove(fullPath); err != nil {
		if os.IsNotExist(err) {
			logger.Warn().Str("path", fullPath).Msg("File to delete does not exist")
			return nil
		}
		logger.Error().Err(err).Str("path", fullPath).Msg("Failed to delete file")
		return fmt.Errorf("failed to delete file: %w", err)
	}

	logger.Info().Str("path", fullPath).Msg("File deleted successfully")
	return nil
}

// GetFullPath resolves a stored relative path inside the storage root
func (ls *LocalStorage) GetFullPath(relPath string) (string, error) {
	cleaned := filepath.Clean(filepath.FromSlash(relPath))
	if cleaned == "." || filepath.IsAbs(cleaned) || cleaned == ".." || strings.HasPrefix(cleaned, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: %s", ErrInvalidPath, relPath)
	}
	return filepath.Join(ls.basePath, cleaned), nil
}
