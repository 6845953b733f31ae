package filestorage

import (
	"io"
)

// StoredFile describes where an uploaded file ended up
type StoredFile struct {
	// Path is relative to the storage root, e.g. "images/<uuid>.png"
	Path string
	// URL is the public URL the file is served under
	URL  string
	Size int64
}

// FileStorage defines the interface for file storage operations
type FileStorage interface {
	// Save writes src under subPath with a generated name keeping the extension of originalName
	Save(src io.Reader, originalName, subPath string) (*StoredFile, error)

	// DeleteFile removes a file by its stored relative path; missing files are not an error
	DeleteFile(path string) error

	// GetFullPath returns the filesystem path for a stored relative path
	GetFullPath(path string) (string, error)
}
