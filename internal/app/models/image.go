package models

import "time"

// Image is an uploaded profile picture. Users point at it through image_id.
type Image struct {
	ID        int64     `json:"id" db:"id"`
	FileName  string    `json:"fileName" db:"file_name"`
	FilePath  string    `json:"filePath" db:"file_path"`
	FileURL   string    `json:"fileUrl" db:"file_url"`
	FileSize  int64     `json:"fileSize" db:"file_size"`
	MimeType  string    `json:"mimeType" db:"mime_type"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}
