package domain

import "time"

// DocumentType classifies stored documents.
type DocumentType string

const (
	DocumentTypeResume DocumentType = "RESUME"
)

// Document models a stored file and its metadata. A Document row must never
// exist without a retrievable byte stream at LocalPath, and vice versa.
type Document struct {
	ID               string
	OriginalFilename string
	LocalPath        string
	S3Key            *string
	DocumentType     DocumentType
	UploadedAt       time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
