package storage

import (
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/lead-intake-service/internal/domain"
)

// ErrNotFound signals that a document record resolved but its underlying file
// did not. Distinct from a plain lookup miss so callers can spot store
// corruption.
var ErrNotFound = errors.New("document file not found")

// Handle describes a persisted file that has not yet been committed to the
// record store. The caller decides whether to commit it.
type Handle struct {
	ID               string
	OriginalFilename string
	LocalPath        string
	DocumentType     domain.DocumentType
	UploadedAt       time.Time
}

// Document materializes the handle as an uncommitted record.
func (h *Handle) Document() *domain.Document {
	return &domain.Document{
		ID:               h.ID,
		OriginalFilename: h.OriginalFilename,
		LocalPath:        h.LocalPath,
		DocumentType:     h.DocumentType,
		UploadedAt:       h.UploadedAt,
	}
}

// DocumentStore persists uploaded files under an injected root directory.
// Saves files locally for now; a production deployment would swap this for S3
// or equivalent.
type DocumentStore struct {
	root   string
	logger *zap.Logger
}

// NewDocumentStore ensures the upload root exists.
func NewDocumentStore(root string, logger *zap.Logger) (*DocumentStore, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, err
	}
	return &DocumentStore{root: root, logger: logger}, nil
}

// Persist copies the stream to a path derived from a fresh identity plus the
// original extension. The write is outside any record-store transaction and
// must be compensated by Remove if later steps fail.
func (s *DocumentStore) Persist(src io.Reader, originalName string) (*Handle, error) {
	id := uuid.NewString()
	ext := filepath.Ext(originalName)
	path := filepath.Join(s.root, id+ext)

	dst, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	if _, err := io.Copy(dst, src); err != nil {
		_ = dst.Close()
		_ = os.Remove(path)
		return nil, err
	}
	if err := dst.Close(); err != nil {
		_ = os.Remove(path)
		return nil, err
	}

	return &Handle{
		ID:               id,
		OriginalFilename: originalName,
		LocalPath:        path,
		DocumentType:     domain.DocumentTypeResume,
		UploadedAt:       time.Now().UTC(),
	}, nil
}

// Remove deletes the file behind the handle. Used as compensation after a
// failed intake; a missing file is not an error so cleanup stays idempotent.
func (s *DocumentStore) Remove(handle *Handle) error {
	if handle == nil {
		return nil
	}
	if err := os.Remove(handle.LocalPath); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

// Read returns the full byte content at the given storage path. Returns
// ErrNotFound when the file is absent.
func (s *DocumentStore) Read(path string) ([]byte, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return content, nil
}
