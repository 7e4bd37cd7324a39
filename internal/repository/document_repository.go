package repository

import (
	"context"

	"github.com/spec-kit/lead-intake-service/internal/domain"
)

// DocumentRepository persists document metadata. Document identities are
// generated by the document store, so inserts carry an explicit id.
type DocumentRepository interface {
	Create(ctx context.Context, doc *domain.Document) error
	GetByID(ctx context.Context, id string) (*domain.Document, error)
	WithTx(tx Tx) DocumentRepository
}

type documentRepository struct {
	db Querier
}

// NewDocumentRepository constructs repository.
func NewDocumentRepository(db Querier) DocumentRepository {
	return &documentRepository{db: db}
}

func (r *documentRepository) WithTx(tx Tx) DocumentRepository {
	return &documentRepository{db: querierFor(tx, r.db)}
}

func (r *documentRepository) Create(ctx context.Context, doc *domain.Document) error {
	const query = `
        INSERT INTO documents (id, original_filename, local_path, s3_key, document_type, uploaded_at)
        VALUES ($1,$2,$3,$4,$5,$6)
        RETURNING created_at, updated_at`
	return r.db.QueryRow(ctx, query,
		doc.ID,
		doc.OriginalFilename,
		doc.LocalPath,
		doc.S3Key,
		doc.DocumentType,
		doc.UploadedAt,
	).Scan(&doc.CreatedAt, &doc.UpdatedAt)
}

func (r *documentRepository) GetByID(ctx context.Context, id string) (*domain.Document, error) {
	const query = `
        SELECT id, original_filename, local_path, s3_key, document_type, uploaded_at, created_at, updated_at
        FROM documents WHERE id=$1`
	var doc domain.Document
	if err := r.db.QueryRow(ctx, query, id).Scan(
		&doc.ID,
		&doc.OriginalFilename,
		&doc.LocalPath,
		&doc.S3Key,
		&doc.DocumentType,
		&doc.UploadedAt,
		&doc.CreatedAt,
		&doc.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &doc, nil
}
