package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/spec-kit/lead-intake-service/internal/domain"
)

// LeadFilter captures listing parameters. Filters are conjunctive when both
// are supplied.
type LeadFilter struct {
	Status       *domain.LeadStatus
	AssignedToID *string
}

// LeadRepository encapsulates lead persistence.
type LeadRepository interface {
	Create(ctx context.Context, lead *domain.Lead) error
	GetByID(ctx context.Context, id string) (*domain.Lead, error)
	List(ctx context.Context, filter LeadFilter) ([]domain.Lead, error)
	UpdateStatus(ctx context.Context, id string, status domain.LeadStatus) (*domain.Lead, error)
	WithTx(tx Tx) LeadRepository
}

type leadRepository struct {
	db Querier
}

// NewLeadRepository instantiates repository.
func NewLeadRepository(db Querier) LeadRepository {
	return &leadRepository{db: db}
}

func (r *leadRepository) WithTx(tx Tx) LeadRepository {
	return &leadRepository{db: querierFor(tx, r.db)}
}

func (r *leadRepository) Create(ctx context.Context, lead *domain.Lead) error {
	const query = `
        INSERT INTO leads (first_name, last_name, email, status, resume_id, assigned_to_id)
        VALUES ($1,$2,$3,$4,$5,$6)
        RETURNING id, created_at, updated_at`
	return r.db.QueryRow(ctx, query,
		lead.FirstName,
		lead.LastName,
		lead.Email,
		lead.Status,
		lead.ResumeID,
		lead.AssignedToID,
	).Scan(&lead.ID, &lead.CreatedAt, &lead.UpdatedAt)
}

func (r *leadRepository) GetByID(ctx context.Context, id string) (*domain.Lead, error) {
	const query = `
        SELECT id, first_name, last_name, email, status, resume_id, assigned_to_id, created_at, updated_at
        FROM leads WHERE id=$1`
	var lead domain.Lead
	if err := r.db.QueryRow(ctx, query, id).Scan(
		&lead.ID,
		&lead.FirstName,
		&lead.LastName,
		&lead.Email,
		&lead.Status,
		&lead.ResumeID,
		&lead.AssignedToID,
		&lead.CreatedAt,
		&lead.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &lead, nil
}

func (r *leadRepository) List(ctx context.Context, filter LeadFilter) ([]domain.Lead, error) {
	query := `
        SELECT id, first_name, last_name, email, status, resume_id, assigned_to_id, created_at, updated_at
        FROM leads`
	args := []any{}
	clauses := []string{}

	if filter.Status != nil {
		args = append(args, *filter.Status)
		clauses = append(clauses, fmt.Sprintf("status=$%d", len(args)))
	}
	if filter.AssignedToID != nil {
		args = append(args, *filter.AssignedToID)
		clauses = append(clauses, fmt.Sprintf("assigned_to_id=$%d", len(args)))
	}
	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}
	query += " ORDER BY created_at ASC"

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Lead
	for rows.Next() {
		var lead domain.Lead
		if err := rows.Scan(
			&lead.ID,
			&lead.FirstName,
			&lead.LastName,
			&lead.Email,
			&lead.Status,
			&lead.ResumeID,
			&lead.AssignedToID,
			&lead.CreatedAt,
			&lead.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, lead)
	}
	return result, rows.Err()
}

func (r *leadRepository) UpdateStatus(ctx context.Context, id string, status domain.LeadStatus) (*domain.Lead, error) {
	const query = `
        UPDATE leads SET status=$1, updated_at=NOW()
        WHERE id=$2
        RETURNING id, first_name, last_name, email, status, resume_id, assigned_to_id, created_at, updated_at`
	var lead domain.Lead
	if err := r.db.QueryRow(ctx, query, status, id).Scan(
		&lead.ID,
		&lead.FirstName,
		&lead.LastName,
		&lead.Email,
		&lead.Status,
		&lead.ResumeID,
		&lead.AssignedToID,
		&lead.CreatedAt,
		&lead.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &lead, nil
}
