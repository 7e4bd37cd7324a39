package repository

import (
	"context"

	"github.com/spec-kit/lead-intake-service/internal/domain"
)

// NotificationRepository persists the append-only audit of attempted sends.
type NotificationRepository interface {
	Create(ctx context.Context, notification *domain.EmailNotification) error
	ListByLead(ctx context.Context, leadID string) ([]domain.EmailNotification, error)
	WithTx(tx Tx) NotificationRepository
}

type notificationRepository struct {
	db Querier
}

// NewNotificationRepository constructs repository.
func NewNotificationRepository(db Querier) NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) WithTx(tx Tx) NotificationRepository {
	return &notificationRepository{db: querierFor(tx, r.db)}
}

func (r *notificationRepository) Create(ctx context.Context, notification *domain.EmailNotification) error {
	const query = `
        INSERT INTO email_notifications (subject, body, recipient_email, lead_id)
        VALUES ($1,$2,$3,$4)
        RETURNING id, created_at`
	return r.db.QueryRow(ctx, query,
		notification.Subject,
		notification.Body,
		notification.RecipientEmail,
		notification.LeadID,
	).Scan(&notification.ID, &notification.CreatedAt)
}

func (r *notificationRepository) ListByLead(ctx context.Context, leadID string) ([]domain.EmailNotification, error) {
	const query = `
        SELECT id, subject, body, recipient_email, lead_id, created_at
        FROM email_notifications WHERE lead_id=$1
        ORDER BY created_at ASC`
	rows, err := r.db.Query(ctx, query, leadID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.EmailNotification
	for rows.Next() {
		var notification domain.EmailNotification
		if err := rows.Scan(
			&notification.ID,
			&notification.Subject,
			&notification.Body,
			&notification.RecipientEmail,
			&notification.LeadID,
			&notification.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, notification)
	}
	return result, rows.Err()
}
