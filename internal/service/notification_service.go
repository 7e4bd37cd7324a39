package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/lead-intake-service/internal/domain"
	"github.com/spec-kit/lead-intake-service/internal/mail"
	"github.com/spec-kit/lead-intake-service/internal/repository"
)

const (
	prospectSubject = "Thanks for submitting!"
	prospectBody    = "We'll be right with you"

	assigneeSubject = "Someone has submitted!"
	assigneeBody    = "Get to them ASAP"
)

// NotificationService stages email notifications for lead events. Notification
// rows join the caller's open transaction; the gateway call is bounded by a
// hard timeout and its failure never aborts the transaction.
type NotificationService struct {
	notifications repository.NotificationRepository
	gateway       mail.Gateway
	sendTimeout   time.Duration
	logger        *zap.Logger
}

// NewNotificationService creates the service.
func NewNotificationService(notifications repository.NotificationRepository, gateway mail.Gateway, sendTimeout time.Duration, logger *zap.Logger) *NotificationService {
	return &NotificationService{
		notifications: notifications,
		gateway:       gateway,
		sendTimeout:   sendTimeout,
		logger:        logger,
	}
}

// StageNewLeadNotifications always stages the prospect notification and, iff
// the lead has an assignee, the assignee notification.
func (s *NotificationService) StageNewLeadNotifications(ctx context.Context, tx repository.Tx, lead *domain.Lead, assignee *domain.User) ([]domain.EmailNotification, error) {
	repo := s.notifications
	if tx != nil {
		repo = repo.WithTx(tx)
	}

	staged := make([]domain.EmailNotification, 0, 2)

	prospect, err := s.stage(ctx, repo, prospectSubject, prospectBody, lead.Email, lead)
	if err != nil {
		return nil, err
	}
	staged = append(staged, *prospect)

	if assignee != nil {
		notified, err := s.stage(ctx, repo, assigneeSubject, assigneeBody, assignee.Email, lead)
		if err != nil {
			return nil, err
		}
		staged = append(staged, *notified)
	} else {
		s.logger.Warn("no assignee notified for new lead", zap.String("lead_id", lead.ID))
	}

	return staged, nil
}

func (s *NotificationService) stage(ctx context.Context, repo repository.NotificationRepository, subject, body, recipient string, lead *domain.Lead) (*domain.EmailNotification, error) {
	leadID := lead.ID
	notification := &domain.EmailNotification{
		Subject:        subject,
		Body:           body,
		RecipientEmail: recipient,
		LeadID:         &leadID,
	}
	if err := repo.Create(ctx, notification); err != nil {
		return nil, err
	}
	s.attemptSend(ctx, subject, body, recipient)
	return notification, nil
}

// attemptSend hands the message to the gateway. The send happens while the
// intake transaction is still open, so it carries its own deadline and any
// failure is logged rather than propagated.
func (s *NotificationService) attemptSend(ctx context.Context, subject, body, recipient string) {
	sendCtx, cancel := mail.SendTimeoutContext(ctx, s.sendTimeout)
	defer cancel()

	msg := mail.Message{
		Subject:        subject,
		Body:           body,
		RecipientEmail: recipient,
	}
	if err := s.gateway.Send(sendCtx, msg); err != nil {
		s.logger.Warn("mail gateway send failed",
			zap.String("recipient", recipient),
			zap.String("subject", subject),
			zap.Error(err),
		)
	}
}
