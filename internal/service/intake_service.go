package service

import (
	"context"
	"io"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/lead-intake-service/internal/domain"
	"github.com/spec-kit/lead-intake-service/internal/events"
	"github.com/spec-kit/lead-intake-service/internal/repository"
	"github.com/spec-kit/lead-intake-service/internal/storage"
	apperrors "github.com/spec-kit/lead-intake-service/pkg/util"
)

// IntakeService coordinates lead creation: the file write lives outside the
// record-store transaction, so a failure after the write is compensated by
// removing the file before the original error propagates.
type IntakeService struct {
	txManager  repository.TxManager
	leads      repository.LeadRepository
	documents  repository.DocumentRepository
	store      *storage.DocumentStore
	assigner   *AssignmentService
	stager     *NotificationService
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// IntakeDependencies bundles collaborators for the intake service.
type IntakeDependencies struct {
	TxManager     repository.TxManager
	LeadRepo      repository.LeadRepository
	DocumentRepo  repository.DocumentRepository
	DocumentStore *storage.DocumentStore
	Assignment    *AssignmentService
	Notifications *NotificationService
	Dispatcher    events.Dispatcher
}

// LeadCreateInput describes validated intake fields.
type LeadCreateInput struct {
	FirstName string
	LastName  string
	Email     string
}

// NewIntakeService constructs the service.
func NewIntakeService(deps IntakeDependencies, logger *zap.Logger) *IntakeService {
	return &IntakeService{
		txManager:  deps.TxManager,
		leads:      deps.LeadRepo,
		documents:  deps.DocumentRepo,
		store:      deps.DocumentStore,
		assigner:   deps.Assignment,
		stager:     deps.Notifications,
		dispatcher: deps.Dispatcher,
		logger:     logger,
	}
}

// CreateLead persists the resume file, creates the Document and Lead records
// with staged notifications in a single transaction, and returns the committed
// lead. On failure the transaction rolls back and the persisted file, if any,
// is removed best-effort.
func (s *IntakeService) CreateLead(ctx context.Context, input LeadCreateInput, file io.Reader, originalName string) (*domain.Lead, error) {
	// Once intake starts it runs to commit or compensation; a client
	// disconnect must not cancel it partway.
	ctx = context.WithoutCancel(ctx)

	tx, err := s.txManager.Begin(ctx)
	if err != nil {
		return nil, apperrors.NewTransactionFailure("failed to begin intake transaction", err)
	}

	handle, err := s.store.Persist(file, originalName)
	if err != nil {
		_ = tx.Rollback(ctx)
		return nil, apperrors.NewStorageFailure("failed to persist resume", err)
	}

	lead, assignee, err := s.stageRecords(ctx, tx, input, handle)
	if err != nil {
		_ = tx.Rollback(ctx)
		s.compensate(handle)
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		s.compensate(handle)
		return nil, apperrors.NewTransactionFailure("failed to commit intake transaction", err)
	}

	// Re-read so store-computed fields are accurate in the returned view.
	committed, err := s.leads.GetByID(ctx, lead.ID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	s.publishCreated(ctx, committed, assignee)
	return committed, nil
}

func (s *IntakeService) stageRecords(ctx context.Context, tx repository.Tx, input LeadCreateInput, handle *storage.Handle) (*domain.Lead, *domain.User, error) {
	doc := handle.Document()
	if err := s.documents.WithTx(tx).Create(ctx, doc); err != nil {
		return nil, nil, apperrors.NewTransactionFailure("failed to create document record", err)
	}

	assignee, err := s.assigner.SelectForNewLead(ctx, tx, input.Email)
	if err != nil {
		return nil, nil, apperrors.MapError(err)
	}

	lead := &domain.Lead{
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Email:     input.Email,
		Status:    domain.LeadStatusPending,
		ResumeID:  doc.ID,
	}
	if assignee != nil {
		lead.AssignedToID = &assignee.ID
	}
	if err := s.leads.WithTx(tx).Create(ctx, lead); err != nil {
		return nil, nil, apperrors.NewTransactionFailure("failed to create lead record", err)
	}

	if _, err := s.stager.StageNewLeadNotifications(ctx, tx, lead, assignee); err != nil {
		return nil, nil, apperrors.NewTransactionFailure("failed to stage notifications", err)
	}

	return lead, assignee, nil
}

// compensate removes the orphaned file after a failed intake. A cleanup
// failure is logged, never returned: the original failure must stay the one
// the caller sees.
func (s *IntakeService) compensate(handle *storage.Handle) {
	if err := s.store.Remove(handle); err != nil {
		s.logger.Error("failed to remove orphaned resume file",
			zap.String("document_id", handle.ID),
			zap.String("path", handle.LocalPath),
			zap.Error(err),
		)
	}
}

func (s *IntakeService) publishCreated(ctx context.Context, lead *domain.Lead, assignee *domain.User) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventLeadCreated,
		LeadID:    lead.ID,
		Timestamp: time.Now(),
		Payload: events.LeadCreatedPayload{
			Email:        lead.Email,
			ResumeID:     lead.ResumeID,
			AssignedToID: lead.AssignedToID,
		},
	})
	if assignee != nil {
		_ = s.dispatcher.Publish(ctx, events.Event{
			ID:        uuid.NewString(),
			Type:      events.EventLeadAssigned,
			LeadID:    lead.ID,
			Timestamp: time.Now(),
			Payload: events.LeadAssignedPayload{
				AssignedToID: assignee.ID,
			},
		})
	}
}
