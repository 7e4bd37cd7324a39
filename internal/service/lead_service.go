package service

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/spec-kit/lead-intake-service/internal/domain"
	"github.com/spec-kit/lead-intake-service/internal/events"
	"github.com/spec-kit/lead-intake-service/internal/repository"
	"github.com/spec-kit/lead-intake-service/internal/storage"
	apperrors "github.com/spec-kit/lead-intake-service/pkg/util"
)

const detailCacheTTL = 5 * time.Minute

// LeadService serves the internal read and status-update paths.
type LeadService struct {
	leads      repository.LeadRepository
	documents  repository.DocumentRepository
	store      *storage.DocumentStore
	cache      *redis.Client
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// LeadDependencies bundles collaborators for the lead service.
type LeadDependencies struct {
	LeadRepo      repository.LeadRepository
	DocumentRepo  repository.DocumentRepository
	DocumentStore *storage.DocumentStore
	Cache         *redis.Client
	Dispatcher    events.Dispatcher
}

// LeadListFilter describes listing filters; conjunctive when both are set.
type LeadListFilter struct {
	Status       *domain.LeadStatus
	AssignedToID *string
}

// LeadDetail is a lead plus its resume content in transportable form.
type LeadDetail struct {
	Lead      domain.Lead `json:"lead"`
	ResumeB64 string      `json:"resume_b64"`
}

// NewLeadService constructs the service.
func NewLeadService(deps LeadDependencies, logger *zap.Logger) *LeadService {
	return &LeadService{
		leads:      deps.LeadRepo,
		documents:  deps.DocumentRepo,
		store:      deps.DocumentStore,
		cache:      deps.Cache,
		dispatcher: deps.Dispatcher,
		logger:     logger,
	}
}

// List returns leads ordered by creation time ascending.
func (s *LeadService) List(ctx context.Context, filter LeadListFilter) ([]domain.Lead, error) {
	leads, err := s.leads.List(ctx, repository.LeadFilter{
		Status:       filter.Status,
		AssignedToID: filter.AssignedToID,
	})
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return leads, nil
}

// GetDetail returns the lead plus its resume content base64-encoded. A lead
// whose document record exists but whose file does not is reported as not
// found; that case is a store consistency violation, not a routine miss.
func (s *LeadService) GetDetail(ctx context.Context, leadID string) (*LeadDetail, error) {
	if cached := s.cachedDetail(ctx, leadID); cached != nil {
		return cached, nil
	}

	lead, err := s.leads.GetByID(ctx, leadID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("lead", map[string]any{"lead_id": leadID})
		}
		return nil, apperrors.MapError(err)
	}

	doc, err := s.documents.GetByID(ctx, lead.ResumeID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("resume", map[string]any{"lead_id": leadID})
		}
		return nil, apperrors.MapError(err)
	}

	content, err := s.store.Read(doc.LocalPath)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, apperrors.NewNotFound("resume file", map[string]any{"lead_id": leadID})
		}
		return nil, apperrors.NewStorageFailure("failed to read resume file", err)
	}

	detail := &LeadDetail{
		Lead:      *lead,
		ResumeB64: base64.StdEncoding.EncodeToString(content),
	}
	s.cacheDetail(ctx, leadID, detail)
	return detail, nil
}

// UpdateStatus overwrites the lead status and returns the updated lead.
// Idempotent: applying the same status twice yields the same state.
func (s *LeadService) UpdateStatus(ctx context.Context, leadID string, newStatus domain.LeadStatus) (*domain.Lead, error) {
	if !newStatus.Valid() {
		return nil, apperrors.NewValidationError("invalid lead status", map[string]any{"status": newStatus})
	}

	current, err := s.leads.GetByID(ctx, leadID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("lead", map[string]any{"lead_id": leadID})
		}
		return nil, apperrors.MapError(err)
	}

	lead, err := s.leads.UpdateStatus(ctx, leadID, newStatus)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("lead", map[string]any{"lead_id": leadID})
		}
		return nil, apperrors.MapError(err)
	}

	s.invalidateDetail(ctx, leadID)
	s.publishStatusChanged(ctx, lead, current.Status, newStatus)
	return lead, nil
}

func (s *LeadService) cachedDetail(ctx context.Context, leadID string) *LeadDetail {
	if s.cache == nil {
		return nil
	}
	raw, err := s.cache.Get(ctx, detailCacheKey(leadID)).Bytes()
	if err != nil {
		return nil
	}
	var detail LeadDetail
	if err := json.Unmarshal(raw, &detail); err != nil {
		return nil
	}
	return &detail
}

func (s *LeadService) cacheDetail(ctx context.Context, leadID string, detail *LeadDetail) {
	if s.cache == nil {
		return
	}
	raw, err := json.Marshal(detail)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, detailCacheKey(leadID), raw, detailCacheTTL).Err(); err != nil {
		s.logger.Debug("failed to cache lead detail", zap.String("lead_id", leadID), zap.Error(err))
	}
}

func (s *LeadService) invalidateDetail(ctx context.Context, leadID string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Del(ctx, detailCacheKey(leadID)).Err(); err != nil {
		s.logger.Debug("failed to invalidate lead detail cache", zap.String("lead_id", leadID), zap.Error(err))
	}
}

func detailCacheKey(leadID string) string {
	return "lead:detail:" + leadID
}

func (s *LeadService) publishStatusChanged(ctx context.Context, lead *domain.Lead, oldStatus, newStatus domain.LeadStatus) {
	if s.dispatcher == nil || oldStatus == newStatus {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventLeadStatusChanged,
		LeadID:    lead.ID,
		Timestamp: time.Now(),
		Payload: events.LeadStatusChangedPayload{
			OldStatus: oldStatus,
			NewStatus: newStatus,
		},
	})
}
