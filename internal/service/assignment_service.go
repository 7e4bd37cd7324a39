package service

import (
	"context"
	"math/rand"

	"go.uber.org/zap"

	"github.com/spec-kit/lead-intake-service/internal/domain"
	"github.com/spec-kit/lead-intake-service/internal/repository"
)

// SelectionStrategy picks an assignee from a set of eligible users. Returns
// nil when the set is empty.
type SelectionStrategy func(eligible []domain.User) *domain.User

// UniformRandom selects uniformly among eligible users. The policy is not
// load-aware: it ignores each user's current pending-lead count. Swap in a
// least-loaded or round-robin strategy here without touching the coordinator.
func UniformRandom(eligible []domain.User) *domain.User {
	if len(eligible) == 0 {
		return nil
	}
	return &eligible[rand.Intn(len(eligible))]
}

// AssignmentService chooses which staff user receives a new lead.
type AssignmentService struct {
	users    repository.UserRepository
	strategy SelectionStrategy
	logger   *zap.Logger
}

// NewAssignmentService creates the service with the uniform random strategy.
func NewAssignmentService(users repository.UserRepository, logger *zap.Logger) *AssignmentService {
	return &AssignmentService{
		users:    users,
		strategy: UniformRandom,
		logger:   logger,
	}
}

// WithStrategy overrides the selection strategy.
func (s *AssignmentService) WithStrategy(strategy SelectionStrategy) *AssignmentService {
	if strategy != nil {
		s.strategy = strategy
	}
	return s
}

// SelectForNewLead queries eligible users inside the caller's transaction and
// applies the strategy. An empty eligible set is not an error: the lead is
// legitimately created unassigned.
func (s *AssignmentService) SelectForNewLead(ctx context.Context, tx repository.Tx, leadEmail string) (*domain.User, error) {
	users := s.users
	if tx != nil {
		users = users.WithTx(tx)
	}
	eligible, err := users.ListEligible(ctx)
	if err != nil {
		return nil, err
	}

	assignee := s.strategy(eligible)
	if assignee == nil {
		s.logger.Warn("no users can intake lead", zap.String("lead_email", leadEmail))
		return nil, nil
	}
	return assignee, nil
}
