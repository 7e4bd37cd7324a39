package service

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/lead-intake-service/internal/domain"
	"github.com/spec-kit/lead-intake-service/internal/events"
	"github.com/spec-kit/lead-intake-service/internal/mail"
	"github.com/spec-kit/lead-intake-service/internal/repository"
)

// memStore is the shared backing state for the in-memory repositories. Writes
// made under a transaction are buffered on the transaction and only land here
// on commit.
type memStore struct {
	leads         map[string]*domain.Lead
	leadOrder     []string
	documents     map[string]*domain.Document
	users         []domain.User
	notifications []domain.EmailNotification

	seq   int
	clock time.Time
}

func newMemStore() *memStore {
	return &memStore{
		leads:     map[string]*domain.Lead{},
		documents: map[string]*domain.Document{},
		clock:     time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC),
	}
}

func (s *memStore) nextID(prefix string) string {
	s.seq++
	return fmt.Sprintf("%s-%04d", prefix, s.seq)
}

func (s *memStore) tick() time.Time {
	s.clock = s.clock.Add(time.Second)
	return s.clock
}

// memTx buffers writes until Commit. Rollback drops them.
type memTx struct {
	store      *memStore
	ops        []func(*memStore)
	commitErr  error
	committed  bool
	rolledBack bool
}

func (t *memTx) Commit(context.Context) error {
	if t.commitErr != nil {
		return t.commitErr
	}
	for _, op := range t.ops {
		op(t.store)
	}
	t.committed = true
	return nil
}

func (t *memTx) Rollback(context.Context) error {
	t.ops = nil
	t.rolledBack = true
	return nil
}

type memTxManager struct {
	store    *memStore
	beginErr error
	last     *memTx

	// applied to every transaction this manager opens
	commitErr error
}

func (m *memTxManager) Begin(context.Context) (repository.Tx, error) {
	if m.beginErr != nil {
		return nil, m.beginErr
	}
	tx := &memTx{store: m.store, commitErr: m.commitErr}
	m.last = tx
	return tx, nil
}

// memLeadRepo implements repository.LeadRepository over memStore.
type memLeadRepo struct {
	store     *memStore
	tx        *memTx
	createErr error
	listErr   error
}

func (r *memLeadRepo) WithTx(tx repository.Tx) repository.LeadRepository {
	bound := *r
	if mt, ok := tx.(*memTx); ok {
		bound.tx = mt
	}
	return &bound
}

func (r *memLeadRepo) Create(_ context.Context, lead *domain.Lead) error {
	if r.createErr != nil {
		return r.createErr
	}
	lead.ID = r.store.nextID("lead")
	lead.CreatedAt = r.store.tick()
	lead.UpdatedAt = lead.CreatedAt
	copied := *lead
	op := func(s *memStore) {
		s.leads[copied.ID] = &copied
		s.leadOrder = append(s.leadOrder, copied.ID)
	}
	if r.tx != nil {
		r.tx.ops = append(r.tx.ops, op)
	} else {
		op(r.store)
	}
	return nil
}

func (r *memLeadRepo) GetByID(_ context.Context, id string) (*domain.Lead, error) {
	lead, ok := r.store.leads[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *lead
	return &copied, nil
}

func (r *memLeadRepo) List(_ context.Context, filter repository.LeadFilter) ([]domain.Lead, error) {
	if r.listErr != nil {
		return nil, r.listErr
	}
	var result []domain.Lead
	for _, id := range r.store.leadOrder {
		lead := r.store.leads[id]
		if filter.Status != nil && lead.Status != *filter.Status {
			continue
		}
		if filter.AssignedToID != nil {
			if lead.AssignedToID == nil || *lead.AssignedToID != *filter.AssignedToID {
				continue
			}
		}
		result = append(result, *lead)
	}
	return result, nil
}

func (r *memLeadRepo) UpdateStatus(_ context.Context, id string, status domain.LeadStatus) (*domain.Lead, error) {
	lead, ok := r.store.leads[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	lead.Status = status
	lead.UpdatedAt = r.store.tick()
	copied := *lead
	return &copied, nil
}

// memDocumentRepo implements repository.DocumentRepository over memStore.
type memDocumentRepo struct {
	store     *memStore
	tx        *memTx
	createErr error
}

func (r *memDocumentRepo) WithTx(tx repository.Tx) repository.DocumentRepository {
	bound := *r
	if mt, ok := tx.(*memTx); ok {
		bound.tx = mt
	}
	return &bound
}

func (r *memDocumentRepo) Create(_ context.Context, doc *domain.Document) error {
	if r.createErr != nil {
		return r.createErr
	}
	doc.CreatedAt = r.store.tick()
	doc.UpdatedAt = doc.CreatedAt
	copied := *doc
	op := func(s *memStore) {
		s.documents[copied.ID] = &copied
	}
	if r.tx != nil {
		r.tx.ops = append(r.tx.ops, op)
	} else {
		op(r.store)
	}
	return nil
}

func (r *memDocumentRepo) GetByID(_ context.Context, id string) (*domain.Document, error) {
	doc, ok := r.store.documents[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *doc
	return &copied, nil
}

// memUserRepo implements repository.UserRepository over memStore.
type memUserRepo struct {
	store   *memStore
	listErr error
}

func (r *memUserRepo) WithTx(repository.Tx) repository.UserRepository { return r }

func (r *memUserRepo) Create(_ context.Context, user *domain.User) error {
	user.ID = r.store.nextID("user")
	user.CreatedAt = r.store.tick()
	user.UpdatedAt = user.CreatedAt
	r.store.users = append(r.store.users, *user)
	return nil
}

func (r *memUserRepo) Update(_ context.Context, user *domain.User) error {
	for i := range r.store.users {
		if r.store.users[i].ID == user.ID {
			r.store.users[i] = *user
			return nil
		}
	}
	return pgx.ErrNoRows
}

func (r *memUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	for i := range r.store.users {
		if r.store.users[i].ID == id {
			copied := r.store.users[i]
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *memUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	for i := range r.store.users {
		if r.store.users[i].Email == email {
			copied := r.store.users[i]
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *memUserRepo) ListEligible(_ context.Context) ([]domain.User, error) {
	if r.listErr != nil {
		return nil, r.listErr
	}
	var result []domain.User
	for _, user := range r.store.users {
		if user.CanIntake {
			result = append(result, user)
		}
	}
	return result, nil
}

// memNotificationRepo implements repository.NotificationRepository over memStore.
type memNotificationRepo struct {
	store     *memStore
	tx        *memTx
	createErr error
}

func (r *memNotificationRepo) WithTx(tx repository.Tx) repository.NotificationRepository {
	bound := *r
	if mt, ok := tx.(*memTx); ok {
		bound.tx = mt
	}
	return &bound
}

func (r *memNotificationRepo) Create(_ context.Context, notification *domain.EmailNotification) error {
	if r.createErr != nil {
		return r.createErr
	}
	notification.ID = r.store.nextID("notification")
	notification.CreatedAt = r.store.tick()
	copied := *notification
	op := func(s *memStore) {
		s.notifications = append(s.notifications, copied)
	}
	if r.tx != nil {
		r.tx.ops = append(r.tx.ops, op)
	} else {
		op(r.store)
	}
	return nil
}

func (r *memNotificationRepo) ListByLead(_ context.Context, leadID string) ([]domain.EmailNotification, error) {
	var result []domain.EmailNotification
	for _, n := range r.store.notifications {
		if n.LeadID != nil && *n.LeadID == leadID {
			result = append(result, n)
		}
	}
	return result, nil
}

// capturingGateway records every send attempt.
type capturingGateway struct {
	sent    []mail.Message
	sendErr error
}

func (g *capturingGateway) Send(_ context.Context, msg mail.Message) error {
	g.sent = append(g.sent, msg)
	return g.sendErr
}

// capturingDispatcher records published events.
type capturingDispatcher struct {
	published []events.Event
}

func (d *capturingDispatcher) Publish(_ context.Context, event events.Event) error {
	d.published = append(d.published, event)
	return nil
}

func (d *capturingDispatcher) Subscribe(events.EventType, events.EventHandler) {}

func (d *capturingDispatcher) ofType(eventType events.EventType) []events.Event {
	var result []events.Event
	for _, e := range d.published {
		if e.Type == eventType {
			result = append(result, e)
		}
	}
	return result
}
