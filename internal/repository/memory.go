package repository

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/newsroom/newsroom/internal/model"
)

// Memory operation names accepted by FailOn.
const (
	OpBegin            = "begin"
	OpInsertSubscriber = "insert_subscriber"
	OpStoreToken       = "store_token"
	OpCommit           = "commit"
	OpLookupToken      = "lookup_token"
	OpUpdateStatus     = "update_status"
	OpListConfirmed    = "list_confirmed"
	OpGetUser          = "get_user"
)

type memoryToken struct {
	token        string
	subscriberID model.SubscriberID
}

// Memory is an in-process store with the same contract as Repository.
// Transactional writes are staged and only become visible on Commit.
type Memory struct {
	mu          sync.RWMutex
	subscribers map[model.SubscriberID]model.Subscriber
	tokens      []memoryToken
	users       map[string]model.User
	failures    map[string]error
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{
		subscribers: make(map[model.SubscriberID]model.Subscriber),
		users:       make(map[string]model.User),
		failures:    make(map[string]error),
	}
}

// FailOn makes the named operation return a storage fault wrapping err.
// Passing a nil err clears the failure.
func (m *Memory) FailOn(op string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err == nil {
		delete(m.failures, op)
		return
	}
	m.failures[op] = err
}

func (m *Memory) fault(op string) error {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if err, ok := m.failures[op]; ok {
		return dbError(op, err)
	}
	return nil
}

// Ping always succeeds.
func (m *Memory) Ping(ctx context.Context) error {
	return nil
}

// Begin opens a staged transaction.
func (m *Memory) Begin(ctx context.Context) (SubscriptionTx, error) {
	if err := ctx.Err(); err != nil {
		return nil, dbError(OpBegin, err)
	}
	if err := m.fault(OpBegin); err != nil {
		return nil, err
	}
	return &memoryTx{store: m}, nil
}

type memoryTx struct {
	store       *Memory
	subscribers []model.Subscriber
	tokens      []memoryToken
	done        bool
}

func (t *memoryTx) InsertSubscriber(ctx context.Context, sub *model.Subscriber) error {
	if err := t.store.fault(OpInsertSubscriber); err != nil {
		return err
	}
	t.subscribers = append(t.subscribers, *sub)
	return nil
}

func (t *memoryTx) StoreToken(ctx context.Context, subscriberID model.SubscriberID, token string) error {
	if err := t.store.fault(OpStoreToken); err != nil {
		return err
	}
	t.tokens = append(t.tokens, memoryToken{token: token, subscriberID: subscriberID})
	return nil
}

func (t *memoryTx) Commit(ctx context.Context) error {
	if t.done {
		return dbError(OpCommit, errors.New("transaction already closed"))
	}
	t.done = true
	if err := t.store.fault(OpCommit); err != nil {
		return err
	}

	t.store.mu.Lock()
	defer t.store.mu.Unlock()
	for _, sub := range t.subscribers {
		t.store.subscribers[sub.ID] = sub
	}
	t.store.tokens = append(t.store.tokens, t.tokens...)
	return nil
}

func (t *memoryTx) Rollback(ctx context.Context) error {
	t.done = true
	t.subscribers = nil
	t.tokens = nil
	return nil
}

// GetSubscriberIDByToken returns the first subscriber the token was issued to.
func (m *Memory) GetSubscriberIDByToken(ctx context.Context, token string) (model.SubscriberID, bool, error) {
	if err := m.fault(OpLookupToken); err != nil {
		return "", false, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, t := range m.tokens {
		if t.token != token {
			continue
		}
		id, err := model.ParseSubscriberID(t.subscriberID.String())
		if err != nil {
			return "", false, domainError(OpLookupToken, err)
		}
		return id, true, nil
	}
	return "", false, nil
}

// UpdateConfirmationStatus marks the subscriber confirmed. Unknown IDs are ignored,
// matching an UPDATE that touches zero rows.
func (m *Memory) UpdateConfirmationStatus(ctx context.Context, id model.SubscriberID) error {
	if err := m.fault(OpUpdateStatus); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if sub, ok := m.subscribers[id]; ok {
		sub.Status = model.StatusConfirmed
		m.subscribers[id] = sub
	}
	return nil
}

// ListConfirmedEmails returns confirmed addresses ordered by subscription time.
func (m *Memory) ListConfirmedEmails(ctx context.Context) ([]ConfirmedEmail, error) {
	if err := m.fault(OpListConfirmed); err != nil {
		return nil, err
	}

	m.mu.RLock()
	confirmed := make([]model.Subscriber, 0, len(m.subscribers))
	for _, sub := range m.subscribers {
		if sub.Status.IsConfirmed() {
			confirmed = append(confirmed, sub)
		}
	}
	m.mu.RUnlock()

	sort.Slice(confirmed, func(i, j int) bool {
		if confirmed[i].SubscribedAt.Equal(confirmed[j].SubscribedAt) {
			return confirmed[i].ID < confirmed[j].ID
		}
		return confirmed[i].SubscribedAt.Before(confirmed[j].SubscribedAt)
	})

	out := make([]ConfirmedEmail, 0, len(confirmed))
	for _, sub := range confirmed {
		out = append(out, newConfirmedEmail(sub.Email))
	}
	return out, nil
}

// GetSubscriber loads a subscriber by ID.
func (m *Memory) GetSubscriber(ctx context.Context, id model.SubscriberID) (*model.Subscriber, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	sub, ok := m.subscribers[id]
	if !ok {
		return nil, ErrSubscriberNotFound
	}
	return &sub, nil
}

// Subscribers returns a snapshot of every committed subscriber.
func (m *Memory) Subscribers() []model.Subscriber {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]model.Subscriber, 0, len(m.subscribers))
	for _, sub := range m.subscribers {
		out = append(out, sub)
	}
	return out
}

// TokensFor returns every token issued to the subscriber.
func (m *Memory) TokensFor(id model.SubscriberID) []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []string
	for _, t := range m.tokens {
		if t.subscriberID == id {
			out = append(out, t.token)
		}
	}
	return out
}

// PutSubscriber writes a subscriber row directly, bypassing validation.
// Tests use it to seed confirmed or corrupt rows.
func (m *Memory) PutSubscriber(sub model.Subscriber) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.subscribers[sub.ID] = sub
}

// PutToken records a token directly.
func (m *Memory) PutToken(id model.SubscriberID, token string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tokens = append(m.tokens, memoryToken{token: token, subscriberID: id})
}

// CreateUser stores a publisher.
func (m *Memory) CreateUser(ctx context.Context, user *model.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[user.Username]; ok {
		return ErrUsernameExists
	}
	m.users[user.Username] = *user
	return nil
}

// GetUserByUsername retrieves a publisher by username.
func (m *Memory) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	if err := m.fault(OpGetUser); err != nil {
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()
	user, ok := m.users[username]
	if !ok {
		return nil, ErrUserNotFound
	}
	return &user, nil
}
