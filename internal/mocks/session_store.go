package mocks

import (
	"context"
	"time"

	"github.com/Nivlac17/jwt-pizza-service/internal/store"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockSessionStore implements store.SessionStore over a MemoryDB.
type MockSessionStore struct {
	db *MemoryDB

	CreateFn func(ctx context.Context, tokenID string, userID uuid.UUID, expiresAt time.Time) error
	ExistsFn func(ctx context.Context, tokenID string) (bool, error)
}

var _ store.SessionStore = (*MockSessionStore)(nil)

// NewMockSessionStore creates a session store backed by db.
func NewMockSessionStore(db *MemoryDB) *MockSessionStore {
	return &MockSessionStore{db: db}
}

// Create implements the SessionStore interface
func (m *MockSessionStore) Create(ctx context.Context, tokenID string, userID uuid.UUID, expiresAt time.Time) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, tokenID, userID, expiresAt)
	}

	m.db.mu.Lock()
	defer m.db.mu.Unlock()
	m.db.sessions[tokenID] = session{userID: userID, expiresAt: expiresAt}
	return nil
}

// Exists implements the SessionStore interface
func (m *MockSessionStore) Exists(ctx context.Context, tokenID string) (bool, error) {
	if m.ExistsFn != nil {
		return m.ExistsFn(ctx, tokenID)
	}

	m.db.mu.RLock()
	defer m.db.mu.RUnlock()
	s, ok := m.db.sessions[tokenID]
	return ok && s.expiresAt.After(time.Now()), nil
}

// Delete implements the SessionStore interface
func (m *MockSessionStore) Delete(ctx context.Context, tokenID string) error {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()
	delete(m.db.sessions, tokenID)
	return nil
}

// PurgeExpired implements the SessionStore interface
func (m *MockSessionStore) PurgeExpired(ctx context.Context, now time.Time) (int64, error) {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()

	var n int64
	for id, s := range m.db.sessions {
		if !s.expiresAt.After(now) {
			delete(m.db.sessions, id)
			n++
		}
	}
	return n, nil
}

// TestifyMockSessionStore is a mock of store.SessionStore for use with testify/mock
type TestifyMockSessionStore struct {
	mock.Mock
}

var _ store.SessionStore = (*TestifyMockSessionStore)(nil)

// Create is a mock implementation of store.SessionStore.Create
func (m *TestifyMockSessionStore) Create(ctx context.Context, tokenID string, userID uuid.UUID, expiresAt time.Time) error {
	args := m.Called(ctx, tokenID, userID, expiresAt)
	return args.Error(0)
}

// Exists is a mock implementation of store.SessionStore.Exists
func (m *TestifyMockSessionStore) Exists(ctx context.Context, tokenID string) (bool, error) {
	args := m.Called(ctx, tokenID)
	return args.Bool(0), args.Error(1)
}

// Delete is a mock implementation of store.SessionStore.Delete
func (m *TestifyMockSessionStore) Delete(ctx context.Context, tokenID string) error {
	args := m.Called(ctx, tokenID)
	return args.Error(0)
}

// PurgeExpired is a mock implementation of store.SessionStore.PurgeExpired
func (m *TestifyMockSessionStore) PurgeExpired(ctx context.Context, now time.Time) (int64, error) {
	args := m.Called(ctx, now)
	return args.Get(0).(int64), args.Error(1)
}
