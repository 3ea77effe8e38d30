package mocks

import (
	"context"
	"path"
	"sort"
	"time"

	"github.com/Nivlac17/jwt-pizza-service/internal/domain"
	"github.com/Nivlac17/jwt-pizza-service/internal/store"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// MockUserStore implements store.UserStore over a MemoryDB.
// Passwords are hashed with bcrypt.MinCost so that real verifiers work.
type MockUserStore struct {
	db *MemoryDB

	// Function fields for customizable behavior
	CreateFn     func(ctx context.Context, user *domain.User) error
	GetByIDFn    func(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByEmailFn func(ctx context.Context, email string) (*domain.User, error)
	UpdateFn     func(ctx context.Context, user *domain.User) error
	ListFn       func(ctx context.Context, page store.Page, nameFilter string) ([]domain.User, bool, error)
}

var _ store.UserStore = (*MockUserStore)(nil)

// NewMockUserStore creates a user store backed by db.
func NewMockUserStore(db *MemoryDB) *MockUserStore {
	return &MockUserStore{db: db}
}

// Create implements the UserStore interface
func (m *MockUserStore) Create(ctx context.Context, user *domain.User) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, user)
	}
	if err := user.Validate(); err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.MinCost)
	if err != nil {
		return err
	}

	m.db.mu.Lock()
	defer m.db.mu.Unlock()

	for _, u := range m.db.users {
		if u.Email == user.Email {
			return store.ErrEmailExists
		}
	}

	user.HashedPassword = string(hash)
	user.Password = ""
	m.db.users[user.ID] = *copyUser(*user)
	return nil
}

// GetByID implements the UserStore interface
func (m *MockUserStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}

	m.db.mu.RLock()
	defer m.db.mu.RUnlock()

	u, ok := m.db.users[id]
	if !ok {
		return nil, store.ErrUserNotFound
	}
	return copyUser(u), nil
}

// GetByEmail implements the UserStore interface
func (m *MockUserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if m.GetByEmailFn != nil {
		return m.GetByEmailFn(ctx, email)
	}

	email = domain.NormalizeEmail(email)

	m.db.mu.RLock()
	defer m.db.mu.RUnlock()

	for _, u := range m.db.users {
		if u.Email == email {
			return copyUser(u), nil
		}
	}
	return nil, store.ErrUserNotFound
}

// Update implements the UserStore interface. Roles are not changed.
func (m *MockUserStore) Update(ctx context.Context, user *domain.User) error {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, user)
	}
	if err := user.Validate(); err != nil {
		return err
	}

	var hash []byte
	if user.Password != "" {
		var err error
		if hash, err = bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.MinCost); err != nil {
			return err
		}
	}

	m.db.mu.Lock()
	defer m.db.mu.Unlock()

	existing, ok := m.db.users[user.ID]
	if !ok {
		return store.ErrUserNotFound
	}
	for id, u := range m.db.users {
		if id != user.ID && u.Email == user.Email {
			return store.ErrEmailExists
		}
	}

	existing.Name = user.Name
	existing.Email = user.Email
	existing.UpdatedAt = time.Now().UTC()
	if hash != nil {
		existing.HashedPassword = string(hash)
		user.HashedPassword = string(hash)
		user.Password = ""
	}
	m.db.users[user.ID] = existing
	return nil
}

// List implements the UserStore interface
func (m *MockUserStore) List(ctx context.Context, page store.Page, nameFilter string) ([]domain.User, bool, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, page, nameFilter)
	}
	if nameFilter == "" {
		nameFilter = "*"
	}

	m.db.mu.RLock()
	matched := []domain.User{}
	for _, u := range m.db.users {
		if ok, _ := path.Match(nameFilter, u.Name); ok {
			matched = append(matched, *copyUser(u))
		}
	}
	m.db.mu.RUnlock()

	sort.Slice(matched, func(i, j int) bool { return matched[i].Name < matched[j].Name })
	return paginate(matched, page)
}

func paginate[T any](items []T, page store.Page) ([]T, bool, error) {
	start := page.Offset()
	if start >= len(items) {
		return []T{}, false, nil
	}
	end := start + page.Limit
	if end >= len(items) {
		return items[start:], false, nil
	}
	return items[start:end], true, nil
}
