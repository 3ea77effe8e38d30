package mocks

import (
	"context"
	"fmt"
	"path"
	"sort"

	"github.com/Nivlac17/jwt-pizza-service/internal/domain"
	"github.com/Nivlac17/jwt-pizza-service/internal/store"
	"github.com/google/uuid"
)

// MockFranchiseStore implements store.FranchiseStore over a MemoryDB.
type MockFranchiseStore struct {
	db *MemoryDB

	CreateFn      func(ctx context.Context, f *domain.Franchise) error
	GetByIDFn     func(ctx context.Context, id uuid.UUID) (*domain.Franchise, error)
	ListForUserFn func(ctx context.Context, userID uuid.UUID) ([]domain.Franchise, error)
	DeleteFn      func(ctx context.Context, id uuid.UUID) error
	CreateStoreFn func(ctx context.Context, s *domain.Store) error
	DeleteStoreFn func(ctx context.Context, franchiseID, storeID uuid.UUID) error
}

var _ store.FranchiseStore = (*MockFranchiseStore)(nil)

// NewMockFranchiseStore creates a franchise store backed by db.
func NewMockFranchiseStore(db *MemoryDB) *MockFranchiseStore {
	return &MockFranchiseStore{db: db}
}

// Create implements the FranchiseStore interface
func (m *MockFranchiseStore) Create(ctx context.Context, f *domain.Franchise) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, f)
	}

	m.db.mu.Lock()
	defer m.db.mu.Unlock()

	for _, name := range m.db.franchises {
		if name == f.Name {
			return fmt.Errorf("%w: franchise name", store.ErrDuplicate)
		}
	}
	for _, a := range f.Admins {
		if _, ok := m.db.users[a.ID]; !ok {
			return store.ErrUserNotFound
		}
	}

	m.db.franchises[f.ID] = f.Name
	for _, a := range f.Admins {
		u := m.db.users[a.ID]
		u.AddRole(domain.FranchiseeOf(f.ID))
		m.db.users[a.ID] = u
		m.db.franchiseAdmins[f.ID] = append(m.db.franchiseAdmins[f.ID], a.ID)
	}
	if f.Stores == nil {
		f.Stores = []domain.Store{}
	}
	return nil
}

// GetByID implements the FranchiseStore interface
func (m *MockFranchiseStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Franchise, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}

	m.db.mu.RLock()
	defer m.db.mu.RUnlock()

	if _, ok := m.db.franchises[id]; !ok {
		return nil, store.ErrFranchiseNotFound
	}
	f := m.db.franchiseLocked(id)
	return &f, nil
}

// ListForUser implements the FranchiseStore interface
func (m *MockFranchiseStore) ListForUser(ctx context.Context, userID uuid.UUID) ([]domain.Franchise, error) {
	if m.ListForUserFn != nil {
		return m.ListForUserFn(ctx, userID)
	}

	m.db.mu.RLock()
	defer m.db.mu.RUnlock()

	list := []domain.Franchise{}
	u, ok := m.db.users[userID]
	if !ok {
		return list, nil
	}
	for _, id := range u.FranchiseIDs() {
		if _, exists := m.db.franchises[id]; exists {
			list = append(list, m.db.franchiseLocked(id))
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return list, nil
}

// List implements the FranchiseStore interface
func (m *MockFranchiseStore) List(ctx context.Context, page store.Page, nameFilter string) ([]domain.Franchise, bool, error) {
	if nameFilter == "" {
		nameFilter = "*"
	}

	m.db.mu.RLock()
	list := []domain.Franchise{}
	for id, name := range m.db.franchises {
		if ok, _ := path.Match(nameFilter, name); ok {
			list = append(list, m.db.franchiseLocked(id))
		}
	}
	m.db.mu.RUnlock()

	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return paginate(list, page)
}

// Delete implements the FranchiseStore interface
func (m *MockFranchiseStore) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}

	m.db.mu.Lock()
	defer m.db.mu.Unlock()

	delete(m.db.franchises, id)
	delete(m.db.franchiseAdmins, id)
	for sid, s := range m.db.stores {
		if s.FranchiseID == id {
			delete(m.db.stores, sid)
		}
	}
	for uid, u := range m.db.users {
		kept := u.Roles[:0:0]
		for _, r := range u.Roles {
			if r.Role == domain.RoleFranchisee && r.ObjectID != nil && *r.ObjectID == id {
				continue
			}
			kept = append(kept, r)
		}
		u.Roles = kept
		m.db.users[uid] = u
	}
	return nil
}

// CreateStore implements the FranchiseStore interface
func (m *MockFranchiseStore) CreateStore(ctx context.Context, s *domain.Store) error {
	if m.CreateStoreFn != nil {
		return m.CreateStoreFn(ctx, s)
	}

	m.db.mu.Lock()
	defer m.db.mu.Unlock()

	if _, ok := m.db.franchises[s.FranchiseID]; !ok {
		return store.ErrFranchiseNotFound
	}
	m.db.stores[s.ID] = *s
	return nil
}

// GetStore implements the FranchiseStore interface
func (m *MockFranchiseStore) GetStore(ctx context.Context, franchiseID, storeID uuid.UUID) (*domain.Store, error) {
	m.db.mu.RLock()
	defer m.db.mu.RUnlock()

	s, ok := m.db.stores[storeID]
	if !ok || s.FranchiseID != franchiseID {
		return nil, store.ErrStoreNotFound
	}
	return &s, nil
}

// DeleteStore implements the FranchiseStore interface
func (m *MockFranchiseStore) DeleteStore(ctx context.Context, franchiseID, storeID uuid.UUID) error {
	if m.DeleteStoreFn != nil {
		return m.DeleteStoreFn(ctx, franchiseID, storeID)
	}

	m.db.mu.Lock()
	defer m.db.mu.Unlock()

	s, ok := m.db.stores[storeID]
	if !ok || s.FranchiseID != franchiseID {
		return store.ErrStoreNotFound
	}
	delete(m.db.stores, storeID)
	return nil
}
