package mocks

import (
	"context"
	"sort"

	"github.com/Nivlac17/jwt-pizza-service/internal/domain"
	"github.com/Nivlac17/jwt-pizza-service/internal/store"
	"github.com/google/uuid"
)

// MockMenuStore implements store.MenuStore over a MemoryDB.
type MockMenuStore struct {
	db *MemoryDB

	AddFn  func(ctx context.Context, item *domain.MenuItem) error
	ListFn func(ctx context.Context) ([]domain.MenuItem, error)
}

var _ store.MenuStore = (*MockMenuStore)(nil)

// NewMockMenuStore creates a menu store backed by db.
func NewMockMenuStore(db *MemoryDB) *MockMenuStore {
	return &MockMenuStore{db: db}
}

// Add implements the MenuStore interface
func (m *MockMenuStore) Add(ctx context.Context, item *domain.MenuItem) error {
	if m.AddFn != nil {
		return m.AddFn(ctx, item)
	}
	if err := item.Validate(); err != nil {
		return err
	}

	m.db.mu.Lock()
	defer m.db.mu.Unlock()
	m.db.menu = append(m.db.menu, *item)
	return nil
}

// List implements the MenuStore interface
func (m *MockMenuStore) List(ctx context.Context) ([]domain.MenuItem, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx)
	}

	m.db.mu.RLock()
	defer m.db.mu.RUnlock()
	return append([]domain.MenuItem{}, m.db.menu...), nil
}

// GetByID implements the MenuStore interface
func (m *MockMenuStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.MenuItem, error) {
	m.db.mu.RLock()
	defer m.db.mu.RUnlock()

	for _, it := range m.db.menu {
		if it.ID == id {
			item := it
			return &item, nil
		}
	}
	return nil, store.ErrMenuItemNotFound
}

// MockOrderStore implements store.OrderStore over a MemoryDB.
type MockOrderStore struct {
	db *MemoryDB

	CreateFn func(ctx context.Context, order *domain.Order) error
}

var _ store.OrderStore = (*MockOrderStore)(nil)

// NewMockOrderStore creates an order store backed by db.
func NewMockOrderStore(db *MemoryDB) *MockOrderStore {
	return &MockOrderStore{db: db}
}

// Create implements the OrderStore interface
func (m *MockOrderStore) Create(ctx context.Context, order *domain.Order) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, order)
	}
	if err := order.Validate(); err != nil {
		return err
	}

	m.db.mu.Lock()
	defer m.db.mu.Unlock()
	if _, ok := m.db.users[order.DinerID]; !ok {
		return store.ErrInvalidEntity
	}
	o := *order
	o.Items = append([]domain.OrderItem{}, order.Items...)
	m.db.orders = append(m.db.orders, o)
	return nil
}

// ListForDiner implements the OrderStore interface
func (m *MockOrderStore) ListForDiner(ctx context.Context, dinerID uuid.UUID, page store.Page) ([]domain.Order, bool, error) {
	m.db.mu.RLock()
	list := []domain.Order{}
	for _, o := range m.db.orders {
		if o.DinerID == dinerID {
			list = append(list, o)
		}
	}
	m.db.mu.RUnlock()

	sort.SliceStable(list, func(i, j int) bool { return list[i].Date.After(list[j].Date) })
	return paginate(list, page)
}
