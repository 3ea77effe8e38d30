package mocks

import (
	"sort"
	"sync"
	"time"

	"github.com/Nivlac17/jwt-pizza-service/internal/domain"
	"github.com/google/uuid"
)

type session struct {
	userID    uuid.UUID
	expiresAt time.Time
}

// MemoryDB holds the state shared by the in-memory stores. It is safe for
// concurrent use.
type MemoryDB struct {
	mu sync.RWMutex

	users           map[uuid.UUID]domain.User
	franchises      map[uuid.UUID]string
	franchiseAdmins map[uuid.UUID][]uuid.UUID // grant order
	stores          map[uuid.UUID]domain.Store
	menu            []domain.MenuItem
	orders          []domain.Order
	sessions        map[string]session
}

// NewMemoryDB creates an empty database.
func NewMemoryDB() *MemoryDB {
	return &MemoryDB{
		users:           make(map[uuid.UUID]domain.User),
		franchises:      make(map[uuid.UUID]string),
		franchiseAdmins: make(map[uuid.UUID][]uuid.UUID),
		stores:          make(map[uuid.UUID]domain.Store),
		sessions:        make(map[string]session),
	}
}

// SessionCount returns the number of registered sessions, expired or not.
func (db *MemoryDB) SessionCount() int {
	db.mu.RLock()
	defer db.mu.RUnlock()
	return len(db.sessions)
}

func copyUser(u domain.User) *domain.User {
	u.Roles = append([]domain.RoleAssignment{}, u.Roles...)
	for i, r := range u.Roles {
		if r.ObjectID != nil {
			id := *r.ObjectID
			u.Roles[i].ObjectID = &id
		}
	}
	return &u
}

// franchiseLocked assembles a franchise with its derived admins and stores.
// Callers must hold db.mu.
func (db *MemoryDB) franchiseLocked(id uuid.UUID) domain.Franchise {
	f := domain.Franchise{
		ID:     id,
		Name:   db.franchises[id],
		Admins: []domain.FranchiseAdmin{},
		Stores: []domain.Store{},
	}
	for _, userID := range db.franchiseAdmins[id] {
		if u, ok := db.users[userID]; ok && u.IsFranchiseeOf(id) {
			f.Admins = append(f.Admins, domain.AdminFromUser(&u))
		}
	}
	for _, s := range db.stores {
		if s.FranchiseID == id {
			f.Stores = append(f.Stores, s)
		}
	}
	sort.Slice(f.Stores, func(i, j int) bool { return f.Stores[i].Name < f.Stores[j].Name })
	return f
}
