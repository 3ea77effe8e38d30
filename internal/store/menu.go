package store

import (
	"context"

	"github.com/Nivlac17/jwt-pizza-service/internal/domain"
	"github.com/google/uuid"
)

// MenuStore persists the global menu. Reads are never cached.
type MenuStore interface {
	Add(ctx context.Context, item *domain.MenuItem) error
	List(ctx context.Context) ([]domain.MenuItem, error)

	// GetByID returns ErrMenuItemNotFound for unknown ids.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.MenuItem, error)
}
