package store

import (
	"context"

	"github.com/Nivlac17/jwt-pizza-service/internal/domain"
	"github.com/google/uuid"
)

// OrderStore persists diner orders with their items.
type OrderStore interface {
	Create(ctx context.Context, order *domain.Order) error

	// ListForDiner returns the diner's orders, newest first, and whether more follow.
	ListForDiner(ctx context.Context, dinerID uuid.UUID, page Page) ([]domain.Order, bool, error)
}
