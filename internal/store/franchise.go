package store

import (
	"context"

	"github.com/Nivlac17/jwt-pizza-service/internal/domain"
	"github.com/google/uuid"
)

// FranchiseStore persists franchises, their stores and franchisee roles.
type FranchiseStore interface {
	// Create saves the franchise and grants every listed admin a franchisee
	// role scoped to it, atomically.
	Create(ctx context.Context, franchise *domain.Franchise) error

	// GetByID returns the franchise with its admins and stores.
	// Returns ErrFranchiseNotFound if it does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Franchise, error)

	// ListForUser returns every franchise userID administers.
	ListForUser(ctx context.Context, userID uuid.UUID) ([]domain.Franchise, error)

	// List returns franchises whose name matches the filter (`*` is a wildcard)
	// and whether more rows follow the page.
	List(ctx context.Context, page Page, nameFilter string) ([]domain.Franchise, bool, error)

	// Delete removes the franchise, its stores and its franchisee roles.
	// Deleting a missing franchise is not an error.
	Delete(ctx context.Context, id uuid.UUID) error

	// CreateStore adds a store. Returns ErrFranchiseNotFound if the franchise is missing.
	CreateStore(ctx context.Context, s *domain.Store) error

	// GetStore returns a store of the franchise or ErrStoreNotFound.
	GetStore(ctx context.Context, franchiseID, storeID uuid.UUID) (*domain.Store, error)

	// DeleteStore removes a store of the franchise or returns ErrStoreNotFound.
	DeleteStore(ctx context.Context, franchiseID, storeID uuid.UUID) error
}
