package store

import (
	"context"

	"github.com/Nivlac17/jwt-pizza-service/internal/domain"
	"github.com/google/uuid"
)

// Page selects a window of a listing. Page numbers start at 1.
type Page struct {
	Number int
	Limit  int
}

// Offset returns the number of rows skipped before the page.
func (p Page) Offset() int {
	if p.Number < 1 {
		return 0
	}
	return (p.Number - 1) * p.Limit
}

// UserStore defines the interface for user and role persistence.
type UserStore interface {
	// Create saves a new user with its roles. The plaintext Password is hashed
	// by the store. Returns ErrEmailExists if the email is already taken.
	Create(ctx context.Context, user *domain.User) error

	// GetByID retrieves a user and its roles.
	// Returns ErrUserNotFound if the user does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)

	// GetByEmail retrieves a user and its roles by email address.
	// Returns ErrUserNotFound if the user does not exist.
	GetByEmail(ctx context.Context, email string) (*domain.User, error)

	// Update modifies name, email and, when Password is set, the password hash.
	// Returns ErrUserNotFound or ErrEmailExists.
	Update(ctx context.Context, user *domain.User) error

	// List returns users whose name matches the filter (`*` is a wildcard)
	// and whether more rows follow the page.
	List(ctx context.Context, page Page, nameFilter string) ([]domain.User, bool, error)
}
