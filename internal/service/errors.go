package service

import (
	"errors"
	"fmt"

	"github.com/Nivlac17/jwt-pizza-service/internal/domain"
)

// Common service errors - sentinel errors used across service implementations.
// The API layer maps them to HTTP status codes.
var (
	// ErrUnknownFranchiseAdmin is returned when a franchise admin email does
	// not belong to a registered user. Maps to 400.
	ErrUnknownFranchiseAdmin = errors.New("unknown user for franchise admin provided")
)

// Messages returned verbatim in 403 responses.
const (
	msgCreateFranchise = "unable to create a franchise"
	msgCreateStore     = "unable to create a store"
	msgDeleteStore     = "unable to delete a store"
	msgAddMenuItem     = "unable to add menu item"
	msgUpdateUser      = "unauthorized"
)

// invalid marks a domain constructor failure as a validation error while
// keeping the specific cause matchable with errors.Is.
func invalid(err error) error {
	if errors.Is(err, domain.ErrValidation) {
		return err
	}
	return fmt.Errorf("%w: %w", domain.ErrValidation, err)
}

// requireActor returns domain.ErrUnauthorized when no principal is present.
func requireActor(actor *domain.User) error {
	if actor == nil {
		return domain.ErrUnauthorized
	}
	return nil
}
