package domain

import (
	"fmt"

	"github.com/google/uuid"
)

// Role names a capability held by a user.
type Role string

const (
	// RoleDiner is granted to every registered user.
	RoleDiner Role = "diner"

	// RoleAdmin grants unrestricted franchise, menu and user management.
	RoleAdmin Role = "admin"

	// RoleFranchisee grants store management within a single franchise,
	// identified by the assignment's ObjectID.
	RoleFranchisee Role = "franchisee"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	switch r {
	case RoleDiner, RoleAdmin, RoleFranchisee:
		return true
	}
	return false
}

// RoleAssignment is one {role, scope} capability tuple attached to a user.
// ObjectID is only set for scoped roles.
type RoleAssignment struct {
	Role     Role       `json:"role"`
	ObjectID *uuid.UUID `json:"objectId,omitempty"`
}

// Validate checks that the role is known and that only franchisee carries a scope.
func (a RoleAssignment) Validate() error {
	if !a.Role.Valid() {
		return NewValidationError("role", fmt.Sprintf("%q is not a known role", a.Role), nil)
	}
	if a.Role == RoleFranchisee && (a.ObjectID == nil || *a.ObjectID == uuid.Nil) {
		return NewValidationError("objectId", "is required for the franchisee role", nil)
	}
	if a.Role != RoleFranchisee && a.ObjectID != nil {
		return NewValidationError("objectId", "is only allowed for the franchisee role", nil)
	}
	return nil
}

// Diner returns the default role assignment.
func Diner() RoleAssignment {
	return RoleAssignment{Role: RoleDiner}
}

// Admin returns the global admin role assignment.
func Admin() RoleAssignment {
	return RoleAssignment{Role: RoleAdmin}
}

// FranchiseeOf returns a franchisee role scoped to the given franchise.
func FranchiseeOf(franchiseID uuid.UUID) RoleAssignment {
	id := franchiseID
	return RoleAssignment{Role: RoleFranchisee, ObjectID: &id}
}
