package domain

import "github.com/google/uuid"

// CanManageFranchise reports whether actor may create or delete stores of franchiseID.
func CanManageFranchise(actor *User, franchiseID uuid.UUID) bool {
	return actor.IsAdmin() || actor.IsFranchiseeOf(franchiseID)
}

// CanViewFranchisesOf reports whether actor may see the franchises administered by userID.
//
// Unlike the other checks a false result is not an error: callers return an
// empty list with a success status.
func CanViewFranchisesOf(actor *User, userID uuid.UUID) bool {
	if actor == nil {
		return false
	}
	return actor.IsAdmin() || actor.ID == userID
}

// VisibleFranchises applies CanViewFranchisesOf to an already fetched list.
func VisibleFranchises(actor *User, userID uuid.UUID, franchises []Franchise) []Franchise {
	if !CanViewFranchisesOf(actor, userID) {
		return []Franchise{}
	}
	if franchises == nil {
		return []Franchise{}
	}
	return franchises
}

// CanUpdateUser reports whether actor may modify targetID's account.
// Only self-updates are allowed; admins get no override.
func CanUpdateUser(actor *User, targetID uuid.UUID) bool {
	return actor != nil && actor.ID == targetID
}
