package domain

import (
	"errors"
	"strings"

	"github.com/google/uuid"
)

// Franchise validation errors
var (
	ErrEmptyFranchiseName = errors.New("franchise name cannot be empty")
	ErrEmptyStoreName     = errors.New("store name cannot be empty")
	ErrEmptyFranchiseID   = errors.New("franchise ID cannot be empty")
)

// Franchise groups stores under a set of franchisee admins.
// Admins are derived from franchisee role assignments scoped to the franchise
// and are listed in the order those roles were granted.
type Franchise struct {
	ID     uuid.UUID        `json:"id"`
	Name   string           `json:"name"`
	Admins []FranchiseAdmin `json:"admins"`
	Stores []Store          `json:"stores"`
}

// FranchiseAdmin is the public view of a user administering a franchise.
type FranchiseAdmin struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
}

// Store is a physical location owned by exactly one franchise.
type Store struct {
	ID          uuid.UUID `json:"id"`
	FranchiseID uuid.UUID `json:"franchiseId"`
	Name        string    `json:"name"`
}

// NewFranchise creates a franchise with no admins or stores yet.
func NewFranchise(name string) (*Franchise, error) {
	f := &Franchise{
		ID:     uuid.New(),
		Name:   strings.TrimSpace(name),
		Admins: []FranchiseAdmin{},
		Stores: []Store{},
	}
	if f.Name == "" {
		return nil, ErrEmptyFranchiseName
	}
	return f, nil
}

// NewStore creates a store belonging to franchiseID.
func NewStore(franchiseID uuid.UUID, name string) (*Store, error) {
	if franchiseID == uuid.Nil {
		return nil, ErrEmptyFranchiseID
	}
	s := &Store{
		ID:          uuid.New(),
		FranchiseID: franchiseID,
		Name:        strings.TrimSpace(name),
	}
	if s.Name == "" {
		return nil, ErrEmptyStoreName
	}
	return s, nil
}

// AdminFromUser projects a user onto the fields exposed in franchise listings.
func AdminFromUser(u *User) FranchiseAdmin {
	return FranchiseAdmin{ID: u.ID, Name: u.Name, Email: u.Email}
}

// HasStore reports whether storeID belongs to the franchise.
func (f *Franchise) HasStore(storeID uuid.UUID) bool {
	for _, s := range f.Stores {
		if s.ID == storeID {
			return true
		}
	}
	return false
}
