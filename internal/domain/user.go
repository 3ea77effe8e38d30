package domain

import (
	"errors"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
)

// User validation errors
var (
	ErrEmptyUserID         = errors.New("user ID cannot be empty")
	ErrEmptyName           = errors.New("name cannot be empty")
	ErrInvalidEmail        = errors.New("invalid email format")
	ErrEmptyEmail          = errors.New("email cannot be empty")
	ErrPasswordTooLong     = errors.New("password must be at most 72 characters long")
	ErrEmptyPassword       = errors.New("password cannot be empty")
	ErrEmptyHashedPassword = errors.New("hashed password cannot be empty")
)

// maxPasswordLength is bcrypt's input limit.
const maxPasswordLength = 72

// User is a registered account together with its role assignments.
type User struct {
	ID             uuid.UUID        `json:"id"`
	Name           string           `json:"name"`
	Email          string           `json:"email"`
	Password       string           `json:"-"` // Plaintext password, only set while registering or updating
	HashedPassword string           `json:"-"`
	Roles          []RoleAssignment `json:"roles"`
	CreatedAt      time.Time        `json:"-"`
	UpdatedAt      time.Time        `json:"-"`
}

// NewUser creates a diner with the given name, email and plaintext password.
// The caller is responsible for hashing the password before it is stored.
func NewUser(name, email, password string) (*User, error) {
	now := time.Now().UTC()
	user := &User{
		ID:        uuid.New(),
		Name:      strings.TrimSpace(name),
		Email:     NormalizeEmail(email),
		Password:  password,
		Roles:     []RoleAssignment{Diner()},
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := user.Validate(); err != nil {
		return nil, err
	}

	return user, nil
}

// NormalizeEmail trims and lower-cases an address so that uniqueness checks
// are case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Validate checks if the User has valid data.
func (u *User) Validate() error {
	if u.ID == uuid.Nil {
		return ErrEmptyUserID
	}

	if u.Name == "" {
		return ErrEmptyName
	}

	if u.Email == "" {
		return ErrEmptyEmail
	}

	// ParseAddress also accepts "Name <addr>"; only a bare address is stored.
	addr, err := mail.ParseAddress(u.Email)
	if err != nil || addr.Address != u.Email {
		return ErrInvalidEmail
	}

	// A plaintext password is present during registration and updates;
	// persisted users only carry the hash.
	if u.Password != "" {
		if len(u.Password) > maxPasswordLength {
			return ErrPasswordTooLong
		}
	} else if u.HashedPassword == "" {
		return ErrEmptyPassword
	}

	for _, r := range u.Roles {
		if err := r.Validate(); err != nil {
			return err
		}
	}

	return nil
}

// HasRole reports whether the user holds role with any scope.
func (u *User) HasRole(role Role) bool {
	if u == nil {
		return false
	}
	for _, r := range u.Roles {
		if r.Role == role {
			return true
		}
	}
	return false
}

// IsAdmin reports whether the user holds the global admin role.
func (u *User) IsAdmin() bool {
	return u.HasRole(RoleAdmin)
}

// IsFranchiseeOf reports whether the user holds a franchisee role scoped to franchiseID.
func (u *User) IsFranchiseeOf(franchiseID uuid.UUID) bool {
	if u == nil {
		return false
	}
	for _, r := range u.Roles {
		if r.Role == RoleFranchisee && r.ObjectID != nil && *r.ObjectID == franchiseID {
			return true
		}
	}
	return false
}

// FranchiseIDs returns the ids of every franchise the user administers.
func (u *User) FranchiseIDs() []uuid.UUID {
	var ids []uuid.UUID
	for _, r := range u.Roles {
		if r.Role == RoleFranchisee && r.ObjectID != nil {
			ids = append(ids, *r.ObjectID)
		}
	}
	return ids
}

// AddRole attaches a role assignment unless an identical one is already present.
func (u *User) AddRole(a RoleAssignment) {
	for _, r := range u.Roles {
		if r.Role != a.Role {
			continue
		}
		if r.ObjectID == nil && a.ObjectID == nil {
			return
		}
		if r.ObjectID != nil && a.ObjectID != nil && *r.ObjectID == *a.ObjectID {
			return
		}
	}
	u.Roles = append(u.Roles, a)
}
