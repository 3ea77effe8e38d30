package api

import (
	"github.com/Nivlac17/jwt-pizza-service/internal/domain"
	"github.com/google/uuid"
)

// Common request/response structures

// RegisterRequest defines the payload for the user registration endpoint.
type RegisterRequest struct {
	Name     string `json:"name"     validate:"required"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginRequest defines the payload for the login endpoint.
type LoginRequest struct {
	Email    string `json:"email"    validate:"required"`
	Password string `json:"password" validate:"required"`
}

// UpdateUserRequest carries the account fields to change. Empty fields are kept.
type UpdateUserRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"    validate:"omitempty,email"`
	Password string `json:"password" validate:"max=72"`
}

// FranchiseAdminRef names a franchise admin by email.
type FranchiseAdminRef struct {
	Email string `json:"email" validate:"required,email"`
}

// CreateFranchiseRequest defines the payload for franchise creation.
type CreateFranchiseRequest struct {
	Name   string              `json:"name"   validate:"required"`
	Admins []FranchiseAdminRef `json:"admins" validate:"dive"`
}

// CreateStoreRequest defines the payload for store creation.
type CreateStoreRequest struct {
	Name string `json:"name" validate:"required"`
}

// MenuItemRequest defines the payload for adding a menu item.
type MenuItemRequest struct {
	Title       string  `json:"title"       validate:"required"`
	Description string  `json:"description"`
	Image       string  `json:"image"`
	Price       float64 `json:"price"       validate:"gte=0"`
}

// OrderItemRequest references a menu item. Description and price sent by
// clients are accepted for compatibility but the menu's values are used.
type OrderItemRequest struct {
	MenuID      uuid.UUID `json:"menuId"      validate:"required"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	Quantity    int       `json:"quantity"    validate:"gte=0"`
}

// OrderRequest defines the payload for placing an order.
type OrderRequest struct {
	FranchiseID uuid.UUID          `json:"franchiseId" validate:"required"`
	StoreID     uuid.UUID          `json:"storeId"     validate:"required"`
	Items       []OrderItemRequest `json:"items"       validate:"required,min=1,dive"`
}

// UserResponse is the public view of a user.
type UserResponse struct {
	ID    uuid.UUID               `json:"id"`
	Name  string                  `json:"name"`
	Email string                  `json:"email"`
	Roles []domain.RoleAssignment `json:"roles"`
}

// AuthResponse defines the successful response for authentication endpoints.
type AuthResponse struct {
	User  UserResponse `json:"user"`
	Token string       `json:"token"`
}

// UserListResponse is the admin view of GET /api/user.
type UserListResponse struct {
	Users []UserResponse `json:"users"`
	More  bool           `json:"more"`
}

// FranchiseListResponse is the public franchise listing.
type FranchiseListResponse struct {
	Franchises []domain.Franchise `json:"franchises"`
	More       bool               `json:"more"`
}

// OrderListResponse is the caller's order history.
type OrderListResponse struct {
	DinerID uuid.UUID      `json:"dinerId"`
	Orders  []domain.Order `json:"orders"`
	Page    int            `json:"page"`
	More    bool           `json:"more"`
}

// OrderResponse is returned after an order was placed. JWT and
// FollowLinkToEndChaos are set when a factory fulfilled it.
type OrderResponse struct {
	Order                *domain.Order `json:"order"`
	JWT                  string        `json:"jwt,omitempty"`
	FollowLinkToEndChaos string        `json:"followLinkToEndChaos,omitempty"`
}

func userToResponse(u *domain.User) UserResponse {
	roles := u.Roles
	if roles == nil {
		roles = []domain.RoleAssignment{}
	}
	return UserResponse{
		ID:    u.ID,
		Name:  u.Name,
		Email: u.Email,
		Roles: roles,
	}
}

func usersToResponse(users []domain.User) []UserResponse {
	out := make([]UserResponse, 0, len(users))
	for i := range users {
		out = append(out, userToResponse(&users[i]))
	}
	return out
}
