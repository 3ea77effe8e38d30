package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Nivlac17/jwt-pizza-service/internal/domain"
	"github.com/Nivlac17/jwt-pizza-service/internal/platform/logger"
	"github.com/Nivlac17/jwt-pizza-service/internal/store"
	"github.com/google/uuid"
)

// UpdateUserInput holds the fields a user may change on its own account.
// Empty fields are left unchanged.
type UpdateUserInput struct {
	Name     string
	Email    string
	Password string
}

// UserPage is one page of the user listing.
type UserPage struct {
	Users []domain.User `json:"users"`
	More  bool          `json:"more"`
}

// TokenIssuer issues and revokes bearer tokens. AuthService implements it.
type TokenIssuer interface {
	IssueToken(ctx context.Context, user *domain.User) (string, error)
	Logout(ctx context.Context, tokenID string) error
}

// UserService provides account operations on behalf of an authenticated actor.
type UserService interface {
	// ListUsers returns a page of users for admins. For other actors it
	// returns nil and no error; the caller responds with an empty object.
	ListUsers(ctx context.Context, actor *domain.User, page store.Page, nameFilter string) (*UserPage, error)

	// UpdateUser changes targetID's account. Only the account owner may do so.
	// The token identified by currentTokenID is revoked and a new one issued.
	UpdateUser(
		ctx context.Context,
		actor *domain.User,
		currentTokenID string,
		targetID uuid.UUID,
		input UpdateUserInput,
	) (*AuthResult, error)

	// DeleteUser is not implemented and never changes state.
	DeleteUser(ctx context.Context, actor *domain.User, targetID uuid.UUID) error
}

// UserServiceImpl implements the UserService interface
type UserServiceImpl struct {
	users  store.UserStore
	tokens TokenIssuer
	logger *slog.Logger
}

var _ UserService = (*UserServiceImpl)(nil)

// NewUserService creates a new UserService
func NewUserService(users store.UserStore, tokens TokenIssuer, logger *slog.Logger) (*UserServiceImpl, error) {
	if users == nil || tokens == nil {
		return nil, fmt.Errorf("user service requires a user store and a token issuer")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &UserServiceImpl{
		users:  users,
		tokens: tokens,
		logger: logger.With("component", "user_service"),
	}, nil
}

// ListUsers returns a page of users to admins.
func (s *UserServiceImpl) ListUsers(
	ctx context.Context,
	actor *domain.User,
	page store.Page,
	nameFilter string,
) (*UserPage, error) {
	if err := requireActor(actor); err != nil {
		return nil, err
	}
	if !actor.IsAdmin() {
		return nil, nil
	}

	users, more, err := s.users.List(ctx, NormalizePage(page), nameFilter)
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to list users", "error", err)
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return &UserPage{Users: users, More: more}, nil
}

// UpdateUser changes the actor's own account and rotates its token.
func (s *UserServiceImpl) UpdateUser(
	ctx context.Context,
	actor *domain.User,
	currentTokenID string,
	targetID uuid.UUID,
	input UpdateUserInput,
) (*AuthResult, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := requireActor(actor); err != nil {
		return nil, err
	}
	if !domain.CanUpdateUser(actor, targetID) {
		log.Debug("refused update of another user",
			"actor_id", actor.ID,
			"target_id", targetID)
		return nil, domain.NewAccessError("update user", msgUpdateUser)
	}

	user, err := s.users.GetByID(ctx, targetID)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve user for update: %w", err)
	}

	if name := strings.TrimSpace(input.Name); name != "" {
		user.Name = name
	}
	if input.Email != "" {
		user.Email = domain.NormalizeEmail(input.Email)
	}
	if input.Password != "" {
		user.Password = input.Password
	}
	if err := user.Validate(); err != nil {
		return nil, invalid(err)
	}

	if err := s.users.Update(ctx, user); err != nil {
		if !errors.Is(err, store.ErrEmailExists) {
			log.Error("failed to update user", "error", err, "user_id", targetID)
		}
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	updated, err := s.users.GetByID(ctx, targetID)
	if err != nil {
		return nil, fmt.Errorf("failed to reload updated user: %w", err)
	}

	token, err := s.tokens.IssueToken(ctx, updated)
	if err != nil {
		return nil, err
	}
	if currentTokenID != "" {
		if err := s.tokens.Logout(ctx, currentTokenID); err != nil {
			// The new token is valid; a stale session only lingers until it expires.
			log.Warn("failed to revoke previous token", "error", err, "user_id", targetID)
		}
	}

	log.Info("user updated", "user_id", targetID)
	return &AuthResult{User: updated, Token: token}, nil
}

// DeleteUser is a placeholder operation.
func (s *UserServiceImpl) DeleteUser(ctx context.Context, actor *domain.User, targetID uuid.UUID) error {
	if err := requireActor(actor); err != nil {
		return err
	}
	logger.FromContextOrDefault(ctx, s.logger).Debug("delete user requested",
		"actor_id", actor.ID,
		"target_id", targetID)
	return nil
}
