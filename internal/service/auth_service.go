package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Nivlac17/jwt-pizza-service/internal/domain"
	"github.com/Nivlac17/jwt-pizza-service/internal/platform/logger"
	"github.com/Nivlac17/jwt-pizza-service/internal/service/auth"
	"github.com/Nivlac17/jwt-pizza-service/internal/store"
)

// AuthResult is the body returned by registration, login and self-update.
type AuthResult struct {
	User  *domain.User `json:"user"`
	Token string       `json:"token"`
}

// Principal is the authenticated caller of a request.
type Principal struct {
	User *domain.User
	// TokenID is the jti of the bearer token, used to revoke it.
	TokenID string
}

// AuthObserver receives the outcome of auth operations. Implemented by the
// metrics package.
type AuthObserver interface {
	ObserveAuth(operation string, err error)
}

// AuthService registers users and manages their bearer token sessions.
type AuthService interface {
	// Register creates a diner and logs it in.
	Register(ctx context.Context, name, email, password string) (*AuthResult, error)

	// Login verifies credentials and issues a new token.
	// Returns auth.ErrInvalidCredentials for unknown emails and wrong passwords alike.
	Login(ctx context.Context, email, password string) (*AuthResult, error)

	// Logout revokes the session of tokenID. Unknown ids are ignored.
	Logout(ctx context.Context, tokenID string) error

	// Authenticate validates a bearer token, checks that its session is live
	// and loads the user with roles.
	Authenticate(ctx context.Context, token string) (*Principal, error)

	// IssueToken signs a token for user and registers its session.
	IssueToken(ctx context.Context, user *domain.User) (string, error)

	// EnsureAdmin creates an account with the admin role unless email is
	// already registered. It reports whether an account was created.
	EnsureAdmin(ctx context.Context, name, email, password string) (bool, error)
}

// dummyComparer is implemented by verifiers that can spend a comparison's
// worth of work when there is no hash to compare against.
type dummyComparer interface {
	CompareDummy(password string)
}

type authServiceImpl struct {
	users    store.UserStore
	sessions store.SessionStore
	tokens   auth.JWTService
	verifier auth.PasswordVerifier
	observer AuthObserver
	logger   *slog.Logger
}

var _ AuthService = (*authServiceImpl)(nil)

// NewAuthService creates an AuthService. observer may be nil.
func NewAuthService(
	users store.UserStore,
	sessions store.SessionStore,
	tokens auth.JWTService,
	verifier auth.PasswordVerifier,
	observer AuthObserver,
	logger *slog.Logger,
) (AuthService, error) {
	if users == nil || sessions == nil || tokens == nil || verifier == nil {
		return nil, fmt.Errorf("auth service requires user store, session store, token service and verifier")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &authServiceImpl{
		users:    users,
		sessions: sessions,
		tokens:   tokens,
		verifier: verifier,
		observer: observer,
		logger:   logger.With("component", "auth_service"),
	}, nil
}

func (s *authServiceImpl) observe(op string, err error) {
	if s.observer != nil {
		s.observer.ObserveAuth(op, err)
	}
}

// Register creates a diner and logs it in.
func (s *authServiceImpl) Register(ctx context.Context, name, email, password string) (result *AuthResult, err error) {
	defer func() { s.observe("register", err) }()
	log := logger.FromContextOrDefault(ctx, s.logger)

	user, err := domain.NewUser(name, email, password)
	if err != nil {
		return nil, invalid(err)
	}

	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, store.ErrEmailExists) {
			log.Debug("registration with existing email")
		} else {
			log.Error("failed to create user", "error", err)
		}
		return nil, fmt.Errorf("failed to register user: %w", err)
	}

	token, err := s.IssueToken(ctx, user)
	if err != nil {
		return nil, err
	}

	log.Info("user registered", "user_id", user.ID)
	return &AuthResult{User: user, Token: token}, nil
}

// Login verifies credentials and issues a new token.
func (s *authServiceImpl) Login(ctx context.Context, email, password string) (result *AuthResult, err error) {
	defer func() { s.observe("login", err) }()
	log := logger.FromContextOrDefault(ctx, s.logger)

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			if d, ok := s.verifier.(dummyComparer); ok {
				d.CompareDummy(password)
			}
			log.Debug("login for unknown email")
			return nil, auth.ErrInvalidCredentials
		}
		log.Error("failed to look up user for login", "error", err)
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if err := s.verifier.Compare(user.HashedPassword, password); err != nil {
		log.Debug("login with wrong password", "user_id", user.ID)
		return nil, auth.ErrInvalidCredentials
	}

	token, err := s.IssueToken(ctx, user)
	if err != nil {
		return nil, err
	}

	log.Info("user logged in", "user_id", user.ID)
	return &AuthResult{User: user, Token: token}, nil
}

// Logout revokes the session of tokenID.
func (s *authServiceImpl) Logout(ctx context.Context, tokenID string) (err error) {
	defer func() { s.observe("logout", err) }()

	if err := s.sessions.Delete(ctx, tokenID); err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to revoke session", "error", err)
		return fmt.Errorf("failed to revoke session: %w", err)
	}
	return nil
}

// Authenticate validates token and loads its user.
func (s *authServiceImpl) Authenticate(ctx context.Context, token string) (*Principal, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	claims, err := s.tokens.ValidateToken(ctx, token)
	if err != nil {
		return nil, err
	}

	live, err := s.sessions.Exists(ctx, claims.ID)
	if err != nil {
		log.Error("failed to check session", "error", err)
		return nil, fmt.Errorf("failed to check session: %w", err)
	}
	if !live {
		log.Debug("token used after logout", "user_id", claims.UserID)
		return nil, auth.ErrSessionRevoked
	}

	user, err := s.users.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return nil, auth.ErrInvalidToken
		}
		log.Error("failed to load authenticated user", "error", err, "user_id", claims.UserID)
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	return &Principal{User: user, TokenID: claims.ID}, nil
}

// IssueToken signs a token for user and registers its session.
func (s *authServiceImpl) IssueToken(ctx context.Context, user *domain.User) (string, error) {
	token, err := s.tokens.GenerateToken(ctx, user.ID)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	if err := s.sessions.Create(ctx, token.ID, user.ID, token.ExpiresAt); err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to register session",
			"error", err,
			"user_id", user.ID)
		return "", fmt.Errorf("failed to register session: %w", err)
	}
	return token.Value, nil
}

// EnsureAdmin creates the bootstrap admin account if needed.
func (s *authServiceImpl) EnsureAdmin(ctx context.Context, name, email, password string) (bool, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		log.Debug("admin account already present")
		return false, nil
	} else if !errors.Is(err, store.ErrUserNotFound) {
		return false, fmt.Errorf("failed to look up admin account: %w", err)
	}

	user, err := domain.NewUser(name, email, password)
	if err != nil {
		return false, invalid(err)
	}
	user.AddRole(domain.Admin())

	if err := s.users.Create(ctx, user); err != nil {
		return false, fmt.Errorf("failed to create admin account: %w", err)
	}

	log.Info("admin account created", "user_id", user.ID)
	return true, nil
}
