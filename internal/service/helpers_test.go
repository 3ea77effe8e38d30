package service

import (
	"context"
	"testing"

	"github.com/Nivlac17/jwt-pizza-service/internal/config"
	"github.com/Nivlac17/jwt-pizza-service/internal/domain"
	"github.com/Nivlac17/jwt-pizza-service/internal/mocks"
	"github.com/Nivlac17/jwt-pizza-service/internal/service/auth"
	"github.com/stretchr/testify/require"
)

type testEnv struct {
	db         *mocks.MemoryDB
	users      *mocks.MockUserStore
	franchises *mocks.MockFranchiseStore
	menu       *mocks.MockMenuStore
	orders     *mocks.MockOrderStore
	sessions   *mocks.MockSessionStore

	auth      AuthService
	user      UserService
	franchise FranchiseService
	order     OrderService
}

func newTestEnv(t *testing.T, fulfiller Fulfiller) *testEnv {
	t.Helper()

	db := mocks.NewMemoryDB()
	env := &testEnv{
		db:         db,
		users:      mocks.NewMockUserStore(db),
		franchises: mocks.NewMockFranchiseStore(db),
		menu:       mocks.NewMockMenuStore(db),
		orders:     mocks.NewMockOrderStore(db),
		sessions:   mocks.NewMockSessionStore(db),
	}

	jwtSvc, err := auth.NewJWTService(config.AuthConfig{
		JWTSecret:            "test-jwt-secret-that-is-32-chars-long",
		TokenLifetimeMinutes: 60,
	})
	require.NoError(t, err)

	env.auth, err = NewAuthService(env.users, env.sessions, jwtSvc, auth.NewBcryptVerifier(), nil, nil)
	require.NoError(t, err)
	env.user, err = NewUserService(env.users, env.auth, nil)
	require.NoError(t, err)
	env.franchise, err = NewFranchiseService(env.franchises, env.users, nil)
	require.NoError(t, err)
	env.order, err = NewOrderService(env.menu, env.orders, env.franchises, fulfiller, nil, nil)
	require.NoError(t, err)

	return env
}

// register creates a diner and returns it with roles reloaded from the store.
func (e *testEnv) register(t *testing.T, name, email string) (*domain.User, string) {
	t.Helper()
	res, err := e.auth.Register(context.Background(), name, email, "a")
	require.NoError(t, err)
	return res.User, res.Token
}

func (e *testEnv) admin(t *testing.T) *domain.User {
	t.Helper()
	_, err := e.auth.EnsureAdmin(context.Background(), "pizza admin", "a@jwt.com", "admin")
	require.NoError(t, err)
	u, err := e.users.GetByEmail(context.Background(), "a@jwt.com")
	require.NoError(t, err)
	return u
}

func (e *testEnv) reload(t *testing.T, u *domain.User) *domain.User {
	t.Helper()
	fresh, err := e.users.GetByID(context.Background(), u.ID)
	require.NoError(t, err)
	return fresh
}
