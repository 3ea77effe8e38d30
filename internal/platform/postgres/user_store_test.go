package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/Nivlac17/jwt-pizza-service/internal/domain"
	"github.com/Nivlac17/jwt-pizza-service/internal/store"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newMock(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		_ = db.Close()
	})
	return db, mock
}

func TestNewPostgresUserStore_BcryptCost(t *testing.T) {
	tests := []struct {
		name string
		cost int
		want int
	}{
		{"valid cost", 12, 12},
		{"zero uses default", 0, bcrypt.DefaultCost},
		{"too low uses default", 3, bcrypt.DefaultCost},
		{"too high uses default", 32, bcrypt.DefaultCost},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewPostgresUserStore(&sql.DB{}, tt.cost, nil)
			assert.Equal(t, tt.want, s.bcryptCost)
		})
	}
}

func TestPostgresUserStore_Create(t *testing.T) {
	t.Run("writes user and roles in a transaction", func(t *testing.T) {
		db, mock := newMock(t)
		s := NewPostgresUserStore(db, bcrypt.MinCost, nil)

		user, err := domain.NewUser("pizza diner", "d@jwt.com", "diner")
		require.NoError(t, err)
		user.AddRole(domain.Admin())

		mock.ExpectBegin()
		mock.ExpectExec("INSERT INTO users").
			WithArgs(user.ID, "pizza diner", "d@jwt.com", sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("INSERT INTO user_roles").
			WithArgs(user.ID, "diner", nil).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("INSERT INTO user_roles").
			WithArgs(user.ID, "admin", nil).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		require.NoError(t, s.Create(context.Background(), user))
		assert.Empty(t, user.Password)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte("diner")))
	})

	t.Run("duplicate email", func(t *testing.T) {
		db, mock := newMock(t)
		s := NewPostgresUserStore(db, bcrypt.MinCost, nil)

		user, err := domain.NewUser("pizza diner", "d@jwt.com", "diner")
		require.NoError(t, err)

		mock.ExpectBegin()
		mock.ExpectExec("INSERT INTO users").
			WillReturnError(&pgconn.PgError{Code: uniqueViolationCode, ConstraintName: "users_email_key"})
		mock.ExpectRollback()

		err = s.Create(context.Background(), user)
		assert.ErrorIs(t, err, store.ErrEmailExists)
		assert.True(t, store.IsDuplicateError(err))
	})

	t.Run("invalid user is rejected before the database", func(t *testing.T) {
		db, _ := newMock(t)
		s := NewPostgresUserStore(db, bcrypt.MinCost, nil)

		err := s.Create(context.Background(), &domain.User{ID: uuid.New(), Email: "x@jwt.com", Password: "x"})
		assert.ErrorIs(t, err, domain.ErrEmptyName)
	})
}

func TestPostgresUserStore_GetByEmail(t *testing.T) {
	db, mock := newMock(t)
	s := NewPostgresUserStore(db, bcrypt.MinCost, nil)

	id := uuid.New()
	franchiseID := uuid.New()
	now := time.Now().UTC()

	mock.ExpectQuery("SELECT id, name, email, password_hash").
		WithArgs("f@jwt.com").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "email", "password_hash", "created_at", "updated_at"}).
			AddRow(id.String(), "pizza franchisee", "f@jwt.com", "hash", now, now))
	mock.ExpectQuery("SELECT role, object_id").
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows([]string{"role", "object_id"}).
			AddRow("diner", nil).
			AddRow("franchisee", franchiseID.String()))

	user, err := s.GetByEmail(context.Background(), "  F@jwt.com ")
	require.NoError(t, err)
	assert.Equal(t, id, user.ID)
	assert.Equal(t, "hash", user.HashedPassword)
	require.Len(t, user.Roles, 2)
	assert.Equal(t, domain.Diner(), user.Roles[0])
	assert.True(t, user.IsFranchiseeOf(franchiseID))
}

func TestPostgresUserStore_GetByID_NotFound(t *testing.T) {
	db, mock := newMock(t)
	s := NewPostgresUserStore(db, bcrypt.MinCost, nil)

	id := uuid.New()
	mock.ExpectQuery("SELECT id, name, email, password_hash").
		WithArgs(id).
		WillReturnError(sql.ErrNoRows)

	_, err := s.GetByID(context.Background(), id)
	assert.ErrorIs(t, err, store.ErrUserNotFound)
}

func TestPostgresUserStore_Update(t *testing.T) {
	existing := func() *domain.User {
		return &domain.User{
			ID:             uuid.New(),
			Name:           "pizza diner",
			Email:          "d@jwt.com",
			HashedPassword: "old-hash",
			Roles:          []domain.RoleAssignment{domain.Diner()},
		}
	}

	t.Run("without password keeps the hash", func(t *testing.T) {
		db, mock := newMock(t)
		s := NewPostgresUserStore(db, bcrypt.MinCost, nil)
		u := existing()

		mock.ExpectExec("UPDATE users\\s+SET name = \\$1, email = \\$2, updated_at = \\$3").
			WithArgs(u.Name, u.Email, sqlmock.AnyArg(), u.ID).
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, s.Update(context.Background(), u))
		assert.Equal(t, "old-hash", u.HashedPassword)
	})

	t.Run("with password rehashes", func(t *testing.T) {
		db, mock := newMock(t)
		s := NewPostgresUserStore(db, bcrypt.MinCost, nil)
		u := existing()
		u.Password = "new"

		mock.ExpectExec("password_hash = \\$3").
			WithArgs(u.Name, u.Email, sqlmock.AnyArg(), sqlmock.AnyArg(), u.ID).
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, s.Update(context.Background(), u))
		assert.Empty(t, u.Password)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.HashedPassword), []byte("new")))
	})

	t.Run("missing user", func(t *testing.T) {
		db, mock := newMock(t)
		s := NewPostgresUserStore(db, bcrypt.MinCost, nil)

		mock.ExpectExec("UPDATE users").WillReturnResult(sqlmock.NewResult(0, 0))

		assert.ErrorIs(t, s.Update(context.Background(), existing()), store.ErrUserNotFound)
	})

	t.Run("email taken", func(t *testing.T) {
		db, mock := newMock(t)
		s := NewPostgresUserStore(db, bcrypt.MinCost, nil)

		mock.ExpectExec("UPDATE users").WillReturnError(&pgconn.PgError{Code: uniqueViolationCode})

		assert.ErrorIs(t, s.Update(context.Background(), existing()), store.ErrEmailExists)
	})
}

func TestPostgresUserStore_List(t *testing.T) {
	db, mock := newMock(t)
	s := NewPostgresUserStore(db, bcrypt.MinCost, nil)

	a, b, c := uuid.New(), uuid.New(), uuid.New()
	mock.ExpectQuery("LEFT JOIN user_roles").
		WithArgs("pizza%", 3, 0).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "email", "role", "object_id"}).
			AddRow(a.String(), "pizza a", "a@jwt.com", "admin", nil).
			AddRow(a.String(), "pizza a", "a@jwt.com", "diner", nil).
			AddRow(b.String(), "pizza b", "b@jwt.com", nil, nil).
			AddRow(c.String(), "pizza c", "c@jwt.com", "diner", nil))

	users, more, err := s.List(context.Background(), store.Page{Number: 1, Limit: 2}, "pizza*")
	require.NoError(t, err)
	assert.True(t, more)
	require.Len(t, users, 2)
	assert.Len(t, users[0].Roles, 2)
	assert.True(t, users[0].IsAdmin())
	assert.NotNil(t, users[1].Roles)
	assert.Empty(t, users[1].Roles)
}
