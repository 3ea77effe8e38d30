package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Nivlac17/jwt-pizza-service/internal/domain"
	"github.com/Nivlac17/jwt-pizza-service/internal/platform/logger"
	"github.com/Nivlac17/jwt-pizza-service/internal/store"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// PostgresUserStore implements the store.UserStore interface
// using a PostgreSQL database as the storage backend.
type PostgresUserStore struct {
	db         *sql.DB
	bcryptCost int
	logger     *slog.Logger
}

// NewPostgresUserStore creates a new PostgreSQL implementation of the UserStore interface.
// A bcryptCost outside bcrypt's accepted range falls back to bcrypt.DefaultCost.
func NewPostgresUserStore(db *sql.DB, bcryptCost int, logger *slog.Logger) *PostgresUserStore {
	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		bcryptCost = bcrypt.DefaultCost
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresUserStore{
		db:         db,
		bcryptCost: bcryptCost,
		logger:     logger.With(slog.String("component", "user_store")),
	}
}

// Ensure PostgresUserStore implements store.UserStore interface
var _ store.UserStore = (*PostgresUserStore)(nil)

// Create implements store.UserStore.Create.
// The user row and its role rows are written in one transaction.
func (s *PostgresUserStore) Create(ctx context.Context, user *domain.User) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := user.Validate(); err != nil {
		log.Warn("user validation failed during create",
			slog.String("error", err.Error()),
			slog.String("user_id", user.ID.String()))
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(user.Password), s.bcryptCost)
	if err != nil {
		log.Error("failed to hash password", slog.String("error", err.Error()))
		return fmt.Errorf("failed to hash password: %w", err)
	}

	err = store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO users (id, name, email, password_hash, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6)
		`, user.ID, user.Name, user.Email, string(hash), user.CreatedAt, user.UpdatedAt)
		if err != nil {
			if IsUniqueViolation(err) {
				return store.ErrEmailExists
			}
			return MapError(err)
		}

		for _, role := range user.Roles {
			if err := insertRole(ctx, tx, user.ID, role); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, store.ErrEmailExists) {
			log.Debug("email already registered", slog.String("user_id", user.ID.String()))
		} else {
			log.Error("failed to create user",
				slog.String("error", err.Error()),
				slog.String("user_id", user.ID.String()))
		}
		return err
	}

	user.HashedPassword = string(hash)
	user.Password = ""

	log.Info("user created successfully", slog.String("user_id", user.ID.String()))
	return nil
}

// GetByID implements store.UserStore.GetByID
func (s *PostgresUserStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return s.getOne(ctx, "id", id)
}

// GetByEmail implements store.UserStore.GetByEmail
func (s *PostgresUserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return s.getOne(ctx, "email", domain.NormalizeEmail(email))
}

func (s *PostgresUserStore) getOne(ctx context.Context, column string, value any) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	// column is one of two constants chosen by the callers above.
	query := fmt.Sprintf(`
		SELECT id, name, email, password_hash, created_at, updated_at
		FROM users
		WHERE %s = $1
	`, column)

	var user domain.User
	err := s.db.QueryRowContext(ctx, query, value).Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.HashedPassword,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("user not found", slog.String("lookup", column))
			return nil, store.ErrUserNotFound
		}
		log.Error("failed to get user",
			slog.String("error", err.Error()),
			slog.String("lookup", column))
		return nil, err
	}

	roles, err := queryRoles(ctx, s.db, user.ID)
	if err != nil {
		log.Error("failed to load user roles",
			slog.String("error", err.Error()),
			slog.String("user_id", user.ID.String()))
		return nil, err
	}
	user.Roles = roles

	return &user, nil
}

// Update implements store.UserStore.Update.
// The password hash is only replaced when user.Password is set.
func (s *PostgresUserStore) Update(ctx context.Context, user *domain.User) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := user.Validate(); err != nil {
		log.Warn("user validation failed during update",
			slog.String("error", err.Error()),
			slog.String("user_id", user.ID.String()))
		return err
	}

	user.UpdatedAt = time.Now().UTC()

	var (
		result sql.Result
		err    error
	)
	if user.Password != "" {
		hash, hashErr := bcrypt.GenerateFromPassword([]byte(user.Password), s.bcryptCost)
		if hashErr != nil {
			log.Error("failed to hash password", slog.String("error", hashErr.Error()))
			return fmt.Errorf("failed to hash password: %w", hashErr)
		}
		result, err = s.db.ExecContext(ctx, `
			UPDATE users
			SET name = $1, email = $2, password_hash = $3, updated_at = $4
			WHERE id = $5
		`, user.Name, user.Email, string(hash), user.UpdatedAt, user.ID)
		if err == nil {
			user.HashedPassword = string(hash)
			user.Password = ""
		}
	} else {
		result, err = s.db.ExecContext(ctx, `
			UPDATE users
			SET name = $1, email = $2, updated_at = $3
			WHERE id = $4
		`, user.Name, user.Email, user.UpdatedAt, user.ID)
	}
	if err != nil {
		if IsUniqueViolation(err) {
			log.Debug("email already registered", slog.String("user_id", user.ID.String()))
			return store.ErrEmailExists
		}
		log.Error("failed to update user",
			slog.String("error", err.Error()),
			slog.String("user_id", user.ID.String()))
		return err
	}

	if err := CheckRowsAffected(result, store.ErrUserNotFound); err != nil {
		return err
	}

	log.Info("user updated successfully", slog.String("user_id", user.ID.String()))
	return nil
}

// List implements store.UserStore.List.
// One extra row is fetched to learn whether another page follows.
func (s *PostgresUserStore) List(
	ctx context.Context,
	page store.Page,
	nameFilter string,
) ([]domain.User, bool, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	rows, err := s.db.QueryContext(ctx, `
		SELECT u.id, u.name, u.email, r.role, r.object_id
		FROM (
			SELECT id, name, email
			FROM users
			WHERE name LIKE $1
			ORDER BY name, id
			LIMIT $2 OFFSET $3
		) u
		LEFT JOIN user_roles r ON r.user_id = u.id
		ORDER BY u.name, u.id, r.role
	`, likePattern(nameFilter), page.Limit+1, page.Offset())
	if err != nil {
		log.Error("failed to list users", slog.String("error", err.Error()))
		return nil, false, err
	}
	defer func() { _ = rows.Close() }()

	users := []domain.User{}
	for rows.Next() {
		var (
			u        domain.User
			role     sql.NullString
			objectID uuid.NullUUID
		)
		if err := rows.Scan(&u.ID, &u.Name, &u.Email, &role, &objectID); err != nil {
			log.Error("failed to scan user row", slog.String("error", err.Error()))
			return nil, false, err
		}
		if n := len(users); n == 0 || users[n-1].ID != u.ID {
			u.Roles = []domain.RoleAssignment{}
			users = append(users, u)
		}
		if role.Valid {
			last := &users[len(users)-1]
			last.Roles = append(last.Roles, roleFromRow(role.String, objectID))
		}
	}
	if err := rows.Err(); err != nil {
		log.Error("error iterating user rows", slog.String("error", err.Error()))
		return nil, false, err
	}

	more := len(users) > page.Limit
	if more {
		users = users[:page.Limit]
	}
	return users, more, nil
}

func queryRoles(ctx context.Context, db store.DBTX, userID uuid.UUID) ([]domain.RoleAssignment, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT role, object_id
		FROM user_roles
		WHERE user_id = $1
		ORDER BY role
	`, userID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	roles := []domain.RoleAssignment{}
	for rows.Next() {
		var (
			role     string
			objectID uuid.NullUUID
		)
		if err := rows.Scan(&role, &objectID); err != nil {
			return nil, err
		}
		roles = append(roles, roleFromRow(role, objectID))
	}
	return roles, rows.Err()
}

// insertRole grants a role. Granting a role the user already holds is a no-op.
func insertRole(ctx context.Context, db store.DBTX, userID uuid.UUID, role domain.RoleAssignment) error {
	var objectID uuid.NullUUID
	if role.ObjectID != nil {
		objectID = uuid.NullUUID{UUID: *role.ObjectID, Valid: true}
	}
	_, err := db.ExecContext(ctx, `
		INSERT INTO user_roles (user_id, role, object_id)
		VALUES ($1, $2, $3)
		ON CONFLICT DO NOTHING
	`, userID, string(role.Role), objectID)
	if err != nil {
		return fmt.Errorf("failed to insert role %s: %w", role.Role, MapError(err))
	}
	return nil
}

func roleFromRow(role string, objectID uuid.NullUUID) domain.RoleAssignment {
	a := domain.RoleAssignment{Role: domain.Role(role)}
	if objectID.Valid {
		id := objectID.UUID
		a.ObjectID = &id
	}
	return a
}
