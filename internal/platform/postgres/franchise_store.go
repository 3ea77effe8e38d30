package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Nivlac17/jwt-pizza-service/internal/domain"
	"github.com/Nivlac17/jwt-pizza-service/internal/platform/logger"
	"github.com/Nivlac17/jwt-pizza-service/internal/store"
	"github.com/google/uuid"
)

// ErrFranchiseNameExists is returned when a franchise name is already taken.
var ErrFranchiseNameExists = fmt.Errorf("%w: franchise name", store.ErrDuplicate)

// PostgresFranchiseStore implements the store.FranchiseStore interface.
// Franchise admins are not stored on the franchise; they are the users
// holding a franchisee role whose object_id is the franchise id.
type PostgresFranchiseStore struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewPostgresFranchiseStore creates a new PostgreSQL implementation of the FranchiseStore interface.
func NewPostgresFranchiseStore(db *sql.DB, logger *slog.Logger) *PostgresFranchiseStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresFranchiseStore{
		db:     db,
		logger: logger.With(slog.String("component", "franchise_store")),
	}
}

var _ store.FranchiseStore = (*PostgresFranchiseStore)(nil)

// Create implements store.FranchiseStore.Create
func (s *PostgresFranchiseStore) Create(ctx context.Context, f *domain.Franchise) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO franchises (id, name) VALUES ($1, $2)`,
			f.ID, f.Name)
		if err != nil {
			if IsUniqueViolation(err) {
				return ErrFranchiseNameExists
			}
			return MapError(err)
		}

		for _, admin := range f.Admins {
			if err := insertRole(ctx, tx, admin.ID, domain.FranchiseeOf(f.ID)); err != nil {
				if errors.Is(err, store.ErrInvalidEntity) {
					return fmt.Errorf("%w: admin %s", store.ErrUserNotFound, admin.ID)
				}
				return err
			}
		}
		return nil
	})
	if err != nil {
		log.Warn("failed to create franchise",
			slog.String("error", err.Error()),
			slog.String("franchise_id", f.ID.String()))
		return err
	}

	if f.Stores == nil {
		f.Stores = []domain.Store{}
	}
	log.Info("franchise created successfully",
		slog.String("franchise_id", f.ID.String()),
		slog.Int("admins", len(f.Admins)))
	return nil
}

// GetByID implements store.FranchiseStore.GetByID
func (s *PostgresFranchiseStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Franchise, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var f domain.Franchise
	err := s.db.QueryRowContext(ctx,
		`SELECT id, name FROM franchises WHERE id = $1`, id,
	).Scan(&f.ID, &f.Name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("franchise not found", slog.String("franchise_id", id.String()))
			return nil, store.ErrFranchiseNotFound
		}
		log.Error("failed to get franchise",
			slog.String("error", err.Error()),
			slog.String("franchise_id", id.String()))
		return nil, err
	}

	if err := s.loadDetails(ctx, &f); err != nil {
		return nil, err
	}
	return &f, nil
}

// ListForUser implements store.FranchiseStore.ListForUser
func (s *PostgresFranchiseStore) ListForUser(ctx context.Context, userID uuid.UUID) ([]domain.Franchise, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	franchises, err := s.queryFranchises(ctx, `
		SELECT f.id, f.name
		FROM franchises f
		JOIN user_roles r ON r.object_id = f.id AND r.role = 'franchisee'
		WHERE r.user_id = $1
		ORDER BY f.name, f.id
	`, userID)
	if err != nil {
		log.Error("failed to list franchises for user",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, err
	}
	return franchises, nil
}

// List implements store.FranchiseStore.List
func (s *PostgresFranchiseStore) List(
	ctx context.Context,
	page store.Page,
	nameFilter string,
) ([]domain.Franchise, bool, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	franchises, err := s.queryFranchises(ctx, `
		SELECT id, name
		FROM franchises
		WHERE name LIKE $1
		ORDER BY name, id
		LIMIT $2 OFFSET $3
	`, likePattern(nameFilter), page.Limit+1, page.Offset())
	if err != nil {
		log.Error("failed to list franchises", slog.String("error", err.Error()))
		return nil, false, err
	}

	more := len(franchises) > page.Limit
	if more {
		franchises = franchises[:page.Limit]
	}
	return franchises, more, nil
}

// Delete implements store.FranchiseStore.Delete.
// Stores go with the franchise through ON DELETE CASCADE.
func (s *PostgresFranchiseStore) Delete(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx,
			`DELETE FROM user_roles WHERE role = 'franchisee' AND object_id = $1`, id,
		); err != nil {
			return fmt.Errorf("failed to delete franchisee roles: %w", err)
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM franchises WHERE id = $1`, id); err != nil {
			return fmt.Errorf("failed to delete franchise: %w", err)
		}
		return nil
	})
	if err != nil {
		log.Error("failed to delete franchise",
			slog.String("error", err.Error()),
			slog.String("franchise_id", id.String()))
		return err
	}

	log.Info("franchise deleted", slog.String("franchise_id", id.String()))
	return nil
}

// CreateStore implements store.FranchiseStore.CreateStore
func (s *PostgresFranchiseStore) CreateStore(ctx context.Context, st *domain.Store) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO stores (id, franchise_id, name) VALUES ($1, $2, $3)`,
		st.ID, st.FranchiseID, st.Name)
	if err != nil {
		if IsForeignKeyViolation(err) {
			log.Debug("store references unknown franchise",
				slog.String("franchise_id", st.FranchiseID.String()))
			return store.ErrFranchiseNotFound
		}
		log.Error("failed to create store",
			slog.String("error", err.Error()),
			slog.String("franchise_id", st.FranchiseID.String()))
		return MapError(err)
	}

	log.Info("store created successfully",
		slog.String("store_id", st.ID.String()),
		slog.String("franchise_id", st.FranchiseID.String()))
	return nil
}

// GetStore implements store.FranchiseStore.GetStore
func (s *PostgresFranchiseStore) GetStore(ctx context.Context, franchiseID, storeID uuid.UUID) (*domain.Store, error) {
	var st domain.Store
	err := s.db.QueryRowContext(ctx, `
		SELECT id, franchise_id, name
		FROM stores
		WHERE id = $1 AND franchise_id = $2
	`, storeID, franchiseID).Scan(&st.ID, &st.FranchiseID, &st.Name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrStoreNotFound
		}
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to get store",
			slog.String("error", err.Error()),
			slog.String("store_id", storeID.String()))
		return nil, err
	}
	return &st, nil
}

// DeleteStore implements store.FranchiseStore.DeleteStore
func (s *PostgresFranchiseStore) DeleteStore(ctx context.Context, franchiseID, storeID uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx,
		`DELETE FROM stores WHERE id = $1 AND franchise_id = $2`,
		storeID, franchiseID)
	if err != nil {
		log.Error("failed to delete store",
			slog.String("error", err.Error()),
			slog.String("store_id", storeID.String()))
		return err
	}
	if err := CheckRowsAffected(result, store.ErrStoreNotFound); err != nil {
		return err
	}

	log.Info("store deleted",
		slog.String("store_id", storeID.String()),
		slog.String("franchise_id", franchiseID.String()))
	return nil
}

// queryFranchises runs a query selecting (id, name) and then loads admins and
// stores for every row. Rows are drained before the detail queries run.
func (s *PostgresFranchiseStore) queryFranchises(ctx context.Context, query string, args ...any) ([]domain.Franchise, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}

	franchises := []domain.Franchise{}
	for rows.Next() {
		var f domain.Franchise
		if err := rows.Scan(&f.ID, &f.Name); err != nil {
			_ = rows.Close()
			return nil, err
		}
		franchises = append(franchises, f)
	}
	if err := rows.Err(); err != nil {
		_ = rows.Close()
		return nil, err
	}
	_ = rows.Close()

	for i := range franchises {
		if err := s.loadDetails(ctx, &franchises[i]); err != nil {
			return nil, err
		}
	}
	return franchises, nil
}

func (s *PostgresFranchiseStore) loadDetails(ctx context.Context, f *domain.Franchise) error {
	admins, err := s.db.QueryContext(ctx, `
		SELECT u.id, u.name, u.email
		FROM user_roles r
		JOIN users u ON u.id = r.user_id
		WHERE r.role = 'franchisee' AND r.object_id = $1
		ORDER BY r.position
	`, f.ID)
	if err != nil {
		return fmt.Errorf("failed to load franchise admins: %w", err)
	}
	f.Admins = []domain.FranchiseAdmin{}
	for admins.Next() {
		var a domain.FranchiseAdmin
		if err := admins.Scan(&a.ID, &a.Name, &a.Email); err != nil {
			_ = admins.Close()
			return fmt.Errorf("failed to scan franchise admin: %w", err)
		}
		f.Admins = append(f.Admins, a)
	}
	if err := admins.Err(); err != nil {
		_ = admins.Close()
		return err
	}
	_ = admins.Close()

	stores, err := s.db.QueryContext(ctx, `
		SELECT id, franchise_id, name
		FROM stores
		WHERE franchise_id = $1
		ORDER BY name, id
	`, f.ID)
	if err != nil {
		return fmt.Errorf("failed to load franchise stores: %w", err)
	}
	defer func() { _ = stores.Close() }()
	f.Stores = []domain.Store{}
	for stores.Next() {
		var st domain.Store
		if err := stores.Scan(&st.ID, &st.FranchiseID, &st.Name); err != nil {
			return fmt.Errorf("failed to scan store: %w", err)
		}
		f.Stores = append(f.Stores, st)
	}
	return stores.Err()
}
