package postgres

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/Nivlac17/jwt-pizza-service/internal/domain"
	"github.com/Nivlac17/jwt-pizza-service/internal/platform/logger"
	"github.com/Nivlac17/jwt-pizza-service/internal/store"
	"github.com/google/uuid"
)

// PostgresMenuStore implements the store.MenuStore interface.
type PostgresMenuStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresMenuStore creates a new PostgreSQL implementation of the MenuStore interface.
func NewPostgresMenuStore(db store.DBTX, logger *slog.Logger) *PostgresMenuStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresMenuStore{
		db:     db,
		logger: logger.With(slog.String("component", "menu_store")),
	}
}

var _ store.MenuStore = (*PostgresMenuStore)(nil)

// Add implements store.MenuStore.Add
func (s *PostgresMenuStore) Add(ctx context.Context, item *domain.MenuItem) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := item.Validate(); err != nil {
		log.Warn("menu item validation failed",
			slog.String("error", err.Error()),
			slog.String("title", item.Title))
		return err
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO menu_items (id, title, description, image, price)
		VALUES ($1, $2, $3, $4, $5)
	`, item.ID, item.Title, item.Description, item.Image, item.Price)
	if err != nil {
		log.Error("failed to add menu item",
			slog.String("error", err.Error()),
			slog.String("menu_id", item.ID.String()))
		return MapError(err)
	}

	log.Info("menu item added", slog.String("menu_id", item.ID.String()))
	return nil
}

// List implements store.MenuStore.List. Items come back in insertion order.
func (s *PostgresMenuStore) List(ctx context.Context) ([]domain.MenuItem, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, title, description, image, price
		FROM menu_items
		ORDER BY position
	`)
	if err != nil {
		log.Error("failed to list menu", slog.String("error", err.Error()))
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	items := []domain.MenuItem{}
	for rows.Next() {
		var it domain.MenuItem
		if err := rows.Scan(&it.ID, &it.Title, &it.Description, &it.Image, &it.Price); err != nil {
			log.Error("failed to scan menu item", slog.String("error", err.Error()))
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

// GetByID implements store.MenuStore.GetByID
func (s *PostgresMenuStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.MenuItem, error) {
	var it domain.MenuItem
	err := s.db.QueryRowContext(ctx, `
		SELECT id, title, description, image, price
		FROM menu_items
		WHERE id = $1
	`, id).Scan(&it.ID, &it.Title, &it.Description, &it.Image, &it.Price)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrMenuItemNotFound
		}
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to get menu item",
			slog.String("error", err.Error()),
			slog.String("menu_id", id.String()))
		return nil, err
	}
	return &it, nil
}
