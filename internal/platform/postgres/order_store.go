package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/Nivlac17/jwt-pizza-service/internal/domain"
	"github.com/Nivlac17/jwt-pizza-service/internal/platform/logger"
	"github.com/Nivlac17/jwt-pizza-service/internal/store"
	"github.com/google/uuid"
)

// PostgresOrderStore implements the store.OrderStore interface.
type PostgresOrderStore struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewPostgresOrderStore creates a new PostgreSQL implementation of the OrderStore interface.
func NewPostgresOrderStore(db *sql.DB, logger *slog.Logger) *PostgresOrderStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresOrderStore{
		db:     db,
		logger: logger.With(slog.String("component", "order_store")),
	}
}

var _ store.OrderStore = (*PostgresOrderStore)(nil)

// Create implements store.OrderStore.Create. The order and its items are
// written in one transaction.
func (s *PostgresOrderStore) Create(ctx context.Context, order *domain.Order) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := order.Validate(); err != nil {
		log.Warn("order validation failed",
			slog.String("error", err.Error()),
			slog.String("order_id", order.ID.String()))
		return err
	}

	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO orders (id, diner_id, franchise_id, store_id, created_at)
			VALUES ($1, $2, $3, $4, $5)
		`, order.ID, order.DinerID, order.FranchiseID, order.StoreID, order.Date)
		if err != nil {
			return fmt.Errorf("failed to insert order: %w", MapError(err))
		}

		for _, it := range order.Items {
			_, err := tx.ExecContext(ctx, `
				INSERT INTO order_items (id, order_id, menu_id, description, price, quantity)
				VALUES ($1, $2, $3, $4, $5, $6)
			`, it.ID, order.ID, it.MenuID, it.Description, it.Price, it.Quantity)
			if err != nil {
				return fmt.Errorf("failed to insert order item: %w", MapError(err))
			}
		}
		return nil
	})
	if err != nil {
		log.Error("failed to create order",
			slog.String("error", err.Error()),
			slog.String("order_id", order.ID.String()))
		return err
	}

	log.Info("order created",
		slog.String("order_id", order.ID.String()),
		slog.String("diner_id", order.DinerID.String()),
		slog.Int("items", len(order.Items)))
	return nil
}

// ListForDiner implements store.OrderStore.ListForDiner
func (s *PostgresOrderStore) ListForDiner(
	ctx context.Context,
	dinerID uuid.UUID,
	page store.Page,
) ([]domain.Order, bool, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	rows, err := s.db.QueryContext(ctx, `
		SELECT o.id, o.diner_id, o.franchise_id, o.store_id, o.created_at,
			i.id, i.menu_id, i.description, i.price, i.quantity
		FROM (
			SELECT id, diner_id, franchise_id, store_id, created_at
			FROM orders
			WHERE diner_id = $1
			ORDER BY created_at DESC, id
			LIMIT $2 OFFSET $3
		) o
		JOIN order_items i ON i.order_id = o.id
		ORDER BY o.created_at DESC, o.id, i.id
	`, dinerID, page.Limit+1, page.Offset())
	if err != nil {
		log.Error("failed to list orders",
			slog.String("error", err.Error()),
			slog.String("diner_id", dinerID.String()))
		return nil, false, err
	}
	defer func() { _ = rows.Close() }()

	orders := []domain.Order{}
	for rows.Next() {
		var (
			o  domain.Order
			it domain.OrderItem
		)
		if err := rows.Scan(
			&o.ID, &o.DinerID, &o.FranchiseID, &o.StoreID, &o.Date,
			&it.ID, &it.MenuID, &it.Description, &it.Price, &it.Quantity,
		); err != nil {
			log.Error("failed to scan order row", slog.String("error", err.Error()))
			return nil, false, err
		}
		if n := len(orders); n == 0 || orders[n-1].ID != o.ID {
			o.Items = []domain.OrderItem{}
			orders = append(orders, o)
		}
		last := &orders[len(orders)-1]
		last.Items = append(last.Items, it)
	}
	if err := rows.Err(); err != nil {
		log.Error("error iterating order rows", slog.String("error", err.Error()))
		return nil, false, err
	}

	more := len(orders) > page.Limit
	if more {
		orders = orders[:page.Limit]
	}
	return orders, more, nil
}
