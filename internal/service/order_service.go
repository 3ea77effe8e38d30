package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Nivlac17/jwt-pizza-service/internal/domain"
	"github.com/Nivlac17/jwt-pizza-service/internal/platform/factory"
	"github.com/Nivlac17/jwt-pizza-service/internal/platform/logger"
	"github.com/Nivlac17/jwt-pizza-service/internal/store"
	"github.com/google/uuid"
)

// MenuItemInput describes a menu item to add.
type MenuItemInput struct {
	Title       string
	Description string
	Image       string
	Price       float64
}

// OrderItemInput references a menu item by id. Description and price are
// taken from the menu, not from the client.
type OrderItemInput struct {
	MenuID   uuid.UUID
	Quantity int
}

// OrderInput is a diner's order request.
type OrderInput struct {
	FranchiseID uuid.UUID
	StoreID     uuid.UUID
	Items       []OrderItemInput
}

// OrderPage is one page of the caller's order history.
type OrderPage struct {
	DinerID uuid.UUID      `json:"dinerId"`
	Orders  []domain.Order `json:"orders"`
	Page    int            `json:"page"`
	More    bool           `json:"more"`
}

// OrderResult is a stored order and, when a factory fulfilled it, the
// factory's receipt. ReportURL is also set on fulfilment failures.
type OrderResult struct {
	Order     *domain.Order
	JWT       string
	ReportURL string
}

// Fulfiller sends stored orders to the pizza factory. Implemented by
// factory.Client.
type Fulfiller interface {
	Fulfill(ctx context.Context, diner factory.Diner, order *domain.Order) (*factory.Receipt, error)
}

// OrderObserver receives the outcome of order placement.
type OrderObserver interface {
	ObserveOrder(total float64, err error)
}

// OrderService serves the menu and places orders.
type OrderService interface {
	// GetMenu returns the whole menu in insertion order.
	GetMenu(ctx context.Context) ([]domain.MenuItem, error)

	// AddMenuItem appends an item and returns the updated menu. Admin only.
	AddMenuItem(ctx context.Context, actor *domain.User, input MenuItemInput) ([]domain.MenuItem, error)

	// ListOrders returns the actor's orders, newest first.
	ListOrders(ctx context.Context, actor *domain.User, page store.Page) (*OrderPage, error)

	// CreateOrder stores an order for the actor and forwards it to the
	// factory when one is configured. A factory failure returns both the
	// result (with ReportURL) and an error wrapping factory.ErrFulfillment.
	CreateOrder(ctx context.Context, actor *domain.User, input OrderInput) (*OrderResult, error)
}

type orderServiceImpl struct {
	menu       store.MenuStore
	orders     store.OrderStore
	franchises store.FranchiseStore
	fulfiller  Fulfiller
	observer   OrderObserver
	logger     *slog.Logger
}

var _ OrderService = (*orderServiceImpl)(nil)

// NewOrderService creates an OrderService. fulfiller and observer may be nil.
func NewOrderService(
	menu store.MenuStore,
	orders store.OrderStore,
	franchises store.FranchiseStore,
	fulfiller Fulfiller,
	observer OrderObserver,
	logger *slog.Logger,
) (OrderService, error) {
	if menu == nil || orders == nil || franchises == nil {
		return nil, fmt.Errorf("order service requires menu, order and franchise stores")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &orderServiceImpl{
		menu:       menu,
		orders:     orders,
		franchises: franchises,
		fulfiller:  fulfiller,
		observer:   observer,
		logger:     logger.With("component", "order_service"),
	}, nil
}

func (s *orderServiceImpl) GetMenu(ctx context.Context) ([]domain.MenuItem, error) {
	items, err := s.menu.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load menu: %w", err)
	}
	return items, nil
}

func (s *orderServiceImpl) AddMenuItem(ctx context.Context, actor *domain.User, input MenuItemInput) ([]domain.MenuItem, error) {
	if err := requireActor(actor); err != nil {
		return nil, err
	}
	if !actor.IsAdmin() {
		return nil, domain.NewAccessError("add menu item", msgAddMenuItem)
	}

	item, err := domain.NewMenuItem(input.Title, input.Description, input.Image, input.Price)
	if err != nil {
		return nil, invalid(err)
	}
	if err := s.menu.Add(ctx, item); err != nil {
		return nil, fmt.Errorf("failed to add menu item: %w", err)
	}

	logger.FromContextOrDefault(ctx, s.logger).Info("menu item added", "menu_id", item.ID)
	return s.GetMenu(ctx)
}

func (s *orderServiceImpl) ListOrders(ctx context.Context, actor *domain.User, page store.Page) (*OrderPage, error) {
	if err := requireActor(actor); err != nil {
		return nil, err
	}

	page = NormalizePage(page)
	orders, more, err := s.orders.ListForDiner(ctx, actor.ID, page)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return &OrderPage{DinerID: actor.ID, Orders: orders, Page: page.Number, More: more}, nil
}

func (s *orderServiceImpl) CreateOrder(ctx context.Context, actor *domain.User, input OrderInput) (result *OrderResult, err error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := requireActor(actor); err != nil {
		return nil, err
	}

	var total float64
	defer func() {
		if s.observer != nil {
			s.observer.ObserveOrder(total, err)
		}
	}()

	if _, err := s.franchises.GetStore(ctx, input.FranchiseID, input.StoreID); err != nil {
		return nil, fmt.Errorf("failed to resolve order store: %w", err)
	}

	items := make([]domain.OrderItem, 0, len(input.Items))
	for _, in := range input.Items {
		menuItem, err := s.menu.GetByID(ctx, in.MenuID)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve menu item: %w", err)
		}
		items = append(items, domain.OrderItem{
			MenuID:      menuItem.ID,
			Description: menuItem.Title,
			Price:       menuItem.Price,
			Quantity:    in.Quantity,
		})
	}

	order, err := domain.NewOrder(actor.ID, input.FranchiseID, input.StoreID, items)
	if err != nil {
		return nil, invalid(err)
	}
	if err := s.orders.Create(ctx, order); err != nil {
		return nil, fmt.Errorf("failed to store order: %w", err)
	}
	total = order.Total()
	log.Info("order stored", "order_id", order.ID, "diner_id", actor.ID)

	result = &OrderResult{Order: order}
	if s.fulfiller == nil {
		return result, nil
	}

	receipt, err := s.fulfiller.Fulfill(ctx, factory.Diner{
		ID:    actor.ID.String(),
		Name:  actor.Name,
		Email: actor.Email,
	}, order)
	if err != nil {
		var fe *factory.FulfillmentError
		if errors.As(err, &fe) {
			result.ReportURL = fe.ReportURL
		}
		return result, err
	}

	result.JWT = receipt.JWT
	result.ReportURL = receipt.ReportURL
	return result, nil
}
