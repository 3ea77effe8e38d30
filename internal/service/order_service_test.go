package service

import (
	"context"
	"errors"
	"testing"

	"github.com/Nivlac17/jwt-pizza-service/internal/domain"
	"github.com/Nivlac17/jwt-pizza-service/internal/platform/factory"
	"github.com/Nivlac17/jwt-pizza-service/internal/store"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubFulfiller struct {
	receipt *factory.Receipt
	err     error
	diners  []factory.Diner
}

func (f *stubFulfiller) Fulfill(_ context.Context, diner factory.Diner, _ *domain.Order) (*factory.Receipt, error) {
	f.diners = append(f.diners, diner)
	return f.receipt, f.err
}

type recordingOrderObserver struct {
	totals []float64
	errs   []error
}

func (o *recordingOrderObserver) ObserveOrder(total float64, err error) {
	o.totals = append(o.totals, total)
	o.errs = append(o.errs, err)
}

// seedStore creates a franchise with one store and a two-item menu.
func (e *testEnv) seedStore(t *testing.T) (*domain.Store, []domain.MenuItem) {
	t.Helper()
	ctx := context.Background()
	admin := e.admin(t)

	f, err := e.franchise.CreateFranchise(ctx, admin, "pizzaPocket", nil)
	require.NoError(t, err)
	st, err := e.franchise.CreateStore(ctx, admin, f.ID, "SLC")
	require.NoError(t, err)

	_, err = e.order.AddMenuItem(ctx, admin, MenuItemInput{Title: "Veggie", Description: "A garden of delight", Image: "pizza1.png", Price: 0.0038})
	require.NoError(t, err)
	menu, err := e.order.AddMenuItem(ctx, admin, MenuItemInput{Title: "Pepperoni", Description: "Spicy treat", Image: "pizza2.png", Price: 0.0042})
	require.NoError(t, err)
	return st, menu
}

func TestOrderService_Menu(t *testing.T) {
	env := newTestEnv(t, nil)
	ctx := context.Background()
	diner, _ := env.register(t, "pizza diner", "d@jwt.com")
	admin := env.admin(t)

	menu, err := env.order.GetMenu(ctx)
	require.NoError(t, err)
	assert.Empty(t, menu)

	_, err = env.order.AddMenuItem(ctx, diner, MenuItemInput{Title: "Student", Price: 0.0001})
	assertAccessMessage(t, err, "unable to add menu item")

	menu, err = env.order.AddMenuItem(ctx, admin, MenuItemInput{Title: "Student", Description: "No topping", Image: "pizza9.png", Price: 0.0001})
	require.NoError(t, err)
	require.Len(t, menu, 1)
	assert.Equal(t, "Student", menu[0].Title)

	_, err = env.order.AddMenuItem(ctx, admin, MenuItemInput{Title: "", Price: 1})
	assert.ErrorIs(t, err, domain.ErrValidation)
	_, err = env.order.AddMenuItem(ctx, admin, MenuItemInput{Title: "Negative", Price: -1})
	assert.ErrorIs(t, err, domain.ErrValidation)

	menu, err = env.order.GetMenu(ctx)
	require.NoError(t, err)
	assert.Len(t, menu, 1)
}

func TestOrderService_CreateOrderWithoutFactory(t *testing.T) {
	env := newTestEnv(t, nil)
	ctx := context.Background()
	st, menu := env.seedStore(t)
	diner, _ := env.register(t, "pizza diner", "d@jwt.com")

	res, err := env.order.CreateOrder(ctx, diner, OrderInput{
		FranchiseID: st.FranchiseID,
		StoreID:     st.ID,
		Items: []OrderItemInput{
			{MenuID: menu[0].ID},
			{MenuID: menu[1].ID, Quantity: 2},
		},
	})
	require.NoError(t, err)
	assert.Empty(t, res.JWT)
	require.Len(t, res.Order.Items, 2)
	assert.Equal(t, "Veggie", res.Order.Items[0].Description)
	assert.Equal(t, 1, res.Order.Items[0].Quantity)
	assert.InDelta(t, 0.0038+2*0.0042, res.Order.Total(), 1e-9)

	page, err := env.order.ListOrders(ctx, diner, store.Page{})
	require.NoError(t, err)
	assert.Equal(t, diner.ID, page.DinerID)
	assert.Equal(t, 1, page.Page)
	assert.False(t, page.More)
	require.Len(t, page.Orders, 1)
	assert.Equal(t, res.Order.ID, page.Orders[0].ID)
}

func TestOrderService_CreateOrderRejects(t *testing.T) {
	env := newTestEnv(t, nil)
	ctx := context.Background()
	st, menu := env.seedStore(t)
	diner, _ := env.register(t, "pizza diner", "d@jwt.com")

	tests := []struct {
		name    string
		input   OrderInput
		wantErr error
	}{
		{
			name:    "unknown store",
			input:   OrderInput{FranchiseID: st.FranchiseID, StoreID: uuid.New(), Items: []OrderItemInput{{MenuID: menu[0].ID}}},
			wantErr: store.ErrStoreNotFound,
		},
		{
			name:    "store of another franchise",
			input:   OrderInput{FranchiseID: uuid.New(), StoreID: st.ID, Items: []OrderItemInput{{MenuID: menu[0].ID}}},
			wantErr: store.ErrStoreNotFound,
		},
		{
			name:    "unknown menu item",
			input:   OrderInput{FranchiseID: st.FranchiseID, StoreID: st.ID, Items: []OrderItemInput{{MenuID: uuid.New()}}},
			wantErr: store.ErrMenuItemNotFound,
		},
		{
			name:    "no items",
			input:   OrderInput{FranchiseID: st.FranchiseID, StoreID: st.ID},
			wantErr: domain.ErrValidation,
		},
		{
			name:    "negative quantity",
			input:   OrderInput{FranchiseID: st.FranchiseID, StoreID: st.ID, Items: []OrderItemInput{{MenuID: menu[0].ID, Quantity: -1}}},
			wantErr: domain.ErrValidation,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.order.CreateOrder(ctx, diner, tt.input)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	page, err := env.order.ListOrders(ctx, diner, store.Page{})
	require.NoError(t, err)
	assert.Empty(t, page.Orders)
}

func TestOrderService_CreateOrderFulfilled(t *testing.T) {
	fulfiller := &stubFulfiller{receipt: &factory.Receipt{JWT: "factory.jwt.value", ReportURL: "https://factory.example/report"}}
	env := newTestEnv(t, fulfiller)
	observer := &recordingOrderObserver{}
	var err error
	env.order, err = NewOrderService(env.menu, env.orders, env.franchises, fulfiller, observer, nil)
	require.NoError(t, err)

	st, menu := env.seedStore(t)
	diner, _ := env.register(t, "pizza diner", "d@jwt.com")

	res, err := env.order.CreateOrder(context.Background(), diner, OrderInput{
		FranchiseID: st.FranchiseID,
		StoreID:     st.ID,
		Items:       []OrderItemInput{{MenuID: menu[1].ID}},
	})
	require.NoError(t, err)
	assert.Equal(t, "factory.jwt.value", res.JWT)
	assert.Equal(t, "https://factory.example/report", res.ReportURL)

	require.Len(t, fulfiller.diners, 1)
	assert.Equal(t, factory.Diner{ID: diner.ID.String(), Name: "pizza diner", Email: "d@jwt.com"}, fulfiller.diners[0])
	require.Len(t, observer.totals, 1)
	assert.InDelta(t, 0.0042, observer.totals[0], 1e-9)
	assert.NoError(t, observer.errs[0])
}

func TestOrderService_CreateOrderFactoryFailure(t *testing.T) {
	fulfiller := &stubFulfiller{err: &factory.FulfillmentError{StatusCode: 500, ReportURL: "https://factory.example/chaos"}}
	env := newTestEnv(t, fulfiller)
	st, menu := env.seedStore(t)
	diner, _ := env.register(t, "pizza diner", "d@jwt.com")

	res, err := env.order.CreateOrder(context.Background(), diner, OrderInput{
		FranchiseID: st.FranchiseID,
		StoreID:     st.ID,
		Items:       []OrderItemInput{{MenuID: menu[0].ID}},
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, factory.ErrFulfillment))
	require.NotNil(t, res)
	assert.Equal(t, "https://factory.example/chaos", res.ReportURL)
	assert.Empty(t, res.JWT)

	// The order was stored before the factory call.
	page, err := env.order.ListOrders(context.Background(), diner, store.Page{})
	require.NoError(t, err)
	assert.Len(t, page.Orders, 1)
}
