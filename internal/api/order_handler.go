package api

import (
	"errors"
	"net/http"

	"github.com/Nivlac17/jwt-pizza-service/internal/api/shared"
	"github.com/Nivlac17/jwt-pizza-service/internal/platform/factory"
	"github.com/Nivlac17/jwt-pizza-service/internal/service"
	"github.com/Nivlac17/jwt-pizza-service/internal/store"
)

// OrderHandler serves /api/order and the menu.
type OrderHandler struct {
	orderService service.OrderService
}

// NewOrderHandler creates an OrderHandler.
func NewOrderHandler(orderService service.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

// GetMenu handles GET /api/order/menu.
func (h *OrderHandler) GetMenu(w http.ResponseWriter, r *http.Request) {
	menu, err := h.orderService.GetMenu(r.Context())
	if err != nil {
		HandleAPIError(w, r, err, "Failed to load menu")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, menu)
}

// AddMenuItem handles PUT /api/order/menu.
func (h *OrderHandler) AddMenuItem(w http.ResponseWriter, r *http.Request) {
	p, ok := requirePrincipal(w, r)
	if !ok {
		return
	}

	var req MenuItemRequest
	if !decodeAndValidate(w, r, &req, "") {
		return
	}

	menu, err := h.orderService.AddMenuItem(r.Context(), p.User, service.MenuItemInput{
		Title:       req.Title,
		Description: req.Description,
		Image:       req.Image,
		Price:       req.Price,
	})
	if err != nil {
		HandleAPIError(w, r, err, "Failed to add menu item")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, menu)
}

// ListOrders handles GET /api/order.
func (h *OrderHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	p, ok := requirePrincipal(w, r)
	if !ok {
		return
	}

	result, err := h.orderService.ListOrders(r.Context(), p.User, store.Page{
		Number: shared.QueryInt(r, "page", 1),
		Limit:  shared.QueryInt(r, "limit", service.DefaultPageLimit),
	})
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list orders")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, OrderListResponse{
		DinerID: result.DinerID,
		Orders:  result.Orders,
		Page:    result.Page,
		More:    result.More,
	})
}

// CreateOrder handles POST /api/order.
func (h *OrderHandler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	p, ok := requirePrincipal(w, r)
	if !ok {
		return
	}

	var req OrderRequest
	if !decodeAndValidate(w, r, &req, "") {
		return
	}
	items := make([]service.OrderItemInput, 0, len(req.Items))
	for _, it := range req.Items {
		items = append(items, service.OrderItemInput{MenuID: it.MenuID, Quantity: it.Quantity})
	}

	result, err := h.orderService.CreateOrder(r.Context(), p.User, service.OrderInput{
		FranchiseID: req.FranchiseID,
		StoreID:     req.StoreID,
		Items:       items,
	})
	if err != nil {
		if errors.Is(err, factory.ErrFulfillment) && result != nil {
			shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError, msgFactoryFailure, err,
				shared.WithField("followLinkToEndChaos", result.ReportURL))
			return
		}
		HandleAPIError(w, r, err, "Failed to create order")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, OrderResponse{
		Order:                result.Order,
		JWT:                  result.JWT,
		FollowLinkToEndChaos: result.ReportURL,
	})
}
