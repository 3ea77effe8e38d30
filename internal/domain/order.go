package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Order validation errors
var (
	ErrOrderNoItems         = errors.New("order must contain at least one item")
	ErrOrderMissingStore    = errors.New("order must reference a franchise and a store")
	ErrOrderInvalidQuantity = errors.New("order item quantity must be positive")
)

// Order is a diner's purchase from one store.
type Order struct {
	ID          uuid.UUID   `json:"id"`
	DinerID     uuid.UUID   `json:"dinerId"`
	FranchiseID uuid.UUID   `json:"franchiseId"`
	StoreID     uuid.UUID   `json:"storeId"`
	Date        time.Time   `json:"date"`
	Items       []OrderItem `json:"items"`
}

// OrderItem is one menu item line of an order. Description and Price are
// copied from the menu when the order is placed.
type OrderItem struct {
	ID          uuid.UUID `json:"id"`
	MenuID      uuid.UUID `json:"menuId"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	Quantity    int       `json:"quantity"`
}

// NewOrder creates an order for dinerID. Item ids are assigned here and a
// zero quantity defaults to one.
func NewOrder(dinerID, franchiseID, storeID uuid.UUID, items []OrderItem) (*Order, error) {
	o := &Order{
		ID:          uuid.New(),
		DinerID:     dinerID,
		FranchiseID: franchiseID,
		StoreID:     storeID,
		Date:        time.Now().UTC(),
		Items:       make([]OrderItem, 0, len(items)),
	}
	for _, it := range items {
		it.ID = uuid.New()
		if it.Quantity == 0 {
			it.Quantity = 1
		}
		o.Items = append(o.Items, it)
	}
	if err := o.Validate(); err != nil {
		return nil, err
	}
	return o, nil
}

// Validate checks if the Order has valid data.
func (o *Order) Validate() error {
	if o.DinerID == uuid.Nil {
		return ErrEmptyUserID
	}
	if o.FranchiseID == uuid.Nil || o.StoreID == uuid.Nil {
		return ErrOrderMissingStore
	}
	if len(o.Items) == 0 {
		return ErrOrderNoItems
	}
	for _, it := range o.Items {
		if it.Quantity <= 0 {
			return ErrOrderInvalidQuantity
		}
		if it.MenuID == uuid.Nil {
			return NewValidationError("menuId", "is required", ErrInvalidID)
		}
	}
	return nil
}

// Total is the sum of price times quantity over all items.
func (o *Order) Total() float64 {
	var total float64
	for _, it := range o.Items {
		total += it.Price * float64(it.Quantity)
	}
	return total
}
