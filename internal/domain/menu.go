package domain

import (
	"errors"
	"math"
	"strings"

	"github.com/google/uuid"
)

// Menu validation errors
var (
	ErrEmptyMenuTitle   = errors.New("menu item title cannot be empty")
	ErrInvalidMenuPrice = errors.New("menu item price must be a non-negative number")
)

// MenuItem is an entry of the global menu. Titles are not unique.
type MenuItem struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Image       string    `json:"image"`
	Price       float64   `json:"price"`
}

// NewMenuItem creates a validated menu item.
func NewMenuItem(title, description, image string, price float64) (*MenuItem, error) {
	item := &MenuItem{
		ID:          uuid.New(),
		Title:       strings.TrimSpace(title),
		Description: description,
		Image:       image,
		Price:       price,
	}
	if err := item.Validate(); err != nil {
		return nil, err
	}
	return item, nil
}

// Validate checks if the MenuItem has valid data.
func (m *MenuItem) Validate() error {
	if m.Title == "" {
		return ErrEmptyMenuTitle
	}
	if m.Price < 0 || math.IsNaN(m.Price) || math.IsInf(m.Price, 0) {
		return ErrInvalidMenuPrice
	}
	return nil
}
