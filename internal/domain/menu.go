package domain

import (
	"context"
	"errors"
)

var ErrMenuItemNotFound = errors.New("menu item not found")

type MenuItem struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Category    string  `json:"category"`
	Available   bool    `json:"available"`
}

type MenuRepository interface {
	// GetMenuItemByID returns ErrMenuItemNotFound (possibly wrapped) when no
	// item with the given id exists.
	GetMenuItemByID(ctx context.Context, id string) (*MenuItem, error)
	ListMenuItems(ctx context.Context) ([]MenuItem, error)
}

type MenuUseCase interface {
	ListMenu(ctx context.Context) ([]MenuItem, error)
}
