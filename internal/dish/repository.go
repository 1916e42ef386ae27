package dish

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var (
	ErrNotFound        = errors.New("dish not found")
	ErrSubmenuNotFound = errors.New("submenu not found")
	ErrTitleTaken      = errors.New("This title already exists")
)

// Repository defines all database operations for dishes. Every operation
// is scoped by the owning menu and submenu ids.
type Repository interface {
	GetAll(ctx context.Context, menuID, submenuID uuid.UUID) ([]Dish, error)
	GetByID(ctx context.Context, menuID, submenuID, dishID uuid.UUID) (*Dish, error)
	Add(ctx context.Context, menuID, submenuID uuid.UUID, in CreateDish) (*Dish, error)
	Update(ctx context.Context, menuID, submenuID, dishID uuid.UUID, in CreateDish) (*Dish, error)
	Delete(ctx context.Context, menuID, submenuID, dishID uuid.UUID) error
}
