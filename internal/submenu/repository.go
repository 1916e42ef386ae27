package submenu

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var (
	ErrNotFound     = errors.New("submenu not found")
	ErrMenuNotFound = errors.New("menu not found")
	ErrTitleTaken   = errors.New("This title already exists")
)

// Repository defines all database operations for submenus. Every operation
// is scoped by the owning menu id.
type Repository interface {
	GetAll(ctx context.Context, menuID uuid.UUID) ([]Submenu, error)
	GetByID(ctx context.Context, menuID, submenuID uuid.UUID) (*Submenu, error)
	Add(ctx context.Context, menuID uuid.UUID, in CreateSubmenu) (*Submenu, error)
	Update(ctx context.Context, menuID, submenuID uuid.UUID, in CreateSubmenu) (*Submenu, error)
	Delete(ctx context.Context, menuID, submenuID uuid.UUID) error
}
