package menu

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var (
	ErrNotFound   = errors.New("menu not found")
	ErrTitleTaken = errors.New("This title already exists")
)

// Repository defines all database operations for menus.
type Repository interface {
	GetAll(ctx context.Context) ([]Menu, error)
	GetByID(ctx context.Context, menuID uuid.UUID) (*Menu, error)
	Add(ctx context.Context, in CreateMenu) (*Menu, error)
	Update(ctx context.Context, menuID uuid.UUID, in CreateMenu) (*Menu, error)
	Delete(ctx context.Context, menuID uuid.UUID) error
}
