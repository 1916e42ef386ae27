package fullmenu

import "context"

// Repository loads the whole catalog as a nested tree.
type Repository interface {
	Get(ctx context.Context) ([]FullMenu, error)
}
