package submenu

import "github.com/google/uuid"

// Submenu is the API representation of a submenu. The dish count is
// derived on every read.
type Submenu struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	DishesCount int       `json:"dishes_count"`
}

// CreateSubmenu is the request body for POST and PATCH.
type CreateSubmenu struct {
	Title       string `json:"title" binding:"required,max=80"`
	Description string `json:"description"`
}
