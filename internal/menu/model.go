package menu

import "github.com/google/uuid"

// Menu is the API representation of a top-level menu. The counts are
// derived from child rows on every read, never stored.
type Menu struct {
	ID            uuid.UUID `json:"id"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	SubmenusCount int       `json:"submenus_count"`
	DishesCount   int       `json:"dishes_count"`
}

// CreateMenu is the request body for POST and PATCH.
type CreateMenu struct {
	Title       string `json:"title" binding:"required,max=80"`
	Description string `json:"description"`
}
