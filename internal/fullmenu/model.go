package fullmenu

import "github.com/google/uuid"

// FullMenu is one menu of the nested read model served by the full-tree
// endpoint and cached under the "full" key.
type FullMenu struct {
	ID          uuid.UUID     `json:"id"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Submenus    []FullSubmenu `json:"submenus"`
}

type FullSubmenu struct {
	ID          uuid.UUID  `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Dishes      []FullDish `json:"dishes"`
}

type FullDish struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Price       string    `json:"price"`
}
