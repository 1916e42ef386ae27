package dish

import "github.com/google/uuid"

// Dish is the API representation of a dish. Price travels as a string
// with two decimal places ("12.50"); the database stores NUMERIC(10,2).
type Dish struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Price       string    `json:"price"`
}

// CreateDish is the request body for POST and PATCH. Price arrives as a
// decimal string and is normalized to two places before it reaches the
// repository.
type CreateDish struct {
	Title       string `json:"title" binding:"required,max=80"`
	Description string `json:"description"`
	Price       string `json:"price" binding:"required"`
}
