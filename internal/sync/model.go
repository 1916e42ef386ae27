package sync

import "github.com/google/uuid"

// Kind classifies a spreadsheet row.
type Kind string

const (
	KindMenu    Kind = "menu"
	KindSubmenu Kind = "submenu"
	KindDish    Kind = "dish"
)

// Entry is one spreadsheet row normalized into the shape shared with the
// database snapshot, plus the discount column that only the overlay check
// looks at. Entries are comparable, so whole snapshots compare with
// slices.Equal.
type Entry struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Price       string    `json:"price"`     // "" for menus and submenus
	ParentID    uuid.UUID `json:"parent_id"` // uuid.Nil for menus
	Discount    string    `json:"discount"`  // "" when the column is absent
	Kind        Kind      `json:"kind"`
}

// Row strips the discount overlay from an entry for structural comparison
// against the database snapshot.
func (e Entry) Row() Row {
	return Row{
		ID:          e.ID,
		Title:       e.Title,
		Description: e.Description,
		Price:       e.Price,
		ParentID:    e.ParentID,
	}
}

// Row is the comparable projection shared by the spreadsheet and the
// database: (id, title, description, price-or-empty, parent-or-nil).
type Row struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Price       string    `json:"price"`
	ParentID    uuid.UUID `json:"parent_id"`
}

// Buckets groups entries by kind for bulk insertion in parent-before-child
// order.
type Buckets struct {
	Menus    []Entry
	Submenus []Entry
	Dishes   []Entry
}

// Empty reports whether the spreadsheet held no rows at all.
func (b Buckets) Empty() bool {
	return len(b.Menus) == 0 && len(b.Submenus) == 0 && len(b.Dishes) == 0
}
