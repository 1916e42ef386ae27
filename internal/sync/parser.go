package sync

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

// cursor carries the most recently seen ancestor ids across rows. Rows are
// not self-contained: a submenu row belongs to the last menu row above it,
// a dish row to the last submenu row. The cursor is threaded explicitly
// through the fold so the parser holds no hidden state and is re-entrant.
type cursor struct {
	menuID    uuid.UUID
	submenuID uuid.UUID
}

// ParseWorkbook reads the first sheet of the workbook at path and returns
// the flat ordered entry list plus the per-kind buckets.
//
// Row layout, decided by the first non-empty leading column:
//
//	menu:    id | title | description
//	submenu:    | id | title | description
//	dish:       |    | id | title | description | price [| discount]
//
// Dish rows carry 6 or 7 columns; the discount defaults to absent. Empty
// description cells become the literal "null" marker so spreadsheet and
// database snapshots stay comparable.
func ParseWorkbook(path string) ([]Entry, Buckets, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, Buckets{}, err
	}
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(0))
	if err != nil {
		return nil, Buckets{}, err
	}

	entries := []Entry{}
	var buckets Buckets
	var cur cursor

	for i, cells := range rows {
		entry, next, err := parseRow(cells, cur)
		if err != nil {
			return nil, Buckets{}, fmt.Errorf("row %d: %w", i+1, err)
		}
		if entry == nil {
			continue
		}
		cur = next

		entries = append(entries, *entry)
		switch entry.Kind {
		case KindMenu:
			buckets.Menus = append(buckets.Menus, *entry)
		case KindSubmenu:
			buckets.Submenus = append(buckets.Submenus, *entry)
		case KindDish:
			buckets.Dishes = append(buckets.Dishes, *entry)
		}
	}

	return entries, buckets, nil
}

// parseRow classifies one row and returns the entry plus the advanced
// cursor. A fully empty row yields a nil entry and an unchanged cursor.
func parseRow(cells []string, cur cursor) (*Entry, cursor, error) {

	switch {
	case cell(cells, 0) != "":
		id, err := uuid.Parse(cell(cells, 0))
		if err != nil {
			return nil, cur, fmt.Errorf("menu id: %w", err)
		}
		cur.menuID = id
		return &Entry{
			ID:          id,
			Title:       cell(cells, 1),
			Description: cellOrNull(cells, 2),
			Kind:        KindMenu,
		}, cur, nil

	case cell(cells, 1) != "":
		if cur.menuID == uuid.Nil {
			return nil, cur, fmt.Errorf("submenu row before any menu row")
		}
		id, err := uuid.Parse(cell(cells, 1))
		if err != nil {
			return nil, cur, fmt.Errorf("submenu id: %w", err)
		}
		cur.submenuID = id
		return &Entry{
			ID:          id,
			Title:       cell(cells, 2),
			Description: cellOrNull(cells, 3),
			ParentID:    cur.menuID,
			Kind:        KindSubmenu,
		}, cur, nil

	case cell(cells, 2) != "":
		if cur.submenuID == uuid.Nil {
			return nil, cur, fmt.Errorf("dish row before any submenu row")
		}
		id, err := uuid.Parse(cell(cells, 2))
		if err != nil {
			return nil, cur, fmt.Errorf("dish id: %w", err)
		}
		price, err := decimal.NewFromString(cell(cells, 5))
		if err != nil {
			return nil, cur, fmt.Errorf("dish price: %w", err)
		}
		return &Entry{
			ID:          id,
			Title:       cell(cells, 3),
			Description: cellOrNull(cells, 4),
			Price:       price.Round(2).StringFixed(2),
			ParentID:    cur.submenuID,
			Discount:    cell(cells, 6),
			Kind:        KindDish,
		}, cur, nil
	}

	return nil, cur, nil
}

// cell returns the trimmed-to-existence cell value; spreadsheet readers
// drop trailing empty cells, so short rows are normal.
func cell(cells []string, i int) string {
	if i >= len(cells) {
		return ""
	}
	return cells[i]
}

// cellOrNull maps an empty description cell to the "null" marker.
func cellOrNull(cells []string, i int) string {
	if v := cell(cells, i); v != "" {
		return v
	}
	return "null"
}
