package fullmenu

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// flatRow is one row of the three-way join projection. Submenu and dish
// columns are nullable because of the outer joins.
type flatRow struct {
	MenuID    uuid.UUID
	MenuTitle string
	MenuDesc  string

	SubmenuID    *uuid.UUID
	SubmenuTitle *string
	SubmenuDesc  *string

	DishID    *uuid.UUID
	DishTitle *string
	DishDesc  *string
	DishPrice *string
}

// Get loads every menu with its submenus and dishes in one ordered query
// and folds the flat rows into the nested tree.
func (r *PostgresRepository) Get(ctx context.Context) ([]FullMenu, error) {

	rows, err := r.db.Query(ctx, `
		SELECT
			m.id, m.title, m.description,
			s.id, s.title, s.description,
			d.id, d.title, d.description, d.price::text
		FROM menus m
		LEFT JOIN submenus s ON s.menu_id = m.id
		LEFT JOIN dishes d ON d.submenu_id = s.id
		ORDER BY m.id, s.id, d.id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	flat := []flatRow{}

	for rows.Next() {
		var f flatRow
		if err := rows.Scan(
			&f.MenuID, &f.MenuTitle, &f.MenuDesc,
			&f.SubmenuID, &f.SubmenuTitle, &f.SubmenuDesc,
			&f.DishID, &f.DishTitle, &f.DishDesc, &f.DishPrice,
		); err != nil {
			return nil, err
		}
		flat = append(flat, f)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return buildTree(flat), nil
}

// buildTree folds ordered flat rows into nested menus. Rows arrive grouped
// by menu then submenu, so a simple last-seen check is enough.
func buildTree(flat []flatRow) []FullMenu {
	menus := []FullMenu{}

	for _, f := range flat {
		if len(menus) == 0 || menus[len(menus)-1].ID != f.MenuID {
			menus = append(menus, FullMenu{
				ID:          f.MenuID,
				Title:       f.MenuTitle,
				Description: f.MenuDesc,
				Submenus:    []FullSubmenu{},
			})
		}
		m := &menus[len(menus)-1]

		if f.SubmenuID == nil {
			continue
		}
		if len(m.Submenus) == 0 || m.Submenus[len(m.Submenus)-1].ID != *f.SubmenuID {
			m.Submenus = append(m.Submenus, FullSubmenu{
				ID:          *f.SubmenuID,
				Title:       *f.SubmenuTitle,
				Description: *f.SubmenuDesc,
				Dishes:      []FullDish{},
			})
		}
		s := &m.Submenus[len(m.Submenus)-1]

		if f.DishID == nil {
			continue
		}
		s.Dishes = append(s.Dishes, FullDish{
			ID:          *f.DishID,
			Title:       *f.DishTitle,
			Description: *f.DishDesc,
			Price:       *f.DishPrice,
		})
	}

	return menus
}
