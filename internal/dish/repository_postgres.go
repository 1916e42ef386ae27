package dish

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Borcheg1/go-restaurant-api/internal/db"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// --------------------------------------------------
// READS
// --------------------------------------------------

// GetAll lists dishes of a submenu. A missing ancestor yields an empty
// list, not an error.
func (r *PostgresRepository) GetAll(
	ctx context.Context,
	menuID, submenuID uuid.UUID,
) ([]Dish, error) {

	rows, err := r.db.Query(ctx, `
		SELECT
			d.id,
			d.title,
			d.description,
			d.price::text
		FROM dishes d
		JOIN submenus s ON s.id = d.submenu_id
		WHERE s.menu_id = $1 AND d.submenu_id = $2
	`, menuID, submenuID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	dishes := []Dish{}

	for rows.Next() {
		var d Dish
		if err := rows.Scan(&d.ID, &d.Title, &d.Description, &d.Price); err != nil {
			return nil, err
		}
		dishes = append(dishes, d)
	}

	return dishes, rows.Err()
}

func (r *PostgresRepository) GetByID(
	ctx context.Context,
	menuID, submenuID, dishID uuid.UUID,
) (*Dish, error) {

	var d Dish

	err := r.db.QueryRow(ctx, `
		SELECT
			d.id,
			d.title,
			d.description,
			d.price::text
		FROM dishes d
		JOIN submenus s ON s.id = d.submenu_id
		WHERE s.menu_id = $1 AND d.submenu_id = $2 AND d.id = $3
	`, menuID, submenuID, dishID).Scan(&d.ID, &d.Title, &d.Description, &d.Price)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return &d, nil
}

// --------------------------------------------------
// WRITES
// --------------------------------------------------

func (r *PostgresRepository) Add(
	ctx context.Context,
	menuID, submenuID uuid.UUID,
	in CreateDish,
) (*Dish, error) {

	if err := r.checkSubmenu(ctx, menuID, submenuID); err != nil {
		return nil, err
	}

	id := uuid.New()

	_, err := r.db.Exec(ctx, `
		INSERT INTO dishes (id, title, description, price, submenu_id)
		VALUES ($1, $2, $3, $4::numeric, $5)
	`, id, in.Title, in.Description, in.Price, submenuID)

	if err != nil {
		if db.IsUniqueViolation(err) {
			return nil, ErrTitleTaken
		}
		return nil, err
	}

	return &Dish{
		ID:          id,
		Title:       in.Title,
		Description: in.Description,
		Price:       in.Price,
	}, nil
}

func (r *PostgresRepository) Update(
	ctx context.Context,
	menuID, submenuID, dishID uuid.UUID,
	in CreateDish,
) (*Dish, error) {

	if err := r.checkSubmenu(ctx, menuID, submenuID); err != nil {
		return nil, err
	}

	cmd, err := r.db.Exec(ctx, `
		UPDATE dishes
		SET title = $3,
		    description = $4,
		    price = $5::numeric
		WHERE submenu_id = $2 AND id = $1
	`, dishID, submenuID, in.Title, in.Description, in.Price)

	if err != nil {
		if db.IsUniqueViolation(err) {
			return nil, ErrTitleTaken
		}
		return nil, err
	}

	if cmd.RowsAffected() == 0 {
		return nil, ErrNotFound
	}

	return &Dish{
		ID:          dishID,
		Title:       in.Title,
		Description: in.Description,
		Price:       in.Price,
	}, nil
}

func (r *PostgresRepository) Delete(
	ctx context.Context,
	menuID, submenuID, dishID uuid.UUID,
) error {

	if err := r.checkSubmenu(ctx, menuID, submenuID); err != nil {
		return err
	}

	cmd, err := r.db.Exec(ctx, `
		DELETE FROM dishes
		WHERE submenu_id = $2 AND id = $1
	`, dishID, submenuID)

	if err != nil {
		return err
	}

	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

// checkSubmenu distinguishes a missing ancestor from a missing dish.
func (r *PostgresRepository) checkSubmenu(ctx context.Context, menuID, submenuID uuid.UUID) error {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS (SELECT 1 FROM submenus WHERE menu_id = $1 AND id = $2)
	`, menuID, submenuID).Scan(&exists)
	if err != nil {
		return err
	}
	if !exists {
		return ErrSubmenuNotFound
	}
	return nil
}
