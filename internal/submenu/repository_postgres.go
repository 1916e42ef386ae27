package submenu

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

// GetAll lists submenus of a menu. A missing menu yields an empty list,
// not an error.
func (r *PostgresRepository) GetAll(
	ctx context.Context,
	menuID uuid.UUID,
) ([]Submenu, error) {

	rows, err := r.db.Query(ctx, `
		SELECT
			s.id,
			s.title,
			s.description,
			COUNT(DISTINCT d.id) AS dishes_count
		FROM submenus s
		LEFT JOIN dishes d ON d.submenu_id = s.id
		WHERE s.menu_id = $1
		GROUP BY s.id
	`, menuID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	submenus := []Submenu{}

	for rows.Next() {
		var s Submenu
		if err := rows.Scan(&s.ID, &s.Title, &s.Description, &s.DishesCount); err != nil {
			return nil, err
		}
		submenus = append(submenus, s)
	}

	return submenus, rows.Err()
}

func (r *PostgresRepository) GetByID(
	ctx context.Context,
	menuID, submenuID uuid.UUID,
) (*Submenu, error) {

	var s Submenu

	err := r.db.QueryRow(ctx, `
		SELECT
			s.id,
			s.title,
			s.description,
			COUNT(DISTINCT d.id) AS dishes_count
		FROM submenus s
		LEFT JOIN dishes d ON d.submenu_id = s.id
		WHERE s.menu_id = $1 AND s.id = $2
		GROUP BY s.id
	`, menuID, submenuID).Scan(&s.ID, &s.Title, &s.Description, &s.DishesCount)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return &s, nil
}

// --------------------------------------------------
// WRITES
// --------------------------------------------------

func (r *PostgresRepository) Add(
	ctx context.Context,
	menuID uuid.UUID,
	in CreateSubmenu,
) (*Submenu, error) {

	if err := r.checkMenu(ctx, menuID); err != nil {
		return nil, err
	}

	id := uuid.New()

	_, err := r.db.Exec(ctx, `
		INSERT INTO submenus (id, title, description, menu_id)
		VALUES ($1, $2, $3, $4)
	`, id, in.Title, in.Description, menuID)

	if err != nil {
		if db.IsUniqueViolation(err) {
			return nil, ErrTitleTaken
		}
		return nil, err
	}

	return &Submenu{
		ID:          id,
		Title:       in.Title,
		Description: in.Description,
	}, nil
}

func (r *PostgresRepository) Update(
	ctx context.Context,
	menuID, submenuID uuid.UUID,
	in CreateSubmenu,
) (*Submenu, error) {

	cmd, err := r.db.Exec(ctx, `
		UPDATE submenus
		SET title = $3,
		    description = $4
		WHERE menu_id = $1 AND id = $2
	`, menuID, submenuID, in.Title, in.Description)

	if err != nil {
		if db.IsUniqueViolation(err) {
			return nil, ErrTitleTaken
		}
		return nil, err
	}

	if cmd.RowsAffected() == 0 {
		return nil, ErrNotFound
	}

	return r.GetByID(ctx, menuID, submenuID)
}

func (r *PostgresRepository) Delete(
	ctx context.Context,
	menuID, submenuID uuid.UUID,
) error {

	if err := r.checkMenu(ctx, menuID); err != nil {
		return err
	}

	cmd, err := r.db.Exec(ctx, `
		DELETE FROM submenus
		WHERE menu_id = $1 AND id = $2
	`, menuID, submenuID)

	if err != nil {
		return err
	}

	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

// checkMenu distinguishes a missing ancestor from a missing submenu.
func (r *PostgresRepository) checkMenu(ctx context.Context, menuID uuid.UUID) error {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS (SELECT 1 FROM menus WHERE id = $1)
	`, menuID).Scan(&exists)
	if err != nil {
		return err
	}
	if !exists {
		return ErrMenuNotFound
	}
	return nil
}
