package menu

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
// READS (counts computed by aggregation)
// --------------------------------------------------

func (r *PostgresRepository) GetAll(ctx context.Context) ([]Menu, error) {

	rows, err := r.db.Query(ctx, `
		SELECT
			m.id,
			m.title,
			m.description,
			COUNT(DISTINCT s.id) AS submenus_count,
			COUNT(DISTINCT d.id) AS dishes_count
		FROM menus m
		LEFT JOIN submenus s ON s.menu_id = m.id
		LEFT JOIN dishes d ON d.submenu_id = s.id
		GROUP BY m.id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	menus := []Menu{}

	for rows.Next() {
		var m Menu
		if err := rows.Scan(
			&m.ID,
			&m.Title,
			&m.Description,
			&m.SubmenusCount,
			&m.DishesCount,
		); err != nil {
			return nil, err
		}
		menus = append(menus, m)
	}

	return menus, rows.Err()
}

func (r *PostgresRepository) GetByID(
	ctx context.Context,
	menuID uuid.UUID,
) (*Menu, error) {

	var m Menu

	err := r.db.QueryRow(ctx, `
		SELECT
			m.id,
			m.title,
			m.description,
			COUNT(DISTINCT s.id) AS submenus_count,
			COUNT(DISTINCT d.id) AS dishes_count
		FROM menus m
		LEFT JOIN submenus s ON s.menu_id = m.id
		LEFT JOIN dishes d ON d.submenu_id = s.id
		WHERE m.id = $1
		GROUP BY m.id
	`, menuID).Scan(
		&m.ID,
		&m.Title,
		&m.Description,
		&m.SubmenusCount,
		&m.DishesCount,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return &m, nil
}

// --------------------------------------------------
// WRITES
// --------------------------------------------------

func (r *PostgresRepository) Add(
	ctx context.Context,
	in CreateMenu,
) (*Menu, error) {

	id := uuid.New()

	_, err := r.db.Exec(ctx, `
		INSERT INTO menus (id, title, description)
		VALUES ($1, $2, $3)
	`, id, in.Title, in.Description)

	if err != nil {
		if db.IsUniqueViolation(err) {
			return nil, ErrTitleTaken
		}
		return nil, err
	}

	return &Menu{
		ID:          id,
		Title:       in.Title,
		Description: in.Description,
	}, nil
}

func (r *PostgresRepository) Update(
	ctx context.Context,
	menuID uuid.UUID,
	in CreateMenu,
) (*Menu, error) {

	cmd, err := r.db.Exec(ctx, `
		UPDATE menus
		SET title = $2,
		    description = $3
		WHERE id = $1
	`, menuID, in.Title, in.Description)

	if err != nil {
		if db.IsUniqueViolation(err) {
			return nil, ErrTitleTaken
		}
		return nil, err
	}

	if cmd.RowsAffected() == 0 {
		return nil, ErrNotFound
	}

	// Re-read for the derived counts.
	return r.GetByID(ctx, menuID)
}

func (r *PostgresRepository) Delete(
	ctx context.Context,
	menuID uuid.UUID,
) error {

	cmd, err := r.db.Exec(ctx, `
		DELETE FROM menus
		WHERE id = $1
	`, menuID)

	if err != nil {
		return err
	}

	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}
