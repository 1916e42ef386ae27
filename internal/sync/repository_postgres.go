package sync

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Borcheg1/go-restaurant-api/internal/db"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Snapshot unions the three tables into the comparable projection. Menus
// and submenus carry an empty price; menus carry a nil parent.
func (r *PostgresRepository) Snapshot(ctx context.Context) ([]Row, error) {

	rows, err := r.db.Query(ctx, `
		SELECT id, title, description, '' AS price, NULL::uuid AS parent_id
		FROM menus
		UNION ALL
		SELECT id, title, description, '', menu_id
		FROM submenus
		UNION ALL
		SELECT id, title, description, price::text, submenu_id
		FROM dishes
		ORDER BY title
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	snapshot := []Row{}

	for rows.Next() {
		var row Row
		var parent *uuid.UUID
		if err := rows.Scan(&row.ID, &row.Title, &row.Description, &row.Price, &parent); err != nil {
			return nil, err
		}
		if parent != nil {
			row.ParentID = *parent
		}
		snapshot = append(snapshot, row)
	}

	return snapshot, rows.Err()
}

func (r *PostgresRepository) Reset(ctx context.Context) error {
	return db.RecreateTables(ctx, r.db)
}

// BulkInsert loads the spreadsheet buckets inside one transaction, parents
// before children so the foreign keys resolve. Any uniqueness violation
// rolls the whole load back.
func (r *PostgresRepository) BulkInsert(ctx context.Context, b Buckets) error {

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	for _, m := range b.Menus {
		_, err := tx.Exec(ctx, `
			INSERT INTO menus (id, title, description)
			VALUES ($1, $2, $3)
		`, m.ID, m.Title, m.Description)
		if err != nil {
			if db.IsUniqueViolation(err) {
				return ErrConflict
			}
			return err
		}
	}

	for _, s := range b.Submenus {
		_, err := tx.Exec(ctx, `
			INSERT INTO submenus (id, title, description, menu_id)
			VALUES ($1, $2, $3, $4)
		`, s.ID, s.Title, s.Description, s.ParentID)
		if err != nil {
			if db.IsUniqueViolation(err) {
				return ErrConflict
			}
			return err
		}
	}

	for _, d := range b.Dishes {
		_, err := tx.Exec(ctx, `
			INSERT INTO dishes (id, title, description, price, submenu_id)
			VALUES ($1, $2, $3, $4::numeric, $5)
		`, d.ID, d.Title, d.Description, d.Price, d.ParentID)
		if err != nil {
			if db.IsUniqueViolation(err) {
				return ErrConflict
			}
			return err
		}
	}

	return tx.Commit(ctx)
}
