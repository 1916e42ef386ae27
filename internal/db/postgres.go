package db

import (
	"context"
	"errors"
	"log"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

func ConnectPostgres() *pgxpool.Pool {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL not set")
	}

	config, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		log.Fatal(err)
	}

	config.MaxConns = 10
	config.MinConns = 2
	config.MaxConnLifetime = time.Hour

	db, err := pgxpool.NewWithConfig(context.Background(), config)
	if err != nil {
		log.Fatal(err)
	}

	if err := db.Ping(context.Background()); err != nil {
		log.Fatal("Postgres connection failed:", err)
	}

	log.Println("✅ Connected to PostgreSQL")

	// Initialize schema
	if err := CreateTables(context.Background(), db); err != nil {
		log.Fatal("Failed to initialize schema:", err)
	}

	return db
}

// CreateTables creates the catalog tables if they do not exist yet.
// Parent tables first so the foreign keys resolve.
func CreateTables(ctx context.Context, db *pgxpool.Pool) error {

	menusSQL := `
		CREATE TABLE IF NOT EXISTS menus (
			id UUID PRIMARY KEY,
			title VARCHAR(80) UNIQUE NOT NULL,
			description TEXT NOT NULL DEFAULT ''
		)
	`
	if _, err := db.Exec(ctx, menusSQL); err != nil {
		return err
	}

	submenusSQL := `
		CREATE TABLE IF NOT EXISTS submenus (
			id UUID PRIMARY KEY,
			title VARCHAR(80) UNIQUE NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			menu_id UUID NOT NULL REFERENCES menus(id) ON DELETE CASCADE
		)
	`
	if _, err := db.Exec(ctx, submenusSQL); err != nil {
		return err
	}

	dishesSQL := `
		CREATE TABLE IF NOT EXISTS dishes (
			id UUID PRIMARY KEY,
			title VARCHAR(80) UNIQUE NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			price NUMERIC(10,2) NOT NULL,
			submenu_id UUID NOT NULL REFERENCES submenus(id) ON DELETE CASCADE
		)
	`
	if _, err := db.Exec(ctx, dishesSQL); err != nil {
		return err
	}

	return nil
}

// RecreateTables drops and recreates the catalog tables. Used by the
// spreadsheet sync engine when it replaces the whole dataset.
func RecreateTables(ctx context.Context, db *pgxpool.Pool) error {
	dropSQL := `DROP TABLE IF EXISTS dishes, submenus, menus CASCADE`
	if _, err := db.Exec(ctx, dropSQL); err != nil {
		return err
	}
	return CreateTables(ctx, db)
}

// IsUniqueViolation reports whether err is a Postgres unique constraint
// violation (duplicate title).
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
