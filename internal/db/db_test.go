package db

import (
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
)

func TestIsUniqueViolation(t *testing.T) {
	t.Run("unique violation code matches", func(t *testing.T) {
		err := &pgconn.PgError{Code: "23505"}
		if !IsUniqueViolation(err) {
			t.Fatal("expected code 23505 to be a unique violation")
		}
	})

	t.Run("wrapped errors still match", func(t *testing.T) {
		err := fmt.Errorf("insert menu: %w", &pgconn.PgError{Code: "23505"})
		if !IsUniqueViolation(err) {
			t.Fatal("expected wrapped unique violation to match")
		}
	})

	t.Run("other postgres codes do not match", func(t *testing.T) {
		err := &pgconn.PgError{Code: "23503"} // foreign key violation
		if IsUniqueViolation(err) {
			t.Fatal("foreign key violation must not match")
		}
	})

	t.Run("plain errors do not match", func(t *testing.T) {
		if IsUniqueViolation(fmt.Errorf("connection refused")) {
			t.Fatal("plain error must not match")
		}
	})
}
