package sync

import (
	"context"
	"errors"
)

// ErrConflict signals a duplicate title inside the spreadsheet itself: the
// bulk insert hit a uniqueness violation and was rolled back.
var ErrConflict = errors.New("This title already exists")

// Repository defines the database operations the sync engine needs.
type Repository interface {
	// Snapshot projects all three tables into the comparable row shape,
	// ordered by title.
	Snapshot(ctx context.Context) ([]Row, error)

	// Reset drops and recreates the catalog tables.
	Reset(ctx context.Context) error

	// BulkInsert loads the buckets in parent-before-child order inside one
	// transaction. A uniqueness violation rolls back and returns
	// ErrConflict.
	BulkInsert(ctx context.Context, b Buckets) error
}

// Cache is the slice of the cache store the engine needs.
type Cache interface {
	Get(ctx context.Context, key string, dest any) (bool, error)
	Set(ctx context.Context, key string, value any) error
	DeleteContaining(ctx context.Context, fragment string) error
	Flush(ctx context.Context) error
}
