// Package sync reconciles the database against an external spreadsheet.
//
// Each run parses the workbook, compares it against a cached snapshot of
// the database and either rebuilds the whole catalog (structural change),
// runs the narrower discount overlay check (content identical), or does
// nothing. The database stays the source of truth between runs; the cache
// is flushed wholesale on every rebuild.
package sync

import (
	"context"
	"log"
	"slices"
	"strings"
)

// Per-run statuses. Reported, never raised: the job is fire-and-forget
// per cycle.
const (
	StatusNoChanges   = "No changes found"
	StatusDiscounts   = "Discount changes detected"
	StatusEmptySource = "Excel file is empty, database cleared"
	StatusRebuilt     = "Changes detected between excel file and database, database updated"
)

type Engine struct {
	repo  Repository
	cache Cache
	path  string
}

func NewEngine(repo Repository, cache Cache, path string) *Engine {
	return &Engine{repo: repo, cache: cache, path: path}
}

// Run performs one reconciliation pass and returns its status.
func (e *Engine) Run(ctx context.Context) (string, error) {

	dbRows, err := e.snapshot(ctx)
	if err != nil {
		return "", err
	}

	entries, buckets, err := ParseWorkbook(e.path)
	if err != nil {
		return "", err
	}

	external := make([]Row, len(entries))
	for i, entry := range entries {
		external[i] = entry.Row()
	}
	sortRows(external)
	sortRows(dbRows)

	if slices.Equal(external, dbRows) {
		return e.checkDiscounts(ctx, entries)
	}

	// Structural divergence: destructive replace, not incremental merge.
	if err := e.repo.Reset(ctx); err != nil {
		return "", err
	}
	if err := e.cache.Flush(ctx); err != nil {
		log.Printf("⚠️  cache flush failed: %v", err)
	}

	if buckets.Empty() {
		e.cacheSet(ctx, "excel", entries)
		return StatusEmptySource, nil
	}

	if err := e.repo.BulkInsert(ctx, buckets); err != nil {
		return "", err
	}

	e.cacheSet(ctx, "excel", entries)
	return StatusRebuilt, nil
}

// snapshot returns the database projection, cached under "db_data" so the
// database is not re-queried every cycle. Every mutation path in the
// entity services drops the key.
func (e *Engine) snapshot(ctx context.Context) ([]Row, error) {
	var cached []Row
	ok, err := e.cache.Get(ctx, "db_data", &cached)
	if err != nil {
		log.Printf("⚠️  cache read \"db_data\" failed: %v", err)
	} else if ok {
		return cached, nil
	}

	rows, err := e.repo.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	e.cacheSet(ctx, "db_data", rows)
	return rows, nil
}

func (e *Engine) cacheSet(ctx context.Context, key string, value any) {
	if err := e.cache.Set(ctx, key, value); err != nil {
		log.Printf("⚠️  cache write %q failed: %v", key, err)
	}
}

// sortRows orders both snapshots with the same comparator so the
// element-for-element comparison never depends on database collation.
// ID breaks title ties to keep the order total.
func sortRows(rows []Row) {
	slices.SortFunc(rows, func(a, b Row) int {
		if c := strings.Compare(a.Title, b.Title); c != 0 {
			return c
		}
		return strings.Compare(a.ID.String(), b.ID.String())
	})
}
