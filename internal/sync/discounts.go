package sync

import (
	"context"
	"log"
	"slices"
)

// checkDiscounts runs on the structural-equality branch. It compares the
// full entry list, discounts included, against the previously cached
// spreadsheet snapshot. A discount change alters a dish's effective price
// without touching its structural identity, so it bypasses the rebuild but
// still invalidates every cached view embedding the dish — its id sits in
// the middle of keys like "{menu_id}_{submenu_id}_{dish_id}", hence the
// substring scan.
func (e *Engine) checkDiscounts(ctx context.Context, entries []Entry) (string, error) {

	var cached []Entry
	ok, err := e.cache.Get(ctx, "excel", &cached)
	if err != nil {
		log.Printf("⚠️  cache read \"excel\" failed: %v", err)
	}
	if ok && slices.Equal(cached, entries) {
		return StatusNoChanges, nil
	}

	if err := e.cache.Set(ctx, "excel", entries); err != nil {
		return "", err
	}

	for _, entry := range entries {
		if entry.Kind != KindDish {
			continue
		}
		if err := e.cache.DeleteContaining(ctx, entry.ID.String()); err != nil {
			log.Printf("⚠️  cache invalidation for dish %s failed: %v", entry.ID, err)
		}
	}

	return StatusDiscounts, nil
}
