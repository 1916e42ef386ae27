package dish

import (
	"context"
	"fmt"
	"log"

	"github.com/google/uuid"
)

// Cache is the slice of the cache store the dish service needs.
type Cache interface {
	Get(ctx context.Context, key string, dest any) (bool, error)
	Set(ctx context.Context, key string, value any) error
	Delete(ctx context.Context, key string) error
	CascadeDelete(ctx context.Context, prefix string) error
}

// Service wraps the repository with cache-aside reads and post-commit
// invalidation. Dish keys embed both ancestor ids:
// "{menu_id}_{submenu_id}_all" for the listing,
// "{menu_id}_{submenu_id}_{dish_id}" per item.
type Service struct {
	repo  Repository
	cache Cache
}

func NewService(repo Repository, cache Cache) *Service {
	return &Service{repo: repo, cache: cache}
}

func listKey(menuID, submenuID uuid.UUID) string {
	return fmt.Sprintf("%s_%s_all", menuID, submenuID)
}

func itemKey(menuID, submenuID, dishID uuid.UUID) string {
	return fmt.Sprintf("%s_%s_%s", menuID, submenuID, dishID)
}

func (s *Service) GetAll(ctx context.Context, menuID, submenuID uuid.UUID) ([]Dish, error) {
	key := listKey(menuID, submenuID)

	var cached []Dish
	if ok := s.cacheGet(ctx, key, &cached); ok {
		return cached, nil
	}

	dishes, err := s.repo.GetAll(ctx, menuID, submenuID)
	if err != nil {
		return nil, err
	}

	s.cacheSet(ctx, key, dishes)
	return dishes, nil
}

func (s *Service) GetByID(ctx context.Context, menuID, submenuID, dishID uuid.UUID) (*Dish, error) {
	key := itemKey(menuID, submenuID, dishID)

	var cached Dish
	if ok := s.cacheGet(ctx, key, &cached); ok {
		return &cached, nil
	}

	d, err := s.repo.GetByID(ctx, menuID, submenuID, dishID)
	if err != nil {
		return nil, err
	}

	s.cacheSet(ctx, key, d)
	return d, nil
}

// Add creates a dish. A new dish changes dishes_count on both the submenu
// and the menu, so the whole subtree rooted at the menu id is invalidated
// before the fresh dish is populated.
func (s *Service) Add(ctx context.Context, menuID, submenuID uuid.UUID, in CreateDish) (*Dish, error) {
	d, err := s.repo.Add(ctx, menuID, submenuID, in)
	if err != nil {
		return nil, err
	}

	if err := s.cache.CascadeDelete(ctx, menuID.String()); err != nil {
		log.Printf("⚠️  cache cascade delete %q failed: %v", menuID, err)
	}
	s.cacheSet(ctx, itemKey(menuID, submenuID, d.ID), d)
	return d, nil
}

// Update leaves counts alone; only the dish listing and the dish itself
// go stale.
func (s *Service) Update(ctx context.Context, menuID, submenuID, dishID uuid.UUID, in CreateDish) (*Dish, error) {
	d, err := s.repo.Update(ctx, menuID, submenuID, dishID, in)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Delete(ctx, listKey(menuID, submenuID)); err != nil {
		log.Printf("⚠️  cache invalidation %q failed: %v", listKey(menuID, submenuID), err)
	}
	s.cacheSet(ctx, itemKey(menuID, submenuID, d.ID), d)
	return d, nil
}

// Delete removes the dish and invalidates the subtree rooted at the menu
// id so both ancestors' counts are recomputed on the next read.
func (s *Service) Delete(ctx context.Context, menuID, submenuID, dishID uuid.UUID) error {
	if err := s.repo.Delete(ctx, menuID, submenuID, dishID); err != nil {
		return err
	}

	if err := s.cache.CascadeDelete(ctx, menuID.String()); err != nil {
		log.Printf("⚠️  cache cascade delete %q failed: %v", menuID, err)
	}
	return nil
}

// --------------------------------------------------
// Cache helpers (degrade on failure, never fail the request)
// --------------------------------------------------

func (s *Service) cacheGet(ctx context.Context, key string, dest any) bool {
	ok, err := s.cache.Get(ctx, key, dest)
	if err != nil {
		log.Printf("⚠️  cache read %q failed: %v", key, err)
		return false
	}
	return ok
}

func (s *Service) cacheSet(ctx context.Context, key string, value any) {
	if err := s.cache.Set(ctx, key, value); err != nil {
		log.Printf("⚠️  cache write %q failed: %v", key, err)
	}
}
