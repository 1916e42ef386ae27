package submenu

import (
	"context"
	"fmt"
	"log"

	"github.com/google/uuid"
)

// Cache is the slice of the cache store the submenu service needs.
type Cache interface {
	Get(ctx context.Context, key string, dest any) (bool, error)
	Set(ctx context.Context, key string, value any) error
	Delete(ctx context.Context, key string) error
	DeleteMany(ctx context.Context, keys ...string) error
	CascadeDelete(ctx context.Context, prefix string) error
}

// Service wraps the repository with cache-aside reads and post-commit
// invalidation. Submenu keys embed the owning menu id:
// "{menu_id}_all" for the listing, "{menu_id}_{submenu_id}" per item.
type Service struct {
	repo  Repository
	cache Cache
}

func NewService(repo Repository, cache Cache) *Service {
	return &Service{repo: repo, cache: cache}
}

func listKey(menuID uuid.UUID) string {
	return fmt.Sprintf("%s_all", menuID)
}

func itemKey(menuID, submenuID uuid.UUID) string {
	return fmt.Sprintf("%s_%s", menuID, submenuID)
}

func (s *Service) GetAll(ctx context.Context, menuID uuid.UUID) ([]Submenu, error) {
	key := listKey(menuID)

	var cached []Submenu
	if ok := s.cacheGet(ctx, key, &cached); ok {
		return cached, nil
	}

	submenus, err := s.repo.GetAll(ctx, menuID)
	if err != nil {
		return nil, err
	}

	s.cacheSet(ctx, key, submenus)
	return submenus, nil
}

func (s *Service) GetByID(ctx context.Context, menuID, submenuID uuid.UUID) (*Submenu, error) {
	key := itemKey(menuID, submenuID)

	var cached Submenu
	if ok := s.cacheGet(ctx, key, &cached); ok {
		return &cached, nil
	}

	sub, err := s.repo.GetByID(ctx, menuID, submenuID)
	if err != nil {
		return nil, err
	}

	s.cacheSet(ctx, key, sub)
	return sub, nil
}

// Add creates a submenu. The new child changes the parent menu's
// submenus_count, so the parent's own key goes stale along with both
// listings.
func (s *Service) Add(ctx context.Context, menuID uuid.UUID, in CreateSubmenu) (*Submenu, error) {
	sub, err := s.repo.Add(ctx, menuID, in)
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx, "all", listKey(menuID), menuID.String())
	s.cacheSet(ctx, itemKey(menuID, sub.ID), sub)
	return sub, nil
}

// Update leaves counts alone but the cached listing holds stale content.
func (s *Service) Update(ctx context.Context, menuID, submenuID uuid.UUID, in CreateSubmenu) (*Submenu, error) {
	sub, err := s.repo.Update(ctx, menuID, submenuID, in)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Delete(ctx, listKey(menuID)); err != nil {
		log.Printf("⚠️  cache invalidation %q failed: %v", listKey(menuID), err)
	}
	s.cacheSet(ctx, itemKey(menuID, sub.ID), sub)
	return sub, nil
}

// Delete cascades in the database to the submenu's dishes. Every affected
// cache key starts with the menu id, so the cascade is rooted there; this
// also refreshes the menu's counts on the next read.
func (s *Service) Delete(ctx context.Context, menuID, submenuID uuid.UUID) error {
	if err := s.repo.Delete(ctx, menuID, submenuID); err != nil {
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

func (s *Service) invalidate(ctx context.Context, keys ...string) {
	if err := s.cache.DeleteMany(ctx, keys...); err != nil {
		log.Printf("⚠️  cache invalidation %v failed: %v", keys, err)
	}
}
