package menu

import (
	"context"
	"log"

	"github.com/google/uuid"
)

// Cache is the slice of the cache store the menu service needs. The cache
// is an optimization: when it fails the service degrades to direct
// repository access.
type Cache interface {
	Get(ctx context.Context, key string, dest any) (bool, error)
	Set(ctx context.Context, key string, value any) error
	DeleteMany(ctx context.Context, keys ...string) error
	CascadeDelete(ctx context.Context, prefix string) error
}

// Service wraps the repository with cache-aside reads and post-commit
// invalidation. The repository stays the source of truth; every cache entry
// is disposable.
type Service struct {
	repo  Repository
	cache Cache
}

func NewService(repo Repository, cache Cache) *Service {
	return &Service{repo: repo, cache: cache}
}

// GetAll returns every menu, read-through cached under "all".
func (s *Service) GetAll(ctx context.Context) ([]Menu, error) {
	var cached []Menu
	if ok := s.cacheGet(ctx, "all", &cached); ok {
		return cached, nil
	}

	menus, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	s.cacheSet(ctx, "all", menus)
	return menus, nil
}

// GetByID returns one menu with its derived counts, cached under the
// menu id.
func (s *Service) GetByID(ctx context.Context, menuID uuid.UUID) (*Menu, error) {
	key := menuID.String()

	var cached Menu
	if ok := s.cacheGet(ctx, key, &cached); ok {
		return &cached, nil
	}

	m, err := s.repo.GetByID(ctx, menuID)
	if err != nil {
		return nil, err
	}

	s.cacheSet(ctx, key, m)
	return m, nil
}

// Add creates a menu. The listing key goes stale (one more menu), so it is
// dropped after the commit, then the fresh menu is populated under its own
// key. Nothing touches the cache when the insert fails.
func (s *Service) Add(ctx context.Context, in CreateMenu) (*Menu, error) {
	m, err := s.repo.Add(ctx, in)
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx, "all")
	s.cacheSet(ctx, m.ID.String(), m)
	return m, nil
}

// Update rewrites title/description. Counts are unchanged but the cached
// listing holds the old content, so it is dropped too.
func (s *Service) Update(ctx context.Context, menuID uuid.UUID, in CreateMenu) (*Menu, error) {
	m, err := s.repo.Update(ctx, menuID, in)
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx, "all")
	s.cacheSet(ctx, m.ID.String(), m)
	return m, nil
}

// Delete removes the menu; the database cascades to submenus and dishes.
// Every descendant cache key starts with this menu id, so one prefix
// cascade wipes the whole subtree.
func (s *Service) Delete(ctx context.Context, menuID uuid.UUID) error {
	if err := s.repo.Delete(ctx, menuID); err != nil {
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
