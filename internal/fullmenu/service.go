package fullmenu

import (
	"context"
	"log"
)

// Cache is the slice of the cache store the full-menu service needs. The
// "full" key is never invalidated here: every mutation path in the entity
// services drops it.
type Cache interface {
	Get(ctx context.Context, key string, dest any) (bool, error)
	Set(ctx context.Context, key string, value any) error
}

type Service struct {
	repo  Repository
	cache Cache
}

func NewService(repo Repository, cache Cache) *Service {
	return &Service{repo: repo, cache: cache}
}

// Get returns the nested tree, read-through cached under "full".
func (s *Service) Get(ctx context.Context) ([]FullMenu, error) {
	var cached []FullMenu
	ok, err := s.cache.Get(ctx, "full", &cached)
	if err != nil {
		log.Printf("⚠️  cache read \"full\" failed: %v", err)
	} else if ok {
		return cached, nil
	}

	menus, err := s.repo.Get(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, "full", menus); err != nil {
		log.Printf("⚠️  cache write \"full\" failed: %v", err)
	}
	return menus, nil
}
