package submenu

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/uuid"
)

// --------------------------------------------------
// Mock Repository
// --------------------------------------------------

type MockRepository struct {
	menus    map[uuid.UUID]bool
	submenus map[uuid.UUID]*Submenu

	getByIDCalls int
}

func NewMockRepository() *MockRepository {
	return &MockRepository{
		menus:    make(map[uuid.UUID]bool),
		submenus: make(map[uuid.UUID]*Submenu),
	}
}

func (m *MockRepository) GetAll(ctx context.Context, menuID uuid.UUID) ([]Submenu, error) {
	out := []Submenu{}
	for _, v := range m.submenus {
		out = append(out, *v)
	}
	return out, nil
}

func (m *MockRepository) GetByID(ctx context.Context, menuID, submenuID uuid.UUID) (*Submenu, error) {
	m.getByIDCalls++
	v, ok := m.submenus[submenuID]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *v
	return &copied, nil
}

func (m *MockRepository) Add(ctx context.Context, menuID uuid.UUID, in CreateSubmenu) (*Submenu, error) {
	if !m.menus[menuID] {
		return nil, ErrMenuNotFound
	}
	v := &Submenu{ID: uuid.New(), Title: in.Title, Description: in.Description}
	m.submenus[v.ID] = v
	return v, nil
}

func (m *MockRepository) Update(ctx context.Context, menuID, submenuID uuid.UUID, in CreateSubmenu) (*Submenu, error) {
	v, ok := m.submenus[submenuID]
	if !ok {
		return nil, ErrNotFound
	}
	v.Title = in.Title
	v.Description = in.Description
	copied := *v
	return &copied, nil
}

func (m *MockRepository) Delete(ctx context.Context, menuID, submenuID uuid.UUID) error {
	if !m.menus[menuID] {
		return ErrMenuNotFound
	}
	if _, ok := m.submenus[submenuID]; !ok {
		return ErrNotFound
	}
	delete(m.submenus, submenuID)
	return nil
}

// --------------------------------------------------
// Mock Cache (mirrors the Redis store semantics)
// --------------------------------------------------

type MockCache struct {
	data map[string][]byte
}

func NewMockCache() *MockCache {
	return &MockCache{data: make(map[string][]byte)}
}

func (c *MockCache) Get(ctx context.Context, key string, dest any) (bool, error) {
	raw, ok := c.data[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(raw, dest)
}

func (c *MockCache) Set(ctx context.Context, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.data[key] = raw
	return nil
}

func (c *MockCache) Delete(ctx context.Context, key string) error {
	delete(c.data, "full")
	delete(c.data, "db_data")
	delete(c.data, key)
	return nil
}

func (c *MockCache) DeleteMany(ctx context.Context, keys ...string) error {
	delete(c.data, "full")
	delete(c.data, "db_data")
	for _, k := range keys {
		delete(c.data, k)
	}
	return nil
}

func (c *MockCache) CascadeDelete(ctx context.Context, prefix string) error {
	delete(c.data, "all")
	delete(c.data, "full")
	delete(c.data, "db_data")
	for k := range c.data {
		if strings.HasPrefix(k, prefix) {
			delete(c.data, k)
		}
	}
	return nil
}

func (c *MockCache) has(key string) bool {
	_, ok := c.data[key]
	return ok
}

// --------------------------------------------------
// TESTS
// --------------------------------------------------

func TestGetByID_PopulatesCacheOnMiss(t *testing.T) {
	repo := NewMockRepository()
	cache := NewMockCache()
	service := NewService(repo, cache)

	menuID := uuid.New()
	subID := uuid.New()
	repo.submenus[subID] = &Submenu{ID: subID, Title: "submenu1"}

	if _, err := service.GetByID(context.Background(), menuID, subID); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if _, err := service.GetByID(context.Background(), menuID, subID); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if repo.getByIDCalls != 1 {
		t.Fatalf("expected 1 repository call, got %d", repo.getByIDCalls)
	}
	if !cache.has(menuID.String() + "_" + subID.String()) {
		t.Fatal("expected submenu cached under its composite key")
	}
}

func TestAdd_InvalidatesMenuAggregates(t *testing.T) {
	repo := NewMockRepository()
	cache := NewMockCache()
	service := NewService(repo, cache)

	menuID := uuid.New()
	repo.menus[menuID] = true

	// Warm the keys a new submenu makes stale.
	cache.Set(context.Background(), "all", []string{})
	cache.Set(context.Background(), menuID.String(), struct{}{})
	cache.Set(context.Background(), menuID.String()+"_all", []Submenu{})
	cache.Set(context.Background(), "full", struct{}{})
	cache.Set(context.Background(), "db_data", struct{}{})

	sub, err := service.Add(context.Background(), menuID, CreateSubmenu{Title: "submenu1"})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	for _, key := range []string{"all", menuID.String(), menuID.String() + "_all", "full", "db_data"} {
		if cache.has(key) {
			t.Fatalf("expected key %q to be invalidated after add", key)
		}
	}
	if !cache.has(menuID.String() + "_" + sub.ID.String()) {
		t.Fatal("expected new submenu populated under its own key")
	}
}

func TestAdd_MissingMenuPropagates(t *testing.T) {
	repo := NewMockRepository()
	cache := NewMockCache()
	service := NewService(repo, cache)

	_, err := service.Add(context.Background(), uuid.New(), CreateSubmenu{Title: "submenu1"})
	if err != ErrMenuNotFound {
		t.Fatalf("expected menu not found, got %v", err)
	}
	if len(cache.data) != 0 {
		t.Fatal("failed add must not touch the cache")
	}
}

func TestUpdate_RefreshesListingAndOwnKey(t *testing.T) {
	repo := NewMockRepository()
	cache := NewMockCache()
	service := NewService(repo, cache)

	menuID := uuid.New()
	subID := uuid.New()
	repo.submenus[subID] = &Submenu{ID: subID, Title: "submenu1"}

	cache.Set(context.Background(), menuID.String()+"_all", []Submenu{{ID: subID, Title: "submenu1"}})

	sub, err := service.Update(context.Background(), menuID, subID, CreateSubmenu{Title: "patched"})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if cache.has(menuID.String() + "_all") {
		t.Fatal("expected stale listing to be invalidated")
	}

	var cached Submenu
	ok, _ := cache.Get(context.Background(), menuID.String()+"_"+subID.String(), &cached)
	if !ok || cached.Title != "patched" || sub.Title != "patched" {
		t.Fatalf("expected own key repopulated with fresh value, got %+v", cached)
	}
}

func TestDelete_CascadeRootedAtMenu(t *testing.T) {
	repo := NewMockRepository()
	cache := NewMockCache()
	service := NewService(repo, cache)

	menuID := uuid.New()
	subID := uuid.New()
	dishID := uuid.New()
	repo.menus[menuID] = true
	repo.submenus[subID] = &Submenu{ID: subID}

	cache.Set(context.Background(), menuID.String()+"_"+subID.String(), struct{}{})
	cache.Set(context.Background(), menuID.String()+"_"+subID.String()+"_"+dishID.String(), struct{}{})
	cache.Set(context.Background(), menuID.String(), struct{}{})

	if err := service.Delete(context.Background(), menuID, subID); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if len(cache.data) != 0 {
		t.Fatalf("expected whole menu subtree invalidated, still cached: %v", keysOf(cache))
	}
}

func keysOf(c *MockCache) []string {
	keys := make([]string, 0, len(c.data))
	for k := range c.data {
		keys = append(keys, k)
	}
	return keys
}
