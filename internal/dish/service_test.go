package dish

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
	submenus map[uuid.UUID]bool
	dishes   map[uuid.UUID]*Dish

	getByIDCalls int
}

func NewMockRepository() *MockRepository {
	return &MockRepository{
		submenus: make(map[uuid.UUID]bool),
		dishes:   make(map[uuid.UUID]*Dish),
	}
}

func (m *MockRepository) GetAll(ctx context.Context, menuID, submenuID uuid.UUID) ([]Dish, error) {
	out := []Dish{}
	for _, v := range m.dishes {
		out = append(out, *v)
	}
	return out, nil
}

func (m *MockRepository) GetByID(ctx context.Context, menuID, submenuID, dishID uuid.UUID) (*Dish, error) {
	m.getByIDCalls++
	v, ok := m.dishes[dishID]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *v
	return &copied, nil
}

func (m *MockRepository) Add(ctx context.Context, menuID, submenuID uuid.UUID, in CreateDish) (*Dish, error) {
	if !m.submenus[submenuID] {
		return nil, ErrSubmenuNotFound
	}
	v := &Dish{ID: uuid.New(), Title: in.Title, Description: in.Description, Price: in.Price}
	m.dishes[v.ID] = v
	return v, nil
}

func (m *MockRepository) Update(ctx context.Context, menuID, submenuID, dishID uuid.UUID, in CreateDish) (*Dish, error) {
	v, ok := m.dishes[dishID]
	if !ok {
		return nil, ErrNotFound
	}
	v.Title = in.Title
	v.Description = in.Description
	v.Price = in.Price
	copied := *v
	return &copied, nil
}

func (m *MockRepository) Delete(ctx context.Context, menuID, submenuID, dishID uuid.UUID) error {
	if _, ok := m.dishes[dishID]; !ok {
		return ErrNotFound
	}
	delete(m.dishes, dishID)
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
	dishID := uuid.New()
	repo.dishes[dishID] = &Dish{ID: dishID, Title: "dish1", Price: "12.50"}

	if _, err := service.GetByID(context.Background(), menuID, subID, dishID); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	cached, err := service.GetByID(context.Background(), menuID, subID, dishID)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if repo.getByIDCalls != 1 {
		t.Fatalf("expected 1 repository call, got %d", repo.getByIDCalls)
	}
	if cached.Price != "12.50" {
		t.Fatalf("expected cached price to survive the round trip, got %q", cached.Price)
	}
}

func TestAdd_InvalidatesMenuSubtree(t *testing.T) {
	repo := NewMockRepository()
	cache := NewMockCache()
	service := NewService(repo, cache)

	menuID := uuid.New()
	subID := uuid.New()
	repo.submenus[subID] = true

	// A new dish changes counts on both ancestors and the global listing.
	cache.Set(context.Background(), "all", []string{})
	cache.Set(context.Background(), menuID.String(), struct{}{})
	cache.Set(context.Background(), menuID.String()+"_"+subID.String(), struct{}{})
	cache.Set(context.Background(), menuID.String()+"_"+subID.String()+"_all", []Dish{})

	d, err := service.Add(context.Background(), menuID, subID, CreateDish{Title: "dish1", Price: "10.00"})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	for _, key := range []string{
		"all",
		menuID.String(),
		menuID.String() + "_" + subID.String(),
		menuID.String() + "_" + subID.String() + "_all",
	} {
		if cache.has(key) {
			t.Fatalf("expected key %q to be invalidated after add", key)
		}
	}
	if !cache.has(menuID.String() + "_" + subID.String() + "_" + d.ID.String()) {
		t.Fatal("expected new dish populated under its own key")
	}
}

func TestAdd_MissingSubmenuPropagates(t *testing.T) {
	repo := NewMockRepository()
	cache := NewMockCache()
	service := NewService(repo, cache)

	_, err := service.Add(context.Background(), uuid.New(), uuid.New(), CreateDish{Title: "dish1", Price: "10.00"})
	if err != ErrSubmenuNotFound {
		t.Fatalf("expected submenu not found, got %v", err)
	}
	if len(cache.data) != 0 {
		t.Fatal("failed add must not touch the cache")
	}
}

func TestUpdate_InvalidatesDishListing(t *testing.T) {
	repo := NewMockRepository()
	cache := NewMockCache()
	service := NewService(repo, cache)

	menuID := uuid.New()
	subID := uuid.New()
	dishID := uuid.New()
	repo.dishes[dishID] = &Dish{ID: dishID, Title: "dish1", Price: "10.00"}

	cache.Set(context.Background(), menuID.String()+"_"+subID.String()+"_all", []Dish{})

	_, err := service.Update(context.Background(), menuID, subID, dishID, CreateDish{Title: "dish1", Price: "11.00"})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if cache.has(menuID.String() + "_" + subID.String() + "_all") {
		t.Fatal("expected stale dish listing to be invalidated")
	}

	var cached Dish
	ok, _ := cache.Get(context.Background(), menuID.String()+"_"+subID.String()+"_"+dishID.String(), &cached)
	if !ok || cached.Price != "11.00" {
		t.Fatalf("expected fresh dish under its own key, got %+v", cached)
	}
}

func TestDelete_CascadeRootedAtMenu(t *testing.T) {
	repo := NewMockRepository()
	cache := NewMockCache()
	service := NewService(repo, cache)

	menuID := uuid.New()
	subID := uuid.New()
	dishID := uuid.New()
	repo.dishes[dishID] = &Dish{ID: dishID}

	cache.Set(context.Background(), menuID.String()+"_"+subID.String()+"_"+dishID.String(), struct{}{})
	cache.Set(context.Background(), menuID.String()+"_"+subID.String()+"_all", []Dish{})

	if err := service.Delete(context.Background(), menuID, subID, dishID); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if len(cache.data) != 0 {
		t.Fatal("expected menu subtree invalidated after dish delete")
	}
}
