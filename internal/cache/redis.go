// Package cache implements the Redis-backed cache store for the catalog.
//
// Values are JSON encodings of the response models, stored under a flat
// key namespace:
//
//	all                                  menu listing
//	{menu_id}                            single menu
//	{menu_id}_all                        submenu listing for a menu
//	{menu_id}_{submenu_id}               single submenu
//	{menu_id}_{submenu_id}_all           dish listing for a submenu
//	{menu_id}_{submenu_id}_{dish_id}     single dish
//	full                                 full nested tree
//	db_data                              sync engine database snapshot
//	excel                                sync engine spreadsheet snapshot
//
// Because descendant keys embed every ancestor id as a prefix, deleting by
// prefix invalidates an entity together with its whole subtree. The "full"
// and "db_data" aggregates go stale on any mutation, so every delete path
// drops them as well.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
)

// Well-known aggregate keys.
const (
	KeyAll    = "all"
	KeyFull   = "full"
	KeyDBData = "db_data"
	KeyExcel  = "excel"
)

// TTL bounds staleness of every cached entry.
const TTL = 30 * time.Minute

type Store struct {
	rdb *redis.Client
}

func New(rdb *redis.Client) *Store {
	return &Store{rdb: rdb}
}

// Connect dials Redis using REDIS_ADDR (and optional REDIS_PASSWORD) and
// verifies the connection with a ping.
func Connect() *Store {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		log.Fatal("REDIS_ADDR not set")
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       0,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Fatal("Redis connection failed:", err)
	}

	log.Println("✅ Connected to Redis")

	return &Store{rdb: rdb}
}

func (s *Store) Close() error {
	return s.rdb.Close()
}

// Get loads the value stored under key into dest. The boolean reports
// whether the key was present; absence is never an error.
func (s *Store) Get(ctx context.Context, key string, dest any) (bool, error) {
	data, err := s.rdb.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return false, err
	}
	return true, nil
}

// Set stores value under key with the default TTL, overwriting any
// previous value.
func (s *Store) Set(ctx context.Context, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return s.rdb.Set(ctx, key, data, TTL).Err()
}

// Delete removes key together with the "full" and "db_data" aggregates,
// which are stale whenever any single entry is. Idempotent.
func (s *Store) Delete(ctx context.Context, key string) error {
	return s.rdb.Del(ctx, KeyFull, KeyDBData, key).Err()
}

// DeleteMany removes a fixed list of keys plus the "full" and "db_data"
// aggregates.
func (s *Store) DeleteMany(ctx context.Context, keys ...string) error {
	return s.rdb.Del(ctx, append([]string{KeyFull, KeyDBData}, keys...)...).Err()
}

// CascadeDelete removes every key starting with prefix, plus the global
// aggregates. Descendant keys embed ancestor ids as prefixes, so a cascade
// rooted at a menu id wipes the menu, its submenus and its dishes in one
// scan.
func (s *Store) CascadeDelete(ctx context.Context, prefix string) error {
	if err := s.rdb.Del(ctx, KeyAll, KeyFull, KeyDBData).Err(); err != nil {
		return err
	}
	return s.deleteByMatch(ctx, prefix+"*")
}

// DeleteContaining removes every key containing fragment anywhere in its
// name, plus the "full" aggregate. Used by the discount overlay: a dish id
// sits in the middle of "{menu_id}_{submenu_id}_{dish_id}", so a prefix
// scan would miss it.
func (s *Store) DeleteContaining(ctx context.Context, fragment string) error {
	if err := s.rdb.Del(ctx, KeyFull).Err(); err != nil {
		return err
	}
	return s.deleteByMatch(ctx, "*"+fragment+"*")
}

func (s *Store) deleteByMatch(ctx context.Context, pattern string) error {
	iter := s.rdb.Scan(ctx, 0, pattern, 0).Iterator()
	for iter.Next(ctx) {
		if err := s.rdb.Del(ctx, iter.Val()).Err(); err != nil {
			return err
		}
	}
	return iter.Err()
}

// Flush wipes the whole cache database. The cache is a disposable
// projection, so this is always safe.
func (s *Store) Flush(ctx context.Context) error {
	return s.rdb.FlushDB(ctx).Err()
}
