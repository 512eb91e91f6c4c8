package course

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/p-n-ai/mentai/internal/platform/cache"
)

// Cache stores assembled courses keyed by normalized display title.
type Cache interface {
	Get(ctx context.Context, key string) (*Course, bool, error)
	Put(ctx context.Context, key string, c *Course) error
	Clear(ctx context.Context) error
}

// MemoryCache is an in-process Cache. Entries never expire and the map is
// unbounded. Courses are stored as JSON snapshots so callers cannot mutate
// a cached entry.
type MemoryCache struct {
	mu      sync.Mutex
	entries map[string][]byte
}

// NewMemoryCache creates an empty MemoryCache.
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{entries: make(map[string][]byte)}
}

func (m *MemoryCache) Get(_ context.Context, key string) (*Course, bool, error) {
	m.mu.Lock()
	data, ok := m.entries[key]
	m.mu.Unlock()
	if !ok {
		return nil, false, nil
	}

	var c Course
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, false, fmt.Errorf("decoding cached course %q: %w", key, err)
	}
	return &c, true, nil
}

func (m *MemoryCache) Put(_ context.Context, key string, c *Course) error {
	data, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("encoding course %q: %w", key, err)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[key] = data
	return nil
}

func (m *MemoryCache) Clear(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = make(map[string][]byte)
	return nil
}

// Len returns the number of cached courses.
func (m *MemoryCache) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}

const redisKeyPrefix = "mentai:course:"

// RedisCache stores courses in Redis/Dragonfly under a shared key prefix.
type RedisCache struct {
	client *cache.Cache
	ttl    time.Duration
}

// NewRedisCache creates a RedisCache. A zero ttl keeps entries until Clear.
func NewRedisCache(client *cache.Cache, ttl time.Duration) *RedisCache {
	return &RedisCache{client: client, ttl: ttl}
}

func (r *RedisCache) Get(ctx context.Context, key string) (*Course, bool, error) {
	var c Course
	err := r.client.GetJSON(ctx, redisKeyPrefix+key, &c)
	if errors.Is(err, cache.ErrMiss) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return &c, true, nil
}

func (r *RedisCache) Put(ctx context.Context, key string, c *Course) error {
	return r.client.SetJSON(ctx, redisKeyPrefix+key, c, r.ttl)
}

func (r *RedisCache) Clear(ctx context.Context) error {
	return r.client.DeletePrefix(ctx, redisKeyPrefix)
}
