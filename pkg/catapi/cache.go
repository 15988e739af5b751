package catapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// BreedCache stores the most recent breed list. Get reports false when
// nothing fresh is stored.
type BreedCache interface {
	Get(ctx context.Context) ([]Breed, bool, error)
	Set(ctx context.Context, breeds []Breed) error
}

type MemoryCache struct {
	mu      sync.RWMutex
	ttl     time.Duration
	breeds  []Breed
	expires time.Time
	now     func() time.Time
}

func NewMemoryCache(ttl time.Duration) *MemoryCache {
	return &MemoryCache{ttl: ttl, now: time.Now}
}

func (m *MemoryCache) Get(_ context.Context) ([]Breed, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.breeds == nil || !m.now().Before(m.expires) {
		return nil, false, nil
	}
	return m.breeds, true, nil
}

func (m *MemoryCache) Set(_ context.Context, breeds []Breed) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.breeds = breeds
	m.expires = m.now().Add(m.ttl)
	return nil
}

const redisBreedsKey = "catapi:breeds"

type RedisCache struct {
	client redis.Cmdable
	key    string
	ttl    time.Duration
}

func NewRedisCache(client redis.Cmdable, ttl time.Duration) *RedisCache {
	return &RedisCache{client: client, key: redisBreedsKey, ttl: ttl}
}

func (r *RedisCache) Get(ctx context.Context) ([]Breed, bool, error) {
	data, err := r.client.Get(ctx, r.key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("redis get %s: %w", r.key, err)
	}
	var breeds []Breed
	if err := json.Unmarshal(data, &breeds); err != nil {
		return nil, false, fmt.Errorf("corrupted breed cache: %w", err)
	}
	return breeds, true, nil
}

func (r *RedisCache) Set(ctx context.Context, breeds []Breed) error {
	data, err := json.Marshal(breeds)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, r.key, data, r.ttl).Err()
}
