package prompts

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"briefy/internal/models"
)

// DefaultCacheTTL bounds how long resolved overrides are served without
// hitting the database.
const DefaultCacheTTL = 5 * time.Minute

// Overrides maps a content type to its active domain context.
type Overrides map[models.ContentType]string

// OverrideCache stores the resolved overrides with an expiry. Invalidate must
// be called after any edit to global prompts.
type OverrideCache interface {
	Get(ctx context.Context) (Overrides, bool)
	Set(ctx context.Context, value Overrides, ttl time.Duration)
	Invalidate(ctx context.Context)
}

type MemoryCache struct {
	mu     sync.Mutex
	value  Overrides
	expiry time.Time
	now    func() time.Time
}

func NewMemoryCache() *MemoryCache {
	return &MemoryCache{now: time.Now}
}

// WithClock swaps the time source. Tests use it to step past the TTL.
func (c *MemoryCache) WithClock(now func() time.Time) *MemoryCache {
	c.now = now
	return c
}

func (c *MemoryCache) Get(ctx context.Context) (Overrides, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.value == nil || !c.now().Before(c.expiry) {
		return nil, false
	}
	return c.value, true
}

func (c *MemoryCache) Set(ctx context.Context, value Overrides, ttl time.Duration) {
	if value == nil {
		value = Overrides{}
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.value = value
	c.expiry = c.now().Add(ttl)
}

func (c *MemoryCache) Invalidate(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.value = nil
	c.expiry = time.Time{}
}

const redisOverridesKey = "briefy:prompts:overrides"

// RedisCache shares resolved overrides between server instances so an edit
// made through one instance is visible to all after invalidation.
type RedisCache struct {
	client redis.UniversalClient
	key    string
}

func NewRedisCache(client redis.UniversalClient) *RedisCache {
	return &RedisCache{client: client, key: redisOverridesKey}
}

func (c *RedisCache) Get(ctx context.Context) (Overrides, bool) {
	raw, err := c.client.Get(ctx, c.key).Bytes()
	if err != nil {
		return nil, false
	}
	var value Overrides
	if err := json.Unmarshal(raw, &value); err != nil {
		return nil, false
	}
	if value == nil {
		value = Overrides{}
	}
	return value, true
}

func (c *RedisCache) Set(ctx context.Context, value Overrides, ttl time.Duration) {
	if value == nil {
		value = Overrides{}
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return
	}
	_ = c.client.Set(ctx, c.key, raw, ttl).Err()
}

func (c *RedisCache) Invalidate(ctx context.Context) {
	_ = c.client.Del(ctx, c.key).Err()
}
