package tmdb

import (
	"context"
	"log"
	"time"

	lru "github.com/hashicorp/golang-lru"
	"github.com/redis/go-redis/v9"
)

// responseCache is an in-process LRU in front of an optional shared Redis layer.
type responseCache struct {
	local  *lru.Cache
	shared redis.Cmdable
	prefix string
	ttl    time.Duration
}

type cachedResponse struct {
	body      []byte
	expiresAt time.Time
}

func newResponseCache(size int, ttl time.Duration, shared redis.Cmdable) (*responseCache, error) {
	if size <= 0 {
		size = 512
	}
	local, err := lru.New(size)
	if err != nil {
		return nil, err
	}
	return &responseCache{
		local:  local,
		shared: shared,
		prefix: "movieshelf:tmdb:",
		ttl:    ttl,
	}, nil
}

func (c *responseCache) enabled() bool {
	return c != nil && c.ttl > 0
}

func (c *responseCache) get(ctx context.Context, key string) ([]byte, bool) {
	if !c.enabled() {
		return nil, false
	}
	if v, ok := c.local.Get(key); ok {
		item := v.(cachedResponse)
		if time.Now().Before(item.expiresAt) {
			return item.body, true
		}
		c.local.Remove(key)
	}
	if c.shared == nil {
		return nil, false
	}
	body, err := c.shared.Get(ctx, c.prefix+key).Bytes()
	if err != nil {
		if err != redis.Nil {
			log.Printf("tmdb cache: redis get %s: %v", key, err)
		}
		return nil, false
	}
	c.local.Add(key, cachedResponse{body: body, expiresAt: time.Now().Add(c.ttl)})
	return body, true
}

func (c *responseCache) set(ctx context.Context, key string, body []byte) {
	if !c.enabled() {
		return
	}
	c.local.Add(key, cachedResponse{body: body, expiresAt: time.Now().Add(c.ttl)})
	if c.shared == nil {
		return
	}
	if err := c.shared.Set(ctx, c.prefix+key, body, c.ttl).Err(); err != nil {
		log.Printf("tmdb cache: redis set %s: %v", key, err)
	}
}
