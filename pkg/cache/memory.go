package cache

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"time"
)

const sweepEvery = 256

type memoryItem struct {
	data      []byte
	expiresAt time.Time
}

func (i *memoryItem) expired(now time.Time) bool {
	return !i.expiresAt.IsZero() && now.After(i.expiresAt)
}

// MemoryCache is the single-process Cache used when Redis is not
// configured. Values are stored encoded so readers never share memory
// with writers.
type MemoryCache struct {
	mutex  sync.RWMutex
	data   map[string]*memoryItem
	writes int
	now    func() time.Time
}

func NewMemoryCache() *MemoryCache {
	return &MemoryCache{
		data: make(map[string]*memoryItem),
		now:  time.Now,
	}
}

func (c *MemoryCache) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}

	c.mutex.Lock()
	defer c.mutex.Unlock()

	item := &memoryItem{data: data}
	if expiration > 0 {
		item.expiresAt = c.now().Add(expiration)
	}
	c.data[key] = item

	c.writes++
	if c.writes%sweepEvery == 0 {
		c.sweepLocked()
	}
	return nil
}

func (c *MemoryCache) Get(ctx context.Context, key string, dest interface{}) error {
	c.mutex.RLock()
	item, ok := c.data[key]
	c.mutex.RUnlock()

	if !ok || item.expired(c.now()) {
		return ErrCacheMiss
	}
	return json.Unmarshal(item.data, dest)
}

func (c *MemoryCache) Delete(ctx context.Context, key string) error {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	delete(c.data, key)
	return nil
}

func (c *MemoryCache) Exists(ctx context.Context, key string) (bool, error) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	item, ok := c.data[key]
	return ok && !item.expired(c.now()), nil
}

func (c *MemoryCache) InvalidatePrefix(ctx context.Context, prefix string) error {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	for key := range c.data {
		if strings.HasPrefix(key, prefix) {
			delete(c.data, key)
		}
	}
	return nil
}

func (c *MemoryCache) Ping(ctx context.Context) error {
	return nil
}

func (c *MemoryCache) sweepLocked() {
	now := c.now()
	for key, item := range c.data {
		if item.expired(now) {
			delete(c.data, key)
		}
	}
}
