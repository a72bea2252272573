package cache

import (
	"container/list"
	"context"
	"sync"
	"sync/atomic"

	"github.com/pakbuy/backend/internal/domain"
)

// DefaultCapacity is the number of titles kept when no capacity is configured
const DefaultCapacity = 1000

// cacheItem represents a single entry in the recency list
type cacheItem struct {
	key   string
	value string
}

// MemoryCache is a thread-safe bounded in-memory cache with LRU eviction.
// Entries live until evicted or the process exits.
type MemoryCache struct {
	capacity int
	data     map[string]*list.Element
	order    *list.List // front = most recently used
	mutex    sync.Mutex

	hits   atomic.Int64
	misses atomic.Int64
}

// NewMemoryCache creates a new in-memory cache holding at most capacity entries
func NewMemoryCache(capacity int) *MemoryCache {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}

	return &MemoryCache{
		capacity: capacity,
		data:     make(map[string]*list.Element, capacity),
		order:    list.New(),
	}
}

// Get retrieves a value from the cache and records a hit or a miss
func (c *MemoryCache) Get(ctx context.Context, key string) (string, error) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	elem, exists := c.data[key]
	if !exists {
		c.misses.Add(1)
		return "", domain.ErrCacheMiss
	}

	c.order.MoveToFront(elem)
	c.hits.Add(1)
	return elem.Value.(*cacheItem).value, nil
}

// Set stores a value, evicting the least recently used entry when full
func (c *MemoryCache) Set(ctx context.Context, key string, value string) error {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	if elem, exists := c.data[key]; exists {
		elem.Value.(*cacheItem).value = value
		c.order.MoveToFront(elem)
		return nil
	}

	for c.order.Len() >= c.capacity {
		c.evictOldest()
	}

	c.data[key] = c.order.PushFront(&cacheItem{key: key, value: value})
	return nil
}

// evictOldest drops the tail of the recency list. Caller must hold the mutex.
func (c *MemoryCache) evictOldest() {
	oldest := c.order.Back()
	if oldest == nil {
		return
	}
	c.order.Remove(oldest)
	delete(c.data, oldest.Value.(*cacheItem).key)
}

// Size returns the current number of items in the cache
func (c *MemoryCache) Size() int {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	return c.order.Len()
}

// Capacity returns the maximum number of entries
func (c *MemoryCache) Capacity() int {
	return c.capacity
}

// Stats returns size and cumulative hit/miss counters
func (c *MemoryCache) Stats() domain.CacheStats {
	return domain.CacheStats{
		Size:   c.Size(),
		Hits:   c.hits.Load(),
		Misses: c.misses.Load(),
	}
}

// Clear removes all items from the cache. Counters are kept.
func (c *MemoryCache) Clear() {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.data = make(map[string]*list.Element, c.capacity)
	c.order.Init()
}
