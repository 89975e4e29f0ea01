package cover

import (
	"container/list"
	"sync"
)

// DefaultCacheSize bounds the cover cache when no capacity is given.
const DefaultCacheSize = 64

// FetchState is the outcome of Begin: what the cache already knows about
// a key at the moment a load is requested.
type FetchState int

const (
	// FetchStarted means the key was unknown and is now marked pending;
	// the caller owns the fetch.
	FetchStarted FetchState = iota
	// FetchCached means the cache holds a result for the key, possibly a
	// recorded miss.
	FetchCached
	// FetchPending means another fetch for the key is already in flight.
	FetchPending
)

// Cache is a bounded, mutex-guarded LRU of raw cover images keyed by
// track key. A nil value is a recorded miss: the daemon was asked and had
// no art, so the key stays present and is not fetched again until the
// entry is evicted. The pending set tracks in-flight fetches and is never
// evicted.
type Cache struct {
	mu       sync.Mutex
	capacity int
	entries  map[string]*list.Element
	order    *list.List // front is most recently used
	pending  map[string]struct{}
}

type cacheEntry struct {
	key  string
	data []byte
}

// NewCache returns a cache bounded to capacity entries. Non-positive
// capacities fall back to DefaultCacheSize.
func NewCache(capacity int) *Cache {
	if capacity <= 0 {
		capacity = DefaultCacheSize
	}
	return &Cache{
		capacity: capacity,
		entries:  make(map[string]*list.Element),
		order:    list.New(),
		pending:  make(map[string]struct{}),
	}
}

// Get returns the cached image for key. ok is true whenever the key is
// present, including recorded misses with nil data. A hit refreshes the
// key's recency.
func (c *Cache) Get(key string) (data []byte, ok bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	elem, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	c.order.MoveToFront(elem)
	return elem.Value.(*cacheEntry).data, true
}

// Contains reports whether key is present without refreshing recency.
func (c *Cache) Contains(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.entries[key]
	return ok
}

// IsPending reports whether a fetch for key is in flight.
func (c *Cache) IsPending(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.pending[key]
	return ok
}

// MarkPending records that a fetch for key has started.
func (c *Cache) MarkPending(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pending[key] = struct{}{}
}

// Insert stores the fetched image for key, nil recording a miss, clears
// the key's pending mark, and evicts least recently used entries beyond
// capacity.
func (c *Cache) Insert(key string, data []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.pending, key)
	if elem, ok := c.entries[key]; ok {
		elem.Value.(*cacheEntry).data = data
		c.order.MoveToFront(elem)
		return
	}
	c.entries[key] = c.order.PushFront(&cacheEntry{key: key, data: data})
	for c.order.Len() > c.capacity {
		oldest := c.order.Back()
		c.order.Remove(oldest)
		delete(c.entries, oldest.Value.(*cacheEntry).key)
	}
}

// Begin is the composed load-side critical section. In one locked step it
// reports a cached result, an in-flight fetch, or marks the key pending
// and hands the fetch to the caller. Exactly one concurrent caller per
// key observes FetchStarted.
func (c *Cache) Begin(key string) ([]byte, FetchState) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if elem, ok := c.entries[key]; ok {
		c.order.MoveToFront(elem)
		return elem.Value.(*cacheEntry).data, FetchCached
	}
	if _, ok := c.pending[key]; ok {
		return nil, FetchPending
	}
	c.pending[key] = struct{}{}
	return nil, FetchStarted
}

// Len reports the number of cached entries, pending fetches excluded.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
