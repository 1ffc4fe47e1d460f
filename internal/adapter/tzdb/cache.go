package tzdb

import (
	"sync"
	"time"

	"github.com/couchcryptid/forecast-etl/internal/domain"
)

// CachedLoader wraps a domain.ZoneLoader with an in-memory LRU cache so each
// sync does not re-read zoneinfo for every response.
type CachedLoader struct {
	inner domain.ZoneLoader
	cache *lruCache
}

// NewCachedLoader creates a cache decorator around a zone loader. A nil inner
// loader uses time.LoadLocation.
func NewCachedLoader(inner domain.ZoneLoader, maxEntries int) *CachedLoader {
	if inner == nil {
		inner = time.LoadLocation
	}
	return &CachedLoader{
		inner: inner,
		cache: newLRUCache(maxEntries),
	}
}

// Load implements domain.ZoneLoader.
func (c *CachedLoader) Load(name string) (*time.Location, error) {
	if loc, ok := c.cache.get(name); ok {
		return loc, nil
	}
	loc, err := c.inner(name)
	if err != nil {
		// Failures are not cached; a missing zone is reported every time.
		return nil, err
	}
	c.cache.put(name, loc)
	return loc, nil
}

// lruCache is a small thread-safe LRU keyed by zone name.
type lruCache struct {
	maxEntries int
	mu         sync.Mutex
	entries    map[string]*entry
	head       *entry // most recently used
	tail       *entry // least recently used
}

type entry struct {
	key   string
	value *time.Location
	prev  *entry
	next  *entry
}

func newLRUCache(maxEntries int) *lruCache {
	if maxEntries < 1 {
		maxEntries = 1
	}
	return &lruCache{
		maxEntries: maxEntries,
		entries:    make(map[string]*entry),
	}
}

func (c *lruCache) get(key string) (*time.Location, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	c.moveToFront(e)
	return e.value, true
}

func (c *lruCache) put(key string, value *time.Location) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.entries[key]; ok {
		e.value = value
		c.moveToFront(e)
		return
	}

	e := &entry{key: key, value: value}
	c.entries[key] = e
	c.pushFront(e)

	if len(c.entries) > c.maxEntries {
		last := c.tail
		c.unlink(last)
		delete(c.entries, last.key)
	}
}

func (c *lruCache) len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

func (c *lruCache) moveToFront(e *entry) {
	if e == c.head {
		return
	}
	c.unlink(e)
	c.pushFront(e)
}

func (c *lruCache) pushFront(e *entry) {
	e.prev = nil
	e.next = c.head
	if c.head != nil {
		c.head.prev = e
	}
	c.head = e
	if c.tail == nil {
		c.tail = e
	}
}

func (c *lruCache) unlink(e *entry) {
	if e.prev != nil {
		e.prev.next = e.next
	} else {
		c.head = e.next
	}
	if e.next != nil {
		e.next.prev = e.prev
	} else {
		c.tail = e.prev
	}
	e.prev, e.next = nil, nil
}
