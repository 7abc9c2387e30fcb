package lru

// size bounded LRU in the spirit of hashicorp/golang-lru, without expiration
import (
	"sync"
)

// EvictCallback is used to get a callback when a cache entry is evicted
type EvictCallback[K comparable, V any] func(key K, value V)

// LRU implements a thread-safe, size bounded LRU.
type LRU[K comparable, V any] struct {
	mu        sync.Mutex
	size      int
	evictList *list[K, V]
	items     map[K]*entry[K, V]
	onEvict   EvictCallback[K, V]
}

// NewLRU returns a new thread-safe cache holding at most size entries.
//
// Size parameter set to 0 makes cache of unlimited size, e.g. turns LRU mechanism off.
func NewLRU[K comparable, V any](size int, onEvict EvictCallback[K, V]) *LRU[K, V] {
	if size < 0 {
		size = 0
	}

	return &LRU[K, V]{
		size:      size,
		evictList: newList[K, V](),
		items:     make(map[K]*entry[K, V]),
		onEvict:   onEvict,
	}
}

// Purge clears the cache completely.
// onEvict is called for each evicted key.
func (c *LRU[K, V]) Purge() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for k, v := range c.items {
		if c.onEvict != nil {
			c.onEvict(k, v.value)
		}
		delete(c.items, k)
	}
	c.evictList.init()
}

// Add adds a value to the cache. Returns true if an eviction occurred.
func (c *LRU[K, V]) Add(key K, value V) (evicted bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if ent, ok := c.items[key]; ok {
		c.evictList.moveToFront(ent)
		ent.value = value
		return false
	}

	c.items[key] = c.evictList.pushFront(key, value)

	evict := c.size > 0 && c.evictList.len > c.size
	if evict {
		c.removeOldest()
	}
	return evict
}

// Get looks up a key's value from the cache, marking it as recently used.
func (c *LRU[K, V]) Get(key K) (value V, ok bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if ent, found := c.items[key]; found {
		c.evictList.moveToFront(ent)
		return ent.value, true
	}
	return
}

// GetOrAdd returns the cached value for key, computing and storing it with fn on a miss
func (c *LRU[K, V]) GetOrAdd(key K, fn func() V) V {
	if value, ok := c.Get(key); ok {
		return value
	}

	value := fn()
	c.Add(key, value)
	return value
}

// Peek returns the key value without updating the "recently used"-ness of the key.
func (c *LRU[K, V]) Peek(key K) (value V, ok bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if ent, found := c.items[key]; found {
		return ent.value, true
	}
	return
}

// Remove removes the provided key from the cache, returning if the
// key was contained.
func (c *LRU[K, V]) Remove(key K) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if ent, ok := c.items[key]; ok {
		c.removeElement(ent)
		return true
	}
	return false
}

// Keys returns the keys of the cache, from oldest to newest.
func (c *LRU[K, V]) Keys() []K {
	c.mu.Lock()
	defer c.mu.Unlock()
	keys := make([]K, 0, len(c.items))
	for ent := c.evictList.back(); ent != nil; ent = ent.prevEntry() {
		keys = append(keys, ent.key)
	}
	return keys
}

// Len returns the number of items in the cache.
func (c *LRU[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.evictList.len
}

// Cap returns the capacity of the cache
func (c *LRU[K, V]) Cap() int {
	return c.size
}

// removeOldest removes the oldest item from the cache. Has to be called with lock!
func (c *LRU[K, V]) removeOldest() {
	if ent := c.evictList.back(); ent != nil {
		c.removeElement(ent)
	}
}

// removeElement is used to remove a given list element from the cache. Has to be called with lock!
func (c *LRU[K, V]) removeElement(e *entry[K, V]) {
	c.evictList.remove(e)
	delete(c.items, e.key)
	if c.onEvict != nil {
		c.onEvict(e.key, e.value)
	}
}

type entry[K comparable, V any] struct {
	next, prev *entry[K, V]
	list       *list[K, V]
	key        K
	value      V
}

// prevEntry returns the previous list element or nil.
func (e *entry[K, V]) prevEntry() *entry[K, V] {
	if p := e.prev; e.list != nil && p != &e.list.root {
		return p
	}
	return nil
}

// list is a doubly linked ring with a sentinel root, front is most recently used
type list[K comparable, V any] struct {
	root entry[K, V]
	len  int
}

func newList[K comparable, V any]() *list[K, V] { return new(list[K, V]).init() }

func (l *list[K, V]) init() *list[K, V] {
	l.root.next = &l.root
	l.root.prev = &l.root
	l.len = 0
	return l
}

func (l *list[K, V]) back() *entry[K, V] {
	if l.len == 0 {
		return nil
	}
	return l.root.prev
}

func (l *list[K, V]) insert(e, at *entry[K, V]) *entry[K, V] {
	e.prev = at
	e.next = at.next
	e.prev.next = e
	e.next.prev = e
	e.list = l
	l.len++
	return e
}

func (l *list[K, V]) pushFront(k K, v V) *entry[K, V] {
	return l.insert(&entry[K, V]{key: k, value: v}, &l.root)
}

func (l *list[K, V]) remove(e *entry[K, V]) {
	e.prev.next = e.next
	e.next.prev = e.prev
	e.next = nil // avoid memory leaks
	e.prev = nil // avoid memory leaks
	e.list = nil
	l.len--
}

func (l *list[K, V]) moveToFront(e *entry[K, V]) {
	if e.list != l || l.root.next == e {
		return
	}
	e.prev.next = e.next
	e.next.prev = e.prev

	at := &l.root
	e.prev = at
	e.next = at.next
	e.prev.next = e
	e.next.prev = e
}
