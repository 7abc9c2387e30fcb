package entitykit

import (
	"encoding/json"
	"iter"
	"reflect"
)

// Collection is an ordered set of entities keyed by identity. Iteration
// follows insertion order, replacing an entry keeps its position. Put and
// Delete return new collections, a nil *Collection reads as empty.
type Collection struct {
	keys    []interface{}
	entries map[interface{}]*Entity
}

// NewCollection builds a collection keyed by IDOrToken, later entities
// replace earlier ones with the same identity
func NewCollection(entities ...*Entity) *Collection {
	c := newCollection(len(entities))
	for _, e := range entities {
		if e != nil {
			c.put(e.IDOrToken(), e)
		}
	}
	return c
}

func newCollection(size int) *Collection {
	return &Collection{
		keys:    make([]interface{}, 0, size),
		entries: make(map[interface{}]*Entity, size),
	}
}

func validKey(key interface{}) bool {
	return key == nil || reflect.TypeOf(key).Comparable()
}

func (c *Collection) put(key interface{}, e *Entity) {
	if _, ok := c.entries[key]; !ok {
		c.keys = append(c.keys, key)
	}
	c.entries[key] = e
}

func (c *Collection) clone(extra int) *Collection {
	if c == nil {
		return newCollection(extra)
	}

	cloned := &Collection{
		keys:    make([]interface{}, len(c.keys), len(c.keys)+extra),
		entries: make(map[interface{}]*Entity, len(c.entries)+extra),
	}
	copy(cloned.keys, c.keys)
	for key, e := range c.entries {
		cloned.entries[key] = e
	}
	return cloned
}

// Len returns the number of entries
func (c *Collection) Len() int {
	if c == nil {
		return 0
	}
	return len(c.keys)
}

// Get returns the entity stored under key, nil when absent
func (c *Collection) Get(key interface{}) *Entity {
	if c == nil || !validKey(key) {
		return nil
	}
	return c.entries[key]
}

// Has reports whether key is present
func (c *Collection) Has(key interface{}) bool {
	if c == nil || !validKey(key) {
		return false
	}
	_, ok := c.entries[key]
	return ok
}

// Keys returns the keys in iteration order
func (c *Collection) Keys() []interface{} {
	if c == nil {
		return nil
	}
	return append([]interface{}(nil), c.keys...)
}

// Values returns the entities in iteration order
func (c *Collection) Values() []*Entity {
	values := make([]*Entity, 0, c.Len())
	for _, key := range c.Keys() {
		values = append(values, c.entries[key])
	}
	return values
}

// All iterates keys and entities in order
func (c *Collection) All() iter.Seq2[interface{}, *Entity] {
	return func(yield func(interface{}, *Entity) bool) {
		if c == nil {
			return
		}
		for _, key := range c.keys {
			if !yield(key, c.entries[key]) {
				return
			}
		}
	}
}

// Each calls fn for every entry in order
func (c *Collection) Each(fn func(key interface{}, e *Entity)) {
	for key, e := range c.All() {
		fn(key, e)
	}
}

// Put returns a collection with e stored under key, in place of the current
// entry when key exists, appended otherwise. key must be comparable.
func (c *Collection) Put(key interface{}, e *Entity) *Collection {
	cloned := c.clone(1)
	cloned.put(key, e)
	return cloned
}

// Delete returns a collection without key
func (c *Collection) Delete(key interface{}) *Collection {
	if !c.Has(key) {
		return c.clone(0)
	}

	cloned := &Collection{
		keys:    make([]interface{}, 0, len(c.keys)-1),
		entries: make(map[interface{}]*Entity, len(c.entries)-1),
	}
	for _, k := range c.keys {
		if k != key {
			cloned.keys = append(cloned.keys, k)
			cloned.entries[k] = c.entries[k]
		}
	}
	return cloned
}

// MarshalJSON encodes the collection as the list of its entities
func (c *Collection) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.Values())
}
