// Package memstore implements the repository ports over process memory.
// This is the reference persistence substrate: maps guarded by an RWMutex,
// values copied at the boundary so callers never share mutable state with
// the store. Insertion order is preserved, which keeps stable sorts and
// listings deterministic.
package memstore

import "sync"

// collection is an ordered map of id -> value with copy-on-read and
// copy-on-write semantics supplied by clone.
type collection[T any] struct {
	mu    sync.RWMutex
	items map[string]T
	order []string
	clone func(T) T
}

func newCollection[T any](clone func(T) T) *collection[T] {
	return &collection[T]{
		items: make(map[string]T),
		clone: clone,
	}
}

func (c *collection[T]) add(id string, v T) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.items[id]; ok {
		return false
	}
	c.items[id] = c.clone(v)
	c.order = append(c.order, id)
	return true
}

func (c *collection[T]) update(id string, v T) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.items[id]; !ok {
		return false
	}
	c.items[id] = c.clone(v)
	return true
}

func (c *collection[T]) delete(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.items[id]; !ok {
		return false
	}
	delete(c.items, id)
	for i, oid := range c.order {
		if oid == id {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
	return true
}

func (c *collection[T]) get(id string) (T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	v, ok := c.items[id]
	if !ok {
		var zero T
		return zero, false
	}
	return c.clone(v), true
}

func (c *collection[T]) all() []T {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]T, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.clone(c.items[id]))
	}
	return out
}

func (c *collection[T]) exists(id string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.items[id]
	return ok
}

func (c *collection[T]) count() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}
