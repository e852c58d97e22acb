// Package keylock serializes stock mutations per product id. Operations on
// different ids proceed concurrently; multi-id callers acquire locks in
// sorted order so two orders touching the same products cannot deadlock.
package keylock

import (
	"sort"
	"sync"
)

type Registry struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewRegistry() *Registry {
	return &Registry{locks: make(map[string]*sync.Mutex)}
}

func (r *Registry) get(id string) *sync.Mutex {
	r.mu.Lock()
	defer r.mu.Unlock()
	l, ok := r.locks[id]
	if !ok {
		l = &sync.Mutex{}
		r.locks[id] = l
	}
	return l
}

// Lock acquires the lock for one id and returns its release func.
func (r *Registry) Lock(id string) func() {
	l := r.get(id)
	l.Lock()
	return l.Unlock
}

// LockAll acquires the locks for every distinct id, in sorted order, and
// returns a single release func that unlocks them in reverse.
func (r *Registry) LockAll(ids []string) func() {
	distinct := make([]string, 0, len(ids))
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		distinct = append(distinct, id)
	}
	sort.Strings(distinct)

	held := make([]*sync.Mutex, 0, len(distinct))
	for _, id := range distinct {
		l := r.get(id)
		l.Lock()
		held = append(held, l)
	}
	return func() {
		for i := len(held) - 1; i >= 0; i-- {
			held[i].Unlock()
		}
	}
}
