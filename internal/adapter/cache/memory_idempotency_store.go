package cache

import (
	"context"
	"sync"
	"time"

	"github.com/xuanmo666/order-management-system/internal/usecase"
)

type memEntry struct {
	value     string
	expiresAt time.Time
}

// MemoryIdempotencyStore is the single-process fallback used when no Redis
// is configured. Entries expire lazily on access.
type MemoryIdempotencyStore struct {
	mu      sync.Mutex
	ttl     time.Duration
	locks   map[string]memEntry
	values  map[string]memEntry
	nowFunc func() time.Time
}

func NewMemoryIdempotencyStore(ttl time.Duration) *MemoryIdempotencyStore {
	return &MemoryIdempotencyStore{
		ttl:     ttl,
		locks:   make(map[string]memEntry),
		values:  make(map[string]memEntry),
		nowFunc: time.Now,
	}
}

func (s *MemoryIdempotencyStore) TryLock(ctx context.Context, scope, key string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	k := scope + ":" + key
	now := s.nowFunc()
	if e, ok := s.locks[k]; ok && now.Before(e.expiresAt) {
		return false, nil
	}
	s.locks[k] = memEntry{expiresAt: now.Add(s.ttl)}
	return true, nil
}

func (s *MemoryIdempotencyStore) Remember(ctx context.Context, scope, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[scope+":"+key] = memEntry{value: value, expiresAt: s.nowFunc().Add(s.ttl)}
	return nil
}

func (s *MemoryIdempotencyStore) Recall(ctx context.Context, scope, key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	k := scope + ":" + key
	e, ok := s.values[k]
	if !ok {
		return "", false, nil
	}
	if s.nowFunc().After(e.expiresAt) {
		delete(s.values, k)
		delete(s.locks, k)
		return "", false, nil
	}
	return e.value, true, nil
}

var _ usecase.IdempotencyStore = (*MemoryIdempotencyStore)(nil)
