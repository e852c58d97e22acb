package keylock

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLockSerializesSameKey(t *testing.T) {
	r := NewRegistry()
	counter := 0

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock := r.Lock("p1")
			defer unlock()
			counter++
		}()
	}
	wg.Wait()

	assert.Equal(t, 100, counter)
}

func TestLockAllOppositeOrdersDoNotDeadlock(t *testing.T) {
	r := NewRegistry()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			unlock := r.LockAll([]string{"a", "b", "c"})
			unlock()
		}()
		go func() {
			defer wg.Done()
			unlock := r.LockAll([]string{"c", "b", "a"})
			unlock()
		}()
	}
	wg.Wait()
}

func TestLockAllDeduplicates(t *testing.T) {
	r := NewRegistry()
	// Would self-deadlock if the duplicate id were locked twice.
	unlock := r.LockAll([]string{"x", "x", "x"})
	unlock()
}
