package idgen

import (
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIDPrefixes(t *testing.T) {
	assert.True(t, strings.HasPrefix(NewProductID(), "P-"))
	assert.True(t, strings.HasPrefix(NewOrderID(), "O-"))

	cid := NewCustomerID()
	assert.True(t, strings.HasPrefix(cid, "C-"))
	assert.Len(t, cid, len("C-")+8)
}

func TestIDsUniqueUnderConcurrency(t *testing.T) {
	const n = 200
	var (
		mu  sync.Mutex
		ids = make(map[string]struct{}, 3*n)
		wg  sync.WaitGroup
	)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			generated := []string{NewProductID(), NewOrderID(), NewCustomerID()}
			mu.Lock()
			for _, id := range generated {
				ids[id] = struct{}{}
			}
			mu.Unlock()
		}()
	}
	wg.Wait()
	assert.Len(t, ids, 3*n)
}
