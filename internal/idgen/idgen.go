// Package idgen produces unique, human-scannable identifiers for products,
// orders and customers. Format is informational only; callers rely solely
// on uniqueness.
package idgen

import (
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

var (
	productSeq atomic.Int64
	orderSeq   atomic.Int64
)

// Counters start from the clock, not a constant, so a restarted process
// does not reissue ids that earlier runs may have persisted.
func init() {
	now := time.Now().UnixNano()
	productSeq.Store(1000 + now%1_000_000)
	orderSeq.Store(10000 + now%10_000_000)
}

// NewProductID returns ids like P-20231201-284711.
func NewProductID() string {
	return fmt.Sprintf("P-%s-%04d", time.Now().Format("20060102"), productSeq.Add(1))
}

// NewOrderID returns ids like O-20231201143015-3100482.
func NewOrderID() string {
	return fmt.Sprintf("O-%s-%05d", time.Now().Format("20060102150405"), orderSeq.Add(1))
}

// NewCustomerID returns ids like C-7b3f9a2d; the random part guards against
// collisions across restarts.
func NewCustomerID() string {
	short := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	return "C-" + short
}
