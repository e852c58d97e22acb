package usecase

import (
	"context"
	"time"
)

// Event messages published after a stock-affecting operation commits.
// Publishing is best effort: failures are logged, never propagated to the
// caller, and never roll back the operation.

type OrderCreatedMsg struct {
	OrderID     string    `json:"order_id"`
	CustomerID  string    `json:"customer_id"`
	TotalAmount float64   `json:"total_amount"`
	ItemCount   int       `json:"item_count"`
	At          time.Time `json:"at"`
}

type OrderCancelledMsg struct {
	OrderID string    `json:"order_id"`
	At      time.Time `json:"at"`
}

type LowStockMsg struct {
	ProductID    string    `json:"product_id"`
	Quantity     int       `json:"quantity"`
	MinThreshold int       `json:"min_threshold"`
	At           time.Time `json:"at"`
}

type EventPublisher interface {
	PublishOrderCreated(ctx context.Context, msg OrderCreatedMsg) error
	PublishOrderCancelled(ctx context.Context, msg OrderCancelledMsg) error
	PublishLowStock(ctx context.Context, msg LowStockMsg) error
}

// NopPublisher drops every event; used when no broker is configured.
type NopPublisher struct{}

func (NopPublisher) PublishOrderCreated(ctx context.Context, msg OrderCreatedMsg) error { return nil }
func (NopPublisher) PublishOrderCancelled(ctx context.Context, msg OrderCancelledMsg) error {
	return nil
}
func (NopPublisher) PublishLowStock(ctx context.Context, msg LowStockMsg) error { return nil }

var _ EventPublisher = NopPublisher{}
