package usecase

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/xuanmo666/order-management-system/internal/entity"
	"github.com/xuanmo666/order-management-system/internal/keylock"
	"github.com/xuanmo666/order-management-system/internal/logging"
)

// AdjustOp names the direction of a ledger adjustment.
type AdjustOp string

const (
	AdjustIncrease AdjustOp = "increase"
	AdjustDecrease AdjustOp = "decrease"
)

// InventoryLedger is the authoritative low-level stock bookkeeper. Every
// quantity change it commits is written through to the denormalized
// Product.Stock so the two never diverge.
type InventoryLedger struct {
	inventories InventoryRepo
	products    ProductRepo
	locks       *keylock.Registry
	events      EventPublisher
}

func NewInventoryLedger(inventories InventoryRepo, products ProductRepo, locks *keylock.Registry, events EventPublisher) *InventoryLedger {
	return &InventoryLedger{inventories: inventories, products: products, locks: locks, events: events}
}

func (s *InventoryLedger) validate(inv *entity.Inventory) error {
	if inv == nil {
		return entity.Validationf("inventory required")
	}
	if strings.TrimSpace(inv.ProductID) == "" {
		return entity.Validationf("product id required")
	}
	if inv.Quantity < 0 {
		return entity.Validationf("quantity must not be negative, got %d", inv.Quantity)
	}
	if inv.MinThreshold < 0 {
		return entity.Validationf("min threshold must not be negative, got %d", inv.MinThreshold)
	}
	if inv.MaxCapacity <= inv.MinThreshold {
		return entity.Validationf("max capacity %d must exceed min threshold %d",
			inv.MaxCapacity, inv.MinThreshold)
	}
	if inv.Quantity > inv.MaxCapacity {
		return entity.Validationf("quantity %d exceeds max capacity %d",
			inv.Quantity, inv.MaxCapacity)
	}
	return nil
}

func (s *InventoryLedger) AddInventory(ctx context.Context, inv *entity.Inventory) error {
	if err := s.validate(inv); err != nil {
		return err
	}

	unlock := s.locks.Lock(inv.ProductID)
	defer unlock()

	exists, err := s.inventories.Exists(ctx, inv.ProductID)
	if err != nil {
		return err
	}
	if exists {
		return entity.Validationf("inventory record already exists: %s", inv.ProductID)
	}
	if err := s.inventories.Add(ctx, inv); err != nil {
		return err
	}
	return s.syncProductStock(ctx, inv.ProductID, inv.Quantity)
}

func (s *InventoryLedger) UpdateInventory(ctx context.Context, inv *entity.Inventory) error {
	if err := s.validate(inv); err != nil {
		return err
	}

	unlock := s.locks.Lock(inv.ProductID)
	defer unlock()

	exists, err := s.inventories.Exists(ctx, inv.ProductID)
	if err != nil {
		return err
	}
	if !exists {
		return entity.Validationf("inventory record not found: %s", inv.ProductID)
	}
	if err := s.inventories.Update(ctx, inv); err != nil {
		return err
	}
	return s.syncProductStock(ctx, inv.ProductID, inv.Quantity)
}

// Adjust moves quantity up or down, holding the product lock across the
// check and the write. Capacity and sufficiency violations come back as
// BusinessError and leave the record untouched.
func (s *InventoryLedger) Adjust(ctx context.Context, productID string, amount int, op AdjustOp) error {
	if strings.TrimSpace(productID) == "" {
		return entity.Validationf("product id required")
	}
	if amount <= 0 {
		return entity.Validationf("adjust amount must be positive, got %d", amount)
	}

	unlock := s.locks.Lock(productID)
	defer unlock()

	inv, err := s.inventories.FindByID(ctx, productID)
	if err != nil {
		return err
	}
	if inv == nil {
		return entity.Validationf("inventory record not found: %s", productID)
	}

	switch op {
	case AdjustIncrease:
		if inv.OverCapacity(amount) {
			return entity.Businessf("over capacity: %s holds %d, adding %d exceeds %d",
				productID, inv.Quantity, amount, inv.MaxCapacity)
		}
		inv.Quantity += amount
	case AdjustDecrease:
		if inv.Quantity < amount {
			return entity.Businessf("insufficient stock: %s holds %d, requested %d",
				productID, inv.Quantity, amount)
		}
		inv.Quantity -= amount
	default:
		return entity.Validationf("unsupported adjust operation: %s", op)
	}

	if err := s.inventories.Update(ctx, inv); err != nil {
		return err
	}
	if err := s.syncProductStock(ctx, productID, inv.Quantity); err != nil {
		return err
	}

	if inv.NeedsWarning() {
		if err := s.events.PublishLowStock(ctx, LowStockMsg{
			ProductID:    productID,
			Quantity:     inv.Quantity,
			MinThreshold: inv.MinThreshold,
			At:           time.Now(),
		}); err != nil {
			logging.FromCtx(ctx).Warn("publish low stock event", "product_id", productID, "err", err)
		}
	}
	return nil
}

func (s *InventoryLedger) GetByProductID(ctx context.Context, productID string) (*entity.Inventory, error) {
	if strings.TrimSpace(productID) == "" {
		return nil, entity.Validationf("product id required")
	}
	inv, err := s.inventories.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, entity.Validationf("inventory record not found: %s", productID)
	}
	return inv, nil
}

func (s *InventoryLedger) GetAll(ctx context.Context) ([]*entity.Inventory, error) {
	return s.inventories.FindAll(ctx)
}

// LowStockItems lists records strictly below their minimum threshold.
func (s *InventoryLedger) LowStockItems(ctx context.Context) ([]*entity.Inventory, error) {
	all, err := s.inventories.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*entity.Inventory, 0)
	for _, inv := range all {
		if inv.NeedsWarning() {
			out = append(out, inv)
		}
	}
	lowStockProducts.Set(float64(len(out)))
	return out, nil
}

// FindByQuantityRange returns records with min <= quantity <= max.
func (s *InventoryLedger) FindByQuantityRange(ctx context.Context, min, max int) ([]*entity.Inventory, error) {
	all, err := s.inventories.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*entity.Inventory, 0)
	for _, inv := range all {
		if inv.Quantity >= min && inv.Quantity <= max {
			out = append(out, inv)
		}
	}
	return out, nil
}

func (s *InventoryLedger) SortedByQuantity(ctx context.Context, ascending bool) ([]*entity.Inventory, error) {
	all, err := s.inventories.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(all, func(i, j int) bool {
		if ascending {
			return all[i].Quantity < all[j].Quantity
		}
		return all[i].Quantity > all[j].Quantity
	})
	return all, nil
}

type InventoryStatistics struct {
	TotalItems      int `json:"totalItems"`
	TotalQuantity   int `json:"totalQuantity"`
	LowStockCount   int `json:"lowStockCount"`
	AverageQuantity int `json:"averageQuantity"`
}

func (s *InventoryLedger) Statistics(ctx context.Context) (InventoryStatistics, error) {
	all, err := s.inventories.FindAll(ctx)
	if err != nil {
		return InventoryStatistics{}, err
	}
	var stats InventoryStatistics
	for _, inv := range all {
		stats.TotalItems++
		stats.TotalQuantity += inv.Quantity
		if inv.NeedsWarning() {
			stats.LowStockCount++
		}
	}
	if stats.TotalItems > 0 {
		stats.AverageQuantity = stats.TotalQuantity / stats.TotalItems
	}
	lowStockProducts.Set(float64(stats.LowStockCount))
	return stats, nil
}

// Delete is idempotent: removing a record that does not exist is a no-op,
// so product-deletion cleanup can run without a prior existence check.
func (s *InventoryLedger) Delete(ctx context.Context, productID string) error {
	if strings.TrimSpace(productID) == "" {
		return entity.Validationf("product id required")
	}

	unlock := s.locks.Lock(productID)
	defer unlock()

	exists, err := s.inventories.Exists(ctx, productID)
	if err != nil {
		return err
	}
	if !exists {
		return nil
	}
	return s.inventories.Delete(ctx, productID)
}

// syncProductStock writes the ledger quantity through to the denormalized
// product stock. A missing product is tolerated: the ledger record may be
// created before, or outlive, its product during pairing. Caller holds the
// product lock.
func (s *InventoryLedger) syncProductStock(ctx context.Context, productID string, quantity int) error {
	p, err := s.products.FindByID(ctx, productID)
	if err != nil {
		return err
	}
	if p == nil {
		return nil
	}
	p.Stock = quantity
	return s.products.Update(ctx, p)
}
