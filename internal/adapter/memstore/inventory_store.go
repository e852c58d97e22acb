package memstore

import (
	"context"

	"github.com/xuanmo666/order-management-system/internal/entity"
	"github.com/xuanmo666/order-management-system/internal/usecase"
)

type InventoryStore struct {
	c *collection[*entity.Inventory]
}

func NewInventoryStore() *InventoryStore {
	return &InventoryStore{c: newCollection(func(inv *entity.Inventory) *entity.Inventory {
		cp := *inv
		return &cp
	})}
}

func (s *InventoryStore) Add(ctx context.Context, inv *entity.Inventory) error {
	if !s.c.add(inv.ProductID, inv) {
		return entity.Validationf("inventory record already exists: %s", inv.ProductID)
	}
	return nil
}

func (s *InventoryStore) Update(ctx context.Context, inv *entity.Inventory) error {
	if !s.c.update(inv.ProductID, inv) {
		return entity.Validationf("inventory record not found: %s", inv.ProductID)
	}
	return nil
}

func (s *InventoryStore) Delete(ctx context.Context, productID string) error {
	if !s.c.delete(productID) {
		return entity.Validationf("inventory record not found: %s", productID)
	}
	return nil
}

func (s *InventoryStore) FindByID(ctx context.Context, productID string) (*entity.Inventory, error) {
	inv, ok := s.c.get(productID)
	if !ok {
		return nil, nil
	}
	return inv, nil
}

func (s *InventoryStore) FindAll(ctx context.Context) ([]*entity.Inventory, error) {
	return s.c.all(), nil
}

func (s *InventoryStore) Exists(ctx context.Context, productID string) (bool, error) {
	return s.c.exists(productID), nil
}

func (s *InventoryStore) Count(ctx context.Context) (int, error) {
	return s.c.count(), nil
}

var _ usecase.InventoryRepo = (*InventoryStore)(nil)
