package usecase

import (
	"context"
	"sort"
	"strings"

	"github.com/xuanmo666/order-management-system/internal/entity"
	"github.com/xuanmo666/order-management-system/internal/keylock"
	"github.com/xuanmo666/order-management-system/internal/logging"
)

// ProductCatalog owns product records. It knows nothing about orders;
// inventory pairing on add/delete is the caller's responsibility, but every
// path that rewrites the stock figure (update, stock-in, stock-out) keeps a
// paired ledger record in sync so the product stock and ledger quantity
// never drift apart.
type ProductCatalog struct {
	products    ProductRepo
	inventories InventoryRepo
	locks       *keylock.Registry
}

func NewProductCatalog(products ProductRepo, inventories InventoryRepo, locks *keylock.Registry) *ProductCatalog {
	return &ProductCatalog{products: products, inventories: inventories, locks: locks}
}

func (s *ProductCatalog) AddProduct(ctx context.Context, p *entity.Product) error {
	if p == nil {
		return entity.Validationf("product required")
	}
	if strings.TrimSpace(p.ID) == "" {
		return entity.Validationf("product id required")
	}
	if strings.TrimSpace(p.Name) == "" {
		return entity.Validationf("product name required")
	}
	if p.Price <= 0 {
		return entity.Validationf("product price must be positive, got %v", p.Price)
	}
	if strings.TrimSpace(p.Category) == "" {
		return entity.Validationf("product category required")
	}
	if p.Stock < 0 {
		return entity.Validationf("product stock must not be negative, got %d", p.Stock)
	}

	exists, err := s.products.Exists(ctx, p.ID)
	if err != nil {
		return err
	}
	if exists {
		return entity.Validationf("product id already exists: %s", p.ID)
	}
	return s.products.Add(ctx, p)
}

func (s *ProductCatalog) UpdateProduct(ctx context.Context, p *entity.Product) error {
	if p == nil {
		return entity.Validationf("product required")
	}
	if strings.TrimSpace(p.Name) == "" {
		return entity.Validationf("product name required")
	}
	if p.Price <= 0 {
		return entity.Validationf("product price must be positive, got %v", p.Price)
	}

	unlock := s.locks.Lock(p.ID)
	defer unlock()

	exists, err := s.products.Exists(ctx, p.ID)
	if err != nil {
		return err
	}
	if !exists {
		return entity.Validationf("product not found: %s", p.ID)
	}
	if err := s.products.Update(ctx, p); err != nil {
		return err
	}
	// The update may have rewritten Stock; the paired ledger record has
	// to follow or the two figures drift apart.
	return s.syncInventory(ctx, p.ID, p.Stock)
}

// DeleteProduct removes the record only; the paired inventory record is the
// caller's to delete.
func (s *ProductCatalog) DeleteProduct(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return entity.Validationf("product id required")
	}

	unlock := s.locks.Lock(id)
	defer unlock()

	exists, err := s.products.Exists(ctx, id)
	if err != nil {
		return err
	}
	if !exists {
		return entity.Validationf("product not found: %s", id)
	}
	return s.products.Delete(ctx, id)
}

func (s *ProductCatalog) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	if strings.TrimSpace(id) == "" {
		return nil, entity.Validationf("product id required")
	}
	p, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, entity.Validationf("product not found: %s", id)
	}
	return p, nil
}

func (s *ProductCatalog) GetAll(ctx context.Context) ([]*entity.Product, error) {
	return s.products.FindAll(ctx)
}

// SearchFilter fields left at their zero value are not applied.
type SearchFilter struct {
	Keyword  string
	Category string
	MinPrice *float64
	MaxPrice *float64
}

// Search returns the products matching every supplied filter. It never
// fails; an empty filter returns everything.
func (s *ProductCatalog) Search(ctx context.Context, f SearchFilter) ([]*entity.Product, error) {
	all, err := s.products.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	keyword := strings.ToLower(strings.TrimSpace(f.Keyword))
	out := make([]*entity.Product, 0, len(all))
	for _, p := range all {
		if keyword != "" && !strings.Contains(strings.ToLower(p.Name), keyword) {
			continue
		}
		if f.Category != "" && p.Category != f.Category {
			continue
		}
		if f.MinPrice != nil && p.Price < *f.MinPrice {
			continue
		}
		if f.MaxPrice != nil && p.Price > *f.MaxPrice {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

// StockIn increases the product stock and, when a ledger record is paired,
// its quantity by the same amount.
func (s *ProductCatalog) StockIn(ctx context.Context, id string, amount int) error {
	if amount <= 0 {
		return entity.Validationf("stock-in amount must be positive, got %d", amount)
	}

	unlock := s.locks.Lock(id)
	defer unlock()

	p, err := s.products.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if p == nil {
		return entity.Validationf("product not found: %s", id)
	}

	p.IncreaseStock(amount)
	if err := s.products.Update(ctx, p); err != nil {
		return err
	}
	return s.syncInventory(ctx, id, p.Stock)
}

// StockOut reports whether stock was sufficient; on insufficiency nothing
// changes and no error is returned.
func (s *ProductCatalog) StockOut(ctx context.Context, id string, amount int) (bool, error) {
	if amount <= 0 {
		return false, entity.Validationf("stock-out amount must be positive, got %d", amount)
	}

	unlock := s.locks.Lock(id)
	defer unlock()

	p, err := s.products.FindByID(ctx, id)
	if err != nil {
		return false, err
	}
	if p == nil {
		return false, entity.Validationf("product not found: %s", id)
	}
	if !p.DecreaseStock(amount) {
		return false, nil
	}
	if err := s.products.Update(ctx, p); err != nil {
		return false, err
	}
	if err := s.syncInventory(ctx, id, p.Stock); err != nil {
		return false, err
	}
	return true, nil
}

// syncInventory writes the product's current stock through to the paired
// ledger record, if one exists. Caller holds the product lock.
func (s *ProductCatalog) syncInventory(ctx context.Context, id string, quantity int) error {
	inv, err := s.inventories.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if inv == nil {
		logging.FromCtx(ctx).Warn("no inventory record paired with product", "product_id", id)
		return nil
	}
	inv.Quantity = quantity
	return s.inventories.Update(ctx, inv)
}

func (s *ProductCatalog) CategoryStatistics(ctx context.Context) (map[string]int, error) {
	all, err := s.products.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	stats := make(map[string]int)
	for _, p := range all {
		stats[p.Category]++
	}
	return stats, nil
}

// SortedByPrice orders products by price; ties keep insertion order.
func (s *ProductCatalog) SortedByPrice(ctx context.Context, ascending bool) ([]*entity.Product, error) {
	all, err := s.products.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(all, func(i, j int) bool {
		if ascending {
			return all[i].Price < all[j].Price
		}
		return all[i].Price > all[j].Price
	})
	return all, nil
}
