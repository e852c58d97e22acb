package usecase

import (
	"context"

	"github.com/xuanmo666/order-management-system/internal/entity"
)

// Persistence ports. The reference store is in-memory; anything satisfying
// these contracts (see adapter/repo) can be substituted without touching
// the services.

type ProductRepo interface {
	Add(ctx context.Context, p *entity.Product) error
	Update(ctx context.Context, p *entity.Product) error
	Delete(ctx context.Context, id string) error
	FindByID(ctx context.Context, id string) (*entity.Product, error)
	FindAll(ctx context.Context) ([]*entity.Product, error)
	Exists(ctx context.Context, id string) (bool, error)
	Count(ctx context.Context) (int, error)
}

type InventoryRepo interface {
	Add(ctx context.Context, inv *entity.Inventory) error
	Update(ctx context.Context, inv *entity.Inventory) error
	Delete(ctx context.Context, productID string) error
	FindByID(ctx context.Context, productID string) (*entity.Inventory, error)
	FindAll(ctx context.Context) ([]*entity.Inventory, error)
	Exists(ctx context.Context, productID string) (bool, error)
	Count(ctx context.Context) (int, error)
}

type OrderRepo interface {
	Add(ctx context.Context, o *entity.Order) error
	Update(ctx context.Context, o *entity.Order) error
	Delete(ctx context.Context, orderID string) error
	FindByID(ctx context.Context, orderID string) (*entity.Order, error)
	FindAll(ctx context.Context) ([]*entity.Order, error)
	Exists(ctx context.Context, orderID string) (bool, error)
	Count(ctx context.Context) (int, error)
}

type CustomerRepo interface {
	Add(ctx context.Context, c *entity.Customer) error
	Update(ctx context.Context, c *entity.Customer) error
	Delete(ctx context.Context, id string) error
	FindByID(ctx context.Context, id string) (*entity.Customer, error)
	FindAll(ctx context.Context) ([]*entity.Customer, error)
	Exists(ctx context.Context, id string) (bool, error)
	Count(ctx context.Context) (int, error)
}

// IdempotencyStore lets the HTTP adapter de-duplicate order submissions
// retried with the same key.
type IdempotencyStore interface {
	TryLock(ctx context.Context, scope, key string) (bool, error)
	Remember(ctx context.Context, scope, key, value string) error
	Recall(ctx context.Context, scope, key string) (string, bool, error)
}
