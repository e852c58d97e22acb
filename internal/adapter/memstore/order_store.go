package memstore

import (
	"context"

	"github.com/xuanmo666/order-management-system/internal/entity"
	"github.com/xuanmo666/order-management-system/internal/usecase"
)

func cloneOrder(o *entity.Order) *entity.Order {
	cp := *o
	cp.Items = make([]entity.OrderItem, len(o.Items))
	copy(cp.Items, o.Items)
	if o.Customer != nil {
		cust := *o.Customer
		cp.Customer = &cust
	}
	return &cp
}

type OrderStore struct {
	c *collection[*entity.Order]
}

func NewOrderStore() *OrderStore {
	return &OrderStore{c: newCollection(cloneOrder)}
}

func (s *OrderStore) Add(ctx context.Context, o *entity.Order) error {
	if !s.c.add(o.OrderID, o) {
		return entity.Validationf("order id already exists: %s", o.OrderID)
	}
	return nil
}

func (s *OrderStore) Update(ctx context.Context, o *entity.Order) error {
	if !s.c.update(o.OrderID, o) {
		return entity.Validationf("order not found: %s", o.OrderID)
	}
	return nil
}

func (s *OrderStore) Delete(ctx context.Context, orderID string) error {
	if !s.c.delete(orderID) {
		return entity.Validationf("order not found: %s", orderID)
	}
	return nil
}

func (s *OrderStore) FindByID(ctx context.Context, orderID string) (*entity.Order, error) {
	o, ok := s.c.get(orderID)
	if !ok {
		return nil, nil
	}
	return o, nil
}

func (s *OrderStore) FindAll(ctx context.Context) ([]*entity.Order, error) {
	return s.c.all(), nil
}

func (s *OrderStore) Exists(ctx context.Context, orderID string) (bool, error) {
	return s.c.exists(orderID), nil
}

func (s *OrderStore) Count(ctx context.Context) (int, error) {
	return s.c.count(), nil
}

var _ usecase.OrderRepo = (*OrderStore)(nil)
