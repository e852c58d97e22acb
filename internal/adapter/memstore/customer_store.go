package memstore

import (
	"context"

	"github.com/xuanmo666/order-management-system/internal/entity"
	"github.com/xuanmo666/order-management-system/internal/usecase"
)

type CustomerStore struct {
	c *collection[*entity.Customer]
}

func NewCustomerStore() *CustomerStore {
	return &CustomerStore{c: newCollection(func(cu *entity.Customer) *entity.Customer {
		cp := *cu
		return &cp
	})}
}

func (s *CustomerStore) Add(ctx context.Context, cu *entity.Customer) error {
	if !s.c.add(cu.ID, cu) {
		return entity.Validationf("customer id already exists: %s", cu.ID)
	}
	return nil
}

func (s *CustomerStore) Update(ctx context.Context, cu *entity.Customer) error {
	if !s.c.update(cu.ID, cu) {
		return entity.Validationf("customer not found: %s", cu.ID)
	}
	return nil
}

func (s *CustomerStore) Delete(ctx context.Context, id string) error {
	if !s.c.delete(id) {
		return entity.Validationf("customer not found: %s", id)
	}
	return nil
}

func (s *CustomerStore) FindByID(ctx context.Context, id string) (*entity.Customer, error) {
	cu, ok := s.c.get(id)
	if !ok {
		return nil, nil
	}
	return cu, nil
}

func (s *CustomerStore) FindAll(ctx context.Context) ([]*entity.Customer, error) {
	return s.c.all(), nil
}

func (s *CustomerStore) Exists(ctx context.Context, id string) (bool, error) {
	return s.c.exists(id), nil
}

func (s *CustomerStore) Count(ctx context.Context) (int, error) {
	return s.c.count(), nil
}

var _ usecase.CustomerRepo = (*CustomerStore)(nil)
